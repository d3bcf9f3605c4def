package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/DasoTD/cppAuth/internal/auth"
	"github.com/DasoTD/cppAuth/internal/models"
	"github.com/DasoTD/cppAuth/internal/repositories"
	"github.com/DasoTD/cppAuth/internal/services"
)

// fakeDB is a map-backed stand-in for the users table, implementing both
// the credential-store and ledger interfaces the way the SQL versions
// behave (nil for missing rows, balance guard on withdraw).
type fakeDB struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*models.User // keyed by username
}

func newFakeDB() *fakeDB {
	return &fakeDB{users: make(map[string]*models.User)}
}

func (db *fakeDB) CreateUser(user models.User) (*models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, existing := range db.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return nil, models.ErrDuplicateUser
		}
	}
	db.nextID++
	user.ID = db.nextID
	user.CreatedAt = time.Now()
	db.users[user.Username] = &user
	return &user, nil
}

func (db *fakeDB) GetUserByUsername(username string) (*models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[username]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (db *fakeDB) GetProfileByUsername(username string) (*models.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[username]
	if !ok {
		return nil, nil
	}
	return &models.Profile{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}, nil
}

func (db *fakeDB) GetAccountByUsername(username string) (*models.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[username]
	if !ok {
		return nil, nil
	}
	return &models.Account{AccountNumber: u.AccountNumber, Balance: u.Balance}, nil
}

func (db *fakeDB) Deposit(username string, amount float64) (*float64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[username]
	if !ok {
		return nil, nil
	}
	u.Balance += amount
	balance := u.Balance
	return &balance, nil
}

func (db *fakeDB) Withdraw(username string, amount float64) (*float64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[username]
	if !ok || u.Balance < amount {
		return nil, nil
	}
	u.Balance -= amount
	balance := u.Balance
	return &balance, nil
}

func (db *fakeDB) Transfer(fromUsername, toAccount string, amount float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	from, ok := db.users[fromUsername]
	if !ok || from.Balance < amount {
		return models.ErrInsufficientFunds
	}
	var to *models.User
	for _, u := range db.users {
		if u.AccountNumber == toAccount {
			to = u
			break
		}
	}
	if to == nil {
		return models.ErrAccountNotFound
	}
	from.Balance -= amount
	to.Balance += amount
	return nil
}

func (db *fakeDB) deleteUser(username string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.users, username)
}

func (db *fakeDB) setBalance(username string, balance float64) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if u, ok := db.users[username]; ok {
		u.Balance = balance
	}
}

// newTestServer wires the real services and handlers onto the fake DB
// with the same routes cmd/server registers.
func newTestServer() (*gin.Engine, *fakeDB, *auth.TokenIssuer) {
	gin.SetMode(gin.TestMode)

	db := newFakeDB()
	store := repositories.NewMemoryRefreshTokenStore()
	issuer := auth.NewTokenIssuer([]byte("test-secret"), store)

	authHandler := NewAuthHandler(services.NewAuthService(db, store, issuer))
	bankHandler := NewBankHandler(services.NewBankService(db))
	healthHandler := NewHealthHandler()

	router := gin.New()
	router.GET("/health", healthHandler.HealthCheck)
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.POST("/refresh", authHandler.Refresh)

	api := router.Group("/api")
	api.Use(auth.JwtAuthMiddleware(issuer))
	{
		api.GET("/profile", authHandler.GetProfile)
		api.GET("/balance", bankHandler.GetBalance)
		api.POST("/deposit", bankHandler.Deposit)
		api.POST("/withdraw", bankHandler.Withdraw)
		api.POST("/transfer", bankHandler.Transfer)
	}

	return router, db, issuer
}

func performRequest(router *gin.Engine, method, path string, body interface{}, bearer string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerAndLogin creates a user and returns its access and refresh
// tokens.
func registerAndLogin(t *testing.T, router *gin.Engine, username, email, password string) (string, string) {
	t.Helper()

	w := performRequest(router, http.MethodPost, "/register", gin.H{
		"username": username, "email": email, "password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "register failed: %s", w.Body.String())

	w = performRequest(router, http.MethodPost, "/login", gin.H{
		"username": username, "password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	body := decodeBody(t, w)
	access, _ := body["access_token"].(string)
	refresh, _ := body["refresh_token"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	return access, refresh
}
