package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/DasoTD/cppAuth/internal/auth"
	"github.com/DasoTD/cppAuth/internal/models"
	"github.com/DasoTD/cppAuth/internal/services"
	"github.com/DasoTD/cppAuth/pkg/utils"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Absent fields bind as empty strings; reject them explicitly rather
	// than letting an empty username reach the database.
	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Username, email, and password are required")
		return
	}
	if !utils.IsValidEmail(req.Email) {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid email format")
		return
	}

	if err := h.authService.Register(req.Username, req.Email, req.Password); err != nil {
		if err == models.ErrDuplicateUser {
			utils.SendErrorResponse(c, http.StatusConflict, err.Error())
			return
		}
		logrus.Errorf("Error registering user: %v", err)
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	utils.SendStatusResponse(c, http.StatusOK, "success")
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	accessToken, refreshToken, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if err == models.ErrInvalidCredentials {
			utils.SendErrorResponse(c, http.StatusUnauthorized, err.Error())
			return
		}
		logrus.Errorf("Error logging in user: %v", err)
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Error logging in")
		return
	}

	c.JSON(http.StatusOK, auth.TokenResponse{
		Status:       "success",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Refresh handles token refresh requests.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Username == "" || req.RefreshToken == "" {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Username and refresh token are required")
		return
	}

	newAccessToken, newRefreshToken, err := h.authService.Refresh(req.Username, req.RefreshToken)
	if err != nil {
		if err == models.ErrInvalidRefreshToken {
			utils.SendErrorResponse(c, http.StatusUnauthorized, err.Error())
			return
		}
		logrus.Errorf("Error refreshing token: %v", err)
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Error refreshing token")
		return
	}

	c.JSON(http.StatusOK, auth.TokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	})
}

// GetProfile returns the profile of the gate-verified principal.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Missing principal")
		return
	}

	profile, err := h.authService.GetProfile(principal)
	if err != nil {
		if err == models.ErrUserNotFound {
			utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		logrus.Errorf("Error retrieving profile for %q: %v", principal, err)
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, profile)
}
