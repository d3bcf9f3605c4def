package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankEndpointsRequireToken(t *testing.T) {
	router, _, _ := newTestServer()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/balance"},
		{http.MethodPost, "/api/deposit"},
		{http.MethodPost, "/api/withdraw"},
		{http.MethodPost, "/api/transfer"},
	}
	for _, tc := range cases {
		w := performRequest(router, tc.method, tc.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestGetBalance(t *testing.T) {
	router, db, _ := newTestServer()

	access, _ := registerAndLogin(t, router, "alice", "a@x.com", "pw1")
	db.setBalance("alice", 100)

	w := performRequest(router, http.MethodGet, "/api/balance", nil, access)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100.0, decodeBody(t, w)["balance"])
}

func TestDepositAndWithdraw(t *testing.T) {
	router, _, _ := newTestServer()

	access, _ := registerAndLogin(t, router, "alice", "a@x.com", "pw1")

	w := performRequest(router, http.MethodPost, "/api/deposit", gin.H{"amount": 50}, access)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50.0, decodeBody(t, w)["new_balance"])

	w = performRequest(router, http.MethodPost, "/api/withdraw", gin.H{"amount": 20}, access)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30.0, decodeBody(t, w)["new_balance"])
}

func TestDepositRejectsInvalidAmount(t *testing.T) {
	router, _, _ := newTestServer()

	access, _ := registerAndLogin(t, router, "alice", "a@x.com", "pw1")

	for _, body := range []interface{}{
		gin.H{"amount": 0},
		gin.H{"amount": -10},
		`{"amount": "ten"}`,
		`{`,
	} {
		w := performRequest(router, http.MethodPost, "/api/deposit", body, access)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %v", body)
	}
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	router, db, _ := newTestServer()

	access, _ := registerAndLogin(t, router, "alice", "a@x.com", "pw1")
	db.setBalance("alice", 10)

	w := performRequest(router, http.MethodPost, "/api/withdraw", gin.H{"amount": 100}, access)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Balance untouched by the rejected withdraw.
	w = performRequest(router, http.MethodGet, "/api/balance", nil, access)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10.0, decodeBody(t, w)["balance"])
}

func TestTransfer(t *testing.T) {
	router, db, _ := newTestServer()

	aliceAccess, _ := registerAndLogin(t, router, "alice", "a@x.com", "pw1")
	bobAccess, _ := registerAndLogin(t, router, "bob", "b@x.com", "pw2")
	db.setBalance("alice", 100)

	bobAccount, err := db.GetAccountByUsername("bob")
	require.NoError(t, err)

	w := performRequest(router, http.MethodPost, "/api/transfer", gin.H{
		"to": bobAccount.AccountNumber, "amount": 40,
	}, aliceAccess)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "success", decodeBody(t, w)["status"])

	w = performRequest(router, http.MethodGet, "/api/balance", nil, aliceAccess)
	assert.Equal(t, 60.0, decodeBody(t, w)["balance"])

	w = performRequest(router, http.MethodGet, "/api/balance", nil, bobAccess)
	assert.Equal(t, 40.0, decodeBody(t, w)["balance"])
}

func TestTransferFailures(t *testing.T) {
	router, db, _ := newTestServer()

	access, _ := registerAndLogin(t, router, "alice", "a@x.com", "pw1")
	db.setBalance("alice", 10)

	// Unknown recipient account.
	w := performRequest(router, http.MethodPost, "/api/transfer", gin.H{
		"to": "ACCT99999999", "amount": 5,
	}, access)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Insufficient funds.
	registerAndLogin(t, router, "bob", "b@x.com", "pw2")
	bobAccount, err := db.GetAccountByUsername("bob")
	require.NoError(t, err)

	w = performRequest(router, http.MethodPost, "/api/transfer", gin.H{
		"to": bobAccount.AccountNumber, "amount": 1000,
	}, access)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Invalid amount.
	w = performRequest(router, http.MethodPost, "/api/transfer", gin.H{
		"to": bobAccount.AccountNumber, "amount": -1,
	}, access)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
