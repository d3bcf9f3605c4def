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

// AmountRequest is the body of deposit and withdraw requests.
type AmountRequest struct {
	Amount float64 `json:"amount"`
}

// TransferRequest is the body of transfer requests. To is the recipient's
// account number.
type TransferRequest struct {
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// BalanceResponse reports the current balance.
type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

// NewBalanceResponse reports the balance after a deposit or withdraw.
type NewBalanceResponse struct {
	NewBalance float64 `json:"new_balance"`
}

// BankHandler handles ledger HTTP requests for the authenticated user.
type BankHandler struct {
	bankService services.BankService
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankService services.BankService) *BankHandler {
	return &BankHandler{
		bankService: bankService,
	}
}

// GetBalance returns the principal's current balance.
func (h *BankHandler) GetBalance(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Missing principal")
		return
	}

	balance, err := h.bankService.GetBalance(principal)
	if err != nil {
		h.sendBankError(c, principal, "retrieving balance", err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Balance: balance})
}

// Deposit credits the principal's account.
func (h *BankHandler) Deposit(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Missing principal")
		return
	}

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	newBalance, err := h.bankService.Deposit(principal, req.Amount)
	if err != nil {
		h.sendBankError(c, principal, "depositing", err)
		return
	}
	c.JSON(http.StatusOK, NewBalanceResponse{NewBalance: newBalance})
}

// Withdraw debits the principal's account.
func (h *BankHandler) Withdraw(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Missing principal")
		return
	}

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	newBalance, err := h.bankService.Withdraw(principal, req.Amount)
	if err != nil {
		h.sendBankError(c, principal, "withdrawing", err)
		return
	}
	c.JSON(http.StatusOK, NewBalanceResponse{NewBalance: newBalance})
}

// Transfer moves money from the principal's account to another account.
func (h *BankHandler) Transfer(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Missing principal")
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.bankService.Transfer(principal, req.To, req.Amount); err != nil {
		h.sendBankError(c, principal, "transferring", err)
		return
	}
	utils.SendStatusResponse(c, http.StatusOK, "success")
}

func (h *BankHandler) sendBankError(c *gin.Context, principal, op string, err error) {
	switch err {
	case models.ErrInvalidAmount, models.ErrInsufficientFunds:
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
	case models.ErrAccountNotFound:
		utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		logrus.Errorf("Error %s for user %q: %v", op, principal, err)
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Internal error")
	}
}
