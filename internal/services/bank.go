package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/DasoTD/cppAuth/internal/models"
	"github.com/DasoTD/cppAuth/internal/repositories"
)

// BankService provides ledger operations on the authenticated user's
// account.
type BankService interface {
	GetBalance(username string) (float64, error)
	Deposit(username string, amount float64) (float64, error)
	Withdraw(username string, amount float64) (float64, error)
	Transfer(username, toAccount string, amount float64) error
}

type bankService struct {
	ledgerRepo repositories.LedgerRepository
}

// NewBankService creates a new BankService.
func NewBankService(ledgerRepo repositories.LedgerRepository) BankService {
	return &bankService{
		ledgerRepo: ledgerRepo,
	}
}

// GetBalance returns the current balance for username.
func (s *bankService) GetBalance(username string) (float64, error) {
	acct, err := s.ledgerRepo.GetAccountByUsername(username)
	if err != nil {
		return 0, fmt.Errorf("failed to query account: %w", err)
	}
	if acct == nil {
		return 0, models.ErrAccountNotFound
	}
	return acct.Balance, nil
}

// Deposit credits amount and returns the new balance.
func (s *bankService) Deposit(username string, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, models.ErrInvalidAmount
	}
	balance, err := s.ledgerRepo.Deposit(username, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to deposit: %w", err)
	}
	if balance == nil {
		logrus.Warnf("BankService.Deposit: account missing for user %q", username)
		return 0, models.ErrAccountNotFound
	}
	return *balance, nil
}

// Withdraw debits amount and returns the new balance. The repository
// reports missing-user and insufficient-funds identically, so a second
// lookup decides which error the caller sees.
func (s *bankService) Withdraw(username string, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, models.ErrInvalidAmount
	}
	balance, err := s.ledgerRepo.Withdraw(username, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to withdraw: %w", err)
	}
	if balance == nil {
		acct, lookupErr := s.ledgerRepo.GetAccountByUsername(username)
		if lookupErr != nil {
			return 0, fmt.Errorf("failed to query account after rejected withdraw: %w", lookupErr)
		}
		if acct == nil {
			return 0, models.ErrAccountNotFound
		}
		logrus.Warnf("BankService.Withdraw: insufficient funds for user %q", username)
		return 0, models.ErrInsufficientFunds
	}
	return *balance, nil
}

// Transfer moves amount from username's account to toAccount.
func (s *bankService) Transfer(username, toAccount string, amount float64) error {
	if amount <= 0 {
		return models.ErrInvalidAmount
	}
	if toAccount == "" {
		return models.ErrAccountNotFound
	}
	if err := s.ledgerRepo.Transfer(username, toAccount, amount); err != nil {
		if err == models.ErrInsufficientFunds || err == models.ErrAccountNotFound {
			return err
		}
		return fmt.Errorf("failed to transfer: %w", err)
	}
	logrus.Infof("BankService.Transfer: %q sent %.2f to account %s", username, amount, toAccount)
	return nil
}
