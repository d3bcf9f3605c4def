package repositories

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/DasoTD/cppAuth/internal/models"
)

// PostgresLedgerRepository implements LedgerRepository against the
// balance columns of the users table.
type PostgresLedgerRepository struct {
	db *sqlx.DB
}

// NewPostgresLedgerRepository creates a new instance of PostgresLedgerRepository
func NewPostgresLedgerRepository(db *sqlx.DB) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{db: db}
}

// GetAccountByUsername retrieves the account number and balance for a user.
func (repo *PostgresLedgerRepository) GetAccountByUsername(username string) (*models.Account, error) {
	var acct models.Account
	err := repo.db.Get(&acct, `
        SELECT account_number, balance FROM users WHERE username = $1`, username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying account: %w", err)
	}
	return &acct, nil
}

// Deposit credits amount to the user's balance.
func (repo *PostgresLedgerRepository) Deposit(username string, amount float64) (*float64, error) {
	var balance float64
	err := repo.db.Get(&balance, `
        UPDATE users SET balance = balance + $1 WHERE username = $2
        RETURNING balance`, amount, username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error depositing: %w", err)
	}
	return &balance, nil
}

// Withdraw debits amount from the user's balance. The balance guard is in
// the statement itself so a concurrent withdraw can never overdraw.
func (repo *PostgresLedgerRepository) Withdraw(username string, amount float64) (*float64, error) {
	var balance float64
	err := repo.db.Get(&balance, `
        UPDATE users SET balance = balance - $1
        WHERE username = $2 AND balance >= $1
        RETURNING balance`, amount, username)
	if err == sql.ErrNoRows {
		return nil, nil // missing user or insufficient funds
	}
	if err != nil {
		return nil, fmt.Errorf("error withdrawing: %w", err)
	}
	return &balance, nil
}

// Transfer debits the sender and credits the recipient account inside a
// single transaction. Either both updates land or neither does.
func (repo *PostgresLedgerRepository) Transfer(fromUsername, toAccount string, amount float64) error {
	tx, err := repo.db.Beginx()
	if err != nil {
		return fmt.Errorf("error beginning transfer transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				logrus.Errorf("PostgresLedgerRepository.Transfer: rollback failed: %v", rbErr)
			}
		}
	}()

	var fromBalance float64
	err = tx.Get(&fromBalance, `
        UPDATE users SET balance = balance - $1
        WHERE username = $2 AND balance >= $1
        RETURNING balance`, amount, fromUsername)
	if err == sql.ErrNoRows {
		err = models.ErrInsufficientFunds
		return err
	}
	if err != nil {
		return fmt.Errorf("error debiting sender: %w", err)
	}

	var toBalance float64
	err = tx.Get(&toBalance, `
        UPDATE users SET balance = balance + $1
        WHERE account_number = $2
        RETURNING balance`, amount, toAccount)
	if err == sql.ErrNoRows {
		err = models.ErrAccountNotFound
		return err
	}
	if err != nil {
		return fmt.Errorf("error crediting recipient: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transfer: %w", err)
	}
	return nil
}
