package repositories

import "github.com/DasoTD/cppAuth/internal/models"

// UserRepository defines the interface for credential-store operations.
type UserRepository interface {
	// CreateUser inserts a new user row. Returns models.ErrDuplicateUser
	// when the username or email unique constraint is violated.
	CreateUser(user models.User) (*models.User, error)
	// GetUserByUsername returns (nil, nil) when no such user exists.
	GetUserByUsername(username string) (*models.User, error)
	// GetProfileByUsername returns (nil, nil) when no such user exists.
	GetProfileByUsername(username string) (*models.Profile, error)
}

// LedgerRepository defines the interface for balance operations on the
// users table.
type LedgerRepository interface {
	// GetAccountByUsername returns (nil, nil) when no such user exists.
	GetAccountByUsername(username string) (*models.Account, error)
	// Deposit adds amount to the user's balance and returns the new
	// balance, or (nil, nil) when the user does not exist.
	Deposit(username string, amount float64) (*float64, error)
	// Withdraw subtracts amount if the balance covers it and returns the
	// new balance. (nil, nil) means the user is missing or the balance
	// was insufficient; callers distinguish the two.
	Withdraw(username string, amount float64) (*float64, error)
	// Transfer atomically debits the sender (guarded by balance) and
	// credits the account identified by toAccount. Returns
	// models.ErrInsufficientFunds or models.ErrAccountNotFound on the
	// respective failure, with no partial update left behind.
	Transfer(fromUsername, toAccount string, amount float64) error
}
