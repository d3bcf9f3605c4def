package models

import "time"

// User represents a row in the users table. PasswordHash is never
// serialized back to clients.
type User struct {
	ID            int64     `json:"id" db:"id"`
	Username      string    `json:"username" db:"username"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	AccountNumber string    `json:"account_number" db:"account_number"`
	Balance       float64   `json:"balance" db:"balance"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Profile is the public view of a user returned by the profile endpoint.
type Profile struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Account carries the ledger columns of a user row.
type Account struct {
	AccountNumber string  `db:"account_number"`
	Balance       float64 `db:"balance"`
}
