package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/DasoTD/cppAuth/internal/models"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository creates a new instance of PostgresUserRepository
func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser inserts a new user row and returns it with the generated ID
// and timestamp filled in.
func (repo *PostgresUserRepository) CreateUser(user models.User) (*models.User, error) {
	err := repo.db.Get(&user, `
        INSERT INTO users (username, email, password_hash, account_number, balance)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`,
		user.Username, user.Email, user.PasswordHash, user.AccountNumber, user.Balance)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, models.ErrDuplicateUser
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a full user row by username.
func (repo *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	err := repo.db.Get(&u, `
        SELECT id, username, email, password_hash, account_number, balance, created_at
        FROM users WHERE username = $1`, username)
	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("error querying user by username: %w", err)
	}
	return &u, nil
}

// GetProfileByUsername retrieves the public profile columns for a user.
func (repo *PostgresUserRepository) GetProfileByUsername(username string) (*models.Profile, error) {
	var p models.Profile
	err := repo.db.Get(&p, `
        SELECT id, username, email, created_at
        FROM users WHERE username = $1`, username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying profile by username: %w", err)
	}
	return &p, nil
}
