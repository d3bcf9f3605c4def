package services

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/DasoTD/cppAuth/internal/auth"
	"github.com/DasoTD/cppAuth/internal/models"
	"github.com/DasoTD/cppAuth/internal/repositories"
	"github.com/DasoTD/cppAuth/pkg/utils"
)

// AuthService provides authentication-related business logic.
type AuthService interface {
	Register(username, email, password string) error
	Login(username, password string) (accessToken, refreshToken string, err error)
	Refresh(username, refreshToken string) (newAccessToken, newRefreshToken string, err error)
	GetProfile(principal string) (*models.Profile, error)
}

type authService struct {
	userRepo     repositories.UserRepository
	refreshStore auth.RefreshTokenStore
	issuer       *auth.TokenIssuer
}

// NewAuthService creates a new AuthService. The refresh store must be the
// same instance the issuer rotates into.
func NewAuthService(userRepo repositories.UserRepository, refreshStore auth.RefreshTokenStore, issuer *auth.TokenIssuer) AuthService {
	return &authService{
		userRepo:     userRepo,
		refreshStore: refreshStore,
		issuer:       issuer,
	}
}

// Register hashes the password and inserts the user with a fresh account
// number and a zero balance.
func (s *authService) Register(username, email, password string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:      username,
		Email:         email,
		PasswordHash:  hashedPassword,
		AccountNumber: generateAccountNumber(),
		Balance:       0,
	}

	if _, err := s.userRepo.CreateUser(user); err != nil {
		if err == models.ErrDuplicateUser {
			return err
		}
		return fmt.Errorf("failed to create user in repository: %w", err)
	}
	return nil
}

// Login verifies the credentials and issues a fresh token pair. The
// refresh issuance rotates the store, so any refresh token from an
// earlier login for this username stops working here.
//
// An unknown username and a wrong password both come back as
// models.ErrInvalidCredentials so callers cannot probe for usernames.
func (s *authService) Login(username, password string) (string, string, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return "", "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		logrus.Debugf("AuthService.Login: user %q not found", username)
		return "", "", models.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logrus.Debugf("AuthService.Login: password mismatch for user %q", username)
		return "", "", models.ErrInvalidCredentials
	}

	accessToken, err := s.issuer.IssueAccess(user.Username)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.issuer.IssueRefresh(user.Username)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// Refresh exchanges a valid refresh token for a new token pair, rotating
// the stored token so each refresh token is single-use. The store check
// runs first; the signature/expiry verification after it is defense in
// depth, since a token still matching the store could have expired.
func (s *authService) Refresh(username, refreshToken string) (string, string, error) {
	if !s.refreshStore.ValidateCurrent(username, refreshToken) {
		logrus.Debugf("AuthService.Refresh: presented token is not current for user %q", username)
		return "", "", models.ErrInvalidRefreshToken
	}

	if _, err := s.issuer.Verify(refreshToken); err != nil {
		logrus.Warnf("AuthService.Refresh: stored refresh token failed verification for user %q: %v", username, err)
		return "", "", models.ErrInvalidRefreshToken
	}

	newAccessToken, err := s.issuer.IssueAccess(username)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate new access token: %w", err)
	}
	newRefreshToken, err := s.issuer.IssueRefresh(username)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate new refresh token: %w", err)
	}

	return newAccessToken, newRefreshToken, nil
}

// GetProfile looks up the profile for an already-authenticated principal.
// The gate verified the token; the row can still be gone if the user was
// deleted since, which surfaces as models.ErrUserNotFound.
func (s *authService) GetProfile(principal string) (*models.Profile, error) {
	profile, err := s.userRepo.GetProfileByUsername(principal)
	if err != nil {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}
	if profile == nil {
		return nil, models.ErrUserNotFound
	}
	return profile, nil
}

// generateAccountNumber produces an 8-digit ACCT number. Uniqueness is
// enforced by the database constraint, not here.
func generateAccountNumber() string {
	return fmt.Sprintf("ACCT%08d", rand.Intn(100000000))
}
