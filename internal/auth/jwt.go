package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is the fixed iss claim stamped on every token this service signs.
const Issuer = "my_cppAuth"

// Token lifetimes.
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// RefreshTokenStore holds the single currently-valid refresh token per
// username. Implementations must be safe for concurrent use.
type RefreshTokenStore interface {
	// SetCurrent unconditionally replaces the stored token for username,
	// invalidating whatever was there before.
	SetCurrent(username, token string)
	// ValidateCurrent reports whether presented exactly matches the
	// stored token for username.
	ValidateCurrent(username, presented string) bool
}

// VerificationReason classifies why a token failed verification.
type VerificationReason string

const (
	ReasonExpired        VerificationReason = "expired"
	ReasonBadSignature   VerificationReason = "bad_signature"
	ReasonIssuerMismatch VerificationReason = "issuer_mismatch"
	ReasonMalformed      VerificationReason = "malformed"
)

// VerificationError is returned by TokenIssuer.Verify for any token that
// does not pass signature or claim validation.
type VerificationError struct {
	Reason VerificationReason
	err    error
}

func (e *VerificationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("token verification failed (%s): %v", e.Reason, e.err)
	}
	return fmt.Sprintf("token verification failed (%s)", e.Reason)
}

func (e *VerificationError) Unwrap() error { return e.err }

// TokenIssuer signs and verifies HS256 access and refresh tokens. Issuing
// a refresh token rotates the store entry for that subject as a side
// effect, so at most one refresh token is live per username.
//
// The issuer is stateless apart from the injected store; the secret is
// read-only after construction, so issuance and verification need no
// locking of their own.
type TokenIssuer struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// Now supplies the clock for both issuance and expiry checks.
	// Overridable in tests.
	Now func() time.Time

	secret []byte
	issuer string
	store  RefreshTokenStore
}

// NewTokenIssuer creates a TokenIssuer with the default lifetimes.
func NewTokenIssuer(secret []byte, store RefreshTokenStore) *TokenIssuer {
	return &TokenIssuer{
		AccessTTL:  AccessTokenTTL,
		RefreshTTL: RefreshTokenTTL,
		secret:     secret,
		issuer:     Issuer,
		store:      store,
		Now:        time.Now,
	}
}

// IssueAccess signs a short-lived access token for subject.
func (ti *TokenIssuer) IssueAccess(subject string) (string, error) {
	return ti.sign(subject, ti.AccessTTL)
}

// IssueRefresh signs a refresh token for subject and stores it as the
// current one, replacing any previously issued refresh token.
func (ti *TokenIssuer) IssueRefresh(subject string) (string, error) {
	token, err := ti.sign(subject, ti.RefreshTTL)
	if err != nil {
		return "", err
	}
	ti.store.SetCurrent(subject, token)
	return token, nil
}

func (ti *TokenIssuer) sign(subject string, ttl time.Duration) (string, error) {
	now := ti.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    ti.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, issuer, and time bounds of token and
// returns its claims. Any failure comes back as a *VerificationError;
// arbitrary garbage input never panics.
func (ti *TokenIssuer) Verify(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return ti.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ti.issuer),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return ti.Now() }),
	)
	if err != nil {
		return nil, classifyVerificationError(err)
	}
	if !parsed.Valid {
		return nil, &VerificationError{Reason: ReasonMalformed}
	}
	return claims, nil
}

func classifyVerificationError(err error) *VerificationError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return &VerificationError{Reason: ReasonExpired, err: err}
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return &VerificationError{Reason: ReasonIssuerMismatch, err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return &VerificationError{Reason: ReasonBadSignature, err: err}
	default:
		return &VerificationError{Reason: ReasonMalformed, err: err}
	}
}
