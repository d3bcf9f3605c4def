package auth

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /refresh. The refresh token alone
// is not enough: it must match the token currently stored for Username.
type RefreshRequest struct {
	Username     string `json:"username"`
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse carries a freshly issued token pair back to the client.
type TokenResponse struct {
	Status       string `json:"status,omitempty"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
