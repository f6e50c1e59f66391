package models

import "time"

// TokenResponse is returned by login, signup and refresh.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	RefreshToken string    `json:"refresh_token"`
	UserID       string    `json:"user_id"`
	TenantID     string    `json:"tenant_id"`
	TokenID      string    `json:"token_id"`
	IssuedAt     time.Time `json:"issued_at"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}
