package dto

import "time"

// LoginResponse carries the access token issued after a successful login,
// register, refresh, or OAuth code exchange. The refresh token itself travels
// in an HTTP-only cookie, never in the body.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ExchangeCodeRequest defines the body for the Google OAuth code exchange endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
