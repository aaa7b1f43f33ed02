package dto

import "time"

// LoginRequest payload for credential login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse wraps the authenticated user and session expiry.
type SessionResponse struct {
	User      any       `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}
