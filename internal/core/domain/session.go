package domain

import "time"

// SessionClaim is the identity assertion carried inside a session token.
// It is never stored server-side.
type SessionClaim struct {
	Subject   string    `json:"sub"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}
