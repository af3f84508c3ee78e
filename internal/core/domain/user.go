package domain

import "time"

// RoleUser is assigned to every self-registered account.
const RoleUser = "user"

// User models a registered shopper.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ClientCredential identifies a calling application (not an end user).
type ClientCredential struct {
	ClientID     string
	ClientSecret string
	Name         string
}
