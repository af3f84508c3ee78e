package ports

import (
	"context"
	"time"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
)

// LoginInput carries the credentials submitted to /login.
type LoginInput struct {
	Username string
	Password string
	ClientID string // optional unless the client gate is enforced
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	AuthenticateClient(ctx context.Context, clientID, clientSecret string) (*domain.ClientCredential, error)
	Register(ctx context.Context, username, password, email string) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}

// TokenService issues and validates signed session tokens.
type TokenService interface {
	// Issue stamps iat/exp onto claim, signs it and returns the token together
	// with the stamped claim.
	Issue(claim domain.SessionClaim) (string, domain.SessionClaim, error)
	// Validate verifies signature and expiry and returns the embedded claim.
	Validate(token string) (*domain.SessionClaim, error)
}

// PasswordHasher abstracts how passwords are stored and verified.
type PasswordHasher interface {
	Scheme() string
	Hash(password string) (string, error)
	// Verify returns domain.ErrInvalidCredentials on mismatch.
	Verify(stored, password string) error
}
