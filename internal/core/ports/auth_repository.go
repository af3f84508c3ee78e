package ports

import (
	"context"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no account matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create stores a new account. The uniqueness check on username must be
	// atomic with the insert; a taken username yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// ClientStore holds the application credentials loaded at startup.
type ClientStore interface {
	FindClient(ctx context.Context, clientID string) (domain.ClientCredential, bool)
}
