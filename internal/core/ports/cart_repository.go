package ports

import (
	"context"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
)

// CartUpdateFunc receives a private copy of the current lines and returns
// the lines to store. Returning an error aborts the update.
type CartUpdateFunc func(lines []domain.CartLine) ([]domain.CartLine, error)

// CartRepository stores one cart per username.
type CartRepository interface {
	// Get returns the current lines, or an empty slice when the user has no cart.
	Get(ctx context.Context, username string) ([]domain.CartLine, error)
	// Update applies fn atomically with respect to every other Update for the
	// same username and returns the stored lines. Carts of different users
	// are updated independently.
	Update(ctx context.Context, username string, fn CartUpdateFunc) ([]domain.CartLine, error)
	// Delete removes the user's cart entirely.
	Delete(ctx context.Context, username string) error
}
