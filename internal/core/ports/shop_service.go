package ports

import (
	"context"
	"time"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
)

// CatalogService exposes the static product list.
type CatalogService interface {
	ListProducts(ctx context.Context) []domain.Product
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
}

// CartService defines the per-user cart use cases.
type CartService interface {
	GetCart(ctx context.Context, username string) ([]domain.CartLine, error)
	AddItem(ctx context.Context, username string, productID, qty int) ([]domain.CartLine, error)
	ReplaceCart(ctx context.Context, username string, lines []domain.CartLine) ([]domain.CartLine, error)
	ClearCart(ctx context.Context, username string) ([]domain.CartLine, error)
}

// CheckoutService turns a cart into an order.
type CheckoutService interface {
	Checkout(ctx context.Context, username string) (*domain.Order, error)
}

// OrderEvent is published after a successful checkout.
type OrderEvent struct {
	OrderID  int64
	Username string
	Lines    int
	Units    int
	Total    float64
	PlacedAt time.Time
}

// OrderEventHandler processes order events off the request path.
type OrderEventHandler interface {
	Handle(ctx context.Context, event OrderEvent) error
}
