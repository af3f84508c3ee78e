package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
	"github.com/aCoruja/TechSecurityWebsite/internal/core/ports"
	"github.com/aCoruja/TechSecurityWebsite/internal/pkg/metrics"
)

// OrderPublisher hands order events to the async dispatcher.
type OrderPublisher interface {
	Enqueue(event ports.OrderEvent)
}

// CheckoutService converts a user's cart into an ephemeral order.
type CheckoutService struct {
	carts     ports.CartRepository
	catalog   ports.CatalogService
	publisher OrderPublisher
	now       func() time.Time
	log       zerolog.Logger
}

func NewCheckoutService(carts ports.CartRepository, catalog ports.CatalogService, publisher OrderPublisher, log zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		catalog:   catalog,
		publisher: publisher,
		now:       time.Now,
		log:       log,
	}
}

// Checkout captures the current lines and clears the cart in one atomic
// update. An empty cart is rejected and left untouched.
func (s *CheckoutService) Checkout(ctx context.Context, username string) (*domain.Order, error) {
	if username == "" {
		return nil, domain.ErrUnauthorized
	}

	var captured []domain.CartLine
	_, err := s.carts.Update(ctx, username, func(current []domain.CartLine) ([]domain.CartLine, error) {
		if len(current) == 0 {
			return nil, domain.ErrEmptyCart
		}
		captured = current
		return []domain.CartLine{}, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			metrics.CheckoutsTotal.WithLabelValues("empty_cart").Inc()
		}
		return nil, err
	}

	placedAt := s.now().UTC()
	order := &domain.Order{
		ID:        generateOrderID(placedAt),
		Username:  username,
		Items:     captured,
		Total:     s.total(ctx, captured),
		CreatedAt: placedAt,
	}

	metrics.CheckoutsTotal.WithLabelValues("ok").Inc()
	s.log.Info().
		Int64("order_id", order.ID).
		Str("username", username).
		Int("lines", len(order.Items)).
		Float64("total", order.Total).
		Msg("order placed")

	if s.publisher != nil {
		s.publisher.Enqueue(ports.OrderEvent{
			OrderID:  order.ID,
			Username: username,
			Lines:    len(order.Items),
			Units:    units(order.Items),
			Total:    order.Total,
			PlacedAt: placedAt,
		})
	}

	return order, nil
}

// total prices lines against the catalog. Products that have since left the
// catalog contribute nothing.
func (s *CheckoutService) total(ctx context.Context, lines []domain.CartLine) float64 {
	var sum float64
	for _, l := range lines {
		p, err := s.catalog.GetProduct(ctx, l.ProductID)
		if err != nil {
			continue
		}
		sum += p.Price * float64(l.Quantity)
	}
	return sum
}

func units(lines []domain.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// generateOrderID derives an id from wall-clock time. Two checkouts in the
// same nanosecond collide; ids are not stored so nothing detects it.
func generateOrderID(t time.Time) int64 {
	return t.UnixNano()
}
