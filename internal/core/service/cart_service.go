package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
	"github.com/aCoruja/TechSecurityWebsite/internal/core/ports"
	"github.com/aCoruja/TechSecurityWebsite/internal/pkg/metrics"
)

// CartService implements the per-user cart operations on top of a
// CartRepository. Atomicity per user is delegated to the repository.
type CartService struct {
	repo    ports.CartRepository
	catalog ports.CatalogService
	log     zerolog.Logger
}

func NewCartService(repo ports.CartRepository, catalog ports.CatalogService, log zerolog.Logger) *CartService {
	return &CartService{repo: repo, catalog: catalog, log: log}
}

func (s *CartService) GetCart(ctx context.Context, username string) ([]domain.CartLine, error) {
	if username == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.Get(ctx, username)
}

// AddItem increments the line for productID by qty, appending a new line
// when the product is not in the cart yet.
func (s *CartService) AddItem(ctx context.Context, username string, productID, qty int) ([]domain.CartLine, error) {
	if username == "" {
		return nil, domain.ErrUnauthorized
	}
	if qty < 1 || qty > domain.MaxLineQuantity {
		return nil, domain.ErrInvalidQuantity
	}
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	lines, err := s.repo.Update(ctx, username, func(current []domain.CartLine) ([]domain.CartLine, error) {
		return domain.AddLine(current, productID, qty)
	})
	if err != nil {
		return nil, err
	}

	metrics.CartOperationsTotal.WithLabelValues("add").Inc()
	s.log.Debug().Str("username", username).Int("product_id", productID).Int("qty", qty).Msg("cart item added")
	return lines, nil
}

// ReplaceCart stores lines wholesale. Non-positive quantities are dropped and
// repeated product ids are merged, so the stored cart never holds more than
// one line per product. Every remaining product must exist in the catalog.
func (s *CartService) ReplaceCart(ctx context.Context, username string, lines []domain.CartLine) ([]domain.CartLine, error) {
	if username == "" {
		return nil, domain.ErrUnauthorized
	}

	normalized, err := domain.NormalizeLines(lines)
	if err != nil {
		return nil, err
	}
	for _, l := range normalized {
		if _, err := s.catalog.GetProduct(ctx, l.ProductID); err != nil {
			return nil, err
		}
	}

	stored, err := s.repo.Update(ctx, username, func([]domain.CartLine) ([]domain.CartLine, error) {
		return normalized, nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CartOperationsTotal.WithLabelValues("replace").Inc()
	return stored, nil
}

func (s *CartService) ClearCart(ctx context.Context, username string) ([]domain.CartLine, error) {
	if username == "" {
		return nil, domain.ErrUnauthorized
	}

	stored, err := s.repo.Update(ctx, username, func([]domain.CartLine) ([]domain.CartLine, error) {
		return []domain.CartLine{}, nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CartOperationsTotal.WithLabelValues("clear").Inc()
	return stored, nil
}
