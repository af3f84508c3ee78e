package service

import (
	"context"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
)

// DefaultProducts is the seed catalog served by /products.
var DefaultProducts = []domain.Product{
	{ID: 1, Name: "Câmera IP", Price: 199, ImageURL: "https://via.placeholder.com/300?text=Câmera+IP"},
	{ID: 2, Name: "SSD 480GB", Price: 159, ImageURL: "https://via.placeholder.com/300?text=SSD+480GB"},
	{ID: 3, Name: "Mouse Gamer", Price: 79, ImageURL: "https://via.placeholder.com/300?text=Mouse+Gamer"},
	{ID: 4, Name: "Teclado RGB", Price: 129, ImageURL: "https://via.placeholder.com/300?text=Teclado+RGB"},
}

// CatalogService serves a fixed, read-only product list.
type CatalogService struct {
	products []domain.Product
	byID     map[int]domain.Product
}

func NewCatalogService(products []domain.Product) *CatalogService {
	c := &CatalogService{
		products: make([]domain.Product, len(products)),
		byID:     make(map[int]domain.Product, len(products)),
	}
	copy(c.products, products)
	for _, p := range products {
		c.byID[p.ID] = p
	}
	return c
}

// ListProducts returns the whole catalog in insertion order. Callers get a
// copy and cannot mutate the catalog.
func (c *CatalogService) ListProducts(_ context.Context) []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *CatalogService) GetProduct(_ context.Context, id int) (*domain.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}
