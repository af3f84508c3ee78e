package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aCoruja/TechSecurityWebsite/internal/api/middleware"
	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
)

type stubCartService struct {
	lines []domain.CartLine

	addFn func(username string, productID, qty int) ([]domain.CartLine, error)
	gotFn func(username string)
}

func (s *stubCartService) GetCart(ctx context.Context, username string) ([]domain.CartLine, error) {
	if s.gotFn != nil {
		s.gotFn(username)
	}
	return domain.CloneLines(s.lines), nil
}

func (s *stubCartService) AddItem(ctx context.Context, username string, productID, qty int) ([]domain.CartLine, error) {
	return s.addFn(username, productID, qty)
}

func (s *stubCartService) ReplaceCart(ctx context.Context, username string, lines []domain.CartLine) ([]domain.CartLine, error) {
	normalized, err := domain.NormalizeLines(lines)
	if err != nil {
		return nil, err
	}
	s.lines = normalized
	return domain.CloneLines(s.lines), nil
}

func (s *stubCartService) ClearCart(ctx context.Context, username string) ([]domain.CartLine, error) {
	s.lines = nil
	return []domain.CartLine{}, nil
}

func withClaim(c echo.Context, username string) {
	c.Set(middleware.ClaimsKey, &domain.SessionClaim{
		Subject:   username,
		Name:      username,
		Role:      domain.RoleUser,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	})
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) []domain.CartLine {
	t.Helper()
	var resp struct {
		Cart []domain.CartLine `json:"cart"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Cart == nil {
		t.Fatalf("expected cart array, got %s", rec.Body.String())
	}
	return resp.Cart
}

func TestCartHandler_Get_NoClaim(t *testing.T) {
	h := NewCartHandler(&stubCartService{})
	c, _ := jsonContext(newTestEcho(), http.MethodGet, "/cart", "")

	if err := h.Get(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCartHandler_Get_EmptyCartIsArray(t *testing.T) {
	var gotUser string
	h := NewCartHandler(&stubCartService{gotFn: func(u string) { gotUser = u }})
	c, rec := jsonContext(newTestEcho(), http.MethodGet, "/cart", "")
	withClaim(c, "alice")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotUser != "alice" {
		t.Fatalf("expected username from claim, got %q", gotUser)
	}
	if rec.Body.String() != "{\"cart\":[]}\n" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestCartHandler_Add_DefaultsQtyToOne(t *testing.T) {
	var gotQty int
	stub := &stubCartService{
		addFn: func(username string, productID, qty int) ([]domain.CartLine, error) {
			gotQty = qty
			return []domain.CartLine{{ProductID: productID, Quantity: qty}}, nil
		},
	}
	h := NewCartHandler(stub)
	c, rec := jsonContext(newTestEcho(), http.MethodPost, "/cart", `{"product_id":2}`)
	withClaim(c, "alice")

	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotQty != 1 {
		t.Fatalf("expected qty 1, got %d", gotQty)
	}
	if lines := decodeCart(t, rec); len(lines) != 1 || lines[0].ProductID != 2 {
		t.Fatalf("unexpected cart: %+v", lines)
	}
}

func TestCartHandler_Add_Rejections(t *testing.T) {
	stub := &stubCartService{
		addFn: func(username string, productID, qty int) ([]domain.CartLine, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	h := NewCartHandler(stub)

	tests := []struct {
		name string
		body string
		want error
	}{
		{"missing product", `{"qty":1}`, domain.ErrMissingField},
		{"zero qty", `{"product_id":1,"qty":0}`, domain.ErrMalformedRequest},
		{"negative qty", `{"product_id":1,"qty":-3}`, domain.ErrMalformedRequest},
		{"unknown product", `{"product_id":99}`, domain.ErrProductNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := jsonContext(newTestEcho(), http.MethodPost, "/cart", tt.body)
			withClaim(c, "alice")
			if err := h.Add(c); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCartHandler_Replace(t *testing.T) {
	h := NewCartHandler(&stubCartService{})
	body := `{"items":[{"product_id":1,"qty":2},{"product_id":3,"qty":0},{"product_id":1,"qty":1}]}`
	c, rec := jsonContext(newTestEcho(), http.MethodPut, "/cart", body)
	withClaim(c, "alice")

	if err := h.Replace(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	lines := decodeCart(t, rec)
	if len(lines) != 1 || lines[0].ProductID != 1 || lines[0].Quantity != 3 {
		t.Fatalf("unexpected cart: %+v", lines)
	}
}

func TestCartHandler_Replace_MissingItems(t *testing.T) {
	h := NewCartHandler(&stubCartService{})
	c, _ := jsonContext(newTestEcho(), http.MethodPut, "/cart", `{}`)
	withClaim(c, "alice")

	if err := h.Replace(c); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestCartHandler_Clear(t *testing.T) {
	stub := &stubCartService{lines: []domain.CartLine{{ProductID: 1, Quantity: 1}}}
	h := NewCartHandler(stub)
	c, rec := jsonContext(newTestEcho(), http.MethodDelete, "/cart", "")
	withClaim(c, "alice")

	if err := h.Clear(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if lines := decodeCart(t, rec); len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}
