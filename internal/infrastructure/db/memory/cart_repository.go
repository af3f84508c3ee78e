package memory

import (
	"context"
	"sync"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
	"github.com/aCoruja/TechSecurityWebsite/internal/core/ports"
)

type cartEntry struct {
	mu      sync.Mutex
	lines   []domain.CartLine
	removed bool
}

// CartRepository keeps one mutex per user so that updates to the same cart
// serialize while different users proceed in parallel. The map lock is only
// held long enough to find or create an entry.
type CartRepository struct {
	mu    sync.Mutex
	carts map[string]*cartEntry
}

func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string]*cartEntry)}
}

func (r *CartRepository) entry(username string) *cartEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.carts[username]
	if !ok {
		e = &cartEntry{lines: []domain.CartLine{}}
		r.carts[username] = e
	}
	return e
}

// lock returns the live entry for username with its mutex held.
func (r *CartRepository) lock(username string) *cartEntry {
	for {
		e := r.entry(username)
		e.mu.Lock()
		if !e.removed {
			return e
		}
		// Deleted between lookup and lock; pick up the replacement.
		e.mu.Unlock()
	}
}

func (r *CartRepository) Get(_ context.Context, username string) ([]domain.CartLine, error) {
	e := r.lock(username)
	defer e.mu.Unlock()
	return domain.CloneLines(e.lines), nil
}

func (r *CartRepository) Update(ctx context.Context, username string, fn ports.CartUpdateFunc) ([]domain.CartLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e := r.lock(username)
	defer e.mu.Unlock()

	next, err := fn(domain.CloneLines(e.lines))
	if err != nil {
		return nil, err
	}
	e.lines = domain.CloneLines(next)
	return domain.CloneLines(e.lines), nil
}

func (r *CartRepository) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	e, ok := r.carts[username]
	if ok {
		delete(r.carts, username)
	}
	r.mu.Unlock()

	if ok {
		e.mu.Lock()
		e.removed = true
		e.lines = nil
		e.mu.Unlock()
	}
	return nil
}

// Reset drops every cart.
func (r *CartRepository) Reset() {
	r.mu.Lock()
	old := r.carts
	r.carts = make(map[string]*cartEntry)
	r.mu.Unlock()

	for _, e := range old {
		e.mu.Lock()
		e.removed = true
		e.lines = nil
		e.mu.Unlock()
	}
}
