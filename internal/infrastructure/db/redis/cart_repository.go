package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
	"github.com/aCoruja/TechSecurityWebsite/internal/core/ports"
)

const (
	// maxTxAttempts bounds optimistic-lock retries when concurrent writers
	// touch the same cart.
	maxTxAttempts  = 16
	defaultCartTTL = 7 * 24 * time.Hour
)

var errCartContention = errors.New("cart update contention")

// stringGetter is satisfied by both *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// CartRepository stores each cart as a JSON array under cart:<username>.
// Update uses WATCH/MULTI so read-modify-write is atomic per user.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository wraps client. A non-positive ttl selects the default;
// every write refreshes the expiry.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	if ttl <= 0 {
		ttl = defaultCartTTL
	}
	return &CartRepository{client: client, ttl: ttl}
}

func (r *CartRepository) Get(ctx context.Context, username string) ([]domain.CartLine, error) {
	return r.read(ctx, r.client, username)
}

func (r *CartRepository) Update(ctx context.Context, username string, fn ports.CartUpdateFunc) ([]domain.CartLine, error) {
	key := r.key(username)
	var stored []domain.CartLine

	txf := func(tx *redis.Tx) error {
		current, err := r.read(ctx, tx, username)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		next = domain.CloneLines(next)

		payload, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode cart: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		stored = next
		return nil
	}

	for i := 0; i < maxTxAttempts; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return stored, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("update cart %s: %w", username, errCartContention)
}

func (r *CartRepository) Delete(ctx context.Context, username string) error {
	return r.client.Del(ctx, r.key(username)).Err()
}

func (r *CartRepository) read(ctx context.Context, c stringGetter, username string) ([]domain.CartLine, error) {
	raw, err := c.Get(ctx, r.key(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.CartLine{}, nil
		}
		return nil, fmt.Errorf("read cart: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return domain.CloneLines(lines), nil
}

func (r *CartRepository) key(username string) string {
	return "cart:" + username
}
