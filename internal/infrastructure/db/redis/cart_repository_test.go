package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
	"github.com/aCoruja/TechSecurityWebsite/internal/core/ports"
)

type fakeGetter struct {
	key string
	val string
	err error
}

func (f *fakeGetter) Get(_ context.Context, key string) *redis.StringCmd {
	f.key = key
	return redis.NewStringResult(f.val, f.err)
}

func TestCartRepository_ReadDecodesLines(t *testing.T) {
	r := NewCartRepository(nil, 0)
	g := &fakeGetter{val: `[{"product_id":2,"qty":4},{"product_id":1,"qty":1}]`}

	lines, err := r.read(context.Background(), g, "alice")
	require.NoError(t, err)
	assert.Equal(t, "cart:alice", g.key)
	assert.Equal(t, []domain.CartLine{{ProductID: 2, Quantity: 4}, {ProductID: 1, Quantity: 1}}, lines)
}

func TestCartRepository_ReadMissingKeyIsEmptyCart(t *testing.T) {
	r := NewCartRepository(nil, 0)

	lines, err := r.read(context.Background(), &fakeGetter{err: redis.Nil}, "alice")
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestCartRepository_ReadErrors(t *testing.T) {
	r := NewCartRepository(nil, 0)
	ctx := context.Background()

	down := errors.New("connection refused")
	_, err := r.read(ctx, &fakeGetter{err: down}, "alice")
	assert.ErrorIs(t, err, down)

	_, err = r.read(ctx, &fakeGetter{val: "not json"}, "alice")
	assert.ErrorContains(t, err, "decode cart")
}

func TestNewCartRepository_DefaultTTL(t *testing.T) {
	assert.Equal(t, defaultCartTTL, NewCartRepository(nil, 0).ttl)
	assert.Equal(t, time.Hour, NewCartRepository(nil, time.Hour).ttl)
}

func TestOpen_RequiresAddr(t *testing.T) {
	_, err := Open(context.Background(), Config{})
	assert.Error(t, err)
}

func TestConfigOptions(t *testing.T) {
	opts := Config{Addr: "localhost:6379", DB: 2, PoolSize: 5}.options()
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 5, opts.PoolSize)
	assert.Equal(t, dialTimeout, opts.DialTimeout)
}

func newMiniredisRepo(t *testing.T, ttl time.Duration) (*CartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCartRepository(client, ttl), mr
}

func addOne(productID int) ports.CartUpdateFunc {
	return func(lines []domain.CartLine) ([]domain.CartLine, error) {
		return domain.AddLine(lines, productID, 1)
	}
}

func TestCartRepository_UpdateStoresJSONWithTTL(t *testing.T) {
	repo, mr := newMiniredisRepo(t, time.Hour)
	ctx := context.Background()

	_, err := repo.Update(ctx, "alice", addOne(2))
	require.NoError(t, err)
	lines, err := repo.Update(ctx, "alice", addOne(2))
	require.NoError(t, err)
	assert.Equal(t, []domain.CartLine{{ProductID: 2, Quantity: 2}}, lines)

	raw, err := mr.Get("cart:alice")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"product_id":2,"qty":2}]`, raw)
	assert.Equal(t, time.Hour, mr.TTL("cart:alice"))

	got, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestCartRepository_UpdateRefreshesTTL(t *testing.T) {
	repo, mr := newMiniredisRepo(t, time.Hour)
	ctx := context.Background()

	_, err := repo.Update(ctx, "alice", addOne(1))
	require.NoError(t, err)
	mr.FastForward(50 * time.Minute)
	assert.Equal(t, 10*time.Minute, mr.TTL("cart:alice"))

	_, err = repo.Update(ctx, "alice", addOne(1))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL("cart:alice"))
}

func TestCartRepository_UpdateAbortLeavesCartUntouched(t *testing.T) {
	repo, mr := newMiniredisRepo(t, 0)
	ctx := context.Background()

	_, err := repo.Update(ctx, "alice", addOne(3))
	require.NoError(t, err)

	_, err = repo.Update(ctx, "alice", func([]domain.CartLine) ([]domain.CartLine, error) {
		return nil, domain.ErrEmptyCart
	})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	raw, err := mr.Get("cart:alice")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"product_id":3,"qty":1}]`, raw)

	_, err = repo.Update(ctx, "bob", func([]domain.CartLine) ([]domain.CartLine, error) {
		return nil, domain.ErrEmptyCart
	})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.False(t, mr.Exists("cart:bob"))
}

// Every successful Update must be visible in the final cart; writers that
// exhaust their retries report contention instead of losing the increment.
func TestCartRepository_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	repo, _ := newMiniredisRepo(t, 0)
	ctx := context.Background()

	const workers, perWorker = 8, 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failures  []error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, err := repo.Update(ctx, "alice", addOne(1))
				mu.Lock()
				if err != nil {
					failures = append(failures, err)
				} else {
					succeeded++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	for _, err := range failures {
		assert.ErrorIs(t, err, errCartContention)
	}
	require.Positive(t, succeeded)

	lines, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, succeeded, lines[0].Quantity)
}

func TestCartRepository_Delete(t *testing.T) {
	repo, mr := newMiniredisRepo(t, 0)
	ctx := context.Background()

	_, err := repo.Update(ctx, "alice", addOne(1))
	require.NoError(t, err)
	require.True(t, mr.Exists("cart:alice"))

	require.NoError(t, repo.Delete(ctx, "alice"))
	assert.False(t, mr.Exists("cart:alice"))

	lines, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, lines)

	assert.NoError(t, repo.Delete(ctx, "nobody"))
}

func TestCartRepository_StoreDownSurfacesError(t *testing.T) {
	repo, mr := newMiniredisRepo(t, 0)
	mr.Close()

	_, err := repo.Update(context.Background(), "alice", addOne(1))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errCartContention)
}

func TestOpen_PingsServer(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Open(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	mr.Close()
	_, err = Open(context.Background(), Config{Addr: mr.Addr()})
	assert.Error(t, err)
}
