package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"fashion-store/models"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCartTTL        = 30 * 24 * time.Hour
	maxCartUpdateAttempts = 3
)

// ErrCartConflict is returned when concurrent writers keep invalidating an
// optimistic cart update.
var ErrCartConflict = errors.New("cart was modified concurrently")

// CartMutation receives the current items and returns the new ones.
type CartMutation func(items []models.CartItem) ([]models.CartItem, error)

type CartRepository interface {
	Get(ctx context.Context, cartID string) ([]models.CartItem, error)
	Update(ctx context.Context, cartID string, fn CartMutation) ([]models.CartItem, error)
	Delete(ctx context.Context, cartID string) error
}

type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartRepository(client *redis.Client) *RedisCartRepository {
	return &RedisCartRepository{client: client, ttl: defaultCartTTL}
}

func (r *RedisCartRepository) Get(ctx context.Context, cartID string) ([]models.CartItem, error) {
	return loadCart(ctx, r.client, cartKey(cartID))
}

// Update applies fn under WATCH so a concurrent write to the same cart aborts
// and re-runs the mutation against fresh state.
func (r *RedisCartRepository) Update(ctx context.Context, cartID string, fn CartMutation) ([]models.CartItem, error) {
	key := cartKey(cartID)
	var result []models.CartItem

	txf := func(tx *redis.Tx) error {
		items, err := loadCart(ctx, tx, key)
		if err != nil {
			return err
		}

		updated, err := fn(items)
		if err != nil {
			return err
		}

		data, err := json.Marshal(updated)
		if err != nil {
			return fmt.Errorf("marshal cart failed: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(updated) == 0 {
				pipe.Del(ctx, key)
				return nil
			}
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = updated
		return nil
	}

	for attempt := 0; attempt < maxCartUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrCartConflict
}

func (r *RedisCartRepository) Delete(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, cartKey(cartID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func loadCart(ctx context.Context, g stringGetter, key string) ([]models.CartItem, error) {
	data, err := g.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return items, nil
}

func cartKey(cartID string) string {
	return fmt.Sprintf("cart:%s", cartID)
}

// MemoryCartRepository keeps carts in process memory. It is used when Redis
// is unavailable and in tests.
type MemoryCartRepository struct {
	mu    sync.Mutex
	carts map[string][]models.CartItem
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: make(map[string][]models.CartItem)}
}

func (r *MemoryCartRepository) Get(_ context.Context, cartID string) ([]models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneItems(r.carts[cartID]), nil
}

func (r *MemoryCartRepository) Update(_ context.Context, cartID string, fn CartMutation) ([]models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated, err := fn(cloneItems(r.carts[cartID]))
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		delete(r.carts, cartID)
	} else {
		r.carts[cartID] = cloneItems(updated)
	}
	return cloneItems(updated), nil
}

func (r *MemoryCartRepository) Delete(_ context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, cartID)
	return nil
}

func cloneItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}
