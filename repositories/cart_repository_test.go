package repositories

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fashion-store/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCartRepository, *miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCartRepository(client), mr, client
}

func appendItem(item models.CartItem) CartMutation {
	return func(items []models.CartItem) ([]models.CartItem, error) {
		return append(items, item), nil
	}
}

func TestRedisCartRepository_GetEmpty(t *testing.T) {
	repo, _, _ := setupTestRedis(t)

	items, err := repo.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRedisCartRepository_UpdateStoresSingleKeyWithTTL(t *testing.T) {
	repo, mr, _ := setupTestRedis(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, "c1", appendItem(models.CartItem{ProductID: 1, Name: "Abaya", Price: 250, Quantity: 1}))
	require.NoError(t, err)

	raw, err := mr.Get("cart:c1")
	require.NoError(t, err)
	var stored []models.CartItem
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Len(t, stored, 1)
	assert.Equal(t, 30*24*time.Hour, mr.TTL("cart:c1"))

	items, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, stored, items)
}

func TestRedisCartRepository_EmptyCartDeletesKey(t *testing.T) {
	repo, mr, _ := setupTestRedis(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, "c1", appendItem(models.CartItem{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)

	_, err = repo.Update(ctx, "c1", func([]models.CartItem) ([]models.CartItem, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("cart:c1"))
}

func TestRedisCartRepository_Delete(t *testing.T) {
	repo, mr, _ := setupTestRedis(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, "c1", appendItem(models.CartItem{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "c1"))
	assert.False(t, mr.Exists("cart:c1"))
}

func TestRedisCartRepository_ConcurrentWriterCausesConflict(t *testing.T) {
	repo, _, client := setupTestRedis(t)
	ctx := context.Background()

	attempts := 0
	_, err := repo.Update(ctx, "c1", func(items []models.CartItem) ([]models.CartItem, error) {
		attempts++
		// Another writer touches the watched key on every attempt.
		require.NoError(t, client.Set(ctx, "cart:c1", "[]", 0).Err())
		return append(items, models.CartItem{ProductID: 1, Quantity: 1}), nil
	})

	assert.ErrorIs(t, err, ErrCartConflict)
	assert.Equal(t, maxCartUpdateAttempts, attempts)
}

func TestRedisCartRepository_MutationErrorAborts(t *testing.T) {
	repo, mr, _ := setupTestRedis(t)
	boom := assert.AnError

	_, err := repo.Update(context.Background(), "c1", func([]models.CartItem) ([]models.CartItem, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("cart:c1"))
}

func TestMemoryCartRepository_IsolatesCallers(t *testing.T) {
	repo := NewMemoryCartRepository()
	ctx := context.Background()

	items, err := repo.Update(ctx, "c1", appendItem(models.CartItem{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)
	items[0].Quantity = 99

	stored, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored[0].Quantity)

	require.NoError(t, repo.Delete(ctx, "c1"))
	stored, err = repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}
