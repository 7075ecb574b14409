package services

import (
	"context"
	"math"
	"testing"

	"fashion-store/models"
	"fashion-store/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() *fakeProducts {
	return &fakeProducts{products: map[int]*models.Product{
		1: {ID: 1, NameAr: "عباية", NameEn: "Abaya", Price: 250, WeightKg: 0.8, Sizes: []string{"S", "M"}, IsActive: true},
		2: {ID: 2, NameAr: "وشاح", NameEn: "Scarf", Price: 79.5, WeightKg: 0.2, IsActive: true},
		3: {ID: 3, NameAr: "قديم", NameEn: "Retired", Price: 10, IsActive: false},
	}}
}

func mustAdd(t *testing.T, items []models.CartItem, item models.CartItem) []models.CartItem {
	t.Helper()
	out, err := AddItem(items, item)
	require.NoError(t, err)
	return out
}

func TestAddItem_SameKeyMergesQuantity(t *testing.T) {
	items := mustAdd(t, nil, models.CartItem{ProductID: 1, Size: "M", Color: "black", Quantity: 1, Price: 10})
	items = mustAdd(t, items, models.CartItem{ProductID: 1, Size: "M", Color: "black", Quantity: 2, Price: 10})

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddItem_DifferentVariantAppends(t *testing.T) {
	items := mustAdd(t, nil, models.CartItem{ProductID: 1, Size: "M", Quantity: 1})
	items = mustAdd(t, items, models.CartItem{ProductID: 1, Size: "L", Quantity: 1})
	items = mustAdd(t, items, models.CartItem{ProductID: 2, Size: "M", Quantity: 1})

	assert.Len(t, items, 3)
}

func TestAddItem_MergedQuantityIsCapped(t *testing.T) {
	items := mustAdd(t, nil, models.CartItem{ProductID: 1, Quantity: models.MaxLineQuantity})

	_, err := AddItem(items, models.CartItem{ProductID: 1, Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = AddItem(nil, models.CartItem{ProductID: 2, Quantity: math.MaxInt})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_QuantityNeverOverflows(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(repositories.NewMemoryCartRepository(), nil)
	req := models.AddCartItemRequest{ProductID: 4, Quantity: models.MaxLineQuantity, Name: "Thobe", Price: 199}

	_, err := svc.AddItem(ctx, "c1", req, "en")
	require.NoError(t, err)

	req.Quantity = 1
	_, err = svc.AddItem(ctx, "c1", req, "en")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	req.Quantity = math.MaxInt
	_, err = svc.AddItem(ctx, "c2", req, "en")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.UpdateQuantity(ctx, "c1", models.CartItemKey{ProductID: 4}, math.MaxInt)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	cart, err := svc.GetCart(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, models.MaxLineQuantity, cart.ItemCount)
	assert.Equal(t, 198801.0, cart.TotalPrice)
}

func TestUpdateQuantity(t *testing.T) {
	key := models.CartItemKey{ProductID: 1, Size: "M"}
	items := []models.CartItem{{ProductID: 1, Size: "M", Quantity: 2}, {ProductID: 2, Quantity: 1}}

	items = UpdateQuantity(items, key, 5)
	assert.Equal(t, 5, items[0].Quantity)

	items = UpdateQuantity(items, key, 0)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ProductID)

	items = UpdateQuantity(items, models.CartItemKey{ProductID: 2}, -1)
	assert.Empty(t, items)
}

func TestRemoveItem_FiltersByKey(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, Size: "M", Quantity: 1},
		{ProductID: 1, Size: "L", Quantity: 1},
	}
	items = RemoveItem(items, models.CartItemKey{ProductID: 1, Size: "M"})

	require.Len(t, items, 1)
	assert.Equal(t, "L", items[0].Size)
}

func TestSummarize(t *testing.T) {
	cart := Summarize("c1", []models.CartItem{
		{ProductID: 1, Price: 19.99, Quantity: 3},
		{ProductID: 2, Price: 0.1, Quantity: 2},
	})

	assert.Equal(t, "c1", cart.ID)
	assert.Equal(t, 5, cart.ItemCount)
	assert.Equal(t, 60.17, cart.TotalPrice)

	empty := Summarize("c2", nil)
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.TotalPrice)
}

func TestCartService_AddTwiceThenRemoveLastUnit(t *testing.T) {
	svc := NewCartService(repositories.NewMemoryCartRepository(), catalog())
	ctx := context.Background()
	req := models.AddCartItemRequest{ProductID: 1, Quantity: 1, Size: "M"}

	_, err := svc.AddItem(ctx, "c1", req, "en")
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "c1", req, "en")
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 500.0, cart.TotalPrice)

	key := models.CartItemKey{ProductID: 1, Size: "M"}
	cart, err = svc.UpdateQuantity(ctx, "c1", key, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.ItemCount)

	cart, err = svc.UpdateQuantity(ctx, "c1", key, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.ItemCount)
}

func TestCartService_SnapshotsCatalogData(t *testing.T) {
	svc := NewCartService(repositories.NewMemoryCartRepository(), catalog())

	cart, err := svc.AddItem(context.Background(), "c1", models.AddCartItemRequest{
		ProductID: 2, Quantity: 1, Name: "client name", Price: 0.01,
	}, "ar")
	require.NoError(t, err)

	assert.Equal(t, "وشاح", cart.Items[0].Name)
	assert.Equal(t, 79.5, cart.Items[0].Price)
	assert.Equal(t, 0.2, cart.Items[0].WeightKg)
}

func TestCartService_AddItemValidation(t *testing.T) {
	svc := NewCartService(repositories.NewMemoryCartRepository(), catalog())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "c1", models.AddCartItemRequest{ProductID: 1, Quantity: 0}, "ar")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddItem(ctx, "c1", models.AddCartItemRequest{ProductID: 99, Quantity: 1}, "ar")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.AddItem(ctx, "c1", models.AddCartItemRequest{ProductID: 3, Quantity: 1}, "ar")
	assert.ErrorIs(t, err, ErrProductUnavailable)

	_, err = svc.AddItem(ctx, "c1", models.AddCartItemRequest{ProductID: 1, Quantity: 1, Size: "XXL"}, "ar")
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestCartService_WithoutCatalogKeepsClientSnapshot(t *testing.T) {
	svc := NewCartService(repositories.NewMemoryCartRepository(), nil)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "c1", models.AddCartItemRequest{ProductID: 5, Quantity: 2, Name: "Kaftan", Price: 120}, "en")
	require.NoError(t, err)
	assert.Equal(t, 240.0, cart.TotalPrice)

	_, err = svc.AddItem(ctx, "c1", models.AddCartItemRequest{ProductID: 6, Quantity: 1}, "en")
	assert.ErrorIs(t, err, ErrInvalidItem)

	require.NoError(t, svc.ClearCart(ctx, "c1"))
	cart, err = svc.GetCart(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
