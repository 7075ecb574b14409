package services

import (
	"context"
	"errors"
	"fmt"

	"fashion-store/models"
	"fashion-store/repositories"
	"fashion-store/utils"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ProductLookup resolves catalog entries for price and weight snapshots.
type ProductLookup interface {
	GetByID(ctx context.Context, id int) (*models.Product, error)
}

type CartService struct {
	repo     repositories.CartRepository
	products ProductLookup
}

// NewCartService accepts a nil products lookup, in which case the snapshot
// sent by the client is stored as is.
func NewCartService(repo repositories.CartRepository, products ProductLookup) *CartService {
	return &CartService{repo: repo, products: products}
}

func (s *CartService) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	items, err := s.repo.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return Summarize(cartID, items), nil
}

func (s *CartService) AddItem(ctx context.Context, cartID string, req models.AddCartItemRequest, locale string) (*models.Cart, error) {
	if req.Quantity < 1 || req.Quantity > models.MaxLineQuantity {
		return nil, ErrInvalidQuantity
	}

	item, err := s.snapshot(ctx, req, locale)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Update(ctx, cartID, func(items []models.CartItem) ([]models.CartItem, error) {
		return AddItem(items, item)
	})
	if err != nil {
		log.WithError(err).WithField("cart_id", cartID).Error("cart add item failed")
		return nil, err
	}
	return Summarize(cartID, items), nil
}

func (s *CartService) RemoveItem(ctx context.Context, cartID string, key models.CartItemKey) (*models.Cart, error) {
	items, err := s.repo.Update(ctx, cartID, func(items []models.CartItem) ([]models.CartItem, error) {
		return RemoveItem(items, key), nil
	})
	if err != nil {
		log.WithError(err).WithField("cart_id", cartID).Error("cart remove item failed")
		return nil, err
	}
	return Summarize(cartID, items), nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, cartID string, key models.CartItemKey, quantity int) (*models.Cart, error) {
	if quantity > models.MaxLineQuantity {
		return nil, ErrInvalidQuantity
	}
	items, err := s.repo.Update(ctx, cartID, func(items []models.CartItem) ([]models.CartItem, error) {
		return UpdateQuantity(items, key, quantity), nil
	})
	if err != nil {
		log.WithError(err).WithField("cart_id", cartID).Error("cart update quantity failed")
		return nil, err
	}
	return Summarize(cartID, items), nil
}

func (s *CartService) ClearCart(ctx context.Context, cartID string) error {
	if err := s.repo.Delete(ctx, cartID); err != nil {
		log.WithError(err).WithField("cart_id", cartID).Error("cart clear failed")
		return err
	}
	return nil
}

func (s *CartService) snapshot(ctx context.Context, req models.AddCartItemRequest, locale string) (models.CartItem, error) {
	item := models.CartItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
		Image:     req.Image,
	}

	if s.products == nil {
		if item.Name == "" || item.Price < 0 {
			return models.CartItem{}, ErrInvalidItem
		}
		return item, nil
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.CartItem{}, ErrProductNotFound
	}
	if err != nil {
		return models.CartItem{}, fmt.Errorf("product lookup failed: %w", err)
	}
	if !product.IsActive {
		return models.CartItem{}, ErrProductUnavailable
	}
	if !optionAllowed(product.Sizes, req.Size) || !optionAllowed(product.Colors, req.Color) {
		return models.CartItem{}, fmt.Errorf("%w: unknown size or color", ErrInvalidItem)
	}

	item.Name = product.Name(locale)
	item.Price = product.Price
	item.Image = product.ImageURL
	item.WeightKg = product.WeightKg
	return item, nil
}

func optionAllowed(options []string, chosen string) bool {
	if len(options) == 0 || chosen == "" {
		return true
	}
	for _, o := range options {
		if o == chosen {
			return true
		}
	}
	return false
}

// AddItem merges item into an existing line with the same key or appends it.
// A merged quantity above MaxLineQuantity is rejected.
func AddItem(items []models.CartItem, item models.CartItem) ([]models.CartItem, error) {
	if item.Quantity < 1 || item.Quantity > models.MaxLineQuantity {
		return nil, ErrInvalidQuantity
	}
	key := item.Key()
	for i := range items {
		if items[i].Key() == key {
			if items[i].Quantity > models.MaxLineQuantity-item.Quantity {
				return nil, fmt.Errorf("%w: line quantity limited to %d", ErrInvalidQuantity, models.MaxLineQuantity)
			}
			items[i].Quantity += item.Quantity
			return items, nil
		}
	}
	return append(items, item), nil
}

func RemoveItem(items []models.CartItem, key models.CartItemKey) []models.CartItem {
	out := items[:0]
	for _, it := range items {
		if it.Key() != key {
			out = append(out, it)
		}
	}
	return out
}

// UpdateQuantity overwrites the quantity of the line for key, removing it
// when quantity drops to zero or below.
func UpdateQuantity(items []models.CartItem, key models.CartItemKey, quantity int) []models.CartItem {
	if quantity <= 0 {
		return RemoveItem(items, key)
	}
	for i := range items {
		if items[i].Key() == key {
			items[i].Quantity = quantity
		}
	}
	return items
}

// Summarize recomputes the item count and total price.
func Summarize(cartID string, items []models.CartItem) *models.Cart {
	if items == nil {
		items = []models.CartItem{}
	}
	count := 0
	total := decimal.Zero
	for _, it := range items {
		count += it.Quantity
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return &models.Cart{
		ID:         cartID,
		Items:      items,
		ItemCount:  count,
		TotalPrice: utils.Round2(total),
	}
}
