package services

import (
	"context"
	"errors"
	"strings"

	"fashion-store/models"
	"fashion-store/repositories"
)

type OrderStore interface {
	List(ctx context.Context, page, limit int, status string) ([]models.Order, int, error)
	AssignTracking(ctx context.Context, id int, trackingNumber, provider string) (*models.Order, error)
}

type ProviderFinder interface {
	GetProviderByName(ctx context.Context, name string) (*models.ShippingProvider, error)
}

type OrderService struct {
	orders    OrderStore
	providers ProviderFinder
}

func NewOrderService(orders OrderStore, providers ProviderFinder) *OrderService {
	return &OrderService{orders: orders, providers: providers}
}

func (s *OrderService) List(ctx context.Context, page, limit int, status string) ([]models.Order, models.PaginationMeta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	orders, total, err := s.orders.List(ctx, page, limit, strings.ToLower(status))
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}
	return orders, paginate(page, limit, total), nil
}

// AssignTracking marks the order shipped with the given tracking number. The
// provider must exist so the tracking lookup can resolve it later.
func (s *OrderService) AssignTracking(ctx context.Context, orderID int, req models.AssignTrackingRequest) (*models.Order, error) {
	provider, err := s.providers.GetProviderByName(ctx, strings.TrimSpace(req.Provider))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, err
	}

	order, err := s.orders.AssignTracking(ctx, orderID, strings.TrimSpace(req.TrackingNumber), provider.Name)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

func paginate(page, limit, total int) models.PaginationMeta {
	return models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: (total + limit - 1) / limit,
	}
}
