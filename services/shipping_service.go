package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fashion-store/models"
	"fashion-store/repositories"
	"fashion-store/utils"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const providersCacheKey = "shipping_providers_active"

type ProviderStore interface {
	ListActiveProviders(ctx context.Context) ([]models.ShippingProvider, error)
	GetProviderByID(ctx context.Context, id int) (*models.ShippingProvider, error)
	CreateProvider(ctx context.Context, p *models.ShippingProvider) error
}

// regionMultipliers is keyed by normalized city name in English and Arabic.
var regionMultipliers = map[string]float64{
	"riyadh": 1.0, "الرياض": 1.0,
	"jeddah": 1.1, "jiddah": 1.1, "جدة": 1.1,
	"dammam": 1.1, "الدمام": 1.1,
	"khobar": 1.1, "al khobar": 1.1, "الخبر": 1.1,
	"dhahran": 1.1, "الظهران": 1.1,
	"mecca": 1.15, "makkah": 1.15, "مكة": 1.15, "مكة المكرمة": 1.15,
	"medina": 1.15, "madinah": 1.15, "المدينة": 1.15, "المدينة المنورة": 1.15,
	"taif": 1.2, "الطائف": 1.2,
	"buraidah": 1.2, "بريدة": 1.2,
	"hail": 1.25, "حائل": 1.25,
	"tabuk": 1.3, "تبوك": 1.3,
	"abha": 1.3, "أبها": 1.3,
	"jazan": 1.35, "jizan": 1.35, "جازان": 1.35,
	"najran": 1.35, "نجران": 1.35,
	"dubai": 1.5, "دبي": 1.5,
	"abu dhabi": 1.5, "أبوظبي": 1.5, "أبو ظبي": 1.5,
	"kuwait city": 1.6, "الكويت": 1.6,
	"manama": 1.6, "المنامة": 1.6,
	"doha": 1.6, "الدوحة": 1.6,
	"muscat": 1.7, "مسقط": 1.7,
}

// RegionMultiplier looks city up case- and whitespace-insensitively and
// defaults to 1.0.
func RegionMultiplier(city string) float64 {
	key := strings.ToLower(strings.Join(strings.Fields(city), " "))
	if m, ok := regionMultipliers[key]; ok {
		return m
	}
	return 1.0
}

// ShippingCost is (base + weight × perKg) × multiplier rounded to 2 decimals.
func ShippingCost(baseCost, costPerKg, totalWeightKg, multiplier float64) float64 {
	cost := decimal.NewFromFloat(baseCost).
		Add(decimal.NewFromFloat(totalWeightKg).Mul(decimal.NewFromFloat(costPerKg))).
		Mul(decimal.NewFromFloat(multiplier))
	return utils.Round2(cost)
}

type ShippingService struct {
	providers ProviderStore
	products  ProductLookup
	cache     *jsonCache
	now       func() time.Time
}

// NewShippingService accepts a nil Redis client and a nil products lookup.
func NewShippingService(providers ProviderStore, products ProductLookup, redisClient *redis.Client) *ShippingService {
	return &ShippingService{
		providers: providers,
		products:  products,
		cache:     newJSONCache(redisClient, 10*time.Minute),
		now:       time.Now,
	}
}

func (s *ShippingService) ListProviders(ctx context.Context) ([]models.ShippingProvider, error) {
	var cached []models.ShippingProvider
	if s.cache.get(ctx, providersCacheKey, &cached) {
		return cached, nil
	}

	providers, err := s.providers.ListActiveProviders(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, providersCacheKey, providers)
	return providers, nil
}

func (s *ShippingService) Quote(ctx context.Context, req models.ShippingQuoteRequest) (*models.ShippingQuote, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: no items", ErrInvalidShipping)
	}

	provider, err := s.providers.GetProviderByID(ctx, req.ProviderID)
	if errors.Is(err, repositories.ErrNotFound) || (err == nil && !provider.IsActive) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, err
	}

	totalWeight, err := s.totalWeight(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	multiplier := RegionMultiplier(req.Address.City)

	return &models.ShippingQuote{
		ProviderID:            provider.ID,
		ProviderName:          provider.Name,
		BaseCost:              provider.BaseCost,
		CostPerKg:             provider.CostPerKg,
		TotalWeightKg:         totalWeight,
		RegionMultiplier:      multiplier,
		ComputedCost:          ShippingCost(provider.BaseCost, provider.CostPerKg, totalWeight, multiplier),
		EstimatedDeliveryDate: s.now().AddDate(0, 0, provider.EstimatedDays),
	}, nil
}

// totalWeight sums weight × quantity. Items without a weight take the catalog
// weight of their product when one is known.
func (s *ShippingService) totalWeight(ctx context.Context, items []models.ShippingItem) (float64, error) {
	total := decimal.Zero
	for _, item := range items {
		weight := item.WeightKg
		if weight == 0 && item.ProductID > 0 && s.products != nil {
			product, err := s.products.GetByID(ctx, item.ProductID)
			switch {
			case err == nil:
				weight = product.WeightKg
			case !errors.Is(err, repositories.ErrNotFound):
				return 0, fmt.Errorf("product lookup failed: %w", err)
			}
		}
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		total = total.Add(decimal.NewFromFloat(weight).Mul(decimal.NewFromInt(int64(qty))))
	}
	return total.Round(3).InexactFloat64(), nil
}

func (s *ShippingService) CreateProvider(ctx context.Context, req models.CreateProviderRequest) (*models.ShippingProvider, error) {
	p := &models.ShippingProvider{
		Name:          strings.ToLower(strings.TrimSpace(req.Name)),
		BaseCost:      req.BaseCost,
		CostPerKg:     req.CostPerKg,
		EstimatedDays: req.EstimatedDays,
		TrackingURL:   req.TrackingURL,
	}
	if p.Name == "" {
		return nil, fmt.Errorf("%w: provider name is required", ErrInvalidShipping)
	}
	if err := s.providers.CreateProvider(ctx, p); err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, providersCacheKey)
	return p, nil
}
