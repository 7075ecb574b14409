package models

import "time"

type ShippingProvider struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	BaseCost      float64   `json:"base_cost"`
	CostPerKg     float64   `json:"cost_per_kg"`
	EstimatedDays int       `json:"estimated_days"`
	TrackingURL   string    `json:"tracking_url,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type Address struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type ShippingItem struct {
	ProductID int     `json:"product_id"`
	WeightKg  float64 `json:"weight_kg"`
	Quantity  int     `json:"quantity"`
}

type ShippingQuoteRequest struct {
	ProviderID int            `json:"provider_id" binding:"required"`
	Address    Address        `json:"address" binding:"required"`
	Items      []ShippingItem `json:"items" binding:"required"`
}

type ShippingQuote struct {
	ProviderID            int       `json:"provider_id"`
	ProviderName          string    `json:"provider_name"`
	BaseCost              float64   `json:"base_cost"`
	CostPerKg             float64   `json:"cost_per_kg"`
	TotalWeightKg         float64   `json:"total_weight_kg"`
	RegionMultiplier      float64   `json:"region_multiplier"`
	ComputedCost          float64   `json:"computed_cost"`
	EstimatedDeliveryDate time.Time `json:"estimated_delivery_date"`
}

type CreateProviderRequest struct {
	Name          string  `json:"name" binding:"required"`
	BaseCost      float64 `json:"base_cost" binding:"gte=0"`
	CostPerKg     float64 `json:"cost_per_kg" binding:"gte=0"`
	EstimatedDays int     `json:"estimated_days" binding:"gte=0"`
	TrackingURL   string  `json:"tracking_url"`
}
