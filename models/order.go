package models

import "time"

const (
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
)

type Order struct {
	ID               int       `json:"id"`
	StripeSessionID  string    `json:"stripe_session_id"`
	PaymentIntentID  *string   `json:"payment_intent_id,omitempty"`
	CustomerEmail    string    `json:"customer_email"`
	CustomerName     string    `json:"customer_name"`
	AmountTotal      float64   `json:"amount_total"`
	Currency         string    `json:"currency"`
	Locale           string    `json:"locale"`
	Status           string    `json:"status"`
	ShippingProvider *string   `json:"shipping_provider,omitempty"`
	TrackingNumber   *string   `json:"tracking_number,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type AssignTrackingRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
	Provider       string `json:"provider" binding:"required"`
}
