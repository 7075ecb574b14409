package models

import "encoding/json"

const (
	PaymentMethodCard = "card"
	PaymentMethodLink = "link"

	ShippingTierStandard = "standard"
	ShippingTierExpress  = "express"
)

// CheckoutLineItem carries the unit price in minor currency units.
type CheckoutLineItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	UnitAmount  int64  `json:"unit_amount"`
	Quantity    int    `json:"quantity"`
	ProductID   int    `json:"product_id"`
}

type ShippingOption struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Amount      int64  `json:"amount"`
	MinDays     int    `json:"min_days"`
	MaxDays     int    `json:"max_days"`
}

// CheckoutSessionParams is the request submitted to the payment processor.
type CheckoutSessionParams struct {
	LineItems          []CheckoutLineItem
	ShippingOptions    []ShippingOption
	PaymentMethodTypes []string
	AllowedCountries   []string
	Currency           string
	Locale             string
	SuccessURL         string
	CancelURL          string
	CustomerEmail      string
	Metadata           map[string]string
}

type CustomerDetails struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CheckoutSession mirrors the fields of a hosted checkout session that the
// store reads back.
type CheckoutSession struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	Status          string            `json:"status"`
	PaymentStatus   string            `json:"payment_status"`
	AmountTotal     int64             `json:"amount_total"`
	Currency        string            `json:"currency"`
	Locale          string            `json:"locale"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerDetails *CustomerDetails  `json:"customer_details"`
	PaymentIntent   string            `json:"payment_intent"`
	Metadata        map[string]string `json:"metadata"`
}

func (s CheckoutSession) Email() string {
	if s.CustomerDetails != nil && s.CustomerDetails.Email != "" {
		return s.CustomerDetails.Email
	}
	return s.CustomerEmail
}

type CreateCheckoutSessionRequest struct {
	Items         []CartItem `json:"items" binding:"required"`
	PaymentMethod string     `json:"payment_method"`
	Locale        string     `json:"locale"`
	Email         string     `json:"email" binding:"omitempty,email"`
}

type CheckoutSessionResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type CheckoutSessionStatus struct {
	ID            string  `json:"id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	AmountTotal   float64 `json:"amount_total"`
	Currency      string  `json:"currency"`
	CustomerEmail string  `json:"customer_email,omitempty"`
}

type PaymentIntentRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency"`
	Email    string  `json:"email" binding:"omitempty,email"`
}

type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

type WebhookEvent struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}
