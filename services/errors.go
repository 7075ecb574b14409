package services

import "errors"

var (
	ErrInvalidQuantity      = errors.New("quantity must be between 1 and 999")
	ErrInvalidItem          = errors.New("invalid line item")
	ErrProductNotFound      = errors.New("product not found")
	ErrProductUnavailable   = errors.New("product is not available")
	ErrEmptyCheckout        = errors.New("no items to check out")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrCheckoutFailed       = errors.New("failed to create checkout session")
	ErrSessionNotFound      = errors.New("checkout session not found")
	ErrPaymentFailed        = errors.New("failed to create payment intent")
	ErrInvalidSignature     = errors.New("invalid webhook signature")
	ErrInvalidPayload       = errors.New("invalid webhook payload")
	ErrWebhookNotConfigured = errors.New("webhook signing secret not configured")
	ErrProviderNotFound     = errors.New("shipping provider not found")
	ErrInvalidShipping      = errors.New("invalid shipping request")
	ErrTrackingRequired     = errors.New("tracking number is required")
	ErrTrackingNotFound     = errors.New("tracking number not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)
