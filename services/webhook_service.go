package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fashion-store/metrics"
	"fashion-store/models"
	"fashion-store/utils"

	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	EventCheckoutCompleted     = string(stripe.EventTypeCheckoutSessionCompleted)
	EventAsyncPaymentSucceeded = string(stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded)
)

type OrderRecorder interface {
	CreateFromSession(ctx context.Context, order *models.Order) (*models.Order, bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, payload interface{}) error
}

type OrderNotifier interface {
	SendOrderConfirmation(order *models.Order) error
}

// OrderPaidEvent is published once per recorded order.
type OrderPaidEvent struct {
	Event           string    `json:"event"`
	OrderID         int       `json:"order_id"`
	StripeSessionID string    `json:"stripe_session_id"`
	AmountTotal     float64   `json:"amount_total"`
	Currency        string    `json:"currency"`
	CustomerEmail   string    `json:"customer_email"`
	Locale          string    `json:"locale"`
	Timestamp       time.Time `json:"timestamp"`
}

type WebhookService struct {
	secret    string
	tolerance time.Duration
	orders    OrderRecorder
	publisher EventPublisher
	notifier  OrderNotifier
	now       func() time.Time
}

// NewWebhookService takes optional publisher and notifier; nil disables that
// side effect.
func NewWebhookService(secret string, orders OrderRecorder, publisher EventPublisher, notifier OrderNotifier) *WebhookService {
	return &WebhookService{
		secret:    secret,
		tolerance: webhook.DefaultTolerance,
		orders:    orders,
		publisher: publisher,
		notifier:  notifier,
		now:       time.Now,
	}
}

// HandleEvent verifies the signature before the payload is parsed at all.
// A missing signing secret is a server fault, not a bad request.
func (s *WebhookService) HandleEvent(ctx context.Context, payload []byte, signature string) (*models.WebhookEvent, error) {
	if s.secret == "" {
		metrics.WebhookEventsTotal.WithLabelValues("unknown", "failed").Inc()
		log.Error("webhook received but STRIPE_WEBHOOK_SECRET is not configured")
		return nil, ErrWebhookNotConfigured
	}
	if err := webhook.ValidatePayloadWithTolerance(payload, signature, s.secret, s.tolerance); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("unknown", "rejected").Inc()
		log.WithError(err).Warn("webhook signature rejected")
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	var event models.WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil || event.Type == "" {
		metrics.WebhookEventsTotal.WithLabelValues("unknown", "invalid").Inc()
		return nil, ErrInvalidPayload
	}

	switch event.Type {
	case EventCheckoutCompleted, EventAsyncPaymentSucceeded:
		if err := s.handleCheckoutCompleted(ctx, &event); err != nil {
			metrics.WebhookEventsTotal.WithLabelValues(event.Type, "failed").Inc()
			return nil, err
		}
		metrics.WebhookEventsTotal.WithLabelValues(event.Type, "handled").Inc()
	default:
		metrics.WebhookEventsTotal.WithLabelValues(event.Type, "ignored").Inc()
		log.WithFields(log.Fields{"event_id": event.ID, "type": event.Type}).Debug("webhook event ignored")
	}
	return &event, nil
}

func (s *WebhookService) handleCheckoutCompleted(ctx context.Context, event *models.WebhookEvent) error {
	var session models.CheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil || session.ID == "" {
		return ErrInvalidPayload
	}

	logger := log.WithFields(log.Fields{
		"event_id":       event.ID,
		"session_id":     session.ID,
		"payment_status": session.PaymentStatus,
	})

	// Delayed payment methods complete the session before funds arrive; the
	// async_payment_succeeded event follows.
	if session.PaymentStatus == "unpaid" {
		logger.Info("checkout completed with payment pending")
		return nil
	}

	locale := session.Metadata["locale"]
	if !utils.IsSupportedLocale(locale) {
		locale = utils.LocaleArabic
	}

	order := &models.Order{
		StripeSessionID: session.ID,
		CustomerEmail:   session.Email(),
		AmountTotal:     utils.FromMinorUnits(session.AmountTotal, session.Currency),
		Currency:        session.Currency,
		Locale:          locale,
		Status:          models.OrderStatusPaid,
	}
	if session.CustomerDetails != nil {
		order.CustomerName = session.CustomerDetails.Name
	}
	if session.PaymentIntent != "" {
		pi := session.PaymentIntent
		order.PaymentIntentID = &pi
	}

	if s.orders == nil {
		logger.Info("payment completed, order persistence disabled")
		return nil
	}

	recorded, created, err := s.orders.CreateFromSession(ctx, order)
	if err != nil {
		logger.WithError(err).Error("failed to record order")
		return fmt.Errorf("record order: %w", err)
	}
	if !created {
		logger.WithField("order_id", recorded.ID).Info("duplicate delivery, order already recorded")
		return nil
	}

	metrics.OrdersTotal.WithLabelValues(recorded.Currency).Inc()
	logger.WithField("order_id", recorded.ID).Info("order recorded")

	if s.publisher != nil {
		paid := OrderPaidEvent{
			Event:           "order.paid",
			OrderID:         recorded.ID,
			StripeSessionID: recorded.StripeSessionID,
			AmountTotal:     recorded.AmountTotal,
			Currency:        recorded.Currency,
			CustomerEmail:   recorded.CustomerEmail,
			Locale:          recorded.Locale,
			Timestamp:       s.now(),
		}
		if err := s.publisher.Publish(ctx, recorded.StripeSessionID, paid); err != nil {
			logger.WithError(err).Error("failed to publish order.paid")
		}
	}

	if s.notifier != nil && recorded.CustomerEmail != "" {
		if err := s.notifier.SendOrderConfirmation(recorded); err != nil {
			logger.WithError(err).Error("failed to send order confirmation")
		}
	}
	return nil
}
