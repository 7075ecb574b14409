package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fashion-store/models"
	"fashion-store/repositories"

	log "github.com/sirupsen/logrus"
)

type OrderFinder interface {
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*models.Order, error)
}

type TrackingStore interface {
	GetEvents(ctx context.Context, trackingNumber string) ([]models.TrackingEvent, error)
	GetProviderByName(ctx context.Context, name string) (*models.ShippingProvider, error)
	AddEvent(ctx context.Context, trackingNumber string, e models.TrackingEvent) error
}

type TrackingService struct {
	orders OrderFinder
	store  TrackingStore
	now    func() time.Time
}

func NewTrackingService(orders OrderFinder, store TrackingStore) *TrackingService {
	return &TrackingService{orders: orders, store: store, now: time.Now}
}

// Lookup composes order, events and provider into one record. Any failed
// lookup returns an error and no record.
func (s *TrackingService) Lookup(ctx context.Context, trackingNumber string) (*models.TrackingRecord, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, ErrTrackingRequired
	}
	logger := log.WithField("tracking_number", trackingNumber)

	order, err := s.orders.GetByTrackingNumber(ctx, trackingNumber)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrTrackingNotFound
	}
	if err != nil {
		logger.WithError(err).Error("order lookup failed")
		return nil, fmt.Errorf("order lookup: %w", err)
	}

	events, err := s.store.GetEvents(ctx, trackingNumber)
	if err != nil {
		logger.WithError(err).Error("tracking events lookup failed")
		return nil, fmt.Errorf("events lookup: %w", err)
	}

	if order.ShippingProvider == nil || *order.ShippingProvider == "" {
		return nil, ErrTrackingNotFound
	}
	provider, err := s.store.GetProviderByName(ctx, *order.ShippingProvider)
	if errors.Is(err, repositories.ErrNotFound) {
		logger.WithField("provider", *order.ShippingProvider).Warn("order references unknown provider")
		return nil, ErrTrackingNotFound
	}
	if err != nil {
		logger.WithError(err).Error("provider lookup failed")
		return nil, fmt.Errorf("provider lookup: %w", err)
	}

	status := order.Status
	if len(events) > 0 {
		status = events[len(events)-1].Status
	}

	return &models.TrackingRecord{
		TrackingNumber: trackingNumber,
		OrderID:        order.ID,
		Status:         status,
		Provider:       provider,
		Events:         events,
	}, nil
}

// AddEvent appends a shipment event for a known tracking number.
func (s *TrackingService) AddEvent(ctx context.Context, req models.CreateTrackingEventRequest) (*models.TrackingEvent, error) {
	trackingNumber := strings.TrimSpace(req.TrackingNumber)
	if trackingNumber == "" {
		return nil, ErrTrackingRequired
	}
	if _, err := s.orders.GetByTrackingNumber(ctx, trackingNumber); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTrackingNotFound
		}
		return nil, err
	}

	event := models.TrackingEvent{
		Timestamp:   s.now().UTC(),
		Status:      strings.TrimSpace(req.Status),
		Location:    req.Location,
		Description: req.Description,
	}
	if req.Timestamp != nil {
		event.Timestamp = req.Timestamp.UTC()
	}
	if event.Status == "" {
		return nil, fmt.Errorf("%w: status is required", ErrInvalidShipping)
	}

	if err := s.store.AddEvent(ctx, trackingNumber, event); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"tracking_number": trackingNumber, "status": event.Status}).Info("tracking event recorded")
	return &event, nil
}
