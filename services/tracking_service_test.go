package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fashion-store/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trackingFixture() (*fakeOrderFinder, *fakeShippingStore) {
	orders := &fakeOrderFinder{orders: map[string]*models.Order{
		"TRK1": {ID: 10, Status: models.OrderStatusShipped, ShippingProvider: strPtr("aramex"), TrackingNumber: strPtr("TRK1")},
		"TRK2": {ID: 11, Status: models.OrderStatusShipped, ShippingProvider: strPtr("ghost"), TrackingNumber: strPtr("TRK2")},
	}}
	store := testProviders()
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	store.events["TRK1"] = []models.TrackingEvent{
		{Timestamp: base, Status: "picked_up", Location: "Riyadh"},
		{Timestamp: base.Add(20 * time.Hour), Status: "out_for_delivery", Location: "Jeddah"},
	}
	return orders, store
}

func TestLookup(t *testing.T) {
	orders, store := trackingFixture()
	svc := NewTrackingService(orders, store)

	record, err := svc.Lookup(context.Background(), " TRK1 ")
	require.NoError(t, err)
	assert.Equal(t, "TRK1", record.TrackingNumber)
	assert.Equal(t, 10, record.OrderID)
	assert.Equal(t, "out_for_delivery", record.Status)
	require.NotNil(t, record.Provider)
	assert.Equal(t, "aramex", record.Provider.Name)
	assert.Len(t, record.Events, 2)
}

func TestLookup_StatusFallsBackToOrder(t *testing.T) {
	orders, store := trackingFixture()
	delete(store.events, "TRK1")
	svc := NewTrackingService(orders, store)

	record, err := svc.Lookup(context.Background(), "TRK1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, record.Status)
	assert.Empty(t, record.Events)
}

func TestLookup_NeverReturnsPartialRecord(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		mutate  func(*fakeOrderFinder, *fakeShippingStore)
		wantErr error
	}{
		{"missing number", "", nil, ErrTrackingRequired},
		{"unknown number", "NOPE", nil, ErrTrackingNotFound},
		{"unknown provider", "TRK2", nil, ErrTrackingNotFound},
		{"order lookup fails", "TRK1", func(o *fakeOrderFinder, _ *fakeShippingStore) { o.err = errors.New("db down") }, nil},
		{"events lookup fails", "TRK1", func(_ *fakeOrderFinder, s *fakeShippingStore) { s.eventsErr = errors.New("db down") }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, store := trackingFixture()
			if tt.mutate != nil {
				tt.mutate(orders, store)
			}
			record, err := NewTrackingService(orders, store).Lookup(context.Background(), tt.number)

			assert.Nil(t, record)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NotErrorIs(t, err, ErrTrackingNotFound)
			}
		})
	}
}

func TestAddEvent(t *testing.T) {
	orders, store := trackingFixture()
	svc := NewTrackingService(orders, store)
	fixed := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	event, err := svc.AddEvent(ctx, models.CreateTrackingEventRequest{TrackingNumber: "TRK1", Status: "delivered", Location: "Jeddah"})
	require.NoError(t, err)
	assert.Equal(t, fixed, event.Timestamp)

	record, err := svc.Lookup(ctx, "TRK1")
	require.NoError(t, err)
	assert.Equal(t, "delivered", record.Status)

	_, err = svc.AddEvent(ctx, models.CreateTrackingEventRequest{TrackingNumber: "NOPE", Status: "delivered"})
	assert.ErrorIs(t, err, ErrTrackingNotFound)

	_, err = svc.AddEvent(ctx, models.CreateTrackingEventRequest{TrackingNumber: "TRK1", Status: " "})
	assert.ErrorIs(t, err, ErrInvalidShipping)
}
