package services

import (
	"context"
	"strings"
	"sync"

	"fashion-store/models"
	"fashion-store/repositories"
)

type fakeProducts struct {
	products map[int]*models.Product
	err      error
	calls    int
}

func (f *fakeProducts) GetByID(_ context.Context, id int) (*models.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeGateway struct {
	params   models.CheckoutSessionParams
	session  *models.CheckoutSession
	intent   *models.PaymentIntent
	err      error
	amount   int64
	currency string
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, params models.CheckoutSessionParams) (*models.CheckoutSession, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeGateway) GetCheckoutSession(_ context.Context, _ string) (*models.CheckoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeGateway) CreatePaymentIntent(_ context.Context, amount int64, currency, _ string) (*models.PaymentIntent, error) {
	f.amount, f.currency = amount, currency
	if f.err != nil {
		return nil, f.err
	}
	return f.intent, nil
}

type fakeOrderRecorder struct {
	mu     sync.Mutex
	orders map[string]*models.Order
	err    error
}

func newFakeOrderRecorder() *fakeOrderRecorder {
	return &fakeOrderRecorder{orders: map[string]*models.Order{}}
}

func (f *fakeOrderRecorder) CreateFromSession(_ context.Context, o *models.Order) (*models.Order, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, false, f.err
	}
	if existing, ok := f.orders[o.StripeSessionID]; ok {
		return existing, false, nil
	}
	cp := *o
	cp.ID = len(f.orders) + 1
	f.orders[o.StripeSessionID] = &cp
	return &cp, true, nil
}

type fakePublisher struct {
	keys   []string
	events []interface{}
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, key string, payload interface{}) error {
	f.keys = append(f.keys, key)
	f.events = append(f.events, payload)
	return f.err
}

type fakeNotifier struct {
	sent []*models.Order
	err  error
}

func (f *fakeNotifier) SendOrderConfirmation(order *models.Order) error {
	f.sent = append(f.sent, order)
	return f.err
}

type fakeShippingStore struct {
	providers map[int]*models.ShippingProvider
	events    map[string][]models.TrackingEvent
	eventsErr error
	created   []*models.ShippingProvider
	listCalls int
}

func (f *fakeShippingStore) ListActiveProviders(_ context.Context) ([]models.ShippingProvider, error) {
	f.listCalls++
	out := []models.ShippingProvider{}
	for _, p := range f.providers {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeShippingStore) GetProviderByID(_ context.Context, id int) (*models.ShippingProvider, error) {
	p, ok := f.providers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return p, nil
}

func (f *fakeShippingStore) GetProviderByName(_ context.Context, name string) (*models.ShippingProvider, error) {
	for _, p := range f.providers {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeShippingStore) CreateProvider(_ context.Context, p *models.ShippingProvider) error {
	p.ID = len(f.providers) + 1
	p.IsActive = true
	f.providers[p.ID] = p
	f.created = append(f.created, p)
	return nil
}

func (f *fakeShippingStore) GetEvents(_ context.Context, trackingNumber string) ([]models.TrackingEvent, error) {
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	return append([]models.TrackingEvent{}, f.events[trackingNumber]...), nil
}

func (f *fakeShippingStore) AddEvent(_ context.Context, trackingNumber string, e models.TrackingEvent) error {
	f.events[trackingNumber] = append(f.events[trackingNumber], e)
	return nil
}

type fakeOrderFinder struct {
	orders map[string]*models.Order
	err    error
}

func (f *fakeOrderFinder) GetByTrackingNumber(_ context.Context, trackingNumber string) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	o, ok := f.orders[trackingNumber]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return o, nil
}

func strPtr(s string) *string { return &s }

func testProviders() *fakeShippingStore {
	return &fakeShippingStore{
		providers: map[int]*models.ShippingProvider{
			1: {ID: 1, Name: "aramex", BaseCost: 25, CostPerKg: 5, EstimatedDays: 3, IsActive: true},
			2: {ID: 2, Name: "legacy", BaseCost: 10, CostPerKg: 1, EstimatedDays: 9, IsActive: false},
		},
		events: map[string][]models.TrackingEvent{},
	}
}
