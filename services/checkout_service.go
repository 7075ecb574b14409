package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fashion-store/libs"
	"fashion-store/metrics"
	"fashion-store/models"
	"fashion-store/repositories"
	"fashion-store/utils"

	log "github.com/sirupsen/logrus"
)

// PaymentGateway is the hosted payment processor.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params models.CheckoutSessionParams) (*models.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*models.CheckoutSession, error)
	CreatePaymentIntent(ctx context.Context, amount int64, currency, email string) (*models.PaymentIntent, error)
}

type CheckoutConfig struct {
	SiteURL               string
	Currency              string
	DefaultLocale         string
	AllowedCountries      []string
	ExpressShippingAmount float64
}

var allowedPaymentMethods = map[string]bool{
	models.PaymentMethodCard: true,
	models.PaymentMethodLink: true,
}

type CheckoutService struct {
	gateway  PaymentGateway
	products ProductLookup
	cfg      CheckoutConfig
}

// NewCheckoutService reprices line items from products when it is not nil.
func NewCheckoutService(gateway PaymentGateway, products ProductLookup, cfg CheckoutConfig) *CheckoutService {
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = utils.LocaleArabic
	}
	return &CheckoutService{gateway: gateway, products: products, cfg: cfg}
}

func (s *CheckoutService) CreateSession(ctx context.Context, req models.CreateCheckoutSessionRequest) (*models.CheckoutSessionResponse, error) {
	params, err := s.BuildSessionParams(ctx, req)
	if err != nil {
		metrics.CheckoutSessionsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, params)
	if err != nil {
		metrics.CheckoutSessionsTotal.WithLabelValues("failed").Inc()
		log.WithError(err).Error("checkout session creation failed")
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}

	metrics.CheckoutSessionsTotal.WithLabelValues("created").Inc()
	log.WithFields(log.Fields{
		"session_id": session.ID,
		"items":      len(params.LineItems),
		"locale":     params.Locale,
	}).Info("Checkout session created")

	return &models.CheckoutSessionResponse{SessionID: session.ID, URL: session.URL}, nil
}

// BuildSessionParams turns cart lines into a processor request with minor
// unit prices, the fixed shipping tiers and locale-aware redirect URLs.
func (s *CheckoutService) BuildSessionParams(ctx context.Context, req models.CreateCheckoutSessionRequest) (models.CheckoutSessionParams, error) {
	if len(req.Items) == 0 {
		return models.CheckoutSessionParams{}, ErrEmptyCheckout
	}

	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if method == "" {
		method = models.PaymentMethodCard
	}
	if !allowedPaymentMethods[method] {
		return models.CheckoutSessionParams{}, ErrInvalidPaymentMethod
	}

	locale := req.Locale
	if !utils.IsSupportedLocale(locale) {
		locale = s.cfg.DefaultLocale
	}

	lineItems := make([]models.CheckoutLineItem, 0, len(req.Items))
	itemCount := 0
	for _, item := range req.Items {
		line, err := s.lineItem(ctx, item, locale)
		if err != nil {
			return models.CheckoutSessionParams{}, err
		}
		itemCount += line.Quantity
		lineItems = append(lineItems, line)
	}

	return models.CheckoutSessionParams{
		LineItems:          lineItems,
		ShippingOptions:    s.ShippingOptions(locale),
		PaymentMethodTypes: []string{method},
		AllowedCountries:   s.cfg.AllowedCountries,
		Currency:           s.cfg.Currency,
		Locale:             locale,
		SuccessURL:         fmt.Sprintf("%s/%s/checkout/success?session_id={CHECKOUT_SESSION_ID}", s.cfg.SiteURL, locale),
		CancelURL:          fmt.Sprintf("%s/%s/checkout", s.cfg.SiteURL, locale),
		CustomerEmail:      req.Email,
		Metadata: map[string]string{
			"locale":     locale,
			"item_count": strconv.Itoa(itemCount),
		},
	}, nil
}

func (s *CheckoutService) lineItem(ctx context.Context, item models.CartItem, locale string) (models.CheckoutLineItem, error) {
	if item.Quantity < 1 {
		return models.CheckoutLineItem{}, ErrInvalidQuantity
	}

	name, price, image := item.Name, item.Price, item.Image
	if s.products != nil {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if errors.Is(err, repositories.ErrNotFound) {
			return models.CheckoutLineItem{}, fmt.Errorf("%w: product %d", ErrProductNotFound, item.ProductID)
		}
		if err != nil {
			return models.CheckoutLineItem{}, fmt.Errorf("product lookup failed: %w", err)
		}
		if !product.IsActive {
			return models.CheckoutLineItem{}, ErrProductUnavailable
		}
		name, price = product.Name(locale), product.Price
		if product.ImageURL != "" {
			image = product.ImageURL
		}
	}

	if name == "" || price < 0 {
		return models.CheckoutLineItem{}, ErrInvalidItem
	}

	return models.CheckoutLineItem{
		ProductID:   item.ProductID,
		Name:        name,
		Description: variantDescription(item, locale),
		Image:       image,
		UnitAmount:  utils.ToMinorUnits(price, s.cfg.Currency),
		Quantity:    item.Quantity,
	}, nil
}

func variantDescription(item models.CartItem, locale string) string {
	sizeLabel, colorLabel := "المقاس", "اللون"
	if locale == utils.LocaleEnglish {
		sizeLabel, colorLabel = "Size", "Color"
	}
	parts := []string{}
	if item.Size != "" {
		parts = append(parts, sizeLabel+": "+item.Size)
	}
	if item.Color != "" {
		parts = append(parts, colorLabel+": "+item.Color)
	}
	return strings.Join(parts, " / ")
}

// ShippingOptions returns the fixed tiers: free standard and paid express.
func (s *CheckoutService) ShippingOptions(locale string) []models.ShippingOption {
	standard, express := "شحن عادي", "شحن سريع"
	if locale == utils.LocaleEnglish {
		standard, express = "Standard shipping", "Express shipping"
	}
	return []models.ShippingOption{
		{ID: models.ShippingTierStandard, DisplayName: standard, Amount: 0, MinDays: 3, MaxDays: 7},
		{
			ID:          models.ShippingTierExpress,
			DisplayName: express,
			Amount:      utils.ToMinorUnits(s.cfg.ExpressShippingAmount, s.cfg.Currency),
			MinDays:     1,
			MaxDays:     3,
		},
	}
}

func (s *CheckoutService) GetSessionStatus(ctx context.Context, sessionID string) (*models.CheckoutSessionStatus, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		var apiErr *libs.StripeError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return nil, ErrSessionNotFound
		}
		log.WithError(err).WithField("session_id", sessionID).Error("checkout session lookup failed")
		return nil, err
	}

	return &models.CheckoutSessionStatus{
		ID:            session.ID,
		Status:        session.Status,
		PaymentStatus: session.PaymentStatus,
		AmountTotal:   utils.FromMinorUnits(session.AmountTotal, session.Currency),
		Currency:      session.Currency,
		CustomerEmail: session.Email(),
	}, nil
}

func (s *CheckoutService) CreatePaymentIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error) {
	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = s.cfg.Currency
	}
	amount := utils.ToMinorUnits(req.Amount, currency)
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, amount, currency, req.Email)
	if err != nil {
		log.WithError(err).Error("payment intent creation failed")
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	return intent, nil
}
