package libs

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"fashion-store/models"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/form"
)

// StripeError is the error envelope returned by the Stripe API.
type StripeError struct {
	StatusCode int    `json:"-"`
	Type       string `json:"type"`
	Code       string `json:"code"`
	Param      string `json:"param"`
	Message    string `json:"message"`
}

func (e *StripeError) Error() string {
	return fmt.Sprintf("stripe: %d %s: %s", e.StatusCode, e.Type, e.Message)
}

type stripeErrorEnvelope struct {
	Error StripeError `json:"error"`
}

type StripeClient struct {
	http    *resty.Client
	breaker *CircuitBreaker
}

func NewStripeClient(baseURL, secretKey string, timeout time.Duration) *StripeClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(secretKey).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Stripe-Version", stripe.APIVersion)

	return &StripeClient{
		http:    client,
		breaker: NewCircuitBreaker("stripe"),
	}
}

func (s *StripeClient) CreateCheckoutSession(ctx context.Context, params models.CheckoutSessionParams) (*models.CheckoutSession, error) {
	var session models.CheckoutSession
	if err := s.post(ctx, "/v1/checkout/sessions", EncodeCheckoutSession(params), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *StripeClient) GetCheckoutSession(ctx context.Context, id string) (*models.CheckoutSession, error) {
	var session models.CheckoutSession
	if err := s.get(ctx, "/v1/checkout/sessions/"+url.PathEscape(id), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *StripeClient) CreatePaymentIntent(ctx context.Context, amount int64, currency, email string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	if err := s.post(ctx, "/v1/payment_intents", EncodePaymentIntent(amount, currency, email), &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (s *StripeClient) post(ctx context.Context, path string, values url.Values, out interface{}) error {
	return s.do(func() (*resty.Response, error) {
		return s.http.R().
			SetContext(ctx).
			SetHeader("Idempotency-Key", uuid.NewString()).
			SetFormDataFromValues(values).
			SetResult(out).
			SetError(&stripeErrorEnvelope{}).
			Post(path)
	})
}

func (s *StripeClient) get(ctx context.Context, path string, out interface{}) error {
	return s.do(func() (*resty.Response, error) {
		return s.http.R().
			SetContext(ctx).
			SetResult(out).
			SetError(&stripeErrorEnvelope{}).
			Get(path)
	})
}

// do runs call through the breaker. Client errors (4xx) are returned to the
// caller without counting against the breaker.
func (s *StripeClient) do(call func() (*resty.Response, error)) error {
	var clientErr error
	_, err := s.breaker.Execute(func() (interface{}, error) {
		resp, err := call()
		if err != nil {
			return nil, err
		}
		if !resp.IsError() {
			return nil, nil
		}
		apiErr := &StripeError{StatusCode: resp.StatusCode(), Message: resp.Status()}
		if env, ok := resp.Error().(*stripeErrorEnvelope); ok && env.Error.Message != "" {
			apiErr = &env.Error
			apiErr.StatusCode = resp.StatusCode()
		}
		if resp.StatusCode() < 500 && resp.StatusCode() != 429 {
			clientErr = apiErr
			return nil, nil
		}
		return nil, apiErr
	})
	if err != nil {
		return err
	}
	return clientErr
}

// EncodeCheckoutSession maps params onto the SDK's checkout session params
// and flattens them into Stripe's bracketed form keys.
func EncodeCheckoutSession(p models.CheckoutSessionParams) url.Values {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(p.SuccessURL),
		CancelURL:          stripe.String(p.CancelURL),
		Locale:             stripe.String(stripeLocale(p.Locale)),
		PaymentMethodTypes: stripe.StringSlice(p.PaymentMethodTypes),
	}
	if p.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}

	for _, item := range p.LineItems {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name:     stripe.String(item.Name),
			Metadata: map[string]string{"product_id": strconv.Itoa(item.ProductID)},
		}
		if item.Description != "" {
			product.Description = stripe.String(item.Description)
		}
		if item.Image != "" {
			product.Images = stripe.StringSlice([]string{item.Image})
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(p.Currency),
				UnitAmount:  stripe.Int64(item.UnitAmount),
				ProductData: product,
			},
		})
	}

	if len(p.AllowedCountries) > 0 {
		params.ShippingAddressCollection = &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(p.AllowedCountries),
		}
	}

	for _, opt := range p.ShippingOptions {
		params.ShippingOptions = append(params.ShippingOptions, &stripe.CheckoutSessionShippingOptionParams{
			ShippingRateData: &stripe.CheckoutSessionShippingOptionShippingRateDataParams{
				Type:        stripe.String("fixed_amount"),
				DisplayName: stripe.String(opt.DisplayName),
				FixedAmount: &stripe.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
					Amount:   stripe.Int64(opt.Amount),
					Currency: stripe.String(p.Currency),
				},
				DeliveryEstimate: &stripe.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateParams{
					Minimum: &stripe.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateMinimumParams{
						Unit:  stripe.String("business_day"),
						Value: stripe.Int64(int64(opt.MinDays)),
					},
					Maximum: &stripe.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateMaximumParams{
						Unit:  stripe.String("business_day"),
						Value: stripe.Int64(int64(opt.MaxDays)),
					},
				},
				Metadata: map[string]string{"tier": opt.ID},
			},
		})
	}

	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}
	return encodeForm(params)
}

// EncodePaymentIntent builds the form for a payment intent with automatic
// payment methods.
func EncodePaymentIntent(amount int64, currency, email string) url.Values {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if email != "" {
		params.ReceiptEmail = stripe.String(email)
	}
	return encodeForm(params)
}

func encodeForm(params interface{}) url.Values {
	values := &form.Values{}
	form.AppendTo(values, params)
	return values.ToValues()
}

// Hosted checkout has no Arabic translation; let it follow the browser.
func stripeLocale(locale string) string {
	if locale == "en" {
		return "en"
	}
	return "auto"
}
