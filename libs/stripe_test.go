package libs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fashion-store/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() models.CheckoutSessionParams {
	return models.CheckoutSessionParams{
		LineItems: []models.CheckoutLineItem{
			{ProductID: 7, Name: "Abaya", Description: "Size: M", Image: "https://img/abaya.png", UnitAmount: 24999, Quantity: 2},
		},
		ShippingOptions: []models.ShippingOption{
			{ID: models.ShippingTierStandard, DisplayName: "Standard shipping", Amount: 0, MinDays: 3, MaxDays: 7},
			{ID: models.ShippingTierExpress, DisplayName: "Express shipping", Amount: 3500, MinDays: 1, MaxDays: 3},
		},
		PaymentMethodTypes: []string{"card"},
		AllowedCountries:   []string{"SA", "AE"},
		Currency:           "sar",
		Locale:             "ar",
		SuccessURL:         "https://shop/ar/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:          "https://shop/ar/checkout",
		CustomerEmail:      "layla@example.com",
		Metadata:           map[string]string{"locale": "ar"},
	}
}

func TestEncodeCheckoutSession(t *testing.T) {
	form := EncodeCheckoutSession(testParams())

	assert.Equal(t, "payment", form.Get("mode"))
	assert.Equal(t, "auto", form.Get("locale"))
	assert.Equal(t, "card", form.Get("payment_method_types[0]"))
	assert.Equal(t, "2", form.Get("line_items[0][quantity]"))
	assert.Equal(t, "24999", form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "sar", form.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "Abaya", form.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "https://img/abaya.png", form.Get("line_items[0][price_data][product_data][images][0]"))
	assert.Equal(t, "7", form.Get("line_items[0][price_data][product_data][metadata][product_id]"))
	assert.Equal(t, "AE", form.Get("shipping_address_collection[allowed_countries][1]"))
	assert.Equal(t, "3500", form.Get("shipping_options[1][shipping_rate_data][fixed_amount][amount]"))
	assert.Equal(t, "1", form.Get("shipping_options[1][shipping_rate_data][delivery_estimate][minimum][value]"))
	assert.Equal(t, "express", form.Get("shipping_options[1][shipping_rate_data][metadata][tier]"))
	assert.Equal(t, "ar", form.Get("metadata[locale]"))
	assert.Equal(t, "layla@example.com", form.Get("customer_email"))
}

func TestEncodePaymentIntent(t *testing.T) {
	form := EncodePaymentIntent(38499, "sar", "layla@example.com")

	assert.Equal(t, "38499", form.Get("amount"))
	assert.Equal(t, "sar", form.Get("currency"))
	assert.Equal(t, "true", form.Get("automatic_payment_methods[enabled]"))
	assert.Equal(t, "layla@example.com", form.Get("receipt_email"))

	assert.NotContains(t, EncodePaymentIntent(100, "sar", ""), "receipt_email")
}

func TestStripeLocale(t *testing.T) {
	assert.Equal(t, "en", stripeLocale("en"))
	assert.Equal(t, "auto", stripeLocale("ar"))
	assert.Equal(t, "auto", stripeLocale(""))
}

func TestStripeClient_CreateCheckoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "24999", r.PostForm.Get("line_items[0][price_data][unit_amount]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.stripe.com/c/cs_test_1","status":"open"}`))
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test", 5*time.Second)
	session, err := client.CreateCheckoutSession(context.Background(), testParams())
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/cs_test_1", session.URL)
}

func TestStripeClient_ClientErrorsDoNotTripBreaker(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		if n <= 5 {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such checkout.session"}}`))
			return
		}
		w.Write([]byte(`{"id":"cs_ok","status":"complete","payment_status":"paid"}`))
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test", 5*time.Second)
	for i := 0; i < 5; i++ {
		_, err := client.GetCheckoutSession(context.Background(), "cs_missing")
		var apiErr *StripeError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "resource_missing", apiErr.Code)
	}

	session, err := client.GetCheckoutSession(context.Background(), "cs_ok")
	require.NoError(t, err)
	assert.Equal(t, "paid", session.PaymentStatus)
}

func TestStripeClient_ServerErrorsOpenBreaker(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"type":"api_error","message":"boom"}}`))
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test", 5*time.Second)
	for i := 0; i < 3; i++ {
		_, err := client.CreatePaymentIntent(context.Background(), 1000, "sar", "")
		require.Error(t, err)
	}

	_, err := client.CreatePaymentIntent(context.Background(), 1000, "sar", "")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, "open", client.breaker.StateName())
}
