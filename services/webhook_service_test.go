package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"fashion-store/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
)

const webhookSecret = "whsec_test"

var webhookNow = time.Unix(1717000000, 0)

func newTestWebhookService(orders OrderRecorder, publisher EventPublisher, notifier OrderNotifier) *WebhookService {
	svc := NewWebhookService(webhookSecret, orders, publisher, notifier)
	svc.now = func() time.Time { return webhookNow }
	return svc
}

func completedEvent(t *testing.T, sessionID, paymentStatus string) []byte {
	t.Helper()
	session := map[string]interface{}{
		"id":             sessionID,
		"status":         "complete",
		"payment_status": paymentStatus,
		"amount_total":   38499,
		"currency":       "sar",
		"payment_intent": "pi_123",
		"customer_details": map[string]string{
			"email": "layla@example.com",
			"name":  "Layla",
		},
		"metadata": map[string]string{"locale": "en"},
	}
	payload, err := json.Marshal(map[string]interface{}{
		"id":   "evt_1",
		"type": EventCheckoutCompleted,
		"data": map[string]interface{}{"object": session},
	})
	require.NoError(t, err)
	return payload
}

func signAt(payload []byte, secret string, at time.Time) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: at,
	}).Header
}

func sign(payload []byte) string {
	return signAt(payload, webhookSecret, time.Now())
}

func TestHandleEvent_RejectsBadSignatureRegardlessOfPayload(t *testing.T) {
	orders := newFakeOrderRecorder()
	svc := newTestWebhookService(orders, nil, nil)

	payloads := [][]byte{
		completedEvent(t, "cs_1", "paid"),
		[]byte(`{"type":"payment_intent.succeeded"}`),
		[]byte(`not json`),
		{},
	}
	for _, payload := range payloads {
		headers := []string{
			"",
			"t=1717000000,v1=00",
			"v1=" + strings.Repeat("0", 64),
			signAt(payload, "wrong_secret", time.Now()),
			signAt(append([]byte("x"), payload...), webhookSecret, time.Now()),
		}
		for _, header := range headers {
			event, err := svc.HandleEvent(context.Background(), payload, header)
			assert.ErrorIs(t, err, ErrInvalidSignature)
			assert.Nil(t, event)
		}
	}
	assert.Empty(t, orders.orders)
}

func TestHandleEvent_StaleSignatureRejected(t *testing.T) {
	svc := newTestWebhookService(newFakeOrderRecorder(), nil, nil)
	payload := completedEvent(t, "cs_1", "paid")

	header := signAt(payload, webhookSecret, time.Now().Add(-10*time.Minute))
	_, err := svc.HandleEvent(context.Background(), payload, header)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestHandleEvent_CheckoutCompletedRecordsOrderOnce(t *testing.T) {
	orders := newFakeOrderRecorder()
	publisher := &fakePublisher{}
	notifier := &fakeNotifier{}
	svc := newTestWebhookService(orders, publisher, notifier)
	payload := completedEvent(t, "cs_1", "paid")

	event, err := svc.HandleEvent(context.Background(), payload, sign(payload))
	require.NoError(t, err)
	assert.Equal(t, EventCheckoutCompleted, event.Type)

	require.Contains(t, orders.orders, "cs_1")
	order := orders.orders["cs_1"]
	assert.Equal(t, 384.99, order.AmountTotal)
	assert.Equal(t, "layla@example.com", order.CustomerEmail)
	assert.Equal(t, "Layla", order.CustomerName)
	assert.Equal(t, "en", order.Locale)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	require.NotNil(t, order.PaymentIntentID)
	assert.Equal(t, "pi_123", *order.PaymentIntentID)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "cs_1", publisher.keys[0])
	paid := publisher.events[0].(OrderPaidEvent)
	assert.Equal(t, "order.paid", paid.Event)
	assert.Equal(t, webhookNow, paid.Timestamp)
	require.Len(t, notifier.sent, 1)

	// Redelivery of the same event has no further side effects.
	_, err = svc.HandleEvent(context.Background(), payload, sign(payload))
	require.NoError(t, err)
	assert.Len(t, orders.orders, 1)
	assert.Len(t, publisher.events, 1)
	assert.Len(t, notifier.sent, 1)
}

func TestHandleEvent_SideEffectFailuresAreNotReturned(t *testing.T) {
	svc := newTestWebhookService(newFakeOrderRecorder(), &fakePublisher{err: errors.New("broker down")}, &fakeNotifier{err: errors.New("smtp down")})
	payload := completedEvent(t, "cs_1", "paid")

	_, err := svc.HandleEvent(context.Background(), payload, sign(payload))
	assert.NoError(t, err)
}

func TestHandleEvent_PersistenceFailureIsReturned(t *testing.T) {
	orders := newFakeOrderRecorder()
	orders.err = errors.New("db down")
	svc := newTestWebhookService(orders, nil, nil)
	payload := completedEvent(t, "cs_1", "paid")

	_, err := svc.HandleEvent(context.Background(), payload, sign(payload))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSignature)
}

func TestHandleEvent_UnpaidSessionIsNotRecorded(t *testing.T) {
	orders := newFakeOrderRecorder()
	svc := newTestWebhookService(orders, nil, nil)
	payload := completedEvent(t, "cs_1", "unpaid")

	_, err := svc.HandleEvent(context.Background(), payload, sign(payload))
	require.NoError(t, err)
	assert.Empty(t, orders.orders)
}

func TestHandleEvent_OtherTypesIgnored(t *testing.T) {
	orders := newFakeOrderRecorder()
	svc := newTestWebhookService(orders, nil, nil)
	payload := []byte(`{"id":"evt_2","type":"charge.refunded","data":{"object":{}}}`)

	event, err := svc.HandleEvent(context.Background(), payload, sign(payload))
	require.NoError(t, err)
	assert.Equal(t, "charge.refunded", event.Type)
	assert.Empty(t, orders.orders)
}

func TestHandleEvent_SignedGarbageIsInvalidPayload(t *testing.T) {
	svc := newTestWebhookService(newFakeOrderRecorder(), nil, nil)

	for _, payload := range [][]byte{[]byte(`not json`), []byte(`{"id":"evt"}`)} {
		_, err := svc.HandleEvent(context.Background(), payload, sign(payload))
		assert.ErrorIs(t, err, ErrInvalidPayload)
	}

	payload := []byte(`{"id":"evt","type":"checkout.session.completed","data":{"object":{}}}`)
	_, err := svc.HandleEvent(context.Background(), payload, sign(payload))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestHandleEvent_MissingSecretIsServerFault(t *testing.T) {
	orders := newFakeOrderRecorder()
	svc := NewWebhookService("", orders, nil, nil)
	payload := completedEvent(t, "cs_1", "paid")

	_, err := svc.HandleEvent(context.Background(), payload, signAt(payload, "", time.Now()))
	assert.ErrorIs(t, err, ErrWebhookNotConfigured)
	assert.NotErrorIs(t, err, ErrInvalidSignature)
	assert.Empty(t, orders.orders)
}
