package repositories

import (
	"context"
	"errors"
	"time"

	"fashion-store/models"
)

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, stripe_session_id, payment_intent_id, customer_email, customer_name,
	amount_total, currency, locale, status, shipping_provider, tracking_number, created_at, updated_at`

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.StripeSessionID, &o.PaymentIntentID, &o.CustomerEmail, &o.CustomerName,
		&o.AmountTotal, &o.Currency, &o.Locale, &o.Status, &o.ShippingProvider, &o.TrackingNumber,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateFromSession inserts the order once per checkout session. A repeated
// delivery returns the stored order with created=false.
func (r *OrderRepository) CreateFromSession(ctx context.Context, o *models.Order) (*models.Order, bool, error) {
	now := time.Now()
	row := r.db.QueryRow(ctx, `
		INSERT INTO orders (stripe_session_id, payment_intent_id, customer_email, customer_name,
			amount_total, currency, locale, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (stripe_session_id) DO NOTHING
		RETURNING `+orderColumns,
		o.StripeSessionID, o.PaymentIntentID, o.CustomerEmail, o.CustomerName,
		o.AmountTotal, o.Currency, o.Locale, o.Status, now,
	)
	created, err := scanOrder(row)
	if err == nil {
		return created, true, nil
	}
	if err = notFound(err); !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	existing, err := scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE stripe_session_id = $1`, o.StripeSessionID))
	if err != nil {
		return nil, false, notFound(err)
	}
	return existing, false, nil
}

func (r *OrderRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*models.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE tracking_number = $1`, trackingNumber))
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

func (r *OrderRepository) List(ctx context.Context, page, limit int, status string) ([]models.Order, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE ($1::text = '' OR status = $1)`, status,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE ($1::text = '' OR status = $1)
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, total, rows.Err()
}

func (r *OrderRepository) AssignTracking(ctx context.Context, id int, trackingNumber, provider string) (*models.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `
		UPDATE orders SET tracking_number = $1, shipping_provider = $2, status = $3, updated_at = $4
		WHERE id = $5
		RETURNING `+orderColumns,
		trackingNumber, provider, models.OrderStatusShipped, time.Now(), id))
	if err != nil {
		return nil, duplicate(notFound(err))
	}
	return o, nil
}
