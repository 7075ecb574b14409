package repositories

import (
	"context"

	"fashion-store/models"
)

type ShippingRepository struct {
	db DBTX
}

func NewShippingRepository(db DBTX) *ShippingRepository {
	return &ShippingRepository{db: db}
}

const providerColumns = `id, name, base_cost, cost_per_kg, estimated_days, tracking_url, is_active, created_at`

func scanProvider(row rowScanner) (*models.ShippingProvider, error) {
	var p models.ShippingProvider
	err := row.Scan(&p.ID, &p.Name, &p.BaseCost, &p.CostPerKg, &p.EstimatedDays, &p.TrackingURL, &p.IsActive, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ShippingRepository) ListActiveProviders(ctx context.Context) ([]models.ShippingProvider, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+providerColumns+` FROM shipping_providers WHERE is_active = true ORDER BY base_cost, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	providers := []models.ShippingProvider{}
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, *p)
	}
	return providers, rows.Err()
}

func (r *ShippingRepository) GetProviderByID(ctx context.Context, id int) (*models.ShippingProvider, error) {
	p, err := scanProvider(r.db.QueryRow(ctx,
		`SELECT `+providerColumns+` FROM shipping_providers WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *ShippingRepository) GetProviderByName(ctx context.Context, name string) (*models.ShippingProvider, error) {
	p, err := scanProvider(r.db.QueryRow(ctx,
		`SELECT `+providerColumns+` FROM shipping_providers WHERE LOWER(name) = LOWER($1)`, name))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *ShippingRepository) CreateProvider(ctx context.Context, p *models.ShippingProvider) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO shipping_providers (name, base_cost, cost_per_kg, estimated_days, tracking_url, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING id, is_active, created_at`,
		p.Name, p.BaseCost, p.CostPerKg, p.EstimatedDays, p.TrackingURL,
	).Scan(&p.ID, &p.IsActive, &p.CreatedAt)
	return duplicate(err)
}

// GetEvents returns the events for trackingNumber oldest first.
func (r *ShippingRepository) GetEvents(ctx context.Context, trackingNumber string) ([]models.TrackingEvent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT occurred_at, status, location, description
		FROM shipping_events
		WHERE tracking_number = $1
		ORDER BY occurred_at ASC, id ASC`, trackingNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.TrackingEvent{}
	for rows.Next() {
		var e models.TrackingEvent
		if err := rows.Scan(&e.Timestamp, &e.Status, &e.Location, &e.Description); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *ShippingRepository) AddEvent(ctx context.Context, trackingNumber string, e models.TrackingEvent) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO shipping_events (tracking_number, status, location, description, occurred_at)
		VALUES ($1, $2, $3, $4, $5)`,
		trackingNumber, e.Status, e.Location, e.Description, e.Timestamp)
	return err
}
