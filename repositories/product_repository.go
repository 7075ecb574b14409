package repositories

import (
	"context"
	"time"

	"fashion-store/models"
)

type ProductRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, slug, name_ar, name_en, description_ar, description_en,
	price, weight_kg, image_url, sizes, colors, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Slug, &p.NameAr, &p.NameEn, &p.DescriptionAr, &p.DescriptionEn,
		&p.Price, &p.WeightKg, &p.ImageURL, &p.Sizes, &p.Colors, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetAll(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE is_active = true`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE is_active = true
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	now := time.Now()
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if p.Colors == nil {
		p.Colors = []string{}
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO products (slug, name_ar, name_en, description_ar, description_en,
			price, weight_kg, image_url, sizes, colors, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true, $11, $11)
		RETURNING id, is_active, created_at, updated_at`,
		p.Slug, p.NameAr, p.NameEn, p.DescriptionAr, p.DescriptionEn,
		p.Price, p.WeightKg, p.ImageURL, p.Sizes, p.Colors, now,
	).Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) UpdateImage(ctx context.Context, id int, imageURL string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET image_url = $1, updated_at = $2 WHERE id = $3`,
		imageURL, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
