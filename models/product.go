package models

import "time"

type Product struct {
	ID            int       `json:"id"`
	Slug          string    `json:"slug"`
	NameAr        string    `json:"name_ar"`
	NameEn        string    `json:"name_en"`
	DescriptionAr string    `json:"description_ar"`
	DescriptionEn string    `json:"description_en"`
	Price         float64   `json:"price"`
	WeightKg      float64   `json:"weight_kg"`
	ImageURL      string    `json:"image_url"`
	Sizes         []string  `json:"sizes"`
	Colors        []string  `json:"colors"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Name returns the product name for locale, falling back to Arabic.
func (p Product) Name(locale string) string {
	if locale == "en" && p.NameEn != "" {
		return p.NameEn
	}
	return p.NameAr
}

func (p Product) Description(locale string) string {
	if locale == "en" && p.DescriptionEn != "" {
		return p.DescriptionEn
	}
	return p.DescriptionAr
}

type CreateProductRequest struct {
	Slug          string   `json:"slug" binding:"required"`
	NameAr        string   `json:"name_ar" binding:"required"`
	NameEn        string   `json:"name_en" binding:"required"`
	DescriptionAr string   `json:"description_ar"`
	DescriptionEn string   `json:"description_en"`
	Price         float64  `json:"price" binding:"required,gte=0"`
	WeightKg      float64  `json:"weight_kg" binding:"gte=0"`
	ImageURL      string   `json:"image_url"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
}

// ProductView is a product with name and description resolved for one locale.
type ProductView struct {
	Product
	Name        string `json:"name"`
	Description string `json:"description"`
	Locale      string `json:"locale"`
}

func (p Product) Localize(locale string) ProductView {
	return ProductView{
		Product:     p,
		Name:        p.Name(locale),
		Description: p.Description(locale),
		Locale:      locale,
	}
}
