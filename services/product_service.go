package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"fashion-store/models"
	"fashion-store/repositories"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const productsCachePrefix = "products_"

type ProductStore interface {
	GetAll(ctx context.Context, page, limit int) ([]models.Product, int, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	UpdateImage(ctx context.Context, id int, imageURL string) error
}

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, file io.Reader, filename, folder string) (string, error)
}

type ProductService struct {
	repo     ProductStore
	uploader ImageUploader
	cache    *jsonCache
}

type productPage struct {
	Products []models.Product     `json:"products"`
	Meta     models.PaginationMeta `json:"meta"`
}

func NewProductService(repo ProductStore, uploader ImageUploader, redisClient *redis.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		uploader: uploader,
		cache:    newJSONCache(redisClient, 5*time.Minute),
	}
}

func (s *ProductService) GetAllProducts(ctx context.Context, page, limit int) ([]models.Product, models.PaginationMeta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 12
	}

	key := fmt.Sprintf("%spage_%d_limit_%d", productsCachePrefix, page, limit)
	var cached productPage
	if s.cache.get(ctx, key, &cached) {
		return cached.Products, cached.Meta, nil
	}

	products, total, err := s.repo.GetAll(ctx, page, limit)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}
	meta := paginate(page, limit, total)
	s.cache.set(ctx, key, productPage{Products: products, Meta: meta})
	return products, meta, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	p := &models.Product{
		Slug:          strings.ToLower(strings.TrimSpace(req.Slug)),
		NameAr:        req.NameAr,
		NameEn:        req.NameEn,
		DescriptionAr: req.DescriptionAr,
		DescriptionEn: req.DescriptionEn,
		Price:         req.Price,
		WeightKg:      req.WeightKg,
		ImageURL:      req.ImageURL,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, productsCachePrefix+"*")
	log.WithFields(log.Fields{"product_id": p.ID, "slug": p.Slug}).Info("product created")
	return p, nil
}

func (s *ProductService) UploadProductImage(ctx context.Context, id int, file io.Reader, filename string) (string, error) {
	if s.uploader == nil {
		return "", errors.New("image uploads are not configured")
	}
	if _, err := s.GetProductByID(ctx, id); err != nil {
		return "", err
	}

	imageURL, err := s.uploader.UploadImage(ctx, file, filename, "fashion-store/products")
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdateImage(ctx, id, imageURL); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrProductNotFound
		}
		return "", err
	}
	s.cache.invalidate(ctx, productsCachePrefix+"*")
	return imageURL, nil
}
