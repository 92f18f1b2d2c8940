package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/dukalink/duka_api/internal/models"
	"github.com/dukalink/duka_api/internal/utils"
)

// ProductStore is the data access surface the product service needs.
// *repository.ProductRepository satisfies it.
type ProductStore interface {
	Create(p *models.Product) error
	GetByID(id int) (*models.Product, error)
	List(categoryID int) ([]*models.Product, error)
	Update(p *models.Product) error
	UpdateImageURL(id int, url string) error
	Delete(id int) error
}

// ProductCache caches serialized product responses. *cache.CatalogCache
// satisfies it; a nil cache disables caching.
type ProductCache interface {
	GetProduct(ctx context.Context, id int) ([]byte, bool, error)
	SetProduct(ctx context.Context, id int, payload []byte) error
	DeleteProduct(ctx context.Context, id int) error
}

// ImageUploader stores product images. *storage.ImageStore satisfies it;
// nil disables uploads.
type ImageUploader interface {
	UploadProductImage(ctx context.Context, productID int, data []byte, contentType string) (string, error)
}

// ProductService handles catalog product management.
type ProductService struct {
	products   ProductStore
	categories CategoryStore
	cache      ProductCache
	images     ImageUploader
}

// NewProductService constructs a ProductService. cache and images may be nil.
func NewProductService(products ProductStore, categories CategoryStore, cache ProductCache, images ImageUploader) *ProductService {
	return &ProductService{products: products, categories: categories, cache: cache, images: images}
}

// CreateProductRequest is the inbound product shape.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	StockQty    int             `json:"stockQty" validate:"gte=0"`
	CategoryID  int             `json:"categoryId" validate:"required"`
	ImageURL    *string         `json:"imageUrl" validate:"omitempty,url"`
}

// UpdateProductRequest is a partial patch; nil fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	StockQty    *int             `json:"stockQty" validate:"omitempty,gte=0"`
	CategoryID  *int             `json:"categoryId"`
	ImageURL    *string          `json:"imageUrl" validate:"omitempty,url"`
}

// ProductResponse is the outbound product shape with its category embedded.
type ProductResponse struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Price       decimal.Decimal   `json:"price"`
	StockQty    int               `json:"stockQty"`
	ImageURL    *string           `json:"imageUrl,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
}

// newProductResponse converts a stored product (and its category, if
// resolved) into the outbound shape.
func newProductResponse(p *models.Product, c *models.Category) *ProductResponse {
	resp := &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		StockQty:    p.StockQty,
		ImageURL:    p.ImageURL,
	}
	if c != nil {
		resp.Category = newCategoryResponse(c)
	}
	return resp
}

// checkPrice guards the fixed-point contract: prices are non-negative and
// are normalized to 2 fractional digits before they reach storage.
func checkPrice(price decimal.Decimal) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Decimal{}, utils.NewValidationError("price", "must not be negative")
	}
	return price.Round(2), nil
}

// CreateProduct creates a new product in an existing category.
func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	price, err := checkPrice(req.Price)
	if err != nil {
		return nil, err
	}

	cat, err := s.categories.GetByID(req.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrCategoryNotFound
		}
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		StockQty:    req.StockQty,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	}
	if err := s.products.Create(product); err != nil {
		return nil, err
	}
	return newProductResponse(product, cat), nil
}

// GetProduct retrieves a product with its category, served from the catalog
// cache when possible.
func (s *ProductService) GetProduct(ctx context.Context, id int) (*ProductResponse, error) {
	if s.cache != nil {
		payload, ok, err := s.cache.GetProduct(ctx, id)
		if err != nil {
			log.Warn().Err(err).Int("product_id", id).Msg("catalog cache read failed")
		} else if ok {
			var resp ProductResponse
			if err := json.Unmarshal(payload, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	resp, err := s.loadProduct(id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.cache.SetProduct(ctx, id, payload); err != nil {
				log.Warn().Err(err).Int("product_id", id).Msg("catalog cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *ProductService) loadProduct(id int) (*ProductResponse, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	cat, err := s.categories.GetByID(product.CategoryID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return newProductResponse(product, cat), nil
}

// ListProducts retrieves products, optionally filtered by category, with
// categories embedded.
func (s *ProductService) ListProducts(categoryID int) ([]*ProductResponse, error) {
	products, err := s.products.List(categoryID)
	if err != nil {
		return nil, err
	}

	// Resolve categories once per distinct id.
	cats := make(map[int]*models.Category)
	out := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		cat, ok := cats[p.CategoryID]
		if !ok {
			cat, err = s.categories.GetByID(p.CategoryID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return nil, err
			}
			cats[p.CategoryID] = cat
		}
		out = append(out, newProductResponse(p, cat))
	}
	return out, nil
}

// UpdateProduct applies a partial patch and invalidates the cache entry.
// A price change only affects future orders; existing order items keep
// their snapshot.
func (s *ProductService) UpdateProduct(ctx context.Context, id int, req *UpdateProductRequest) (*ProductResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		price, err := checkPrice(*req.Price)
		if err != nil {
			return nil, err
		}
		product.Price = price
	}
	if req.StockQty != nil {
		product.StockQty = *req.StockQty
	}
	if req.CategoryID != nil {
		if _, err := s.categories.GetByID(*req.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, utils.ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = *req.CategoryID
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}

	if err := s.products.Update(product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	cat, err := s.categories.GetByID(product.CategoryID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return newProductResponse(product, cat), nil
}

// UploadImage stores a product image and records its URL.
func (s *ProductService) UploadImage(ctx context.Context, id int, data []byte, contentType string) (string, error) {
	if s.images == nil {
		return "", errors.New("image storage not configured")
	}

	if _, err := s.products.GetByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", utils.ErrProductNotFound
		}
		return "", err
	}

	url, err := s.images.UploadProductImage(ctx, id, data, contentType)
	if err != nil {
		return "", err
	}
	if err := s.products.UpdateImageURL(id, url); err != nil {
		return "", err
	}
	s.invalidate(ctx, id)
	return url, nil
}

// DeleteProduct removes a product; referenced order items make this fail
// with a constraint violation, surfaced unchanged.
func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	err := s.products.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrProductNotFound
	}
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		log.Warn().Err(err).Int("product_id", id).Msg("catalog cache invalidation failed")
	}
}
