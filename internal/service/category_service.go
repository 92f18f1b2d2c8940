package service

import (
	"database/sql"
	"errors"

	"github.com/dukalink/duka_api/internal/models"
	"github.com/dukalink/duka_api/internal/utils"
)

// CategoryStore is the data access surface the category service needs.
// *repository.CategoryRepository satisfies it.
type CategoryStore interface {
	Create(cat *models.Category) error
	GetByID(id int) (*models.Category, error)
	List() ([]*models.Category, error)
	Update(cat *models.Category) error
	Delete(id int) error
}

// CategoryService handles catalog category management.
type CategoryService struct {
	categories CategoryStore
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// CreateCategoryRequest is the inbound category shape.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// UpdateCategoryRequest is a partial patch.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}

// CategoryResponse is the outbound category shape, also embedded in product
// responses.
type CategoryResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// newCategoryResponse converts a stored category into its outbound shape.
func newCategoryResponse(c *models.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

// CreateCategory creates a new category.
func (s *CategoryService) CreateCategory(req *CreateCategoryRequest) (*CategoryResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	cat := &models.Category{Name: req.Name, Description: req.Description}
	if err := s.categories.Create(cat); err != nil {
		return nil, err
	}
	return newCategoryResponse(cat), nil
}

// GetCategory retrieves a category by id.
func (s *CategoryService) GetCategory(id int) (*CategoryResponse, error) {
	cat, err := s.categories.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrCategoryNotFound
		}
		return nil, err
	}
	return newCategoryResponse(cat), nil
}

// ListCategories retrieves all categories.
func (s *CategoryService) ListCategories() ([]*CategoryResponse, error) {
	cats, err := s.categories.List()
	if err != nil {
		return nil, err
	}
	out := make([]*CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, newCategoryResponse(c))
	}
	return out, nil
}

// UpdateCategory applies a partial patch.
func (s *CategoryService) UpdateCategory(id int, req *UpdateCategoryRequest) (*CategoryResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	cat, err := s.categories.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrCategoryNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		cat.Name = *req.Name
	}
	if req.Description != nil {
		cat.Description = req.Description
	}

	if err := s.categories.Update(cat); err != nil {
		return nil, err
	}
	return newCategoryResponse(cat), nil
}

// DeleteCategory removes a category. A constraint violation from referencing
// products is surfaced to the caller unchanged.
func (s *CategoryService) DeleteCategory(id int) error {
	err := s.categories.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrCategoryNotFound
	}
	return err
}
