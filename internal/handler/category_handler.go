package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dukalink/duka_api/internal/service"
	"github.com/dukalink/duka_api/internal/utils"
)

// CategoryHandler handles catalog category endpoints.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories handles GET /v1/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	cats, err := h.categoryService.ListCategories()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve categories")
		return
	}

	utils.Success(c, 200, "Categories retrieved", gin.H{
		"categories": cats,
		"total":      len(cats),
	})
}

// GetCategory handles GET /v1/categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid category ID")
		return
	}

	cat, err := h.categoryService.GetCategory(id)
	if err != nil {
		if errors.Is(err, utils.ErrCategoryNotFound) {
			utils.Error(c, 404, "CATEGORY_NOT_FOUND", "Category not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve category")
		return
	}

	utils.Success(c, 200, "Category retrieved", cat)
}

// CreateCategory handles POST /v1/admin/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	cat, err := h.categoryService.CreateCategory(&req)
	if err != nil {
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			utils.Error(c, 422, "VALIDATION_ERROR", verr.Error())
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create category")
		return
	}

	utils.Success(c, 201, "Category created successfully", cat)
}

// UpdateCategory handles PUT /v1/admin/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid category ID")
		return
	}

	var req service.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	cat, err := h.categoryService.UpdateCategory(id, &req)
	if err != nil {
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			utils.Error(c, 422, "VALIDATION_ERROR", verr.Error())
			return
		}
		if errors.Is(err, utils.ErrCategoryNotFound) {
			utils.Error(c, 404, "CATEGORY_NOT_FOUND", "Category not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update category")
		return
	}

	utils.Success(c, 200, "Category updated successfully", cat)
}

// DeleteCategory handles DELETE /v1/admin/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid category ID")
		return
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		if errors.Is(err, utils.ErrCategoryNotFound) {
			utils.Error(c, 404, "CATEGORY_NOT_FOUND", "Category not found")
			return
		}
		if utils.IsConstraintViolation(err) {
			utils.Error(c, 409, "CATEGORY_IN_USE", "Category still has products")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete category")
		return
	}

	utils.Success(c, 200, "Category deleted successfully", nil)
}
