package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dukalink/duka_api/internal/service"
	"github.com/dukalink/duka_api/internal/utils"
)

// maxImageSize bounds product image uploads (5 MiB).
const maxImageSize = 5 << 20

// ProductHandler handles catalog product endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts handles GET /v1/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	categoryID, _ := strconv.Atoi(c.DefaultQuery("categoryId", "0"))

	products, err := h.productService.ListProducts(categoryID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve products")
		return
	}

	utils.Success(c, 200, "Products retrieved", gin.H{
		"products": products,
		"total":    len(products),
	})
}

// GetProduct handles GET /v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve product")
		return
	}

	utils.Success(c, 200, "Product retrieved", product)
}

// CreateProduct handles POST /v1/admin/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
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
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create product")
		return
	}

	utils.Success(c, 201, "Product created successfully", product)
}

// UpdateProduct handles PUT /v1/admin/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			utils.Error(c, 422, "VALIDATION_ERROR", verr.Error())
			return
		}
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		if errors.Is(err, utils.ErrCategoryNotFound) {
			utils.Error(c, 404, "CATEGORY_NOT_FOUND", "Category not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update product")
		return
	}

	utils.Success(c, 200, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /v1/admin/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		if utils.IsConstraintViolation(err) {
			utils.Error(c, 409, "PRODUCT_IN_USE", "Product is referenced by existing orders")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete product")
		return
	}

	utils.Success(c, 200, "Product deleted successfully", nil)
}

// UploadImage handles POST /v1/admin/products/:id/image
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "image file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		utils.Error(c, 413, "IMAGE_TOO_LARGE", "Image exceeds the 5MB limit")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Failed to read image")
		return
	}

	url, err := h.productService.UploadImage(c.Request.Context(), id, data, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to upload image")
		return
	}

	utils.Success(c, 200, "Image uploaded successfully", gin.H{"imageUrl": url})
}
