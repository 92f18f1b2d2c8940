package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dukalink/duka_api/internal/service"
	"github.com/dukalink/duka_api/internal/utils"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder handles POST /v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	order, err := h.orderService.CreateOrder(c.GetInt("user_id"), &req)
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
		if errors.Is(err, utils.ErrInsufficientStock) {
			utils.Error(c, 409, "INSUFFICIENT_STOCK", "Not enough stock for one of the items")
			return
		}
		if utils.IsConstraintViolation(err) {
			utils.Error(c, 409, "CONSTRAINT_VIOLATION", "Order references missing data")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create order")
		return
	}

	utils.Success(c, 201, "Order placed successfully", order)
}

// ListMyOrders handles GET /v1/orders
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	orders, err := h.orderService.ListUserOrders(c.GetInt("user_id"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve orders")
		return
	}

	utils.Success(c, 200, "Orders retrieved", gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}

// GetOrder handles GET /v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(id, c.GetInt("user_id"), c.GetBool("is_admin"))
	if err != nil {
		if errors.Is(err, utils.ErrOrderNotFound) {
			utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
			return
		}
		if errors.Is(err, utils.ErrForbidden) {
			utils.Error(c, 403, "FORBIDDEN", "You may only view your own orders")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve order")
		return
	}

	utils.Success(c, 200, "Order retrieved", order)
}

// ListOrders handles GET /v1/admin/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	status := c.Query("status")

	orders, total, err := h.orderService.ListOrders(page, limit, status)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve orders")
		return
	}

	utils.SuccessWithPagination(c, 200, "Orders retrieved", gin.H{"orders": orders}, page, limit, total)
}

// UpdateOrderStatus handles PUT /v1/admin/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid order ID")
		return
	}

	var req service.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "status is required")
		return
	}

	order, err := h.orderService.UpdateOrderStatus(id, &req)
	if err != nil {
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			utils.Error(c, 422, "VALIDATION_ERROR", verr.Error())
			return
		}
		if errors.Is(err, utils.ErrOrderNotFound) {
			utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update order")
		return
	}

	utils.Success(c, 200, "Order updated successfully", order)
}
