package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dukalink/duka_api/internal/service"
	"github.com/dukalink/duka_api/internal/utils"
)

// UserHandler handles user profile and admin user management endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe handles GET /v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetUser(c.GetInt("user_id"))
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			utils.Error(c, 404, "USER_NOT_FOUND", "User not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve user")
		return
	}

	utils.Success(c, 200, "User retrieved", user)
}

// UpdateMe handles PUT /v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(c.GetInt("user_id"), &req)
	if err != nil {
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			utils.Error(c, 422, "VALIDATION_ERROR", verr.Error())
			return
		}
		if errors.Is(err, utils.ErrUserNotFound) {
			utils.Error(c, 404, "USER_NOT_FOUND", "User not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update user")
		return
	}

	utils.Success(c, 200, "User updated successfully", user)
}

// ListUsers handles GET /v1/admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	users, total, err := h.userService.ListUsers(page, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve users")
		return
	}

	utils.SuccessWithPagination(c, 200, "Users retrieved", gin.H{"users": users}, page, limit, total)
}

// SetUserActive handles PUT /v1/admin/users/:id/active
func (h *UserHandler) SetUserActive(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid user ID")
		return
	}

	var req struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "isActive is required")
		return
	}

	if err := h.userService.SetUserActive(id, *req.IsActive); err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			utils.Error(c, 404, "USER_NOT_FOUND", "User not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update user")
		return
	}

	utils.Success(c, 200, "User updated successfully", nil)
}
