package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dukalink/duka_api/internal/service"
	"github.com/dukalink/duka_api/internal/utils"
)

// AuthHandler handles registration and login endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			utils.Error(c, 422, "VALIDATION_ERROR", verr.Error())
			return
		}
		if errors.Is(err, utils.ErrEmailExists) {
			utils.Error(c, 409, "EMAIL_EXISTS", "An account with this email already exists")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to register user")
		return
	}

	utils.Success(c, 201, "User registered successfully", user)
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	token, user, err := h.authService.Login(&req)
	if err != nil {
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			utils.Error(c, 422, "VALIDATION_ERROR", verr.Error())
			return
		}
		if errors.Is(err, utils.ErrInvalidCredentials) {
			utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to log in")
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}
