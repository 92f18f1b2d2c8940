package service

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukalink/duka_api/internal/models"
	"github.com/dukalink/duka_api/internal/utils"
)

// AuthService handles registration and login.
type AuthService struct {
	users UserStore
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// RegisterRequest is the inbound registration shape. The plaintext password
// is hashed here and never stored.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Fullname string `json:"fullname" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the inbound login shape.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new user account. The email column is not unique at
// the storage layer; duplicates are refused here, in registration logic.
// New accounts start with is_admin=false and is_active=false (database
// defaults); activation is an external concern.
func (s *AuthService) Register(req *RegisterRequest) (*UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if existing, err := s.users.GetByEmail(req.Email); err == nil && existing != nil {
		return nil, utils.ErrEmailExists
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Fullname:       req.Fullname,
		Email:          req.Email,
		HashedPassword: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	log.Info().Int("user_id", user.ID).Msg("user registered")
	return newUserResponse(user), nil
}

// Login verifies credentials and issues a JWT.
func (s *AuthService) Login(req *LoginRequest) (string, *UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return "", nil, err
	}

	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, utils.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		log.Warn().Str("email", req.Email).Msg("password verification failed")
		return "", nil, utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return "", nil, err
	}

	log.Info().Int("user_id", user.ID).Msg("login successful")
	return token, newUserResponse(user), nil
}
