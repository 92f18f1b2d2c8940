package service

import (
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dukalink/duka_api/internal/models"
	"github.com/dukalink/duka_api/internal/utils"
)

// UserStore is the data access surface the user and auth services need.
// *repository.UserRepository satisfies it.
type UserStore interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	SetActive(id int, active bool) error
	List(limit, offset int) ([]*models.User, error)
	Count() (int, error)
}

// UserService handles user profile and admin user management.
type UserService struct {
	users UserStore
}

// NewUserService constructs a UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// UpdateUserRequest is a partial patch; nil fields are left unchanged.
type UpdateUserRequest struct {
	Fullname *string `json:"fullname" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=1"`
}

// UserResponse is the outbound user shape. It is built only through
// newUserResponse and never carries password material.
type UserResponse struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Fullname  string    `json:"fullname"`
	IsAdmin   bool      `json:"isAdmin"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// newUserResponse converts a stored user into its outbound shape.
func newUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Fullname:  u.Fullname,
		IsAdmin:   u.IsAdmin,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(id int) (*UserResponse, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrUserNotFound
		}
		return nil, err
	}
	return newUserResponse(user), nil
}

// UpdateUser applies a partial patch to a user's profile. A new password is
// re-hashed; the stored hash is otherwise untouched.
func (s *UserService) UpdateUser(id int, req *UpdateUserRequest) (*UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrUserNotFound
		}
		return nil, err
	}

	if req.Fullname != nil {
		user.Fullname = *req.Fullname
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = string(hash)
	}

	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return newUserResponse(user), nil
}

// SetUserActive toggles a user's is_active flag (admin surface).
func (s *UserService) SetUserActive(id int, active bool) error {
	err := s.users.SetActive(id, active)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrUserNotFound
	}
	return err
}

// ListUsers returns a page of users plus the total count (admin surface).
func (s *UserService) ListUsers(page, limit int) ([]*UserResponse, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	users, err := s.users.List(limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.users.Count()
	if err != nil {
		return nil, 0, err
	}

	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	return out, total, nil
}
