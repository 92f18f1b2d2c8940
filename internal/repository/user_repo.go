package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/dukalink/duka_api/internal/models"
	"github.com/dukalink/duka_api/internal/utils"
)

// UserRepository provides data access methods for the users table.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, fullname, email, hashed_password, is_admin, is_active, created_at`

// Create inserts a new user. Server-assigned fields (id, created_at and the
// boolean defaults) are read back via RETURNING.
func (r *UserRepository) Create(user *models.User) error {
	const q = `INSERT INTO users (fullname, email, hashed_password)
               VALUES ($1, $2, $3)
               RETURNING id, is_admin, is_active, created_at`

	err := r.db.QueryRowx(q, user.Fullname, user.Email, user.HashedPassword).
		Scan(&user.ID, &user.IsAdmin, &user.IsActive, &user.CreatedAt)
	return utils.WrapConstraint(err)
}

// GetByID finds a user by id.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	var u models.User
	err := r.db.Get(&u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail finds a user by email. The column is indexed but not unique;
// the most recently created match wins, mirroring the registration-layer
// uniqueness policy.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.db.Get(&u, `SELECT `+userColumns+` FROM users WHERE email = $1 ORDER BY id DESC LIMIT 1`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update persists mutable profile fields. created_at is never touched.
func (r *UserRepository) Update(user *models.User) error {
	const q = `UPDATE users
               SET fullname = $1, email = $2, hashed_password = $3
               WHERE id = $4`

	res, err := r.db.Exec(q, user.Fullname, user.Email, user.HashedPassword, user.ID)
	if err != nil {
		return utils.WrapConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetActive toggles the is_active flag.
func (r *UserRepository) SetActive(id int, active bool) error {
	res, err := r.db.Exec(`UPDATE users SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List retrieves users ordered by creation time, newest first.
func (r *UserRepository) List(limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.Select(&users,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	return users, err
}

// Count returns the total number of users.
func (r *UserRepository) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM users`)
	return n, err
}
