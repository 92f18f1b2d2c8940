package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/dukalink/duka_api/internal/models"
	"github.com/dukalink/duka_api/internal/utils"
)

// CategoryRepository provides data access methods for the categories table.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category.
func (r *CategoryRepository) Create(cat *models.Category) error {
	const q = `INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id`
	err := r.db.QueryRowx(q, cat.Name, cat.Description).Scan(&cat.ID)
	return utils.WrapConstraint(err)
}

// GetByID finds a category by id.
func (r *CategoryRepository) GetByID(id int) (*models.Category, error) {
	var c models.Category
	err := r.db.Get(&c, `SELECT id, name, description FROM categories WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List retrieves all categories ordered by name.
func (r *CategoryRepository) List() ([]*models.Category, error) {
	var cats []*models.Category
	err := r.db.Select(&cats, `SELECT id, name, description FROM categories ORDER BY name`)
	return cats, err
}

// Update updates an existing category.
func (r *CategoryRepository) Update(cat *models.Category) error {
	res, err := r.db.Exec(`UPDATE categories SET name = $1, description = $2 WHERE id = $3`,
		cat.Name, cat.Description, cat.ID)
	if err != nil {
		return utils.WrapConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a category. Products referencing it make the delete fail
// with a constraint violation (ON DELETE RESTRICT).
func (r *CategoryRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return utils.WrapConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
