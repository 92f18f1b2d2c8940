package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/dukalink/duka_api/internal/models"
	"github.com/dukalink/duka_api/internal/utils"
)

// ProductRepository provides data access methods for the products table.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, description, price, stock_qty, category_id, image_url`

// Create inserts a new product.
func (r *ProductRepository) Create(p *models.Product) error {
	const q = `INSERT INTO products (name, description, price, stock_qty, category_id, image_url)
               VALUES ($1, $2, $3, $4, $5, $6)
               RETURNING id`

	err := r.db.QueryRowx(q,
		p.Name, p.Description, p.Price, p.StockQty, p.CategoryID, p.ImageURL,
	).Scan(&p.ID)
	return utils.WrapConstraint(err)
}

// GetByID finds a product by id.
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	var p models.Product
	err := r.db.Get(&p, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List retrieves products, optionally filtered by category. categoryID <= 0
// means no filter.
func (r *ProductRepository) List(categoryID int) ([]*models.Product, error) {
	var products []*models.Product
	if categoryID > 0 {
		err := r.db.Select(&products,
			`SELECT `+productColumns+` FROM products WHERE category_id = $1 ORDER BY name`, categoryID)
		return products, err
	}
	err := r.db.Select(&products, `SELECT `+productColumns+` FROM products ORDER BY name`)
	return products, err
}

// Update persists mutable product fields.
func (r *ProductRepository) Update(p *models.Product) error {
	const q = `UPDATE products
               SET name = $1, description = $2, price = $3, stock_qty = $4,
                   category_id = $5, image_url = $6
               WHERE id = $7`

	res, err := r.db.Exec(q, p.Name, p.Description, p.Price, p.StockQty, p.CategoryID, p.ImageURL, p.ID)
	if err != nil {
		return utils.WrapConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateImageURL sets only the image_url column, used after an upload.
func (r *ProductRepository) UpdateImageURL(id int, url string) error {
	res, err := r.db.Exec(`UPDATE products SET image_url = $1 WHERE id = $2`, url, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a product. Order items referencing it make the delete fail
// with a constraint violation (ON DELETE RESTRICT), which keeps order
// history intact.
func (r *ProductRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return utils.WrapConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
