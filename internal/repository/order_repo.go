package repository

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dukalink/duka_api/internal/models"
	"github.com/dukalink/duka_api/internal/utils"
)

// OrderRepository provides data access methods for orders and order_items.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, total_price, status, mpesa_checkout_id, mpesa_receipt, phone_number, created_at, user_id`

// CreateWithItems inserts an order and its items in a single transaction.
// Stock is decremented inside the same transaction with a quantity guard;
// if any product lacks stock the whole order rolls back with
// ErrInsufficientStock. Items must arrive with price_at_purchase already
// snapshotted; this method writes it verbatim and never recomputes it.
func (r *OrderRepository) CreateWithItems(order *models.Order, items []*models.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// status is omitted so the column default ("pending") applies.
	const insertOrder = `INSERT INTO orders (total_price, mpesa_checkout_id, mpesa_receipt, phone_number, user_id)
                         VALUES ($1, $2, $3, $4, $5)
                         RETURNING id, status, created_at`

	err = tx.QueryRowx(insertOrder,
		order.TotalPrice, order.MpesaCheckoutID, order.MpesaReceipt, order.PhoneNumber, order.UserID,
	).Scan(&order.ID, &order.Status, &order.CreatedAt)
	if err != nil {
		return utils.WrapConstraint(err)
	}

	const decrementStock = `UPDATE products SET stock_qty = stock_qty - $1
                            WHERE id = $2 AND stock_qty >= $1`
	const insertItem = `INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
                        VALUES ($1, $2, $3, $4)
                        RETURNING id`

	for _, item := range items {
		res, err := tx.Exec(decrementStock, item.Quantity, item.ProductID)
		if err != nil {
			return utils.WrapConstraint(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("product %d: %w", item.ProductID, utils.ErrInsufficientStock)
		}

		item.OrderID = order.ID
		err = tx.QueryRowx(insertItem,
			item.OrderID, item.ProductID, item.Quantity, item.PriceAtPurchase,
		).Scan(&item.ID)
		if err != nil {
			return utils.WrapConstraint(err)
		}
	}

	return tx.Commit()
}

// GetByID finds an order by id.
func (r *OrderRepository) GetByID(id int) (*models.Order, error) {
	var o models.Order
	err := r.db.Get(&o, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByUser retrieves a user's orders, newest first.
func (r *OrderRepository) ListByUser(userID int) ([]*models.Order, error) {
	var orders []*models.Order
	err := r.db.Select(&orders,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	return orders, err
}

// List retrieves orders for the admin surface, optionally filtered by status.
func (r *OrderRepository) List(limit, offset int, status string) ([]*models.Order, error) {
	var orders []*models.Order
	if status != "" {
		err := r.db.Select(&orders,
			`SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			status, limit, offset)
		return orders, err
	}
	err := r.db.Select(&orders,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	return orders, err
}

// Count returns the number of orders, optionally filtered by status.
func (r *OrderRepository) Count(status string) (int, error) {
	var n int
	if status != "" {
		err := r.db.Get(&n, `SELECT COUNT(*) FROM orders WHERE status = $1`, status)
		return n, err
	}
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

// ListItems retrieves the items of an order.
func (r *OrderRepository) ListItems(orderID int) ([]*models.OrderItem, error) {
	var items []*models.OrderItem
	err := r.db.Select(&items,
		`SELECT id, order_id, product_id, quantity, price_at_purchase
         FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	return items, err
}

// UpdateStatus sets the order status. Transition validity is owned by the
// order-processing caller, not enforced here.
func (r *OrderRepository) UpdateStatus(id int, status string) error {
	res, err := r.db.Exec(`UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
