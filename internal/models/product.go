package models

import "github.com/shopspring/decimal"

// Product is a catalog item. Price is a fixed-point decimal backed by
// NUMERIC(10,2); it must never pass through a float.
type Product struct {
	ID          int             `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description *string         `db:"description" json:"description,omitempty"`
	Price       decimal.Decimal `db:"price" json:"price"`
	StockQty    int             `db:"stock_qty" json:"stockQty"`
	CategoryID  int             `db:"category_id" json:"categoryId"`
	ImageURL    *string         `db:"image_url" json:"imageUrl,omitempty"`
}
