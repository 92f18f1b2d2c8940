package models

import "github.com/shopspring/decimal"

// OrderItem is a line of an order. PriceAtPurchase is a historical snapshot
// of the product price taken when the order was created; it is never
// recalculated from the live product row.
type OrderItem struct {
	ID              int             `db:"id" json:"id"`
	OrderID         int             `db:"order_id" json:"orderId"`
	ProductID       int             `db:"product_id" json:"productId"`
	Quantity        int             `db:"quantity" json:"quantity"`
	PriceAtPurchase decimal.Decimal `db:"price_at_purchase" json:"priceAtPurchase"`
}
