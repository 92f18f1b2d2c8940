package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusPending is the status assigned to new orders by the database
// default. Further transitions are owned by order-processing logic; the
// column is an open string enum.
const OrderStatusPending = "pending"

// Order is a purchase made by a user. The mpesa_* columns are written by the
// mobile-money checkout flow, which lives outside this service.
type Order struct {
	ID              int                 `db:"id" json:"id"`
	TotalPrice      decimal.NullDecimal `db:"total_price" json:"totalPrice"`
	Status          string              `db:"status" json:"status"`
	MpesaCheckoutID *string             `db:"mpesa_checkout_id" json:"mpesaCheckoutId,omitempty"`
	MpesaReceipt    *string             `db:"mpesa_receipt" json:"mpesaReceipt,omitempty"`
	PhoneNumber     *string             `db:"phone_number" json:"phoneNumber,omitempty"`
	CreatedAt       time.Time           `db:"created_at" json:"createdAt"`
	UserID          int                 `db:"user_id" json:"userId"`
}
