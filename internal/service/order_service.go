package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/dukalink/duka_api/internal/models"
	"github.com/dukalink/duka_api/internal/utils"
)

// OrderStore is the data access surface the order service needs.
// *repository.OrderRepository satisfies it.
type OrderStore interface {
	CreateWithItems(order *models.Order, items []*models.OrderItem) error
	GetByID(id int) (*models.Order, error)
	ListByUser(userID int) ([]*models.Order, error)
	List(limit, offset int, status string) ([]*models.Order, error)
	Count(status string) (int, error)
	ListItems(orderID int) ([]*models.OrderItem, error)
	UpdateStatus(id int, status string) error
}

// OrderService handles order placement and retrieval.
type OrderService struct {
	orders   OrderStore
	products ProductStore
}

// NewOrderService constructs an OrderService.
func NewOrderService(orders OrderStore, products ProductStore) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// CreateOrderItemRequest is one line of an inbound order.
type CreateOrderItemRequest struct {
	ProductID int `json:"productId" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest is the inbound order shape. Prices are never accepted
// from the client; they are snapshotted from the catalog at placement time.
type CreateOrderRequest struct {
	Items       []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	PhoneNumber *string                  `json:"phoneNumber"`
}

// UpdateOrderStatusRequest sets a new status on the admin surface.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderItemResponse is the outbound order line shape.
type OrderItemResponse struct {
	ID              int             `json:"id"`
	ProductID       int             `json:"productId"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
}

// OrderResponse is the outbound order shape.
type OrderResponse struct {
	ID              int                  `json:"id"`
	TotalPrice      *decimal.Decimal     `json:"totalPrice,omitempty"`
	Status          string               `json:"status"`
	MpesaCheckoutID *string              `json:"mpesaCheckoutId,omitempty"`
	MpesaReceipt    *string              `json:"mpesaReceipt,omitempty"`
	PhoneNumber     *string              `json:"phoneNumber,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	UserID          int                  `json:"userId"`
	Items           []*OrderItemResponse `json:"items,omitempty"`
}

// newOrderResponse converts a stored order and its items into the outbound
// shape.
func newOrderResponse(o *models.Order, items []*models.OrderItem) *OrderResponse {
	resp := &OrderResponse{
		ID:              o.ID,
		Status:          o.Status,
		MpesaCheckoutID: o.MpesaCheckoutID,
		MpesaReceipt:    o.MpesaReceipt,
		PhoneNumber:     o.PhoneNumber,
		CreatedAt:       o.CreatedAt,
		UserID:          o.UserID,
	}
	if o.TotalPrice.Valid {
		total := o.TotalPrice.Decimal
		resp.TotalPrice = &total
	}
	for _, item := range items {
		resp.Items = append(resp.Items, &OrderItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		})
	}
	return resp
}

// CreateOrder places an order for a user. Each line snapshots the product's
// current price into price_at_purchase; the total is the decimal sum of the
// snapshots times quantities. Order and items are written in one
// transaction, which also decrements stock.
func (s *OrderService) CreateOrder(userID int, req *CreateOrderRequest) (*OrderResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	total := decimal.Zero
	items := make([]*models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		product, err := s.products.GetByID(line.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, utils.ErrProductNotFound
			}
			return nil, err
		}

		snapshot := product.Price.Round(2)
		total = total.Add(snapshot.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, &models.OrderItem{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			PriceAtPurchase: snapshot,
		})
	}

	order := &models.Order{
		TotalPrice:  decimal.NewNullDecimal(total.Round(2)),
		PhoneNumber: req.PhoneNumber,
		UserID:      userID,
	}
	if err := s.orders.CreateWithItems(order, items); err != nil {
		return nil, err
	}

	log.Info().Int("order_id", order.ID).Int("user_id", userID).
		Str("total", total.StringFixed(2)).Msg("order placed")
	return newOrderResponse(order, items), nil
}

// GetOrder retrieves an order with its items. Non-admin callers may only
// read their own orders.
func (s *OrderService) GetOrder(id, callerID int, callerIsAdmin bool) (*OrderResponse, error) {
	order, err := s.orders.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}
	if !callerIsAdmin && order.UserID != callerID {
		return nil, utils.ErrForbidden
	}

	items, err := s.orders.ListItems(id)
	if err != nil {
		return nil, err
	}
	return newOrderResponse(order, items), nil
}

// ListUserOrders retrieves the caller's orders without items.
func (s *OrderService) ListUserOrders(userID int) ([]*OrderResponse, error) {
	orders, err := s.orders.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderResponse(o, nil))
	}
	return out, nil
}

// ListOrders returns a page of orders for the admin surface, optionally
// filtered by status, plus the total count.
func (s *OrderService) ListOrders(page, limit int, status string) ([]*OrderResponse, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	orders, err := s.orders.List(limit, (page-1)*limit, status)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.Count(status)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderResponse(o, nil))
	}
	return out, total, nil
}

// UpdateOrderStatus sets a new status. The status column is an open string
// enum; transition validity belongs to order-processing logic, so only
// presence is validated here.
func (s *OrderService) UpdateOrderStatus(id int, req *UpdateOrderStatusRequest) (*OrderResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(id, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}

	order, err := s.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	return newOrderResponse(order, nil), nil
}
