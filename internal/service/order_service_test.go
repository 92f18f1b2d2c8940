package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukalink/duka_api/internal/models"
	"github.com/dukalink/duka_api/internal/utils"
)

func seedProduct(t *testing.T, store *fakeProductStore, name, price string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		StockQty:   stock,
		CategoryID: 1,
	}
	require.NoError(t, store.Create(p))
	return p
}

func TestCreateOrderSnapshotsPriceAndTotal(t *testing.T) {
	products := newFakeProductStore()
	orders := newFakeOrderStore()
	svc := NewOrderService(orders, products)

	maize := seedProduct(t, products, "Maize flour 2kg", "189.50", 40)
	milk := seedProduct(t, products, "Milk 500ml", "60.00", 100)

	resp, err := svc.CreateOrder(7, &CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ProductID: maize.ID, Quantity: 2},
			{ProductID: milk.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, resp.TotalPrice)
	assert.Equal(t, "559.00", resp.TotalPrice.StringFixed(2))
	assert.Equal(t, models.OrderStatusPending, resp.Status)
	assert.Equal(t, 7, resp.UserID)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "189.50", resp.Items[0].PriceAtPurchase.StringFixed(2))
	assert.Equal(t, "60.00", resp.Items[1].PriceAtPurchase.StringFixed(2))
}

func TestCreateOrderKeepsSnapshotAfterPriceChange(t *testing.T) {
	products := newFakeProductStore()
	orders := newFakeOrderStore()
	svc := NewOrderService(orders, products)

	maize := seedProduct(t, products, "Maize flour 2kg", "189.50", 40)

	resp, err := svc.CreateOrder(7, &CreateOrderRequest{
		Items: []CreateOrderItemRequest{{ProductID: maize.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	maize.Price = decimal.RequireFromString("250.00")
	require.NoError(t, products.Update(maize))

	got, err := svc.GetOrder(resp.ID, 7, false)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "189.50", got.Items[0].PriceAtPurchase.StringFixed(2))
	assert.Equal(t, "189.50", got.TotalPrice.StringFixed(2))
}

func TestCreateOrderValidation(t *testing.T) {
	svc := NewOrderService(newFakeOrderStore(), newFakeProductStore())

	var verr *utils.ValidationError

	_, err := svc.CreateOrder(7, &CreateOrderRequest{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Field)

	_, err = svc.CreateOrder(7, &CreateOrderRequest{
		Items: []CreateOrderItemRequest{{ProductID: 1, Quantity: 0}},
	})
	assert.ErrorAs(t, err, &verr)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	svc := NewOrderService(newFakeOrderStore(), newFakeProductStore())

	_, err := svc.CreateOrder(7, &CreateOrderRequest{
		Items: []CreateOrderItemRequest{{ProductID: 99, Quantity: 1}},
	})
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestGetOrderOwnership(t *testing.T) {
	products := newFakeProductStore()
	orders := newFakeOrderStore()
	svc := NewOrderService(orders, products)

	maize := seedProduct(t, products, "Maize flour 2kg", "189.50", 40)
	resp, err := svc.CreateOrder(7, &CreateOrderRequest{
		Items: []CreateOrderItemRequest{{ProductID: maize.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.GetOrder(resp.ID, 8, false)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	got, err := svc.GetOrder(resp.ID, 8, true)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)

	_, err = svc.GetOrder(999, 7, true)
	assert.ErrorIs(t, err, utils.ErrOrderNotFound)
}

func TestListOrdersFiltersByStatus(t *testing.T) {
	products := newFakeProductStore()
	orders := newFakeOrderStore()
	svc := NewOrderService(orders, products)

	maize := seedProduct(t, products, "Maize flour 2kg", "189.50", 40)
	for i := 0; i < 3; i++ {
		_, err := svc.CreateOrder(7, &CreateOrderRequest{
			Items: []CreateOrderItemRequest{{ProductID: maize.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}
	_, err := svc.UpdateOrderStatus(1, &UpdateOrderStatusRequest{Status: "paid"})
	require.NoError(t, err)

	paid, total, err := svc.ListOrders(1, 50, "paid")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, paid, 1)
	assert.Equal(t, "paid", paid[0].Status)

	all, total, err := svc.ListOrders(1, 50, "")
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, all, 3)
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	svc := NewOrderService(newFakeOrderStore(), newFakeProductStore())

	_, err := svc.UpdateOrderStatus(42, &UpdateOrderStatusRequest{Status: "paid"})
	assert.ErrorIs(t, err, utils.ErrOrderNotFound)
}
