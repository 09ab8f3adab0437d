package shop_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
	"github.com/vladislavdragonenkov/shopdesk/internal/service/shop"
	"github.com/vladislavdragonenkov/shopdesk/internal/storage/memory"
)

func newService(t *testing.T) (*shop.Service, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	svc := shop.NewService(store.Clients(), store.Products(), store.Orders(), store.Analytics(), nil, nil)
	return svc, store
}

func TestRegisterClient(t *testing.T) {
	svc, _ := newService(t)

	client, err := svc.RegisterClient("  Anna  ", "anna@example.com", "+79990000001", "Moscow")
	require.NoError(t, err)
	assert.Equal(t, int64(1), client.ID)
	assert.Equal(t, "Anna", client.Name)

	clients, err := svc.ListClients()
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "anna@example.com", clients[0].Email)
}

func TestRegisterClient_Validation(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		name    string
		email   string
		phone   string
		wantErr error
	}{
		{name: "bad email", email: "anna-at-example", phone: "+79990000001", wantErr: domain.ErrInvalidEmail},
		{name: "bad phone", email: "anna@example.com", phone: "12345", wantErr: domain.ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterClient("Anna", tt.email, tt.phone, "Moscow")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	clients, err := svc.ListClients()
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestRegisterClient_DuplicateEmail(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.RegisterClient("Anna", "anna@example.com", "+79990000001", "Moscow")
	require.NoError(t, err)

	_, err = svc.RegisterClient("Other Anna", "anna@example.com", "+79990000002", "Tver")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestRegisterProduct(t *testing.T) {
	svc, _ := newService(t)

	product, err := svc.RegisterProduct("Lamp", "45.50", "desk lamp")
	require.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
	assert.InDelta(t, 45.5, product.Price, 1e-6)

	_, err = svc.RegisterProduct("Lamp", "free", "")
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestPlaceOrder(t *testing.T) {
	svc, _ := newService(t)

	client, err := svc.RegisterClient("Anna", "anna@example.com", "+79990000001", "Moscow")
	require.NoError(t, err)
	lamp, err := svc.RegisterProduct("Lamp", "40", "")
	require.NoError(t, err)
	chair, err := svc.RegisterProduct("Chair", "120", "")
	require.NoError(t, err)

	order, err := svc.PlaceOrder(client.ID, []domain.CartLine{
		{ProductID: lamp.ID, Quantity: 2},
		{ProductID: chair.ID, Quantity: 1},
	}, "2026-08-30", 0)
	require.NoError(t, err)

	assert.Equal(t, client.ID, order.ClientID)
	assert.Equal(t, "2026-08-30", order.Date)
	assert.InDelta(t, 200.0, order.TotalCost, 1e-6)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 40.0, order.Items[0].UnitPrice, 1e-6)
}

func TestPlaceOrder_DefaultDateIsToday(t *testing.T) {
	svc, _ := newService(t)

	client, err := svc.RegisterClient("Anna", "anna@example.com", "+79990000001", "Moscow")
	require.NoError(t, err)
	lamp, err := svc.RegisterProduct("Lamp", "40", "")
	require.NoError(t, err)

	order, err := svc.PlaceOrder(client.ID, []domain.CartLine{{ProductID: lamp.ID, Quantity: 1}}, "", 0)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), order.Date)
}

func TestPlaceOrder_Discount(t *testing.T) {
	svc, _ := newService(t)

	client, err := svc.RegisterClient("Anna", "anna@example.com", "+79990000001", "Moscow")
	require.NoError(t, err)
	lamp, err := svc.RegisterProduct("Lamp", "100", "")
	require.NoError(t, err)

	order, err := svc.PlaceOrder(client.ID, []domain.CartLine{{ProductID: lamp.ID, Quantity: 2}}, "2026-08-30", 25)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, order.TotalCost, 1e-6)

	_, err = svc.PlaceOrder(client.ID, []domain.CartLine{{ProductID: lamp.ID, Quantity: 1}}, "2026-08-30", 110)
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount)
}

func TestPlaceOrder_Preconditions(t *testing.T) {
	svc, _ := newService(t)

	client, err := svc.RegisterClient("Anna", "anna@example.com", "+79990000001", "Moscow")
	require.NoError(t, err)

	_, err = svc.PlaceOrder(client.ID, nil, "2026-08-30", 0)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = svc.PlaceOrder(client.ID, []domain.CartLine{{ProductID: 777, Quantity: 1}}, "2026-08-30", 0)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.GetOrder(1)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestPurchaseHistory(t *testing.T) {
	svc, _ := newService(t)

	client, err := svc.RegisterClient("Anna", "anna@example.com", "+79990000001", "Moscow")
	require.NoError(t, err)
	lamp, err := svc.RegisterProduct("Lamp", "40", "")
	require.NoError(t, err)
	chair, err := svc.RegisterProduct("Chair", "120", "")
	require.NoError(t, err)

	_, err = svc.PlaceOrder(client.ID, []domain.CartLine{{ProductID: lamp.ID, Quantity: 3}}, "2026-08-29", 0)
	require.NoError(t, err)
	_, err = svc.PlaceOrder(client.ID, []domain.CartLine{
		{ProductID: lamp.ID, Quantity: 1},
		{ProductID: chair.ID, Quantity: 2},
	}, "2026-08-30", 0)
	require.NoError(t, err)

	rows, err := svc.PurchaseHistory(client.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Lamp", rows[0].ProductName)
	assert.Equal(t, 4, rows[0].TotalQuantity)
	assert.Equal(t, "2026-08-30", rows[0].LastPurchase)
	assert.Equal(t, "Chair", rows[1].ProductName)
	assert.Equal(t, 2, rows[1].TotalQuantity)
}

func TestAnalytics(t *testing.T) {
	svc, _ := newService(t)

	anna, err := svc.RegisterClient("Anna", "anna@example.com", "+79990000001", "Moscow")
	require.NoError(t, err)
	boris, err := svc.RegisterClient("Boris", "boris@example.com", "+79990000002", "Kazan")
	require.NoError(t, err)
	lamp, err := svc.RegisterProduct("Lamp", "40", "")
	require.NoError(t, err)

	_, err = svc.PlaceOrder(anna.ID, []domain.CartLine{{ProductID: lamp.ID, Quantity: 1}}, "2026-08-29", 0)
	require.NoError(t, err)
	_, err = svc.PlaceOrder(anna.ID, []domain.CartLine{{ProductID: lamp.ID, Quantity: 2}}, "2026-08-30", 0)
	require.NoError(t, err)
	_, err = svc.PlaceOrder(boris.ID, []domain.CartLine{{ProductID: lamp.ID, Quantity: 5}}, "2026-08-30", 0)
	require.NoError(t, err)

	byOrders, err := svc.Top5ClientsByOrders()
	require.NoError(t, err)
	require.Len(t, byOrders, 2)
	assert.Equal(t, "Anna", byOrders[0].Name)
	assert.Equal(t, 2, byOrders[0].Orders)

	byItems, err := svc.Top5ClientsByItems()
	require.NoError(t, err)
	require.Len(t, byItems, 2)
	assert.Equal(t, "Boris", byItems[0].Name)
	assert.Equal(t, 5, byItems[0].Items)

	byDate, err := svc.OrdersByDate()
	require.NoError(t, err)
	require.Len(t, byDate, 2)
	assert.Equal(t, domain.DateCount{Date: "2026-08-29", Orders: 1}, byDate[0])
	assert.Equal(t, domain.DateCount{Date: "2026-08-30", Orders: 2}, byDate[1])
}
