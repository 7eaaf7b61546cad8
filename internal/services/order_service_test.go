package services

import (
	"testing"

	"printshop_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderServiceFixture struct {
	svc           OrderService
	orderRepo     *fakeOrderRepo
	clientRepo    *fakeClientRepo
	productRepo   *fakeProductRepo
	inventoryRepo *fakeInventoryRepo
}

func newOrderServiceForTest(t *testing.T) *orderServiceFixture {
	t.Helper()
	f := &orderServiceFixture{
		orderRepo:     newFakeOrderRepo(),
		clientRepo:    newFakeClientRepo(),
		productRepo:   newFakeProductRepo(),
		inventoryRepo: newFakeInventoryRepo(),
	}
	f.svc = NewOrderService(f.orderRepo, f.clientRepo, f.productRepo, f.inventoryRepo, &fakeTxManager{})
	return f
}

func (f *orderServiceFixture) seedClient(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, f.clientRepo.CreateClient(nil, &models.Client{ID: id, Name: name}))
}

// seedProduct registers a product whose selectable variants come from its
// inventory rows.
func (f *orderServiceFixture) seedProduct(t *testing.T, id string, colors, sizes []string) {
	t.Helper()
	require.NoError(t, f.productRepo.CreateProduct(nil, &models.Product{ID: id, Name: "Product " + id}))

	rows := []models.InventoryItem{}
	for ci := range colors {
		for si := range sizes {
			rows = append(rows, models.InventoryItem{
				ID:        id + "-" + colors[ci] + "-" + sizes[si],
				ProductID: &id,
				Name:      "Product " + id,
				Color:     &colors[ci],
				Size:      &sizes[si],
			})
		}
	}
	require.NoError(t, f.inventoryRepo.CreateItems(nil, rows))
}

func TestCreateOrderSnapshotsClientName(t *testing.T) {
	f := newOrderServiceForTest(t)
	f.seedClient(t, "c1", "Acme GmbH")
	f.seedProduct(t, "p1", []string{"black"}, []string{"M"})

	order, err := f.svc.CreateOrder(CreateOrderRequest{
		ClientID: "c1",
		Items: []CreateOrderItemRequest{
			{ProductID: "p1", Color: "black", Size: "M", Quantity: 10, Branding: BrandingRequest{Method: "print", Position: "front"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme GmbH", order.CustomerName)
	assert.Equal(t, StatusDraft, order.Status, "new orders always start as drafts")
	assert.Equal(t, 10, order.ItemsCount)

	// Renaming the client must not touch the stored snapshot.
	client, _ := f.clientRepo.GetClientByID("c1")
	client.Name = "Acme AG"
	require.NoError(t, f.clientRepo.UpdateClient(nil, client))

	reloaded, err := f.svc.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme GmbH", reloaded.CustomerName)
}

func TestCreateOrderRejectsUnknownClient(t *testing.T) {
	f := newOrderServiceForTest(t)
	f.seedProduct(t, "p1", []string{"black"}, []string{"M"})

	_, err := f.svc.CreateOrder(CreateOrderRequest{
		ClientID: "ghost",
		Items: []CreateOrderItemRequest{
			{ProductID: "p1", Color: "black", Size: "M", Quantity: 1, Branding: BrandingRequest{Method: "print", Position: "front"}},
		},
	})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestCreateOrderValidatesVariantMembership(t *testing.T) {
	f := newOrderServiceForTest(t)
	f.seedClient(t, "c1", "Acme GmbH")
	f.seedProduct(t, "p1", []string{"black", "white"}, []string{"S", "M"})

	_, err := f.svc.CreateOrder(CreateOrderRequest{
		ClientID: "c1",
		Items: []CreateOrderItemRequest{
			{ProductID: "p1", Color: "neon-pink", Size: "M", Quantity: 1, Branding: BrandingRequest{Method: "print", Position: "front"}},
		},
	})
	assert.ErrorIs(t, err, ErrValidation)

	// Nothing may be written when one line fails.
	orders, _ := f.svc.GetOrders(models.OrderFilters{})
	assert.Empty(t, orders)
}

func TestCreateOrderRecordsNotApplicableForVariantlessProduct(t *testing.T) {
	f := newOrderServiceForTest(t)
	f.seedClient(t, "c1", "Acme GmbH")
	// Product with one inventory row carrying no color or size.
	require.NoError(t, f.productRepo.CreateProduct(nil, &models.Product{ID: "p1", Name: "Sticker"}))
	pid := "p1"
	require.NoError(t, f.inventoryRepo.CreateItems(nil, []models.InventoryItem{
		{ID: "row", ProductID: &pid, Name: "Sticker"},
	}))

	order, err := f.svc.CreateOrder(CreateOrderRequest{
		ClientID: "c1",
		Items: []CreateOrderItemRequest{
			{ProductID: "p1", Quantity: 500, Branding: BrandingRequest{Method: "print", Position: "back"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, VariantNotApplicable, order.Items[0].Color)
	assert.Equal(t, VariantNotApplicable, order.Items[0].Size)
}

func TestUpdateOrderStatusAcceptsAnyKnownStatus(t *testing.T) {
	f := newOrderServiceForTest(t)
	f.seedClient(t, "c1", "Acme GmbH")
	f.seedProduct(t, "p1", []string{"black"}, []string{"M"})

	order, err := f.svc.CreateOrder(CreateOrderRequest{
		ClientID: "c1",
		Items: []CreateOrderItemRequest{
			{ProductID: "p1", Color: "black", Size: "M", Quantity: 1, Branding: BrandingRequest{Method: "embroidery", Position: "front"}},
		},
	})
	require.NoError(t, err)

	// Forward through the pipeline, then back again.
	for _, status := range []string{StatusConfirmed, StatusProduction, StatusDone, StatusDraft} {
		updated, err := f.svc.UpdateOrderStatus(order.ID, UpdateOrderStatusRequest{Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	f := newOrderServiceForTest(t)
	f.seedClient(t, "c1", "Acme GmbH")
	f.seedProduct(t, "p1", []string{"black"}, []string{"M"})

	order, err := f.svc.CreateOrder(CreateOrderRequest{
		ClientID: "c1",
		Items: []CreateOrderItemRequest{
			{ProductID: "p1", Color: "black", Size: "M", Quantity: 1, Branding: BrandingRequest{Method: "print", Position: "front"}},
		},
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateOrderStatus(order.ID, UpdateOrderStatusRequest{Status: "shipped"})
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	unchanged, err := f.svc.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, unchanged.Status)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	f := newOrderServiceForTest(t)
	f.seedClient(t, "c1", "Acme GmbH")
	f.seedProduct(t, "p1", []string{"black"}, []string{"M", "L"})

	order, err := f.svc.CreateOrder(CreateOrderRequest{
		ClientID: "c1",
		Items: []CreateOrderItemRequest{
			{ProductID: "p1", Color: "black", Size: "M", Quantity: 5, Branding: BrandingRequest{Method: "print", Position: "front"}},
			{ProductID: "p1", Color: "black", Size: "L", Quantity: 5, Branding: BrandingRequest{Method: "print", Position: "back"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)

	require.NoError(t, f.svc.DeleteOrder(order.ID))

	_, err = f.svc.GetOrderByID(order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	items, _ := f.orderRepo.GetOrderItemsByOrderID(order.ID)
	assert.Empty(t, items)
}

func TestDeleteOrderNotFound(t *testing.T) {
	f := newOrderServiceForTest(t)
	assert.ErrorIs(t, f.svc.DeleteOrder("missing"), ErrOrderNotFound)
}

func TestGetOrdersFiltersByStatus(t *testing.T) {
	f := newOrderServiceForTest(t)
	f.seedClient(t, "c1", "Acme GmbH")
	f.seedProduct(t, "p1", []string{"black"}, []string{"M"})

	item := CreateOrderItemRequest{ProductID: "p1", Color: "black", Size: "M", Quantity: 1, Branding: BrandingRequest{Method: "print", Position: "front"}}
	first, err := f.svc.CreateOrder(CreateOrderRequest{ClientID: "c1", Items: []CreateOrderItemRequest{item}})
	require.NoError(t, err)
	_, err = f.svc.CreateOrder(CreateOrderRequest{ClientID: "c1", Items: []CreateOrderItemRequest{item}})
	require.NoError(t, err)

	_, err = f.svc.UpdateOrderStatus(first.ID, UpdateOrderStatusRequest{Status: StatusProduction})
	require.NoError(t, err)

	status := StatusProduction
	inProduction, err := f.svc.GetOrders(models.OrderFilters{Status: &status})
	require.NoError(t, err)
	require.Len(t, inProduction, 1)
	assert.Equal(t, first.ID, inProduction[0].ID)
}
