package services

import (
	"strings"
	"testing"

	"printshop_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryServiceForTest() (InventoryService, *fakeProductRepo, *fakeInventoryRepo) {
	productRepo := newFakeProductRepo()
	inventoryRepo := newFakeInventoryRepo()
	svc := NewInventoryService(inventoryRepo, productRepo, &fakeTxManager{})
	return svc, productRepo, inventoryRepo
}

func TestSyncWithCatalogBackfillsUntrackedProducts(t *testing.T) {
	svc, productRepo, inventoryRepo := newInventoryServiceForTest()

	tracked := &models.Product{ID: "tracked-product", Name: "Tracked"}
	untrackedA := &models.Product{ID: "untracked-a", Name: "Untracked A"}
	untrackedB := &models.Product{ID: "untracked-b", Name: "Untracked B"}
	for _, p := range []*models.Product{tracked, untrackedA, untrackedB} {
		require.NoError(t, productRepo.CreateProduct(nil, p))
	}

	qty := 5
	require.NoError(t, inventoryRepo.CreateItems(nil, []models.InventoryItem{
		{ID: "existing", ProductID: &tracked.ID, Name: tracked.Name, Quantity: &qty},
	}))

	created, err := svc.SyncWithCatalog()
	require.NoError(t, err)
	assert.Equal(t, 2, created, "one row per previously untracked product")

	items, _ := inventoryRepo.GetItems()
	assert.Len(t, items, 3)

	byProduct, _ := inventoryRepo.GetItemsByProductIDs([]string{untrackedA.ID})
	rows := byProduct[untrackedA.ID]
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Quantity)
	assert.Equal(t, 0, *rows[0].Quantity)
	require.NotNil(t, rows[0].MinQuantity)
	assert.Equal(t, 10, *rows[0].MinQuantity)
}

func TestSyncWithCatalogIsIdempotent(t *testing.T) {
	svc, productRepo, _ := newInventoryServiceForTest()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, productRepo.CreateProduct(nil, &models.Product{ID: id, Name: "Product " + id}))
	}

	created, err := svc.SyncWithCatalog()
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	createdAgain, err := svc.SyncWithCatalog()
	require.NoError(t, err)
	assert.Equal(t, 0, createdAgain, "re-running against a fully tracked catalog is a no-op")
}

func TestSyncSkipsArchivedProducts(t *testing.T) {
	svc, productRepo, _ := newInventoryServiceForTest()

	require.NoError(t, productRepo.CreateProduct(nil, &models.Product{ID: "live", Name: "Live"}))
	require.NoError(t, productRepo.CreateProduct(nil, &models.Product{ID: "gone", Name: "Gone", IsArchived: true}))

	created, err := svc.SyncWithCatalog()
	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

func TestSyncSyntheticSKUAndCategoryFallback(t *testing.T) {
	svc, productRepo, inventoryRepo := newInventoryServiceForTest()

	apparel := "Apparel"
	withCategory := &models.Product{ID: "f47ac10b-58cc-4372-a567-0e02b2c3d479", Name: "Categorized", Category: &apparel}
	withoutCategory := &models.Product{ID: "9b2ffadc-0000-4000-8000-000000000000", Name: "Uncategorized"}
	require.NoError(t, productRepo.CreateProduct(nil, withCategory))
	require.NoError(t, productRepo.CreateProduct(nil, withoutCategory))

	_, err := svc.SyncWithCatalog()
	require.NoError(t, err)

	byProduct, _ := inventoryRepo.GetItemsByProductIDs([]string{withCategory.ID, withoutCategory.ID})

	row := byProduct[withCategory.ID][0]
	require.NotNil(t, row.SKU)
	assert.Equal(t, "SYN-F47AC10B", *row.SKU)
	require.NotNil(t, row.Category)
	assert.Equal(t, "Apparel", *row.Category)

	row = byProduct[withoutCategory.ID][0]
	require.NotNil(t, row.SKU)
	assert.True(t, strings.HasPrefix(*row.SKU, "SYN-"))
	require.NotNil(t, row.Category)
	assert.Equal(t, "General", *row.Category)
}

func TestAddItemAppliesDefaults(t *testing.T) {
	svc, _, _ := newInventoryServiceForTest()

	item, err := svc.AddItem(CreateInventoryItemRequest{Name: "DTF Film Roll"})
	require.NoError(t, err)
	require.NotNil(t, item.Quantity)
	assert.Equal(t, 0, *item.Quantity)
	require.NotNil(t, item.MinQuantity)
	assert.Equal(t, 10, *item.MinQuantity)
	assert.Nil(t, item.ProductID, "raw materials are not linked to a product")
}

func TestAddItemRejectsUnknownProduct(t *testing.T) {
	svc, _, _ := newInventoryServiceForTest()

	missing := "no-such-product"
	_, err := svc.AddItem(CreateInventoryItemRequest{Name: "Variant", ProductID: &missing})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateItemRejectsDuplicateVariant(t *testing.T) {
	svc, productRepo, inventoryRepo := newInventoryServiceForTest()

	product := &models.Product{ID: "p1", Name: "Tee"}
	require.NoError(t, productRepo.CreateProduct(nil, product))

	black, sizeM, sizeL := "black", "M", "L"
	require.NoError(t, inventoryRepo.CreateItems(nil, []models.InventoryItem{
		{ID: "row-m", ProductID: &product.ID, Name: product.Name, Color: &black, Size: &sizeM},
		{ID: "row-l", ProductID: &product.ID, Name: product.Name, Color: &black, Size: &sizeL},
	}))

	// Re-labelling the L row as another M row would collide with row-m.
	_, err := svc.UpdateItem("row-l", UpdateInventoryItemRequest{Size: &sizeM})
	assert.ErrorIs(t, err, ErrValidation)

	unchanged, err := inventoryRepo.GetItemByID("row-l")
	require.NoError(t, err)
	require.NotNil(t, unchanged.Size)
	assert.Equal(t, "L", *unchanged.Size)
}

func TestUpdateQuantityRejectsNegative(t *testing.T) {
	svc, _, inventoryRepo := newInventoryServiceForTest()

	qty := 4
	require.NoError(t, inventoryRepo.CreateItems(nil, []models.InventoryItem{
		{ID: "i1", Name: "Row", Quantity: &qty},
	}))

	_, err := svc.UpdateQuantity("i1", -1)
	assert.ErrorIs(t, err, ErrValidation)

	item, err := svc.UpdateQuantity("i1", 9)
	require.NoError(t, err)
	require.NotNil(t, item.Quantity)
	assert.Equal(t, 9, *item.Quantity)
}

func TestDeleteItemNotFound(t *testing.T) {
	svc, _, _ := newInventoryServiceForTest()
	assert.ErrorIs(t, svc.DeleteItem("missing"), ErrInventoryItemNotFound)
}
