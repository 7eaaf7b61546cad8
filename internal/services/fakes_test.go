package services

import (
	"printshop_backend/internal/models"
	"printshop_backend/internal/repositories"
)

// In-memory fakes for the repository interfaces. They keep just enough
// behavior (not-found errors, duplicate detection) to exercise the services
// without a database.

type fakeTxManager struct{}

var _ repositories.TxManager = (*fakeTxManager)(nil)

func (f *fakeTxManager) WithTx(fn func(tx repositories.SQLExecutor) error) error {
	return fn(nil)
}

// --- fakeClientRepo ---

type fakeClientRepo struct {
	clients map[string]*models.Client
}

var _ repositories.ClientRepository = (*fakeClientRepo)(nil)

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[string]*models.Client{}}
}

func (f *fakeClientRepo) CreateClient(_ repositories.SQLExecutor, client *models.Client) error {
	stored := *client
	f.clients[client.ID] = &stored
	return nil
}

func (f *fakeClientRepo) GetClientByID(clientID string) (*models.Client, error) {
	client, ok := f.clients[clientID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *client
	return &copied, nil
}

func (f *fakeClientRepo) GetClients() ([]models.Client, error) {
	out := []models.Client{}
	for _, client := range f.clients {
		out = append(out, *client)
	}
	return out, nil
}

func (f *fakeClientRepo) UpdateClient(_ repositories.SQLExecutor, client *models.Client) error {
	if _, ok := f.clients[client.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *client
	f.clients[client.ID] = &stored
	return nil
}

func (f *fakeClientRepo) DeleteClient(_ repositories.SQLExecutor, clientID string) error {
	if _, ok := f.clients[clientID]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.clients, clientID)
	return nil
}

func (f *fakeClientRepo) CountClients() (int, error) {
	return len(f.clients), nil
}

// --- fakeProductRepo ---

type fakeProductRepo struct {
	products map[string]*models.Product
	assets   map[string][]models.ProductAsset
}

var _ repositories.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: map[string]*models.Product{},
		assets:   map[string][]models.ProductAsset{},
	}
}

func (f *fakeProductRepo) CreateProduct(_ repositories.SQLExecutor, product *models.Product) error {
	stored := *product
	f.products[product.ID] = &stored
	return nil
}

func (f *fakeProductRepo) GetProductByID(productID string) (*models.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepo) GetProducts(includeArchived bool) ([]models.Product, error) {
	out := []models.Product{}
	for _, product := range f.products {
		if product.IsArchived && !includeArchived {
			continue
		}
		out = append(out, *product)
	}
	return out, nil
}

func (f *fakeProductRepo) UpdateProduct(_ repositories.SQLExecutor, product *models.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *product
	f.products[product.ID] = &stored
	return nil
}

func (f *fakeProductRepo) ArchiveProduct(_ repositories.SQLExecutor, productID string) error {
	product, ok := f.products[productID]
	if !ok {
		return repositories.ErrNotFound
	}
	product.IsArchived = true
	return nil
}

func (f *fakeProductRepo) GetAssetsByProductIDs(productIDs []string) (map[string][]models.ProductAsset, error) {
	out := map[string][]models.ProductAsset{}
	for _, id := range productIDs {
		if assets, ok := f.assets[id]; ok {
			out[id] = assets
		}
	}
	return out, nil
}

func (f *fakeProductRepo) UpsertAsset(_ repositories.SQLExecutor, asset *models.ProductAsset) error {
	existing := f.assets[asset.ProductID]
	for i := range existing {
		if equalStringPtr(existing[i].Color, asset.Color) && existing[i].View == asset.View {
			existing[i] = *asset
			return nil
		}
	}
	f.assets[asset.ProductID] = append(existing, *asset)
	return nil
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// --- fakeInventoryRepo ---

type fakeInventoryRepo struct {
	items []models.InventoryItem
}

var _ repositories.InventoryRepository = (*fakeInventoryRepo)(nil)

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{}
}

func (f *fakeInventoryRepo) CreateItem(_ repositories.SQLExecutor, item *models.InventoryItem) error {
	for _, existing := range f.items {
		if equalStringPtr(existing.ProductID, item.ProductID) &&
			equalStringPtr(existing.Color, item.Color) &&
			equalStringPtr(existing.Size, item.Size) &&
			item.ProductID != nil {
			return repositories.ErrDuplicateKey
		}
	}
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeInventoryRepo) CreateItems(_ repositories.SQLExecutor, items []models.InventoryItem) error {
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeInventoryRepo) GetItemByID(itemID string) (*models.InventoryItem, error) {
	for _, item := range f.items {
		if item.ID == itemID {
			copied := item
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeInventoryRepo) GetItems() ([]models.InventoryItem, error) {
	out := make([]models.InventoryItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeInventoryRepo) GetItemsByProductIDs(productIDs []string) (map[string][]models.InventoryItem, error) {
	wanted := map[string]struct{}{}
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	out := map[string][]models.InventoryItem{}
	for _, item := range f.items {
		if item.ProductID == nil {
			continue
		}
		if _, ok := wanted[*item.ProductID]; ok {
			out[*item.ProductID] = append(out[*item.ProductID], item)
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) GetTrackedProductIDs(_ repositories.SQLExecutor) (map[string]struct{}, error) {
	out := map[string]struct{}{}
	for _, item := range f.items {
		if item.ProductID != nil {
			out[*item.ProductID] = struct{}{}
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) UpdateItem(_ repositories.SQLExecutor, item *models.InventoryItem) error {
	for i := range f.items {
		if f.items[i].ID == item.ID {
			continue
		}
		if item.ProductID != nil &&
			equalStringPtr(f.items[i].ProductID, item.ProductID) &&
			equalStringPtr(f.items[i].Color, item.Color) &&
			equalStringPtr(f.items[i].Size, item.Size) {
			return repositories.ErrDuplicateKey
		}
	}
	for i := range f.items {
		if f.items[i].ID == item.ID {
			f.items[i] = *item
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeInventoryRepo) UpdateQuantity(_ repositories.SQLExecutor, itemID string, quantity int) (*models.InventoryItem, error) {
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items[i].Quantity = &quantity
			copied := f.items[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeInventoryRepo) DeleteItem(_ repositories.SQLExecutor, itemID string) error {
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeInventoryRepo) AcquireSyncLock(_ repositories.SQLExecutor) error {
	return nil
}

// --- fakeOrderRepo ---

type fakeOrderRepo struct {
	orders map[string]*models.Order
	items  map[string][]models.OrderItem
}

var _ repositories.OrderRepository = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[string]*models.Order{},
		items:  map[string][]models.OrderItem{},
	}
}

func (f *fakeOrderRepo) CreateOrder(_ repositories.SQLExecutor, order *models.Order) error {
	stored := *order
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(orderID string) (*models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) GetOrders(filters models.OrderFilters) ([]models.Order, error) {
	out := []models.Order{}
	for _, order := range f.orders {
		if filters.ClientID != nil && order.ClientID != *filters.ClientID {
			continue
		}
		if filters.Status != nil && order.Status != *filters.Status {
			continue
		}
		copied := *order
		for _, item := range f.items[order.ID] {
			copied.ItemsCount += item.Quantity
		}
		out = append(out, copied)
	}
	return out, nil
}

func (f *fakeOrderRepo) GetRecentOrders(limit int) ([]models.Order, error) {
	out := []models.Order{}
	for _, order := range f.orders {
		if len(out) == limit {
			break
		}
		out = append(out, *order)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(_ repositories.SQLExecutor, orderID string, newStatus string) error {
	order, ok := f.orders[orderID]
	if !ok {
		return repositories.ErrNotFound
	}
	order.Status = newStatus
	return nil
}

func (f *fakeOrderRepo) DeleteOrder(_ repositories.SQLExecutor, orderID string) error {
	if _, ok := f.orders[orderID]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.orders, orderID)
	return nil
}

func (f *fakeOrderRepo) CountOrdersByClientID(clientID string) (int, error) {
	count := 0
	for _, order := range f.orders {
		if order.ClientID == clientID {
			count++
		}
	}
	return count, nil
}

func (f *fakeOrderRepo) CountOrdersByStatus() (map[string]int, error) {
	counts := map[string]int{}
	for _, order := range f.orders {
		counts[order.Status]++
	}
	return counts, nil
}

func (f *fakeOrderRepo) CreateOrderItems(_ repositories.SQLExecutor, items []models.OrderItem) error {
	for _, item := range items {
		f.items[item.OrderID] = append(f.items[item.OrderID], item)
	}
	return nil
}

func (f *fakeOrderRepo) GetOrderItemsByOrderID(orderID string) ([]models.OrderItem, error) {
	out := make([]models.OrderItem, len(f.items[orderID]))
	copy(out, f.items[orderID])
	return out, nil
}

func (f *fakeOrderRepo) DeleteOrderItemsByOrderID(_ repositories.SQLExecutor, orderID string) (int64, error) {
	count := int64(len(f.items[orderID]))
	delete(f.items, orderID)
	return count, nil
}
