package services

import (
	"errors"
	"fmt"
	"strings"

	"printshop_backend/internal/models"
	"printshop_backend/internal/repositories"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Inventory ---
var (
	ErrInventoryItemNotFound = errors.New("inventory item not found")
)

// syncCategoryFallback is applied to synthesized rows whose product has no
// category of its own.
const syncCategoryFallback = "General"

// --- Inventory DTOs ---

// CreateInventoryItemRequest covers both product variants and raw materials
// (ProductID nil).
type CreateInventoryItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	SKU         *string `json:"sku"`
	Category    *string `json:"category"`
	ProductID   *string `json:"product_id"`
	Color       *string `json:"color"`
	Size        *string `json:"size"`
	Quantity    *int    `json:"quantity" binding:"omitempty,gte=0"`
	MinQuantity *int    `json:"min_quantity" binding:"omitempty,gte=0"`
}

// UpdateInventoryItemRequest carries partial updates; nil fields are left
// untouched.
type UpdateInventoryItemRequest struct {
	Name        *string `json:"name"`
	SKU         *string `json:"sku"`
	Category    *string `json:"category"`
	Color       *string `json:"color"`
	Size        *string `json:"size"`
	Quantity    *int    `json:"quantity" binding:"omitempty,gte=0"`
	MinQuantity *int    `json:"min_quantity" binding:"omitempty,gte=0"`
}

// UpdateQuantityRequest sets the absolute quantity of one inventory row.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

// --- InventoryService Interface ---
type InventoryService interface {
	GetInventory() ([]models.InventoryItem, error)
	AddItem(req CreateInventoryItemRequest) (*models.InventoryItem, error)
	UpdateItem(itemID string, req UpdateInventoryItemRequest) (*models.InventoryItem, error)
	UpdateQuantity(itemID string, quantity int) (*models.InventoryItem, error)
	DeleteItem(itemID string) error
	SyncWithCatalog() (int, error)
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	productRepo   repositories.ProductRepository
	tx            repositories.TxManager
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(
	ir repositories.InventoryRepository,
	pr repositories.ProductRepository,
	tx repositories.TxManager,
) InventoryService {
	return &inventoryService{
		inventoryRepo: ir,
		productRepo:   pr,
		tx:            tx,
	}
}

func (s *inventoryService) GetInventory() ([]models.InventoryItem, error) {
	items, err := s.inventoryRepo.GetItems()
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return items, nil
}

func (s *inventoryService) AddItem(req CreateInventoryItemRequest) (*models.InventoryItem, error) {
	quantity := 0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	minQuantity := defaultMinQuantity
	if req.MinQuantity != nil {
		minQuantity = *req.MinQuantity
	}

	if req.ProductID != nil {
		if _, err := s.productRepo.GetProductByID(*req.ProductID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, fmt.Errorf("failed to check product for inventory item: %w", err)
		}
	}

	item := &models.InventoryItem{
		ID:          uuid.NewString(),
		ProductID:   req.ProductID,
		Name:        req.Name,
		SKU:         req.SKU,
		Category:    req.Category,
		Color:       req.Color,
		Size:        req.Size,
		Quantity:    &quantity,
		MinQuantity: &minQuantity,
	}

	err := s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		return s.inventoryRepo.CreateItem(tx, item)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: an inventory row for this product, color and size already exists", ErrValidation)
		}
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) UpdateItem(itemID string, req UpdateInventoryItemRequest) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item for update: %w", err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		item.Name = *req.Name
	}
	if req.SKU != nil {
		item.SKU = req.SKU
	}
	if req.Category != nil {
		item.Category = req.Category
	}
	if req.Color != nil {
		item.Color = req.Color
	}
	if req.Size != nil {
		item.Size = req.Size
	}
	if req.Quantity != nil {
		item.Quantity = req.Quantity
	}
	if req.MinQuantity != nil {
		item.MinQuantity = req.MinQuantity
	}

	err = s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		return s.inventoryRepo.UpdateItem(tx, item)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: an inventory row for this product, color and size already exists", ErrValidation)
		}
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) UpdateQuantity(itemID string, quantity int) (*models.InventoryItem, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}

	var item *models.InventoryItem
	err := s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		var err error
		item, err = s.inventoryRepo.UpdateQuantity(tx, itemID, quantity)
		return err
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, fmt.Errorf("failed to update quantity for inventory item %s: %w", itemID, err)
	}
	return item, nil
}

func (s *inventoryService) DeleteItem(itemID string) error {
	err := s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		return s.inventoryRepo.DeleteItem(tx, itemID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInventoryItemNotFound
		}
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}

// SyncWithCatalog backfills one zero-quantity inventory row for every
// active product that has no inventory row at all, so the whole catalog
// becomes stock-tracked. Returns the number of rows created; zero means the
// catalog was already fully backed, which makes re-runs no-ops. The
// transaction holds an advisory lock so two concurrent syncs cannot both
// see the same product as untracked.
func (s *inventoryService) SyncWithCatalog() (int, error) {
	products, err := s.productRepo.GetProducts(false)
	if err != nil {
		return 0, fmt.Errorf("failed to load product catalog for sync: %w", err)
	}

	created := 0
	err = s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		if err := s.inventoryRepo.AcquireSyncLock(tx); err != nil {
			return err
		}

		tracked, err := s.inventoryRepo.GetTrackedProductIDs(tx)
		if err != nil {
			return err
		}

		missing := []models.InventoryItem{}
		for i := range products {
			product := &products[i]
			if _, ok := tracked[product.ID]; ok {
				continue
			}
			missing = append(missing, synthesizeTrackingRow(product))
		}
		if len(missing) == 0 {
			return nil
		}

		if err := s.inventoryRepo.CreateItems(tx, missing); err != nil {
			return fmt.Errorf("failed to insert %d synthesized inventory rows: %w", len(missing), err)
		}
		created = len(missing)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// synthesizeTrackingRow builds the single backfill row for an untracked
// product: quantity 0, default threshold, and a deterministic SKU so no
// collision check is needed.
func synthesizeTrackingRow(product *models.Product) models.InventoryItem {
	quantity := 0
	minQuantity := defaultMinQuantity
	sku := syntheticSKU(product.ID)

	category := syncCategoryFallback
	if product.Category != nil && *product.Category != "" {
		category = *product.Category
	}

	return models.InventoryItem{
		ID:          uuid.NewString(),
		ProductID:   &product.ID,
		Name:        product.Name,
		SKU:         &sku,
		Category:    &category,
		Quantity:    &quantity,
		MinQuantity: &minQuantity,
		Branch:      product.Branch,
		Gender:      product.Gender,
		Fit:         product.Fit,
		Fabric:      product.Fabric,
		GSM:         product.GSM,
	}
}

// syntheticSKU derives a unique SKU from the product id: fixed prefix plus
// the first 8 characters of the id, upper-cased.
func syntheticSKU(productID string) string {
	id := productID
	if len(id) > 8 {
		id = id[:8]
	}
	return "SYN-" + strings.ToUpper(id)
}
