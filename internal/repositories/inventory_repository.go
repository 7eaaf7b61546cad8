package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"printshop_backend/internal/models"

	"github.com/lib/pq"
)

// InventoryRepository defines the interface for inventory-related database operations.
type InventoryRepository interface {
	CreateItem(executor SQLExecutor, item *models.InventoryItem) error
	CreateItems(executor SQLExecutor, items []models.InventoryItem) error
	GetItemByID(itemID string) (*models.InventoryItem, error)
	GetItems() ([]models.InventoryItem, error)
	GetItemsByProductIDs(productIDs []string) (map[string][]models.InventoryItem, error)
	GetTrackedProductIDs(executor SQLExecutor) (map[string]struct{}, error)
	UpdateItem(executor SQLExecutor, item *models.InventoryItem) error
	UpdateQuantity(executor SQLExecutor, itemID string, quantity int) (*models.InventoryItem, error)
	DeleteItem(executor SQLExecutor, itemID string) error
	AcquireSyncLock(executor SQLExecutor) error
}

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// syncLockID is the advisory lock key for the catalog sync operation. Two
// overlapping sync runs would both see the same products as untracked and
// double-insert, so sync is serialized on this lock.
const syncLockID int64 = 0x53594E43 // "SYNC"

const inventoryColumns = `id, product_id, name, sku, category, color, size,
	quantity, min_quantity, branch, gender, fit, fabric, gsm, created_at`

func scanInventoryItem(s scanner, i *models.InventoryItem) error {
	return s.Scan(
		&i.ID, &i.ProductID, &i.Name, &i.SKU, &i.Category, &i.Color, &i.Size,
		&i.Quantity, &i.MinQuantity, &i.Branch, &i.Gender, &i.Fit, &i.Fabric, &i.GSM, &i.CreatedAt,
	)
}

func (r *inventoryRepository) CreateItem(executor SQLExecutor, item *models.InventoryItem) error {
	query := `INSERT INTO inventory
	            (id, product_id, name, sku, category, color, size, quantity, min_quantity,
	             branch, gender, fit, fabric, gsm, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	_, err := executor.Exec(query,
		item.ID, item.ProductID, item.Name, item.SKU, item.Category, item.Color, item.Size,
		item.Quantity, item.MinQuantity, item.Branch, item.Gender, item.Fit, item.Fabric, item.GSM,
		item.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return fmt.Errorf("%w: creating inventory item (constraint: %s)", ErrDuplicateKey, pqErr.Constraint)
			case "23503":
				return fmt.Errorf("%w: creating inventory item (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
			}
		}
		return fmt.Errorf("%w: creating inventory item: %v", ErrDatabaseError, err)
	}
	return nil
}

// CreateItems inserts a batch of inventory rows with a single multi-row
// INSERT. Used by product provisioning and by the catalog sync.
func (r *inventoryRepository) CreateItems(executor SQLExecutor, items []models.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO inventory
	            (id, product_id, name, sku, category, color, size, quantity, min_quantity,
	             branch, gender, fit, fabric, gsm, created_at)
	          VALUES `)

	args := make([]interface{}, 0, len(items)*15)
	now := time.Now()
	for i := range items {
		item := &items[i]
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 15
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
			base+9, base+10, base+11, base+12, base+13, base+14, base+15))
		args = append(args,
			item.ID, item.ProductID, item.Name, item.SKU, item.Category, item.Color, item.Size,
			item.Quantity, item.MinQuantity, item.Branch, item.Gender, item.Fit, item.Fabric, item.GSM,
			item.CreatedAt,
		)
	}

	if _, err := executor.Exec(sb.String(), args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w: batch inserting inventory (constraint: %s)", ErrDuplicateKey, pqErr.Constraint)
		}
		return fmt.Errorf("%w: batch inserting %d inventory items: %v", ErrDatabaseError, len(items), err)
	}
	return nil
}

func (r *inventoryRepository) GetItemByID(itemID string) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = $1`
	err := scanInventoryItem(r.db.QueryRow(query, itemID), item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting inventory item by ID %s: %v", ErrDatabaseError, itemID, err)
	}
	return item, nil
}

func (r *inventoryRepository) GetItems() ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	query := `SELECT i.id, i.product_id, i.name, i.sku, i.category, i.color, i.size,
	                 i.quantity, i.min_quantity, i.branch, i.gender, i.fit, i.fabric, i.gsm,
	                 i.created_at, p.name AS product_name
	          FROM inventory i
	          LEFT JOIN products p ON i.product_id = p.id
	          ORDER BY i.name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying inventory: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var i models.InventoryItem
		var productName sql.NullString
		err := rows.Scan(
			&i.ID, &i.ProductID, &i.Name, &i.SKU, &i.Category, &i.Color, &i.Size,
			&i.Quantity, &i.MinQuantity, &i.Branch, &i.Gender, &i.Fit, &i.Fabric, &i.GSM,
			&i.CreatedAt, &productName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning inventory item: %v", ErrDatabaseError, err)
		}
		if productName.Valid {
			name := productName.String
			i.ProductName = &name
		}
		items = append(items, i)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inventory rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *inventoryRepository) GetItemsByProductIDs(productIDs []string) (map[string][]models.InventoryItem, error) {
	grouped := make(map[string][]models.InventoryItem)
	if len(productIDs) == 0 {
		return grouped, nil
	}

	query := `SELECT ` + inventoryColumns + ` FROM inventory
	          WHERE product_id = ANY($1)
	          ORDER BY color, size`
	rows, err := r.db.Query(query, pq.Array(productIDs))
	if err != nil {
		return nil, fmt.Errorf("%w: querying inventory by product IDs: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var i models.InventoryItem
		if err := scanInventoryItem(rows, &i); err != nil {
			return nil, fmt.Errorf("%w: scanning inventory item: %v", ErrDatabaseError, err)
		}
		if i.ProductID != nil {
			grouped[*i.ProductID] = append(grouped[*i.ProductID], i)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inventory rows: %v", ErrDatabaseError, err)
	}
	return grouped, nil
}

// GetTrackedProductIDs returns the set of product ids that already appear
// on at least one inventory row.
func (r *inventoryRepository) GetTrackedProductIDs(executor SQLExecutor) (map[string]struct{}, error) {
	rows, err := executor.Query(`SELECT DISTINCT product_id FROM inventory WHERE product_id IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tracked product IDs: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	tracked := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scanning tracked product ID: %v", ErrDatabaseError, err)
		}
		tracked[id] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating tracked product IDs: %v", ErrDatabaseError, err)
	}
	return tracked, nil
}

func (r *inventoryRepository) UpdateItem(executor SQLExecutor, item *models.InventoryItem) error {
	query := `UPDATE inventory SET
	            name = $1, sku = $2, category = $3, color = $4, size = $5,
	            quantity = $6, min_quantity = $7
	          WHERE id = $8`
	result, err := executor.Exec(query,
		item.Name, item.SKU, item.Category, item.Color, item.Size,
		item.Quantity, item.MinQuantity, item.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w: updating inventory item %s (constraint: %s)", ErrDuplicateKey, item.ID, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating inventory item %s: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for inventory update %s: %v", ErrDatabaseError, item.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) UpdateQuantity(executor SQLExecutor, itemID string, quantity int) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	query := `UPDATE inventory SET quantity = $1 WHERE id = $2
	          RETURNING ` + inventoryColumns
	err := scanInventoryItem(executor.QueryRow(query, quantity, itemID), item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating quantity for inventory item %s: %v", ErrDatabaseError, itemID, err)
	}
	return item, nil
}

func (r *inventoryRepository) DeleteItem(executor SQLExecutor, itemID string) error {
	result, err := executor.Exec(`DELETE FROM inventory WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("%w: deleting inventory item %s: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting inventory item %s: %v", ErrDatabaseError, itemID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AcquireSyncLock takes the transaction-scoped advisory lock for sync. It
// blocks until the lock is free and releases automatically at commit or
// rollback, so it must be called on a *sql.Tx executor.
func (r *inventoryRepository) AcquireSyncLock(executor SQLExecutor) error {
	if _, err := executor.Exec(`SELECT pg_advisory_xact_lock($1)`, syncLockID); err != nil {
		return fmt.Errorf("%w: acquiring sync advisory lock: %v", ErrDatabaseError, err)
	}
	return nil
}
