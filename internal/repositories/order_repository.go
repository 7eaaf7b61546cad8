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

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	// Order methods
	CreateOrder(executor SQLExecutor, order *models.Order) error
	GetOrderByID(orderID string) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, error)
	GetRecentOrders(limit int) ([]models.Order, error)
	UpdateOrderStatus(executor SQLExecutor, orderID string, newStatus string) error
	DeleteOrder(executor SQLExecutor, orderID string) error
	CountOrdersByClientID(clientID string) (int, error)
	CountOrdersByStatus() (map[string]int, error)

	// OrderItem methods
	CreateOrderItems(executor SQLExecutor, items []models.OrderItem) error
	GetOrderItemsByOrderID(orderID string) ([]models.OrderItem, error)
	DeleteOrderItemsByOrderID(executor SQLExecutor, orderID string) (int64, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// --- Order Methods ---

func (r *orderRepository) CreateOrder(executor SQLExecutor, order *models.Order) error {
	query := `INSERT INTO orders (id, client_id, customer_name, status, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	_, err := executor.Exec(query,
		order.ID, order.ClientID, order.CustomerName, order.Status, order.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("%w: creating order (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *orderRepository) GetOrderByID(orderID string) (*models.Order, error) {
	order := &models.Order{}
	query := `SELECT id, client_id, customer_name, status, created_at
	          FROM orders
	          WHERE id = $1`
	err := r.db.QueryRow(query, orderID).Scan(
		&order.ID, &order.ClientID, &order.CustomerName, &order.Status, &order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order by ID %s: %v", ErrDatabaseError, orderID, err)
	}
	return order, nil
}

func (r *orderRepository) GetOrders(filters models.OrderFilters) ([]models.Order, error) {
	orders := []models.Order{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT
            o.id, o.client_id, o.customer_name, o.status, o.created_at,
            c.name AS client_name,
            COALESCE(SUM(oi.quantity), 0) AS items_count
        FROM orders o
        LEFT JOIN clients c ON o.client_id = c.id
        LEFT JOIN order_items oi ON oi.order_id = o.id
    `)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.ClientID != nil && *filters.ClientID != "" {
		conditions = append(conditions, fmt.Sprintf("o.client_id = $%d", argCounter))
		args = append(args, *filters.ClientID)
		argCounter++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argCounter))
		args = append(args, *filters.Status)
		argCounter++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" GROUP BY o.id, c.name ORDER BY o.created_at DESC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Order
		var clientName sql.NullString

		err := rows.Scan(&o.ID, &o.ClientID, &o.CustomerName, &o.Status, &o.CreatedAt,
			&clientName, &o.ItemsCount)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}

		// Prefer the live client name, fall back to the snapshot taken at
		// creation time if the client row is gone.
		if clientName.Valid && clientName.String != "" {
			o.ClientName = clientName.String
		} else {
			o.ClientName = o.CustomerName
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

func (r *orderRepository) GetRecentOrders(limit int) ([]models.Order, error) {
	orders := []models.Order{}
	query := `SELECT id, client_id, customer_name, status, created_at
	          FROM orders
	          ORDER BY created_at DESC
	          LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying recent orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.ClientID, &o.CustomerName, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning recent order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating recent order rows: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(executor SQLExecutor, orderID string, newStatus string) error {
	result, err := executor.Exec(`UPDATE orders SET status = $1 WHERE id = $2`, newStatus, orderID)
	if err != nil {
		return fmt.Errorf("%w: updating order status for ID %s: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for order status update %s: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) DeleteOrder(executor SQLExecutor, orderID string) error {
	result, err := executor.Exec(`DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("%w: deleting order %s: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting order %s: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) CountOrdersByClientID(clientID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE client_id = $1`, clientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting orders for client %s: %v", ErrDatabaseError, clientID, err)
	}
	return count, nil
}

func (r *orderRepository) CountOrdersByStatus() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("%w: counting orders by status: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: scanning order status count: %v", ErrDatabaseError, err)
		}
		counts[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order status counts: %v", ErrDatabaseError, err)
	}
	return counts, nil
}

// --- OrderItem Methods ---

func (r *orderRepository) CreateOrderItems(executor SQLExecutor, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO order_items
	            (id, order_id, product_id, color, size, quantity, branding_method, branding_position, created_at)
	          VALUES `)

	args := make([]interface{}, 0, len(items)*9)
	now := time.Now()
	for i := range items {
		item := &items[i]
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 9
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		args = append(args,
			item.ID, item.OrderID, item.ProductID, item.Color, item.Size,
			item.Quantity, item.BrandingMethod, item.BrandingPosition, item.CreatedAt,
		)
	}

	if _, err := executor.Exec(sb.String(), args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("%w: creating order items (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return fmt.Errorf("%w: creating %d order items: %v", ErrDatabaseError, len(items), err)
	}
	return nil
}

func (r *orderRepository) GetOrderItemsByOrderID(orderID string) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	query := `
		SELECT
		    oi.id, oi.order_id, oi.product_id, oi.color, oi.size, oi.quantity,
		    oi.branding_method, oi.branding_position, oi.created_at,
		    p.name AS product_name
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY oi.created_at, oi.id`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items for order %s: %v", ErrDatabaseError, orderID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		var productName sql.NullString

		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Color, &item.Size, &item.Quantity,
			&item.BrandingMethod, &item.BrandingPosition, &item.CreatedAt,
			&productName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order item for order %s: %v", ErrDatabaseError, orderID, err)
		}
		if productName.Valid {
			name := productName.String
			item.ProductName = &name
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows for order %s: %v", ErrDatabaseError, orderID, err)
	}
	return items, nil
}

func (r *orderRepository) DeleteOrderItemsByOrderID(executor SQLExecutor, orderID string) (int64, error) {
	result, err := executor.Exec(`DELETE FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting order items for order %s: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for deleting order items for order %s: %v", ErrDatabaseError, orderID, err)
	}
	return rowsAffected, nil
}
