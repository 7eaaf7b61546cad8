package services

import (
	"errors"
	"fmt"

	"printshop_backend/internal/models"
	"printshop_backend/internal/repositories"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Orders ---
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// Order status pipeline. Normal use moves forward through these four
// states, but any known status may be written at any time; only membership
// in this set is enforced.
const (
	StatusDraft      = "draft"
	StatusConfirmed  = "confirmed"
	StatusProduction = "production"
	StatusDone       = "done"
)

// VariantNotApplicable is recorded on an order item when the product has no
// selectable values for that dimension (one-size or one-color products).
const VariantNotApplicable = "N/A"

func isValidOrderStatus(status string) bool {
	switch status {
	case StatusDraft, StatusConfirmed, StatusProduction, StatusDone:
		return true
	default:
		return false
	}
}

// --- Order DTOs ---

// BrandingRequest is the decoration spec for one order line.
type BrandingRequest struct {
	Method   string `json:"method" binding:"required,oneof=print embroidery"`
	Position string `json:"position" binding:"required,oneof=front back"`
}

// CreateOrderItemRequest is one line of a new order.
type CreateOrderItemRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	Branding  BrandingRequest `json:"branding" binding:"required"`
}

// CreateOrderRequest is used for creating a new order.
type CreateOrderRequest struct {
	ClientID string                   `json:"clientId" binding:"required"`
	Items    []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest is used for updating the status of an order.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- OrderService Interface ---
type OrderService interface {
	CreateOrder(req CreateOrderRequest) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, error)
	GetOrderByID(orderID string) (*models.Order, error)
	UpdateOrderStatus(orderID string, req UpdateOrderStatusRequest) (*models.Order, error)
	DeleteOrder(orderID string) error
}

type orderService struct {
	orderRepo     repositories.OrderRepository
	clientRepo    repositories.ClientRepository
	productRepo   repositories.ProductRepository
	inventoryRepo repositories.InventoryRepository
	tx            repositories.TxManager
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	cr repositories.ClientRepository,
	pr repositories.ProductRepository,
	ir repositories.InventoryRepository,
	tx repositories.TxManager,
) OrderService {
	return &orderService{
		orderRepo:     or,
		clientRepo:    cr,
		productRepo:   pr,
		inventoryRepo: ir,
		tx:            tx,
	}
}

// CreateOrder validates the client and every line against the product's
// resolved variant options, then writes the order header and all items in
// one transaction. The header snapshots the client's current name; later
// renames do not touch existing orders. Stock is never touched: orders do
// not consume or reserve inventory.
func (s *orderService) CreateOrder(req CreateOrderRequest) (*models.Order, error) {
	client, err := s.clientRepo.GetClientByID(req.ClientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to fetch client for order: %w", err)
	}

	orderID := uuid.NewString()
	items := make([]models.OrderItem, 0, len(req.Items))
	for i, itemReq := range req.Items {
		if itemReq.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for item %d must be positive", ErrValidation, i)
		}

		color, size, err := s.resolveItemVariant(itemReq)
		if err != nil {
			return nil, err
		}

		items = append(items, models.OrderItem{
			ID:               uuid.NewString(),
			OrderID:          orderID,
			ProductID:        itemReq.ProductID,
			Color:            color,
			Size:             size,
			Quantity:         itemReq.Quantity,
			BrandingMethod:   itemReq.Branding.Method,
			BrandingPosition: itemReq.Branding.Position,
		})
	}

	order := &models.Order{
		ID:           orderID,
		ClientID:     client.ID,
		CustomerName: client.Name,
		Status:       StatusDraft,
	}

	err = s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		if err := s.orderRepo.CreateOrder(tx, order); err != nil {
			return fmt.Errorf("failed to create order record: %w", err)
		}
		if err := s.orderRepo.CreateOrderItems(tx, items); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrderByID(orderID)
}

// resolveItemVariant checks the requested color/size against the product's
// selectable sets. A non-empty set makes the selection mandatory and
// restricts it to the set's members; an empty set records the
// not-applicable sentinel instead of blocking the order.
func (s *orderService) resolveItemVariant(itemReq CreateOrderItemRequest) (color, size string, err error) {
	product, err := s.productRepo.GetProductByID(itemReq.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", "", fmt.Errorf("%w: product %s", ErrProductNotFound, itemReq.ProductID)
		}
		return "", "", fmt.Errorf("failed to fetch product %s for order item: %w", itemReq.ProductID, err)
	}

	inventoryByProduct, err := s.inventoryRepo.GetItemsByProductIDs([]string{product.ID})
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch inventory for product %s: %w", product.ID, err)
	}
	colors, sizes := resolveVariantOptions(inventoryByProduct[product.ID], product.AvailableColors, product.AvailableSizes)

	color = itemReq.Color
	if len(colors) == 0 {
		color = VariantNotApplicable
	} else if !containsString(colors, color) {
		return "", "", fmt.Errorf("%w: color %q is not available for product %q", ErrValidation, itemReq.Color, product.Name)
	}

	size = itemReq.Size
	if len(sizes) == 0 {
		size = VariantNotApplicable
	} else if !containsString(sizes, size) {
		return "", "", fmt.Errorf("%w: size %q is not available for product %q", ErrValidation, itemReq.Size, product.Name)
	}

	return color, size, nil
}

func containsString(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func (s *orderService) GetOrders(filters models.OrderFilters) ([]models.Order, error) {
	orders, err := s.orderRepo.GetOrders(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID from repository: %w", err)
	}

	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items for order %s: %w", orderID, err)
	}
	order.Items = items

	for _, item := range items {
		order.ItemsCount += item.Quantity
	}
	return order, nil
}

// UpdateOrderStatus writes a new pipeline status. Only membership in the
// known status set is validated; transitions are deliberately not
// restricted, so the shop can move an order backwards when needed.
func (s *orderService) UpdateOrderStatus(orderID string, req UpdateOrderStatusRequest) (*models.Order, error) {
	if !isValidOrderStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, req.Status)
	}

	err := s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		return s.orderRepo.UpdateOrderStatus(tx, orderID, req.Status)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status in repository: %w", err)
	}
	return s.GetOrderByID(orderID)
}

// DeleteOrder removes the order and its items as a unit, items first to
// respect the foreign key.
func (s *orderService) DeleteOrder(orderID string) error {
	if _, err := s.orderRepo.GetOrderByID(orderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to fetch order for deletion: %w", err)
	}

	return s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		if _, err := s.orderRepo.DeleteOrderItemsByOrderID(tx, orderID); err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := s.orderRepo.DeleteOrder(tx, orderID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
}
