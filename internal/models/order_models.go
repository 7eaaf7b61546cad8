package models

import "time"

// Order is a production order. CustomerName is a snapshot of the client's
// name at creation time and is intentionally not kept in sync with later
// client renames, so old production sheets stay stable.
type Order struct {
	ID           string    `json:"id" db:"id"`
	ClientID     string    `json:"client_id" db:"client_id"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// List-view decorations.
	ClientName string `json:"clientName,omitempty"`
	ItemsCount int    `json:"itemsCount"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is one line of an order. Items are created together with their
// order and never mutated afterwards; they are deleted with the order.
type OrderItem struct {
	ID               string    `json:"id" db:"id"`
	OrderID          string    `json:"order_id" db:"order_id"`
	ProductID        string    `json:"product_id" db:"product_id"`
	Color            string    `json:"color" db:"color"`
	Size             string    `json:"size" db:"size"`
	Quantity         int       `json:"quantity" db:"quantity"`
	BrandingMethod   string    `json:"branding_method" db:"branding_method"`
	BrandingPosition string    `json:"branding_position" db:"branding_position"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`

	ProductName *string `json:"product_name,omitempty"`
}

// OrderFilters defines the available filters for querying orders.
type OrderFilters struct {
	ClientID *string `form:"client_id"`
	Status   *string `form:"status"`
}
