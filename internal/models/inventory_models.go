package models

import "time"

// InventoryItem is one stocked slot. For catalog products there is at most
// one row per (product_id, color, size) triple; rows with a nil ProductID
// are raw materials that are tracked but not tied to any product.
type InventoryItem struct {
	ID          string  `json:"id" db:"id"`
	ProductID   *string `json:"product_id,omitempty" db:"product_id"`
	Name        string  `json:"name" db:"name"`
	SKU         *string `json:"sku,omitempty" db:"sku"`
	Category    *string `json:"category,omitempty" db:"category"`
	Color       *string `json:"color,omitempty" db:"color"`
	Size        *string `json:"size,omitempty" db:"size"`
	Quantity    *int    `json:"quantity" db:"quantity"`
	MinQuantity *int    `json:"min_quantity" db:"min_quantity"`

	// Textile descriptors copied from the product for convenience.
	Branch *string `json:"branch,omitempty" db:"branch"`
	Gender *string `json:"gender,omitempty" db:"gender"`
	Fit    *string `json:"fit,omitempty" db:"fit"`
	Fabric *string `json:"fabric,omitempty" db:"fabric"`
	GSM    *string `json:"gsm,omitempty" db:"gsm"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// ProductName is populated by the list query join.
	ProductName *string `json:"product_name,omitempty"`
}
