package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry (e.g. a t-shirt or hoodie model).
//
// AvailableColors and AvailableSizes are the statically declared lists used
// as provisioning input; the values actually selectable for an order are
// derived from the live inventory rows and only fall back to these lists
// when no inventory row declares the dimension.
type Product struct {
	ID                  string          `json:"id" db:"id"`
	Name                string          `json:"name" db:"name" binding:"required"`
	Category            *string         `json:"category,omitempty" db:"category"`
	Description         *string         `json:"description,omitempty" db:"description"`
	BasePrice           decimal.Decimal `json:"base_price" db:"base_price"`
	Branch              *string         `json:"branch,omitempty" db:"branch"`
	Gender              *string         `json:"gender,omitempty" db:"gender"`
	Fit                 *string         `json:"fit,omitempty" db:"fit"`
	Fabric              *string         `json:"fabric,omitempty" db:"fabric"`
	GSM                 *string         `json:"gsm,omitempty" db:"gsm"`
	ImageFrontURL       *string         `json:"image_front_url,omitempty" db:"image_front_url"`
	ImageBackURL        *string         `json:"image_back_url,omitempty" db:"image_back_url"`
	TechnicalDrawingURL *string         `json:"technical_drawing_url,omitempty" db:"technical_drawing_url"`
	GhostMannequinURL   *string         `json:"ghost_mannequin_url,omitempty" db:"ghost_mannequin_url"`
	AvailableColors     []string        `json:"available_colors" db:"available_colors"`
	AvailableSizes      []string        `json:"available_sizes" db:"available_sizes"`
	IsArchived          bool            `json:"is_archived" db:"is_archived"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`

	// Derived fields, computed from the joined inventory rows. Never stored.
	Stock          int  `json:"stock"`
	IsLowStock     bool `json:"isLowStock"`
	InventoryCount int  `json:"inventoryCount"`

	Inventory []InventoryItem `json:"inventory,omitempty"`
	Assets    []ProductAsset  `json:"product_assets,omitempty"`
}

// ProductAsset is a base mockup image for one (product, color, view)
// combination, used by the client-side configurator.
type ProductAsset struct {
	ID        string  `json:"id" db:"id"`
	ProductID string  `json:"product_id" db:"product_id"`
	View      string  `json:"view" db:"view"` // "front" or "back"
	Color     *string `json:"color,omitempty" db:"color"`
	BaseImage string  `json:"base_image" db:"base_image"`
	PrintMask *string `json:"print_mask,omitempty" db:"print_mask"`
}
