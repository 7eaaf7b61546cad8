package services

import (
	"printshop_backend/internal/models"

	"github.com/google/uuid"
)

// defaultMinQuantity is the reorder threshold applied to inventory rows
// created by provisioning and by the catalog sync.
const defaultMinQuantity = 10

// stockSummary holds the derived stock fields for one product. A product
// with Count == 0 is untracked, which is not the same as tracked-but-empty
// (Count > 0 && Stock == 0).
type stockSummary struct {
	Stock      int
	IsLowStock bool
	Count      int
}

// summarizeStock reduces a product's inventory rows into the derived stock
// fields. Rows with a NULL quantity contribute nothing to the total and
// never raise the low-stock flag.
func summarizeStock(rows []models.InventoryItem) stockSummary {
	summary := stockSummary{Count: len(rows)}
	for _, row := range rows {
		if row.Quantity == nil {
			continue
		}
		summary.Stock += *row.Quantity

		minQuantity := 0
		if row.MinQuantity != nil {
			minQuantity = *row.MinQuantity
		}
		if *row.Quantity <= minQuantity {
			summary.IsLowStock = true
		}
	}
	return summary
}

// resolveVariantOptions determines which colors and sizes are selectable
// when ordering a product. Inventory rows reflect what is actually
// stockable, so their distinct non-null values win; the statically declared
// lists only serve products whose inventory rows carry no value for that
// dimension. The two dimensions are resolved independently.
func resolveVariantOptions(rows []models.InventoryItem, staticColors, staticSizes []string) (colors, sizes []string) {
	colors = distinctValues(rows, func(i models.InventoryItem) *string { return i.Color })
	if len(colors) == 0 {
		colors = dedupe(staticColors)
	}
	sizes = distinctValues(rows, func(i models.InventoryItem) *string { return i.Size })
	if len(sizes) == 0 {
		sizes = dedupe(staticSizes)
	}
	return colors, sizes
}

func distinctValues(rows []models.InventoryItem, field func(models.InventoryItem) *string) []string {
	seen := make(map[string]struct{}, len(rows))
	values := []string{}
	for _, row := range rows {
		v := field(row)
		if v == nil || *v == "" {
			continue
		}
		if _, ok := seen[*v]; ok {
			continue
		}
		seen[*v] = struct{}{}
		values = append(values, *v)
	}
	return values
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := []string{}
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// buildVariantRows materializes the variant matrix for a new product:
// one row per (color, size) pair, degrading to one row per color or per
// size when the other list is empty, and to a single row with both
// dimensions NULL when neither is declared. Every row starts at quantity 0
// with the default reorder threshold.
func buildVariantRows(product *models.Product, minQuantity int) []models.InventoryItem {
	colors := dedupe(product.AvailableColors)
	sizes := dedupe(product.AvailableSizes)

	newRow := func(color, size *string) models.InventoryItem {
		quantity := 0
		threshold := minQuantity
		return models.InventoryItem{
			ID:          uuid.NewString(),
			ProductID:   &product.ID,
			Name:        product.Name,
			Category:    product.Category,
			Color:       color,
			Size:        size,
			Quantity:    &quantity,
			MinQuantity: &threshold,
			Branch:      product.Branch,
			Gender:      product.Gender,
			Fit:         product.Fit,
			Fabric:      product.Fabric,
			GSM:         product.GSM,
		}
	}

	rows := []models.InventoryItem{}
	switch {
	case len(colors) > 0 && len(sizes) > 0:
		for ci := range colors {
			for si := range sizes {
				rows = append(rows, newRow(&colors[ci], &sizes[si]))
			}
		}
	case len(colors) > 0:
		for ci := range colors {
			rows = append(rows, newRow(&colors[ci], nil))
		}
	case len(sizes) > 0:
		for si := range sizes {
			rows = append(rows, newRow(nil, &sizes[si]))
		}
	default:
		rows = append(rows, newRow(nil, nil))
	}
	return rows
}
