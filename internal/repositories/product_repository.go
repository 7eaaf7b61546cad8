package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"printshop_backend/internal/models"

	"github.com/lib/pq"
)

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	CreateProduct(executor SQLExecutor, product *models.Product) error
	GetProductByID(productID string) (*models.Product, error)
	GetProducts(includeArchived bool) ([]models.Product, error)
	UpdateProduct(executor SQLExecutor, product *models.Product) error
	ArchiveProduct(executor SQLExecutor, productID string) error

	GetAssetsByProductIDs(productIDs []string) (map[string][]models.ProductAsset, error)
	UpsertAsset(executor SQLExecutor, asset *models.ProductAsset) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, category, description, base_price, branch, gender, fit,
	fabric, gsm, image_front_url, image_back_url, technical_drawing_url, ghost_mannequin_url,
	available_colors, available_sizes, is_archived, created_at`

func scanProduct(s scanner, p *models.Product) error {
	return s.Scan(
		&p.ID, &p.Name, &p.Category, &p.Description, &p.BasePrice, &p.Branch, &p.Gender, &p.Fit,
		&p.Fabric, &p.GSM, &p.ImageFrontURL, &p.ImageBackURL, &p.TechnicalDrawingURL, &p.GhostMannequinURL,
		pq.Array(&p.AvailableColors), pq.Array(&p.AvailableSizes), &p.IsArchived, &p.CreatedAt,
	)
}

func (r *productRepository) CreateProduct(executor SQLExecutor, product *models.Product) error {
	query := `INSERT INTO products
	            (id, name, category, description, base_price, branch, gender, fit, fabric, gsm,
	             image_front_url, image_back_url, technical_drawing_url, ghost_mannequin_url,
	             available_colors, available_sizes, is_archived, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	_, err := executor.Exec(query,
		product.ID, product.Name, product.Category, product.Description, product.BasePrice,
		product.Branch, product.Gender, product.Fit, product.Fabric, product.GSM,
		product.ImageFrontURL, product.ImageBackURL, product.TechnicalDrawingURL, product.GhostMannequinURL,
		pq.Array(product.AvailableColors), pq.Array(product.AvailableSizes),
		product.IsArchived, product.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w: creating product (constraint: %s)", ErrDuplicateKey, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating product: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *productRepository) GetProductByID(productID string) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	err := scanProduct(r.db.QueryRow(query, productID), product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %s: %v", ErrDatabaseError, productID, err)
	}
	return product, nil
}

func (r *productRepository) GetProducts(includeArchived bool) ([]models.Product, error) {
	products := []models.Product{}
	query := `SELECT ` + productColumns + ` FROM products`
	if !includeArchived {
		query += ` WHERE is_archived = FALSE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, nil
}

func (r *productRepository) UpdateProduct(executor SQLExecutor, product *models.Product) error {
	query := `UPDATE products SET
	            name = $1, category = $2, description = $3, base_price = $4,
	            branch = $5, gender = $6, fit = $7, fabric = $8, gsm = $9,
	            image_front_url = $10, image_back_url = $11,
	            technical_drawing_url = $12, ghost_mannequin_url = $13,
	            available_colors = $14, available_sizes = $15
	          WHERE id = $16`
	result, err := executor.Exec(query,
		product.Name, product.Category, product.Description, product.BasePrice,
		product.Branch, product.Gender, product.Fit, product.Fabric, product.GSM,
		product.ImageFrontURL, product.ImageBackURL,
		product.TechnicalDrawingURL, product.GhostMannequinURL,
		pq.Array(product.AvailableColors), pq.Array(product.AvailableSizes),
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating product %s: %v", ErrDatabaseError, product.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for product update %s: %v", ErrDatabaseError, product.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ArchiveProduct soft-deletes a product. Inventory rows and historical order
// items keep referencing it by id.
func (r *productRepository) ArchiveProduct(executor SQLExecutor, productID string) error {
	result, err := executor.Exec(`UPDATE products SET is_archived = TRUE WHERE id = $1`, productID)
	if err != nil {
		return fmt.Errorf("%w: archiving product %s: %v", ErrDatabaseError, productID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for archiving product %s: %v", ErrDatabaseError, productID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) GetAssetsByProductIDs(productIDs []string) (map[string][]models.ProductAsset, error) {
	assets := make(map[string][]models.ProductAsset)
	if len(productIDs) == 0 {
		return assets, nil
	}

	query := `SELECT id, product_id, view, color, base_image, print_mask
	          FROM product_assets
	          WHERE product_id = ANY($1)
	          ORDER BY product_id, view, color`
	rows, err := r.db.Query(query, pq.Array(productIDs))
	if err != nil {
		return nil, fmt.Errorf("%w: querying product assets: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.ProductAsset
		if err := rows.Scan(&a.ID, &a.ProductID, &a.View, &a.Color, &a.BaseImage, &a.PrintMask); err != nil {
			return nil, fmt.Errorf("%w: scanning product asset: %v", ErrDatabaseError, err)
		}
		assets[a.ProductID] = append(assets[a.ProductID], a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product asset rows: %v", ErrDatabaseError, err)
	}
	return assets, nil
}

// UpsertAsset inserts or replaces the asset for a (product, color, view)
// slot. The slot constraint treats NULL colors as equal, so a colorless
// upload replaces the previous colorless one for the same view.
func (r *productRepository) UpsertAsset(executor SQLExecutor, asset *models.ProductAsset) error {
	query := `INSERT INTO product_assets (id, product_id, view, color, base_image, print_mask)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (product_id, color, view)
	          DO UPDATE SET base_image = EXCLUDED.base_image, print_mask = EXCLUDED.print_mask
	          RETURNING id`
	err := executor.QueryRow(query,
		asset.ID, asset.ProductID, asset.View, asset.Color, asset.BaseImage, asset.PrintMask,
	).Scan(&asset.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("%w: upserting asset (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return fmt.Errorf("%w: upserting product asset: %v", ErrDatabaseError, err)
	}
	return nil
}
