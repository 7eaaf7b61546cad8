package services

import (
	"errors"
	"fmt"

	"printshop_backend/internal/models"
	"printshop_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Product ---
var (
	ErrProductNotFound = errors.New("product not found")
)

// --- Product DTOs ---

// CreateProductRequest is the typed payload for product creation. The
// declared color/size lists drive the initial inventory provisioning.
type CreateProductRequest struct {
	Name                string           `json:"name" binding:"required"`
	Category            *string          `json:"category"`
	Description         *string          `json:"description"`
	BasePrice           *decimal.Decimal `json:"base_price"`
	Branch              *string          `json:"branch"`
	Gender              *string          `json:"gender"`
	Fit                 *string          `json:"fit"`
	Fabric              *string          `json:"fabric"`
	GSM                 *string          `json:"gsm"`
	ImageFrontURL       *string          `json:"image_front_url"`
	ImageBackURL        *string          `json:"image_back_url"`
	TechnicalDrawingURL *string          `json:"technical_drawing_url"`
	GhostMannequinURL   *string          `json:"ghost_mannequin_url"`
	AvailableColors     []string         `json:"available_colors"`
	AvailableSizes      []string         `json:"available_sizes"`
}

// UpdateProductRequest carries partial product updates; nil fields are left
// untouched.
type UpdateProductRequest struct {
	Name                *string          `json:"name"`
	Category            *string          `json:"category"`
	Description         *string          `json:"description"`
	BasePrice           *decimal.Decimal `json:"base_price"`
	Branch              *string          `json:"branch"`
	Gender              *string          `json:"gender"`
	Fit                 *string          `json:"fit"`
	Fabric              *string          `json:"fabric"`
	GSM                 *string          `json:"gsm"`
	ImageFrontURL       *string          `json:"image_front_url"`
	ImageBackURL        *string          `json:"image_back_url"`
	TechnicalDrawingURL *string          `json:"technical_drawing_url"`
	GhostMannequinURL   *string          `json:"ghost_mannequin_url"`
	AvailableColors     []string         `json:"available_colors"`
	AvailableSizes      []string         `json:"available_sizes"`
}

// UpsertAssetRequest sets the base image for one (color, view) slot of a
// product.
type UpsertAssetRequest struct {
	View      string  `json:"view" binding:"required,oneof=front back"`
	Color     *string `json:"color"`
	BaseImage string  `json:"base_image" binding:"required"`
	PrintMask *string `json:"print_mask"`
}

// --- ProductService Interface ---
type ProductService interface {
	CreateProduct(req CreateProductRequest) (*models.Product, error)
	ImportProducts(reqs []CreateProductRequest) ([]models.Product, error)
	GetProducts() ([]models.Product, error)
	GetProductByID(productID string) (*models.Product, error)
	UpdateProduct(productID string, req UpdateProductRequest) (*models.Product, error)
	ArchiveProduct(productID string) error
	UpsertAsset(productID string, req UpsertAssetRequest) (*models.ProductAsset, error)
}

type productService struct {
	productRepo   repositories.ProductRepository
	inventoryRepo repositories.InventoryRepository
	tx            repositories.TxManager
}

// NewProductService creates a new instance of ProductService.
func NewProductService(
	pr repositories.ProductRepository,
	ir repositories.InventoryRepository,
	tx repositories.TxManager,
) ProductService {
	return &productService{
		productRepo:   pr,
		inventoryRepo: ir,
		tx:            tx,
	}
}

func productFromCreateRequest(req CreateProductRequest) (*models.Product, error) {
	basePrice := decimal.Zero
	if req.BasePrice != nil {
		if req.BasePrice.IsNegative() {
			return nil, fmt.Errorf("%w: base_price must not be negative", ErrValidation)
		}
		basePrice = *req.BasePrice
	}

	return &models.Product{
		ID:                  uuid.NewString(),
		Name:                req.Name,
		Category:            req.Category,
		Description:         req.Description,
		BasePrice:           basePrice,
		Branch:              req.Branch,
		Gender:              req.Gender,
		Fit:                 req.Fit,
		Fabric:              req.Fabric,
		GSM:                 req.GSM,
		ImageFrontURL:       req.ImageFrontURL,
		ImageBackURL:        req.ImageBackURL,
		TechnicalDrawingURL: req.TechnicalDrawingURL,
		GhostMannequinURL:   req.GhostMannequinURL,
		AvailableColors:     dedupe(req.AvailableColors),
		AvailableSizes:      dedupe(req.AvailableSizes),
	}, nil
}

// decorate fills the derived stock fields and replaces the static
// color/size lists with the live resolved ones, matching what order entry
// will actually allow.
func decorate(product *models.Product, rows []models.InventoryItem, assets []models.ProductAsset) {
	summary := summarizeStock(rows)
	product.Stock = summary.Stock
	product.IsLowStock = summary.IsLowStock
	product.InventoryCount = summary.Count
	product.AvailableColors, product.AvailableSizes =
		resolveVariantOptions(rows, product.AvailableColors, product.AvailableSizes)
	product.Inventory = rows
	product.Assets = assets
}

// CreateProduct inserts the product and provisions its full variant matrix
// as zero-quantity inventory rows, all in one transaction.
func (s *productService) CreateProduct(req CreateProductRequest) (*models.Product, error) {
	product, err := productFromCreateRequest(req)
	if err != nil {
		return nil, err
	}

	rows := buildVariantRows(product, defaultMinQuantity)

	err = s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		if err := s.productRepo.CreateProduct(tx, product); err != nil {
			return fmt.Errorf("failed to create product record: %w", err)
		}
		if err := s.inventoryRepo.CreateItems(tx, rows); err != nil {
			return fmt.Errorf("failed to provision inventory for product %s: %w", product.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	decorate(product, rows, nil)
	return product, nil
}

// ImportProducts bulk-creates catalog entries without provisioning
// inventory; the catalog sync backfills a tracking row for each of them
// afterwards.
func (s *productService) ImportProducts(reqs []CreateProductRequest) ([]models.Product, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: product list must not be empty", ErrValidation)
	}

	products := make([]*models.Product, 0, len(reqs))
	for i, req := range reqs {
		if req.Name == "" {
			return nil, fmt.Errorf("%w: product at index %d has no name", ErrValidation, i)
		}
		product, err := productFromCreateRequest(req)
		if err != nil {
			return nil, fmt.Errorf("product at index %d: %w", i, err)
		}
		products = append(products, product)
	}

	err := s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		for _, product := range products {
			if err := s.productRepo.CreateProduct(tx, product); err != nil {
				return fmt.Errorf("failed to import product %q: %w", product.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created := make([]models.Product, 0, len(products))
	for _, product := range products {
		decorate(product, nil, nil)
		created = append(created, *product)
	}
	return created, nil
}

func (s *productService) GetProducts() ([]models.Product, error) {
	products, err := s.productRepo.GetProducts(false)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	inventoryByProduct, err := s.inventoryRepo.GetItemsByProductIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory for products: %w", err)
	}
	assetsByProduct, err := s.productRepo.GetAssetsByProductIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get assets for products: %w", err)
	}

	for i := range products {
		decorate(&products[i], inventoryByProduct[products[i].ID], assetsByProduct[products[i].ID])
	}
	return products, nil
}

func (s *productService) GetProductByID(productID string) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}

	inventoryByProduct, err := s.inventoryRepo.GetItemsByProductIDs([]string{productID})
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory for product %s: %w", productID, err)
	}
	assetsByProduct, err := s.productRepo.GetAssetsByProductIDs([]string{productID})
	if err != nil {
		return nil, fmt.Errorf("failed to get assets for product %s: %w", productID, err)
	}

	decorate(product, inventoryByProduct[productID], assetsByProduct[productID])
	return product, nil
}

func (s *productService) UpdateProduct(productID string, req UpdateProductRequest) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product for update: %w", err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = req.Category
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.BasePrice != nil {
		if req.BasePrice.IsNegative() {
			return nil, fmt.Errorf("%w: base_price must not be negative", ErrValidation)
		}
		product.BasePrice = *req.BasePrice
	}
	if req.Branch != nil {
		product.Branch = req.Branch
	}
	if req.Gender != nil {
		product.Gender = req.Gender
	}
	if req.Fit != nil {
		product.Fit = req.Fit
	}
	if req.Fabric != nil {
		product.Fabric = req.Fabric
	}
	if req.GSM != nil {
		product.GSM = req.GSM
	}
	if req.ImageFrontURL != nil {
		product.ImageFrontURL = req.ImageFrontURL
	}
	if req.ImageBackURL != nil {
		product.ImageBackURL = req.ImageBackURL
	}
	if req.TechnicalDrawingURL != nil {
		product.TechnicalDrawingURL = req.TechnicalDrawingURL
	}
	if req.GhostMannequinURL != nil {
		product.GhostMannequinURL = req.GhostMannequinURL
	}
	if req.AvailableColors != nil {
		product.AvailableColors = dedupe(req.AvailableColors)
	}
	if req.AvailableSizes != nil {
		product.AvailableSizes = dedupe(req.AvailableSizes)
	}

	err = s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		return s.productRepo.UpdateProduct(tx, product)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product in repository: %w", err)
	}
	return s.GetProductByID(productID)
}

// ArchiveProduct soft-deletes the product. History (inventory rows, order
// items) keeps its references; archived products simply drop out of the
// catalog listing.
func (s *productService) ArchiveProduct(productID string) error {
	err := s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		return s.productRepo.ArchiveProduct(tx, productID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to archive product: %w", err)
	}
	return nil
}

func (s *productService) UpsertAsset(productID string, req UpsertAssetRequest) (*models.ProductAsset, error) {
	if _, err := s.productRepo.GetProductByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product for asset upsert: %w", err)
	}

	asset := &models.ProductAsset{
		ID:        uuid.NewString(),
		ProductID: productID,
		View:      req.View,
		Color:     req.Color,
		BaseImage: req.BaseImage,
		PrintMask: req.PrintMask,
	}
	err := s.tx.WithTx(func(tx repositories.SQLExecutor) error {
		return s.productRepo.UpsertAsset(tx, asset)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert product asset: %w", err)
	}
	return asset, nil
}
