package handlers

import (
	"errors"
	"net/http"

	"printshop_backend/internal/services"
	"printshop_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler holds the inventory service.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

// GetInventory handles fetching all inventory rows, product-linked and
// standalone materials alike.
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	items, err := h.inventoryService.GetInventory()
	if err != nil {
		utils.LogError(err, "GetInventory: Error from inventoryService.GetInventory")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch inventory.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddItem handles the creation of a new inventory row.
func (h *InventoryHandler) AddItem(c *gin.Context) {
	var req services.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "AddItem: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.inventoryService.AddItem(req)
	if err != nil {
		utils.LogError(err, "AddItem: Error from inventoryService.AddItem")
		if errors.Is(err, services.ErrProductNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create inventory item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem handles partial updates of an inventory row.
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	itemID := c.Param("id")

	var req services.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateItem: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.inventoryService.UpdateItem(itemID, req)
	if err != nil {
		utils.LogError(err, "UpdateItem: Error from inventoryService.UpdateItem for ID "+itemID)
		if errors.Is(err, services.ErrInventoryItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update inventory item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateQuantity sets the absolute stock count of one inventory row.
func (h *InventoryHandler) UpdateQuantity(c *gin.Context) {
	itemID := c.Param("id")

	var req services.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateQuantity: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.inventoryService.UpdateQuantity(itemID, *req.Quantity)
	if err != nil {
		utils.LogError(err, "UpdateQuantity: Error from inventoryService.UpdateQuantity for ID "+itemID)
		if errors.Is(err, services.ErrInventoryItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update quantity.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem handles deleting an inventory row.
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	itemID := c.Param("id")

	err := h.inventoryService.DeleteItem(itemID)
	if err != nil {
		utils.LogError(err, "DeleteItem: Error from inventoryService.DeleteItem for ID "+itemID)
		if errors.Is(err, services.ErrInventoryItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete inventory item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SyncWithCatalog backfills tracking rows for products with no inventory.
func (h *InventoryHandler) SyncWithCatalog(c *gin.Context) {
	created, err := h.inventoryService.SyncWithCatalog()
	if err != nil {
		utils.LogError(err, "SyncWithCatalog: Error from inventoryService.SyncWithCatalog")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to sync inventory with catalog.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}
