package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// inventoryHandler answers stock queries for the sale flow.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(inventoryService portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: inventoryService}
}

// registerInventoryRoutes sets up the stock query routes.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	products := rg.Group("/products")
	{
		products.GET("/:id/batches", h.listProductBatches)
		products.GET("/:id/stock", h.getProductStock)
	}
}

// listProductBatches godoc
// @Summary List a product's purchase batches
// @Description Returns the product's purchase lots with remaining quantities. Depleted lots are hidden unless includeEmpty is set.
// @Tags inventory
// @Produce json
// @Param id path string true "Product ID"
// @Param includeEmpty query bool false "Include depleted batches"
// @Success 200 {array} dto.ProductBatchResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{id}/batches [get]
func (h *inventoryHandler) listProductBatches(c *gin.Context) {
	var params dto.ListProductBatchesParams
	if !bindQuery(c, &params) {
		return
	}
	batches, err := h.inventoryService.ListProductBatches(c.Request.Context(), c.Param("id"), params.IncludeEmpty)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListProductBatchResponse(batches))
}

// getProductStock godoc
// @Summary Get a product's total remaining stock
// @Description Sums remaining quantity across all of the product's batches, in base units or re-expressed in the requested unit
// @Tags inventory
// @Produce json
// @Param id path string true "Product ID"
// @Param unitID query string false "Unit to express the quantity in (base units when omitted)"
// @Success 200 {object} dto.ProductStockResponse
// @Failure 400 {object} map[string]string "Unknown unit"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{id}/stock [get]
func (h *inventoryHandler) getProductStock(c *gin.Context) {
	productID := c.Param("id")
	unitID := c.Query("unitID")
	quantity, err := h.inventoryService.GetProductStock(c.Request.Context(), productID, unitID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductStockResponse{ProductID: productID, UnitID: unitID, Quantity: quantity})
}
