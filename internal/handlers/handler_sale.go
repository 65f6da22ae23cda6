package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
	"github.com/hesabix/hesabix_backend/internal/middleware"
)

// saleHandler handles sale and sale payment requests.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(saleService portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: saleService}
}

// registerSaleRoutes sets up the routes for sale management.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:id", h.getSale)
		sales.PUT("/:id", h.updateSale)
		sales.DELETE("/:id", h.deleteSale)
		sales.POST("/:id/items", h.addSaleItem)
		sales.PUT("/:id/items/:itemId", h.updateSaleItem)
		sales.DELETE("/:id/items/:itemId", h.deleteSaleItem)
		sales.POST("/:id/payments", h.addPayment)
		sales.GET("/:id/payments", h.listPayments)
		sales.DELETE("/:id/payments/:paymentId", h.deletePayment)
	}
}

// createSale godoc
// @Summary Record a sale
// @Description Records a sale with product lines, service lines and extra costs. Batch stock is checked and the discount code redeemed in the same transaction.
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.CreateSaleRequest true "Sale details"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} map[string]string "Invalid input or unredeemable discount code"
// @Failure 422 {object} map[string]string "Insufficient batch stock"
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Sale recorded",
		slog.String("sale_id", sale.SaleID))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List sales
// @Description Returns a page of sales newest first with an opaque cursor for the next page
// @Tags sales
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListSalesResponse
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	var params dto.TokenListParams
	if !bindQuery(c, &params) {
		return
	}
	sales, nextToken, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ListSalesResponse{
		Sales:     make([]dto.SaleResponse, len(sales)),
		NextToken: nextToken,
	}
	for i := range sales {
		resp.Sales[i] = dto.ToSaleResponse(&sales[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getSale godoc
// @Summary Get a sale by ID
// @Tags sales
// @Produce json
// @Param id path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Security BearerAuth
// @Router /sales/{id} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	sale, err := h.saleService.GetSaleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// updateSale godoc
// @Summary Update a sale
// @Description Replaces the sale, re-running stock checks with this sale's own depletion excluded
// @Tags sales
// @Accept json
// @Produce json
// @Param id path string true "Sale ID"
// @Param sale body dto.UpdateSaleRequest true "Replacement sale"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 422 {object} map[string]string "Insufficient batch stock"
// @Security BearerAuth
// @Router /sales/{id} [put]
func (h *saleHandler) updateSale(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateSaleRequest
	if !bindJSON(c, &req) {
		return
	}
	sale, err := h.saleService.UpdateSale(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// deleteSale godoc
// @Summary Delete a sale
// @Description Removes the sale, returning its batch depletion to stock and reversing any account-linked payments
// @Tags sales
// @Param id path string true "Sale ID"
// @Success 204
// @Failure 404 {object} map[string]string "Sale not found"
// @Security BearerAuth
// @Router /sales/{id} [delete]
func (h *saleHandler) deleteSale(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.saleService.DeleteSale(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// addSaleItem godoc
// @Summary Add a product line to a sale
// @Description Appends the line, re-checks batch stock and recomputes the sale totals
// @Tags sales
// @Accept json
// @Produce json
// @Param id path string true "Sale ID"
// @Param item body dto.SaleItemRequest true "Product line"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 422 {object} map[string]string "Insufficient batch stock"
// @Security BearerAuth
// @Router /sales/{id}/items [post]
func (h *saleHandler) addSaleItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.SaleItemRequest
	if !bindJSON(c, &req) {
		return
	}
	sale, err := h.saleService.AddSaleItem(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// updateSaleItem godoc
// @Summary Update a product line on a sale
// @Description Rewrites the line. A line kept on the same batch gives back its old consumption before the stock check.
// @Tags sales
// @Accept json
// @Produce json
// @Param id path string true "Sale ID"
// @Param itemId path string true "Sale item ID"
// @Param item body dto.SaleItemRequest true "Replacement product line"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} map[string]string "Sale or item not found"
// @Failure 422 {object} map[string]string "Insufficient batch stock"
// @Security BearerAuth
// @Router /sales/{id}/items/{itemId} [put]
func (h *saleHandler) updateSaleItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.SaleItemRequest
	if !bindJSON(c, &req) {
		return
	}
	sale, err := h.saleService.UpdateSaleItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// deleteSaleItem godoc
// @Summary Delete a product line from a sale
// @Description Removes the line, returning its batch depletion to stock, and recomputes the sale totals
// @Tags sales
// @Produce json
// @Param id path string true "Sale ID"
// @Param itemId path string true "Sale item ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} map[string]string "Last remaining line"
// @Failure 404 {object} map[string]string "Sale or item not found"
// @Security BearerAuth
// @Router /sales/{id}/items/{itemId} [delete]
func (h *saleHandler) deleteSaleItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sale, err := h.saleService.DeleteSaleItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// addPayment godoc
// @Summary Record a payment against a sale
// @Description Records the payment and deposits into the linked account when one is given
// @Tags sales
// @Accept json
// @Produce json
// @Param id path string true "Sale ID"
// @Param payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Security BearerAuth
// @Router /sales/{id}/payments [post]
func (h *saleHandler) addPayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.saleService.AddPayment(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSalePaymentResponse(payment))
}

// listPayments godoc
// @Summary List a sale's payments
// @Tags sales
// @Produce json
// @Param id path string true "Sale ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Security BearerAuth
// @Router /sales/{id}/payments [get]
func (h *saleHandler) listPayments(c *gin.Context) {
	payments, err := h.saleService.ListPayments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListSalePaymentResponse(payments))
}

// deletePayment godoc
// @Summary Delete a sale payment
// @Description Removes the payment, withdrawing the deposited funds from the linked account
// @Tags sales
// @Param id path string true "Sale ID"
// @Param paymentId path string true "Payment ID"
// @Success 204
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /sales/{id}/payments/{paymentId} [delete]
func (h *saleHandler) deletePayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.saleService.DeletePayment(c.Request.Context(), c.Param("id"), c.Param("paymentId"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
