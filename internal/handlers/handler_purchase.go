package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
	"github.com/hesabix/hesabix_backend/internal/middleware"
)

// purchaseHandler handles purchase and purchase payment requests.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

func newPurchaseHandler(purchaseService portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{purchaseService: purchaseService}
}

// registerPurchaseRoutes sets up the routes for purchase management.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("", h.listPurchases)
		purchases.GET("/:id", h.getPurchase)
		purchases.PUT("/:id", h.updatePurchase)
		purchases.DELETE("/:id", h.deletePurchase)
		purchases.POST("/:id/payments", h.addPayment)
		purchases.GET("/:id/payments", h.listPayments)
		purchases.DELETE("/:id/payments/:paymentId", h.deletePayment)
	}
}

// createPurchase godoc
// @Summary Record a purchase
// @Description Records a purchase with its items and extra costs. Each item becomes an inventory batch under a generated batch number.
// @Tags purchases
// @Accept json
// @Produce json
// @Param purchase body dto.CreatePurchaseRequest true "Purchase details"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown reference"
// @Security BearerAuth
// @Router /purchases [post]
func (h *purchaseHandler) createPurchase(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePurchaseRequest
	if !bindJSON(c, &req) {
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Purchase recorded",
		slog.String("purchase_id", purchase.PurchaseID),
		slog.String("batch_number", purchase.BatchNumber))
	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(purchase))
}

// listPurchases godoc
// @Summary List purchases
// @Description Returns a page of purchases newest first with an opaque cursor for the next page
// @Tags purchases
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListPurchasesResponse
// @Security BearerAuth
// @Router /purchases [get]
func (h *purchaseHandler) listPurchases(c *gin.Context) {
	var params dto.TokenListParams
	if !bindQuery(c, &params) {
		return
	}
	purchases, nextToken, err := h.purchaseService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ListPurchasesResponse{
		Purchases: make([]dto.PurchaseResponse, len(purchases)),
		NextToken: nextToken,
	}
	for i := range purchases {
		resp.Purchases[i] = dto.ToPurchaseResponse(&purchases[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getPurchase godoc
// @Summary Get a purchase by ID
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} map[string]string "Purchase not found"
// @Security BearerAuth
// @Router /purchases/{id} [get]
func (h *purchaseHandler) getPurchase(c *gin.Context) {
	purchase, err := h.purchaseService.GetPurchaseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// updatePurchase godoc
// @Summary Update a purchase
// @Description Replaces the purchase header, items and costs. Rejected when an item would shrink below the quantity already sold from its batch.
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID"
// @Param purchase body dto.UpdatePurchaseRequest true "Replacement purchase"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} map[string]string "Purchase not found"
// @Failure 409 {object} map[string]string "Sold quantity exceeds new amount"
// @Security BearerAuth
// @Router /purchases/{id} [put]
func (h *purchaseHandler) updatePurchase(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdatePurchaseRequest
	if !bindJSON(c, &req) {
		return
	}
	purchase, err := h.purchaseService.UpdatePurchase(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// deletePurchase godoc
// @Summary Delete a purchase
// @Description Removes a purchase whose batches are entirely unsold, reversing any account-linked payments
// @Tags purchases
// @Param id path string true "Purchase ID"
// @Success 204
// @Failure 404 {object} map[string]string "Purchase not found"
// @Failure 409 {object} map[string]string "Batches have been sold from"
// @Security BearerAuth
// @Router /purchases/{id} [delete]
func (h *purchaseHandler) deletePurchase(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.purchaseService.DeletePurchase(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// addPayment godoc
// @Summary Record a payment against a purchase
// @Description Records the payment and withdraws from the linked account when one is given
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID"
// @Param payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Purchase not found"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /purchases/{id}/payments [post]
func (h *purchaseHandler) addPayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.purchaseService.AddPayment(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPurchasePaymentResponse(payment))
}

// listPayments godoc
// @Summary List a purchase's payments
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Purchase not found"
// @Security BearerAuth
// @Router /purchases/{id}/payments [get]
func (h *purchaseHandler) listPayments(c *gin.Context) {
	payments, err := h.purchaseService.ListPayments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListPurchasePaymentResponse(payments))
}

// deletePayment godoc
// @Summary Delete a purchase payment
// @Description Removes the payment, restoring the withdrawn funds to the linked account
// @Tags purchases
// @Param id path string true "Purchase ID"
// @Param paymentId path string true "Payment ID"
// @Success 204
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /purchases/{id}/payments/{paymentId} [delete]
func (h *purchaseHandler) deletePayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.purchaseService.DeletePayment(c.Request.Context(), c.Param("id"), c.Param("paymentId"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
