package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// discountHandler handles discount code requests.
type discountHandler struct {
	discountService portssvc.DiscountSvcFacade
}

func newDiscountHandler(discountService portssvc.DiscountSvcFacade) *discountHandler {
	return &discountHandler{discountService: discountService}
}

// registerDiscountRoutes sets up the routes for discount codes.
func registerDiscountRoutes(rg *gin.RouterGroup, discountService portssvc.DiscountSvcFacade) {
	h := newDiscountHandler(discountService)

	codes := rg.Group("/discount-codes")
	{
		codes.POST("", h.createCode)
		codes.GET("", h.listCodes)
		codes.GET("/validate", h.validateCode)
		codes.GET("/:id", h.getCode)
		codes.PUT("/:id", h.updateCode)
		codes.DELETE("/:id", h.deleteCode)
	}
}

// createCode godoc
// @Summary Create a discount code
// @Tags discount-codes
// @Accept json
// @Produce json
// @Param code body dto.CreateDiscountCodeRequest true "Code details"
// @Success 201 {object} dto.DiscountCodeResponse
// @Failure 400 {object} map[string]string "Invalid value or validity window"
// @Failure 409 {object} map[string]string "Code already exists"
// @Security BearerAuth
// @Router /discount-codes [post]
func (h *discountHandler) createCode(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateDiscountCodeRequest
	if !bindJSON(c, &req) {
		return
	}
	code, err := h.discountService.CreateCode(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDiscountCodeResponse(code))
}

// listCodes godoc
// @Summary List discount codes
// @Tags discount-codes
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.DiscountCodeResponse
// @Security BearerAuth
// @Router /discount-codes [get]
func (h *discountHandler) listCodes(c *gin.Context) {
	var params dto.ListParams
	if !bindQuery(c, &params) {
		return
	}
	codes, err := h.discountService.ListCodes(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListDiscountCodeResponse(codes))
}

// validateCode godoc
// @Summary Validate a discount code against a subtotal
// @Description Checks redeemability without bumping the use count, returning the discount the code would grant
// @Tags discount-codes
// @Produce json
// @Param code query string true "Discount code"
// @Param subtotal query number true "Order subtotal"
// @Success 200 {object} dto.ValidateDiscountResponse
// @Failure 404 {object} map[string]string "Code not found"
// @Security BearerAuth
// @Router /discount-codes/validate [get]
func (h *discountHandler) validateCode(c *gin.Context) {
	var params dto.ValidateDiscountParams
	if !bindQuery(c, &params) {
		return
	}
	resp, err := h.discountService.ValidateCode(c.Request.Context(), params.Code, params.Subtotal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getCode godoc
// @Summary Get a discount code by ID
// @Tags discount-codes
// @Produce json
// @Param id path string true "Code ID"
// @Success 200 {object} dto.DiscountCodeResponse
// @Failure 404 {object} map[string]string "Code not found"
// @Security BearerAuth
// @Router /discount-codes/{id} [get]
func (h *discountHandler) getCode(c *gin.Context) {
	code, err := h.discountService.GetCodeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDiscountCodeResponse(code))
}

// updateCode godoc
// @Summary Update a discount code
// @Description Updates terms. The code string itself is immutable.
// @Tags discount-codes
// @Accept json
// @Produce json
// @Param id path string true "Code ID"
// @Param code body dto.UpdateDiscountCodeRequest true "Fields to update"
// @Success 200 {object} dto.DiscountCodeResponse
// @Failure 404 {object} map[string]string "Code not found"
// @Security BearerAuth
// @Router /discount-codes/{id} [put]
func (h *discountHandler) updateCode(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateDiscountCodeRequest
	if !bindJSON(c, &req) {
		return
	}
	code, err := h.discountService.UpdateCode(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDiscountCodeResponse(code))
}

// deleteCode godoc
// @Summary Delete a discount code
// @Description Removes the code. Sales that already redeemed it keep their stored discount.
// @Tags discount-codes
// @Param id path string true "Code ID"
// @Success 204
// @Failure 404 {object} map[string]string "Code not found"
// @Security BearerAuth
// @Router /discount-codes/{id} [delete]
func (h *discountHandler) deleteCode(c *gin.Context) {
	if err := h.discountService.DeleteCode(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
