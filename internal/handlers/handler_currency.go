package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
	"github.com/hesabix/hesabix_backend/internal/middleware"
)

// currencyHandler handles HTTP requests related to currencies and units.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
	unitService     portssvc.UnitSvcFacade
}

func newCurrencyHandler(currencyService portssvc.CurrencySvcFacade, unitService portssvc.UnitSvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: currencyService, unitService: unitService}
}

// registerCurrencyRoutes registers routes related to currencies and units.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade, unitService portssvc.UnitSvcFacade) {
	h := newCurrencyHandler(currencyService, unitService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/convert", h.convertAmount)
		currencies.GET("/:id", h.getCurrency)
		currencies.PUT("/:id", h.updateCurrency)
		currencies.DELETE("/:id", h.deleteCurrency)
		currencies.POST("/:id/set-base", h.setBaseCurrency)
	}

	units := rg.Group("/units")
	{
		units.POST("", h.createUnit)
		units.GET("", h.listUnits)
		units.GET("/:id", h.getUnit)
		units.PUT("/:id", h.updateUnit)
		units.DELETE("/:id", h.deleteUnit)
	}
}

// createCurrency godoc
// @Summary Create a new currency
// @Tags currencies
// @Accept json
// @Produce json
// @Param currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Currency name already exists"
// @Security BearerAuth
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCurrencyRequest
	if !bindJSON(c, &req) {
		return
	}

	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Currency created",
		slog.String("currency_id", currency.CurrencyID))
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List all currencies
// @Tags currencies
// @Produce json
// @Success 200 {array} dto.CurrencyResponse
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// convertAmount godoc
// @Summary Convert an amount between currencies
// @Description Converts through the base currency using configured rates
// @Tags currencies
// @Produce json
// @Param from query string true "Source currency ID"
// @Param to query string true "Target currency ID"
// @Param amount query number true "Amount to convert"
// @Success 200 {object} dto.ConvertAmountResponse
// @Failure 400 {object} map[string]string "Unknown currency or bad amount"
// @Security BearerAuth
// @Router /currencies/convert [get]
func (h *currencyHandler) convertAmount(c *gin.Context) {
	var params dto.ConvertAmountParams
	if !bindQuery(c, &params) {
		return
	}

	converted, err := h.currencyService.ConvertAmount(c.Request.Context(), params.From, params.To, params.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ConvertAmountResponse{
		From:      params.From,
		To:        params.To,
		Amount:    params.Amount,
		Converted: converted,
	})
}

// getCurrency godoc
// @Summary Get a currency by ID
// @Tags currencies
// @Produce json
// @Param id path string true "Currency ID"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{id} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	currency, err := h.currencyService.GetCurrencyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// updateCurrency godoc
// @Summary Update a currency
// @Description Updates name, symbol or rate. The base currency's rate is pinned to 1.
// @Tags currencies
// @Accept json
// @Produce json
// @Param id path string true "Currency ID"
// @Param currency body dto.UpdateCurrencyRequest true "Fields to update"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{id} [put]
func (h *currencyHandler) updateCurrency(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateCurrencyRequest
	if !bindJSON(c, &req) {
		return
	}
	currency, err := h.currencyService.UpdateCurrency(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// deleteCurrency godoc
// @Summary Delete a currency
// @Description Removes a non-base currency that no record references
// @Tags currencies
// @Param id path string true "Currency ID"
// @Success 204
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 409 {object} map[string]string "Currency is base or referenced"
// @Security BearerAuth
// @Router /currencies/{id} [delete]
func (h *currencyHandler) deleteCurrency(c *gin.Context) {
	if err := h.currencyService.DeleteCurrency(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// setBaseCurrency godoc
// @Summary Make a currency the base currency
// @Description Atomically clears the base flag elsewhere and pins this currency's rate to 1
// @Tags currencies
// @Produce json
// @Param id path string true "Currency ID"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{id}/set-base [post]
func (h *currencyHandler) setBaseCurrency(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	currency, err := h.currencyService.SetBaseCurrency(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// createUnit godoc
// @Summary Create a measurement unit
// @Tags units
// @Accept json
// @Produce json
// @Param unit body dto.CreateUnitRequest true "Unit details"
// @Success 201 {object} dto.UnitResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /units [post]
func (h *currencyHandler) createUnit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateUnitRequest
	if !bindJSON(c, &req) {
		return
	}
	unit, err := h.unitService.CreateUnit(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToUnitResponse(unit))
}

// listUnits godoc
// @Summary List all units
// @Tags units
// @Produce json
// @Success 200 {array} dto.UnitResponse
// @Security BearerAuth
// @Router /units [get]
func (h *currencyHandler) listUnits(c *gin.Context) {
	units, err := h.unitService.ListUnits(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListUnitResponse(units))
}

// getUnit godoc
// @Summary Get a unit by ID
// @Tags units
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} dto.UnitResponse
// @Failure 404 {object} map[string]string "Unit not found"
// @Security BearerAuth
// @Router /units/{id} [get]
func (h *currencyHandler) getUnit(c *gin.Context) {
	unit, err := h.unitService.GetUnitByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUnitResponse(unit))
}

// updateUnit godoc
// @Summary Update a unit
// @Tags units
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param unit body dto.UpdateUnitRequest true "Fields to update"
// @Success 200 {object} dto.UnitResponse
// @Failure 404 {object} map[string]string "Unit not found"
// @Security BearerAuth
// @Router /units/{id} [put]
func (h *currencyHandler) updateUnit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateUnitRequest
	if !bindJSON(c, &req) {
		return
	}
	unit, err := h.unitService.UpdateUnit(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUnitResponse(unit))
}

// deleteUnit godoc
// @Summary Delete a unit
// @Tags units
// @Param id path string true "Unit ID"
// @Success 204
// @Failure 404 {object} map[string]string "Unit not found"
// @Failure 409 {object} map[string]string "Unit is referenced"
// @Security BearerAuth
// @Router /units/{id} [delete]
func (h *currencyHandler) deleteUnit(c *gin.Context) {
	if err := h.unitService.DeleteUnit(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
