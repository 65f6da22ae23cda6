package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// expenseHandler handles expense type and expense requests.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(expenseService portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: expenseService}
}

// registerExpenseRoutes sets up the routes for expense tracking.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	types := rg.Group("/expense-types")
	{
		types.POST("", h.createExpenseType)
		types.GET("", h.listExpenseTypes)
		types.PUT("/:id", h.updateExpenseType)
		types.DELETE("/:id", h.deleteExpenseType)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:id", h.getExpense)
		expenses.PUT("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.deleteExpense)
	}
}

// createExpenseType godoc
// @Summary Create an expense type
// @Tags expenses
// @Accept json
// @Produce json
// @Param type body dto.CreateExpenseTypeRequest true "Type details"
// @Success 201 {object} dto.ExpenseTypeResponse
// @Failure 409 {object} map[string]string "Name already exists"
// @Security BearerAuth
// @Router /expense-types [post]
func (h *expenseHandler) createExpenseType(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateExpenseTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	expenseType, err := h.expenseService.CreateExpenseType(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseTypeResponse(expenseType))
}

// listExpenseTypes godoc
// @Summary List expense types
// @Tags expenses
// @Produce json
// @Success 200 {array} dto.ExpenseTypeResponse
// @Security BearerAuth
// @Router /expense-types [get]
func (h *expenseHandler) listExpenseTypes(c *gin.Context) {
	types, err := h.expenseService.ListExpenseTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpenseTypeResponse(types))
}

// updateExpenseType godoc
// @Summary Rename an expense type
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense type ID"
// @Param type body dto.UpdateExpenseTypeRequest true "New name"
// @Success 200 {object} dto.ExpenseTypeResponse
// @Failure 404 {object} map[string]string "Type not found"
// @Security BearerAuth
// @Router /expense-types/{id} [put]
func (h *expenseHandler) updateExpenseType(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateExpenseTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	expenseType, err := h.expenseService.UpdateExpenseType(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseTypeResponse(expenseType))
}

// deleteExpenseType godoc
// @Summary Delete an expense type
// @Tags expenses
// @Param id path string true "Expense type ID"
// @Success 204
// @Failure 404 {object} map[string]string "Type not found"
// @Failure 409 {object} map[string]string "Type has expenses"
// @Security BearerAuth
// @Router /expense-types/{id} [delete]
func (h *expenseHandler) deleteExpenseType(c *gin.Context) {
	if err := h.expenseService.DeleteExpenseType(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// createExpense godoc
// @Summary Record an expense
// @Description Records an expense, withdrawing from the linked account when one is given
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown type"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} dto.ExpenseResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	var params dto.ListExpensesParams
	if !bindQuery(c, &params) {
		return
	}
	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpenseResponse(expenses))
}

// getExpense godoc
// @Summary Get an expense by ID
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// updateExpense godoc
// @Summary Update an expense
// @Description Replaces the expense, reversing the old ledger effect and applying the new one
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Replacement expense"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Removes the expense, restoring withdrawn funds to the linked account
// @Tags expenses
// @Param id path string true "Expense ID"
// @Success 204
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
