package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// payrollHandler handles employee and salary requests.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

func newPayrollHandler(payrollService portssvc.PayrollSvcFacade) *payrollHandler {
	return &payrollHandler{payrollService: payrollService}
}

// registerPayrollRoutes sets up the routes for payroll.
func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := newPayrollHandler(payrollService)

	employees := rg.Group("/employees")
	{
		employees.POST("", h.createEmployee)
		employees.GET("", h.listEmployees)
		employees.GET("/:id", h.getEmployee)
		employees.PUT("/:id", h.updateEmployee)
		employees.POST("/:id/deactivate", h.deactivateEmployee)
		employees.GET("/:id/salaries", h.listSalariesByEmployee)
	}

	salaries := rg.Group("/salaries")
	{
		salaries.POST("", h.createSalary)
		salaries.GET("/:id", h.getSalary)
		salaries.PUT("/:id", h.updateSalary)
		salaries.DELETE("/:id", h.deleteSalary)
	}
}

// createEmployee godoc
// @Summary Create an employee
// @Tags payroll
// @Accept json
// @Produce json
// @Param employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /employees [post]
func (h *payrollHandler) createEmployee(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	employee, err := h.payrollService.CreateEmployee(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// listEmployees godoc
// @Summary List employees
// @Tags payroll
// @Produce json
// @Param includeInactive query bool false "Include deactivated employees"
// @Success 200 {array} dto.EmployeeResponse
// @Security BearerAuth
// @Router /employees [get]
func (h *payrollHandler) listEmployees(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"
	employees, err := h.payrollService.ListEmployees(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListEmployeeResponse(employees))
}

// getEmployee godoc
// @Summary Get an employee by ID
// @Tags payroll
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{id} [get]
func (h *payrollHandler) getEmployee(c *gin.Context) {
	employee, err := h.payrollService.GetEmployeeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// updateEmployee godoc
// @Summary Update an employee
// @Tags payroll
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param employee body dto.UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{id} [put]
func (h *payrollHandler) updateEmployee(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	employee, err := h.payrollService.UpdateEmployee(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// deactivateEmployee godoc
// @Summary Deactivate an employee
// @Description Marks the employee inactive. Salary history stays queryable.
// @Tags payroll
// @Param id path string true "Employee ID"
// @Success 204
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{id}/deactivate [post]
func (h *payrollHandler) deactivateEmployee(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.payrollService.DeactivateEmployee(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listSalariesByEmployee godoc
// @Summary List an employee's salary payments
// @Tags payroll
// @Produce json
// @Param id path string true "Employee ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.SalaryResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{id}/salaries [get]
func (h *payrollHandler) listSalariesByEmployee(c *gin.Context) {
	var params dto.ListParams
	if !bindQuery(c, &params) {
		return
	}
	salaries, err := h.payrollService.ListSalariesByEmployee(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListSalaryResponse(salaries))
}

// createSalary godoc
// @Summary Record a salary payment
// @Description Records one salary payment per employee per period. The net amount is gross minus deductions and is withdrawn from the linked account when one is given.
// @Tags payroll
// @Accept json
// @Produce json
// @Param salary body dto.CreateSalaryRequest true "Salary details"
// @Success 201 {object} dto.SalaryResponse
// @Failure 400 {object} map[string]string "Invalid input or deductions exceed gross"
// @Failure 409 {object} map[string]string "Period already paid"
// @Security BearerAuth
// @Router /salaries [post]
func (h *payrollHandler) createSalary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateSalaryRequest
	if !bindJSON(c, &req) {
		return
	}
	salary, err := h.payrollService.CreateSalary(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSalaryResponse(salary))
}

// getSalary godoc
// @Summary Get a salary payment by ID
// @Tags payroll
// @Produce json
// @Param id path string true "Salary ID"
// @Success 200 {object} dto.SalaryResponse
// @Failure 404 {object} map[string]string "Salary not found"
// @Security BearerAuth
// @Router /salaries/{id} [get]
func (h *payrollHandler) getSalary(c *gin.Context) {
	salary, err := h.payrollService.GetSalaryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSalaryResponse(salary))
}

// updateSalary godoc
// @Summary Update a salary payment
// @Description Replaces the salary and its deductions, reversing the old ledger effect and applying the new one
// @Tags payroll
// @Accept json
// @Produce json
// @Param id path string true "Salary ID"
// @Param salary body dto.UpdateSalaryRequest true "Replacement salary"
// @Success 200 {object} dto.SalaryResponse
// @Failure 404 {object} map[string]string "Salary not found"
// @Failure 409 {object} map[string]string "New period already paid"
// @Security BearerAuth
// @Router /salaries/{id} [put]
func (h *payrollHandler) updateSalary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateSalaryRequest
	if !bindJSON(c, &req) {
		return
	}
	salary, err := h.payrollService.UpdateSalary(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSalaryResponse(salary))
}

// deleteSalary godoc
// @Summary Delete a salary payment
// @Description Removes the salary, restoring the withdrawn net amount to the linked account
// @Tags payroll
// @Param id path string true "Salary ID"
// @Success 204
// @Failure 404 {object} map[string]string "Salary not found"
// @Security BearerAuth
// @Router /salaries/{id} [delete]
func (h *payrollHandler) deleteSalary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.payrollService.DeleteSalary(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
