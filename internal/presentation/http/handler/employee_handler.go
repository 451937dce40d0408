package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gopos-api/internal/application/service"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/response"
)

// EmployeeHandler handles staff management for the caller's shop
type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// List handles listing the shop's employees
// @Summary List employees
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employeeService.ListEmployees(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employees retrieved successfully", usersPayload(employees))
}

// Create handles creating an employee
// @Summary Create employee
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateEmployeeRequest true "Employee"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req request.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), &service.CreateEmployeeInput{
		Phone:    req.Phone,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Employee created successfully", userPayload(employee))
}

// Update handles renaming an employee and optionally changing the password
// @Summary Update employee
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param request body request.UpdateEmployeeRequest true "Employee"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "employee")
	if !ok {
		return
	}

	var req request.UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), &service.UpdateEmployeeInput{
		ID:       id,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee updated successfully", userPayload(employee))
}

// Delete handles deleting an employee
// @Summary Delete employee
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "employee")
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee deleted successfully", nil)
}
