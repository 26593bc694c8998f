package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/bmoutsourcing/payslip-api/internal/dbrepo"
	"github.com/bmoutsourcing/payslip-api/internal/models"
	"github.com/bmoutsourcing/payslip-api/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
)

type EmployeeHandler struct {
	DB         *dbrepo.EmployeeRepo
	pagination models.PaginationConfig
	infoLog    *log.Logger
	errorLog   *log.Logger
}

func NewEmployeeHandler(db *dbrepo.EmployeeRepo, pagination models.PaginationConfig, infoLog *log.Logger, errorLog *log.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		DB:         db,
		pagination: pagination,
		infoLog:    infoLog,
		errorLog:   errorLog,
	}
}

type employeeRequest struct {
	EmployeeID    string `json:"employee_id" validate:"required"`
	FirstName     string `json:"firstname" validate:"required"`
	LastName      string `json:"lastname" validate:"required"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email" validate:"required,email"`
}

func (e *EmployeeHandler) AddEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		e.errorLog.Println("ERROR_01_AddEmployee:", err)
		utils.BadRequest(w, err)
		return
	}

	if fields := utils.ValidateStruct(req); fields != nil {
		e.errorLog.Println("ERROR_02_AddEmployee: invalid input")
		utils.FieldErrors(w, fields)
		return
	}

	employee := &models.Employee{
		EmployeeID:    req.EmployeeID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
	}

	if err := e.DB.CreateEmployee(r.Context(), employee); err != nil {
		e.errorLog.Println("ERROR_03_AddEmployee:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error    bool             `json:"error"`
		Status   string           `json:"status"`
		Message  string           `json:"message"`
		Employee *models.Employee `json:"employee"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Employee added successfully"
	resp.Employee = employee

	utils.WriteJSON(w, http.StatusCreated, resp)
}

func (e *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		e.errorLog.Println("ERROR_01_GetEmployee: invalid id")
		utils.BadRequest(w, errors.New("invalid employee id"))
		return
	}

	employee, err := e.DB.GetEmployee(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.NotFound(w, errors.New("Employee not found"))
			return
		}
		e.errorLog.Println("ERROR_02_GetEmployee:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error    bool             `json:"error"`
		Status   string           `json:"status"`
		Message  string           `json:"message"`
		Employee *models.Employee `json:"employee"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Employee info fetched successfully"
	resp.Employee = employee

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (e *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		e.errorLog.Println("ERROR_01_UpdateEmployee: invalid id")
		utils.BadRequest(w, errors.New("invalid employee id"))
		return
	}

	var req employeeRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		e.errorLog.Println("ERROR_02_UpdateEmployee:", err)
		utils.BadRequest(w, err)
		return
	}

	if fields := utils.ValidateStruct(req); fields != nil {
		e.errorLog.Println("ERROR_03_UpdateEmployee: invalid input")
		utils.FieldErrors(w, fields)
		return
	}

	employee := &models.Employee{
		ID:            id,
		EmployeeID:    req.EmployeeID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
	}

	if err := e.DB.UpdateEmployee(r.Context(), employee); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.NotFound(w, errors.New("Employee not found"))
			return
		}
		e.errorLog.Println("ERROR_04_UpdateEmployee:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error    bool             `json:"error"`
		Status   string           `json:"status"`
		Message  string           `json:"message"`
		Employee *models.Employee `json:"employee"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Employee updated successfully"
	resp.Employee = employee

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (e *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		e.errorLog.Println("ERROR_01_DeleteEmployee: invalid id")
		utils.BadRequest(w, errors.New("invalid employee id"))
		return
	}

	if err := e.DB.DeleteEmployee(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.NotFound(w, errors.New("Employee not found"))
			return
		}
		e.errorLog.Println("ERROR_02_DeleteEmployee:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.Response{
		Error:   false,
		Status:  "success",
		Message: "Employee deleted successfully",
	})
}

// PaginatedEmployeeList handles fetching a paginated, searchable list of
// employees. Query params: page, per_page, search
func (e *EmployeeHandler) PaginatedEmployeeList(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r, e.pagination)
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	employees, total, err := e.DB.PaginatedEmployeeList(r.Context(), page, limit, search)
	if err != nil {
		e.errorLog.Println("ERROR_01_PaginatedEmployeeList:", err)
		utils.ServerError(w, err)
		return
	}

	totalPages := (total + limit - 1) / limit

	var resp struct {
		Error      bool               `json:"error"`
		Status     string             `json:"status"`
		Message    string             `json:"message"`
		Page       int                `json:"page"`
		Limit      int                `json:"limit"`
		Total      int                `json:"total"`
		TotalPages int                `json:"total_pages"`
		Employees  []*models.Employee `json:"employees"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Employee list fetched successfully"
	resp.Page = page
	resp.Limit = limit
	resp.Total = total
	resp.TotalPages = totalPages
	resp.Employees = employees

	utils.WriteJSON(w, http.StatusOK, resp)
}
