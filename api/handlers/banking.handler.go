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

type BankingHandler struct {
	DB         *dbrepo.BankAccountRepo
	pagination models.PaginationConfig
	infoLog    *log.Logger
	errorLog   *log.Logger
}

func NewBankingHandler(db *dbrepo.BankAccountRepo, pagination models.PaginationConfig, infoLog *log.Logger, errorLog *log.Logger) *BankingHandler {
	return &BankingHandler{
		DB:         db,
		pagination: pagination,
		infoLog:    infoLog,
		errorLog:   errorLog,
	}
}

type bankAccountRequest struct {
	EmployeeID        string `json:"employee_id" validate:"required"`
	PreferredBank     string `json:"preferred_bank" validate:"required"`
	BankAccountNumber string `json:"bank_account_number" validate:"required"`
	BankAccountName   string `json:"bank_account_name" validate:"required"`
}

func (b *BankingHandler) AddBankAccount(w http.ResponseWriter, r *http.Request) {
	var req bankAccountRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		b.errorLog.Println("ERROR_01_AddBankAccount:", err)
		utils.BadRequest(w, err)
		return
	}

	if fields := utils.ValidateStruct(req); fields != nil {
		b.errorLog.Println("ERROR_02_AddBankAccount: invalid input")
		utils.FieldErrors(w, fields)
		return
	}

	account := &models.BankAccount{
		EmployeeID:        req.EmployeeID,
		PreferredBank:     req.PreferredBank,
		BankAccountNumber: req.BankAccountNumber,
		BankAccountName:   req.BankAccountName,
	}

	if err := b.DB.CreateBankAccount(r.Context(), account); err != nil {
		b.errorLog.Println("ERROR_03_AddBankAccount:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error       bool                `json:"error"`
		Status      string              `json:"status"`
		Message     string              `json:"message"`
		BankAccount *models.BankAccount `json:"bank_account"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Banking details added successfully"
	resp.BankAccount = account

	utils.WriteJSON(w, http.StatusCreated, resp)
}

// GetBankAccountsByEmployee serves the payslip form's bank selector:
// GET /banking/employee/{employee_id}
func (b *BankingHandler) GetBankAccountsByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := strings.TrimSpace(chi.URLParam(r, "employee_id"))
	if employeeID == "" {
		b.errorLog.Println("ERROR_01_GetBankAccountsByEmployee: empty employee id")
		utils.BadRequest(w, errors.New("employee id is required"))
		return
	}

	accounts, err := b.DB.GetBankAccountsByEmployee(r.Context(), employeeID)
	if err != nil {
		b.errorLog.Println("ERROR_02_GetBankAccountsByEmployee:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error        bool                  `json:"error"`
		Status       string                `json:"status"`
		Message      string                `json:"message"`
		BankAccounts []*models.BankAccount `json:"bank_accounts"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Banking details fetched successfully"
	resp.BankAccounts = accounts

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (b *BankingHandler) UpdateBankAccount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		b.errorLog.Println("ERROR_01_UpdateBankAccount: invalid id")
		utils.BadRequest(w, errors.New("invalid bank account id"))
		return
	}

	var req bankAccountRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		b.errorLog.Println("ERROR_02_UpdateBankAccount:", err)
		utils.BadRequest(w, err)
		return
	}

	if fields := utils.ValidateStruct(req); fields != nil {
		b.errorLog.Println("ERROR_03_UpdateBankAccount: invalid input")
		utils.FieldErrors(w, fields)
		return
	}

	account := &models.BankAccount{
		ID:                id,
		EmployeeID:        req.EmployeeID,
		PreferredBank:     req.PreferredBank,
		BankAccountNumber: req.BankAccountNumber,
		BankAccountName:   req.BankAccountName,
	}

	if err := b.DB.UpdateBankAccount(r.Context(), account); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.NotFound(w, errors.New("Banking details not found"))
			return
		}
		b.errorLog.Println("ERROR_04_UpdateBankAccount:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error       bool                `json:"error"`
		Status      string              `json:"status"`
		Message     string              `json:"message"`
		BankAccount *models.BankAccount `json:"bank_account"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Banking details updated successfully"
	resp.BankAccount = account

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (b *BankingHandler) DeleteBankAccount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		b.errorLog.Println("ERROR_01_DeleteBankAccount: invalid id")
		utils.BadRequest(w, errors.New("invalid bank account id"))
		return
	}

	if err := b.DB.DeleteBankAccount(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.NotFound(w, errors.New("Banking details not found"))
			return
		}
		b.errorLog.Println("ERROR_02_DeleteBankAccount:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.Response{
		Error:   false,
		Status:  "success",
		Message: "Banking details deleted successfully",
	})
}

// PaginatedBankAccountList handles the banking list page. Query params:
// page, per_page, search, sort_field, sort_direction
func (b *BankingHandler) PaginatedBankAccountList(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r, b.pagination)
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	sortField := strings.TrimSpace(r.URL.Query().Get("sort_field"))
	sortDirection := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("sort_direction")))

	accounts, total, err := b.DB.PaginatedBankAccountList(r.Context(), page, limit, search, sortField, sortDirection)
	if err != nil {
		b.errorLog.Println("ERROR_01_PaginatedBankAccountList:", err)
		utils.ServerError(w, err)
		return
	}

	totalPages := (total + limit - 1) / limit

	var resp struct {
		Error        bool                  `json:"error"`
		Status       string                `json:"status"`
		Message      string                `json:"message"`
		Page         int                   `json:"page"`
		Limit        int                   `json:"limit"`
		Total        int                   `json:"total"`
		TotalPages   int                   `json:"total_pages"`
		BankAccounts []*models.BankAccount `json:"bank_accounts"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Banking list fetched successfully"
	resp.Page = page
	resp.Limit = limit
	resp.Total = total
	resp.TotalPages = totalPages
	resp.BankAccounts = accounts

	utils.WriteJSON(w, http.StatusOK, resp)
}
