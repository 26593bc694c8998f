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

type AccountHandler struct {
	DB         *dbrepo.AccountRepo
	Employees  *dbrepo.EmployeeRepo
	pagination models.PaginationConfig
	infoLog    *log.Logger
	errorLog   *log.Logger
}

func NewAccountHandler(db *dbrepo.AccountRepo, employees *dbrepo.EmployeeRepo, pagination models.PaginationConfig, infoLog *log.Logger, errorLog *log.Logger) *AccountHandler {
	return &AccountHandler{
		DB:         db,
		Employees:  employees,
		pagination: pagination,
		infoLog:    infoLog,
		errorLog:   errorLog,
	}
}

type accountRequest struct {
	EmployeeID    string `json:"employee_id" validate:"required"`
	AccountEmail  string `json:"account_email" validate:"required,email"`
	Password      string `json:"password"`
	AccountType   string `json:"account_type" validate:"required,oneof='Team Leader' Overflow Auto-Warranty Commissions"`
	AccountStatus string `json:"account_status" validate:"required,oneof=ACTIVE INACTIVE SUSPENDED"`
}

func (a *AccountHandler) AddAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		a.errorLog.Println("ERROR_01_AddAccount:", err)
		utils.BadRequest(w, err)
		return
	}

	if fields := utils.ValidateStruct(req); fields != nil {
		a.errorLog.Println("ERROR_02_AddAccount: invalid input")
		utils.FieldErrors(w, fields)
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		utils.FieldErrors(w, map[string]string{"password": "This field is required"})
		return
	}

	if _, err := a.Employees.GetEmployeeByEmployeeID(r.Context(), req.EmployeeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.NotFound(w, errors.New("Employee not found"))
			return
		}
		a.errorLog.Println("ERROR_03_AddAccount:", err)
		utils.ServerError(w, err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		a.errorLog.Println("ERROR_04_AddAccount:", err)
		utils.ServerError(w, err)
		return
	}

	account := &models.Account{
		EmployeeID:    req.EmployeeID,
		AccountEmail:  req.AccountEmail,
		Password:      hash,
		AccountType:   req.AccountType,
		AccountStatus: req.AccountStatus,
	}

	if err := a.DB.CreateAccount(r.Context(), account); err != nil {
		a.errorLog.Println("ERROR_05_AddAccount:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool            `json:"error"`
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Account *models.Account `json:"account"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Account created successfully"
	resp.Account = account

	utils.WriteJSON(w, http.StatusCreated, resp)
}

func (a *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		a.errorLog.Println("ERROR_01_GetAccount: invalid id")
		utils.BadRequest(w, errors.New("invalid account id"))
		return
	}

	account, err := a.DB.GetAccount(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.NotFound(w, errors.New("Account not found"))
			return
		}
		a.errorLog.Println("ERROR_02_GetAccount:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error   bool            `json:"error"`
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Account *models.Account `json:"account"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Account fetched successfully"
	resp.Account = account

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (a *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		a.errorLog.Println("ERROR_01_UpdateAccount: invalid id")
		utils.BadRequest(w, errors.New("invalid account id"))
		return
	}

	var req accountRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		a.errorLog.Println("ERROR_02_UpdateAccount:", err)
		utils.BadRequest(w, err)
		return
	}

	if fields := utils.ValidateStruct(req); fields != nil {
		a.errorLog.Println("ERROR_03_UpdateAccount: invalid input")
		utils.FieldErrors(w, fields)
		return
	}

	if _, err := a.Employees.GetEmployeeByEmployeeID(r.Context(), req.EmployeeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.NotFound(w, errors.New("Employee not found"))
			return
		}
		a.errorLog.Println("ERROR_04_UpdateAccount:", err)
		utils.ServerError(w, err)
		return
	}

	// blank password keeps the current hash
	hash := ""
	if strings.TrimSpace(req.Password) != "" {
		hash, err = utils.HashPassword(req.Password)
		if err != nil {
			a.errorLog.Println("ERROR_05_UpdateAccount:", err)
			utils.ServerError(w, err)
			return
		}
	}

	account := &models.Account{
		AccountID:     id,
		EmployeeID:    req.EmployeeID,
		AccountEmail:  req.AccountEmail,
		Password:      hash,
		AccountType:   req.AccountType,
		AccountStatus: req.AccountStatus,
	}

	if err := a.DB.UpdateAccount(r.Context(), account); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.NotFound(w, errors.New("Account not found"))
			return
		}
		a.errorLog.Println("ERROR_06_UpdateAccount:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool            `json:"error"`
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Account *models.Account `json:"account"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Account updated successfully"
	resp.Account = account

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (a *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		a.errorLog.Println("ERROR_01_DeleteAccount: invalid id")
		utils.BadRequest(w, errors.New("invalid account id"))
		return
	}

	if err := a.DB.DeleteAccount(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.NotFound(w, errors.New("Account not found"))
			return
		}
		a.errorLog.Println("ERROR_02_DeleteAccount:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.Response{
		Error:   false,
		Status:  "success",
		Message: "Account deleted successfully",
	})
}

func (a *AccountHandler) PaginatedAccountList(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r, a.pagination)
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	accountType := strings.TrimSpace(r.URL.Query().Get("account_type"))

	accounts, total, err := a.DB.PaginatedAccountList(r.Context(), page, limit, search, accountType)
	if err != nil {
		a.errorLog.Println("ERROR_01_PaginatedAccountList:", err)
		utils.ServerError(w, err)
		return
	}

	totalPages := (total + limit - 1) / limit

	var resp struct {
		Error      bool              `json:"error"`
		Status     string            `json:"status"`
		Message    string            `json:"message"`
		Page       int               `json:"page"`
		Limit      int               `json:"limit"`
		Total      int               `json:"total"`
		TotalPages int               `json:"total_pages"`
		Accounts   []*models.Account `json:"accounts"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Account list fetched successfully"
	resp.Page = page
	resp.Limit = limit
	resp.Total = total
	resp.TotalPages = totalPages
	resp.Accounts = accounts

	utils.WriteJSON(w, http.StatusOK, resp)
}

// AccountTypes serves the fixed account type list for the account form.
func (a *AccountHandler) AccountTypes(w http.ResponseWriter, r *http.Request) {
	var resp struct {
		Error   bool     `json:"error"`
		Status  string   `json:"status"`
		Message string   `json:"message"`
		Types   []string `json:"types"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Account types fetched successfully"
	resp.Types = models.AccountTypes

	utils.WriteJSON(w, http.StatusOK, resp)
}

// AccountStatuses serves the fixed account status list for the account form.
func (a *AccountHandler) AccountStatuses(w http.ResponseWriter, r *http.Request) {
	var resp struct {
		Error    bool     `json:"error"`
		Status   string   `json:"status"`
		Message  string   `json:"message"`
		Statuses []string `json:"statuses"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Account statuses fetched successfully"
	resp.Statuses = models.AccountStatuses

	utils.WriteJSON(w, http.StatusOK, resp)
}
