package api

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/bmoutsourcing/payslip-api/internal/dbrepo"
	"github.com/bmoutsourcing/payslip-api/internal/models"
	"github.com/bmoutsourcing/payslip-api/internal/payslip"
)

type HandlerRepo struct {
	Auth     *AuthHandler
	Employee *EmployeeHandler
	Banking  *BankingHandler
	Account  *AccountHandler
	User     *UserHandler
	Payslip  *PayslipHandler
	PDF      *PDFHandler
}

func NewHandlerRepo(db *dbrepo.DBRepository, svc *payslip.Service, gateway *payslip.Gateway, cfg models.Config, infoLog *log.Logger, errorLog *log.Logger) *HandlerRepo {
	return &HandlerRepo{
		Auth:     NewAuthHandler(db.UserRepo, cfg.JWT, infoLog, errorLog),
		Employee: NewEmployeeHandler(db.EmployeeRepo, cfg.Pagination, infoLog, errorLog),
		Banking:  NewBankingHandler(db.BankAccountRepo, cfg.Pagination, infoLog, errorLog),
		Account:  NewAccountHandler(db.AccountRepo, db.EmployeeRepo, cfg.Pagination, infoLog, errorLog),
		User:     NewUserHandler(db.UserRepo, infoLog, errorLog),
		Payslip:  NewPayslipHandler(svc, cfg.Pagination, infoLog, errorLog),
		PDF:      NewPDFHandler(gateway, infoLog, errorLog),
	}
}

// pagination reads page/per_page query params: page >= 1,
// per_page clamped to [1, max].
func pagination(r *http.Request, cfg models.PaginationConfig) (int, int) {
	page := 1
	if v := strings.TrimSpace(r.URL.Query().Get("page")); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}

	limit := cfg.DefaultPageSize
	if v := strings.TrimSpace(r.URL.Query().Get("per_page")); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 {
			limit = l
		}
	}
	if limit > cfg.MaxPageSize {
		limit = cfg.MaxPageSize
	}

	return page, limit
}
