package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bmoutsourcing/payslip-api/internal/models"
	"github.com/bmoutsourcing/payslip-api/internal/payslip"
	"github.com/bmoutsourcing/payslip-api/internal/utils"
	"github.com/go-chi/chi/v5"
)

type PayslipHandler struct {
	Service    *payslip.Service
	pagination models.PaginationConfig
	infoLog    *log.Logger
	errorLog   *log.Logger
}

func NewPayslipHandler(svc *payslip.Service, pagination models.PaginationConfig, infoLog *log.Logger, errorLog *log.Logger) *PayslipHandler {
	return &PayslipHandler{
		Service:    svc,
		pagination: pagination,
		infoLog:    infoLog,
		errorLog:   errorLog,
	}
}

// writePayslipError maps service errors onto the response envelope.
func (p *PayslipHandler) writePayslipError(w http.ResponseWriter, caller string, err error) {
	var ve *payslip.ValidationError
	if errors.As(err, &ve) {
		if len(ve.Fields) > 0 {
			utils.FieldErrors(w, ve.Fields)
			return
		}
		utils.BadRequest(w, ve)
		return
	}

	var nf *payslip.NotFoundError
	if errors.As(err, &nf) {
		utils.NotFound(w, nf)
		return
	}

	p.errorLog.Println(caller+":", err)
	utils.ServerError(w, err)
}

func (p *PayslipHandler) AddPayslip(w http.ResponseWriter, r *http.Request) {
	var req payslip.Request
	if err := utils.ReadJSON(w, r, &req); err != nil {
		p.errorLog.Println("ERROR_01_AddPayslip:", err)
		utils.BadRequest(w, err)
		return
	}

	slip, warnings, err := p.Service.Create(r.Context(), req)
	if err != nil {
		p.writePayslipError(w, "ERROR_02_AddPayslip", err)
		return
	}

	var resp struct {
		Error    bool            `json:"error"`
		Status   string          `json:"status"`
		Message  string          `json:"message"`
		Warnings []string        `json:"warnings,omitempty"`
		Payslip  *models.Payslip `json:"payslip"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Payslip created successfully"
	resp.Warnings = warnings
	resp.Payslip = slip

	utils.WriteJSON(w, http.StatusCreated, resp)
}

func (p *PayslipHandler) GetPayslip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		p.errorLog.Println("ERROR_01_GetPayslip: invalid id")
		utils.BadRequest(w, errors.New("invalid payslip id"))
		return
	}

	slip, err := p.Service.Get(r.Context(), id)
	if err != nil {
		p.writePayslipError(w, "ERROR_02_GetPayslip", err)
		return
	}

	var resp struct {
		Error   bool            `json:"error"`
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Payslip *models.Payslip `json:"payslip"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Payslip fetched successfully"
	resp.Payslip = slip

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (p *PayslipHandler) UpdatePayslip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		p.errorLog.Println("ERROR_01_UpdatePayslip: invalid id")
		utils.BadRequest(w, errors.New("invalid payslip id"))
		return
	}

	var req payslip.Request
	if err := utils.ReadJSON(w, r, &req); err != nil {
		p.errorLog.Println("ERROR_02_UpdatePayslip:", err)
		utils.BadRequest(w, err)
		return
	}

	slip, err := p.Service.Update(r.Context(), id, req)
	if err != nil {
		p.writePayslipError(w, "ERROR_03_UpdatePayslip", err)
		return
	}

	var resp struct {
		Error   bool            `json:"error"`
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Payslip *models.Payslip `json:"payslip"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Payslip updated successfully"
	resp.Payslip = slip

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (p *PayslipHandler) DeletePayslip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		p.errorLog.Println("ERROR_01_DeletePayslip: invalid id")
		utils.BadRequest(w, errors.New("invalid payslip id"))
		return
	}

	if err := p.Service.Delete(r.Context(), id); err != nil {
		p.writePayslipError(w, "ERROR_02_DeletePayslip", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.Response{
		Error:   false,
		Status:  "success",
		Message: "Payslip deleted successfully",
	})
}

func (p *PayslipHandler) RegeneratePayslip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		p.errorLog.Println("ERROR_01_RegeneratePayslip: invalid id")
		utils.BadRequest(w, errors.New("invalid payslip id"))
		return
	}

	slip, err := p.Service.Regenerate(r.Context(), id)
	if err != nil {
		p.writePayslipError(w, "ERROR_02_RegeneratePayslip", err)
		return
	}

	var resp struct {
		Error   bool            `json:"error"`
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Payslip *models.Payslip `json:"payslip"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Payslip PDFs regenerated successfully"
	resp.Payslip = slip

	utils.WriteJSON(w, http.StatusOK, resp)
}

// PaginatedPayslipList handles the payslip list page. Query params:
// page, per_page, search, status, start_date, end_date, sort_field,
// sort_direction
func (p *PayslipHandler) PaginatedPayslipList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pagination(r, p.pagination)

	filter := models.PayslipFilter{
		Search:        strings.TrimSpace(q.Get("search")),
		Status:        strings.TrimSpace(q.Get("status")),
		SortField:     strings.TrimSpace(q.Get("sort_field")),
		SortDirection: strings.ToUpper(strings.TrimSpace(q.Get("sort_direction"))),
		Page:          page,
		Limit:         limit,
	}
	if v := strings.TrimSpace(q.Get("start_date")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.BadRequest(w, errors.New("start_date must be in YYYY-MM-DD format"))
			return
		}
		filter.StartDate = &t
	}
	if v := strings.TrimSpace(q.Get("end_date")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.BadRequest(w, errors.New("end_date must be in YYYY-MM-DD format"))
			return
		}
		filter.EndDate = &t
	}

	slips, total, err := p.Service.List(r.Context(), filter)
	if err != nil {
		p.writePayslipError(w, "ERROR_01_PaginatedPayslipList", err)
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
		Payslips   []*models.Payslip `json:"payslips"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Payslip list fetched successfully"
	resp.Page = page
	resp.Limit = limit
	resp.Total = total
	resp.TotalPages = totalPages
	resp.Payslips = slips

	utils.WriteJSON(w, http.StatusOK, resp)
}
