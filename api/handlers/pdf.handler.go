package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/bmoutsourcing/payslip-api/internal/payslip"
	"github.com/bmoutsourcing/payslip-api/internal/utils"
	"github.com/go-chi/chi/v5"
)

type PDFHandler struct {
	Gateway  *payslip.Gateway
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewPDFHandler(gateway *payslip.Gateway, infoLog *log.Logger, errorLog *log.Logger) *PDFHandler {
	return &PDFHandler{
		Gateway:  gateway,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// DownloadPDF serves the payslip PDF as an attachment:
// GET /payslips/{id}/pdf/{copy_type}/download
func (p *PDFHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, false)
}

// ViewPDF serves the payslip PDF inline for the browser preview:
// GET /payslips/{id}/pdf/{copy_type}/view
func (p *PDFHandler) ViewPDF(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, true)
}

func (p *PDFHandler) serve(w http.ResponseWriter, r *http.Request, inline bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		p.errorLog.Println("ERROR_01_ServePDF: invalid id")
		utils.BadRequest(w, errors.New("invalid payslip id"))
		return
	}
	copyType := strings.TrimSpace(chi.URLParam(r, "copy_type"))

	artifact, err := p.Gateway.Resolve(r.Context(), id, copyType)
	if err != nil {
		var ve *payslip.ValidationError
		if errors.As(err, &ve) {
			utils.BadRequest(w, ve)
			return
		}
		var nf *payslip.NotFoundError
		if errors.As(err, &nf) {
			utils.NotFound(w, nf)
			return
		}
		p.errorLog.Println("ERROR_02_ServePDF:", err)
		utils.ServerError(w, err)
		return
	}

	if err := p.Gateway.Stream(w, artifact, inline); err != nil {
		// headers are already out, nothing to send the client
		p.errorLog.Println("ERROR_03_ServePDF:", err)
	}
}
