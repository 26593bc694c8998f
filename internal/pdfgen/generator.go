package pdfgen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmoutsourcing/payslip-api/internal/models"
	"github.com/go-pdf/fpdf"
)

// Data is the composed bundle the payslip service hands to the renderer.
type Data struct {
	PayslipNo         string
	EmployeeName      string
	EmployeeID        string
	Salary            float64
	Bonus             float64
	TotalSalary       float64
	CutoffDate        time.Time
	PaymentDate       time.Time
	PaymentStatus     string
	PersonInCharge    string
	PreferredBank     string
	BankAccountNumber string
	BankAccountName   string
}

// Artifact describes a generated file. RelativePath is relative to the
// document root and is what gets persisted; Filename is the bare name.
type Artifact struct {
	Filename     string
	RelativePath string
}

// Generator renders the two payslip PDF variants under
// {docRoot}/pdfs/agent and {docRoot}/pdfs/admin.
type Generator struct {
	docRoot     string
	companyName string
	now         func() time.Time
}

func NewGenerator(cfg models.PDFConfig) *Generator {
	return &Generator{
		docRoot:     cfg.DocumentRoot,
		companyName: cfg.CompanyName,
		now:         time.Now,
	}
}

// GenerateAgentCopy renders the employee facing variant: amounts only,
// no banking information and no payment status.
func (g *Generator) GenerateAgentCopy(data Data) (Artifact, error) {
	artifact, fullPath, err := g.outputPaths("agent", data.PayslipNo)
	if err != nil {
		return Artifact{}, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Agent Payslip - "+data.PayslipNo, true)
	pdf.SetAuthor(g.companyName, true)
	pdf.SetCreator(models.APPName, true)
	pdf.AddPage()

	g.letterhead(pdf, "AGENT PAYSLIP", data.PayslipNo)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Employee Information", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	labelRow(pdf, "Agent Name:", data.EmployeeName)
	labelRow(pdf, "Employee ID:", data.EmployeeID)
	labelRow(pdf, "Payment Date:", data.PaymentDate.Format("January 02, 2006"))
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Payment Information", "", 1, "", false, 0, "")
	amountTable(pdf, data)
	pdf.Ln(10)

	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 10, "This is a system-generated document. No signature required.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(fullPath); err != nil {
		return Artifact{}, fmt.Errorf("writing agent payslip: %w", err)
	}
	return artifact, nil
}

// GenerateAdminCopy renders the internal variant: everything in the agent
// copy plus banking details, person in charge and the payment status line.
func (g *Generator) GenerateAdminCopy(data Data) (Artifact, error) {
	artifact, fullPath, err := g.outputPaths("admin", data.PayslipNo)
	if err != nil {
		return Artifact{}, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Admin Payslip - "+data.PayslipNo, true)
	pdf.SetAuthor(g.companyName, true)
	pdf.SetCreator(models.APPName, true)
	pdf.AddPage()

	g.letterhead(pdf, "ADMIN PAYSLIP", data.PayslipNo)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Employee Information", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	labelRow(pdf, "Agent Name:", data.EmployeeName)
	labelRow(pdf, "Employee ID:", data.EmployeeID)
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Banking Information", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	labelRow(pdf, "Bank Name:", data.PreferredBank)
	labelRow(pdf, "Account Number:", data.BankAccountNumber)
	labelRow(pdf, "Account Name:", data.BankAccountName)
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Payment Information", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	labelRow(pdf, "Person In Charge:", data.PersonInCharge)
	labelRow(pdf, "Payment Date:", data.PaymentDate.Format("January 02, 2006"))
	pdf.Ln(5)

	amountTable(pdf, data)
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 8, "Payment Status:", "", 0, "", false, 0, "")
	switch data.PaymentStatus {
	case models.PaymentStatusPaid:
		pdf.SetTextColor(0, 128, 0)
	case models.PaymentStatusPending:
		pdf.SetTextColor(255, 128, 0)
	default:
		pdf.SetTextColor(255, 0, 0)
	}
	pdf.CellFormat(0, 8, data.PaymentStatus, "", 1, "", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, "Authorized by: _________________________", "", 1, "", false, 0, "")
	pdf.CellFormat(0, 8, "Date: _________________________", "", 1, "", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 10, "This is a system-generated document.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(fullPath); err != nil {
		return Artifact{}, fmt.Errorf("writing admin payslip: %w", err)
	}
	return artifact, nil
}

// outputPaths builds the timestamped filename and makes sure the output
// directory exists. The timestamp component means regeneration never
// overwrites a previous file; old files are left behind on purpose.
func (g *Generator) outputPaths(copyType, payslipNo string) (Artifact, string, error) {
	dir := filepath.Join(g.docRoot, "pdfs", copyType)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Artifact{}, "", fmt.Errorf("creating pdf directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%s.pdf", copyType, payslipNo, g.now().Format("20060102_150405"))
	artifact := Artifact{
		Filename:     filename,
		RelativePath: "pdfs/" + copyType + "/" + filename,
	}
	return artifact, filepath.Join(dir, filename), nil
}

func (g *Generator) letterhead(pdf *fpdf.Fpdf, header, payslipNo string) {
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, strings.ToUpper(g.companyName), "", 1, "R", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, header, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, "Payslip No: "+payslipNo, "", 1, "C", false, 0, "")
	pdf.Ln(10)
}

func labelRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.CellFormat(50, 8, label, "", 0, "", false, 0, "")
	pdf.CellFormat(0, 8, value, "", 1, "", false, 0, "")
}

func amountTable(pdf *fpdf.Fpdf, data Data) {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(100, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(100, 8, "Salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, FormatAmount(data.Salary), "1", 1, "R", false, 0, "")
	pdf.CellFormat(100, 8, "Bonus", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, FormatAmount(data.Bonus), "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(100, 8, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, FormatAmount(data.TotalSalary), "1", 1, "R", true, 0, "")
}

// FormatAmount renders an amount with two decimals and comma separated
// thousands, e.g. 20000 -> "20,000.00".
func FormatAmount(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	frac := s[len(s)-3:]

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
