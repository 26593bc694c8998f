package payslip

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bmoutsourcing/payslip-api/internal/models"
	"github.com/bmoutsourcing/payslip-api/internal/pdfgen"
	"github.com/bmoutsourcing/payslip-api/internal/utils"
	"github.com/jackc/pgx/v5"
)

// Store is the persistence surface the service needs. Implementations
// return errors wrapping pgx.ErrNoRows when a row is missing.
type Store interface {
	Insert(ctx context.Context, p *models.Payslip) error
	Update(ctx context.Context, p *models.Payslip) error
	Delete(ctx context.Context, id int) error
	Get(ctx context.Context, id int) (*models.Payslip, error)
	List(ctx context.Context, filter models.PayslipFilter) ([]*models.Payslip, int, error)
	UpdatePDFPaths(ctx context.Context, id int, agentPath, adminPath string) error
}

// EmployeeDirectory resolves an employee by business id.
type EmployeeDirectory interface {
	GetEmployeeByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error)
}

// BankDirectory resolves a bank account scoped to its owning employee.
type BankDirectory interface {
	GetBankAccount(ctx context.Context, id int, employeeID string) (*models.BankAccount, error)
}

// Renderer produces the two PDF variants.
type Renderer interface {
	GenerateAgentCopy(data pdfgen.Data) (pdfgen.Artifact, error)
	GenerateAdminCopy(data pdfgen.Data) (pdfgen.Artifact, error)
}

// Request is the body of POST /payslips and PUT /payslips/{id}.
type Request struct {
	EmployeeID     string  `json:"employee_id" validate:"required"`
	BankAccountID  int     `json:"bank_account_id" validate:"required,gt=0"`
	Salary         float64 `json:"salary" validate:"gte=0"`
	Bonus          float64 `json:"bonus" validate:"gte=0"`
	CutoffDate     string  `json:"cutoff_date" validate:"required"`
	PaymentDate    string  `json:"payment_date" validate:"required"`
	PaymentStatus  string  `json:"payment_status" validate:"required,oneof=Paid Pending Cancelled"`
	PersonInCharge string  `json:"person_in_charge" validate:"required"`
}

const dateLayout = "2006-01-02"

// Service is the payslip record manager. It is the sole writer of
// total_salary and the two PDF path columns.
type Service struct {
	store     Store
	employees EmployeeDirectory
	banks     BankDirectory
	renderer  Renderer
	maxLimit  int
	infoLog   *log.Logger
	errorLog  *log.Logger
}

func NewService(store Store, employees EmployeeDirectory, banks BankDirectory, renderer Renderer, pagination models.PaginationConfig, infoLog, errorLog *log.Logger) *Service {
	return &Service{
		store:     store,
		employees: employees,
		banks:     banks,
		renderer:  renderer,
		maxLimit:  pagination.MaxPageSize,
		infoLog:   infoLog,
		errorLog:  errorLog,
	}
}

// Create validates the request, persists the row with empty PDF paths,
// then renders both copies. A failed render of one copy does not fail the
// call; the row keeps whichever paths succeeded and the failures come
// back as warnings. Regenerate is the repair path for those.
func (s *Service) Create(ctx context.Context, req Request) (*models.Payslip, []string, error) {
	p, emp, bank, err := s.validate(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	if err := s.store.Insert(ctx, p); err != nil {
		return nil, nil, &StorageError{Op: "insert payslip", Err: err}
	}
	s.infoLog.Printf("Payslip %s created for employee %s", p.PayslipNo, p.EmployeeID)

	warnings := s.generate(ctx, p, emp, bank)

	s.attachDisplayFields(p, emp, bank)
	return p, warnings, nil
}

// Update re-validates and recomputes the total but never touches the PDF
// path columns. Edits after the fact must not silently invalidate already
// distributed documents; callers regenerate explicitly.
func (s *Service) Update(ctx context.Context, id int, req Request) (*models.Payslip, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.mapStoreErr(err, "get payslip", &NotFoundError{Kind: NotFoundPayslip, Message: "Payslip not found"})
	}

	p, emp, bank, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	p.ID = existing.ID
	p.PayslipNo = existing.PayslipNo
	p.AgentPDFPath = existing.AgentPDFPath
	p.AdminPDFPath = existing.AdminPDFPath

	if err := s.store.Update(ctx, p); err != nil {
		return nil, s.mapStoreErr(err, "update payslip", &NotFoundError{Kind: NotFoundPayslip, Message: "Payslip not found"})
	}

	s.attachDisplayFields(p, emp, bank)
	return p, nil
}

// Delete removes the database row only. Generated PDF files stay on disk;
// they are never cleaned up.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.mapStoreErr(err, "delete payslip", &NotFoundError{Kind: NotFoundPayslip, Message: "Payslip not found"})
	}
	return nil
}

// Regenerate re-resolves the current employee and banking data and
// re-renders both copies unconditionally, overwriting both path columns.
// Unlike Create it fails hard when either copy cannot be produced; the
// existing paths are left untouched in that case.
func (s *Service) Regenerate(ctx context.Context, id int) (*models.Payslip, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.mapStoreErr(err, "get payslip", &NotFoundError{Kind: NotFoundPayslip, Message: "Payslip not found"})
	}

	emp, err := s.employees.GetEmployeeByEmployeeID(ctx, p.EmployeeID)
	if err != nil {
		return nil, s.mapStoreErr(err, "get employee", &NotFoundError{Kind: NotFoundEmployee, Message: "Employee not found"})
	}

	bank, err := s.banks.GetBankAccount(ctx, p.BankAccountID, p.EmployeeID)
	if err != nil {
		return nil, s.mapStoreErr(err, "get bank account", &NotFoundError{Kind: NotFoundBankAccount, Message: "Bank account not found"})
	}

	data := composeData(p, emp, bank)

	agent, err := s.renderer.GenerateAgentCopy(data)
	if err != nil {
		s.errorLog.Println("ERROR_01_Regenerate:", err)
		return nil, &GenerationError{Copy: "agent", Err: err}
	}
	admin, err := s.renderer.GenerateAdminCopy(data)
	if err != nil {
		s.errorLog.Println("ERROR_02_Regenerate:", err)
		return nil, &GenerationError{Copy: "admin", Err: err}
	}

	if err := s.store.UpdatePDFPaths(ctx, p.ID, agent.RelativePath, admin.RelativePath); err != nil {
		return nil, &StorageError{Op: "update pdf paths", Err: err}
	}

	p.AgentPDFPath = agent.RelativePath
	p.AdminPDFPath = admin.RelativePath
	s.attachDisplayFields(p, emp, bank)
	s.infoLog.Printf("Payslip %s regenerated", p.PayslipNo)
	return p, nil
}

// Get returns one payslip with joined employee and banking fields.
func (s *Service) Get(ctx context.Context, id int) (*models.Payslip, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.mapStoreErr(err, "get payslip", &NotFoundError{Kind: NotFoundPayslip, Message: "Payslip not found"})
	}
	return p, nil
}

// List returns a page of payslips plus the total match count. Page size
// is clamped to the configured maximum; the default sort is most recent
// payment date first, because payroll operators care about recency.
func (s *Service) List(ctx context.Context, filter models.PayslipFilter) ([]*models.Payslip, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > s.maxLimit {
		filter.Limit = s.maxLimit
	}
	if filter.SortField == "" {
		filter.SortField = "payment_date"
		filter.SortDirection = "DESC"
	}

	rows, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, 0, &StorageError{Op: "list payslips", Err: err}
	}
	return rows, total, nil
}

// validate checks the request shape, resolves the employee and, scoped to
// that employee, the bank account. A missing employee is a NotFoundError;
// a bank account that does not belong to the employee is a caller mistake
// and therefore a ValidationError.
func (s *Service) validate(ctx context.Context, req Request) (*models.Payslip, *models.Employee, *models.BankAccount, error) {
	if fields := utils.ValidateStruct(req); fields != nil {
		return nil, nil, nil, &ValidationError{Message: "Invalid input data", Fields: fields}
	}

	cutoff, err := time.Parse(dateLayout, req.CutoffDate)
	if err != nil {
		return nil, nil, nil, &ValidationError{Message: "Invalid input data", Fields: map[string]string{"cutoff_date": "Must be a date in YYYY-MM-DD format"}}
	}
	payment, err := time.Parse(dateLayout, req.PaymentDate)
	if err != nil {
		return nil, nil, nil, &ValidationError{Message: "Invalid input data", Fields: map[string]string{"payment_date": "Must be a date in YYYY-MM-DD format"}}
	}
	if payment.Before(cutoff) {
		return nil, nil, nil, &ValidationError{Message: "Payment date cannot be before cutoff date"}
	}

	emp, err := s.employees.GetEmployeeByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return nil, nil, nil, s.mapStoreErr(err, "get employee", &NotFoundError{Kind: NotFoundEmployee, Message: "Employee not found"})
	}

	bank, err := s.banks.GetBankAccount(ctx, req.BankAccountID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil, &ValidationError{Message: "Bank account does not belong to this employee"}
		}
		return nil, nil, nil, &StorageError{Op: "get bank account", Err: err}
	}

	p := &models.Payslip{
		EmployeeID:     emp.EmployeeID,
		BankAccountID:  bank.ID,
		Salary:         req.Salary,
		Bonus:          req.Bonus,
		TotalSalary:    req.Salary + req.Bonus,
		CutoffDate:     cutoff,
		PaymentDate:    payment,
		PaymentStatus:  req.PaymentStatus,
		PersonInCharge: req.PersonInCharge,
	}

	return p, emp, bank, nil
}

// generate renders both copies, tolerating a failure of either one, and
// persists whichever paths succeeded.
func (s *Service) generate(ctx context.Context, p *models.Payslip, emp *models.Employee, bank *models.BankAccount) []string {
	data := composeData(p, emp, bank)

	var warnings []string

	agent, err := s.renderer.GenerateAgentCopy(data)
	if err != nil {
		s.errorLog.Println("ERROR_01_generate:", err)
		warnings = append(warnings, (&GenerationError{Copy: "agent", Err: err}).Error())
	} else {
		p.AgentPDFPath = agent.RelativePath
	}

	admin, err := s.renderer.GenerateAdminCopy(data)
	if err != nil {
		s.errorLog.Println("ERROR_02_generate:", err)
		warnings = append(warnings, (&GenerationError{Copy: "admin", Err: err}).Error())
	} else {
		p.AdminPDFPath = admin.RelativePath
	}

	if p.AgentPDFPath != "" || p.AdminPDFPath != "" {
		if err := s.store.UpdatePDFPaths(ctx, p.ID, p.AgentPDFPath, p.AdminPDFPath); err != nil {
			s.errorLog.Println("ERROR_03_generate:", err)
			warnings = append(warnings, fmt.Sprintf("generated files could not be linked to the payslip: %v", err))
			p.AgentPDFPath = ""
			p.AdminPDFPath = ""
		}
	}

	return warnings
}

func (s *Service) mapStoreErr(err error, op string, notFound *NotFoundError) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return &StorageError{Op: op, Err: err}
}

func (s *Service) attachDisplayFields(p *models.Payslip, emp *models.Employee, bank *models.BankAccount) {
	p.FirstName = emp.FirstName
	p.LastName = emp.LastName
	p.PreferredBank = bank.PreferredBank
	p.BankAccountNumber = bank.BankAccountNumber
	p.BankAccountName = bank.BankAccountName
}

func composeData(p *models.Payslip, emp *models.Employee, bank *models.BankAccount) pdfgen.Data {
	return pdfgen.Data{
		PayslipNo:         p.PayslipNo,
		EmployeeName:      emp.FirstName + " " + emp.LastName,
		EmployeeID:        emp.EmployeeID,
		Salary:            p.Salary,
		Bonus:             p.Bonus,
		TotalSalary:       p.TotalSalary,
		CutoffDate:        p.CutoffDate,
		PaymentDate:       p.PaymentDate,
		PaymentStatus:     p.PaymentStatus,
		PersonInCharge:    p.PersonInCharge,
		PreferredBank:     bank.PreferredBank,
		BankAccountNumber: bank.BankAccountNumber,
		BankAccountName:   bank.BankAccountName,
	}
}
