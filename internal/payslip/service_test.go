package payslip

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bmoutsourcing/payslip-api/internal/models"
	"github.com/bmoutsourcing/payslip-api/internal/pdfgen"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Insert(ctx context.Context, p *models.Payslip) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 1
		p.PayslipNo = "PS-2025-000001"
	}
	return args.Error(0)
}

func (m *mockStore) Update(ctx context.Context, p *models.Payslip) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockStore) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStore) Get(ctx context.Context, id int) (*models.Payslip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payslip), args.Error(1)
}

func (m *mockStore) List(ctx context.Context, filter models.PayslipFilter) ([]*models.Payslip, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Payslip), args.Int(1), args.Error(2)
}

func (m *mockStore) UpdatePDFPaths(ctx context.Context, id int, agentPath, adminPath string) error {
	args := m.Called(ctx, id, agentPath, adminPath)
	return args.Error(0)
}

type mockEmployees struct {
	mock.Mock
}

func (m *mockEmployees) GetEmployeeByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

type mockBanks struct {
	mock.Mock
}

func (m *mockBanks) GetBankAccount(ctx context.Context, id int, employeeID string) (*models.BankAccount, error) {
	args := m.Called(ctx, id, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BankAccount), args.Error(1)
}

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) GenerateAgentCopy(data pdfgen.Data) (pdfgen.Artifact, error) {
	args := m.Called(data)
	return args.Get(0).(pdfgen.Artifact), args.Error(1)
}

func (m *mockRenderer) GenerateAdminCopy(data pdfgen.Data) (pdfgen.Artifact, error) {
	args := m.Called(data)
	return args.Get(0).(pdfgen.Artifact), args.Error(1)
}

func discardLog() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestService(store *mockStore, employees *mockEmployees, banks *mockBanks, renderer *mockRenderer) *Service {
	return NewService(store, employees, banks, renderer,
		models.PaginationConfig{DefaultPageSize: 10, MaxPageSize: 100},
		discardLog(), discardLog())
}

func validRequest() Request {
	return Request{
		EmployeeID:     "20250042",
		BankAccountID:  3,
		Salary:         50000,
		Bonus:          5000,
		CutoffDate:     "2025-08-15",
		PaymentDate:    "2025-08-31",
		PaymentStatus:  "Pending",
		PersonInCharge: "Maria Santos",
	}
}

func testEmployee() *models.Employee {
	return &models.Employee{
		ID:         7,
		EmployeeID: "20250042",
		FirstName:  "Juan",
		LastName:   "Dela Cruz",
		Email:      "juan@example.com",
	}
}

func testBankAccount() *models.BankAccount {
	return &models.BankAccount{
		ID:                3,
		EmployeeID:        "20250042",
		PreferredBank:     "BDO",
		BankAccountNumber: "0012345678",
		BankAccountName:   "Juan Dela Cruz",
	}
}

func TestCreate_TotalIsSalaryPlusBonus(t *testing.T) {
	store := new(mockStore)
	employees := new(mockEmployees)
	banks := new(mockBanks)
	renderer := new(mockRenderer)
	svc := newTestService(store, employees, banks, renderer)

	employees.On("GetEmployeeByEmployeeID", mock.Anything, "20250042").Return(testEmployee(), nil)
	banks.On("GetBankAccount", mock.Anything, 3, "20250042").Return(testBankAccount(), nil)
	store.On("Insert", mock.Anything, mock.Anything).Return(nil)
	renderer.On("GenerateAgentCopy", mock.Anything).Return(pdfgen.Artifact{RelativePath: "pdfs/agent/a.pdf"}, nil)
	renderer.On("GenerateAdminCopy", mock.Anything).Return(pdfgen.Artifact{RelativePath: "pdfs/admin/b.pdf"}, nil)
	store.On("UpdatePDFPaths", mock.Anything, 1, "pdfs/agent/a.pdf", "pdfs/admin/b.pdf").Return(nil)

	p, warnings, err := svc.Create(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 55000.0, p.TotalSalary)
	assert.Equal(t, "PS-2025-000001", p.PayslipNo)
	assert.Equal(t, "pdfs/agent/a.pdf", p.AgentPDFPath)
	assert.Equal(t, "pdfs/admin/b.pdf", p.AdminPDFPath)
	assert.Equal(t, "Juan", p.FirstName)
	assert.Equal(t, "BDO", p.PreferredBank)
	store.AssertExpectations(t)
}

func TestCreate_PaymentDateBeforeCutoffRejected(t *testing.T) {
	svc := newTestService(new(mockStore), new(mockEmployees), new(mockBanks), new(mockRenderer))

	req := validRequest()
	req.CutoffDate = "2025-08-31"
	req.PaymentDate = "2025-08-15"

	_, _, err := svc.Create(context.Background(), req)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Payment date cannot be before cutoff date", ve.Message)
}

func TestCreate_InvalidPaymentStatusRejected(t *testing.T) {
	svc := newTestService(new(mockStore), new(mockEmployees), new(mockBanks), new(mockRenderer))

	req := validRequest()
	req.PaymentStatus = "Settled"

	_, _, err := svc.Create(context.Background(), req)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "payment_status")
}

func TestCreate_UnknownEmployee(t *testing.T) {
	store := new(mockStore)
	employees := new(mockEmployees)
	svc := newTestService(store, employees, new(mockBanks), new(mockRenderer))

	employees.On("GetEmployeeByEmployeeID", mock.Anything, "20250042").Return(nil, pgx.ErrNoRows)

	_, _, err := svc.Create(context.Background(), validRequest())

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, NotFoundEmployee, nf.Kind)
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreate_BankAccountOfAnotherEmployee(t *testing.T) {
	store := new(mockStore)
	employees := new(mockEmployees)
	banks := new(mockBanks)
	svc := newTestService(store, employees, banks, new(mockRenderer))

	employees.On("GetEmployeeByEmployeeID", mock.Anything, "20250042").Return(testEmployee(), nil)
	banks.On("GetBankAccount", mock.Anything, 3, "20250042").Return(nil, pgx.ErrNoRows)

	_, _, err := svc.Create(context.Background(), validRequest())

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Bank account does not belong to this employee", ve.Message)
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreate_OneCopyFailingStillSucceeds(t *testing.T) {
	store := new(mockStore)
	employees := new(mockEmployees)
	banks := new(mockBanks)
	renderer := new(mockRenderer)
	svc := newTestService(store, employees, banks, renderer)

	employees.On("GetEmployeeByEmployeeID", mock.Anything, "20250042").Return(testEmployee(), nil)
	banks.On("GetBankAccount", mock.Anything, 3, "20250042").Return(testBankAccount(), nil)
	store.On("Insert", mock.Anything, mock.Anything).Return(nil)
	renderer.On("GenerateAgentCopy", mock.Anything).Return(pdfgen.Artifact{}, errors.New("disk full"))
	renderer.On("GenerateAdminCopy", mock.Anything).Return(pdfgen.Artifact{RelativePath: "pdfs/admin/b.pdf"}, nil)
	store.On("UpdatePDFPaths", mock.Anything, 1, "", "pdfs/admin/b.pdf").Return(nil)

	p, warnings, err := svc.Create(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "agent")
	assert.Empty(t, p.AgentPDFPath)
	assert.Equal(t, "pdfs/admin/b.pdf", p.AdminPDFPath)
	store.AssertExpectations(t)
}

func TestCreate_BothCopiesFailingSkipsPathUpdate(t *testing.T) {
	store := new(mockStore)
	employees := new(mockEmployees)
	banks := new(mockBanks)
	renderer := new(mockRenderer)
	svc := newTestService(store, employees, banks, renderer)

	employees.On("GetEmployeeByEmployeeID", mock.Anything, "20250042").Return(testEmployee(), nil)
	banks.On("GetBankAccount", mock.Anything, 3, "20250042").Return(testBankAccount(), nil)
	store.On("Insert", mock.Anything, mock.Anything).Return(nil)
	renderer.On("GenerateAgentCopy", mock.Anything).Return(pdfgen.Artifact{}, errors.New("disk full"))
	renderer.On("GenerateAdminCopy", mock.Anything).Return(pdfgen.Artifact{}, errors.New("disk full"))

	p, warnings, err := svc.Create(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Len(t, warnings, 2)
	assert.Empty(t, p.AgentPDFPath)
	assert.Empty(t, p.AdminPDFPath)
	store.AssertNotCalled(t, "UpdatePDFPaths", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_KeepsExistingPDFPaths(t *testing.T) {
	store := new(mockStore)
	employees := new(mockEmployees)
	banks := new(mockBanks)
	svc := newTestService(store, employees, banks, new(mockRenderer))

	existing := &models.Payslip{
		ID:           4,
		PayslipNo:    "PS-2025-000004",
		EmployeeID:   "20250042",
		AgentPDFPath: "pdfs/agent/old.pdf",
		AdminPDFPath: "pdfs/admin/old.pdf",
	}
	store.On("Get", mock.Anything, 4).Return(existing, nil)
	employees.On("GetEmployeeByEmployeeID", mock.Anything, "20250042").Return(testEmployee(), nil)
	banks.On("GetBankAccount", mock.Anything, 3, "20250042").Return(testBankAccount(), nil)
	store.On("Update", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.Salary = 60000

	p, err := svc.Update(context.Background(), 4, req)

	require.NoError(t, err)
	assert.Equal(t, 4, p.ID)
	assert.Equal(t, "PS-2025-000004", p.PayslipNo)
	assert.Equal(t, 65000.0, p.TotalSalary)
	assert.Equal(t, "pdfs/agent/old.pdf", p.AgentPDFPath)
	assert.Equal(t, "pdfs/admin/old.pdf", p.AdminPDFPath)
}

func TestUpdate_MissingPayslip(t *testing.T) {
	store := new(mockStore)
	svc := newTestService(store, new(mockEmployees), new(mockBanks), new(mockRenderer))

	store.On("Get", mock.Anything, 99).Return(nil, pgx.ErrNoRows)

	_, err := svc.Update(context.Background(), 99, validRequest())

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, NotFoundPayslip, nf.Kind)
}

func TestRegenerate_OverwritesBothPaths(t *testing.T) {
	store := new(mockStore)
	employees := new(mockEmployees)
	banks := new(mockBanks)
	renderer := new(mockRenderer)
	svc := newTestService(store, employees, banks, renderer)

	existing := &models.Payslip{
		ID:            4,
		PayslipNo:     "PS-2025-000004",
		EmployeeID:    "20250042",
		BankAccountID: 3,
		AgentPDFPath:  "pdfs/agent/old.pdf",
		AdminPDFPath:  "pdfs/admin/old.pdf",
	}
	store.On("Get", mock.Anything, 4).Return(existing, nil)
	employees.On("GetEmployeeByEmployeeID", mock.Anything, "20250042").Return(testEmployee(), nil)
	banks.On("GetBankAccount", mock.Anything, 3, "20250042").Return(testBankAccount(), nil)
	renderer.On("GenerateAgentCopy", mock.Anything).Return(pdfgen.Artifact{RelativePath: "pdfs/agent/new.pdf"}, nil)
	renderer.On("GenerateAdminCopy", mock.Anything).Return(pdfgen.Artifact{RelativePath: "pdfs/admin/new.pdf"}, nil)
	store.On("UpdatePDFPaths", mock.Anything, 4, "pdfs/agent/new.pdf", "pdfs/admin/new.pdf").Return(nil)

	p, err := svc.Regenerate(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, "pdfs/agent/new.pdf", p.AgentPDFPath)
	assert.Equal(t, "pdfs/admin/new.pdf", p.AdminPDFPath)
	store.AssertExpectations(t)
}

func TestRegenerate_FailsHardWhenOneCopyFails(t *testing.T) {
	store := new(mockStore)
	employees := new(mockEmployees)
	banks := new(mockBanks)
	renderer := new(mockRenderer)
	svc := newTestService(store, employees, banks, renderer)

	existing := &models.Payslip{
		ID:            4,
		PayslipNo:     "PS-2025-000004",
		EmployeeID:    "20250042",
		BankAccountID: 3,
		AgentPDFPath:  "pdfs/agent/old.pdf",
	}
	store.On("Get", mock.Anything, 4).Return(existing, nil)
	employees.On("GetEmployeeByEmployeeID", mock.Anything, "20250042").Return(testEmployee(), nil)
	banks.On("GetBankAccount", mock.Anything, 3, "20250042").Return(testBankAccount(), nil)
	renderer.On("GenerateAgentCopy", mock.Anything).Return(pdfgen.Artifact{RelativePath: "pdfs/agent/new.pdf"}, nil)
	renderer.On("GenerateAdminCopy", mock.Anything).Return(pdfgen.Artifact{}, errors.New("disk full"))

	_, err := svc.Regenerate(context.Background(), 4)

	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "admin", ge.Copy)
	store.AssertNotCalled(t, "UpdatePDFPaths", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_MissingPayslip(t *testing.T) {
	store := new(mockStore)
	svc := newTestService(store, new(mockEmployees), new(mockBanks), new(mockRenderer))

	store.On("Delete", mock.Anything, 12).Return(pgx.ErrNoRows)

	err := svc.Delete(context.Background(), 12)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, NotFoundPayslip, nf.Kind)
}

func TestList_AppliesDefaultsAndClamp(t *testing.T) {
	tests := []struct {
		name     string
		in       models.PayslipFilter
		expected models.PayslipFilter
	}{
		{
			name: "empty filter gets defaults",
			in:   models.PayslipFilter{},
			expected: models.PayslipFilter{
				Page: 1, Limit: 10,
				SortField: "payment_date", SortDirection: "DESC",
			},
		},
		{
			name: "oversized limit clamped",
			in:   models.PayslipFilter{Page: 2, Limit: 500, SortField: "payslip_no", SortDirection: "ASC"},
			expected: models.PayslipFilter{
				Page: 2, Limit: 100,
				SortField: "payslip_no", SortDirection: "ASC",
			},
		},
		{
			name: "negative page normalized",
			in:   models.PayslipFilter{Page: -3, Limit: 25},
			expected: models.PayslipFilter{
				Page: 1, Limit: 25,
				SortField: "payment_date", SortDirection: "DESC",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mockStore)
			svc := newTestService(store, new(mockEmployees), new(mockBanks), new(mockRenderer))

			store.On("List", mock.Anything, tt.expected).Return([]*models.Payslip{}, 0, nil)

			_, _, err := svc.List(context.Background(), tt.in)

			require.NoError(t, err)
			store.AssertExpectations(t)
		})
	}
}

func TestList_StorageFailure(t *testing.T) {
	store := new(mockStore)
	svc := newTestService(store, new(mockEmployees), new(mockBanks), new(mockRenderer))

	store.On("List", mock.Anything, mock.Anything).Return(nil, 0, errors.New("connection reset"))

	_, _, err := svc.List(context.Background(), models.PayslipFilter{})

	var se *StorageError
	require.ErrorAs(t, err, &se)
}

func TestCreate_CutoffDateFormatValidated(t *testing.T) {
	svc := newTestService(new(mockStore), new(mockEmployees), new(mockBanks), new(mockRenderer))

	req := validRequest()
	req.CutoffDate = "15-08-2025"

	_, _, err := svc.Create(context.Background(), req)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "cutoff_date")
}

func TestCreate_PaymentDateEqualToCutoffAccepted(t *testing.T) {
	store := new(mockStore)
	employees := new(mockEmployees)
	banks := new(mockBanks)
	renderer := new(mockRenderer)
	svc := newTestService(store, employees, banks, renderer)

	employees.On("GetEmployeeByEmployeeID", mock.Anything, "20250042").Return(testEmployee(), nil)
	banks.On("GetBankAccount", mock.Anything, 3, "20250042").Return(testBankAccount(), nil)
	store.On("Insert", mock.Anything, mock.Anything).Return(nil)
	renderer.On("GenerateAgentCopy", mock.Anything).Return(pdfgen.Artifact{RelativePath: "pdfs/agent/a.pdf"}, nil)
	renderer.On("GenerateAdminCopy", mock.Anything).Return(pdfgen.Artifact{RelativePath: "pdfs/admin/b.pdf"}, nil)
	store.On("UpdatePDFPaths", mock.Anything, 1, "pdfs/agent/a.pdf", "pdfs/admin/b.pdf").Return(nil)

	req := validRequest()
	req.CutoffDate = "2025-08-31"
	req.PaymentDate = "2025-08-31"

	p, _, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	wantDate := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, wantDate, p.CutoffDate)
	assert.Equal(t, wantDate, p.PaymentDate)
}
