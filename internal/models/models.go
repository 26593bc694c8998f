package models

import "time"

const (
	APPName    = "BM Payslip"
	APPVersion = "1.0"
)

// Response is the type for response
type Response struct {
	Error   bool   `json:"error"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// JWT holds the token claims for a signed-in staff user
type JWT struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Issuer    string    `json:"iss"`
	Audience  string    `json:"aud"`
	ExpiresAt int64     `json:"exp"`
	IssuedAt  int64     `json:"iat"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type JWTConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
	Algorithm string
	Expiry    time.Duration
}

type DBConfig struct {
	DSN    string
	DEVDSN string
}

// PDFConfig carries everything the payslip PDF generator needs.
// DocumentRoot is the public document root; generated files live under
// DocumentRoot/pdfs/{agent|admin} and only the part below DocumentRoot
// is stored in the database.
type PDFConfig struct {
	DocumentRoot string
	CompanyName  string
}

type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

type Config struct {
	Port       int
	Env        string
	JWT        JWTConfig
	DB         DBConfig
	PDF        PDFConfig
	Pagination PaginationConfig
}

// Employee model. EmployeeID is the human-assigned business id
// (year + zero padded sequence, e.g. 20250042), distinct from the
// surrogate ID.
type Employee struct {
	ID            int       `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	FirstName     string    `json:"firstname"`
	LastName      string    `json:"lastname"`
	ContactNumber string    `json:"contact_number"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BankAccount holds one banking record of an employee. An employee may
// have several; the payslip form picks one per run. BankAccountName is
// the holder name as printed on the bank record and may differ from the
// employee name.
type BankAccount struct {
	ID                int       `json:"id"`
	EmployeeID        string    `json:"employee_id"`
	PreferredBank     string    `json:"preferred_bank"`
	BankAccountNumber string    `json:"bank_account_number"`
	BankAccountName   string    `json:"bank_account_name"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	// joined from employees for list views
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
}

// Login account types and statuses as exposed by /accounts/types and
// /accounts/statuses.
var (
	AccountTypes    = []string{"Team Leader", "Overflow", "Auto-Warranty", "Commissions"}
	AccountStatuses = []string{"ACTIVE", "INACTIVE", "SUSPENDED"}
)

// Account is an employee login account, distinct from staff Users.
type Account struct {
	AccountID     int       `json:"account_id"`
	EmployeeID    string    `json:"employee_id"`
	AccountEmail  string    `json:"account_email"`
	Password      string    `json:"-"` // don't expose
	AccountType   string    `json:"account_type"`
	AccountStatus string    `json:"account_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	// joined from employees for list views
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
}

// User is a staff operator of the application.
type User struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	Password  string     `json:"-"` // don't expose
	Role      string     `json:"role"`   //admin //staff
	Status    string     `json:"status"` //active //inactive
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Payment statuses a payslip can carry.
const (
	PaymentStatusPaid      = "Paid"
	PaymentStatusPending   = "Pending"
	PaymentStatusCancelled = "Cancelled"
)

// Payslip is the central record. TotalSalary is derived (salary + bonus)
// and stored. AgentPDFPath/AdminPDFPath are paths relative to the
// document root; empty until the copy has been generated.
type Payslip struct {
	ID             int       `json:"id"`
	PayslipNo      string    `json:"payslip_no"`
	EmployeeID     string    `json:"employee_id"`
	BankAccountID  int       `json:"bank_account_id"`
	Salary         float64   `json:"salary"`
	Bonus          float64   `json:"bonus"`
	TotalSalary    float64   `json:"total_salary"`
	CutoffDate     time.Time `json:"cutoff_date"`
	PaymentDate    time.Time `json:"payment_date"`
	PaymentStatus  string    `json:"payment_status"`
	PersonInCharge string    `json:"person_in_charge"`
	AgentPDFPath   string    `json:"agent_pdf_path"`
	AdminPDFPath   string    `json:"admin_pdf_path"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	// joined from employees / banking details for display
	FirstName         string `json:"firstname,omitempty"`
	LastName          string `json:"lastname,omitempty"`
	PreferredBank     string `json:"preferred_bank,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty"`
	BankAccountName   string `json:"bank_account_name,omitempty"`
}

// PayslipFilter carries the list query of GET /payslips.
type PayslipFilter struct {
	Search        string
	Status        string
	StartDate     *time.Time
	EndDate       *time.Time
	SortField     string
	SortDirection string
	Page          int
	Limit         int
}
