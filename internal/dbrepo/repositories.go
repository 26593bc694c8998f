package dbrepo

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBRepository contains all individual repositories
type DBRepository struct {
	EmployeeRepo    *EmployeeRepo
	BankAccountRepo *BankAccountRepo
	AccountRepo     *AccountRepo
	UserRepo        *UserRepo
	PayslipRepo     *PayslipRepo
}

// NewDBRepository initializes all repositories with a shared connection pool
func NewDBRepository(db *pgxpool.Pool) *DBRepository {
	return &DBRepository{
		EmployeeRepo:    NewEmployeeRepo(db),
		BankAccountRepo: NewBankAccountRepo(db),
		AccountRepo:     NewAccountRepo(db),
		UserRepo:        NewUserRepo(db),
		PayslipRepo:     NewPayslipRepo(db),
	}
}
