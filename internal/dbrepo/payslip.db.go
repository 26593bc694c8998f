package dbrepo

import (
	"context"
	"fmt"

	"github.com/bmoutsourcing/payslip-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================== Payslip Repository ==============================
type PayslipRepo struct {
	db *pgxpool.Pool
}

func NewPayslipRepo(db *pgxpool.Pool) *PayslipRepo {
	return &PayslipRepo{db: db}
}

// Insert persists a new payslip with empty PDF paths. The payslip number
// comes from a database sequence formatted as PS-YYYY-NNNNNN, so
// concurrent creates can never collide on it.
func (r *PayslipRepo) Insert(ctx context.Context, p *models.Payslip) error {
	query := `
		INSERT INTO payslips
		(payslip_no, employee_id, bank_account_id, salary, bonus, total_salary,
		 cutoff_date, payment_date, payment_status, person_in_charge, created_at, updated_at)
		VALUES (
			'PS-' || TO_CHAR(CURRENT_DATE, 'YYYY') || '-' || LPAD(NEXTVAL('payslip_no_seq')::TEXT, 6, '0'),
			$1,$2,$3,$4,$5,$6,$7,$8,$9,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING id, payslip_no, created_at, updated_at;
	`
	return r.db.QueryRow(ctx, query,
		p.EmployeeID, p.BankAccountID, p.Salary, p.Bonus, p.TotalSalary,
		p.CutoffDate, p.PaymentDate, p.PaymentStatus, p.PersonInCharge,
	).Scan(&p.ID, &p.PayslipNo, &p.CreatedAt, &p.UpdatedAt)
}

// Update rewrites amounts, dates, status and references. The PDF path
// columns are deliberately not part of this statement; only
// UpdatePDFPaths touches them.
func (r *PayslipRepo) Update(ctx context.Context, p *models.Payslip) error {
	query := `
		UPDATE payslips
		SET employee_id=$1, bank_account_id=$2, salary=$3, bonus=$4, total_salary=$5,
		    cutoff_date=$6, payment_date=$7, payment_status=$8, person_in_charge=$9,
		    updated_at=CURRENT_TIMESTAMP
		WHERE id=$10
		RETURNING updated_at;
	`
	return r.db.QueryRow(ctx, query,
		p.EmployeeID, p.BankAccountID, p.Salary, p.Bonus, p.TotalSalary,
		p.CutoffDate, p.PaymentDate, p.PaymentStatus, p.PersonInCharge, p.ID,
	).Scan(&p.UpdatedAt)
}

// UpdatePDFPaths overwrites both artifact path columns. Empty strings
// are stored as NULL.
func (r *PayslipRepo) UpdatePDFPaths(ctx context.Context, id int, agentPath, adminPath string) error {
	query := `
		UPDATE payslips
		SET agent_pdf_path=NULLIF($1,''), admin_pdf_path=NULLIF($2,''), updated_at=CURRENT_TIMESTAMP
		WHERE id=$3`
	result, err := r.db.Exec(ctx, query, agentPath, adminPath, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the payslip row only. PDF files stay on disk.
func (r *PayslipRepo) Delete(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, "DELETE FROM payslips WHERE id=$1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const payslipSelect = `
	SELECT p.id, p.payslip_no, p.employee_id, p.bank_account_id,
	       p.salary, p.bonus, p.total_salary,
	       p.cutoff_date, p.payment_date, p.payment_status, p.person_in_charge,
	       COALESCE(p.agent_pdf_path, ''), COALESCE(p.admin_pdf_path, ''),
	       p.created_at, p.updated_at,
	       e.firstname, e.lastname,
	       COALESCE(b.preferred_bank, ''), COALESCE(b.bank_account_number, ''), COALESCE(b.bank_account_name, '')
	FROM payslips p
	JOIN employees e ON e.employee_id = p.employee_id
	LEFT JOIN employee_banking_details b ON b.id = p.bank_account_id`

// Get fetches one payslip with joined employee and banking fields
func (r *PayslipRepo) Get(ctx context.Context, id int) (*models.Payslip, error) {
	p := &models.Payslip{}
	err := r.db.QueryRow(ctx, payslipSelect+` WHERE p.id=$1`, id).Scan(
		&p.ID, &p.PayslipNo, &p.EmployeeID, &p.BankAccountID,
		&p.Salary, &p.Bonus, &p.TotalSalary,
		&p.CutoffDate, &p.PaymentDate, &p.PaymentStatus, &p.PersonInCharge,
		&p.AgentPDFPath, &p.AdminPDFPath,
		&p.CreatedAt, &p.UpdatedAt,
		&p.FirstName, &p.LastName,
		&p.PreferredBank, &p.BankAccountNumber, &p.BankAccountName,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns a filtered, sorted page of payslips and the total match
// count. Search is a case-insensitive substring match over the payslip
// number, the employee's business id and the employee name.
func (r *PayslipRepo) List(ctx context.Context, filter models.PayslipFilter) ([]*models.Payslip, int, error) {
	offset := (filter.Page - 1) * filter.Limit

	allowedFields := map[string]string{
		"id":             "p.id",
		"payslip_no":     "p.payslip_no",
		"employee_id":    "p.employee_id",
		"salary":         "p.salary",
		"bonus":          "p.bonus",
		"total_salary":   "p.total_salary",
		"cutoff_date":    "p.cutoff_date",
		"payment_date":   "p.payment_date",
		"payment_status": "p.payment_status",
		"created_at":     "p.created_at",
		"firstname":      "e.firstname",
		"lastname":       "e.lastname",
	}
	orderBy, ok := allowedFields[filter.SortField]
	if !ok {
		orderBy = "p.payment_date"
		filter.SortDirection = "DESC"
	}
	if filter.SortDirection != "DESC" {
		filter.SortDirection = "ASC"
	}

	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND (p.payslip_no ILIKE '%%' || $%d || '%%'
			OR p.employee_id ILIKE '%%' || $%d || '%%'
			OR e.firstname ILIKE '%%' || $%d || '%%'
			OR e.lastname ILIKE '%%' || $%d || '%%'
			OR e.firstname || ' ' || e.lastname ILIKE '%%' || $%d || '%%')`,
			argIdx, argIdx, argIdx, argIdx, argIdx)
		args = append(args, filter.Search)
		argIdx++
	}

	if filter.Status != "" {
		where += fmt.Sprintf(" AND p.payment_status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND p.payment_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND p.payment_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM payslips p
		JOIN employees e ON e.employee_id = p.employee_id
		LEFT JOIN employee_banking_details b ON b.id = p.bank_account_id` + where

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := payslipSelect + where +
		fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", orderBy, filter.SortDirection, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	payslips := []*models.Payslip{}
	for rows.Next() {
		var p models.Payslip
		err := rows.Scan(
			&p.ID, &p.PayslipNo, &p.EmployeeID, &p.BankAccountID,
			&p.Salary, &p.Bonus, &p.TotalSalary,
			&p.CutoffDate, &p.PaymentDate, &p.PaymentStatus, &p.PersonInCharge,
			&p.AgentPDFPath, &p.AdminPDFPath,
			&p.CreatedAt, &p.UpdatedAt,
			&p.FirstName, &p.LastName,
			&p.PreferredBank, &p.BankAccountNumber, &p.BankAccountName,
		)
		if err != nil {
			return nil, 0, err
		}
		payslips = append(payslips, &p)
	}

	return payslips, total, nil
}
