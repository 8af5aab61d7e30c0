package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/orbithr/hr-backend-go/internal/domain/payroll"
	"github.com/orbithr/hr-backend-go/internal/pkg/database"
)

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

// Upsert implements payroll.PayslipRepository. Regeneration replaces every
// computed field but keeps viewed_by_employee, so an already-read payslip
// does not reappear as unread.
func (p *payslipRepositoryImpl) Upsert(ctx context.Context, payslip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payslips (
			employee_id, month, year, wage, total_working_days, present_days,
			leave_days, unpaid_days, deduction_amount, net_salary, status, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (employee_id, month, year) DO UPDATE SET
			wage = EXCLUDED.wage,
			total_working_days = EXCLUDED.total_working_days,
			present_days = EXCLUDED.present_days,
			leave_days = EXCLUDED.leave_days,
			unpaid_days = EXCLUDED.unpaid_days,
			deduction_amount = EXCLUDED.deduction_amount,
			net_salary = EXCLUDED.net_salary,
			status = EXCLUDED.status,
			generated_at = EXCLUDED.generated_at,
			updated_at = NOW()
		RETURNING id, employee_id, month, year, wage, total_working_days, present_days,
			leave_days, unpaid_days, deduction_amount, net_salary, status, viewed_by_employee,
			generated_at, created_at, updated_at
	`

	var saved payroll.Payslip
	err := q.QueryRow(ctx, query,
		payslip.EmployeeID, payslip.Month, payslip.Year, payslip.Wage,
		payslip.TotalWorkingDays, payslip.PresentDays, payslip.LeaveDays, payslip.UnpaidDays,
		payslip.DeductionAmount, payslip.NetSalary, payslip.Status, payslip.GeneratedAt,
	).Scan(
		&saved.ID, &saved.EmployeeID, &saved.Month, &saved.Year, &saved.Wage,
		&saved.TotalWorkingDays, &saved.PresentDays, &saved.LeaveDays, &saved.UnpaidDays,
		&saved.DeductionAmount, &saved.NetSalary, &saved.Status, &saved.ViewedByEmployee,
		&saved.GeneratedAt, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to upsert payslip: %w", err)
	}

	return saved, nil
}

// GetByID implements payroll.PayslipRepository.
func (p *payslipRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ps.id, ps.employee_id, ps.month, ps.year, ps.wage, ps.total_working_days,
			ps.present_days, ps.leave_days, ps.unpaid_days, ps.deduction_amount, ps.net_salary,
			ps.status, ps.viewed_by_employee, ps.generated_at, ps.created_at, ps.updated_at,
			e.first_name || ' ' || e.last_name AS employee_name, e.employee_code
		FROM payslips ps
		JOIN employees e ON e.id = ps.employee_id
		WHERE ps.id = $1
	`

	var payslip payroll.Payslip
	err := q.QueryRow(ctx, query, id).Scan(
		&payslip.ID, &payslip.EmployeeID, &payslip.Month, &payslip.Year, &payslip.Wage,
		&payslip.TotalWorkingDays, &payslip.PresentDays, &payslip.LeaveDays, &payslip.UnpaidDays,
		&payslip.DeductionAmount, &payslip.NetSalary, &payslip.Status, &payslip.ViewedByEmployee,
		&payslip.GeneratedAt, &payslip.CreatedAt, &payslip.UpdatedAt,
		&payslip.EmployeeName, &payslip.EmployeeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip %s: %w", id, err)
	}

	return payslip, nil
}

// GetByEmployeePeriod implements payroll.PayslipRepository.
func (p *payslipRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.Payslip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, employee_id, month, year, wage, total_working_days, present_days,
			leave_days, unpaid_days, deduction_amount, net_salary, status, viewed_by_employee,
			generated_at, created_at, updated_at
		FROM payslips
		WHERE employee_id = $1 AND month = $2 AND year = $3
	`

	var payslip payroll.Payslip
	err := q.QueryRow(ctx, query, employeeID, month, year).Scan(
		&payslip.ID, &payslip.EmployeeID, &payslip.Month, &payslip.Year, &payslip.Wage,
		&payslip.TotalWorkingDays, &payslip.PresentDays, &payslip.LeaveDays, &payslip.UnpaidDays,
		&payslip.DeductionAmount, &payslip.NetSalary, &payslip.Status, &payslip.ViewedByEmployee,
		&payslip.GeneratedAt, &payslip.CreatedAt, &payslip.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip for %s %d/%d: %w", employeeID, month, year, err)
	}

	return payslip, nil
}

// List implements payroll.PayslipRepository.
func (p *payslipRepositoryImpl) List(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ps.id, ps.employee_id, ps.month, ps.year, ps.wage, ps.total_working_days,
			ps.present_days, ps.leave_days, ps.unpaid_days, ps.deduction_amount, ps.net_salary,
			ps.status, ps.viewed_by_employee, ps.generated_at, ps.created_at, ps.updated_at,
			e.first_name || ' ' || e.last_name AS employee_name, e.employee_code
		FROM payslips ps
		JOIN employees e ON e.id = ps.employee_id
		WHERE 1=1
	`
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != nil {
		query += fmt.Sprintf(" AND ps.employee_id = $%d", argPos)
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Month != nil {
		query += fmt.Sprintf(" AND ps.month = $%d", argPos)
		args = append(args, *filter.Month)
		argPos++
	}
	if filter.Year != nil {
		query += fmt.Sprintf(" AND ps.year = $%d", argPos)
		args = append(args, *filter.Year)
		argPos++
	}

	query += " ORDER BY ps.year DESC, ps.month DESC, employee_name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		var payslip payroll.Payslip
		err := rows.Scan(
			&payslip.ID, &payslip.EmployeeID, &payslip.Month, &payslip.Year, &payslip.Wage,
			&payslip.TotalWorkingDays, &payslip.PresentDays, &payslip.LeaveDays, &payslip.UnpaidDays,
			&payslip.DeductionAmount, &payslip.NetSalary, &payslip.Status, &payslip.ViewedByEmployee,
			&payslip.GeneratedAt, &payslip.CreatedAt, &payslip.UpdatedAt,
			&payslip.EmployeeName, &payslip.EmployeeCode,
		)
		if err != nil {
			return nil, err
		}
		payslips = append(payslips, payslip)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payslips, nil
}

// GetLatestUnread implements payroll.PayslipRepository.
func (p *payslipRepositoryImpl) GetLatestUnread(ctx context.Context, employeeID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, employee_id, month, year, wage, total_working_days, present_days,
			leave_days, unpaid_days, deduction_amount, net_salary, status, viewed_by_employee,
			generated_at, created_at, updated_at
		FROM payslips
		WHERE employee_id = $1 AND viewed_by_employee = FALSE AND deduction_amount > 0
		ORDER BY year DESC, month DESC
		LIMIT 1
	`

	var payslip payroll.Payslip
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&payslip.ID, &payslip.EmployeeID, &payslip.Month, &payslip.Year, &payslip.Wage,
		&payslip.TotalWorkingDays, &payslip.PresentDays, &payslip.LeaveDays, &payslip.UnpaidDays,
		&payslip.DeductionAmount, &payslip.NetSalary, &payslip.Status, &payslip.ViewedByEmployee,
		&payslip.GeneratedAt, &payslip.CreatedAt, &payslip.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get latest unread payslip: %w", err)
	}

	return payslip, nil
}

// MarkViewed implements payroll.PayslipRepository.
func (p *payslipRepositoryImpl) MarkViewed(ctx context.Context, id string) error {
	q := GetQuerier(ctx, p.db)

	tag, err := q.Exec(ctx,
		`UPDATE payslips SET viewed_by_employee = TRUE, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark payslip %s viewed: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}

	return nil
}

// MarkPaid implements payroll.PayslipRepository.
func (p *payslipRepositoryImpl) MarkPaid(ctx context.Context, id string) error {
	q := GetQuerier(ctx, p.db)

	tag, err := q.Exec(ctx,
		`UPDATE payslips SET status = $1, updated_at = NOW() WHERE id = $2 AND status != $1`,
		payroll.PayslipStatusPaid, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark payslip %s paid: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or already paid; disambiguate for the caller.
		_, getErr := p.GetByID(ctx, id)
		if getErr != nil {
			return getErr
		}
		return payroll.ErrPayslipAlreadyPaid
	}

	return nil
}
