package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/orbithr/hr-backend-go/internal/domain/employee"
	"github.com/orbithr/hr-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, employee_code, email, password_hash, role, first_name, last_name,
	avatar_url, department, job_position, joining_date, phone, address,
	bank_account_number, bank_name, bank_ifsc_code, bank_pan_number, bank_uan_number,
	wage, working_days_per_week, break_time_hours,
	salary_basic, salary_hra, salary_standard_allowance, salary_bonus, salary_lta,
	salary_fixed_allowance, salary_professional_tax, salary_pf_employee, salary_pf_employer,
	paid_leave_credits, sick_leave_credits, unpaid_leave_taken,
	force_password_change, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.Email, &emp.PasswordHash, &emp.Role,
		&emp.FirstName, &emp.LastName, &emp.AvatarURL, &emp.Department,
		&emp.JobPosition, &emp.JoiningDate, &emp.Phone, &emp.Address,
		&emp.BankDetails.AccountNumber, &emp.BankDetails.BankName,
		&emp.BankDetails.IFSCCode, &emp.BankDetails.PANNumber, &emp.BankDetails.UANNumber,
		&emp.Salary.Wage, &emp.Salary.WorkingDaysPerWeek, &emp.Salary.BreakTimeHours,
		&emp.Salary.Basic, &emp.Salary.HRA, &emp.Salary.StandardAllowance,
		&emp.Salary.Bonus, &emp.Salary.LTA, &emp.Salary.FixedAllowance,
		&emp.Salary.ProfessionalTax, &emp.Salary.PFEmployee, &emp.Salary.PFEmployer,
		&emp.LeaveCredits.Paid, &emp.LeaveCredits.Sick, &emp.LeaveCredits.Unpaid,
		&emp.ForcePasswordChange, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			employee_code, email, password_hash, role, first_name, last_name,
			avatar_url, department, job_position, joining_date, phone, address,
			bank_account_number, bank_name, bank_ifsc_code, bank_pan_number, bank_uan_number,
			wage, working_days_per_week, break_time_hours,
			salary_basic, salary_hra, salary_standard_allowance, salary_bonus, salary_lta,
			salary_fixed_allowance, salary_professional_tax, salary_pf_employee, salary_pf_employer,
			paid_leave_credits, sick_leave_credits, unpaid_leave_taken, force_password_change
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17,
			$18, $19, $20,
			$21, $22, $23, $24, $25,
			$26, $27, $28, $29,
			$30, $31, $32, $33
		)
		RETURNING` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		emp.EmployeeCode, emp.Email, emp.PasswordHash, emp.Role, emp.FirstName, emp.LastName,
		emp.AvatarURL, emp.Department, emp.JobPosition, emp.JoiningDate, emp.Phone, emp.Address,
		emp.BankDetails.AccountNumber, emp.BankDetails.BankName, emp.BankDetails.IFSCCode,
		emp.BankDetails.PANNumber, emp.BankDetails.UANNumber,
		emp.Salary.Wage, emp.Salary.WorkingDaysPerWeek, emp.Salary.BreakTimeHours,
		emp.Salary.Basic, emp.Salary.HRA, emp.Salary.StandardAllowance, emp.Salary.Bonus, emp.Salary.LTA,
		emp.Salary.FixedAllowance, emp.Salary.ProfessionalTax, emp.Salary.PFEmployee, emp.Salary.PFEmployer,
		emp.LeaveCredits.Paid, emp.LeaveCredits.Sick, emp.LeaveCredits.Unpaid, emp.ForcePasswordChange,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "employees_email_key":
				return employee.Employee{}, employee.ErrEmailExists
			case "employees_employee_code_key":
				return employee.Employee{}, employee.ErrEmployeeCodeExists
			}
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}

	return emp, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT` + employeeColumns + ` FROM employees WHERE LOWER(email) = LOWER($1)`

	emp, err := scanEmployee(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, includeAdmins bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT` + employeeColumns + ` FROM employees`
	args := []interface{}{}
	if !includeAdmins {
		query += ` WHERE role != $1`
		args = append(args, employee.RoleAdmin)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET email = $1, first_name = $2, last_name = $3, department = $4,
			job_position = $5, phone = $6, address = $7,
			bank_account_number = $8, bank_name = $9, bank_ifsc_code = $10,
			bank_pan_number = $11, bank_uan_number = $12, updated_at = NOW()
		WHERE id = $13
	`

	tag, err := q.Exec(ctx, query,
		emp.Email, emp.FirstName, emp.LastName, emp.Department,
		emp.JobPosition, emp.Phone, emp.Address,
		emp.BankDetails.AccountNumber, emp.BankDetails.BankName, emp.BankDetails.IFSCCode,
		emp.BankDetails.PANNumber, emp.BankDetails.UANNumber, emp.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.ErrEmailExists
		}
		return fmt.Errorf("failed to update employee %s: %w", emp.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdateSalary implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateSalary(ctx context.Context, id string, salary employee.Salary) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET wage = $1, working_days_per_week = $2, break_time_hours = $3,
			salary_basic = $4, salary_hra = $5, salary_standard_allowance = $6,
			salary_bonus = $7, salary_lta = $8, salary_fixed_allowance = $9,
			salary_professional_tax = $10, salary_pf_employee = $11, salary_pf_employer = $12,
			updated_at = NOW()
		WHERE id = $13
	`

	tag, err := q.Exec(ctx, query,
		salary.Wage, salary.WorkingDaysPerWeek, salary.BreakTimeHours,
		salary.Basic, salary.HRA, salary.StandardAllowance,
		salary.Bonus, salary.LTA, salary.FixedAllowance,
		salary.ProfessionalTax, salary.PFEmployee, salary.PFEmployer, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update salary for employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdateAvatarURL implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateAvatarURL(ctx context.Context, id string, url string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET avatar_url = $1, updated_at = NOW() WHERE id = $2`,
		url, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update avatar for employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdatePassword implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string, forceChange bool) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET password_hash = $1, force_password_change = $2, updated_at = NOW() WHERE id = $3`,
		passwordHash, forceChange, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password for employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// DecrementLeaveCredit implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) DecrementLeaveCredit(ctx context.Context, id string, kind employee.LeaveCreditKind, days float64) error {
	q := GetQuerier(ctx, e.db)

	var column string
	switch kind {
	case employee.LeaveCreditPaid:
		column = "paid_leave_credits"
	case employee.LeaveCreditSick:
		column = "sick_leave_credits"
	default:
		return fmt.Errorf("unknown leave credit kind %q", kind)
	}

	// Balances may go negative; the approval flow surfaces that to admins
	// rather than blocking here.
	query := fmt.Sprintf(
		`UPDATE employees SET %s = %s - $1, updated_at = NOW() WHERE id = $2`,
		column, column,
	)

	tag, err := q.Exec(ctx, query, days, id)
	if err != nil {
		return fmt.Errorf("failed to decrement %s credit for employee %s: %w", kind, id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// CountJoinedInYear implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) CountJoinedInYear(ctx context.Context, year int) (int, error) {
	q := GetQuerier(ctx, e.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM employees WHERE EXTRACT(YEAR FROM created_at) = $1`,
		year,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees joined in %d: %w", year, err)
	}

	return count, nil
}
