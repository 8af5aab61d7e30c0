package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/orbithr/hr-backend-go/internal/domain/attendance"
	"github.com/orbithr/hr-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (employee_id, date, check_in, status, work_hours, extra_hours)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, date, check_in, check_out, status, work_hours, extra_hours, created_at, updated_at
	`

	var created attendance.Attendance
	err := q.QueryRow(ctx, query,
		att.EmployeeID, att.Date, att.CheckIn, att.Status, att.WorkHours, att.ExtraHours,
	).Scan(
		&created.ID, &created.EmployeeID, &created.Date, &created.CheckIn, &created.CheckOut,
		&created.Status, &created.WorkHours, &created.ExtraHours, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, check_in, check_out, status, work_hours, extra_hours, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date = $2
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.Status, &att.WorkHours, &att.ExtraHours, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out = $1, status = $2, work_hours = $3, extra_hours = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, att.CheckOut, att.Status, att.WorkHours, att.ExtraHours, att.ID)
	if err != nil {
		return fmt.Errorf("failed to update attendance %s: %w", att.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, check_in, check_out, status, work_hours, extra_hours, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
			&att.Status, &att.WorkHours, &att.ExtraHours, &att.CreatedAt, &att.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		attendances = append(attendances, att)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return attendances, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.employee_id, a.date, a.check_in, a.check_out, a.status,
			a.work_hours, a.extra_hours, a.created_at, a.updated_at,
			e.first_name || ' ' || e.last_name AS employee_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE 1=1
	`
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != nil {
		query += fmt.Sprintf(" AND a.employee_id = $%d", argPos)
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Date != nil {
		query += fmt.Sprintf(" AND a.date = $%d", argPos)
		args = append(args, *filter.Date)
		argPos++
	}
	if filter.Month != nil && filter.Year != nil {
		query += fmt.Sprintf(" AND EXTRACT(MONTH FROM a.date) = $%d AND EXTRACT(YEAR FROM a.date) = $%d", argPos, argPos+1)
		args = append(args, *filter.Month, *filter.Year)
		argPos += 2
	}

	query += " ORDER BY a.date DESC, a.check_in DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
			&att.Status, &att.WorkHours, &att.ExtraHours, &att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		attendances = append(attendances, att)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return attendances, nil
}
