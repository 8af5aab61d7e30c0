package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/orbithr/hr-backend-go/internal/domain/leave"
	"github.com/orbithr/hr-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (employee_id, type, start_date, end_date, days, reason, attachment_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, employee_id, type, start_date, end_date, days, reason, attachment_url,
			status, approved_by, created_at, updated_at
	`

	var created leave.LeaveRequest
	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.Type, request.StartDate, request.EndDate,
		request.Days, request.Reason, request.AttachmentURL, request.Status,
	).Scan(
		&created.ID, &created.EmployeeID, &created.Type, &created.StartDate, &created.EndDate,
		&created.Days, &created.Reason, &created.AttachmentURL,
		&created.Status, &created.ApprovedBy, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, type, start_date, end_date, days, reason, attachment_url,
			status, approved_by, created_at, updated_at
		FROM leave_requests
		WHERE id = $1
	`

	var request leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&request.ID, &request.EmployeeID, &request.Type, &request.StartDate, &request.EndDate,
		&request.Days, &request.Reason, &request.AttachmentURL,
		&request.Status, &request.ApprovedBy, &request.CreatedAt, &request.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request %s: %w", id, err)
	}

	return request, nil
}

// List implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.Filter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.type, lr.start_date, lr.end_date, lr.days, lr.reason,
			lr.attachment_url, lr.status, lr.approved_by, lr.created_at, lr.updated_at,
			e.first_name || ' ' || e.last_name AS employee_name
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		WHERE 1=1
	`
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != nil {
		query += fmt.Sprintf(" AND lr.employee_id = $%d", argPos)
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	switch filter.Scope {
	case "pending":
		query += fmt.Sprintf(" AND lr.status = $%d", argPos)
		args = append(args, leave.StatusPending)
		argPos++
	case "history":
		query += fmt.Sprintf(" AND lr.status != $%d", argPos)
		args = append(args, leave.StatusPending)
		argPos++
	}

	query += " ORDER BY lr.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var request leave.LeaveRequest
		err := rows.Scan(
			&request.ID, &request.EmployeeID, &request.Type, &request.StartDate, &request.EndDate,
			&request.Days, &request.Reason, &request.AttachmentURL,
			&request.Status, &request.ApprovedBy, &request.CreatedAt, &request.UpdatedAt,
			&request.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, approvedBy string) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, status, approvedBy, id)
	if err != nil {
		return fmt.Errorf("failed to update leave request %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// UpdateAttachmentURL implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) UpdateAttachmentURL(ctx context.Context, id string, url string) error {
	q := GetQuerier(ctx, l.db)

	tag, err := q.Exec(ctx,
		`UPDATE leave_requests SET attachment_url = $1, updated_at = NOW() WHERE id = $2`,
		url, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update attachment for leave request %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// ListApprovedOverlapping implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, type, start_date, end_date, days, reason, attachment_url,
			status, approved_by, created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1 AND status = $2 AND start_date <= $3 AND end_date >= $4
		ORDER BY start_date ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, leave.StatusApproved, to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var request leave.LeaveRequest
		err := rows.Scan(
			&request.ID, &request.EmployeeID, &request.Type, &request.StartDate, &request.EndDate,
			&request.Days, &request.Reason, &request.AttachmentURL,
			&request.Status, &request.ApprovedBy, &request.CreatedAt, &request.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
