package leave

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/orbithr/hr-backend-go/internal/domain/employee"
	"github.com/orbithr/hr-backend-go/internal/domain/leave"
	"github.com/orbithr/hr-backend-go/internal/pkg/database"
	"github.com/orbithr/hr-backend-go/internal/repository/postgresql"
	"github.com/orbithr/hr-backend-go/internal/service/file"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	fileService file.FileService

	// runTx wraps a unit of work in a database transaction.
	runTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewLeaveService(
	db *database.DB,
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRepo,
		EmployeeRepository:     employeeRepo,
		fileService:            fileService,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

func claimsFromContext(ctx context.Context) (employeeID string, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	role, _ = claims["role"].(string)

	return employeeID, role, nil
}

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := l.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID: employeeID,
		Type:       leave.Type(req.Type),
		StartDate:  startDate,
		EndDate:    endDate,
		Days:       req.Days,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return toLeaveRequestResponse(created), nil
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, scope string) ([]leave.LeaveRequestResponse, error) {
	employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	filter := leave.Filter{Scope: scope}
	if role != string(employee.RoleAdmin) {
		filter.EmployeeID = &employeeID
	}

	requests, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toLeaveRequestResponse(request))
	}

	return responses, nil
}

// UpdateStatus implements leave.LeaveService.
func (l *LeaveServiceImpl) UpdateStatus(ctx context.Context, req leave.UpdateStatusRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	approverID, _, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.IsTerminal() {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	newStatus := leave.Status(req.Status)

	// Approval and the credit decrement must land together.
	err = l.runTx(ctx, func(txCtx context.Context) error {
		if err := l.LeaveRequestRepository.UpdateStatus(txCtx, request.ID, newStatus, approverID); err != nil {
			return err
		}

		if newStatus == leave.StatusApproved && leave.IsPaidType(request.Type) {
			kind := employee.LeaveCreditPaid
			if request.Type == leave.TypeSick {
				kind = employee.LeaveCreditSick
			}
			return l.EmployeeRepository.DecrementLeaveCredit(txCtx, request.EmployeeID, kind, request.Days)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request.Status = newStatus
	request.ApprovedBy = &approverID

	return toLeaveRequestResponse(request), nil
}

// UploadAttachment implements leave.LeaveService.
func (l *LeaveServiceImpl) UploadAttachment(ctx context.Context, id string, reader io.Reader, filename string) (string, error) {
	employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	// Only the owner (or an admin) attaches documents, and only while the
	// request is still pending.
	if role != string(employee.RoleAdmin) && request.EmployeeID != employeeID {
		return "", leave.ErrLeaveRequestNotFound
	}
	if request.IsTerminal() {
		return "", leave.ErrLeaveRequestAlreadyProcessed
	}

	path, err := l.fileService.UploadLeaveAttachment(ctx, request.EmployeeID, reader, filename)
	if err != nil {
		return "", err
	}

	url, err := l.fileService.GetFileURL(ctx, path, 0)
	if err != nil {
		return "", err
	}

	if err := l.LeaveRequestRepository.UpdateAttachmentURL(ctx, request.ID, url); err != nil {
		return "", err
	}

	return url, nil
}

func toLeaveRequestResponse(request leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:            request.ID,
		EmployeeID:    request.EmployeeID,
		Type:          string(request.Type),
		StartDate:     request.StartDate.Format("2006-01-02"),
		EndDate:       request.EndDate.Format("2006-01-02"),
		Days:          request.Days,
		Reason:        request.Reason,
		AttachmentURL: request.AttachmentURL,
		Status:        string(request.Status),
		ApprovedBy:    request.ApprovedBy,
		CreatedAt:     request.CreatedAt.Format(time.RFC3339),
	}
	if request.EmployeeName != nil {
		resp.EmployeeName = *request.EmployeeName
	}
	return resp
}
