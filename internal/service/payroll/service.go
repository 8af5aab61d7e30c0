package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/orbithr/hr-backend-go/internal/domain/attendance"
	"github.com/orbithr/hr-backend-go/internal/domain/employee"
	"github.com/orbithr/hr-backend-go/internal/domain/leave"
	"github.com/orbithr/hr-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payroll.PayslipRepository
	employee.EmployeeRepository
	attendance.AttendanceRepository
	leave.LeaveRequestRepository

	dailyRateDivisor decimal.Decimal
	componentConfig  payroll.ComponentConfig
	logger           *slog.Logger
}

func NewPayrollService(
	payslipRepo payroll.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	dailyRateDivisor decimal.Decimal,
	logger *slog.Logger,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayslipRepository:      payslipRepo,
		EmployeeRepository:     employeeRepo,
		AttendanceRepository:   attendanceRepo,
		LeaveRequestRepository: leaveRepo,
		dailyRateDivisor:       dailyRateDivisor,
		componentConfig:        payroll.DefaultComponentConfig(),
		logger:                 logger,
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

// Generate implements payroll.PayrollService.
func (p *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayslipRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	emp, err := p.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	if emp.Salary.WorkingDaysPerWeek < 0 || emp.Salary.WorkingDaysPerWeek > 7 {
		return payroll.PayslipResponse{}, payroll.ErrInvalidWorkSchedule
	}

	// A finalized payslip is never silently recomputed.
	existing, err := p.PayslipRepository.GetByEmployeePeriod(ctx, req.EmployeeID, req.Month, req.Year)
	if err == nil && existing.Status == payroll.PayslipStatusPaid {
		return payroll.PayslipResponse{}, payroll.ErrPayslipAlreadyPaid
	}
	if err != nil && !errors.Is(err, payroll.ErrPayslipNotFound) {
		return payroll.PayslipResponse{}, err
	}

	month := time.Month(req.Month)
	from := time.Date(req.Year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	attendances, err := p.AttendanceRepository.ListByEmployeeAndRange(ctx, emp.ID, from, to)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to load attendance for reconciliation: %w", err)
	}

	leaves, err := p.LeaveRequestRepository.ListApprovedOverlapping(ctx, emp.ID, from, to)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to load approved leaves for reconciliation: %w", err)
	}

	summary := ReconcileMonth(req.Year, month, emp.Salary.WorkingDaysPerWeek, attendances, leaves)
	if summary.OverlappingLeaveDays > 0 {
		p.logger.WarnContext(ctx, "overlapping approved leaves during payroll reconciliation",
			slog.String("employee_id", emp.ID),
			slog.Int("month", req.Month),
			slog.Int("year", req.Year),
			slog.Int("overlapping_days", summary.OverlappingLeaveDays),
		)
	}

	deduction, net := ComputeDeduction(emp.Salary.Wage, summary.UnpaidDays, p.dailyRateDivisor)

	payslip := payroll.Payslip{
		EmployeeID:       emp.ID,
		Month:            req.Month,
		Year:             req.Year,
		Wage:             emp.Salary.Wage,
		TotalWorkingDays: summary.TotalWorkingDays,
		PresentDays:      summary.PresentDays,
		LeaveDays:        summary.PaidLeaveDays,
		UnpaidDays:       summary.UnpaidDays,
		DeductionAmount:  deduction,
		NetSalary:        net,
		Status:           payroll.PayslipStatusDraft,
		GeneratedAt:      time.Now().UTC(),
	}

	saved, err := p.PayslipRepository.Upsert(ctx, payslip)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	fullName := emp.FirstName + " " + emp.LastName
	saved.EmployeeName = &fullName
	saved.EmployeeCode = &emp.EmployeeCode

	return toPayslipResponse(saved), nil
}

// List implements payroll.PayrollService.
func (p *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.PayslipResponse, error) {
	employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// Non-admins only ever see their own payslips.
	if role != string(employee.RoleAdmin) {
		filter.EmployeeID = &employeeID
	}

	payslips, err := p.PayslipRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, ps := range payslips {
		responses = append(responses, toPayslipResponse(ps))
	}

	return responses, nil
}

// LatestUnread implements payroll.PayrollService.
func (p *PayrollServiceImpl) LatestUnread(ctx context.Context) (*payroll.PayslipResponse, error) {
	employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	payslip, err := p.PayslipRepository.GetLatestUnread(ctx, employeeID)
	if err != nil {
		if errors.Is(err, payroll.ErrPayslipNotFound) {
			return nil, nil
		}
		return nil, err
	}

	resp := toPayslipResponse(payslip)
	return &resp, nil
}

// MarkViewed implements payroll.PayrollService.
func (p *PayrollServiceImpl) MarkViewed(ctx context.Context, id string) error {
	employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	payslip, err := p.PayslipRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Not-found rather than forbidden, so payslip IDs are not probeable.
	if role != string(employee.RoleAdmin) && payslip.EmployeeID != employeeID {
		return payroll.ErrPayslipNotFound
	}

	return p.PayslipRepository.MarkViewed(ctx, id)
}

// MarkPaid implements payroll.PayrollService.
func (p *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) error {
	return p.PayslipRepository.MarkPaid(ctx, id)
}

// Breakdown implements payroll.PayrollService.
func (p *PayrollServiceImpl) Breakdown(ctx context.Context, req payroll.BreakdownRequest) (payroll.SalaryBreakdown, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryBreakdown{}, err
	}

	cfg := p.componentConfig
	if req.Config != nil {
		cfg = *req.Config
	}

	return ComputeBreakdown(req.Wage, cfg), nil
}

func toPayslipResponse(ps payroll.Payslip) payroll.PayslipResponse {
	resp := payroll.PayslipResponse{
		ID:               ps.ID,
		EmployeeID:       ps.EmployeeID,
		Month:            ps.Month,
		Year:             ps.Year,
		Wage:             ps.Wage,
		TotalWorkingDays: ps.TotalWorkingDays,
		PresentDays:      ps.PresentDays,
		LeaveDays:        ps.LeaveDays,
		UnpaidDays:       ps.UnpaidDays,
		DeductionAmount:  ps.DeductionAmount,
		NetSalary:        ps.NetSalary,
		Status:           string(ps.Status),
		ViewedByEmployee: ps.ViewedByEmployee,
		GeneratedAt:      ps.GeneratedAt.Format(time.RFC3339),
	}
	if ps.EmployeeName != nil {
		resp.EmployeeName = *ps.EmployeeName
	}
	if ps.EmployeeCode != nil {
		resp.EmployeeCode = *ps.EmployeeCode
	}
	return resp
}
