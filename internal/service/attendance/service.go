package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/orbithr/hr-backend-go/internal/domain/attendance"
	"github.com/orbithr/hr-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
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

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// classifyCheckout derives the final status and extra hours from the total
// worked duration. Short days become leave, long days accrue extra hours
// past the standard working day.
func classifyCheckout(workHours decimal.Decimal) (attendance.Status, decimal.Decimal) {
	if workHours.LessThan(decimal.NewFromInt(attendance.MinFullDayHours)) {
		return attendance.StatusLeave, decimal.Zero
	}

	standard := decimal.NewFromInt(attendance.StandardDayHours)
	if workHours.GreaterThan(standard) {
		return attendance.StatusPresent, workHours.Sub(standard)
	}
	return attendance.StatusPresent, decimal.Zero
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now().UTC()
	today := todayUTC()

	if _, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today); err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	} else if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, err
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       today,
		CheckIn:    now,
		Status:     attendance.StatusPresent,
		WorkHours:  decimal.Zero,
		ExtraHours: decimal.Zero,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, todayUTC())
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, err
	}

	if att.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	now := time.Now().UTC()
	workHours := decimal.NewFromFloat(now.Sub(att.CheckIn).Hours()).Round(2)

	att.CheckOut = &now
	att.WorkHours = workHours
	att.Status, att.ExtraHours = classifyCheckout(workHours)

	if err := a.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(att), nil
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context) (attendance.TodayResponse, error) {
	employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, todayUTC())
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.TodayResponse{}, nil
		}
		return attendance.TodayResponse{}, err
	}

	resp := toAttendanceResponse(att)
	return attendance.TodayResponse{
		CheckedIn:  true,
		CheckedOut: att.CheckOut != nil,
		Attendance: &resp,
	}, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// Non-admins only ever see their own records.
	if role != string(employee.RoleAdmin) {
		filter.EmployeeID = &employeeID
	}

	attendances, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, toAttendanceResponse(att))
	}

	return responses, nil
}

func toAttendanceResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:         att.ID,
		EmployeeID: att.EmployeeID,
		Date:       att.Date.Format("2006-01-02"),
		CheckIn:    att.CheckIn.Format(time.RFC3339),
		Status:     string(att.Status),
		WorkHours:  att.WorkHours,
		ExtraHours: att.ExtraHours,
	}
	if att.CheckOut != nil {
		checkOut := att.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &checkOut
	}
	if att.EmployeeName != nil {
		resp.EmployeeName = *att.EmployeeName
	}
	return resp
}
