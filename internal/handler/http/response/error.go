package response

import (
	"errors"
	"net/http"

	"github.com/orbithr/hr-backend-go/internal/domain/attendance"
	"github.com/orbithr/hr-backend-go/internal/domain/auth"
	"github.com/orbithr/hr-backend-go/internal/domain/employee"
	"github.com/orbithr/hr-backend-go/internal/domain/leave"
	"github.com/orbithr/hr-backend-go/internal/domain/payroll"
	"github.com/orbithr/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrNoGoogleAccount):
		Forbidden(w, "Google account is not linked to any employee")
	case errors.Is(err, auth.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrInvalidSchedule):
		BadRequest(w, "Invalid work schedule", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "Not checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidLeaveType):
		BadRequest(w, "Invalid leave type", nil)
	case errors.Is(err, leave.ErrInvalidStatus):
		BadRequest(w, "Invalid leave status", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrPayslipAlreadyPaid):
		Conflict(w, "Payslip already marked as paid")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrInvalidWorkSchedule):
		BadRequest(w, "Invalid work schedule", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
