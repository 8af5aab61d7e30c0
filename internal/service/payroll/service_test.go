package payroll

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/orbithr/hr-backend-go/internal/domain/attendance"
	"github.com/orbithr/hr-backend-go/internal/domain/employee"
	"github.com/orbithr/hr-backend-go/internal/domain/leave"
	"github.com/orbithr/hr-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayslipRepo struct {
	byPeriod map[string]payroll.Payslip
	nextID   int
}

func newFakePayslipRepo() *fakePayslipRepo {
	return &fakePayslipRepo{byPeriod: make(map[string]payroll.Payslip)}
}

func periodKey(employeeID string, month, year int) string {
	return fmt.Sprintf("%s-%d-%d", employeeID, month, year)
}

func (f *fakePayslipRepo) Upsert(_ context.Context, ps payroll.Payslip) (payroll.Payslip, error) {
	key := periodKey(ps.EmployeeID, ps.Month, ps.Year)
	if existing, ok := f.byPeriod[key]; ok {
		ps.ID = existing.ID
		ps.ViewedByEmployee = existing.ViewedByEmployee
		ps.CreatedAt = existing.CreatedAt
	} else {
		f.nextID++
		ps.ID = fmt.Sprintf("ps-%d", f.nextID)
		ps.CreatedAt = time.Now()
	}
	ps.UpdatedAt = time.Now()
	f.byPeriod[key] = ps
	return ps, nil
}

func (f *fakePayslipRepo) GetByID(_ context.Context, id string) (payroll.Payslip, error) {
	for _, ps := range f.byPeriod {
		if ps.ID == id {
			return ps, nil
		}
	}
	return payroll.Payslip{}, payroll.ErrPayslipNotFound
}

func (f *fakePayslipRepo) GetByEmployeePeriod(_ context.Context, employeeID string, month, year int) (payroll.Payslip, error) {
	if ps, ok := f.byPeriod[periodKey(employeeID, month, year)]; ok {
		return ps, nil
	}
	return payroll.Payslip{}, payroll.ErrPayslipNotFound
}

func (f *fakePayslipRepo) List(_ context.Context, filter payroll.PayslipFilter) ([]payroll.Payslip, error) {
	var out []payroll.Payslip
	for _, ps := range f.byPeriod {
		if filter.EmployeeID != nil && ps.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, ps)
	}
	return out, nil
}

func (f *fakePayslipRepo) GetLatestUnread(_ context.Context, employeeID string) (payroll.Payslip, error) {
	for _, ps := range f.byPeriod {
		if ps.EmployeeID == employeeID && !ps.ViewedByEmployee && ps.DeductionAmount.IsPositive() {
			return ps, nil
		}
	}
	return payroll.Payslip{}, payroll.ErrPayslipNotFound
}

func (f *fakePayslipRepo) MarkViewed(_ context.Context, id string) error {
	for key, ps := range f.byPeriod {
		if ps.ID == id {
			ps.ViewedByEmployee = true
			f.byPeriod[key] = ps
			return nil
		}
	}
	return payroll.ErrPayslipNotFound
}

func (f *fakePayslipRepo) MarkPaid(_ context.Context, id string) error {
	for key, ps := range f.byPeriod {
		if ps.ID == id {
			if ps.Status == payroll.PayslipStatusPaid {
				return payroll.ErrPayslipAlreadyPaid
			}
			ps.Status = payroll.PayslipStatusPaid
			f.byPeriod[key] = ps
			return nil
		}
	}
	return payroll.ErrPayslipNotFound
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if emp, ok := f.employees[id]; ok {
		return emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, includeAdmins bool) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, emp employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) UpdateSalary(_ context.Context, id string, salary employee.Salary) error {
	return nil
}

func (f *fakeEmployeeRepo) UpdateAvatarURL(_ context.Context, id string, url string) error {
	return nil
}

func (f *fakeEmployeeRepo) UpdatePassword(_ context.Context, id, hash string, force bool) error {
	return nil
}

func (f *fakeEmployeeRepo) DecrementLeaveCredit(_ context.Context, id string, kind employee.LeaveCreditKind, days float64) error {
	return nil
}

func (f *fakeEmployeeRepo) CountJoinedInYear(_ context.Context, year int) (int, error) {
	return 0, nil
}

type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error { return nil }

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.EmployeeID == employeeID && !att.Date.Before(from) && !att.Date.After(to) {
			out = append(out, att)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	return f.records, nil
}

type fakeLeaveRepo struct {
	requests []leave.LeaveRequest
}

func (f *fakeLeaveRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (f *fakeLeaveRepo) List(_ context.Context, filter leave.Filter) ([]leave.LeaveRequest, error) {
	return f.requests, nil
}

func (f *fakeLeaveRepo) UpdateStatus(_ context.Context, id string, status leave.Status, approvedBy string) error {
	return nil
}

func (f *fakeLeaveRepo) UpdateAttachmentURL(_ context.Context, id string, url string) error {
	return nil
}

func (f *fakeLeaveRepo) ListApprovedOverlapping(_ context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && req.Status == leave.StatusApproved &&
			!req.StartDate.After(to) && !req.EndDate.Before(from) {
			out = append(out, req)
		}
	}
	return out, nil
}

func testEmployee(wage int64, workingDaysPerWeek int) employee.Employee {
	return employee.Employee{
		ID:           "emp-1",
		EmployeeCode: "OIJDOE20250001",
		FirstName:    "Jane",
		LastName:     "Doe",
		Role:         employee.RoleEmployee,
		Salary: employee.Salary{
			Wage:               decimal.NewFromInt(wage),
			WorkingDaysPerWeek: workingDaysPerWeek,
		},
	}
}

func newTestService(payslips *fakePayslipRepo, atts *fakeAttendanceRepo, leaves *fakeLeaveRepo, emp employee.Employee) payroll.PayrollService {
	return NewPayrollService(
		payslips,
		&fakeEmployeeRepo{employees: map[string]employee.Employee{emp.ID: emp}},
		atts,
		leaves,
		decimal.NewFromInt(30),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func authedContext(t *testing.T, employeeID, role string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        role,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestGenerate_ComputesDeductionFromUnpaidDays(t *testing.T) {
	payslips := newFakePayslipRepo()
	atts := &fakeAttendanceRepo{}
	leaves := &fakeLeaveRepo{}

	// Present every working day except June 9 and 10.
	for d := 1; d <= 30; d++ {
		date := day(d)
		if isoWeekday(date) > 5 || d == 9 || d == 10 {
			continue
		}
		atts.records = append(atts.records, attendance.Attendance{
			EmployeeID: "emp-1",
			Date:       date,
			Status:     attendance.StatusPresent,
		})
	}

	svc := newTestService(payslips, atts, leaves, testEmployee(30000, 5))

	resp, err := svc.Generate(context.Background(), payroll.GeneratePayslipRequest{
		EmployeeID: "emp-1",
		Month:      6,
		Year:       2025,
	})
	require.NoError(t, err)

	assert.Equal(t, 21, resp.TotalWorkingDays)
	assert.Equal(t, 19, resp.PresentDays)
	assert.Equal(t, 2, resp.UnpaidDays)
	assert.True(t, resp.DeductionAmount.Equal(decimal.NewFromInt(2000)), "deduction: %s", resp.DeductionAmount)
	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(28000)), "net: %s", resp.NetSalary)
	assert.Equal(t, string(payroll.PayslipStatusDraft), resp.Status)
	assert.Equal(t, "Jane Doe", resp.EmployeeName)
}

func TestGenerate_ApprovedPaidLeavePreservesSalary(t *testing.T) {
	payslips := newFakePayslipRepo()
	atts := &fakeAttendanceRepo{}
	leaves := &fakeLeaveRepo{requests: []leave.LeaveRequest{{
		EmployeeID: "emp-1",
		Type:       leave.TypePaid,
		StartDate:  day(2),
		EndDate:    day(30),
		Status:     leave.StatusApproved,
	}}}

	svc := newTestService(payslips, atts, leaves, testEmployee(30000, 5))

	resp, err := svc.Generate(context.Background(), payroll.GeneratePayslipRequest{
		EmployeeID: "emp-1",
		Month:      6,
		Year:       2025,
	})
	require.NoError(t, err)

	assert.Equal(t, 21, resp.LeaveDays)
	assert.Equal(t, 0, resp.UnpaidDays)
	assert.True(t, resp.DeductionAmount.IsZero())
	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(30000)))
}

func TestGenerate_IsIdempotent(t *testing.T) {
	payslips := newFakePayslipRepo()
	svc := newTestService(payslips, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, testEmployee(30000, 5))

	req := payroll.GeneratePayslipRequest{EmployeeID: "emp-1", Month: 6, Year: 2025}

	first, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	second, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.UnpaidDays, second.UnpaidDays)
	assert.True(t, first.NetSalary.Equal(second.NetSalary))
	assert.Len(t, payslips.byPeriod, 1)
}

func TestGenerate_RegenerationPreservesViewedFlag(t *testing.T) {
	payslips := newFakePayslipRepo()
	svc := newTestService(payslips, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, testEmployee(30000, 5))

	req := payroll.GeneratePayslipRequest{EmployeeID: "emp-1", Month: 6, Year: 2025}

	first, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	require.NoError(t, payslips.MarkViewed(context.Background(), first.ID))

	second, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, second.ViewedByEmployee)
}

func TestGenerate_RefusesToRecomputePaidPayslip(t *testing.T) {
	payslips := newFakePayslipRepo()
	svc := newTestService(payslips, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, testEmployee(30000, 5))

	req := payroll.GeneratePayslipRequest{EmployeeID: "emp-1", Month: 6, Year: 2025}

	first, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, payslips.MarkPaid(context.Background(), first.ID))

	_, err = svc.Generate(context.Background(), req)
	assert.ErrorIs(t, err, payroll.ErrPayslipAlreadyPaid)
}

func TestGenerate_UnknownEmployee(t *testing.T) {
	svc := newTestService(newFakePayslipRepo(), &fakeAttendanceRepo{}, &fakeLeaveRepo{}, testEmployee(30000, 5))

	_, err := svc.Generate(context.Background(), payroll.GeneratePayslipRequest{
		EmployeeID: "missing",
		Month:      6,
		Year:       2025,
	})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGenerate_InvalidMonth(t *testing.T) {
	svc := newTestService(newFakePayslipRepo(), &fakeAttendanceRepo{}, &fakeLeaveRepo{}, testEmployee(30000, 5))

	_, err := svc.Generate(context.Background(), payroll.GeneratePayslipRequest{
		EmployeeID: "emp-1",
		Month:      13,
		Year:       2025,
	})

	assert.Error(t, err)
}

func TestList_NonAdminScopedToSelf(t *testing.T) {
	payslips := newFakePayslipRepo()
	svc := newTestService(payslips, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, testEmployee(30000, 5))

	_, err := svc.Generate(context.Background(), payroll.GeneratePayslipRequest{EmployeeID: "emp-1", Month: 6, Year: 2025})
	require.NoError(t, err)

	ctx := authedContext(t, "someone-else", string(employee.RoleEmployee))
	out, err := svc.List(ctx, payroll.PayslipFilter{})
	require.NoError(t, err)

	assert.Empty(t, out)
}

func TestLatestUnread_NoUnreadReturnsNil(t *testing.T) {
	svc := newTestService(newFakePayslipRepo(), &fakeAttendanceRepo{}, &fakeLeaveRepo{}, testEmployee(30000, 5))

	ctx := authedContext(t, "emp-1", string(employee.RoleEmployee))
	resp, err := svc.LatestUnread(ctx)

	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestMarkViewed_OtherEmployeesPayslipIsNotFound(t *testing.T) {
	payslips := newFakePayslipRepo()
	svc := newTestService(payslips, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, testEmployee(30000, 5))

	resp, err := svc.Generate(context.Background(), payroll.GeneratePayslipRequest{EmployeeID: "emp-1", Month: 6, Year: 2025})
	require.NoError(t, err)

	ctx := authedContext(t, "someone-else", string(employee.RoleEmployee))
	err = svc.MarkViewed(ctx, resp.ID)

	assert.ErrorIs(t, err, payroll.ErrPayslipNotFound)
}

func TestBreakdown_UsesDefaultsWhenConfigOmitted(t *testing.T) {
	svc := newTestService(newFakePayslipRepo(), &fakeAttendanceRepo{}, &fakeLeaveRepo{}, testEmployee(30000, 5))

	b, err := svc.Breakdown(context.Background(), payroll.BreakdownRequest{Wage: decimal.NewFromInt(50000)})
	require.NoError(t, err)

	assert.True(t, b.Basic.Equal(decimal.NewFromInt(25000)))
}
