package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/orbithr/hr-backend-go/internal/domain/attendance"
	"github.com/orbithr/hr-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCheckout(t *testing.T) {
	tests := []struct {
		name       string
		workHours  string
		wantStatus attendance.Status
		wantExtra  string
	}{
		{"short day becomes leave", "3.25", attendance.StatusLeave, "0"},
		{"just under threshold", "5.99", attendance.StatusLeave, "0"},
		{"exactly six hours is present", "6", attendance.StatusPresent, "0"},
		{"standard day", "8", attendance.StatusPresent, "0"},
		{"overtime accrues extra hours", "9.5", attendance.StatusPresent, "1.5"},
		{"long day", "12", attendance.StatusPresent, "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, extra := classifyCheckout(decimal.RequireFromString(tt.workHours))

			assert.Equal(t, tt.wantStatus, status)
			assert.True(t, extra.Equal(decimal.RequireFromString(tt.wantExtra)),
				"extra: got %s, want %s", extra, tt.wantExtra)
		})
	}
}

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance // keyed by employeeID + date
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "-" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	key := recordKey(att.EmployeeID, att.Date)
	if _, ok := f.records[key]; ok {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	f.nextID++
	att.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records[key] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	if att, ok := f.records[recordKey(employeeID, date)]; ok {
		return att, nil
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error {
	f.records[recordKey(att.EmployeeID, att.Date)] = att
	return nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if filter.EmployeeID != nil && att.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, att)
	}
	return out, nil
}

func authedContext(t *testing.T, employeeID string, role employee.Role) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        string(role),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestCheckIn(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	resp, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Nil(t, resp.CheckOut)
}

func TestCheckIn_TwiceSameDay(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo())
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	_, err := svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_ShortDayReclassifiedAsLeave(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	// Backdate the check-in so the worked duration is about two hours.
	key := recordKey("emp-1", todayUTC())
	att := repo.records[key]
	att.CheckIn = time.Now().UTC().Add(-2 * time.Hour)
	repo.records[key] = att

	resp, err := svc.CheckOut(ctx)
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusLeave), resp.Status)
	assert.NotNil(t, resp.CheckOut)
	assert.True(t, resp.ExtraHours.IsZero())
}

func TestCheckOut_OvertimeRecordsExtraHours(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	key := recordKey("emp-1", todayUTC())
	att := repo.records[key]
	att.CheckIn = time.Now().UTC().Add(-10 * time.Hour)
	repo.records[key] = att

	resp, err := svc.CheckOut(ctx)
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.True(t, resp.ExtraHours.GreaterThan(decimal.NewFromFloat(1.9)), "extra: %s", resp.ExtraHours)
}

func TestCheckOut_Twice(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	key := recordKey("emp-1", todayUTC())
	att := repo.records[key]
	att.CheckIn = time.Now().UTC().Add(-8 * time.Hour)
	repo.records[key] = att

	_, err = svc.CheckOut(ctx)
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestToday(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	resp, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.False(t, resp.CheckedIn)
	assert.Nil(t, resp.Attendance)

	_, err = svc.CheckIn(ctx)
	require.NoError(t, err)

	resp, err = svc.Today(ctx)
	require.NoError(t, err)
	assert.True(t, resp.CheckedIn)
	assert.False(t, resp.CheckedOut)
	require.NotNil(t, resp.Attendance)
}

func TestList_NonAdminScopedToSelf(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)

	_, err := svc.CheckIn(authedContext(t, "emp-1", employee.RoleEmployee))
	require.NoError(t, err)
	_, err = svc.CheckIn(authedContext(t, "emp-2", employee.RoleEmployee))
	require.NoError(t, err)

	other := "emp-2"
	out, err := svc.List(authedContext(t, "emp-1", employee.RoleEmployee), attendance.Filter{EmployeeID: &other})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "emp-1", out[0].EmployeeID)
}

func TestList_InvalidMonthFilter(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo())
	month := 13
	year := 2025

	_, err := svc.List(authedContext(t, "emp-1", employee.RoleEmployee), attendance.Filter{Month: &month, Year: &year})
	assert.Error(t, err)
}
