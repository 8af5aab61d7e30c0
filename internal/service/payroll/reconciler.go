package payroll

import (
	"time"

	"github.com/orbithr/hr-backend-go/internal/domain/attendance"
	"github.com/orbithr/hr-backend-go/internal/domain/leave"
	"github.com/orbithr/hr-backend-go/internal/domain/payroll"
)

// ReconcileMonth classifies every scheduled working day of one calendar
// month into exactly one bucket: present, paid leave, or unpaid.
//
// A day is a working day when its ISO weekday (Monday=1 .. Sunday=7) is at
// most workingDaysPerWeek. An attendance record wins over any leave request
// covering the same day; among overlapping approved leaves the earliest by
// start date (then creation time) wins. A working day with neither an
// attendance record nor an approved leave is unpaid.
func ReconcileMonth(year int, month time.Month, workingDaysPerWeek int, attendances []attendance.Attendance, leaves []leave.LeaveRequest) payroll.MonthSummary {
	var summary payroll.MonthSummary

	attendedDays := make(map[int]bool, len(attendances))
	for _, att := range attendances {
		if att.Status == attendance.StatusAbsent {
			continue
		}
		if att.Date.Year() == year && att.Date.Month() == month {
			attendedDays[att.Date.Day()] = true
		}
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if isoWeekday(date) > workingDaysPerWeek {
			continue
		}
		summary.TotalWorkingDays++

		if attendedDays[day] {
			summary.PresentDays++
			continue
		}

		matched := 0
		var matchedType leave.Type
		for _, req := range leaves {
			if coversDay(req, date) {
				if matched == 0 {
					matchedType = req.Type
				}
				matched++
			}
		}

		switch {
		case matched == 0:
			summary.UnpaidDays++
		case leave.IsPaidType(matchedType):
			summary.PaidLeaveDays++
		default:
			summary.UnpaidDays++
		}
		if matched > 1 {
			summary.OverlappingLeaveDays++
		}
	}

	return summary
}

// isoWeekday maps time.Weekday to the ISO numbering, Monday=1 .. Sunday=7.
func isoWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// coversDay reports whether the request's inclusive date range contains the
// given day. Only the calendar date matters, not the time of day.
func coversDay(req leave.LeaveRequest, date time.Time) bool {
	start := truncateToDay(req.StartDate)
	end := truncateToDay(req.EndDate)
	return !date.Before(start) && !date.After(end)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
