package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/orbithr/hr-backend-go/internal/domain/attendance"
	"github.com/orbithr/hr-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	att, err := a.attendanceService.CheckIn(r.Context())
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", att)
}

// CheckOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	att, err := a.attendanceService.CheckOut(r.Context())
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", att)
}

// Today implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	today, err := a.attendanceService.Today(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, today)
}

// List implements AttendanceHandler.
func (a *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAttendanceFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	attendances, err := a.attendanceService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendances)
}

func parseAttendanceFilter(r *http.Request) (attendance.Filter, error) {
	var filter attendance.Filter
	q := r.URL.Query()

	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			return attendance.Filter{}, err
		}
		filter.Date = &date
	}
	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			return attendance.Filter{}, err
		}
		filter.Month = &month
	}
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return attendance.Filter{}, err
		}
		filter.Year = &year
	}

	return filter, nil
}
