package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/orbithr/hr-backend-go/internal/domain/payroll"
	"github.com/orbithr/hr-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	LatestUnread(w http.ResponseWriter, r *http.Request)
	MarkViewed(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Breakdown(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Generate implements PayrollHandler.
func (p *PayrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var generateReq payroll.GeneratePayslipRequest

	if err := json.NewDecoder(r.Body).Decode(&generateReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := generateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	payslip, err := p.payrollService.Generate(r.Context(), generateReq)
	if err != nil {
		slog.Error("Generate payslip service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip generated successfully", payslip)
}

// List implements PayrollHandler.
func (p *PayrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePayslipFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	payslips, err := p.payrollService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List payslips service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, payslips)
}

// LatestUnread implements PayrollHandler.
func (p *PayrollHandlerImpl) LatestUnread(w http.ResponseWriter, r *http.Request) {
	payslip, err := p.payrollService.LatestUnread(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payslip)
}

// MarkViewed implements PayrollHandler.
func (p *PayrollHandlerImpl) MarkViewed(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := p.payrollService.MarkViewed(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip marked as viewed", nil)
}

// MarkPaid implements PayrollHandler.
func (p *PayrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := p.payrollService.MarkPaid(r.Context(), id); err != nil {
		slog.Error("Mark payslip paid service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip marked as paid", nil)
}

// Breakdown implements PayrollHandler.
func (p *PayrollHandlerImpl) Breakdown(w http.ResponseWriter, r *http.Request) {
	var breakdownReq payroll.BreakdownRequest

	if err := json.NewDecoder(r.Body).Decode(&breakdownReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := breakdownReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	breakdown, err := p.payrollService.Breakdown(r.Context(), breakdownReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, breakdown)
}

func parsePayslipFilter(r *http.Request) (payroll.PayslipFilter, error) {
	var filter payroll.PayslipFilter
	q := r.URL.Query()

	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			return payroll.PayslipFilter{}, err
		}
		filter.Month = &month
	}
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return payroll.PayslipFilter{}, err
		}
		filter.Year = &year
	}

	return filter, nil
}
