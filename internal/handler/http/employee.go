package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/orbithr/hr-backend-go/internal/domain/employee"
	"github.com/orbithr/hr-backend-go/internal/handler/http/response"
)

// Avatar uploads are capped at this size.
const maxAvatarUploadBytes = 5 << 20

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateSalary(w http.ResponseWriter, r *http.Request)
	UploadAvatar(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

func requestClaims(r *http.Request) (employeeID string, role string) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", ""
	}
	employeeID, _ = claims["employee_id"].(string)
	role, _ = claims["role"].(string)
	return employeeID, role
}

// Create implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq employee.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := e.employeeService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", created)
}

// List implements EmployeeHandler.
func (e *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := e.employeeService.List(r.Context())
	if err != nil {
		slog.Error("List employees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// Get implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := e.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// Me implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	employeeID, _ := requestClaims(r)
	if employeeID == "" {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	emp, err := e.employeeService.Get(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// Update implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq employee.UpdateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	updated, err := e.employeeService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", updated)
}

// UpdateSalary implements EmployeeHandler.
func (e *EmployeeHandlerImpl) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	var salaryReq employee.UpdateSalaryRequest

	if err := json.NewDecoder(r.Body).Decode(&salaryReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	salaryReq.ID = chi.URLParam(r, "id")

	if err := salaryReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := e.employeeService.UpdateSalary(r.Context(), salaryReq)
	if err != nil {
		slog.Error("Update salary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary updated successfully", updated)
}

// UploadAvatar implements EmployeeHandler.
func (e *EmployeeHandlerImpl) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	employeeID, role := requestClaims(r)
	if role != string(employee.RoleAdmin) && employeeID != id {
		response.Forbidden(w, "Cannot upload an avatar for another employee")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarUploadBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		response.BadRequest(w, "Missing avatar file", nil)
		return
	}
	defer file.Close()

	url, err := e.employeeService.UploadAvatar(r.Context(), id, file, header.Filename)
	if err != nil {
		slog.Error("Upload avatar service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Avatar uploaded successfully", map[string]string{"avatar_url": url})
}
