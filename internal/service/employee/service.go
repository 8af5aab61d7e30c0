package employee

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/orbithr/hr-backend-go/internal/domain/employee"
	"github.com/orbithr/hr-backend-go/internal/domain/payroll"
	"github.com/orbithr/hr-backend-go/internal/service/file"
	payrollservice "github.com/orbithr/hr-backend-go/internal/service/payroll"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	fileService file.FileService
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, fileService file.FileService) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
		fileService:        fileService,
	}
}

func roleFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	role, _ := claims["role"].(string)
	return role, nil
}

// Create implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := e.EmployeeRepository.GetByEmail(ctx, req.Email); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	now := time.Now().UTC()
	joinedThisYear, err := e.EmployeeRepository.CountJoinedInYear(ctx, now.Year())
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		EmployeeCode: BuildEmployeeCode(req.FirstName, req.LastName, now.Year(), joinedThisYear+1),
		Email:        req.Email,
		PasswordHash: &hashStr,
		Role:         employee.RoleEmployee,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Department:   req.Department,
		JobPosition:  req.JobPosition,
		JoiningDate:  now,
		Salary: employee.Salary{
			WorkingDaysPerWeek: employee.DefaultWorkingDaysPerWeek,
		},
		LeaveCredits: employee.LeaveCredits{
			Paid: employee.DefaultPaidCredits,
			Sick: employee.DefaultSickCredits,
		},
		// Admin-assigned passwords must be rotated on first login.
		ForcePasswordChange: true,
	}

	created, err := e.EmployeeRepository.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(created), nil
}

// List implements employee.EmployeeService.
func (e *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	role, err := roleFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := e.EmployeeRepository.List(ctx, role == string(employee.RoleAdmin))
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toEmployeeResponse(emp))
	}

	return responses, nil
}

// Get implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := e.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(emp), nil
}

// Update implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	emp, err := e.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.Department != nil {
		emp.Department = req.Department
	}
	if req.JobPosition != nil {
		emp.JobPosition = req.JobPosition
	}
	if req.Phone != nil {
		emp.Phone = req.Phone
	}
	if req.Address != nil {
		emp.Address = req.Address
	}
	if req.BankAccountNumber != nil {
		emp.BankDetails.AccountNumber = req.BankAccountNumber
	}
	if req.BankName != nil {
		emp.BankDetails.BankName = req.BankName
	}
	if req.IFSCCode != nil {
		emp.BankDetails.IFSCCode = req.IFSCCode
	}
	if req.PANNumber != nil {
		emp.BankDetails.PANNumber = req.PANNumber
	}
	if req.UANNumber != nil {
		emp.BankDetails.UANNumber = req.UANNumber
	}

	if err := e.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(emp), nil
}

// UpdateSalary implements employee.EmployeeService.
func (e *EmployeeServiceImpl) UpdateSalary(ctx context.Context, req employee.UpdateSalaryRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := e.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Wage != nil {
		emp.Salary.Wage = *req.Wage
	}
	if req.WorkingDaysPerWeek != nil {
		emp.Salary.WorkingDaysPerWeek = *req.WorkingDaysPerWeek
	}
	if req.BreakTimeHours != nil {
		emp.Salary.BreakTimeHours = *req.BreakTimeHours
	}

	// The cached component breakdown always reflects the current wage.
	breakdown := payrollservice.ComputeBreakdown(emp.Salary.Wage, payroll.DefaultComponentConfig())
	emp.Salary.Basic = breakdown.Basic
	emp.Salary.HRA = breakdown.HRA
	emp.Salary.StandardAllowance = breakdown.StandardAllowance
	emp.Salary.Bonus = breakdown.Bonus
	emp.Salary.LTA = breakdown.LTA
	emp.Salary.FixedAllowance = breakdown.FixedAllowance
	emp.Salary.ProfessionalTax = breakdown.ProfessionalTax
	emp.Salary.PFEmployee = breakdown.PFEmployee
	emp.Salary.PFEmployer = breakdown.PFEmployer

	if err := e.EmployeeRepository.UpdateSalary(ctx, emp.ID, emp.Salary); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(emp), nil
}

// UploadAvatar implements employee.EmployeeService.
func (e *EmployeeServiceImpl) UploadAvatar(ctx context.Context, id string, reader io.Reader, filename string) (string, error) {
	emp, err := e.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	path, err := e.fileService.UploadAvatar(ctx, emp.ID, reader, filename)
	if err != nil {
		return "", err
	}

	url, err := e.fileService.GetFileURL(ctx, path, 0)
	if err != nil {
		return "", err
	}

	if err := e.EmployeeRepository.UpdateAvatarURL(ctx, emp.ID, url); err != nil {
		return "", err
	}

	return url, nil
}

func toEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:                  emp.ID,
		EmployeeCode:        emp.EmployeeCode,
		Email:               emp.Email,
		Role:                string(emp.Role),
		FirstName:           emp.FirstName,
		LastName:            emp.LastName,
		AvatarURL:           emp.AvatarURL,
		Department:          emp.Department,
		JobPosition:         emp.JobPosition,
		JoiningDate:         emp.JoiningDate.Format("2006-01-02"),
		Phone:               emp.Phone,
		Address:             emp.Address,
		ForcePasswordChange: emp.ForcePasswordChange,
		LeaveCredits: employee.LeaveCreditsResponse{
			Paid:   emp.LeaveCredits.Paid,
			Sick:   emp.LeaveCredits.Sick,
			Unpaid: emp.LeaveCredits.Unpaid,
		},
	}

	if emp.Salary.Wage.IsPositive() {
		resp.Salary = &employee.SalaryResponse{
			Wage:               emp.Salary.Wage,
			WorkingDaysPerWeek: emp.Salary.WorkingDaysPerWeek,
			BreakTimeHours:     emp.Salary.BreakTimeHours,
			Basic:              emp.Salary.Basic,
			HRA:                emp.Salary.HRA,
			StandardAllowance:  emp.Salary.StandardAllowance,
			Bonus:              emp.Salary.Bonus,
			LTA:                emp.Salary.LTA,
			FixedAllowance:     emp.Salary.FixedAllowance,
			ProfessionalTax:    emp.Salary.ProfessionalTax,
			PFEmployee:         emp.Salary.PFEmployee,
			PFEmployer:         emp.Salary.PFEmployer,
		}
	}

	return resp
}
