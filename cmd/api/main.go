package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/orbithr/hr-backend-go/internal/config"
	appHTTP "github.com/orbithr/hr-backend-go/internal/handler/http"
	"github.com/orbithr/hr-backend-go/internal/pkg/database"
	"github.com/orbithr/hr-backend-go/internal/pkg/jwt"
	"github.com/orbithr/hr-backend-go/internal/pkg/oauth"
	"github.com/orbithr/hr-backend-go/internal/pkg/storage"
	"github.com/orbithr/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/orbithr/hr-backend-go/internal/service/attendance"
	authService "github.com/orbithr/hr-backend-go/internal/service/auth"
	employeeService "github.com/orbithr/hr-backend-go/internal/service/employee"
	"github.com/orbithr/hr-backend-go/internal/service/file"
	leaveService "github.com/orbithr/hr-backend-go/internal/service/leave"
	payrollService "github.com/orbithr/hr-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	if !cfg.GoogleEnabled() {
		log.Println("Google OAuth2 is not configured; social login disabled")
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.UploadDir, cfg.App.BaseURL+"/uploads")
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	fileService := file.NewFileService(fileStorage)

	payrollLogger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("component", "payroll"))

	authSvc := authService.NewAuthService(employeeRepo, refreshTokenRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, fileService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, employeeRepo, fileService)
	payrollSvc := payrollService.NewPayrollService(
		payslipRepo,
		employeeRepo,
		attendanceRepo,
		leaveRequestRepo,
		cfg.Payroll.DailyRateDivisor,
		payrollLogger,
	)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			AllowedOrigins: []string{cfg.App.FrontendURL},
			UploadDir:      cfg.Storage.UploadDir,
		},
		jwtService,
		authHandler,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
