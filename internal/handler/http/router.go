package http

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/orbithr/hr-backend-go/internal/handler/http/middleware"
	"github.com/orbithr/hr-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	Env            string
	AllowedOrigins []string
	UploadDir      string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backend"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Locally stored avatars and attachments.
	fileServer(r, "/uploads", http.Dir(cfg.UploadDir))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.LoginWithGoogle)
				r.Get("/callback/google", authHandler.OAuthCallbackGoogle)
			})

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Post("/change-password", authHandler.ChangePassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/me", employeeHandler.Me)
				r.Get("/{id}", employeeHandler.Get)
				r.Post("/{id}/avatar", employeeHandler.UploadAvatar)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
					r.Put("/{id}/salary", employeeHandler.UpdateSalary)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/today", attendanceHandler.Today)
				r.Get("/", attendanceHandler.List)
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", leaveHandler.Submit)
				r.Get("/", leaveHandler.List)
				r.Post("/{id}/attachment", leaveHandler.UploadAttachment)

				// Admin only
				r.With(middleware.AdminOnly).Put("/{id}/status", leaveHandler.UpdateStatus)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/payslips", payrollHandler.List)
				r.Get("/payslips/unread", payrollHandler.LatestUnread)
				r.Put("/payslips/{id}/viewed", payrollHandler.MarkViewed)
				r.Post("/breakdown", payrollHandler.Breakdown)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/generate", payrollHandler.Generate)
					r.Put("/payslips/{id}/paid", payrollHandler.MarkPaid)
				})
			})
		})
	})

	return r
}

// fileServer serves static files from root under the given path prefix.
func fileServer(r chi.Router, path string, root http.FileSystem) {
	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}

	r.Get(path+"*", func(w http.ResponseWriter, req *http.Request) {
		pathPrefix := strings.TrimSuffix(chi.RouteContext(req.Context()).RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}
