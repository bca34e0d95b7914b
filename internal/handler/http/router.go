package http

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/config"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// NewLogger returns the ECS formatted JSON logger used for request and application logs.
func NewLogger(app config.AppConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(app.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(app.Env != "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-attendance-sheet"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)
}

type RouterOptions struct {
	AllowedOrigins []string
	// StorageDir is served under /storage when archived exports are kept on local disk.
	StorageDir string
}

func NewRouter(logger *slog.Logger, JWTService jwt.Service, reportHandler ReportHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Requires authentication
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
		r.Use(middleware.RequireCompany)

		r.Route("/api/v1/reports", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/monthly-attendance-sheet", reportHandler.GetMonthlyAttendanceSheet)
				r.Get("/attendance-years", reportHandler.GetAttendanceYears)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsExport))
				r.Get("/monthly-attendance-sheet/export", reportHandler.ExportMonthlyAttendanceSheet)
				r.Post("/monthly-attendance-sheet/archive", reportHandler.ArchiveMonthlyAttendanceSheet)
			})
		})

		if opts.StorageDir != "" {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsExport))
				r.Handle("/storage/*", http.StripPrefix("/storage/", companyFiles(opts.StorageDir)))
			})
		}
	})

	return r
}

// companyFiles serves archived exports, limited to the caller's company prefix.
func companyFiles(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		companyID, ok := middleware.CompanyID(r)
		// Clean before matching so "../" cannot step into another company's folder
		cleaned := path.Clean("/" + r.URL.Path)
		if !ok || !strings.HasPrefix(cleaned, "/reports/"+companyID+"/") {
			response.NotFound(w, "File not found")
			return
		}
		r.URL.Path = cleaned
		files.ServeHTTP(w, r)
	})
}
