package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-attendance-sheet/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/repository/postgresql"
	serviceReport "github.com/cmlabs-hris/hris-attendance-sheet/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(cfg.App)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var fileStorage storage.FileStorage
	var storageDir string
	switch cfg.Storage.Type {
	case "local":
		local, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			slog.Error("Failed to initialize local storage", "error", err)
			os.Exit(1)
		}
		fileStorage = local
		storageDir = cfg.Storage.BasePath
	case "s3":
		s3, err := storage.NewS3Storage(context.Background(), storage.S3Options{
			Bucket:    cfg.Storage.S3.Bucket,
			Region:    cfg.Storage.S3.Region,
			Endpoint:  cfg.Storage.S3.Endpoint,
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
		})
		if err != nil {
			slog.Error("Failed to initialize s3 storage", "error", err)
			os.Exit(1)
		}
		fileStorage = s3
	default:
		slog.Error("Unsupported storage type", "type", cfg.Storage.Type)
		os.Exit(1)
	}

	reportRepo := postgresql.NewReportRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	reportService := serviceReport.NewReportService(reportRepo, fileStorage, cfg.Report.ExportURLExpiry)

	reportHandler := appHTTP.NewReportHandler(reportService)

	router := appHTTP.NewRouter(logger, JWTService, reportHandler, appHTTP.RouterOptions{
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		StorageDir:     storageDir,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Server running", "addr", "http://localhost"+port, "storage", cfg.Storage.Type)
	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
