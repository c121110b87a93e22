package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/influencer-hub/dashboard-backend/shared/monitoring"
	"github.com/influencer-hub/dashboard-backend/shared/utils"
	v1 "github.com/influencer-hub/dashboard-backend/v1"
	v1handlers "github.com/influencer-hub/dashboard-backend/v1/handlers"
	v1middleware "github.com/influencer-hub/dashboard-backend/v1/middleware"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting Dashboard Backend initialization")

	// Initialize GORM database connection
	dbConfig := v1.NewDatabaseConfig()
	gormDB, err := v1.ConnectGormDB(dbConfig)
	if err != nil {
		slog.Error("Failed to connect to GORM database", "error", err)
		os.Exit(1)
	}

	if err := v1.MigrateDB(gormDB); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Initialize metrics
	ctx := context.Background()
	metricsShutdown, err := monitoring.Setup(ctx, monitoring.Config{
		ServiceName: "dashboard-backend",
	})
	if err != nil {
		slog.Error("Failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Initialize V1 handlers
	v1Handler, err := v1handlers.NewV1Handler(gormDB)
	if err != nil {
		slog.Error("Failed to initialize V1 handler", "error", err)
		os.Exit(1)
	}

	// Create a mux for API routes
	apiMux := http.NewServeMux()
	v1Handler.SetupV1Routes(apiMux) // All /api/v1/... routes go here

	// Apply middleware chain (CORS -> metrics) to the API mux
	corsMiddleware := v1middleware.NewCORSMiddleware()
	apiHandler := corsMiddleware(monitoring.HTTPMetricsMiddleware(apiMux))

	// Create the top-level mux for all incoming traffic
	topLevelMux := http.NewServeMux()

	topLevelMux.Handle("/health", utils.PanicRecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		type DBHealth struct {
			Status   string `json:"status"`
			Error    string `json:"error,omitempty"`
			Database string `json:"database,omitempty"`
		}
		type HealthStatus struct {
			Status   string   `json:"status"`
			Service  string   `json:"service"`
			Database DBHealth `json:"database"`
		}

		status := HealthStatus{
			Status:   "healthy",
			Service:  "dashboard-backend",
			Database: DBHealth{Status: "unknown"},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		sqlDB, err := gormDB.DB()
		if err != nil {
			status.Database = DBHealth{Status: "unhealthy", Error: fmt.Sprintf("failed to get sql.DB: %v", err)}
			status.Status = "unhealthy"
		} else if err := sqlDB.PingContext(ctx); err != nil {
			status.Database = DBHealth{Status: "unhealthy", Error: err.Error()}
			status.Status = "unhealthy"
		} else {
			status.Database = DBHealth{Status: "healthy", Database: dbConfig.Database}
		}

		statusCode := http.StatusOK
		if status.Status != "healthy" {
			statusCode = http.StatusServiceUnavailable
		}

		utils.RespondWithJSON(w, statusCode, status)
	})))

	topLevelMux.Handle("/metrics", monitoring.Handler())
	topLevelMux.Handle("/api/v1/", apiHandler)

	// Start server
	serverConfig := utils.DefaultServerConfig()
	server := utils.CreateServer(serverConfig, topLevelMux)

	if err := utils.StartServerWithGracefulShutdown(server, "dashboard-backend"); err != nil {
		os.Exit(1)
	}

	// Flush metrics and close the database connection on the way out
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsShutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shut down metrics", "error", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}

	slog.Info("Dashboard Backend exited")
}
