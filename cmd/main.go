package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/okaradag/garagelog/internal/auth"
	"github.com/okaradag/garagelog/internal/config"
	"github.com/okaradag/garagelog/internal/db"
	"github.com/okaradag/garagelog/internal/handlers"
	"github.com/okaradag/garagelog/internal/middleware"
	"github.com/okaradag/garagelog/internal/session"
	"github.com/okaradag/garagelog/internal/telemetry"
)

const (
	rateLimitRequests = 100
	rateLimitWindow   = 60 // seconds
	shutdownTimeout   = 10 * time.Second
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg)

	client, err := db.Connect(cfg.MongoURI)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.WithError(err).Warn("mongo disconnect failed")
		}
	}()
	logger.WithField("database", cfg.MongoDB).Info("connected to MongoDB")

	database := client.Database(cfg.MongoDB)
	vehicles := &db.MongoVehicleCollection{Collection: database.Collection("vehicles")}
	expenses := &db.MongoExpenseCollection{Collection: database.Collection("expenses")}
	maintenance := &db.MongoMaintenanceCollection{Collection: database.Collection("maintenance")}
	fuel := &db.MongoFuelCollection{Collection: database.Collection("fuel_entries")}
	users := &db.MongoUserCollection{Collection: database.Collection("users")}

	sessions := newSessionStore(cfg, logger)
	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)

	authHandler := handlers.NewAuthHandler(authService, users, sessions)
	vehicleHandler := handlers.NewVehicleHandler(vehicles)
	expenseHandler := handlers.NewExpenseHandler(expenses, vehicles)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenance, vehicles)
	fuelHandler := handlers.NewFuelHandler(fuel, vehicles)
	analyticsHandler := handlers.NewAnalyticsHandler(vehicles, expenses, maintenance, fuel)

	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("GET /api/auth/profile", authHandler.GetProfile)

	// Vehicles
	mux.HandleFunc("GET /api/vehicles", vehicleHandler.List)
	mux.HandleFunc("POST /api/vehicles", vehicleHandler.Create)
	mux.HandleFunc("GET /api/vehicles/{id}", vehicleHandler.Get)
	mux.HandleFunc("PUT /api/vehicles/{id}", vehicleHandler.Update)
	mux.HandleFunc("DELETE /api/vehicles/{id}", vehicleHandler.Delete)

	// Per-vehicle derived views
	mux.HandleFunc("GET /api/vehicles/{id}/schedule", analyticsHandler.Schedule)
	mux.HandleFunc("GET /api/vehicles/{id}/valuation", analyticsHandler.Valuation)
	mux.HandleFunc("GET /api/vehicles/{id}/analytics/expenses", analyticsHandler.ExpenseAnalytics)
	mux.HandleFunc("GET /api/vehicles/{id}/analytics/fuel", analyticsHandler.FuelAnalytics)
	mux.HandleFunc("GET /api/vehicles/{id}/kpis", analyticsHandler.KPIs)
	mux.HandleFunc("GET /api/vehicles/{id}/insights", analyticsHandler.Insights)

	// Expenses
	mux.HandleFunc("GET /api/expenses", expenseHandler.List)
	mux.HandleFunc("POST /api/expenses", expenseHandler.Create)
	mux.HandleFunc("GET /api/expenses/{id}", expenseHandler.Get)
	mux.HandleFunc("PUT /api/expenses/{id}", expenseHandler.Update)
	mux.HandleFunc("DELETE /api/expenses/{id}", expenseHandler.Delete)

	// Maintenance
	mux.HandleFunc("GET /api/maintenance", maintenanceHandler.List)
	mux.HandleFunc("POST /api/maintenance", maintenanceHandler.Create)
	mux.HandleFunc("GET /api/maintenance/{id}", maintenanceHandler.Get)
	mux.HandleFunc("PUT /api/maintenance/{id}", maintenanceHandler.Update)
	mux.HandleFunc("DELETE /api/maintenance/{id}", maintenanceHandler.Delete)

	// Fuel
	mux.HandleFunc("GET /api/fuel", fuelHandler.List)
	mux.HandleFunc("POST /api/fuel", fuelHandler.Create)
	mux.HandleFunc("GET /api/fuel/{id}", fuelHandler.Get)
	mux.HandleFunc("PUT /api/fuel/{id}", fuelHandler.Update)
	mux.HandleFunc("DELETE /api/fuel/{id}", fuelHandler.Delete)

	mux.HandleFunc("GET /health", healthHandler(client))

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()
	handler := middleware.RequestLogger(logger)(
		rateLimiter.RateLimit(rateLimitRequests, rateLimitWindow)(
			authMiddleware.Authenticate(mux),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// The odometer feed is optional; the API works without it
	var ingestor *telemetry.Ingestor
	if cfg.MQTTBroker != "" {
		ingestor = telemetry.NewIngestor(vehicles, logger)
		if err := ingestor.Start(cfg.MQTTBroker, cfg.MQTTTopic); err != nil {
			logger.WithError(err).Warn("odometer feed unavailable")
			ingestor = nil
		}
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.WithError(err).Error("server error")
		return
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("shutting down")
	}

	if ingestor != nil {
		ingestor.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("server shutdown failed")
	}
	logger.Info("server exited")
}

// newLogger builds the process logger from config. An unparseable level
// falls back to info rather than failing startup.
func newLogger(cfg config.Config) *log.Logger {
	logger := log.New()
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	if cfg.LogJSON {
		logger.SetFormatter(&log.JSONFormatter{})
	}
	return logger
}

// newSessionStore picks Redis when configured, otherwise an in-memory map.
// Memory means refresh tokens die with the process; fine for development.
func newSessionStore(cfg config.Config, logger *log.Logger) session.Store {
	if cfg.RedisAddr == "" {
		logger.Info("refresh tokens held in memory")
		return session.NewMemoryStore(cfg.RefreshTokenTTL)
	}

	store := session.NewRedisStore(cfg.RedisAddr, cfg.RefreshTokenTTL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		logger.WithError(err).Fatal("failed to connect to Redis")
	}
	logger.WithField("addr", cfg.RedisAddr).Info("refresh tokens held in Redis")
	return store
}

// healthHandler reports liveness, checking the database on each probe.
func healthHandler(client *mongo.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"status": "ok"}
		code := http.StatusOK
		if err := client.Ping(ctx, nil); err != nil {
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(status)
	}
}
