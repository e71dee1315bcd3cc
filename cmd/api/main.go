package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/config"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/handler"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/middleware"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/repository"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/service"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, repo, repo, repo, logger, cfg)
	h := handler.NewHandler(svc)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/forecasts", h.GenerateForecast).Methods("POST")
	authRouter.HandleFunc("/forecasts", h.ListForecasts).Methods("GET")
	authRouter.HandleFunc("/forecasts/summary", h.GetSummary).Methods("GET")
	authRouter.HandleFunc("/forecasts/accuracy", h.UpdateAccuracy).Methods("POST")
	authRouter.HandleFunc("/forecasts/{id}", h.GetForecast).Methods("GET")

	// Scheduled accuracy sweep over all users with active forecasts
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.AccuracySchedule, func() {
		svc.RefreshAllForecastAccuracy(context.Background())
	}); err != nil {
		logger.Fatalf("Failed to schedule accuracy sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
