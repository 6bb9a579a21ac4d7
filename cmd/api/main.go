package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/corebank/finance-service/internal/config"
	"github.com/corebank/finance-service/internal/handler"
	"github.com/corebank/finance-service/internal/integrations/rates"
	"github.com/corebank/finance-service/internal/middleware"
	"github.com/corebank/finance-service/internal/models"
	"github.com/corebank/finance-service/internal/repository"
	"github.com/corebank/finance-service/internal/service"
	"github.com/corebank/finance-service/internal/utils/email"
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
	authSvc := service.NewAuthService(repo, logger, cfg.JWTSecret)
	cardSvc := service.NewDebitCardService(repo, logger, cfg.CardBIN)
	txnSvc := service.NewDebitCardTransactionService(repo, logger)
	loanSvc := service.NewLoanService(repo, logger)
	ratesClient := rates.NewClient(cfg, logger)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))

	// Public routes
	handler.NewAuthHandler(authSvc, logger).RegisterRoutes(r)
	r.HandleFunc("/exchange-rates", func(w http.ResponseWriter, r *http.Request) {
		daily, err := ratesClient.GetDailyRates(models.TransactionCurrencies)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get exchange rates: %v", err), http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(daily)
	}).Methods("GET")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg.JWTSecret, logger))
	handler.NewDebitCardHandler(cardSvc, logger).RegisterRoutes(authRouter)
	handler.NewDebitCardTransactionHandler(txnSvc, logger).RegisterRoutes(authRouter)
	handler.NewLoanHandler(loanSvc, logger).RegisterRoutes(authRouter)

	// Repayment reminder job
	sender := email.NewSender(cfg, logger)
	reminder := service.NewReminderJob(repo, sender, logger)
	c := cron.New()
	if _, err := c.AddJob(cfg.ReminderCron, reminder); err != nil {
		logger.Fatalf("Failed to schedule reminder job: %v", err)
	}
	c.Start()
	defer c.Stop()

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
