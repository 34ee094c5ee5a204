package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"demoday/config"
	"demoday/internal/adapters/auth"
	"demoday/internal/adapters/email"
	delivery "demoday/internal/delivery/http"
	"demoday/internal/delivery/http/controllers"
	"demoday/internal/delivery/http/middleware"
	"demoday/internal/monitoring"
	"demoday/internal/repository/postgres"
	redisrepo "demoday/internal/repository/redis"
	"demoday/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title Demo Day API
// @version 1.0
// @description Backend for demo day events: submissions, awards, and the live presentation flow.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	redisClient, err := redisrepo.NewClient(cfg.RedisURL)
	if err != nil {
		logger.Error("connect redis", "err", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	monitoring.Register()

	eventRepo := postgres.NewEventRepository(db)
	demoRepo := postgres.NewDemoRepository(db)
	liveState := redisrepo.NewLiveStateStore(redisClient)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	issuer, verifier := auth.NewJWTTokens(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(10)

	eventService := services.NewEventService(eventRepo, liveState, serviceTimeout)
	submissionService := services.NewSubmissionService(eventRepo, demoRepo, emailService, serviceTimeout)
	authService := services.NewAuthService(hasher, issuer, cfg.AdminPasswordHash, cfg.AdminPasswordSalt, cfg.TokenTTL)

	mux := delivery.NewRouter(
		controllers.NewEventController(logger, eventService),
		controllers.NewLiveController(logger, eventService),
		controllers.NewSubmissionController(logger, submissionService),
		controllers.NewAuthController(logger, authService),
		verifier,
	)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
