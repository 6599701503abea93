// Package main provides the entry point for the Dealbies affiliate backend.
//
//	@title			Dealbies API
//	@version		1.0.0
//	@description	Deal and coupon listings, voting, affiliate redirects and click analytics.
//	@termsOfService	https://dealbies.com/terms/
//
//	@contact.name	Dealbies Support
//	@contact.email	support@dealbies.com
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Authorization header. Format: "Bearer {token}"
package main

import (
	"Dealbies-Backend/internal/affiliate"
	"Dealbies-Backend/internal/analytics"
	"Dealbies-Backend/internal/auth"
	"Dealbies-Backend/internal/config"
	"Dealbies-Backend/internal/database"
	httpHandler "Dealbies-Backend/internal/handler/http"
	"Dealbies-Backend/internal/repository/postgres"
	"Dealbies-Backend/internal/service"
	"Dealbies-Backend/pkg/logger"
	"Dealbies-Backend/pkg/useragent"
	"context"
	"errors"
	lg "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "Dealbies-Backend/docs" // Import swagger docs
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	defer func() {
		if err := log.Sync(); err != nil {
			lg.Printf("ERROR: failed to sync zap logger: %v\n", err)
		}
	}()

	log.Info("starting Dealbies backend", zap.String("env", cfg.Env))

	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, log); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		log.Info("running database migrations (auto_migrate: true)")
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	} else {
		log.Info("skipping database migrations (auto_migrate: false)")
	}

	if cfg.Database.SeedData {
		log.Info("seeding database with initial data (seed_data: true)")
		if err := database.SeedData(db, log); err != nil {
			log.Fatal("failed to seed database", zap.Error(err))
		}
	} else {
		log.Info("skipping database seeding (seed_data: false)")
	}

	// Парсер User-Agent не обязателен, без него тип устройства угадывается по ключевым словам
	uaParser, err := useragent.NewParser(cfg.UserAgent.RegexesPath, log)
	if err != nil {
		log.Warn("failed to initialize User-Agent parser, using fallback", zap.Error(err))
		uaParser = nil
	}

	storage := postgres.New(db, log)
	tracker := service.NewClickTracker(storage, uaParser, log)

	// Клики пишутся синхронно либо через очередь воркеров
	var recorder service.ClickRecorder = tracker
	var processor *analytics.Processor
	if cfg.Analytics.Async {
		processor = analytics.NewProcessor(tracker, log, analytics.ConfigFrom(cfg.Analytics, cfg.HTTPServer.ShutdownTimeout))
		if err := processor.Start(); err != nil {
			log.Fatal("failed to start click processor", zap.Error(err))
		}
		recorder = processor
	}

	redirector := service.NewRedirector(storage, affiliate.DefaultRules(cfg.Affiliate), recorder, log)
	offerService := service.NewOfferService(storage, log)
	voteService := service.NewVoteService(storage, log)
	analyticsService := service.NewAnalyticsService(storage, tracker, log)

	jwtService := auth.NewJWTService(&auth.JWTConfig{
		SecretKey:           []byte(cfg.Auth.JWTSecret),
		AccessTokenDuration: 24 * time.Hour,
		Issuer:              cfg.Auth.Issuer,
	})
	authMiddleware := auth.NewMiddleware(jwtService, cfg.Auth.SessionCookie, cfg.HTTPServer.AllowedOrigins, log)

	deps := httpHandler.Dependencies{
		Redirector: redirector,
		Offers:     offerService,
		Votes:      voteService,
		Analytics:  analyticsService,
		Settings:   storage,
		Storage:    storage,
	}
	if processor != nil {
		deps.Stats = processor
	}

	httpAPIServer := httpHandler.NewServer(
		deps,
		authMiddleware,
		httpHandler.NewIPRateLimiter(cfg.Analytics.IngestRPS, cfg.Analytics.IngestBurst, cfg.HTTPServer.TrustProxyHeaders),
		log,
	)

	server := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      httpAPIServer.SetupRoutes(),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	log.Info("starting HTTP server", zap.String("address", cfg.HTTPServer.Address))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down Dealbies backend...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown HTTP server", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	// Очередь дописывается после остановки сервера, новых кликов уже не будет
	if processor != nil {
		if err := processor.Stop(); err != nil {
			log.Error("failed to stop click processor", zap.Error(err))
		}
	}
}
