package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/api"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/config"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/database"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/logging"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/morningstar"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/repository"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/scheduler"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})
	logging.SetGlobalLogger(logger)

	// Open database connection and run migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	log.Info().Str("path", cfg.Database.Path).Msg("Connected to database")

	// Create repositories
	positionRepo := repository.NewPositionRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	settingRepo, err := repository.NewSettingRepository(db, cfg.Database.FernetKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize settings repository")
	}

	// Create the market data client. A stored vendor token takes effect on
	// the next restart.
	settingService := service.NewSettingService(settingRepo)
	var clientOpts []morningstar.Option
	if token, err := settingService.VendorToken(); err == nil && token != "" {
		clientOpts = append(clientOpts, morningstar.WithToken(token))
	}
	market := morningstar.NewClient(cfg.Market.BaseURL, clientOpts...)

	// Create services
	systemService := service.NewSystemService(db)
	positionService := service.NewPositionService(positionRepo)
	accountService := service.NewAccountService(db, accountRepo, positionRepo)
	fundService := service.NewFundService(positionRepo, market)
	refreshService := service.NewRefreshService(positionRepo, market, cfg.Refresh.Concurrency)

	// Create router
	router := api.NewRouter(api.Services{
		System:   systemService,
		Position: positionService,
		Account:  accountService,
		Fund:     fundService,
		Refresh:  refreshService,
		Setting:  settingService,
	}, cfg)

	// Schedule the background NAV refresh
	sched := scheduler.New(logger)
	if cfg.Refresh.CronSchedule != "" {
		if err := sched.AddJob(cfg.Refresh.CronSchedule, refreshService); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule NAV refresh")
		}
	}
	sched.Start()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	sched.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
