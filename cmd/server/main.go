package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JAOCruz/nayib/config"
	"github.com/JAOCruz/nayib/internal/api"
	"github.com/JAOCruz/nayib/internal/catalog"
	"github.com/JAOCruz/nayib/internal/contact"
	"github.com/JAOCruz/nayib/internal/database"
	"github.com/JAOCruz/nayib/internal/models"
	"github.com/JAOCruz/nayib/internal/processor"
	"github.com/JAOCruz/nayib/internal/queue"
	"github.com/JAOCruz/nayib/internal/telegram"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.WithError(err).Warnf("Unknown log level %q, using info", cfg.Server.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if level < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	// Catalog candidates, remote first and the local copy last
	pageURL, err := url.JoinPath(cfg.Site.Origin, cfg.Site.PagePath)
	if err != nil {
		logger.WithError(err).Fatal("Invalid site origin")
	}
	sources, err := catalog.DefaultSources(pageURL, cfg.Catalog.Path, &http.Client{Timeout: cfg.Catalog.FetchTimeout})
	if err != nil {
		logger.WithError(err).Fatal("Failed to build catalog sources")
	}
	if cfg.Catalog.File != "" {
		sources = append(sources, catalog.FileSource{Path: cfg.Catalog.File})
	}
	loader := catalog.NewLoader(sources, cfg.Catalog.FetchTimeout, logger)
	logger.WithField("sources", loader.Sources()).Info("Catalog sources configured")

	cdn, err := config.LoadCDNConfig(cfg.CDN.ConfigPath)
	if err != nil {
		if errors.Is(err, config.ErrDuplicateKey) || errors.Is(err, config.ErrInvalidProperty) {
			logger.WithError(err).Fatal("Invalid CDN configuration")
		}
		logger.WithError(err).Warn("CDN configuration unavailable, galleries fall back to listing images")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}
	if count, err := db.CountInquiries(""); err == nil {
		logger.WithField("inquiries", count).Info("Inquiry store ready")
	}

	var notifier processor.Notifier
	if cfg.TelegramEnabled() {
		telegramService := telegram.NewService(&models.TelegramConfig{
			IsEnabled: true,
			BotToken:  cfg.Telegram.BotToken,
			ChatID:    cfg.Telegram.ChatID,
			APIURL:    cfg.Telegram.APIURL,
		}, logger)
		telegramService.SetFilters(cfg.TelegramFilters())
		notifier = telegramService
		logger.WithFields(logrus.Fields{
			"form_types":     cfg.Telegram.FormTypes,
			"delivered_only": cfg.Telegram.DeliveredOnly,
		}).Info("Telegram notifications enabled")
	}

	// Inquiry pipeline: queue -> batch processor -> sqlite
	inquiries := queue.NewInquiryQueue(cfg.BatchProcessing.QueueSize, cfg.BatchProcessing.MaxBatchSize, cfg.BatchWait(), logger)
	batchProcessor := processor.NewBatchProcessor(db.GetDB(), inquiries, notifier, cfg, logger)
	batchProcessor.Start()
	inquiries.Start()

	relay := contact.NewRelay(cfg.Contact.Endpoint, cfg.Contact.Timeout, logger)
	contactService := contact.NewService(relay, inquiries, logger)

	handler := api.NewHandler(loader, cdn, contactService, db, cfg.Catalog.SolaresPageSize, logger)
	router := api.NewRouter(cfg.Server.CORSAllowedOrigins, logger)
	api.SetupRoutes(router, handler, cfg.Database.InquiriesAPIToken)
	if cfg.Database.InquiriesAPIToken == "" {
		logger.Info("Inquiry read-back route disabled, set INQUIRIES_API_TOKEN to enable it")
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}

	// Drain the queue before the processor stops retrying
	if err := inquiries.Close(); err != nil {
		logger.WithError(err).Error("Failed to close inquiry queue")
	}
	batchProcessor.Stop()
	logger.Info("Server stopped")
}
