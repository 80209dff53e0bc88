package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	catalogapp "github.com/foodcrm/backend/internal/application/catalog"
	crmapp "github.com/foodcrm/backend/internal/application/crm"
	identityapp "github.com/foodcrm/backend/internal/application/identity"
	mailapp "github.com/foodcrm/backend/internal/application/mail"
	partnerapp "github.com/foodcrm/backend/internal/application/partner"
	printingapp "github.com/foodcrm/backend/internal/application/printing"
	tradeapp "github.com/foodcrm/backend/internal/application/trade"
	"github.com/foodcrm/backend/internal/infrastructure/auth"
	"github.com/foodcrm/backend/internal/infrastructure/cache"
	"github.com/foodcrm/backend/internal/infrastructure/config"
	"github.com/foodcrm/backend/internal/infrastructure/logger"
	"github.com/foodcrm/backend/internal/infrastructure/mailer"
	"github.com/foodcrm/backend/internal/infrastructure/mailsync"
	"github.com/foodcrm/backend/internal/infrastructure/persistence"
	"github.com/foodcrm/backend/internal/infrastructure/printing"
	"github.com/foodcrm/backend/internal/infrastructure/scheduler"
	"github.com/foodcrm/backend/internal/infrastructure/storage"
	"github.com/foodcrm/backend/internal/infrastructure/telemetry"
	"github.com/foodcrm/backend/internal/interfaces/http/handler"
	"github.com/foodcrm/backend/internal/interfaces/http/middleware"
	"github.com/foodcrm/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("version", version),
		zap.String("env", cfg.App.Env),
	)

	ctx := context.Background()

	// Telemetry providers. Each no-ops when cfg.Telemetry.Enabled is
	// false, so the wiring below stays unconditional.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize meter provider", zap.Error(err))
	}

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize log provider", zap.Error(err))
	}

	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          parseZapLevel(cfg.Log.Level),
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore)
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingEndpoint,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("failed to enable span profiles", zap.Error(err))
		}
	}

	var bizMetrics *telemetry.BusinessMetrics
	if meterProvider.IsEnabled() {
		bizMetrics, err = telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:  meterProvider.Meter("foodcrm"),
			Logger: log,
		})
		if err != nil {
			log.Fatal("failed to initialize business metrics", zap.Error(err))
		}
	}

	// Database
	gormLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, logger.NewGormLogger(log, gormLevel))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if tracerProvider.IsEnabled() {
		if err := db.EnableTracing(); err != nil {
			log.Warn("failed to enable database tracing", zap.Error(err))
		}
	}

	// Repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	dealRepo := persistence.NewGormDealRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	priceListRepo := persistence.NewGormPriceListRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	poRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	messageRepo := persistence.NewGormEmailRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	registrationRepo := persistence.NewGormRegistrationRepository(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, tenantRepo, registrationRepo, jwtService, log)
	companyService := partnerapp.NewCompanyService(companyRepo)
	contactService := partnerapp.NewContactService(contactRepo, companyRepo)
	dealService := crmapp.NewDealService(dealRepo, companyRepo, contactRepo, bizMetrics)
	activityService := crmapp.NewActivityService(activityRepo)
	itemService := catalogapp.NewItemService(itemRepo)
	priceListService := catalogapp.NewPriceListService(priceListRepo, itemRepo)
	quoteService := tradeapp.NewQuoteService(quoteRepo, companyRepo, contactRepo)
	poService := tradeapp.NewPurchaseOrderService(poRepo, companyRepo)

	// PDF export
	templateEngine, err := printing.NewTemplateEngine()
	if err != nil {
		log.Fatal("failed to load document templates", zap.Error(err))
	}
	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.Printing.RenderTimeout,
		ChromePath:     cfg.Printing.ChromePath,
		NoSandbox:      true,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("failed to initialize PDF renderer", zap.Error(err))
	}
	defer renderer.Close()

	var archive printingapp.ArchiveStorage
	if cfg.Storage.Enabled {
		s3Archive, err := storage.NewS3ArchiveStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("failed to initialize archive storage", zap.Error(err))
		}
		if err := s3Archive.EnsureBucket(ctx); err != nil {
			log.Fatal("failed to ensure archive bucket", zap.Error(err))
		}
		archive = s3Archive
	} else {
		archive = storage.NewStubArchiveStorage()
	}
	exportService := printingapp.NewExportService(
		quoteRepo, poRepo, companyRepo,
		templateEngine, renderer, archive, cfg.Printing.ArchivePDFs,
		bizMetrics, log,
	)

	// Outbound mail
	sender := mailer.NewSMTPSender(cfg.SMTP, log)
	emailService := mailapp.NewEmailService(messageRepo, sender, bizMetrics)

	// Inbound mail ingestion
	var mailScheduler *scheduler.MailSyncScheduler
	if cfg.IMAP.Enabled {
		syncTenantID, err := uuid.Parse(cfg.IMAP.TenantID)
		if err != nil {
			log.Fatal("invalid imap tenant id", zap.String("tenant_id", cfg.IMAP.TenantID), zap.Error(err))
		}

		dedup := cache.NewDedupStore(cfg.Redis, log)
		defer dedup.Close()

		syncCfg := mailapp.DefaultSyncConfig(syncTenantID)
		if cfg.IMAP.BatchSize > 0 {
			syncCfg.BatchSize = cfg.IMAP.BatchSize
		}
		fetcher := mailsync.NewIMAPFetcher(cfg.IMAP, log)
		syncService, err := mailapp.NewSyncService(syncCfg, fetcher, messageRepo, companyRepo, dedup, bizMetrics, log)
		if err != nil {
			log.Fatal("failed to initialize mail sync", zap.Error(err))
		}

		schedCfg := scheduler.DefaultMailSyncSchedulerConfig()
		if cfg.IMAP.PollSchedule != "" {
			schedCfg.PollSchedule = cfg.IMAP.PollSchedule
		}
		mailScheduler, err = scheduler.NewMailSyncScheduler(schedCfg, syncService, log)
		if err != nil {
			log.Fatal("failed to initialize mail sync scheduler", zap.Error(err))
		}
		if err := mailScheduler.Start(ctx); err != nil {
			log.Fatal("failed to start mail sync scheduler", zap.Error(err))
		}
		log.Info("mail sync scheduler started",
			zap.String("schedule", schedCfg.PollSchedule),
			zap.String("mailbox", cfg.IMAP.Mailbox),
		)
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("failed to set trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins

	router.Setup(engine, router.Config{
		JWTService:     jwtService,
		Logger:         log,
		CORS:           corsCfg,
		TracingEnabled: tracerProvider.IsEnabled(),
		ServiceName:    cfg.Telemetry.ServiceName,
	}, router.Handlers{
		System:         handler.NewSystemHandler(db, version),
		Auth:           handler.NewAuthHandler(authService),
		Companies:      handler.NewCompanyHandler(companyService),
		Contacts:       handler.NewContactHandler(contactService),
		Deals:          handler.NewDealHandler(dealService),
		Activities:     handler.NewActivityHandler(activityService),
		Items:          handler.NewItemHandler(itemService),
		PriceLists:     handler.NewPriceListHandler(priceListService),
		Quotes:         handler.NewQuoteHandler(quoteService, exportService),
		PurchaseOrders: handler.NewPurchaseOrderHandler(poService, exportService),
		Emails:         handler.NewEmailHandler(emailService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
	if mailScheduler != nil {
		if err := mailScheduler.Stop(shutdownCtx); err != nil {
			log.Error("mail sync scheduler shutdown failed", zap.Error(err))
		}
	}
	if err := profiler.Stop(); err != nil {
		log.Error("profiler shutdown failed", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("log provider shutdown failed", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("meter provider shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("tracer provider shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}

func parseZapLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return parsed
}
