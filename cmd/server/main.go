package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	assignmentapp "github.com/lensflow/backend/internal/application/assignment"
	attendanceapp "github.com/lensflow/backend/internal/application/attendance"
	billingapp "github.com/lensflow/backend/internal/application/billing"
	bookingapp "github.com/lensflow/backend/internal/application/booking"
	clientapp "github.com/lensflow/backend/internal/application/client"
	financeapp "github.com/lensflow/backend/internal/application/finance"
	identityapp "github.com/lensflow/backend/internal/application/identity"
	messagingapp "github.com/lensflow/backend/internal/application/messaging"
	orgapp "github.com/lensflow/backend/internal/application/org"
	"github.com/lensflow/backend/internal/infrastructure/auth"
	"github.com/lensflow/backend/internal/infrastructure/config"
	"github.com/lensflow/backend/internal/infrastructure/logger"
	"github.com/lensflow/backend/internal/infrastructure/persistence"
	"github.com/lensflow/backend/internal/infrastructure/scheduler"
	"github.com/lensflow/backend/internal/interfaces/http/handler"
	"github.com/lensflow/backend/internal/interfaces/http/middleware"
	"github.com/lensflow/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting LensFlow Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	staffRepo := persistence.NewGormStaffRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	quotationRepo := persistence.NewGormQuotationRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	dailyExpenseRepo := persistence.NewGormDailyExpenseRepository(db.DB)
	fixedExpenseRepo := persistence.NewGormFixedExpenseRepository(db.DB)
	loanRepo := persistence.NewGormLoanRepository(db.DB)
	advanceRepo := persistence.NewGormAdvanceRepository(db.DB)
	attendanceRepo := persistence.NewGormAttendanceRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// Token infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := blacklist.Close(); err != nil {
			log.Error("Error closing Redis connection", zap.Error(err))
		}
	}()

	// Initialize application services
	statsService := orgapp.NewBranchStatsService(branchRepo, staffRepo, invoiceRepo, quotationRepo, bookingRepo, log)
	branchService := orgapp.NewBranchService(branchRepo)
	staffService := orgapp.NewStaffService(staffRepo, branchRepo, statsService, log)
	clientService := clientapp.NewService(clientRepo)

	// Outbound messaging: notifications are written through the smart-link
	// pipeline and delivered by the configured sender
	sender := messagingapp.NewLogSender(log)
	notificationService := messagingapp.NewNotificationService(
		notificationRepo, clientRepo, bookingRepo, invoiceRepo, quotationRepo,
		sender, cfg.Messaging, log,
	)

	assignmentService := assignmentapp.NewService(bookingRepo, taskRepo, staffRepo, notificationService, log)
	taskService := assignmentapp.NewTaskService(taskRepo, staffRepo)
	bookingService := bookingapp.NewService(bookingRepo, clientRepo, assignmentService, notificationService, log)
	quotationService := billingapp.NewQuotationService(quotationRepo, bookingRepo, notificationService, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, bookingRepo)

	expenseService := financeapp.NewExpenseService(expenseRepo)
	dailyExpenseService := financeapp.NewDailyExpenseService(dailyExpenseRepo)
	fixedExpenseService := financeapp.NewFixedExpenseService(fixedExpenseRepo)
	loanService := financeapp.NewLoanService(loanRepo)
	advanceService := financeapp.NewAdvanceService(advanceRepo)
	analyticsService := financeapp.NewAnalyticsService(expenseRepo, dailyExpenseRepo, bookingRepo)

	attendanceService := attendanceapp.NewService(attendanceRepo, staffRepo)

	authService := identityapp.NewAuthService(userRepo, companyRepo, jwtService, blacklist, identityapp.DefaultAuthConfig(), log)
	userService := identityapp.NewUserService(userRepo, log)

	// Background sweeps: pending notification delivery, daily reminders,
	// link cleanup and branch revenue refresh
	if cfg.Scheduler.Enabled {
		schedulerConfig := scheduler.DefaultSchedulerConfig()
		schedulerConfig.Enabled = true
		if cfg.Scheduler.WorkerCount > 0 {
			schedulerConfig.WorkerCount = cfg.Scheduler.WorkerCount
		}
		if cfg.Scheduler.JobTimeout > 0 {
			schedulerConfig.JobTimeout = cfg.Scheduler.JobTimeout
		}

		executor := scheduler.NewSweepExecutor(notificationService, statsService, log)
		sweepScheduler := scheduler.NewScheduler(schedulerConfig, executor, log)
		if err := sweepScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := sweepScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()

		triggerConfig := scheduler.DefaultCronTriggerConfig()
		triggerConfig.PendingSweepInterval = cfg.Scheduler.PendingSweepInterval
		if h, m, err := scheduler.ParseClockTime(cfg.Scheduler.AppointmentReminderTime, triggerConfig.AppointmentReminderHour, triggerConfig.AppointmentReminderMinute); err != nil {
			log.Warn("Invalid appointment reminder time, using default", zap.String("value", cfg.Scheduler.AppointmentReminderTime))
		} else {
			triggerConfig.AppointmentReminderHour = h
			triggerConfig.AppointmentReminderMinute = m
		}
		if h, m, err := scheduler.ParseClockTime(cfg.Scheduler.PaymentReminderTime, triggerConfig.PaymentReminderHour, triggerConfig.PaymentReminderMinute); err != nil {
			log.Warn("Invalid payment reminder time, using default", zap.String("value", cfg.Scheduler.PaymentReminderTime))
		} else {
			triggerConfig.PaymentReminderHour = h
			triggerConfig.PaymentReminderMinute = m
		}
		if h, m, err := scheduler.ParseClockTime(cfg.Scheduler.LinkCleanupTime, triggerConfig.LinkCleanupHour, triggerConfig.LinkCleanupMinute); err != nil {
			log.Warn("Invalid link cleanup time, using default", zap.String("value", cfg.Scheduler.LinkCleanupTime))
		} else {
			triggerConfig.LinkCleanupHour = h
			triggerConfig.LinkCleanupMinute = m
		}

		cronTrigger := scheduler.NewCronTrigger(triggerConfig, sweepScheduler, log)
		if err := cronTrigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start cron trigger", zap.Error(err))
		}
		defer func() {
			if err := cronTrigger.Stop(context.Background()); err != nil {
				log.Error("Error stopping cron trigger", zap.Error(err))
			}
		}()
		log.Info("Scheduler started",
			zap.Int("workers", schedulerConfig.WorkerCount),
			zap.Duration("pending_sweep_interval", triggerConfig.PendingSweepInterval),
		)
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	branchHandler := handler.NewBranchHandler(branchService, statsService)
	staffHandler := handler.NewStaffHandler(staffService)
	clientHandler := handler.NewClientHandler(clientService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	taskHandler := handler.NewTaskHandler(taskService, assignmentService)
	quotationHandler := handler.NewQuotationHandler(quotationService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	financeHandler := handler.NewFinanceHandler(expenseService, dailyExpenseService, fixedExpenseService, loanService, advanceService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	linkHandler := handler.NewLinkHandler(notificationService)
	systemHandler := handler.NewSystemHandler(db.DB)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// JWT authentication on the API group; registration, login, refresh,
	// probes and public smart-link routes are skipped
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	r.Register(systemHandler).
		Register(authHandler).
		Register(userHandler).
		Register(branchHandler).
		Register(staffHandler).
		Register(clientHandler).
		Register(bookingHandler).
		Register(taskHandler).
		Register(quotationHandler).
		Register(invoiceHandler).
		Register(financeHandler).
		Register(analyticsHandler).
		Register(attendanceHandler).
		Register(notificationHandler).
		Register(linkHandler)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
