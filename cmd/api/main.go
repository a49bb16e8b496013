package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	_ "github.com/receiptwise/receiptwise-backend/docs"
	"github.com/receiptwise/receiptwise-backend/internal/config"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/handler"
	"github.com/receiptwise/receiptwise-backend/internal/llm"
	"github.com/receiptwise/receiptwise-backend/internal/messaging"
	"github.com/receiptwise/receiptwise-backend/internal/middleware"
	"github.com/receiptwise/receiptwise-backend/internal/notify"
	"github.com/receiptwise/receiptwise-backend/internal/repository/postgres"
	"github.com/receiptwise/receiptwise-backend/internal/repository/storage"
	"github.com/receiptwise/receiptwise-backend/internal/service"
	"github.com/receiptwise/receiptwise-backend/internal/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title ReceiptWise API
// @version 1.0
// @description Personal finance backend: transactions, budgets, goals, receipt scanning and an AI budget advisor.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Auth0 access token, prefixed with "Bearer "
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		log.Info().Msg("Database migrations applied")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	workspaceRepo := postgres.NewWorkspaceRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	goalRepo := postgres.NewGoalRepository(pool)
	ruleRepo := postgres.NewCategoryRuleRepository(pool)

	// Optional integrations. Interfaces stay nil when unconfigured so the
	// services report them as disabled.
	var receiptStore domain.ReceiptStore
	if cfg.S3.Bucket != "" {
		store, err := storage.NewS3ReceiptStore(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize receipt storage")
		}
		receiptStore = store
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Receipt storage enabled")
	} else {
		log.Warn().Msg("S3_BUCKET not set, receipt uploads disabled")
	}

	var model domain.LanguageModel
	if cfg.Gemini.APIKey != "" {
		gemini, err := llm.NewGeminiClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Gemini client")
		}
		model = gemini
		log.Info().Str("model", cfg.Gemini.Model).Msg("AI advisor enabled")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, AI advisor and receipt scanning disabled")
	}

	// WebSocket hub for real-time workspace events
	hub := websocket.NewHub(log.Logger)

	notifiers := notify.Multi{notify.NewWebSocketNotifier(hub)}
	var amqpClient *messaging.Client
	if cfg.AMQP.URL != "" {
		amqpClient, err = messaging.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to message broker")
		}
		notifiers = append(notifiers, notify.NewAMQPNotifier(amqpClient))
		log.Info().Str("exchange", cfg.AMQP.Exchange).Msg("Spending alert publishing enabled")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, workspaceRepo)
	ruleService := service.NewCategoryRuleService(ruleRepo)
	transactionService := service.NewTransactionService(transactionRepo, ruleService)
	transactionService.SetEventPublisher(hub)
	budgetService := service.NewBudgetService(budgetRepo, transactionRepo)
	budgetService.SetEventPublisher(hub)
	goalService := service.NewGoalService(goalRepo)
	goalService.SetEventPublisher(hub)
	insightsService := service.NewInsightsService(transactionRepo)
	dashboardService := service.NewDashboardService(transactionRepo)
	receiptService := service.NewReceiptService(receiptStore, model, ruleService)
	advisorService := service.NewAdvisorService(model)

	alertWorker := service.NewAlertWorker(insightsService, workspaceRepo, notifiers, log.Logger, service.AlertWorkerConfig{
		Interval: cfg.AlertSweepInterval,
	})

	// Create workspace provider adapter for auth middleware
	workspaceProvider := &workspaceProviderAdapter{authService: authService}

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, workspaceProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	wsValidator, err := websocket.NewTokenValidator(cfg.Auth0Domain, cfg.Auth0Audience, workspaceProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create websocket token validator")
	}

	aiLimiter := middleware.NewRateLimiter(cfg.AIRateLimit, middleware.DefaultBurstSize)

	// Initialize handlers
	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Transaction:  handler.NewTransactionHandler(transactionService),
		Budget:       handler.NewBudgetHandler(budgetService, insightsService),
		Goal:         handler.NewGoalHandler(goalService),
		CategoryRule: handler.NewCategoryRuleHandler(ruleService),
		Receipt:      handler.NewReceiptHandler(receiptService),
		Advisor:      handler.NewAdvisorHandler(advisorService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
	}
	wsHandler := handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentDisposition, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		Skipper: func(c echo.Context) bool {
			// swagger UI loads inline scripts
			return strings.HasPrefix(c.Path(), "/swagger")
		},
	}))

	// Receipt images are capped at 5MB
	e.Use(echomiddleware.BodyLimit("6M"))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", handler.ServeOpenAPI3Spec(cfg.PublicURL))

	// Real-time events; the token travels as a query parameter
	e.GET("/ws", wsHandler.HandleWS)

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, aiLimiter, handlers)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	alertWorker.Start(workerCtx)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	alertWorker.Stop()
	stopWorker()
	aiLimiter.Stop()
	hub.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if amqpClient != nil {
		if err := amqpClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close message broker connection")
		}
	}

	log.Info().Msg("Server exited")
}

// workspaceProviderAdapter adapts AuthService to middleware.WorkspaceProvider
// and websocket.WorkspaceLookup
type workspaceProviderAdapter struct {
	authService *service.AuthService
}

// GetWorkspaceByAuth0ID implements middleware.WorkspaceProvider
func (a *workspaceProviderAdapter) GetWorkspaceByAuth0ID(ctx context.Context, auth0ID string) (int32, error) {
	workspace, err := a.authService.GetWorkspaceByAuth0ID(ctx, auth0ID)
	if err != nil {
		return 0, err
	}
	return workspace.ID, nil
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Int32("workspace_id", middleware.GetWorkspaceID(c)).
				Msg("request")

			return nil
		}
	}
}
