package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/Lelo88/prendas-api/internal/assistant"
	"github.com/Lelo88/prendas-api/internal/chat"
	"github.com/Lelo88/prendas-api/internal/config"
	"github.com/Lelo88/prendas-api/internal/db"
	"github.com/Lelo88/prendas-api/internal/docs"
	"github.com/Lelo88/prendas-api/internal/events"
	"github.com/Lelo88/prendas-api/internal/health"
	"github.com/Lelo88/prendas-api/internal/httpx"
	"github.com/Lelo88/prendas-api/internal/inventory"
	"github.com/Lelo88/prendas-api/internal/observability"
	"github.com/Lelo88/prendas-api/internal/orders"
	"github.com/Lelo88/prendas-api/internal/telegram"
)

const (
	serviceVersion  = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

// appPool es lo que la app usa del pool; lo cumple *pgxpool.Pool.
type appPool interface {
	Ping(ctx context.Context) error
	Close()
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type appDeps struct {
	loadConfig     func() (config.Config, error)
	newLogger      func(level string) (*zap.Logger, error)
	newPool        func(ctx context.Context, url string) (appPool, error)
	listenAndServe func(server *http.Server) error
}

// Variables reemplazables en tests.
var (
	loadConfigFn = config.Load
	newLoggerFn  = func(level string) (*zap.Logger, error) {
		return observability.NewLogger(level, nil)
	}
	newPoolFn = func(ctx context.Context, url string) (appPool, error) {
		return db.NewPool(ctx, url)
	}
	listenAndServeFn = func(server *http.Server) error {
		return server.ListenAndServe()
	}
	fatalf = log.Fatal
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appDeps{
		loadConfig:     loadConfigFn,
		newLogger:      newLoggerFn,
		newPool:        newPoolFn,
		listenAndServe: listenAndServeFn,
	}); err != nil {
		fatalf(err)
	}
}

// app junta lo que se construye una sola vez al arrancar.
type app struct {
	cfg       config.Config
	pool      appPool
	logger    *zap.Logger
	metrics   *observability.Metrics
	publisher orders.EventPublisher
}

func run(ctx context.Context, deps appDeps) error {
	cfg, err := deps.loadConfig()
	if err != nil {
		return err
	}

	logger, err := deps.newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.SetupTracing(ctx, observability.TracingConfig{
		Endpoint:       cfg.OtelEndpoint,
		AuthHeader:     cfg.OtelAuthHeader,
		ServiceVersion: serviceVersion,
	})
	if err != nil {
		// Sin trazas la API sigue funcionando.
		logger.Warn("tracing disabled", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracing shutdown", zap.Error(err))
		}
	}()

	pool, err := deps.newPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	application := app{
		cfg:     cfg,
		pool:    pool,
		logger:  logger,
		metrics: observability.NewMetrics(),
	}

	if cfg.KafkaBroker != "" {
		publisher := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBroker, cfg.KafkaTopic))
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("close kafka writer", zap.Error(err))
			}
		}()
		application.publisher = publisher
		logger.Info("order events enabled", zap.String("broker", cfg.KafkaBroker), zap.String("topic", cfg.KafkaTopic))
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           buildRouter(application),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", server.Addr), zap.String("stock_locking", cfg.StockLocking))
		serverErr <- deps.listenAndServe(server)
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func buildRouter(application app) http.Handler {
	cfg, logger, metrics := application.cfg, application.logger, application.metrics

	r := chi.NewRouter()

	// Middlewares base para trazabilidad y estabilidad.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpx.AccessLog(logger))
	r.Use(metrics.Middleware)
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id", chat.SecretTokenHeader},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	// Errores de routing se manejan a nivel router.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusNotFound, httpx.CodeNotFound, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusMethodNotAllowed, httpx.CodeMethodNotAllowed, "method not allowed")
	})

	var pinger health.Pinger
	if application.pool != nil {
		pinger = application.pool
	}
	health.RegisterRoutes(r, health.New(pinger))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	docs.RegisterRoutes(r)

	inventoryService := inventory.NewService(inventory.NewRepository(application.pool))
	inventory.RegisterRoutes(r, inventory.NewHandler(inventoryService))

	orderService := orders.NewService(
		orders.NewPostgresUnitOfWork(application.pool, cfg.LockStockRows()),
		orders.NewRepository(application.pool),
		orders.Options{
			Publisher: application.publisher,
			Recorder:  metrics,
			Logger:    logger.Named("orders"),
		},
	)
	orders.RegisterRoutes(r, orders.NewHandler(orderService))

	// Sin API key el clasificador devuelve siempre unknown y el responder usa texto fijo.
	var completer assistant.ChatCompleter
	if cfg.OpenAIKey != "" {
		completer = assistant.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL)
	} else {
		logger.Warn("OPENAI_KEY not set: chat answers will be limited")
	}
	chatLogger := logger.Named("chat")
	chatService := chat.NewService(
		assistant.NewClassifier(completer, cfg.OpenAIModel, chatLogger),
		chat.NewDispatcher(orderService, inventoryService, metrics, chatLogger),
		assistant.NewResponder(completer, cfg.OpenAIModel, chatLogger),
		telegram.NewClient(cfg.TelegramAPIURL, cfg.TelegramToken),
		chatLogger,
	)
	chat.RegisterRoutes(r, chat.NewHandler(chatService, cfg.VerifyToken))

	return r
}
