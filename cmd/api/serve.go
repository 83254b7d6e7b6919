package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"billdocs/docs"
	"billdocs/internal/billing"
	"billdocs/internal/config"
	"billdocs/internal/database"
	"billdocs/internal/database/migration"
	handlers "billdocs/internal/http/handler"
	"billdocs/internal/http/middleware"
	"billdocs/internal/logger"
	"billdocs/internal/metrics"
	tracing "billdocs/internal/otel"
	"billdocs/internal/repository/postgres"
	"billdocs/internal/revalidate"
	"billdocs/internal/service"
	"billdocs/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Example: `  # Serve on $PORT, applying pending migrations first
  billdocs serve

  # Serve without touching the schema
  billdocs serve --auto-migrate=false`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// addServeFlags is shared by serve and the root command, which serves by default.
func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("auto-migrate", true, "apply pending database migrations before serving")
	cmd.Flags().Duration("shutdown-timeout", 10*time.Second, "grace period for in-flight requests on shutdown")
}

func runServe(cmd *cobra.Command, _ []string) error {
	autoMigrate, _ := cmd.Flags().GetBool("auto-migrate")
	shutdownTimeout, _ := cmd.Flags().GetDuration("shutdown-timeout")

	cfg := config.Load()
	loc := cfg.Location()
	log := logger.WithComponent("api")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, logger.WithComponent("otel"))
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn().Err(err).Msg("tracing_shutdown_failed")
		}
	}()

	// PostgreSQL connection, pooled by database/sql
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if autoMigrate {
		if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	domainMetrics, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	docSvc, clientSvc, notifier, err := buildServices(ctx, cfg, db, domainMetrics)
	if err != nil {
		return err
	}

	app := newApp(db, reg, httpMetrics, docSvc, clientSvc)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutdown_requested")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Error().Err(err).Msg("shutdown_failed")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().
		Str("addr", addr).
		Str("version", version).
		Str("timezone", loc.String()).
		Str("reference_strategy", cfg.Documents.ReferenceStrategy).
		Str("status_policy", cfg.Documents.StatusPolicy).
		Msg("server_starting")

	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	// Let in-flight revalidation signals finish before exiting.
	if w, ok := notifier.(*revalidate.Webhook); ok {
		w.Wait()
	}
	log.Info().Msg("server_stopped")
	return nil
}

// newApp builds the Fiber application with its middleware chain and routes.
func newApp(db *sql.DB, reg *prometheus.Registry, httpMetrics *middleware.PrometheusMiddleware, docSvc service.DocumentService, clientSvc service.ClientService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	// A panicking handler becomes a 500 through ErrorHandler instead of killing the process.
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			log := logger.WithComponent("api")
			log.Error().
				Interface("panic", e).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Bytes("stack", debug.Stack()).
				Msg("handler_panic")
		},
	}))
	app.Use(httpMetrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handlers.RegisterRoutes(app, db, docSvc, clientSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	return app
}

// buildServices wires repositories, object storage and the revalidation notifier
// into the document and client services.
func buildServices(ctx context.Context, cfg *config.AppConfig, db *sql.DB, m *metrics.Metrics) (service.DocumentService, service.ClientService, revalidate.Notifier, error) {
	if !billing.ValidStrategy(cfg.Documents.ReferenceStrategy) {
		return nil, nil, nil, fmt.Errorf("unknown reference strategy %q", cfg.Documents.ReferenceStrategy)
	}
	policy, err := billing.NewStatusPolicy(cfg.Documents.StatusPolicy)
	if err != nil {
		return nil, nil, nil, err
	}

	notifier := revalidate.New(cfg.Revalidate, logger.WithComponent("revalidate"), m)

	opts := []service.Option{
		service.WithNotifier(notifier),
		service.WithStatusPolicy(policy),
		service.WithReferenceStrategy(cfg.Documents.ReferenceStrategy),
		service.WithLocation(cfg.Location()),
		service.WithExportExpiry(time.Duration(cfg.Documents.ExportURLExpirySec) * time.Second),
		service.WithMetrics(m),
		service.WithLogger(logger.WithComponent("documents")),
	}

	log := logger.WithComponent("api")
	if cfg.MinIO.Endpoint != "" {
		// S3-compatible archive for exported documents (MinIO-supported)
		store, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("init object storage: %w", err)
		}
		opts = append(opts, service.WithStorage(store))
	} else {
		log.Warn().Msg("MINIO_ENDPOINT not set, document export disabled")
	}

	docRepo := postgres.NewDocumentPostgres(db)
	clientRepo := postgres.NewClientPostgres(db)

	return service.NewDocumentService(docRepo, clientRepo, opts...),
		service.NewClientService(clientRepo, notifier),
		notifier,
		nil
}
