package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contractwatch/riskengine/internal/application/usecase"
	"github.com/contractwatch/riskengine/internal/domain/port"
	"github.com/contractwatch/riskengine/internal/domain/service"
	"github.com/contractwatch/riskengine/internal/infrastructure/config"
	"github.com/contractwatch/riskengine/internal/infrastructure/messaging"
	"github.com/contractwatch/riskengine/internal/infrastructure/postgres"
	"github.com/contractwatch/riskengine/internal/infrastructure/scheduler"
	"github.com/contractwatch/riskengine/internal/infrastructure/telemetry"
	grpcpresentation "github.com/contractwatch/riskengine/internal/presentation/grpc"
	"github.com/contractwatch/riskengine/internal/presentation/rest"
	"github.com/contractwatch/riskengine/pkg/auth"
	"github.com/contractwatch/riskengine/pkg/kafka"
	"github.com/contractwatch/riskengine/pkg/observability"
	pgshared "github.com/contractwatch/riskengine/pkg/postgres"
	"github.com/contractwatch/riskengine/pkg/tlsutil"
)

const serviceName = "risk-service"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  "json",
		Service: serviceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting risk-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"environment", cfg.Environment,
	)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("risk-service failed", "error", err)
		os.Exit(1)
	}
	logger.Info("risk-service stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTLPEndpoint,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				logger.Warn("tracer shutdown error", "error", err)
			}
		}()
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: serviceName})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	assessmentMetrics, err := telemetry.NewAssessmentMetrics(meterProvider)
	if err != nil {
		return err
	}

	// Scoring rules.
	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		return fmt.Errorf("failed to load risk rules: %w", err)
	}
	engine, err := service.NewRiskEngine(rules)
	if err != nil {
		return fmt.Errorf("invalid risk rules: %w", err)
	}
	if cfg.RulesFile != "" {
		logger.Info("loaded risk rules", "file", cfg.RulesFile)
	}

	// Database.
	if cfg.RunMigrations {
		if err := pgshared.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("database migrations applied", "path", cfg.MigrationsPath)
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pgshared.NewPool(dbCtx, pgshared.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Wire infrastructure adapters.
	contractRepo := postgres.NewContractRepository(pool)
	checkRepo := postgres.NewComplianceCheckRepository(pool)
	assessmentRepo := postgres.NewAssessmentRepository(pool)

	kafkaCfg := kafka.Config{
		Brokers:       kafka.ParseBrokers(cfg.KafkaBroker),
		ConsumerGroup: cfg.KafkaConsumerGroup,
		TLS:           cfg.KafkaTLS,
		SASLEnabled:   cfg.KafkaSASLMechanism != "",
		SASLMechanism: cfg.KafkaSASLMechanism,
		SASLUsername:  cfg.KafkaSASLUsername,
		SASLPassword:  cfg.KafkaSASLPassword,
	}

	var eventPublisher port.EventPublisher = messaging.NewLogPublisher(logger)
	if cfg.KafkaEnabled() {
		producer, err := kafka.NewProducer(kafkaCfg)
		if err != nil {
			return fmt.Errorf("failed to create kafka producer: %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Warn("kafka producer close error", "error", err)
			}
		}()
		eventPublisher = messaging.NewPublisher(producer, cfg.RiskEventsTopic, logger)
	} else {
		logger.Warn("KAFKA_BROKER not set, domain events will only be logged")
	}

	// Wire use cases.
	evaluateContractUC := usecase.NewEvaluateContract(engine)
	assessContractUC := usecase.NewAssessContract(contractRepo, assessmentRepo, eventPublisher, assessmentMetrics, engine, logger)
	getAssessmentUC := usecase.NewGetAssessment(assessmentRepo)
	summarizeComplianceUC := usecase.NewSummarizeCompliance(checkRepo)
	getDashboardStatsUC := usecase.NewGetDashboardStats(contractRepo, checkRepo)
	listHighRiskUC := usecase.NewListHighRiskContracts(contractRepo)
	reassessPortfolioUC := usecase.NewReassessPortfolio(contractRepo, assessContractUC, logger)

	var jwtService *auth.JWTService
	if cfg.AuthEnabled() {
		jwtService, err = auth.NewJWTService(auth.JWTConfig{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer})
		if err != nil {
			return fmt.Errorf("failed to initialize auth: %w", err)
		}
	} else {
		logger.Warn("JWT_SECRET not set, APIs are unauthenticated")
	}

	// gRPC server.
	grpcHandler := grpcpresentation.NewRiskServiceHandler(
		evaluateContractUC, assessContractUC, getAssessmentUC, summarizeComplianceUC, getDashboardStatsUC, listHighRiskUC,
		cfg.AuthEnabled(), logger,
	)
	tlsCfg := tlsutil.Config{CertFile: cfg.TLSCertFile, KeyFile: cfg.TLSKeyFile}
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:    cfg.GRPCAddress(),
		TLS:        tlsCfg,
		Reflection: cfg.GRPCReflection,
	}, jwtService, logger)
	if err != nil {
		return err
	}

	// HTTP server.
	apiHandler := rest.NewHandler(
		evaluateContractUC, assessContractUC, getAssessmentUC, summarizeComplianceUC, getDashboardStatsUC, listHighRiskUC,
		cfg.AuthEnabled(), logger,
	)
	healthHandler := rest.NewHealthHandler(map[string]rest.ReadinessCheck{
		"database": func(ctx context.Context) error { return pgshared.HealthCheck(ctx, pool) },
	}, logger)

	var limiter *rest.ClientRateLimiter
	if cfg.RateLimit > 0 {
		limiter = rest.NewClientRateLimiter(cfg.RateLimit)
	}

	httpTLS, err := tlsutil.ServerTLSConfig(tlsCfg)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      rest.NewRouter(apiHandler, healthHandler, metricsHandler, jwtService, limiter, logger),
		TLSConfig:    httpTLS,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Build background workers before any listener starts so a bad schedule
	// or consumer config cannot leave servers running.
	bg, err := newWorkers(cfg, kafkaCfg, assessContractUC, reassessPortfolioUC, logger)
	if err != nil {
		return err
	}

	// Start servers and background workers.
	errCh := make(chan error, 3)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress(), "tls", httpTLS != nil)
		var err error
		if httpTLS != nil {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	bg.start(ctx, errCh)

	logger.Info("risk-service started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
	)

	// Wait for shutdown signal.
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
	}

	// Graceful shutdown.
	logger.Info("shutting down risk-service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	bg.stop(shutdownCtx)
	grpcServer.Stop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	return runErr
}

// workers holds the optional contract-event consumer and reassessment schedule.
type workers struct {
	consumer *kafka.Consumer
	cron     *scheduler.Scheduler
	logger   *slog.Logger
}

// newWorkers builds the background workers without starting them. The
// consumer exists only when Kafka is configured and the schedule only when
// REASSESS_SCHEDULE is set.
func newWorkers(
	cfg *config.Config,
	kafkaCfg kafka.Config,
	assess *usecase.AssessContract,
	reassess scheduler.Reassessor,
	logger *slog.Logger,
) (*workers, error) {
	w := &workers{logger: logger}

	if cfg.KafkaEnabled() && cfg.ContractTopic != "" {
		handler := messaging.NewContractEventHandler(assess, logger)
		consumer, err := kafka.NewConsumer(kafkaCfg, cfg.ContractTopic, handler.Handle, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
		}
		w.consumer = consumer
	}

	cron, err := scheduler.New(cfg.ReassessSchedule, reassess, cfg.ReassessTimeout, logger)
	if err != nil {
		w.stop(context.Background())
		return nil, err
	}
	w.cron = cron
	return w, nil
}

func (w *workers) start(ctx context.Context, errCh chan<- error) {
	if w.consumer != nil {
		go func() {
			if err := w.consumer.Start(ctx); err != nil {
				errCh <- fmt.Errorf("contract consumer error: %w", err)
			}
		}()
	}
	if w.cron != nil {
		w.cron.Start()
	} else {
		w.logger.Info("portfolio reassessment schedule disabled")
	}
}

func (w *workers) stop(ctx context.Context) {
	if w.cron != nil {
		w.cron.Stop(ctx)
	}
	if w.consumer != nil {
		if err := w.consumer.Close(); err != nil {
			w.logger.Warn("kafka consumer close error", "error", err)
		}
	}
}
