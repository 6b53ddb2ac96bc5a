package grpc

import (
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/contractwatch/riskengine/pkg/auth"
	"github.com/contractwatch/riskengine/pkg/tlsutil"
)

// healthService is the name reported to the gRPC health service.
const healthService = "risk-service"

// ServerConfig configures the gRPC listener.
type ServerConfig struct {
	Address    string
	TLS        tlsutil.Config
	Reflection bool
}

// Server wraps the gRPC server with risk service handlers.
type Server struct {
	address    string
	grpcServer *grpc.Server
	health     *health.Server
	logger     *slog.Logger
}

// NewServer creates a new gRPC server. A nil jwtService disables
// authentication; the handler should then be built without role checks.
func NewServer(handler *RiskServiceHandler, cfg ServerConfig, jwtService *auth.JWTService, logger *slog.Logger) (*Server, error) {
	creds, err := tlsutil.ServerCredentials(cfg.TLS)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS credentials: %w", err)
	}
	if cfg.TLS.Enabled() {
		logger.Info("gRPC TLS enabled", "cert", cfg.TLS.CertFile)
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	serverOpts := []grpc.ServerOption{grpc.Creds(creds)}
	if jwtService != nil {
		// Health checks stay reachable without a token.
		serverOpts = append(serverOpts, grpc.UnaryInterceptor(auth.UnaryAuthInterceptor(jwtService, []string{
			"/grpc.health.v1.Health/Check",
			"/grpc.health.v1.Health/Watch",
		})))
	} else {
		logger.Warn("gRPC authentication disabled")
	}

	grpcServer := grpc.NewServer(serverOpts...)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(healthService, healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	RegisterRiskServiceServer(grpcServer, handler)

	if cfg.Reflection {
		reflection.Register(grpcServer)
	}

	return &Server{
		address:    cfg.Address,
		grpcServer: grpcServer,
		health:     healthServer,
		logger:     logger,
	}, nil
}

// Start begins listening and serving gRPC requests.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}
	return s.Serve(listener)
}

// Serve serves gRPC requests on an existing listener.
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("gRPC server starting",
		slog.String("address", listener.Addr().String()),
	)
	return s.grpcServer.Serve(listener)
}

// Stop marks the server not serving and drains in-flight requests.
func (s *Server) Stop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
