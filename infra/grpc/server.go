package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"itemshare/pkg/config"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type Server struct {
	server   *grpc.Server
	listener net.Listener
	health   *health.Server
}

func (s *Server) GetGRPCServer() grpc.ServiceRegistrar {
	return s.server
}

func NewServer(cfg *config.AppConfig) (*Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	return NewServerWithListener(lis), nil
}

// NewServerWithListener builds the server on an existing listener.
func NewServerWithListener(lis net.Listener) *Server {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			loggingInterceptor,
			recoveryInterceptor,
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	return &Server{
		server:   grpcServer,
		listener: lis,
		health:   healthServer,
	}
}

// WatchHealth runs check every interval and reports the result as the
// serving status of the server and of services, until ctx is done.
func (s *Server) WatchHealth(ctx context.Context, check func(ctx context.Context) error, interval time.Duration, services ...string) {
	names := append([]string{""}, services...)

	update := func() {
		checkCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()

		servingStatus := grpc_health_v1.HealthCheckResponse_SERVING
		if err := check(checkCtx); err != nil {
			zap.L().Warn("Health check failed", zap.Error(err))
			servingStatus = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		}
		for _, name := range names {
			s.health.SetServingStatus(name, servingStatus)
		}
	}

	update()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			update()
		}
	}
}

func (s *Server) Start() error {
	zap.L().Info("gRPC server started successfully",
		zap.String("address", s.listener.Addr().String()))
	return s.server.Serve(s.listener)
}

func (s *Server) GracefulStop() error {
	s.health.Shutdown()
	s.server.GracefulStop()
	return s.listener.Close()
}
