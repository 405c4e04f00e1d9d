package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// TaskServiceName is the health-check service name reported next to the overall ("") status.
const TaskServiceName = "tasks.v1.TaskService"

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer exposes grpc.health.v1 backed by the task store.
type HealthServer struct {
	server *grpc.Server
	health *health.Server
	store  Pinger
	logger zerolog.Logger
}

func NewHealthServer(store Pinger, logger zerolog.Logger) *HealthServer {
	s := &HealthServer{
		health: health.NewServer(),
		store:  store,
		logger: logger.With().Str("component", "grpc").Logger(),
	}

	s.server = grpc.NewServer(
		grpc.UnaryInterceptor(s.unaryInterceptor),
	)
	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)

	s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

func (s *HealthServer) Start(port int) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(lis)
}

func (s *HealthServer) Serve(lis net.Listener) error {
	s.logger.Info().Str("addr", lis.Addr().String()).Msg("grpc server listening")
	return s.server.Serve(lis)
}

// Watch refreshes the serving status from the store until ctx is done.
func (s *HealthServer) Watch(ctx context.Context, interval time.Duration) {
	s.Check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

func (s *HealthServer) Check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.store.Ping(pingCtx); err != nil {
		s.logger.Warn().Err(err).Msg("store ping failed")
		s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	s.setStatus(healthpb.HealthCheckResponse_SERVING)
}

func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}

func (s *HealthServer) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(TaskServiceName, status)
}

func (s *HealthServer) unaryInterceptor(ctx context.Context, req interface{},
	info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	s.logger.Debug().Str("method", info.FullMethod).Msg("grpc call")
	return handler(ctx, req)
}
