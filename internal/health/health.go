package health

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Server exposes the standard grpc health protocol for one service.
type Server struct {
	srv     *grpc.Server
	checker *health.Server
	service string
	log     *slog.Logger
}

func New(service string, log *slog.Logger) *Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(logUnary(log)))
	checker := health.NewServer()
	healthpb.RegisterHealthServer(srv, checker)
	reflection.Register(srv)

	checker.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	checker.SetServingStatus(service, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Server{srv: srv, checker: checker, service: service, log: log}
}

// SetServing flips both the overall and the named service status.
func (s *Server) SetServing(ok bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.checker.SetServingStatus("", st)
	s.checker.SetServingStatus(s.service, st)
}

func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("grpc.health.listening", "addr", lis.Addr().String())
	return s.srv.Serve(lis)
}

func (s *Server) Stop() {
	s.checker.Shutdown()
	s.srv.GracefulStop()
}

func logUnary(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if err != nil {
			log.WarnContext(ctx, "grpc.request", "method", info.FullMethod, "duration", time.Since(start), "error", err.Error())
		} else {
			log.DebugContext(ctx, "grpc.request", "method", info.FullMethod, "duration", time.Since(start))
		}
		return resp, err
	}
}
