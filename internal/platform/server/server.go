package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/ogurasousui/hotel-pms/internal/adapters/grpc/handler"
	"github.com/ogurasousui/hotel-pms/internal/platform/metrics"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	logger     zerolog.Logger
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築し、StaffService と PropertyService を登録します。
func New(listenAddr string, staff handler.StaffServiceServer, property handler.PropertyServiceServer, logger zerolog.Logger, m *metrics.Metrics, opts ...grpc.ServerOption) *Server {
	// Recovery は最内側に置き、panic も Logging と Metrics に記録されるようにします。
	interceptors := []grpc.UnaryServerInterceptor{LoggingInterceptor(logger)}
	if m != nil {
		interceptors = append(interceptors, MetricsInterceptor(m))
	}
	interceptors = append(interceptors, RecoveryInterceptor(logger))
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(interceptors...)}, opts...)

	srv := grpc.NewServer(opts...)
	handler.RegisterStaffServiceServer(srv, staff)
	handler.RegisterPropertyServiceServer(srv, property)

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		logger:     logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は lis で待ち受けます。コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.grpcServer.GracefulStop()
	}()

	s.logger.Info().Str("addr", lis.Addr().String()).Msg("gRPC server listening")
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}
