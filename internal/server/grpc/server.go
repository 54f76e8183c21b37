// Package grpc runs the gRPC side of the TARDIS server. It only carries the
// standard health service, which clients watch to show online status.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/tardis/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const stopTimeout = 5 * time.Second

type HealthServer struct {
	address string
	logger  logging.Logger
	health  *health.Server
}

// NewHealthServer creates a server reporting NOT_SERVING until SetServing is called.
func NewHealthServer(a string, l logging.Logger) *HealthServer {
	h := health.NewServer()
	h.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		health:  h,
	}
}

func (s *HealthServer) SetServing() {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
}

func (s *HealthServer) SetNotServing() {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
}

func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()

		// Watch streams never end on their own.
		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(stopTimeout):
			srv.Stop()
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
