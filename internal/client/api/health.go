package api

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthChecker queries the server's grpc.health.v1 service.
type HealthChecker struct {
	conn   *grpc.ClientConn
	client healthpb.HealthClient
}

func NewHealthChecker(addr string, opts ...grpc.DialOption) (*HealthChecker, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &HealthChecker{conn: conn, client: healthpb.NewHealthClient(conn)}, nil
}

// Ping returns nil when the server reports SERVING and ErrUnavailable otherwise.
func (h *HealthChecker) Ping(ctx context.Context) error {
	resp, err := h.client.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.GetStatus())
	}
	return nil
}

func (h *HealthChecker) Close() error {
	return h.conn.Close()
}
