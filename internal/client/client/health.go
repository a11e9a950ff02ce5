package client

import (
	"context"
	"net/http"

	"github.com/firflight/firflight/internal/common"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Ping reports whether the server is reachable and serving.
func (c *HTTPClient) Ping(ctx context.Context) error {
	if c.health == nil {
		return c.pingHTTP(ctx)
	}

	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: common.HealthService})
	if err != nil {
		st, _ := status.FromError(err)
		switch st.Code() {
		case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled, codes.NotFound:
			return ErrUnavailable
		default:
			return err
		}
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) pingHTTP(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrUnavailable
	}
	return nil
}
