package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"nhdbstats/server/internal/logging"

	"github.com/pterm/pterm"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthService is the service name reported alongside the overall ("") status.
const HealthService = "nhdbstats.Games"

// Pinger checks that the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health serves the standard gRPC health protocol. Status is SERVING only
// while the last database ping succeeded.
type Health struct {
	grpc   *grpc.Server
	status *health.Server
	logger *pterm.Logger
}

// NewHealth creates a health server reporting NOT_SERVING.
func NewHealth(logger *pterm.Logger) *Health {
	hs := health.NewServer()
	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)

	h := &Health{grpc: gs, status: hs, logger: logger}
	h.SetServing(false)
	return h
}

// SetServing updates the status of both the overall and the games service.
func (h *Health) SetServing(ok bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}
	h.status.SetServingStatus("", st)
	h.status.SetServingStatus(HealthService, st)
}

// Watch pings the database now and then every interval until ctx ends.
func (h *Health) Watch(ctx context.Context, p Pinger, interval time.Duration) {
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()
		if err := p.Ping(pingCtx); err != nil {
			if ctx.Err() == nil {
				h.logger.Warn("database ping failed", h.logger.Args("error", logging.Mask(err.Error())))
			}
			h.SetServing(false)
			return
		}
		h.SetServing(true)
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

// Serve accepts gRPC connections on lis until ctx ends.
func (h *Health) Serve(ctx context.Context, lis net.Listener) error {
	serveErr := make(chan error, 1)
	h.logger.Info("grpc health listening", h.logger.Args("addr", lis.Addr().String()))
	go func() {
		serveErr <- h.grpc.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		h.status.Shutdown()
		h.grpc.GracefulStop()
		return nil
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve grpc health: %w", err)
		}
		return nil
	}
}

// ListenAndServe listens on addr and calls Serve.
func (h *Health) ListenAndServe(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen grpc health: %w", err)
	}
	return h.Serve(ctx, lis)
}
