package bootstrap

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/eleven-am/voice-console/internal/health"
	"go.uber.org/fx"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	serviceName         = "voice-console"
	healthCheckInterval = 15 * time.Second
	healthCheckTimeout  = 10 * time.Second
)

func NewGRPCServer() *grpc.Server {
	return grpc.NewServer()
}

func NewHealthServer() *grpchealth.Server {
	return grpchealth.NewServer()
}

func RegisterHealthService(server *grpc.Server, hs *grpchealth.Server) {
	healthpb.RegisterHealthServer(server, hs)
}

func servingStatus(s health.Status) healthpb.HealthCheckResponse_ServingStatus {
	if s == health.StatusUnhealthy {
		return healthpb.HealthCheckResponse_NOT_SERVING
	}
	return healthpb.HealthCheckResponse_SERVING
}

// WatchHealth mirrors the HTTP readiness result into the gRPC health
// service, both for the empty service name and for serviceName.
func WatchHealth(lc fx.Lifecycle, hs *grpchealth.Server, h *health.Handler, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	update := func() {
		checkCtx, checkCancel := context.WithTimeout(ctx, healthCheckTimeout)
		defer checkCancel()
		resp := h.Check(checkCtx)
		status := servingStatus(resp.Status)
		hs.SetServingStatus("", status)
		hs.SetServingStatus(serviceName, status)
		if status != healthpb.HealthCheckResponse_SERVING {
			logger.Warn("service not ready", "components", resp.Components)
		}
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(healthCheckInterval)
				defer ticker.Stop()
				update()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						update()
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			<-done
			hs.Shutdown()
			return nil
		},
	})
}

func StartGRPCServer(lc fx.Lifecycle, server *grpc.Server, cfg *Config, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lis, err := net.Listen("tcp", cfg.GRPCAddr)
			if err != nil {
				return err
			}
			go func() {
				logger.Info("gRPC server starting", "addr", cfg.GRPCAddr)
				if err := server.Serve(lis); err != nil {
					logger.Error("gRPC server error", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			server.GracefulStop()
			return nil
		},
	})
}

var GRPCModule = fx.Options(
	fx.Provide(NewGRPCServer, NewHealthServer),
	fx.Invoke(RegisterHealthService),
	fx.Invoke(WatchHealth),
	fx.Invoke(StartGRPCServer),
)
