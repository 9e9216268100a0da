package server

import (
	"context"
	"errors"
	"net"

	"google.golang.org/grpc"

	mdwlog "github.com/msto63/fnc/foundation/core/log"
	"github.com/msto63/fnc/pkg/core/config"
	fncgrpc "github.com/msto63/fnc/pkg/core/grpc"
	"github.com/msto63/fnc/pkg/core/health"
	"github.com/msto63/fnc/pkg/core/version"
)

// healthProbe is parsed by the engine health check
const healthProbe = "fn probe(x) x + 1; probe(2)"

// Server runs the parse service on a gRPC server
type Server struct {
	grpc    *fncgrpc.Server
	service *Service
	health  *health.Registry
	cfg     config.ServerConfig
	logger  *mdwlog.Logger
}

// New builds a gRPC server with the parse service and the health service
// registered
func New(cfg config.ServerConfig, service *Service, logger *mdwlog.Logger) *Server {
	if logger == nil {
		logger = mdwlog.GetDefault()
	}

	gcfg := fncgrpc.DefaultServerConfig()
	gcfg.Host = cfg.Host
	gcfg.Port = cfg.Port
	gcfg.RequestTimeout = cfg.RequestTimeout.Duration
	gcfg.Logger = logger
	if cfg.MaxMessageSize > 0 {
		gcfg.MaxRecvMsgSize = cfg.MaxMessageSize
		gcfg.MaxSendMsgSize = cfg.MaxMessageSize
	}

	gs := fncgrpc.NewServer(gcfg)
	RegisterParseServiceServer(gs.GRPCServer(), service)
	gs.SetServingStatus(ServiceName, true)

	return &Server{
		grpc:    gs,
		service: service,
		health:  newHealthRegistry(service),
		cfg:     cfg,
		logger:  logger.WithField("component", "fnc-server"),
	}
}

func newHealthRegistry(service *Service) *health.Registry {
	registry := health.NewRegistry(ServiceName, version.Server)
	registry.Register(health.ErrorCheck("engine", health.StatusUnhealthy, func(ctx context.Context) error {
		return service.engine.Check("health-probe", healthProbe)
	}))
	if service.history != nil {
		// Parsing still works without history, so a broken store only degrades
		registry.Register(health.ErrorCheck("store", health.StatusDegraded, service.history.Ping))
	}
	return registry
}

// Health runs all health checks once
func (s *Server) Health(ctx context.Context) *health.Report {
	return s.health.Check(ctx)
}

// watchHealth mirrors the health report into the gRPC health service and
// logs status changes
func (s *Server) watchHealth(ctx context.Context) {
	last := health.StatusHealthy
	s.health.Watch(ctx, s.cfg.HealthInterval.Duration, func(report *health.Report) {
		s.grpc.SetServingStatus(ServiceName, report.Status.Serving())
		if report.Status == last {
			return
		}
		fields := mdwlog.Fields{"status": string(report.Status), "previous": string(last)}
		for _, c := range report.Failing() {
			fields["check_"+c.Name] = c.Message
		}
		if report.Status == health.StatusHealthy {
			s.logger.Info("Parse service healthy again", fields)
		} else {
			s.logger.Warn("Parse service health changed", fields)
		}
		last = report.Status
	})
}

// GRPCServer returns the underlying grpc.Server
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpc.GRPCServer()
}

// Address returns the listen address
func (s *Server) Address() string {
	return s.grpc.Address()
}

// Run listens on the configured address and serves until ctx is done
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is done, then stops gracefully within the
// configured shutdown timeout. Health checks run for as long as it serves.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.grpc.Serve(lis)
	}()

	s.logger.Info("Parse service started", mdwlog.Fields{"address": lis.Addr().String()})

	healthCtx, stopHealth := context.WithCancel(ctx)
	healthDone := make(chan struct{})
	go func() {
		defer close(healthDone)
		s.watchHealth(healthCtx)
	}()
	defer stopHealth()

	select {
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down parse service")
	stopHealth()
	<-healthDone
	s.grpc.SetServingStatus(ServiceName, false)

	stopCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout.Duration)
	defer cancel()
	s.grpc.StopWithTimeout(stopCtx)

	if err := <-errCh; err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}
