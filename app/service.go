package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/gridsim/config"
	coremetrics "github.com/kilianp07/gridsim/core/metrics"
	"github.com/kilianp07/gridsim/infra/logger"
	"github.com/kilianp07/gridsim/infra/metrics"
)

// Service wires configuration, metrics and logging around the simulator.
type Service struct {
	cfg         config.SimulationConfig
	server      config.ServerConfig
	sink        coremetrics.SimulationSink
	log         logger.Logger
	promEnabled bool
	promAddr    string
}

// Option customises a Service.
type Option func(*Service)

// WithLogger replaces the default zerolog logger.
func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

// WithSink replaces the sink built from the configuration.
func WithSink(sink coremetrics.SimulationSink) Option { return func(s *Service) { s.sink = sink } }

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	svc := &Service{
		cfg:         cfg.Simulation,
		server:      cfg.Server,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddress,
	}
	for _, o := range opts {
		o(svc)
	}
	if svc.log == nil {
		svc.log = logger.New("service")
	}
	if svc.sink == nil {
		sink, err := metrics.NewSink(cfg.Metrics, prometheus.DefaultRegisterer, logger.New("metrics"))
		if err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
		svc.sink = sink
	}
	return svc, nil
}

// Defaults returns the default inputs offered to users.
func (s *Service) Defaults() config.SimulationConfig { return s.cfg }

// Logger returns the service logger.
func (s *Service) Logger() logger.Logger { return s.log }

// Serve runs h on the configured address, and the metrics endpoint when
// enabled, until ctx is cancelled.
func (s *Service) Serve(ctx context.Context, h http.Handler) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	srv := &http.Server{Addr: s.server.Address, Handler: h, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}()
	s.log.Infof("listening on %s", s.server.Address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
