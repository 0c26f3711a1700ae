// Package health exposes grpc.health.v1 for the service and one entry per
// reference list.
package health

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
)

// ServiceName is the health entry of one list, e.g. "reflist.oils".
func ServiceName(key domain.ListKey) string {
	return "reflist." + string(key)
}

type Server struct {
	hs     *grpchealth.Server
	names  []string
	ready  func(ctx context.Context) error
	logger logrus.FieldLogger
}

// NewServer starts with every entry NOT_SERVING until the first Refresh.
// A nil ready func means the backend is always ready.
func NewServer(lists []domain.ListSpec, ready func(ctx context.Context) error, logger logrus.FieldLogger) *Server {
	s := &Server{
		hs:     grpchealth.NewServer(),
		names:  []string{""},
		ready:  ready,
		logger: logger,
	}
	for _, l := range lists {
		s.names = append(s.names, ServiceName(l.Key))
	}
	s.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

func (s *Server) Register(g *grpc.Server) {
	healthpb.RegisterHealthServer(g, s.hs)
}

// Refresh probes the backend once and publishes the result.
func (s *Server) Refresh(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if s.ready != nil {
		if err := s.ready(ctx); err != nil {
			s.logger.WithError(err).Warn("backend not ready")
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.set(status)
}

// Run refreshes every interval until ctx is done.
func (s *Server) Run(ctx context.Context, interval time.Duration) {
	s.Refresh(ctx)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Refresh(ctx)
		}
	}
}

// Shutdown reports NOT_SERVING on every entry and ignores later updates.
func (s *Server) Shutdown() {
	s.hs.Shutdown()
}

// Check answers like the registered service does.
func (s *Server) Check(ctx context.Context, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := s.hs.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}

func (s *Server) set(status healthpb.HealthCheckResponse_ServingStatus) {
	for _, name := range s.names {
		s.hs.SetServingStatus(name, status)
	}
}
