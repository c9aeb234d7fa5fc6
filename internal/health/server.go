// Package health exposes the dashboard's system-health status over the standard gRPC
// health protocol.
package health

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
	grpc2 "google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

//go:generate mockgen -destination=server_mock.go -package=health -source=server.go

// ServiceName is the health service key reported for the dashboard.
const ServiceName = "verifyboard.Dashboard"

type grpcServer interface {
	Serve(lis net.Listener) error
	GracefulStop()
}

// Server implements the app.Dependency interface for the gRPC health endpoint.
type Server struct {
	address  string
	port     int
	server   grpcServer
	health   *grpchealth.Server
	listener net.Listener
}

type Config struct {
	Address string
	Port    int
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Address == "" {
		errGrp = append(errGrp, fmt.Errorf("address required"))
	}
	if c.Port < 0 {
		errGrp = append(errGrp, fmt.Errorf("invalid port: %d", c.Port))
	}
	return errors.Join(errGrp...)
}

// NewServer creates the health server and binds its listener. The dashboard starts out
// NOT_SERVING until Start.
func NewServer(cfg *Config) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	srv := grpc2.NewServer()
	hs := grpchealth.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	lis, err := net.Listen("tcp", net.JoinHostPort(cfg.Address, fmt.Sprintf("%d", cfg.Port)))
	if err != nil {
		return nil, fmt.Errorf("failed to create listener on port %d: %w", cfg.Port, err)
	}

	return &Server{
		address:  cfg.Address,
		port:     cfg.Port,
		server:   srv,
		health:   hs,
		listener: lis,
	}, nil
}

// Addr returns the bound listener address.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// SetServing flips the dashboard service status.
func (s *Server) SetServing(serving bool) {
	if s.health == nil {
		return
	}
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)
}

func (s *Server) Start() error {
	log.Info().Msgf("health server listening at %s", s.listener.Addr().String())

	errCh := make(chan error, 1)

	go func() {
		if err := s.server.Serve(s.listener); err != nil {
			errCh <- err
			log.Error().Err(err).Msg("health server failed")
			return
		}
		errCh <- nil
	}()

	// Block briefly for error or nil return
	select {
	case err := <-errCh:
		return err
	case <-time.After(500 * time.Millisecond):
		s.SetServing(true)
		return nil
	}
}

func (s *Server) Stop() error {
	log.Info().Msg("Stopping health server")
	if s.health != nil {
		s.health.Shutdown()
	}
	s.server.GracefulStop()
	return nil
}

func (s *Server) Name() string {
	return "Health Server"
}
