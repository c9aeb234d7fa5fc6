package health

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestNewServer(t *testing.T) {
	tests := map[string]struct {
		cfg   *Config
		error error
	}{
		"invalid config": {
			cfg:   &Config{Port: -2},
			error: errors.New("address required\ninvalid port: -2"),
		},
		"valid config": {
			cfg: &Config{Address: "127.0.0.1"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := NewServer(test.cfg)
			req := require.New(t)
			if test.error != nil {
				req.Error(err)
				req.Nil(got)
				req.Equal(test.error.Error(), err.Error())
				return
			}

			req.NoError(err)
			req.NotNil(got)
			req.NotNil(got.Addr())
			req.NoError(got.listener.Close())
		})
	}
}

func TestServer_Name(t *testing.T) {
	s := &Server{}
	require.Equal(t, "Health Server", s.Name())
	require.Nil(t, s.Addr())
	// no health server attached, nothing to flip
	s.SetServing(true)
}

func TestServer_Real(t *testing.T) {
	s, err := NewServer(&Config{Address: "127.0.0.1"})
	require.NoError(t, err)

	conn, err := grpc.NewClient(s.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	client := healthpb.NewHealthClient(conn)
	check := func() healthpb.HealthCheckResponse_ServingStatus {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
		require.NoError(t, err)
		return resp.GetStatus()
	}

	require.NoError(t, s.Start())
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, check())

	s.SetServing(false)
	require.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check())

	require.NoError(t, s.Stop())
}

func TestServer_Start(t *testing.T) {
	t.Run("successful start", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockServer := NewMockgrpcServer(ctrl)
		ml := &mockListener{}

		mockServer.EXPECT().
			Serve(ml).
			DoAndReturn(func(net.Listener) error {
				// Simulate blocking serve
				time.Sleep(600 * time.Millisecond)
				return nil
			})

		s := &Server{
			address:  "127.0.0.1",
			port:     12345,
			server:   mockServer,
			listener: ml,
		}

		require.NoError(t, s.Start())
		time.Sleep(200 * time.Millisecond)
	})

	t.Run("serve error on start", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockServer := NewMockgrpcServer(ctrl)
		ml := &mockListener{}

		mockServer.EXPECT().
			Serve(ml).
			Return(errors.New("bind error"))

		s := &Server{
			address:  "127.0.0.1",
			port:     12345,
			server:   mockServer,
			listener: ml,
		}

		err := s.Start()
		require.Error(t, err)
		require.Contains(t, err.Error(), "bind error")
	})
}

func TestServer_Stop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockServer := NewMockgrpcServer(ctrl)
	mockServer.EXPECT().GracefulStop().Times(1)

	s := &Server{
		server: mockServer,
	}

	require.NoError(t, s.Stop())
}

type mockListener struct {
	net.Listener
}

func (m *mockListener) Accept() (net.Conn, error) { return nil, nil }
func (m *mockListener) Close() error              { return nil }
func (m *mockListener) Addr() net.Addr            { return &net.TCPAddr{Port: 12345} }
