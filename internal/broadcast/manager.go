// Package broadcast streams language changes to TCP subscribers as newline-delimited JSON.
package broadcast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	managerName  = "Language Broadcaster"
	queueSize    = 1024
	writeTimeout = 100 * time.Millisecond
)

type Config struct {
	Port    int
	Address string
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Port < 0 {
		errGrp = append(errGrp, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.Address == "" {
		errGrp = append(errGrp, fmt.Errorf("invalid address: %s", c.Address))
	}
	return errors.Join(errGrp...)
}

// Manager accepts subscribers and fans every emitted event out to them from a single
// goroutine, so subscribers see events in emit order.
type Manager struct {
	listener net.Listener

	emitChan   chan *Event
	procCtx    context.Context
	procCancel context.CancelFunc

	clients    map[net.Conn]bool
	clientsMux sync.Mutex
}

// New binds the subscriber listener. Port 0 picks a free port.
func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(cfg.Address, fmt.Sprintf("%d", cfg.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		listener:   listener,
		emitChan:   make(chan *Event, queueSize),
		procCtx:    ctx,
		procCancel: cancel,
		clients:    make(map[net.Conn]bool),
	}, nil
}

// Addr returns the address subscribers connect to.
func (m *Manager) Addr() net.Addr {
	if m.listener == nil {
		return nil
	}
	return m.listener.Addr()
}

func (m *Manager) Start() error {
	go func() {
		for {
			select {
			case <-m.procCtx.Done():
				return
			case e := <-m.emitChan:
				m.raiseEvent(e)
			}
		}
	}()

	go func() {
		for {
			conn, err := m.listener.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) || m.procCtx.Err() != nil {
					return
				}
				log.Error().Err(err).Msg("failed to accept subscriber")
				continue
			}

			go m.handle(conn)
		}
	}()

	log.Info().Str("address", m.listener.Addr().String()).Msg("language broadcast listening")
	return nil
}

func (m *Manager) Stop() error {
	if m.procCancel != nil {
		m.procCancel()
	}

	if m.listener != nil {
		if err := m.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("failed to close listener: %w", err)
		}
	}

	m.clientsMux.Lock()
	for client := range m.clients {
		_ = client.Close()
		delete(m.clients, client)
	}
	m.clientsMux.Unlock()

	return nil
}

func (m *Manager) Name() string {
	return managerName
}

// Subscribers returns the number of connected clients.
func (m *Manager) Subscribers() int {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()
	return len(m.clients)
}

func (m *Manager) handle(conn net.Conn) {
	defer func() {
		_ = conn.Close()

		m.clientsMux.Lock()
		delete(m.clients, conn)
		m.clientsMux.Unlock()
	}()

	m.clientsMux.Lock()
	if m.procCtx.Err() != nil {
		// Stop already drained clients; nothing would close this one later.
		m.clientsMux.Unlock()
		return
	}
	m.clients[conn] = true
	m.clientsMux.Unlock()

	log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("subscriber connected")

	// Reading only detects disconnection; subscribers never send anything.
	buffer := make([]byte, 512)
	for {
		if _, err := conn.Read(buffer); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("subscriber disconnected")
			} else {
				log.Debug().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("subscriber read failed")
			}
			return
		}
	}
}
