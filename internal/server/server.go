// Package server runs the HTTP/HTTPS listener for serverhub
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"serverhub/internal/types"
)

// Server represents the main HTTP/HTTPS server
type Server struct {
	config     *types.HubConfig
	handler    http.Handler
	logger     types.Logger
	httpServer *http.Server
	listener   net.Listener
	done       chan struct{}
	mu         sync.RWMutex
	running    bool
}

// New creates a new server instance
func New(config *types.HubConfig, handler http.Handler, logger types.Logger) *Server {
	return &Server{
		config:  config,
		handler: handler,
		logger:  logger,
	}
}

// Start listens on the configured address and serves in the background
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("server already running")
	}

	s.httpServer = &http.Server{
		Addr:         s.config.ListenAddr,
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	if s.config.TLS.Enabled {
		tlsConfig, err := createTLSConfig(s.config)
		if err != nil {
			return fmt.Errorf("failed to create TLS config: %w", err)
		}
		s.httpServer.TLSConfig = tlsConfig
	}

	if s.config.HTTP2.Enabled {
		if err := s.configureHTTP2(); err != nil {
			return err
		}
	}

	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddr, err)
	}
	s.listener = listener
	s.done = make(chan struct{})
	s.running = true

	go s.serve(listener, s.done)

	s.logger.Info("Server started",
		"addr", listener.Addr().String(),
		"tls", s.config.TLS.Enabled,
		"http2", s.config.HTTP2.Enabled,
	)
	return nil
}

// Stop gracefully stops the server, waiting for in-flight requests until ctx ends
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.logger.Info("Stopping server")
	s.running = false

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	<-s.done

	s.logger.Info("Server stopped")
	return nil
}

func (s *Server) serve(listener net.Listener, done chan struct{}) {
	defer close(done)

	var err error
	if s.config.TLS.Enabled {
		err = s.httpServer.ServeTLS(listener, "", "")
	} else {
		err = s.httpServer.Serve(listener)
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Server error", "error", err)
	}
}

// configureHTTP2 enables HTTP/2 over TLS, or h2c for cleartext listeners
func (s *Server) configureHTTP2() error {
	h2Server := &http2.Server{
		MaxConcurrentStreams: 250,
		MaxReadFrameSize:     1 << 20,
		IdleTimeout:          s.config.IdleTimeout,
	}

	if !s.config.TLS.Enabled {
		s.httpServer.Handler = h2c.NewHandler(s.handler, h2Server)
		return nil
	}

	if err := http2.ConfigureServer(s.httpServer, h2Server); err != nil {
		return fmt.Errorf("failed to configure HTTP/2: %w", err)
	}
	return nil
}

// IsRunning returns whether the server is running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the bound address, or the configured one before Start
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.ListenAddr
}
