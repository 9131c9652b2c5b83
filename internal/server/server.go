package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kubev2v/multithread-server/internal/config"
	"github.com/kubev2v/multithread-server/pkg/threadpool"
)

// Executor runs jobs asynchronously. *threadpool.Pool satisfies it.
type Executor interface {
	Execute(job threadpool.Job) error
}

type Server struct {
	cfg     config.Server
	pool    Executor
	handler http.Handler

	mu       sync.Mutex
	listener net.Listener
	stopping atomic.Bool
	stopped  chan struct{}
}

func NewServer(cfg config.Server, pool Executor, handler http.Handler) *Server {
	return &Server{
		cfg:     cfg,
		pool:    pool,
		handler: handler,
		stopped: make(chan struct{}),
	}
}

// NewRouter returns a Gin engine with zap request logging and panic recovery.
// registerHandlerFn adds the routes.
func NewRouter(mode string, registerHandlerFn func(router *gin.Engine)) *gin.Engine {
	gin.SetMode(mode)

	logger := zap.L().Named("http")
	router := gin.New()
	router.Use(
		ginzap.Ginzap(logger, time.RFC3339, true),
		ginzap.RecoveryWithZap(logger, true),
	)
	registerHandlerFn(router)

	return router
}

// Start listens and hands every accepted connection to the pool as one job.
// It blocks until Stop is called, ctx is done, or the pool refuses a job.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	defer close(s.stopped)

	if s.stopping.Load() {
		_ = ln.Close()
		return nil
	}

	go func() {
		select {
		case <-ctx.Done():
			s.stopping.Store(true)
			_ = ln.Close()
		case <-s.stopped:
		}
	}()

	log := zap.S().Named("server")
	log.Infow("server running", "address", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.stopping.Load() || errors.Is(err, net.ErrClosed) {
				log.Info("server stopped accepting connections")
				return nil
			}
			_ = ln.Close()
			return fmt.Errorf("failed to accept connection: %w", err)
		}

		if err := s.pool.Execute(func() { s.handleConnection(conn) }); err != nil {
			_ = conn.Close()
			_ = ln.Close()
			return fmt.Errorf("failed to submit connection: %w", err)
		}
	}
}

// Stop closes the listener and waits for the accept loop to return.
// Once Stop returns the server makes no more Execute calls.
func (s *Server) Stop(ctx context.Context) error {
	s.stopping.Store(true)

	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()

	if ln == nil {
		return nil
	}
	_ = ln.Close()

	select {
	case <-s.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Addr returns the listen address, or nil before Start has bound the listener.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
