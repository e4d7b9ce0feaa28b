package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	DefaultReadTimeout     = 60 * time.Second
	DefaultWriteTimeout    = DefaultReadTimeout
	DefaultShutdownTimeout = 30 * time.Second
)

// Server wraps http.Server to drain in-flight requests on SIGINT/SIGTERM.
type Server struct {
	*http.Server

	listener        net.Listener
	shutdownTimeout time.Duration
	signalChan      chan os.Signal
	shutdownChan    chan struct{}
}

// NewServer creates a Server with timeouts and handler.
func NewServer(addr string, handler http.Handler, readTimeout, writeTimeout time.Duration) *Server {
	return &Server{
		Server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		shutdownTimeout: DefaultShutdownTimeout,
		signalChan:      make(chan os.Signal, 1),
		shutdownChan:    make(chan struct{}),
	}
}

// ListenAndServe serves on tcp until a termination signal arrives, then waits
// for the graceful shutdown to finish.
func (srv *Server) ListenAndServe() error {
	addr := srv.Addr
	if addr == "" {
		addr = ":http"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("net.Listen error: %w", err)
	}
	srv.listener = ln
	return srv.serve()
}

func (srv *Server) serve() error {
	signal.Notify(srv.signalChan, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		// unblocks handleSignals when Serve fails without a signal
		signal.Stop(srv.signalChan)
		close(srv.signalChan)
	}()
	go srv.handleSignals()

	err := srv.Server.Serve(srv.listener)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-srv.shutdownChan
	return nil
}

func (srv *Server) handleSignals() {
	sig, ok := <-srv.signalChan
	if !ok {
		return
	}
	Sugar.Infof("received %s, graceful shutting down HTTP server", sig)
	srv.shutdownHTTPServer()
}

func (srv *Server) shutdownHTTPServer() {
	ctx, cancel := context.WithTimeout(context.Background(), srv.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		Sugar.Errorf("HTTP server shutdown error: %v", err)
	} else {
		Sugar.Info("HTTP server shutdown success")
	}
	close(srv.shutdownChan)
}

// GraceServer starts an HTTP server with graceful shutdown.
func GraceServer(addr string, handler http.Handler) error {
	return NewServer(addr, handler, DefaultReadTimeout, DefaultWriteTimeout).ListenAndServe()
}
