package httpserver

import (
	"context"
	"log"
	"net"
	"net/http"
	"sync"
	"time"
)

// Server puts the API, the health check and the static client behind one mux.
type Server struct {
	h http.Handler

	mu     sync.Mutex
	srv    *http.Server
	closed bool
}

func NewServer(api *Handler, webDir string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/api/", api)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	RegisterStaticRoutes(mux, webDir)
	return &Server{h: mux}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.h.ServeHTTP(w, r)
}

// Listen serves on addr until Close is called, then returns
// http.ErrServerClosed.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

func (s *Server) Serve(ln net.Listener) error {
	// no WriteTimeout: event streams stay open
	srv := &http.Server{
		Handler:           s.h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = ln.Close()
		return http.ErrServerClosed
	}
	s.srv = srv
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.srv = nil
		s.mu.Unlock()
	}()

	log.Printf("HTTP listening on %s", ln.Addr())
	return srv.Serve(ln)
}

// Close shuts the server down gracefully. A Serve that starts afterwards
// returns immediately.
func (s *Server) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
