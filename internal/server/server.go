package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

const _shutdownGrace = 5 * time.Second

type HTTPServer struct {
	s  *http.Server
	ln net.Listener
}

// NewHTTPServer serves on an already-bound listener so that the port
// scan owns the bind and "no free port" fails before the server exists.
func NewHTTPServer(ctx context.Context, ln net.Listener, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		s: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext: func(listener net.Listener) context.Context {
				return ctx
			},
		},
		ln: ln,
	}
}

func (s *HTTPServer) Addr() string {
	return s.ln.Addr().String()
}

func (s *HTTPServer) Start() error {
	return s.s.Serve(s.ln)
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.s.Shutdown(ctx)
}

func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error)
	go func() {
		errCh <- s.Start()
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), _shutdownGrace)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// ListenFirstFree binds the first free port in [from, to]. An explicit
// port is just a one-element range.
func ListenFirstFree(host string, from, to int) (net.Listener, error) {
	for port := from; port <= to; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
		if err != nil {
			continue
		}
		return ln, nil
	}

	return nil, fmt.Errorf("no free port in range %d-%d", from, to)
}
