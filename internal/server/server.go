package server

import (
	"context"
	"errors"
	"log"
	"net"
	"sync"
	"time"
)

// Server accepts connections and hands each one to a new goroutine running Handler.
//
// With MaxConns == 0 the number of concurrent connections is unbounded and no
// read deadline applies unless Handler.ReadTimeout is set, so a silent client
// holds its goroutine until it disconnects.
type Server struct {
	Handler *Handler
	// MaxConns bounds concurrently handled connections. When the bound is
	// reached the accept loop waits for a connection to finish. Zero means unbounded.
	MaxConns int
	Diag     *log.Logger

	wg sync.WaitGroup
}

// New creates a Server for h.
func New(h *Handler) *Server {
	return &Server{Handler: h, Diag: h.Diag}
}

func (s *Server) diag() *log.Logger {
	if s.Diag == nil {
		return log.Default()
	}
	return s.Diag
}

// ListenAndServe binds addr over TCP and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or ln is closed,
// then waits for in-flight connections to finish. Accept failures are logged
// and do not stop the loop.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	var slots chan struct{}
	if s.MaxConns > 0 {
		slots = make(chan struct{}, s.MaxConns)
	}

	var delay time.Duration
	for {
		if slots != nil {
			slots <- struct{}{}
		}

		conn, err := ln.Accept()
		if err != nil {
			if slots != nil {
				<-slots
			}
			if errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			s.diag().Printf("accept error: %v", err)
			delay = backoff(delay)
			time.Sleep(delay)
			continue
		}
		delay = 0

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if slots != nil {
				defer func() { <-slots }()
			}
			s.Handler.ServeConn(conn)
		}()
	}
}

// backoff doubles the pause after consecutive accept failures, up to one second.
func backoff(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	if d *= 2; d > time.Second {
		return time.Second
	}
	return d
}
