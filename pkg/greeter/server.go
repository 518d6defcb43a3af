package greeter

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

// Server binds the service port. Separate from NewHandler so importing
// the package never starts listening.
type Server struct {
	server *http.Server
}

func NewServer(port int, handler http.Handler) *Server {
	return &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%v", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// ListenAndServe serves until the listener fails or ctx is cancelled, in
// which case the server drains connections before returning.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancelFunc := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelFunc()
		return s.server.Shutdown(shutdownCtx)
	}
}
