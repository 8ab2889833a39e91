package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/matjam/crossfade/internal/middleware"
)

// Server answers control requests on a unix socket.
type Server struct {
	e    *echo.Echo
	path string
}

func NewServer(manager ManagerInterface) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.CharmLog())
	RegisterRoutes(e, manager)
	return &Server{e: e}
}

// Handler exposes the routes without a listener.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Listen binds the unix socket at path, replacing a stale socket file. It
// must be called before Serve.
func (s *Server) Listen(path string) error {
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", path, err)
	}
	s.path = path
	s.e.Listener = listener
	return nil
}

// Serve blocks until Shutdown is called.
func (s *Server) Serve() error {
	if s.e.Listener == nil {
		return errors.New("socket server: Listen was not called")
	}
	log.Infof("Control socket listening on %s", s.path)
	if err := s.e.StartServer(s.e.Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("socket server: %w", err)
	}
	return nil
}

// Shutdown stops the server and removes the socket file.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.e.Shutdown(ctx)
	if s.path != "" {
		_ = os.Remove(s.path)
	}
	return err
}
