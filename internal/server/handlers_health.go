package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TheSuperiorStanislav/echo-practice/internal/version"
)

func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleReadiness has no external backends to probe; it reports ready along
// with the current registry size for operators.
func (s *Server) handleReadiness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ready",
		"rooms":  s.registry.RoomCount(),
	})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, version.Get())
}
