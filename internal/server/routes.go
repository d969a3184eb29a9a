package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Demo API
	s.echo.POST("/ping/", s.handlePing)
	s.echo.POST("/request/", s.handlePostRequest)
	s.echo.GET("/list-request/", s.handleListRequest)

	// Chat example page and websocket endpoint
	s.echo.GET("/web-socket-example/", s.handleWebSocketExample)
	s.echo.GET("/ws/:chat/", s.handleChatWebSocket)
}
