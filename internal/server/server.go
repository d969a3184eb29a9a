package server

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/TheSuperiorStanislav/echo-practice/internal/chat"
	"github.com/TheSuperiorStanislav/echo-practice/internal/config"
	apperrors "github.com/TheSuperiorStanislav/echo-practice/internal/errors"
)

const chatTemplateName = "websocket-example.html"

type Server struct {
	echo         *echo.Echo
	config       *config.Config
	registry     *chat.Registry
	clock        clockwork.Clock
	chatTemplate *template.Template
}

func NewServer(cfg *config.Config, registry *chat.Registry, clock clockwork.Clock) (*Server, error) {
	// Parse templates once at startup
	chatTmpl, err := template.ParseFiles(filepath.Join(cfg.TemplateDir, chatTemplateName))
	if err != nil {
		return nil, fmt.Errorf("failed to parse chat example template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{validate: validator.New()}

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(correlationMiddleware())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"*"},
	}))
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:         e,
		config:       cfg,
		registry:     registry,
		clock:        clock,
		chatTemplate: chatTmpl,
	}

	// Register routes
	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requestValidator adapts go-playground/validator to Echo's Validator interface.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return apperrors.ValidationError(err.Error())
	}
	return nil
}

// renderTemplate renders a template to a buffer first to prevent partial HTML
// from being sent if template execution fails.
func renderTemplate(c echo.Context, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.Error("Template execution failed", "path", c.Request().URL.Path, "error", err)
		return apperrors.InternalError("failed to render page", err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
