package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/TheSuperiorStanislav/echo-practice/internal/errors"
	"github.com/TheSuperiorStanislav/echo-practice/internal/models"
)

const defaultListCount = 5

// handlePing logs any JSON body it receives and answers 204 regardless.
// Non-JSON bodies are accepted silently.
func (s *Server) handlePing(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return apperrors.InternalError("failed to read request body", err)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.NoContent(http.StatusNoContent)
	}

	slog.InfoContext(c.Request().Context(), "Ping received", "body", payload)
	return c.NoContent(http.StatusNoContent)
}

// handlePostRequest validates the example request and echoes it back.
func (s *Server) handlePostRequest(c echo.Context) error {
	var req models.ExampleRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("request body must be valid JSON")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := req.CheckDate(s.clock.Now()); err != nil {
		return apperrors.ValidationError(err.Error())
	}

	return c.JSON(http.StatusOK, req)
}

// handleListRequest returns `count` numbered items, each carrying the
// optional choices_text value (null when absent).
func (s *Server) handleListRequest(c echo.Context) error {
	count := defaultListCount
	if raw := c.QueryParam("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return apperrors.ValidationError("count must be a non-negative integer").
				WithContext("count", raw)
		}
		count = parsed
	}

	var choices *models.TextEnum
	if raw := c.QueryParam("choices_text"); raw != "" {
		value := models.TextEnum(raw)
		if !value.Valid() {
			return apperrors.ValidationError("choices_text must be one of: first, second, third").
				WithContext("choices_text", raw)
		}
		choices = &value
	}

	items := make([]models.GetExampleResponse, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, models.GetExampleResponse{
			Number:      i,
			ChoicesText: choices,
		})
	}

	return c.JSON(http.StatusOK, items)
}

// handleWebSocketExample serves the demo chat page with the websocket
// backend URL filled in from config.
func (s *Server) handleWebSocketExample(c echo.Context) error {
	data := map[string]any{
		"BackendURL": s.config.BackendWSURL,
	}
	return renderTemplate(c, s.chatTemplate, data)
}
