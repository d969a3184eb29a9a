package correlation

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	first := NewID()
	second := NewID()

	assert.NotEqual(t, first, second)
	_, err := uuid.Parse(first)
	assert.NoError(t, err)
}

func TestContextRoundTrip(t *testing.T) {
	ctx := WithID(context.Background(), "abc-123")

	id, ok := ID(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc-123", id)
}

func TestIDMissing(t *testing.T) {
	_, ok := ID(context.Background())
	assert.False(t, ok)

	_, ok = ID(WithID(context.Background(), ""))
	assert.False(t, ok)
}

func TestHandlerInjectsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	ctx := WithID(context.Background(), "req-42")
	logger.InfoContext(ctx, "hello")

	assert.Contains(t, buf.String(), "correlation_id=req-42")
}

func TestHandlerWithoutCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("hello")

	assert.NotContains(t, buf.String(), "correlation_id")
}

func TestHandlerPreservesAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil))).With("component", "chat")

	logger.InfoContext(WithID(context.Background(), "req-7"), "hello")

	out := buf.String()
	assert.Contains(t, out, "component=chat")
	assert.Contains(t, out, "correlation_id=req-7")
}
