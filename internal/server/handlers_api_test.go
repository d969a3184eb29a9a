package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheSuperiorStanislav/echo-practice/internal/models"
)

func doJSON(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func TestHandlePing(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(srv, http.MethodPost, "/ping/", `{"hello":"world"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	// Invalid JSON is accepted silently, same status
	rec = doJSON(srv, http.MethodPost, "/ping/", `not json at all`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandlePostRequest_EchoesValidBody(t *testing.T) {
	srv := newTestServer(t, nil)

	body := `{"text":"hi","choices_text":"first","number":0,"some_date":"2020-01-01","list_field":["a","b"]}`
	rec := doJSON(srv, http.MethodPost, "/request/", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, body, rec.Body.String())
}

func TestHandlePostRequest_RejectsInvalidBodies(t *testing.T) {
	srv := newTestServer(t, nil)

	longText, _ := json.Marshal(strings.Repeat("a", 256))
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{{{`},
		{"text too long", fmt.Sprintf(`{"text":%s,"choices_text":"first","number":1,"some_date":"2020-01-01","list_field":[]}`, longText)},
		{"bad enum", `{"text":"hi","choices_text":"fourth","number":1,"some_date":"2020-01-01","list_field":[]}`},
		{"number too large", `{"text":"hi","choices_text":"first","number":1000000,"some_date":"2020-01-01","list_field":[]}`},
		{"negative number", `{"text":"hi","choices_text":"first","number":-1,"some_date":"2020-01-01","list_field":[]}`},
		{"missing number", `{"text":"hi","choices_text":"first","some_date":"2020-01-01","list_field":[]}`},
		{"bad date format", `{"text":"hi","choices_text":"first","number":1,"some_date":"01.01.2020","list_field":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(srv, http.MethodPost, "/request/", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"type":"validation"`)
		})
	}
}

func TestHandlePostRequest_DateBoundary(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	srv := newTestServer(t, clock)

	body := func(date string) string {
		return fmt.Sprintf(`{"text":"hi","choices_text":"second","number":7,"some_date":%q,"list_field":[]}`, date)
	}

	rec := doJSON(srv, http.MethodPost, "/request/", body("2024-05-01"))
	assert.Equal(t, http.StatusOK, rec.Code, "today is allowed")

	rec = doJSON(srv, http.MethodPost, "/request/", body("2024-05-02"))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "tomorrow is rejected")
	assert.Contains(t, rec.Body.String(), "future")
}

func TestHandleListRequest_Defaults(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(srv, http.MethodGet, "/list-request/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.GetExampleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 5)
	for i, item := range items {
		assert.Equal(t, i, item.Number)
		assert.Nil(t, item.ChoicesText)
	}
}

func TestHandleListRequest_WithParams(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(srv, http.MethodGet, "/list-request/?count=3&choices_text=second", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.GetExampleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 3)
	for _, item := range items {
		require.NotNil(t, item.ChoicesText)
		assert.Equal(t, models.TextSecond, *item.ChoicesText)
	}
}

func TestHandleListRequest_InvalidParams(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(srv, http.MethodGet, "/list-request/?count=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(srv, http.MethodGet, "/list-request/?choices_text=fourth", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "choices_text")
}

func TestHandleWebSocketExample(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(srv, http.MethodGet, "/web-socket-example/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ws://localhost:8080")
}
