// Package server implements the HTTP layer using the Echo framework.
//
// Routes: demo API (ping, request, list-request), the chat example page, the
// chat websocket endpoint, and observability (health, metrics, version).
// Handlers split by concern: handlers_api.go, handlers_ws.go, handlers_health.go.
package server
