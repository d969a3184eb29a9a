package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/TheSuperiorStanislav/echo-practice/internal/chat"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // demo API, clients connect from anywhere
	},
}

// handleChatWebSocket upgrades the connection, joins the named room, and
// pumps inbound frames into the room until the client goes away.
func (s *Server) handleChatWebSocket(c echo.Context) error {
	roomName := c.Param("chat")
	clientName := c.QueryParam("client_name")

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}

	if clientName == "" {
		denial := chat.NewConnectionDeniedEvent("client_name query parameter is required")
		if err := conn.WriteJSON(denial); err != nil {
			slog.Warn("Failed to write connection_denied", "room", roomName, "error", err)
		}
		_ = conn.Close()
		return nil
	}

	room := s.registry.GetOrCreate(roomName)
	clientID := room.Connect(clientName, conn)
	defer room.Disconnect(clientID)

	// Read pump — blocks until the connection closes or the client violates
	// the protocol. Either way only this client is affected.
	for {
		var event chat.InboundEvent
		if err := conn.ReadJSON(&event); err != nil {
			break
		}
		if err := room.ProcessEvent(clientID, event); err != nil {
			if errors.Is(err, chat.ErrUnknownEventTag) {
				slog.Warn("Closing connection after protocol violation",
					"room", roomName, "client_id", clientID, "error", err)
			} else {
				slog.Error("Failed to process event",
					"room", roomName, "client_id", clientID, "error", err)
			}
			break
		}
	}

	return nil
}
