package chat

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/TheSuperiorStanislav/echo-practice/internal/metrics"
)

var (
	// ErrUnknownEventTag reports an inbound frame whose event_tag is missing
	// or outside the supported set. The host layer treats it as a protocol
	// violation and closes the offending connection.
	ErrUnknownEventTag = errors.New("unknown event tag")

	// ErrClientNotConnected reports an operation on a client id that is not
	// currently connected to the room.
	ErrClientNotConnected = errors.New("client not connected")
)

const clientIDLength = 6

// Room is one isolated chat channel: its membership, its message history, and
// the fan-out logic for typed events. All state is guarded by a single mutex;
// broadcasts snapshot the recipient list under the lock and write outside it.
type Room struct {
	name  string
	clock clockwork.Clock

	mu          sync.Mutex
	messages    []Message
	clients     map[string]ClientInfo
	connections map[string]*clientWriter
}

func newRoom(name string, clock clockwork.Clock) *Room {
	return &Room{
		name:        name,
		clock:       clock,
		clients:     make(map[string]ClientInfo),
		connections: make(map[string]*clientWriter),
	}
}

// Name returns the room's name.
func (r *Room) Name() string { return r.name }

// Connect registers a new client under a fresh id, announces it to everyone
// in the room (the new client included), and sends the full history to the
// new client only. The returned id is the session key for ProcessEvent and
// Disconnect. Display names are not required to be unique.
func (r *Room) Connect(clientName string, conn *websocket.Conn) string {
	cw := newClientWriter(conn, r.clock)

	r.mu.Lock()
	clientID := r.uniqueClientIDLocked()
	info := ClientInfo{ClientID: clientID, ClientName: clientName}
	r.clients[clientID] = info
	r.connections[clientID] = cw
	history := append([]Message{}, r.messages...)
	r.mu.Unlock()

	metrics.ChatConnectedClients.Inc()
	slog.Info("Client connected", "room", r.name, "client_id", clientID, "client_name", clientName)

	r.Broadcast(NewUserConnectedEvent(info))
	if err := r.BroadcastToClient(clientID, NewConnectionStartedEvent(info, history)); err != nil {
		slog.Warn("Failed to deliver connection_started", "room", r.name, "client_id", clientID, "error", err)
	}

	return clientID
}

// Disconnect removes the client and announces the departure to the remaining
// clients. Unknown ids are ignored, so racing transport-level and
// application-level disconnects is safe.
func (r *Room) Disconnect(clientID string) {
	r.mu.Lock()
	cw, ok := r.connections[clientID]
	if !ok {
		r.mu.Unlock()
		return
	}
	info := r.clients[clientID]
	delete(r.connections, clientID)
	delete(r.clients, clientID)
	recipients := r.recipientsLocked()
	r.mu.Unlock()

	cw.stop()
	metrics.ChatConnectedClients.Dec()
	slog.Info("Client disconnected", "room", r.name, "client_id", clientID, "client_name", info.ClientName)

	r.fanOut(recipients, NewUserDisconnectedEvent(info))
}

// ProcessEvent dispatches one inbound frame from the given client.
func (r *Room) ProcessEvent(clientID string, event InboundEvent) error {
	switch event.EventTag {
	case EventNewMessage:
		metrics.ChatInboundEventsTotal.WithLabelValues(string(EventNewMessage)).Inc()
		return r.onNewMessage(clientID, event.Message)
	default:
		metrics.ChatInboundEventsTotal.WithLabelValues("unknown").Inc()
		return fmt.Errorf("%w: %q", ErrUnknownEventTag, event.EventTag)
	}
}

func (r *Room) onNewMessage(clientID string, text string) error {
	r.mu.Lock()
	info, ok := r.clients[clientID]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrClientNotConnected, clientID)
	}
	msg := Message{
		Message:    text,
		Created:    r.clock.Now().UTC().Format(time.RFC3339),
		ClientInfo: info,
	}
	r.messages = append(r.messages, msg)
	recipients := r.recipientsLocked()
	r.mu.Unlock()

	metrics.ChatMessagesTotal.Inc()
	r.fanOut(recipients, NewMessageEvent(msg))
	return nil
}

// Broadcast sends the event to every currently connected client. A failing
// or slow recipient is evicted without affecting delivery to the others.
func (r *Room) Broadcast(event Event) {
	r.mu.Lock()
	recipients := r.recipientsLocked()
	r.mu.Unlock()

	r.fanOut(recipients, event)
}

// BroadcastToClient sends the event to exactly one client.
func (r *Room) BroadcastToClient(clientID string, event Event) error {
	r.mu.Lock()
	cw, ok := r.connections[clientID]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrClientNotConnected, clientID)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Tag(), err)
	}
	if !cw.trySend(data) {
		r.evictSlowClient(clientID)
	}
	return nil
}

// ClientCount returns the number of currently connected clients.
func (r *Room) ClientCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.connections)
}

// History returns a copy of the room's message history, ordered by arrival.
func (r *Room) History() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message{}, r.messages...)
}

type recipient struct {
	clientID string
	writer   *clientWriter
}

func (r *Room) recipientsLocked() []recipient {
	recipients := make([]recipient, 0, len(r.connections))
	for clientID, cw := range r.connections {
		recipients = append(recipients, recipient{clientID: clientID, writer: cw})
	}
	return recipients
}

func (r *Room) fanOut(recipients []recipient, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal event", "room", r.name, "event_tag", event.Tag(), "error", err)
		return
	}

	for _, rcp := range recipients {
		if !rcp.writer.trySend(data) {
			r.evictSlowClient(rcp.clientID)
		}
	}
}

func (r *Room) evictSlowClient(clientID string) {
	slog.Warn("Evicting slow client", "room", r.name, "client_id", clientID)
	metrics.ChatSlowClientsEvicted.Inc()
	r.Disconnect(clientID)
}

// uniqueClientIDLocked draws 6-digit ids until one is free among the
// currently connected clients. Ids may recur after a disconnect.
func (r *Room) uniqueClientIDLocked() string {
	for {
		clientID := randomClientID()
		if _, taken := r.connections[clientID]; !taken {
			return clientID
		}
	}
}

func randomClientID() string {
	var buf [clientIDLength]byte
	_, _ = rand.Read(buf[:])
	id := make([]byte, clientIDLength)
	for i, b := range buf {
		id[i] = '0' + b%10
	}
	return string(id)
}

// close drops every client without emitting user_disconnected events. Used
// during process shutdown.
func (r *Room) close() {
	r.mu.Lock()
	writers := make([]*clientWriter, 0, len(r.connections))
	for _, cw := range r.connections {
		writers = append(writers, cw)
	}
	dropped := len(r.connections)
	r.connections = make(map[string]*clientWriter)
	r.clients = make(map[string]ClientInfo)
	r.mu.Unlock()

	for _, cw := range writers {
		cw.stop()
	}
	metrics.ChatConnectedClients.Sub(float64(dropped))
}
