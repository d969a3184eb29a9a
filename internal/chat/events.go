package chat

// ClientInfo identifies one connected participant in a room. It is created at
// connect time and immutable afterwards.
type ClientInfo struct {
	ClientID   string `json:"clientId"`
	ClientName string `json:"clientName"`
}

// Message is one chat message in a room's history.
type Message struct {
	Message    string     `json:"message"`
	Created    string     `json:"created"`
	ClientInfo ClientInfo `json:"clientInfo"`
}

// EventTag discriminates the event union on the wire.
type EventTag string

const (
	EventConnectionStarted EventTag = "connection_started"
	EventConnectionDenied  EventTag = "connection_denied"
	EventNewMessage        EventTag = "new_message"
	EventUserConnected     EventTag = "user_connected"
	EventUserDisconnected  EventTag = "user_disconnected"
)

// Event is a serializable, tagged message broadcast over the websocket
// channel describing a state change.
type Event interface {
	Tag() EventTag
}

// ConnectionStartedEvent is sent only to the newly connected client and
// carries the full room history at the moment of connection.
type ConnectionStartedEvent struct {
	EventTag   EventTag   `json:"event_tag"`
	ClientInfo ClientInfo `json:"clientInfo"`
	Messages   []Message  `json:"messages"`
}

func (e ConnectionStartedEvent) Tag() EventTag { return e.EventTag }

// NewConnectionStartedEvent builds a connection_started event. A nil history
// serializes as an empty array, not null.
func NewConnectionStartedEvent(info ClientInfo, history []Message) ConnectionStartedEvent {
	if history == nil {
		history = []Message{}
	}
	return ConnectionStartedEvent{EventTag: EventConnectionStarted, ClientInfo: info, Messages: history}
}

// ConnectionDeniedEvent rejects a connection attempt.
type ConnectionDeniedEvent struct {
	EventTag EventTag `json:"event_tag"`
	Reason   string   `json:"reason"`
}

func (e ConnectionDeniedEvent) Tag() EventTag { return e.EventTag }

func NewConnectionDeniedEvent(reason string) ConnectionDeniedEvent {
	return ConnectionDeniedEvent{EventTag: EventConnectionDenied, Reason: reason}
}

// MessageEvent broadcasts one new message to every client in the room.
type MessageEvent struct {
	EventTag EventTag `json:"event_tag"`
	Message  Message  `json:"message"`
}

func (e MessageEvent) Tag() EventTag { return e.EventTag }

func NewMessageEvent(msg Message) MessageEvent {
	return MessageEvent{EventTag: EventNewMessage, Message: msg}
}

// UserConnectedEvent announces a new participant to the room.
type UserConnectedEvent struct {
	EventTag   EventTag   `json:"event_tag"`
	ClientInfo ClientInfo `json:"clientInfo"`
}

func (e UserConnectedEvent) Tag() EventTag { return e.EventTag }

func NewUserConnectedEvent(info ClientInfo) UserConnectedEvent {
	return UserConnectedEvent{EventTag: EventUserConnected, ClientInfo: info}
}

// UserDisconnectedEvent announces a departed participant to the room.
type UserDisconnectedEvent struct {
	EventTag   EventTag   `json:"event_tag"`
	ClientInfo ClientInfo `json:"clientInfo"`
}

func (e UserDisconnectedEvent) Tag() EventTag { return e.EventTag }

func NewUserDisconnectedEvent(info ClientInfo) UserDisconnectedEvent {
	return UserDisconnectedEvent{EventTag: EventUserDisconnected, ClientInfo: info}
}

// InboundEvent is the shape of a client frame. Only new_message is accepted;
// anything else is a protocol violation.
type InboundEvent struct {
	EventTag EventTag `json:"event_tag"`
	Message  string   `json:"message"`
}
