package chat

import (
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/TheSuperiorStanislav/echo-practice/internal/metrics"
)

// Registry maps room names to Room instances, creating rooms lazily on first
// reference. It is an explicit object injected at startup rather than a
// package-level map, so independent instances can coexist in tests. Rooms
// live for the registry's lifetime; there is no eviction.
type Registry struct {
	clock clockwork.Clock

	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry creates an empty registry. The clock is handed to every room it
// creates and drives message timestamps and write deadlines.
func NewRegistry(clock clockwork.Clock) *Registry {
	return &Registry{
		clock: clock,
		rooms: make(map[string]*Room),
	}
}

// GetOrCreate returns the room for the given name, creating it on first use.
// Concurrent calls with the same name observe the same Room instance.
func (reg *Registry) GetOrCreate(name string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[name]
	if !ok {
		room = newRoom(name, reg.clock)
		reg.rooms[name] = room
		metrics.ChatActiveRooms.Set(float64(len(reg.rooms)))
		slog.Info("Room created", "room", name)
	}
	return room
}

// RoomCount returns the number of rooms created so far.
func (reg *Registry) RoomCount() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}

// Shutdown closes every connection in every room. No user_disconnected
// events are emitted; the process is going away.
func (reg *Registry) Shutdown() {
	reg.mu.Lock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.Unlock()

	for _, room := range rooms {
		room.close()
	}
	slog.Info("Registry shut down", "rooms", len(rooms))
}
