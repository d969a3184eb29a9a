// Package chat implements the multi-room WebSocket broadcaster.
//
// A Registry hands out one Room per name. Each Room tracks membership and
// message history behind a single mutex and fans out typed events to all
// connected clients. Per-connection write goroutines with bounded buffers keep
// a slow or dead client from blocking the rest of the room.
package chat
