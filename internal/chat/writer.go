package chat

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/TheSuperiorStanislav/echo-practice/internal/metrics"
)

const (
	writeDeadline     = 5 * time.Second
	messageBufferSize = 16
)

// clientWriter serializes all writes to one connection through a single
// goroutine, so broadcasts never write to a socket concurrently.
type clientWriter struct {
	connection  *websocket.Conn
	clock       clockwork.Clock
	sendChannel chan []byte
	doneChannel chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

func newClientWriter(connection *websocket.Conn, clock clockwork.Clock) *clientWriter {
	cw := &clientWriter{
		connection:  connection,
		clock:       clock,
		sendChannel: make(chan []byte, messageBufferSize),
		doneChannel: make(chan struct{}),
	}
	cw.wg.Add(1)
	go cw.run()
	return cw
}

func (cw *clientWriter) run() {
	defer cw.wg.Done()

	for {
		select {
		case msg, ok := <-cw.sendChannel:
			if !ok {
				return
			}
			_ = cw.connection.SetWriteDeadline(cw.clock.Now().Add(writeDeadline))
			if err := cw.connection.WriteMessage(websocket.TextMessage, msg); err != nil {
				metrics.WebSocketSendFailures.Inc()
				return
			}
		case <-cw.doneChannel:
			return
		}
	}
}

// trySend queues data without blocking. Returns false when the buffer is
// full, which the room treats as a slow client.
func (cw *clientWriter) trySend(data []byte) bool {
	select {
	case cw.sendChannel <- data:
		return true
	default:
		return false
	}
}

func (cw *clientWriter) stop() {
	cw.stopOnce.Do(func() {
		close(cw.doneChannel)
		_ = cw.connection.Close()
	})
	cw.wg.Wait()
}
