package realtime

import (
	"sync"

	"geogateway/platform/logger"

	"github.com/gorilla/websocket"
)

// Frame is the wire format for realtime events in both directions.
type Frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Realtime event names.
const (
	EventGeocodingRequest  = "geocoding-request"
	EventGeocodingResponse = "geocoding-response"
)

// conn wraps one websocket connection. All writes funnel through the outbox
// channel drained by a single writer goroutine, so concurrent request
// handlers never interleave frames on the socket.
type conn struct {
	id     string
	ws     *websocket.Conn
	outbox chan Frame
	done   chan struct{}
	once   sync.Once
	log    *logger.Logger
}

func newConn(id string, ws *websocket.Conn, log *logger.Logger) *conn {
	return &conn{
		id:     id,
		ws:     ws,
		outbox: make(chan Frame, 16),
		done:   make(chan struct{}),
		log:    log.WithConnectionID(id),
	}
}

// writeLoop drains the outbox until the connection is closed.
func (c *conn) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case frame := <-c.outbox:
			if err := c.ws.WriteJSON(frame); err != nil {
				c.log.Debug("realtime write failed", "error", err)
				c.close()
				return
			}
		}
	}
}

// emit queues a frame for the originating connection. Emitting to a
// connection that has already gone away is a silent no-op; a full outbox is
// logged and the frame dropped rather than blocking the handler.
func (c *conn) emit(event string, data interface{}) {
	frame := Frame{Event: event, Data: data}
	select {
	case <-c.done:
	case c.outbox <- frame:
	default:
		c.log.Warn("realtime outbox full, dropping frame", "event", event)
	}
}

// close tears the connection down exactly once. In-flight request handlers
// keep running; their late replies land in emit's no-op path.
func (c *conn) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}
