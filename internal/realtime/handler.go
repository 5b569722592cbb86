// Package realtime implements the persistent-connection transport adapter.
// Each connection speaks JSON event frames over a websocket; every inbound
// geocoding request funnels through the same translator as the HTTP adapter.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"geogateway/internal/geocoding/transport"
	"geogateway/platform/config"
	"geogateway/platform/logger"
	"geogateway/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Translator is the slice of the request translator this adapter needs.
type Translator interface {
	Resolve(ctx context.Context, req transport.GeocodeRequest) transport.GeocodeResponse
}

// Handler upgrades connections and dispatches inbound event frames.
type Handler struct {
	svc      Translator
	log      *logger.Logger
	val      *validator.Validator
	upgrader websocket.Upgrader
}

func New(svc Translator, cfg config.HTTPConfig, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log,
		val: val,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg),
		},
	}
}

// originChecker mirrors the HTTP CORS policy for websocket upgrades.
func originChecker(cfg config.HTTPConfig) func(*http.Request) bool {
	if cfg.GetCORSAllowAll() {
		return func(*http.Request) bool { return true }
	}
	allowed := cfg.GetCORSOrigins()
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == origin {
				return true
			}
		}
		return false
	}
}

// Serve handles GET /ws: upgrade, then read frames until the peer goes away.
func (h *Handler) Serve(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	cn := newConn(uuid.NewString(), ws, h.log)
	h.log.RealtimeEvent("connected", cn.id)

	go cn.writeLoop()
	h.readLoop(cn)

	cn.close()
	h.log.RealtimeEvent("disconnected", cn.id)
}

func (h *Handler) readLoop(cn *conn) {
	for {
		_, payload, err := cn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				cn.log.Debug("realtime read failed", "error", err)
			}
			return
		}

		var frame struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(payload, &frame); err != nil {
			cn.log.Warn("discarding malformed realtime frame", "error", err)
			continue
		}

		switch frame.Event {
		case EventGeocodingRequest:
			// Independent task per request: a slow upstream call on this
			// connection never blocks other connections, and replies go only
			// to the connection that asked.
			go h.handleGeocodingRequest(cn, frame.Data)
		default:
			cn.log.Warn("discarding unknown realtime event", "event", frame.Event)
		}
	}
}

func (h *Handler) handleGeocodingRequest(cn *conn, data json.RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			cn.log.Error("panic in realtime request handler", "panic", r)
			cn.emit(EventGeocodingResponse, transport.Failure(fmt.Sprintf("Internal server error: %v", r)))
		}
	}()

	var req transport.GeocodeRequest
	if err := json.Unmarshal(data, &req); err != nil || h.val.Struct(req) != nil {
		cn.emit(EventGeocodingResponse, transport.Failure(transport.MsgTextRequired))
		return
	}

	// Deliberately not tied to the connection's lifetime: a peer dropping
	// mid-request does not cancel the in-flight upstream call, the late
	// reply is simply dropped.
	ctx := context.WithValue(context.Background(), logger.ConnectionIDKey, cn.id)
	resp := h.svc.Resolve(ctx, req)
	cn.emit(EventGeocodingResponse, resp)
}
