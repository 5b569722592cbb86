package realtime

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"geogateway/internal/geocoding/transport"
	apphttp "geogateway/internal/http"
	"geogateway/platform/config"
	"geogateway/platform/logger"
	"geogateway/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type fakeTranslator struct {
	calls int64
	delay map[string]time.Duration
	panic bool
}

func (f *fakeTranslator) Resolve(_ context.Context, req transport.GeocodeRequest) transport.GeocodeResponse {
	atomic.AddInt64(&f.calls, 1)
	if f.panic {
		panic("translator blew up")
	}
	if d, ok := f.delay[req.Text]; ok {
		time.Sleep(d)
	}
	return transport.Success([]transport.GeocodeResult{{DisplayName: req.Text}})
}

type responseFrame struct {
	Event string                    `json:"event"`
	Data  transport.GeocodeResponse `json:"data"`
}

func newRealtimeServer(t *testing.T, svc Translator) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	cfg := &config.Config{CORSAllowAll: true}
	m := NewModule(svc, cfg, validator.New(), logger.New("development"))
	m.RegisterRoutes(&apphttp.RouterContext{Engine: engine})

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func sendGeocodingRequest(t *testing.T, ws *websocket.Conn, req transport.GeocodeRequest) {
	t.Helper()
	if err := ws.WriteJSON(Frame{Event: EventGeocodingRequest, Data: req}); err != nil {
		t.Fatalf("failed to write frame: %v", err)
	}
}

func readResponse(t *testing.T, ws *websocket.Conn) responseFrame {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame responseFrame
	if err := ws.ReadJSON(&frame); err != nil {
		t.Fatalf("failed to read response frame: %v", err)
	}
	if frame.Event != EventGeocodingResponse {
		t.Fatalf("expected %s event, got %s", EventGeocodingResponse, frame.Event)
	}
	return frame
}

func TestGeocodingRoundTrip(t *testing.T) {
	srv := newRealtimeServer(t, &fakeTranslator{})
	ws := dial(t, srv)

	sendGeocodingRequest(t, ws, transport.GeocodeRequest{Text: "Paris", K: "3"})

	frame := readResponse(t, ws)
	if frame.Data.Status != transport.StatusSuccess {
		t.Fatalf("expected success envelope, got %+v", frame.Data)
	}
	if len(frame.Data.Results) != 1 || frame.Data.Results[0].DisplayName != "Paris" {
		t.Fatalf("unexpected results: %+v", frame.Data.Results)
	}
}

func TestMissingTextYieldsValidationError(t *testing.T) {
	fake := &fakeTranslator{}
	srv := newRealtimeServer(t, fake)
	ws := dial(t, srv)

	sendGeocodingRequest(t, ws, transport.GeocodeRequest{K: "2"})

	frame := readResponse(t, ws)
	if frame.Data.Status != transport.StatusError || frame.Data.Message != transport.MsgTextRequired {
		t.Fatalf("unexpected envelope: %+v", frame.Data)
	}
	if atomic.LoadInt64(&fake.calls) != 0 {
		t.Fatalf("translator must not be called on validation failure")
	}
}

func TestUnknownEventKeepsConnectionAlive(t *testing.T) {
	srv := newRealtimeServer(t, &fakeTranslator{})
	ws := dial(t, srv)

	if err := ws.WriteJSON(Frame{Event: "ping", Data: "ignored"}); err != nil {
		t.Fatalf("failed to write frame: %v", err)
	}
	if err := ws.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("failed to write frame: %v", err)
	}

	// The connection must survive both and still serve requests.
	sendGeocodingRequest(t, ws, transport.GeocodeRequest{Text: "Madrid"})
	frame := readResponse(t, ws)
	if frame.Data.Status != transport.StatusSuccess {
		t.Fatalf("expected success after garbage frames, got %+v", frame.Data)
	}
}

func TestTranslatorPanicYieldsErrorEnvelope(t *testing.T) {
	srv := newRealtimeServer(t, &fakeTranslator{panic: true})
	ws := dial(t, srv)

	sendGeocodingRequest(t, ws, transport.GeocodeRequest{Text: "Paris"})

	frame := readResponse(t, ws)
	if frame.Data.Status != transport.StatusError || frame.Data.Message == "" {
		t.Fatalf("expected error envelope with a message, got %+v", frame.Data)
	}
}

func TestConnectionsAreIndependent(t *testing.T) {
	fake := &fakeTranslator{delay: map[string]time.Duration{"slow": 500 * time.Millisecond}}
	srv := newRealtimeServer(t, fake)

	slowConn := dial(t, srv)
	fastConn := dial(t, srv)

	sendGeocodingRequest(t, slowConn, transport.GeocodeRequest{Text: "slow"})
	sendGeocodingRequest(t, fastConn, transport.GeocodeRequest{Text: "fast"})

	// The fast connection's reply must not wait for the slow one.
	start := time.Now()
	fastFrame := readResponse(t, fastConn)
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Fatalf("fast connection was delayed by the slow one: %v", elapsed)
	}
	if len(fastFrame.Data.Results) != 1 || fastFrame.Data.Results[0].DisplayName != "fast" {
		t.Fatalf("reply crossed connections: %+v", fastFrame.Data)
	}

	slowFrame := readResponse(t, slowConn)
	if len(slowFrame.Data.Results) != 1 || slowFrame.Data.Results[0].DisplayName != "slow" {
		t.Fatalf("reply crossed connections: %+v", slowFrame.Data)
	}
}

func TestDisconnectDuringRequestDoesNotCrash(t *testing.T) {
	fake := &fakeTranslator{delay: map[string]time.Duration{"slow": 200 * time.Millisecond}}
	srv := newRealtimeServer(t, fake)

	ws := dial(t, srv)
	sendGeocodingRequest(t, ws, transport.GeocodeRequest{Text: "slow"})
	_ = ws.Close()

	// The in-flight call completes and its reply is dropped silently. A
	// second connection must be unaffected.
	time.Sleep(300 * time.Millisecond)

	other := dial(t, srv)
	sendGeocodingRequest(t, other, transport.GeocodeRequest{Text: "Lisbon"})
	frame := readResponse(t, other)
	if frame.Data.Status != transport.StatusSuccess {
		t.Fatalf("expected success envelope, got %+v", frame.Data)
	}
}
