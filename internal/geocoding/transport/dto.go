// Package transport defines the wire-level shapes shared by every transport
// adapter of the geocoding gateway.
package transport

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// MsgUpstreamFailure is the fixed caller-facing message for any upstream
// failure. The underlying detail is logged server-side and never leaks here.
const MsgUpstreamFailure = "Failed to communicate with geocoding service"

// MsgTextRequired is the validation message for a missing or empty text query.
const MsgTextRequired = "Text query is required"

// GeocodeRequest is the inbound query, identical over HTTP and realtime.
type GeocodeRequest struct {
	Text string `json:"text" validate:"required"`
	K    string `json:"k,omitempty" validate:"omitempty"`
}

// GeocodeResult is a single upstream match. The gateway relays it verbatim
// and never interprets the coordinate payloads.
type GeocodeResult struct {
	DisplayName   string      `json:"displayName"`
	Confidence    []float64   `json:"confidence"`
	BoundingBoxes [][]float64 `json:"boundingBoxes"`
	LevelPolygons [][]float64 `json:"levelPolygons"`
}

// GeocodeResponse is the normalized envelope returned uniformly regardless of
// transport. Exactly one of Results/Message is meaningful per status value.
type GeocodeResponse struct {
	Status  string          `json:"status"`
	Results []GeocodeResult `json:"results,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Success builds a success envelope around upstream results.
func Success(results []GeocodeResult) GeocodeResponse {
	return GeocodeResponse{Status: StatusSuccess, Results: results}
}

// Failure builds an error envelope with the given caller-facing message.
func Failure(message string) GeocodeResponse {
	return GeocodeResponse{Status: StatusError, Message: message}
}
