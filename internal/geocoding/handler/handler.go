// Package handler exposes the geocoding gateway's HTTP endpoint.
package handler

import (
	"context"

	"geogateway/internal/geocoding/transport"
	"geogateway/platform/apperr"
	"geogateway/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Translator is the slice of the request translator the handler needs.
type Translator interface {
	Resolve(ctx context.Context, req transport.GeocodeRequest) transport.GeocodeResponse
}

// Handler maps HTTP requests onto the shared request translator.
type Handler struct {
	svc Translator
}

func New(svc Translator) *Handler {
	return &Handler{svc: svc}
}

// Geocode handles POST /geocode.
//
// Missing or empty text is rejected with 400 before any upstream call. A
// handled upstream failure is still a 200 at this layer: the gateway is
// reporting, not failing, and the envelope carries the error status.
func (h *Handler) Geocode(c *gin.Context) {
	var req transport.GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		httpkit.HandleError(c, apperr.Validation(transport.MsgTextRequired))
		return
	}

	resp := h.svc.Resolve(c.Request.Context(), req)
	httpkit.OK(c, resp)
}
