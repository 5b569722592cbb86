// Package geocoding wires the gateway's core translation path: upstream
// client, request translator, and the HTTP transport adapter.
package geocoding

import (
	"geogateway/internal/geocoding/client"
	"geogateway/internal/geocoding/handler"
	"geogateway/internal/geocoding/service"
	apphttp "geogateway/internal/http"
	"geogateway/platform/config"
	"geogateway/platform/logger"
)

// Module owns the geocoding HTTP surface and exposes the shared translator
// for other transports.
type Module struct {
	svc     *service.Service
	handler *handler.Handler
}

func NewModule(cfg config.GeocodingConfig, log *logger.Logger) *Module {
	upstream := client.New(cfg, log)
	svc := service.New(upstream, log)
	h := handler.New(svc)
	return &Module{svc: svc, handler: h}
}

func (m *Module) Name() string {
	return "geocoding"
}

// Translator returns the shared request translator so the realtime transport
// funnels through the exact same code path as HTTP.
func (m *Module) Translator() *service.Service {
	return m.svc
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Engine.POST("/geocode", m.handler.Geocode)
}

var _ apphttp.Module = (*Module)(nil)
