package realtime

import (
	apphttp "geogateway/internal/http"
	"geogateway/platform/config"
	"geogateway/platform/logger"
	"geogateway/platform/validator"
)

// Module wires the realtime websocket transport.
type Module struct {
	handler *Handler
}

func NewModule(svc Translator, cfg config.HTTPConfig, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{handler: New(svc, cfg, val, log)}
}

func (m *Module) Name() string {
	return "realtime"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Engine.GET("/ws", m.handler.Serve)
}

var _ apphttp.Module = (*Module)(nil)
