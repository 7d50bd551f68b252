package history

import (
	apphttp "business_finder_backend/internal/http"
)

// Module exposes search history. With a nil service the route answers 503.
type Module struct {
	handler *Handler
}

func NewModule(svc *Service) *Module {
	return &Module{handler: NewHandler(svc)}
}

func (m *Module) Name() string {
	return "history"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.GET("/businesses/searches", m.handler.List)
}

var _ apphttp.Module = (*Module)(nil)
