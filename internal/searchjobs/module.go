package searchjobs

import (
	apphttp "business_finder_backend/internal/http"
	"business_finder_backend/platform/validator"
)

// Module exposes async search endpoints. With a nil service every route
// answers 503.
type Module struct {
	handler *Handler
}

func NewModule(svc *Service, val *validator.Validator) *Module {
	return &Module{handler: NewHandler(svc, val)}
}

func (m *Module) Name() string {
	return "searchjobs"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.API.Group("/businesses/search/jobs")
	group.POST("", ctx.SearchRateLimiter.RateLimit(), m.handler.Submit)
	group.GET("/:id", m.handler.Get)
}

var _ apphttp.Module = (*Module)(nil)
