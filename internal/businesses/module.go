// Package businesses is the business discovery bounded context: search,
// type catalog and export endpoints.
package businesses

import (
	"business_finder_backend/internal/businesses/catalog"
	"business_finder_backend/internal/businesses/handler"
	"business_finder_backend/internal/businesses/service"
	"business_finder_backend/internal/events"
	apphttp "business_finder_backend/internal/http"
	"business_finder_backend/internal/places"
	"business_finder_backend/platform/config"
	"business_finder_backend/platform/logger"
	"business_finder_backend/platform/phone"
	"business_finder_backend/platform/validator"
)

// Config is the configuration needed by the businesses module.
type Config interface {
	config.PlacesConfig
	config.DiscoveryConfig
	config.PhoneConfig
}

// Module wires the business discovery pipeline and its HTTP routes.
type Module struct {
	service *service.Service
	handler *handler.Handler
}

func NewModule(cfg Config, bus events.Bus, val *validator.Validator, log *logger.Logger) (*Module, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}

	normalizer := phone.NewNormalizer(cfg.GetPhoneDefaultRegion())
	svc := service.New(
		places.New(cfg, log),
		cat,
		normalizer.NormalizeE164,
		bus,
		service.OptionsFromConfig(cfg),
		log,
	)

	return &Module{
		service: svc,
		handler: handler.New(svc, val),
	}, nil
}

// Service exposes the pipeline to other modules (async search jobs).
func (m *Module) Service() *service.Service {
	return m.service
}

func (m *Module) Name() string {
	return "businesses"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.API.Group("/businesses")
	group.POST("/search", ctx.SearchRateLimiter.RateLimit(), m.handler.Search)
	group.GET("/types", m.handler.ListTypes)
	group.POST("/export", m.handler.Export)
}

var _ apphttp.Module = (*Module)(nil)
