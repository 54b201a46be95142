// Package intake provides the conversation engine bounded context module.
package intake

import (
	"github.com/redis/go-redis/v9"

	"prequal_backend/internal/events"
	apphttp "prequal_backend/internal/http"
	"prequal_backend/internal/intake/handler"
	"prequal_backend/internal/intake/ports"
	"prequal_backend/internal/intake/repository"
	"prequal_backend/internal/intake/service"
	"prequal_backend/platform/config"
	"prequal_backend/platform/logger"
	"prequal_backend/platform/validator"
)

// Module is the intake bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the intake module with all its
// dependencies. The extractor may be nil; turns then rely on the fields the
// voice platform already extracted.
func NewModule(
	redisClient *redis.Client,
	cfg config.SessionConfig,
	leads ports.LeadStore,
	router ports.LeadRouter,
	matcher ports.AttributionMatcher,
	extractor ports.Extractor,
	bus events.Bus,
	log *logger.Logger,
	val *validator.Validator,
) *Module {
	sessions := repository.NewSessionRepository(redisClient, cfg.GetSessionTTL())
	svc := service.New(sessions, leads, router, matcher, extractor, bus, log)
	h := handler.New(svc, val)
	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "intake"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the conversation routes on the telephony group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Telephony.Group("/conversations"))
}

var _ apphttp.Module = (*Module)(nil)
