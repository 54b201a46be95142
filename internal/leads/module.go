// Package leads provides the lead persistence bounded context module.
package leads

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "prequal_backend/internal/http"
	"prequal_backend/internal/leads/handler"
	"prequal_backend/internal/leads/repository"
	"prequal_backend/internal/leads/service"
	"prequal_backend/platform/logger"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc)
	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for modules sharing the lead tables.
func (m *Module) Repository() *repository.Repository {
	return m.service.Repository()
}

// RegisterRoutes mounts the dashboard lead routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Dashboard.Group("/leads"))
}

var _ apphttp.Module = (*Module)(nil)
