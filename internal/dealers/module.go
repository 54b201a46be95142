// Package dealers provides the dealer directory bounded context module.
package dealers

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"prequal_backend/internal/dealers/handler"
	"prequal_backend/internal/dealers/repository"
	"prequal_backend/internal/dealers/service"
	apphttp "prequal_backend/internal/http"
	"prequal_backend/platform/logger"
)

// Module is the dealers bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the dealers module with all its dependencies.
func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc)
	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dealers"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the dashboard dealer routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Dashboard.Group("/dealers"))
}

var _ apphttp.Module = (*Module)(nil)
