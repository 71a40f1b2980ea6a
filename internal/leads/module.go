// Package leads provides the lead pipeline bounded context module.
package leads

import (
	"mediagent_backend/internal/events"
	apphttp "mediagent_backend/internal/http"
	"mediagent_backend/internal/leads/handler"
	"mediagent_backend/internal/leads/repository"
	"mediagent_backend/internal/leads/service"
	"mediagent_backend/platform/logger"
	"mediagent_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the lead pipeline bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the lead pipeline. The enqueuer may be nil when no
// task queue is configured; enrichment requests then fail cleanly.
func NewModule(pool *pgxpool.Pool, bus events.Bus, enqueuer service.Enqueuer, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, enqueuer, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service exposes the lead service for sibling modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the lead pipeline routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

var _ apphttp.Module = (*Module)(nil)
