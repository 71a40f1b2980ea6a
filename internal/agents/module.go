// Package agents provides the agent workspace bounded context: named
// workspaces a user runs lead searches from, with attached files.
package agents

import (
	"mediagent_backend/internal/adapters/storage"
	"mediagent_backend/internal/agents/handler"
	"mediagent_backend/internal/agents/repository"
	"mediagent_backend/internal/agents/service"
	apphttp "mediagent_backend/internal/http"
	leadsrepo "mediagent_backend/internal/leads/repository"
	"mediagent_backend/platform/logger"
	"mediagent_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the agent workspace bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the agents module. The object store may be nil when
// file storage is not configured.
func NewModule(pool *pgxpool.Pool, leads *leadsrepo.Repository, store storage.ObjectStore, bucket string, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leads, store, bucket, log)
	h := handler.New(svc, val)
	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "agents"
}

// RegisterRoutes mounts the agent workspace routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

var _ apphttp.Module = (*Module)(nil)
