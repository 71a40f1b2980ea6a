// Package leadgen provides the lead generation bounded context:
// free-text search, provider queries with mock fallback, person
// enrichment, and outreach email drafting.
package leadgen

import (
	"mediagent_backend/internal/email"
	"mediagent_backend/internal/events"
	apphttp "mediagent_backend/internal/http"
	"mediagent_backend/internal/leadgen/agent"
	"mediagent_backend/internal/leadgen/handler"
	"mediagent_backend/internal/leadgen/service"
	leadsrepo "mediagent_backend/internal/leads/repository"
	"mediagent_backend/internal/pdl"
	"mediagent_backend/platform/ai/openai"
	"mediagent_backend/platform/config"
	"mediagent_backend/platform/logger"
	"mediagent_backend/platform/validator"
)

// Module is the lead generation bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the lead generation pipeline against the shared lead
// repository. When the completion API is not configured the keyword
// fallback parser carries all parsing.
func NewModule(cfg *config.Config, store *leadsrepo.Repository, sender email.Sender, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	client := pdl.New(cfg, log)

	var completions agent.CompletionClient
	if cfg.IsOpenAIEnabled() {
		completions = openai.NewClient(openai.Config{
			APIKey:  cfg.GetOpenAIAPIKey(),
			BaseURL: cfg.GetOpenAIBaseURL(),
			Model:   cfg.GetOpenAIModel(),
		})
	}
	llm := agent.New(completions, cfg.IsOpenAIEnabled(), log)

	svc := service.New(client, llm, store, sender, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leadgen"
}

// Service exposes the lead generation service for the worker binary.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the lead generation routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/leadgen")
	m.handler.RegisterRoutes(group)
}

var _ apphttp.Module = (*Module)(nil)
