// Package service orchestrates lead generation: facet parsing, query
// translation, provider search with mock fallback, transformation,
// scoring, persistence, and outreach email drafting.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"mediagent_backend/internal/email"
	"mediagent_backend/internal/events"
	"mediagent_backend/internal/leadgen/query"
	"mediagent_backend/internal/leads/repository"
	"mediagent_backend/internal/pdl"
	"mediagent_backend/platform/apperr"
	"mediagent_backend/platform/logger"

	"github.com/google/uuid"
)

// LeadStore is the persistence surface the orchestration uses.
type LeadStore interface {
	UpsertMany(ctx context.Context, leads []repository.Lead) error
	GetByID(ctx context.Context, ownerID uuid.UUID, id string) (repository.Lead, error)
	GetAnyByID(ctx context.Context, id string) (repository.Lead, error)
	UpdateEnrichment(ctx context.Context, id, bio string, skills []string, industry string) error
}

// LLMAgent is the language model surface for parsing, synthesis, and
// drafting.
type LLMAgent interface {
	Enabled() bool
	ParseFacets(ctx context.Context, text string) (query.Facets, error)
	SynthesizeProfile(ctx context.Context, prompt string) (pdl.PersonRecord, error)
	DraftEmail(ctx context.Context, lead repository.Lead, searchContext string) (string, error)
}

// EnrichParams identify a person for the enrichment endpoint.
type EnrichParams struct {
	Email    string
	Linkedin string
	Name     string
	Company  string
}

// SearchRun is the result of a free-text search orchestration.
type SearchRun struct {
	Leads  []repository.Lead
	Facets query.Facets
	Source string
}

type Service struct {
	translator *query.Translator
	resolver   *Resolver
	client     SearchClient
	agent      LLMAgent
	store      LeadStore
	sender     email.Sender
	bus        events.Bus
	log        *logger.Logger
}

func New(client SearchClient, agent LLMAgent, store LeadStore, sender email.Sender, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		translator: query.NewTranslator(log),
		resolver:   NewResolver(client, log),
		client:     client,
		agent:      agent,
		store:      store,
		sender:     sender,
		bus:        bus,
		log:        log,
	}
}

// ParseQuery extracts facets from free text, preferring the language
// model and falling back to the keyword parser. It never fails.
func (s *Service) ParseQuery(ctx context.Context, text string) query.Facets {
	if s.agent != nil && s.agent.Enabled() {
		facets, err := s.agent.ParseFacets(ctx, text)
		if err == nil {
			return facets
		}
		s.log.FallbackUsed("query_parse", err.Error())
	}
	return query.ParseKeywords(text)
}

// PersonSearch translates the filter and resolves against the
// provider. Translation failures surface; provider failures do not.
func (s *Service) PersonSearch(ctx context.Context, f query.PersonFilter, limit int) (PersonOutcome, error) {
	sqlQuery, err := s.translator.PersonSQL(f)
	if err != nil {
		return PersonOutcome{}, err
	}
	return s.resolver.Persons(ctx, sqlQuery, f.Location, limit), nil
}

// PersonFallback returns the mock envelope without a provider call.
// Used when the search request body cannot be parsed at all.
func (s *Service) PersonFallback(location string) PersonOutcome {
	return s.resolver.PersonFallback(location)
}

// CompanyFallback mirrors PersonFallback for companies.
func (s *Service) CompanyFallback(location string) CompanyOutcome {
	return s.resolver.CompanyFallback(location)
}

// CompanySearch mirrors PersonSearch for companies.
func (s *Service) CompanySearch(ctx context.Context, f query.CompanyFilter, limit int) (CompanyOutcome, error) {
	sqlQuery, err := s.translator.CompanySQL(f)
	if err != nil {
		return CompanyOutcome{}, err
	}
	return s.resolver.Companies(ctx, sqlQuery, f.Location, limit), nil
}

// SearchLeads runs the full pipeline: parse facets, search persons and
// companies, transform and score, persist, publish.
func (s *Service) SearchLeads(ctx context.Context, ownerID uuid.UUID, agentID *uuid.UUID, freeText string, limit int) (SearchRun, error) {
	facets := s.ParseQuery(ctx, freeText)

	personOutcome, err := s.PersonSearch(ctx, query.PersonFilter{
		Titles:     facets.Titles,
		Industries: facets.Industries,
		Location:   facets.Location,
	}, limit)
	if err != nil {
		return SearchRun{}, err
	}

	persons := personOutcome.Data
	if personOutcome.Source == sourceMock && s.agent != nil && s.agent.Enabled() {
		if profile, synthErr := s.agent.SynthesizeProfile(ctx, freeText); synthErr == nil {
			persons = []pdl.PersonRecord{profile}
		} else {
			s.log.FallbackUsed("synthesize_profile", synthErr.Error())
		}
	}

	companyOutcome, err := s.CompanySearch(ctx, query.CompanyFilter{
		Industries:  facets.Industries,
		Location:    facets.Location,
		CompanySize: facets.CompanySize,
	}, limit)
	if err != nil {
		return SearchRun{}, err
	}

	leads := transformLeads(persons, companyOutcome.Data, facets, personOutcome.Source, ownerID, agentID)
	if err := s.store.UpsertMany(ctx, leads); err != nil {
		return SearchRun{}, err
	}

	leadIDs := make([]string, 0, len(leads))
	for _, lead := range leads {
		leadIDs = append(leadIDs, lead.ID)
	}
	s.bus.Publish(ctx, events.LeadsCaptured{
		BaseEvent: events.NewBaseEvent(),
		OwnerID:   ownerID,
		AgentID:   agentID,
		LeadIDs:   leadIDs,
		Source:    personOutcome.Source,
	})

	return SearchRun{Leads: leads, Facets: facets, Source: personOutcome.Source}, nil
}

// EnrichPerson looks up a single person. At least one identifier is
// required; provider failures surface as upstream errors.
func (s *Service) EnrichPerson(ctx context.Context, p EnrichParams) (pdl.EnrichResponse, error) {
	if p.Email == "" && p.Linkedin == "" && (p.Name == "" || p.Company == "") {
		return pdl.EnrichResponse{}, apperr.Validation("at least one identifier (email, linkedin, or name+company) is required")
	}

	resp, err := s.client.EnrichPerson(ctx, pdl.EnrichParams{
		Email:   p.Email,
		Profile: p.Linkedin,
		Name:    p.Name,
		Company: p.Company,
	})
	if err != nil {
		return pdl.EnrichResponse{}, apperr.Wrap(apperr.KindUnavailable, "enrichment provider unreachable", err)
	}
	if resp.Status != http.StatusOK {
		message := resp.ErrorMessage()
		if message == "" {
			message = fmt.Sprintf("enrichment failed with status %d", resp.Status)
		}
		return pdl.EnrichResponse{}, apperr.Unavailable(message)
	}
	return resp, nil
}

// EnrichStoredLead re-fetches enrichment for a persisted lead and
// stores the bio, skills, and industry it returns. Used by the
// background worker.
func (s *Service) EnrichStoredLead(ctx context.Context, leadID string) error {
	lead, err := s.store.GetAnyByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("lead not found")
		}
		return err
	}

	params := EnrichParams{Email: lead.Email, Linkedin: lead.LinkedinURL}
	if lead.Name != "" && lead.Company != "" {
		params.Name = lead.Name
		params.Company = lead.Company
	}

	resp, err := s.EnrichPerson(ctx, params)
	if err != nil {
		return err
	}

	person := resp.Data
	bio := valueOr(person.Bio, person.Summary)
	industry := valueOr(person.JobCompanyIndustry, person.Industry)
	if err := s.store.UpdateEnrichment(ctx, leadID, bio, person.Skills, industry); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.LeadEnrichmentCompleted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		Source:    sourceLive,
	})
	s.log.Info("lead enriched", "lead_id", leadID, "likelihood", resp.Likelihood)
	return nil
}

// DraftEmail asks the language model for an outreach email for the
// lead. Failures surface; there is no fallback body.
func (s *Service) DraftEmail(ctx context.Context, ownerID uuid.UUID, leadID, searchContext string) (string, error) {
	lead, err := s.getOwned(ctx, ownerID, leadID)
	if err != nil {
		return "", err
	}

	if s.agent == nil || !s.agent.Enabled() {
		return "", apperr.Unavailable("email drafting is not configured")
	}

	body, err := s.agent.DraftEmail(ctx, lead, searchContext)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUnavailable, "failed to generate email", err)
	}
	return body, nil
}

// SendEmail delivers an outreach email to the lead's address (or an
// explicit recipient) through the configured sender.
func (s *Service) SendEmail(ctx context.Context, ownerID uuid.UUID, leadID, to, subject, body string) error {
	lead, err := s.getOwned(ctx, ownerID, leadID)
	if err != nil {
		return err
	}

	if to == "" {
		to = lead.Email
	}
	if to == "" {
		return apperr.Validation("lead has no email address and no recipient was given")
	}

	if err := s.sender.SendOutreachEmail(ctx, to, subject, body); err != nil {
		s.log.Error("outreach email send failed", "lead_id", leadID, "error", err)
		return apperr.Wrap(apperr.KindUnavailable, "failed to send email", err)
	}

	s.bus.Publish(ctx, events.OutreachEmailSent{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		Recipient: to,
		Subject:   subject,
	})
	return nil
}

func (s *Service) getOwned(ctx context.Context, ownerID uuid.UUID, leadID string) (repository.Lead, error) {
	lead, err := s.store.GetByID(ctx, ownerID, leadID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	return lead, err
}
