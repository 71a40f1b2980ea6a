// Package service implements lead pipeline operations.
package service

import (
	"context"
	"errors"
	"strings"

	"mediagent_backend/internal/events"
	"mediagent_backend/internal/leads/repository"
	"mediagent_backend/platform/apperr"
	"mediagent_backend/platform/logger"
	"mediagent_backend/platform/phone"

	"github.com/google/uuid"
)

// Enqueuer schedules background enrichment for a lead.
type Enqueuer interface {
	EnqueueLeadEnrichment(ctx context.Context, leadID string) error
}

var validStatuses = map[string]bool{
	repository.StatusNew:       true,
	repository.StatusContacted: true,
	repository.StatusQualified: true,
	repository.StatusConverted: true,
	repository.StatusArchived:  true,
}

type Service struct {
	repo     *repository.Repository
	bus      events.Bus
	enqueuer Enqueuer
	log      *logger.Logger
}

func New(repo *repository.Repository, bus events.Bus, enqueuer Enqueuer, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, enqueuer: enqueuer, log: log}
}

// Repository exposes the lead store to sibling modules that persist
// search results.
func (s *Service) Repository() *repository.Repository {
	return s.repo
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, agentID *uuid.UUID, status string, limit int) ([]repository.Lead, error) {
	if status != "" && !validStatuses[status] {
		return nil, apperr.Validation("unknown status filter")
	}
	return s.repo.List(ctx, repository.ListFilter{
		OwnerID: ownerID,
		AgentID: agentID,
		Status:  status,
		Limit:   limit,
	})
}

func (s *Service) Get(ctx context.Context, ownerID uuid.UUID, id string) (repository.Lead, error) {
	lead, err := s.repo.GetByID(ctx, ownerID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	return lead, err
}

// Create stores a manually entered lead.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, lead repository.Lead) (repository.Lead, error) {
	if strings.TrimSpace(lead.Name) == "" {
		return repository.Lead{}, apperr.Validation("name is required")
	}

	lead.ID = repository.NewLocalID()
	lead.OwnerID = ownerID
	lead.Source = repository.SourceManual
	if lead.Status == "" {
		lead.Status = repository.StatusNew
	}
	if !validStatuses[lead.Status] {
		return repository.Lead{}, apperr.Validation("unknown status")
	}
	if lead.Phone != "" {
		lead.Phone = phone.NormalizeE164(lead.Phone)
	}
	if len(lead.Tags) > 5 {
		lead.Tags = lead.Tags[:5]
	}

	if err := s.repo.Upsert(ctx, lead); err != nil {
		return repository.Lead{}, err
	}
	return s.Get(ctx, ownerID, lead.ID)
}

// Update replaces the editable fields of an existing lead.
func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, lead repository.Lead) (repository.Lead, error) {
	existing, err := s.Get(ctx, ownerID, lead.ID)
	if err != nil {
		return repository.Lead{}, err
	}

	lead.OwnerID = ownerID
	lead.Source = existing.Source
	if lead.Status == "" {
		lead.Status = existing.Status
	}
	if !validStatuses[lead.Status] {
		return repository.Lead{}, apperr.Validation("unknown status")
	}
	if lead.Phone != "" {
		lead.Phone = phone.NormalizeE164(lead.Phone)
	}
	if len(lead.Tags) > 5 {
		lead.Tags = lead.Tags[:5]
	}

	if err := s.repo.Upsert(ctx, lead); err != nil {
		return repository.Lead{}, err
	}
	return s.Get(ctx, ownerID, lead.ID)
}

func (s *Service) Delete(ctx context.Context, ownerID uuid.UUID, id string) error {
	err := s.repo.Delete(ctx, ownerID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("lead not found")
	}
	return err
}

func (s *Service) UpdateStatus(ctx context.Context, ownerID uuid.UUID, id, status string) (repository.Lead, error) {
	if !validStatuses[status] {
		return repository.Lead{}, apperr.Validation("unknown status")
	}

	existing, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return repository.Lead{}, err
	}
	if existing.Status == status {
		return existing, nil
	}

	if err := s.repo.UpdateStatus(ctx, ownerID, id, status); err != nil {
		return repository.Lead{}, err
	}

	s.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
		OldStatus: existing.Status,
		NewStatus: status,
	})

	existing.Status = status
	return existing, nil
}

// RequestEnrichment queues a background enrichment job for the lead.
func (s *Service) RequestEnrichment(ctx context.Context, ownerID uuid.UUID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if s.enqueuer == nil {
		return apperr.Unavailable("background enrichment is not configured")
	}
	if err := s.enqueuer.EnqueueLeadEnrichment(ctx, id); err != nil {
		s.log.Error("enqueue lead enrichment failed", "lead_id", id, "error", err)
		return apperr.Unavailable("could not queue enrichment")
	}
	s.log.Info("lead enrichment queued", "lead_id", id)
	return nil
}
