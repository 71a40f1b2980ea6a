// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"mediagent_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserSignedUp is published when a new user successfully registers.
type UserSignedUp struct {
	BaseEvent
	UserID      uuid.UUID `json:"userId"`
	Email       string    `json:"email"`
	VerifyToken string    `json:"verifyToken"`
}

func (e UserSignedUp) EventName() string { return "auth.user.signed_up" }

// EmailVerificationRequested is published when a user needs to verify their email.
type EmailVerificationRequested struct {
	BaseEvent
	UserID      uuid.UUID `json:"userId"`
	Email       string    `json:"email"`
	VerifyToken string    `json:"verifyToken"`
}

func (e EmailVerificationRequested) EventName() string { return "auth.email.verification_requested" }

// PasswordResetRequested is published when a user requests a password reset.
type PasswordResetRequested struct {
	BaseEvent
	UserID     uuid.UUID `json:"userId"`
	Email      string    `json:"email"`
	ResetToken string    `json:"resetToken"`
}

func (e PasswordResetRequested) EventName() string { return "auth.password.reset_requested" }

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadsCaptured is published when a search run stores new or refreshed leads.
type LeadsCaptured struct {
	BaseEvent
	OwnerID uuid.UUID  `json:"ownerId"`
	AgentID *uuid.UUID `json:"agentId,omitempty"`
	LeadIDs []string   `json:"leadIds"`
	Source  string     `json:"source"` // "live" or "mock"
}

func (e LeadsCaptured) EventName() string { return "leads.captured" }

// LeadStatusChanged is published when a lead moves through the pipeline.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    string `json:"leadId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }

// LeadEnrichmentCompleted is published when background enrichment updates a lead.
type LeadEnrichmentCompleted struct {
	BaseEvent
	LeadID string `json:"leadId"`
	Source string `json:"source"` // "live" or "mock"
}

func (e LeadEnrichmentCompleted) EventName() string { return "leads.enrichment.completed" }

// =============================================================================
// Outreach Domain Events
// =============================================================================

// OutreachEmailSent is published after an outreach email is handed to the sender.
type OutreachEmailSent struct {
	BaseEvent
	LeadID    string `json:"leadId"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
}

func (e OutreachEmailSent) EventName() string { return "outreach.email.sent" }
