// Package transport defines request and response DTOs for the lead
// generation API.
package transport

import (
	"mediagent_backend/internal/leadgen/query"
	"mediagent_backend/internal/pdl"
)

// SearchLeadsRequest drives the free-text orchestration.
type SearchLeadsRequest struct {
	Query   string  `json:"query" validate:"required,min=2,max=2000"`
	AgentID *string `json:"agentId" validate:"omitempty,uuid"`
	Limit   int     `json:"limit" validate:"min=0,max=100"`
}

// PersonSearchRequest carries structured person search filters. The
// industry key holds a list, matching the consumer's payload shape.
type PersonSearchRequest struct {
	Titles   []string `json:"titles" validate:"dive,max=200"`
	Industry []string `json:"industry" validate:"dive,max=200"`
	Location string   `json:"location" validate:"max=200"`
	Limit    int      `json:"limit" validate:"min=0,max=100"`
}

type CompanySearchRequest struct {
	Industry    []string `json:"industry" validate:"dive,max=200"`
	Location    string   `json:"location" validate:"max=200"`
	CompanySize string   `json:"companySize" validate:"max=100"`
	Limit       int      `json:"limit" validate:"min=0,max=100"`
}

type QueryParseRequest struct {
	Query string `json:"query" validate:"required,min=2,max=2000"`
}

type DraftEmailRequest struct {
	LeadID  string `json:"leadId" validate:"required"`
	Context string `json:"context" validate:"max=2000"`
}

type SendEmailRequest struct {
	LeadID  string `json:"leadId" validate:"required"`
	To      string `json:"to" validate:"omitempty,email"`
	Subject string `json:"subject" validate:"required,max=300"`
	Body    string `json:"body" validate:"required"`
}

// PersonSearchResponse is the uniform person search envelope.
type PersonSearchResponse struct {
	Status int                `json:"status"`
	Source string             `json:"source"`
	Data   []pdl.PersonRecord `json:"data"`
}

// CompanySearchResponse is the uniform company search envelope.
type CompanySearchResponse struct {
	Status int                 `json:"status"`
	Source string              `json:"source"`
	Data   []pdl.CompanyRecord `json:"data"`
}

// EnrichResponse wraps a single enriched person record.
type EnrichResponse struct {
	Status     int              `json:"status"`
	Likelihood int              `json:"likelihood"`
	Data       pdl.PersonRecord `json:"data"`
}

// QueryParseResponse returns the extracted facet set.
type QueryParseResponse = query.Facets

// DraftEmailResponse carries the generated outreach email.
type DraftEmailResponse struct {
	Status int    `json:"status"`
	Email  string `json:"email"`
}
