package service

import (
	"context"
	"fmt"
	"net/http"

	"mediagent_backend/internal/pdl"
	"mediagent_backend/platform/logger"
)

const defaultSearchSize = 10

// Lead source labels carried through the response envelopes.
const (
	sourceLive = "live"
	sourceMock = "mock"
)

// SearchClient is the provider surface the resolver and service use.
type SearchClient interface {
	SearchPersons(ctx context.Context, sqlQuery string, size int) (pdl.PersonSearchResponse, error)
	SearchCompanies(ctx context.Context, sqlQuery string, size int) (pdl.CompanySearchResponse, error)
	EnrichPerson(ctx context.Context, p pdl.EnrichParams) (pdl.EnrichResponse, error)
}

// PersonOutcome is the uniform person search envelope. Status is
// always 200; failed or empty provider calls yield one mock record.
type PersonOutcome struct {
	Status int                `json:"status"`
	Source string             `json:"source"`
	Data   []pdl.PersonRecord `json:"data"`
}

// CompanyOutcome is the uniform company search envelope.
type CompanyOutcome struct {
	Status int                 `json:"status"`
	Source string              `json:"source"`
	Data   []pdl.CompanyRecord `json:"data"`
}

// Resolver executes provider searches and absorbs every failure mode
// into a mock result. It never returns an error.
type Resolver struct {
	client SearchClient
	log    *logger.Logger
}

func NewResolver(client SearchClient, log *logger.Logger) *Resolver {
	return &Resolver{client: client, log: log}
}

// Persons runs the query and falls back to the deterministic mock
// person on transport errors, non-200 statuses, and empty result sets.
func (r *Resolver) Persons(ctx context.Context, sqlQuery, location string, size int) PersonOutcome {
	if size <= 0 {
		size = defaultSearchSize
	}

	resp, err := r.client.SearchPersons(ctx, sqlQuery, size)
	if err == nil && resp.Status == http.StatusOK && len(resp.Data) > 0 {
		return PersonOutcome{Status: http.StatusOK, Source: sourceLive, Data: resp.Data}
	}
	r.log.FallbackUsed("person_search", fallbackReason(err, resp.Status, len(resp.Data)))

	return r.PersonFallback(location)
}

// PersonFallback builds the single-mock envelope without touching the
// provider. Also used when the request itself cannot be parsed.
func (r *Resolver) PersonFallback(location string) PersonOutcome {
	if location == "" {
		location = defaultPersonMockLocation
	}
	return PersonOutcome{
		Status: http.StatusOK,
		Source: sourceMock,
		Data:   []pdl.PersonRecord{mockPersonRecord(location)},
	}
}

// Companies mirrors Persons for the company search path.
func (r *Resolver) Companies(ctx context.Context, sqlQuery, location string, size int) CompanyOutcome {
	if size <= 0 {
		size = defaultSearchSize
	}

	resp, err := r.client.SearchCompanies(ctx, sqlQuery, size)
	if err == nil && resp.Status == http.StatusOK && len(resp.Data) > 0 {
		return CompanyOutcome{Status: http.StatusOK, Source: sourceLive, Data: resp.Data}
	}
	r.log.FallbackUsed("company_search", fallbackReason(err, resp.Status, len(resp.Data)))

	return r.CompanyFallback(location)
}

// CompanyFallback mirrors PersonFallback for companies.
func (r *Resolver) CompanyFallback(location string) CompanyOutcome {
	if location == "" {
		location = defaultCompanyMockLocation
	}
	return CompanyOutcome{
		Status: http.StatusOK,
		Source: sourceMock,
		Data:   []pdl.CompanyRecord{mockCompanyRecord(location)},
	}
}

func fallbackReason(err error, status, rows int) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("provider status %d with %d rows", status, rows)
}
