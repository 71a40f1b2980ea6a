package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mediagent_backend/internal/pdl"
	"mediagent_backend/platform/logger"
)

type fakeSearchClient struct {
	personResp  pdl.PersonSearchResponse
	personErr   error
	companyResp pdl.CompanySearchResponse
	companyErr  error
	enrichResp  pdl.EnrichResponse
	enrichErr   error

	lastSQL  string
	lastSize int
}

func (f *fakeSearchClient) SearchPersons(ctx context.Context, sqlQuery string, size int) (pdl.PersonSearchResponse, error) {
	f.lastSQL = sqlQuery
	f.lastSize = size
	return f.personResp, f.personErr
}

func (f *fakeSearchClient) SearchCompanies(ctx context.Context, sqlQuery string, size int) (pdl.CompanySearchResponse, error) {
	f.lastSQL = sqlQuery
	f.lastSize = size
	return f.companyResp, f.companyErr
}

func (f *fakeSearchClient) EnrichPerson(ctx context.Context, p pdl.EnrichParams) (pdl.EnrichResponse, error) {
	return f.enrichResp, f.enrichErr
}

func TestResolverPersonsLive(t *testing.T) {
	client := &fakeSearchClient{
		personResp: pdl.PersonSearchResponse{
			Status: 200,
			Data:   []pdl.PersonRecord{{FirstName: "Dana"}, {FirstName: "Sam"}},
		},
	}
	r := NewResolver(client, logger.New("test"))

	out := r.Persons(context.Background(), "SELECT * FROM person", "Texas", 0)
	if out.Status != 200 || out.Source != "live" {
		t.Fatalf("status = %d, source = %q", out.Status, out.Source)
	}
	if len(out.Data) != 2 {
		t.Fatalf("got %d rows, want 2", len(out.Data))
	}
	if client.lastSize != defaultSearchSize {
		t.Errorf("size = %d, want default %d", client.lastSize, defaultSearchSize)
	}
}

func TestResolverPersonsFallback(t *testing.T) {
	cases := []struct {
		name   string
		client *fakeSearchClient
	}{
		{"transport error", &fakeSearchClient{personErr: errors.New("dial tcp: refused")}},
		{"non-200 status", &fakeSearchClient{personResp: pdl.PersonSearchResponse{Status: 404}}},
		{"empty rows", &fakeSearchClient{personResp: pdl.PersonSearchResponse{Status: 200}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResolver(tc.client, logger.New("test"))
			out := r.Persons(context.Background(), "SELECT * FROM person", "Ohio", 10)

			if out.Status != 200 {
				t.Errorf("status = %d, want 200", out.Status)
			}
			if out.Source != "mock" {
				t.Errorf("source = %q, want mock", out.Source)
			}
			if len(out.Data) != 1 {
				t.Fatalf("got %d rows, want exactly 1", len(out.Data))
			}
			person := out.Data[0]
			if person.FullName != "Jamie Rodriguez" {
				t.Errorf("mock name = %q", person.FullName)
			}
			if person.LocationRegion != "Ohio" {
				t.Errorf("mock region = %q, want requested location", person.LocationRegion)
			}
		})
	}
}

func TestResolverPersonsDefaultLocation(t *testing.T) {
	r := NewResolver(&fakeSearchClient{personErr: errors.New("down")}, logger.New("test"))
	out := r.Persons(context.Background(), "SELECT * FROM person", "", 10)
	if out.Data[0].LocationRegion != "Florida" {
		t.Errorf("mock region = %q, want Florida default", out.Data[0].LocationRegion)
	}
}

func TestResolverMockLocationRendering(t *testing.T) {
	r := NewResolver(&fakeSearchClient{personErr: errors.New("down")}, logger.New("test"))
	out := r.Persons(context.Background(), "SELECT * FROM person", "us", 10)

	person := out.Data[0]
	if !strings.HasPrefix(person.JobCompanyName, "USA ") {
		t.Errorf("country code must render as USA, got company %q", person.JobCompanyName)
	}
	if person.WorkEmail != "jrodriguez@ushs.example.com" {
		t.Errorf("mock email = %q", person.WorkEmail)
	}
}

func TestResolverCompaniesFallback(t *testing.T) {
	r := NewResolver(&fakeSearchClient{companyResp: pdl.CompanySearchResponse{Status: 402}}, logger.New("test"))
	out := r.Companies(context.Background(), "SELECT * FROM company", "", 10)

	if out.Status != 200 || out.Source != "mock" || len(out.Data) != 1 {
		t.Fatalf("outcome = %+v", out)
	}
	company := out.Data[0]
	if company.Name != "California General Hospital (Mock)" {
		t.Errorf("mock company = %q", company.Name)
	}
	if company.EmployeeCount != 750 || company.Size != "501-1000" {
		t.Errorf("mock company sizing = %q / %d", company.Size, company.EmployeeCount)
	}
}

func TestResolverCompaniesLive(t *testing.T) {
	r := NewResolver(&fakeSearchClient{
		companyResp: pdl.CompanySearchResponse{Status: 200, Data: []pdl.CompanyRecord{{Name: "mercy health"}}},
	}, logger.New("test"))
	out := r.Companies(context.Background(), "SELECT * FROM company", "Ohio", 5)
	if out.Source != "live" || len(out.Data) != 1 {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestCompactLocation(t *testing.T) {
	if got := compactLocation("New York"); got != "newyork" {
		t.Errorf("compactLocation = %q", got)
	}
}
