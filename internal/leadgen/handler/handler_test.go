package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mediagent_backend/internal/email"
	"mediagent_backend/internal/events"
	"mediagent_backend/internal/leadgen/service"
	"mediagent_backend/internal/leadgen/transport"
	"mediagent_backend/internal/pdl"
	"mediagent_backend/platform/logger"
	"mediagent_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type stubSearchClient struct {
	persons   pdl.PersonSearchResponse
	companies pdl.CompanySearchResponse
	err       error
	calls     int
}

func (s *stubSearchClient) SearchPersons(ctx context.Context, sqlQuery string, size int) (pdl.PersonSearchResponse, error) {
	s.calls++
	return s.persons, s.err
}

func (s *stubSearchClient) SearchCompanies(ctx context.Context, sqlQuery string, size int) (pdl.CompanySearchResponse, error) {
	s.calls++
	return s.companies, s.err
}

func (s *stubSearchClient) EnrichPerson(ctx context.Context, p pdl.EnrichParams) (pdl.EnrichResponse, error) {
	s.calls++
	return pdl.EnrichResponse{}, errors.New("not implemented")
}

func newSearchTestRouter(client *stubSearchClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New("error")
	svc := service.New(client, nil, nil, email.NoopSender{}, events.NewInMemoryBus(log), log)
	h := New(svc, validator.New())

	engine := gin.New()
	h.RegisterRoutes(engine.Group(""))
	return engine
}

func postRaw(t *testing.T, engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestPersonSearchUnparsableBodyFallsBackToMock(t *testing.T) {
	client := &stubSearchClient{}
	engine := newSearchTestRouter(client)

	rec := postRaw(t, engine, "/person-search", `{"location": "Texas", `)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if client.calls != 0 {
		t.Errorf("provider calls = %d, want 0", client.calls)
	}

	var resp transport.PersonSearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != http.StatusOK || resp.Source != "mock" {
		t.Errorf("envelope = status %d source %q, want 200 mock", resp.Status, resp.Source)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("rows = %d, want 1", len(resp.Data))
	}
	if resp.Data[0].LocationRegion != "Texas" {
		t.Errorf("mock region = %q, want %q", resp.Data[0].LocationRegion, "Texas")
	}
}

func TestPersonSearchEmptyBodyFallsBackToDefaultLocation(t *testing.T) {
	engine := newSearchTestRouter(&stubSearchClient{})

	rec := postRaw(t, engine, "/person-search", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp transport.PersonSearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Source != "mock" || len(resp.Data) != 1 {
		t.Fatalf("envelope = source %q rows %d, want mock with 1 row", resp.Source, len(resp.Data))
	}
	if resp.Data[0].LocationRegion != "Florida" {
		t.Errorf("mock region = %q, want %q", resp.Data[0].LocationRegion, "Florida")
	}
}

func TestCompanySearchUnparsableBodyFallsBackToMock(t *testing.T) {
	client := &stubSearchClient{}
	engine := newSearchTestRouter(client)

	rec := postRaw(t, engine, "/company-search", `{"location": "Ohio", "industry": [`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if client.calls != 0 {
		t.Errorf("provider calls = %d, want 0", client.calls)
	}

	var resp transport.CompanySearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Source != "mock" || len(resp.Data) != 1 {
		t.Fatalf("envelope = source %q rows %d, want mock with 1 row", resp.Source, len(resp.Data))
	}
	if resp.Data[0].Name != "Ohio General Hospital (Mock)" {
		t.Errorf("mock company = %q, want %q", resp.Data[0].Name, "Ohio General Hospital (Mock)")
	}
}

func TestPersonSearchWellFormedBodyFailingValidationIs400(t *testing.T) {
	client := &stubSearchClient{}
	engine := newSearchTestRouter(client)

	rec := postRaw(t, engine, "/person-search", `{"limit": 500}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
	if client.calls != 0 {
		t.Errorf("provider calls = %d, want 0", client.calls)
	}
}

func TestPersonSearchValidBodyUsesProvider(t *testing.T) {
	client := &stubSearchClient{
		persons: pdl.PersonSearchResponse{
			Status: http.StatusOK,
			Data:   []pdl.PersonRecord{{ID: "p1", FullName: "Dana Smith"}},
		},
	}
	engine := newSearchTestRouter(client)

	rec := postRaw(t, engine, "/person-search", `{"titles": ["nursing"], "location": "Texas"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if client.calls != 1 {
		t.Errorf("provider calls = %d, want 1", client.calls)
	}

	var resp transport.PersonSearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Source != "live" || len(resp.Data) != 1 || resp.Data[0].ID != "p1" {
		t.Errorf("envelope = source %q rows %d, want live with provider row", resp.Source, len(resp.Data))
	}
}
