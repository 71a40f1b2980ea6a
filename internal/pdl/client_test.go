package pdl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mediagent_backend/platform/logger"
)

type testPDLConfig struct {
	baseURL string
}

func (c testPDLConfig) GetPDLAPIKey() string  { return "test-key" }
func (c testPDLConfig) GetPDLBaseURL() string { return c.baseURL }
func (c testPDLConfig) IsPDLEnabled() bool    { return true }

func newTestClient(baseURL string) *Client {
	return New(testPDLConfig{baseURL: baseURL}, logger.New("error"))
}

func TestSearchPersonsDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("X-Api-Key = %q, want %q", got, "test-key")
		}
		if got := r.URL.Path; got != "/person/search" {
			t.Errorf("path = %q, want /person/search", got)
		}
		q := r.URL.Query()
		if q.Get("sql") == "" {
			t.Error("missing sql parameter")
		}
		if got := q.Get("size"); got != "10" {
			t.Errorf("size = %q, want 10", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":200,"total":1,"data":[{"first_name":"Dana","last_name":"Lee","job_title":"Director of Nursing","work_email":"dana@example.org"}]}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).SearchPersons(context.Background(), "SELECT * FROM person", 10)
	if err != nil {
		t.Fatalf("SearchPersons returned error: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("status = %d, want 200", resp.Status)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("got %d records, want 1", len(resp.Data))
	}
	if resp.Data[0].JobTitle != "Director of Nursing" {
		t.Errorf("job title = %q", resp.Data[0].JobTitle)
	}
	if resp.Data[0].WorkEmail != "dana@example.org" {
		t.Errorf("work email = %q", resp.Data[0].WorkEmail)
	}
}

func TestSearchPersonsNon200IsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":404,"error":{"type":"not_found","message":"No records were found matching your search"},"data":[]}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).SearchPersons(context.Background(), "SELECT * FROM person", 5)
	if err != nil {
		t.Fatalf("non-200 upstream status should not be a transport error, got: %v", err)
	}
	if resp.Status != 404 {
		t.Fatalf("status = %d, want 404", resp.Status)
	}
	if len(resp.Data) != 0 {
		t.Fatalf("got %d records, want 0", len(resp.Data))
	}
	if resp.ErrorMessage() == "" {
		t.Error("expected upstream error message")
	}
}

func TestSearchPersonsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	if _, err := newTestClient(srv.URL).SearchPersons(context.Background(), "SELECT * FROM person", 5); err == nil {
		t.Fatal("expected transport error for closed server")
	}
}

func TestSearchCompaniesDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/company/search" {
			t.Errorf("path = %q, want /company/search", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":200,"total":1,"data":[{"name":"mercy health","display_name":"Mercy Health","employee_count":1200,"industry":"hospital & health care","location":{"region":"ohio","country":"united states"}}]}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).SearchCompanies(context.Background(), "SELECT * FROM company", 10)
	if err != nil {
		t.Fatalf("SearchCompanies returned error: %v", err)
	}
	if resp.Status != 200 || len(resp.Data) != 1 {
		t.Fatalf("status = %d, records = %d", resp.Status, len(resp.Data))
	}
	if resp.Data[0].EmployeeCount != 1200 {
		t.Errorf("employee count = %d, want 1200", resp.Data[0].EmployeeCount)
	}
	if resp.Data[0].Location.Region != "ohio" {
		t.Errorf("location region = %q", resp.Data[0].Location.Region)
	}
}

func TestEnrichPersonSendsFixedParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		for key, want := range map[string]string{
			"pretty":             "false",
			"min_likelihood":     "2",
			"include_if_matched": "false",
			"titlecase":          "false",
			"email":              "sam@clinic.org",
		} {
			if got := q.Get(key); got != want {
				t.Errorf("param %s = %q, want %q", key, got, want)
			}
		}
		if q.Has("name") {
			t.Error("empty name should not be sent")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":200,"likelihood":8,"data":{"full_name":"sam porter","job_title":"clinical manager"}}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).EnrichPerson(context.Background(), EnrichParams{Email: "sam@clinic.org"})
	if err != nil {
		t.Fatalf("EnrichPerson returned error: %v", err)
	}
	if resp.Likelihood != 8 {
		t.Errorf("likelihood = %d, want 8", resp.Likelihood)
	}
	if resp.Data.FullName != "sam porter" {
		t.Errorf("full name = %q", resp.Data.FullName)
	}
}
