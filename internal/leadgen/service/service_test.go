package service

import (
	"context"
	"errors"
	"testing"

	"mediagent_backend/internal/events"
	"mediagent_backend/internal/leadgen/query"
	"mediagent_backend/internal/leads/repository"
	"mediagent_backend/internal/pdl"
	"mediagent_backend/platform/apperr"
	"mediagent_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	upserted  []repository.Lead
	leads     map[string]repository.Lead
	enriched  map[string]string
	upsertErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{leads: map[string]repository.Lead{}, enriched: map[string]string{}}
}

func (f *fakeStore) UpsertMany(ctx context.Context, leads []repository.Lead) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, leads...)
	for _, l := range leads {
		f.leads[l.ID] = l
	}
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, ownerID uuid.UUID, id string) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok || lead.OwnerID != ownerID {
		return repository.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (f *fakeStore) GetAnyByID(ctx context.Context, id string) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (f *fakeStore) UpdateEnrichment(ctx context.Context, id, bio string, skills []string, industry string) error {
	f.enriched[id] = bio
	return nil
}

type fakeAgent struct {
	enabled    bool
	facets     query.Facets
	facetsErr  error
	profile    pdl.PersonRecord
	profileErr error
	email      string
	emailErr   error
}

func (f *fakeAgent) Enabled() bool { return f.enabled }

func (f *fakeAgent) ParseFacets(ctx context.Context, text string) (query.Facets, error) {
	return f.facets, f.facetsErr
}

func (f *fakeAgent) SynthesizeProfile(ctx context.Context, prompt string) (pdl.PersonRecord, error) {
	return f.profile, f.profileErr
}

func (f *fakeAgent) DraftEmail(ctx context.Context, lead repository.Lead, searchContext string) (string, error) {
	return f.email, f.emailErr
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(eventName string, handler events.Handler) {}

type recordingSender struct {
	to, subject, body string
	err               error
}

func (r *recordingSender) SendVerificationEmail(ctx context.Context, toEmail, verifyURL string) error {
	return nil
}

func (r *recordingSender) SendPasswordResetEmail(ctx context.Context, toEmail, resetURL string) error {
	return nil
}

func (r *recordingSender) SendOutreachEmail(ctx context.Context, toEmail, subject, body string) error {
	r.to, r.subject, r.body = toEmail, subject, body
	return r.err
}

func (r *recordingSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

func newTestService(client SearchClient, agent LLMAgent, store LeadStore, sender *recordingSender, bus *recordingBus) *Service {
	if sender == nil {
		sender = &recordingSender{}
	}
	if bus == nil {
		bus = &recordingBus{}
	}
	return New(client, agent, store, sender, bus, logger.New("test"))
}

func TestParseQueryFallsBackOnAgentFailure(t *testing.T) {
	agent := &fakeAgent{enabled: true, facetsErr: errors.New("rate limited")}
	svc := newTestService(&fakeSearchClient{}, agent, newFakeStore(), nil, nil)

	facets := svc.ParseQuery(context.Background(), "wound care directors at hospitals in Boston")
	if facets.Location != "boston" {
		t.Errorf("location = %q, keyword fallback expected", facets.Location)
	}
	if len(facets.Industries) == 0 || facets.Industries[0] != "hospital & health care" {
		t.Errorf("industries = %v", facets.Industries)
	}
}

func TestParseQueryUsesAgent(t *testing.T) {
	agent := &fakeAgent{enabled: true, facets: query.Facets{Location: "Texas"}}
	svc := newTestService(&fakeSearchClient{}, agent, newFakeStore(), nil, nil)

	facets := svc.ParseQuery(context.Background(), "anything")
	if facets.Location != "Texas" {
		t.Errorf("location = %q, agent result expected", facets.Location)
	}
}

func TestSearchLeadsLivePath(t *testing.T) {
	client := &fakeSearchClient{
		personResp: pdl.PersonSearchResponse{Status: 200, Data: []pdl.PersonRecord{{
			ID: "pdl-1", FirstName: "Dana", LastName: "Lee", JobTitle: "Director of Nursing",
		}}},
		companyResp: pdl.CompanySearchResponse{Status: 200, Data: []pdl.CompanyRecord{{Name: "x"}}},
	}
	store := newFakeStore()
	bus := &recordingBus{}
	svc := newTestService(client, &fakeAgent{}, store, nil, bus)

	ownerID := uuid.New()
	run, err := svc.SearchLeads(context.Background(), ownerID, nil, "nursing directors", 10)
	if err != nil {
		t.Fatalf("SearchLeads returned error: %v", err)
	}

	if run.Source != "live" {
		t.Errorf("source = %q", run.Source)
	}
	if len(run.Leads) != 1 || run.Leads[0].ID != "pdl-1" {
		t.Fatalf("leads = %+v", run.Leads)
	}
	if len(store.upserted) != 1 {
		t.Errorf("upserted %d leads, want 1", len(store.upserted))
	}

	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	captured, ok := bus.published[0].(events.LeadsCaptured)
	if !ok {
		t.Fatalf("event type %T", bus.published[0])
	}
	if captured.OwnerID != ownerID || captured.Source != "live" || len(captured.LeadIDs) != 1 {
		t.Errorf("event = %+v", captured)
	}
}

func TestSearchLeadsMockPathUsesSynthesizedProfile(t *testing.T) {
	client := &fakeSearchClient{personErr: errors.New("provider down")}
	agent := &fakeAgent{
		enabled: true,
		profile: pdl.PersonRecord{FirstName: "Morgan", LastName: "Hale", JobTitle: "Clinical Director"},
	}
	store := newFakeStore()
	svc := newTestService(client, agent, store, nil, nil)

	run, err := svc.SearchLeads(context.Background(), uuid.New(), nil, "clinical directors", 10)
	if err != nil {
		t.Fatalf("SearchLeads returned error: %v", err)
	}
	if run.Source != "mock" {
		t.Errorf("source = %q", run.Source)
	}
	if len(run.Leads) != 1 || run.Leads[0].Name != "Morgan Hale" {
		t.Fatalf("leads = %+v", run.Leads)
	}
}

func TestSearchLeadsMockPathTemplateFallback(t *testing.T) {
	client := &fakeSearchClient{personErr: errors.New("provider down")}
	agent := &fakeAgent{enabled: true, profileErr: errors.New("also down")}
	svc := newTestService(client, agent, newFakeStore(), nil, nil)

	run, err := svc.SearchLeads(context.Background(), uuid.New(), nil, "clinical directors", 10)
	if err != nil {
		t.Fatalf("SearchLeads returned error: %v", err)
	}
	if len(run.Leads) != 1 || run.Leads[0].Name != "Jamie Rodriguez" {
		t.Fatalf("leads = %+v", run.Leads)
	}
}

func TestEnrichPersonValidation(t *testing.T) {
	svc := newTestService(&fakeSearchClient{}, &fakeAgent{}, newFakeStore(), nil, nil)

	cases := []EnrichParams{
		{},
		{Name: "Dana Lee"},
		{Company: "Mercy Health"},
	}
	for _, params := range cases {
		_, err := svc.EnrichPerson(context.Background(), params)
		if !apperr.Is(err, apperr.KindValidation) {
			t.Errorf("params %+v: err = %v, want validation error", params, err)
		}
	}

	ok := []EnrichParams{
		{Email: "dana@example.com"},
		{Linkedin: "https://linkedin.com/in/dana"},
		{Name: "Dana Lee", Company: "Mercy Health"},
	}
	client := &fakeSearchClient{enrichResp: pdl.EnrichResponse{Status: 200}}
	svc = newTestService(client, &fakeAgent{}, newFakeStore(), nil, nil)
	for _, params := range ok {
		if _, err := svc.EnrichPerson(context.Background(), params); err != nil {
			t.Errorf("params %+v: unexpected error %v", params, err)
		}
	}
}

func TestEnrichPersonSurfacesProviderFailure(t *testing.T) {
	client := &fakeSearchClient{enrichResp: pdl.EnrichResponse{Status: 404}}
	svc := newTestService(client, &fakeAgent{}, newFakeStore(), nil, nil)

	_, err := svc.EnrichPerson(context.Background(), EnrichParams{Email: "x@example.com"})
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}

	client.enrichResp = pdl.EnrichResponse{}
	client.enrichErr = errors.New("dial tcp: refused")
	if _, err := svc.EnrichPerson(context.Background(), EnrichParams{Email: "x@example.com"}); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
}

func TestEnrichStoredLead(t *testing.T) {
	store := newFakeStore()
	store.leads["lead-1"] = repository.Lead{ID: "lead-1", Email: "dana@example.com", Name: "Dana", Company: "Mercy"}

	client := &fakeSearchClient{enrichResp: pdl.EnrichResponse{
		Status: 200,
		Data: pdl.PersonRecord{
			Summary:            "Veteran nursing leader.",
			Skills:             []string{"Nursing"},
			JobCompanyIndustry: "hospital & health care",
		},
	}}
	bus := &recordingBus{}
	svc := newTestService(client, &fakeAgent{}, store, nil, bus)

	if err := svc.EnrichStoredLead(context.Background(), "lead-1"); err != nil {
		t.Fatalf("EnrichStoredLead returned error: %v", err)
	}
	if store.enriched["lead-1"] != "Veteran nursing leader." {
		t.Errorf("enrichment not stored: %v", store.enriched)
	}
	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	if _, ok := bus.published[0].(events.LeadEnrichmentCompleted); !ok {
		t.Errorf("event type %T", bus.published[0])
	}
}

func TestEnrichStoredLeadUnknownID(t *testing.T) {
	svc := newTestService(&fakeSearchClient{}, &fakeAgent{}, newFakeStore(), nil, nil)
	if err := svc.EnrichStoredLead(context.Background(), "missing"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestDraftEmailSurfacesAgentFailure(t *testing.T) {
	ownerID := uuid.New()
	store := newFakeStore()
	store.leads["lead-1"] = repository.Lead{ID: "lead-1", OwnerID: ownerID, Name: "Dana"}

	agent := &fakeAgent{enabled: true, emailErr: errors.New("rate limited")}
	svc := newTestService(&fakeSearchClient{}, agent, store, nil, nil)

	if _, err := svc.DraftEmail(context.Background(), ownerID, "lead-1", "ctx"); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
}

func TestSendEmailUsesLeadAddress(t *testing.T) {
	ownerID := uuid.New()
	store := newFakeStore()
	store.leads["lead-1"] = repository.Lead{ID: "lead-1", OwnerID: ownerID, Email: "dana@example.com"}

	sender := &recordingSender{}
	bus := &recordingBus{}
	svc := newTestService(&fakeSearchClient{}, &fakeAgent{}, store, sender, bus)

	if err := svc.SendEmail(context.Background(), ownerID, "lead-1", "", "Quick question", "Hi Dana"); err != nil {
		t.Fatalf("SendEmail returned error: %v", err)
	}
	if sender.to != "dana@example.com" || sender.subject != "Quick question" {
		t.Errorf("sent to %q subject %q", sender.to, sender.subject)
	}

	sent, ok := bus.published[0].(events.OutreachEmailSent)
	if !ok {
		t.Fatalf("event type %T", bus.published[0])
	}
	if sent.Recipient != "dana@example.com" {
		t.Errorf("event recipient = %q", sent.Recipient)
	}
}

func TestSendEmailNoRecipient(t *testing.T) {
	ownerID := uuid.New()
	store := newFakeStore()
	store.leads["lead-1"] = repository.Lead{ID: "lead-1", OwnerID: ownerID}

	svc := newTestService(&fakeSearchClient{}, &fakeAgent{}, store, nil, nil)
	if err := svc.SendEmail(context.Background(), ownerID, "lead-1", "", "s", "b"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}
