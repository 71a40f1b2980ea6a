package service

import (
	"strings"
	"testing"

	"mediagent_backend/internal/leadgen/query"
	"mediagent_backend/internal/pdl"

	"github.com/google/uuid"
)

func TestScoreLeadBase(t *testing.T) {
	score := scoreLead(pdl.PersonRecord{JobTitle: "Accountant"}, query.Facets{})
	if score != 70 {
		t.Errorf("score = %d, want base 70", score)
	}
}

func TestScoreLeadAllBonusesUncapped(t *testing.T) {
	person := pdl.PersonRecord{
		JobTitle:           "Director of Wound Care",
		JobCompanyIndustry: "hospital & health care",
		LocationName:       "Tampa, Florida, USA",
		Skills:             []string{"Wound Care Management", "Nursing"},
	}
	facets := query.Facets{
		Titles:      []string{"wound care"},
		Industries:  []string{"hospital"},
		Location:    "florida",
		Specialties: []string{"wound care"},
	}

	score := scoreLead(person, facets)
	if score != 98 {
		t.Errorf("score = %d, want 98 (70+10+5+5+8)", score)
	}
}

func TestScoreLeadBonusesApplyOncePerCategory(t *testing.T) {
	person := pdl.PersonRecord{JobTitle: "clinical nursing director"}
	facets := query.Facets{Titles: []string{"clinical", "nursing", "director"}}
	if score := scoreLead(person, facets); score != 80 {
		t.Errorf("score = %d, want 80 (title bonus applies once)", score)
	}
}

func TestBuildTagsOrderAndCap(t *testing.T) {
	person := pdl.PersonRecord{JobCompanyIndustry: "hospital & health care"}
	company := pdl.CompanyRecord{Size: "501-1000"}
	facets := query.Facets{
		Tags:       []string{"Medicare-certified", "Manual tracking"},
		PainPoints: []string{"staff shortage", "paper records"},
	}

	tags := buildTags(person, &company, facets)
	if len(tags) != 5 {
		t.Fatalf("got %d tags, want 5", len(tags))
	}
	want := []string{"Medicare-certified", "Manual tracking", "staff shortage", "paper records", "501-1000 employees"}
	for i, tag := range want {
		if tags[i] != tag {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], tag)
		}
	}
}

func TestBuildTagsShortList(t *testing.T) {
	tags := buildTags(pdl.PersonRecord{JobCompanyIndustry: "medical device"}, nil, query.Facets{})
	if len(tags) != 1 || tags[0] != "medical device" {
		t.Errorf("tags = %v", tags)
	}
}

func TestMatchCompanyExactCaseInsensitive(t *testing.T) {
	companies := []pdl.CompanyRecord{
		{Name: "other corp"},
		{Name: "Mercy Health", Website: "https://mercy.example"},
		{Name: "mercy health", Website: "https://second.example"},
	}

	match := matchCompany("MERCY HEALTH", companies)
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Website != "https://mercy.example" {
		t.Errorf("first match must win, got %q", match.Website)
	}

	if matchCompany("Mercy", companies) != nil {
		t.Error("substring names must not match")
	}
	if matchCompany("", companies) != nil {
		t.Error("empty name must not match")
	}
}

func TestTransformLeadsFields(t *testing.T) {
	ownerID := uuid.New()
	agentID := uuid.New()
	persons := []pdl.PersonRecord{{
		ID:                 "pdl-123",
		FirstName:          " Dana",
		LastName:           "Lee ",
		JobTitle:           "Director of Nursing",
		JobCompanyName:     "Mercy Health",
		JobCompanyIndustry: "hospital & health care",
		LocationName:       "Columbus, Ohio, USA",
		WorkEmail:          "dana@mercy.example",
		PhoneNumbers:       []string{"(617) 555-1234"},
		LinkedinURL:        "https://linkedin.com/in/danalee",
		Skills:             []string{"Nursing"},
	}}
	companies := []pdl.CompanyRecord{{
		Name:        "mercy health",
		Size:        "1001-5000",
		Website:     "https://mercy.example",
		LinkedinURL: "https://linkedin.com/company/mercy",
		Founded:     1950,
		Revenue:     "$500M-$1B",
	}}
	facets := query.Facets{
		Location:   "ohio",
		PainPoints: []string{"manual tracking"},
		BudgetInfo: "Q3 budget approved",
		Timeframe:  "this quarter",
	}

	leads := transformLeads(persons, companies, facets, "live", ownerID, &agentID)
	if len(leads) != 1 {
		t.Fatalf("got %d leads, want 1", len(leads))
	}
	lead := leads[0]

	if lead.ID != "pdl-123" {
		t.Errorf("id = %q, external id must be kept", lead.ID)
	}
	if lead.Name != "Dana Lee" {
		t.Errorf("name = %q", lead.Name)
	}
	if lead.Email != "dana@mercy.example" {
		t.Errorf("email = %q", lead.Email)
	}
	if lead.Phone != "+16175551234" {
		t.Errorf("phone = %q, want E.164", lead.Phone)
	}
	if lead.CompanySize != "1001-5000" || lead.CompanyWebsite != "https://mercy.example" || lead.CompanyFounded != 1950 || lead.CompanyRevenue != "$500M-$1B" {
		t.Errorf("company enrichment missing: %+v", lead)
	}
	if lead.OwnerID != ownerID || lead.AgentID == nil || *lead.AgentID != agentID {
		t.Errorf("ownership wrong: %+v", lead)
	}
	if lead.Status != "new" || lead.Source != "live" {
		t.Errorf("status/source = %q/%q", lead.Status, lead.Source)
	}
	if lead.BudgetInfo != "Q3 budget approved" || lead.Timeframe != "this quarter" {
		t.Errorf("facet passthrough wrong: %+v", lead)
	}
}

func TestTransformLeadsPlaceholdersAndLocalID(t *testing.T) {
	leads := transformLeads([]pdl.PersonRecord{{}}, nil, query.Facets{}, "mock", uuid.New(), nil)
	lead := leads[0]

	if !strings.HasPrefix(lead.ID, "lead-") {
		t.Errorf("id = %q, want generated local id", lead.ID)
	}
	if lead.Name != "Unknown Name" || lead.Title != "Unknown Title" ||
		lead.Company != "Unknown Company" || lead.Location != "Unknown Location" {
		t.Errorf("placeholders wrong: %+v", lead)
	}
	if lead.Email != "" || lead.Phone != "" {
		t.Errorf("contact fields must stay empty: %+v", lead)
	}
}

func TestPersonEmailPriority(t *testing.T) {
	person := pdl.PersonRecord{
		WorkEmail:      "work@example.com",
		PersonalEmails: []string{"personal@example.com"},
		Emails:         []pdl.EmailRecord{{Address: "generic@example.com"}},
	}
	if got := personEmail(person); got != "work@example.com" {
		t.Errorf("email = %q, want work email first", got)
	}

	person.WorkEmail = ""
	if got := personEmail(person); got != "personal@example.com" {
		t.Errorf("email = %q, want personal email second", got)
	}

	person.PersonalEmails = nil
	if got := personEmail(person); got != "generic@example.com" {
		t.Errorf("email = %q, want generic email last", got)
	}

	person.Emails = nil
	if got := personEmail(person); got != "" {
		t.Errorf("email = %q, want empty", got)
	}
}
