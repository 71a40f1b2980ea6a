package query

import (
	"strings"
	"testing"

	"mediagent_backend/platform/logger"
)

func newTestTranslator() *Translator {
	return NewTranslator(logger.New("test"))
}

func TestPersonSQLDefaults(t *testing.T) {
	sql, err := newTestTranslator().PersonSQL(PersonFilter{})
	if err != nil {
		t.Fatalf("PersonSQL returned error: %v", err)
	}

	if !strings.HasPrefix(sql, "SELECT * FROM person WHERE ") {
		t.Errorf("unexpected prefix: %s", sql)
	}
	for _, want := range []string{
		"(job_title LIKE '%wound%' OR job_title LIKE '%nursing%' OR job_title LIKE '%clinical%' OR job_title LIKE '%medical%')",
		"job_title_levels IN ('director', 'executive', 'senior', 'manager', 'vp')",
		"industry IN ('hospital & health care', 'medical device', 'medical practice')",
		"location_country='us'",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("missing clause %q in %s", want, sql)
		}
	}
	if strings.Contains(sql, "'pharmaceuticals'") {
		t.Errorf("person default industries must not include pharmaceuticals: %s", sql)
	}
}

func TestPersonSQLExplicitTitles(t *testing.T) {
	sql, err := newTestTranslator().PersonSQL(PersonFilter{Titles: []string{"wound care", "director"}})
	if err != nil {
		t.Fatalf("PersonSQL returned error: %v", err)
	}
	if !strings.Contains(sql, "(job_title LIKE '%wound care%' OR job_title LIKE '%director%')") {
		t.Errorf("title clause wrong: %s", sql)
	}
}

func TestIndustryNormalization(t *testing.T) {
	sql, err := newTestTranslator().PersonSQL(PersonFilter{Industries: []string{"Hospitals", "Medical Device"}})
	if err != nil {
		t.Fatalf("PersonSQL returned error: %v", err)
	}
	if !strings.Contains(sql, "industry IN ('hospital & health care', 'medical device')") {
		t.Errorf("industry clause wrong: %s", sql)
	}
	if strings.Contains(sql, "'hospitals'") {
		t.Errorf("literal 'hospitals' must be normalized: %s", sql)
	}
}

func TestLocationClassification(t *testing.T) {
	cases := []struct {
		location string
		want     []string
		notWant  []string
	}{
		{"Florida", []string{"location_region='Florida'", "location_country='us'"}, nil},
		{"TX", []string{"location_region='TX'", "location_country='us'"}, nil},
		{"new york", []string{"location_region='new york'", "location_country='us'"}, nil},
		{"us", []string{"location_country='us'"}, []string{"location_region"}},
		{"USA", []string{"location_country='us'"}, []string{"location_region"}},
		{"United States", []string{"location_country='us'"}, []string{"location_region"}},
		{"DE", []string{"location_region='DE'", "location_country='us'"}, nil},
		{"uk", []string{"location_country='uk'"}, []string{"location_region"}},
		{"somewhere nice", []string{"location_country='us'"}, []string{"location_region"}},
		{"", []string{"location_country='us'"}, []string{"location_region"}},
	}

	tr := newTestTranslator()
	for _, tc := range cases {
		sql, err := tr.PersonSQL(PersonFilter{Location: tc.location})
		if err != nil {
			t.Fatalf("PersonSQL(%q) returned error: %v", tc.location, err)
		}
		for _, want := range tc.want {
			if !strings.Contains(sql, want) {
				t.Errorf("location %q: missing %q in %s", tc.location, want, sql)
			}
		}
		for _, notWant := range tc.notWant {
			if strings.Contains(sql, notWant) {
				t.Errorf("location %q: unexpected %q in %s", tc.location, notWant, sql)
			}
		}
	}
}

func TestCompanySQLDefaults(t *testing.T) {
	sql, err := newTestTranslator().CompanySQL(CompanyFilter{})
	if err != nil {
		t.Fatalf("CompanySQL returned error: %v", err)
	}

	if !strings.HasPrefix(sql, "SELECT * FROM company WHERE ") {
		t.Errorf("unexpected prefix: %s", sql)
	}
	if !strings.Contains(sql, "industry IN ('hospital & health care', 'medical device', 'medical practice', 'pharmaceuticals')") {
		t.Errorf("company default industries wrong: %s", sql)
	}
	if !strings.Contains(sql, "location.country='us'") {
		t.Errorf("missing default country clause: %s", sql)
	}
	if strings.Contains(sql, "job_title") {
		t.Errorf("company query must not filter titles: %s", sql)
	}
}

func TestCompanySQLNestedLocationFields(t *testing.T) {
	sql, err := newTestTranslator().CompanySQL(CompanyFilter{Location: "California"})
	if err != nil {
		t.Fatalf("CompanySQL returned error: %v", err)
	}
	if !strings.Contains(sql, "location.region='California'") || !strings.Contains(sql, "location.country='us'") {
		t.Errorf("nested location clauses wrong: %s", sql)
	}
}

func TestCompanySizeExtraction(t *testing.T) {
	tr := newTestTranslator()

	sql, err := tr.CompanySQL(CompanyFilter{CompanySize: "Over 500 beds"})
	if err != nil {
		t.Fatalf("CompanySQL returned error: %v", err)
	}
	if !strings.Contains(sql, "employee_count >= 500") {
		t.Errorf("size threshold missing: %s", sql)
	}

	sql, err = tr.CompanySQL(CompanyFilter{CompanySize: "500+"})
	if err != nil {
		t.Fatalf("CompanySQL returned error: %v", err)
	}
	if !strings.Contains(sql, "employee_count >= 500") {
		t.Errorf("size threshold missing: %s", sql)
	}

	sql, err = tr.CompanySQL(CompanyFilter{CompanySize: "roughly big"})
	if err != nil {
		t.Fatalf("unparsable size must not fail translation: %v", err)
	}
	if strings.Contains(sql, "employee_count") {
		t.Errorf("unparsable size must not emit a clause: %s", sql)
	}
}

func TestParseKeywords(t *testing.T) {
	f := ParseKeywords("Find wound care directors at large hospitals in Boston, Medicare-certified, struggling with manual tracking")

	hasTitle := func(want string) bool {
		for _, title := range f.Titles {
			if title == want {
				return true
			}
		}
		return false
	}
	if !hasTitle("wound care") || !hasTitle("director") {
		t.Errorf("titles = %v", f.Titles)
	}
	if len(f.Industries) == 0 || f.Industries[0] != "hospital & health care" {
		t.Errorf("industries = %v", f.Industries)
	}
	if f.Location != "boston" {
		t.Errorf("location = %q", f.Location)
	}
	if f.CompanySize != "501-1000" {
		t.Errorf("companySize = %q", f.CompanySize)
	}

	hasTag := func(want string) bool {
		for _, tag := range f.Tags {
			if tag == want {
				return true
			}
		}
		return false
	}
	if !hasTag("Medicare-certified") || !hasTag("Manual tracking") {
		t.Errorf("tags = %v", f.Tags)
	}
}

func TestParseKeywordsEmpty(t *testing.T) {
	f := ParseKeywords("completely unrelated text")
	if len(f.Titles) != 0 || len(f.Industries) != 0 || f.Location != "" || f.CompanySize != "" || len(f.Tags) != 0 {
		t.Errorf("expected empty facets, got %+v", f)
	}
}
