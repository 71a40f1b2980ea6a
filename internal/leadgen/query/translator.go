package query

import (
	"fmt"
	"regexp"
	"strings"

	"mediagent_backend/platform/apperr"
	"mediagent_backend/platform/logger"
)

// ErrEmptyQuery is returned when no predicate clauses could be built.
// The defaults make this unreachable in practice; it guards against a
// malformed expression ever reaching the data provider.
var ErrEmptyQuery = apperr.Validation("no search conditions provided")

var firstInteger = regexp.MustCompile(`\d+`)

// defaultPersonIndustries and defaultCompanyIndustries apply when the
// request names no industries.
var (
	defaultPersonIndustries  = []string{"hospital & health care", "medical device", "medical practice"}
	defaultCompanyIndustries = []string{"hospital & health care", "medical device", "medical practice", "pharmaceuticals"}
)

// PersonFilter are the structured inputs for a person search.
type PersonFilter struct {
	Titles     []string
	Industries []string
	Location   string
}

// CompanyFilter are the structured inputs for a company search.
type CompanyFilter struct {
	Industries  []string
	Location    string
	CompanySize string
}

// Translator builds PDL SQL expressions from structured filters.
type Translator struct {
	log *logger.Logger
}

func NewTranslator(log *logger.Logger) *Translator {
	return &Translator{log: log}
}

// PersonSQL builds the person search expression. Clauses: title
// substring match (defaulted), fixed seniority set, normalized
// industry membership (defaulted), and location.
func (t *Translator) PersonSQL(f PersonFilter) (string, error) {
	var conditions []string

	titles := f.Titles
	if len(titles) == 0 {
		titles = []string{"wound", "nursing", "clinical", "medical"}
	}
	titleClauses := make([]string, 0, len(titles))
	for _, title := range titles {
		titleClauses = append(titleClauses, fmt.Sprintf("job_title LIKE '%%%s%%'", title))
	}
	conditions = append(conditions, "("+strings.Join(titleClauses, " OR ")+")")

	conditions = append(conditions, "job_title_levels IN ('director', 'executive', 'senior', 'manager', 'vp')")

	conditions = append(conditions, industryClause(f.Industries, defaultPersonIndustries))
	conditions = append(conditions, t.locationClauses(f.Location, "location_region", "location_country")...)

	if len(conditions) == 0 {
		return "", ErrEmptyQuery
	}
	return "SELECT * FROM person WHERE " + strings.Join(conditions, " AND "), nil
}

// CompanySQL builds the company search expression. Location fields are
// nested on the company schema, and a minimum employee count is
// extracted from free-text size descriptions.
func (t *Translator) CompanySQL(f CompanyFilter) (string, error) {
	var conditions []string

	conditions = append(conditions, industryClause(f.Industries, defaultCompanyIndustries))
	conditions = append(conditions, t.locationClauses(f.Location, "location.region", "location.country")...)

	if f.CompanySize != "" {
		if match := firstInteger.FindString(f.CompanySize); match != "" {
			conditions = append(conditions, fmt.Sprintf("employee_count >= %s", match))
		} else {
			t.log.Warn("could not parse company size", "company_size", f.CompanySize)
		}
	}

	if len(conditions) == 0 {
		return "", ErrEmptyQuery
	}
	return "SELECT * FROM company WHERE " + strings.Join(conditions, " AND "), nil
}

// industryClause lowercases each term and maps the common "hospitals"
// variation to the provider's canonical label.
func industryClause(industries, defaults []string) string {
	terms := industries
	if len(terms) == 0 {
		terms = defaults
	}
	quoted := make([]string, 0, len(terms))
	for _, industry := range terms {
		lower := strings.ToLower(industry)
		if lower == "hospitals" {
			lower = "hospital & health care"
		}
		quoted = append(quoted, "'"+lower+"'")
	}
	return "industry IN (" + strings.Join(quoted, ", ") + ")"
}

// locationClauses classifies a location term: US state, US country
// alias, two-letter country code, or unclear (defaults to US with a
// warning). Absent locations default to US.
func (t *Translator) locationClauses(location, regionField, countryField string) []string {
	if location == "" {
		return []string{countryField + "='us'"}
	}

	lower := strings.ToLower(location)
	switch {
	case IsUSState(lower):
		return []string{
			fmt.Sprintf("%s='%s'", regionField, location),
			countryField + "='us'",
		}
	case lower == "us" || lower == "usa" || lower == "united states":
		return []string{countryField + "='us'"}
	case len(lower) == 2:
		return []string{fmt.Sprintf("%s='%s'", countryField, lower)}
	default:
		t.log.Warn("unclear location format, defaulting country to 'us'", "location", location)
		return []string{countryField + "='us'"}
	}
}
