package service

import (
	"strings"

	"mediagent_backend/internal/leadgen/query"
	"mediagent_backend/internal/leads/repository"
	"mediagent_backend/internal/pdl"
	"mediagent_backend/platform/phone"

	"github.com/google/uuid"
)

const (
	placeholderTitle    = "Unknown Title"
	placeholderCompany  = "Unknown Company"
	placeholderLocation = "Unknown Location"
	placeholderName     = "Unknown Name"
)

// transformLeads maps raw person records into leads, matching company
// records by name, scoring against the facets, and deriving tags.
func transformLeads(persons []pdl.PersonRecord, companies []pdl.CompanyRecord, facets query.Facets, source string, ownerID uuid.UUID, agentID *uuid.UUID) []repository.Lead {
	leads := make([]repository.Lead, 0, len(persons))
	for _, person := range persons {
		company := matchCompany(person.JobCompanyName, companies)

		lead := repository.Lead{
			ID:          person.ID,
			OwnerID:     ownerID,
			AgentID:     agentID,
			Name:        personName(person),
			Title:       valueOr(person.JobTitle, placeholderTitle),
			Company:     valueOr(person.JobCompanyName, placeholderCompany),
			Location:    valueOr(person.LocationName, placeholderLocation),
			Email:       personEmail(person),
			LinkedinURL: person.LinkedinURL,
			Tags:        buildTags(person, company, facets),
			MatchScore:  scoreLead(person, facets),
			Bio:         valueOr(person.Bio, person.Summary),
			Skills:      person.Skills,
			Industry:    valueOr(person.JobCompanyIndustry, person.Industry),
			Specialties: facets.Specialties,
			PainPoints:  facets.PainPoints,
			BudgetInfo:  facets.BudgetInfo,
			Timeframe:   facets.Timeframe,
			Status:      repository.StatusNew,
			Source:      source,
		}
		if lead.ID == "" {
			lead.ID = repository.NewLocalID()
		}
		if len(person.PhoneNumbers) > 0 {
			lead.Phone = phone.NormalizeE164(person.PhoneNumbers[0])
		}
		if company != nil {
			lead.CompanySize = company.Size
			lead.CompanyWebsite = company.Website
			lead.CompanyLinkedin = company.LinkedinURL
			lead.CompanyFounded = company.Founded
			lead.CompanyRevenue = company.Revenue
		}

		leads = append(leads, lead)
	}
	return leads
}

// scoreLead starts at 70 and adds fixed bonuses per facet overlap.
// The sum is intentionally not capped at 100.
func scoreLead(person pdl.PersonRecord, facets query.Facets) int {
	score := 70

	title := strings.ToLower(person.JobTitle)
	for _, want := range facets.Titles {
		if want != "" && strings.Contains(title, strings.ToLower(want)) {
			score += 10
			break
		}
	}

	industry := strings.ToLower(person.JobCompanyIndustry)
	for _, want := range facets.Industries {
		if want != "" && strings.Contains(industry, strings.ToLower(want)) {
			score += 5
			break
		}
	}

	if facets.Location != "" &&
		strings.Contains(strings.ToLower(person.LocationName), strings.ToLower(facets.Location)) {
		score += 5
	}

	if len(facets.Specialties) > 0 && skillMatchesSpecialty(person.Skills, facets.Specialties) {
		score += 8
	}

	return score
}

func skillMatchesSpecialty(skills, specialties []string) bool {
	for _, skill := range skills {
		lower := strings.ToLower(skill)
		for _, specialty := range specialties {
			if specialty != "" && strings.Contains(lower, strings.ToLower(specialty)) {
				return true
			}
		}
	}
	return false
}

// buildTags appends requested tags, pain points, a company size label,
// and the record's industry, then truncates to five.
func buildTags(person pdl.PersonRecord, company *pdl.CompanyRecord, facets query.Facets) []string {
	tags := make([]string, 0, 5)
	tags = append(tags, facets.Tags...)
	tags = append(tags, facets.PainPoints...)
	if company != nil && company.Size != "" {
		tags = append(tags, company.Size+" employees")
	}
	if person.JobCompanyIndustry != "" {
		tags = append(tags, person.JobCompanyIndustry)
	}
	if len(tags) > 5 {
		tags = tags[:5]
	}
	return tags
}

// matchCompany finds the first company whose name equals the person's
// employer, case-insensitively. No fuzzy matching.
func matchCompany(companyName string, companies []pdl.CompanyRecord) *pdl.CompanyRecord {
	if companyName == "" {
		return nil
	}
	lower := strings.ToLower(companyName)
	for i := range companies {
		if strings.ToLower(companies[i].Name) == lower {
			return &companies[i]
		}
	}
	return nil
}

func personName(person pdl.PersonRecord) string {
	name := strings.TrimSpace(person.FirstName + " " + person.LastName)
	if name == "" {
		name = person.FullName
	}
	return valueOr(name, placeholderName)
}

func personEmail(person pdl.PersonRecord) string {
	if person.WorkEmail != "" {
		return person.WorkEmail
	}
	if len(person.PersonalEmails) > 0 {
		return person.PersonalEmails[0]
	}
	if len(person.Emails) > 0 {
		return person.Emails[0].Address
	}
	return ""
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
