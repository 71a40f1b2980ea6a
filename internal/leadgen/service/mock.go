package service

import (
	"strings"

	"mediagent_backend/internal/pdl"
)

// Fallback defaults when the request carried no location.
const (
	defaultPersonMockLocation  = "Florida"
	defaultCompanyMockLocation = "California"
)

// mockLocationName renders the location for mock record templating.
// The bare country code "us" reads poorly in a company name.
func mockLocationName(location string) string {
	if location == "us" {
		return "USA"
	}
	return location
}

// compactLocation lowercases and strips whitespace for use in fake
// domains and URL slugs.
func compactLocation(location string) string {
	return strings.Join(strings.Fields(strings.ToLower(location)), "")
}

// mockPersonRecord builds the deterministic fallback person, templated
// from the requested location.
func mockPersonRecord(location string) pdl.PersonRecord {
	name := mockLocationName(location)
	return pdl.PersonRecord{
		ID:              "person-mock-fallback",
		FirstName:       "Jamie",
		LastName:        "Rodriguez",
		FullName:        "Jamie Rodriguez",
		JobTitle:        "Director of Nursing (Mock)",
		JobCompanyName:  name + " Health System (Mock)",
		Industry:        "hospital & health care",
		LocationName:    name + ", USA",
		LocationRegion:  name,
		LocationCountry: "us",
		WorkEmail:       "jrodriguez@" + compactLocation(location) + "hs.example.com",
		PhoneNumbers:    []string{"(555) 555-1122"},
		LinkedinURL:     "https://linkedin.com/in/jamie-rodriguez-nursing-mock",
		Skills:          []string{"Nursing Leadership", "Patient Safety", "Clinical Operations", "Healthcare Management"},
		Bio:             "Experienced Director of Nursing leading teams in " + name + ".",
	}
}

// mockCompanyRecord builds the deterministic fallback company.
func mockCompanyRecord(location string) pdl.CompanyRecord {
	name := mockLocationName(location)
	compact := compactLocation(location)
	return pdl.CompanyRecord{
		ID:            "comp-mock-fallback",
		Name:          name + " General Hospital (Mock)",
		Industry:      "hospital & health care",
		Size:          "501-1000",
		EmployeeCount: 750,
		Location: pdl.CompanyLocation{
			Name:     name + ", USA",
			Locality: name,
			Region:   name,
			Country:  "us",
		},
		Website:     "https://example.com/" + compact + "gh",
		LinkedinURL: "https://linkedin.com/company/" + compact + "-general-hospital",
		Founded:     1990,
		Revenue:     "$100M-$500M",
	}
}
