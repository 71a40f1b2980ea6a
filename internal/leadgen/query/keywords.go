package query

import "strings"

// ParseKeywords extracts facets from a query with fixed-vocabulary
// substring checks. It is the fallback when the language model parse
// is unavailable and never fails.
func ParseKeywords(text string) Facets {
	lower := strings.ToLower(text)
	var f Facets

	for _, title := range []string{"wound care", "nursing", "director", "clinical", "medical"} {
		if strings.Contains(lower, title) {
			f.Titles = append(f.Titles, title)
		}
	}

	if strings.Contains(lower, "hospital") {
		f.Industries = append(f.Industries, "hospital & health care")
	}
	if strings.Contains(lower, "health care") || strings.Contains(lower, "healthcare") {
		f.Industries = append(f.Industries, "hospital & health care")
	}
	if strings.Contains(lower, "medical device") {
		f.Industries = append(f.Industries, "medical device")
	}

	for _, city := range []string{"boston", "chicago", "san diego"} {
		if strings.Contains(lower, city) {
			f.Location = city
		}
	}

	if strings.Contains(lower, "50+") {
		f.CompanySize = "51-200"
	}
	if strings.Contains(lower, "100+") {
		f.CompanySize = "101-250"
	}
	if strings.Contains(lower, "large") {
		f.CompanySize = "501-1000"
	}

	if strings.Contains(lower, "medicare") {
		f.Tags = append(f.Tags, "Medicare-certified")
	}
	if strings.Contains(lower, "manual tracking") {
		f.Tags = append(f.Tags, "Manual tracking")
	}
	if strings.Contains(lower, "staff shortage") {
		f.Tags = append(f.Tags, "Staff shortage")
	}
	if strings.Contains(lower, "documentation issues") {
		f.Tags = append(f.Tags, "Documentation issues")
	}

	return f
}
