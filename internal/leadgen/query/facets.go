// Package query turns free-text lead searches into People Data Labs
// SQL expressions: facet extraction, term normalization, and clause
// construction.
package query

// Facets is the structured interpretation of a free-text lead query.
type Facets struct {
	Titles      []string `json:"titles"`
	Industries  []string `json:"industries"`
	Location    string   `json:"location"`
	CompanySize string   `json:"companySize"`
	Tags        []string `json:"tags"`
	Specialties []string `json:"specialties"`
	PainPoints  []string `json:"painPoints"`
	BudgetInfo  string   `json:"budgetInfo"`
	Timeframe   string   `json:"timeframe"`
}
