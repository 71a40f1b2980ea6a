// Package pdl provides the People Data Labs API client used for
// person and company search and person enrichment.
package pdl

// EmailRecord is a single address entry on a person profile.
type EmailRecord struct {
	Address string `json:"address"`
	Type    string `json:"type,omitempty"`
}

// PersonRecord is the subset of a PDL person profile this application reads.
type PersonRecord struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name,omitempty"`

	JobTitle              string `json:"job_title"`
	JobCompanyName        string `json:"job_company_name"`
	JobCompanySize        string `json:"job_company_size"`
	JobCompanyWebsite     string `json:"job_company_website"`
	JobCompanyLinkedinURL string `json:"job_company_linkedin_url"`
	JobCompanyFounded     int    `json:"job_company_founded"`
	JobCompanyIndustry    string `json:"job_company_industry"`

	LocationName    string `json:"location_name"`
	LocationRegion  string `json:"location_region"`
	LocationCountry string `json:"location_country"`

	WorkEmail      string        `json:"work_email"`
	PersonalEmails []string      `json:"personal_emails"`
	Emails         []EmailRecord `json:"emails"`
	PhoneNumbers   []string      `json:"phone_numbers"`
	MobilePhone    string        `json:"mobile_phone"`

	LinkedinURL string   `json:"linkedin_url"`
	Skills      []string `json:"skills"`
	Summary     string   `json:"summary"`
	Bio         string   `json:"bio"`
	Industry    string   `json:"industry"`
}

// CompanyLocation is the headquarters location on a company profile.
type CompanyLocation struct {
	Name     string `json:"name"`
	Locality string `json:"locality"`
	Region   string `json:"region"`
	Country  string `json:"country"`
}

// CompanyRecord is the subset of a PDL company profile this application reads.
type CompanyRecord struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`

	Size          string `json:"size"`
	EmployeeCount int    `json:"employee_count"`

	Website     string `json:"website"`
	LinkedinURL string `json:"linkedin_url"`
	Founded     int    `json:"founded"`
	Industry    string `json:"industry"`
	Revenue     string `json:"estimated_annual_revenue"`

	Location CompanyLocation `json:"location"`
	Summary  string          `json:"summary"`
	Tags     []string        `json:"tags"`
}
