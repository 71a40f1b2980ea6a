// Package transport defines request and response DTOs for the leads API.
package transport

import (
	"time"

	"mediagent_backend/internal/leads/repository"
)

type CreateLeadRequest struct {
	AgentID     *string  `json:"agentId" validate:"omitempty,uuid"`
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Title       string   `json:"title" validate:"max=200"`
	Company     string   `json:"company" validate:"max=200"`
	Location    string   `json:"location" validate:"max=200"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Phone       string   `json:"phone" validate:"max=40"`
	LinkedinURL string   `json:"linkedinUrl" validate:"omitempty,url"`
	Tags        []string `json:"tags" validate:"max=5,dive,max=100"`
	MatchScore  int      `json:"matchScore" validate:"min=0"`
	Bio         string   `json:"bio"`
	Skills      []string `json:"skills"`
	Industry    string   `json:"industry" validate:"max=200"`
	CompanySize string   `json:"companySize" validate:"max=50"`
	Status      string   `json:"status" validate:"omitempty,oneof=new contacted qualified converted archived"`
}

type UpdateLeadRequest struct {
	CreateLeadRequest
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted qualified converted archived"`
}

type LeadResponse struct {
	ID              string    `json:"id"`
	AgentID         *string   `json:"agentId,omitempty"`
	Name            string    `json:"name"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	LinkedinURL     string    `json:"linkedinUrl,omitempty"`
	Tags            []string  `json:"tags"`
	MatchScore      int       `json:"matchScore"`
	Bio             string    `json:"bio,omitempty"`
	Skills          []string  `json:"skills,omitempty"`
	Industry        string    `json:"industry,omitempty"`
	CompanySize     string    `json:"companySize,omitempty"`
	CompanyWebsite  string    `json:"companyWebsite,omitempty"`
	CompanyLinkedin string    `json:"companyLinkedin,omitempty"`
	CompanyFounded  int       `json:"companyFounded,omitempty"`
	CompanyRevenue  string    `json:"companyRevenue,omitempty"`
	Specialties     []string  `json:"specialties,omitempty"`
	PainPoints      []string  `json:"painPoints,omitempty"`
	BudgetInfo      string    `json:"budgetInfo,omitempty"`
	Timeframe       string    `json:"timeframe,omitempty"`
	Status          string    `json:"status"`
	Source          string    `json:"source"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FromLead maps the persistence model to the API shape.
func FromLead(l repository.Lead) LeadResponse {
	resp := LeadResponse{
		ID:              l.ID,
		Name:            l.Name,
		Title:           l.Title,
		Company:         l.Company,
		Location:        l.Location,
		Email:           l.Email,
		Phone:           l.Phone,
		LinkedinURL:     l.LinkedinURL,
		Tags:            l.Tags,
		MatchScore:      l.MatchScore,
		Bio:             l.Bio,
		Skills:          l.Skills,
		Industry:        l.Industry,
		CompanySize:     l.CompanySize,
		CompanyWebsite:  l.CompanyWebsite,
		CompanyLinkedin: l.CompanyLinkedin,
		CompanyFounded:  l.CompanyFounded,
		CompanyRevenue:  l.CompanyRevenue,
		Specialties:     l.Specialties,
		PainPoints:      l.PainPoints,
		BudgetInfo:      l.BudgetInfo,
		Timeframe:       l.Timeframe,
		Status:          l.Status,
		Source:          l.Source,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
	if l.AgentID != nil {
		id := l.AgentID.String()
		resp.AgentID = &id
	}
	return resp
}

// FromLeads maps a slice, always returning a non-nil slice for JSON.
func FromLeads(leads []repository.Lead) []LeadResponse {
	out := make([]LeadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, FromLead(l))
	}
	return out
}
