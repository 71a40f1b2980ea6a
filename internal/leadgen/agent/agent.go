// Package agent wraps the language model calls used during lead
// generation: facet extraction, mock profile synthesis, and outreach
// email drafting.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"mediagent_backend/internal/leadgen/query"
	"mediagent_backend/internal/leads/repository"
	"mediagent_backend/internal/pdl"
	"mediagent_backend/platform/ai/openai"
	"mediagent_backend/platform/logger"
)

// CompletionClient is the subset of the completion API the agent uses.
type CompletionClient interface {
	Complete(ctx context.Context, req openai.CompletionRequest) (string, error)
}

const facetSystemPrompt = `You are a helpful assistant that extracts structured information from text queries about lead generation for medical devices.
Extract the following information and format as JSON:
- titles: array of job titles mentioned
- industries: array of industries mentioned
- location: string of location if mentioned
- companySize: string representing company size
- tags: array of relevant tags like "Medicare-certified", "Manual tracking", etc.
- specialties: array of medical specialties mentioned
- painPoints: array of pain points or challenges mentioned
- budgetInfo: any budget information mentioned
- timeframe: any timeframe or urgency mentioned`

const mockProfileSchema = `{
  "id": "string (generate a unique-ish mock ID)",
  "first_name": "string",
  "last_name": "string",
  "full_name": "string (first + last name)",
  "job_title": "string (relevant to the prompt, make it a director or leadership role)",
  "job_company_name": "string (plausible company name, related to prompt industry/location)",
  "job_company_industry": "string (same as industry field)",
  "industry": "string (relevant industry from prompt, use provider terms e.g. 'hospital & health care')",
  "location_name": "string (e.g. 'City, State, USA' or 'City, Country')",
  "location_region": "string (State/Region)",
  "location_country": "string (2-letter code, e.g. 'us')",
  "work_email": "string (plausible but fake email, e.g. firstname.lastname@example-company.com)",
  "emails": [{"address": "string (include work_email here)"}],
  "phone_numbers": ["string (plausible but fake US-style phone number)"],
  "linkedin_url": "string (plausible but fake LinkedIn URL, e.g. https://linkedin.com/in/firstname-lastname-mock)",
  "skills": ["string (3-5 relevant skills based on job title/industry)"],
  "bio": "string (short, 1-2 sentence bio relevant to the role/industry/location)"
}`

const emailSystemPrompt = `You are an expert sales development representative who writes effective, personalized outreach emails. Your emails are concise, relevant, and focused on the recipient's specific needs based on their role and industry.`

// Agent runs the lead generation prompts against a completion client.
type Agent struct {
	client  CompletionClient
	log     *logger.Logger
	enabled bool
}

func New(client CompletionClient, enabled bool, log *logger.Logger) *Agent {
	return &Agent{client: client, enabled: enabled, log: log}
}

// Enabled reports whether a completion client is configured.
func (a *Agent) Enabled() bool {
	return a.enabled && a.client != nil
}

// ParseFacets extracts structured facets from a free-text query.
func (a *Agent) ParseFacets(ctx context.Context, text string) (query.Facets, error) {
	if !a.Enabled() {
		return query.Facets{}, fmt.Errorf("completion client not configured")
	}

	content, err := a.client.Complete(ctx, openai.CompletionRequest{
		Messages: []openai.Message{
			{Role: "system", Content: facetSystemPrompt},
			{Role: "user", Content: text},
		},
		Temperature: 0.1,
		JSONMode:    true,
	})
	if err != nil {
		a.log.UpstreamError("openai", "parse_facets", 0, err)
		return query.Facets{}, err
	}

	var facets query.Facets
	if err := json.Unmarshal([]byte(content), &facets); err != nil {
		a.log.UpstreamError("openai", "parse_facets", 0, err)
		return query.Facets{}, fmt.Errorf("facet response is not valid JSON: %w", err)
	}
	return facets, nil
}

// SynthesizeProfile generates one fictional person record matching the
// prompt. Used for the richer-than-template fallback path.
func (a *Agent) SynthesizeProfile(ctx context.Context, prompt string) (pdl.PersonRecord, error) {
	if !a.Enabled() {
		return pdl.PersonRecord{}, fmt.Errorf("completion client not configured")
	}

	system := fmt.Sprintf("You are an expert data generator. Your task is to create a single, realistic but entirely fictional person profile based on the user's prompt. Generate data for all fields according to the provided JSON schema. Ensure emails, phone numbers, and LinkedIn URLs are plausible formats but clearly fake (e.g. use example.com domains, standard phone patterns). The output MUST be only the valid JSON object matching this structure: %s", mockProfileSchema)

	content, err := a.client.Complete(ctx, openai.CompletionRequest{
		Messages: []openai.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: "Generate a mock person profile for: " + prompt},
		},
		Temperature: 0.7,
		JSONMode:    true,
	})
	if err != nil {
		a.log.UpstreamError("openai", "synthesize_profile", 0, err)
		return pdl.PersonRecord{}, err
	}

	var person pdl.PersonRecord
	if err := json.Unmarshal([]byte(content), &person); err != nil {
		a.log.UpstreamError("openai", "synthesize_profile", 0, err)
		return pdl.PersonRecord{}, fmt.Errorf("profile response is not valid JSON: %w", err)
	}
	return person, nil
}

// DraftEmail writes a personalized outreach email for the lead.
// Failures surface to the caller; there is no fallback text.
func (a *Agent) DraftEmail(ctx context.Context, lead repository.Lead, searchContext string) (string, error) {
	if !a.Enabled() {
		return "", fmt.Errorf("completion client not configured")
	}

	prompt := fmt.Sprintf(`Generate a personalized, professional outreach email to a potential lead with the following information:

Name: %s
Title: %s
Company: %s
Industry: %s
Location: %s

Search context: %q

The email should:
1. Be concise (3-4 paragraphs maximum)
2. Include a personalized introduction referencing their role and company
3. Briefly mention how our solution can help with common pain points in their industry
4. Reference specific elements from the search context to make it highly relevant
5. Include a clear, low-pressure call to action (like scheduling a brief call)
6. Have a professional signature

Format the email with proper salutation, body paragraphs, and signature.`,
		lead.Name,
		orUnknown(lead.Title),
		orUnknown(lead.Company),
		orDefault(lead.Industry, "Healthcare"),
		orUnknown(lead.Location),
		searchContext,
	)

	content, err := a.client.Complete(ctx, openai.CompletionRequest{
		Messages: []openai.Message{
			{Role: "system", Content: emailSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		a.log.UpstreamError("openai", "draft_email", 0, err)
		return "", err
	}
	return content, nil
}

func orUnknown(value string) string {
	return orDefault(value, "Unknown")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
