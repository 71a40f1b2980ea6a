package pdl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"mediagent_backend/platform/config"
	"mediagent_backend/platform/logger"
)

const defaultHTTPTimeout = 10 * time.Second

// apiError is the error object PDL returns on non-200 responses.
type apiError struct {
	Type    interface{} `json:"type"`
	Message string      `json:"message"`
}

// PersonSearchResponse is the PDL /person/search envelope.
// A non-200 Status with an empty Data slice is a valid, non-error outcome;
// callers decide how to react. Go errors are reserved for transport and
// decode failures.
type PersonSearchResponse struct {
	Status int            `json:"status"`
	Total  int            `json:"total"`
	Data   []PersonRecord `json:"data"`
	Error  *apiError      `json:"error"`
}

// ErrorMessage returns the upstream error text, if any.
func (r PersonSearchResponse) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Message
}

// CompanySearchResponse is the PDL /company/search envelope.
type CompanySearchResponse struct {
	Status int             `json:"status"`
	Total  int             `json:"total"`
	Data   []CompanyRecord `json:"data"`
	Error  *apiError       `json:"error"`
}

// ErrorMessage returns the upstream error text, if any.
func (r CompanySearchResponse) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Message
}

// EnrichResponse is the PDL /person/enrich envelope.
type EnrichResponse struct {
	Status     int          `json:"status"`
	Likelihood int          `json:"likelihood"`
	Data       PersonRecord `json:"data"`
	Error      *apiError    `json:"error"`
}

// ErrorMessage returns the upstream error text, if any.
func (r EnrichResponse) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Message
}

// EnrichParams identify the person to enrich. At least one of Email,
// Profile, or Name+Company must be set.
type EnrichParams struct {
	Email   string
	Phone   string
	Profile string // LinkedIn URL
	Name    string
	Company string
}

// Client handles People Data Labs requests.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a new PDL client.
func New(cfg config.PDLConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:    cfg.GetPDLBaseURL(),
		apiKey:     cfg.GetPDLAPIKey(),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		log:        log,
	}
}

// SearchPersons runs a SQL query against /person/search.
func (c *Client) SearchPersons(ctx context.Context, sqlQuery string, size int) (PersonSearchResponse, error) {
	var payload PersonSearchResponse
	if err := c.get(ctx, "/person/search", searchParams(sqlQuery, size), &payload); err != nil {
		return PersonSearchResponse{}, err
	}
	return payload, nil
}

// SearchCompanies runs a SQL query against /company/search.
func (c *Client) SearchCompanies(ctx context.Context, sqlQuery string, size int) (CompanySearchResponse, error) {
	var payload CompanySearchResponse
	if err := c.get(ctx, "/company/search", searchParams(sqlQuery, size), &payload); err != nil {
		return CompanySearchResponse{}, err
	}
	return payload, nil
}

// EnrichPerson looks up a single person via /person/enrich.
func (c *Client) EnrichPerson(ctx context.Context, p EnrichParams) (EnrichResponse, error) {
	params := url.Values{}
	params.Set("pretty", "false")
	params.Set("min_likelihood", "2")
	params.Set("include_if_matched", "false")
	params.Set("titlecase", "false")
	if p.Email != "" {
		params.Set("email", p.Email)
	}
	if p.Phone != "" {
		params.Set("phone", p.Phone)
	}
	if p.Profile != "" {
		params.Set("profile", p.Profile)
	}
	if p.Name != "" {
		params.Set("name", p.Name)
	}
	if p.Company != "" {
		params.Set("company", p.Company)
	}

	var payload EnrichResponse
	if err := c.get(ctx, "/person/enrich", params, &payload); err != nil {
		return EnrichResponse{}, err
	}
	return payload, nil
}

func searchParams(sqlQuery string, size int) url.Values {
	params := url.Values{}
	params.Set("sql", sqlQuery)
	params.Set("size", strconv.Itoa(size))
	return params
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("pdl", path, 0, err)
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.UpstreamError("pdl", path, resp.StatusCode, err)
		return err
	}

	if resp.StatusCode != http.StatusOK {
		c.log.UpstreamError("pdl", path, resp.StatusCode, nil)
	}

	return nil
}
