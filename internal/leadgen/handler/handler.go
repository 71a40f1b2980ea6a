package handler

import (
	"encoding/json"
	"net/http"
	"regexp"

	"mediagent_backend/internal/leadgen/query"
	"mediagent_backend/internal/leadgen/service"
	"mediagent_backend/internal/leadgen/transport"
	leadstransport "mediagent_backend/internal/leads/transport"
	"mediagent_backend/platform/httpkit"
	"mediagent_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

var rawLocationPattern = regexp.MustCompile(`"location"\s*:\s*"([^"]*)"`)

// locationFromRawBody makes a best-effort extraction of the location
// field from a body that failed to parse as JSON.
func locationFromRawBody(raw []byte) string {
	match := rawLocationPattern.FindSubmatch(raw)
	if match == nil {
		return ""
	}
	return string(match[1])
}

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search", h.SearchLeads)
	rg.POST("/person-search", h.PersonSearch)
	rg.POST("/company-search", h.CompanySearch)
	rg.POST("/query-parse", h.ParseQuery)
	rg.GET("/person-enrich", h.EnrichPerson)
	rg.POST("/email/draft", h.DraftEmail)
	rg.POST("/email/send", h.SendEmail)
}

func (h *Handler) SearchLeads(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.SearchLeadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	var agentID *uuid.UUID
	if req.AgentID != nil && *req.AgentID != "" {
		parsed, err := uuid.Parse(*req.AgentID)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid agentId", nil)
			return
		}
		agentID = &parsed
	}

	run, err := h.svc.SearchLeads(c.Request.Context(), id.UserID(), agentID, req.Query, req.Limit)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{
		"status": http.StatusOK,
		"source": run.Source,
		"facets": run.Facets,
		"data":   leadstransport.FromLeads(run.Leads),
	})
}

func (h *Handler) PersonSearch(c *gin.Context) {
	raw, _ := c.GetRawData()

	var req transport.PersonSearchRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		// An unreadable body still gets the mock fallback; salvage the
		// location from the raw bytes when possible.
		outcome := h.svc.PersonFallback(locationFromRawBody(raw))
		httpkit.OK(c, transport.PersonSearchResponse{
			Status: outcome.Status,
			Source: outcome.Source,
			Data:   outcome.Data,
		})
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	outcome, err := h.svc.PersonSearch(c.Request.Context(), query.PersonFilter{
		Titles:     req.Titles,
		Industries: req.Industry,
		Location:   req.Location,
	}, req.Limit)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.PersonSearchResponse{
		Status: outcome.Status,
		Source: outcome.Source,
		Data:   outcome.Data,
	})
}

func (h *Handler) CompanySearch(c *gin.Context) {
	raw, _ := c.GetRawData()

	var req transport.CompanySearchRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		outcome := h.svc.CompanyFallback(locationFromRawBody(raw))
		httpkit.OK(c, transport.CompanySearchResponse{
			Status: outcome.Status,
			Source: outcome.Source,
			Data:   outcome.Data,
		})
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	outcome, err := h.svc.CompanySearch(c.Request.Context(), query.CompanyFilter{
		Industries:  req.Industry,
		Location:    req.Location,
		CompanySize: req.CompanySize,
	}, req.Limit)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.CompanySearchResponse{
		Status: outcome.Status,
		Source: outcome.Source,
		Data:   outcome.Data,
	})
}

func (h *Handler) ParseQuery(c *gin.Context) {
	var req transport.QueryParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	facets := h.svc.ParseQuery(c.Request.Context(), req.Query)
	httpkit.OK(c, facets)
}

func (h *Handler) EnrichPerson(c *gin.Context) {
	params := service.EnrichParams{
		Email:    c.Query("email"),
		Linkedin: c.Query("linkedin"),
		Name:     c.Query("name"),
		Company:  c.Query("company"),
	}

	resp, err := h.svc.EnrichPerson(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.EnrichResponse{
		Status:     resp.Status,
		Likelihood: resp.Likelihood,
		Data:       resp.Data,
	})
}

func (h *Handler) DraftEmail(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.DraftEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	body, err := h.svc.DraftEmail(c.Request.Context(), id.UserID(), req.LeadID, req.Context)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.DraftEmailResponse{Status: http.StatusOK, Email: body})
}

func (h *Handler) SendEmail(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.SendEmail(c.Request.Context(), id.UserID(), req.LeadID, req.To, req.Subject, req.Body); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "email sent"})
}
