package handler

import (
	"net/http"
	"strconv"

	"mediagent_backend/internal/leads/repository"
	"mediagent_backend/internal/leads/service"
	"mediagent_backend/internal/leads/transport"
	"mediagent_backend/platform/httpkit"
	"mediagent_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/leads", h.List)
	rg.POST("/leads", h.Create)
	rg.GET("/leads/:id", h.Get)
	rg.PUT("/leads/:id", h.Update)
	rg.DELETE("/leads/:id", h.Delete)
	rg.PATCH("/leads/:id/status", h.UpdateStatus)
	rg.POST("/leads/:id/enrich", h.RequestEnrichment)
}

func (h *Handler) List(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var agentID *uuid.UUID
	if raw := c.Query("agentId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid agentId", nil)
			return
		}
		agentID = &parsed
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httpkit.Error(c, http.StatusBadRequest, "invalid limit", nil)
			return
		}
		limit = parsed
	}

	leads, err := h.svc.List(c.Request.Context(), id.UserID(), agentID, c.Query("status"), limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": transport.FromLeads(leads)})
}

func (h *Handler) Get(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	lead, err := h.svc.Get(c.Request.Context(), id.UserID(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromLead(lead))
}

func (h *Handler) Create(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := leadFromRequest(req)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), id.UserID(), lead)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.FromLead(created))
}

func (h *Handler) Update(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := leadFromRequest(req.CreateLeadRequest)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	lead.ID = c.Param("id")

	updated, err := h.svc.Update(c.Request.Context(), id.UserID(), lead)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromLead(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id.UserID(), c.Param("id")); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "lead deleted"})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.UpdateStatus(c.Request.Context(), id.UserID(), c.Param("id"), req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromLead(lead))
}

func (h *Handler) RequestEnrichment(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	if err := h.svc.RequestEnrichment(c.Request.Context(), id.UserID(), c.Param("id")); httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusAccepted, gin.H{"message": "enrichment queued"})
}

func leadFromRequest(req transport.CreateLeadRequest) (repository.Lead, error) {
	lead := repository.Lead{
		Name:        req.Name,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Email:       req.Email,
		Phone:       req.Phone,
		LinkedinURL: req.LinkedinURL,
		Tags:        req.Tags,
		MatchScore:  req.MatchScore,
		Bio:         req.Bio,
		Skills:      req.Skills,
		Industry:    req.Industry,
		CompanySize: req.CompanySize,
		Status:      req.Status,
	}
	if req.AgentID != nil && *req.AgentID != "" {
		parsed, err := uuid.Parse(*req.AgentID)
		if err != nil {
			return repository.Lead{}, err
		}
		lead.AgentID = &parsed
	}
	return lead, nil
}
