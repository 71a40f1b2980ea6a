package handler

import (
	"net/http"

	"mediagent_backend/internal/agents/service"
	"mediagent_backend/internal/agents/transport"
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

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/agents", h.List)
	rg.POST("/agents", h.Create)
	rg.GET("/agents/:id", h.Get)
	rg.PUT("/agents/:id", h.Rename)
	rg.DELETE("/agents/:id", h.Delete)
	rg.GET("/agents/:id/leads", h.ListLeads)
	rg.POST("/agents/:id/files", h.UploadFile)
	rg.GET("/agents/:id/files", h.ListFiles)
	rg.GET("/agents/:id/files/:fileId/url", h.FileDownloadURL)
	rg.DELETE("/agents/:id/files/:fileId", h.DeleteFile)
}

func (h *Handler) List(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	agents, err := h.svc.List(c.Request.Context(), id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": transport.FromAgents(agents)})
}

func (h *Handler) Create(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	agent, err := h.svc.Create(c.Request.Context(), id.UserID(), req.Name)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.FromAgent(agent))
}

func (h *Handler) Get(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	agentID, ok := parseAgentID(c)
	if !ok {
		return
	}

	agent, err := h.svc.Get(c.Request.Context(), id.UserID(), agentID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromAgent(agent))
}

func (h *Handler) Rename(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	agentID, ok := parseAgentID(c)
	if !ok {
		return
	}

	var req transport.RenameAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	agent, err := h.svc.Rename(c.Request.Context(), id.UserID(), agentID, req.Name)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromAgent(agent))
}

func (h *Handler) Delete(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	agentID, ok := parseAgentID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id.UserID(), agentID); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "agent deleted"})
}

func (h *Handler) ListLeads(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	agentID, ok := parseAgentID(c)
	if !ok {
		return
	}

	leads, err := h.svc.ListLeads(c.Request.Context(), id.UserID(), agentID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": leadstransport.FromLeads(leads)})
}

func (h *Handler) UploadFile(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	agentID, ok := parseAgentID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}

	src, err := header.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "could not read file", nil)
		return
	}
	defer src.Close()

	file, err := h.svc.UploadFile(c.Request.Context(), id.UserID(), agentID, service.FileUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		SizeBytes:   header.Size,
		Content:     src,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.FromFile(file))
}

func (h *Handler) ListFiles(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	agentID, ok := parseAgentID(c)
	if !ok {
		return
	}

	files, err := h.svc.ListFiles(c.Request.Context(), id.UserID(), agentID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": transport.FromFiles(files)})
}

func (h *Handler) FileDownloadURL(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	agentID, ok := parseAgentID(c)
	if !ok {
		return
	}
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}

	url, err := h.svc.FileDownloadURL(c.Request.Context(), id.UserID(), agentID, fileID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, url)
}

func (h *Handler) DeleteFile(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	agentID, ok := parseAgentID(c)
	if !ok {
		return
	}
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteFile(c.Request.Context(), id.UserID(), agentID, fileID); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "file deleted"})
}

func parseAgentID(c *gin.Context) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid agent id", nil)
		return uuid.Nil, false
	}
	return parsed, true
}

func parseFileID(c *gin.Context) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(c.Param("fileId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid file id", nil)
		return uuid.Nil, false
	}
	return parsed, true
}
