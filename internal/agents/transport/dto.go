// Package transport defines request and response DTOs for the agents API.
package transport

import (
	"time"

	"mediagent_backend/internal/agents/repository"
)

type CreateAgentRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

type RenameAgentRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

type AgentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type FileResponse struct {
	ID          string    `json:"id"`
	AgentID     string    `json:"agentId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromAgent(a repository.Agent) AgentResponse {
	return AgentResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// FromAgents maps a slice, always returning a non-nil slice for JSON.
func FromAgents(agents []repository.Agent) []AgentResponse {
	out := make([]AgentResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, FromAgent(a))
	}
	return out
}

func FromFile(f repository.File) FileResponse {
	return FileResponse{
		ID:          f.ID.String(),
		AgentID:     f.AgentID.String(),
		FileName:    f.FileName,
		ContentType: f.ContentType,
		SizeBytes:   f.SizeBytes,
		CreatedAt:   f.CreatedAt,
	}
}

func FromFiles(files []repository.File) []FileResponse {
	out := make([]FileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, FromFile(f))
	}
	return out
}
