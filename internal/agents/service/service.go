// Package service implements agent workspace operations: CRUD,
// per-agent lead listing, and workspace file storage.
package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"mediagent_backend/internal/adapters/storage"
	"mediagent_backend/internal/agents/repository"
	leadsrepo "mediagent_backend/internal/leads/repository"
	"mediagent_backend/platform/apperr"
	"mediagent_backend/platform/logger"

	"github.com/google/uuid"
)

// FileUpload describes an incoming workspace file.
type FileUpload struct {
	FileName    string
	ContentType string
	SizeBytes   int64
	Content     io.Reader
}

type Service struct {
	repo   *repository.Repository
	leads  *leadsrepo.Repository
	store  storage.ObjectStore
	bucket string
	log    *logger.Logger
}

// New wires the agents service. The object store may be nil when file
// storage is not configured; file operations then fail cleanly.
func New(repo *repository.Repository, leads *leadsrepo.Repository, store storage.ObjectStore, bucket string, log *logger.Logger) *Service {
	return &Service{repo: repo, leads: leads, store: store, bucket: bucket, log: log}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, name string) (repository.Agent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.Agent{}, apperr.Validation("name is required")
	}
	return s.repo.Create(ctx, ownerID, name)
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (repository.Agent, error) {
	agent, err := s.repo.GetByID(ctx, ownerID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Agent{}, apperr.NotFound("agent not found")
	}
	return agent, err
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]repository.Agent, error) {
	return s.repo.List(ctx, ownerID)
}

func (s *Service) Rename(ctx context.Context, ownerID, id uuid.UUID, name string) (repository.Agent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.Agent{}, apperr.Validation("name is required")
	}
	agent, err := s.repo.Rename(ctx, ownerID, id, name)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Agent{}, apperr.NotFound("agent not found")
	}
	return agent, err
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}

	// Remove stored objects before the rows; orphaned objects are
	// worse than orphaned rows.
	if s.store != nil {
		files, err := s.repo.ListFiles(ctx, id)
		if err != nil {
			return err
		}
		for _, f := range files {
			if err := s.store.DeleteObject(ctx, s.bucket, f.ObjectKey); err != nil {
				s.log.Error("workspace file cleanup failed", "agent_id", id, "object_key", f.ObjectKey, "error", err)
			}
		}
	}

	err := s.repo.Delete(ctx, ownerID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("agent not found")
	}
	return err
}

// ListLeads returns the leads associated with the agent.
func (s *Service) ListLeads(ctx context.Context, ownerID, agentID uuid.UUID) ([]leadsrepo.Lead, error) {
	if _, err := s.Get(ctx, ownerID, agentID); err != nil {
		return nil, err
	}
	return s.leads.List(ctx, leadsrepo.ListFilter{OwnerID: ownerID, AgentID: &agentID})
}

// UploadFile validates and stores a workspace file, keyed below the
// agent's folder.
func (s *Service) UploadFile(ctx context.Context, ownerID, agentID uuid.UUID, upload FileUpload) (repository.File, error) {
	if _, err := s.Get(ctx, ownerID, agentID); err != nil {
		return repository.File{}, err
	}
	if s.store == nil {
		return repository.File{}, apperr.Unavailable("file storage is not configured")
	}

	if err := s.store.ValidateContentType(upload.ContentType); err != nil {
		return repository.File{}, apperr.Validation(err.Error())
	}
	if err := s.store.ValidateFileSize(upload.SizeBytes); err != nil {
		return repository.File{}, apperr.Validation(err.Error())
	}

	objectKey, err := s.store.UploadFile(ctx, s.bucket, agentID.String(), upload.FileName, upload.ContentType, upload.Content, upload.SizeBytes)
	if err != nil {
		s.log.Error("workspace file upload failed", "agent_id", agentID, "file_name", upload.FileName, "error", err)
		return repository.File{}, apperr.Unavailable("could not store file")
	}

	file, err := s.repo.CreateFile(ctx, repository.File{
		AgentID:     agentID,
		ObjectKey:   objectKey,
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		SizeBytes:   upload.SizeBytes,
	})
	if err != nil {
		// The object is already stored; try not to leak it.
		if delErr := s.store.DeleteObject(ctx, s.bucket, objectKey); delErr != nil {
			s.log.Error("orphaned object cleanup failed", "object_key", objectKey, "error", delErr)
		}
		return repository.File{}, err
	}
	return file, nil
}

func (s *Service) ListFiles(ctx context.Context, ownerID, agentID uuid.UUID) ([]repository.File, error) {
	if _, err := s.Get(ctx, ownerID, agentID); err != nil {
		return nil, err
	}
	return s.repo.ListFiles(ctx, agentID)
}

// FileDownloadURL returns a presigned download link for the file.
func (s *Service) FileDownloadURL(ctx context.Context, ownerID, agentID, fileID uuid.UUID) (*storage.PresignedURL, error) {
	if _, err := s.Get(ctx, ownerID, agentID); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, apperr.Unavailable("file storage is not configured")
	}

	file, err := s.repo.GetFile(ctx, agentID, fileID)
	if errors.Is(err, repository.ErrFileNotFound) {
		return nil, apperr.NotFound("file not found")
	}
	if err != nil {
		return nil, err
	}

	url, err := s.store.GenerateDownloadURL(ctx, s.bucket, file.ObjectKey)
	if err != nil {
		s.log.Error("presign download failed", "object_key", file.ObjectKey, "error", err)
		return nil, apperr.Unavailable("could not generate download link")
	}
	return url, nil
}

func (s *Service) DeleteFile(ctx context.Context, ownerID, agentID, fileID uuid.UUID) error {
	if _, err := s.Get(ctx, ownerID, agentID); err != nil {
		return err
	}

	file, err := s.repo.GetFile(ctx, agentID, fileID)
	if errors.Is(err, repository.ErrFileNotFound) {
		return apperr.NotFound("file not found")
	}
	if err != nil {
		return err
	}

	if s.store != nil {
		if err := s.store.DeleteObject(ctx, s.bucket, file.ObjectKey); err != nil {
			s.log.Error("object delete failed", "object_key", file.ObjectKey, "error", err)
		}
	}
	return s.repo.DeleteFile(ctx, agentID, fileID)
}
