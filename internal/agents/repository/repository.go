// Package repository provides Postgres persistence for agent
// workspaces and their files.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("agent not found")
	ErrFileNotFound = errors.New("file not found")
)

// Agent is a workspace a user runs lead searches from.
type Agent struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// File is a stored workspace document.
type File struct {
	ID          uuid.UUID
	AgentID     uuid.UUID
	ObjectKey   string
	FileName    string
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, ownerID uuid.UUID, name string) (Agent, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO agents (id, owner_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, name, created_at, updated_at`,
		uuid.New(), ownerID, name)
	return scanAgent(row)
}

func (r *Repository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (Agent, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, name, created_at, updated_at
		FROM agents WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return scanAgent(row)
}

func (r *Repository) List(ctx context.Context, ownerID uuid.UUID) ([]Agent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, name, created_at, updated_at
		FROM agents WHERE owner_id = $1
		ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agents := make([]Agent, 0)
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, rows.Err()
}

func (r *Repository) Rename(ctx context.Context, ownerID, id uuid.UUID, name string) (Agent, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE agents SET name = $1, updated_at = now()
		WHERE id = $2 AND owner_id = $3
		RETURNING id, owner_id, name, created_at, updated_at`,
		name, id, ownerID)
	return scanAgent(row)
}

func (r *Repository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM agents WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) CreateFile(ctx context.Context, f File) (File, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO agent_files (id, agent_id, object_key, file_name, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, agent_id, object_key, file_name, content_type, size_bytes, created_at`,
		uuid.New(), f.AgentID, f.ObjectKey, f.FileName, f.ContentType, f.SizeBytes)
	return scanFile(row)
}

func (r *Repository) ListFiles(ctx context.Context, agentID uuid.UUID) ([]File, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, agent_id, object_key, file_name, content_type, size_bytes, created_at
		FROM agent_files WHERE agent_id = $1
		ORDER BY created_at DESC`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]File, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *Repository) GetFile(ctx context.Context, agentID, fileID uuid.UUID) (File, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, agent_id, object_key, file_name, content_type, size_bytes, created_at
		FROM agent_files WHERE id = $1 AND agent_id = $2`, fileID, agentID)
	f, err := scanFile(row)
	if errors.Is(err, ErrNotFound) {
		return File{}, ErrFileNotFound
	}
	return f, err
}

func (r *Repository) DeleteFile(ctx context.Context, agentID, fileID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM agent_files WHERE id = $1 AND agent_id = $2`, fileID, agentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFileNotFound
	}
	return nil
}

func scanAgent(row pgx.Row) (Agent, error) {
	var a Agent
	err := row.Scan(&a.ID, &a.OwnerID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Agent{}, ErrNotFound
	}
	return a, err
}

func scanFile(row pgx.Row) (File, error) {
	var f File
	err := row.Scan(&f.ID, &f.AgentID, &f.ObjectKey, &f.FileName, &f.ContentType, &f.SizeBytes, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return File{}, ErrNotFound
	}
	return f, err
}
