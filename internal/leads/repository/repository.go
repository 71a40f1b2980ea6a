// Package repository provides Postgres persistence for leads.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

// Pipeline statuses.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusConverted = "converted"
	StatusArchived  = "archived"
)

// Lead sources.
const (
	SourceLive   = "live"
	SourceMock   = "mock"
	SourceManual = "manual"
)

// Lead is a prospective contact tracked through the pipeline.
// IDs are text: live records keep the upstream id, locally created
// records get a "lead-" prefixed uuid.
type Lead struct {
	ID              string
	OwnerID         uuid.UUID
	AgentID         *uuid.UUID
	Name            string
	Title           string
	Company         string
	Location        string
	Email           string
	Phone           string
	LinkedinURL     string
	Tags            []string
	MatchScore      int
	Bio             string
	Skills          []string
	Industry        string
	CompanySize     string
	CompanyWebsite  string
	CompanyLinkedin string
	CompanyFounded  int
	CompanyRevenue  string
	Specialties     []string
	PainPoints      []string
	BudgetInfo      string
	Timeframe       string
	Status          string
	Source          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewLocalID generates an id for a lead created outside the data provider.
func NewLocalID() string {
	return "lead-" + uuid.NewString()
}

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	OwnerID uuid.UUID
	AgentID *uuid.UUID
	Status  string
	Limit   int
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leadColumns = `id, owner_id, agent_id, name, title, company, location, email, phone,
	linkedin_url, tags, match_score, bio, skills, industry, company_size,
	company_website, company_linkedin, company_founded, company_revenue,
	specialties, pain_points, budget_info, timeframe, status, source,
	created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var l Lead
	err := row.Scan(
		&l.ID, &l.OwnerID, &l.AgentID, &l.Name, &l.Title, &l.Company, &l.Location,
		&l.Email, &l.Phone, &l.LinkedinURL, &l.Tags, &l.MatchScore, &l.Bio,
		&l.Skills, &l.Industry, &l.CompanySize, &l.CompanyWebsite,
		&l.CompanyLinkedin, &l.CompanyFounded, &l.CompanyRevenue,
		&l.Specialties, &l.PainPoints, &l.BudgetInfo, &l.Timeframe,
		&l.Status, &l.Source, &l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return l, err
}

const upsertLeadQuery = `
	INSERT INTO leads (
		id, owner_id, agent_id, name, title, company, location, email, phone,
		linkedin_url, tags, match_score, bio, skills, industry, company_size,
		company_website, company_linkedin, company_founded, company_revenue,
		specialties, pain_points, budget_info, timeframe, status, source
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
	)
	ON CONFLICT (id) DO UPDATE SET
		owner_id = EXCLUDED.owner_id,
		agent_id = EXCLUDED.agent_id,
		name = EXCLUDED.name,
		title = EXCLUDED.title,
		company = EXCLUDED.company,
		location = EXCLUDED.location,
		email = EXCLUDED.email,
		phone = EXCLUDED.phone,
		linkedin_url = EXCLUDED.linkedin_url,
		tags = EXCLUDED.tags,
		match_score = EXCLUDED.match_score,
		bio = EXCLUDED.bio,
		skills = EXCLUDED.skills,
		industry = EXCLUDED.industry,
		company_size = EXCLUDED.company_size,
		company_website = EXCLUDED.company_website,
		company_linkedin = EXCLUDED.company_linkedin,
		company_founded = EXCLUDED.company_founded,
		company_revenue = EXCLUDED.company_revenue,
		specialties = EXCLUDED.specialties,
		pain_points = EXCLUDED.pain_points,
		budget_info = EXCLUDED.budget_info,
		timeframe = EXCLUDED.timeframe,
		status = EXCLUDED.status,
		source = EXCLUDED.source,
		updated_at = now()`

const getLeadQuery = `SELECT ` + leadColumns + ` FROM leads WHERE id = $1 AND owner_id = $2`

const getAnyLeadQuery = `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

const deleteLeadQuery = `DELETE FROM leads WHERE id = $1 AND owner_id = $2`

const updateLeadStatusQuery = `UPDATE leads SET status = $1, updated_at = now() WHERE id = $2 AND owner_id = $3`

// Upsert writes a lead keyed by id, last write wins.
func (r *Repository) Upsert(ctx context.Context, l Lead) error {
	_, err := r.pool.Exec(ctx, upsertLeadQuery,
		l.ID, l.OwnerID, l.AgentID, l.Name, l.Title, l.Company, l.Location,
		l.Email, l.Phone, l.LinkedinURL, l.Tags, l.MatchScore, l.Bio, l.Skills,
		l.Industry, l.CompanySize, l.CompanyWebsite, l.CompanyLinkedin,
		l.CompanyFounded, l.CompanyRevenue, l.Specialties, l.PainPoints,
		l.BudgetInfo, l.Timeframe, l.Status, l.Source,
	)
	return err
}

// UpsertMany writes each lead independently. No transaction spans
// records; conflict handling is per-id last write wins.
func (r *Repository) UpsertMany(ctx context.Context, leads []Lead) error {
	for _, l := range leads {
		if err := r.Upsert(ctx, l); err != nil {
			return fmt.Errorf("upsert lead %s: %w", l.ID, err)
		}
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, ownerID uuid.UUID, id string) (Lead, error) {
	row := r.pool.QueryRow(ctx, getLeadQuery, id, ownerID)
	return scanLead(row)
}

func (r *Repository) List(ctx context.Context, f ListFilter) ([]Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE owner_id = $1`
	args := []any{f.OwnerID}

	if f.AgentID != nil {
		args = append(args, *f.AgentID)
		query += fmt.Sprintf(" AND agent_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, ownerID uuid.UUID, id string) error {
	tag, err := r.pool.Exec(ctx, deleteLeadQuery, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, ownerID uuid.UUID, id, status string) error {
	tag, err := r.pool.Exec(ctx, updateLeadStatusQuery, status, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateEnrichment stores the fields enrichment fills in.
func (r *Repository) UpdateEnrichment(ctx context.Context, id, bio string, skills []string, industry string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE leads SET bio = $1, skills = $2, industry = $3, updated_at = now() WHERE id = $4`,
		bio, skills, industry, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetAnyByID fetches a lead without an owner scope. Used by the
// background worker, which processes ids it enqueued itself.
func (r *Repository) GetAnyByID(ctx context.Context, id string) (Lead, error) {
	row := r.pool.QueryRow(ctx, getAnyLeadQuery, id)
	return scanLead(row)
}
