package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/solobooks/solobooks/internal/domain/project"
	"github.com/solobooks/solobooks/internal/repository"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `
	id, workspace_id, client_id, name, status, estimated_hours,
	total_value, hours, revenue, start_date, end_date,
	milestones, external_links, created_at
`

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, workspaceID string, proj *project.Project) error {
	milestones, links, err := encodeProjectJSON(proj)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		proj.ID,
		workspaceID,
		proj.ClientID,
		proj.Name,
		proj.Status,
		proj.EstimatedHours,
		proj.TotalValue,
		proj.Hours,
		proj.Revenue,
		proj.StartDate,
		proj.EndDate,
		milestones,
		links,
		proj.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, workspaceID, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ? AND workspace_id = ?`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id, workspaceID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return proj, nil
}

// List returns all projects for a workspace ordered by creation time
func (r *ProjectRepository) List(ctx context.Context, workspaceID string) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE workspace_id = ? ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, workspaceID)
}

// ListForClient returns a client's projects ordered by creation time
func (r *ProjectRepository) ListForClient(ctx context.Context, workspaceID, clientID string) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE workspace_id = ? AND client_id = ? ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, workspaceID, clientID)
}

func (r *ProjectRepository) list(ctx context.Context, query string, args ...any) ([]project.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// Update updates a project
func (r *ProjectRepository) Update(ctx context.Context, workspaceID string, proj *project.Project) error {
	milestones, links, err := encodeProjectJSON(proj)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects
		SET name = ?, status = ?, estimated_hours = ?, total_value = ?,
		    hours = ?, revenue = ?, start_date = ?, end_date = ?,
		    milestones = ?, external_links = ?
		WHERE id = ? AND workspace_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.Name,
		proj.Status,
		proj.EstimatedHours,
		proj.TotalValue,
		proj.Hours,
		proj.Revenue,
		proj.StartDate,
		proj.EndDate,
		milestones,
		links,
		proj.ID,
		workspaceID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func encodeProjectJSON(proj *project.Project) (milestones, links string, err error) {
	m, err := json.Marshal(proj.Milestones)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode milestones: %w", err)
	}
	l, err := json.Marshal(proj.ExternalLinks)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode external links: %w", err)
	}
	return string(m), string(l), nil
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	var startDate, endDate sql.NullTime
	var milestones, links string
	err := row.Scan(
		&proj.ID,
		&proj.WorkspaceID,
		&proj.ClientID,
		&proj.Name,
		&proj.Status,
		&proj.EstimatedHours,
		&proj.TotalValue,
		&proj.Hours,
		&proj.Revenue,
		&startDate,
		&endDate,
		&milestones,
		&links,
		&proj.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if startDate.Valid {
		t := startDate.Time
		proj.StartDate = &t
	}
	if endDate.Valid {
		t := endDate.Time
		proj.EndDate = &t
	}
	if err := json.Unmarshal([]byte(milestones), &proj.Milestones); err != nil {
		return nil, fmt.Errorf("failed to decode milestones: %w", err)
	}
	if err := json.Unmarshal([]byte(links), &proj.ExternalLinks); err != nil {
		return nil, fmt.Errorf("failed to decode external links: %w", err)
	}
	return &proj, nil
}
