package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/solobooks/solobooks/internal/domain/session"
	"github.com/solobooks/solobooks/internal/repository"
)

// SessionRepository implements repository.SessionRepository for SQLite
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `
	id, workspace_id, client_id, date, duration, revenue,
	billable, task, work_tags, allocation, project_id, created_at
`

// Create creates a new session
func (r *SessionRepository) Create(ctx context.Context, workspaceID string, sess *session.Session) error {
	tags, err := json.Marshal(sess.WorkTags)
	if err != nil {
		return fmt.Errorf("failed to encode work tags: %w", err)
	}

	query := `
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		sess.ID,
		workspaceID,
		sess.ClientID,
		sess.Date,
		sess.Duration,
		sess.Revenue,
		sess.Billable,
		sess.Task,
		string(tags),
		sess.Allocation,
		sess.ProjectID,
		sess.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID
func (r *SessionRepository) Get(ctx context.Context, workspaceID, id string) (*session.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ? AND workspace_id = ?`

	sess, err := scanSession(r.db.QueryRowContext(ctx, query, id, workspaceID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return sess, nil
}

// List returns all sessions for a workspace, newest first
func (r *SessionRepository) List(ctx context.Context, workspaceID string) ([]session.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE workspace_id = ? ORDER BY date DESC, created_at DESC, id ASC`
	return r.list(ctx, query, workspaceID)
}

// ListForClient returns a client's sessions, newest first
func (r *SessionRepository) ListForClient(ctx context.Context, workspaceID, clientID string) ([]session.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE workspace_id = ? AND client_id = ? ORDER BY date DESC, created_at DESC, id ASC`
	return r.list(ctx, query, workspaceID, clientID)
}

func (r *SessionRepository) list(ctx context.Context, query string, args ...any) ([]session.Session, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []session.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *sess)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	return sessions, nil
}

// Update updates a session
func (r *SessionRepository) Update(ctx context.Context, workspaceID string, sess *session.Session) error {
	tags, err := json.Marshal(sess.WorkTags)
	if err != nil {
		return fmt.Errorf("failed to encode work tags: %w", err)
	}

	query := `
		UPDATE sessions
		SET client_id = ?, date = ?, duration = ?, revenue = ?,
		    billable = ?, task = ?, work_tags = ?, allocation = ?, project_id = ?
		WHERE id = ? AND workspace_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		sess.ClientID,
		sess.Date,
		sess.Duration,
		sess.Revenue,
		sess.Billable,
		sess.Task,
		string(tags),
		sess.Allocation,
		sess.ProjectID,
		sess.ID,
		workspaceID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to update session: %w", err)
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

// Delete removes a session
func (r *SessionRepository) Delete(ctx context.Context, workspaceID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE id = ? AND workspace_id = ?`, id, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
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

func scanSession(row rowScanner) (*session.Session, error) {
	var sess session.Session
	var tags string
	var projectID sql.NullString
	err := row.Scan(
		&sess.ID,
		&sess.WorkspaceID,
		&sess.ClientID,
		&sess.Date,
		&sess.Duration,
		&sess.Revenue,
		&sess.Billable,
		&sess.Task,
		&tags,
		&sess.Allocation,
		&projectID,
		&sess.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if projectID.Valid {
		sess.ProjectID = &projectID.String
	}
	if err := json.Unmarshal([]byte(tags), &sess.WorkTags); err != nil {
		return nil, fmt.Errorf("failed to decode work tags: %w", err)
	}
	return &sess, nil
}
