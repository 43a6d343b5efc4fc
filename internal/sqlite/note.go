package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/solobooks/solobooks/internal/domain/note"
	"github.com/solobooks/solobooks/internal/repository"
)

// NoteRepository implements repository.NoteRepository for SQLite
type NoteRepository struct {
	db *DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create creates a new note
func (r *NoteRepository) Create(ctx context.Context, workspaceID string, n *note.Note) error {
	query := `
		INSERT INTO notes (id, workspace_id, client_id, title, body, note_type, pinned, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		workspaceID,
		n.ClientID,
		n.Title,
		n.Body,
		n.Type,
		n.Pinned,
		n.CreatedAt,
		n.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

// List returns all notes for a workspace, pinned first, newest first
func (r *NoteRepository) List(ctx context.Context, workspaceID string) ([]note.Note, error) {
	query := `
		SELECT id, workspace_id, client_id, title, body, note_type, pinned, created_at, updated_at
		FROM notes
		WHERE workspace_id = ?
		ORDER BY pinned DESC, created_at DESC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []note.Note
	for rows.Next() {
		var n note.Note
		var clientID sql.NullString
		err := rows.Scan(
			&n.ID,
			&n.WorkspaceID,
			&clientID,
			&n.Title,
			&n.Body,
			&n.Type,
			&n.Pinned,
			&n.CreatedAt,
			&n.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		if clientID.Valid {
			n.ClientID = &clientID.String
		}
		notes = append(notes, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note rows: %w", err)
	}

	return notes, nil
}
