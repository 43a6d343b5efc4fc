package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/solobooks/solobooks/internal/domain/client"
	"github.com/solobooks/solobooks/internal/repository"
)

// ClientRepository implements repository.ClientRepository for SQLite
type ClientRepository struct {
	db *DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `
	id, workspace_id, name, company, email, phone, website,
	model, rate, status, retainer_total, retainer_remaining,
	monthly_earnings, lifetime_revenue, hours_logged,
	last_session_date, true_hourly_rate, created_at
`

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, workspaceID string, c *client.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		workspaceID,
		c.Name,
		c.Company,
		c.Email,
		c.Phone,
		c.Website,
		c.Model,
		c.Rate,
		c.Status,
		c.RetainerTotal,
		c.RetainerRemaining,
		c.MonthlyEarnings,
		c.LifetimeRevenue,
		c.HoursLogged,
		c.LastSessionDate,
		c.TrueHourlyRate,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

// Get retrieves a client by ID
func (r *ClientRepository) Get(ctx context.Context, workspaceID, id string) (*client.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ? AND workspace_id = ?`

	c, err := scanClient(r.db.QueryRowContext(ctx, query, id, workspaceID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

// List returns all clients for a workspace ordered by creation time
func (r *ClientRepository) List(ctx context.Context, workspaceID string) ([]client.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE workspace_id = ? ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []client.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}

	return clients, nil
}

// Update updates a client
func (r *ClientRepository) Update(ctx context.Context, workspaceID string, c *client.Client) error {
	query := `
		UPDATE clients
		SET name = ?, company = ?, email = ?, phone = ?, website = ?,
		    model = ?, rate = ?, status = ?,
		    retainer_total = ?, retainer_remaining = ?,
		    monthly_earnings = ?, lifetime_revenue = ?, hours_logged = ?,
		    last_session_date = ?, true_hourly_rate = ?
		WHERE id = ? AND workspace_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		c.Name,
		c.Company,
		c.Email,
		c.Phone,
		c.Website,
		c.Model,
		c.Rate,
		c.Status,
		c.RetainerTotal,
		c.RetainerRemaining,
		c.MonthlyEarnings,
		c.LifetimeRevenue,
		c.HoursLogged,
		c.LastSessionDate,
		c.TrueHourlyRate,
		c.ID,
		workspaceID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*client.Client, error) {
	var c client.Client
	var lastSession sql.NullTime
	err := row.Scan(
		&c.ID,
		&c.WorkspaceID,
		&c.Name,
		&c.Company,
		&c.Email,
		&c.Phone,
		&c.Website,
		&c.Model,
		&c.Rate,
		&c.Status,
		&c.RetainerTotal,
		&c.RetainerRemaining,
		&c.MonthlyEarnings,
		&c.LifetimeRevenue,
		&c.HoursLogged,
		&lastSession,
		&c.TrueHourlyRate,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastSession.Valid {
		t := lastSession.Time
		c.LastSessionDate = &t
	}
	return &c, nil
}
