package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations applies the schema. Statements are idempotent so the server
// can run them unconditionally at boot.
func (db *DB) RunMigrations() error {
	migration := `
-- Clients table. Clients are archived, never deleted.
CREATE TABLE IF NOT EXISTS clients (
    id TEXT PRIMARY KEY,
    workspace_id TEXT NOT NULL,
    name TEXT NOT NULL,
    company TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    website TEXT NOT NULL DEFAULT '',
    model TEXT NOT NULL CHECK(model IN ('hourly', 'retainer', 'project')),
    rate REAL NOT NULL DEFAULT 0,
    status TEXT NOT NULL CHECK(status IN ('active', 'prospect', 'archived')),
    retainer_total REAL NOT NULL DEFAULT 0,
    retainer_remaining REAL NOT NULL DEFAULT 0,
    monthly_earnings REAL NOT NULL DEFAULT 0,
    lifetime_revenue REAL NOT NULL DEFAULT 0,
    hours_logged REAL NOT NULL DEFAULT 0,
    last_session_date TIMESTAMP,
    true_hourly_rate REAL NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_workspace_clients ON clients(workspace_id);
CREATE INDEX IF NOT EXISTS idx_client_status ON clients(status);

-- Projects table
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    workspace_id TEXT NOT NULL,
    client_id TEXT NOT NULL,
    name TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('not_started', 'in_progress', 'on_hold', 'complete')),
    estimated_hours REAL NOT NULL DEFAULT 0,
    total_value REAL NOT NULL DEFAULT 0,
    hours REAL NOT NULL DEFAULT 0,
    revenue REAL NOT NULL DEFAULT 0,
    start_date TIMESTAMP,
    end_date TIMESTAMP,
    milestones TEXT NOT NULL DEFAULT '[]',
    external_links TEXT NOT NULL DEFAULT '[]',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (client_id) REFERENCES clients(id)
);
CREATE INDEX IF NOT EXISTS idx_workspace_projects ON projects(workspace_id);
CREATE INDEX IF NOT EXISTS idx_client_projects ON projects(client_id);

-- Sessions table. The source of truth for all rollups.
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    workspace_id TEXT NOT NULL,
    client_id TEXT NOT NULL,
    date TIMESTAMP NOT NULL,
    duration REAL NOT NULL,
    revenue REAL NOT NULL DEFAULT 0,
    billable INTEGER NOT NULL DEFAULT 1,
    task TEXT NOT NULL DEFAULT '',
    work_tags TEXT NOT NULL DEFAULT '[]',
    allocation TEXT NOT NULL CHECK(allocation IN ('general', 'retainer', 'project')),
    project_id TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (client_id) REFERENCES clients(id),
    FOREIGN KEY (project_id) REFERENCES projects(id)
);
CREATE INDEX IF NOT EXISTS idx_workspace_sessions ON sessions(workspace_id);
CREATE INDEX IF NOT EXISTS idx_client_sessions ON sessions(client_id);
CREATE INDEX IF NOT EXISTS idx_project_sessions ON sessions(project_id);

-- Notes table
CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    workspace_id TEXT NOT NULL,
    client_id TEXT,
    title TEXT NOT NULL,
    body TEXT NOT NULL DEFAULT '',
    note_type TEXT NOT NULL CHECK(note_type IN ('text', 'checklist', 'link')),
    pinned INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (client_id) REFERENCES clients(id)
);
CREATE INDEX IF NOT EXISTS idx_workspace_notes ON notes(workspace_id);

-- Per-workspace settings: active plan and financial defaults.
CREATE TABLE IF NOT EXISTS workspace_settings (
    workspace_id TEXT PRIMARY KEY,
    plan_id TEXT NOT NULL DEFAULT 'solo',
    plan_activated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    is_trial INTEGER NOT NULL DEFAULT 0,
    trial_end TIMESTAMP,
    downgrade_reason TEXT NOT NULL DEFAULT '',
    tax_rate REAL NOT NULL DEFAULT 0,
    processing_fee_rate REAL NOT NULL DEFAULT 0,
    currency TEXT NOT NULL DEFAULT 'USD',
    weekly_target REAL NOT NULL DEFAULT 0
);

-- API keys for authentication
CREATE TABLE IF NOT EXISTS api_keys (
    key_hash TEXT PRIMARY KEY,
    workspace_id TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_used TIMESTAMP,
    description TEXT
);
CREATE INDEX IF NOT EXISTS idx_workspace_keys ON api_keys(workspace_id);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
