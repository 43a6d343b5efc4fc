package repository

import (
	"context"

	"github.com/solobooks/solobooks/internal/domain/client"
	"github.com/solobooks/solobooks/internal/domain/note"
	"github.com/solobooks/solobooks/internal/domain/plan"
	"github.com/solobooks/solobooks/internal/domain/project"
	"github.com/solobooks/solobooks/internal/domain/session"
	"github.com/solobooks/solobooks/internal/domain/settings"
)

// ClientRepository manages client persistence. Clients are never deleted;
// archival is a status change on Update.
type ClientRepository interface {
	Create(ctx context.Context, workspaceID string, c *client.Client) error
	Get(ctx context.Context, workspaceID, id string) (*client.Client, error)
	List(ctx context.Context, workspaceID string) ([]client.Client, error)
	Update(ctx context.Context, workspaceID string, c *client.Client) error
}

// SessionRepository manages session persistence.
type SessionRepository interface {
	Create(ctx context.Context, workspaceID string, sess *session.Session) error
	Get(ctx context.Context, workspaceID, id string) (*session.Session, error)
	List(ctx context.Context, workspaceID string) ([]session.Session, error)
	ListForClient(ctx context.Context, workspaceID, clientID string) ([]session.Session, error)
	Update(ctx context.Context, workspaceID string, sess *session.Session) error
	Delete(ctx context.Context, workspaceID, id string) error
}

// ProjectRepository manages project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, workspaceID string, proj *project.Project) error
	Get(ctx context.Context, workspaceID, id string) (*project.Project, error)
	List(ctx context.Context, workspaceID string) ([]project.Project, error)
	ListForClient(ctx context.Context, workspaceID, clientID string) ([]project.Project, error)
	Update(ctx context.Context, workspaceID string, proj *project.Project) error
}

// NoteRepository manages note persistence.
type NoteRepository interface {
	Create(ctx context.Context, workspaceID string, n *note.Note) error
	List(ctx context.Context, workspaceID string) ([]note.Note, error)
}

// SettingsRepository manages the per-workspace plan state and financial
// defaults. Both live in a single settings row per workspace.
type SettingsRepository interface {
	GetPlan(ctx context.Context, workspaceID string) (*plan.State, error)
	SavePlan(ctx context.Context, workspaceID string, state *plan.State) error
	GetFinancials(ctx context.Context, workspaceID string) (*settings.Financials, error)
	SaveFinancials(ctx context.Context, workspaceID string, fin *settings.Financials) error
}
