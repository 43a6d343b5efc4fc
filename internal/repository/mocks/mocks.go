package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/solobooks/solobooks/internal/domain/client"
	"github.com/solobooks/solobooks/internal/domain/note"
	"github.com/solobooks/solobooks/internal/domain/plan"
	"github.com/solobooks/solobooks/internal/domain/project"
	"github.com/solobooks/solobooks/internal/domain/session"
	"github.com/solobooks/solobooks/internal/domain/settings"
)

// ClientRepository is a mock for repository.ClientRepository.
type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) Create(ctx context.Context, workspaceID string, c *client.Client) error {
	args := m.Called(ctx, workspaceID, c)
	return args.Error(0)
}

func (m *ClientRepository) Get(ctx context.Context, workspaceID, id string) (*client.Client, error) {
	args := m.Called(ctx, workspaceID, id)
	if c, ok := args.Get(0).(*client.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) List(ctx context.Context, workspaceID string) ([]client.Client, error) {
	args := m.Called(ctx, workspaceID)
	if list, ok := args.Get(0).([]client.Client); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) Update(ctx context.Context, workspaceID string, c *client.Client) error {
	args := m.Called(ctx, workspaceID, c)
	return args.Error(0)
}

// SessionRepository is a mock for repository.SessionRepository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Create(ctx context.Context, workspaceID string, sess *session.Session) error {
	args := m.Called(ctx, workspaceID, sess)
	return args.Error(0)
}

func (m *SessionRepository) Get(ctx context.Context, workspaceID, id string) (*session.Session, error) {
	args := m.Called(ctx, workspaceID, id)
	if sess, ok := args.Get(0).(*session.Session); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) List(ctx context.Context, workspaceID string) ([]session.Session, error) {
	args := m.Called(ctx, workspaceID)
	if list, ok := args.Get(0).([]session.Session); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) ListForClient(ctx context.Context, workspaceID, clientID string) ([]session.Session, error) {
	args := m.Called(ctx, workspaceID, clientID)
	if list, ok := args.Get(0).([]session.Session); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) Update(ctx context.Context, workspaceID string, sess *session.Session) error {
	args := m.Called(ctx, workspaceID, sess)
	return args.Error(0)
}

func (m *SessionRepository) Delete(ctx context.Context, workspaceID, id string) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, workspaceID string, proj *project.Project) error {
	args := m.Called(ctx, workspaceID, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, workspaceID, id string) (*project.Project, error) {
	args := m.Called(ctx, workspaceID, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, workspaceID string) ([]project.Project, error) {
	args := m.Called(ctx, workspaceID)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListForClient(ctx context.Context, workspaceID, clientID string) ([]project.Project, error) {
	args := m.Called(ctx, workspaceID, clientID)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, workspaceID string, proj *project.Project) error {
	args := m.Called(ctx, workspaceID, proj)
	return args.Error(0)
}

// NoteRepository is a mock for repository.NoteRepository.
type NoteRepository struct {
	mock.Mock
}

func (m *NoteRepository) Create(ctx context.Context, workspaceID string, n *note.Note) error {
	args := m.Called(ctx, workspaceID, n)
	return args.Error(0)
}

func (m *NoteRepository) List(ctx context.Context, workspaceID string) ([]note.Note, error) {
	args := m.Called(ctx, workspaceID)
	if list, ok := args.Get(0).([]note.Note); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// SettingsRepository is a mock for repository.SettingsRepository.
type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) GetPlan(ctx context.Context, workspaceID string) (*plan.State, error) {
	args := m.Called(ctx, workspaceID)
	if state, ok := args.Get(0).(*plan.State); ok {
		return state, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SettingsRepository) SavePlan(ctx context.Context, workspaceID string, state *plan.State) error {
	args := m.Called(ctx, workspaceID, state)
	return args.Error(0)
}

func (m *SettingsRepository) GetFinancials(ctx context.Context, workspaceID string) (*settings.Financials, error) {
	args := m.Called(ctx, workspaceID)
	if fin, ok := args.Get(0).(*settings.Financials); ok {
		return fin, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SettingsRepository) SaveFinancials(ctx context.Context, workspaceID string, fin *settings.Financials) error {
	args := m.Called(ctx, workspaceID, fin)
	return args.Error(0)
}
