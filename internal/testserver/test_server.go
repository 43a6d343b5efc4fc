package testserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solobooks/solobooks/internal/mcp"
	"github.com/solobooks/solobooks/internal/sqlite"
	"github.com/solobooks/solobooks/internal/transport"
	"github.com/solobooks/solobooks/internal/workspace"
)

type TestServer struct {
	Server      *httptest.Server
	DB          *sqlite.DB
	Workspace   *workspace.Workspace
	Token       string
	WorkspaceID string
}

func New(t *testing.T, token, workspaceID string) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	stores := workspace.Stores{
		Clients:  sqlite.NewClientRepository(db),
		Sessions: sqlite.NewSessionRepository(db),
		Projects: sqlite.NewProjectRepository(db),
		Notes:    sqlite.NewNoteRepository(db),
		Settings: sqlite.NewSettingsRepository(db),
	}

	ws := workspace.New(workspaceID, stores, nil)
	require.NoError(t, ws.Load(context.Background()))

	registry := workspace.NewRegistry()
	registry.Add(ws)

	handler := mcp.NewHandler(registry)

	resolver := &apiKeyResolver{db: db}
	server := httptest.NewServer(transport.NewServer(handler, transport.AuthMiddleware(resolver)))

	ts := &TestServer{
		Server:      server,
		DB:          db,
		Workspace:   ws,
		Token:       token,
		WorkspaceID: workspaceID,
	}

	require.NoError(t, ts.AddAPIKey(token, workspaceID))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

func (ts *TestServer) AddAPIKey(token, workspaceID string) error {
	hash := hashToken(token)
	_, err := ts.DB.Exec(
		`INSERT INTO api_keys (key_hash, workspace_id, created_at) VALUES (?, ?, ?)`,
		hash, workspaceID, time.Now(),
	)
	return err
}

type apiKeyResolver struct {
	db *sqlite.DB
}

func (r *apiKeyResolver) ResolveWorkspace(ctx context.Context, token string) (string, error) {
	hash := hashToken(token)
	var workspaceID string
	err := r.db.QueryRowContext(ctx, `SELECT workspace_id FROM api_keys WHERE key_hash = ?`, hash).Scan(&workspaceID)
	if err != nil || workspaceID == "" {
		return "", transport.ErrUnauthorized
	}
	return workspaceID, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
