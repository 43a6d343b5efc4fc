package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solobooks/solobooks/internal/domain/client"
	"github.com/solobooks/solobooks/internal/domain/note"
	"github.com/solobooks/solobooks/internal/domain/plan"
	"github.com/solobooks/solobooks/internal/domain/session"
	"github.com/solobooks/solobooks/internal/sqlite"
	"github.com/solobooks/solobooks/internal/testserver"
	"github.com/solobooks/solobooks/internal/workspace"
)

type testEnv struct {
	db     *sqlite.DB
	stores workspace.Stores
	ws     *workspace.Workspace
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	stores := workspace.Stores{
		Clients:  sqlite.NewClientRepository(db),
		Sessions: sqlite.NewSessionRepository(db),
		Projects: sqlite.NewProjectRepository(db),
		Notes:    sqlite.NewNoteRepository(db),
		Settings: sqlite.NewSettingsRepository(db),
	}

	ws := workspace.New("ws1", stores, nil)
	require.NoError(t, ws.Load(context.Background()))

	return &testEnv{db: db, stores: stores, ws: ws}
}

func TestIntegration_FreelancerWorkflow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	acme, err := env.ws.AddClient(ctx, workspace.AddClientRequest{
		Name:  "Acme Robotics",
		Model: client.ModelHourly,
		Rate:  150,
	})
	require.NoError(t, err)

	proj, err := env.ws.AddProject(ctx, workspace.AddProjectRequest{
		ClientID:       acme.ID,
		Name:           "Warehouse Dashboard",
		EstimatedHours: 40,
		TotalValue:     6000,
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = env.ws.LogSession(ctx, session.LogRequest{
			ClientID:   acme.ID,
			Duration:   4,
			Billable:   true,
			Task:       "Dashboard build",
			WorkTags:   []string{"Development"},
			Allocation: session.AllocationProject,
			ProjectID:  proj.ID,
		})
		require.NoError(t, err)
	}

	projects := env.ws.Projects()
	require.Len(t, projects, 1)
	require.Equal(t, 12.0, projects[0].Hours)
	require.Equal(t, 1800.0, projects[0].Revenue)

	snap := env.ws.Snapshot()
	require.Equal(t, 1800.0, snap.TotalRevenue)
	require.Equal(t, 12.0, snap.TotalHours)
	require.Equal(t, 150.0, snap.AvgHourlyRate)

	report, err := env.ws.Reconcile(ctx)
	require.NoError(t, err)
	require.Zero(t, report.ProjectsRepaired)
	require.Zero(t, report.RetainersRepaired)
	require.Zero(t, report.ClientsRefreshed)
}

func TestIntegration_StateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.ws.SwitchPlan(ctx, workspace.SwitchPlanRequest{Plan: plan.Pro})
	require.NoError(t, err)

	retainer, err := env.ws.AddClient(ctx, workspace.AddClientRequest{
		Name:          "Globex",
		Model:         client.ModelRetainer,
		Rate:          120,
		RetainerTotal: 40,
	})
	require.NoError(t, err)

	_, err = env.ws.LogSession(ctx, session.LogRequest{
		ClientID:   retainer.ID,
		Duration:   10,
		Billable:   true,
		Allocation: session.AllocationRetainer,
	})
	require.NoError(t, err)

	_, err = env.ws.AddNote(ctx, workspace.AddNoteRequest{
		Title: "Renewal checklist",
		Type:  note.TypeChecklist,
	})
	require.NoError(t, err)

	// A second container over the same database stands in for a restart.
	reloaded := workspace.New("ws1", env.stores, nil)
	require.NoError(t, reloaded.Load(ctx))

	require.Equal(t, plan.Pro, reloaded.Plan().Plan)

	clients := reloaded.Clients()
	require.Len(t, clients, 1)
	require.Equal(t, 30.0, clients[0].RetainerRemaining)
	require.Equal(t, 1200.0, clients[0].LifetimeRevenue)

	require.Len(t, reloaded.Notes(), 1)
	require.Equal(t, 1200.0, reloaded.Snapshot().TotalRevenue)
}

func rpcCall(t *testing.T, ts *testserver.TestServer, method string, params any, id int) map[string]any {
	t.Helper()

	payload := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"id":      id,
	}
	if params != nil {
		payload["params"] = params
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/mcp", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+ts.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func TestIntegration_HTTPJSONRPC(t *testing.T) {
	ts := testserver.New(t, "secret-token", "ws1")

	resp := rpcCall(t, ts, "add_client", map[string]any{
		"name":  "Initech",
		"model": "hourly",
		"rate":  90,
	}, 1)
	require.Nil(t, resp["error"])

	result, ok := resp["result"].(map[string]any)
	require.True(t, ok)
	created, ok := result["client"].(map[string]any)
	require.True(t, ok)
	clientID, _ := created["id"].(string)
	require.NotEmpty(t, clientID)

	resp = rpcCall(t, ts, "log_session", map[string]any{
		"client_id": clientID,
		"duration":  2,
		"task":      "TPS reports",
	}, 2)
	require.Nil(t, resp["error"])

	resp = rpcCall(t, ts, "get_metrics", nil, 3)
	require.Nil(t, resp["error"])
	snap, ok := resp["result"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, 180.0, snap["total_revenue"])

	// A bad client reference surfaces as a JSON-RPC error, not a transport failure.
	resp = rpcCall(t, ts, "log_session", map[string]any{
		"client_id": "missing",
		"duration":  1,
	}, 4)
	require.NotNil(t, resp["error"])
	rpcErr, ok := resp["error"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, rpcErr["message"], "CLIENT_NOT_FOUND")
}

func TestIntegration_HTTPUnauthorized(t *testing.T) {
	ts := testserver.New(t, "secret-token", "ws1")

	body := bytes.NewBufferString(`{"jsonrpc":"2.0","method":"list_clients","id":1}`)
	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/mcp", body)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer wrong-token")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
