package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solobooks/solobooks/internal/domain/client"
	"github.com/solobooks/solobooks/internal/domain/session"
	"github.com/solobooks/solobooks/internal/sqlite"
)

func TestReconcile_CleanStateIsNoOp(t *testing.T) {
	ws := newTestWorkspace(t)
	ctx := context.Background()

	c, err := ws.AddClient(ctx, AddClientRequest{Name: "Acme", Model: client.ModelHourly, Rate: 100})
	require.NoError(t, err)
	p, err := ws.AddProject(ctx, AddProjectRequest{ClientID: c.ID, Name: "Build"})
	require.NoError(t, err)
	_, err = ws.LogSession(ctx, session.LogRequest{
		ClientID:   c.ID,
		Duration:   3,
		Billable:   true,
		Allocation: session.AllocationProject,
		ProjectID:  p.ID,
	})
	require.NoError(t, err)

	report, err := ws.Reconcile(ctx)
	require.NoError(t, err)
	require.Zero(t, report.ProjectsRepaired)
	require.Zero(t, report.RetainersRepaired)
	require.Zero(t, report.ClientsRefreshed)
}

func TestReconcile_RepairsStoreDrift(t *testing.T) {
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	stores := Stores{
		Clients:  sqlite.NewClientRepository(db),
		Sessions: sqlite.NewSessionRepository(db),
		Projects: sqlite.NewProjectRepository(db),
		Notes:    sqlite.NewNoteRepository(db),
		Settings: sqlite.NewSettingsRepository(db),
	}
	ctx := context.Background()

	ws := New("ws1", stores, nil)
	require.NoError(t, ws.Load(ctx))

	c, err := ws.AddClient(ctx, AddClientRequest{
		Name:          "Retainer Co",
		Model:         client.ModelRetainer,
		Rate:          100,
		RetainerTotal: 40,
	})
	require.NoError(t, err)
	p, err := ws.AddProject(ctx, AddProjectRequest{ClientID: c.ID, Name: "Build"})
	require.NoError(t, err)

	_, err = ws.LogSession(ctx, session.LogRequest{
		ClientID:   c.ID,
		Duration:   6,
		Billable:   true,
		Allocation: session.AllocationProject,
		ProjectID:  p.ID,
	})
	require.NoError(t, err)
	_, err = ws.LogSession(ctx, session.LogRequest{
		ClientID:   c.ID,
		Duration:   10,
		Billable:   true,
		Allocation: session.AllocationRetainer,
	})
	require.NoError(t, err)

	// Corrupt the persisted rollups behind the container's back, the way a
	// crashed process with unflushed side-effect writes would.
	stored, err := stores.Projects.Get(ctx, "ws1", p.ID)
	require.NoError(t, err)
	stored.Hours = 99
	stored.Revenue = 0
	require.NoError(t, stores.Projects.Update(ctx, "ws1", stored))

	storedClient, err := stores.Clients.Get(ctx, "ws1", c.ID)
	require.NoError(t, err)
	storedClient.RetainerRemaining = 40
	storedClient.LifetimeRevenue = 0
	require.NoError(t, stores.Clients.Update(ctx, "ws1", storedClient))

	// A fresh container loads the drifted rollups and repairs them from
	// the session ledger.
	reloaded := New("ws1", stores, nil)
	require.NoError(t, reloaded.Load(ctx))

	report, err := reloaded.Reconcile(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.ProjectsRepaired)
	require.Equal(t, 1, report.RetainersRepaired)
	require.Equal(t, 1, report.ClientsRefreshed)

	projects := reloaded.Projects()
	require.Equal(t, 6.0, projects[0].Hours)
	require.Equal(t, 600.0, projects[0].Revenue)

	clients := reloaded.Clients()
	require.Equal(t, 30.0, clients[0].RetainerRemaining)
	require.Equal(t, 1600.0, clients[0].LifetimeRevenue)
	require.Equal(t, 16.0, clients[0].HoursLogged)

	// The snapshot reflects the repaired rollups.
	require.Equal(t, 1600.0, reloaded.Snapshot().TotalRevenue)
}
