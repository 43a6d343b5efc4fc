package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solobooks/solobooks/internal/domain/client"
	"github.com/solobooks/solobooks/internal/repository"
)

func TestClientRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewClientRepository(db)
	last := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	c := &client.Client{
		ID:                "c1",
		WorkspaceID:       "ws1",
		Name:              "Acme Robotics",
		Company:           "Acme",
		Email:             "ops@acme.test",
		Model:             client.ModelRetainer,
		Rate:              150,
		Status:            client.StatusActive,
		RetainerTotal:     40,
		RetainerRemaining: 25.5,
		MonthlyEarnings:   2175,
		LifetimeRevenue:   9800,
		HoursLogged:       65.5,
		LastSessionDate:   &last,
		TrueHourlyRate:    149.6,
		CreatedAt:         time.Now(),
	}

	err := repo.Create(ctx, "ws1", c)
	require.NoError(t, err)

	loaded, err := repo.Get(ctx, "ws1", "c1")
	require.NoError(t, err)
	require.Equal(t, "ws1", loaded.WorkspaceID)
	require.Equal(t, c.Name, loaded.Name)
	require.Equal(t, client.ModelRetainer, loaded.Model)
	require.Equal(t, 25.5, loaded.RetainerRemaining)
	require.NotNil(t, loaded.LastSessionDate)
	require.True(t, loaded.LastSessionDate.Equal(last))
}

func TestClientRepository_WorkspaceIsolation(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertClient(t, db, "c1", "ws1")

	repo := NewClientRepository(db)
	_, err := repo.Get(ctx, "ws2", "c1")
	require.Equal(t, repository.ErrNotFound, err)

	clients, err := repo.List(ctx, "ws2")
	require.NoError(t, err)
	require.Empty(t, clients)
}

func TestClientRepository_ListOrder(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewClientRepository(db)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"c1", "c2", "c3"} {
		err := repo.Create(ctx, "ws1", &client.Client{
			ID:          id,
			WorkspaceID: "ws1",
			Name:        "Client " + id,
			Model:       client.ModelHourly,
			Status:      client.StatusActive,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	clients, err := repo.List(ctx, "ws1")
	require.NoError(t, err)
	require.Len(t, clients, 3)
	require.Equal(t, "c1", clients[0].ID)
	require.Equal(t, "c3", clients[2].ID)
}

func TestClientRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertClient(t, db, "c1", "ws1")

	repo := NewClientRepository(db)
	c, err := repo.Get(ctx, "ws1", "c1")
	require.NoError(t, err)

	c.Status = client.StatusArchived
	c.RetainerRemaining = 12
	c.HoursLogged = 3.5
	require.NoError(t, repo.Update(ctx, "ws1", c))

	loaded, err := repo.Get(ctx, "ws1", "c1")
	require.NoError(t, err)
	require.Equal(t, client.StatusArchived, loaded.Status)
	require.Equal(t, 3.5, loaded.HoursLogged)
}

func TestClientRepository_UpdateMissing(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewClientRepository(db)
	err := repo.Update(ctx, "ws1", &client.Client{
		ID:     "ghost",
		Name:   "Ghost",
		Model:  client.ModelHourly,
		Status: client.StatusActive,
	})
	require.Equal(t, repository.ErrNotFound, err)
}
