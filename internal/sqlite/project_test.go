package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solobooks/solobooks/internal/domain/project"
	"github.com/solobooks/solobooks/internal/repository"
)

func TestProjectRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertClient(t, db, "c1", "ws1")

	repo := NewProjectRepository(db)
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	proj := &project.Project{
		ID:             "p1",
		WorkspaceID:    "ws1",
		ClientID:       "c1",
		Name:           "Site redesign",
		Status:         project.StatusInProgress,
		EstimatedHours: 80,
		TotalValue:     12000,
		StartDate:      &start,
		Milestones: []project.Milestone{
			{Title: "Wireframes", Done: true},
			{Title: "Build"},
		},
		ExternalLinks: []project.ExternalLink{
			{Label: "Figma", URL: "https://figma.test/file/abc"},
		},
		CreatedAt: time.Now(),
	}

	require.NoError(t, repo.Create(ctx, "ws1", proj))

	loaded, err := repo.Get(ctx, "ws1", "p1")
	require.NoError(t, err)
	require.Equal(t, project.StatusInProgress, loaded.Status)
	require.Len(t, loaded.Milestones, 2)
	require.True(t, loaded.Milestones[0].Done)
	require.Len(t, loaded.ExternalLinks, 1)
	require.NotNil(t, loaded.StartDate)
	require.True(t, loaded.StartDate.Equal(start))
	require.Nil(t, loaded.EndDate)
}

func TestProjectRepository_ListForClient(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertClient(t, db, "c1", "ws1")
	insertClient(t, db, "c2", "ws1")

	repo := NewProjectRepository(db)
	for _, tc := range []struct{ id, clientID string }{
		{"p1", "c1"},
		{"p2", "c2"},
		{"p3", "c1"},
	} {
		err := repo.Create(ctx, "ws1", &project.Project{
			ID:          tc.id,
			WorkspaceID: "ws1",
			ClientID:    tc.clientID,
			Name:        "Project " + tc.id,
			Status:      project.StatusNotStarted,
			CreatedAt:   time.Now(),
		})
		require.NoError(t, err)
	}

	projects, err := repo.ListForClient(ctx, "ws1", "c1")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	for _, p := range projects {
		require.Equal(t, "c1", p.ClientID)
	}
}

func TestProjectRepository_UpdateRollups(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertClient(t, db, "c1", "ws1")

	repo := NewProjectRepository(db)
	proj := &project.Project{
		ID:          "p1",
		WorkspaceID: "ws1",
		ClientID:    "c1",
		Name:        "Audit",
		Status:      project.StatusInProgress,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, repo.Create(ctx, "ws1", proj))

	proj.Hours = 12.5
	proj.Revenue = 1875
	proj.Status = project.StatusComplete
	require.NoError(t, repo.Update(ctx, "ws1", proj))

	loaded, err := repo.Get(ctx, "ws1", "p1")
	require.NoError(t, err)
	require.Equal(t, 12.5, loaded.Hours)
	require.Equal(t, 1875.0, loaded.Revenue)
	require.Equal(t, project.StatusComplete, loaded.Status)
}

func TestProjectRepository_GetMissing(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewProjectRepository(db)
	_, err := repo.Get(ctx, "ws1", "ghost")
	require.Equal(t, repository.ErrNotFound, err)
}
