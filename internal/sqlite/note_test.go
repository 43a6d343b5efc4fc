package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solobooks/solobooks/internal/domain/note"
)

func TestNoteRepository_CreateList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertClient(t, db, "c1", "ws1")

	repo := NewNoteRepository(db)
	clientID := "c1"
	now := time.Now()

	require.NoError(t, repo.Create(ctx, "ws1", &note.Note{
		ID:          "n1",
		WorkspaceID: "ws1",
		Title:       "Quarterly goals",
		Body:        "Raise rates in Q3",
		Type:        note.TypeText,
		CreatedAt:   now,
		UpdatedAt:   now,
	}))
	require.NoError(t, repo.Create(ctx, "ws1", &note.Note{
		ID:          "n2",
		WorkspaceID: "ws1",
		ClientID:    &clientID,
		Title:       "Onboarding checklist",
		Body:        "[ ] contract\n[ ] kickoff call",
		Type:        note.TypeChecklist,
		Pinned:      true,
		CreatedAt:   now.Add(time.Second),
		UpdatedAt:   now.Add(time.Second),
	}))

	notes, err := repo.List(ctx, "ws1")
	require.NoError(t, err)
	require.Len(t, notes, 2)

	// Pinned notes come first.
	require.Equal(t, "n2", notes[0].ID)
	require.NotNil(t, notes[0].ClientID)
	require.Equal(t, "c1", *notes[0].ClientID)
	require.Equal(t, note.TypeChecklist, notes[0].Type)

	require.Equal(t, "n1", notes[1].ID)
	require.Nil(t, notes[1].ClientID)
}
