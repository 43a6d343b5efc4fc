package plan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_KnownTiers(t *testing.T) {
	solo := Resolve(Solo)
	require.Equal(t, 1, solo.Seats)
	require.Equal(t, 5, solo.ActiveClients)
	require.False(t, solo.Features.RichNotes)
	require.False(t, solo.Features.DataExport)

	pro := Resolve(Pro)
	require.Equal(t, 1, pro.Seats)
	require.Equal(t, 25, pro.ActiveClients)
	require.True(t, pro.Features.RichNotes)
	require.True(t, pro.Features.FullInsights)
	require.True(t, pro.Features.CustomCategories)
	require.False(t, pro.Features.Integrations)

	studio := Resolve(Studio)
	require.Equal(t, 5, studio.Seats)
	require.Equal(t, 0, studio.ActiveClients, "studio has no client cap")
	require.True(t, studio.Features.Integrations)
	require.True(t, studio.Features.AdvancedNotifications)
}

func TestResolve_UnknownFailsClosed(t *testing.T) {
	ent := Resolve(ID("enterprise"))
	require.Equal(t, Resolve(Solo), ent)
}

func TestRank(t *testing.T) {
	require.Less(t, Solo.Rank(), Pro.Rank())
	require.Less(t, Pro.Rank(), Studio.Rank())
	require.Equal(t, Solo.Rank(), ID("bogus").Rank())
}

func TestValid(t *testing.T) {
	require.True(t, Solo.Valid())
	require.True(t, Pro.Valid())
	require.True(t, Studio.Valid())
	require.False(t, ID("").Valid())
	require.False(t, ID("enterprise").Valid())
}
