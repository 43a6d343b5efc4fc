package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solobooks/solobooks/internal/domain/plan"
	"github.com/solobooks/solobooks/internal/domain/settings"
	"github.com/solobooks/solobooks/internal/repository"
)

func TestSettingsRepository_PlanRoundTrip(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewSettingsRepository(db)
	_, err := repo.GetPlan(ctx, "ws1")
	require.Equal(t, repository.ErrNotFound, err)

	state := &plan.State{
		Plan:        plan.Pro,
		ActivatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SavePlan(ctx, "ws1", state))

	loaded, err := repo.GetPlan(ctx, "ws1")
	require.NoError(t, err)
	require.Equal(t, plan.Pro, loaded.Plan)
	require.Nil(t, loaded.TrialEnd)

	// Downgrade overwrites the same row.
	require.NoError(t, repo.SavePlan(ctx, "ws1", &plan.State{
		Plan:            plan.Solo,
		ActivatedAt:     time.Now(),
		DowngradeReason: "cost",
	}))
	loaded, err = repo.GetPlan(ctx, "ws1")
	require.NoError(t, err)
	require.Equal(t, plan.Solo, loaded.Plan)
	require.Equal(t, "cost", loaded.DowngradeReason)
}

func TestSettingsRepository_FinancialsRoundTrip(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewSettingsRepository(db)
	_, err := repo.GetFinancials(ctx, "ws1")
	require.Equal(t, repository.ErrNotFound, err)

	fin := &settings.Financials{
		TaxRate:           0.25,
		ProcessingFeeRate: 0.03,
		Currency:          "EUR",
		WeeklyTarget:      30,
	}
	require.NoError(t, repo.SaveFinancials(ctx, "ws1", fin))

	loaded, err := repo.GetFinancials(ctx, "ws1")
	require.NoError(t, err)
	require.Equal(t, 0.25, loaded.TaxRate)
	require.Equal(t, "EUR", loaded.Currency)

	fin.WeeklyTarget = 40
	require.NoError(t, repo.SaveFinancials(ctx, "ws1", fin))
	loaded, err = repo.GetFinancials(ctx, "ws1")
	require.NoError(t, err)
	require.Equal(t, 40.0, loaded.WeeklyTarget)
}

func TestSettingsRepository_PlanAndFinancialsShareRow(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewSettingsRepository(db)
	require.NoError(t, repo.SavePlan(ctx, "ws1", &plan.State{Plan: plan.Studio, ActivatedAt: time.Now()}))
	require.NoError(t, repo.SaveFinancials(ctx, "ws1", &settings.Financials{Currency: "USD"}))

	loaded, err := repo.GetPlan(ctx, "ws1")
	require.NoError(t, err)
	require.Equal(t, plan.Studio, loaded.Plan)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM workspace_settings WHERE workspace_id = 'ws1'").Scan(&count))
	require.Equal(t, 1, count)
}
