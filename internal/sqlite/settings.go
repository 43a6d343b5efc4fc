package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/solobooks/solobooks/internal/domain/plan"
	"github.com/solobooks/solobooks/internal/domain/settings"
	"github.com/solobooks/solobooks/internal/repository"
)

// SettingsRepository implements repository.SettingsRepository for SQLite.
// Plan state and financial defaults share one row per workspace.
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetPlan retrieves the workspace's active plan state
func (r *SettingsRepository) GetPlan(ctx context.Context, workspaceID string) (*plan.State, error) {
	query := `
		SELECT plan_id, plan_activated_at, is_trial, trial_end, downgrade_reason
		FROM workspace_settings
		WHERE workspace_id = ?
	`

	var state plan.State
	var trialEnd sql.NullTime
	err := r.db.QueryRowContext(ctx, query, workspaceID).Scan(
		&state.Plan,
		&state.ActivatedAt,
		&state.IsTrial,
		&trialEnd,
		&state.DowngradeReason,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if trialEnd.Valid {
		t := trialEnd.Time
		state.TrialEnd = &t
	}
	return &state, nil
}

// SavePlan stores the workspace's active plan state
func (r *SettingsRepository) SavePlan(ctx context.Context, workspaceID string, state *plan.State) error {
	query := `
		INSERT INTO workspace_settings (workspace_id, plan_id, plan_activated_at, is_trial, trial_end, downgrade_reason)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(workspace_id) DO UPDATE SET
			plan_id = excluded.plan_id,
			plan_activated_at = excluded.plan_activated_at,
			is_trial = excluded.is_trial,
			trial_end = excluded.trial_end,
			downgrade_reason = excluded.downgrade_reason
	`

	_, err := r.db.ExecContext(ctx, query,
		workspaceID,
		state.Plan,
		state.ActivatedAt,
		state.IsTrial,
		state.TrialEnd,
		state.DowngradeReason,
	)
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

// GetFinancials retrieves the workspace's financial defaults
func (r *SettingsRepository) GetFinancials(ctx context.Context, workspaceID string) (*settings.Financials, error) {
	query := `
		SELECT tax_rate, processing_fee_rate, currency, weekly_target
		FROM workspace_settings
		WHERE workspace_id = ?
	`

	var fin settings.Financials
	err := r.db.QueryRowContext(ctx, query, workspaceID).Scan(
		&fin.TaxRate,
		&fin.ProcessingFeeRate,
		&fin.Currency,
		&fin.WeeklyTarget,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get financials: %w", err)
	}
	return &fin, nil
}

// SaveFinancials stores the workspace's financial defaults
func (r *SettingsRepository) SaveFinancials(ctx context.Context, workspaceID string, fin *settings.Financials) error {
	query := `
		INSERT INTO workspace_settings (workspace_id, tax_rate, processing_fee_rate, currency, weekly_target)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(workspace_id) DO UPDATE SET
			tax_rate = excluded.tax_rate,
			processing_fee_rate = excluded.processing_fee_rate,
			currency = excluded.currency,
			weekly_target = excluded.weekly_target
	`

	_, err := r.db.ExecContext(ctx, query,
		workspaceID,
		fin.TaxRate,
		fin.ProcessingFeeRate,
		fin.Currency,
		fin.WeeklyTarget,
	)
	if err != nil {
		return fmt.Errorf("failed to save financials: %w", err)
	}
	return nil
}
