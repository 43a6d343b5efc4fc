package mcp

import (
	"errors"
	"fmt"

	"github.com/solobooks/solobooks/internal/domain/client"
	"github.com/solobooks/solobooks/internal/domain/note"
	"github.com/solobooks/solobooks/internal/domain/plan"
	"github.com/solobooks/solobooks/internal/domain/project"
	"github.com/solobooks/solobooks/internal/domain/session"
	"github.com/solobooks/solobooks/internal/domain/settings"
	"github.com/solobooks/solobooks/internal/workspace"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, workspace.ErrWorkspaceNotFound):
		return &APIError{Code: "WORKSPACE_NOT_FOUND", Message: "workspace not found", RecoveryHint: "Check credentials"}
	case errors.Is(err, client.ErrClientNotFound):
		return &APIError{Code: "CLIENT_NOT_FOUND", Message: "client not found", RecoveryHint: "Check ID spelling"}
	case errors.Is(err, client.ErrClientLimit):
		return &APIError{Code: "CLIENT_LIMIT_REACHED", Message: "active client limit reached for current plan", RecoveryHint: "Archive a client or upgrade the plan"}
	case errors.Is(err, session.ErrSessionNotFound):
		return &APIError{Code: "SESSION_NOT_FOUND", Message: "session not found", RecoveryHint: "Check ID spelling"}
	case errors.Is(err, session.ErrNotRetainerClient):
		return &APIError{Code: "NOT_RETAINER_CLIENT", Message: "client is not on a retainer", RecoveryHint: "Use a general or project allocation"}
	case errors.Is(err, project.ErrProjectNotFound), errors.Is(err, session.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check ID spelling and the owning client"}
	case errors.Is(err, note.ErrTypeRestricted):
		return &APIError{Code: "PLAN_RESTRICTED", Message: "note type not available on current plan", RecoveryHint: "Upgrade the plan or use a text note"}
	case errors.Is(err, plan.ErrUnknownPlan):
		return &APIError{Code: "UNKNOWN_PLAN", Message: "unknown plan", RecoveryHint: "Use solo, pro, or studio"}
	case errors.Is(err, plan.ErrReasonRequired):
		return &APIError{Code: "REASON_REQUIRED", Message: "downgrade reason required", RecoveryHint: "Supply a reason when downgrading to solo"}
	case errors.Is(err, settings.ErrInvalidRates):
		return &APIError{Code: "INVALID_RATES", Message: "invalid tax or fee rates", RecoveryHint: "Rates must be non-negative and sum below 1"}
	case errors.Is(err, client.ErrInvalidInput),
		errors.Is(err, session.ErrInvalidInput),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, note.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return nil
	}
}
