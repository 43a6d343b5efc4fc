package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/solobooks/solobooks/internal/domain/client"
	"github.com/solobooks/solobooks/internal/domain/note"
	"github.com/solobooks/solobooks/internal/domain/plan"
	"github.com/solobooks/solobooks/internal/domain/project"
	"github.com/solobooks/solobooks/internal/domain/session"
	"github.com/solobooks/solobooks/internal/domain/settings"
	"github.com/solobooks/solobooks/internal/workspace"
)

// Workspaces looks up loaded workspace containers by id.
type Workspaces interface {
	Get(id string) (*workspace.Workspace, error)
}

// Handler dispatches MCP commands to workspace operations.
type Handler struct {
	workspaces Workspaces
}

// NewHandler creates a new MCP handler.
func NewHandler(workspaces Workspaces) *Handler {
	return &Handler{workspaces: workspaces}
}

// Handle dispatches an MCP request to the resolved workspace.
func (h *Handler) Handle(ctx context.Context, workspaceID, method string, params json.RawMessage) (any, error) {
	if method == "tools/list" {
		return ToolsListResult{Tools: buildToolCatalog()}, nil
	}

	ws, err := h.workspaces.Get(workspaceID)
	if err != nil {
		return nil, mapError(err)
	}

	switch method {
	case "add_client":
		var req AddClientParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		c, err := ws.AddClient(ctx, workspace.AddClientRequest{
			Name:          req.Name,
			Company:       req.Company,
			Email:         req.Email,
			Phone:         req.Phone,
			Website:       req.Website,
			Model:         client.BillingModel(req.Model),
			Rate:          req.Rate,
			Status:        client.Status(req.Status),
			RetainerTotal: req.RetainerTotal,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return ClientResponse{Client: *c}, nil

	case "update_client":
		var req UpdateClientParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		patch := workspace.ClientPatch{
			Name:              req.Name,
			Company:           req.Company,
			Email:             req.Email,
			Phone:             req.Phone,
			Website:           req.Website,
			Rate:              req.Rate,
			RetainerTotal:     req.RetainerTotal,
			RetainerRemaining: req.RetainerRemaining,
		}
		if req.Model != nil {
			m := client.BillingModel(*req.Model)
			patch.Model = &m
		}
		if req.Status != nil {
			s := client.Status(*req.Status)
			patch.Status = &s
		}
		c, err := ws.UpdateClient(ctx, req.ID, patch)
		if err != nil {
			return nil, mapError(err)
		}
		return ClientResponse{Client: *c}, nil

	case "list_clients":
		return ClientListResponse{Clients: ws.Clients()}, nil

	case "archive_client":
		var req ArchiveClientParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := ws.ArchiveClient(ctx, req.ID); err != nil {
			return nil, mapError(err)
		}
		return StatusResponse{Status: "archived"}, nil

	case "log_session":
		var req LogSessionParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		logReq, err := buildLogRequest(req)
		if err != nil {
			return nil, err
		}
		sess, err := ws.LogSession(ctx, logReq)
		if err != nil {
			return nil, mapError(err)
		}
		return SessionResponse{Session: *sess}, nil

	case "update_session":
		var req UpdateSessionParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		logReq, err := buildLogRequest(req.LogSessionParams)
		if err != nil {
			return nil, err
		}
		sess, err := ws.UpdateSession(ctx, workspace.UpdateSessionRequest{
			ID:         req.ID,
			LogRequest: logReq,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return SessionResponse{Session: *sess}, nil

	case "delete_session":
		var req DeleteSessionParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := ws.DeleteSession(ctx, req.ID); err != nil {
			return nil, mapError(err)
		}
		return StatusResponse{Status: "deleted"}, nil

	case "list_sessions":
		var req ListSessionsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		sessions := ws.Sessions()
		if req.ClientID != "" {
			filtered := sessions[:0]
			for _, s := range sessions {
				if s.ClientID == req.ClientID {
					filtered = append(filtered, s)
				}
			}
			sessions = filtered
		}
		if req.Limit > 0 && len(sessions) > req.Limit {
			sessions = sessions[:req.Limit]
		}
		return SessionListResponse{Sessions: sessions}, nil

	case "add_project":
		var req AddProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		start, err := parseDate(req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date: %w", err)
		}
		end, err := parseDate(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
		p, err := ws.AddProject(ctx, workspace.AddProjectRequest{
			ClientID:       req.ClientID,
			Name:           req.Name,
			Status:         project.Status(req.Status),
			EstimatedHours: req.EstimatedHours,
			TotalValue:     req.TotalValue,
			StartDate:      start,
			EndDate:        end,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return ProjectResponse{Project: *p}, nil

	case "update_project":
		var req UpdateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		patch := workspace.ProjectPatch{
			Name:           req.Name,
			EstimatedHours: req.EstimatedHours,
			TotalValue:     req.TotalValue,
		}
		if req.Status != nil {
			s := project.Status(*req.Status)
			patch.Status = &s
		}
		start, err := parseDate(req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date: %w", err)
		}
		patch.StartDate = start
		end, err := parseDate(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
		patch.EndDate = end
		p, err := ws.UpdateProject(ctx, req.ID, patch)
		if err != nil {
			return nil, mapError(err)
		}
		return ProjectResponse{Project: *p}, nil

	case "list_projects":
		return ProjectListResponse{Projects: ws.Projects()}, nil

	case "add_note":
		var req AddNoteParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		n, err := ws.AddNote(ctx, workspace.AddNoteRequest{
			ClientID: req.ClientID,
			Title:    req.Title,
			Body:     req.Body,
			Type:     note.Type(req.Type),
			Pinned:   req.Pinned,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return NoteResponse{Note: *n}, nil

	case "list_notes":
		return NoteListResponse{Notes: ws.Notes()}, nil

	case "get_metrics":
		return ws.Snapshot(), nil

	case "get_plan":
		return PlanResponse{State: ws.Plan(), Entitlements: ws.Entitlements()}, nil

	case "switch_plan":
		var req SwitchPlanParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		state, err := ws.SwitchPlan(ctx, workspace.SwitchPlanRequest{
			Plan:   plan.ID(req.Plan),
			Reason: req.Reason,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return PlanResponse{State: *state, Entitlements: ws.Entitlements()}, nil

	case "get_financials":
		fin := ws.Financials()
		return FinancialsResponse{Financials: fin, NetMultiplier: fin.NetMultiplier()}, nil

	case "update_financials":
		var req UpdateFinancialsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		err := ws.UpdateFinancials(ctx, settings.Financials{
			TaxRate:           req.TaxRate,
			ProcessingFeeRate: req.ProcessingFeeRate,
			Currency:          req.Currency,
			WeeklyTarget:      req.WeeklyTarget,
		})
		if err != nil {
			return nil, mapError(err)
		}
		fin := ws.Financials()
		return FinancialsResponse{Financials: fin, NetMultiplier: fin.NetMultiplier()}, nil

	case "reconcile":
		report, err := ws.Reconcile(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return report, nil

	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func buildLogRequest(req LogSessionParams) (session.LogRequest, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return session.LogRequest{}, fmt.Errorf("invalid date: %w", err)
	}

	// Sessions default to billable; non-billable is the exception.
	billable := true
	if req.Billable != nil {
		billable = *req.Billable
	}
	allocation := session.AllocationType(req.Allocation)
	if req.Allocation == "" {
		allocation = session.AllocationGeneral
	}

	logReq := session.LogRequest{
		ClientID:   req.ClientID,
		Duration:   req.Duration,
		Billable:   billable,
		Task:       req.Task,
		WorkTags:   req.WorkTags,
		Allocation: allocation,
		ProjectID:  req.ProjectID,
	}
	if date != nil {
		logReq.Date = *date
	}
	return logReq, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, out)
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
