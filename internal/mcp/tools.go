package mcp

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// Clients
		{
			Name:        "add_client",
			Description: "Add a client to the workspace",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{
						"type":        "string",
						"description": "Client display name",
					},
					"company": map[string]any{
						"type":        "string",
						"description": "Company name",
					},
					"email":   map[string]any{"type": "string"},
					"phone":   map[string]any{"type": "string"},
					"website": map[string]any{"type": "string"},
					"model": map[string]any{
						"type":        "string",
						"description": "Billing model",
						"enum":        []string{"hourly", "retainer", "project"},
					},
					"rate": map[string]any{
						"type":        "number",
						"description": "Hourly rate in workspace currency",
					},
					"status": map[string]any{
						"type":        "string",
						"description": "Lifecycle status (defaults to active)",
						"enum":        []string{"active", "prospect", "archived"},
					},
					"retainer_total": map[string]any{
						"type":        "number",
						"description": "Retainer hours per cycle (retainer clients only)",
					},
				},
				"required": []string{"name", "model"},
			},
		},
		{
			Name:        "update_client",
			Description: "Update a client's editable fields; retainer balances are clamped to valid range",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":      map[string]any{"type": "string", "description": "Client ID"},
					"name":    map[string]any{"type": "string"},
					"company": map[string]any{"type": "string"},
					"email":   map[string]any{"type": "string"},
					"phone":   map[string]any{"type": "string"},
					"website": map[string]any{"type": "string"},
					"model": map[string]any{
						"type": "string",
						"enum": []string{"hourly", "retainer", "project"},
					},
					"rate": map[string]any{"type": "number"},
					"status": map[string]any{
						"type": "string",
						"enum": []string{"active", "prospect", "archived"},
					},
					"retainer_total":     map[string]any{"type": "number"},
					"retainer_remaining": map[string]any{"type": "number"},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "list_clients",
			Description: "List all clients in the workspace with their cached rollup stats",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "archive_client",
			Description: "Archive a client; history is retained and only the status changes",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{"type": "string", "description": "Client ID"},
				},
				"required": []string{"id"},
			},
		},

		// Sessions
		{
			Name:        "log_session",
			Description: "Log a work session; revenue and rollup side-effects are computed from the allocation",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"client_id": map[string]any{"type": "string", "description": "Owning client ID"},
					"date": map[string]any{
						"type":        "string",
						"description": "Session date (YYYY-MM-DD or RFC 3339; defaults to now)",
					},
					"duration": map[string]any{
						"type":        "number",
						"description": "Hours worked (must be positive)",
					},
					"billable": map[string]any{
						"type":        "boolean",
						"description": "Whether the time is billed (defaults to true)",
					},
					"task": map[string]any{"type": "string", "description": "What was worked on"},
					"work_tags": map[string]any{
						"type":        "array",
						"description": "Work categories (e.g. Development, Meetings)",
						"items":       map[string]any{"type": "string"},
					},
					"allocation": map[string]any{
						"type":        "string",
						"description": "Where the time is charged (defaults to general)",
						"enum":        []string{"general", "retainer", "project"},
					},
					"project_id": map[string]any{
						"type":        "string",
						"description": "Target project (required for project allocation)",
					},
				},
				"required": []string{"client_id", "duration"},
			},
		},
		{
			Name:        "update_session",
			Description: "Edit a session; the previous allocation's effect is reversed and the new one applied",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":        map[string]any{"type": "string", "description": "Session ID"},
					"client_id": map[string]any{"type": "string"},
					"date":      map[string]any{"type": "string"},
					"duration":  map[string]any{"type": "number"},
					"billable":  map[string]any{"type": "boolean"},
					"task":      map[string]any{"type": "string"},
					"work_tags": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"allocation": map[string]any{
						"type": "string",
						"enum": []string{"general", "retainer", "project"},
					},
					"project_id": map[string]any{"type": "string"},
				},
				"required": []string{"id", "client_id", "duration"},
			},
		},
		{
			Name:        "delete_session",
			Description: "Delete a session and reverse its rollup side-effects",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{"type": "string", "description": "Session ID"},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "list_sessions",
			Description: "List sessions, newest first, optionally filtered by client",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"client_id": map[string]any{
						"type":        "string",
						"description": "Filter by owning client",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of sessions",
					},
				},
			},
		},

		// Projects
		{
			Name:        "add_project",
			Description: "Create a project under an existing client",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"client_id": map[string]any{"type": "string", "description": "Owning client ID"},
					"name":      map[string]any{"type": "string", "description": "Project name"},
					"status": map[string]any{
						"type":        "string",
						"description": "Initial status (defaults to not_started)",
						"enum":        []string{"not_started", "in_progress", "on_hold", "complete"},
					},
					"estimated_hours": map[string]any{"type": "number"},
					"total_value":     map[string]any{"type": "number"},
					"start_date":      map[string]any{"type": "string"},
					"end_date":        map[string]any{"type": "string"},
				},
				"required": []string{"client_id", "name"},
			},
		},
		{
			Name:        "update_project",
			Description: "Update a project's editable fields; hours and revenue rollups are session-driven",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "string", "description": "Project ID"},
					"name": map[string]any{"type": "string"},
					"status": map[string]any{
						"type": "string",
						"enum": []string{"not_started", "in_progress", "on_hold", "complete"},
					},
					"estimated_hours": map[string]any{"type": "number"},
					"total_value":     map[string]any{"type": "number"},
					"start_date":      map[string]any{"type": "string"},
					"end_date":        map[string]any{"type": "string"},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "list_projects",
			Description: "List all projects with their rollup totals",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},

		// Notes
		{
			Name:        "add_note",
			Description: "Add a note, optionally attached to a client; non-text types require the rich-notes entitlement",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"client_id": map[string]any{
						"type":        "string",
						"description": "Client to attach the note to (omit for a workspace note)",
					},
					"title": map[string]any{"type": "string"},
					"body":  map[string]any{"type": "string"},
					"type": map[string]any{
						"type":        "string",
						"description": "Note type (defaults to text)",
						"enum":        []string{"text", "checklist", "link"},
					},
					"pinned": map[string]any{"type": "boolean"},
				},
				"required": []string{"title"},
			},
		},
		{
			Name:        "list_notes",
			Description: "List notes, pinned first",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},

		// Metrics and settings
		{
			Name:        "get_metrics",
			Description: "Get the derived metrics snapshot: totals, breakdowns, rankings, performance cards, and forward signals",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "get_plan",
			Description: "Get the active plan and its entitlements",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "switch_plan",
			Description: "Switch the workspace to a different plan tier",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"plan": map[string]any{
						"type": "string",
						"enum": []string{"solo", "pro", "studio"},
					},
					"reason": map[string]any{
						"type":        "string",
						"description": "Required when downgrading to solo",
					},
				},
				"required": []string{"plan"},
			},
		},
		{
			Name:        "get_financials",
			Description: "Get the workspace financial defaults (tax rate, processing fee, currency, weekly target)",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "update_financials",
			Description: "Update the financial defaults and recompute net metrics",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tax_rate": map[string]any{
						"type":        "number",
						"description": "Estimated tax rate as a fraction (e.g. 0.25)",
					},
					"processing_fee_rate": map[string]any{
						"type":        "number",
						"description": "Payment processing fee rate as a fraction",
					},
					"currency":      map[string]any{"type": "string", "description": "ISO currency code"},
					"weekly_target": map[string]any{"type": "number", "description": "Target billable hours per week"},
				},
				"required": []string{"tax_rate", "processing_fee_rate"},
			},
		},
		{
			Name:        "reconcile",
			Description: "Rebuild all derived rollups (project totals, retainer balances, client stats) from the session ledger",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}

// registerTools wires every catalog tool to the handler through the SDK
// server. All tools share one shape: decode arguments, dispatch by name,
// marshal the result as JSON text content.
func registerTools(server *sdkmcp.Server, handler *Handler) {
	for _, def := range buildToolCatalog() {
		def := def
		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: toSchema(def.InputSchema),
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil && req.Params.Arguments != nil {
				data, err := json.Marshal(req.Params.Arguments)
				if err != nil {
					return nil, err
				}
				args = data
			}

			result, err := handler.Handle(ctx, getWorkspaceID(ctx), def.Name, args)
			if err != nil {
				return nil, err
			}

			payload, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return nil, err
			}
			return &sdkmcp.CallToolResult{
				Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(payload)}},
			}, nil
		})
	}
}

func toSchema(m map[string]any) *jsonschema.Schema {
	data, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil
	}
	return &schema
}
