package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `solobooks manages a freelancer workspace: Clients → Sessions → Projects, plus notes, a plan tier, and a derived metrics snapshot.

Core concepts (keep this mental model small):
- Session: the ledger. Every hour worked is a session; everything else is derived from sessions.
- Allocation: where a session's time is charged. general (no side-effect), retainer (draws down the client's monthly balance, billable time only), project (rolls hours and revenue into the project).
- Rollups: client stats, retainer balances, and project totals are caches over the session ledger. reconcile rebuilds them if they ever drift.
- Snapshot: get_metrics returns the whole derived picture in one call (totals, breakdowns, rankings, performance cards, forward signals).
- Plan: solo/pro/studio gates input limits and note types; it never changes how metrics are computed.

Rules of engagement (default workflow):
1) Orient: call list_clients and get_metrics to see the current state.
2) Record work: log_session with client_id, duration, and the right allocation. Revenue is computed from the client's rate at log time.
3) Fix mistakes: update_session / delete_session reverse the old side-effects before applying new ones.
4) Structure engagements: add_project for fixed-scope work, retainer clients for monthly balances.
5) Review: get_metrics after changes; forward signals flag retainers near exhaustion and clients with no logged work.
6) Repair: if rollups look wrong, call reconcile; it is always safe.

Transport notes:
- HTTP: pass a bearer token in the Authorization header; it resolves the workspace.
- Stdio: the default workspace is used.

Docs (progressive disclosure):
- solobooks://docs/index (what to read when)
- solobooks://docs/concepts (glossary + invariants)
- solobooks://docs/workflows/logging-time
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "solobooks://docs/index",
		Name:        "docs_index",
		Title:       "solobooks docs index",
		Description: "Entry point for agent-facing docs: what exists and what to read.",
		Content: `# solobooks: Agent Docs Index

This server is designed for **progressive disclosure**: keep your baseline context small and load deeper docs only when needed.

## Quick start (no deep docs)

1. ` + "`list_clients`" + ` and ` + "`get_metrics`" + ` to orient.
2. ` + "`log_session`" + ` to record work (client, duration, allocation).
3. ` + "`get_metrics`" + ` again to see the updated picture.

## Docs (read on demand)

- ` + "`solobooks://docs/concepts`" + ` — glossary + invariants (session ledger, allocations, rollups, plan gating).
- ` + "`solobooks://docs/workflows/logging-time`" + ` — the time-logging loop and how to fix mistakes.

## Capabilities & intentional limitations

- Metrics are recomputed synchronously on every change; ` + "`get_metrics`" + ` is always current.
- Utilization for non-retainer clients is a fixed placeholder until availability tracking lands.
- ` + "`reconcile`" + ` is idempotent and safe to run at any time.
`,
	},
	{
		URI:         "solobooks://docs/concepts",
		Name:        "docs_concepts",
		Title:       "Concepts and invariants",
		Description: "Glossary and the invariants that keep the ledger and its rollups consistent.",
		Content: `# Concepts

- **Session**: one unit of logged work. The session ledger is the source of truth; nothing else is.
- **Allocation**: where a session's time is charged.
  - ` + "`general`" + `: counts toward metrics only, no side-effects.
  - ` + "`retainer`" + `: billable time draws down the client's monthly balance. The balance clamps at zero, it never goes negative.
  - ` + "`project`" + `: hours and revenue roll into the project regardless of billability.
- **Revenue**: fixed when the session is logged, from duration × the client's rate. Later rate changes never rewrite history.
- **Rollups**: client stats (lifetime revenue, hours, true hourly rate), retainer balances, and project totals are caches. A failed rollup write never fails the session; ` + "`reconcile`" + ` repairs drift.
- **Plan**: solo (5 active clients), pro (25, rich notes), studio (unlimited, all features). Gating restricts input; existing data is never mutated by a plan change.

# Invariants

- A session always belongs to an existing client at log time.
- Archiving a client keeps all of its sessions and revenue history.
- Deleting or editing a session reverses its old side-effects first.
- Every derived number in ` + "`get_metrics`" + ` can be recomputed from the ledger alone.
`,
	},
	{
		URI:         "solobooks://docs/workflows/logging-time",
		Name:        "docs_logging_time",
		Title:       "Logging time",
		Description: "The normal time-logging loop, allocation choices, and fixing mistakes.",
		Content: `# Logging time

## The normal loop

1. Find the client with ` + "`list_clients`" + ` (create one with ` + "`add_client`" + ` if needed).
2. ` + "`log_session`" + ` with:
   - ` + "`duration`" + ` in hours (fractions are fine: 1.5 = 90 minutes),
   - ` + "`work_tags`" + ` for category breakdowns (untagged time buckets under General),
   - the right ` + "`allocation`" + `.
3. Check ` + "`get_metrics`" + ` if you need the updated totals.

## Choosing an allocation

- Hourly client, ad-hoc work: ` + "`general`" + `.
- Retainer client, work covered by the monthly balance: ` + "`retainer`" + ` (only billable time draws the balance down).
- Work on a fixed-scope engagement: ` + "`project`" + ` with ` + "`project_id`" + `.

## Fixing mistakes

- Wrong duration, tags, or allocation: ` + "`update_session`" + `. Old side-effects are reversed and new ones applied.
- Logged against the wrong client: ` + "`update_session`" + ` with the correct ` + "`client_id`" + `.
- Shouldn't exist at all: ` + "`delete_session`" + `.
- Rollups look inconsistent after a crash or failed write: ` + "`reconcile`" + `.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
