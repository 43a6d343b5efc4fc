package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/solobooks/solobooks/internal/domain/client"
	"github.com/solobooks/solobooks/internal/domain/metrics"
	"github.com/solobooks/solobooks/internal/domain/note"
	"github.com/solobooks/solobooks/internal/domain/plan"
	"github.com/solobooks/solobooks/internal/domain/project"
	"github.com/solobooks/solobooks/internal/domain/session"
	"github.com/solobooks/solobooks/internal/domain/settings"
	"github.com/solobooks/solobooks/internal/repository"
)

// Stores bundles the repositories the workspace persists through.
type Stores struct {
	Clients  repository.ClientRepository
	Sessions repository.SessionRepository
	Projects repository.ProjectRepository
	Notes    repository.NoteRepository
	Settings repository.SettingsRepository
}

// Workspace holds the authoritative in-memory client, session, project and
// note collections for one workspace and re-derives the metrics snapshot
// whenever its inputs change. It is the single writer of these collections:
// every mutation validates, persists through the store, applies the
// allocation engine's compensating patches to the in-memory copies, and
// recomputes the snapshot.
//
// All mutations serialize through one mutex, so compensating patches are
// always computed against the latest applied value rather than a stale read.
type Workspace struct {
	mu     sync.Mutex
	id     string
	stores Stores
	logger *slog.Logger

	clients  map[string]*client.Client
	sessions map[string]*session.Session
	projects map[string]*project.Project
	notes    []note.Note

	planState  plan.State
	financials settings.Financials
	snapshot   metrics.Snapshot
}

// New creates a workspace container. Call Load before use.
func New(id string, stores Stores, logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Workspace{
		id:       id,
		stores:   stores,
		logger:   logger,
		clients:  make(map[string]*client.Client),
		sessions: make(map[string]*session.Session),
		projects: make(map[string]*project.Project),
	}
}

// ID returns the workspace identifier.
func (w *Workspace) ID() string { return w.id }

// Load hydrates the in-memory collections from the store and computes the
// initial snapshot.
func (w *Workspace) Load(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	clients, err := w.stores.Clients.List(ctx, w.id)
	if err != nil {
		return fmt.Errorf("loading clients: %w", err)
	}
	sessions, err := w.stores.Sessions.List(ctx, w.id)
	if err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}
	projects, err := w.stores.Projects.List(ctx, w.id)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}
	notes, err := w.stores.Notes.List(ctx, w.id)
	if err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}

	w.clients = make(map[string]*client.Client, len(clients))
	for i := range clients {
		c := clients[i]
		w.clients[c.ID] = &c
	}
	w.sessions = make(map[string]*session.Session, len(sessions))
	for i := range sessions {
		s := sessions[i]
		w.sessions[s.ID] = &s
	}
	w.projects = make(map[string]*project.Project, len(projects))
	for i := range projects {
		p := projects[i]
		w.projects[p.ID] = &p
	}
	w.notes = notes

	state, err := w.stores.Settings.GetPlan(ctx, w.id)
	switch {
	case err == nil:
		w.planState = *state
	case errors.Is(err, repository.ErrNotFound):
		w.planState = plan.State{Plan: plan.Solo, ActivatedAt: time.Now()}
	default:
		return fmt.Errorf("loading plan: %w", err)
	}

	fin, err := w.stores.Settings.GetFinancials(ctx, w.id)
	switch {
	case err == nil:
		w.financials = *fin
	case errors.Is(err, repository.ErrNotFound):
		w.financials = settings.Financials{Currency: "USD"}
	default:
		return fmt.Errorf("loading financials: %w", err)
	}

	w.recompute()
	return nil
}

// AddClientRequest describes an "add client" action.
type AddClientRequest struct {
	Name          string
	Company       string
	Email         string
	Phone         string
	Website       string
	Model         client.BillingModel
	Rate          float64
	Status        client.Status
	RetainerTotal float64
}

// AddClient creates a client, enforcing the plan's active-client cap.
// A retainer client starts a fresh cycle with the full balance.
func (w *Workspace) AddClient(ctx context.Context, req AddClientRequest) (*client.Client, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if strings.TrimSpace(req.Name) == "" || !req.Model.Valid() {
		return nil, client.ErrInvalidInput
	}
	status := req.Status
	if status == "" {
		status = client.StatusActive
	}
	if !status.Valid() {
		return nil, client.ErrInvalidInput
	}

	if status == client.StatusActive {
		ent := plan.Resolve(w.planState.Plan)
		if ent.ActiveClients > 0 && w.activeClientCount() >= ent.ActiveClients {
			return nil, client.ErrClientLimit
		}
	}

	c := &client.Client{
		ID:          uuid.NewString(),
		WorkspaceID: w.id,
		Name:        req.Name,
		Company:     req.Company,
		Email:       req.Email,
		Phone:       req.Phone,
		Website:     req.Website,
		Model:       req.Model,
		Rate:        req.Rate,
		Status:      status,
		CreatedAt:   time.Now(),
	}
	if req.Model == client.ModelRetainer {
		c.RetainerTotal = req.RetainerTotal
		c.RetainerRemaining = req.RetainerTotal
	}
	c.ClampRetainer()

	if err := w.stores.Clients.Create(ctx, w.id, c); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	w.clients[c.ID] = c
	w.recompute()

	out := *c
	return &out, nil
}

// ClientPatch carries the directly editable client fields. Nil fields are
// left unchanged; rollup fields are not editable here.
type ClientPatch struct {
	Name              *string
	Company           *string
	Email             *string
	Phone             *string
	Website           *string
	Model             *client.BillingModel
	Rate              *float64
	Status            *client.Status
	RetainerTotal     *float64
	RetainerRemaining *float64
}

// UpdateClient applies a direct edit. Retainer bounds are enforced by
// clamping, never by rejecting the update.
func (w *Workspace) UpdateClient(ctx context.Context, id string, patch ClientPatch) (*client.Client, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	existing, ok := w.clients[id]
	if !ok {
		return nil, client.ErrClientNotFound
	}

	updated := *existing
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, client.ErrInvalidInput
		}
		updated.Name = *patch.Name
	}
	if patch.Company != nil {
		updated.Company = *patch.Company
	}
	if patch.Email != nil {
		updated.Email = *patch.Email
	}
	if patch.Phone != nil {
		updated.Phone = *patch.Phone
	}
	if patch.Website != nil {
		updated.Website = *patch.Website
	}
	if patch.Model != nil {
		if !patch.Model.Valid() {
			return nil, client.ErrInvalidInput
		}
		updated.Model = *patch.Model
	}
	if patch.Rate != nil {
		updated.Rate = *patch.Rate
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, client.ErrInvalidInput
		}
		updated.Status = *patch.Status
	}
	if patch.RetainerTotal != nil {
		updated.RetainerTotal = *patch.RetainerTotal
	}
	if patch.RetainerRemaining != nil {
		updated.RetainerRemaining = *patch.RetainerRemaining
	}
	updated.ClampRetainer()

	if err := w.stores.Clients.Update(ctx, w.id, &updated); err != nil {
		return nil, fmt.Errorf("updating client: %w", err)
	}

	*existing = updated
	w.recompute()

	out := updated
	return &out, nil
}

// ArchiveClient transitions a client to archived. Data is retained; only
// the status changes.
func (w *Workspace) ArchiveClient(ctx context.Context, id string) error {
	status := client.StatusArchived
	_, err := w.UpdateClient(ctx, id, ClientPatch{Status: &status})
	return err
}

// AddProjectRequest describes an "add project" action.
type AddProjectRequest struct {
	ClientID       string
	Name           string
	Status         project.Status
	EstimatedHours float64
	TotalValue     float64
	StartDate      *time.Time
	EndDate        *time.Time
	Milestones     []project.Milestone
	ExternalLinks  []project.ExternalLink
}

// AddProject creates a project under an existing client.
func (w *Workspace) AddProject(ctx context.Context, req AddProjectRequest) (*project.Project, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if strings.TrimSpace(req.Name) == "" {
		return nil, project.ErrInvalidInput
	}
	if _, ok := w.clients[req.ClientID]; !ok {
		return nil, client.ErrClientNotFound
	}
	status := req.Status
	if status == "" {
		status = project.StatusNotStarted
	}
	if !status.Valid() {
		return nil, project.ErrInvalidInput
	}

	p := &project.Project{
		ID:             uuid.NewString(),
		WorkspaceID:    w.id,
		ClientID:       req.ClientID,
		Name:           req.Name,
		Status:         status,
		EstimatedHours: req.EstimatedHours,
		TotalValue:     req.TotalValue,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Milestones:     req.Milestones,
		ExternalLinks:  req.ExternalLinks,
		CreatedAt:      time.Now(),
	}

	if err := w.stores.Projects.Create(ctx, w.id, p); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	w.projects[p.ID] = p
	w.recompute()

	out := *p
	return &out, nil
}

// ProjectPatch carries the directly editable project fields. Hours and
// revenue are excluded: only session side-effects write them.
type ProjectPatch struct {
	Name           *string
	Status         *project.Status
	EstimatedHours *float64
	TotalValue     *float64
	StartDate      *time.Time
	EndDate        *time.Time
	Milestones     []project.Milestone
	ExternalLinks  []project.ExternalLink
}

// UpdateProject applies a direct edit.
func (w *Workspace) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*project.Project, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	existing, ok := w.projects[id]
	if !ok {
		return nil, project.ErrProjectNotFound
	}

	updated := *existing
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, project.ErrInvalidInput
		}
		updated.Name = *patch.Name
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, project.ErrInvalidInput
		}
		updated.Status = *patch.Status
	}
	if patch.EstimatedHours != nil {
		updated.EstimatedHours = *patch.EstimatedHours
	}
	if patch.TotalValue != nil {
		updated.TotalValue = *patch.TotalValue
	}
	if patch.StartDate != nil {
		updated.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		updated.EndDate = patch.EndDate
	}
	if patch.Milestones != nil {
		updated.Milestones = patch.Milestones
	}
	if patch.ExternalLinks != nil {
		updated.ExternalLinks = patch.ExternalLinks
	}

	if err := w.stores.Projects.Update(ctx, w.id, &updated); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	*existing = updated
	w.recompute()

	out := updated
	return &out, nil
}

// LogSession records a work session and applies its compensating updates.
// The session write is the primary operation: once it has been persisted the
// action is reported as successful, and any failure to persist a rollup is
// logged only, because rollups are recomputable from session history.
func (w *Workspace) LogSession(ctx context.Context, req session.LogRequest) (*session.Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	owner, ok := w.clients[req.ClientID]
	if !ok {
		return nil, session.ErrClientNotFound
	}
	projs := w.projectsForClient(owner.ID)

	sess, err := session.New(w.id, req, owner, projs)
	if err != nil {
		return nil, err
	}

	if err := w.stores.Sessions.Create(ctx, w.id, sess); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	w.sessions[sess.ID] = sess
	w.applyAllocation(ctx, sess, owner, projs)
	w.recompute()

	out := *sess
	return &out, nil
}

// UpdateSessionRequest describes an edit of an existing session. The edit
// re-runs the allocation engine: the previous allocation's effect is
// reversed and the new one applied, and revenue is recomputed from the
// client's current rate.
type UpdateSessionRequest struct {
	ID string
	session.LogRequest
}

// UpdateSession edits a session, re-issuing compensating patches.
func (w *Workspace) UpdateSession(ctx context.Context, req UpdateSessionRequest) (*session.Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	old, ok := w.sessions[req.ID]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	owner, ok := w.clients[req.ClientID]
	if !ok {
		return nil, session.ErrClientNotFound
	}
	projs := w.projectsForClient(owner.ID)

	updated, err := session.New(w.id, req.LogRequest, owner, projs)
	if err != nil {
		return nil, err
	}
	updated.ID = old.ID
	updated.CreatedAt = old.CreatedAt

	if err := w.stores.Sessions.Update(ctx, w.id, updated); err != nil {
		return nil, fmt.Errorf("updating session: %w", err)
	}

	w.reverseAllocation(ctx, old)
	w.sessions[updated.ID] = updated
	w.applyAllocation(ctx, updated, owner, projs)
	// applyAllocation folds the edited session into the owner's cached stats
	// on top of the old session's contribution, so the stats are rebuilt from
	// the ledger rather than adjusted incrementally.
	w.refreshClientRollups(ctx, updated.ClientID)
	if old.ClientID != updated.ClientID {
		w.refreshClientRollups(ctx, old.ClientID)
	}
	w.recompute()

	out := *updated
	return &out, nil
}

// DeleteSession removes a session and reverses its allocation's effect.
func (w *Workspace) DeleteSession(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	old, ok := w.sessions[id]
	if !ok {
		return session.ErrSessionNotFound
	}

	if err := w.stores.Sessions.Delete(ctx, w.id, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	delete(w.sessions, id)
	w.reverseAllocation(ctx, old)
	w.refreshClientRollups(ctx, old.ClientID)
	w.recompute()
	return nil
}

// AddNoteRequest describes an "add note" action.
type AddNoteRequest struct {
	ClientID string
	Title    string
	Body     string
	Type     note.Type
	Pinned   bool
}

// AddNote creates a note. Non-text types require the plan's rich-notes
// entitlement; the restriction gates input only and never changes how
// existing notes are handled.
func (w *Workspace) AddNote(ctx context.Context, req AddNoteRequest) (*note.Note, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if strings.TrimSpace(req.Title) == "" {
		return nil, note.ErrInvalidInput
	}
	noteType := req.Type
	if noteType == "" {
		noteType = note.TypeText
	}
	if !noteType.Valid() {
		return nil, note.ErrInvalidInput
	}
	if noteType != note.TypeText && !plan.Resolve(w.planState.Plan).Features.RichNotes {
		return nil, note.ErrTypeRestricted
	}

	var clientID *string
	if req.ClientID != "" {
		if _, ok := w.clients[req.ClientID]; !ok {
			return nil, client.ErrClientNotFound
		}
		id := req.ClientID
		clientID = &id
	}

	now := time.Now()
	n := &note.Note{
		ID:          uuid.NewString(),
		WorkspaceID: w.id,
		ClientID:    clientID,
		Title:       req.Title,
		Body:        req.Body,
		Type:        noteType,
		Pinned:      req.Pinned,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := w.stores.Notes.Create(ctx, w.id, n); err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}

	w.notes = append(w.notes, *n)
	out := *n
	return &out, nil
}

// SwitchPlanRequest describes an upgrade or downgrade.
type SwitchPlanRequest struct {
	Plan   plan.ID
	Reason string
}

// SwitchPlan makes an atomic swap of the active plan. Downgrading to the
// lowest tier requires a captured reason.
func (w *Workspace) SwitchPlan(ctx context.Context, req SwitchPlanRequest) (*plan.State, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !req.Plan.Valid() {
		return nil, plan.ErrUnknownPlan
	}
	if req.Plan == plan.Solo && req.Plan.Rank() < w.planState.Plan.Rank() && strings.TrimSpace(req.Reason) == "" {
		return nil, plan.ErrReasonRequired
	}

	state := plan.State{
		Plan:            req.Plan,
		ActivatedAt:     time.Now(),
		DowngradeReason: strings.TrimSpace(req.Reason),
	}
	if err := w.stores.Settings.SavePlan(ctx, w.id, &state); err != nil {
		return nil, fmt.Errorf("saving plan: %w", err)
	}

	w.planState = state
	out := state
	return &out, nil
}

// UpdateFinancials replaces the workspace financial defaults and recomputes
// the snapshot with the new net multiplier.
func (w *Workspace) UpdateFinancials(ctx context.Context, fin settings.Financials) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := fin.Validate(); err != nil {
		return err
	}
	if fin.Currency == "" {
		fin.Currency = w.financials.Currency
	}

	if err := w.stores.Settings.SaveFinancials(ctx, w.id, &fin); err != nil {
		return fmt.Errorf("saving financials: %w", err)
	}

	w.financials = fin
	w.recompute()
	return nil
}

// Snapshot returns the current metrics snapshot.
func (w *Workspace) Snapshot() metrics.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot
}

// Clients returns the clients ordered by creation time.
func (w *Workspace) Clients() []client.Client {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sortedClients()
}

// Sessions returns the sessions, newest first.
func (w *Workspace) Sessions() []session.Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sortedSessions()
}

// Projects returns the projects ordered by creation time.
func (w *Workspace) Projects() []project.Project {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sortedProjects()
}

// Notes returns the notes, pinned first.
func (w *Workspace) Notes() []note.Note {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]note.Note, len(w.notes))
	copy(out, w.notes)
	return out
}

// Plan returns the active plan state.
func (w *Workspace) Plan() plan.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.planState
}

// Entitlements resolves the active plan's limits and feature flags.
func (w *Workspace) Entitlements() plan.Entitlements {
	w.mu.Lock()
	defer w.mu.Unlock()
	return plan.Resolve(w.planState.Plan)
}

// Financials returns the workspace financial defaults.
func (w *Workspace) Financials() settings.Financials {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.financials
}

// applyAllocation applies a session's compensating patches and client
// rollups in memory, then persists the touched entities. Persistence
// failures here are logged, never returned: the session is already the
// committed source of truth and Reconcile can repair the difference.
func (w *Workspace) applyAllocation(ctx context.Context, sess *session.Session, owner *client.Client, projs []project.Project) {
	alloc := session.Allocate(sess, owner, projs, w.logger)

	// The retainer balance tracks the current calendar month only. Sessions
	// dated in another cycle leave it alone; reconciliation derives it the
	// same way.
	if alloc.ClientPatch != nil && sameMonth(sess.Date, time.Now()) {
		owner.RetainerRemaining = alloc.ClientPatch.RetainerRemaining
		owner.ClampRetainer()
	}
	w.applySessionStats(owner, sess)
	if err := w.stores.Clients.Update(ctx, w.id, owner); err != nil {
		w.logger.Error("client rollup update failed",
			"client_id", owner.ID, "session_id", sess.ID, "error", err)
	}

	if alloc.ProjectPatch != nil {
		if proj, ok := w.projects[alloc.ProjectPatch.ProjectID]; ok {
			proj.Hours = alloc.ProjectPatch.Hours
			proj.Revenue = alloc.ProjectPatch.Revenue
			if err := w.stores.Projects.Update(ctx, w.id, proj); err != nil {
				w.logger.Error("project rollup update failed",
					"project_id", proj.ID, "session_id", sess.ID, "error", err)
			}
		}
	}
}

// reverseAllocation undoes a session's allocation effect ahead of an edit or
// delete. Retainer balances are adjusted incrementally; the client's cached
// stats are rebuilt wholesale afterwards via refreshClientRollups.
func (w *Workspace) reverseAllocation(ctx context.Context, old *session.Session) {
	switch old.Allocation {
	case session.AllocationRetainer:
		if !old.Billable || !sameMonth(old.Date, time.Now()) {
			return
		}
		if owner, ok := w.clients[old.ClientID]; ok && owner.Model == client.ModelRetainer {
			owner.RetainerRemaining += old.Duration
			owner.ClampRetainer()
		}
	case session.AllocationProject:
		if old.ProjectID == nil {
			return
		}
		proj, ok := w.projects[*old.ProjectID]
		if !ok {
			return
		}
		proj.Hours -= old.Duration
		proj.Revenue -= old.Revenue
		if proj.Hours < 0 {
			proj.Hours = 0
		}
		if proj.Revenue < 0 {
			proj.Revenue = 0
		}
		if err := w.stores.Projects.Update(ctx, w.id, proj); err != nil {
			w.logger.Error("project rollup reversal failed",
				"project_id", proj.ID, "session_id", old.ID, "error", err)
		}
	}
}

// applySessionStats folds a new session into the owning client's cached
// rollups.
func (w *Workspace) applySessionStats(c *client.Client, sess *session.Session) {
	c.HoursLogged += sess.Duration
	c.LifetimeRevenue += sess.Revenue
	if sameMonth(sess.Date, time.Now()) {
		c.MonthlyEarnings += sess.Revenue
	}
	if c.LastSessionDate == nil || sess.Date.After(*c.LastSessionDate) {
		d := sess.Date
		c.LastSessionDate = &d
	}
	if c.HoursLogged > 0 {
		c.TrueHourlyRate = c.LifetimeRevenue / c.HoursLogged
	} else {
		c.TrueHourlyRate = 0
	}
}

// refreshClientRollups rebuilds a client's cached stats from the in-memory
// session history and persists the result (logged-only on failure).
func (w *Workspace) refreshClientRollups(ctx context.Context, clientID string) {
	c, ok := w.clients[clientID]
	if !ok {
		return
	}
	w.recomputeClientStats(c)
	if err := w.stores.Clients.Update(ctx, w.id, c); err != nil {
		w.logger.Error("client rollup refresh failed", "client_id", clientID, "error", err)
	}
}

func (w *Workspace) recomputeClientStats(c *client.Client) {
	now := time.Now()
	c.MonthlyEarnings = 0
	c.LifetimeRevenue = 0
	c.HoursLogged = 0
	c.LastSessionDate = nil
	for _, s := range w.sessions {
		if s.ClientID != c.ID {
			continue
		}
		c.HoursLogged += s.Duration
		c.LifetimeRevenue += s.Revenue
		if sameMonth(s.Date, now) {
			c.MonthlyEarnings += s.Revenue
		}
		if c.LastSessionDate == nil || s.Date.After(*c.LastSessionDate) {
			d := s.Date
			c.LastSessionDate = &d
		}
	}
	if c.HoursLogged > 0 {
		c.TrueHourlyRate = c.LifetimeRevenue / c.HoursLogged
	} else {
		c.TrueHourlyRate = 0
	}
}

func (w *Workspace) recompute() {
	w.snapshot = metrics.Compute(w.sortedSessions(), w.sortedClients(), metrics.Options{
		NetMultiplier: w.financials.NetMultiplier(),
		Currency:      w.financials.Currency,
	})
}

func (w *Workspace) projectsForClient(clientID string) []project.Project {
	var projs []project.Project
	for _, p := range w.projects {
		if p.ClientID == clientID {
			projs = append(projs, *p)
		}
	}
	return projs
}

func (w *Workspace) activeClientCount() int {
	count := 0
	for _, c := range w.clients {
		if c.Status == client.StatusActive {
			count++
		}
	}
	return count
}

func (w *Workspace) sortedClients() []client.Client {
	out := make([]client.Client, 0, len(w.clients))
	for _, c := range w.clients {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (w *Workspace) sortedSessions() []session.Session {
	out := make([]session.Session, 0, len(w.sessions))
	for _, s := range w.sessions {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (w *Workspace) sortedProjects() []project.Project {
	out := make([]project.Project, 0, len(w.projects))
	for _, p := range w.projects {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
