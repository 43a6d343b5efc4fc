package workspace

import (
	"errors"
	"sync"
)

// ErrWorkspaceNotFound indicates a lookup for a workspace the registry does
// not hold.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// Registry maps workspace ids to loaded containers. Containers are
// registered at boot; lookups happen per request after auth resolves the
// workspace id.
type Registry struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{workspaces: make(map[string]*Workspace)}
}

// Add registers a loaded workspace.
func (r *Registry) Add(ws *Workspace) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workspaces[ws.ID()] = ws
}

// Get returns the workspace for an id.
func (r *Registry) Get(id string) (*Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ws, ok := r.workspaces[id]
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	return ws, nil
}
