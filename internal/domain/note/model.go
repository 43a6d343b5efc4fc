package note

import "time"

// Type classifies a note's content. Non-text types require the rich-notes
// entitlement at creation time.
type Type string

const (
	TypeText      Type = "text"
	TypeChecklist Type = "checklist"
	TypeLink      Type = "link"
)

// Valid reports whether the note type is a known value.
func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeChecklist, TypeLink:
		return true
	}
	return false
}

// Note is a free-form workspace note, optionally attached to a client.
type Note struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	ClientID    *string   `json:"client_id,omitempty"`
	Title       string    `json:"title"`
	Body        string    `json:"body,omitempty"`
	Type        Type      `json:"type"`
	Pinned      bool      `json:"pinned"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
