package session

import "errors"

var (
	// ErrSessionNotFound indicates the session doesn't exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrClientNotFound indicates the owning client doesn't exist.
	ErrClientNotFound = errors.New("client not found")
	// ErrProjectNotFound indicates the allocation target project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid session input.
	ErrInvalidInput = errors.New("invalid session input")
	// ErrNotRetainerClient indicates a retainer allocation against a client
	// whose billing model is not retainer.
	ErrNotRetainerClient = errors.New("client has no retainer")
)
