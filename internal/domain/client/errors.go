package client

import "errors"

var (
	// ErrClientNotFound indicates the client doesn't exist.
	ErrClientNotFound = errors.New("client not found")
	// ErrInvalidInput indicates invalid client input.
	ErrInvalidInput = errors.New("invalid client input")
	// ErrClientLimit indicates the plan's active-client cap is reached.
	ErrClientLimit = errors.New("active client limit reached for plan")
)
