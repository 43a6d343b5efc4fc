package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Config contains server configuration.
type Config struct {
	Workspaces Workspaces
	Resolver   WorkspaceResolver

	// DefaultWorkspace receives all requests when auth is disabled.
	DefaultWorkspace string

	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "solobooks",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio mode is local-only, so auth is always off there.
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		defaultWorkspace := cfg.DefaultWorkspace
		if defaultWorkspace == "" {
			defaultWorkspace = "default"
		}
		server.AddReceivingMiddleware(noAuthMiddleware(defaultWorkspace))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, NewHandler(cfg.Workspaces))

	return server
}
