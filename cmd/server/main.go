package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/solobooks/solobooks/internal/config"
	"github.com/solobooks/solobooks/internal/domain/plan"
	"github.com/solobooks/solobooks/internal/domain/settings"
	"github.com/solobooks/solobooks/internal/mcp"
	"github.com/solobooks/solobooks/internal/repository"
	"github.com/solobooks/solobooks/internal/sqlite"
	"github.com/solobooks/solobooks/internal/workspace"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	stores := workspace.Stores{
		Clients:  sqlite.NewClientRepository(db),
		Sessions: sqlite.NewSessionRepository(db),
		Projects: sqlite.NewProjectRepository(db),
		Notes:    sqlite.NewNoteRepository(db),
		Settings: sqlite.NewSettingsRepository(db),
	}

	ctx := context.Background()
	if err := seedWorkspaceSettings(ctx, stores.Settings, cfg.Workspace); err != nil {
		logger.Error("failed to seed workspace settings", "error", err)
		os.Exit(1)
	}

	ws := workspace.New(cfg.Workspace.ID, stores, logger)
	if err := ws.Load(ctx); err != nil {
		logger.Error("failed to load workspace", "workspace_id", cfg.Workspace.ID, "error", err)
		os.Exit(1)
	}

	// Repair any rollup drift left behind by a previous crash before serving.
	report, err := ws.Reconcile(ctx)
	if err != nil {
		logger.Error("startup reconciliation failed", "error", err)
		os.Exit(1)
	}
	if report.ProjectsRepaired+report.RetainersRepaired+report.ClientsRefreshed > 0 {
		logger.Info("reconciled workspace on startup",
			"projects_repaired", report.ProjectsRepaired,
			"retainers_repaired", report.RetainersRepaired,
			"clients_refreshed", report.ClientsRefreshed)
	}

	registry := workspace.NewRegistry()
	registry.Add(ws)

	resolver := &apiKeyResolver{db: db}
	mcpServer := mcp.NewServer(mcp.Config{
		Workspaces:       registry,
		Resolver:         resolver,
		DefaultWorkspace: cfg.Workspace.ID,
		AuthEnabled:      cfg.Auth.Enabled,
		TransportMode:    cfg.Transport.Mode,
		Logger:           logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
	} else {
		runHTTPMode(logger, mcpServer, cfg.Server.Host, cfg.Server.Port)
	}
}

// seedWorkspaceSettings writes the configured plan and financial defaults the
// first time the server boots against an empty database. Existing rows win.
func seedWorkspaceSettings(ctx context.Context, store repository.SettingsRepository, cfg config.WorkspaceConfig) error {
	if _, err := store.GetPlan(ctx, cfg.ID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		id := plan.ID(cfg.Plan)
		if !id.Valid() {
			id = plan.Solo
		}
		state := &plan.State{Plan: id, ActivatedAt: time.Now().UTC()}
		if err := store.SavePlan(ctx, cfg.ID, state); err != nil {
			return err
		}
	}

	if _, err := store.GetFinancials(ctx, cfg.ID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		fin := &settings.Financials{
			TaxRate:           cfg.TaxRate,
			ProcessingFeeRate: cfg.ProcessingFeeRate,
			Currency:          cfg.Currency,
			WeeklyTarget:      cfg.WeeklyTarget,
		}
		if err := fin.Validate(); err != nil {
			return err
		}
		if err := store.SaveFinancials(ctx, cfg.ID, fin); err != nil {
			return err
		}
	}
	return nil
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport", "auth", "disabled")

	transport := &sdkmcp.StdioTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled.
	if err := mcpServer.Run(ctx, transport); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, mcpServer *sdkmcp.Server, host string, port int) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	// Plain JSON-RPC endpoint for clients that don't speak streamable HTTP.
	router.Handle("/rpc", mcp.NewHTTPHandler(mcpServer, logger))
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

type logFileWriter struct {
	path string
	file *os.File
	mu   sync.Mutex
}

func newLogFileWriter(path string) (*logFileWriter, *os.File, error) {
	if err := ensureLogDir(path); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	writer := &logFileWriter{path: path, file: file}
	if err := writer.truncateIfNeeded(); err != nil {
		return nil, nil, err
	}
	return writer, file, nil
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	if err := w.truncateIfNeeded(); err != nil {
		return n, err
	}
	return n, nil
}

func (w *logFileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= maxLogSizeBytes {
		return nil
	}
	if size <= keepLogSizeBytes {
		return nil
	}

	buf := make([]byte, keepLogSizeBytes)
	if _, err := w.file.Seek(size-keepLogSizeBytes, io.SeekStart); err != nil {
		return err
	}
	n, err := w.file.Read(buf)
	if err != nil && err != io.EOF {
		return err
	}
	buf = buf[:n]

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.file.Write(buf); err != nil {
		return err
	}
	_, err = w.file.Seek(0, io.SeekEnd)
	return err
}

type apiKeyResolver struct {
	db *sqlite.DB
}

func (r *apiKeyResolver) ResolveWorkspace(ctx context.Context, token string) (string, error) {
	hash := hashToken(token)
	var workspaceID string
	err := r.db.QueryRowContext(ctx, `SELECT workspace_id FROM api_keys WHERE key_hash = ?`, hash).Scan(&workspaceID)
	if err != nil || workspaceID == "" {
		return "", fmt.Errorf("unauthorized: invalid token")
	}
	return workspaceID, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
