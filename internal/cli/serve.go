package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/flow/internal/config"
	"github.com/robalobadob/flow/internal/httpserver"
	"github.com/robalobadob/flow/internal/levels"
	"github.com/robalobadob/flow/internal/storage"
	"github.com/robalobadob/flow/internal/store"
)

// NewServeCommand creates the serve command.
func NewServeCommand(_ *RootOptions) *cobra.Command {
	var port, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP/WebSocket game server",
		Long: `Run the game server.

Configuration comes from the environment (and a .env file when present):
PORT, DB_PATH, CLIENT_ORIGIN, JWT_SECRET, DAILY_SALT, LEVELS_FILE,
SESSION_IDLE_MINUTES, ...
The --port and --db flags override PORT and DB_PATH.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DB_PATH)")

	return cmd
}

// serve runs the server until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, cfg config.Config) error {
	if err := levels.Init(); err != nil {
		return WrapExitError(ExitCommandError, "failed to load levels", err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		return WrapExitError(ExitCommandError, "failed to migrate database", err)
	}

	srv := httpserver.New(store.NewMemoryStore(), db, cfg)
	idle := time.Duration(cfg.SessionIdleMinutes) * time.Minute
	go srv.RunEviction(ctx, idle, idle/4)
	hs := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Int("levels", levels.Count()).Msg("starting flow server")
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return WrapExitError(ExitCommandError, "server exited", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return WrapExitError(ExitCommandError, "shutdown", err)
	}
	return nil
}
