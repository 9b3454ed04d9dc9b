package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/helmsley-labs/graphcal/internal/cache"
	"github.com/helmsley-labs/graphcal/internal/config"
	"github.com/helmsley-labs/graphcal/internal/graph"
	"github.com/helmsley-labs/graphcal/internal/httpd"
	"github.com/helmsley-labs/graphcal/internal/logger"
	"github.com/helmsley-labs/graphcal/internal/msauth"
	"github.com/helmsley-labs/graphcal/internal/view"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calendar web app",
	Long: `Start the web server. Visit the root page to link a Microsoft account;
the calendar is rendered from the locally synced snapshot.

Requires client credentials of an app registration with the
Calendars.ReadWrite and OnlineMeetings.ReadWrite delegated permissions,
via the config file or GRAPHCAL_CLIENT_ID / GRAPHCAL_CLIENT_SECRET.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if err := cfg.ValidateForServe(); err != nil {
		return err
	}

	server, store, err := buildServer(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving on %s", cfg.Server.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildServer assembles the web server and its durable cache.
func buildServer(cfg config.Config) (*httpd.Server, *cache.Store, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	store, err := cache.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, nil, err
	}

	auth := msauth.NewAuthenticator(
		cfg.Auth.ClientID, cfg.Auth.ClientSecret, cfg.Auth.TenantID, cfg.Auth.RedirectURL,
	)
	engine := view.NewEngine(loc, nil)

	server, err := httpd.New(cfg, auth, graph.NewClient(), store, engine)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return server, store, nil
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
