package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/romangod6/sitemapper/internal/api"
	"github.com/romangod6/sitemapper/internal/generator"
	"github.com/romangod6/sitemapper/internal/sitemap"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve /sitemap.xml and /sitemap.xsl",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides server.port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := setup("sitemapper", os.Stdout)
	if err != nil {
		return err
	}
	defer env.Close()

	site := env.cfg.SiteConfig()
	// Refuse to start on a locale setup every request would fail on.
	if err := sitemap.ValidateSite(site); err != nil {
		return err
	}

	port := env.cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}

	gen := generator.New(env.store, site, env.cfg.PageFilter(), env.logger)
	server := api.NewServer(port, env.store, gen, env.logger)

	errCh := make(chan error, 1)
	go func() {
		env.logger.LogInfo("Starting sitemap server on port %d", port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return waitForShutdown(cmd.Context(), env, server, errCh)
}

// waitForShutdown blocks until ctx is cancelled by a signal or the server
// fails, then shuts the server down gracefully.
func waitForShutdown(ctx context.Context, env *environment, server *api.Server, errCh <-chan error) error {
	select {
	case err := <-errCh:
		env.logger.LogError("Server failed: %v", err)
		return err
	case <-ctx.Done():
	}
	env.logger.LogInfo("Shutting down...")

	// Graceful server shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		env.logger.LogError("Error shutting down server: %v", err)
		return err
	}
	env.logger.LogInfo("Server shut down gracefully")
	return nil
}
