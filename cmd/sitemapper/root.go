package main

import (
	"fmt"
	"io"

	"github.com/romangod6/sitemapper/config"
	"github.com/romangod6/sitemapper/internal/storage"
	"github.com/romangod6/sitemapper/internal/utils"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "sitemapper",
	Short: "Generate search engine sitemaps from a content tree",
	Long: `sitemapper serves an XML sitemap (with an XSL view for humans) built from
the pages held in its content store. Pages decide per blueprint whether they
are shown, hidden, pinned to one locale or only contribute their images to
the parent page.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: ./config.yaml or ./config/config.yaml)")

	rootCmd.AddCommand(serveCmd, importCmd, renderCmd)
}

// environment is what every command needs: config, logger and an
// initialized store.
type environment struct {
	cfg    *config.Config
	logger *utils.Logger
	store  storage.Store
}

func setup(logName string, console io.Writer) (*environment, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := utils.NewLogger(console, logName, cfg.Log.Dir, cfg.Log.Debug)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := store.Initialize(); err != nil {
		store.Close()
		logger.Close()
		return nil, fmt.Errorf("failed to initialize database tables: %w", err)
	}

	return &environment{cfg: cfg, logger: logger, store: store}, nil
}

func (e *environment) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.LogError("Error closing store: %v", err)
	}
	e.logger.Close()
}
