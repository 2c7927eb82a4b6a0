package main

import (
	"fmt"
	"os"

	"github.com/romangod6/sitemapper/internal/content"
	"github.com/spf13/cobra"
)

var importPrune bool

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Load a YAML content tree into the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importPrune, "prune", false, "delete stored pages that are not in FILE")
}

func runImport(cmd *cobra.Command, args []string) error {
	env, err := setup("import", os.Stdout)
	if err != nil {
		return err
	}
	defer env.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	pages, err := content.Import(f)
	if err != nil {
		return err
	}

	// Check the tree before writing anything.
	if _, err := content.NewTree(env.cfg.SiteConfig(), pages); err != nil {
		return fmt.Errorf("invalid content tree: %w", err)
	}

	ctx := cmd.Context()
	ids := make([]string, 0, len(pages))
	for _, p := range pages {
		if err := env.store.UpsertPage(ctx, p); err != nil {
			return err
		}
		ids = append(ids, p.ID)
		env.logger.LogDebug("Imported %s (%d images)", p.ID, len(p.Media))
	}
	env.logger.LogInfo("Imported %d pages from %s", len(pages), args[0])

	if importPrune {
		n, err := env.store.PrunePages(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to prune pages: %w", err)
		}
		env.logger.LogInfo("Pruned %d pages", n)
	}

	return nil
}
