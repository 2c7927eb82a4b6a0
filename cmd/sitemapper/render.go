package main

import (
	"io"
	"os"

	"github.com/romangod6/sitemapper/internal/generator"
	"github.com/romangod6/sitemapper/internal/render"
	"github.com/spf13/cobra"
)

var (
	renderOutput     string
	renderXSL        bool
	renderStylesheet string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the sitemap (or its stylesheet) to a file",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (default: stdout)")
	renderCmd.Flags().BoolVar(&renderXSL, "xsl", false, "write the XSL stylesheet instead of the sitemap")
	renderCmd.Flags().StringVar(&renderStylesheet, "stylesheet", render.DefaultStylesheet, "stylesheet href referenced by the sitemap; empty for none")
}

func runRender(cmd *cobra.Command, args []string) error {
	env, err := setup("render", os.Stderr)
	if err != nil {
		return err
	}
	defer env.Close()

	var w io.Writer = os.Stdout
	if renderOutput != "" {
		f, err := os.Create(renderOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	site := env.cfg.SiteConfig()
	if renderXSL {
		return render.WriteXSL(w, site.Title)
	}

	gen := generator.New(env.store, site, env.cfg.PageFilter(), env.logger)
	m, err := gen.Generate(cmd.Context())
	if err != nil {
		return err
	}
	return render.WriteXML(w, m.Entries(), renderStylesheet)
}
