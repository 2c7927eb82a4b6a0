package render

import (
	_ "embed"
	"fmt"
	"io"
	"text/template"
)

//go:embed templates/sitemap.xsl.tmpl
var stylesheetTemplate string

var stylesheet = template.Must(template.New("sitemap.xsl").
	Funcs(template.FuncMap{"xml": template.HTMLEscapeString}).
	Parse(stylesheetTemplate))

// WriteXSL writes the stylesheet that turns the sitemap into a readable page.
func WriteXSL(w io.Writer, siteTitle string) error {
	if err := stylesheet.Execute(w, struct{ Title string }{Title: siteTitle}); err != nil {
		return fmt.Errorf("failed to render stylesheet: %w", err)
	}
	return nil
}
