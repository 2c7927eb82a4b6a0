// Package render serializes generated sitemap entries.
package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/romangod6/sitemapper/internal/models"
)

const (
	SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	ImageNamespace   = "http://www.google.com/schemas/sitemap-image/1.1"
	XHTMLNamespace   = "http://www.w3.org/1999/xhtml"

	// DefaultStylesheet is where the XSL view is served.
	DefaultStylesheet = "/sitemap.xsl"
)

// URLSet converts entries into the XML document model.
func URLSet(entries []*models.Entry) *models.URLSet {
	set := &models.URLSet{
		Xmlns:      SitemapNamespace,
		XmlnsImage: ImageNamespace,
		XmlnsXhtml: XHTMLNamespace,
		URLs:       make([]models.URL, 0, len(entries)),
	}

	for _, e := range entries {
		u := models.URL{Loc: e.URL, LastMod: e.LastModified}
		for _, code := range e.AlternateOrder {
			alt, ok := e.Alternates[code]
			if !ok {
				continue
			}
			u.Links = append(u.Links, models.XHTMLLink{Rel: "alternate", Hreflang: alt.Tag, Href: alt.URL})
		}
		for _, img := range e.Images {
			u.Images = append(u.Images, models.Image{Loc: img})
		}
		set.URLs = append(set.URLs, u)
	}

	return set
}

// WriteXML writes the sitemap document. stylesheet, when not empty, is
// referenced by an xml-stylesheet processing instruction.
func WriteXML(w io.Writer, entries []*models.Entry, stylesheet string) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if stylesheet != "" {
		var href bytes.Buffer
		if err := xml.EscapeText(&href, []byte(stylesheet)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<?xml-stylesheet type=\"text/xsl\" href=\"%s\"?>\n", href.String()); err != nil {
			return err
		}
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(URLSet(entries)); err != nil {
		return fmt.Errorf("failed to encode sitemap: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
