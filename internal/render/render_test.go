package render

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/romangod6/sitemapper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []*models.Entry {
	return []*models.Entry{
		{
			URL:          "https://example.com/en/about",
			LastModified: "2024-03-01T12:30:00Z",
			Alternates: map[string]models.Alternate{
				"en":        {Tag: "en-GB", URL: "https://example.com/en/about"},
				"fr":        {Tag: "fr-FR", URL: "https://example.com/fr/about"},
				"x-default": {Tag: "x-default", URL: "https://example.com/en/about"},
			},
			AlternateOrder: []string{"en", "fr", "x-default"},
			Images:         []string{"https://example.com/media/a.jpg?w=1&h=2"},
		},
		{URL: "https://example.com/contact", Images: []string{}},
	}
}

func TestURLSet(t *testing.T) {
	set := URLSet(sampleEntries())

	require.Len(t, set.URLs, 2)
	assert.Equal(t, SitemapNamespace, set.Xmlns)
	assert.Equal(t, []models.XHTMLLink{
		{Rel: "alternate", Hreflang: "en-GB", Href: "https://example.com/en/about"},
		{Rel: "alternate", Hreflang: "fr-FR", Href: "https://example.com/fr/about"},
		{Rel: "alternate", Hreflang: "x-default", Href: "https://example.com/en/about"},
	}, set.URLs[0].Links)
	assert.Empty(t, set.URLs[1].Links)
	assert.Empty(t, set.URLs[1].Images)
}

func TestWriteXML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXML(&buf, sampleEntries(), DefaultStylesheet))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, xml.Header))
	assert.Contains(t, out, `<?xml-stylesheet type="text/xsl" href="/sitemap.xsl"?>`)
	assert.Contains(t, out, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, out, `xmlns:image="http://www.google.com/schemas/sitemap-image/1.1"`)
	assert.Contains(t, out, `<loc>https://example.com/en/about</loc>`)
	assert.Contains(t, out, `<lastmod>2024-03-01T12:30:00Z</lastmod>`)
	assert.Contains(t, out, `<xhtml:link rel="alternate" hreflang="fr-FR" href="https://example.com/fr/about"></xhtml:link>`)
	assert.Contains(t, out, `<image:loc>https://example.com/media/a.jpg?w=1&amp;h=2</image:loc>`)
	assert.NotContains(t, out, "<lastmod></lastmod>")
	assert.Equal(t, 2, strings.Count(out, "<url>"))
}

func TestWriteXML_WithoutStylesheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXML(&buf, nil, ""))

	assert.NotContains(t, buf.String(), "xml-stylesheet")
	assert.Contains(t, buf.String(), "<urlset")
}

func TestWriteXSL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXSL(&buf, "Tom & Jerry <Shop>"))
	out := buf.String()

	assert.Contains(t, out, "<title>Tom &amp; Jerry &lt;Shop&gt; Sitemap</title>")
	assert.Contains(t, out, `<xsl:template match="sm:urlset">`)
	assert.NotContains(t, out, "{{")
}
