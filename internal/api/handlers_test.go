package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/romangod6/sitemapper/internal/generator"
	"github.com/romangod6/sitemapper/internal/models"
	"github.com/romangod6/sitemapper/internal/storage"
	"github.com/romangod6/sitemapper/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSite() models.Site {
	return models.Site{
		Title:         "Example",
		BaseURL:       "https://example.com",
		HomePageID:    "home",
		ErrorPageID:   "error",
		DefaultLocale: "en",
		Locales: []models.Locale{
			{Code: "en", Tag: "en-GB"},
			{Code: "de", Tag: "de-DE"},
		},
	}
}

func newTestServer(t *testing.T, site models.Site, pages ...*models.Page) http.Handler {
	t.Helper()
	return newLoggedTestServer(t, io.Discard, site, pages...)
}

func newLoggedTestServer(t *testing.T, logs io.Writer, site models.Site, pages ...*models.Page) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Initialize())

	for _, p := range pages {
		require.NoError(t, store.UpsertPage(context.Background(), p))
	}

	logger := utils.NewWriterLogger(logs, false)
	gen := generator.New(store, site, nil, logger)
	return NewServer(0, store, gen, logger).Handler()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	h.ServeHTTP(w, req)
	return w
}

func samplePages() []*models.Page {
	home := models.NewPage("home")
	home.Media = []*models.MediaAsset{models.NewMediaAsset("home", "https://example.com/media/hero.jpg")}

	blog := models.NewPage("blog")
	post := models.NewPage("blog/post")
	post.ParentID = "blog"
	post.Sitemap = models.PerLocale(map[string]bool{"de": false})

	errorPage := models.NewPage("error")
	return []*models.Page{home, blog, post, errorPage}
}

func TestSitemapXML(t *testing.T) {
	h := newTestServer(t, testSite(), samplePages()...)

	w := get(t, h, "/sitemap.xml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, `href="/sitemap.xsl"`)
	assert.Contains(t, body, "<loc>https://example.com/en/</loc>")
	assert.Contains(t, body, "<loc>https://example.com/de/blog</loc>")
	assert.Contains(t, body, "<loc>https://example.com/en/blog/post</loc>")
	assert.NotContains(t, body, "<loc>https://example.com/de/blog/post</loc>")
	assert.NotContains(t, body, "/error</loc>")
	assert.Contains(t, body, `hreflang="x-default" href="https://example.com/en/blog"`)
	assert.Contains(t, body, "<image:loc>https://example.com/media/hero.jpg</image:loc>")
}

func TestSitemapJSON(t *testing.T) {
	h := newTestServer(t, testSite(), samplePages()...)

	w := get(t, h, "/api/sitemap")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SitemapResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Count)
	require.Len(t, resp.Entries, 5)
	assert.Equal(t, "https://example.com/en/blog", resp.Entries[0].URL)
}

func TestSitemapRedirect(t *testing.T) {
	h := newTestServer(t, testSite())

	w := get(t, h, "/sitemap")
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/sitemap.xml", w.Header().Get("Location"))
}

func TestSitemapXSL(t *testing.T) {
	h := newTestServer(t, testSite())

	w := get(t, h, "/sitemap.xsl")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/xsl; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<title>Example Sitemap</title>")
}

func TestSitemapXML_ConfigError(t *testing.T) {
	site := testSite()
	site.DefaultLocale = ""
	h := newTestServer(t, site, samplePages()...)

	w := get(t, h, "/sitemap.xml")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid site configuration", resp.Error)
}

func TestSitemapXML_FailureLoggedOnce(t *testing.T) {
	site := testSite()
	site.DefaultLocale = ""
	var logs bytes.Buffer
	h := newLoggedTestServer(t, &logs, site, samplePages()...)

	w := get(t, h, "/sitemap.xml")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, strings.Count(logs.String(), "[ERROR]"), logs.String())
}

func TestRequestsLoggedThroughLogger(t *testing.T) {
	var logs bytes.Buffer
	h := newLoggedTestServer(t, &logs, testSite(), samplePages()...)

	w := get(t, h, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logs.String(), "/api/health")
}

func TestPages(t *testing.T) {
	h := newTestServer(t, testSite(), samplePages()...)

	w := get(t, h, "/api/pages?limit=2")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data  []models.Page `json:"data"`
		Limit int           `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Limit)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "blog", list.Data[0].ID)

	w = get(t, h, "/api/pages/blog/post")
	require.Equal(t, http.StatusOK, w.Code)
	var p models.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "blog", p.ParentID)

	w = get(t, h, "/api/pages/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, testSite())

	w := get(t, h, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}
