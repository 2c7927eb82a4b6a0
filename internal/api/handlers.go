package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/romangod6/sitemapper/internal/generator"
	"github.com/romangod6/sitemapper/internal/models"
	"github.com/romangod6/sitemapper/internal/render"
	"github.com/romangod6/sitemapper/internal/sitemap"
	"github.com/romangod6/sitemapper/internal/storage"
	"github.com/romangod6/sitemapper/internal/utils"
)

type Handler struct {
	store     storage.Store
	generator *generator.Generator
	logger    *utils.Logger
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PaginationResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalCount int         `json:"total_count,omitempty"`
}

type SitemapResponse struct {
	Count   int             `json:"count"`
	Entries []*models.Entry `json:"entries"`
}

func NewHandler(store storage.Store, gen *generator.Generator, logger *utils.Logger) *Handler {
	return &Handler{store: store, generator: gen, logger: logger}
}

func (h *Handler) SitemapXML(c *gin.Context) {
	m, err := h.generator.Generate(c.Request.Context())
	if err != nil {
		h.generationFailed(c, err)
		return
	}

	var buf bytes.Buffer
	if err := render.WriteXML(&buf, m.Entries(), render.DefaultStylesheet); err != nil {
		h.logger.LogError("Failed to render sitemap: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to render sitemap"})
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}

func (h *Handler) SitemapXSL(c *gin.Context) {
	var buf bytes.Buffer
	if err := render.WriteXSL(&buf, h.generator.Site().Title); err != nil {
		h.logger.LogError("Failed to render stylesheet: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to render stylesheet"})
		return
	}

	c.Data(http.StatusOK, "text/xsl; charset=utf-8", buf.Bytes())
}

func (h *Handler) SitemapJSON(c *gin.Context) {
	m, err := h.generator.Generate(c.Request.Context())
	if err != nil {
		h.generationFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, SitemapResponse{Count: m.Len(), Entries: m.Entries()})
}

func (h *Handler) ListPages(c *gin.Context) {
	page, limit := getPaginationParams(c)
	offset := (page - 1) * limit

	pages, err := h.store.ListPages(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch pages"})
		return
	}

	if pages == nil {
		pages = []*models.Page{}
	}

	c.JSON(http.StatusOK, PaginationResponse{
		Data:  pages,
		Page:  page,
		Limit: limit,
	})
}

func (h *Handler) GetPage(c *gin.Context) {
	id := strings.Trim(c.Param("id"), "/")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid page ID"})
		return
	}

	page, err := h.store.GetPage(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch page"})
		return
	}

	if page == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Page not found"})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) generationFailed(c *gin.Context, err error) {
	message := "Failed to generate sitemap"
	switch {
	case errors.Is(err, sitemap.ErrConfig):
		message = "Invalid site configuration"
	case errors.Is(err, sitemap.ErrStructural):
		message = "Inconsistent content tree"
	}
	// The generator has already logged err with its generation id.
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

// Utility functions
func getPaginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	return page, limit
}
