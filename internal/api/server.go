package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/romangod6/sitemapper/internal/generator"
	"github.com/romangod6/sitemapper/internal/storage"
	"github.com/romangod6/sitemapper/internal/utils"
)

type Server struct {
	router *gin.Engine
	port   int
	server *http.Server
}

func NewServer(port int, store storage.Store, gen *generator.Generator, logger *utils.Logger) *Server {
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.RecoveryWithWriter(logger.Writer()))

	// Setup CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// Create handler
	handler := NewHandler(store, gen, logger)

	// Sitemap routes
	router.GET("/sitemap.xml", handler.SitemapXML)
	router.GET("/sitemap.xsl", handler.SitemapXSL)
	router.GET("/sitemap", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/sitemap.xml")
	})

	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		api.GET("/sitemap", handler.SitemapJSON)

		pages := api.Group("/pages")
		{
			pages.GET("", handler.ListPages)
			pages.GET("/*id", handler.GetPage)
		}
	}

	return &Server{
		router: router,
		port:   port,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
