package config

import (
	"strings"

	"github.com/romangod6/sitemapper/internal/models"
	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Driver string
		URL    string
	}
	Server struct {
		Port int
	}
	Site struct {
		Title         string
		BaseURL       string          `mapstructure:"base_url"`
		HomePage      string          `mapstructure:"home_page"`
		ErrorPage     string          `mapstructure:"error_page"`
		DefaultLocale string          `mapstructure:"default_locale"`
		Locales       []models.Locale `mapstructure:"locales"`
		Filter        struct {
			ExcludePrefixes []string `mapstructure:"exclude_prefixes"`
		}
	}
	Log struct {
		Dir   string
		Debug bool
	}
}

// LoadConfig reads config.yaml from the working directory or ./config, or
// the file at path when one is given. Environment variables prefixed with
// SITEMAPPER_ override file values.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Default values
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.url", "sitemapper.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("site.title", "Site")
	v.SetDefault("site.base_url", "http://localhost:8080")
	v.SetDefault("site.home_page", "home")
	v.SetDefault("site.error_page", "error")

	v.SetEnvPrefix("sitemapper")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// SiteConfig returns the site the sitemap is generated against.
func (c *Config) SiteConfig() models.Site {
	return models.Site{
		Title:         c.Site.Title,
		BaseURL:       c.Site.BaseURL,
		HomePageID:    c.Site.HomePage,
		ErrorPageID:   c.Site.ErrorPage,
		DefaultLocale: c.Site.DefaultLocale,
		Locales:       c.Site.Locales,
	}
}

// PageFilter returns the custom page filter, or nil when none is configured.
// A page is rejected when its slug starts with an excluded prefix.
func (c *Config) PageFilter() func(*models.Page) bool {
	prefixes := c.Site.Filter.ExcludePrefixes
	if len(prefixes) == 0 {
		return nil
	}
	return func(p *models.Page) bool {
		slug := p.Slug()
		for _, prefix := range prefixes {
			if strings.HasPrefix(slug, prefix) {
				return false
			}
		}
		return true
	}
}
