package sitemap

import (
	"fmt"

	"github.com/romangod6/sitemapper/internal/models"
)

// ValidateSite checks the locale configuration. A single-locale site (no
// locales) is always valid.
func ValidateSite(site models.Site) error {
	if !site.MultiLocale() {
		return nil
	}
	if site.DefaultLocale == "" {
		return &ConfigError{Message: "default locale is empty while locales are configured"}
	}
	seen := make(map[string]struct{}, len(site.Locales))
	for i, l := range site.Locales {
		if l.Code == "" {
			return &ConfigError{Message: fmt.Sprintf("locale %d has an empty code", i)}
		}
		if l.Code == models.XDefault {
			return &ConfigError{Message: "locale code x-default is reserved"}
		}
		if _, ok := seen[l.Code]; ok {
			return &ConfigError{Message: "duplicate locale " + l.Code}
		}
		seen[l.Code] = struct{}{}
	}
	if _, ok := seen[site.DefaultLocale]; !ok {
		return &ConfigError{Message: "default locale " + site.DefaultLocale + " is not a configured locale"}
	}
	return nil
}
