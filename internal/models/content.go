package models

// Toggle is an optional boolean content field that may carry one value per
// locale. Single-locale sites use Value; multi-locale sites use Locales.
type Toggle struct {
	Value   *bool           `json:"value,omitempty"`
	Locales map[string]bool `json:"locales,omitempty"`
}

// Bool returns a Toggle holding a single unlocalized value.
func Bool(v bool) Toggle {
	return Toggle{Value: &v}
}

// PerLocale returns a Toggle holding localized values.
func PerLocale(values map[string]bool) Toggle {
	return Toggle{Locales: values}
}

// IsZero reports whether no value is stored at all.
func (t Toggle) IsZero() bool {
	return t.Value == nil && len(t.Locales) == 0
}

// Locale describes one language of the site.
type Locale struct {
	Code string `json:"code" mapstructure:"code"`
	// Tag is the hreflang value, e.g. en-GB.
	Tag  string `json:"tag" mapstructure:"tag"`
	Name string `json:"name,omitempty" mapstructure:"name"`
}

// Site is the read-only site configuration a sitemap is generated against.
type Site struct {
	Title         string   `json:"title"`
	BaseURL       string   `json:"base_url"`
	HomePageID    string   `json:"home_page"`
	ErrorPageID   string   `json:"error_page"`
	DefaultLocale string   `json:"default_locale"`
	Locales       []Locale `json:"locales"`
}

// MultiLocale reports whether the site has locales configured.
func (s Site) MultiLocale() bool {
	return len(s.Locales) > 0
}

// Locale looks up a configured locale by code.
func (s Site) Locale(code string) (Locale, bool) {
	for _, l := range s.Locales {
		if l.Code == code {
			return l, true
		}
	}
	return Locale{}, false
}
