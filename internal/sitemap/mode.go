package sitemap

import "github.com/romangod6/sitemapper/internal/models"

// ModeKind enumerates the sitemap behaviours a page can declare.
type ModeKind int

const (
	ModeShow ModeKind = iota
	ModeHide
	ModeImages
	ModeLocale
)

// Mode is a page's parsed sitemap mode. Locale is set only for ModeLocale.
type Mode struct {
	Kind   ModeKind
	Locale string
}

var (
	Show   = Mode{Kind: ModeShow}
	Hide   = Mode{Kind: ModeHide}
	Images = Mode{Kind: ModeImages}
)

// LocaleMode pins a page to a single locale.
func LocaleMode(code string) Mode {
	return Mode{Kind: ModeLocale, Locale: code}
}

// ParseMode parses a declared mode. The empty string is show.
func ParseMode(s string) Mode {
	switch s {
	case "", "show":
		return Show
	case "hide":
		return Hide
	case "images":
		return Images
	default:
		return LocaleMode(s)
	}
}

// ResolveMode returns the mode declared by the page itself, without looking
// at its ancestors.
func ResolveMode(p *models.Page) Mode {
	return ParseMode(p.SitemapMode)
}

func (m Mode) String() string {
	switch m.Kind {
	case ModeShow:
		return "show"
	case ModeHide:
		return "hide"
	case ModeImages:
		return "images"
	default:
		return m.Locale
	}
}
