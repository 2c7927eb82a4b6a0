package sitemap

import (
	"errors"
	"fmt"
)

// Error categories, usable with errors.Is.
var (
	ErrConfig     = errors.New("config")
	ErrStructural = errors.New("structural")
)

// ConfigError reports a site configuration a sitemap cannot be generated
// against. It is fatal to the generation.
type ConfigError struct {
	PageID  string
	Message string
}

func (e *ConfigError) Error() string {
	if e.PageID != "" {
		return fmt.Sprintf("config: page %s: %s", e.PageID, e.Message)
	}
	return fmt.Sprintf("config: %s", e.Message)
}

// Is matches ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// StructuralError reports content tree data the builder refuses to guess
// about: cycles and colliding entry URLs.
type StructuralError struct {
	PageID  string
	URL     string
	Message string
}

func (e *StructuralError) Error() string {
	switch {
	case e.URL != "":
		return fmt.Sprintf("structural: page %s: %s (%s)", e.PageID, e.Message, e.URL)
	case e.PageID != "":
		return fmt.Sprintf("structural: page %s: %s", e.PageID, e.Message)
	default:
		return fmt.Sprintf("structural: %s", e.Message)
	}
}

// Is matches ErrStructural.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}
