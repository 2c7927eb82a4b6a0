package content

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/romangod6/sitemapper/internal/models"
	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a content tree export.
type File struct {
	Pages []PageSpec `yaml:"pages"`
}

// PageSpec is one page of the YAML export. Children nest; a child's ID is
// its parent's ID joined with its slug.
type PageSpec struct {
	Slug     string      `yaml:"slug"`
	Title    string      `yaml:"title"`
	Status   string      `yaml:"status"`
	Num      int         `yaml:"num"`
	Mode     string      `yaml:"mode"`
	Sitemap  Toggle      `yaml:"sitemap"`
	Modified time.Time   `yaml:"modified"`
	Images   []ImageSpec `yaml:"images"`
	Children []PageSpec  `yaml:"children"`
}

// ImageSpec is an image attached to a page.
type ImageSpec struct {
	Filename string `yaml:"filename"`
	URL      string `yaml:"url"`
	Sitemap  Toggle `yaml:"sitemap"`
}

// Toggle accepts either a boolean or a map of locale code to boolean.
type Toggle struct {
	models.Toggle
}

func (t *Toggle) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v bool
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("sitemap field: %w", err)
		}
		t.Toggle = models.Bool(v)
	case yaml.MappingNode:
		var values map[string]bool
		if err := node.Decode(&values); err != nil {
			return fmt.Errorf("sitemap field: %w", err)
		}
		t.Toggle = models.PerLocale(values)
	default:
		return fmt.Errorf("sitemap field: line %d: expected bool or locale map", node.Line)
	}
	return nil
}

// Import reads a YAML content tree and flattens it into pages with parent
// IDs, in document order.
func Import(r io.Reader) ([]*models.Page, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode content file: %w", err)
	}

	var pages []*models.Page
	var walk func(specs []PageSpec, parent string) error
	walk = func(specs []PageSpec, parent string) error {
		for _, spec := range specs {
			if spec.Slug == "" {
				return fmt.Errorf("page under %q has no slug", parent)
			}
			id := spec.Slug
			if parent != "" {
				id = parent + "/" + spec.Slug
			}
			pages = append(pages, pageFromSpec(id, parent, spec))
			if err := walk(spec.Children, id); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(f.Pages, ""); err != nil {
		return nil, err
	}
	return pages, nil
}

func pageFromSpec(id, parent string, spec PageSpec) *models.Page {
	p := models.NewPage(id)
	p.ParentID = parent
	p.Title = spec.Title
	p.Num = spec.Num
	p.SitemapMode = spec.Mode
	p.Sitemap = spec.Sitemap.Toggle
	if spec.Status != "" {
		p.Status = spec.Status
	}
	if !spec.Modified.IsZero() {
		p.Modified = spec.Modified
	}
	for i, img := range spec.Images {
		a := models.NewMediaAsset(id, img.URL)
		a.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(id+"\x00"+img.URL))
		a.Filename = img.Filename
		a.Sitemap = img.Sitemap.Toggle
		a.Sort = i
		p.Media = append(p.Media, a)
	}
	return p
}
