package sitemap_test

import (
	"errors"
	"testing"

	"github.com/romangod6/sitemapper/internal/models"
	"github.com/romangod6/sitemapper/internal/sitemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectImages_ImagesModeChild(t *testing.T) {
	site := singleLocaleSite()
	tree := newTree(t, site,
		page("projects", "", withImages(image("https://example.com/media/cover.jpg"))),
		page("projects/gallery", "projects", withMode("images"), withImages(
			image("https://example.com/media/1.jpg"),
			hiddenImage("https://example.com/media/2.jpg"),
			image("https://example.com/media/3.jpg"),
		)),
	)
	r := sitemap.NewResolver(tree, site, nil)

	got, err := r.CollectImages(mustPage(t, tree, "projects"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/media/cover.jpg",
		"https://example.com/media/1.jpg",
		"https://example.com/media/3.jpg",
	}, got)
}

func TestCollectImages_SkipsHiddenAndShowChildren(t *testing.T) {
	site := singleLocaleSite()
	tree := newTree(t, site,
		page("blog", ""),
		page("blog/a-hidden", "blog", withMode("hide"), withImages(image("https://example.com/media/hidden.jpg"))),
		page("blog/b-post", "blog", withImages(image("https://example.com/media/post.jpg"))),
		page("blog/c-off", "blog", withMode("images"), withSitemap(models.Bool(false)), withImages(image("https://example.com/media/off.jpg"))),
		page("blog/d-draft", "blog", withMode("images"), withStatus(models.StatusDraft), withImages(image("https://example.com/media/draft.jpg"))),
	)
	r := sitemap.NewResolver(tree, site, nil)

	got, err := r.CollectImages(mustPage(t, tree, "blog"), "")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestCollectImages_WholeImagesSubtreeInOrder(t *testing.T) {
	site := singleLocaleSite()
	tree := newTree(t, site,
		page("shop", ""),
		page("shop/b-photos", "shop", withNum(2), withMode("images"), withImages(image("https://example.com/media/p1.jpg"))),
		page("shop/b-photos/nested", "shop/b-photos", withImages(image("https://example.com/media/p2.jpg"))),
		page("shop/b-photos/nested/deeper", "shop/b-photos/nested", withMode("images"), withImages(image("https://example.com/media/p3.jpg"))),
		page("shop/b-photos/secret", "shop/b-photos", withMode("hide"), withImages(image("https://example.com/media/secret.jpg"))),
		page("shop/a-banners", "shop", withNum(1), withMode("images"), withImages(image("https://example.com/media/banner.jpg"))),
	)
	r := sitemap.NewResolver(tree, site, nil)

	got, err := r.CollectImages(mustPage(t, tree, "shop"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/media/banner.jpg",
		"https://example.com/media/p1.jpg",
		"https://example.com/media/p2.jpg",
		"https://example.com/media/p3.jpg",
	}, got)
}

func TestCollectImages_PerLocaleVisibility(t *testing.T) {
	site := multiLocaleSite()
	onlyEnglish := image("https://example.com/media/en.jpg")
	onlyEnglish.Sitemap = models.PerLocale(map[string]bool{"en": true, "fr": false})
	tree := newTree(t, site,
		page("about", "", withImages(onlyEnglish, image("https://example.com/media/all.jpg"))),
		page("about/fr-gallery", "about", withMode("images"),
			withSitemap(models.PerLocale(map[string]bool{"en": false, "fr": true})),
			withImages(image("https://example.com/media/fr.jpg"))),
	)
	r := sitemap.NewResolver(tree, site, nil)
	about := mustPage(t, tree, "about")

	en, err := r.CollectImages(about, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/media/en.jpg", "https://example.com/media/all.jpg"}, en)

	fr, err := r.CollectImages(about, "fr")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/media/all.jpg", "https://example.com/media/fr.jpg"}, fr)
}

func TestCollectImages_SharedChildIsStructuralError(t *testing.T) {
	root := page("root", "")
	gallery := page("root/gallery", "root", withMode("images"))
	loop := page("root/gallery/loop", "root/gallery")
	f := newFakeTree()
	f.link(root, gallery)
	f.link(gallery, loop)
	f.children[loop.ID] = []*models.Page{gallery}

	r := sitemap.NewResolver(f, singleLocaleSite(), nil)
	_, err := r.CollectImages(root, "")
	assert.True(t, errors.Is(err, sitemap.ErrStructural))
}
