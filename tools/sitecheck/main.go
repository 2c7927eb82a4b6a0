// Command sitecheck fetches a served sitemap and visits every listed URL,
// reporting broken pages and pages that contradict their listing.
package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"github.com/spf13/cobra"
)

type result struct {
	URL       string
	Final     string
	Status    int
	Title     string
	Canonical string
	NoIndex   bool
	Err       error
}

func (r result) problems() []string {
	var out []string
	if r.Err != nil {
		out = append(out, r.Err.Error())
	}
	if r.Status != 0 && r.Status != 200 {
		out = append(out, fmt.Sprintf("status %d", r.Status))
	}
	if r.Final != "" && r.Final != r.URL {
		out = append(out, "redirects to "+r.Final)
	}
	if r.NoIndex {
		out = append(out, "robots noindex")
	}
	if r.Canonical != "" && strings.TrimRight(r.Canonical, "/") != strings.TrimRight(r.URL, "/") {
		out = append(out, "canonical is "+r.Canonical)
	}
	return out
}

type options struct {
	userAgent   string
	parallelism int
	delay       time.Duration
}

var opts options

func main() {
	cmd := &cobra.Command{
		Use:   "sitecheck SITEMAP_URL",
		Short: "Visit every URL of a sitemap and report problems",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	cmd.Flags().StringVar(&opts.userAgent, "user-agent", "sitemapper-sitecheck/1.0", "User-Agent header")
	cmd.Flags().IntVar(&opts.parallelism, "parallelism", 2, "concurrent requests per domain")
	cmd.Flags().DurationVar(&opts.delay, "delay", time.Second, "random delay between requests")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	sitemapURL := args[0]
	u, err := url.Parse(sitemapURL)
	if err != nil {
		return fmt.Errorf("invalid sitemap URL: %w", err)
	}

	locs, images, err := fetchSitemap(opts, sitemapURL)
	if err != nil {
		return err
	}
	fmt.Printf("Total URLs found: %d (%d images)\n\n", len(locs), images)

	results := visit(opts, u.Hostname(), locs)

	failed := 0
	for _, loc := range locs {
		r := results[loc]
		if problems := r.problems(); len(problems) > 0 {
			failed++
			fmt.Printf("FAIL %s: %s\n", loc, strings.Join(problems, "; "))
			continue
		}
		fmt.Printf("ok   %s  %q\n", loc, r.Title)
	}

	fmt.Printf("\n%d of %d URLs have problems\n", failed, len(locs))
	if failed > 0 {
		return fmt.Errorf("%d URLs failed", failed)
	}
	return nil
}

func fetchSitemap(o options, sitemapURL string) (locs []string, images int, err error) {
	c := colly.NewCollector(colly.UserAgent(o.userAgent))

	c.OnXML("//urlset/url/loc", func(e *colly.XMLElement) {
		locs = append(locs, strings.TrimSpace(e.Text))
	})
	c.OnXML("//urlset/url/*[local-name()='image']/*[local-name()='loc']", func(e *colly.XMLElement) {
		images++
	})
	c.OnError(func(r *colly.Response, e error) {
		err = fmt.Errorf("failed to fetch sitemap (status %d): %w", r.StatusCode, e)
	})

	if visitErr := c.Visit(sitemapURL); visitErr != nil {
		return nil, 0, visitErr
	}
	c.Wait()
	return locs, images, err
}

// visit fetches every loc. Results are keyed by the loc itself, which rides
// along in the request context so redirects don't lose it.
func visit(o options, host string, locs []string) map[string]result {
	var mu sync.Mutex
	results := make(map[string]result, len(locs))
	record := func(loc string, update func(*result)) {
		mu.Lock()
		defer mu.Unlock()
		r := results[loc]
		r.URL = loc
		update(&r)
		results[loc] = r
	}

	c := colly.NewCollector(
		colly.UserAgent(o.userAgent),
		colly.AllowedDomains(host),
		colly.Async(true),
	)
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: o.parallelism,
		RandomDelay: o.delay,
	})

	c.OnResponse(func(r *colly.Response) {
		record(r.Request.Ctx.Get("loc"), func(res *result) {
			res.Status = r.StatusCode
			res.Final = r.Request.URL.String()
		})
	})
	c.OnHTML("head", func(e *colly.HTMLElement) {
		title := strings.TrimSpace(e.DOM.Find("title").First().Text())
		canonical, _ := e.DOM.Find("link[rel='canonical']").Attr("href")
		noindex := false
		e.DOM.Find("meta[name='robots']").Each(func(_ int, s *goquery.Selection) {
			if content, ok := s.Attr("content"); ok && strings.Contains(strings.ToLower(content), "noindex") {
				noindex = true
			}
		})
		record(e.Request.Ctx.Get("loc"), func(res *result) {
			res.Title = title
			res.Canonical = canonical
			res.NoIndex = noindex
		})
	})
	c.OnError(func(r *colly.Response, err error) {
		record(r.Request.Ctx.Get("loc"), func(res *result) {
			res.Status = r.StatusCode
			res.Err = err
		})
	})

	for _, loc := range locs {
		ctx := colly.NewContext()
		ctx.Put("loc", loc)
		if err := c.Request(http.MethodGet, loc, nil, ctx, nil); err != nil {
			record(loc, func(res *result) { res.Err = err })
		}
	}
	c.Wait()

	return results
}
