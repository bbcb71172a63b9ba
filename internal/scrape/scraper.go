// Package scrape fetches a company's public website and extracts the
// visible text of its key pages. Scraping is polite: robots.txt is
// honored, requests are rate limited per domain, and responses are
// cached so repeated runs do not re-fetch.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/nmishin/deckforge/internal/cache"
	"github.com/nmishin/deckforge/internal/logger"
	"github.com/nmishin/deckforge/internal/model"
	"github.com/nmishin/deckforge/internal/util"
	"github.com/nmishin/deckforge/internal/worker"
)

// pageCategories maps the page buckets we care about to the keywords
// that identify them in link URLs and anchor text.
var pageCategories = map[string][]string{
	"about":     {"about", "company", "who we are", "profile", "leadership"},
	"products":  {"product", "service", "solution", "offering", "capabilities"},
	"investors": {"investor", "financial", "shareholder", "annual report"},
	"contact":   {"contact", "reach us", "location", "office"},
}

type Scraper struct {
	client       *http.Client
	limiter      *worker.Limiter
	robots       *util.RobotsChecker
	cache        cache.Cache
	log          *logger.Logger
	userAgent    string
	maxBodyBytes int64
	pagesPerCat  int
}

func New(cfg *model.Config, log *logger.Logger) *Scraper {
	if log == nil {
		log = logger.Nop()
	}
	s := &Scraper{
		client: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		limiter:      worker.NewLimiter(cfg.Scrape.RequestsPerSecond, 1),
		log:          log,
		userAgent:    cfg.HTTP.UserAgent,
		maxBodyBytes: cfg.HTTP.MaxBodyBytes,
		pagesPerCat:  cfg.Scrape.PagesPerCategory,
	}
	if s.pagesPerCat <= 0 {
		s.pagesPerCat = 2
	}
	if cfg.Scrape.RespectRobots {
		s.robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}
	if cfg.Cache.Enabled {
		s.cache = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}
	return s
}

// Scrape fetches the homepage and up to pagesPerCat candidate links per
// page category. A homepage failure is an error; individual category
// page failures are logged and skipped.
func (s *Scraper) Scrape(ctx context.Context, website string) (map[string]string, error) {
	base, err := normalizeURL(website)
	if err != nil {
		return nil, fmt.Errorf("scrape %q: %w", website, err)
	}

	body, err := s.fetch(ctx, base.String())
	if err != nil {
		return nil, fmt.Errorf("fetch homepage: %w", err)
	}

	pages := map[string]string{
		"homepage": visibleText(body),
	}

	for category, links := range s.discoverLinks(base, body) {
		limit := len(links)
		if limit > s.pagesPerCat {
			limit = s.pagesPerCat
		}
		for _, link := range links[:limit] {
			pageBody, err := s.fetch(ctx, link)
			if err != nil {
				s.log.WithFields(map[string]interface{}{
					"category": category,
					"url":      link,
				}).WithError(err).Warn("page fetch failed, skipping")
				continue
			}
			pages[category] = visibleText(pageBody)
			break
		}
	}
	return pages, nil
}

// fetch retrieves one URL, consulting the cache and rate limiter.
func (s *Scraper) fetch(ctx context.Context, rawURL string) (string, error) {
	key := cache.CacheKey(rawURL)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return string(cached), nil
		}
	}

	if s.robots != nil {
		if !s.robots.IsAllowed(ctx, rawURL) {
			return "", fmt.Errorf("disallowed by robots.txt")
		}
		if err := s.honorCrawlDelay(ctx, rawURL); err != nil {
			return "", err
		}
	}
	if err := s.limiter.Wait(ctx, rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodyBytes))
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		_ = s.cache.Set(key, data, 0)
	}
	return string(data), nil
}

// maxCrawlDelay caps the site-requested delay so a hostile robots.txt
// cannot stall a run.
const maxCrawlDelay = 10 * time.Second

// honorCrawlDelay sleeps out the site's Crawl-delay directive, on top
// of our own per-host rate limit.
func (s *Scraper) honorCrawlDelay(ctx context.Context, rawURL string) error {
	delay := s.robots.CrawlDelay(ctx, rawURL)
	if delay <= 0 {
		return nil
	}
	if delay > maxCrawlDelay {
		delay = maxCrawlDelay
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// discoverLinks parses the homepage and buckets same-host links into
// page categories by URL path and anchor text. Candidate lists are
// sorted so discovery order is stable.
func (s *Scraper) discoverLinks(base *url.URL, homepage string) map[string][]string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(homepage))
	if err != nil {
		s.log.WithError(err).Warn("homepage parse failed, no link discovery")
		return nil
	}

	found := map[string]map[string]bool{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved, err := base.Parse(href)
		if err != nil || resolved.Host != base.Host {
			return
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		resolved.Fragment = ""

		urlLower := strings.ToLower(resolved.Path)
		textLower := strings.ToLower(strings.TrimSpace(sel.Text()))
		for category, keywords := range pageCategories {
			for _, kw := range keywords {
				if strings.Contains(urlLower, kw) || strings.Contains(textLower, kw) {
					if found[category] == nil {
						found[category] = map[string]bool{}
					}
					found[category][resolved.String()] = true
					break
				}
			}
		}
	})

	out := map[string][]string{}
	for category, set := range found {
		links := make([]string, 0, len(set))
		for link := range set {
			links = append(links, link)
		}
		sort.Strings(links)
		out[category] = links
	}
	return out
}

// visibleText walks the HTML tree collecting text nodes, skipping
// script, style and other non-content elements, and collapses runs of
// whitespace.
func visibleText(htmlBody string) string {
	doc, err := html.Parse(strings.NewReader(htmlBody))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head", "iframe", "svg":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " ")
}

func normalizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty URL")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return url.Parse(raw)
}
