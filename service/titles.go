package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"trackly-server/config"
	"trackly-server/models"
)

const (
	titleCacheTTL  = 24 * time.Hour
	titleBodyLimit = 2 * 1024 * 1024
	titleFanout    = 4
)

var titleClient = &http.Client{Timeout: 10 * time.Second}

// FetchPageTitle GETs a page and extracts its title: <title> first, og:title
// as backup. Body reads are capped; non-200 responses are errors.
func FetchPageTitle(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "trackly/1.0 (link preview)")

	resp, err := titleClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	limited := io.LimitReader(resp.Body, titleBodyLimit)
	body, err := io.ReadAll(limited)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	title := extractTitle(string(body))
	if title == "" {
		return "", fmt.Errorf("no title found")
	}
	return title, nil
}

// TitleFallback is what we show when a page yields no usable title: its host,
// or the raw string when it will not even parse as a URL.
func TitleFallback(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// ResolveTitle returns a display title for a URL, consulting the Redis cache
// first. It never fails: fetch errors degrade to the host-name fallback, and
// fallbacks are cached too so dead links are not re-fetched on every entry.
func ResolveTitle(ctx context.Context, rawURL string) string {
	cacheKey := "link_title:" + rawURL
	if cached, err := config.RDB.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
		return cached
	}

	title, err := FetchPageTitle(ctx, rawURL)
	if err != nil {
		config.Log.Debug().Err(err).Str("url", rawURL).Msg("title fetch failed, using fallback")
		title = TitleFallback(rawURL)
	}

	config.RDB.Set(ctx, cacheKey, title, titleCacheTTL)
	return title
}

// ResolveTitles resolves titles for a batch of URLs in parallel. One slow or
// dead URL never sinks the batch; output order matches input order.
func ResolveTitles(ctx context.Context, urls []string) []models.Link {
	links := make([]models.Link, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(titleFanout)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			links[i] = models.Link{URL: u, Title: ResolveTitle(gctx, u)}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors, fallbacks cover failures

	return links
}

// extractTitle walks an HTML document for its <title>, then og:title.
func extractTitle(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var title, ogTitle string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				var prop, content string
				for _, a := range n.Attr {
					switch a.Key {
					case "property":
						prop = a.Val
					case "content":
						content = a.Val
					}
				}
				if prop == "og:title" && ogTitle == "" {
					ogTitle = strings.TrimSpace(content)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if title != "" {
		return title
	}
	return ogTitle
}
