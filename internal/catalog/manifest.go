package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Manifest maps a category name to its ordered list of image filenames, the
// shape served by the image host's list-images endpoint.
type Manifest map[string][]string

// DefaultCategories is the fixed set of categories the shop publishes.
func DefaultCategories() []string {
	return []string{
		"ANIME", "AESTHETICS", "CARS", "DC", "DEVOTIONAL", "MARVEL",
		"MOVIE POSTERS", "SPORTS", "SPLIT POSTERS",
		"BOOKMARK", "SINGLE STICKERS", "FULLPAGE",
	}
}

// LoadManifestFile reads a manifest from a local JSON file.
func LoadManifestFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}

// Normalize drops categories outside the allowed set and categories with no
// images, logging each removal. The result is safe to build products from.
func (m Manifest) Normalize(allowed []string, logf func(format string, v ...any)) Manifest {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	allow := make(map[string]bool, len(allowed))
	for _, c := range allowed {
		allow[c] = true
	}

	out := make(Manifest, len(m))
	for cat, files := range m {
		switch {
		case !allow[cat]:
			logf("manifest: removing unexpected category %q", cat)
		case len(files) == 0:
			logf("manifest: removing empty category %q", cat)
		default:
			out[cat] = files
		}
	}
	return out
}

// Client fetches the manifest from the image host, one request per category.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// NewClient parses the image host base URL. The list-images endpoint is
// resolved relative to it.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid image host url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: u, http: httpClient}, nil
}

// FetchCategory asks the host for one category's image list.
func (c *Client) FetchCategory(ctx context.Context, category string) ([]string, error) {
	rel := &url.URL{Path: "list-images.php", RawQuery: url.Values{"category": {category}}.Encode()}
	u := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list images %s: status %d", category, resp.StatusCode)
	}

	var files []string
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", category, err)
	}
	return files, nil
}

// FetchManifest populates the manifest for all categories in parallel. A
// category that fails to fetch is logged and left out, mirroring how the
// storefront degrades when a folder listing is unavailable.
func (c *Client) FetchManifest(ctx context.Context, categories []string, logf func(format string, v ...any)) Manifest {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	var mu sync.Mutex
	m := make(Manifest, len(categories))

	g, ctx := errgroup.WithContext(ctx)
	for _, cat := range categories {
		cat := cat
		g.Go(func() error {
			files, err := c.FetchCategory(ctx, cat)
			if err != nil {
				logf("manifest: could not fetch %s: %v", cat, err)
				return nil
			}
			mu.Lock()
			m[cat] = files
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return m
}
