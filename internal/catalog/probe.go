package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

// Prober checks image existence against the image host with a HEAD request
// per file, each bounded by its own timeout.
type Prober struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
}

func NewProber(baseURL string, timeout time.Duration) (*Prober, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid image host url %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Prober{baseURL: u, http: &http.Client{}, timeout: timeout}, nil
}

func (p *Prober) Check(ctx context.Context, file string) bool {
	rel, err := url.Parse(file)
	if err != nil {
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, p.baseURL.ResolveReference(rel).String(), nil)
	if err != nil {
		return false
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// markLoaded probes all non-placeholder products in parallel. The probes are
// independent of each other; the batch is awaited before results are used.
func markLoaded(ctx context.Context, checker Checker, products []Product) {
	var g errgroup.Group
	for i := range products {
		if products[i].Placeholder {
			continue
		}
		i := i
		g.Go(func() error {
			products[i].Loaded = checker.Check(ctx, products[i].File)
			return nil
		})
	}
	_ = g.Wait()
}
