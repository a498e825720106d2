package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// maxDocumentSize bounds how much of a response body is read.
const maxDocumentSize = 16 << 20

const userAgent = "Nayib Catalog Loader/1.0"

// Source is one candidate location of the catalog document.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPSource fetches the catalog over HTTP. With CacheBust set, every fetch
// appends a fresh timestamp query parameter.
type HTTPSource struct {
	URL       string
	CacheBust bool
	Client    *http.Client
	Now       func() time.Time
}

func (s HTTPSource) Name() string {
	if s.CacheBust {
		return s.URL + " (cache-busted)"
	}
	return s.URL
}

func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	target, err := s.target()
	if err != nil {
		return nil, &LoadError{Reason: ReasonNetwork, Source: s.Name(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &LoadError{Reason: ReasonNetwork, Source: s.Name(), Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &LoadError{Reason: ReasonNetwork, Source: s.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &LoadError{Reason: ReasonHTTPStatus, Source: s.Name(), StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, &LoadError{Reason: ReasonNetwork, Source: s.Name(), Err: fmt.Errorf("failed to read response: %w", err)}
	}
	return body, nil
}

func (s HTTPSource) target() (string, error) {
	if !s.CacheBust {
		return s.URL, nil
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return "", fmt.Errorf("invalid source URL: %w", err)
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	query := u.Query()
	query.Set("t", strconv.FormatInt(now().UnixMilli(), 10))
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// FileSource reads the catalog from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string {
	return "file:" + s.Path
}

func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Reason: ReasonNetwork, Source: s.Name(), Err: err}
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &LoadError{Reason: ReasonNetwork, Source: s.Name(), Err: err}
	}
	return data, nil
}

// DefaultSources builds the candidate list for a page served at pageURL:
// the document path relative to the page, root-relative, origin-qualified,
// and a cache-busted origin-qualified variant. Candidates resolving to the
// same URL are tried once, except for the cache-busted one.
func DefaultSources(pageURL, documentPath string, client *http.Client) ([]Source, error) {
	page, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page URL: %w", err)
	}
	if page.Scheme == "" || page.Host == "" {
		return nil, fmt.Errorf("page URL must be absolute: %q", pageURL)
	}

	rel := strings.TrimLeft(strings.TrimPrefix(strings.TrimSpace(documentPath), "./"), "/")
	if rel == "" {
		return nil, fmt.Errorf("document path is empty")
	}

	relative := page.ResolveReference(&url.URL{Path: rel})
	rootRelative := page.ResolveReference(&url.URL{Path: "/" + rel})
	absolute := &url.URL{Scheme: page.Scheme, Host: page.Host, Path: "/" + rel}

	var sources []Source
	seen := make(map[string]bool)
	for _, candidate := range []*url.URL{relative, rootRelative, absolute} {
		key := candidate.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		sources = append(sources, HTTPSource{URL: key, Client: client})
	}
	sources = append(sources, HTTPSource{URL: absolute.String(), CacheBust: true, Client: client})

	return sources, nil
}
