package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Source fetches files of the static metadata tree by relative path.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
	// URI describes where name is read from, for logs and errors.
	URI(name string) string
}

// HTTPSource reads the metadata tree over HTTP GET.
type HTTPSource struct {
	base       *url.URL
	httpClient *http.Client
}

var _ Source = (*HTTPSource)(nil)

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if timeout > 0 {
			s.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewHTTPSource creates a source rooted at baseURL.
func NewHTTPSource(baseURL string, opts ...HTTPOption) (*HTTPSource, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("source base url required")
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse source url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("source url %q: unsupported scheme %q", baseURL, base.Scheme)
	}
	source := &HTTPSource{
		base:       base,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(source)
	}
	return source, nil
}

// URI returns the absolute URL of name.
func (s *HTTPSource) URI(name string) string {
	return s.base.JoinPath(strings.Split(name, "/")...).String()
}

// Fetch performs a GET and returns the body of a 2xx response.
func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	endpoint := s.URI(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	requestStart := time.Now()
	resp, err := s.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URI: endpoint, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", endpoint, err)
	}
	return body, nil
}

// DirSource reads the metadata tree from a local directory.
type DirSource struct {
	root string
}

var _ Source = (*DirSource)(nil)

// NewDirSource creates a source rooted at dir.
func NewDirSource(dir string) (*DirSource, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("source directory required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %q is not a directory", dir)
	}
	return &DirSource{root: dir}, nil
}

// URI returns the file path of name.
func (s *DirSource) URI(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Fetch reads name relative to the root. Paths escaping the root are rejected.
func (s *DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel := filepath.FromSlash(name)
	if !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("path %q escapes source directory", name)
	}
	data, err := os.ReadFile(filepath.Join(s.root, rel))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// NewSource picks an HTTPSource for http(s) locations and a DirSource otherwise.
func NewSource(location string, timeout time.Duration) (Source, error) {
	lower := strings.ToLower(strings.TrimSpace(location))
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPSource(location, WithTimeout(timeout))
	}
	return NewDirSource(location)
}
