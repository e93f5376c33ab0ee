package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://api.github.com"
	userAgent        = "shadcn-mcp"
	requestTimeout   = 30 * time.Second
	maxErrorBodySize = 4096
)

var (
	defaultHTTPClient = newHTTPClient()
	// GitHub allows 60 unauthenticated requests per hour; pace bursts.
	defaultLimiter = rate.NewLimiter(rate.Every(500*time.Millisecond), 10)
)

func newHTTPClient() *http.Client {
	c := cleanhttp.DefaultPooledClient()
	c.Timeout = requestTimeout
	return c
}

// Option configures a GitHubClient.
type Option func(*GitHubClient)

// WithToken authenticates requests with a GitHub personal access token.
func WithToken(token string) Option {
	return func(c *GitHubClient) { c.token = strings.TrimSpace(token) }
}

// WithBaseURL points the client at a different GitHub API root.
func WithBaseURL(baseURL string) Option {
	return func(c *GitHubClient) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient replaces the shared pooled HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *GitHubClient) { c.httpClient = hc }
}

// WithLimiter replaces the shared request limiter; nil disables pacing.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *GitHubClient) { c.limiter = l }
}

// WithCache replaces the shared listing cache; nil disables caching.
func WithCache(cache *ListingCache) Option {
	return func(c *GitHubClient) { c.cache = cache }
}

// GitHubClient lists components from a registry directory via the GitHub contents API.
type GitHubClient struct {
	source     Source
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *ListingCache
}

// NewGitHubClient returns a client for source using the shared HTTP client,
// limiter, and listing cache unless overridden.
func NewGitHubClient(source Source, opts ...Option) *GitHubClient {
	c := &GitHubClient{
		source:     source,
		baseURL:    defaultBaseURL,
		httpClient: defaultHTTPClient,
		limiter:    defaultLimiter,
		cache:      sharedCache,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Paths returns a copy of the source's named registry paths.
func (c *GitHubClient) Paths() map[string]string {
	return maps.Clone(c.source.Paths)
}

// AvailableComponents returns component names in the registry's component directory.
func (c *GitHubClient) AvailableComponents(ctx context.Context) ([]string, error) {
	root, ok := DefaultPath(c.source.Paths)
	if !ok {
		return nil, fmt.Errorf("%s/%s: no registry path configured", c.source.Owner, c.source.Repo)
	}
	dir := path.Join(root, c.source.ComponentDir)

	key := cacheKey(c.source, dir)
	if c.cache != nil {
		if names, ok := c.cache.get(key); ok {
			return names, nil
		}
	}

	entries, err := c.listDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}
	names := componentNames(entries, c.source.Extensions)

	if c.cache != nil {
		c.cache.put(key, names)
	}
	return names, nil
}

type contentEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// StatusError reports a non-2xx response from the GitHub API.
type StatusError struct {
	StatusCode  int
	Path        string
	Message     string
	RateLimited bool
}

func (e *StatusError) Error() string {
	if e.RateLimited {
		return fmt.Sprintf("GitHub API rate limit exceeded listing %s; provide a token via --github-api-key or GITHUB_PERSONAL_ACCESS_TOKEN", e.Path)
	}
	if e.Message != "" {
		return fmt.Sprintf("GitHub API %d listing %s: %s", e.StatusCode, e.Path, e.Message)
	}
	return fmt.Sprintf("GitHub API %d listing %s", e.StatusCode, e.Path)
}

func (c *GitHubClient) listDirectory(ctx context.Context, dir string) ([]contentEntry, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for rate limiter: %w", err)
		}
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, c.source.Owner, c.source.Repo, dir)
	if c.source.Ref != "" {
		endpoint += "?" + url.Values{"ref": {c.source.Ref}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp, dir)
	}

	var entries []contentEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode listing for %s: %w", dir, err)
	}
	return entries, nil
}

func statusError(resp *http.Response, dir string) *StatusError {
	e := &StatusError{StatusCode: resp.StatusCode, Path: dir}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		e.Message = payload.Message
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		e.RateLimited = true
	case http.StatusForbidden:
		e.RateLimited = resp.Header.Get("X-RateLimit-Remaining") == "0" ||
			strings.Contains(strings.ToLower(e.Message), "rate limit")
	}
	return e
}

// componentNames maps directory entries to component names. Files keep their
// base name when the extension is recognized; directories are taken as-is.
func componentNames(entries []contentEntry, extensions []string) []string {
	seen := make(map[string]bool, len(entries))
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name
		if name == "" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		switch entry.Type {
		case "file":
			ext := path.Ext(name)
			if !slices.Contains(extensions, ext) {
				continue
			}
			name = strings.TrimSuffix(name, ext)
		case "dir":
		default:
			continue
		}
		if name == "index" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
