package icons

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/zzaoclub/imgx/pkg/errors"
	"github.com/zzaoclub/imgx/pkg/httputil"
	"github.com/zzaoclub/imgx/pkg/observability"
)

const (
	// DefaultBaseURL is the public icon API serving SVG glyphs for
	// references like "twemoji:rocket".
	DefaultBaseURL = "https://api.iconify.design"

	httpTimeout = 10 * time.Second
)

// Resolver resolves an icon reference to an inline SVG data URL.
// Implementations return an error when the icon cannot be resolved;
// callers fall back to rendering the reference as plain text.
type Resolver interface {
	Resolve(ctx context.Context, ref string, sizePx int) (string, error)
}

// Client fetches icon glyphs from a remote icon API.
//
// Responses are cached on disk, retried on transient failures, and
// memoized in process so concurrent renders of the same icon share a
// single lookup. The zero value is not usable; construct with [NewClient].
type Client struct {
	http    *http.Client
	cache   *httputil.Cache
	baseURL string
	logger  *log.Logger

	mu   sync.Mutex
	memo map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the icon API base URL. Used by tests and
// deployments that proxy the icon API.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithLogger sets the logger used for lookup failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a Client backed by the given response cache.
// Pass a cache with a long TTL; glyphs are immutable in practice.
func NewClient(cache *httputil.Cache, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache.Namespace("icon:"),
		baseURL: DefaultBaseURL,
		logger:  log.Default(),
		memo:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve fetches the glyph for ref (e.g. "twemoji:rocket") at the given
// pixel size and returns it as a base64 SVG data URL.
//
// Returns an ICON_NOT_FOUND error for unknown references and a
// NETWORK_ERROR for lookups that exhaust their retries.
func (c *Client) Resolve(ctx context.Context, ref string, sizePx int) (string, error) {
	set, name, ok := SplitRef(ref)
	if !ok {
		return "", errors.New(errors.ErrCodeIconNotFound, "malformed icon reference %q", ref)
	}
	key := fmt.Sprintf("%s:%s:%d", set, name, sizePx)

	c.mu.Lock()
	if url, hit := c.memo[key]; hit {
		c.mu.Unlock()
		return url, nil
	}
	c.mu.Unlock()

	var svg string
	if hit, _ := c.cache.Get(key, &svg); !hit {
		if err := httputil.RetryWithBackoff(ctx, func() error {
			return c.fetch(ctx, set, name, sizePx, &svg)
		}); err != nil {
			c.logger.Debug("icon lookup failed", "ref", ref, "error", err)
			return "", err
		}
		_ = c.cache.Set(key, svg)
	}

	url := DataURL(svg)
	c.mu.Lock()
	c.memo[key] = url
	c.mu.Unlock()
	return url, nil
}

func (c *Client) fetch(ctx context.Context, set, name string, sizePx int, svg *string) error {
	url := fmt.Sprintf("%s/%s/%s.svg?height=%d", c.baseURL, set, name, sizePx)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	observability.HTTP().OnRequest(ctx, http.MethodGet, req.URL.Host, req.URL.Path)
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, req.URL.Host, req.URL.Path, err)
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch icon %s:%s", set, name)}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode, set, name); err != nil {
		return err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read icon %s:%s", set, name)}
	}
	// The API answers 200 with the literal body "404" for unknown icons.
	if body := strings.TrimSpace(string(data)); body == "404" || !strings.Contains(body, "<svg") {
		return errors.New(errors.ErrCodeIconNotFound, "icon %s:%s not found", set, name)
	}

	*svg = string(data)
	return nil
}

func checkStatus(code int, set, name string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeIconNotFound, "icon %s:%s not found", set, name)
	case code >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "icon API status %d", code)}
	default:
		return errors.New(errors.ErrCodeNetwork, "icon API status %d", code)
	}
}

// DataURL encodes an SVG document as a base64 data URL for inline embedding.
func DataURL(svg string) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// SplitRef splits an icon reference "set:name" into its parts.
// Returns ok=false when ref has no colon or an empty side.
func SplitRef(ref string) (set, name string, ok bool) {
	set, name, found := strings.Cut(ref, ":")
	if !found || set == "" || name == "" {
		return "", "", false
	}
	return set, name, true
}
