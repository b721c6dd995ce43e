package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// PostsAPI defines the remote operations on the posts collection.
// This interface is implemented by *Client and can be used for testing.
type PostsAPI interface {
	ListPosts(ctx context.Context) ([]Post, error)
	CreatePost(ctx context.Context, draft NewPost) (Post, error)
	UpdatePost(ctx context.Context, post Post) (Post, error)
	DeletePost(ctx context.Context, id int64) error
}

// Ensure Client implements PostsAPI at compile time.
var _ PostsAPI = (*Client)(nil)

// Client talks to a JSON REST service exposing a /posts collection.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    zerolog.Logger
}

// Options tune a Client. The zero value is usable.
type Options struct {
	Timeout   time.Duration // zero uses defaultTimeout
	RateLimit float64       // requests per second; zero or negative disables pacing
	RateBurst int
	Logger    zerolog.Logger
}

const (
	DefaultBaseURL   = "https://jsonplaceholder.typicode.com"
	defaultUserAgent = "postdeck/0.1"
	defaultTimeout   = 10 * time.Second
	postsPath        = "posts"
	requestIDHeader  = "X-Request-ID"
)

// NewClient builds a Client rooted at baseURL.
func NewClient(baseURL string, opts Options) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		limiter:   limiter,
		userAgent: defaultUserAgent,
		logger:    opts.Logger.With().Str("component", "remote").Logger(),
	}, nil
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL.String()
}

// ListPosts retrieves the full collection in server order.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Post
	if err := c.do(ctx, http.MethodGet, c.collectionURL(), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreatePost submits a new post and returns the record the server stored.
func (c *Client) CreatePost(ctx context.Context, draft NewPost) (Post, error) {
	if c == nil {
		return Post{}, fmt.Errorf("client is nil")
	}
	var payload Post
	if err := c.do(ctx, http.MethodPost, c.collectionURL(), draft, &payload); err != nil {
		return Post{}, err
	}
	return payload, nil
}

// UpdatePost replaces the full record identified by post.ID.
func (c *Client) UpdatePost(ctx context.Context, post Post) (Post, error) {
	if c == nil {
		return Post{}, fmt.Errorf("client is nil")
	}
	if post.ID <= 0 {
		return Post{}, fmt.Errorf("post id required")
	}
	var payload Post
	if err := c.do(ctx, http.MethodPut, c.itemURL(post.ID), post, &payload); err != nil {
		return Post{}, err
	}
	return payload, nil
}

// DeletePost removes the post with the given id. The response body is ignored.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return fmt.Errorf("post id required")
	}
	return c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) collectionURL() *url.URL {
	return c.baseURL.JoinPath(postsPath)
}

func (c *Client) itemURL(id int64) *url.URL {
	return c.baseURL.JoinPath(postsPath, strconv.FormatInt(id, 10))
}

func (c *Client) do(ctx context.Context, method string, reqURL *url.URL, body, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	path := reqURL.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	started := time.Now()
	log := c.logger.With().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Logger()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Dur("duration", time.Since(started)).Msg("request failed")
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		log.Warn().Int("status", resp.StatusCode).Dur("duration", time.Since(started)).Msg("request rejected")
		return fmt.Errorf("api %s %s returned status %d", method, path, resp.StatusCode)
	}
	log.Debug().Int("status", resp.StatusCode).Dur("duration", time.Since(started)).Msg("request completed")

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
