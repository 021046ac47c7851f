// Package wordpress adapts the WordPress REST API (wp/v2) to the blog's
// content model.
//
// Every operation makes a single attempt. On transport failure or a non-2xx
// response the cause is logged and the call returns an empty (or nil) value
// together with an error wrapping models.ErrSourceUnavailable.
package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/blog-content-api/internal/models"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is used when no API URL is configured
	DefaultBaseURL = "https://saad.catchitagency.com/wp-json"
	// DefaultPerPage is the page size requested for post listings
	DefaultPerPage = 10
	// DefaultTimeout bounds a single HTTP round trip
	DefaultTimeout = 15 * time.Second

	categoriesPerPage = 100

	headerTotal      = "X-WP-Total"
	headerTotalPages = "X-WP-TotalPages"
)

// Config configures a Client
type Config struct {
	BaseURL           string
	PerPage           int
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables the limiter
	UserAgent         string
	SanitizeHTML      bool
}

// Client is the remote content source
type Client struct {
	httpClient *http.Client
	apiBase    string
	perPage    int
	userAgent  string
	limiter    *rate.Limiter
	sanitizer  *bluemonday.Policy
	log        zerolog.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a Client for the API rooted at cfg.BaseURL (the
// wp-json root, without /wp/v2).
func NewClient(cfg Config, log zerolog.Logger, opts ...Option) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiBase:    base + "/wp/v2",
		perPage:    perPage,
		userAgent:  cfg.UserAgent,
		log:        log.With().Str("component", "wordpress").Logger(),
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	if cfg.SanitizeHTML {
		c.sanitizer = bluemonday.UGCPolicy()
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// PerPage returns the page size requested from the API
func (c *Client) PerPage() int {
	return c.perPage
}

// ListPosts fetches one page of posts, newest first.
func (c *Client) ListPosts(ctx context.Context, page int, opts models.ListOptions) (models.PostPage, error) {
	q := c.pageQuery(page)
	if opts.Featured {
		// Requires a custom ACF query filter on the WordPress side.
		q.Set("acf_filter[featured]", "true")
	}

	result, err := c.fetchPosts(ctx, q, page)
	if err != nil {
		c.log.Error().Err(err).Int("page", page).Bool("featured", opts.Featured).Msg("Failed to fetch posts")
		return models.EmptyPage(page, c.perPage), unavailable("list posts", err)
	}
	return result, nil
}

// GetPostBySlug returns the post with slug, or nil if there is none.
func (c *Client) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	q := url.Values{}
	q.Set("_embed", "")
	q.Set("slug", slug)

	var raw []wpPost
	if _, err := c.get(ctx, "/posts", q, &raw); err != nil {
		c.log.Error().Err(err).Str("slug", slug).Msg("Failed to fetch post")
		return nil, unavailable("get post", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	post := c.transformPost(raw[0])
	return &post, nil
}

// ListPostsByCategory resolves the category slug to its upstream id, then
// lists that category's posts. An unknown slug yields an empty page.
func (c *Client) ListPostsByCategory(ctx context.Context, categorySlug string, page int) (models.PostPage, error) {
	log := c.log.With().Str("category", categorySlug).Int("page", page).Logger()

	cq := url.Values{}
	cq.Set("slug", categorySlug)

	var cats []wpCategory
	if _, err := c.get(ctx, "/categories", cq, &cats); err != nil {
		log.Error().Err(err).Msg("Failed to resolve category")
		return models.EmptyPage(page, c.perPage), unavailable("resolve category", err)
	}
	if len(cats) == 0 {
		log.Debug().Msg("Category not found upstream")
		return models.EmptyPage(page, c.perPage), nil
	}

	q := c.pageQuery(page)
	q.Set("categories", strconv.FormatInt(cats[0].ID, 10))

	result, err := c.fetchPosts(ctx, q, page)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch category posts")
		return models.EmptyPage(page, c.perPage), unavailable("list category posts", err)
	}
	return result, nil
}

// SearchPosts runs the API's full-text search
func (c *Client) SearchPosts(ctx context.Context, query string, page int) (models.PostPage, error) {
	q := c.pageQuery(page)
	q.Set("search", query)

	result, err := c.fetchPosts(ctx, q, page)
	if err != nil {
		c.log.Error().Err(err).Str("query", query).Msg("Failed to search posts")
		return models.EmptyPage(page, c.perPage), unavailable("search posts", err)
	}
	return result, nil
}

// ListCategories returns up to 100 categories
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(categoriesPerPage))

	var raw []wpCategory
	if _, err := c.get(ctx, "/categories", q, &raw); err != nil {
		c.log.Error().Err(err).Msg("Failed to fetch categories")
		return []models.Category{}, unavailable("list categories", err)
	}

	categories := make([]models.Category, 0, len(raw))
	for _, rc := range raw {
		categories = append(categories, transformCategory(rc))
	}
	return categories, nil
}

func (c *Client) pageQuery(page int) url.Values {
	q := url.Values{}
	q.Set("_embed", "")
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(c.perPage))
	return q
}

// fetchPosts lists posts and reads the pagination headers. Without the
// headers TotalPages stays 0 and HasMore is inferred from a full page.
func (c *Client) fetchPosts(ctx context.Context, q url.Values, page int) (models.PostPage, error) {
	var raw []wpPost
	header, err := c.get(ctx, "/posts", q, &raw)
	if err != nil {
		return models.PostPage{}, err
	}

	result := models.EmptyPage(page, c.perPage)
	for _, p := range raw {
		result.Posts = append(result.Posts, c.transformPost(p))
	}

	total, hasTotal := intHeader(header, headerTotal)
	totalPages, hasPages := intHeader(header, headerTotalPages)
	if hasTotal {
		result.Total = total
	}
	if hasPages {
		result.TotalPages = totalPages
		result.HasMore = page < totalPages
	} else {
		result.HasMore = len(raw) == c.perPage
	}

	return result, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, target interface{}) (http.Header, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	u := c.apiBase + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.Header, nil
}

func intHeader(h http.Header, key string) (int, bool) {
	v := h.Get(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, models.ErrSourceUnavailable, err)
}
