package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/blog-content-api/internal/config"
	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
	"github.com/blog-content-api/internal/service"
	"github.com/blog-content-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ContentHandler handles post, category and search endpoints
type ContentHandler struct {
	services  *service.Services
	validator *validation.Validator
	timeout   time.Duration
	log       zerolog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		services:  services,
		validator: validation.NewValidator(),
		timeout:   cfg.Server.RequestTimeout,
		log:       log.With().Str("handler", "content").Logger(),
	}
}

// homeSection is one independently fetched part of the home page
type homeSection struct {
	Data      interface{} `json:"data"`
	Message   string      `json:"message,omitempty"`
	Error     string      `json:"error,omitempty"`
	Retryable bool        `json:"retryable,omitempty"`
}

// Home handles GET /v1/home?source=...
// Featured posts, the latest page and the category list are fetched
// concurrently; a failing section does not fail the others.
func (h *ContentHandler) Home(c *gin.Context) {
	source, errs := h.validator.ParseSource(c.Query("source"))
	if len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	opts := service.QueryOptions{Source: source}
	var featured, latest, categories homeSection

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := h.services.Content.ListPosts(gctx, 1, models.ListOptions{Featured: true}, opts)
		return fill(&featured, page.Posts, len(page.Posts) == 0, err)
	})
	g.Go(func() error {
		page, err := h.services.Content.ListPosts(gctx, 1, models.ListOptions{}, opts)
		return fill(&latest, page.Posts, len(page.Posts) == 0, err)
	})
	g.Go(func() error {
		cats, err := h.services.Content.ListCategories(gctx, opts)
		return fill(&categories, cats, len(cats) == 0, err)
	})

	if err := g.Wait(); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"featured":   featured,
		"latest":     latest,
		"categories": categories,
	})
}

// fill records a fetch failure in the section and returns any other error
func fill(s *homeSection, data interface{}, empty bool, err error) error {
	var fe *service.FetchError
	switch {
	case errors.As(err, &fe):
		s.Error = fe.Error()
		s.Retryable = true
		return nil
	case err != nil:
		return err
	}
	s.Data = data
	if empty {
		s.Message = emptyMessage
	}
	return nil
}

// ListPosts handles GET /v1/posts?page=...&featured=...&source=...
func (h *ContentHandler) ListPosts(c *gin.Context) {
	var errs []validation.ValidationError
	page, e := h.validator.ParsePage(c.Query("page"))
	errs = append(errs, e...)
	featured, e := h.validator.ParseBool("featured", c.Query("featured"))
	errs = append(errs, e...)
	source, e := h.validator.ParseSource(c.Query("source"))
	errs = append(errs, e...)
	if len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	result, err := h.services.Content.ListPosts(ctx, page, models.ListOptions{Featured: featured}, service.QueryOptions{Source: source})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newPageResponse(result))
}

// GetPost handles GET /v1/posts/:slug?source=...
func (h *ContentHandler) GetPost(c *gin.Context) {
	slug := c.Param("slug")
	errs := h.validator.ValidateSlug("slug", slug)
	source, e := h.validator.ParseSource(c.Query("source"))
	errs = append(errs, e...)
	if len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	post, err := h.services.Content.GetPostBySlug(ctx, slug, service.QueryOptions{Source: source})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreateComment handles POST /v1/posts/:slug/comments
// Comments are declared but there is no write path.
func (h *ContentHandler) CreateComment(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "comments are not supported"})
}

// ListCategories handles GET /v1/categories?source=...
func (h *ContentHandler) ListCategories(c *gin.Context) {
	source, errs := h.validator.ParseSource(c.Query("source"))
	if len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	cats, err := h.services.Content.ListCategories(ctx, service.QueryOptions{Source: source})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}

	body := gin.H{"categories": cats}
	if len(cats) == 0 {
		body["message"] = emptyMessage
	}
	c.JSON(http.StatusOK, body)
}

// ListCategoryPosts handles GET /v1/categories/:slug/posts?page=...&source=...
func (h *ContentHandler) ListCategoryPosts(c *gin.Context) {
	slug := c.Param("slug")
	errs := h.validator.ValidateSlug("slug", slug)
	page, e := h.validator.ParsePage(c.Query("page"))
	errs = append(errs, e...)
	source, e := h.validator.ParseSource(c.Query("source"))
	errs = append(errs, e...)
	if len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	result, err := h.services.Content.ListPostsByCategory(ctx, slug, page, service.QueryOptions{Source: source})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newPageResponse(result))
}

// Search handles GET /v1/search?q=...&page=...&source=...
func (h *ContentHandler) Search(c *gin.Context) {
	q := c.Query("q")
	errs := h.validator.ValidateSearchQuery(q)
	page, e := h.validator.ParsePage(c.Query("page"))
	errs = append(errs, e...)
	source, e := h.validator.ParseSource(c.Query("source"))
	errs = append(errs, e...)
	if len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	result, err := h.services.Content.SearchPosts(ctx, q, page, service.QueryOptions{Source: source})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Debug().Str("q", q).Int("results", len(result.Posts)).Str("source", string(sourceOrDefault(source, h.services))).Msg("Search served")
	c.JSON(http.StatusOK, gin.H{
		"query":   q,
		"results": newPageResponse(result),
	})
}

func sourceOrDefault(kind repository.SourceKind, services *service.Services) repository.SourceKind {
	if kind == repository.SourceDefault {
		return services.Content.DefaultSource()
	}
	return kind
}
