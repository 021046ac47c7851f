package service

import (
	"context"
	"errors"
	"strings"

	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
	"github.com/rs/zerolog"
)

// contentService is the concrete implementation of ContentService
type contentService struct {
	sources       repository.Sources
	defaultSource repository.SourceKind
	log           zerolog.Logger
}

func newContentService(sources repository.Sources, cfg ContentConfig, log zerolog.Logger) *contentService {
	def := cfg.DefaultSource
	if def == repository.SourceDefault {
		def = repository.SourceRemote
	}

	log.Info().Str("default_source", string(def)).Msg("Content service initialized")

	return &contentService{
		sources:       sources,
		defaultSource: def,
		log:           log.With().Str("service", "content").Logger(),
	}
}

// NewContentService creates a ContentService over sources
func NewContentService(sources repository.Sources, cfg ContentConfig, log zerolog.Logger) ContentService {
	return newContentService(sources, cfg, log)
}

func (s *contentService) DefaultSource() repository.SourceKind {
	return s.defaultSource
}

func (s *contentService) source(opts QueryOptions) (repository.ContentSource, repository.SourceKind, error) {
	kind := opts.Source
	if kind == repository.SourceDefault {
		kind = s.defaultSource
	}
	src, err := s.sources.Get(kind)
	return src, kind, err
}

func (s *contentService) fetchFailed(resource string, kind repository.SourceKind, err error) error {
	s.log.Debug().Err(err).Str("resource", resource).Str("source", string(kind)).Msg("Fetch failed")
	return &FetchError{Resource: resource, Err: err}
}

func (s *contentService) ListPosts(ctx context.Context, page int, list models.ListOptions, opts QueryOptions) (models.PostPage, error) {
	src, kind, err := s.source(opts)
	if err != nil {
		return models.PostPage{}, err
	}
	result, err := src.ListPosts(ctx, page, list)
	if err != nil {
		return result, s.fetchFailed("posts", kind, err)
	}
	return result, nil
}

func (s *contentService) GetPostBySlug(ctx context.Context, slug string, opts QueryOptions) (*models.Post, error) {
	src, kind, err := s.source(opts)
	if err != nil {
		return nil, err
	}
	post, err := src.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, s.fetchFailed("post", kind, err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *contentService) ListPostsByCategory(ctx context.Context, categorySlug string, page int, opts QueryOptions) (models.PostPage, error) {
	src, kind, err := s.source(opts)
	if err != nil {
		return models.PostPage{}, err
	}
	result, err := src.ListPostsByCategory(ctx, categorySlug, page)
	if err != nil {
		return result, s.fetchFailed("category posts", kind, err)
	}
	return result, nil
}

// SearchPosts returns an empty page for blank queries without calling a
// source. Other queries reach the source unchanged.
func (s *contentService) SearchPosts(ctx context.Context, query string, page int, opts QueryOptions) (models.PostPage, error) {
	src, kind, err := s.source(opts)
	if err != nil {
		return models.PostPage{}, err
	}
	if strings.TrimSpace(query) == "" {
		return models.EmptyPage(page, 0), nil
	}
	result, err := src.SearchPosts(ctx, query, page)
	if err != nil {
		return result, s.fetchFailed("search results", kind, err)
	}
	return result, nil
}

func (s *contentService) ListCategories(ctx context.Context, opts QueryOptions) ([]models.Category, error) {
	src, kind, err := s.source(opts)
	if err != nil {
		return nil, err
	}
	cats, err := src.ListCategories(ctx)
	if err != nil {
		return cats, s.fetchFailed("categories", kind, err)
	}
	return cats, nil
}

// IsNotFound reports whether err means the requested post does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound)
}
