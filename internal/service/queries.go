package service

import (
	"context"

	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
	"github.com/rs/zerolog"
)

// PostsParams drives a post listing query
type PostsParams struct {
	Page     int
	Featured bool
	Source   repository.SourceKind
}

// PostParams drives a single post query
type PostParams struct {
	Slug   string
	Source repository.SourceKind
}

// CategoryPostsParams drives a category listing query
type CategoryPostsParams struct {
	Slug   string
	Page   int
	Source repository.SourceKind
}

// CategoriesParams drives a category list query
type CategoriesParams struct {
	Source repository.SourceKind
}

// SearchParams drives a search query
type SearchParams struct {
	Query  string
	Page   int
	Source repository.SourceKind
}

// NewPostsQuery binds a Query to ContentService.ListPosts
func NewPostsQuery(content ContentService, log zerolog.Logger) *Query[PostsParams, models.PostPage] {
	return NewQuery(func(ctx context.Context, p PostsParams) (models.PostPage, error) {
		return content.ListPosts(ctx, p.Page, models.ListOptions{Featured: p.Featured}, QueryOptions{Source: p.Source})
	}, log)
}

// NewPostQuery binds a Query to ContentService.GetPostBySlug
func NewPostQuery(content ContentService, log zerolog.Logger) *Query[PostParams, *models.Post] {
	return NewQuery(func(ctx context.Context, p PostParams) (*models.Post, error) {
		return content.GetPostBySlug(ctx, p.Slug, QueryOptions{Source: p.Source})
	}, log)
}

// NewCategoryPostsQuery binds a Query to ContentService.ListPostsByCategory
func NewCategoryPostsQuery(content ContentService, log zerolog.Logger) *Query[CategoryPostsParams, models.PostPage] {
	return NewQuery(func(ctx context.Context, p CategoryPostsParams) (models.PostPage, error) {
		return content.ListPostsByCategory(ctx, p.Slug, p.Page, QueryOptions{Source: p.Source})
	}, log)
}

// NewCategoriesQuery binds a Query to ContentService.ListCategories
func NewCategoriesQuery(content ContentService, log zerolog.Logger) *Query[CategoriesParams, []models.Category] {
	return NewQuery(func(ctx context.Context, p CategoriesParams) ([]models.Category, error) {
		return content.ListCategories(ctx, QueryOptions{Source: p.Source})
	}, log)
}

func searchFetcher(content ContentService) Fetcher[SearchParams, models.PostPage] {
	return func(ctx context.Context, p SearchParams) (models.PostPage, error) {
		return content.SearchPosts(ctx, p.Query, p.Page, QueryOptions{Source: p.Source})
	}
}
