package repository

import (
	"context"

	"github.com/blog-content-api/internal/fixture"
	"github.com/blog-content-api/internal/models"
)

// DefaultFixturePageSize is the page size for fixture listings
const DefaultFixturePageSize = 6

// fixtureRepo serves the in-memory collection. It never blocks and never fails.
type fixtureRepo struct {
	col      *fixture.Collection
	pageSize int
}

// NewFixtureRepo creates a ContentSource over col
func NewFixtureRepo(col *fixture.Collection, pageSize int) ContentSource {
	if pageSize <= 0 {
		pageSize = DefaultFixturePageSize
	}
	return &fixtureRepo{col: col, pageSize: pageSize}
}

// ListPosts pages through the collection, optionally featured posts only
func (r *fixtureRepo) ListPosts(ctx context.Context, page int, opts models.ListOptions) (models.PostPage, error) {
	posts := r.col.Posts()
	if opts.Featured {
		posts = r.col.FilterFeatured()
	}
	return models.Paginate(posts, page, r.pageSize), nil
}

// GetPostBySlug returns the post with slug or nil
func (r *fixtureRepo) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	post, ok := r.col.FindBySlug(slug)
	if !ok {
		return nil, nil
	}
	return &post, nil
}

// ListPostsByCategory pages through the posts filed under categorySlug
func (r *fixtureRepo) ListPostsByCategory(ctx context.Context, categorySlug string, page int) (models.PostPage, error) {
	return models.Paginate(r.col.FilterByCategory(categorySlug), page, r.pageSize), nil
}

// SearchPosts pages through substring matches
func (r *fixtureRepo) SearchPosts(ctx context.Context, query string, page int) (models.PostPage, error) {
	return models.Paginate(r.col.Search(query), page, r.pageSize), nil
}

// ListCategories returns the declared categories
func (r *fixtureRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	return r.col.Categories(), nil
}
