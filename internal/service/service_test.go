package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/blog-content-api/internal/fixture"
	"github.com/blog-content-api/internal/mocks"
	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
	"github.com/blog-content-api/internal/service"
	"github.com/rs/zerolog"
)

func newContentService(t *testing.T, remote *mocks.MockContentSource, def repository.SourceKind) service.ContentService {
	t.Helper()
	sources := repository.Sources{
		Fixture: repository.NewFixtureRepo(fixture.Default(), repository.DefaultFixturePageSize),
		Remote:  remote,
	}
	return service.NewContentService(sources, service.ContentConfig{DefaultSource: def}, zerolog.Nop())
}

func remotePost(slug string) models.Post {
	return models.Post{ID: slug, Slug: slug, Title: "Remote " + slug, ReadingTime: 1}
}

func TestContentService_DefaultSource(t *testing.T) {
	remote := mocks.NewMockContentSource(remotePost("remote-one"))

	svc := newContentService(t, remote, repository.SourceFixture)
	page, err := svc.ListPosts(context.Background(), 1, models.ListOptions{}, service.QueryOptions{})
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(page.Posts) != 5 {
		t.Errorf("Expected 5 fixture posts, got %d", len(page.Posts))
	}
	if remote.Calls("ListPosts") != 0 {
		t.Error("Remote source should not be called when fixture is the default")
	}

	// per-call override
	page, err = svc.ListPosts(context.Background(), 1, models.ListOptions{}, service.QueryOptions{Source: repository.SourceRemote})
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(page.Posts) != 1 || page.Posts[0].Slug != "remote-one" {
		t.Errorf("Expected remote post, got %+v", page.Posts)
	}
}

func TestContentService_UnsetDefaultIsRemote(t *testing.T) {
	svc := newContentService(t, mocks.NewMockContentSource(), repository.SourceDefault)
	if svc.DefaultSource() != repository.SourceRemote {
		t.Errorf("Expected remote default, got %q", svc.DefaultSource())
	}
}

func TestContentService_FixtureEndToEnd(t *testing.T) {
	svc := newContentService(t, mocks.NewMockContentSource(), repository.SourceFixture)
	ctx := context.Background()

	page, err := svc.ListPosts(ctx, 1, models.ListOptions{}, service.QueryOptions{})
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(page.Posts) != 5 || page.TotalPages != 1 || page.HasMore {
		t.Errorf("Expected 5 posts on a single page, got %d posts, %d pages, has_more=%v",
			len(page.Posts), page.TotalPages, page.HasMore)
	}

	featured, err := svc.ListPosts(ctx, 1, models.ListOptions{Featured: true}, service.QueryOptions{})
	if err != nil {
		t.Fatalf("ListPosts featured failed: %v", err)
	}
	if len(featured.Posts) != 2 {
		t.Fatalf("Expected 2 featured posts, got %d", len(featured.Posts))
	}
	if featured.Posts[0].Slug != "future-of-ai-web-development" || featured.Posts[1].Slug != "top-tech-gadgets-2025" {
		t.Errorf("Featured posts out of order: %s, %s", featured.Posts[0].Slug, featured.Posts[1].Slug)
	}

	beyond, err := svc.ListPosts(ctx, 2, models.ListOptions{}, service.QueryOptions{})
	if err != nil {
		t.Fatalf("Page beyond range should not error: %v", err)
	}
	if len(beyond.Posts) != 0 {
		t.Errorf("Expected empty page beyond range, got %d posts", len(beyond.Posts))
	}

	results, err := svc.SearchPosts(ctx, "typescript", 1, service.QueryOptions{})
	if err != nil {
		t.Fatalf("SearchPosts failed: %v", err)
	}
	if len(results.Posts) != 1 || results.Posts[0].Slug != "modern-react-typescript-best-practices" {
		t.Errorf("Expected only the TypeScript post, got %+v", results.Posts)
	}

	cats, err := svc.ListPostsByCategory(ctx, "gadgets", 1, service.QueryOptions{})
	if err != nil {
		t.Fatalf("ListPostsByCategory failed: %v", err)
	}
	for _, p := range cats.Posts {
		if !p.HasCategory("gadgets") {
			t.Errorf("Post %s is not in gadgets", p.Slug)
		}
	}
}

func TestContentService_FetchErrors(t *testing.T) {
	remote := mocks.NewMockContentSource()
	remote.Err = fmt.Errorf("wordpress: %w", models.ErrSourceUnavailable)
	svc := newContentService(t, remote, repository.SourceRemote)
	ctx := context.Background()
	opts := service.QueryOptions{}

	tests := []struct {
		name string
		call func() error
		want string
	}{
		{"posts", func() error {
			_, err := svc.ListPosts(ctx, 1, models.ListOptions{}, opts)
			return err
		}, "failed to fetch posts"},
		{"post", func() error {
			_, err := svc.GetPostBySlug(ctx, "any", opts)
			return err
		}, "failed to fetch post"},
		{"category", func() error {
			_, err := svc.ListPostsByCategory(ctx, "ai", 1, opts)
			return err
		}, "failed to fetch category posts"},
		{"search", func() error {
			_, err := svc.SearchPosts(ctx, "ai", 1, opts)
			return err
		}, "failed to fetch search results"},
		{"categories", func() error {
			_, err := svc.ListCategories(ctx, opts)
			return err
		}, "failed to fetch categories"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("Expected error")
			}
			if err.Error() != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, err.Error())
			}
			var fe *service.FetchError
			if !errors.As(err, &fe) {
				t.Errorf("Expected *FetchError, got %T", err)
			}
			if !errors.Is(err, models.ErrSourceUnavailable) {
				t.Error("FetchError should unwrap to the source error")
			}
			if !service.IsRetryable(err) {
				t.Error("Fetch failures should be retryable")
			}
			if service.IsNotFound(err) {
				t.Error("Fetch failure must not look like not-found")
			}
		})
	}
}

func TestContentService_NotFound(t *testing.T) {
	svc := newContentService(t, mocks.NewMockContentSource(), repository.SourceFixture)

	_, err := svc.GetPostBySlug(context.Background(), "no-such-post", service.QueryOptions{})
	if !errors.Is(err, service.ErrPostNotFound) {
		t.Fatalf("Expected ErrPostNotFound, got %v", err)
	}
	if service.IsRetryable(err) {
		t.Error("Not found should not be retryable")
	}

	post, err := svc.GetPostBySlug(context.Background(), "rise-of-edge-computing", service.QueryOptions{})
	if err != nil {
		t.Fatalf("GetPostBySlug failed: %v", err)
	}
	if post.Slug != "rise-of-edge-computing" {
		t.Errorf("Expected rise-of-edge-computing, got %s", post.Slug)
	}
}

func TestContentService_BlankSearchSkipsSource(t *testing.T) {
	remote := mocks.NewMockContentSource(remotePost("a"))
	svc := newContentService(t, remote, repository.SourceRemote)

	for _, q := range []string{"", "   ", "\t\n"} {
		page, err := svc.SearchPosts(context.Background(), q, 1, service.QueryOptions{})
		if err != nil {
			t.Fatalf("SearchPosts(%q) failed: %v", q, err)
		}
		if len(page.Posts) != 0 {
			t.Errorf("Expected no results for %q, got %d", q, len(page.Posts))
		}
	}
	if remote.Calls("SearchPosts") != 0 {
		t.Errorf("Expected no source calls, got %d", remote.Calls("SearchPosts"))
	}
}

func TestContentService_SearchPassesQueryUnchanged(t *testing.T) {
	remote := mocks.NewMockContentSource(remotePost("a"))
	var got []string
	remote.SearchPostsFunc = func(ctx context.Context, q string, page int) (models.PostPage, error) {
		got = append(got, q)
		return models.EmptyPage(page, 10), nil
	}
	svc := newContentService(t, remote, repository.SourceRemote)

	for _, q := range []string{" ai", "ai "} {
		if _, err := svc.SearchPosts(context.Background(), q, 1, service.QueryOptions{}); err != nil {
			t.Fatalf("SearchPosts(%q) failed: %v", q, err)
		}
	}
	if len(got) != 2 || got[0] != " ai" || got[1] != "ai " {
		t.Errorf("Expected raw queries to reach the source, got %q", got)
	}
}

func TestContentService_SourceNotConfigured(t *testing.T) {
	sources := repository.Sources{
		Fixture: repository.NewFixtureRepo(fixture.Default(), 0),
	}
	svc := service.NewContentService(sources, service.ContentConfig{DefaultSource: repository.SourceRemote}, zerolog.Nop())

	_, err := svc.ListCategories(context.Background(), service.QueryOptions{})
	if err == nil {
		t.Fatal("Expected error for missing remote source")
	}
	if service.IsRetryable(err) {
		t.Error("A configuration error is not a fetch failure")
	}

	cats, err := svc.ListCategories(context.Background(), service.QueryOptions{Source: repository.SourceFixture})
	if err != nil {
		t.Fatalf("Fixture override failed: %v", err)
	}
	if len(cats) != 5 {
		t.Errorf("Expected 5 categories, got %d", len(cats))
	}
}
