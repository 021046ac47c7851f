package repository

import (
	"context"
	"fmt"

	"github.com/blog-content-api/internal/database"
	"github.com/blog-content-api/internal/models"
)

// SourceKind selects which ContentSource serves a query
type SourceKind string

const (
	// SourceDefault defers to the configured default source
	SourceDefault SourceKind = ""
	SourceFixture SourceKind = "fixture"
	SourceRemote  SourceKind = "remote"
)

// ParseSourceKind parses "", "fixture" or "remote"
func ParseSourceKind(s string) (SourceKind, error) {
	switch SourceKind(s) {
	case SourceDefault, SourceFixture, SourceRemote:
		return SourceKind(s), nil
	default:
		return SourceDefault, fmt.Errorf("unknown content source %q (use fixture or remote)", s)
	}
}

// ContentSource is implemented by the fixture collection and the remote
// content API. A missing post is reported as (nil, nil).
type ContentSource interface {
	ListPosts(ctx context.Context, page int, opts models.ListOptions) (models.PostPage, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListPostsByCategory(ctx context.Context, categorySlug string, page int) (models.PostPage, error)
	SearchPosts(ctx context.Context, query string, page int) (models.PostPage, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// PreferenceRepository stores raw preference values per client
type PreferenceRepository interface {
	Get(ctx context.Context, clientID, key string) (value string, found bool, err error)
	Set(ctx context.Context, clientID, key, value string) error
	Delete(ctx context.Context, clientID, key string) error
	Clear(ctx context.Context, clientID string) error
}

// Sources holds both content sources
type Sources struct {
	Fixture ContentSource
	Remote  ContentSource
}

// Get returns the source for kind. SourceDefault is not resolved here.
func (s Sources) Get(kind SourceKind) (ContentSource, error) {
	var src ContentSource
	switch kind {
	case SourceFixture:
		src = s.Fixture
	case SourceRemote:
		src = s.Remote
	default:
		return nil, fmt.Errorf("content source %q cannot be resolved", kind)
	}
	if src == nil {
		return nil, fmt.Errorf("content source %q is not configured", kind)
	}
	return src, nil
}

// Repositories holds all repository interfaces
type Repositories struct {
	Sources    Sources
	Preference PreferenceRepository
}

// New creates the repositories. A nil db selects the in-memory preference store.
func New(sources Sources, db *database.DB) *Repositories {
	var prefs PreferenceRepository
	if db != nil {
		prefs = NewPreferenceRepo(db)
	} else {
		prefs = NewMemoryPreferenceRepo()
	}
	return &Repositories{
		Sources:    sources,
		Preference: prefs,
	}
}
