package service

import (
	"context"

	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
	"github.com/rs/zerolog"
)

// QueryOptions applies to every content call. A zero Source uses the
// default chosen at construction.
type QueryOptions struct {
	Source repository.SourceKind
}

// ContentService is the single query surface over both content sources
type ContentService interface {
	ListPosts(ctx context.Context, page int, list models.ListOptions, opts QueryOptions) (models.PostPage, error)
	GetPostBySlug(ctx context.Context, slug string, opts QueryOptions) (*models.Post, error)
	ListPostsByCategory(ctx context.Context, categorySlug string, page int, opts QueryOptions) (models.PostPage, error)
	SearchPosts(ctx context.Context, query string, page int, opts QueryOptions) (models.PostPage, error)
	ListCategories(ctx context.Context, opts QueryOptions) ([]models.Category, error)
	DefaultSource() repository.SourceKind
}

// PreferenceService reads and writes reader preferences. Reads never fail:
// they fall back to the supplied default.
type PreferenceService interface {
	NewClientID() string
	GetTheme(ctx context.Context, clientID string, def models.Theme) models.Theme
	SetTheme(ctx context.Context, clientID string, theme models.Theme) error
	GetNewsletterDismissed(ctx context.Context, clientID string, def bool) bool
	SetNewsletterDismissed(ctx context.Context, clientID string, dismissed bool) error
	Get(ctx context.Context, clientID string) models.Preferences
	// Delete forgets one preference so reads return the caller's default
	Delete(ctx context.Context, clientID, key string) error
	Clear(ctx context.Context, clientID string) error
}

// ContentConfig is the facade's explicit source selection
type ContentConfig struct {
	DefaultSource repository.SourceKind
}

// Services holds all service interfaces
type Services struct {
	Content    ContentService
	Preference PreferenceService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg ContentConfig, log zerolog.Logger) *Services {
	return &Services{
		Content:    newContentService(repos.Sources, cfg, log),
		Preference: newPreferenceService(repos.Preference, log),
	}
}
