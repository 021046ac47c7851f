package mocks

import (
	"context"

	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
	"github.com/blog-content-api/internal/service"
)

// MockContentService is a mock implementation of ContentService
type MockContentService struct {
	ListPostsFunc           func(ctx context.Context, page int, list models.ListOptions, opts service.QueryOptions) (models.PostPage, error)
	GetPostBySlugFunc       func(ctx context.Context, slug string, opts service.QueryOptions) (*models.Post, error)
	ListPostsByCategoryFunc func(ctx context.Context, categorySlug string, page int, opts service.QueryOptions) (models.PostPage, error)
	SearchPostsFunc         func(ctx context.Context, query string, page int, opts service.QueryOptions) (models.PostPage, error)
	ListCategoriesFunc      func(ctx context.Context, opts service.QueryOptions) ([]models.Category, error)
	Source                  repository.SourceKind
}

// Verify interface compliance
var _ service.ContentService = (*MockContentService)(nil)

func NewMockContentService() *MockContentService {
	return &MockContentService{Source: repository.SourceFixture}
}

func (m *MockContentService) ListPosts(ctx context.Context, page int, list models.ListOptions, opts service.QueryOptions) (models.PostPage, error) {
	if m.ListPostsFunc != nil {
		return m.ListPostsFunc(ctx, page, list, opts)
	}
	return models.EmptyPage(page, 6), nil
}

func (m *MockContentService) GetPostBySlug(ctx context.Context, slug string, opts service.QueryOptions) (*models.Post, error) {
	if m.GetPostBySlugFunc != nil {
		return m.GetPostBySlugFunc(ctx, slug, opts)
	}
	return nil, service.ErrPostNotFound
}

func (m *MockContentService) ListPostsByCategory(ctx context.Context, categorySlug string, page int, opts service.QueryOptions) (models.PostPage, error) {
	if m.ListPostsByCategoryFunc != nil {
		return m.ListPostsByCategoryFunc(ctx, categorySlug, page, opts)
	}
	return models.EmptyPage(page, 6), nil
}

func (m *MockContentService) SearchPosts(ctx context.Context, query string, page int, opts service.QueryOptions) (models.PostPage, error) {
	if m.SearchPostsFunc != nil {
		return m.SearchPostsFunc(ctx, query, page, opts)
	}
	return models.EmptyPage(page, 6), nil
}

func (m *MockContentService) ListCategories(ctx context.Context, opts service.QueryOptions) ([]models.Category, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx, opts)
	}
	return []models.Category{}, nil
}

func (m *MockContentService) DefaultSource() repository.SourceKind {
	return m.Source
}

// MockPreferenceService is a mock implementation of PreferenceService
type MockPreferenceService struct {
	ClientID string
	Prefs    map[string]models.Preferences
	SetError error
}

// Verify interface compliance
var _ service.PreferenceService = (*MockPreferenceService)(nil)

func NewMockPreferenceService() *MockPreferenceService {
	return &MockPreferenceService{
		ClientID: "6f1c2a3e-8b4d-4c5e-9f60-7a8b9c0d1e2f",
		Prefs:    make(map[string]models.Preferences),
	}
}

func (m *MockPreferenceService) NewClientID() string {
	return m.ClientID
}

func (m *MockPreferenceService) GetTheme(ctx context.Context, clientID string, def models.Theme) models.Theme {
	if p, ok := m.Prefs[clientID]; ok && p.Theme != "" {
		return p.Theme
	}
	return def
}

func (m *MockPreferenceService) SetTheme(ctx context.Context, clientID string, theme models.Theme) error {
	if m.SetError != nil {
		return m.SetError
	}
	if !models.ValidThemes[theme] {
		return service.ErrInvalidTheme
	}
	p := m.Prefs[clientID]
	p.ClientID = clientID
	p.Theme = theme
	m.Prefs[clientID] = p
	return nil
}

func (m *MockPreferenceService) GetNewsletterDismissed(ctx context.Context, clientID string, def bool) bool {
	if p, ok := m.Prefs[clientID]; ok {
		return p.NewsletterDismissed
	}
	return def
}

func (m *MockPreferenceService) SetNewsletterDismissed(ctx context.Context, clientID string, dismissed bool) error {
	if m.SetError != nil {
		return m.SetError
	}
	p := m.Prefs[clientID]
	p.ClientID = clientID
	p.NewsletterDismissed = dismissed
	m.Prefs[clientID] = p
	return nil
}

func (m *MockPreferenceService) Get(ctx context.Context, clientID string) models.Preferences {
	return models.Preferences{
		ClientID:            clientID,
		Theme:               m.GetTheme(ctx, clientID, models.ThemeSystem),
		NewsletterDismissed: m.GetNewsletterDismissed(ctx, clientID, false),
	}
}

func (m *MockPreferenceService) Delete(ctx context.Context, clientID, key string) error {
	if m.SetError != nil {
		return m.SetError
	}
	p, ok := m.Prefs[clientID]
	if !ok {
		return nil
	}
	switch key {
	case models.PreferenceTheme:
		p.Theme = ""
	case models.PreferenceNewsletterDismissed:
		p.NewsletterDismissed = false
	default:
		return service.ErrUnknownPreference
	}
	m.Prefs[clientID] = p
	return nil
}

func (m *MockPreferenceService) Clear(ctx context.Context, clientID string) error {
	delete(m.Prefs, clientID)
	return nil
}
