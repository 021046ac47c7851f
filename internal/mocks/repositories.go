package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
)

// MockContentSource is a mock implementation of ContentSource.
// Without Func overrides it serves Posts and Categories in memory.
type MockContentSource struct {
	Posts      []models.Post
	Categories []models.Category
	PageSize   int
	Err        error

	ListPostsFunc      func(ctx context.Context, page int, opts models.ListOptions) (models.PostPage, error)
	GetPostBySlugFunc  func(ctx context.Context, slug string) (*models.Post, error)
	SearchPostsFunc    func(ctx context.Context, query string, page int) (models.PostPage, error)
	ListCategoriesFunc func(ctx context.Context) ([]models.Category, error)

	mu    sync.Mutex
	calls map[string]int
}

// Verify interface compliance
var _ repository.ContentSource = (*MockContentSource)(nil)

func NewMockContentSource(posts ...models.Post) *MockContentSource {
	return &MockContentSource{
		Posts:    posts,
		PageSize: 6,
		calls:    make(map[string]int),
	}
}

// Calls returns how often method was invoked
func (m *MockContentSource) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockContentSource) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

func (m *MockContentSource) ListPosts(ctx context.Context, page int, opts models.ListOptions) (models.PostPage, error) {
	m.record("ListPosts")
	if m.ListPostsFunc != nil {
		return m.ListPostsFunc(ctx, page, opts)
	}
	if m.Err != nil {
		return models.EmptyPage(page, m.PageSize), m.Err
	}
	var posts []models.Post
	for _, p := range m.Posts {
		if !opts.Featured || p.IsFeatured {
			posts = append(posts, p)
		}
	}
	return models.Paginate(posts, page, m.PageSize), nil
}

func (m *MockContentSource) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	m.record("GetPostBySlug")
	if m.GetPostBySlugFunc != nil {
		return m.GetPostBySlugFunc(ctx, slug)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.Posts {
		if p.Slug == slug {
			post := p
			return &post, nil
		}
	}
	return nil, nil
}

func (m *MockContentSource) ListPostsByCategory(ctx context.Context, categorySlug string, page int) (models.PostPage, error) {
	m.record("ListPostsByCategory")
	if m.Err != nil {
		return models.EmptyPage(page, m.PageSize), m.Err
	}
	var posts []models.Post
	for _, p := range m.Posts {
		if p.HasCategory(categorySlug) {
			posts = append(posts, p)
		}
	}
	return models.Paginate(posts, page, m.PageSize), nil
}

func (m *MockContentSource) SearchPosts(ctx context.Context, query string, page int) (models.PostPage, error) {
	m.record("SearchPosts")
	if m.SearchPostsFunc != nil {
		return m.SearchPostsFunc(ctx, query, page)
	}
	if m.Err != nil {
		return models.EmptyPage(page, m.PageSize), m.Err
	}
	q := strings.ToLower(query)
	var posts []models.Post
	for _, p := range m.Posts {
		if strings.Contains(strings.ToLower(p.Title), q) {
			posts = append(posts, p)
		}
	}
	return models.Paginate(posts, page, m.PageSize), nil
}

func (m *MockContentSource) ListCategories(ctx context.Context) ([]models.Category, error) {
	m.record("ListCategories")
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx)
	}
	if m.Err != nil {
		return []models.Category{}, m.Err
	}
	return m.Categories, nil
}

// MockPreferenceRepository is a mock implementation of PreferenceRepository
type MockPreferenceRepository struct {
	Values   map[string]map[string]string
	GetError error
	SetError error

	mu sync.Mutex
}

// Verify interface compliance
var _ repository.PreferenceRepository = (*MockPreferenceRepository)(nil)

func NewMockPreferenceRepository() *MockPreferenceRepository {
	return &MockPreferenceRepository{
		Values: make(map[string]map[string]string),
	}
}

// Put stores a raw value, bypassing SetError
func (m *MockPreferenceRepository) Put(clientID, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Values[clientID] == nil {
		m.Values[clientID] = make(map[string]string)
	}
	m.Values[clientID][key] = value
}

func (m *MockPreferenceRepository) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	if m.GetError != nil {
		return "", false, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Values[clientID][key]
	return v, ok, nil
}

func (m *MockPreferenceRepository) Set(ctx context.Context, clientID, key, value string) error {
	if m.SetError != nil {
		return m.SetError
	}
	m.Put(clientID, key, value)
	return nil
}

func (m *MockPreferenceRepository) Delete(ctx context.Context, clientID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Values[clientID], key)
	return nil
}

func (m *MockPreferenceRepository) Clear(ctx context.Context, clientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Values, clientID)
	return nil
}
