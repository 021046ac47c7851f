package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blog-content-api/internal/api"
	"github.com/blog-content-api/internal/config"
	"github.com/blog-content-api/internal/fixture"
	"github.com/blog-content-api/internal/mocks"
	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
	"github.com/blog-content-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const testClientID = "550e8400-e29b-41d4-a716-446655440000"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8080", RequestTimeout: 5 * time.Second},
	}
}

func setupTestRouter() (*gin.Engine, *mocks.MockContentService, *mocks.MockPreferenceService) {
	gin.SetMode(gin.TestMode)

	mockContent := mocks.NewMockContentService()
	mockPrefs := mocks.NewMockPreferenceService()

	services := &service.Services{
		Content:    mockContent,
		Preference: mockPrefs,
	}

	router := api.NewRouter(services, testConfig(), nil, zerolog.Nop())
	return router, mockContent, mockPrefs
}

// setupFixtureRouter serves the embedded dataset through the real facade
func setupFixtureRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	sources := repository.Sources{
		Fixture: repository.NewFixtureRepo(fixture.Default(), repository.DefaultFixturePageSize),
	}
	repos := repository.New(sources, nil)
	services := service.NewServices(repos, service.ContentConfig{DefaultSource: repository.SourceFixture}, zerolog.Nop())

	return api.NewRouter(services, testConfig(), nil, zerolog.Nop())
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON response %q: %v", w.Body.String(), err)
	}
	return response
}

func fetchError(resource string) error {
	return &service.FetchError{Resource: resource, Err: models.ErrSourceUnavailable}
}

type fakeStore struct{ err error }

func (f fakeStore) HealthCheck(ctx context.Context) error { return f.err }

func TestHealthEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter()

	w := doRequest(router, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	response := decode(t, w)
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "blog-content-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
	if response["default_source"] != "fixture" {
		t.Errorf("Expected default source 'fixture', got %v", response["default_source"])
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a request id header")
	}
}

func TestHealthEndpoint_StoreDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	services := &service.Services{
		Content:    mocks.NewMockContentService(),
		Preference: mocks.NewMockPreferenceService(),
	}
	router := api.NewRouter(services, testConfig(), fakeStore{err: errors.New("connection refused")}, zerolog.Nop())

	w := doRequest(router, "GET", "/health", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
	if decode(t, w)["status"] != "degraded" {
		t.Error("Expected degraded status")
	}
}

func TestRequestIDPropagated(t *testing.T) {
	router, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("Expected request id abc-123, got %q", got)
	}
}

func TestListPosts_Fixture(t *testing.T) {
	router := setupFixtureRouter()

	w := doRequest(router, "GET", "/v1/posts?page=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	response := decode(t, w)
	posts := response["posts"].([]interface{})
	if len(posts) != 5 {
		t.Errorf("Expected 5 posts, got %d", len(posts))
	}
	if response["total_pages"].(float64) != 1 {
		t.Errorf("Expected 1 total page, got %v", response["total_pages"])
	}
	if _, ok := response["message"]; ok {
		t.Error("Non-empty page should not carry the empty message")
	}

	w = doRequest(router, "GET", "/v1/posts?featured=true", nil)
	response = decode(t, w)
	if n := len(response["posts"].([]interface{})); n != 2 {
		t.Errorf("Expected 2 featured posts, got %d", n)
	}
}

func TestListPosts_BeyondLastPage(t *testing.T) {
	router := setupFixtureRouter()

	w := doRequest(router, "GET", "/v1/posts?page=3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	response := decode(t, w)
	if n := len(response["posts"].([]interface{})); n != 0 {
		t.Errorf("Expected empty page, got %d posts", n)
	}
	if response["message"] != "nothing here yet" {
		t.Errorf("Expected empty message, got %v", response["message"])
	}
}

func TestListPosts_FetchFailure(t *testing.T) {
	router, mockContent, _ := setupTestRouter()
	mockContent.ListPostsFunc = func(ctx context.Context, page int, list models.ListOptions, opts service.QueryOptions) (models.PostPage, error) {
		return models.EmptyPage(page, 10), fetchError("posts")
	}

	w := doRequest(router, "GET", "/v1/posts", nil)
	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", w.Code)
	}
	response := decode(t, w)
	if response["error"] != "failed to fetch posts" {
		t.Errorf("Expected fetch error message, got %v", response["error"])
	}
	if response["retryable"] != true {
		t.Error("Expected retryable flag")
	}
}

func TestListPosts_InvalidParams(t *testing.T) {
	router, _, _ := setupTestRouter()

	tests := []string{
		"/v1/posts?page=0",
		"/v1/posts?page=abc",
		"/v1/posts?featured=maybe",
		"/v1/posts?source=cache",
	}
	for _, path := range tests {
		w := doRequest(router, "GET", path, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", path, w.Code)
		}
	}
}

func TestListPosts_SourceOverride(t *testing.T) {
	router, mockContent, _ := setupTestRouter()

	var gotSource repository.SourceKind
	mockContent.ListPostsFunc = func(ctx context.Context, page int, list models.ListOptions, opts service.QueryOptions) (models.PostPage, error) {
		gotSource = opts.Source
		return models.EmptyPage(page, 10), nil
	}

	doRequest(router, "GET", "/v1/posts?source=remote", nil)
	if gotSource != repository.SourceRemote {
		t.Errorf("Expected remote override, got %q", gotSource)
	}
}

func TestGetPost(t *testing.T) {
	router := setupFixtureRouter()

	w := doRequest(router, "GET", "/v1/posts/rise-of-edge-computing", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	response := decode(t, w)
	if response["slug"] != "rise-of-edge-computing" {
		t.Errorf("Expected slug, got %v", response["slug"])
	}
	author := response["author"].(map[string]interface{})
	if author["name"] == "" {
		t.Error("Post should carry its author")
	}

	w = doRequest(router, "GET", "/v1/posts/does-not-exist", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	w = doRequest(router, "GET", "/v1/posts/Not_A_Slug", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestGetPost_WordPressSlugs(t *testing.T) {
	router, mockContent, _ := setupTestRouter()
	var gotSlug string
	mockContent.GetPostBySlugFunc = func(ctx context.Context, slug string, opts service.QueryOptions) (*models.Post, error) {
		gotSlug = slug
		return &models.Post{Slug: slug, Title: "Post"}, nil
	}
	var gotCategory string
	mockContent.ListPostsByCategoryFunc = func(ctx context.Context, slug string, page int, opts service.QueryOptions) (models.PostPage, error) {
		gotCategory = slug
		return models.EmptyPage(page, 6), nil
	}

	tests := []struct {
		path string
		want string
	}{
		{"/v1/posts/my_post", "my_post"},
		{"/v1/posts/2024-recap", "2024-recap"},
		{"/v1/posts/%d8%b3%d9%84%d8%a7%d9%85", "سلام"},
	}
	for _, tt := range tests {
		w := doRequest(router, "GET", tt.path, nil)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", tt.path, w.Code)
		}
		if gotSlug != tt.want {
			t.Errorf("%s: expected slug %q, got %q", tt.path, tt.want, gotSlug)
		}
	}

	w := doRequest(router, "GET", "/v1/categories/my_cat/posts", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if gotCategory != "my_cat" {
		t.Errorf("Expected category my_cat, got %q", gotCategory)
	}
}

func TestGetPost_FetchFailureIsNotNotFound(t *testing.T) {
	router, mockContent, _ := setupTestRouter()
	mockContent.GetPostBySlugFunc = func(ctx context.Context, slug string, opts service.QueryOptions) (*models.Post, error) {
		return nil, fetchError("post")
	}

	w := doRequest(router, "GET", "/v1/posts/hello", nil)
	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", w.Code)
	}
}

func TestCreateComment_NotImplemented(t *testing.T) {
	router, _, _ := setupTestRouter()

	w := doRequest(router, "POST", "/v1/posts/hello/comments", map[string]string{"body": "hi"})
	if w.Code != http.StatusNotImplemented {
		t.Errorf("Expected status 501, got %d", w.Code)
	}
}

func TestCategories(t *testing.T) {
	router := setupFixtureRouter()

	w := doRequest(router, "GET", "/v1/categories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if n := len(decode(t, w)["categories"].([]interface{})); n != 5 {
		t.Errorf("Expected 5 categories, got %d", n)
	}

	w = doRequest(router, "GET", "/v1/categories/ai/posts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	for _, p := range decode(t, w)["posts"].([]interface{}) {
		found := false
		for _, c := range p.(map[string]interface{})["categories"].([]interface{}) {
			if c.(map[string]interface{})["slug"] == "ai" {
				found = true
			}
		}
		if !found {
			t.Errorf("Post outside category returned: %v", p.(map[string]interface{})["slug"])
		}
	}
}

func TestCategories_Empty(t *testing.T) {
	router, _, _ := setupTestRouter()

	w := doRequest(router, "GET", "/v1/categories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if decode(t, w)["message"] != "nothing here yet" {
		t.Error("Expected empty message")
	}
}

func TestSearch(t *testing.T) {
	router := setupFixtureRouter()

	w := doRequest(router, "GET", "/v1/search?q=TypeScript", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	results := decode(t, w)["results"].(map[string]interface{})
	posts := results["posts"].([]interface{})
	if len(posts) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(posts))
	}
	if posts[0].(map[string]interface{})["slug"] != "modern-react-typescript-best-practices" {
		t.Errorf("Unexpected result %v", posts[0])
	}

	w = doRequest(router, "GET", "/v1/search?q=%20%20", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	results = decode(t, w)["results"].(map[string]interface{})
	if len(results["posts"].([]interface{})) != 0 || results["message"] != "nothing here yet" {
		t.Errorf("Blank search should be empty, got %v", results)
	}
}

func TestHome_PartialFailure(t *testing.T) {
	router, mockContent, _ := setupTestRouter()
	mockContent.ListPostsFunc = func(ctx context.Context, page int, list models.ListOptions, opts service.QueryOptions) (models.PostPage, error) {
		return models.Paginate([]models.Post{{Slug: "one", Title: "One"}}, page, 6), nil
	}
	mockContent.ListCategoriesFunc = func(ctx context.Context, opts service.QueryOptions) ([]models.Category, error) {
		return []models.Category{}, fetchError("categories")
	}

	w := doRequest(router, "GET", "/v1/home", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	response := decode(t, w)

	cats := response["categories"].(map[string]interface{})
	if cats["error"] != "failed to fetch categories" || cats["retryable"] != true {
		t.Errorf("Expected categories fetch error, got %v", cats)
	}
	latest := response["latest"].(map[string]interface{})
	if _, ok := latest["error"]; ok {
		t.Errorf("Latest section should succeed, got %v", latest)
	}
	if n := len(latest["data"].([]interface{})); n != 1 {
		t.Errorf("Expected 1 latest post, got %d", n)
	}
}

func TestPreferences_Flow(t *testing.T) {
	router, _, mockPrefs := setupTestRouter()

	w := doRequest(router, "POST", "/v1/preferences", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Code)
	}
	if decode(t, w)["client_id"] != mockPrefs.ClientID {
		t.Error("Expected issued client id")
	}

	base := "/v1/preferences/" + testClientID

	w = doRequest(router, "GET", base+"/theme", nil)
	if decode(t, w)["theme"] != "system" {
		t.Errorf("Expected default theme system, got %s", w.Body.String())
	}

	w = doRequest(router, "PUT", base+"/theme", map[string]string{"theme": "dark"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	w = doRequest(router, "GET", base+"/theme", nil)
	if decode(t, w)["theme"] != "dark" {
		t.Errorf("Expected dark theme, got %s", w.Body.String())
	}

	w = doRequest(router, "PUT", base+"/newsletter", map[string]bool{"dismissed": true})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	w = doRequest(router, "GET", base, nil)
	response := decode(t, w)
	if response["newsletter_dismissed"] != true || response["theme"] != "dark" {
		t.Errorf("Unexpected preferences %v", response)
	}

	w = doRequest(router, "DELETE", base+"/theme", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	w = doRequest(router, "GET", base, nil)
	response = decode(t, w)
	if response["theme"] != "system" || response["newsletter_dismissed"] != true {
		t.Errorf("Expected only the theme reset, got %v", response)
	}

	w = doRequest(router, "DELETE", base+"/newsletter", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	w = doRequest(router, "GET", base+"/newsletter", nil)
	if decode(t, w)["dismissed"] != false {
		t.Errorf("Expected newsletter reset, got %s", w.Body.String())
	}
	w = doRequest(router, "DELETE", base, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if _, ok := mockPrefs.Prefs[testClientID]; ok {
		t.Error("Preferences should be cleared")
	}
}

func TestPreferences_Invalid(t *testing.T) {
	router, _, _ := setupTestRouter()
	base := "/v1/preferences/" + testClientID

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"bad client id", "GET", "/v1/preferences/not-a-uuid/theme", nil},
		{"unknown theme", "PUT", base + "/theme", map[string]string{"theme": "sepia"}},
		{"missing theme", "PUT", base + "/theme", map[string]string{}},
		{"missing dismissed", "PUT", base + "/newsletter", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.path, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _, _ := setupTestRouter()

	w := doRequest(router, "OPTIONS", "/v1/posts", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header")
	}
}
