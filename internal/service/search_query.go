package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
	"github.com/rs/zerolog"
)

// SearchQuery debounces text input in front of a search Query.
// Blank input clears the results at once without fetching.
type SearchQuery struct {
	*Query[SearchParams, models.PostPage]

	debounce *Debouncer
	source   repository.SourceKind

	mu    sync.Mutex
	input string
}

// NewSearchQuery creates a SearchQuery over content. source may be SourceDefault.
func NewSearchQuery(content ContentService, delay time.Duration, source repository.SourceKind, log zerolog.Logger) *SearchQuery {
	return &SearchQuery{
		Query:    NewQuery(searchFetcher(content), log),
		debounce: NewDebouncer(delay),
		source:   source,
	}
}

// Input records a keystroke burst. The search runs from page 1 once input
// has been quiet for the debounce delay.
func (s *SearchQuery) Input(ctx context.Context, text string) {
	s.mu.Lock()
	s.input = text
	s.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		s.debounce.Stop()
		s.Reset()
		return
	}

	s.debounce.Trigger(func() {
		s.Set(ctx, SearchParams{Query: text, Page: 1, Source: s.source})
	})
}

// Text returns the raw last input
func (s *SearchQuery) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SetPage moves to page without debouncing. It does nothing before the
// first search has run.
func (s *SearchQuery) SetPage(ctx context.Context, page int) {
	st := s.State()
	if st.Status == StatusIdle {
		return
	}
	p := st.Params
	p.Page = page
	s.Set(ctx, p)
}

// Pending reports whether an input is waiting for the debounce delay
func (s *SearchQuery) Pending() bool {
	return s.debounce.Pending()
}

// Settle waits for any pending input to be searched and returns the
// resulting state
func (s *SearchQuery) Settle(ctx context.Context) (State[SearchParams, models.PostPage], error) {
	poll := s.debounce.Delay() / 4
	if poll < time.Millisecond {
		poll = time.Millisecond
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for s.Pending() {
		select {
		case <-ctx.Done():
			return s.State(), ctx.Err()
		case <-ticker.C:
		}
	}
	return s.Wait(ctx)
}

// Close stops the debounce timer and cancels any in-flight search
func (s *SearchQuery) Close() {
	s.debounce.Stop()
	s.Query.Close()
}
