package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// preferenceService stores JSON-encoded values in a PreferenceRepository
type preferenceService struct {
	repo repository.PreferenceRepository
	log  zerolog.Logger
}

func newPreferenceService(repo repository.PreferenceRepository, log zerolog.Logger) *preferenceService {
	return &preferenceService{
		repo: repo,
		log:  log.With().Str("service", "preference").Logger(),
	}
}

// NewPreferenceService creates a PreferenceService over repo
func NewPreferenceService(repo repository.PreferenceRepository, log zerolog.Logger) PreferenceService {
	return newPreferenceService(repo, log)
}

func (s *preferenceService) NewClientID() string {
	return uuid.New().String()
}

func (s *preferenceService) GetTheme(ctx context.Context, clientID string, def models.Theme) models.Theme {
	theme := readValue(ctx, s, clientID, models.PreferenceTheme, def)
	if !models.ValidThemes[theme] {
		s.log.Warn().Str("client_id", clientID).Str("theme", string(theme)).Msg("Stored theme is not recognised, using default")
		return def
	}
	return theme
}

func (s *preferenceService) SetTheme(ctx context.Context, clientID string, theme models.Theme) error {
	if !models.ValidThemes[theme] {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	return s.write(ctx, clientID, models.PreferenceTheme, theme)
}

func (s *preferenceService) GetNewsletterDismissed(ctx context.Context, clientID string, def bool) bool {
	return readValue(ctx, s, clientID, models.PreferenceNewsletterDismissed, def)
}

func (s *preferenceService) SetNewsletterDismissed(ctx context.Context, clientID string, dismissed bool) error {
	return s.write(ctx, clientID, models.PreferenceNewsletterDismissed, dismissed)
}

func (s *preferenceService) Get(ctx context.Context, clientID string) models.Preferences {
	return models.Preferences{
		ClientID:            clientID,
		Theme:               s.GetTheme(ctx, clientID, models.ThemeSystem),
		NewsletterDismissed: s.GetNewsletterDismissed(ctx, clientID, false),
	}
}

func (s *preferenceService) Delete(ctx context.Context, clientID, key string) error {
	switch key {
	case models.PreferenceTheme, models.PreferenceNewsletterDismissed:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPreference, key)
	}
	if err := s.repo.Delete(ctx, clientID, key); err != nil {
		return fmt.Errorf("failed to delete preference %s: %w", key, err)
	}
	s.log.Debug().Str("client_id", clientID).Str("key", key).Msg("Preference deleted")
	return nil
}

func (s *preferenceService) Clear(ctx context.Context, clientID string) error {
	if err := s.repo.Clear(ctx, clientID); err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}
	s.log.Info().Str("client_id", clientID).Msg("Preferences cleared")
	return nil
}

func (s *preferenceService) write(ctx context.Context, clientID, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode preference %s: %w", key, err)
	}
	if err := s.repo.Set(ctx, clientID, key, string(raw)); err != nil {
		return fmt.Errorf("failed to store preference %s: %w", key, err)
	}
	return nil
}

// readValue decodes a stored preference, returning def when it is absent,
// malformed or the store fails. Failures are logged, never returned.
func readValue[T any](ctx context.Context, s *preferenceService, clientID, key string, def T) T {
	raw, found, err := s.repo.Get(ctx, clientID, key)
	if err != nil {
		s.log.Error().Err(err).Str("client_id", clientID).Str("key", key).Msg("Failed to read preference")
		return def
	}
	if !found {
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.log.Warn().Err(err).Str("client_id", clientID).Str("key", key).Msg("Malformed preference, using default")
		return def
	}
	return v
}
