package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
	"github.com/google/uuid"
)

// slugRegex accepts what WordPress sanitize_title produces: lowercase
// letters in any script, digits, underscores, hyphens and percent-encoded
// octets.
var slugRegex = regexp.MustCompile(`^[\p{Ll}\p{Lo}\p{Lm}\p{Mn}\p{Mc}\p{N}_%-]+$`)

// Request limits
const (
	MaxSlugLength   = 200
	MaxSearchLength = 200
	MaxPage         = 1000
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator checks request parameters
type Validator struct {
	maxSearchLength int
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{maxSearchLength: MaxSearchLength}
}

// ValidateSlug validates a post or category slug
func (v *Validator) ValidateSlug(field, slug string) []ValidationError {
	var errors []ValidationError

	if slug == "" {
		errors = append(errors, ValidationError{Field: field, Message: field + " is required"})
	} else if len(slug) > MaxSlugLength {
		errors = append(errors, ValidationError{Field: field, Message: fmt.Sprintf("%s exceeds %d characters", field, MaxSlugLength)})
	} else if !slugRegex.MatchString(slug) {
		errors = append(errors, ValidationError{Field: field, Message: "invalid slug format (lowercase letters, digits, hyphens or underscores)", Value: slug})
	}

	return errors
}

// ParsePage parses a 1-based page number; empty means page 1
func (v *Validator) ParsePage(raw string) (int, []ValidationError) {
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, []ValidationError{{Field: "page", Message: "page must be an integer", Value: raw}}
	}
	if page < 1 || page > MaxPage {
		return 0, []ValidationError{{Field: "page", Message: fmt.Sprintf("page must be between 1 and %d", MaxPage), Value: page}}
	}
	return page, nil
}

// ValidateSearchQuery bounds the search text. Blank text is valid and
// yields no results.
func (v *Validator) ValidateSearchQuery(q string) []ValidationError {
	if len(q) > v.maxSearchLength {
		return []ValidationError{{Field: "q", Message: fmt.Sprintf("search query exceeds %d characters", v.maxSearchLength)}}
	}
	return nil
}

// ParseSource parses the optional source override
func (v *Validator) ParseSource(raw string) (repository.SourceKind, []ValidationError) {
	kind, err := repository.ParseSourceKind(strings.ToLower(raw))
	if err != nil {
		return repository.SourceDefault, []ValidationError{{Field: "source", Message: "source must be fixture or remote", Value: raw}}
	}
	return kind, nil
}

// ParseBool parses an optional boolean flag; empty means false
func (v *Validator) ParseBool(field, raw string) (bool, []ValidationError) {
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, []ValidationError{{Field: field, Message: field + " must be 'true' or 'false'", Value: raw}}
	}
	return b, nil
}

// ValidateTheme validates a theme choice
func (v *Validator) ValidateTheme(raw string) (models.Theme, []ValidationError) {
	theme := models.Theme(raw)
	if raw == "" {
		return "", []ValidationError{{Field: "theme", Message: "theme is required"}}
	}
	if !models.ValidThemes[theme] {
		return "", []ValidationError{{Field: "theme", Message: "invalid theme, must be one of: light, dark, system", Value: raw}}
	}
	return theme, nil
}

// ValidateClientID validates a preference client id
func (v *Validator) ValidateClientID(id string) []ValidationError {
	if id == "" {
		return []ValidationError{{Field: "client_id", Message: "client_id is required"}}
	}
	if !isValidUUID(id) {
		return []ValidationError{{Field: "client_id", Message: "invalid UUID format", Value: id}}
	}
	return nil
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
