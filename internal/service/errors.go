package service

import (
	"errors"
	"fmt"
)

// ErrPostNotFound is returned when a slug lookup finds nothing
var ErrPostNotFound = errors.New("post not found")

// ErrInvalidTheme is returned when storing a theme outside models.ValidThemes
var ErrInvalidTheme = errors.New("invalid theme")

// ErrUnknownPreference is returned for keys outside the known preferences
var ErrUnknownPreference = errors.New("unknown preference")

// FetchError reports that a content source could not serve Resource.
// Callers should offer a retry.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s", e.Resource)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a fetch failure worth retrying
func IsRetryable(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
