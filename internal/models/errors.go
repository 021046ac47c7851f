package models

import "errors"

// ErrSourceUnavailable marks a failed call to a content source.
// The source has already logged the cause and returned an empty value.
var ErrSourceUnavailable = errors.New("content source unavailable")
