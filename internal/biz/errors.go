package biz

import (
	"errors"
	"sort"
	"strings"
)

// Custom errors
var (
	ErrMovieNotFound        = errors.New("movie not found")
	ErrDuplicateTitle       = errors.New("a movie with this title already exists")
	ErrRemoteUnavailable    = errors.New("movie database is unavailable")
	ErrRemoteDataIncomplete = errors.New("movie title not found in the API response")
	ErrInvalidTransition    = errors.New("invalid add-movie workflow transition")
)

// FieldErrors maps a form field to the reason it was rejected.
type FieldErrors map[string]string

// ValidationError is returned when an edit submission is rejected.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid movie: " + strings.Join(parts, "; ")
}
