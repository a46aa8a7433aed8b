package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCredentials is returned by Authenticate when the username
// or password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError reports a missing or malformed input field. The
// request boundary translates it to a 400 with a field-specific message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// requiredField builds the standard "<Field label> is required" error
// for an empty input, e.g. author_name -> "Author Name is required".
func requiredField(field string) *ValidationError {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return &ValidationError{
		Field:   field,
		Message: strings.Join(words, " ") + " is required",
	}
}

// ConflictError reports a duplicate unique key, e.g. a repeated active
// newsletter subscription.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func conflictf(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}
