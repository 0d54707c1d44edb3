package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds surfaced at the request boundary.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrInput         = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrRateLimited   = errors.New("rate limited")
)

// Error is a classified failure. Kind is one of the sentinels above; Key names the
// missing credential for configuration errors.
type Error struct {
	Kind    error
	Key     string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Config(key, msg string) error {
	return &Error{Kind: ErrConfiguration, Key: key, Message: msg}
}

func Input(msg string) error {
	return &Error{Kind: ErrInput, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func RateLimited(msg string, cause error) error {
	return &Error{Kind: ErrRateLimited, Message: msg, Err: cause}
}

// Wrap attaches kind to an arbitrary cause, keeping cause's message.
func Wrap(kind error, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// IsClassified reports whether err carries one of the boundary kinds.
func IsClassified(err error) bool {
	return errors.Is(err, ErrConfiguration) ||
		errors.Is(err, ErrInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrRateLimited)
}
