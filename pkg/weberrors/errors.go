// Package weberrors defines the error taxonomy shared by the search and
// extraction operations. Validation and configuration errors abort a call,
// upstream errors abort a search, fetch errors stay scoped to a single URL.
package weberrors

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-range caller input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidation creates a ValidationError for the given input field.
func NewValidation(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports a required credential or setting that is
// missing at call time.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Key)
}

// UpstreamError reports a non-success response from the search API or a
// network failure while talking to it.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("search api error (http %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("search api unreachable: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// FetchError reports a per-URL failure during extraction. It never fails
// the whole extraction call; it is recorded on the page it belongs to.
type FetchError struct {
	URL    string
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetch wraps err as a FetchError for the given URL.
func NewFetch(url, reason string, err error) *FetchError {
	return &FetchError{URL: url, Reason: reason, Err: err}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsUpstream reports whether err is (or wraps) an UpstreamError.
func IsUpstream(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}

// IsFetch reports whether err is (or wraps) a FetchError.
func IsFetch(err error) bool {
	var target *FetchError
	return errors.As(err, &target)
}

// Kind returns a stable machine-readable name for the error category,
// suitable for structured tool results.
func Kind(err error) string {
	switch {
	case IsValidation(err):
		return "validation_error"
	case IsConfiguration(err):
		return "configuration_error"
	case IsUpstream(err):
		return "upstream_error"
	case IsFetch(err):
		return "fetch_error"
	default:
		return "internal_error"
	}
}
