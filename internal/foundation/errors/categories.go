package errors

import "net/http"

// ErrorCategory classifies a failure by where it came from. The category
// decides the CLI exit code, the HTTP status and the default handling of a
// new error.
type ErrorCategory string

const (
	CategoryConfig        ErrorCategory = "config"
	CategoryValidation    ErrorCategory = "validation"
	CategoryNotFound      ErrorCategory = "not_found"
	CategoryAlreadyExists ErrorCategory = "already_exists"

	// CategorySource covers fetching package documents (git checkouts, local dirs).
	CategorySource  ErrorCategory = "source"
	CategoryNetwork ErrorCategory = "network"

	CategoryRender     ErrorCategory = "render"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryEventStore ErrorCategory = "eventstore"

	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
)

// RetryStrategy tells a caller whether repeating the operation can help.
type RetryStrategy string

const (
	RetryNever      RetryStrategy = "never"
	RetryBackoff    RetryStrategy = "backoff"
	RetryUserAction RetryStrategy = "user"
)

type policy struct {
	exitCode int
	status   int
	severity ErrorSeverity
	retry    RetryStrategy
}

var fallbackPolicy = policy{1, http.StatusInternalServerError, SeverityError, RetryNever}

var policies = map[ErrorCategory]policy{
	CategoryConfig:        {7, http.StatusBadRequest, SeverityFatal, RetryUserAction},
	CategoryValidation:    {2, http.StatusBadRequest, SeverityError, RetryNever},
	CategoryNotFound:      {3, http.StatusNotFound, SeverityError, RetryNever},
	CategoryAlreadyExists: {1, http.StatusConflict, SeverityError, RetryNever},
	CategorySource:        {8, http.StatusBadGateway, SeverityError, RetryBackoff},
	CategoryNetwork:       {8, http.StatusBadGateway, SeverityError, RetryBackoff},
	CategoryRender:        {11, http.StatusUnprocessableEntity, SeverityError, RetryNever},
	CategoryFileSystem:    {11, http.StatusInternalServerError, SeverityError, RetryNever},
	CategoryEventStore:    {11, http.StatusInternalServerError, SeverityError, RetryNever},
	CategoryRuntime:       {12, http.StatusServiceUnavailable, SeverityError, RetryNever},
	CategoryInternal:      {10, http.StatusInternalServerError, SeverityFatal, RetryNever},
}

func policyFor(c ErrorCategory) policy {
	if p, ok := policies[c]; ok {
		return p
	}
	return fallbackPolicy
}

// ExitCode is the process exit status for errors of this category.
func (c ErrorCategory) ExitCode() int { return policyFor(c).exitCode }

// HTTPStatus is the response status for errors of this category.
func (c ErrorCategory) HTTPStatus() int { return policyFor(c).status }

// ErrorContext holds structured fields attached to an error.
type ErrorContext map[string]any

func (c ErrorContext) with(key string, value any) ErrorContext {
	out := make(ErrorContext, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[key] = value
	return out
}

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}
