// Package errors provides the classified error primitives used across docsite.
//
// Loaders, sources, the site builder and the preview server report failures as
// ClassifiedError values so the CLI can pick an exit code and the server can pick
// a status code without string matching. The API rendering core never returns
// errors; it degrades instead.
//
// Example usage:
//
//	err := errors.WrapError(ioErr, errors.CategoryFileSystem, "failed to read package document").
//		WithContext("path", path).
//		Build()
package errors
