// Package errs provides standardized error types for the marketplace services.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error kind follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method resolving to the sentinel
//
// The sentinels double as the classification the HTTP layer uses to pick a
// response status: validation → 400, not found → 404, conflict / invalid
// transition / no capacity → 409, upstream timeout or unavailable → 503.
package errs
