// Package errors provides the classified error type used across sitenav.
//
// Errors carry a category (config, validation, filesystem, git, ...), a severity and a
// structured context map. The CLI adapter turns them into exit codes and log records.
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryConfig, "failed to read site config").
//		WithContext("path", configPath).
//		Build()
//
// Navigation problems found while checking a site (unresolved links, malformed sidebar
// entries) are reported as navcheck issues, not as errors from this package.
package errors
