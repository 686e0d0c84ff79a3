// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio comunes.
var (
	// Input errors
	ErrEmptyDomain     = errors.New("domain cannot be empty")
	ErrInvalidDomain   = errors.New("invalid domain format")
	ErrInvalidScanMode = errors.New("invalid scan mode")
	ErrEmptyWordList   = errors.New("wordlist is empty")
	ErrInvalidEntry    = errors.New("invalid wordlist entry")

	// Run configuration errors
	ErrInvalidConcurrency = errors.New("invalid concurrency limit")
	ErrInvalidTimeout     = errors.New("invalid request timeout")
	ErrInvalidScheme      = errors.New("invalid URL scheme")
	ErrNoSchemes          = errors.New("no URL schemes configured")

	// Configuration errors
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrConfigLoadFailed = errors.New("failed to load configuration")

	// Scan errors
	ErrScanCanceled = errors.New("scan was canceled")

	// Export errors
	ErrExportFailed      = errors.New("export failed")
	ErrInvalidOutputPath = errors.New("invalid output path")
)
