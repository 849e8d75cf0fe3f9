package core

import "errors"

// Errors reported by timer setup. Microsleep itself never fails because of
// the delay value; it only propagates a setup failure on first use.
var (
	// ErrUnsupportedPlatform means the board generation could not be
	// determined or has no known peripheral base address. Not retryable.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrMappingFailed means the system timer register page could not be
	// mapped into the process, typically for lack of privilege. The timer
	// is left unconfigured so Setup may be retried.
	ErrMappingFailed = errors.New("cannot map system timer registers")

	// ErrNoDriver means the package-level timer was used before a platform
	// resolver and peripheral mapper were registered.
	ErrNoDriver = errors.New("platform resolver or peripheral mapper not configured")
)
