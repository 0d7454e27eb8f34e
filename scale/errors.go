package scale

import "errors"

// Engine errors. All are programming or configuration defects: computation
// is deterministic, so retrying a failed call cannot succeed.
var (
	// ErrInvalidConfig reports an unrecognized enum value or a structural
	// problem in a Config.
	ErrInvalidConfig = errors.New("invalid scaling configuration")

	// ErrInvalidBreakpoint reports a scale request for a breakpoint with no
	// ratio-table entry, i.e. one outside the configured breakpoint set.
	ErrInvalidBreakpoint = errors.New("breakpoint not in configuration")

	// ErrScalingFailed is the catch-all for unexpected internal failures,
	// such as a pipeline producing a non-finite value.
	ErrScalingFailed = errors.New("scaling failed")

	// ErrCacheError is reserved for cache-layer failures. The in-memory
	// cache never raises it; it exists for externally backed caches.
	ErrCacheError = errors.New("cache failure")
)
