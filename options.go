package xaholder

import (
	"fmt"
	"time"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive[T int | time.Duration](name string, v T) {
	if v <= 0 {
		panic(fmt.Sprintf("xaholder: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("xaholder: %s must not be empty", name))
	}
}

// Option configures a Holder during construction via NewHolder. Each With*
// function returns an Option that sets a specific field.
//
// Several With* functions panic on invalid input (negative sizes, empty
// strings, non-positive durations). These panics are intentional: option
// values are typically compile-time constants, so an invalid value
// indicates a programmer error rather than a runtime condition. The
// pattern mirrors [regexp.MustCompile] — fail fast during construction
// instead of returning errors that would be universally fatal anyway.
type Option func(*holderSettings)

// WithIsolationLevel sets the symbolic or numeric isolation level applied
// on first use after IN_POOL. Unset by default, leaving the driver default
// untouched. Panics if name is empty; use no option at all to leave the
// isolation level unmanaged.
func WithIsolationLevel(name string) Option {
	requireNonEmpty("isolation level", name)
	return func(s *holderSettings) { s.cfg.IsolationLevel = name }
}

// WithHoldability sets the symbolic cursor holdability applied on first
// use. Panics if name is empty.
func WithHoldability(name string) Option {
	requireNonEmpty("holdability", name)
	return func(s *holderSettings) { s.cfg.Holdability = name }
}

// WithLocalAutoCommit sets the auto-commit string ("true"/"false",
// case-insensitive) applied on first use when no transaction is ambient.
// Panics if value is empty.
func WithLocalAutoCommit(value string) Option {
	requireNonEmpty("local auto-commit", value)
	return func(s *holderSettings) { s.cfg.LocalAutoCommit = value }
}

// WithTestQuery sets the query prepared and executed as the validator's
// fallback liveness probe. Panics if query is empty.
func WithTestQuery(query string) Option {
	requireNonEmpty("test query", query)
	return func(s *holderSettings) { s.cfg.TestQuery = query }
}

// WithTestTimeout sets the timeout bounding both the fast-path probe and
// the fallback test query. d is stored in whole seconds, truncated; a d
// under one second is stored as 0, for which the validator sets no query
// timeout and passes the probe a zero timeout.
//
// Default: 5 seconds.
//
// Panics if d <= 0.
func WithTestTimeout(d time.Duration) Option {
	requirePositive("test timeout", d)
	return func(s *holderSettings) { s.cfg.TestTimeoutSeconds = int(d.Seconds()) }
}

// WithFastPathProbe enables or disables the version-4 validity-probe fast
// path.
//
// Default: enabled.
func WithFastPathProbe(enabled bool) Option {
	return func(s *holderSettings) { s.cfg.FastPathProbeEnabled = enabled }
}

// WithCacheCapacity sets the prepared-statement cache's bound. Zero is
// legal and disables caching outright.
//
// Default: 32.
//
// Panics if capacity < 0.
func WithCacheCapacity(capacity int) Option {
	if capacity < 0 {
		panic(fmt.Sprintf("xaholder: cache capacity must not be negative, got %d", capacity))
	}
	return func(s *holderSettings) { s.cfg.CacheCapacity = capacity }
}

// WithPoisonPolicy selects the holder's behavior on requeue failure.
//
// Default: PoisonPolicyKeepAccessible.
func WithPoisonPolicy(p PoisonPolicy) Option {
	return func(s *holderSettings) { s.cfg.PoisonPolicy = p }
}

// WithClock overrides the monotonic clock used for observability
// timestamps. Intended for tests; production callers should leave this
// unset. Panics if clock is nil.
func WithClock(clock Clock) Option {
	if clock == nil {
		panic("xaholder: clock must not be nil")
	}
	return func(s *holderSettings) { s.clock = clock }
}

// WithMetricsRecorder installs a MetricsRecorder observing acquire,
// release, cache hit/miss, and destroy events. Panics if recorder is nil;
// omit this option entirely to use a no-op recorder.
func WithMetricsRecorder(recorder MetricsRecorder) Option {
	if recorder == nil {
		panic("xaholder: metrics recorder must not be nil")
	}
	return func(s *holderSettings) { s.metrics = recorder }
}
