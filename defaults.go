package xaholder

import "github.com/gedmarc/xaholder/internal/core"

// Default configuration values applied by NewHolder unless overridden by an
// Option.
const (
	// DefaultCacheCapacity is the prepared-statement cache's bound.
	DefaultCacheCapacity = 32
	// DefaultTestTimeoutSeconds bounds both the fast-path probe and the
	// fallback test-query execution.
	DefaultTestTimeoutSeconds = 5
	// DefaultFastPathProbeEnabled enables the version-4 validity-probe
	// fast path by default.
	DefaultFastPathProbeEnabled = true
)

func defaultConfig() core.HolderConfig {
	return core.HolderConfig{
		TestTimeoutSeconds:   DefaultTestTimeoutSeconds,
		FastPathProbeEnabled: DefaultFastPathProbeEnabled,
		CacheCapacity:        DefaultCacheCapacity,
		PoisonPolicy:         PoisonPolicyKeepAccessible,
	}
}
