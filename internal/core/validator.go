package core

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Validator probes a connection's liveness via a version-gated fast path
// with a query-based fallback. It holds no state of its own; the sticky
// version downgrade lives on the holder's jdbc_version field, passed in by
// the caller so a single Validator can be shared across holders.
type Validator struct{}

// NewValidator constructs a stateless Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate runs the fast-path probe if it is enabled, the cached version is
// >= 4, and conn implements ValidityProber; a true or false probe result
// decides the outcome on its own. The test-query fallback runs only when the
// probe was skipped or returned an error.
// version is the holder's cached jdbc_version; a probe error or a missing
// ValidityProber implementation downgrades it to 3 so the fast path is never
// retried on this connection again.
func (v *Validator) Validate(ctx context.Context, conn VendorConnection, cfg HolderConfig, version *atomic.Int32) error {
	if cfg.FastPathProbeEnabled && version.Load() >= 4 {
		prober, ok := conn.(ValidityProber)
		if !ok {
			version.Store(3)
		} else {
			valid, err := prober.IsValid(ctx, cfg.EffectiveTestTimeout())
			switch {
			case err != nil:
				version.Store(3)
				Logger().Debug("validator: v4 probe errored, downgrading to query fallback", "error", err)
			case !valid:
				return ErrConnectionDead
			default:
				return nil
			}
		}
	}

	if cfg.TestQuery == "" {
		return nil
	}

	stmt, err := conn.PrepareStatement(ctx, CacheKey{SQL: cfg.TestQuery})
	if err != nil {
		return fmt.Errorf("%w: prepare test query: %v", ErrConnectionDead, err)
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			Logger().Warn("validator: failed to close test statement", "error", cerr)
		}
	}()

	if cfg.TestTimeoutSeconds > 0 {
		if err := stmt.SetQueryTimeout(cfg.TestTimeoutSeconds); err != nil {
			Logger().Warn("validator: failed to set query timeout", "error", err)
		}
	}

	if err := stmt.Execute(ctx); err != nil {
		return fmt.Errorf("%w: test query failed: %v", ErrConnectionDead, err)
	}
	return nil
}
