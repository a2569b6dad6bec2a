package core

import (
	"errors"
	"fmt"
	"time"
)

// Holdability mirrors java.sql.ResultSet's cursor-holdability constants.
// database/sql has no equivalent vocabulary, so these are the holder's own
// small integer dictionary.
type Holdability int

const (
	// HoldCursorsOverCommit keeps cursors open across a commit.
	HoldCursorsOverCommit Holdability = 1
	// CloseCursorsAtCommit closes cursors at commit.
	CloseCursorsAtCommit Holdability = 2
)

// PoisonPolicy resolves the open question of whether a holder should be
// poisoned after a requeue failure. The source left this ambiguous; rather
// than guess, the behavior is an explicit policy knob.
type PoisonPolicy int

const (
	// PoisonPolicyKeepAccessible leaves the holder ACCESSIBLE with
	// usage_count restored, so the next GetHandle reuses it as a shared
	// re-entry; the holder makes no enlist call of its own on that
	// GetHandle. This is the default.
	PoisonPolicyKeepAccessible PoisonPolicy = iota
	// PoisonPolicyPoison marks the holder poisoned after a requeue failure.
	// Every subsequent GetHandle call returns ErrHolderPoisoned until the
	// pool closes the holder.
	PoisonPolicyPoison
)

// HolderConfig configures a single holder at construction. Unlike the
// original pool-supplied configuration reader, these values are fixed for
// the holder's lifetime; a pool wanting to change them constructs a new
// holder.
type HolderConfig struct {
	// IsolationLevel is the symbolic or numeric isolation level to apply on
	// first use after IN_POOL. Empty means "do not touch the driver
	// default".
	IsolationLevel string
	// Holdability is the symbolic holdability to apply on first use. Empty
	// means "do not touch the driver default".
	Holdability string
	// LocalAutoCommit is "true"/"false" (case-insensitive), applied only
	// when no transaction is ambient. Empty means "do not touch".
	LocalAutoCommit string
	// TestQuery, if non-empty, is prepared and executed as the validator's
	// fallback liveness probe.
	TestQuery string
	// TestTimeoutSeconds bounds both the fast-path probe and the fallback
	// query.
	TestTimeoutSeconds int
	// FastPathProbeEnabled enables the version-4 validity-probe fast path
	// when the connection implements ValidityProber.
	FastPathProbeEnabled bool
	// CacheCapacity is the prepared-statement cache's bound. Zero disables
	// caching.
	CacheCapacity int
	// PoisonPolicy selects the holder's behavior on requeue failure.
	PoisonPolicy PoisonPolicy
}

// Validate checks every field for structural validity, collecting every
// violation via errors.Join rather than stopping at the first one.
func (c HolderConfig) Validate() error {
	var errs []error
	if c.TestTimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("TestTimeoutSeconds must be >= 0, got %d", c.TestTimeoutSeconds))
	}
	if c.CacheCapacity < 0 {
		errs = append(errs, fmt.Errorf("CacheCapacity must be >= 0, got %d", c.CacheCapacity))
	}
	if c.PoisonPolicy != PoisonPolicyKeepAccessible && c.PoisonPolicy != PoisonPolicyPoison {
		errs = append(errs, fmt.Errorf("unrecognized PoisonPolicy value %d", c.PoisonPolicy))
	}
	return errors.Join(errs...)
}

// EffectiveTestTimeout returns TestTimeoutSeconds as a time.Duration.
func (c HolderConfig) EffectiveTestTimeout() time.Duration {
	return time.Duration(c.TestTimeoutSeconds) * time.Second
}
