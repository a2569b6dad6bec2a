package xaholder

import (
	"context"

	"github.com/gedmarc/xaholder/internal/core"
)

// Types consumed from and exposed by the holder. These are aliases of the
// internal/core types rather than fresh definitions: the interfaces
// themselves are passive data contracts with no internal state to hide, so
// aliasing avoids a layer of needless conversion between identical shapes.
type (
	// PreparedStatement is the holder's view of a vendor prepared
	// statement, whether obtained through the LRU cache or created
	// uncached.
	PreparedStatement = core.PreparedStatement

	// VendorConnection is the logical connection derived from a vendor XA
	// connection: the handle callers actually issue statements against.
	VendorConnection = core.VendorConnection

	// ValidityProber is an optional capability a VendorConnection may
	// implement. Its presence is the compile-time replacement for the
	// source's reflective version-4 validity probe.
	ValidityProber = core.ValidityProber

	// XAResource is the opaque view of a connection's XA resource manager
	// handle, handed to the transaction manager.
	XAResource = core.XAResource

	// VendorXAConnection is the physical vendor XA connection a holder
	// wraps.
	VendorXAConnection = core.VendorXAConnection

	// Transaction is the ambient global transaction a holder may be
	// enlisted in, as seen by the holder.
	Transaction = core.Transaction

	// TransactionManager is the external collaborator responsible for 2PC
	// coordination.
	TransactionManager = core.TransactionManager

	// PoolCallbacks is the external collaborator the holder reports back
	// to: the enclosing pool, referenced non-owningly.
	PoolCallbacks = core.PoolCallbacks

	// MetricsRecorder is an optional observability sink for acquire,
	// release, cache hit/miss, and destroy events.
	MetricsRecorder = core.MetricsRecorder

	// CacheKey is the fingerprint of a prepared statement: the SQL text
	// plus the statement-creation parameters that make two prepared
	// statements interchangeable.
	CacheKey = core.CacheKey

	// State enumerates the lifecycle states of a pooled holder.
	State = core.State

	// Holdability mirrors java.sql.ResultSet's cursor-holdability
	// constants.
	Holdability = core.Holdability

	// PoisonPolicy resolves the documented open question of whether a
	// holder should be poisoned after a requeue failure.
	PoisonPolicy = core.PoisonPolicy

	// PoolHints are the pool-level settings a holder forces at
	// construction when wrapping a last-resource-commit emulator.
	PoolHints = core.PoolHints

	// Clock provides the monotonically non-decreasing millisecond
	// timestamp used for the holder's observability dates.
	Clock = core.Clock
)

// State values.
const (
	StateInPool        = core.StateInPool
	StateAccessible    = core.StateAccessible
	StateNotAccessible = core.StateNotAccessible
	StateClosed        = core.StateClosed
)

// Holdability values.
const (
	HoldCursorsOverCommit = core.HoldCursorsOverCommit
	CloseCursorsAtCommit  = core.CloseCursorsAtCommit
)

// PoisonPolicy values.
const (
	PoisonPolicyKeepAccessible = core.PoisonPolicyKeepAccessible
	PoisonPolicyPoison         = core.PoisonPolicyPoison
)

// Holder is the pooled XA connection holder exposed upward: acquire/release
// lifecycle, observability getters, and the LRC pool hints. See
// internal/core.Holder for the implementation.
type Holder interface {
	// GetHandle acquires the holder on behalf of a caller, returning a
	// proxied logical handle. Returns ErrHolderClosed if the holder is
	// closed, or ErrHolderPoisoned if a PoisonPolicyPoison configuration
	// left it poisoned after a prior requeue failure.
	GetHandle(ctx context.Context) (Handle, error)

	// ManagementID returns the holder's operational-inspection identifier.
	ManagementID() string
	// State returns the current lifecycle state.
	State() State
	// UsageCount returns the number of outstanding logical acquisitions
	// sharing this holder.
	UsageCount() int64
	// AcquisitionDate returns the monotonic millisecond timestamp of the
	// most recent IN_POOL -> ACCESSIBLE transition.
	AcquisitionDate() int64
	// LastReleaseDate returns the monotonic millisecond timestamp the
	// holder most recently entered IN_POOL.
	LastReleaseDate() int64
	// JDBCVersion returns the cached validator-path version (3 or 4).
	JDBCVersion() int32
	// TransactionIDsHoldingThis returns the id of the transaction
	// currently ambient over this holder's usage, if any.
	TransactionIDsHoldingThis() []string
	// PoolHints reports the LRC-emulation pool hints this holder forces.
	PoolHints() PoolHints

	// Release decrements usage_count, delists from the ambient transaction
	// if enlisted, and, once usage_count reaches zero, requeues the holder
	// with the pool. Returns whether the holder returned to the pool.
	Release() (bool, error)

	// Suspend transitions an acquired holder to NOT_ACCESSIBLE.
	Suspend() error
	// Resume transitions a suspended holder back to ACCESSIBLE.
	Resume() error

	// Close destroys the holder exactly once: clears the cache,
	// unregisters from the pool, and closes both connections.
	Close() error
}

// Handle is the proxied logical handle returned by Holder.GetHandle.
type Handle interface {
	// GetCached returns the cached statement for key without creating one.
	GetCached(key CacheKey) (PreparedStatement, bool)
	// PutCached inserts stmt into the cache under key, evicting per the LRU
	// policy if necessary, and returns stmt unchanged.
	PutCached(key CacheKey, stmt PreparedStatement) PreparedStatement
	// PrepareCached returns the cached statement for key, preparing and
	// caching a new one on a miss.
	PrepareCached(ctx context.Context, key CacheKey) (PreparedStatement, error)
	// PrepareUncached prepares a statement outside the cache, registering
	// it so it is force-closed on the holder's next return to the pool.
	PrepareUncached(ctx context.Context, key CacheKey) (PreparedStatement, error)
	// CloseUncached closes a statement obtained from PrepareUncached and
	// removes it from the registry.
	CloseUncached(stmt PreparedStatement) error

	// Release returns the handle's holder to the pool if this was the last
	// outstanding acquisition.
	Release() (bool, error)
}
