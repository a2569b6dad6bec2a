package core

import (
	"context"
	"time"
)

// PreparedStatement is the holder's view of a vendor prepared statement,
// whether obtained through the LRU cache or created uncached. Execute and
// SetQueryTimeout are only exercised by the validator's fallback query path;
// cached statements otherwise pass straight through to the caller.
type PreparedStatement interface {
	SetQueryTimeout(seconds int) error
	Execute(ctx context.Context) error
	Close() error
}

// VendorConnection is the logical connection derived from a vendor XA
// connection: the handle callers actually issue statements against.
type VendorConnection interface {
	PrepareStatement(ctx context.Context, key CacheKey) (PreparedStatement, error)
	SetTransactionIsolation(level int) error
	SetHoldability(holdability int) error
	SetAutoCommit(enabled bool) error
	ClearWarnings() error
	Close() error
}

// ValidityProber is an optional capability a VendorConnection may implement.
// Its presence replaces the reflective version-4 validity probe: a
// connection that implements it is attempted at the fast path; one that
// does not is treated as permanently below the probe-capable version.
type ValidityProber interface {
	IsValid(ctx context.Context, timeout time.Duration) (bool, error)
}

// XAResource is the opaque view of the connection's XA resource manager
// handle, handed to the transaction manager. The holder never calls methods
// on it directly; it is a pass-through value.
type XAResource interface{}

// VendorXAConnection is the physical vendor XA connection a holder wraps.
type VendorXAConnection interface {
	LogicalConnection() (VendorConnection, error)
	XAResource() XAResource
	Close() error
}

// Transaction is the ambient global transaction a holder may be enlisted
// in, as seen by the holder.
type Transaction interface {
	ID() string
}

// TransactionManager is the external collaborator responsible for 2PC
// coordination. The holder only ever asks it for the current transaction,
// asks it to delist, and asks it to recycle (re-enlist) on resume.
type TransactionManager interface {
	CurrentTransaction() (Transaction, bool)
	DelistFromCurrent(resource XAResource) error
	Recycle(resource XAResource) error
}

// PoolCallbacks is the external collaborator the holder reports back to:
// the enclosing pool, referenced non-owningly. It supplies the pieces of
// pool state the holder needs but never implements: management-id minting,
// unregistration, requeue, and the on_acquire/on_lease/on_release/on_destroy
// event hooks.
type PoolCallbacks interface {
	// PoolName returns the pool's sanitized unique name, used to compose the
	// holder's management id.
	PoolName() string
	// NextManagementSequence returns the next value of the pool's
	// monotonically increasing management-id counter.
	NextManagementSequence() uint64
	// Unregister removes the holder from operational inspection.
	Unregister(mgmtID string)
	// Requeue returns the holder to the pool's free list. Any error is
	// surfaced to the caller of Release as ErrRequeueFailed.
	Requeue(mgmtID string) error
	// IsLRCEmulation reports whether the underlying data source is the
	// last-resource-commit emulator, forcing the holder's LRC pool hints.
	IsLRCEmulation() bool

	OnAcquire(mgmtID string)
	OnLease(mgmtID string)
	OnRelease(mgmtID string)
	OnDestroy(mgmtID string)
}

// MetricsRecorder is an optional observability sink distinct from
// PoolCallbacks' required event hooks. A nil recorder is replaced with a
// no-op implementation; see NopRecorder.
type MetricsRecorder interface {
	Acquire(mgmtID string)
	Release(mgmtID string)
	CacheHit(mgmtID string)
	CacheMiss(mgmtID string)
	Destroy(mgmtID string)
}

// NopRecorder is a MetricsRecorder that discards every event.
type NopRecorder struct{}

func (NopRecorder) Acquire(string)   {}
func (NopRecorder) Release(string)   {}
func (NopRecorder) CacheHit(string)  {}
func (NopRecorder) CacheMiss(string) {}
func (NopRecorder) Destroy(string)   {}
