package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// PoolHints are the pool-level settings a holder forces at construction when
// the underlying data source is the last-resource-commit emulator (§4.7):
// two-phase ordering last, deferred release, and TM-join. The pool itself is
// out of scope for this module, so the holder only exposes the computed
// hints for an external pool implementation to read and honor.
type PoolHints struct {
	TwoPhaseOrderingLast bool
	DeferredRelease      bool
	TMJoin               bool
}

// Holder is the central component: it aggregates the monotonic clock, state
// machine, statement cache, uncached registry, validator, and configuration
// applier, and implements acquire/release/close with shared-usage counting
// and transaction enlist/delist handoff.
type Holder struct {
	xaConn      VendorXAConnection
	logicalConn VendorConnection
	xaResource  XAResource

	pool PoolCallbacks
	tm   TransactionManager

	cache    *StmtCache[PreparedStatement]
	uncached *UncachedRegistry[PreparedStatement]
	state    *Machine
	clock    Clock
	validate *Validator
	metrics  MetricsRecorder

	cfg    HolderConfig
	mgmtID string

	usageCount      atomic.Int64
	acquisitionDate atomic.Int64
	lastReleaseDate atomic.Int64
	jdbcVersion     atomic.Int32
	poisoned        atomic.Bool

	// acquireMu serializes the acquire/release/close sequences on this
	// holder, matching the requirement that these operations are
	// serialized per holder.
	acquireMu sync.Mutex
}

// NewHolder constructs a holder wrapping a freshly obtained vendor XA
// connection. The holder starts in StateInPool with last_release_date set
// to now. jdbc_version starts at 4 (the validator downgrades it to 3 the
// first time the fast-path probe fails or is unavailable).
func NewHolder(xaConn VendorXAConnection, pool PoolCallbacks, tm TransactionManager, clock Clock, metrics MetricsRecorder, cfg HolderConfig) (*Holder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("xaholder: invalid holder config: %w", err)
	}
	if metrics == nil {
		metrics = NopRecorder{}
	}
	if clock == nil {
		clock = NewMonotonicClock()
	}

	logicalConn, err := xaConn.LogicalConnection()
	if err != nil {
		return nil, fmt.Errorf("xaholder: obtain logical connection: %w", err)
	}

	h := &Holder{
		xaConn:      xaConn,
		logicalConn: logicalConn,
		xaResource:  xaConn.XAResource(),
		pool:        pool,
		tm:          tm,
		cache:       NewStmtCache[PreparedStatement](cfg.CacheCapacity),
		uncached:    NewUncachedRegistry[PreparedStatement](),
		clock:       clock,
		validate:    NewValidator(),
		metrics:     metrics,
		cfg:         cfg,
		mgmtID:      NewManagementID(pool.PoolName(), pool.NextManagementSequence()),
	}
	h.jdbcVersion.Store(4)
	h.lastReleaseDate.Store(clock.Millis())
	h.state = NewMachine(StateInPool, h)
	return h, nil
}

// PoolHints reports the LRC-emulation pool hints computed from
// PoolCallbacks.IsLRCEmulation.
func (h *Holder) PoolHints() PoolHints {
	lrc := h.pool.IsLRCEmulation()
	return PoolHints{TwoPhaseOrderingLast: lrc, DeferredRelease: lrc, TMJoin: lrc}
}

// ManagementID returns the holder's operational-inspection identifier.
func (h *Holder) ManagementID() string { return h.mgmtID }

// State returns the current lifecycle state.
func (h *Holder) State() State { return h.state.State() }

// UsageCount returns the number of outstanding logical acquisitions sharing
// this holder.
func (h *Holder) UsageCount() int64 { return h.usageCount.Load() }

// AcquisitionDate returns the monotonic millisecond timestamp of the most
// recent IN_POOL -> ACCESSIBLE transition.
func (h *Holder) AcquisitionDate() int64 { return h.acquisitionDate.Load() }

// LastReleaseDate returns the monotonic millisecond timestamp the holder
// most recently entered IN_POOL.
func (h *Holder) LastReleaseDate() int64 { return h.lastReleaseDate.Load() }

// JDBCVersion returns the cached validator-path version (3 or 4).
func (h *Holder) JDBCVersion() int32 { return h.jdbcVersion.Load() }

// TransactionIDsHoldingThis returns the id of the transaction currently
// ambient over this holder's usage, if any. All logical handles sharing a
// holder participate in the same ambient transaction, so at most one id is
// ever returned.
func (h *Holder) TransactionIDsHoldingThis() []string {
	if tx, ok := h.tm.CurrentTransaction(); ok {
		return []string{tx.ID()}
	}
	return nil
}

// GetHandle acquires the holder on behalf of a caller, returning a proxied
// logical handle. See §4.7 for the exact acquire algorithm this implements.
func (h *Holder) GetHandle(ctx context.Context) (*Handle, error) {
	h.acquireMu.Lock()
	defer h.acquireMu.Unlock()

	old := h.state.State()
	if old == StateClosed {
		return nil, ErrHolderClosed
	}

	if h.poisoned.Load() {
		return nil, ErrHolderPoisoned
	}

	count := h.usageCount.Add(1)

	if count == 1 || old == StateNotAccessible {
		if err := h.state.Transition(StateAccessible); err != nil {
			h.usageCount.Add(-1)
			return nil, err
		}
	}

	if old == StateInPool {
		h.pool.OnAcquire(h.mgmtID)

		if err := h.validate.Validate(ctx, h.logicalConn, h.cfg, &h.jdbcVersion); err != nil {
			h.usageCount.Add(-1)
			return nil, err
		}

		_, hasTx := h.tm.CurrentTransaction()
		ApplyConnectionConfig(h.logicalConn, h.cfg, hasTx)
	}

	h.pool.OnLease(h.mgmtID)
	h.metrics.Acquire(h.mgmtID)
	return newHandle(h), nil
}

// Release implements the release algorithm of §4.7, returning whether the
// holder returned to the pool (final usage_count == 0).
func (h *Holder) Release() (bool, error) {
	h.acquireMu.Lock()
	defer h.acquireMu.Unlock()

	count := h.usageCount.Add(-1)

	var releaseErr error
	if err := h.tm.DelistFromCurrent(h.xaResource); err != nil {
		if errors.Is(err, ErrUnilateralRollback) {
			releaseErr = fmt.Errorf("xaholder: release: delist: %w", err)
		} else {
			releaseErr = fmt.Errorf("xaholder: release: delist: %w: %v", ErrDelistFailed, err)
		}
	}

	if count != 0 {
		return false, releaseErr
	}

	h.pool.OnRelease(h.mgmtID)
	h.metrics.Release(h.mgmtID)

	if err := h.pool.Requeue(h.mgmtID); err != nil {
		// Restore usage_count: a holder failing to return to the pool must
		// remain owned by the caller.
		h.usageCount.Add(1)
		if h.cfg.PoisonPolicy == PoisonPolicyPoison {
			h.poisoned.Store(true)
		}
		// A requeue failure masks any earlier delist failure: an
		// un-requeued holder is a leak and the more severe report.
		return false, fmt.Errorf("xaholder: release: requeue: %w: %v", ErrRequeueFailed, err)
	}

	if err := h.state.Transition(StateInPool); err != nil && releaseErr == nil {
		releaseErr = err
	}
	return true, releaseErr
}

// Suspend transitions an acquired holder to NOT_ACCESSIBLE, typically
// called by the transaction manager when the ambient transaction is
// suspended.
func (h *Holder) Suspend() error {
	h.acquireMu.Lock()
	defer h.acquireMu.Unlock()
	return h.state.Transition(StateNotAccessible)
}

// Resume transitions a suspended holder back to ACCESSIBLE, re-enlisting it
// in the ambient transaction via PostTransition's recycle hook.
func (h *Holder) Resume() error {
	h.acquireMu.Lock()
	defer h.acquireMu.Unlock()
	return h.state.Transition(StateAccessible)
}

// Close destroys the holder exactly once: clears the statement cache,
// unregisters from the pool, and closes the logical and XA connections in
// order, running the second close even if the first fails.
func (h *Holder) Close() error {
	h.acquireMu.Lock()
	defer h.acquireMu.Unlock()

	if h.state.State() == StateClosed {
		return nil
	}

	if n := h.usageCount.Load(); n > 0 {
		Logger().Warn("holder: closing with outstanding usage", "mgmt_id", h.mgmtID, "usage_count", n)
	}

	// CLOSED is only a listed successor of IN_POOL and ACCESSIBLE; resume
	// through ACCESSIBLE first if the holder is currently suspended so
	// shutdown can always proceed.
	if h.state.State() == StateNotAccessible {
		if err := h.state.Transition(StateAccessible); err != nil {
			return err
		}
	}
	if err := h.state.Transition(StateClosed); err != nil {
		return err
	}

	h.cache.Clear()
	h.pool.Unregister(h.mgmtID)

	var closeErr error
	if err := h.logicalConn.Close(); err != nil {
		closeErr = err
		Logger().Warn("holder: failed to close logical connection", "mgmt_id", h.mgmtID, "error", err)
	}
	if err := h.xaConn.Close(); err != nil {
		Logger().Warn("holder: failed to close XA connection", "mgmt_id", h.mgmtID, "error", err)
		if closeErr == nil {
			closeErr = err
		} else {
			closeErr = errors.Join(closeErr, err)
		}
	}

	h.pool.OnDestroy(h.mgmtID)
	h.metrics.Destroy(h.mgmtID)
	return closeErr
}

// PreTransition implements StateListener: flushes uncached statements and
// clears connection warnings before the holder becomes IN_POOL or
// NOT_ACCESSIBLE, guaranteeing both have happened before the new state is
// visible to PostTransition listeners.
func (h *Holder) PreTransition(old, new State) {
	if new != StateInPool && new != StateNotAccessible {
		return
	}
	h.uncached.Flush()
	if err := h.logicalConn.ClearWarnings(); err != nil {
		Logger().Warn("holder: failed to clear connection warnings", "mgmt_id", h.mgmtID, "error", err)
	}
}

// PostTransition implements StateListener: refreshes timestamps and, on
// resume from NOT_ACCESSIBLE, re-enlists in the ambient transaction.
func (h *Holder) PostTransition(old, new State) {
	now := h.clock.Millis()
	switch {
	case new == StateInPool:
		h.lastReleaseDate.Store(now)
	case old == StateInPool && new == StateAccessible:
		h.acquisitionDate.Store(now)
	case old == StateNotAccessible && new == StateAccessible:
		if err := h.tm.Recycle(h.xaResource); err != nil {
			Logger().Warn("holder: recycle on resume failed", "mgmt_id", h.mgmtID, "error", err)
		}
	}
}
