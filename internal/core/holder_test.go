package core

import (
	"context"
	"errors"
	"testing"
)

func newTestHolder(t *testing.T, conn VendorConnection, tm *fakeTM, pool *fakePool) *Holder {
	t.Helper()
	xaConn := &fakeXAConn{conn: conn, res: struct{}{}}
	h, err := NewHolder(xaConn, pool, tm, nil, nil, HolderConfig{CacheCapacity: 4})
	if err != nil {
		t.Fatalf("NewHolder() = %v, want nil", err)
	}
	return h
}

// TestHolder_FreshAcquireReleaseCycle covers S1: a freshly constructed
// holder starts IN_POOL; GetHandle validates once, transitions to
// ACCESSIBLE, and a single Release with no outstanding handles returns it
// to IN_POOL and requeues it with the pool.
func TestHolder_FreshAcquireReleaseCycle(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	tm := &fakeTM{}
	pool := &fakePool{name: "p1"}
	h := newTestHolder(t, conn, tm, pool)

	if h.State() != StateInPool {
		t.Fatalf("initial state = %v, want StateInPool", h.State())
	}

	handle, err := h.GetHandle(context.Background())
	if err != nil {
		t.Fatalf("GetHandle() = %v, want nil", err)
	}
	if h.State() != StateAccessible {
		t.Fatalf("state after GetHandle = %v, want StateAccessible", h.State())
	}
	if h.UsageCount() != 1 {
		t.Fatalf("UsageCount = %d, want 1", h.UsageCount())
	}
	if len(pool.acquired) != 1 || len(pool.leased) != 1 {
		t.Errorf("pool.acquired/leased = %v/%v, want one each", pool.acquired, pool.leased)
	}

	returned, err := handle.Release()
	if err != nil {
		t.Fatalf("Release() err = %v, want nil", err)
	}
	if !returned {
		t.Fatal("Release() returned = false, want true (last handle)")
	}
	if h.State() != StateInPool {
		t.Fatalf("state after Release = %v, want StateInPool", h.State())
	}
	if h.UsageCount() != 0 {
		t.Errorf("UsageCount after Release = %d, want 0", h.UsageCount())
	}
	if len(pool.requeued) != 1 {
		t.Errorf("pool.requeued = %v, want exactly one requeue", pool.requeued)
	}
}

// TestHolder_SharedReentrantAcquire covers S2: a second GetHandle while the
// holder is already ACCESSIBLE does not re-validate or re-apply config, and
// the holder only returns to the pool after the last outstanding handle
// releases.
func TestHolder_SharedReentrantAcquire(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	tm := &fakeTM{}
	pool := &fakePool{name: "p1"}
	h := newTestHolder(t, conn, tm, pool)

	h1, err := h.GetHandle(context.Background())
	if err != nil {
		t.Fatalf("first GetHandle() = %v", err)
	}
	h2, err := h.GetHandle(context.Background())
	if err != nil {
		t.Fatalf("second GetHandle() = %v", err)
	}
	if h.UsageCount() != 2 {
		t.Fatalf("UsageCount = %d, want 2", h.UsageCount())
	}
	if len(pool.acquired) != 1 {
		t.Errorf("pool.acquired = %v, want exactly one OnAcquire (second GetHandle reuses ACCESSIBLE state)", pool.acquired)
	}
	if len(pool.leased) != 2 {
		t.Errorf("pool.leased = %v, want two OnLease calls, one per handle", pool.leased)
	}

	returned, err := h1.Release()
	if err != nil {
		t.Fatalf("first Release() = %v", err)
	}
	if returned {
		t.Fatal("first Release() returned = true, want false (second handle still outstanding)")
	}
	if h.State() != StateAccessible {
		t.Fatalf("state after first release = %v, want StateAccessible", h.State())
	}

	returned, err = h2.Release()
	if err != nil {
		t.Fatalf("second Release() = %v", err)
	}
	if !returned {
		t.Fatal("second Release() returned = false, want true (last handle)")
	}
	if h.State() != StateInPool {
		t.Fatalf("state after second release = %v, want StateInPool", h.State())
	}
}

// TestHolder_UnilateralRollbackOnRelease covers S3: when delist reports a
// unilateral rollback, Release still completes (returns the holder to the
// pool) but surfaces the delist error to the caller.
func TestHolder_UnilateralRollbackOnRelease(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	tm := &fakeTM{delistErr: errFakeUnilateralRollback}
	pool := &fakePool{name: "p1"}
	h := newTestHolder(t, conn, tm, pool)

	handle, err := h.GetHandle(context.Background())
	if err != nil {
		t.Fatalf("GetHandle() = %v", err)
	}

	returned, err := handle.Release()
	if !returned {
		t.Error("Release() returned = false, want true despite unilateral rollback")
	}
	if !errors.Is(err, ErrUnilateralRollback) {
		t.Errorf("Release() err = %v, want wrapping ErrUnilateralRollback", err)
	}
	if h.State() != StateInPool {
		t.Errorf("state after release = %v, want StateInPool", h.State())
	}
}

// TestHolder_RequeueFailureRestoresUsageCount covers S4: when the pool
// fails to requeue the holder, usage_count is restored to reflect the
// caller's continued ownership, and the holder stays ACCESSIBLE.
func TestHolder_RequeueFailureRestoresUsageCount(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	tm := &fakeTM{}
	pool := &fakePool{name: "p1", requeueErr: errors.New("pool full")}
	h := newTestHolder(t, conn, tm, pool)

	handle, err := h.GetHandle(context.Background())
	if err != nil {
		t.Fatalf("GetHandle() = %v", err)
	}

	returned, err := handle.Release()
	if returned {
		t.Error("Release() returned = true, want false on requeue failure")
	}
	if !errors.Is(err, ErrRequeueFailed) {
		t.Errorf("Release() err = %v, want wrapping ErrRequeueFailed", err)
	}
	if h.UsageCount() != 1 {
		t.Errorf("UsageCount after failed requeue = %d, want restored to 1", h.UsageCount())
	}
	if h.State() != StateAccessible {
		t.Errorf("state after failed requeue = %v, want StateAccessible (unchanged)", h.State())
	}
}

func TestHolder_RequeueFailurePoisonsHolderWhenConfigured(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	tm := &fakeTM{}
	pool := &fakePool{name: "p1", requeueErr: errors.New("pool full")}
	xaConn := &fakeXAConn{conn: conn, res: struct{}{}}
	h, err := NewHolder(xaConn, pool, tm, nil, nil, HolderConfig{CacheCapacity: 4, PoisonPolicy: PoisonPolicyPoison})
	if err != nil {
		t.Fatalf("NewHolder() = %v", err)
	}

	handle, err := h.GetHandle(context.Background())
	if err != nil {
		t.Fatalf("GetHandle() = %v", err)
	}
	if _, err := handle.Release(); err == nil {
		t.Fatal("Release() err = nil, want requeue failure")
	}

	if _, err := h.GetHandle(context.Background()); !errors.Is(err, ErrHolderPoisoned) {
		t.Errorf("GetHandle() after poisoning = %v, want ErrHolderPoisoned", err)
	}
}

func TestHolder_ClosedHolderRejectsAcquire(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	tm := &fakeTM{}
	pool := &fakePool{name: "p1"}
	h := newTestHolder(t, conn, tm, pool)

	if err := h.Close(); err != nil {
		t.Fatalf("Close() = %v, want nil", err)
	}
	if h.State() != StateClosed {
		t.Fatalf("state after Close = %v, want StateClosed", h.State())
	}

	if _, err := h.GetHandle(context.Background()); !errors.Is(err, ErrHolderClosed) {
		t.Errorf("GetHandle() on closed holder = %v, want ErrHolderClosed", err)
	}
	if !conn.closed {
		t.Error("logical connection should be closed")
	}
	if !xaConnClosed(h) {
		t.Error("XA connection should be closed")
	}
}

func xaConnClosed(h *Holder) bool {
	fx, ok := h.xaConn.(*fakeXAConn)
	return ok && fx.closed
}

func TestHolder_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	tm := &fakeTM{}
	pool := &fakePool{name: "p1"}
	h := newTestHolder(t, conn, tm, pool)

	if err := h.Close(); err != nil {
		t.Fatalf("first Close() = %v, want nil", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second Close() = %v, want nil (idempotent)", err)
	}
	if len(pool.destroyed) != 1 {
		t.Errorf("pool.destroyed = %v, want exactly one OnDestroy call", pool.destroyed)
	}
}

func TestHolder_CloseFromSuspendedHopsThroughAccessible(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	tm := &fakeTM{}
	pool := &fakePool{name: "p1"}
	h := newTestHolder(t, conn, tm, pool)

	if _, err := h.GetHandle(context.Background()); err != nil {
		t.Fatalf("GetHandle() = %v", err)
	}
	if err := h.Suspend(); err != nil {
		t.Fatalf("Suspend() = %v", err)
	}
	if h.State() != StateNotAccessible {
		t.Fatalf("state after Suspend = %v, want StateNotAccessible", h.State())
	}

	if err := h.Close(); err != nil {
		t.Fatalf("Close() from suspended = %v, want nil", err)
	}
	if h.State() != StateClosed {
		t.Errorf("state after Close = %v, want StateClosed", h.State())
	}
}

func TestHolder_ResumeRecyclesTransaction(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	tm := &fakeTM{}
	pool := &fakePool{name: "p1"}
	h := newTestHolder(t, conn, tm, pool)

	if _, err := h.GetHandle(context.Background()); err != nil {
		t.Fatalf("GetHandle() = %v", err)
	}
	if err := h.Suspend(); err != nil {
		t.Fatalf("Suspend() = %v", err)
	}
	if err := h.Resume(); err != nil {
		t.Fatalf("Resume() = %v", err)
	}
	if h.State() != StateAccessible {
		t.Fatalf("state after Resume = %v, want StateAccessible", h.State())
	}
	if tm.recycleCalls.Load() != 1 {
		t.Errorf("recycleCalls = %d, want 1", tm.recycleCalls.Load())
	}
}

func TestHolder_NoLeakedUncachedStatementsAcrossReturnToPool(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	tm := &fakeTM{}
	pool := &fakePool{name: "p1"}
	h := newTestHolder(t, conn, tm, pool)

	handle, err := h.GetHandle(context.Background())
	if err != nil {
		t.Fatalf("GetHandle() = %v", err)
	}
	stmt, err := handle.PrepareUncached(context.Background(), CacheKey{SQL: "SELECT 2"})
	if err != nil {
		t.Fatalf("PrepareUncached() = %v", err)
	}

	if _, err := handle.Release(); err != nil {
		t.Fatalf("Release() = %v", err)
	}

	ps := stmt.(*fakePS)
	if !ps.closed {
		t.Error("uncached statement should be force-closed when the holder returns to the pool")
	}
}

func TestHolder_CachedStatementSurvivesReturnToPool(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	tm := &fakeTM{}
	pool := &fakePool{name: "p1"}
	h := newTestHolder(t, conn, tm, pool)

	handle, err := h.GetHandle(context.Background())
	if err != nil {
		t.Fatalf("GetHandle() = %v", err)
	}
	key := CacheKey{SQL: "SELECT 3"}
	stmt, err := handle.PrepareCached(context.Background(), key)
	if err != nil {
		t.Fatalf("PrepareCached() = %v", err)
	}

	if _, err := handle.Release(); err != nil {
		t.Fatalf("Release() = %v", err)
	}

	ps := stmt.(*fakePS)
	if ps.closed {
		t.Error("cached statement should not be closed by returning to the pool")
	}

	handle2, err := h.GetHandle(context.Background())
	if err != nil {
		t.Fatalf("second GetHandle() = %v", err)
	}
	got, ok := handle2.GetCached(key)
	if !ok || got != stmt {
		t.Errorf("GetCached() = %v, %v, want the previously cached statement", got, ok)
	}
}

func TestHolder_AcquireValidatesOnlyOnTransitionFromInPool(t *testing.T) {
	t.Parallel()

	probe := &fakeProbe{valid: true}
	conn := newProbingConn(probe)
	tm := &fakeTM{}
	pool := &fakePool{name: "p1"}
	xaConn := &fakeXAConn{conn: conn, res: struct{}{}}
	h, err := NewHolder(xaConn, pool, tm, nil, nil, HolderConfig{CacheCapacity: 4, FastPathProbeEnabled: true, TestTimeoutSeconds: 1})
	if err != nil {
		t.Fatalf("NewHolder() = %v", err)
	}

	if _, err := h.GetHandle(context.Background()); err != nil {
		t.Fatalf("first GetHandle() = %v", err)
	}
	if _, err := h.GetHandle(context.Background()); err != nil {
		t.Fatalf("second GetHandle() = %v", err)
	}
	if probe.calls.Load() != 1 {
		t.Errorf("probe calls = %d, want 1 (validated only once per pool departure)", probe.calls.Load())
	}
}

func TestHolder_AcquireFailsValidationRestoresUsageCount(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{prepareErr: errors.New("gone")}
	tm := &fakeTM{}
	pool := &fakePool{name: "p1"}
	h := newTestHolder(t, conn, tm, pool)
	h.cfg.TestQuery = "SELECT 1"

	if _, err := h.GetHandle(context.Background()); !errors.Is(err, ErrConnectionDead) {
		t.Fatalf("GetHandle() = %v, want ErrConnectionDead", err)
	}
	if h.UsageCount() != 0 {
		t.Errorf("UsageCount after failed validation = %d, want 0 (restored)", h.UsageCount())
	}
	if h.State() != StateAccessible {
		t.Errorf("state after failed validation = %v, want StateAccessible (left as-is, not reverted)", h.State())
	}
}
