package core

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// fakePS is a core.PreparedStatement double used across validator and
// holder tests.
type fakePS struct {
	closed      bool
	execErr     error
	timeout     int
	execCalls   atomic.Int32
}

func (s *fakePS) SetQueryTimeout(seconds int) error {
	s.timeout = seconds
	return nil
}

func (s *fakePS) Execute(ctx context.Context) error {
	s.execCalls.Add(1)
	return s.execErr
}

func (s *fakePS) Close() error {
	s.closed = true
	return nil
}

// fakeConn is a core.VendorConnection double. It does not implement
// core.ValidityProber, whatever its probe field holds; probingConn below
// wraps it with a fakeProbe for that.
type fakeConn struct {
	prepareErr      error
	lastPreparedKey CacheKey
	isolation       int
	holdability     int
	autoCommit      *bool
	warningsCleared int
	closed          bool

	probe *fakeProbe
}

func (c *fakeConn) PrepareStatement(ctx context.Context, key CacheKey) (PreparedStatement, error) {
	c.lastPreparedKey = key
	if c.prepareErr != nil {
		return nil, c.prepareErr
	}
	return &fakePS{}, nil
}

func (c *fakeConn) SetTransactionIsolation(level int) error {
	c.isolation = level
	return nil
}

func (c *fakeConn) SetHoldability(holdability int) error {
	c.holdability = holdability
	return nil
}

func (c *fakeConn) SetAutoCommit(enabled bool) error {
	c.autoCommit = &enabled
	return nil
}

func (c *fakeConn) ClearWarnings() error {
	c.warningsCleared++
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

// fakeProbe is a core.ValidityProber double. Embedding it, as probingConn
// does, is the only way a fake connection gains IsValid.
type fakeProbe struct {
	valid   bool
	err     error
	calls   atomic.Int32
	timeout time.Duration
}

func (p *fakeProbe) IsValid(ctx context.Context, timeout time.Duration) (bool, error) {
	p.calls.Add(1)
	p.timeout = timeout
	return p.valid, p.err
}

// probingConn composes fakeConn with fakeProbe so the result implements
// both VendorConnection and ValidityProber.
type probingConn struct {
	*fakeConn
	*fakeProbe
}

func newProbingConn(probe *fakeProbe) *probingConn {
	return &probingConn{fakeConn: &fakeConn{}, fakeProbe: probe}
}

var errFakeUnilateralRollback = errors.Join(ErrUnilateralRollback, errors.New("tm: already rolled back"))

// fakeTM is a core.TransactionManager double.
type fakeTM struct {
	currentTx     Transaction
	hasTx         bool
	delistErr     error
	recycleErr    error
	delistCalls   atomic.Int32
	recycleCalls  atomic.Int32
}

func (tm *fakeTM) CurrentTransaction() (Transaction, bool) {
	return tm.currentTx, tm.hasTx
}

func (tm *fakeTM) DelistFromCurrent(resource XAResource) error {
	tm.delistCalls.Add(1)
	return tm.delistErr
}

func (tm *fakeTM) Recycle(resource XAResource) error {
	tm.recycleCalls.Add(1)
	return tm.recycleErr
}

type fakeTx struct{ id string }

func (t fakeTx) ID() string { return t.id }

// fakePool is a core.PoolCallbacks double.
type fakePool struct {
	name         string
	seq          atomic.Uint64
	lrc          bool
	requeueErr   error
	unregistered []string
	requeued     []string
	acquired     []string
	leased       []string
	released     []string
	destroyed    []string
}

func (p *fakePool) PoolName() string { return p.name }

func (p *fakePool) NextManagementSequence() uint64 {
	return p.seq.Add(1)
}

func (p *fakePool) Unregister(mgmtID string) {
	p.unregistered = append(p.unregistered, mgmtID)
}

func (p *fakePool) Requeue(mgmtID string) error {
	p.requeued = append(p.requeued, mgmtID)
	return p.requeueErr
}

func (p *fakePool) IsLRCEmulation() bool { return p.lrc }

func (p *fakePool) OnAcquire(mgmtID string) { p.acquired = append(p.acquired, mgmtID) }
func (p *fakePool) OnLease(mgmtID string)   { p.leased = append(p.leased, mgmtID) }
func (p *fakePool) OnRelease(mgmtID string) { p.released = append(p.released, mgmtID) }
func (p *fakePool) OnDestroy(mgmtID string) { p.destroyed = append(p.destroyed, mgmtID) }

// fakeXAConn is a core.VendorXAConnection double.
type fakeXAConn struct {
	conn       VendorConnection
	res        XAResource
	closed     bool
	logicalErr error
}

func (x *fakeXAConn) LogicalConnection() (VendorConnection, error) {
	if x.logicalErr != nil {
		return nil, x.logicalErr
	}
	return x.conn, nil
}

func (x *fakeXAConn) XAResource() XAResource { return x.res }

func (x *fakeXAConn) Close() error {
	x.closed = true
	return nil
}
