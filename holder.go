package xaholder

import (
	"context"

	"github.com/gedmarc/xaholder/internal/core"
)

// holderWrapper implements Holder by delegating to an internal/core.Holder,
// hiding the concrete internal type behind the public interface.
type holderWrapper struct {
	h *core.Holder
}

func (w *holderWrapper) GetHandle(ctx context.Context) (Handle, error) {
	h, err := w.h.GetHandle(ctx)
	if err != nil {
		return nil, err
	}
	return &handleWrapper{h: h}, nil
}

func (w *holderWrapper) ManagementID() string                { return w.h.ManagementID() }
func (w *holderWrapper) State() State                        { return w.h.State() }
func (w *holderWrapper) UsageCount() int64                   { return w.h.UsageCount() }
func (w *holderWrapper) AcquisitionDate() int64              { return w.h.AcquisitionDate() }
func (w *holderWrapper) LastReleaseDate() int64              { return w.h.LastReleaseDate() }
func (w *holderWrapper) JDBCVersion() int32                  { return w.h.JDBCVersion() }
func (w *holderWrapper) TransactionIDsHoldingThis() []string { return w.h.TransactionIDsHoldingThis() }
func (w *holderWrapper) PoolHints() PoolHints                { return w.h.PoolHints() }
func (w *holderWrapper) Release() (bool, error)              { return w.h.Release() }
func (w *holderWrapper) Suspend() error                      { return w.h.Suspend() }
func (w *holderWrapper) Resume() error                       { return w.h.Resume() }
func (w *holderWrapper) Close() error                        { return w.h.Close() }

// handleWrapper implements Handle by delegating to an internal/core.Handle.
type handleWrapper struct {
	h *core.Handle
}

func (p *handleWrapper) GetCached(key CacheKey) (PreparedStatement, bool) {
	return p.h.GetCached(key)
}

func (p *handleWrapper) PutCached(key CacheKey, stmt PreparedStatement) PreparedStatement {
	return p.h.PutCached(key, stmt)
}

func (p *handleWrapper) PrepareCached(ctx context.Context, key CacheKey) (PreparedStatement, error) {
	return p.h.PrepareCached(ctx, key)
}

func (p *handleWrapper) PrepareUncached(ctx context.Context, key CacheKey) (PreparedStatement, error) {
	return p.h.PrepareUncached(ctx, key)
}

func (p *handleWrapper) CloseUncached(stmt PreparedStatement) error {
	return p.h.CloseUncached(stmt)
}

func (p *handleWrapper) Release() (bool, error) {
	return p.h.Release()
}
