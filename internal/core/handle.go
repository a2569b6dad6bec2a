package core

import "context"

// Handle is the proxied logical handle returned by Holder.GetHandle. It is
// the object application code actually interacts with: it forwards cache
// and uncached-registry operations to its owning holder, and forwards
// Release to let the pool reclaim the holder once the caller is done.
//
// Multiple handles may be outstanding for the same holder at once (shared
// re-entrant acquisition); they all share the same underlying cache and
// uncached registry, since those belong to the holder, not the handle.
type Handle struct {
	holder *Holder
}

func newHandle(h *Holder) *Handle {
	return &Handle{holder: h}
}

// Holder returns the underlying holder, the escape hatch for the
// observability getters (state, usage_count, acquisition_date,
// last_release_date, jdbc_version, transaction_ids_holding_this).
func (p *Handle) Holder() *Holder { return p.holder }

// GetCached returns the cached statement for key without creating one.
func (p *Handle) GetCached(key CacheKey) (PreparedStatement, bool) {
	return p.holder.cache.Get(key)
}

// PutCached inserts stmt into the cache under key, evicting per the LRU
// policy if necessary, and returns stmt unchanged.
func (p *Handle) PutCached(key CacheKey, stmt PreparedStatement) PreparedStatement {
	return p.holder.cache.Put(key, stmt)
}

// PrepareCached returns the cached statement for key if present, recording
// a cache hit; otherwise it prepares a new statement against the logical
// connection, caches it, and records a cache miss.
func (p *Handle) PrepareCached(ctx context.Context, key CacheKey) (PreparedStatement, error) {
	if stmt, ok := p.holder.cache.Get(key); ok {
		p.holder.metrics.CacheHit(p.holder.mgmtID)
		return stmt, nil
	}
	p.holder.metrics.CacheMiss(p.holder.mgmtID)
	stmt, err := p.holder.logicalConn.PrepareStatement(ctx, key)
	if err != nil {
		return nil, err
	}
	return p.holder.cache.Put(key, stmt), nil
}

// PrepareUncached prepares a statement outside the cache and registers it so
// it can be force-closed on the holder's next return to IN_POOL or
// NOT_ACCESSIBLE.
func (p *Handle) PrepareUncached(ctx context.Context, key CacheKey) (PreparedStatement, error) {
	stmt, err := p.holder.logicalConn.PrepareStatement(ctx, key)
	if err != nil {
		return nil, err
	}
	p.holder.uncached.Register(stmt)
	return stmt, nil
}

// CloseUncached closes a statement obtained from PrepareUncached and removes
// it from the registry. Safe to call even if the holder already flushed it;
// Unregister simply reports false in that case and Close proceeds.
func (p *Handle) CloseUncached(stmt PreparedStatement) error {
	p.holder.uncached.Unregister(stmt)
	return stmt.Close()
}

// Release returns the handle's holder to the pool if this was the last
// outstanding acquisition. See Holder.Release.
func (p *Handle) Release() (bool, error) {
	return p.holder.Release()
}
