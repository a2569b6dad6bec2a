// Package xaholder implements the pooled XA connection holder and its
// companion prepared-statement cache: the state machine governing a single
// pooled connection's lifecycle, its interaction with the enclosing pool and
// the ambient global transaction, validation-on-acquire, deferred release
// while enlisted, uncached-statement tracking for leak-safe return, and a
// bounded LRU statement cache with eviction-close semantics.
//
// The XA transaction manager and 2PC protocol engine, the persistent
// journal, the pool allocator and shrinking scheduler, and JMX/management
// registration are external collaborators, consumed only through the
// PoolCallbacks and TransactionManager interfaces; this package implements
// none of them.
//
// Typical usage:
//
//	holder, err := xaholder.NewHolder(xaConn, pool, tm,
//		xaholder.WithTestQuery("SELECT 1"),
//		xaholder.WithCacheCapacity(16),
//	)
//	if err != nil {
//		return err
//	}
//	handle, err := holder.GetHandle(ctx)
//	if err != nil {
//		return err
//	}
//	defer handle.Release()
package xaholder
