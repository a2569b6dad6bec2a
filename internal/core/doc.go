// Package core implements the pooled XA connection holder: a state machine
// governing a single pooled connection's lifecycle, its interaction with the
// enclosing pool and ambient global transaction, validation-on-acquire,
// deferred release while enlisted, uncached-statement tracking for
// leak-safe return, and a bounded LRU statement cache with eviction-close
// semantics.
//
// The transaction manager, persistent journal, pool allocator, and
// management registrar are external collaborators consumed only through the
// interfaces in interfaces.go; this package implements none of them.
package core
