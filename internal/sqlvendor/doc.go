// Package sqlvendor is a reference implementation of the holder's
// vendor-facing interfaces (core.VendorXAConnection, core.VendorConnection,
// core.PreparedStatement) built on database/sql and modernc.org/sqlite. It
// stands in for the wire-protocol proxying of the vendor connection handle
// that the holder itself keeps out of scope, giving the module one concrete,
// runnable connection source for tests and examples.
//
// True XA prepare/commit/rollback is not implemented here: a real resource
// manager's XA support belongs to the transaction manager this module does
// not implement. XAResource returns an opaque handle only identity-relevant
// to that external collaborator.
package sqlvendor
