package sqlvendor

import (
	"context"
	"database/sql"
	"time"

	"github.com/gedmarc/xaholder/internal/core"
)

// Conn adapts a *sql.Conn to core.VendorConnection, and additionally
// implements core.ValidityProber via PingContext.
//
// database/sql has no per-connection isolation/holdability/auto-commit
// setters; SQLite itself has no holdability concept and manages
// transactions implicitly. These methods are therefore best-effort: where
// SQLite offers an equivalent PRAGMA they apply it, and otherwise they accept
// the request as a no-op rather than fail the caller over a driver limitation, matching
// this module's broader warn-and-continue posture for configuration it
// cannot strictly enforce.
type Conn struct {
	sqlConn *sql.Conn
}

// PrepareStatement prepares key.SQL against the connection.
func (c *Conn) PrepareStatement(ctx context.Context, key core.CacheKey) (core.PreparedStatement, error) {
	stmt, err := c.sqlConn.PrepareContext(ctx, key.SQL)
	if err != nil {
		return nil, err
	}
	return &Stmt{stmt: stmt}, nil
}

// SetTransactionIsolation maps the numeric isolation level onto SQLite's
// read_uncommitted PRAGMA where applicable; other levels are accepted and
// otherwise left to SQLite's default serializable behavior.
func (c *Conn) SetTransactionIsolation(level int) error {
	// SQLite does not accept a bound parameter as a PRAGMA value, so the
	// value is written into the statement text.
	pragma := "PRAGMA read_uncommitted = 0"
	if level == int(sql.LevelReadUncommitted) {
		pragma = "PRAGMA read_uncommitted = 1"
	}
	_, err := c.sqlConn.ExecContext(context.Background(), pragma)
	return err
}

// SetHoldability is a no-op: SQLite has no cursor-holdability concept.
func (c *Conn) SetHoldability(holdability int) error {
	return nil
}

// SetAutoCommit is a no-op: SQLite connections obtained through
// database/sql are always in autocommit mode outside an explicit
// transaction, which this adapter never opens on the caller's behalf.
func (c *Conn) SetAutoCommit(enabled bool) error {
	return nil
}

// ClearWarnings is a no-op: database/sql surfaces driver issues as errors,
// not as a separate warnings chain.
func (c *Conn) ClearWarnings() error {
	return nil
}

// Close closes the underlying *sql.Conn.
func (c *Conn) Close() error {
	return c.sqlConn.Close()
}

// IsValid implements core.ValidityProber via a context-bounded ping.
func (c *Conn) IsValid(ctx context.Context, timeout time.Duration) (bool, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := c.sqlConn.PingContext(ctx); err != nil {
		return false, err
	}
	return true, nil
}
