package sqlvendor

import (
	"context"
	"database/sql"
	"time"
)

// Stmt adapts *sql.Stmt to core.PreparedStatement.
type Stmt struct {
	stmt         *sql.Stmt
	queryTimeout time.Duration
}

// SetQueryTimeout records the timeout applied to subsequent Execute calls.
func (s *Stmt) SetQueryTimeout(seconds int) error {
	s.queryTimeout = time.Duration(seconds) * time.Second
	return nil
}

// Execute runs the statement as a query and discards its rows, which is
// sufficient for the liveness-probe fallback (a configured test query such
// as "SELECT 1") and for exercising statements fetched from the cache.
func (s *Stmt) Execute(ctx context.Context) error {
	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}
	rows, err := s.stmt.QueryContext(ctx)
	if err != nil {
		return err
	}
	return rows.Close()
}

// Close closes the underlying *sql.Stmt.
func (s *Stmt) Close() error {
	return s.stmt.Close()
}
