package sqlvendor

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gedmarc/xaholder/internal/core"
	_ "modernc.org/sqlite"
)

// resourceHandle is the opaque XA resource manager handle handed to the
// transaction manager. Its only role here is identity: equality and a
// readable branch qualifier for logging.
type resourceHandle struct {
	branch string
}

func (r *resourceHandle) String() string { return r.branch }

// XAConn adapts a single database/sql connection, carved out of a *sql.DB,
// to core.VendorXAConnection.
type XAConn struct {
	db   *sql.DB
	conn *sql.Conn
	res  *resourceHandle
}

// NewXAConnection opens driverName/dsn (typically "sqlite" and a file or
// ":memory:" path) and carves out a single dedicated *sql.Conn, mirroring
// a pool allocator obtaining one physical connection per holder.
func NewXAConnection(ctx context.Context, branch, driverName, dsn string) (*XAConn, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlvendor: open %s: %w", driverName, err)
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlvendor: obtain connection: %w", err)
	}
	return &XAConn{db: db, conn: conn, res: &resourceHandle{branch: branch}}, nil
}

// LogicalConnection returns the connection callers issue statements
// against.
func (x *XAConn) LogicalConnection() (core.VendorConnection, error) {
	return &Conn{sqlConn: x.conn}, nil
}

// XAResource returns the opaque resource-manager handle for this connection.
func (x *XAConn) XAResource() core.XAResource {
	return x.res
}

// Close closes the dedicated connection, then the *sql.DB it was carved
// from.
func (x *XAConn) Close() error {
	err := x.conn.Close()
	if cerr := x.db.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
