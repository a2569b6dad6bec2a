package core

import (
	"database/sql"
	"strconv"
	"strings"
)

// isolationNames maps the symbolic isolation level names to the
// database/sql constant vocabulary, reusing the standard library's
// integers instead of inventing a parallel dictionary.
var isolationNames = map[string]sql.IsolationLevel{
	"NONE":             sql.LevelDefault,
	"READ_UNCOMMITTED": sql.LevelReadUncommitted,
	"READ_COMMITTED":   sql.LevelReadCommitted,
	"REPEATABLE_READ":  sql.LevelRepeatableRead,
	"SERIALIZABLE":     sql.LevelSerializable,
	"SNAPSHOT":         sql.LevelSnapshot,
	"LINEARIZABLE":     sql.LevelLinearizable,
}

var holdabilityNames = map[string]Holdability{
	"HOLD_CURSORS_OVER_COMMIT": HoldCursorsOverCommit,
	"CLOSE_CURSORS_AT_COMMIT":  CloseCursorsAtCommit,
}

// ApplyConnectionConfig runs C6's three independent configuration steps
// against conn, each a no-op if the corresponding HolderConfig string is
// empty. hasAmbientTransaction gates the auto-commit step, since
// auto-commit inside an enlisted connection is meaningless.
func ApplyConnectionConfig(conn VendorConnection, cfg HolderConfig, hasAmbientTransaction bool) {
	applyIsolation(conn, cfg.IsolationLevel)
	applyHoldability(conn, cfg.Holdability)
	if !hasAmbientTransaction {
		applyAutoCommit(conn, cfg.LocalAutoCommit)
	}
}

func applyIsolation(conn VendorConnection, name string) {
	if name == "" {
		return
	}
	if level, ok := isolationNames[strings.ToUpper(name)]; ok {
		if err := conn.SetTransactionIsolation(int(level)); err != nil {
			Logger().Warn("configapply: failed to set transaction isolation", "level", name, "error", err)
		}
		return
	}
	if n, err := strconv.Atoi(name); err == nil {
		if err := conn.SetTransactionIsolation(n); err != nil {
			Logger().Warn("configapply: failed to set transaction isolation", "level", name, "error", err)
		}
		return
	}
	Logger().Warn("configapply: unknown isolation level, keeping driver default", "level", name)
}

func applyHoldability(conn VendorConnection, name string) {
	if name == "" {
		return
	}
	holdability, ok := holdabilityNames[strings.ToUpper(name)]
	if !ok {
		Logger().Warn("configapply: unknown holdability, keeping driver default", "holdability", name)
		return
	}
	if err := conn.SetHoldability(int(holdability)); err != nil {
		Logger().Warn("configapply: failed to set holdability", "holdability", name, "error", err)
	}
}

func applyAutoCommit(conn VendorConnection, value string) {
	if value == "" {
		return
	}
	switch strings.ToLower(value) {
	case "true":
		if err := conn.SetAutoCommit(true); err != nil {
			Logger().Warn("configapply: failed to set auto-commit", "value", value, "error", err)
		}
	case "false":
		if err := conn.SetAutoCommit(false); err != nil {
			Logger().Warn("configapply: failed to set auto-commit", "value", value, "error", err)
		}
	default:
		Logger().Warn("configapply: unrecognized auto-commit value, keeping driver default", "value", value)
	}
}
