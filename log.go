package xaholder

import (
	"log/slog"

	"github.com/gedmarc/xaholder/internal/core"
)

// SetLogger replaces the package-level logger used by xaholder.
// This allows applications to integrate xaholder logging with their own
// logging infrastructure. The provided logger should already have any
// desired attributes; xaholder will not add additional attributes.
//
// If l is nil, the logger resets to the default: slog.Default() with a
// "component" attribute, re-derived on the next logging call and then
// cached. Call SetLogger(nil) after slog.SetDefault() to pick up changes.
//
// SetLogger is safe to call concurrently with other xaholder operations.
//
// Example:
//
//	xaholder.SetLogger(myLogger.With("component", "xaholder"))
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}
