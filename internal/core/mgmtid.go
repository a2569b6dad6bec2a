package core

import (
	"fmt"
	"strings"
)

// subsystemTag identifies this subsystem in every management id, so ids
// minted by this module are distinguishable from those of unrelated
// resources registered with the same operational inspection tooling.
const subsystemTag = "xaholder"

// NewManagementID composes the stable identifier a holder registers itself
// under for operational inspection: the subsystem tag, the pool's sanitized
// unique name, and the pool's monotonically increasing per-pool counter.
func NewManagementID(poolName string, seq uint64) string {
	return fmt.Sprintf("%s:%s:%d", subsystemTag, sanitizeName(poolName), seq)
}

// sanitizeName replaces any character outside [A-Za-z0-9_.-] with an
// underscore, so a pool name containing path separators or whitespace
// cannot corrupt the composed id's field structure.
func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
