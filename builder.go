package xaholder

import (
	"fmt"

	"github.com/gedmarc/xaholder/internal/core"
)

// NewHolder constructs a Holder wrapping a freshly obtained vendor XA
// connection, owned by pool and enlisting through tm. The holder starts in
// StateInPool.
//
// Returns an error if the resulting configuration is invalid (see
// HolderConfig.Validate) or if xaConn's logical connection cannot be
// obtained.
func NewHolder(xaConn VendorXAConnection, pool PoolCallbacks, tm TransactionManager, opts ...Option) (Holder, error) {
	settings := defaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	ch, err := core.NewHolder(xaConn, pool, tm, settings.clock, settings.metrics, settings.cfg)
	if err != nil {
		return nil, fmt.Errorf("xaholder: new holder: %w", err)
	}
	return &holderWrapper{h: ch}, nil
}
