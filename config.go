package xaholder

import "github.com/gedmarc/xaholder/internal/core"

// HolderConfig is the structural configuration of a single holder. It is
// normally assembled via Option functions passed to NewHolder rather than
// constructed directly.
type HolderConfig = core.HolderConfig

// holderSettings collects everything NewHolder needs beyond the vendor
// connection and its pool/transaction-manager collaborators: the
// structural config plus the pluggable clock and metrics recorder.
type holderSettings struct {
	cfg     core.HolderConfig
	clock   core.Clock
	metrics MetricsRecorder
}

func defaultSettings() holderSettings {
	return holderSettings{
		cfg:     defaultConfig(),
		metrics: core.NopRecorder{},
	}
}
