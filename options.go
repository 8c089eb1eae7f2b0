package crackle

import "github.com/dscout/crackle/internal/options"

// Option configures a Decompress call.
type Option = options.Option[*decodeConfig]

// decodeConfig is the target type functional options mutate before a
// Decompress call begins. zStart/zEnd follow the original library's
// sentinel convention: -1 means "unset, use the volume's full extent."
type decodeConfig struct {
	zStart        int64
	zEnd          int64
	strictVersion bool
}

func newDecodeConfig() *decodeConfig {
	return &decodeConfig{zStart: -1, zEnd: -1, strictVersion: true}
}

// WithZRange restricts decoding to the contiguous Z-range [start, end).
// Either bound may be left at its default by passing a negative value:
// a negative start is clamped to 0, a negative end is clamped to sz.
// This is the only supported subvolume access mode: random access below
// a contiguous Z-range is out of scope.
func WithZRange(start, end int) Option {
	return options.New(func(c *decodeConfig) {
		c.zStart = int64(start)
		c.zEnd = int64(end)
	})
}

// WithStrictVersion controls whether a FormatVersion other than the one
// this package implements is rejected outright (the default, true) or
// decoded anyway under the assumption that the wire layout didn't
// change. There is currently only one FormatVersion, so this option
// exists to give tests a named hook onto the rejection path rather than
// to select between two real decode strategies.
func WithStrictVersion(strict bool) Option {
	return options.New(func(c *decodeConfig) {
		c.strictVersion = strict
	})
}
