package wkb

import (
	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/errs"
	"github.com/nullform/gscore/internal/options"
)

// Dialect selects which WKB variant Size/Encode/Decode speak.
type Dialect uint8

const (
	// SFSQL is the original "Simple Features for SQL" dialect: 2D only,
	// no SRID, no Z/M.
	SFSQL Dialect = iota
	// ISO is the ISO 13249-3 dialect: Z/M expressed via additive type-code
	// offsets (+1000/+2000/+3000), no SRID.
	ISO
	// Extended carries an optional SRID and Z/M via high-bit flags in the
	// type code.
	Extended
)

// config holds the resolved encode/decode options. The zero value is not
// valid; use newConfig.
type config struct {
	dialect    Dialect
	dialectSet bool
	engine     endian.EndianEngine
	engineSet  bool
	hex        bool
	noSRID     bool
	noNPoints  bool
}

func newConfig() *config {
	return &config{
		dialect: SFSQL,
		engine:  endian.GetLittleEndianEngine(),
	}
}

func (c *config) setDialect(d Dialect) error {
	if c.dialectSet {
		return errs.ErrInvalidDialectOption
	}
	c.dialect = d
	c.dialectSet = true

	return nil
}

func (c *config) setEngine(e endian.EndianEngine) error {
	if c.engineSet {
		return errs.ErrInvalidDialectOption
	}
	c.engine = e
	c.engineSet = true

	return nil
}

// Option is a functional option for Size, Encode, and Decode.
type Option = options.Option[*config]

// WithSFSQL selects the SFSQL dialect. It is the default.
func WithSFSQL() Option {
	return options.New(func(c *config) error { return c.setDialect(SFSQL) })
}

// WithISO selects the ISO 13249-3 dialect.
func WithISO() Option {
	return options.New(func(c *config) error { return c.setDialect(ISO) })
}

// WithExtended selects the extended dialect (optional SRID, high-bit Z/M
// flags).
func WithExtended() Option {
	return options.New(func(c *config) error { return c.setDialect(Extended) })
}

// WithNDR selects little-endian (NDR) byte order. It is the default.
func WithNDR() Option {
	return options.New(func(c *config) error { return c.setEngine(endian.GetLittleEndianEngine()) })
}

// WithXDR selects big-endian (XDR) byte order.
func WithXDR() Option {
	return options.New(func(c *config) error { return c.setEngine(endian.GetBigEndianEngine()) })
}

// WithHex requests the hex-encoded flavor: each output byte becomes two
// ASCII hex characters. With it, Size reports the doubled hex length.
func WithHex() Option {
	return options.NoError(func(c *config) { c.hex = true })
}

// WithNoSRID forces SRID suppression even in the extended dialect, e.g.
// when a caller wants an extended-flavored record that behaves like SFSQL
// with respect to SRID.
func WithNoSRID() Option {
	return options.NoError(func(c *config) { c.noSRID = true })
}

// WithNoNPoints suppresses the point-count field used to signal an empty
// Point in the SFSQL/ISO dialects, matching the historical single-point
// encoding used inside a POINT envelope.
func WithNoNPoints() Option {
	return options.NoError(func(c *config) { c.noNPoints = true })
}

func resolveConfig(opts ...Option) (*config, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}
