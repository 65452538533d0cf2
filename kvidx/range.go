package kvidx

import (
	"bytes"
	"context"
	"encoding/hex"
	"log/slog"

	"go.etcd.io/bbolt"
)

const debugLogScans = false

// Range defines a range of encoded keys. The constructors use mnemonics:
// O means open, I means inclusive, E means exclusive; the first letter is
// for the lower bound, the second for the upper bound.
type Range struct {
	Prefix   []byte
	Lower    []byte
	Upper    []byte
	LowerInc bool
	UpperInc bool
	Reverse  bool
}

func Full() Range             { return Range{} }
func IO(l []byte) Range       { return Range{Lower: l, LowerInc: true} }
func EO(l []byte) Range       { return Range{Lower: l, LowerInc: false} }
func OI(u []byte) Range       { return Range{Upper: u, UpperInc: true} }
func OE(u []byte) Range       { return Range{Upper: u, UpperInc: false} }
func II(l, u []byte) Range    { return Range{Lower: l, Upper: u, LowerInc: true, UpperInc: true} }
func IE(l, u []byte) Range    { return Range{Lower: l, Upper: u, LowerInc: true, UpperInc: false} }
func EI(l, u []byte) Range    { return Range{Lower: l, Upper: u, LowerInc: false, UpperInc: true} }
func EE(l, u []byte) Range    { return Range{Lower: l, Upper: u, LowerInc: false, UpperInc: false} }
func Prefixed(p []byte) Range { return Range{Prefix: p} }

func (rang Range) WithPrefix(p []byte) Range { rang.Prefix = p; return rang }
func (rang Range) Reversed() Range           { rang.Reverse = true; return rang }

func (r *Range) start(bcur *bbolt.Cursor, logger *slog.Logger) ([]byte, []byte) {
	var k, v []byte
	var skipInitial bool
	if r.Reverse {
		upper := r.Upper
		if upper != nil {
			skipInitial = !r.UpperInc
			if r.Prefix != nil && !bytes.HasPrefix(upper, r.Prefix) {
				panic("upper bound does not match prefix")
			}
		} else if r.Prefix != nil {
			upper = r.Prefix
		}
		if upper != nil {
			k, v = seekLast(bcur, upper)
			if debugLogScans {
				logger.LogAttrs(context.Background(), slog.LevelDebug, "SEEK to upper", hexAttr("upper", upper), hexAttr("key", k))
			}
			if skipInitial && !bytes.HasPrefix(k, upper) {
				skipInitial = false
			}
		} else {
			k, v = bcur.Last()
		}
	} else {
		lower := r.Lower
		if lower != nil {
			skipInitial = !r.LowerInc
			if r.Prefix != nil && !bytes.HasPrefix(lower, r.Prefix) {
				panic("lower bound does not match prefix")
			}
		} else if r.Prefix != nil {
			lower = r.Prefix
		}
		if lower != nil {
			k, v = bcur.Seek(lower)
			if debugLogScans {
				logger.LogAttrs(context.Background(), slog.LevelDebug, "SEEK to lower", hexAttr("lower", lower), hexAttr("key", k))
			}
			if skipInitial && !bytes.HasPrefix(k, lower) {
				skipInitial = false
			}
		} else {
			k, v = bcur.First()
		}
	}
	if k != nil && r.match(k, logger) {
		if skipInitial {
			return r.next(bcur, logger)
		}
		return k, v
	}
	return nil, nil
}

func (r *Range) next(bcur *bbolt.Cursor, logger *slog.Logger) ([]byte, []byte) {
	var k, v []byte
	if r.Reverse {
		k, v = bcur.Prev()
	} else {
		k, v = bcur.Next()
	}
	if k != nil && r.match(k, logger) {
		return k, v
	}
	return nil, nil
}

func (r *Range) match(k []byte, logger *slog.Logger) bool {
	if r.Prefix != nil && !bytes.HasPrefix(k, r.Prefix) {
		return false
	}
	if r.Reverse {
		if lower := r.Lower; lower != nil {
			cmp := bytes.Compare(k, lower)
			if cmp == -1 || (cmp == 0 && !r.LowerInc) {
				return false
			}
		}
	} else {
		if upper := r.Upper; upper != nil {
			cmp := bytes.Compare(k, upper)
			if cmp == 1 || (cmp == 0 && !r.UpperInc) {
				return false
			}
		}
	}
	if debugLogScans {
		logger.LogAttrs(context.Background(), slog.LevelDebug, "MATCH", hexAttr("key", k))
	}
	return true
}

type cursor struct {
	rang   Range
	bcur   *bbolt.Cursor
	logger *slog.Logger
	k, v   []byte
	init   bool
}

func (c *cursor) next() bool {
	if c.init {
		c.k, c.v = c.rang.next(c.bcur, c.logger)
	} else {
		c.init = true
		c.k, c.v = c.rang.start(c.bcur, c.logger)
	}
	return c.k != nil
}

// seekLast positions the cursor on the last key that starts with prefix,
// or on the last key at or below prefix if none match.
func seekLast(c *bbolt.Cursor, prefix []byte) ([]byte, []byte) {
	// NOTE: this could be made much faster by incrementing the prefix temporarily, but then we'd need to deal with overflow
	k, _ := c.Seek(prefix)
	if k == nil {
		return c.Last()
	}
	for k != nil && bytes.HasPrefix(k, prefix) {
		k, _ = c.Next()
	}
	if k == nil {
		return c.Last()
	}
	return c.Prev()
}

func hexAttr(key string, b []byte) slog.Attr {
	return slog.String(key, hex.EncodeToString(b))
}
