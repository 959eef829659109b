package bytecodec

import "fmt"

type byteCountKind uint8

const (
	byteCountFinite byteCountKind = iota
	byteCountInfinite
	byteCountUnknown
)

// ByteCount is a number of bytes of interest: an exact quantity, an
// unbounded stream, or an unknown amount.
//
// Counts are only partially ordered: Unknown compares with nothing,
// Infinite is greater than every finite count.
type ByteCount struct {
	n    uint64
	kind byteCountKind
}

// FiniteBytes returns a count of exactly n bytes.
func FiniteBytes(n uint64) ByteCount { return ByteCount{n: n} }

// InfiniteBytes returns the count of an unbounded stream.
func InfiniteBytes() ByteCount { return ByteCount{kind: byteCountInfinite} }

// UnknownBytes returns the count used when no bound can be given.
func UnknownBytes() ByteCount { return ByteCount{kind: byteCountUnknown} }

func (c ByteCount) IsFinite() bool   { return c.kind == byteCountFinite }
func (c ByteCount) IsInfinite() bool { return c.kind == byteCountInfinite }
func (c ByteCount) IsUnknown() bool  { return c.kind == byteCountUnknown }

// U64 returns the finite value of the count. The second result is false
// for Infinite and Unknown counts.
func (c ByteCount) U64() (uint64, bool) {
	return c.n, c.kind == byteCountFinite
}

// Add grows a finite count by n bytes. Infinite and Unknown counts are
// unchanged.
func (c ByteCount) Add(n uint64) ByteCount {
	if c.kind == byteCountFinite {
		c.n += n
	}
	return c
}

// Compare orders c against o, returning -1, 0 or 1. The second result is
// false when the two counts are incomparable, which is the case whenever
// either side is Unknown.
func (c ByteCount) Compare(o ByteCount) (int, bool) {
	switch {
	case c.kind == byteCountUnknown || o.kind == byteCountUnknown:
		return 0, false
	case c.kind == byteCountFinite && o.kind == byteCountFinite:
		switch {
		case c.n < o.n:
			return -1, true
		case c.n > o.n:
			return 1, true
		}
		return 0, true
	case c.kind == byteCountInfinite && o.kind == byteCountInfinite:
		return 0, true
	case c.kind == byteCountInfinite:
		return 1, true
	default:
		return -1, true
	}
}

func (c ByteCount) String() string {
	switch c.kind {
	case byteCountInfinite:
		return "Infinite"
	case byteCountUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Finite(%d)", c.n)
	}
}
