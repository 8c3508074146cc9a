package bend

import (
	"math"
	"strconv"
	"strings"
)

// NumKind is the kind of a 24-bit number.
type NumKind int

// Enumeration of number kinds.
const (
	U24 NumKind = iota
	I24
	F24
)

var numKindNames = [...]string{"u24", "i24", "f24"}

func (kind NumKind) String() string {
	return numKindNames[kind]
}

// Mask24 masks a value to its low 24 bits.
const Mask24 = 0xffffff

// Num is a 24-bit number literal.  The payload is stored as its raw 24 bits:
// unsigned values directly, signed values in two's complement, and floats as
// the high 24 bits of their IEEE single-precision representation.
type Num struct {
	Kind NumKind
	Bits uint32
}

// NewU24 creates an unsigned 24-bit literal, truncating to 24 bits.
func NewU24(v uint32) *Num {
	return &Num{Kind: U24, Bits: v & Mask24}
}

// NewI24 creates a signed 24-bit literal, wrapping into the 24-bit range.
func NewI24(v int32) *Num {
	return &Num{Kind: I24, Bits: uint32(v) & Mask24}
}

// NewF24 creates a 24-bit float literal, dropping the low mantissa bits.
func NewF24(v float32) *Num {
	return &Num{Kind: F24, Bits: math.Float32bits(v) >> 8}
}

// U24 returns the value of an unsigned literal.
func (n *Num) U24() uint32 {
	return n.Bits & Mask24
}

// I24 returns the value of a signed literal.
func (n *Num) I24() int32 {
	return int32(n.Bits<<8) >> 8
}

// F24 returns the value of a float literal.
func (n *Num) F24() float32 {
	return math.Float32frombits(n.Bits << 8)
}

func (n *Num) String() string {
	switch n.Kind {
	case I24:
		v := n.I24()
		if v < 0 {
			return strconv.Itoa(int(v))
		}
		return "+" + strconv.Itoa(int(v))
	case F24:
		s := strconv.FormatFloat(float64(n.F24()), 'f', -1, 32)
		if !strings.ContainsAny(s, ".NI") {
			s += ".0"
		}
		return s
	}

	return strconv.FormatUint(uint64(n.U24()), 10)
}
