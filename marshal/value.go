package marshal

import (
	"fmt"
	"sort"
	"strings"

	"benda/bend"
)

// Value is a host value passed as an argument to a compiled function or read
// back from the result of one.  It is one of U24, I24, F24, Record, or Term.
type Value interface {
	fmt.Stringer

	value()
}

// U24 is an unsigned 24-bit integer.  Bits above the low 24 are discarded when
// the value is marshalled.
type U24 uint32

// I24 is a signed 24-bit integer.
type I24 int32

// F24 is a 24-bit float.  Precision beyond the target representation is
// discarded when the value is marshalled.
type F24 float32

// Record is an instance of a compiled record type.  Tag names the constructor
// either by its full name (`Shape/Circle`) or by its bare name (`Circle`).
type Record struct {
	Tag    string
	Fields map[string]Value
}

// Term is an already compiled target expression: usually the result of an
// earlier evaluation which could not be read back into a more specific value.
type Term struct {
	Expr bend.Expr
}

func (U24) value()     {}
func (I24) value()     {}
func (F24) value()     {}
func (*Record) value() {}
func (*Term) value()   {}

func (u U24) String() string {
	return bend.NewU24(uint32(u)).String()
}

func (i I24) String() string {
	return bend.NewI24(int32(i)).String()
}

func (f F24) String() string {
	return bend.NewF24(float32(f)).String()
}

func (r *Record) String() string {
	if len(r.Fields) == 0 {
		return r.Tag
	}

	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	sb := strings.Builder{}
	sb.WriteString(r.Tag)
	sb.WriteString(" { ")
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(r.Fields[name].String())
	}
	sb.WriteString(" }")

	return sb.String()
}

func (t *Term) String() string {
	return t.Expr.String()
}
