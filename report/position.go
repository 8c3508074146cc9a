package report

import "fmt"

// TextSpan represents a range or "span" of source text.  The line and column
// numbers are zero-indexed.  The ending column is one past the last character
// of the span, which matches the end offsets recorded by Python's `ast`.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

func (span *TextSpan) String() string {
	return fmt.Sprintf("%d:%d", span.StartLine+1, span.StartCol+1)
}
