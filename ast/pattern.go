package ast

// MatchValue represents a value pattern: `case Leaf:`.
type MatchValue struct {
	ASTBase

	Value Expr
}

// MatchClass represents a class pattern: `case Node(left, right):`.
type MatchClass struct {
	ASTBase

	Cls      Expr
	Patterns []Pattern

	// NKeyword is the number of keyword sub-patterns (`Point(x=a)`).
	NKeyword int
}

// MatchAs represents a capture pattern.  A MatchAs with no Pattern and an
// empty Name is the wildcard pattern `_`.
type MatchAs struct {
	ASTBase

	Pattern Pattern
	Name    string
}

// UnsupportedPattern represents any pattern outside the supported subset.
type UnsupportedPattern struct {
	ASTBase

	Kind string
}

func (*MatchValue) patternNode()         {}
func (*MatchClass) patternNode()         {}
func (*MatchAs) patternNode()            {}
func (*UnsupportedPattern) patternNode() {}

// PatternKind returns the Python name of a pattern's node type.
func PatternKind(patt Pattern) string {
	switch v := patt.(type) {
	case *MatchValue:
		return "MatchValue"
	case *MatchClass:
		return "MatchClass"
	case *MatchAs:
		return "MatchAs"
	case *UnsupportedPattern:
		return v.Kind
	}

	return "?"
}
