package report

// TextPosition is a zero-indexed span of source text (spec.md §3: every
// syntax and expression node "carries its source pointer"). Positions are
// inclusive on both ends, matching the lexer/parser's own convention so
// positions round-trip without adjustment.
type TextPosition struct {
	StartLine, StartCol int
	EndLine, EndCol      int
}

// SpanOver returns the position spanning from the start of a to the end of
// b, used when synthesizing the position of a compound expression (e.g. a
// binary operator's position from its operands).
func SpanOver(a, b *TextPosition) *TextPosition {
	return &TextPosition{
		StartLine: a.StartLine,
		StartCol:  a.StartCol,
		EndLine:   b.EndLine,
		EndCol:    b.EndCol,
	}
}

// CompilationContext identifies the source file a position belongs to, so
// the reporter can read back and display the offending source text.
type CompilationContext struct {
	// AbsPath is the absolute, readable path to the source file.
	AbsPath string

	// ReprPath is the path displayed to the user (may be module-relative).
	ReprPath string
}
