// Package ast defines the contract the semantic core consumes from the
// (out-of-scope) lexer and parser: a syntax tree rooted at a Module node
// (spec.md §6, "From the parser"). Every node variant named in spec.md §6
// has a corresponding type here. The analyzer (package walk) only ever
// reads these nodes; it never mutates them.
package ast

import "nullc/report"

// Node is implemented by every syntax tree node the analyzer consumes.
type Node interface {
	// Pos returns the node's source position.
	Pos() *report.TextPosition
}

// base is embedded by every concrete node to satisfy Node.
type base struct {
	pos *report.TextPosition
}

func newBase(pos *report.TextPosition) base {
	return base{pos: pos}
}

func (b base) Pos() *report.TextPosition {
	return b.pos
}

// Module is the root of a parsed source file: a list of imports followed by
// a list of top-level expressions/definitions (spec.md §6).
type Module struct {
	base

	Imports     []*ModuleImport
	Expressions []Node
}

// ModuleImport is a single `import "path"` (optionally aliased) directive.
type ModuleImport struct {
	base

	Path  string
	Alias string
}
