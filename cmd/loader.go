package cmd

import (
	"fmt"

	"nullc/ast"
	"nullc/modimport"
)

// noParserLoader is the default SourceLoader: it always fails, honestly
// reflecting that the lexer/CST parser is out of scope for this repository
// (spec.md §1) — a real deployment of this driver supplies its own
// SourceLoader backed by an external parser that produces an *ast.Module
// conforming to package ast's contract.
type noParserLoader struct{}

func (noParserLoader) Load(cfg *modimport.Config) (*ast.Module, error) {
	return nil, fmt.Errorf("no source parser registered for module `%s`: the lexer/parser is outside this repository's scope", cfg.Name)
}
