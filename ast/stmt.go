package ast

// Block is a brace-delimited sequence of statements/expressions introducing
// its own scope.
type Block struct {
	base

	Body []Node
}

// IfElse covers both a runtime `if`/`else if`/`else` chain and a compile-time
// `static if` (spec.md §4.3: "static if condition"), distinguished by
// StaticIf. A static-if branch that is not taken is never walked by the
// analyzer at all, not merely skipped at codegen.
type IfElse struct {
	base

	StaticIf bool
	Cond     Expr
	Then     Node
	Else     Node // nil, another *IfElse, or a *Block
}

// For is the three-clause `for (init; cond; step) body` form. Each clause is
// independently optional.
type For struct {
	base

	Init Node
	Cond Expr
	Step Node
	Body Node
}

// ForEachIterator is a single `name [: Type] in expr` clause of a for-each
// loop; the declared type is optional and left to be inferred from expr's
// element type when absent (spec.md §4.4 "for-each ... three strategies").
type ForEachIterator struct {
	Name string
	Type TypeExpr // nil when inferred
	Expr Expr
}

// ForEach is `for (it1 in e1, it2 in e2, ...) body`, iterating one or more
// sequences in lockstep.
type ForEach struct {
	base

	Iterators []ForEachIterator
	Body      Node
}

// While is the pre-test loop `while (cond) body`.
type While struct {
	base

	Cond Expr
	Body Node
}

// DoWhile is the post-test loop `do body while (cond)`.
type DoWhile struct {
	base

	Body Node
	Cond Expr
}

// SwitchCase is a single `case expr:` (or, when Exprs is empty, the
// `default:`) arm of a switch statement.
type SwitchCase struct {
	Exprs []Expr
	Body  []Node
}

// Switch is a `switch (expr) { case ...: ... }` statement. NULLC switch
// cases fall through by default, matching the original language's behavior
// (spec.md supplement, grounded on the original parser's switch-fallthrough
// handling); an explicit `break` is required to stop.
type Switch struct {
	base

	Cond  Expr
	Cases []SwitchCase
}

// Break is `break` or `break N`, exiting N enclosing loops (Depth is nil for
// a plain `break`, meaning depth 1).
type Break struct {
	base

	Depth Expr
}

// Continue is `continue` or `continue N`, symmetric with Break.
type Continue struct {
	base

	Depth Expr
}

// Return is `return`, `return expr`, or (inside a coroutine) `yield expr`.
type Return struct {
	base

	Value  Expr // nil for a bare `return`
	IsYield bool
}
