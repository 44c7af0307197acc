package ast

// TypeExpr is a syntax-level type label, as written by the programmer
// (spec.md §6): "type-simple with qualified path, type-auto, type-generic
// (`@name`), type-reference, type-array..., type-function,
// type-generic-instance, typeof". The analyzer's resolve_type.go lowers these
// into resolved types.DataType values.
type TypeExpr interface {
	Node
}

// TypeSimple names a type by a possibly-namespace-qualified path, e.g.
// `io::Reader` or plain `int`.
type TypeSimple struct {
	base

	Path []string
}

// TypeAuto is the `auto` placeholder type label.
type TypeAuto struct {
	base
}

// TypeGeneric is a generic type parameter reference, written `@name`.
type TypeGeneric struct {
	base

	Name string
}

// TypeReference is `T ref`.
type TypeReference struct {
	base

	Elem TypeExpr
}

// TypeArray is `T[n]` or `T[]` (unsized when Unsized is true; Size is only
// meaningful when Unsized is false, and may itself require constant
// evaluation, spec.md §4.3).
type TypeArray struct {
	base

	Elem    TypeExpr
	Unsized bool
	Size    Expr
}

// TypeFunction is `(A, B) : R`.
type TypeFunction struct {
	base

	Args   []TypeExpr
	Return TypeExpr
}

// TypeGenericInstance is `Name<A, B>`, a concrete instantiation of a generic
// class prototype named Path.
type TypeGenericInstance struct {
	base

	Path []string
	Args []TypeExpr
}

// TypeOf is `typeof(expr)`, a type label computed from an expression's
// static type rather than written out (spec.md §5 discusses its speculative
// analysis semantics).
type TypeOf struct {
	base

	Operand Expr
}
