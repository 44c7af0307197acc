package ast

import "nullc/common"

// Expr is the syntactic expression contract (spec.md §6). It carries no
// resolved type — that is produced by the analyzer's own expression node
// (package walk), never attached back onto the syntax tree.
type Expr interface {
	Node
}

// -----------------------------------------------------------------------------
// Literals

type NumberLit struct {
	base
	Text string // preserves the exact written form so int vs. float vs. long vs. double can be disambiguated by suffix/shape.
}

type StringLit struct {
	base
	Value string
}

type CharLit struct {
	base
	Value rune
}

type BoolLit struct {
	base
	Value bool
}

type NullLit struct {
	base
}

// TypeLit is a first-class reference to a type, e.g. passed as an explicit
// generic argument or compared against with `typeid`.
type TypeLit struct {
	base
	Type TypeExpr
}

// Identifier is a bare name reference, resolved by the analyzer against the
// current scope chain (spec.md §4.4 "Variable access").
type Identifier struct {
	base
	Name string
}

// -----------------------------------------------------------------------------
// Operators

type GetAddress struct {
	base
	Operand Expr
}

type Dereference struct {
	base
	Operand Expr
}

type UnaryOp struct {
	base
	Op      common.UnOpKind
	Operand Expr
}

// PrePostOp covers `++x`/`--x`/`x++`/`x--`.
type PrePostOp struct {
	base
	Op      common.UnOpKind
	Operand Expr
	IsPost  bool
}

type BinaryOp struct {
	base
	Op       common.BinOpKind
	Lhs, Rhs Expr
}

// Conditional is the ternary `cond ? a : b`.
type Conditional struct {
	base
	Cond, Then, Else Expr
}

// Sequence is a comma expression evaluating each in order, yielding the
// last.
type Sequence struct {
	base
	Exprs []Expr
}

// Assignment is a plain `lhs = rhs`.
type Assignment struct {
	base
	Lhs, Rhs Expr
}

// ModifyAssignment is a compound assignment, e.g. `lhs += rhs`.
type ModifyAssignment struct {
	base
	Op       common.BinOpKind
	Lhs, Rhs Expr
}

// -----------------------------------------------------------------------------
// Member / index / call

type MemberAccess struct {
	base
	Root  Expr
	Field string
}

type ArrayIndex struct {
	base
	Root Expr
	Args []CallArg
}

// CallArg is a single call or index argument, optionally named.
type CallArg struct {
	Name string // empty if positional
	Expr Expr
}

// Call is a function call, with optional explicit generic type arguments
// (spec.md §6: "function call (with optional explicit generic arguments)").
type Call struct {
	base
	Func          Expr
	Args          []CallArg
	GenericArgs   []TypeExpr
}

// New covers `new T`, `new T[n]`, and `new T{ ... }` (spec.md §4.4).
type New struct {
	base
	Type  TypeExpr
	Count Expr // non-nil for `new T[n]`
	Args  []CallArg
	Body  *FuncDef // non-nil for the trailing `{ body }` form
}

// -----------------------------------------------------------------------------
// Blocks / control flow appear in stmt.go, since the grammar distinguishes
// statements from expressions even though both implement Node.
