// Package walk is the expression analyzer (spec.md §4.4): it walks the
// syntax tree from package ast and produces the closed "expression node"
// variant described in spec.md §3 — fully typed, with casts already
// inserted and closures already synthesized. Package ir later lowers this
// tree into the linear instruction form.
package walk

import (
	"nullc/report"
	"nullc/scope"
	"nullc/types"
)

// Node is the resolved, typed counterpart of ast.Node. Once built, a node's
// Type is immutable; every transformation (an inserted cast, a rewritten
// `auto` return) builds a new Node rather than mutating one in place
// (spec.md §3 "Expression node" invariant).
type Node interface {
	Pos() *report.TextPosition
	Type() types.DataType
}

type base struct {
	pos *report.TextPosition
	typ types.DataType
}

func newBase(pos *report.TextPosition, typ types.DataType) base {
	return base{pos: pos, typ: typ}
}

func (b base) Pos() *report.TextPosition { return b.pos }
func (b base) Type() types.DataType      { return b.typ }

// -----------------------------------------------------------------------------
// Literals

type LitKind int

const (
	LitBool LitKind = iota
	LitChar
	LitInt
	LitLong
	LitDouble
	LitString
	LitNull
	LitType
	LitFunctionIndex
)

// Literal is every literal-valued leaf of the expression node variant
// (spec.md §3: "literals (bool, char, int, long, double, string, null,
// type, function-index)"). Exactly one of the value fields is meaningful,
// selected by Kind.
type Literal struct {
	base

	Kind LitKind

	BoolVal     bool
	CharVal     rune
	IntVal      int32
	LongVal     int64
	DoubleVal   float64
	StringVal   string
	TypeVal     types.DataType
	FuncIndex   int
}

func NewLiteral(pos *report.TextPosition, typ types.DataType, kind LitKind) *Literal {
	return &Literal{base: newBase(pos, typ), Kind: kind}
}

// -----------------------------------------------------------------------------
// Access

// VariableAccess reads a resolved scope.Variable, possibly auto-dereferenced
// if it's a reference variable (spec.md §4.4 "Variable access").
type VariableAccess struct {
	base
	Variable *scope.Variable
}

// GetAddress and Dereference are `&x` and `*x`.
type GetAddress struct {
	base
	Operand Node
}

type Dereference struct {
	base
	Operand Node
}

// MemberAccess is `a.x` once lowered to address arithmetic plus a
// dereference (spec.md §4.4 "Member access").
type MemberAccess struct {
	base
	Root   Node
	Member *types.Member
}

// ArrayIndex is a checked index against an array/unsized-array, or a
// lowered call to an overloaded `[]`.
type ArrayIndex struct {
	base
	Root  Node
	Index Node
}

// PrePostModify is `++x`/`--x`/`x++`/`x--`.
type PrePostModify struct {
	base
	Operand Node
	Incr    bool
	IsPost  bool
}

// UnaryOp and BinaryOp are primitive unary/binary operations once an
// overload has failed to match and a primitive op has been selected
// (spec.md §4.4 "Binary operators").
type UnaryOp struct {
	base
	Op      string
	Operand Node
}

type BinaryOp struct {
	base
	Op       string
	Lhs, Rhs Node
}

// Assignment covers plain and compound assignment once the target has been
// lowered to an address (spec.md §4.4 "Assignment").
type Assignment struct {
	base
	Target Node // a GetAddress-producing node
	Value  Node
}

// Conditional is `cond ? a : b`.
type Conditional struct {
	base
	Cond, Then, Else Node
}

// Sequence evaluates each node for side effects, yielding the last.
type Sequence struct {
	base
	Nodes []Node
}

// Block is a nested scope's statement list.
type Block struct {
	base
	Scope *scope.Scope
	Nodes []Node
}

// -----------------------------------------------------------------------------
// Definitions

// VarDef is a resolved local/member/global variable definition with its
// (already-typed) initializer, if any.
type VarDef struct {
	base
	Variable *scope.Variable
	Init     Node
}

// ArraySetup initializes a fixed-size array's elements in place.
type ArraySetup struct {
	base
	Target Node
	Elems  []Node
}

// NewArraySetup builds a typed ArraySetup; exported so package overload can
// construct the packed variadic-tail array without reaching into walk's
// unexported base field (spec.md §4.5 step 3).
func NewArraySetup(pos *report.TextPosition, typ types.DataType, elems []Node) *ArraySetup {
	return &ArraySetup{base: newBase(pos, typ), Elems: elems}
}

// FuncDef is a resolved function definition; Body is nil for a bare
// prototype.
type FuncDef struct {
	base
	Function *scope.Function
	Body     Node
}

// FuncAccess is a reference to a single resolved, non-overloaded function.
type FuncAccess struct {
	base
	Function *scope.Function
}

// FuncOverloadSet is a still-ambiguous reference to every visible candidate
// under a name, narrowed by the enclosing call site (spec.md §4.4).
type FuncOverloadSet struct {
	base
	Candidates []*scope.Function
}

// Call is a resolved, fully cast call to a single concrete function.
type Call struct {
	base
	Target *scope.Function
	Args   []Node
}

// Return and Yield carry an optional value; IsYield distinguishes a
// coroutine yield, which shares §4.4's return-type-adoption semantics.
type Return struct {
	base
	Value   Node
	IsYield bool
}

// -----------------------------------------------------------------------------
// Control flow

type IfElse struct {
	base
	Cond       Node
	Then, Else Node
}

type For struct {
	base
	Init, Step Node
	Cond       Node
	Body       Node
}

type While struct {
	base
	Cond Node
	Body Node
}

type DoWhile struct {
	base
	Body Node
	Cond Node
}

type SwitchCase struct {
	Values []Node
	Body   Node
}

type Switch struct {
	base
	Cond  Node
	Cases []SwitchCase
}

// Break and Continue carry the already-constant-evaluated loop depth to
// unwind (spec.md §4.3: "break N / continue N depth").
type Break struct {
	base
	Depth int
}

type Continue struct {
	base
	Depth int
}

// -----------------------------------------------------------------------------
// Casts and top-level definitions

// Cast applies one concrete types.CastKind conversion (spec.md §4.4
// "Implicit conversion (CreateCast)").
type Cast struct {
	base
	Kind     types.CastKind
	Operand  Node
	ToDerived bool // true when Kind == CastReinterpret and the cast narrows base->derived
}

// ClassDef and GenericClassProtoDef are resolved class definitions; a
// GenericClassProtoDef produces no IR (spec.md §4.6).
type ClassDef struct {
	base
	Class *types.Class
	Body  []Node
}

type GenericClassProtoDef struct {
	base
	Proto *types.GenericClassProto
}

type EnumDef struct {
	base
	Enum *types.Enum
}

type AliasDef struct {
	base
	Alias *scope.Alias
}

// Module is the root of a resolved source file.
type Module struct {
	base
	Scope *scope.Scope
	Nodes []Node
}
