package ast

// VarDef is a variable definition, with optional alignment and initializer
// (spec.md §6).
type VarDef struct {
	base

	Name        string
	Type        TypeExpr // nil when inferred from Init
	Align       Expr     // nil when unspecified; must reduce to a power of two <= 16 (spec.md §4.3)
	Init        Expr     // nil when uninitialized
	IsReference bool
}

// FuncArg is a single formal argument in a function definition.
type FuncArg struct {
	Name       string
	Type       TypeExpr
	Default    Expr // nil if required
	IsExplicit bool
}

// FuncDef is a function (or method, or operator) definition (spec.md §6):
// "function definition (with parentType, prototype, coroutine, accessor,
// isOperator flags, argument list with isExplicit and default)".
type FuncDef struct {
	base

	Name       string
	ParentType TypeExpr // non-nil for a method defined `T::name(...)`
	Generics   []string // declared generic parameter names
	Args       []FuncArg
	ReturnType TypeExpr // nil for inferred (`auto`) return
	Body       Node     // nil for a bare prototype

	IsPrototype bool
	IsCoroutine bool
	IsAccessor  bool
	IsOperator  bool
}

// ShortFuncParam is a parameter of a short-form function literal, with an
// optional declared type (spec.md §4.4 "Short-form function literal").
type ShortFuncParam struct {
	Name string
	Type TypeExpr // nil when left to be inferred from the call-site target type
}

// ShortFuncDef is `x => body` or `(x, y) => body`.
type ShortFuncDef struct {
	base

	Params []ShortFuncParam
	Body   Expr
}

// Generator is a coroutine literal that yields an array, e.g.
// `coroutine [1, 2, 3]`.
type Generator struct {
	base

	ElemType TypeExpr
	Elems    []Expr
}

// -----------------------------------------------------------------------------
// Classes

// ClassElements groups the members of a class body by kind, matching
// spec.md §6's "elements container with typedefs, members, constants,
// functions, accessors, staticIfs".
type ClassElements struct {
	Typedefs  []*TypeDef
	Members   []*VarDef
	Constants []*VarDef
	Functions []*FuncDef
	Accessors []*FuncDef
	StaticIfs []*StaticIf
}

// StaticIf is a compile-time conditional inclusion of class elements
// (spec.md §4.3: "static if condition").
type StaticIf struct {
	base

	Cond     Expr
	Then     ClassElements
	Else     ClassElements
	HasElse  bool
}

// ClassDef is a class or generic-class-prototype definition (spec.md §6):
// "class definition (with aliases, extendable, optional base class, align,
// elements container...)".
type ClassDef struct {
	base

	Name       string
	Aliases    []string // generic parameter names; non-empty marks this a generic class prototype
	Extendable bool
	Base       TypeExpr // nil if no base class
	Align      Expr     // nil when unspecified
	Elements   ClassElements
}

// -----------------------------------------------------------------------------

// EnumDef is an enum definition: a closed set of named integer constants.
type EnumDef struct {
	base

	Name     string
	Elements []EnumElement
}

// EnumElement is a single `Name` or `Name = constExpr` enum entry.
type EnumElement struct {
	Name  string
	Value Expr // nil to continue the implicit +1 sequence
}

// NamespaceDef opens a namespace block.
type NamespaceDef struct {
	base

	Name  string
	Body  []Node
}

// TypeDef is a `typedef Name = T` alias definition.
type TypeDef struct {
	base

	Name   string
	Target TypeExpr
}
