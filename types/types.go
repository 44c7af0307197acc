// Package types implements the type universe: construction and interning of
// every type descriptor the analyzer can produce, plus the handful of
// numeric predicates the expression analyzer and overload engine consult
// when picking a common type for a binary operator.
package types

import (
	"fmt"
	"strings"

	"nullc/common"
)

// DataType is the parent interface for every member of the closed type
// variant (spec.md §3 "Type"). Repr is used for diagnostics; equals is the
// structural-identity comparison the interning tables are built on.
type DataType interface {
	Repr() string
	Size() int
	Alignment() int
	IsGeneric() bool

	equals(DataType) bool
}

// Equals reports whether a and b denote the same type. For the interned
// variants (Ref/Array/UnsizedArray/Function/Class/GenericClassInstance) this
// is reference equality; for the rest it is structural.
func Equals(a, b DataType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.equals(b)
}

// nameHash is the hash of a type's canonical name, used the same way the
// symbol table hashes namespace-qualified names.
func nameHash(name string) uint32 {
	return common.NameHash(name)
}

// -----------------------------------------------------------------------------
// Primitives and the other zero-size-of-arguments members of the variant.

// Kind enumerates the non-composite members of the closed type variant:
// primitives plus the handful of singleton marker types (spec.md §3).
type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindTypeId
	KindFunctionId
	KindNullPtr
	KindAuto
	KindAutoRef
	KindAutoArray
)

var kindNames = map[Kind]string{
	KindVoid:       "void",
	KindBool:       "bool",
	KindChar:       "char",
	KindShort:      "short",
	KindInt:        "int",
	KindLong:       "long",
	KindFloat:      "float",
	KindDouble:     "double",
	KindTypeId:     "typeid",
	KindFunctionId: "auto function",
	KindNullPtr:    "null_t",
	KindAuto:       "auto",
	KindAutoRef:    "auto ref",
	KindAutoArray:  "auto[]",
}

// sizes of the fixed-size primitive and marker kinds. PtrSize is accounted
// for in layout.go because AutoRef/AutoArray also depend on it.
var kindSizes = map[Kind]int{
	KindVoid:       0,
	KindBool:       1,
	KindChar:       1,
	KindShort:      2,
	KindInt:        4,
	KindLong:       8,
	KindFloat:      4,
	KindDouble:     8,
	KindTypeId:     4,
	KindFunctionId: 4,
	KindNullPtr:    4,
}

// Primitive is a singleton, non-interned member of the closed variant: any
// of the fixed primitive types, TypeId, FunctionId, NullPtr, or Auto. It is
// never reference-interned because Go's comparable-value equality already
// gives it structural identity.
type Primitive struct {
	kind Kind
}

var primitiveTable = map[Kind]*Primitive{}

func init() {
	for k := range kindNames {
		if k == KindAutoRef || k == KindAutoArray {
			continue // built with PtrSize-aware layout in layout.go
		}
		primitiveTable[k] = &Primitive{kind: k}
	}
}

// Prim returns the singleton Primitive for kind.
func Prim(kind Kind) *Primitive {
	if p, ok := primitiveTable[kind]; ok {
		return p
	}
	panic(fmt.Sprintf("types: no singleton primitive for kind %d", kind))
}

func (p *Primitive) Repr() string    { return kindNames[p.kind] }
func (p *Primitive) Size() int       { return kindSizes[p.kind] }
func (p *Primitive) Alignment() int  { return p.Size() }
func (p *Primitive) IsGeneric() bool { return false }
func (p *Primitive) Kind() Kind      { return p.kind }

func (p *Primitive) equals(other DataType) bool {
	op, ok := other.(*Primitive)
	return ok && op.kind == p.kind
}

// -----------------------------------------------------------------------------
// Generic(name) - an unbound generic parameter reference.

// Generic is an unbound generic type parameter, written `@name` at the
// syntax level. It is interned per name within a single compilation: two
// Generic nodes with the same name inside the same generic scope denote the
// same unbound parameter.
type Generic struct {
	Name string
}

var genericTable = map[string]*Generic{}

// GetGeneric returns the interned Generic for name.
func GetGeneric(name string) *Generic {
	if g, ok := genericTable[name]; ok {
		return g
	}
	g := &Generic{Name: name}
	genericTable[name] = g
	return g
}

func (g *Generic) Repr() string    { return "@" + g.Name }
func (g *Generic) Size() int       { return 0 }
func (g *Generic) Alignment() int  { return 0 }
func (g *Generic) IsGeneric() bool { return true }

func (g *Generic) equals(other DataType) bool {
	og, ok := other.(*Generic)
	return ok && og.Name == g.Name
}

// -----------------------------------------------------------------------------
// Helpers shared across the composite variants.

func reprList(ts []DataType) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.Repr()
	}
	return strings.Join(parts, ", ")
}

func anyGeneric(ts ...DataType) bool {
	for _, t := range ts {
		if t != nil && t.IsGeneric() {
			return true
		}
	}
	return false
}
