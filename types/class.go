package types

// Member is a named, offset-assigned field of a class or of the built-in
// composite layouts.
type Member struct {
	Name   string
	Type   DataType
	Offset int
}

// ConstantField is a named compile-time constant attached to a class or
// enum, carrying its already-reduced literal value (see package constexpr
// for the literal representation actually stored here by the analyzer).
type ConstantField struct {
	Name  string
	Type  DataType
	Value interface{}
}

const typeIDMemberName = "$typeid"

// Class is a user-defined class type (spec.md §3 "Class"). Non-generic
// classes are interned by their full (possibly namespace-qualified) name;
// see DeclareClass.
type Class struct {
	Name       string
	Hash       uint32
	Extendable bool
	Base       *Class // nil when this class has no base
	Members    []Member
	Constants  []ConstantField

	size      int
	alignment int
	finalized bool
}

var classTable = map[string]*Class{}

// DeclareClass creates (or returns the existing, forward-declared) Class
// named name. Declaration is separate from finalization so that a class's
// own method bodies can reference its still-being-laid-out type.
func DeclareClass(name string, extendable bool, base *Class) *Class {
	if c, ok := classTable[name]; ok {
		return c
	}
	c := &Class{Name: name, Hash: nameHash(name), Extendable: extendable, Base: base}
	classTable[name] = c
	return c
}

// LookupClass returns the already-declared class named name, or nil.
func LookupClass(name string) *Class {
	return classTable[name]
}

// Finalize lays out the class's members in declaration order, honoring an
// inherited `$typeid` slot from an extendable base (spec.md §4.1), then
// rounds the total size up to max(alignment, 4) per spec.md §3 invariant
// (2). It is idempotent.
func (c *Class) Finalize(members []Member, constants []ConstantField) {
	if c.finalized {
		return
	}

	offset := 0
	alignment := 4

	if c.Base != nil {
		c.Base.Finalize(c.Base.Members, c.Base.Constants)
		offset = c.Base.size
		if c.Base.alignment > alignment {
			alignment = c.Base.alignment
		}
	} else if c.Extendable {
		members = append([]Member{{Name: typeIDMemberName, Type: Prim(KindTypeId), Offset: 0}}, members...)
		offset = Prim(KindTypeId).Size()
	}

	laidOut := make([]Member, 0, len(members))
	for _, m := range members {
		if m.Offset != 0 || m.Name == typeIDMemberName {
			laidOut = append(laidOut, m)
			continue
		}
		a := m.Type.Alignment()
		if a > alignment {
			alignment = a
		}
		offset = align(offset, a)
		m.Offset = offset
		offset += m.Type.Size()
		laidOut = append(laidOut, m)
	}

	c.Members = laidOut
	c.Constants = constants
	c.alignment = alignment
	c.size = padToMin4(offset, alignment)
	c.finalized = true
}

func (c *Class) Repr() string    { return c.Name }
func (c *Class) Size() int       { return c.size }
func (c *Class) Alignment() int  { return c.alignment }
func (c *Class) IsGeneric() bool { return false }

func (c *Class) equals(other DataType) bool {
	oc, ok := other.(*Class)
	return ok && oc == c
}

// DerivesFrom reports whether c is base, or derives from base transitively,
// supporting the base-ref/derived-ref cast-rating rules in §4.4/§4.5.
func (c *Class) DerivesFrom(base *Class) bool {
	for cur := c; cur != nil; cur = cur.Base {
		if cur == base {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// GenericClassProto(definitionHandle)

// GenericClassProto is the unspecialized form of a class declared with
// generic parameters. DefHandle is an opaque reference back to the
// originating syntax and scope-point, filled in by the scope component
// (spec.md §4.1 "instructed to reanalyze the prototype's class-definition
// syntax at the original scope-point"); the type universe never inspects
// it.
type GenericClassProto struct {
	Name      string
	Params    []string
	DefHandle interface{}
}

var protoTable = map[string]*GenericClassProto{}

// DeclareGenericClassProto registers a generic class prototype by name.
func DeclareGenericClassProto(name string, params []string, handle interface{}) *GenericClassProto {
	if p, ok := protoTable[name]; ok {
		return p
	}
	p := &GenericClassProto{Name: name, Params: params, DefHandle: handle}
	protoTable[name] = p
	return p
}

// LookupGenericClassProto returns the registered prototype named name, or
// nil.
func LookupGenericClassProto(name string) *GenericClassProto {
	return protoTable[name]
}

func (p *GenericClassProto) Repr() string    { return p.Name }
func (p *GenericClassProto) Size() int       { return 0 }
func (p *GenericClassProto) Alignment() int  { return 0 }
func (p *GenericClassProto) IsGeneric() bool { return true }

func (p *GenericClassProto) equals(other DataType) bool {
	op, ok := other.(*GenericClassProto)
	return ok && op == p
}

// -----------------------------------------------------------------------------
// Enum(...)

// EnumConst is a single named member of an enum, holding its already
// reduced integer value.
type EnumConst struct {
	Name  string
	Value int64
}

// Enum is a closed set of named integer constants, interned by name.
type Enum struct {
	Name     string
	Elements []EnumConst
}

var enumTable = map[string]*Enum{}

// DeclareEnum creates (or returns the existing) Enum named name with the
// given elements.
func DeclareEnum(name string, elements []EnumConst) *Enum {
	if e, ok := enumTable[name]; ok {
		return e
	}
	e := &Enum{Name: name, Elements: elements}
	enumTable[name] = e
	return e
}

func (e *Enum) Repr() string    { return e.Name }
func (e *Enum) Size() int       { return Prim(KindInt).Size() }
func (e *Enum) Alignment() int  { return Prim(KindInt).Size() }
func (e *Enum) IsGeneric() bool { return false }

func (e *Enum) equals(other DataType) bool {
	oe, ok := other.(*Enum)
	return ok && oe == e
}

// -----------------------------------------------------------------------------
// FunctionSet(candidates[]), ArgumentSet(args[]), MemberSet(class)
//
// These three are transient, non-interned types produced mid-analysis: a
// FunctionSet is what a bare overloaded-name reference carries until a call
// site narrows it; an ArgumentSet is the type-level record of a prepared
// call's actual argument types (used by MatchGenericType and rating);
// MemberSet is what member access on an auto-ref value yields before the
// call site narrows which class's method is meant (spec.md §4.4 "expand
// into an overload set of all methods of every class named x").

// FunctionSet wraps the still-unresolved overload candidates for a name.
// Candidate is deliberately opaque (an interface{} symbol reference held by
// package scope) so that the type universe has no dependency on the symbol
// table.
type FunctionSet struct {
	Candidates []interface{}
}

func NewFunctionSet(candidates []interface{}) *FunctionSet {
	return &FunctionSet{Candidates: candidates}
}

func (fs *FunctionSet) Repr() string    { return "<function set>" }
func (fs *FunctionSet) Size() int       { return 0 }
func (fs *FunctionSet) Alignment() int  { return 0 }
func (fs *FunctionSet) IsGeneric() bool { return false }
func (fs *FunctionSet) equals(other DataType) bool {
	ofs, ok := other.(*FunctionSet)
	return ok && ofs == fs
}

// ArgumentSet is the resolved type list of a prepared call's actual
// arguments, in formal-slot order (spec.md §4.5 "Argument preparation").
type ArgumentSet struct {
	Args []DataType
}

func NewArgumentSet(args []DataType) *ArgumentSet {
	return &ArgumentSet{Args: args}
}

func (as *ArgumentSet) Repr() string    { return "(" + reprList(as.Args) + ")" }
func (as *ArgumentSet) Size() int       { return 0 }
func (as *ArgumentSet) Alignment() int  { return 0 }
func (as *ArgumentSet) IsGeneric() bool { return anyGeneric(as.Args...) }
func (as *ArgumentSet) equals(other DataType) bool {
	oas, ok := other.(*ArgumentSet)
	return ok && oas == as
}

// MemberSet is the auto-ref member-access expansion: every method named the
// same thing across class, narrowed later by the call site.
type MemberSet struct {
	Class *Class
	Name  string
}

func NewMemberSet(class *Class, name string) *MemberSet {
	return &MemberSet{Class: class, Name: name}
}

func (ms *MemberSet) Repr() string    { return ms.Class.Name + "." + ms.Name }
func (ms *MemberSet) Size() int       { return 0 }
func (ms *MemberSet) Alignment() int  { return 0 }
func (ms *MemberSet) IsGeneric() bool { return false }
func (ms *MemberSet) equals(other DataType) bool {
	oms, ok := other.(*MemberSet)
	return ok && oms == ms
}
