package scope

import (
	"nullc/report"
	"nullc/types"
)

// Kind is the closed set of scope kinds a Push call can open
// (spec.md §4.2).
type Kind int

const (
	KindPlain Kind = iota
	KindNamespace
	KindFunction
	KindType
	KindLoop
	KindTemporary
)

// Scope is one node of the lexical scope tree (spec.md §3 "Scope"). Each
// entity defined directly in a scope appears in exactly that scope's owned
// list; lookup walks outward through Parent.
type Scope struct {
	Parent   *Scope
	Children []*Scope
	Kind     Kind

	// Namespace, OwnerFunc, and OwnerType are mutually exclusive; at most
	// one is non-nil depending on Kind.
	Namespace *Namespace
	OwnerFunc *Function
	OwnerType *types.Class

	LoopDepth int // cumulative nesting depth, used by break N / continue N

	variables map[string]*Variable
	functions map[string][]*Function
	typeDefs  map[string]*TypeEntry
	aliases   map[string]*Alias
	constants map[string]*Constant

	// watermark is this scope's next-free-offset cursor for
	// allocate_in_scope, meaningful only when Kind is Function (stack) or
	// Type (member); the global watermark lives on Table.
	watermark int

	openPos *report.TextPosition // source position this scope was pushed at
}

func newScope(parent *Scope, kind Kind, pos *report.TextPosition) *Scope {
	s := &Scope{
		Parent:    parent,
		Kind:      kind,
		variables: make(map[string]*Variable),
		functions: make(map[string][]*Function),
		typeDefs:  make(map[string]*TypeEntry),
		aliases:   make(map[string]*Alias),
		constants: make(map[string]*Constant),
		openPos:   pos,
	}
	if parent != nil {
		s.LoopDepth = parent.LoopDepth
		if kind == KindLoop {
			s.LoopDepth++
		}
		parent.Children = append(parent.Children, s)
	}
	return s
}

// -----------------------------------------------------------------------------
// Definition

// DefineVariable adds v to the scope's own variable list, hard-erroring on
// redefinition of the same name within this exact scope (spec.md §4.2
// "Redefinition (same name and same signature in the same scope) is a hard
// error").
func (s *Scope) DefineVariable(v *Variable) {
	if _, ok := s.variables[v.Name]; ok {
		report.Raise(report.ErrName, v.DefPos, "variable `%s` is already defined in this scope", v.Name)
	}
	v.Owner = s
	s.variables[v.Name] = v
}

// DefineFunction adds f as an overload candidate under its name. Unlike
// variables, functions form a multi-map. DefineFunction does not check for
// an identical signature already present in the scope, and none of its
// callers checks for one either, so a redefined function is not reported.
func (s *Scope) DefineFunction(f *Function) {
	f.OwnerScope = s
	s.functions[f.Name] = append(s.functions[f.Name], f)
}

// TypeEntry is what a scope's type table stores per name: the type itself
// plus enough provenance to support switch_to_scope_at_point's
// position-filtered reinsertion (spec.md §4.2).
type TypeEntry struct {
	Type     types.DataType
	DefPos   *report.TextPosition
	Imported bool
}

// DefineType registers name as denoting t directly (classes, enums,
// generic-class prototypes, and generic-class instances all go through
// this).
func (s *Scope) DefineType(name string, t types.DataType, pos *report.TextPosition, imported bool) {
	if _, ok := s.typeDefs[name]; ok {
		report.Raise(report.ErrName, pos, "type `%s` is already defined in this scope", name)
	}
	s.typeDefs[name] = &TypeEntry{Type: t, DefPos: pos, Imported: imported}
}

// DefineAlias registers a `typedef` alias, stored in the same conceptual
// namespace as types per spec.md §4.2 ("types... which also stores aliases
// under their alias name").
func (s *Scope) DefineAlias(a *Alias) {
	if _, ok := s.aliases[a.Name]; ok {
		report.Raise(report.ErrName, a.DefPos, "alias `%s` is already defined in this scope", a.Name)
	}
	s.aliases[a.Name] = a
}

// DefineConstant registers a compile-time constant.
func (s *Scope) DefineConstant(c *Constant) {
	if _, ok := s.constants[c.Name]; ok {
		report.Raise(report.ErrName, c.DefPos, "constant `%s` is already defined in this scope", c.Name)
	}
	s.constants[c.Name] = c
}

// -----------------------------------------------------------------------------
// Lookup — walks outward through Parent, per scope checking its own maps.
// This directly generalizes the teacher's stack-of-maps walker idiom to a
// tree so that switch_to_scope_at_point can re-enter an arbitrary ancestor
// or sibling scope rather than only ever popping the top of a slice.
//
// Every lookup takes a cutoff position. During ordinary forward analysis
// cutoff is nil and every entry in a visited scope's map is visible — a
// single forward walk never adds a symbol to a map before it's legal to
// see it. Reanalysis (switch_to_scope_at_point, spec.md §4.2) reuses scopes
// whose maps already hold symbols defined after the point being
// re-entered, so it passes a non-nil cutoff; imported symbols are always
// visible regardless of cutoff (spec.md: "treated as if defined at
// position zero").

func visibleAt(defPos *report.TextPosition, imported bool, cutoff *report.TextPosition) bool {
	if cutoff == nil || imported || defPos == nil {
		return true
	}
	return defPos.StartLine < cutoff.StartLine ||
		(defPos.StartLine == cutoff.StartLine && defPos.StartCol < cutoff.StartCol)
}

// LookupVariable searches s and its ancestors for a variable named name.
func (s *Scope) LookupVariable(name string, cutoff *report.TextPosition) (*Variable, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if v, ok := cur.variables[name]; ok && visibleAt(v.DefPos, v.Imported, cutoff) {
			return v, true
		}
	}
	return nil, false
}

// LookupFunctions collects every overload candidate named name visible from
// s, nearest scope first (so that a local shadow of a global name can be
// detected by the caller if it wants that distinction).
func (s *Scope) LookupFunctions(name string, cutoff *report.TextPosition) []*Function {
	var out []*Function
	for cur := s; cur != nil; cur = cur.Parent {
		for _, f := range cur.functions[name] {
			if visibleAt(f.DefPos, f.Imported, cutoff) {
				out = append(out, f)
			}
		}
	}
	return out
}

// LookupType searches s and its ancestors for a type or alias named name,
// resolving through Alias to its target.
func (s *Scope) LookupType(name string, cutoff *report.TextPosition) (types.DataType, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if te, ok := cur.typeDefs[name]; ok && visibleAt(te.DefPos, te.Imported, cutoff) {
			return te.Type, true
		}
		if a, ok := cur.aliases[name]; ok && visibleAt(a.DefPos, a.Imported, cutoff) {
			return a.Target, true
		}
	}
	return nil, false
}

// LookupConstant searches s and its ancestors for a constant named name.
func (s *Scope) LookupConstant(name string, cutoff *report.TextPosition) (*Constant, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if c, ok := cur.constants[name]; ok && visibleAt(c.DefPos, c.Imported, cutoff) {
			return c, true
		}
	}
	return nil, false
}

// EnclosingFunction returns the nearest ancestor scope (including s) whose
// Kind is KindFunction, or nil at global scope.
func (s *Scope) EnclosingFunction() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind == KindFunction {
			return cur
		}
	}
	return nil
}

// EnclosingType returns the nearest ancestor scope (including s) whose Kind
// is KindType, or nil if s is not inside a method body.
func (s *Scope) EnclosingType() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind == KindType {
			return cur
		}
	}
	return nil
}

// QualifiedName builds the namespace-qualified form of name as seen from s,
// by walking the parent chain and collecting ancestor namespace names,
// skipping every non-namespace scope in between (spec.md §3 invariant 2).
func (s *Scope) QualifiedName(name string) string {
	var segs []string
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind == KindNamespace && cur.Namespace != nil {
			segs = append(segs, cur.Namespace.Name)
		}
	}
	qualified := name
	for _, seg := range segs {
		qualified = seg + "::" + qualified
	}
	return qualified
}
