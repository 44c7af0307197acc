package scope

import (
	"nullc/report"
	"nullc/types"
)

// Table owns the scope tree's root and tracks the currently active scope,
// plus the global allocation watermark (spec.md §4.2 "Allocation
// discipline").
type Table struct {
	Root    *Scope
	Current *Scope

	globalWatermark int
}

// NewTable creates a fresh table with an empty global scope.
func NewTable() *Table {
	root := newScope(nil, KindPlain, nil)
	return &Table{Root: root, Current: root}
}

// PushScope opens kind as a child of the current scope and makes it
// current. kind must not be KindNamespace, KindFunction, or KindType — use
// PushNamespace / PushFunction / PushType for those, since they carry an
// owner.
func (t *Table) PushScope(kind Kind, pos *report.TextPosition) *Scope {
	child := newScope(t.Current, kind, pos)
	t.Current = child
	return child
}

// PushNamespace opens (or reopens) a namespace scope named name as a child
// of the current scope. Reopening an existing sibling namespace reuses its
// Scope so that members accumulate across multiple `namespace name { ... }`
// blocks, matching how the pop-time merge rule keeps a namespace's contents
// addressable for the rest of compilation.
func (t *Table) PushNamespace(name string, pos *report.TextPosition) *Scope {
	for _, child := range t.Current.Children {
		if child.Kind == KindNamespace && child.Namespace != nil && child.Namespace.Name == name {
			t.Current = child
			return child
		}
	}

	child := newScope(t.Current, KindNamespace, pos)
	child.Namespace = &Namespace{Name: name, Scope: child}
	t.Current = child
	return child
}

// PushFunction opens f's function scope as a child of the current scope.
func (t *Table) PushFunction(f *Function, pos *report.TextPosition) *Scope {
	child := newScope(t.Current, KindFunction, pos)
	child.OwnerFunc = f
	f.FuncScope = child
	t.Current = child
	return child
}

// PushType opens c's member scope as a child of the current scope.
func (t *Table) PushType(c *types.Class, pos *report.TextPosition) *Scope {
	child := newScope(t.Current, KindType, pos)
	child.OwnerType = c
	t.Current = child
	return child
}

// PopScope closes the current scope and returns to its parent. atLocation
// is the closing brace's position; passing nil triggers the namespace
// merge-on-pop rule (spec.md §4.2: "on pop_scope(null_location) their
// contents are moved into the enclosing namespace-or-global scope rather
// than being unmapped") for a namespace scope — this models namespace
// members remaining accessible after the closing brace. For every other
// scope kind, or a non-nil atLocation, popping is a plain move to Parent;
// the scope and its symbol maps remain reachable via the tree for any
// later switch_to_scope_at_point reanalysis, they are simply no longer on
// the active lexical path.
func (t *Table) PopScope(atLocation *report.TextPosition) {
	cur := t.Current
	if cur.Parent == nil {
		report.Raise(report.ErrLayout, atLocation, "cannot pop the global scope")
	}

	if cur.Kind == KindNamespace && atLocation == nil {
		dest := nearestNamespaceOrGlobal(cur.Parent)
		mergeInto(dest, cur)
	}

	t.Current = cur.Parent
}

// nearestNamespaceOrGlobal walks outward from s to the nearest ancestor
// (including s) that is a namespace scope or the global root.
func nearestNamespaceOrGlobal(s *Scope) *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind == KindNamespace || cur.Parent == nil {
			return cur
		}
	}
	return s
}

// mergeInto copies every entry of src's own maps into dest, without
// clearing src — src's children still see their own definitions exactly as
// before via the scope tree, and dest now also exposes them directly.
func mergeInto(dest, src *Scope) {
	for name, v := range src.variables {
		if _, exists := dest.variables[name]; !exists {
			dest.variables[name] = v
		}
	}
	for name, fs := range src.functions {
		dest.functions[name] = append(dest.functions[name], fs...)
	}
	for name, te := range src.typeDefs {
		if _, exists := dest.typeDefs[name]; !exists {
			dest.typeDefs[name] = te
		}
	}
	for name, a := range src.aliases {
		if _, exists := dest.aliases[name]; !exists {
			dest.aliases[name] = a
		}
	}
	for name, c := range src.constants {
		if _, exists := dest.constants[name]; !exists {
			dest.constants[name] = c
		}
	}
}

// -----------------------------------------------------------------------------
// switch_to_scope_at_point

// commonAncestor returns the nearest scope that is an ancestor of (or equal
// to) both a and b.
func commonAncestor(a, b *Scope) *Scope {
	depth := func(s *Scope) int {
		d := 0
		for cur := s; cur != nil; cur = cur.Parent {
			d++
		}
		return d
	}

	da, db := depth(a), depth(b)
	for da > db {
		a = a.Parent
		da--
	}
	for db > da {
		b = b.Parent
		db--
	}
	for a != b {
		a = a.Parent
		b = b.Parent
	}
	return a
}

// SwitchToScopeAtPoint re-enters target for reanalysis at sourcePoint
// (spec.md §4.2): pops scopes (without namespace merging — this is an
// internal jump, not a real closing brace) until the common ancestor with
// target is reached, then makes target current. Lookups performed against
// the returned scope with cutoff = sourcePoint see only symbols defined
// before sourcePoint, plus imported ones.
func (t *Table) SwitchToScopeAtPoint(target *Scope, sourcePoint *report.TextPosition) *Scope {
	anchor := commonAncestor(t.Current, target)
	for t.Current != anchor {
		t.Current = t.Current.Parent
	}
	t.Current = target
	return target
}

// -----------------------------------------------------------------------------
// allocate_in_scope

// AllocateInScope advances the first enclosing function/type/global
// region's watermark by size, aligned to alignment, and returns the base
// offset (spec.md §4.2). Stack scopes nested inside a function scope share
// that function's single watermark, matching how a stack frame's locals
// never overlap regardless of which nested block declared them.
func (t *Table) AllocateInScope(alignment, size int) (Region, int) {
	for cur := t.Current; cur != nil; cur = cur.Parent {
		switch cur.Kind {
		case KindFunction:
			base := align(cur.watermark, alignment)
			cur.watermark = base + size
			return RegionStack, base
		case KindType:
			base := align(cur.watermark, alignment)
			cur.watermark = base + size
			return RegionMember, base
		}
		if cur.Parent == nil {
			base := align(t.globalWatermark, alignment)
			t.globalWatermark = base + size
			return RegionGlobal, base
		}
	}
	// Unreachable: the loop above always terminates at the global scope.
	base := align(t.globalWatermark, alignment)
	t.globalWatermark = base + size
	return RegionGlobal, base
}

func align(offset, alignment int) int {
	if alignment <= 0 {
		return offset
	}
	if rem := offset % alignment; rem != 0 {
		return offset + (alignment - rem)
	}
	return offset
}
