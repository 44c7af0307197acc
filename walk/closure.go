package walk

import (
	"nullc/report"
	"nullc/scope"
	"nullc/types"
)

// captureUpvalue implements spec.md §4.4 "closure synthesis": the first
// time an enclosing function's local is referenced from a nested function,
// a synthesized closure class gains a target member (plus a copy member
// when the walker is inside a coroutine) and the access is rewritten to
// `*(context.target)`.
func (w *Walker) captureUpvalue(pos *report.TextPosition, v *scope.Variable) Node {
	f := w.enclosingFunc
	if f == nil {
		report.Raise(report.ErrName, pos, "internal: upvalue capture with no enclosing function")
	}

	ctxClass := w.closureClassFor(f)

	targetMember, copyMember := findUpvalueMembers(ctxClass, v.Name)
	if targetMember == nil {
		targetMember = &types.Member{Name: v.Name + "$target", Type: types.GetReference(v.Type)}
		ctxClass.Members = append(ctxClass.Members, *targetMember)
		if w.isCoroutine {
			copyMember = &types.Member{Name: v.Name + "$copy", Type: v.Type}
			ctxClass.Members = append(ctxClass.Members, *copyMember)
		}
	}

	f.UpvalueFor(v, targetMember, copyMember)

	if f.ContextArg == nil {
		f.ContextArg = &scope.Variable{Name: "context", Type: types.GetReference(ctxClass)}
	}

	ctxAccess := &VariableAccess{base: newBase(pos, f.ContextArg.Type), Variable: f.ContextArg}
	member := &MemberAccess{base: newBase(pos, targetMember.Type), Root: ctxAccess, Member: targetMember}
	return &Dereference{base: newBase(pos, v.Type), Operand: member}
}

func findUpvalueMembers(c *types.Class, varName string) (*types.Member, *types.Member) {
	var target, copy *types.Member
	for i := range c.Members {
		switch c.Members[i].Name {
		case varName + "$target":
			target = &c.Members[i]
		case varName + "$copy":
			copy = &c.Members[i]
		}
	}
	return target, copy
}

// closureClassFor returns f's synthesized context class, declaring one on
// first capture. Degenerating to Ref(Void) when no upvalues exist is
// handled at definition-lowering time, not here, since that decision
// depends on whether any capture ever happened during the whole body walk.
func (w *Walker) closureClassFor(f *scope.Function) *types.Class {
	if cc, ok := classOf(f.ContextType); ok {
		return cc
	}
	cc := types.DeclareClass("$closure$"+f.Name, false, nil)
	f.ContextType = types.GetReference(cc)
	return cc
}
