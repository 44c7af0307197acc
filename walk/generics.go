package walk

import (
	"nullc/ast"
	"nullc/report"
	"nullc/scope"
	"nullc/types"
)

// ReanalyzeGenericClass implements types.Reanalyzer: it re-enters a generic
// class prototype's definition at its original scope-point with the
// prototype's parameters bound to args, and returns the resulting concrete
// class (spec.md §4.1).
func (w *Walker) ReanalyzeGenericClass(proto *types.GenericClassProto, args []types.DataType) *types.Class {
	handle, ok := proto.DefHandle.(*genericClassHandle)
	if !ok {
		report.Raise(report.ErrGeneric, nil, "internal: generic class prototype `%s` has no definition handle", proto.Name)
	}

	saved := w.Table.Current
	w.Table.SwitchToScopeAtPoint(handle.scope, handle.pos)
	savedCutoff := w.reanalysisCutoff
	w.reanalysisCutoff = handle.pos
	defer func() {
		w.Table.Current = saved
		w.reanalysisCutoff = savedCutoff
	}()

	for i, param := range proto.Params {
		if i < len(args) {
			w.Table.Current.DefineAlias(&scope.Alias{Name: param, Target: args[i], DefPos: handle.pos})
		}
	}

	concreteName := proto.Name
	class := types.DeclareClass(concreteName, handle.def.Extendable, nil)
	w.walkClassBody(handle.def, class)
	return class
}

// genericClassHandle is the opaque DefHandle stashed on a
// types.GenericClassProto by walkClassDef when the class declares generic
// parameters.
type genericClassHandle struct {
	def   *ast.ClassDef
	scope *scope.Scope
	pos   *report.TextPosition
}

// ReanalyzeFunction implements overload.Instantiator: it re-enters a
// generic function's definition scope, types its formal list against the
// alias bindings, walks its body, and returns the concrete instance
// (spec.md §4.5 "Generic instantiation").
func (w *Walker) ReanalyzeFunction(proto *scope.Function, aliases map[string]types.DataType) *scope.Function {
	saved := w.Table.Current
	w.Table.SwitchToScopeAtPoint(proto.OwnerScope, proto.DefPos)
	savedCutoff := w.reanalysisCutoff
	w.reanalysisCutoff = proto.DefPos
	defer func() {
		w.Table.Current = saved
		w.reanalysisCutoff = savedCutoff
	}()

	temp := w.Table.PushScope(scope.KindTemporary, proto.DefPos)
	for name, t := range aliases {
		temp.DefineAlias(&scope.Alias{Name: name, Target: t, DefPos: proto.DefPos})
	}

	concreteArgs := make([]scope.FuncArg, len(proto.Args))
	for i, a := range proto.Args {
		concreteType := substituteGenerics(a.Type, aliases)
		concreteArgs[i] = scope.FuncArg{Name: a.Name, Type: concreteType, Default: a.Default, IsExplicit: a.IsExplicit}
		temp.DefineVariable(&scope.Variable{Name: a.Name, Type: concreteType, DefPos: proto.DefPos})
	}

	returnType := substituteGenerics(proto.Type.Return, aliases)
	argTypes := make([]types.DataType, len(concreteArgs))
	for i, a := range concreteArgs {
		argTypes[i] = a.Type
	}

	concrete := &scope.Function{
		Name:     proto.Name,
		Syntax:   proto.Syntax,
		Args:     concreteArgs,
		Type:     types.GetFunction(returnType, argTypes),
		DefPos:   proto.DefPos,
		Generics: aliases,
	}

	funcScope := w.Table.PushFunction(concrete, proto.DefPos)
	prevFunc, prevReturn := w.enclosingFunc, w.enclosingReturn
	w.enclosingFunc, w.enclosingReturn = concrete, returnType
	var body Node
	if proto.Syntax != nil && proto.Syntax.Body != nil {
		proto.Implementation = concrete
		body = w.walkNode(proto.Syntax.Body)
	}
	w.enclosingFunc, w.enclosingReturn = prevFunc, prevReturn
	w.Table.PopScope(proto.DefPos)
	_ = funcScope

	w.Table.PopScope(proto.DefPos)

	// Every instance needs exactly one FuncDef carrying its analyzed body
	// (spec.md §8 "exactly one function body in the output IR" per
	// instantiation); the instance is never reached by the top-level
	// WalkModule loop (it is created mid-expression, while resolving a
	// call site), so it is queued here and spliced into the module's node
	// list once WalkModule finishes its own pass (spec.md §4.6).
	if body != nil {
		w.pendingInstances = append(w.pendingInstances, &FuncDef{base: newBase(proto.DefPos, concrete.Type), Function: concrete, Body: body})
	}

	return concrete
}

// substituteGenerics rebuilds t with every Generic leaf replaced by its
// binding in aliases, leaving unrelated structure untouched.
func substituteGenerics(t types.DataType, aliases map[string]types.DataType) types.DataType {
	switch v := t.(type) {
	case *types.Generic:
		if bound, ok := aliases[v.Name]; ok {
			return bound
		}
		return v
	case *types.Ref:
		return types.GetReference(substituteGenerics(v.Elem, aliases))
	case *types.Array:
		return types.GetArray(substituteGenerics(v.Elem, aliases), v.Length)
	case *types.UnsizedArray:
		return types.GetUnsizedArray(substituteGenerics(v.Elem, aliases))
	case *types.Function:
		args := make([]types.DataType, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteGenerics(a, aliases)
		}
		return types.GetFunction(substituteGenerics(v.Return, aliases), args)
	default:
		return t
	}
}
