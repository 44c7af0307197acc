package walk

import (
	"nullc/ast"
	"nullc/constexpr"
	"nullc/report"
	"nullc/scope"
	"nullc/types"
)

func (w *Walker) walkVarDef(n *ast.VarDef) Node {
	var init Node
	var declared types.DataType

	if n.Type != nil {
		declared = w.resolveType(n.Type)
	}
	if n.Init != nil {
		init = w.walkExpr(n.Init)
	}

	if declared == nil || isAutoType(declared) {
		if init == nil {
			report.Raise(report.ErrType, n.Pos(), "variable `%s` needs either a declared type or an initializer", n.Name)
		}
		declared = init.Type()
	}

	if init != nil {
		init = w.CreateCast(init, declared, false)
	}

	if n.Align != nil {
		align := constexpr.EvalRequired(w.walkExpr(n.Align), "alignment clause")
		constexpr.ValidateAlignment(n.Pos(), align.IntVal)
	}

	region, offset := w.Table.AllocateInScope(declared.Alignment(), declared.Size())
	v := &scope.Variable{
		Name:        n.Name,
		Type:        declared,
		Region:      region,
		Offset:      offset,
		Align:       declared.Alignment(),
		IsReference: n.IsReference,
		DefPos:      n.Pos(),
	}
	w.Table.Current.DefineVariable(v)

	return &VarDef{base: newBase(n.Pos(), declared), Variable: v, Init: init}
}

func isAutoType(t types.DataType) bool {
	p, ok := t.(*types.Primitive)
	return ok && p.Kind() == types.KindAuto
}

func (w *Walker) walkFuncDef(n *ast.FuncDef) Node {
	generics := map[string]types.DataType{}
	for _, g := range n.Generics {
		generics[g] = types.GetGeneric(g)
	}

	argTypes := make([]types.DataType, len(n.Args))
	args := make([]scope.FuncArg, len(n.Args))
	for i, a := range n.Args {
		t := w.resolveType(a.Type)
		argTypes[i] = t
		args[i] = scope.FuncArg{Name: a.Name, Type: t, Default: a.Default, IsExplicit: a.IsExplicit}
	}

	var retType types.DataType
	if n.ReturnType != nil {
		retType = w.resolveType(n.ReturnType)
	} else {
		retType = types.Prim(types.KindAuto)
	}

	f := &scope.Function{
		Name:        n.Name,
		Syntax:      n,
		Type:        types.GetFunction(retType, argTypes),
		Generics:    generics,
		Args:        args,
		IsPrototype: n.IsPrototype,
		IsAccessor:  n.IsAccessor,
		IsCoroutine: n.IsCoroutine,
		DefPos:      n.Pos(),
	}

	if n.ParentType != nil {
		f.ContextType = types.GetReference(w.resolveType(n.ParentType))
	}

	w.Table.Current.DefineFunction(f)

	if n.Body == nil {
		return &FuncDef{base: newBase(n.Pos(), f.Type), Function: f}
	}

	w.Table.PushFunction(f, n.Pos())
	prevFunc, prevReturn, prevCoroutine := w.enclosingFunc, w.enclosingReturn, w.isCoroutine
	w.enclosingFunc, w.enclosingReturn, w.isCoroutine = f, nil, n.IsCoroutine
	if n.ReturnType != nil {
		w.enclosingReturn = retType
	}

	for _, a := range args {
		region, offset := w.Table.AllocateInScope(a.Type.Alignment(), a.Type.Size())
		w.Table.Current.DefineVariable(&scope.Variable{Name: a.Name, Type: a.Type, Region: region, Offset: offset, DefPos: n.Pos()})
	}

	body := w.walkNode(n.Body)

	finalReturn := retType
	if isAutoType(retType) && w.enclosingReturn != nil {
		finalReturn = w.enclosingReturn
	}
	f.Type = types.GetFunction(finalReturn, argTypes)

	w.enclosingFunc, w.enclosingReturn, w.isCoroutine = prevFunc, prevReturn, prevCoroutine
	w.Table.PopScope(n.Pos())

	return &FuncDef{base: newBase(n.Pos(), f.Type), Function: f, Body: body}
}

func (w *Walker) walkClassDef(n *ast.ClassDef) Node {
	if len(n.Aliases) > 0 {
		proto := types.DeclareGenericClassProto(n.Name, n.Aliases, &genericClassHandle{def: n, scope: w.Table.Current, pos: n.Pos()})
		w.Table.Current.DefineType(n.Name, proto, n.Pos(), false)
		return &GenericClassProtoDef{base: newBase(n.Pos(), nil), Proto: proto}
	}

	var base *types.Class
	if n.Base != nil {
		if bc, ok := w.resolveType(n.Base).(*types.Class); ok {
			base = bc
		}
	}

	class := types.DeclareClass(n.Name, n.Extendable, base)
	w.Table.Current.DefineType(n.Name, class, n.Pos(), false)

	body := w.walkClassBody(n, class)
	return &ClassDef{base: newBase(n.Pos(), class), Class: class, Body: body}
}

// walkClassBody implements spec.md §4.1/§4.4's class layout-then-methods
// ordering: every member and constant contributed by the body and by any
// taken `static if` branch is collected first, so Finalize lays out the
// class exactly once with its real member list, before any method body
// (which may reference sizeof(Self) or other members) is walked.
func (w *Walker) walkClassBody(n *ast.ClassDef, class *types.Class) []Node {
	w.Table.PushType(class, n.Pos())
	defer w.Table.PopScope(n.Pos())

	var members []types.Member
	var constants []types.ConstantField
	var funcs []*ast.FuncDef
	var accessors []*ast.FuncDef
	var nodes []Node

	for _, td := range n.Elements.Typedefs {
		nodes = append(nodes, w.walkTypeDef(td))
	}

	collect := func(elems ast.ClassElements) {
		for _, m := range elems.Members {
			members = append(members, types.Member{Name: m.Name, Type: w.resolveType(m.Type)})
		}
		for _, c := range elems.Constants {
			t := w.resolveType(c.Type)
			var value interface{}
			if c.Init != nil {
				value = constexpr.EvalRequired(w.walkExpr(c.Init), "class constant").IntVal
			}
			constants = append(constants, types.ConstantField{Name: c.Name, Type: t, Value: value})
		}
		funcs = append(funcs, elems.Functions...)
		accessors = append(accessors, elems.Accessors...)
	}

	collect(n.Elements)
	for _, si := range n.Elements.StaticIfs {
		cond := constexpr.EvalRequired(w.walkExpr(si.Cond), "static if")
		if cond.BoolVal {
			collect(si.Then)
		} else if si.HasElse {
			collect(si.Else)
		}
	}

	class.Finalize(members, constants)

	for _, f := range funcs {
		nodes = append(nodes, w.walkFuncDef(f))
	}
	for _, a := range accessors {
		a.IsAccessor = true
		nodes = append(nodes, w.walkFuncDef(a))
	}

	return nodes
}

func (w *Walker) walkEnumDef(n *ast.EnumDef) Node {
	var next int64
	elements := make([]types.EnumConst, len(n.Elements))
	for i, e := range n.Elements {
		if e.Value != nil {
			v := constexpr.EvalRequired(w.walkExpr(e.Value), "enum element")
			next = v.AsInt64()
		}
		elements[i] = types.EnumConst{Name: e.Name, Value: next}
		next++
	}
	enum := types.DeclareEnum(n.Name, elements)
	w.Table.Current.DefineType(n.Name, enum, n.Pos(), false)
	for _, el := range elements {
		w.Table.Current.DefineConstant(&scope.Constant{Name: el.Name, Type: enum, Value: el.Value, DefPos: n.Pos()})
	}
	return &EnumDef{base: newBase(n.Pos(), enum), Enum: enum}
}

func (w *Walker) walkNamespaceDef(n *ast.NamespaceDef) Node {
	w.Table.PushNamespace(n.Name, n.Pos())
	var nodes []Node
	for _, child := range n.Body {
		nodes = append(nodes, w.walkNode(child))
	}
	w.Table.PopScope(nil)
	return &Sequence{base: newBase(n.Pos(), nil), Nodes: nodes}
}

func (w *Walker) walkTypeDef(n *ast.TypeDef) Node {
	target := w.resolveType(n.Target)
	alias := &scope.Alias{Name: n.Name, Target: target, DefPos: n.Pos()}
	w.Table.Current.DefineAlias(alias)
	return &AliasDef{base: newBase(n.Pos(), target), Alias: alias}
}
