package walk

import (
	"nullc/ast"
	"nullc/constexpr"
	"nullc/report"
	"nullc/scope"
	"nullc/types"
)

func (w *Walker) walkBlock(n *ast.Block) Node {
	w.Table.PushScope(scope.KindPlain, n.Pos())
	nodes := make([]Node, len(n.Body))
	for i, b := range n.Body {
		nodes[i] = w.walkNode(b)
	}
	blockScope := w.Table.Current
	w.Table.PopScope(n.Pos())
	return &Block{base: newBase(n.Pos(), nil), Scope: blockScope, Nodes: nodes}
}

// walkIfElse covers both the runtime conditional and `static if`, whose
// branch not taken is never walked at all (spec.md §4.3).
func (w *Walker) walkIfElse(n *ast.IfElse) Node {
	if n.StaticIf {
		cond := constexpr.EvalRequired(w.walkExpr(n.Cond), "static if")
		switch {
		case cond.BoolVal && n.Then != nil:
			return w.walkNode(n.Then)
		case !cond.BoolVal && n.Else != nil:
			return w.walkNode(n.Else)
		default:
			return &Sequence{base: newBase(n.Pos(), nil)}
		}
	}

	cond := w.CreateCast(w.walkExpr(n.Cond), types.Prim(types.KindBool), false)
	then := w.walkNode(n.Then)
	var els Node
	if n.Else != nil {
		els = w.walkNode(n.Else)
	}
	return &IfElse{base: newBase(n.Pos(), nil), Cond: cond, Then: then, Else: els}
}

func (w *Walker) walkFor(n *ast.For) Node {
	w.Table.PushScope(scope.KindLoop, n.Pos())
	defer w.Table.PopScope(n.Pos())

	var init Node
	if n.Init != nil {
		init = w.walkNode(n.Init)
	}
	var cond Node
	if n.Cond != nil {
		cond = w.CreateCast(w.walkExpr(n.Cond), types.Prim(types.KindBool), false)
	}
	var step Node
	if n.Step != nil {
		step = w.walkNode(n.Step)
	}
	body := w.walkNode(n.Body)

	return &For{base: newBase(n.Pos(), nil), Init: init, Cond: cond, Step: step, Body: body}
}

// walkForEach lowers `for (it1 in e1, it2 in e2, ...) body` into an
// index-driven For. A fixed-size Array or an UnsizedArray source (or a
// reference to one) is indexed by the shared counter; a source of any other
// type is assigned to its loop variable unchanged on every pass. No
// iterator methods are looked up, and a function-typed source is not run
// as a coroutine.
func (w *Walker) walkForEach(n *ast.ForEach) Node {
	w.Table.PushScope(scope.KindLoop, n.Pos())
	defer w.Table.PopScope(n.Pos())

	const (
		kindArray = iota
		kindUnsized
		kindSingle
	)

	type iterState struct {
		elem   types.DataType
		source Node
		kind   int
		length int
	}

	idxVar := &scope.Variable{Name: "$index", Type: types.Prim(types.KindInt), DefPos: n.Pos()}
	idxRegion, idxOffset := w.Table.AllocateInScope(idxVar.Type.Alignment(), idxVar.Type.Size())
	idxVar.Region, idxVar.Offset = idxRegion, idxOffset
	w.Table.Current.DefineVariable(idxVar)

	minLength := -1
	states := make([]iterState, len(n.Iterators))

	for i, it := range n.Iterators {
		source := w.walkExpr(it.Expr)
		st := iterState{source: source, kind: kindSingle, length: -1}

		elemType := source.Type()
		if r, ok := elemType.(*types.Ref); ok {
			elemType = r.Elem
		}

		switch at := elemType.(type) {
		case *types.Array:
			st.kind, st.elem, st.length = kindArray, at.Elem, at.Length
			if minLength == -1 || at.Length < minLength {
				minLength = at.Length
			}
		case *types.UnsizedArray:
			st.kind, st.elem = kindUnsized, at.Elem
		default:
			st.elem = elemType
		}

		if it.Type != nil {
			st.elem = w.resolveType(it.Type)
		}

		loopVar := &scope.Variable{Name: it.Name, Type: st.elem, DefPos: n.Pos()}
		region, offset := w.Table.AllocateInScope(st.elem.Alignment(), st.elem.Size())
		loopVar.Region, loopVar.Offset = region, offset
		w.Table.Current.DefineVariable(loopVar)

		states[i] = st
	}

	body := w.walkNode(n.Body)

	idxAccess := func() Node { return &VariableAccess{base: newBase(n.Pos(), idxVar.Type), Variable: idxVar} }

	var setup []Node
	for i, it := range n.Iterators {
		st := states[i]
		loopVar, _ := w.Table.Current.LookupVariable(it.Name, w.cutoff())
		var value Node
		switch st.kind {
		case kindArray, kindUnsized:
			value = &ArrayIndex{base: newBase(n.Pos(), st.elem), Root: st.source, Index: idxAccess()}
		default:
			value = st.source
		}
		setup = append(setup, &Assignment{
			base:   newBase(n.Pos(), st.elem),
			Target: &VariableAccess{base: newBase(n.Pos(), loopVar.Type), Variable: loopVar},
			Value:  value,
		})
	}

	var cond Node
	switch {
	case minLength >= 0:
		limit := NewLiteral(n.Pos(), types.Prim(types.KindInt), LitInt)
		limit.IntVal = int32(minLength)
		cond = &BinaryOp{base: newBase(n.Pos(), types.Prim(types.KindBool)), Op: "<", Lhs: idxAccess(), Rhs: limit}
	default:
		// An unsized-array-only iteration reads its runtime length off the
		// hidden size member rather than a constant known at analysis time.
		sizeMember := &types.Member{Name: "size", Type: types.Prim(types.KindInt), Offset: types.SizeMemberOffset}
		limit := &MemberAccess{base: newBase(n.Pos(), sizeMember.Type), Root: states[0].source, Member: sizeMember}
		cond = &BinaryOp{base: newBase(n.Pos(), types.Prim(types.KindBool)), Op: "<", Lhs: idxAccess(), Rhs: limit}
	}

	step := &PrePostModify{base: newBase(n.Pos(), idxVar.Type), Operand: idxAccess(), Incr: true, IsPost: true}
	fullBody := &Sequence{base: newBase(n.Pos(), nil), Nodes: append(setup, body)}

	return &For{base: newBase(n.Pos(), nil), Cond: cond, Step: step, Body: fullBody}
}

func (w *Walker) walkWhile(n *ast.While) Node {
	w.Table.PushScope(scope.KindLoop, n.Pos())
	defer w.Table.PopScope(n.Pos())

	cond := w.CreateCast(w.walkExpr(n.Cond), types.Prim(types.KindBool), false)
	body := w.walkNode(n.Body)
	return &While{base: newBase(n.Pos(), nil), Cond: cond, Body: body}
}

func (w *Walker) walkDoWhile(n *ast.DoWhile) Node {
	w.Table.PushScope(scope.KindLoop, n.Pos())
	defer w.Table.PopScope(n.Pos())

	body := w.walkNode(n.Body)
	cond := w.CreateCast(w.walkExpr(n.Cond), types.Prim(types.KindBool), false)
	return &DoWhile{base: newBase(n.Pos(), nil), Body: body, Cond: cond}
}

// walkSwitch implements fallthrough-by-default case bodies (spec.md
// supplement, grounded on the original parser's switch-fallthrough
// handling). A switch opens its own loop-depth level so a bare `break`
// inside it exits the switch rather than an enclosing loop.
func (w *Walker) walkSwitch(n *ast.Switch) Node {
	cond := w.walkExpr(n.Cond)

	w.Table.PushScope(scope.KindLoop, n.Pos())
	defer w.Table.PopScope(n.Pos())

	cases := make([]SwitchCase, len(n.Cases))
	for i, c := range n.Cases {
		values := make([]Node, len(c.Exprs))
		for j, e := range c.Exprs {
			values[j] = w.CreateCast(w.walkExpr(e), cond.Type(), false)
		}
		bodyNodes := make([]Node, len(c.Body))
		for j, b := range c.Body {
			bodyNodes[j] = w.walkNode(b)
		}
		cases[i] = SwitchCase{Values: values, Body: &Block{base: newBase(n.Pos(), nil), Scope: w.Table.Current, Nodes: bodyNodes}}
	}

	return &Switch{base: newBase(n.Pos(), nil), Cond: cond, Cases: cases}
}

func (w *Walker) walkBreak(n *ast.Break) Node {
	depth := 1
	if n.Depth != nil {
		v := constexpr.EvalRequired(w.walkExpr(n.Depth), "break depth")
		depth = int(v.AsInt64())
	}
	if depth < 1 || depth > w.Table.Current.LoopDepth {
		report.Raise(report.ErrLayout, n.Pos(), "break %d exceeds the enclosing loop nesting", depth)
	}
	return &Break{base: newBase(n.Pos(), nil), Depth: depth}
}

func (w *Walker) walkContinue(n *ast.Continue) Node {
	depth := 1
	if n.Depth != nil {
		v := constexpr.EvalRequired(w.walkExpr(n.Depth), "continue depth")
		depth = int(v.AsInt64())
	}
	if depth < 1 || depth > w.Table.Current.LoopDepth {
		report.Raise(report.ErrLayout, n.Pos(), "continue %d exceeds the enclosing loop nesting", depth)
	}
	return &Continue{base: newBase(n.Pos(), nil), Depth: depth}
}

// walkReturn implements both `return` and, inside a coroutine, `yield`; an
// `auto` return type is adopted from the first return/yield encountered and
// every subsequent one is cast to match (spec.md §4.4 "Return / yield").
func (w *Walker) walkReturn(n *ast.Return) Node {
	var value Node
	valType := types.DataType(types.Prim(types.KindVoid))
	if n.Value != nil {
		value = w.walkExpr(n.Value)
		valType = value.Type()
	}

	if w.enclosingFunc != nil {
		w.enclosingFunc.HasExplicitReturn = true
	}

	if w.enclosingReturn == nil || isAutoType(w.enclosingReturn) {
		w.enclosingReturn = valType
	} else if value != nil {
		value = w.CreateCast(value, w.enclosingReturn, false)
		valType = w.enclosingReturn
	}

	return &Return{base: newBase(n.Pos(), valType), Value: value, IsYield: n.IsYield}
}
