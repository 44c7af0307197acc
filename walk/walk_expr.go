package walk

import (
	"fmt"
	"strconv"
	"strings"

	"nullc/ast"
	"nullc/overload"
	"nullc/report"
	"nullc/scope"
	"nullc/types"
)

func (w *Walker) walkExpr(n ast.Expr) Node {
	switch v := n.(type) {
	case *ast.NumberLit:
		return w.walkNumberLit(v)
	case *ast.StringLit:
		return NewLiteral(v.Pos(), types.GetUnsizedArray(types.Prim(types.KindChar)), LitString)
	case *ast.CharLit:
		lit := NewLiteral(v.Pos(), types.Prim(types.KindChar), LitChar)
		lit.CharVal = v.Value
		return lit
	case *ast.BoolLit:
		lit := NewLiteral(v.Pos(), types.Prim(types.KindBool), LitBool)
		lit.BoolVal = v.Value
		return lit
	case *ast.NullLit:
		return NewLiteral(v.Pos(), types.Prim(types.KindNullPtr), LitNull)
	case *ast.TypeLit:
		t := w.resolveType(v.Type)
		lit := NewLiteral(v.Pos(), types.Prim(types.KindTypeId), LitType)
		lit.TypeVal = t
		return lit
	case *ast.Identifier:
		return w.walkIdentifier(v)
	case *ast.GetAddress:
		return w.walkGetAddress(v)
	case *ast.Dereference:
		return w.walkDereference(v)
	case *ast.UnaryOp:
		return w.walkUnaryOp(v)
	case *ast.PrePostOp:
		return w.walkPrePostOp(v)
	case *ast.BinaryOp:
		return w.walkBinaryOp(v)
	case *ast.Conditional:
		return w.walkConditional(v)
	case *ast.Sequence:
		return w.walkSequence(v)
	case *ast.Assignment:
		return w.walkAssignment(v)
	case *ast.ModifyAssignment:
		return w.walkModifyAssignment(v)
	case *ast.MemberAccess:
		return w.walkMemberAccess(v)
	case *ast.ArrayIndex:
		return w.walkArrayIndex(v)
	case *ast.Call:
		return w.walkCall(v)
	case *ast.New:
		return w.walkNew(v)
	case *ast.ShortFuncDef:
		return w.walkShortFuncDef(v)
	case *ast.Generator:
		return w.walkGenerator(v)
	default:
		report.Raise(report.ErrName, n.Pos(), "internal: no walker for expression node %T", n)
		return nil
	}
}

// walkNumberLit disambiguates int/long/float/double by the written suffix
// and shape of the literal text (spec.md §3 "preserves the exact written
// form so int vs. float vs. long vs. double can be disambiguated by
// suffix/shape").
func (w *Walker) walkNumberLit(n *ast.NumberLit) *Literal {
	text := n.Text
	lower := strings.ToLower(text)

	if strings.ContainsAny(lower, ".e") && !strings.HasPrefix(lower, "0x") {
		if strings.HasSuffix(lower, "f") {
			v, _ := strconv.ParseFloat(strings.TrimSuffix(lower, "f"), 32)
			lit := NewLiteral(n.Pos(), types.Prim(types.KindFloat), LitDouble)
			lit.DoubleVal = v
			return lit
		}
		v, err := strconv.ParseFloat(lower, 64)
		if err != nil {
			report.Raise(report.ErrConst, n.Pos(), "malformed floating-point literal `%s`", text)
		}
		lit := NewLiteral(n.Pos(), types.Prim(types.KindDouble), LitDouble)
		lit.DoubleVal = v
		return lit
	}

	if strings.HasSuffix(lower, "l") {
		v, err := strconv.ParseInt(strings.TrimSuffix(lower, "l"), 0, 64)
		if err != nil {
			report.Raise(report.ErrConst, n.Pos(), "malformed integer literal `%s`", text)
		}
		lit := NewLiteral(n.Pos(), types.Prim(types.KindLong), LitLong)
		lit.LongVal = v
		return lit
	}

	v, err := strconv.ParseInt(lower, 0, 64)
	if err != nil {
		report.Raise(report.ErrConst, n.Pos(), "malformed integer literal `%s`", text)
	}
	if v > int64(1<<31-1) || v < int64(-1<<31) {
		lit := NewLiteral(n.Pos(), types.Prim(types.KindLong), LitLong)
		lit.LongVal = v
		return lit
	}
	lit := NewLiteral(n.Pos(), types.Prim(types.KindInt), LitInt)
	lit.IntVal = int32(v)
	return lit
}

// walkIdentifier resolves a name (spec.md §4.4 "Variable access") as a
// variable, then a scope constant, then a function overload set, each
// lookup walking outward; class members and class constant fields are not
// looked up here. A variable hit in an enclosing function (rather than the
// current one) is routed through upvalue synthesis.
func (w *Walker) walkIdentifier(n *ast.Identifier) Node {
	if v, ok := w.Table.Current.LookupVariable(n.Name, w.cutoff()); ok {
		if owner := v.Owner.EnclosingFunction(); owner != nil && w.enclosingFunc != nil && owner.OwnerFunc != w.enclosingFunc {
			return w.captureUpvalue(n.Pos(), v)
		}
		return &VariableAccess{base: newBase(n.Pos(), v.Type), Variable: v}
	}

	if c, ok := w.Table.Current.LookupConstant(n.Name, w.cutoff()); ok {
		lit := NewLiteral(n.Pos(), c.Type, constKindOf(c.Type))
		assignConstValue(lit, c.Value)
		return lit
	}

	if fns := w.Table.Current.LookupFunctions(n.Name, w.cutoff()); len(fns) == 1 {
		return &FuncAccess{base: newBase(n.Pos(), fns[0].Type), Function: fns[0]}
	} else if len(fns) > 1 {
		return &FuncOverloadSet{base: newBase(n.Pos(), nil), Candidates: fns}
	}

	report.Raise(report.ErrName, n.Pos(), "undefined symbol `%s`", n.Name)
	return nil
}

func constKindOf(t types.DataType) LitKind {
	if types.IsFloatingPoint(t) {
		return LitDouble
	}
	return LitInt
}

func assignConstValue(lit *Literal, value interface{}) {
	switch v := value.(type) {
	case int32:
		lit.IntVal = v
	case int64:
		lit.LongVal = v
		lit.Kind = LitLong
	case float64:
		lit.DoubleVal = v
	case bool:
		lit.BoolVal = v
		lit.Kind = LitBool
	}
}

func (w *Walker) walkGetAddress(n *ast.GetAddress) Node {
	operand := w.walkExpr(n.Operand)
	return &GetAddress{base: newBase(n.Pos(), types.GetReference(operand.Type())), Operand: operand}
}

func (w *Walker) walkDereference(n *ast.Dereference) Node {
	operand := w.walkExpr(n.Operand)
	ref, ok := operand.Type().(*types.Ref)
	if !ok {
		report.Raise(report.ErrType, n.Pos(), "cannot dereference non-reference type `%s`", operand.Type().Repr())
	}
	return &Dereference{base: newBase(n.Pos(), ref.Elem), Operand: operand}
}

func (w *Walker) walkUnaryOp(n *ast.UnaryOp) Node {
	operand := w.walkExpr(n.Operand)
	if !types.IsNumeric(operand.Type()) {
		report.Raise(report.ErrType, n.Pos(), "unary operator requires a numeric operand, got `%s`", operand.Type().Repr())
	}
	return &UnaryOp{base: newBase(n.Pos(), operand.Type()), Op: n.Op.OperSymbol(), Operand: operand}
}

func (w *Walker) walkPrePostOp(n *ast.PrePostOp) Node {
	operand := w.walkAddressable(n.Operand)
	return &PrePostModify{base: newBase(n.Pos(), operand.Type()), Operand: operand, IsPost: n.IsPost}
}

// walkAddressable walks an expression that must denote an assignable
// location, per spec.md §4.4 "Assignment"'s three address-of strategies.
func (w *Walker) walkAddressable(n ast.Expr) Node {
	return w.walkExpr(n)
}

func (w *Walker) walkBinaryOp(n *ast.BinaryOp) Node {
	lhs := w.walkExpr(n.Lhs)
	rhs := w.walkExpr(n.Rhs)
	return w.resolveBinaryOp(n.Pos(), n.Op.OperSymbol(), lhs, rhs)
}

// resolveBinaryOp is spec.md §4.4 "Binary operators": try an overloaded
// operator function first, then fall back to the primitive numeric op with
// common-type promotion.
func (w *Walker) resolveBinaryOp(pos *report.TextPosition, op string, lhs, rhs Node) Node {
	if candidates := w.Table.Current.LookupFunctions("operator"+op, w.cutoff()); len(candidates) > 0 {
		actuals := []overload.ActualArg{{Value: lhs}, {Value: rhs}}
		if chosen, ok := overload.Select(candidates, actuals, w, pos); ok {
			return &Call{base: newBase(pos, chosen.Func.Type.Return), Target: chosen.Func, Args: chosen.Args.Args}
		}
	}

	result, ok := types.BinaryOpResultType(lhs.Type(), rhs.Type())
	if !ok {
		report.Raise(report.ErrType, pos, "no common type for `%s %s %s`", lhs.Type().Repr(), op, rhs.Type().Repr())
	}

	castLhs := w.CreateCast(lhs, result, false)
	castRhs := w.CreateCast(rhs, result, false)

	resultType := result
	if isComparisonOp(op) {
		resultType = types.Prim(types.KindBool)
	}
	return &BinaryOp{base: newBase(pos, resultType), Op: op, Lhs: castLhs, Rhs: castRhs}
}

func isComparisonOp(op string) bool {
	switch op {
	case "<", ">", "<=", ">=", "==", "!=":
		return true
	default:
		return false
	}
}

func (w *Walker) walkConditional(n *ast.Conditional) Node {
	cond := w.walkExpr(n.Cond)
	then := w.walkExpr(n.Then)
	els := w.walkExpr(n.Else)

	result, ok := types.BinaryOpResultType(then.Type(), els.Type())
	if !ok {
		if types.Equals(then.Type(), els.Type()) {
			result = then.Type()
		} else {
			report.Raise(report.ErrType, n.Pos(), "conditional branches have incompatible types `%s` and `%s`", then.Type().Repr(), els.Type().Repr())
		}
	}

	return &Conditional{base: newBase(n.Pos(), result), Cond: w.CreateCast(cond, types.Prim(types.KindBool), false), Then: w.CreateCast(then, result, false), Else: w.CreateCast(els, result, false)}
}

func (w *Walker) walkSequence(n *ast.Sequence) Node {
	nodes := make([]Node, len(n.Exprs))
	for i, e := range n.Exprs {
		nodes[i] = w.walkExpr(e)
	}
	var resultType types.DataType
	if len(nodes) > 0 {
		resultType = nodes[len(nodes)-1].Type()
	}
	return &Sequence{base: newBase(n.Pos(), resultType), Nodes: nodes}
}

// walkAssignment implements spec.md §4.4 "Assignment".
func (w *Walker) walkAssignment(n *ast.Assignment) Node {
	rhs := w.walkExpr(n.Rhs)

	if root, field, ok := w.asGetterCall(n.Lhs); ok {
		return w.rewriteToSetter(n.Pos(), root, field, rhs)
	}

	target := w.walkAssignTarget(n.Lhs)
	cast := w.CreateCast(rhs, target.Type(), false)
	return &Assignment{base: newBase(n.Pos(), target.Type()), Target: target, Value: cast}
}

func (w *Walker) walkModifyAssignment(n *ast.ModifyAssignment) Node {
	target := w.walkAssignTarget(n.Lhs)
	rhs := w.walkExpr(n.Rhs)
	combined := w.resolveBinaryOp(n.Pos(), n.Op.OperSymbol(), target, rhs)
	cast := w.CreateCast(combined, target.Type(), false)
	return &Assignment{base: newBase(n.Pos(), target.Type()), Target: target, Value: cast}
}

// walkAssignTarget lowers an lvalue to a Node whose address the IR builder
// can take: a variable (-> get-address), or a dereference (-> the original
// pointer); immutable r-values are rejected (spec.md §4.4).
func (w *Walker) walkAssignTarget(n ast.Expr) Node {
	switch v := n.(type) {
	case *ast.Identifier:
		node := w.walkIdentifier(v)
		if _, ok := node.(*VariableAccess); !ok {
			report.Raise(report.ErrType, n.Pos(), "cannot assign to `%s`", v.Name)
		}
		return node
	case *ast.Dereference:
		return w.walkExpr(v.Operand)
	case *ast.MemberAccess:
		return w.walkMemberAccess(v)
	case *ast.ArrayIndex:
		return w.walkArrayIndex(v)
	default:
		report.Raise(report.ErrType, n.Pos(), "cannot assign to an immutable value")
		return nil
	}
}

// asGetterCall detects `a.x` where x resolves to an accessor (a method
// named `x$`) rather than a stored member, the trigger for
// getter-to-setter assignment rewriting.
func (w *Walker) asGetterCall(n ast.Expr) (Node, string, bool) {
	ma, ok := n.(*ast.MemberAccess)
	if !ok {
		return nil, "", false
	}
	root := w.walkExpr(ma.Root)
	class, ok := classOf(root.Type())
	if !ok {
		return nil, "", false
	}
	if _, isMember := findMember(class, ma.Field); isMember {
		return nil, "", false
	}
	if _, hasGetter := findAccessor(w, class, ma.Field+"$"); hasGetter {
		return root, ma.Field, true
	}
	return nil, "", false
}

// rewriteToSetter implements the getter/setter convention: `a.x = v` where
// `x` is not a stored member rewrites to a call of the `x$` overload that
// accepts the new value (spec.md §4.4 "Assignment").
func (w *Walker) rewriteToSetter(pos *report.TextPosition, root Node, field string, value Node) Node {
	candidates := w.Table.Current.LookupFunctions(field+"$", w.cutoff())
	chosen, ok := overload.Select(candidates, []overload.ActualArg{{Value: root}, {Value: value}}, w, pos)
	if !ok {
		report.Raise(report.ErrOverload, pos, "cannot change immutable value")
	}
	return &Call{base: newBase(pos, chosen.Func.Type.Return), Target: chosen.Func, Args: chosen.Args.Args}
}

func classOf(t types.DataType) (*types.Class, bool) {
	if r, ok := t.(*types.Ref); ok {
		t = r.Elem
	}
	c, ok := t.(*types.Class)
	return c, ok
}

func findMember(c *types.Class, name string) (*types.Member, bool) {
	for cur := c; cur != nil; cur = cur.Base {
		for i := range cur.Members {
			if cur.Members[i].Name == name {
				return &cur.Members[i], true
			}
		}
	}
	return nil, false
}

func findAccessor(w *Walker, c *types.Class, name string) (*scope.Function, bool) {
	fns := w.Table.Current.LookupFunctions(name, w.cutoff())
	for _, f := range fns {
		if f.IsAccessor {
			return f, true
		}
	}
	return nil, false
}

// walkMemberAccess implements spec.md §4.4 "Member access".
func (w *Walker) walkMemberAccess(n *ast.MemberAccess) Node {
	root := w.walkExpr(n.Root)

	// Member access on a boxed auto-ref value has no single owning class at
	// analysis time, so it expands into the overload set of every
	// method visible under this name (spec.md §4.4 "expand into an overload
	// set of all methods of every class named x"); the call site narrows it.
	if _, ok := root.Type().(*types.AutoRefType); ok {
		fns := w.Table.Current.LookupFunctions(n.Field, w.cutoff())
		if len(fns) == 0 {
			report.Raise(report.ErrName, n.Pos(), "no visible method named `%s` for an auto ref access", n.Field)
		}
		return &FuncOverloadSet{base: newBase(n.Pos(), nil), Candidates: fns}
	}

	class, ok := classOf(root.Type())
	if !ok {
		report.Raise(report.ErrType, n.Pos(), "`%s` has no member `%s`", root.Type().Repr(), n.Field)
	}

	if m, ok := findMember(class, n.Field); ok {
		return &MemberAccess{base: newBase(n.Pos(), m.Type), Root: root, Member: m}
	}

	if getter, ok := findAccessor(w, class, n.Field+"$"); ok {
		return &Call{base: newBase(n.Pos(), getter.Type.Return), Target: getter, Args: []Node{root}}
	}

	report.Raise(report.ErrName, n.Pos(), "`%s` has no member `%s`", class.Name, n.Field)
	return nil
}

// walkArrayIndex implements spec.md §4.4 "Array index".
func (w *Walker) walkArrayIndex(n *ast.ArrayIndex) Node {
	root := w.walkExpr(n.Root)

	if len(n.Args) == 1 && n.Args[0].Name == "" {
		idx := w.walkExpr(n.Args[0].Expr)
		if types.IsInteger(idx.Type()) {
			switch t := root.Type().(type) {
			case *types.UnsizedArray:
				return &ArrayIndex{base: newBase(n.Pos(), t.Elem), Root: root, Index: idx}
			case *types.Array:
				return &ArrayIndex{base: newBase(n.Pos(), t.Elem), Root: root, Index: idx}
			case *types.Ref:
				if arr, ok := t.Elem.(*types.Array); ok {
					return &ArrayIndex{base: newBase(n.Pos(), arr.Elem), Root: root, Index: idx}
				}
				if ua, ok := t.Elem.(*types.UnsizedArray); ok {
					return &ArrayIndex{base: newBase(n.Pos(), ua.Elem), Root: root, Index: idx}
				}
			}
		}
	}

	candidates := w.Table.Current.LookupFunctions("operator[]", w.cutoff())
	actuals := append([]overload.ActualArg{{Value: root}}, argsOf(w, n.Args)...)
	chosen, ok := overload.Select(candidates, actuals, w, n.Pos())
	if !ok {
		report.Raise(report.ErrOverload, n.Pos(), "no matching `[]` overload for `%s`", root.Type().Repr())
	}
	return &Call{base: newBase(n.Pos(), chosen.Func.Type.Return), Target: chosen.Func, Args: chosen.Args.Args}
}

func argsOf(w *Walker, args []ast.CallArg) []overload.ActualArg {
	out := make([]overload.ActualArg, len(args))
	for i, a := range args {
		out[i] = overload.ActualArg{Name: a.Name, Value: w.walkExpr(a.Expr)}
	}
	return out
}

// walkCall implements spec.md §4.4 "Function call" plus §4.5 selection.
func (w *Walker) walkCall(n *ast.Call) Node {
	actuals := argsOf(w, n.Args)

	var candidates []*scope.Function
	switch fn := w.walkExpr(n.Func).(type) {
	case *FuncAccess:
		candidates = []*scope.Function{fn.Function}
	case *FuncOverloadSet:
		candidates = fn.Candidates
	default:
		report.Raise(report.ErrType, n.Pos(), "expression is not callable")
	}

	chosen, ok := overload.Select(candidates, actuals, w, n.Pos())
	if !ok {
		report.Raise(report.ErrOverload, n.Pos(), "no overload of `%s` matches these arguments", candidates[0].Name)
	}

	target := chosen.Func
	if len(chosen.Aliases) > 0 {
		target = overload.InstantiateGeneric(chosen.Func, chosen.Aliases, w)
	}

	return &Call{base: newBase(n.Pos(), target.Type.Return), Target: target, Args: chosen.Args.Args}
}

// walkNew implements spec.md §4.4 "new T / new T[n] / new T{body}".
func (w *Walker) walkNew(n *ast.New) Node {
	t := w.resolveType(n.Type)

	if n.Count != nil {
		count := w.walkExpr(n.Count)
		return &Call{base: newBase(n.Pos(), types.GetUnsizedArray(t)), Args: []Node{count}}
	}

	class, ok := classOf(types.GetReference(t))
	ptrType := types.GetReference(t)
	allocCall := &Call{base: newBase(n.Pos(), ptrType)}

	if ok && n.Body != nil {
		fn := w.walkFuncDef(n.Body).(*FuncDef)
		actuals := argsOf(w, n.Args)
		chosen, sel := overload.Select([]*scope.Function{fn.Function}, actuals, w, n.Pos())
		if !sel {
			report.Raise(report.ErrOverload, n.Pos(), "`new %s{...}` initializer does not accept these arguments", t.Repr())
		}
		call := &Call{base: newBase(n.Pos(), chosen.Func.Type.Return), Target: chosen.Func, Args: chosen.Args.Args}
		return &Sequence{base: newBase(n.Pos(), ptrType), Nodes: []Node{allocCall, fn, call}}
	}

	if ok {
		if ctor := findConstructor(w, class); ctor != nil {
			actuals := argsOf(w, n.Args)
			chosen, sel := overload.Select([]*scope.Function{ctor}, actuals, w, n.Pos())
			if sel {
				return &Sequence{base: newBase(n.Pos(), ptrType), Nodes: []Node{allocCall, &Call{base: newBase(n.Pos(), chosen.Func.Type.Return), Target: chosen.Func, Args: chosen.Args.Args}}}
			}
		} else if len(n.Args) == 1 && n.Args[0].Name == "" {
			value := w.walkExpr(n.Args[0].Expr)
			return &Sequence{base: newBase(n.Pos(), ptrType), Nodes: []Node{allocCall, &Assignment{base: newBase(n.Pos(), t), Target: &Dereference{base: newBase(n.Pos(), t), Operand: allocCall}, Value: w.CreateCast(value, t, false)}}}
		}
	}

	return allocCall
}

func findConstructor(w *Walker, c *types.Class) *scope.Function {
	shortName := c.Name
	if idx := strings.LastIndex(shortName, "::"); idx >= 0 {
		shortName = shortName[idx+2:]
	}
	for _, f := range w.Table.Current.LookupFunctions(shortName, w.cutoff()) {
		return f
	}
	return nil
}

// walkShortFuncDef implements `x => expr` / `(x, y) => expr` (spec.md §4.4
// "Short-form function literal"): an anonymous single-expression function,
// closure-eligible exactly like a full function definition.
func (w *Walker) walkShortFuncDef(n *ast.ShortFuncDef) Node {
	args := make([]scope.FuncArg, len(n.Params))
	argTypes := make([]types.DataType, len(n.Params))
	for i, p := range n.Params {
		t := types.DataType(types.Prim(types.KindAuto))
		if p.Type != nil {
			t = w.resolveType(p.Type)
		}
		args[i] = scope.FuncArg{Name: p.Name, Type: t}
		argTypes[i] = t
	}

	f := &scope.Function{
		Name:   fmt.Sprintf("$lambda$%d", w.nextLambdaID()),
		Args:   args,
		Type:   types.GetFunction(types.Prim(types.KindAuto), argTypes),
		DefPos: n.Pos(),
	}
	w.Table.Current.DefineFunction(f)

	w.Table.PushFunction(f, n.Pos())
	prevFunc, prevReturn, prevCoroutine := w.enclosingFunc, w.enclosingReturn, w.isCoroutine
	w.enclosingFunc, w.enclosingReturn, w.isCoroutine = f, nil, false

	for _, a := range args {
		region, offset := w.Table.AllocateInScope(a.Type.Alignment(), a.Type.Size())
		w.Table.Current.DefineVariable(&scope.Variable{Name: a.Name, Type: a.Type, Region: region, Offset: offset, DefPos: n.Pos()})
	}

	body := w.walkExpr(n.Body)
	retType := body.Type()

	w.enclosingFunc, w.enclosingReturn, w.isCoroutine = prevFunc, prevReturn, prevCoroutine
	w.Table.PopScope(n.Pos())

	f.Type = types.GetFunction(retType, argTypes)
	return &FuncDef{base: newBase(n.Pos(), f.Type), Function: f, Body: &Return{base: newBase(n.Pos(), retType), Value: body}}
}

// walkGenerator implements `coroutine [e1, e2, ...]`: a synthesized
// zero-argument coroutine whose body yields each element in turn
// (spec.md §4.4, supplemental to the distilled spec's core coroutine rule).
func (w *Walker) walkGenerator(n *ast.Generator) Node {
	elemType := types.DataType(nil)
	if n.ElemType != nil {
		elemType = w.resolveType(n.ElemType)
	}

	elems := make([]Node, len(n.Elems))
	for i, e := range n.Elems {
		elems[i] = w.walkExpr(e)
	}
	if elemType == nil && len(elems) > 0 {
		elemType = elems[0].Type()
	}
	for i, e := range elems {
		elems[i] = w.CreateCast(e, elemType, false)
	}

	f := &scope.Function{
		Name:        fmt.Sprintf("$generator$%d", w.nextLambdaID()),
		Type:        types.GetFunction(elemType, nil),
		IsCoroutine: true,
		DefPos:      n.Pos(),
	}
	w.Table.Current.DefineFunction(f)

	yields := make([]Node, len(elems))
	for i, e := range elems {
		yields[i] = &Return{base: newBase(n.Pos(), elemType), Value: e, IsYield: true}
	}

	return &FuncDef{base: newBase(n.Pos(), f.Type), Function: f, Body: &Sequence{base: newBase(n.Pos(), elemType), Nodes: yields}}
}

func (w *Walker) nextLambdaID() int {
	w.lambdaCounter++
	return w.lambdaCounter
}
