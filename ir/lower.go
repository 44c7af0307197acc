package ir

import (
	"fmt"

	"nullc/scope"
	"nullc/types"
	"nullc/walk"
)

// scratchRegionBase separates IR-builder-allocated temporaries (conditional
// results, packed variadic arrays, closure contexts) from the frame offsets
// the scope component already assigned during analysis; the two regions
// never collide because the scope component's watermark is always far
// smaller than this.
const scratchRegionBase = 1 << 24

// lowerer holds the state threaded through one module's lowering pass: the
// builder, the source-function-to-IR-function map, and the active loop
// nest for break/continue targeting.
type lowerer struct {
	b       *Builder
	funcs   map[*scope.Function]*Function
	defined map[*scope.Function]bool
	loops   []loopCtx
}

type loopCtx struct {
	continueBlock, breakBlock *Block
}

// LowerModule implements spec.md §4.6: it produces one IR function per
// non-generic source function plus the implicit top-level function that
// runs every top-level statement of m in order.
func LowerModule(m *walk.Module) *Module {
	l := &lowerer{b: NewBuilder("module"), funcs: map[*scope.Function]*Function{}, defined: map[*scope.Function]bool{}}

	top := l.b.DeclareFunction("$top_level", nil, Void, false)
	for _, n := range m.Nodes {
		l.lowerNode(n)
	}
	if l.b.CurrentFunction() == top {
		l.b.EmitCheckedReturn()
	}

	return l.b.Module
}

func (l *lowerer) ensureFunc(sf *scope.Function) *Function {
	if fn, ok := l.funcs[sf]; ok {
		return fn
	}
	args := make([]FuncArg, len(sf.Args))
	for i, a := range sf.Args {
		args[i] = FuncArg{Name: a.Name, Typ: MapType(a.Type)}
	}
	fn := l.b.DeclareSignature(sf.Name, args, MapType(sf.Type.Return), sf.IsCoroutine)
	l.funcs[sf] = fn
	return fn
}

// defineFunc lowers sf's body into its already-declared IR function, saving
// and restoring the builder's cursor around it (spec.md §4.6 "Function
// definition lowering saves the builder's current block... and restores").
// A function with no body (a bare prototype) produces no IR. Generic
// prototypes are filtered out by the caller before reaching here — only
// their concrete instances carry a body this function ever sees.
func (l *lowerer) defineFunc(sf *scope.Function, body walk.Node) {
	if body == nil || l.defined[sf] {
		return
	}
	l.defined[sf] = true

	fn := l.ensureFunc(sf)
	save := l.b.BeginFunctionBody(fn)

	l.loops = nil
	l.lowerNode(body)

	if fn.ReturnType == Void || !sf.HasExplicitReturn {
		l.b.EmitCheckedReturn()
	}

	l.b.RestoreInsertPoint(save)
}

// funcValue yields the callable value for sf: a bare function pointer, or
// (when sf captures upvalues) a closure built by materializing a context
// object and storing each captured variable's address into its `target`
// member. An upvalue that also has a `copy` member gets the variable's value
// copied there and `target` pointed at the copy instead, the
// copy-then-retarget discipline described in spec.md §9 "Coroutine upvalue
// closing".
func (l *lowerer) funcValue(sf *scope.Function) Value {
	fn := l.ensureFunc(sf)
	if len(sf.Upvalues) == 0 {
		return NewGlobalRef(FunctionRef, fn.Name)
	}

	ctxSize := 0
	for _, uv := range sf.Upvalues {
		if uv.Target.Offset+uv.Target.Type.Size() > ctxSize {
			ctxSize = uv.Target.Offset + uv.Target.Type.Size()
		}
		if uv.Copy != nil && uv.Copy.Offset+uv.Copy.Type.Size() > ctxSize {
			ctxSize = uv.Copy.Offset + uv.Copy.Type.Size()
		}
	}

	ctxOff := l.allocScratch(ctxSize, 4)
	ctxAddr := l.b.EmitFrameOffset(ctxOff)

	for _, uv := range sf.Upvalues {
		varAddr := l.variableAddr(uv.Variable)
		targetAddr := l.b.EmitIndex(ctxAddr, NewConstInt(Int, int32(uv.Target.Offset)), 1)

		if uv.Copy != nil {
			copyAddr := l.b.EmitIndex(ctxAddr, NewConstInt(Int, int32(uv.Copy.Offset)), 1)
			val := l.b.EmitLoad(varAddr, MapType(uv.Variable.Type))
			l.b.EmitStore(copyAddr, val)
			l.b.EmitStore(targetAddr, copyAddr)
		} else {
			l.b.EmitStore(targetAddr, varAddr)
		}
	}

	return l.b.EmitCreateClosure(fn, ctxAddr)
}

// allocScratch reserves size bytes of IR-private scratch storage, aligned
// to align, and returns its frame offset.
func (l *lowerer) allocScratch(size, align int) int32 {
	f := l.b.curFunc
	if align <= 0 {
		align = 1
	}
	if rem := f.scratchCursor % align; rem != 0 {
		f.scratchCursor += align - rem
	}
	off := scratchRegionBase + f.scratchCursor
	f.scratchCursor += size
	return int32(off)
}

// -----------------------------------------------------------------------------
// Addressing

// variableAddr returns the address of v's storage: a constant global
// address, or a frame_offset against v's assigned slot (spec.md §4.6 "Every
// source-level ExprVariableAccess produces a load... computed as a
// constant global pointer for globals or frame_offset(offset) for locals").
func (l *lowerer) variableAddr(v *scope.Variable) Value {
	if v.Region == scope.RegionGlobal {
		g := l.globalFor(v)
		return NewGlobalRef(Pointer, g.Name)
	}
	return l.b.EmitFrameOffset(int32(v.Offset))
}

func (l *lowerer) globalFor(v *scope.Variable) *GlobalVar {
	for _, g := range l.b.Module.Globals {
		if g.Name == v.Name {
			return g
		}
	}
	g := &GlobalVar{Name: v.Name, Typ: MapType(v.Type)}
	l.b.Module.AddGlobal(g)
	return g
}

// addressOf computes the address an assignment target or &-operand refers
// to. It panics (an internal-error path, never reached for a tree the
// walker has already validated) for a node with no address.
func (l *lowerer) addressOf(n walk.Node) Value {
	switch v := n.(type) {
	case *walk.VariableAccess:
		addr := l.variableAddr(v.Variable)
		if v.Variable.IsReference {
			return l.b.EmitLoad(addr, Pointer)
		}
		return addr
	case *walk.Dereference:
		return l.lowerNode(v.Operand)
	case *walk.MemberAccess:
		return l.memberAddr(v)
	case *walk.ArrayIndex:
		return l.indexAddr(v)
	case *walk.GetAddress:
		// &(&x) never occurs post-analysis, but fall through gracefully.
		return l.addressOf(v.Operand)
	default:
		panic(fmt.Sprintf("ir: %T is not an addressable node", n))
	}
}

func (l *lowerer) memberAddr(n *walk.MemberAccess) Value {
	rootType := n.Root.Type()
	var rootPtr Value
	if _, isRef := rootType.(*types.Ref); isRef {
		rootPtr = l.lowerNode(n.Root)
	} else {
		rootPtr = l.addressOf(n.Root)
	}
	return l.b.EmitIndex(rootPtr, NewConstInt(Int, int32(n.Member.Offset)), 1)
}

func (l *lowerer) indexAddr(n *walk.ArrayIndex) Value {
	elemSize := int32(n.Type().Size())
	idx := l.lowerNode(n.Index)

	rootType := n.Root.Type()
	if r, ok := rootType.(*types.Ref); ok {
		rootType = r.Elem
	}

	if _, ok := rootType.(*types.UnsizedArray); ok {
		base := l.lowerNode(n.Root)
		return l.b.EmitIndexUnsized(base, idx, elemSize)
	}

	base := l.addressOf(n.Root)
	return l.b.EmitIndex(base, idx, elemSize)
}

// -----------------------------------------------------------------------------
// Expression and statement lowering

func (l *lowerer) lowerNode(n walk.Node) Value {
	switch v := n.(type) {
	case nil:
		return nil

	case *walk.Literal:
		return l.lowerLiteral(v)
	case *walk.VariableAccess:
		addr := l.addressOf(v)
		return l.b.EmitLoad(addr, MapType(v.Type()))
	case *walk.GetAddress:
		return l.addressOf(v.Operand)
	case *walk.Dereference:
		ptr := l.lowerNode(v.Operand)
		return l.b.EmitLoad(ptr, MapType(v.Type()))
	case *walk.MemberAccess:
		addr := l.memberAddr(v)
		return l.b.EmitLoad(addr, MapType(v.Type()))
	case *walk.ArrayIndex:
		addr := l.indexAddr(v)
		return l.b.EmitLoad(addr, MapType(v.Type()))
	case *walk.PrePostModify:
		return l.lowerPrePostModify(v)
	case *walk.UnaryOp:
		return l.lowerUnaryOp(v)
	case *walk.BinaryOp:
		return l.lowerBinaryOp(v)
	case *walk.Assignment:
		addr := l.addressOf(v.Target)
		val := l.lowerNode(v.Value)
		l.b.EmitStore(addr, val)
		return val
	case *walk.Conditional:
		return l.lowerConditional(v)
	case *walk.Sequence:
		var last Value
		for _, stmt := range v.Nodes {
			last = l.lowerNode(stmt)
		}
		return last
	case *walk.Block:
		var last Value
		for _, stmt := range v.Nodes {
			last = l.lowerNode(stmt)
		}
		return last

	case *walk.VarDef:
		addr := l.variableAddr(v.Variable)
		if v.Init != nil {
			val := l.lowerNode(v.Init)
			l.b.EmitStore(addr, val)
		}
		return nil
	case *walk.ArraySetup:
		return l.lowerArraySetup(v)
	case *walk.FuncDef:
		// A generic prototype (declared generics, not itself an instance)
		// produces no IR of its own: only its concrete instances, lowered
		// from the FuncDef nodes walk.Walker appends per instantiation, are
		// emitted (spec.md §4.6 "Generic prototypes produce no IR").
		if len(v.Function.Generics) > 0 && !v.Function.IsGenericInstance {
			return nil
		}
		l.defineFunc(v.Function, v.Body)
		return l.funcValue(v.Function)
	case *walk.FuncAccess:
		return l.funcValue(v.Function)
	case *walk.FuncOverloadSet:
		panic("ir: an unresolved overload set reached the IR builder")
	case *walk.Call:
		return l.lowerCall(v)
	case *walk.Return:
		var val Value
		if v.Value != nil {
			val = l.lowerNode(v.Value)
		}
		if v.IsYield {
			l.b.EmitYield(val)
		} else {
			l.b.EmitReturn(val)
		}
		return nil

	case *walk.IfElse:
		l.lowerIfElse(v)
		return nil
	case *walk.For:
		l.lowerFor(v)
		return nil
	case *walk.While:
		l.lowerWhile(v)
		return nil
	case *walk.DoWhile:
		l.lowerDoWhile(v)
		return nil
	case *walk.Switch:
		l.lowerSwitch(v)
		return nil
	case *walk.Break:
		l.emitBreakContinue(v.Depth, true)
		return nil
	case *walk.Continue:
		l.emitBreakContinue(v.Depth, false)
		return nil

	case *walk.Cast:
		return l.lowerCast(v)

	case *walk.ClassDef:
		for _, stmt := range v.Body {
			l.lowerNode(stmt)
		}
		return nil
	case *walk.GenericClassProtoDef:
		return nil // generic prototypes produce no IR (spec.md §4.6)
	case *walk.EnumDef, *walk.AliasDef:
		return nil

	default:
		panic(fmt.Sprintf("ir: no lowering for node %T", n))
	}
}

func (l *lowerer) lowerLiteral(v *walk.Literal) Value {
	switch v.Kind {
	case walk.LitBool:
		b := int32(0)
		if v.BoolVal {
			b = 1
		}
		return NewConstInt(Int, b)
	case walk.LitChar:
		return NewConstInt(Int, int32(v.CharVal))
	case walk.LitInt:
		return NewConstInt(Int, v.IntVal)
	case walk.LitLong:
		return NewConstLong(v.LongVal)
	case walk.LitDouble:
		return NewConstDouble(v.DoubleVal)
	case walk.LitNull:
		return NewConstInt(MapType(v.Type()), 0)
	case walk.LitType:
		return NewConstInt(Int, int32(typeIDOf(v.TypeVal)))
	case walk.LitFunctionIndex:
		return NewConstInt(Int, int32(v.FuncIndex))
	case walk.LitString:
		// A string literal is itself laid out as a global byte buffer; absent
		// a data-section builder here it degenerates to its (still useful)
		// length as a placeholder constant.
		return NewConstInt(Int, int32(len(v.StringVal)))
	default:
		panic(fmt.Sprintf("ir: unhandled literal kind %d", v.Kind))
	}
}

// typeIDOf is a stable per-type identifier derived from the type's
// canonical representation; the real bytecode-level type ids are assigned
// by the module-import component (spec.md §6), not the IR builder.
func typeIDOf(t types.DataType) uint32 {
	h := uint32(2166136261)
	for _, c := range t.Repr() {
		h = (h ^ uint32(c)) * 16777619
	}
	return h
}

func (l *lowerer) lowerPrePostModify(v *walk.PrePostModify) Value {
	addr := l.addressOf(v.Operand)
	typ := MapType(v.Type())
	old := l.b.EmitLoad(addr, typ)

	var delta Value
	if typ == Double {
		delta = NewConstDouble(1)
	} else if typ == Long {
		delta = NewConstLong(1)
	} else {
		delta = NewConstInt(Int, 1)
	}

	op := OpAdd
	if !v.Incr {
		op = OpSub
	}
	newVal := l.b.EmitBinary(op, typ, old, delta)
	l.b.EmitStore(addr, newVal)

	if v.IsPost {
		return old
	}
	return newVal
}

func (l *lowerer) lowerUnaryOp(v *walk.UnaryOp) Value {
	operand := l.lowerNode(v.Operand)
	typ := MapType(v.Type())
	switch v.Op {
	case "-":
		return l.b.EmitNeg(typ, operand)
	case "!":
		return l.b.EmitLogNot(operand)
	case "~":
		return l.b.EmitBitNot(typ, operand)
	default:
		panic(fmt.Sprintf("ir: unknown unary operator %q", v.Op))
	}
}

var binaryOps = map[string]Opcode{
	"+": OpAdd, "-": OpSub, "*": OpMul, "/": OpDiv, "**": OpPow, "%": OpMod,
	"<<": OpShl, ">>": OpShr, "&": OpBitAnd, "|": OpBitOr, "^": OpBitXor,
	"&&": OpLogAnd, "||": OpLogOr,
	"<": OpLess, ">": OpGreater, "<=": OpLessEqual, ">=": OpGreaterEqual,
	"==": OpEqual, "!=": OpNotEqual,
}

// lowerBinaryOp implements spec.md §4.6's short-circuit modeling: `&&`/`||`
// lower to the single `log_and`/`log_or` instruction rather than a branch,
// relying on the analyzer having already cast both operands to Int/Long.
func (l *lowerer) lowerBinaryOp(v *walk.BinaryOp) Value {
	lhs := l.lowerNode(v.Lhs)
	rhs := l.lowerNode(v.Rhs)

	op, ok := binaryOps[v.Op]
	if !ok {
		panic(fmt.Sprintf("ir: unknown binary operator %q", v.Op))
	}

	resultType := MapType(v.Type())
	return l.b.EmitBinary(op, resultType, lhs, rhs)
}

// lowerConditional implements spec.md §4.6: `a ? b : c` lowers to a
// jump_nz into true/false blocks with a merge block, routing the result
// through a scratch temporary each arm stores into.
func (l *lowerer) lowerConditional(v *walk.Conditional) Value {
	cond := l.lowerNode(v.Cond)
	typ := MapType(v.Type())

	tempOff := l.allocScratch(int(typ.Size()), int(typ.Align()))
	tempAddr := l.b.EmitFrameOffset(tempOff)

	thenBlock := l.b.NewBlock("cond.then")
	elseBlock := l.b.NewBlock("cond.else")
	mergeBlock := l.b.NewBlock("cond.merge")

	l.b.EmitJumpNZ(cond, thenBlock)
	l.b.EmitJump(elseBlock)

	l.b.SetBlock(thenBlock)
	thenVal := l.lowerNode(v.Then)
	l.b.EmitStore(tempAddr, thenVal)
	l.b.EmitJump(mergeBlock)

	l.b.SetBlock(elseBlock)
	elseVal := l.lowerNode(v.Else)
	l.b.EmitStore(tempAddr, elseVal)
	l.b.EmitJump(mergeBlock)

	l.b.SetBlock(mergeBlock)
	return l.b.EmitLoad(tempAddr, typ)
}

// lowerArraySetup covers both its uses: initializing a fixed-size array
// target member-by-member, and (Target == nil) materializing a standalone
// unsized array for the packed variadic tail built by package overload
// (spec.md §4.5 step 3). The closed instruction set has no dedicated
// "construct array ref" opcode, so the standalone case builds the
// (pointer, length) pair by hand in scratch memory.
func (l *lowerer) lowerArraySetup(v *walk.ArraySetup) Value {
	if v.Target != nil {
		addr := l.addressOf(v.Target)
		elemSize := int32(0)
		if at, ok := underlyingArray(v.Target.Type()); ok {
			elemSize = int32(at.Elem.Size())
		}
		for i, e := range v.Elems {
			ev := l.lowerNode(e)
			elemAddr := l.b.EmitIndex(addr, NewConstInt(Int, int32(i)), elemSize)
			l.b.EmitStore(elemAddr, ev)
		}
		return addr
	}

	elemType := Int
	if len(v.Elems) > 0 {
		elemType = MapType(v.Elems[0].Type())
	}

	dataOff := l.allocScratch(int(elemType.Size())*len(v.Elems), int(elemType.Align()))
	dataAddr := l.b.EmitFrameOffset(dataOff)
	for i, e := range v.Elems {
		ev := l.lowerNode(e)
		elemAddr := l.b.EmitIndex(dataAddr, NewConstInt(Int, int32(i)), int32(elemType.Size()))
		l.b.EmitStore(elemAddr, ev)
	}

	refOff := l.allocScratch(int(ArrayRef.Size()), int(ArrayRef.Align()))
	refAddr := l.b.EmitFrameOffset(refOff)
	l.b.EmitStore(refAddr, dataAddr)
	lenAddr := l.b.EmitIndex(refAddr, NewConstInt(Int, 1), 4)
	l.b.EmitStore(lenAddr, NewConstInt(Int, int32(len(v.Elems))))

	return l.b.EmitLoad(refAddr, ArrayRef)
}

func underlyingArray(t types.DataType) (*types.Array, bool) {
	if r, ok := t.(*types.Ref); ok {
		t = r.Elem
	}
	at, ok := t.(*types.Array)
	return at, ok
}

func (l *lowerer) lowerCall(v *walk.Call) Value {
	args := make([]Value, len(v.Args))
	for i, a := range v.Args {
		args[i] = l.lowerNode(a)
	}
	fn := l.ensureFunc(v.Target)
	return l.b.EmitCall(fn, args...)
}

func (l *lowerer) lowerIfElse(v *walk.IfElse) {
	cond := l.lowerNode(v.Cond)

	thenBlock := l.b.NewBlock("if.then")
	endBlock := l.b.NewBlock("if.end")
	elseBlock := endBlock
	if v.Else != nil {
		elseBlock = l.b.NewBlock("if.else")
	}

	l.b.EmitJumpNZ(cond, thenBlock)
	l.b.EmitJump(elseBlock)

	l.b.SetBlock(thenBlock)
	l.lowerNode(v.Then)
	l.b.EmitJump(endBlock)

	if v.Else != nil {
		l.b.SetBlock(elseBlock)
		l.lowerNode(v.Else)
		l.b.EmitJump(endBlock)
	}

	l.b.SetBlock(endBlock)
}

func (l *lowerer) lowerFor(v *walk.For) {
	l.lowerNode(v.Init)

	condBlock := l.b.NewBlock("for.cond")
	bodyBlock := l.b.NewBlock("for.body")
	stepBlock := l.b.NewBlock("for.step")
	endBlock := l.b.NewBlock("for.end")

	l.b.EmitJump(condBlock)
	l.b.SetBlock(condBlock)
	if v.Cond != nil {
		c := l.lowerNode(v.Cond)
		l.b.EmitJumpNZ(c, bodyBlock)
		l.b.EmitJump(endBlock)
	} else {
		l.b.EmitJump(bodyBlock)
	}

	l.b.SetBlock(bodyBlock)
	l.loops = append(l.loops, loopCtx{continueBlock: stepBlock, breakBlock: endBlock})
	l.lowerNode(v.Body)
	l.loops = l.loops[:len(l.loops)-1]
	l.b.EmitJump(stepBlock)

	l.b.SetBlock(stepBlock)
	l.lowerNode(v.Step)
	l.b.EmitJump(condBlock)

	l.b.SetBlock(endBlock)
}

func (l *lowerer) lowerWhile(v *walk.While) {
	condBlock := l.b.NewBlock("while.cond")
	bodyBlock := l.b.NewBlock("while.body")
	endBlock := l.b.NewBlock("while.end")

	l.b.EmitJump(condBlock)
	l.b.SetBlock(condBlock)
	c := l.lowerNode(v.Cond)
	l.b.EmitJumpNZ(c, bodyBlock)
	l.b.EmitJump(endBlock)

	l.b.SetBlock(bodyBlock)
	l.loops = append(l.loops, loopCtx{continueBlock: condBlock, breakBlock: endBlock})
	l.lowerNode(v.Body)
	l.loops = l.loops[:len(l.loops)-1]
	l.b.EmitJump(condBlock)

	l.b.SetBlock(endBlock)
}

func (l *lowerer) lowerDoWhile(v *walk.DoWhile) {
	bodyBlock := l.b.NewBlock("dowhile.body")
	condBlock := l.b.NewBlock("dowhile.cond")
	endBlock := l.b.NewBlock("dowhile.end")

	l.b.EmitJump(bodyBlock)
	l.b.SetBlock(bodyBlock)
	l.loops = append(l.loops, loopCtx{continueBlock: condBlock, breakBlock: endBlock})
	l.lowerNode(v.Body)
	l.loops = l.loops[:len(l.loops)-1]
	l.b.EmitJump(condBlock)

	l.b.SetBlock(condBlock)
	c := l.lowerNode(v.Cond)
	l.b.EmitJumpNZ(c, bodyBlock)
	l.b.EmitJump(endBlock)

	l.b.SetBlock(endBlock)
}

// lowerSwitch implements fallthrough-by-default case bodies as a chain of
// equality checks (the closed instruction set has no jump table) followed
// by blocks that fall into their successor unless a `break` intervenes.
// `continue` inside a switch exits it exactly like `break`, since a switch
// has no loop step to continue to.
func (l *lowerer) lowerSwitch(v *walk.Switch) {
	cond := l.lowerNode(v.Cond)
	endBlock := l.b.NewBlock("switch.end")

	caseBlocks := make([]*Block, len(v.Cases))
	for i := range v.Cases {
		caseBlocks[i] = l.b.NewBlock(fmt.Sprintf("switch.case%d", i))
	}

	for i, c := range v.Cases {
		for _, val := range c.Values {
			cv := l.lowerNode(val)
			eq := l.b.EmitBinary(OpEqual, Int, cond, cv)
			l.b.EmitJumpNZ(eq, caseBlocks[i])
		}
	}
	l.b.EmitJump(endBlock)

	for i, c := range v.Cases {
		l.b.SetBlock(caseBlocks[i])
		next := endBlock
		if i+1 < len(caseBlocks) {
			next = caseBlocks[i+1]
		}
		l.loops = append(l.loops, loopCtx{continueBlock: endBlock, breakBlock: endBlock})
		l.lowerNode(c.Body)
		l.loops = l.loops[:len(l.loops)-1]
		l.b.EmitJump(next)
	}

	l.b.SetBlock(endBlock)
}

func (l *lowerer) emitBreakContinue(depth int, isBreak bool) {
	idx := len(l.loops) - depth
	if idx < 0 || idx >= len(l.loops) {
		panic("ir: break/continue depth out of range reached the IR builder unchecked")
	}
	target := l.loops[idx].continueBlock
	if isBreak {
		target = l.loops[idx].breakBlock
	}
	l.b.EmitJump(target)
}

// lowerCast implements the closed CastKind set against the IR's own closed
// type set. Every reference-shape kind (reinterpret, and boxing/unboxing
// among Pointer, AutoRef, ArrayRef, AutoArray) is a convert_pointer tag
// rather than a real bit-level transform, since
// the IR does not model the auto-ref/auto-array runtime tag layout in
// detail (spec.md glossary "Auto-ref" / "Auto-array").
func (l *lowerer) lowerCast(v *walk.Cast) Value {
	operand := l.lowerNode(v.Operand)
	fromType := MapType(v.Operand.Type())
	toType := MapType(v.Type())

	switch v.Kind {
	case types.CastNumerical:
		if fromType == toType {
			return operand
		}
		return l.b.EmitConvert(operand, fromType, toType)

	case types.CastPtrToBool, types.CastUnsizedToBool, types.CastFunctionRefToBool:
		zero := NewConstInt(fromType, 0)
		return l.b.EmitBinary(OpNotEqual, Int, operand, zero)

	case types.CastNullToPtr, types.CastNullToAutoPtr, types.CastNullToUnsized,
		types.CastNullToAutoArray, types.CastNullToFunction:
		return NewConstInt(toType, 0)

	case types.CastArrayToUnsized, types.CastArrayPtrToUnsizedPtr, types.CastArrayPtrToUnsized:
		return l.castArrayToUnsized(v, operand)

	case types.CastReinterpret, types.CastAnyToPtr, types.CastPtrToAutoPtr,
		types.CastAutoPtrToPtr, types.CastUnsizedToAutoArray, types.CastArrayToAutoArray:
		return l.b.EmitConvertPointer(operand, toType)

	case types.CastFunctionRefMatch:
		return operand

	default:
		panic(fmt.Sprintf("ir: unhandled cast kind %v", v.Kind))
	}
}

// castArrayToUnsized builds the (pointer, length) pair an array-to-unsized
// cast materializes, the same scratch-region construction ArraySetup's
// standalone path uses.
func (l *lowerer) castArrayToUnsized(v *walk.Cast, operand Value) Value {
	at, ok := underlyingArray(v.Operand.Type())
	length := int32(0)
	if ok {
		length = int32(at.Length)
	}

	var dataAddr Value
	if _, isRef := v.Operand.Type().(*types.Ref); isRef {
		dataAddr = operand
	} else {
		dataAddr = l.addressOf(v.Operand)
	}

	refOff := l.allocScratch(int(ArrayRef.Size()), int(ArrayRef.Align()))
	refAddr := l.b.EmitFrameOffset(refOff)
	l.b.EmitStore(refAddr, dataAddr)
	lenAddr := l.b.EmitIndex(refAddr, NewConstInt(Int, 1), 4)
	l.b.EmitStore(lenAddr, NewConstInt(Int, length))

	return l.b.EmitLoad(refAddr, ArrayRef)
}
