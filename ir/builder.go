package ir

import "fmt"

// Builder holds the cursor state used while lowering a walk.Node tree into
// a Module: the module being built and the current insertion point (spec.md
// §4.6).
type Builder struct {
	Module *Module

	curFunc  *Function
	curBlock *Block
}

// NewBuilder creates a builder for a fresh, empty module named name.
func NewBuilder(name string) *Builder {
	return &Builder{Module: NewModule(name)}
}

// DeclareFunction registers a new function in the module and makes it (and
// a fresh entry block) the current insertion point.
func (b *Builder) DeclareFunction(name string, args []FuncArg, ret Type, isCoroutine bool) *Function {
	f := NewFunction(name, args, ret, isCoroutine)
	b.Module.AddFunction(f)
	b.curFunc = f
	b.curBlock = f.NewBlock("entry")
	return f
}

// DeclareSignature registers a function's shell in the module with no
// blocks, letting sibling functions reference it (as a call target or a
// function value) before its body is lowered. Use BeginFunctionBody to
// later lower into it.
func (b *Builder) DeclareSignature(name string, args []FuncArg, ret Type, isCoroutine bool) *Function {
	f := NewFunction(name, args, ret, isCoroutine)
	b.Module.AddFunction(f)
	return f
}

// BeginFunctionBody switches the insertion point to f, creating its entry
// block, and returns a save point the caller restores afterward.
func (b *Builder) BeginFunctionBody(f *Function) insertPoint {
	save := b.SaveInsertPoint()
	b.curFunc = f
	b.curBlock = f.NewBlock("entry")
	return save
}

// NewBlock adds a fresh block to the current function without switching the
// insertion point to it.
func (b *Builder) NewBlock(label string) *Block {
	return b.curFunc.NewBlock(label)
}

// SetBlock moves the insertion point to block, which must belong to the
// current function.
func (b *Builder) SetBlock(block *Block) { b.curBlock = block }

// CurrentBlock returns the block new instructions are appended to.
func (b *Builder) CurrentBlock() *Block { return b.curBlock }

// CurrentFunction returns the function currently being lowered.
func (b *Builder) CurrentFunction() *Function { return b.curFunc }

// insertPoint is an opaque save of the builder's cursor.
type insertPoint struct {
	f *Function
	b *Block
}

// SaveInsertPoint snapshots the current function/block so a nested
// function-definition lowering can restore it afterward (spec.md §4.6
// "Function definition lowering saves the builder's current block ...and
// restores").
func (b *Builder) SaveInsertPoint() insertPoint {
	return insertPoint{f: b.curFunc, b: b.curBlock}
}

func (b *Builder) RestoreInsertPoint(p insertPoint) {
	b.curFunc, b.curBlock = p.f, p.b
}

// Emit appends a new instruction to the current block and returns it.
func (b *Builder) Emit(op Opcode, typ Type, operands ...Value) *Instruction {
	instr := NewInstruction(op, typ, operands...)
	return b.curBlock.AddInstruction(instr)
}

// -----------------------------------------------------------------------------
// Typed convenience wrappers over Emit, one family per spec.md §4.6
// instruction group.

func loadOpForType(t Type) Opcode {
	switch t {
	case Long:
		return OpLoadLong
	case Double:
		return OpLoadDouble
	case Pointer, FunctionRef, ArrayRef, AutoRef, AutoArray:
		return OpLoadPointer
	case Int:
		return OpLoadInt
	default:
		if _, ok := t.(*Struct); ok {
			return OpLoadStruct
		}
		return OpLoadInt
	}
}

func storeOpForType(t Type) Opcode {
	switch t {
	case Long:
		return OpStoreLong
	case Double:
		return OpStoreDouble
	case Int, Pointer, FunctionRef, ArrayRef, AutoRef, AutoArray:
		return OpStoreInt
	default:
		if _, ok := t.(*Struct); ok {
			return OpStoreStruct
		}
		return OpStoreInt
	}
}

// EmitLoad reads from addr (a Pointer-typed value) with the width implied
// by typ.
func (b *Builder) EmitLoad(addr Value, typ Type) *Instruction {
	return b.Emit(loadOpForType(typ), typ, addr)
}

// EmitStore writes val to addr with the width implied by val's type.
func (b *Builder) EmitStore(addr, val Value) *Instruction {
	return b.Emit(storeOpForType(val.IRType()), Void, addr, val)
}

// EmitFrameOffset computes the address of a stack slot at offset bytes into
// the current frame.
func (b *Builder) EmitFrameOffset(offset int32) *Instruction {
	return b.Emit(OpFrameOffset, Pointer, NewConstInt(Int, offset))
}

// EmitGlobalAddr yields the constant address of a global.
func (b *Builder) EmitGlobalAddr(g *GlobalVar) Value {
	return NewGlobalRef(Pointer, g.Name)
}

// EmitIndex computes base + elemSize*index with a bounds check against a
// fixed-size array.
func (b *Builder) EmitIndex(base, index Value, elemSize int32) *Instruction {
	return b.Emit(OpIndex, Pointer, base, index, NewConstInt(Int, elemSize))
}

// EmitIndexUnsized computes an ArrayRef-typed value's element address,
// bounds-checked against its runtime length.
func (b *Builder) EmitIndexUnsized(base, index Value, elemSize int32) *Instruction {
	return b.Emit(OpIndexUnsized, Pointer, base, index, NewConstInt(Int, elemSize))
}

// EmitBinary emits one arithmetic/bitwise/comparison opcode; callers pick
// the opcode (the analyzer has already resolved operator overloading by
// this point, so this is always a primitive op).
func (b *Builder) EmitBinary(op Opcode, typ Type, lhs, rhs Value) *Instruction {
	return b.Emit(op, typ, lhs, rhs)
}

func (b *Builder) EmitNeg(typ Type, v Value) *Instruction {
	return b.Emit(OpNeg, typ, v)
}

func (b *Builder) EmitLogNot(v Value) *Instruction {
	return b.Emit(OpLogNot, Int, v)
}

func (b *Builder) EmitBitNot(typ Type, v Value) *Instruction {
	return b.Emit(OpBitNot, typ, v)
}

// EmitJump emits an unconditional jump to target.
func (b *Builder) EmitJump(target *Block) *Instruction {
	return b.Emit(OpJump, Void, NewBlockRef(target))
}

// EmitJumpZ/EmitJumpNZ emit a conditional jump on cond being zero/nonzero.
func (b *Builder) EmitJumpZ(cond Value, target *Block) *Instruction {
	return b.Emit(OpJumpZ, Void, cond, NewBlockRef(target))
}

func (b *Builder) EmitJumpNZ(cond Value, target *Block) *Instruction {
	return b.Emit(OpJumpNZ, Void, cond, NewBlockRef(target))
}

// EmitCall emits a call to fn with args; its result type is fn's return
// type (Void if the function returns nothing).
func (b *Builder) EmitCall(fn *Function, args ...Value) *Instruction {
	operands := append([]Value{NewGlobalRef(FunctionRef, fn.Name)}, args...)
	return b.Emit(OpCall, fn.ReturnType, operands...)
}

// EmitReturn emits a return; val may be nil for a void return.
func (b *Builder) EmitReturn(val Value) *Instruction {
	if val == nil {
		return b.Emit(OpReturn, Void)
	}
	return b.Emit(OpReturn, Void, val)
}

// EmitYield emits a coroutine yield, valid only inside a function declared
// with IsCoroutine.
func (b *Builder) EmitYield(val Value) *Instruction {
	if !b.curFunc.IsCoroutine {
		panic(fmt.Sprintf("ir: yield emitted outside coroutine %q", b.curFunc.Name))
	}
	return b.Emit(OpYield, Void, val)
}

// EmitCheckedReturn emits the guard inserted at the end of a function whose
// body does not fall through every path with an explicit return.
func (b *Builder) EmitCheckedReturn() *Instruction {
	return b.Emit(OpCheckedReturn, Void)
}

// EmitConvert emits the one conversion opcode for a from/to IR type pair;
// it panics on any pair outside spec.md §4.6's closed int/double/long
// triangle, since the analyzer never requests anything else.
func (b *Builder) EmitConvert(v Value, from, to Type) *Instruction {
	switch {
	case from == Int && to == Double:
		return b.Emit(OpIntToDouble, Double, v)
	case from == Double && to == Int:
		return b.Emit(OpDoubleToInt, Int, v)
	case from == Int && to == Long:
		return b.Emit(OpIntToLong, Long, v)
	case from == Long && to == Int:
		return b.Emit(OpLongToInt, Int, v)
	case from == Double && to == Long:
		return b.Emit(OpDoubleToLong, Long, v)
	case from == Long && to == Double:
		return b.Emit(OpLongToDouble, Double, v)
	default:
		panic(fmt.Sprintf("ir: no conversion from %s to %s", from.Repr(), to.Repr()))
	}
}

func (b *Builder) EmitConvertPointer(v Value, to Type) *Instruction {
	return b.Emit(OpConvertPointer, to, v)
}

func (b *Builder) EmitTypeID(v Value) *Instruction {
	return b.Emit(OpTypeID, Int, v)
}

// EmitCreateClosure builds a closure value: a function pointer paired with
// its captured context object (spec.md glossary "Upvalue").
func (b *Builder) EmitCreateClosure(fn *Function, ctx Value) *Instruction {
	return b.Emit(OpCreateClosure, FunctionRef, NewGlobalRef(FunctionRef, fn.Name), ctx)
}

// EmitCloseUpvalues retargets every upvalue's `target` pointer at its
// `copy` member, severing the link to the closing stack frame.
func (b *Builder) EmitCloseUpvalues(ctx Value) *Instruction {
	return b.Emit(OpCloseUpvalues, Void, ctx)
}

func (b *Builder) EmitSetRange(addr Value, byteCount int32) *Instruction {
	return b.Emit(OpSetRange, Void, addr, NewConstInt(Int, byteCount))
}
