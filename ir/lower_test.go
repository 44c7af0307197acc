package ir

import (
	"testing"

	"nullc/types"
)

func TestMapTypePrimitives(t *testing.T) {
	cases := []struct {
		name string
		in   types.DataType
		want Type
	}{
		{"bool", types.Prim(types.KindBool), Int},
		{"char", types.Prim(types.KindChar), Int},
		{"short", types.Prim(types.KindShort), Int},
		{"int", types.Prim(types.KindInt), Int},
		{"long", types.Prim(types.KindLong), Long},
		{"float", types.Prim(types.KindFloat), Double},
		{"double", types.Prim(types.KindDouble), Double},
		{"void", types.Prim(types.KindVoid), Void},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MapType(c.in); got != c.want {
				t.Errorf("MapType(%s) = %v, want %v", c.name, got, c.want)
			}
		})
	}
}

func TestMapTypeAggregates(t *testing.T) {
	intType := types.Prim(types.KindInt)

	arr := types.GetArray(intType, 4)
	if got := MapType(arr); got.Repr() != "struct(16)" {
		t.Errorf("MapType(int[4]) = %s, want struct(16)", got.Repr())
	}

	ref := types.GetReference(intType)
	if got := MapType(ref); got != Pointer {
		t.Errorf("MapType(&int) = %v, want Pointer", got)
	}

	unsized := types.GetUnsizedArray(intType)
	if got := MapType(unsized); got != ArrayRef {
		t.Errorf("MapType(int[]) = %v, want ArrayRef", got)
	}
}

func TestInstructionLifecycle(t *testing.T) {
	b := NewBuilder("m")
	b.DeclareFunction("f", nil, Void, false)

	c := NewConstInt(Int, 1)
	load := b.Emit(OpAdd, Int, c, NewConstInt(Int, 2))

	if load.state != Linked {
		t.Fatalf("expected Linked after AddInstruction, got %v", load.state)
	}
	if len(c.users()) != 1 {
		t.Fatalf("expected const to have one user, got %d", len(c.users()))
	}

	block := b.CurrentBlock()
	block.RemoveInstruction(load)

	if load.state != Dead {
		t.Fatalf("expected Dead after RemoveInstruction, got %v", load.state)
	}
	if len(load.Operands) != 0 {
		t.Fatalf("expected empty operand array after unlink, got %d", len(load.Operands))
	}
	if len(c.users()) != 0 {
		t.Fatalf("expected const to lose its user after unlink, got %d", len(c.users()))
	}
}

func TestRemoveUseCascades(t *testing.T) {
	b := NewBuilder("m")
	b.DeclareFunction("f", nil, Void, false)

	inner := b.Emit(OpAdd, Int, NewConstInt(Int, 1), NewConstInt(Int, 2))
	outer := b.Emit(OpMul, Int, inner, NewConstInt(Int, 3))

	block := b.CurrentBlock()
	if len(block.Instructions) != 2 {
		t.Fatalf("expected 2 live instructions, got %d", len(block.Instructions))
	}

	RemoveUse(outer)

	if len(block.Instructions) != 0 {
		t.Fatalf("expected RemoveUse to cascade and remove both instructions, got %d left", len(block.Instructions))
	}
}

func TestPeepholeAddZero(t *testing.T) {
	b := NewBuilder("m")
	fn := b.DeclareFunction("f", nil, Int, false)
	block := b.CurrentBlock()

	x := b.EmitFrameOffset(0)
	loaded := b.EmitLoad(x, Int)
	sum := b.Emit(OpAdd, Int, loaded, NewConstInt(Int, 0))
	b.EmitReturn(sum)

	PeepholeOptimize(b.Module)

	for _, instr := range block.Instructions {
		if instr.Op == OpAdd {
			t.Fatalf("expected x+0 to be folded away, found %s", instr.Repr())
		}
	}

	ret := fn.Blocks[0].Instructions[len(fn.Blocks[0].Instructions)-1]
	if ret.Op != OpReturn || ret.Operands[0] != Value(loaded) {
		t.Fatalf("expected return to use the load directly after folding, got %s", ret.Repr())
	}
}

func TestPeepholeSubFromZeroNegates(t *testing.T) {
	b := NewBuilder("m")
	b.DeclareFunction("f", nil, Int, false)

	x := b.EmitLoad(b.EmitFrameOffset(0), Int)
	b.Emit(OpSub, Int, NewConstInt(Int, 0), x)

	PeepholeOptimize(b.Module)

	block := b.CurrentBlock()
	foundNeg := false
	for _, instr := range block.Instructions {
		if instr.Op == OpSub {
			t.Fatalf("expected 0-x to be rewritten away, found %s", instr.Repr())
		}
		if instr.Op == OpNeg {
			foundNeg = true
		}
	}
	if !foundNeg {
		t.Fatalf("expected a neg instruction after rewriting 0-x")
	}
}

func TestBuilderConditionalBlockLayout(t *testing.T) {
	b := NewBuilder("m")
	fn := b.DeclareFunction("f", nil, Int, false)

	cond := NewConstInt(Int, 1)
	thenBlock := b.NewBlock("then")
	elseBlock := b.NewBlock("else")
	mergeBlock := b.NewBlock("merge")

	b.EmitJumpNZ(cond, thenBlock)
	b.EmitJump(elseBlock)

	b.SetBlock(thenBlock)
	b.EmitJump(mergeBlock)

	b.SetBlock(elseBlock)
	b.EmitJump(mergeBlock)

	b.SetBlock(mergeBlock)
	b.EmitReturn(nil)

	if len(fn.Blocks) != 4 {
		t.Fatalf("expected entry+then+else+merge, got %d blocks", len(fn.Blocks))
	}
}
