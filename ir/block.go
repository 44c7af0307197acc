package ir

import (
	"fmt"
	"strings"
)

// Opcode is the closed instruction set described by spec.md §4.6.
type Opcode int

const (
	OpLoadByte Opcode = iota
	OpLoadShort
	OpLoadInt
	OpLoadFloat
	OpLoadDouble
	OpLoadLong
	OpLoadStruct
	OpLoadPointer

	OpStoreByte
	OpStoreShort
	OpStoreInt
	OpStoreFloat
	OpStoreDouble
	OpStoreLong
	OpStoreStruct

	OpSetRange

	OpJump
	OpJumpZ
	OpJumpNZ
	OpCall
	OpReturn
	OpYield

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpMod
	OpNeg

	OpShl
	OpShr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitNot

	OpLogAnd
	OpLogOr
	OpLogXor
	OpLogNot

	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
	OpEqual
	OpNotEqual

	OpIntToDouble
	OpDoubleToInt
	OpIntToLong
	OpLongToInt
	OpDoubleToLong
	OpLongToDouble

	OpFrameOffset
	OpIndex
	OpIndexUnsized

	OpTypeID
	OpCreateClosure
	OpCloseUpvalues
	OpConvertPointer
	OpCheckedReturn
)

var opcodeNames = map[Opcode]string{
	OpLoadByte: "load_byte", OpLoadShort: "load_short", OpLoadInt: "load_int",
	OpLoadFloat: "load_float", OpLoadDouble: "load_double", OpLoadLong: "load_long",
	OpLoadStruct: "load_struct", OpLoadPointer: "load_pointer",
	OpStoreByte: "store_byte", OpStoreShort: "store_short", OpStoreInt: "store_int",
	OpStoreFloat: "store_float", OpStoreDouble: "store_double", OpStoreLong: "store_long",
	OpStoreStruct: "store_struct", OpSetRange: "set_range",
	OpJump: "jump", OpJumpZ: "jump_z", OpJumpNZ: "jump_nz", OpCall: "call",
	OpReturn: "return", OpYield: "yield",
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpPow: "pow", OpMod: "mod", OpNeg: "neg",
	OpShl: "shl", OpShr: "shr", OpBitAnd: "bit_and", OpBitOr: "bit_or", OpBitXor: "bit_xor", OpBitNot: "bit_not",
	OpLogAnd: "log_and", OpLogOr: "log_or", OpLogXor: "log_xor", OpLogNot: "log_not",
	OpLess: "less", OpGreater: "greater", OpLessEqual: "less_equal", OpGreaterEqual: "greater_equal",
	OpEqual: "equal", OpNotEqual: "not_equal",
	OpIntToDouble: "int_to_double", OpDoubleToInt: "double_to_int",
	OpIntToLong: "int_to_long", OpLongToInt: "long_to_int",
	OpDoubleToLong: "double_to_long", OpLongToDouble: "long_to_double",
	OpFrameOffset: "frame_offset", OpIndex: "index", OpIndexUnsized: "index_unsized",
	OpTypeID: "type_id", OpCreateClosure: "create_closure", OpCloseUpvalues: "close_upvalues",
	OpConvertPointer: "convert_pointer", OpCheckedReturn: "checked_return",
}

// sideEffecting holds every opcode that must survive even with zero users:
// stores, control flow, and calls. Everything else is pure and eligible for
// removal once its last user disappears (spec.md §4.6 "RemoveUse").
var sideEffecting = map[Opcode]bool{
	OpStoreByte: true, OpStoreShort: true, OpStoreInt: true, OpStoreFloat: true,
	OpStoreDouble: true, OpStoreLong: true, OpStoreStruct: true, OpSetRange: true,
	OpJump: true, OpJumpZ: true, OpJumpNZ: true, OpCall: true, OpReturn: true, OpYield: true,
	OpCreateClosure: true, OpCloseUpvalues: true, OpCheckedReturn: true,
}

// lifecycle is the instruction state machine from spec.md §4.6: Created →
// Linked (has a parent block) → Dead (unlinked, operand array emptied).
type lifecycle int

const (
	Created lifecycle = iota
	Linked
	Dead
)

// Instruction is a single IR operation. It is itself a Value: most opcodes
// yield a result consumed by a later instruction's operand list.
type Instruction struct {
	valueBase

	Op       Opcode
	Operands []Value
	Block    *Block
	state    lifecycle
}

// NewInstruction builds a detached instruction; it becomes Linked only once
// passed to (*Block).AddInstruction, which is also where operand user-lists
// get populated.
func NewInstruction(op Opcode, typ Type, operands ...Value) *Instruction {
	return &Instruction{valueBase: newValueBase(typ), Op: op, Operands: operands}
}

func (i *Instruction) Repr() string {
	sb := strings.Builder{}
	sb.WriteString(opcodeNames[i.Op])
	for _, op := range i.Operands {
		sb.WriteRune(' ')
		sb.WriteString(op.Repr())
	}
	return sb.String()
}

func (i *Instruction) hasSideEffects() bool { return sideEffecting[i.Op] }

// -----------------------------------------------------------------------------

// Block is a straight-line sequence of instructions within a Function.
type Block struct {
	Name         string
	Func         *Function
	Instructions []*Instruction
}

func (b *Block) Repr() string {
	sb := strings.Builder{}
	sb.WriteString(b.Name)
	sb.WriteString(":\n")
	for _, i := range b.Instructions {
		sb.WriteString("  ")
		if i.IRType() != nil && i.IRType() != Void {
			sb.WriteString(fmt.Sprintf("%%%p = ", i))
		}
		sb.WriteString(i.Repr())
		sb.WriteRune('\n')
	}
	return sb.String()
}

// AddInstruction links instr to the end of b: it registers instr as a user
// of every operand and transitions instr Created → Linked (spec.md §4.6).
func (b *Block) AddInstruction(instr *Instruction) *Instruction {
	instr.Block = b
	instr.state = Linked
	for _, op := range instr.Operands {
		op.addUser(instr)
	}
	b.Instructions = append(b.Instructions, instr)
	return instr
}

// RemoveInstruction unlinks instr from b, removes it from every operand's
// user list, and empties its own operand array, leaving it Dead.
func (b *Block) RemoveInstruction(instr *Instruction) {
	for idx, cur := range b.Instructions {
		if cur == instr {
			b.Instructions = append(b.Instructions[:idx], b.Instructions[idx+1:]...)
			break
		}
	}
	removeUses(instr)
}

func removeUses(instr *Instruction) {
	for _, op := range instr.Operands {
		op.removeUser(instr)
	}
	instr.Operands = nil
	instr.Block = nil
	instr.state = Dead
}

// RemoveUse drops one use of instr and, if that was its last user and it
// has no side effects, removes it from its block entirely, cascading to
// any operand that becomes unused as a result (spec.md §4.6).
func RemoveUse(instr *Instruction) {
	if instr.hasSideEffects() || len(instr.users()) > 0 {
		return
	}
	block := instr.Block
	if block == nil {
		return
	}
	operands := instr.Operands
	block.RemoveInstruction(instr)
	for _, op := range operands {
		if dep, ok := op.(*Instruction); ok {
			RemoveUse(dep)
		}
	}
}
