package ir

import "fmt"

// Value is anything an Instruction can take as an operand: a constant, an
// addressing value, or another Instruction's result. Every Value tracks the
// instructions that consume it so an unlinked instruction can be removed
// from their operand lists in O(uses) (spec.md §4.6 "users").
type Value interface {
	Repr() string
	IRType() Type

	users() []*Instruction
	addUser(*Instruction)
	removeUser(*Instruction)
}

type valueBase struct {
	typ    Type
	usedBy []*Instruction
}

func newValueBase(typ Type) valueBase { return valueBase{typ: typ} }

func (v *valueBase) IRType() Type { return v.typ }

func (v *valueBase) users() []*Instruction { return v.usedBy }

func (v *valueBase) addUser(i *Instruction) { v.usedBy = append(v.usedBy, i) }

func (v *valueBase) removeUser(i *Instruction) {
	for idx, u := range v.usedBy {
		if u == i {
			v.usedBy = append(v.usedBy[:idx], v.usedBy[idx+1:]...)
			return
		}
	}
}

// -----------------------------------------------------------------------------

// ConstInt is an integer, bool, char, or pointer-null constant.
type ConstInt struct {
	valueBase
	Val int32
}

func NewConstInt(typ Type, val int32) *ConstInt {
	return &ConstInt{valueBase: newValueBase(typ), Val: val}
}

func (c *ConstInt) Repr() string { return fmt.Sprintf("%d", c.Val) }

// ConstLong is a 64-bit integer constant.
type ConstLong struct {
	valueBase
	Val int64
}

func NewConstLong(val int64) *ConstLong {
	return &ConstLong{valueBase: newValueBase(Long), Val: val}
}

func (c *ConstLong) Repr() string { return fmt.Sprintf("%dL", c.Val) }

// ConstDouble is a floating-point constant.
type ConstDouble struct {
	valueBase
	Val float64
}

func NewConstDouble(val float64) *ConstDouble {
	return &ConstDouble{valueBase: newValueBase(Double), Val: val}
}

func (c *ConstDouble) Repr() string { return fmt.Sprintf("%g", c.Val) }

// GlobalRef names a module-level variable or function by its symbol; its
// address is a compile-time constant.
type GlobalRef struct {
	valueBase
	Name string
}

func NewGlobalRef(typ Type, name string) *GlobalRef {
	return &GlobalRef{valueBase: newValueBase(typ), Name: name}
}

func (g *GlobalRef) Repr() string { return "@" + g.Name }

// BlockRef names a Label value used as a jump target.
type BlockRef struct {
	valueBase
	Block *Block
}

func NewBlockRef(b *Block) *BlockRef {
	return &BlockRef{valueBase: newValueBase(Label), Block: b}
}

func (b *BlockRef) Repr() string { return "@" + b.Block.Name }
