package ir

// PeepholeOptimize runs the optional rewrite pass over every function in m:
// additive/multiplicative identities are folded away through the same
// operand-user discipline the rest of the package uses, so a rewritten
// operand that becomes unused is removed via RemoveUse rather than left
// dangling (spec.md §4.6 "peephole optimizer").
func PeepholeOptimize(m *Module) {
	for _, f := range m.Functions {
		for _, b := range f.Blocks {
			optimizeBlock(b)
		}
	}
}

func optimizeBlock(b *Block) {
	// Instructions is mutated by RemoveInstruction as rewrites fire, so walk
	// a snapshot rather than the live slice.
	snapshot := append([]*Instruction{}, b.Instructions...)
	for _, instr := range snapshot {
		rewriteInstruction(b, instr)
	}
}

func rewriteInstruction(b *Block, instr *Instruction) {
	if instr.state == Dead {
		return
	}

	switch instr.Op {
	case OpAdd:
		lhs, rhs := instr.Operands[0], instr.Operands[1]
		switch {
		case isZeroConst(lhs):
			replaceAndRemove(instr, rhs)
		case isZeroConst(rhs):
			replaceAndRemove(instr, lhs)
		}

	case OpSub:
		lhs, rhs := instr.Operands[0], instr.Operands[1]
		switch {
		case isZeroConst(rhs):
			replaceAndRemove(instr, lhs)
		case isZeroConst(lhs):
			neg := NewInstruction(OpNeg, instr.IRType(), rhs)
			insertBefore(b, instr, neg)
			replaceAndRemove(instr, neg)
		}

	case OpMul:
		lhs, rhs := instr.Operands[0], instr.Operands[1]
		switch {
		case isZeroConst(lhs) || isZeroConst(rhs):
			replaceAndRemove(instr, zeroConstFor(instr.IRType()))
		case isOneConst(lhs):
			replaceAndRemove(instr, rhs)
		case isOneConst(rhs):
			replaceAndRemove(instr, lhs)
		}
	}
}

// insertBefore splices a freshly built, detached instruction into b
// immediately ahead of target, linking it the same way AddInstruction does.
func insertBefore(b *Block, target, instr *Instruction) {
	instr.Block = b
	instr.state = Linked
	for _, op := range instr.Operands {
		op.addUser(instr)
	}
	for i, cur := range b.Instructions {
		if cur == target {
			b.Instructions = append(b.Instructions[:i], append([]*Instruction{instr}, b.Instructions[i:]...)...)
			return
		}
	}
	b.Instructions = append(b.Instructions, instr)
}

// replaceAndRemove redirects every user of old to newVal and then removes
// old, cascading through RemoveUse in case that frees up one of old's own
// operands in turn.
func replaceAndRemove(old *Instruction, newVal Value) {
	replaceAllUses(old, newVal)
	RemoveUse(old)
}

func replaceAllUses(old Value, newVal Value) {
	for _, u := range append([]*Instruction{}, old.users()...) {
		for i, op := range u.Operands {
			if op == old {
				u.Operands[i] = newVal
				old.removeUser(u)
				newVal.addUser(u)
			}
		}
	}
}

func isZeroConst(v Value) bool {
	switch c := v.(type) {
	case *ConstInt:
		return c.Val == 0
	case *ConstLong:
		return c.Val == 0
	case *ConstDouble:
		return c.Val == 0
	}
	return false
}

func isOneConst(v Value) bool {
	switch c := v.(type) {
	case *ConstInt:
		return c.Val == 1
	case *ConstLong:
		return c.Val == 1
	case *ConstDouble:
		return c.Val == 1
	}
	return false
}

func zeroConstFor(t Type) Value {
	switch t {
	case Long:
		return NewConstLong(0)
	case Double:
		return NewConstDouble(0)
	default:
		return NewConstInt(t, 0)
	}
}
