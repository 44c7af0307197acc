package types

// numericRank orders the primitive numeric kinds for binary-op result
// selection: Double > Float > Long > Int > Short > Char > Bool
// (spec.md §4.1).
var numericRank = map[Kind]int{
	KindBool:   0,
	KindChar:   1,
	KindShort:  2,
	KindInt:    3,
	KindLong:   4,
	KindFloat:  5,
	KindDouble: 6,
}

func primKind(t DataType) (Kind, bool) {
	p, ok := t.(*Primitive)
	if !ok {
		return 0, false
	}
	_, numeric := numericRank[p.kind]
	return p.kind, numeric
}

// IsInteger reports whether t is one of Bool, Char, Short, Int, or Long.
func IsInteger(t DataType) bool {
	k, ok := primKind(t)
	return ok && k != KindFloat && k != KindDouble
}

// IsFloatingPoint reports whether t is Float or Double.
func IsFloatingPoint(t DataType) bool {
	k, ok := primKind(t)
	return ok && (k == KindFloat || k == KindDouble)
}

// IsNumeric reports whether t is any of Bool, Char, Short, Int, Long,
// Float, or Double.
func IsNumeric(t DataType) bool {
	_, ok := primKind(t)
	return ok
}

// BinaryOpResultType computes the common numeric type of a and b, ranked
// Double > Float > Long > Int > Short > Char > Bool. Returns (nil, false)
// for any non-numeric combination ("no common type", spec.md §4.1).
func BinaryOpResultType(a, b DataType) (DataType, bool) {
	ka, aok := primKind(a)
	kb, bok := primKind(b)
	if !aok || !bok {
		return nil, false
	}

	if numericRank[ka] >= numericRank[kb] {
		return Prim(ka), true
	}
	return Prim(kb), true
}
