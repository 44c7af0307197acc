package constexpr

import (
	"nullc/report"
	"nullc/types"
	"nullc/walk"
)

// Sizeof reduces `sizeof(T)` to an Int literal (supplemental intrinsic,
// grounded in the original implementation's ExpressionTree constant
// folding of sizeof/alignof/typeid).
func Sizeof(t types.DataType) Value {
	return Value{Kind: walk.LitInt, Type: types.Prim(types.KindInt), IntVal: int32(t.Size())}
}

// Alignof reduces `alignof(T)` to an Int literal. It does not validate the
// value; an explicit class/variable `align` clause is checked separately by
// ValidateAlignment (spec.md §4.3 "alignof value validation").
func Alignof(t types.DataType) Value {
	return Value{Kind: walk.LitInt, Type: types.Prim(types.KindInt), IntVal: int32(t.Alignment())}
}

// ValidateAlignment raises report.ErrConst unless n is a power of two no
// greater than 16.
func ValidateAlignment(pos *report.TextPosition, n int32) {
	if n <= 0 || n > 16 || n&(n-1) != 0 {
		report.Raise(report.ErrConst, pos, "alignment must be a power of two no greater than 16, got %d", n)
	}
}

// Typeid reduces `typeid(T)` to a TypeLit literal carrying t itself.
func Typeid(t types.DataType) Value {
	return Value{Kind: walk.LitType, Type: types.Prim(types.KindTypeId), TypeVal: t}
}
