// Package constexpr reduces a resolved expression node to a compile-time
// literal value where possible (spec.md §4.3). It is invoked opportunistically
// by the expression analyzer wherever the language requires a constant:
// array sizes, alignof arguments, static if conditions, enum and
// class-scope constants, and break/continue depths.
package constexpr

import (
	"math"

	"nullc/report"
	"nullc/types"
	"nullc/walk"
)

// Value is the closed set of reduced literal values (spec.md §4.3:
// "BoolLit | CharLit | IntLit | LongLit | DoubleLit | TypeLit |
// FunctionIndexLit | NullLit").
type Value struct {
	Kind walk.LitKind
	Type types.DataType

	BoolVal   bool
	CharVal   rune
	IntVal    int32
	LongVal   int64
	DoubleVal float64
	TypeVal   types.DataType
	FuncIndex int
}

// Eval attempts to reduce node to a literal. It returns ok == false,
// without raising, when node falls outside the evaluator's scope — callers
// decide whether that's an error ("requires a constant expression") or a
// legitimate non-constant context.
func Eval(node walk.Node) (Value, bool) {
	switch n := node.(type) {
	case *walk.Literal:
		return literalToValue(n), true

	case *walk.UnaryOp:
		operand, ok := Eval(n.Operand)
		if !ok {
			return Value{}, false
		}
		return evalUnary(n.Op, operand)

	case *walk.BinaryOp:
		lhs, ok := Eval(n.Lhs)
		if !ok {
			return Value{}, false
		}
		rhs, ok := Eval(n.Rhs)
		if !ok {
			return Value{}, false
		}
		return evalBinary(n.Op, lhs, rhs)

	case *walk.Cast:
		if n.Kind != types.CastNumerical {
			return Value{}, false
		}
		operand, ok := Eval(n.Operand)
		if !ok {
			return Value{}, false
		}
		return castNumeric(operand, n.Type())

	case *walk.VariableAccess:
		return Value{}, false

	default:
		return Value{}, false
	}
}

// EvalRequired behaves like Eval, but raises report.ErrConst with the
// supplied message when reduction fails, matching spec.md §4.3's blanket
// rule that a non-reducible node is reported as "requires a constant
// expression".
func EvalRequired(node walk.Node, context string) Value {
	v, ok := Eval(node)
	if !ok {
		report.Raise(report.ErrConst, node.Pos(), "%s requires a constant expression", context)
	}
	return v
}

func literalToValue(lit *walk.Literal) Value {
	return Value{
		Kind:      lit.Kind,
		Type:      lit.Type(),
		BoolVal:   lit.BoolVal,
		CharVal:   lit.CharVal,
		IntVal:    lit.IntVal,
		LongVal:   lit.LongVal,
		DoubleVal: lit.DoubleVal,
		TypeVal:   lit.TypeVal,
		FuncIndex: lit.FuncIndex,
	}
}

// AsInt64 widens v's bool/char/int/long payload to an int64, matching
// asInt64's coercion rules; it returns 0 for a non-integral value.
func (v Value) AsInt64() int64 {
	i, _ := asInt64(v)
	return i
}

func asFloat(v Value) (float64, bool) {
	switch v.Kind {
	case walk.LitInt:
		return float64(v.IntVal), true
	case walk.LitLong:
		return float64(v.LongVal), true
	case walk.LitDouble:
		return v.DoubleVal, true
	case walk.LitChar:
		return float64(v.CharVal), true
	case walk.LitBool:
		if v.BoolVal {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func asInt64(v Value) (int64, bool) {
	switch v.Kind {
	case walk.LitInt:
		return int64(v.IntVal), true
	case walk.LitLong:
		return v.LongVal, true
	case walk.LitChar:
		return int64(v.CharVal), true
	case walk.LitBool:
		if v.BoolVal {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func evalUnary(op string, v Value) (Value, bool) {
	switch op {
	case "-":
		if v.Kind == walk.LitDouble {
			return Value{Kind: walk.LitDouble, Type: v.Type, DoubleVal: -v.DoubleVal}, true
		}
		if i, ok := asInt64(v); ok {
			return intResult(v.Kind, v.Type, -i), true
		}
		return Value{}, false

	case "~":
		if i, ok := asInt64(v); ok {
			return intResult(v.Kind, v.Type, ^i), true
		}
		return Value{}, false

	case "!":
		if v.Kind == walk.LitBool {
			return Value{Kind: walk.LitBool, Type: v.Type, BoolVal: !v.BoolVal}, true
		}
		return Value{}, false

	default:
		return Value{}, false
	}
}

func intResult(kind walk.LitKind, typ types.DataType, v int64) Value {
	if kind == walk.LitLong {
		return Value{Kind: walk.LitLong, Type: typ, LongVal: v}
	}
	return Value{Kind: walk.LitInt, Type: typ, IntVal: int32(v)}
}

func evalBinary(op string, lhs, rhs Value) (Value, bool) {
	if lhs.Kind == walk.LitDouble || rhs.Kind == walk.LitDouble {
		a, aok := asFloat(lhs)
		b, bok := asFloat(rhs)
		if !aok || !bok {
			return Value{}, false
		}
		return evalBinaryFloat(op, a, b, lhs.Type)
	}

	a, aok := asInt64(lhs)
	b, bok := asInt64(rhs)
	if !aok || !bok {
		return Value{}, false
	}
	resultKind := walk.LitInt
	if lhs.Kind == walk.LitLong || rhs.Kind == walk.LitLong {
		resultKind = walk.LitLong
	}
	return evalBinaryInt(op, a, b, resultKind, lhs.Type)
}

func evalBinaryFloat(op string, a, b float64, typ types.DataType) (Value, bool) {
	switch op {
	case "+":
		return Value{Kind: walk.LitDouble, Type: typ, DoubleVal: a + b}, true
	case "-":
		return Value{Kind: walk.LitDouble, Type: typ, DoubleVal: a - b}, true
	case "*":
		return Value{Kind: walk.LitDouble, Type: typ, DoubleVal: a * b}, true
	case "/":
		return Value{Kind: walk.LitDouble, Type: typ, DoubleVal: a / b}, true
	case "%":
		return Value{Kind: walk.LitDouble, Type: typ, DoubleVal: math.Mod(a, b)}, true
	case "**":
		return Value{Kind: walk.LitDouble, Type: typ, DoubleVal: math.Pow(a, b)}, true
	case "<":
		return Value{Kind: walk.LitBool, Type: typ, BoolVal: a < b}, true
	case ">":
		return Value{Kind: walk.LitBool, Type: typ, BoolVal: a > b}, true
	case "<=":
		return Value{Kind: walk.LitBool, Type: typ, BoolVal: a <= b}, true
	case ">=":
		return Value{Kind: walk.LitBool, Type: typ, BoolVal: a >= b}, true
	case "==":
		return Value{Kind: walk.LitBool, Type: typ, BoolVal: a == b}, true
	case "!=":
		return Value{Kind: walk.LitBool, Type: typ, BoolVal: a != b}, true
	default:
		return Value{}, false
	}
}

func evalBinaryInt(op string, a, b int64, kind walk.LitKind, typ types.DataType) (Value, bool) {
	switch op {
	case "+":
		return intResult(kind, typ, a+b), true
	case "-":
		return intResult(kind, typ, a-b), true
	case "*":
		return intResult(kind, typ, a*b), true
	case "/":
		if b == 0 {
			return Value{}, false
		}
		return intResult(kind, typ, a/b), true
	case "%":
		if b == 0 {
			return Value{}, false
		}
		return intResult(kind, typ, a%b), true
	case "&":
		return intResult(kind, typ, a&b), true
	case "|":
		return intResult(kind, typ, a|b), true
	case "^":
		return intResult(kind, typ, a^b), true
	case "<<":
		return intResult(kind, typ, a<<uint(b)), true
	case ">>":
		return intResult(kind, typ, a>>uint(b)), true
	case "<":
		return Value{Kind: walk.LitBool, Type: typ, BoolVal: a < b}, true
	case ">":
		return Value{Kind: walk.LitBool, Type: typ, BoolVal: a > b}, true
	case "<=":
		return Value{Kind: walk.LitBool, Type: typ, BoolVal: a <= b}, true
	case ">=":
		return Value{Kind: walk.LitBool, Type: typ, BoolVal: a >= b}, true
	case "==":
		return Value{Kind: walk.LitBool, Type: typ, BoolVal: a == b}, true
	case "!=":
		return Value{Kind: walk.LitBool, Type: typ, BoolVal: a != b}, true
	default:
		return Value{}, false
	}
}

func castNumeric(v Value, target types.DataType) (Value, bool) {
	if types.IsFloatingPoint(target) {
		f, ok := asFloat(v)
		if !ok {
			return Value{}, false
		}
		return Value{Kind: walk.LitDouble, Type: target, DoubleVal: f}, true
	}

	i, ok := asInt64(v)
	if !ok {
		return Value{}, false
	}

	p, isPrim := target.(*types.Primitive)
	if isPrim && p.Kind() == types.KindLong {
		return Value{Kind: walk.LitLong, Type: target, LongVal: i}, true
	}
	return Value{Kind: walk.LitInt, Type: target, IntVal: int32(i)}, true
}
