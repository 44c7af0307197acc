package walk

import (
	"nullc/report"
	"nullc/types"
)

// CreateCast implements spec.md §4.4 "Implicit conversion (CreateCast)": a
// total function over (source_type, target_type) picking exactly one
// concrete cast kind, or failing with "can't convert X to Y". When
// isFunctionArgument is true, value->reference autowrapping for explicit
// reference parameters is additionally permitted.
func (w *Walker) CreateCast(node Node, target types.DataType, isFunctionArgument bool) Node {
	source := node.Type()
	if types.Equals(source, target) {
		return node
	}

	kind, ok := pickCastKind(source, target, isFunctionArgument)
	if !ok {
		report.Raise(report.ErrType, node.Pos(), "can't convert `%s` to `%s`", source.Repr(), target.Repr())
	}

	cast := &Cast{base: newBase(node.Pos(), target), Kind: kind, Operand: node}
	if kind == types.CastReinterpret {
		if sc, sok := classOf(source); sok {
			if tc, tok := classOf(target); tok {
				cast.ToDerived = tc.DerivesFrom(sc) && sc != tc
			}
		}
	}
	return cast
}

func pickCastKind(source, target types.DataType, isFunctionArgument bool) (types.CastKind, bool) {
	if types.IsNumeric(source) && types.IsNumeric(target) {
		return types.CastNumerical, true
	}

	if _, ok := target.(*types.Primitive); ok {
		if p := target.(*types.Primitive); p.Kind() == types.KindBool {
			switch source.(type) {
			case *types.Ref:
				return types.CastPtrToBool, true
			case *types.UnsizedArray:
				return types.CastUnsizedToBool, true
			case *types.Function:
				return types.CastFunctionRefToBool, true
			}
		}
	}

	if types.IsNullPtr(source) {
		switch target.(type) {
		case *types.Ref:
			return types.CastNullToPtr, true
		case *types.AutoRefType:
			return types.CastNullToAutoPtr, true
		case *types.UnsizedArray:
			return types.CastNullToUnsized, true
		case *types.AutoArrayType:
			return types.CastNullToAutoArray, true
		case *types.Function:
			return types.CastNullToFunction, true
		}
	}

	if arr, ok := source.(*types.Array); ok {
		if ua, ok := target.(*types.UnsizedArray); ok && types.Equals(arr.Elem, ua.Elem) {
			return types.CastArrayToUnsized, true
		}
	}

	if sr, ok := source.(*types.Ref); ok {
		if arr, ok := sr.Elem.(*types.Array); ok {
			if tr, ok := target.(*types.Ref); ok {
				if ua, ok := tr.Elem.(*types.UnsizedArray); ok && types.Equals(arr.Elem, ua.Elem) {
					return types.CastArrayPtrToUnsizedPtr, true
				}
			}
			if ua, ok := target.(*types.UnsizedArray); ok && types.Equals(arr.Elem, ua.Elem) {
				return types.CastArrayPtrToUnsized, true
			}
		}
	}

	if sc, ok := classOf(source); ok {
		if tc, ok := classOf(target); ok {
			if sc.DerivesFrom(tc) || tc.DerivesFrom(sc) {
				return types.CastReinterpret, true
			}
		}
	}

	if isFunctionArgument {
		if _, ok := target.(*types.Ref); ok {
			return types.CastAnyToPtr, true
		}
	}

	if _, ok := source.(*types.Ref); ok {
		if _, ok := target.(*types.AutoRefType); ok {
			return types.CastPtrToAutoPtr, true
		}
	}
	if _, ok := source.(*types.AutoRefType); ok {
		if _, ok := target.(*types.Ref); ok {
			return types.CastAutoPtrToPtr, true
		}
	}

	if _, ok := target.(*types.AutoArrayType); ok {
		switch source.(type) {
		case *types.UnsizedArray:
			return types.CastUnsizedToAutoArray, true
		case *types.Array:
			return types.CastArrayToAutoArray, true
		}
	}

	if _, ok := target.(*types.Function); ok {
		if _, ok := source.(*types.FunctionSet); ok {
			return types.CastFunctionRefMatch, true
		}
	}

	return types.CastNone, false
}
