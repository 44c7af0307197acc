package overload

import "nullc/types"

// Incompatible is the "infinite" rating spec.md §4.5 assigns to an argument
// conversion that matches none of the listed cases.
const Incompatible = 1 << 30

// RateArgument computes the point cost of converting an actual of type
// actual to a formal of type formal, per the fixed table in spec.md §4.5.
// aliases carries the in-progress generic binding set; needsUnify reports whether
// formal is a Generic type that still needs MatchGenericType run against
// it (the caller is responsible for then calling MatchGenericType and
// failing the whole candidate if it returns false).
func RateArgument(formal, actual types.DataType, aliases map[string]types.DataType) (rating int, needsUnify bool) {
	if types.Equals(formal, actual) {
		return 0, false
	}

	if _, ok := formal.(*types.Generic); ok {
		return 0, true
	}

	if types.IsNumeric(formal) && types.IsNumeric(actual) {
		return 1, false
	}

	if arr, ok := actual.(*types.Array); ok {
		if ua, ok := formal.(*types.UnsizedArray); ok && types.Equals(ua.Elem, arr.Elem) {
			return 2, false
		}
	}

	if fr, ok := formal.(*types.Ref); ok {
		if ar, ok := actual.(*types.Ref); ok {
			if fc, ok := fr.Elem.(*types.Class); ok {
				if ac, ok := ar.Elem.(*types.Class); ok {
					if ac.DerivesFrom(fc) {
						return 5, false
					}
					if fc.DerivesFrom(ac) {
						return 10, false // base-ref -> derived-ref, runtime check inserted
					}
				}
			}
		}
	}

	if types.IsNullPtr(actual) {
		switch formal.(type) {
		case *types.AutoRefType, *types.AutoArrayType:
			return 5, false
		}
	}

	if _, ok := formal.(*types.Ref); ok {
		if !isRefType(actual) {
			return 5, false // value -> ref
		}
	}

	if _, ok := formal.(*types.AutoRefType); ok {
		if isRefType(actual) {
			return 5, false // ref -> auto-ref
		}
		return 10, false // value -> auto-ref
	}

	if _, ok := formal.(*types.AutoArrayType); ok {
		switch actual.(type) {
		case *types.Array, *types.UnsizedArray:
			return 5, false // auto[] from array/unsized
		}
	}

	return Incompatible, false
}

func isRefType(t types.DataType) bool {
	_, ok := t.(*types.Ref)
	return ok
}
