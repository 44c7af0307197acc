package overload

import "nullc/types"

// MatchGenericType recursively matches pattern (which may contain Generic
// nodes) against the concrete arg, recording or checking bindings in
// aliases (spec.md §4.5 "Generic type unification"). In strict mode the
// Ref(T)-matches-bare-T and UnsizedArray(T)-matches-Array(T,n)
// generalizations are disabled — used when reanalyzing a generic function's
// own formal types, where an exact shape is required.
func MatchGenericType(pattern, arg types.DataType, aliases map[string]types.DataType, strict bool) bool {
	if g, ok := pattern.(*types.Generic); ok {
		bound := arg
		if !strict {
			if arr, ok := arg.(*types.Array); ok {
				bound = types.GetUnsizedArray(arr.Elem)
			}
		}
		if existing, ok := aliases[g.Name]; ok {
			return types.Equals(existing, bound)
		}
		aliases[g.Name] = bound
		return true
	}

	switch p := pattern.(type) {
	case *types.Ref:
		if ar, ok := arg.(*types.Ref); ok {
			return MatchGenericType(p.Elem, ar.Elem, aliases, strict)
		}
		if !strict {
			return MatchGenericType(p.Elem, arg, aliases, strict)
		}
		return false

	case *types.Array:
		aa, ok := arg.(*types.Array)
		if !ok || aa.Length != p.Length {
			return false
		}
		return MatchGenericType(p.Elem, aa.Elem, aliases, strict)

	case *types.UnsizedArray:
		switch aa := arg.(type) {
		case *types.UnsizedArray:
			return MatchGenericType(p.Elem, aa.Elem, aliases, strict)
		case *types.Array:
			if strict {
				return false
			}
			return MatchGenericType(p.Elem, aa.Elem, aliases, strict)
		default:
			return false
		}

	case *types.Function:
		af, ok := arg.(*types.Function)
		if !ok || len(af.Args) != len(p.Args) {
			return false
		}
		if !MatchGenericType(p.Return, af.Return, aliases, strict) {
			return false
		}
		for i, pa := range p.Args {
			if !MatchGenericType(pa, af.Args[i], aliases, strict) {
				return false
			}
		}
		return true

	case *types.GenericClassInstance:
		ag, ok := arg.(*types.GenericClassInstance)
		if !ok || ag.Proto != p.Proto || len(ag.Args) != len(p.Args) {
			return false
		}
		for i, pa := range p.Args {
			if !MatchGenericType(pa, ag.Args[i], aliases, strict) {
				return false
			}
		}
		return true

	default:
		return types.Equals(pattern, arg)
	}
}
