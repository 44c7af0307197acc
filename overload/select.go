package overload

import (
	"nullc/report"
	"nullc/scope"
	"nullc/types"
)

// Scored is one candidate that survived argument preparation and rating.
type Scored struct {
	Func    *scope.Function
	Args    PreparedArgs
	Rating  int
	Aliases map[string]types.DataType // non-nil, populated only for generic candidates
}

// rateCandidate prepares and rates a single candidate against actuals,
// returning ok=false if preparation fails or any argument is outright
// incompatible or fails unification.
func rateCandidate(f *scope.Function, actuals []ActualArg, b Boxer, pos *report.TextPosition) (Scored, bool) {
	prepared, ok := Prepare(f.Args, actuals, IsVariadicTail(f.Args), b, pos)
	if !ok {
		return Scored{}, false
	}

	aliases := map[string]types.DataType{}
	total := 0
	for i, formal := range f.Args {
		actualType := prepared.Args[i].Type()
		rating, needsUnify := RateArgument(formal.Type, actualType, aliases)
		if needsUnify {
			if !MatchGenericType(formal.Type, actualType, aliases, false) {
				return Scored{}, false
			}
		}
		if rating == Incompatible {
			return Scored{}, false
		}
		total += rating
	}

	return Scored{Func: f, Args: prepared, Rating: total, Aliases: aliases}, true
}

// Select implements spec.md §4.5 "Selection": rate every candidate,
// separate concrete from generic, and pick the winner. It raises
// report.ErrOverload on ambiguity and returns ok=false (no raise) if
// nothing matches at all, leaving the "no matching overload" diagnostic to
// the caller, which knows the call-site name for a better message.
func Select(candidates []*scope.Function, actuals []ActualArg, b Boxer, pos *report.TextPosition) (Scored, bool) {
	var concrete, generic []Scored

	for _, f := range candidates {
		s, ok := rateCandidate(f, actuals, b, pos)
		if !ok {
			continue
		}
		if f.Type.IsGeneric() {
			generic = append(generic, s)
		} else {
			concrete = append(concrete, s)
		}
	}

	bestConcrete, concreteTies := bestOf(concrete)
	bestGeneric, genericTies := bestOf(generic)

	haveConcrete := len(concrete) > 0
	haveGeneric := len(generic) > 0

	if haveConcrete && (!haveGeneric || bestConcrete <= bestGeneric) {
		if len(concreteTies) > 1 {
			report.Raise(report.ErrOverload, pos, "ambiguous call: %d overloads of equal rating", len(concreteTies))
		}
		return concreteTies[0], true
	}

	if haveGeneric {
		if len(genericTies) > 1 {
			report.Raise(report.ErrOverload, pos, "ambiguous call: %d generic overloads of equal rating", len(genericTies))
		}
		return genericTies[0], true
	}

	return Scored{}, false
}

func bestOf(scored []Scored) (int, []Scored) {
	if len(scored) == 0 {
		return Incompatible, nil
	}
	best := scored[0].Rating
	for _, s := range scored[1:] {
		if s.Rating < best {
			best = s.Rating
		}
	}
	var ties []Scored
	for _, s := range scored {
		if s.Rating == best {
			ties = append(ties, s)
		}
	}
	return best, ties
}
