// Package overload implements function candidate collection, argument
// preparation, rating-based overload selection, and generic-parameter
// unification and instantiation (spec.md §4.5).
package overload

import (
	"nullc/report"
	"nullc/scope"
	"nullc/types"
	"nullc/walk"
)

// ActualArg is one argument supplied at a call site, after the analyzer has
// walked it to a typed node but before it has been matched against any
// particular candidate's formal list.
type ActualArg struct {
	Name  string // empty if positional
	Value walk.Node
}

// Boxer is implemented by package walk; it supplies the few operations
// argument preparation needs that require building new expression nodes
// (spec.md §4.5 step 3's auto-ref packing and defaulting).
type Boxer interface {
	BoxAutoRef(arg walk.Node) walk.Node
	NullLiteral(pos *report.TextPosition) walk.Node
	EvalDefault(formal scope.FuncArg, priorArgs []walk.Node) walk.Node
}

// PreparedArgs is the argument list in formal-slot order, ready for rating.
// A trailing variadic slot (formal UnsizedArray(AutoRef), not explicit) is
// represented by exactly one PreparedArgs entry per spec.md step 3: the
// packed array node occupies the final formal slot.
type PreparedArgs struct {
	Args []walk.Node
}

// Prepare implements spec.md §4.5 "Argument preparation" steps 1-3. pos is
// the position given to the null literal or packed array built for a
// variadic tail; it returns ok=false (with no error raised) when actuals simply cannot be matched to formals at all,
// letting the caller try other overloads before giving up.
func Prepare(formals []scope.FuncArg, actuals []ActualArg, variadicTail bool, b Boxer, pos *report.TextPosition) (PreparedArgs, bool) {
	slots := make([]walk.Node, len(formals))
	filled := make([]bool, len(formals))

	// Step 1: named actuals fill their named slot; unnamed actuals fill
	// leading unfilled positions in order.
	var unnamed []walk.Node
	for _, a := range actuals {
		if a.Name == "" {
			unnamed = append(unnamed, a.Value)
			continue
		}
		idx := indexOfFormal(formals, a.Name)
		if idx < 0 || filled[idx] {
			return PreparedArgs{}, false
		}
		slots[idx] = a.Value
		filled[idx] = true
	}

	next := 0
	used := 0
	for _, v := range unnamed {
		for next < len(formals) && filled[next] {
			next++
		}
		if variadicTail && next == len(formals)-1 {
			break // leave the last formal for the variadic pack below
		}
		if next >= len(formals) {
			return PreparedArgs{}, false
		}
		slots[next] = v
		filled[next] = true
		next++
		used++
	}

	// Step 3: pack any unconsumed trailing unnamed actuals into the final
	// UnsizedArray(AutoRef) formal.
	if variadicTail {
		tailType := formals[len(formals)-1].Type
		tail := unnamed[used:]
		if len(tail) == 0 {
			slots[len(formals)-1] = b.NullLiteral(pos)
		} else {
			boxed := make([]walk.Node, len(tail))
			for i, v := range tail {
				boxed[i] = b.BoxAutoRef(v)
			}
			slots[len(formals)-1] = walk.NewArraySetup(pos, tailType, boxed)
		}
		filled[len(formals)-1] = true
	}

	// Step 2: fill remaining unset formals from their defaults, in order,
	// handing EvalDefault the already-set earlier slots.
	for i, f := range formals {
		if filled[i] {
			continue
		}
		if f.Default == nil {
			return PreparedArgs{}, false
		}
		slots[i] = b.EvalDefault(f, slots[:i])
		filled[i] = true
	}

	for _, ok := range filled {
		if !ok {
			return PreparedArgs{}, false
		}
	}

	return PreparedArgs{Args: slots}, true
}

func indexOfFormal(formals []scope.FuncArg, name string) int {
	for i, f := range formals {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IsVariadicTail reports whether the last formal is an UnsizedArray(AutoRef)
// not marked explicit, the condition that triggers step 3 packing
// (spec.md §4.5).
func IsVariadicTail(formals []scope.FuncArg) bool {
	if len(formals) == 0 {
		return false
	}
	last := formals[len(formals)-1]
	if last.IsExplicit {
		return false
	}
	ua, ok := last.Type.(*types.UnsizedArray)
	if !ok {
		return false
	}
	_, isAutoRef := ua.Elem.(*types.AutoRefType)
	return isAutoRef
}
