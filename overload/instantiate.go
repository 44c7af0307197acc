package overload

import (
	"sort"
	"strings"

	"nullc/scope"
	"nullc/types"
)

// Instantiator is implemented by package walk: given a generic function
// prototype and a concrete alias binding, it re-enters the prototype's
// definition scope (via scope.Table.SwitchToScopeAtPoint), types its
// formal list against the bindings, walks its body, and returns the
// resulting concrete Function (spec.md §4.5 "Generic instantiation"). The
// overload engine depends only on this interface to avoid an import cycle
// with package walk, which in turn depends on package overload for call
// resolution.
type Instantiator interface {
	ReanalyzeFunction(proto *scope.Function, aliases map[string]types.DataType) *scope.Function
}

// instanceKey identifies a memoized instance by the prototype's context
// type, its name, and its alias bindings sorted by name.
func instanceKey(proto *scope.Function, aliases map[string]types.DataType) string {
	var sb strings.Builder
	if proto.ContextType != nil {
		sb.WriteString(proto.ContextType.Repr())
	}
	sb.WriteByte('|')
	sb.WriteString(proto.Name)
	sb.WriteByte('|')

	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(aliases[name].Repr())
		sb.WriteByte(',')
	}
	return sb.String()
}

// InstantiateGeneric returns the memoized instance of proto specialized by
// aliases, reanalyzing via inst on first request (spec.md §4.5).
func InstantiateGeneric(proto *scope.Function, aliases map[string]types.DataType, inst Instantiator) *scope.Function {
	key := instanceKey(proto, aliases)
	for _, existing := range proto.Instances {
		if instanceKey(proto, genericsOf(existing)) == key {
			return existing
		}
	}

	concrete := inst.ReanalyzeFunction(proto, aliases)
	concrete.IsGenericInstance = true
	concrete.Prototype = proto
	proto.Instances = append(proto.Instances, concrete)
	return concrete
}

// genericsOf recovers the alias bindings an already-built instance was
// specialized with, for comparison against a freshly requested key.
func genericsOf(f *scope.Function) map[string]types.DataType {
	return f.Generics
}
