package types

import (
	"errors"
	"strings"

	"nullc/common"
)

// ErrDepthExceeded is panicked by GetOrBuildGenericClassInstance when the
// nesting guard trips; package walk's resolveGenericInstance recovers it and
// re-raises it through report.Raise with the type expression's position.
var ErrDepthExceeded = errors.New("generic type instance depth exceeded")

// GenericClassInstance is a fully concrete specialization of a generic
// class prototype, interned by (proto, args) via its mangled name
// (spec.md §3 "GenericClassInstance(proto, args[])").
type GenericClassInstance struct {
	Proto *GenericClassProto
	Args  []DataType
	Class *Class // the concrete, finalized backing class
}

var instanceTable = map[string]*GenericClassInstance{}

// mangledName is proto.name with the argument types' representations
// joined, matching spec.md §4.1's "computes a mangled name (proto.name with
// the arg types joined)".
func mangledName(proto *GenericClassProto, args []DataType) string {
	var sb strings.Builder
	sb.WriteString(proto.Name)
	sb.WriteByte('<')
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(a.Repr())
	}
	sb.WriteByte('>')
	return sb.String()
}

// Reanalyzer is implemented by package walk's Walker: it knows how to
// re-enter a generic class prototype's definition syntax at its original
// scope-point with the generic parameters bound to args, and return the
// resulting concrete class (spec.md §4.1). The type universe depends only
// on this interface, never on package walk directly, to avoid a cycle.
type Reanalyzer interface {
	ReanalyzeGenericClass(proto *GenericClassProto, args []DataType) *Class
}

// instantiationDepth tracks the nesting of in-flight
// GetOrBuildGenericClassInstance calls so that mutually recursive generic
// classes hit the depth guard rather than recursing forever.
var instantiationDepth int

// GenericInstanceDepthLimit is the configurable cap on nested generic-class
// instantiation (spec.md §4.1, default 32). It is a var, not a const, so a
// driver can override it from configuration.
var GenericInstanceDepthLimit = common.GenericInstanceDepthLimit

// GetOrBuildGenericClassInstance returns the interned instance of
// proto<args...>, reanalyzing the prototype's definition via r if this is
// the first request for this specialization. Panics with ErrDepthExceeded
// if the nested instantiation depth exceeds GenericInstanceDepthLimit.
func GetOrBuildGenericClassInstance(proto *GenericClassProto, args []DataType, r Reanalyzer) *GenericClassInstance {
	name := mangledName(proto, args)
	if inst, ok := instanceTable[name]; ok {
		return inst
	}

	if instantiationDepth >= GenericInstanceDepthLimit {
		panic(ErrDepthExceeded)
	}

	instantiationDepth++
	defer func() { instantiationDepth-- }()

	concrete := r.ReanalyzeGenericClass(proto, args)

	inst := &GenericClassInstance{Proto: proto, Args: append([]DataType(nil), args...), Class: concrete}
	instanceTable[name] = inst
	return inst
}

func (g *GenericClassInstance) Repr() string    { return mangledName(g.Proto, g.Args) }
func (g *GenericClassInstance) Size() int        { return g.Class.Size() }
func (g *GenericClassInstance) Alignment() int   { return g.Class.Alignment() }
func (g *GenericClassInstance) IsGeneric() bool  { return anyGeneric(g.Args...) }

func (g *GenericClassInstance) equals(other DataType) bool {
	og, ok := other.(*GenericClassInstance)
	return ok && og == g
}
