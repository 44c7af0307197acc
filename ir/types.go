// Package ir is the IR builder (spec.md §4.6): it lowers a fully-resolved
// walk.Node tree into a small, typed instruction form with explicit blocks,
// use-lists, and parent pointers, and offers an optional peephole pass over
// the result.
package ir

import (
	"fmt"

	"nullc/types"
)

// Type is the closed set of IR-level types: Void, Int, Double, Long, Label,
// Pointer, FunctionRef, ArrayRef, AutoRef, AutoArray, or Struct(bytes)
// (spec.md §4.6 "IR types").
type Type interface {
	Repr() string
	Size() uint
	Align() uint
}

type kind int

const (
	kindVoid kind = iota
	kindInt
	kindDouble
	kindLong
	kindLabel
	kindPointer
	kindFunctionRef
	kindArrayRef
	kindAutoRef
	kindAutoArray
)

// simpleType backs every singleton member of the IR type set; Struct is the
// only variant that isn't a singleton, since its size tracks the source
// type it was mapped from.
type simpleType struct {
	k    kind
	name string
	size uint
}

func (t *simpleType) Repr() string { return t.name }
func (t *simpleType) Size() uint   { return t.size }
func (t *simpleType) Align() uint {
	if t.size == 0 {
		return 1
	}
	return t.size
}

var (
	Void        Type = &simpleType{kindVoid, "void", 0}
	Int         Type = &simpleType{kindInt, "int", 4}
	Double      Type = &simpleType{kindDouble, "double", 8}
	Long        Type = &simpleType{kindLong, "long", 8}
	Label       Type = &simpleType{kindLabel, "label", 0}
	Pointer     Type = &simpleType{kindPointer, "pointer", 4}
	FunctionRef Type = &simpleType{kindFunctionRef, "function_ref", 4}
	ArrayRef    Type = &simpleType{kindArrayRef, "array_ref", 8}
	AutoRef     Type = &simpleType{kindAutoRef, "auto_ref", 8}
	AutoArray   Type = &simpleType{kindAutoArray, "auto_array", 12}
)

// Struct is a flat byte blob of the given size: Array and Class map here,
// with the empty-class case degenerating to Int 0 instead (spec.md §4.6).
type Struct struct {
	Bytes uint
}

func (s *Struct) Repr() string { return fmt.Sprintf("struct(%d)", s.Bytes) }
func (s *Struct) Size() uint   { return s.Bytes }
func (s *Struct) Align() uint {
	switch {
	case s.Bytes >= 8:
		return 8
	case s.Bytes >= 4:
		return 4
	default:
		return 1
	}
}

// MapType implements spec.md §4.6's total, deterministic source-to-IR type
// mapping.
func MapType(t types.DataType) Type {
	switch v := t.(type) {
	case *types.Primitive:
		switch v.Kind() {
		case types.KindLong:
			return Long
		case types.KindFloat, types.KindDouble:
			return Double
		case types.KindVoid:
			return Void
		default: // Bool, Char, Short, Int, TypeId, FunctionId, NullPtr, Auto
			return Int
		}
	case *types.Ref:
		return Pointer
	case *types.Function:
		return FunctionRef
	case *types.UnsizedArray:
		return ArrayRef
	case *types.AutoRefType:
		return AutoRef
	case *types.AutoArrayType:
		return AutoArray
	case *types.Array, *types.Class:
		if size := t.Size(); size > 0 {
			return &Struct{Bytes: uint(size)}
		}
		return Int
	case *types.Enum:
		return Int
	default:
		return Int
	}
}
