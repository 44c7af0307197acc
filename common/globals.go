// Package common holds small cross-cutting constants and enumerations shared
// by every phase of the NULLC semantic core: the file extensions and module
// descriptor name the module-import provider looks for, the compiler's own
// version (compared against a module's `nullc-version` field), and the
// definition-kind/mutability enumerations used throughout the scope and
// symbol table.
package common

import "hash/fnv"

// NameHash computes the FNV-1a hash of a namespace-qualified name, the same
// hash the symbol table keys its lookup maps by and the bytecode header
// stores per exported entity (spec.md §4.2, §6).
func NameHash(name string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return h.Sum32()
}

// NullCVersion is the semantic-core's own version string.  It is compared
// against a bytecode header's format version, where a major-version
// mismatch fails decoding ("version mismatch"), and against the
// `nullc-version` field of a module descriptor, where a major-version
// mismatch is reported as a warning.
const NullCVersion = "0.1.0"

// ModuleFileName is the name of a NULLC module descriptor file, found at the
// root of every module directory.
const ModuleFileName = "nullc-mod.toml"

// SourceFileExt is the file extension recognized as NULLC source.
const SourceFileExt = ".nc"

// BytecodeFileExt is the file extension for a precompiled module's bytecode
// blob, as consumed by the module-import provider (spec.md §6).
const BytecodeFileExt = ".ncb"

// Enumeration of definition kinds, used by the scope & symbol table to
// reject using a value where a type is expected and vice versa.
const (
	DefKindUnknown = iota
	DefKindVariable
	DefKindFunction
	DefKindType
	DefKindNamespace
	DefKindAlias
	DefKindConstant
)

// Enumeration of variable mutability states.
const (
	NeverMutated = iota
	Mutable
	Immutable
)

// GenericInstanceDepthLimit bounds the number of nested generic-class
// instantiations (spec.md §4.1): exceeding it is a fatal
// "generic type instance depth exceeded" error.
const GenericInstanceDepthLimit = 32
