package modimport

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"nullc/common"
)

// subCat is the closed set of type categories a bytecode's ExternTypeInfo
// row can describe (spec.md §6).
type subCat uint8

const (
	subCatNone subCat = iota
	subCatArray
	subCatPointer
	subCatFunction
	subCatClass
)

// unsizedArraySize is the ExternTypeInfo.arrSize sentinel marking an
// unsized array dimension (spec.md §6: "Array(size|~0=unsized)").
const unsizedArraySize = ^uint32(0)

// typeKind distinguishes a "complex" type (one whose layout/members must be
// looked up through the member/constant tables) from a "simple" one (a
// primitive, identified purely by name).
type typeKind uint8

const (
	typeKindSimple typeKind = iota
	typeKindComplex
)

// BytecodeHeader carries the bytecode blob's table counts plus the format
// version SPEC_FULL.md §4.3 adds on top of spec.md's layout, compared
// against this compiler's own version the same way a module descriptor's
// `nullc-version` field is.
type BytecodeHeader struct {
	TypeCount           uint32
	MemberCount         uint32
	ConstantCount       uint32
	NamespaceCount      uint32
	TypedefCount        uint32
	VariableExportCount uint32
	FunctionCount       uint32
	ModuleFunctionCount uint32

	FormatVersion string
}

type ExternNamespaceInfo struct {
	ParentHash   uint32
	OffsetToName uint32
}

type ExternTypeInfo struct {
	SubCat             subCat
	SubType            uint32
	ArrSize            uint32
	MemberCount        uint32
	MemberOffset       uint32
	ConstantCount      uint32
	NameHash           uint32
	NameOffset         uint32
	DefinitionOffset   uint32 // high bit signals a generic-class instance
	DefinitionOffsetStart uint32
	DefaultAlign       uint32
	Size               uint32
	Kind               typeKind
	NamespaceHash      uint32
}

// IsGenericInstance reports whether DefinitionOffset's high bit (spec.md
// §6: "definitionOffset high-bit signaling generic-class-instance") is set.
func (t *ExternTypeInfo) IsGenericInstance() bool {
	return t.DefinitionOffset&0x80000000 != 0
}

// DefinitionOffsetValue strips the generic-instance flag bit, yielding the
// real offset.
func (t *ExternTypeInfo) DefinitionOffsetValue() uint32 {
	return t.DefinitionOffset &^ 0x80000000
}

type ExternMemberInfo struct {
	Type   uint32
	Offset uint32
}

type ExternConstantInfo struct {
	Type uint32
	Raw  uint64
}

type ExternTypedefInfo struct {
	NameOffset uint32
	TargetType uint32
	ParentType uint32
}

type ExternVarInfo struct {
	NameOffset uint32
	Type       uint32
	Offset     uint32
}

// funcCat distinguishes a regular function from a coroutine (spec.md §6).
type funcCat uint8

const (
	funcCatRegular funcCat = iota
	funcCatCoroutine
)

type ExternFuncInfo struct {
	NameOffset         uint32
	FuncType           uint32
	ParentType         uint32
	ContextType        uint32
	ParamCount         uint32
	ExplicitTypeCount  uint32
	FuncCat            funcCat
	NameHash           uint32
	NamespaceHash      uint32
	GenericOffsetStart uint32
	GenericReturnType  uint32
	IsGenericInstance  bool
}

// localParamFlagExplicit is the one flag bit spec.md §6 names for ExternLocalInfo.
const localParamFlagExplicit = 1 << 0

// noDefaultFuncID is ExternLocalInfo.defaultFuncId's "no default" sentinel.
const noDefaultFuncID = 0xffff

type ExternLocalInfo struct {
	NameOffset      uint32
	Type            uint32
	ParamFlags      uint16
	DefaultFuncID   uint16
}

func (l *ExternLocalInfo) IsExplicit() bool { return l.ParamFlags&localParamFlagExplicit != 0 }
func (l *ExternLocalInfo) HasDefault() bool { return l.DefaultFuncID != noDefaultFuncID }

// Bytecode is a fully decoded module-import blob: the header, every table
// in spec.md §6's fixed order, the string table (kept as the raw buffer in
// stringTable, since a nameOffset indexes raw bytes; String resolves an
// offset against it), and the trailing source bytes.
type Bytecode struct {
	Header BytecodeHeader

	Namespaces []ExternNamespaceInfo
	Types      []ExternTypeInfo
	Members    []ExternMemberInfo
	Constants  []ExternConstantInfo
	Typedefs   []ExternTypedefInfo
	Variables  []ExternVarInfo
	Functions  []ExternFuncInfo
	Locals     []ExternLocalInfo

	stringTable []byte
	Source      []byte
}

// String resolves a null-terminated name at byte offset off into the
// string table (spec.md §6: "Names stored as null-terminated strings at
// byte offsets").
func (bc *Bytecode) String(off uint32) string {
	if int(off) >= len(bc.stringTable) {
		return ""
	}
	end := off
	for int(end) < len(bc.stringTable) && bc.stringTable[end] != 0 {
		end++
	}
	return string(bc.stringTable[off:end])
}

// Decode reads one bytecode blob from r per spec.md §6's bit-exact,
// little-endian layout: a header of counts, then the tables in order,
// then the string table, then the remaining bytes verbatim as Source.
func Decode(r io.Reader) (*Bytecode, error) {
	br := bufio.NewReader(r)
	bc := &Bytecode{}

	if err := readHeader(br, &bc.Header); err != nil {
		return nil, fmt.Errorf("modimport: reading header: %w", err)
	}

	var err error
	if bc.Namespaces, err = readNamespaces(br, bc.Header.NamespaceCount); err != nil {
		return nil, err
	}
	if bc.Types, err = readTypes(br, bc.Header.TypeCount); err != nil {
		return nil, err
	}
	if bc.Members, err = readMembers(br, bc.Header.MemberCount); err != nil {
		return nil, err
	}
	if bc.Constants, err = readConstants(br, bc.Header.ConstantCount); err != nil {
		return nil, err
	}
	if bc.Typedefs, err = readTypedefs(br, bc.Header.TypedefCount); err != nil {
		return nil, err
	}
	if bc.Variables, err = readVariables(br, bc.Header.VariableExportCount); err != nil {
		return nil, err
	}
	if bc.Functions, err = readFunctions(br, bc.Header.FunctionCount); err != nil {
		return nil, err
	}
	// ModuleFunctionCount selects, among FunctionCount entries, how many are
	// local to this module rather than re-exported from a transitive
	// import; spec.md §6 does not carve out a distinct table for them, so
	// it is recorded in the header only and consulted by the caller.
	if bc.Locals, err = readLocals(br); err != nil {
		return nil, err
	}

	strTable, err := readLengthPrefixed(br)
	if err != nil {
		return nil, fmt.Errorf("modimport: reading string table: %w", err)
	}
	bc.stringTable = strTable

	source, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("modimport: reading source bytes: %w", err)
	}
	bc.Source = source

	if err := CheckVersion(bc.Header.FormatVersion); err != nil {
		return bc, fmt.Errorf("version mismatch: %w", err)
	}

	return bc, nil
}

func readHeader(r io.Reader, h *BytecodeHeader) error {
	fields := []*uint32{
		&h.TypeCount, &h.MemberCount, &h.ConstantCount, &h.NamespaceCount,
		&h.TypedefCount, &h.VariableExportCount, &h.FunctionCount, &h.ModuleFunctionCount,
	}
	for _, f := range fields {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return err
		}
	}

	verBytes, err := readLengthPrefixed(r)
	if err != nil {
		return fmt.Errorf("format version: %w", err)
	}
	h.FormatVersion = strings.TrimRight(string(verBytes), "\x00")
	if h.FormatVersion == "" {
		h.FormatVersion = common.NullCVersion
	}

	return nil
}

// readLengthPrefixed reads a uint32 byte count followed by that many raw
// bytes, the framing this decoder uses for the variable-length string
// table and version string (spec.md §6 leaves framing of these two
// variable-length regions to the implementation).
func readLengthPrefixed(r io.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func readNamespaces(r io.Reader, n uint32) ([]ExternNamespaceInfo, error) {
	out := make([]ExternNamespaceInfo, n)
	for i := range out {
		if err := binary.Read(r, binary.LittleEndian, &out[i]); err != nil {
			return nil, fmt.Errorf("namespace %d: %w", i, err)
		}
	}
	return out, nil
}

func readTypes(r io.Reader, n uint32) ([]ExternTypeInfo, error) {
	out := make([]ExternTypeInfo, n)
	for i := range out {
		var raw struct {
			SubCat                uint8
			_                     [3]byte
			SubType               uint32
			ArrSize               uint32
			MemberCount           uint32
			MemberOffset          uint32
			ConstantCount         uint32
			NameHash              uint32
			NameOffset            uint32
			DefinitionOffset      uint32
			DefinitionOffsetStart uint32
			DefaultAlign          uint32
			Size                  uint32
			Kind                  uint8
			_                     [3]byte
			NamespaceHash         uint32
		}
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return nil, fmt.Errorf("type %d: %w", i, err)
		}
		out[i] = ExternTypeInfo{
			SubCat: subCat(raw.SubCat), SubType: raw.SubType, ArrSize: raw.ArrSize,
			MemberCount: raw.MemberCount, MemberOffset: raw.MemberOffset,
			ConstantCount: raw.ConstantCount, NameHash: raw.NameHash, NameOffset: raw.NameOffset,
			DefinitionOffset: raw.DefinitionOffset, DefinitionOffsetStart: raw.DefinitionOffsetStart,
			DefaultAlign: raw.DefaultAlign, Size: raw.Size, Kind: typeKind(raw.Kind),
			NamespaceHash: raw.NamespaceHash,
		}
	}
	return out, nil
}

func readMembers(r io.Reader, n uint32) ([]ExternMemberInfo, error) {
	out := make([]ExternMemberInfo, n)
	for i := range out {
		if err := binary.Read(r, binary.LittleEndian, &out[i]); err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
	}
	return out, nil
}

func readConstants(r io.Reader, n uint32) ([]ExternConstantInfo, error) {
	out := make([]ExternConstantInfo, n)
	for i := range out {
		if err := binary.Read(r, binary.LittleEndian, &out[i]); err != nil {
			return nil, fmt.Errorf("constant %d: %w", i, err)
		}
	}
	return out, nil
}

func readTypedefs(r io.Reader, n uint32) ([]ExternTypedefInfo, error) {
	out := make([]ExternTypedefInfo, n)
	for i := range out {
		if err := binary.Read(r, binary.LittleEndian, &out[i]); err != nil {
			return nil, fmt.Errorf("typedef %d: %w", i, err)
		}
	}
	return out, nil
}

func readVariables(r io.Reader, n uint32) ([]ExternVarInfo, error) {
	out := make([]ExternVarInfo, n)
	for i := range out {
		if err := binary.Read(r, binary.LittleEndian, &out[i]); err != nil {
			return nil, fmt.Errorf("variable %d: %w", i, err)
		}
	}
	return out, nil
}

func readFunctions(r io.Reader, n uint32) ([]ExternFuncInfo, error) {
	out := make([]ExternFuncInfo, n)
	for i := range out {
		var raw struct {
			NameOffset         uint32
			FuncType           uint32
			ParentType         uint32
			ContextType        uint32
			ParamCount         uint32
			ExplicitTypeCount  uint32
			FuncCat            uint8
			_                  [3]byte
			NameHash           uint32
			NamespaceHash      uint32
			GenericOffsetStart uint32
			GenericReturnType  uint32
			IsGenericInstance  uint8
			_                  [3]byte
		}
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return nil, fmt.Errorf("function %d: %w", i, err)
		}
		out[i] = ExternFuncInfo{
			NameOffset: raw.NameOffset, FuncType: raw.FuncType, ParentType: raw.ParentType,
			ContextType: raw.ContextType, ParamCount: raw.ParamCount,
			ExplicitTypeCount: raw.ExplicitTypeCount, FuncCat: funcCat(raw.FuncCat),
			NameHash: raw.NameHash, NamespaceHash: raw.NamespaceHash,
			GenericOffsetStart: raw.GenericOffsetStart, GenericReturnType: raw.GenericReturnType,
			IsGenericInstance: raw.IsGenericInstance != 0,
		}
	}
	return out, nil
}

// readLocals reads ExternLocalInfo rows until the length-prefixed block
// ends: unlike the other tables, the header carries no direct local count,
// so the count is itself length-prefixed ahead of the rows.
func readLocals(r io.Reader) ([]ExternLocalInfo, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("local count: %w", err)
	}
	out := make([]ExternLocalInfo, n)
	for i := range out {
		if err := binary.Read(r, binary.LittleEndian, &out[i]); err != nil {
			return nil, fmt.Errorf("local %d: %w", i, err)
		}
	}
	return out, nil
}
