package modimport

import (
	"testing"

	"nullc/scope"
	"nullc/types"
)

func TestInstallPrimitiveVariable(t *testing.T) {
	bc := &Bytecode{
		stringTable: []byte("int\x00x\x00"),
		Types: []ExternTypeInfo{
			{SubCat: subCatNone, NameOffset: 0},
		},
		Variables: []ExternVarInfo{
			{NameOffset: 4, Type: 0, Offset: 0},
		},
	}

	table := scope.NewTable()
	if err := Install(table.Root, bc, nil); err != nil {
		t.Fatalf("Install: %s", err)
	}

	v, ok := table.Root.LookupVariable("x", nil)
	if !ok {
		t.Fatalf("expected variable `x` to be installed")
	}
	if v.Type != types.Prim(types.KindInt) {
		t.Errorf("expected x to be typed int, got %s", v.Type.Repr())
	}
	if !v.Imported {
		t.Errorf("expected installed variable to be marked Imported")
	}
}

func TestInstallPointerToClass(t *testing.T) {
	bc := &Bytecode{
		stringTable: []byte("Node\x00int\x00next\x00value\x00n\x00"),
		Types: []ExternTypeInfo{
			{SubCat: subCatClass, NameOffset: 0, MemberCount: 2, MemberOffset: 0},
			{SubCat: subCatPointer, SubType: 0},
			{SubCat: subCatNone, NameOffset: 5},
		},
		Members: []ExternMemberInfo{
			{Type: 1, Offset: 0},
			{Type: 2, Offset: 4},
		},
		Variables: []ExternVarInfo{
			{NameOffset: 20, Type: 0, Offset: 0},
		},
	}

	table := scope.NewTable()
	if err := Install(table.Root, bc, nil); err != nil {
		t.Fatalf("Install: %s", err)
	}

	v, ok := table.Root.LookupVariable("n", nil)
	if !ok {
		t.Fatalf("expected variable `n` to be installed")
	}

	class, ok := v.Type.(*types.Class)
	if !ok {
		t.Fatalf("expected n to be typed as a class, got %T", v.Type)
	}
	if len(class.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(class.Members))
	}
}
