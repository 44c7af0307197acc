package modimport

import (
	"fmt"

	"nullc/report"
	"nullc/scope"
	"nullc/types"
)

// Install decodes bc's type table into concrete nullc types.DataType values
// and registers bc's variables and functions in sc as imported symbols
// (spec.md §6 "From the module-import provider"); the types themselves are
// built but not defined in sc. Every installed scope.Variable/scope.Function
// entry carries Imported = true, the
// same flag a cross-module symbol gets set by the teacher's own resolver
// when it pulls a public symbol in from another package
// (resolve/imports.go's "update imported symbol to mirror symbol from
// other package").
func Install(sc *scope.Scope, bc *Bytecode, pos *report.TextPosition) error {
	r := &resolver{bc: bc, built: make([]types.DataType, len(bc.Types))}

	for i := range bc.Types {
		if _, err := r.resolve(uint32(i)); err != nil {
			return fmt.Errorf("modimport: type %d: %w", i, err)
		}
	}

	for _, v := range bc.Variables {
		typ, err := r.resolve(v.Type)
		if err != nil {
			return fmt.Errorf("modimport: variable `%s`: %w", bc.String(v.NameOffset), err)
		}

		sc.DefineVariable(&scope.Variable{
			Name:     bc.String(v.NameOffset),
			Type:     typ,
			Region:   scope.RegionGlobal,
			Offset:   int(v.Offset),
			Imported: true,
			DefPos:   pos,
		})
	}

	localCursor := 0
	for _, f := range bc.Functions {
		funcType, err := r.resolve(f.FuncType)
		if err != nil {
			return fmt.Errorf("modimport: function `%s`: %w", bc.String(f.NameOffset), err)
		}
		ft, ok := funcType.(*types.Function)
		if !ok {
			return fmt.Errorf("modimport: function `%s`: funcType index does not resolve to a function type", bc.String(f.NameOffset))
		}

		// Parameter names/defaults are not carried by ExternFuncInfo itself;
		// each function consumes ParamCount rows of the locals table in
		// table order, through a cursor shared across the function table.
		args := make([]scope.FuncArg, 0, f.ParamCount)
		for j := uint32(0); j < f.ParamCount && localCursor < len(bc.Locals); j++ {
			local := bc.Locals[localCursor]
			localCursor++

			argType, err := r.resolve(local.Type)
			if err != nil {
				return fmt.Errorf("modimport: function `%s` param %d: %w", bc.String(f.NameOffset), j, err)
			}
			args = append(args, scope.FuncArg{
				Name:       bc.String(local.NameOffset),
				Type:       argType,
				IsExplicit: local.IsExplicit(),
			})
		}

		sc.DefineFunction(&scope.Function{
			Name:        bc.String(f.NameOffset),
			Type:        ft,
			Args:        args,
			IsCoroutine: f.FuncCat == funcCatCoroutine,
			Imported:    true,
		})
	}

	return nil
}

// resolver memoizes type-table index -> types.DataType construction, since
// an ExternTypeInfo's subType may reference any other index in the table
// regardless of declaration order.
type resolver struct {
	bc    *Bytecode
	built []types.DataType
	wip   map[uint32]*types.Class // classes mid-construction, for self-reference
}

func (r *resolver) resolve(idx uint32) (types.DataType, error) {
	if int(idx) >= len(r.bc.Types) {
		return nil, fmt.Errorf("type index %d out of range (%d entries)", idx, len(r.bc.Types))
	}
	if r.built[idx] != nil {
		return r.built[idx], nil
	}
	if r.wip != nil {
		if c, ok := r.wip[idx]; ok {
			return c, nil
		}
	}

	t := &r.bc.Types[idx]
	switch t.SubCat {
	case subCatNone:
		dt, err := primitiveByName(r.bc.String(t.NameOffset))
		if err != nil {
			return nil, err
		}
		r.built[idx] = dt
		return dt, nil

	case subCatPointer:
		elem, err := r.resolve(t.SubType)
		if err != nil {
			return nil, err
		}
		dt := types.GetReference(elem)
		r.built[idx] = dt
		return dt, nil

	case subCatArray:
		elem, err := r.resolve(t.SubType)
		if err != nil {
			return nil, err
		}
		var dt types.DataType
		if t.ArrSize == unsizedArraySize {
			dt = types.GetUnsizedArray(elem)
		} else {
			dt = types.GetArray(elem, int(t.ArrSize))
		}
		r.built[idx] = dt
		return dt, nil

	case subCatFunction:
		ret, err := r.resolve(t.SubType)
		if err != nil {
			return nil, err
		}
		args := make([]types.DataType, 0, t.MemberCount)
		for i := uint32(0); i < t.MemberCount; i++ {
			m := r.bc.Members[t.MemberOffset+i]
			argType, err := r.resolve(m.Type)
			if err != nil {
				return nil, err
			}
			args = append(args, argType)
		}
		dt := types.GetFunction(ret, args)
		r.built[idx] = dt
		return dt, nil

	case subCatClass:
		return r.resolveClass(idx, t)

	default:
		return nil, fmt.Errorf("unknown subCat %d", t.SubCat)
	}
}

func (r *resolver) resolveClass(idx uint32, t *ExternTypeInfo) (types.DataType, error) {
	name := r.bc.String(t.NameOffset)
	class := types.DeclareClass(name, false, nil)

	if r.wip == nil {
		r.wip = make(map[uint32]*types.Class)
	}
	r.wip[idx] = class
	defer delete(r.wip, idx)

	members := make([]types.Member, 0, t.MemberCount)
	for i := uint32(0); i < t.MemberCount; i++ {
		m := r.bc.Members[t.MemberOffset+i]
		memberType, err := r.resolve(m.Type)
		if err != nil {
			return nil, err
		}
		members = append(members, types.Member{
			Name:   fmt.Sprintf("_%d", i),
			Type:   memberType,
			Offset: int(m.Offset),
		})
	}
	class.Finalize(members, nil)

	r.built[idx] = class
	return class, nil
}

// primitiveNames maps a bytecode type's bare name to its Kind, since
// subCatNone carries no category tag of its own beyond "not composite"
// (spec.md §6).
var primitiveNames = map[string]types.Kind{
	"void": types.KindVoid, "bool": types.KindBool, "char": types.KindChar,
	"short": types.KindShort, "int": types.KindInt, "long": types.KindLong,
	"float": types.KindFloat, "double": types.KindDouble,
	"typeid": types.KindTypeId, "function": types.KindFunctionId,
}

func primitiveByName(name string) (types.DataType, error) {
	k, ok := primitiveNames[name]
	if !ok {
		return nil, fmt.Errorf("unrecognized primitive type name %q", name)
	}
	return types.Prim(k), nil
}
