package walk

import (
	"strings"

	"nullc/ast"
	"nullc/constexpr"
	"nullc/report"
	"nullc/types"
)

// resolveType lowers a syntax-level type label to a resolved types.DataType
// (spec.md §6's "TypeExpr... lowered into resolved types.DataType values").
func (w *Walker) resolveType(te ast.TypeExpr) types.DataType {
	switch t := te.(type) {
	case *ast.TypeSimple:
		return w.resolveSimpleType(t)
	case *ast.TypeAuto:
		return types.Prim(types.KindAuto)
	case *ast.TypeGeneric:
		return types.GetGeneric(t.Name)
	case *ast.TypeReference:
		return types.GetReference(w.resolveType(t.Elem))
	case *ast.TypeArray:
		elem := w.resolveType(t.Elem)
		if t.Unsized {
			return types.GetUnsizedArray(elem)
		}
		size := constexpr.EvalRequired(w.walkExpr(t.Size), "array size")
		return types.GetArray(elem, int(size.IntVal))
	case *ast.TypeFunction:
		args := make([]types.DataType, len(t.Args))
		for i, a := range t.Args {
			args[i] = w.resolveType(a)
		}
		return types.GetFunction(w.resolveType(t.Return), args)
	case *ast.TypeGenericInstance:
		return w.resolveGenericInstance(t)
	case *ast.TypeOf:
		return w.resolveTypeof(t)
	default:
		report.Raise(report.ErrType, te.Pos(), "internal: no resolver for type expression %T", te)
		return nil
	}
}

func (w *Walker) resolveSimpleType(t *ast.TypeSimple) types.DataType {
	name := strings.Join(t.Path, "::")
	switch name {
	case "void":
		return types.Prim(types.KindVoid)
	case "bool":
		return types.Prim(types.KindBool)
	case "char":
		return types.Prim(types.KindChar)
	case "short":
		return types.Prim(types.KindShort)
	case "int":
		return types.Prim(types.KindInt)
	case "long":
		return types.Prim(types.KindLong)
	case "float":
		return types.Prim(types.KindFloat)
	case "double":
		return types.Prim(types.KindDouble)
	case "typeid":
		return types.Prim(types.KindTypeId)
	}

	if dt, ok := w.Table.Current.LookupType(name, w.cutoff()); ok {
		return dt
	}

	report.Raise(report.ErrName, t.Pos(), "undefined type `%s`", name)
	return nil
}

func (w *Walker) resolveGenericInstance(t *ast.TypeGenericInstance) types.DataType {
	name := strings.Join(t.Path, "::")
	proto := types.LookupGenericClassProto(name)
	if proto == nil {
		report.Raise(report.ErrName, t.Pos(), "`%s` is not a generic class", name)
	}

	args := make([]types.DataType, len(t.Args))
	for i, a := range t.Args {
		args[i] = w.resolveType(a)
	}

	defer func() {
		if x := recover(); x != nil {
			if x == types.ErrDepthExceeded {
				report.Raise(report.ErrGeneric, t.Pos(), "%s", types.ErrDepthExceeded.Error())
			}
			panic(x)
		}
	}()
	inst := types.GetOrBuildGenericClassInstance(proto, args, w)
	return inst.Class
}

// resolveTypeof lowers `typeof(expr)` by speculatively walking expr through
// report.Try so that a failure during the speculative pass never reaches
// the global reporter (spec.md §5).
func (w *Walker) resolveTypeof(t *ast.TypeOf) types.DataType {
	result, err := report.Try(func() Node {
		return w.walkExpr(t.Operand)
	})
	if err != nil {
		report.Raise(report.ErrType, t.Pos(), "cannot determine type of expression: %s", err.Message)
	}
	return result.Type()
}
