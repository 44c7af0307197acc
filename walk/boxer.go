package walk

import (
	"nullc/report"
	"nullc/scope"
	"nullc/types"
)

// BoxAutoRef implements overload.Boxer: it wraps arg in the auto-ref
// existential cast used to pack trailing variadic arguments
// (spec.md §4.5 step 3).
func (w *Walker) BoxAutoRef(arg Node) Node {
	return w.CreateCast(arg, types.GetAutoRef(), true)
}

// NullLiteral implements overload.Boxer for the zero-tail-args case.
func (w *Walker) NullLiteral(pos *report.TextPosition) Node {
	return NewLiteral(pos, types.Prim(types.KindNullPtr), LitNull)
}

// EvalDefault implements overload.Boxer: it walks a formal's declared
// default expression in the current scope. priorArgs is not used, so the
// earlier arguments are not visible to the default expression.
func (w *Walker) EvalDefault(formal scope.FuncArg, priorArgs []Node) Node {
	return w.walkExpr(formal.Default)
}
