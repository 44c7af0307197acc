package walk

import (
	"nullc/ast"
	"nullc/modimport"
	"nullc/report"
	"nullc/scope"
	"nullc/types"
)

// Walker holds everything the analyzer needs while descending a single
// module's syntax tree: the scope table, the compilation context used for
// diagnostics, and a handful of per-function-body pieces of state.
type Walker struct {
	Table *Table
	ctx   *report.CompilationContext

	enclosingFunc   *scope.Function // nil at module scope
	enclosingReturn types.DataType  // nil until the first return/yield fixes it
	isCoroutine     bool

	lambdaCounter int

	// reanalysisCutoff is non-nil while a generic instantiation is being
	// reanalyzed via scope.Table.SwitchToScopeAtPoint, and nil during an
	// ordinary forward walk. Every Lookup* call in this package reads it
	// through cutoff() so that a reused scope's position-filtered view
	// (spec.md §4.2) actually takes effect during reanalysis instead of
	// always seeing every symbol the scope has since accumulated.
	reanalysisCutoff *report.TextPosition

	// pendingInstances collects the FuncDef for every generic instance
	// ReanalyzeFunction builds mid-expression (spec.md §4.5); WalkModule
	// appends them to the module's node list once the top-level pass
	// finishes so that LowerModule finds them.
	pendingInstances []*FuncDef
}

// cutoff returns the lookup cutoff position to use right now: nil during an
// ordinary forward walk (every visited symbol is visible), or the point a
// generic instantiation is being reanalyzed at.
func (w *Walker) cutoff() *report.TextPosition {
	return w.reanalysisCutoff
}

// Table is scope.Table, aliased so other files in this package can refer to
// it without importing package scope directly in every signature; kept as
// a type alias (not a new type) so values still interoperate with
// package scope's own API.
type Table = scope.Table

// NewWalker creates a walker rooted at a fresh global scope.
func NewWalker(ctx *report.CompilationContext) *Walker {
	return &Walker{Table: scope.NewTable(), ctx: ctx}
}

// WalkModule analyzes every top-level node of m, catching any
// report.CompileError raised while walking an individual definition so
// that one bad definition does not abort the rest of the module
// (spec.md §7, grounded on the teacher's per-definition CatchErrors
// discipline). provider resolves m.Imports before the body is walked, so
// that every imported symbol is visible to the whole module regardless of
// where in the file the `import` clause appears; passing a nil provider is
// only valid when m.Imports is empty.
func (w *Walker) WalkModule(m *ast.Module, provider modimport.Provider) *Module {
	w.resolveImports(m, provider)

	out := &Module{base: newBase(m.Pos(), nil), Scope: w.Table.Root}

	for _, n := range m.Expressions {
		if node := w.walkTopLevel(n); node != nil {
			out.Nodes = append(out.Nodes, node)
		}
	}

	for _, inst := range w.pendingInstances {
		out.Nodes = append(out.Nodes, inst)
	}

	return out
}

// resolveImports loads and installs every module named in m.Imports into
// the walker's global scope, ahead of walking any of the module's own
// definitions (spec.md §6, "From the module-import provider"). A missing
// module or a malformed bytecode blob is reported as report.ErrImport and
// the import is simply skipped, the same per-definition-isolation
// discipline walkTopLevel uses for a bad local definition: one bad import
// does not stop the rest of the module from being checked.
func (w *Walker) resolveImports(m *ast.Module, provider modimport.Provider) {
	for _, imp := range m.Imports {
		if provider == nil {
			report.ReportImportError(imp.Path, "no module-import provider configured")
			continue
		}

		bc, ok := provider.Load(imp.Path)
		if !ok {
			report.ReportImportError(imp.Path, "module not found")
			continue
		}

		if err := modimport.Install(w.Table.Root, bc, m.Pos()); err != nil {
			report.ReportImportError(imp.Path, err.Error())
		}
	}
}

func (w *Walker) walkTopLevel(n ast.Node) (result Node) {
	defer func() {
		if x := recover(); x != nil {
			if cerr, ok := x.(*report.CompileError); ok {
				report.ReportCompileError(w.ctx, cerr.Kind, cerr.Position, cerr.Message)
				result = nil
				return
			}
			panic(x)
		}
	}()

	return w.walkNode(n)
}

// walkNode dispatches a single syntax node to its specific walk* routine.
// Every concrete ast.Node variant named in spec.md §6 has a case here or in
// the def/stmt/expr files this dispatches into.
func (w *Walker) walkNode(n ast.Node) Node {
	switch v := n.(type) {
	case *ast.VarDef:
		return w.walkVarDef(v)
	case *ast.FuncDef:
		return w.walkFuncDef(v)
	case *ast.ClassDef:
		return w.walkClassDef(v)
	case *ast.EnumDef:
		return w.walkEnumDef(v)
	case *ast.NamespaceDef:
		return w.walkNamespaceDef(v)
	case *ast.TypeDef:
		return w.walkTypeDef(v)
	case *ast.Block:
		return w.walkBlock(v)
	case *ast.IfElse:
		return w.walkIfElse(v)
	case *ast.For:
		return w.walkFor(v)
	case *ast.ForEach:
		return w.walkForEach(v)
	case *ast.While:
		return w.walkWhile(v)
	case *ast.DoWhile:
		return w.walkDoWhile(v)
	case *ast.Switch:
		return w.walkSwitch(v)
	case *ast.Break:
		return w.walkBreak(v)
	case *ast.Continue:
		return w.walkContinue(v)
	case *ast.Return:
		return w.walkReturn(v)
	case ast.Expr:
		return w.walkExpr(v)
	default:
		report.Raise(report.ErrName, n.Pos(), "internal: no walker for syntax node %T", n)
		return nil
	}
}

// error is the shorthand the rest of the package uses to raise a fatal,
// non-local diagnostic (spec.md §7).
func (w *Walker) error(pos *report.TextPosition, kind report.ErrorKind, msg string, args ...interface{}) {
	report.Raise(kind, pos, msg, args...)
}
