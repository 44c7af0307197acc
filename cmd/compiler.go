// Package cmd is the nullc compiler driver: the phase sequencing the
// teacher's own cmd.Compiler uses (init -> resolve -> analyze -> codegen),
// narrowed to this repository's scope (init -> resolve imports -> analyze
// -> build IR -> optionally optimize), plus the `nullc` CLI that drives it.
package cmd

import (
	"fmt"

	"nullc/ast"
	"nullc/ir"
	"nullc/modimport"
	"nullc/report"
	"nullc/walk"
)

// SourceLoader turns a module's source root into its parsed syntax tree.
// The lexer and CST parser are out of scope for this repository (spec.md
// §1); a real CLI build wires a SourceLoader backed by an external parser.
// Compiler only ever calls this interface, so every phase after it
// (import resolution, analysis, IR construction) is fully exercised and
// testable against a fake loader that returns a hand-built *ast.Module.
type SourceLoader interface {
	Load(cfg *modimport.Config) (*ast.Module, error)
}

// Compiler holds the state of one compilation run: the module being built,
// where its dependencies are found, and how its source is obtained.
type Compiler struct {
	ModulePath string

	Config   *modimport.Config
	Provider modimport.Provider
	Loader   SourceLoader

	ctx    *report.CompilationContext
	module *walk.Module
}

// NewCompiler creates a compiler for the module rooted at modulePath, using
// loader to obtain its syntax tree and provider to resolve its imports.
func NewCompiler(modulePath string, loader SourceLoader, provider modimport.Provider) *Compiler {
	if loader == nil {
		loader = noParserLoader{}
	}
	return &Compiler{ModulePath: modulePath, Loader: loader, Provider: provider}
}

// Analyze runs every phase short of IR construction: loading the module
// descriptor, resolving imports, and walking the module's syntax tree
// (spec.md §§3–5). It returns false once report.AnyErrors() is true,
// mirroring the teacher's own short-circuiting driver
// (InitPackage -> ResolveSymbols -> WalkPackages, each gated on the last).
func (c *Compiler) Analyze() bool {
	report.BeginPhase("load module")
	cfg, ok := modimport.LoadModuleConfig(c.ModulePath)
	if !ok {
		report.EndPhase()
		return false
	}
	c.Config = cfg
	report.EndPhase()

	if c.Provider == nil {
		c.Provider = modimport.NewFileProvider(cfg)
	}

	report.BeginPhase("parse")
	mod, err := c.Loader.Load(cfg)
	report.EndPhase()
	if err != nil {
		report.ReportFatal("failed to load module `%s`: %s", cfg.Name, err.Error())
		return false
	}

	c.ctx = &report.CompilationContext{AbsPath: c.ModulePath, ReprPath: cfg.Name}

	report.BeginPhase("analyze")
	w := walk.NewWalker(c.ctx)
	c.module = w.WalkModule(mod, c.Provider)
	report.EndPhase()

	return report.ShouldProceed()
}

// Build runs Analyze and, if it succeeds, lowers the analyzed module to IR
// (spec.md §4.6), applying the peephole pass when optimize is true.
// Code generation past the IR stage is out of scope (spec.md §1).
func (c *Compiler) Build(optimize bool) (*ir.Module, bool) {
	if !c.Analyze() {
		return nil, false
	}

	report.BeginPhase("build-ir")
	irMod := ir.LowerModule(c.module)
	report.EndPhase()

	if optimize {
		report.BeginPhase("optimize")
		ir.PeepholeOptimize(irMod)
		report.EndPhase()
	}

	return irMod, true
}

// String renders a short summary of the compiled module, used by the CLI's
// plain (non-`--dump-ir`) success path.
func (c *Compiler) String() string {
	if c.Config == nil {
		return "<unanalyzed>"
	}
	return fmt.Sprintf("module %s (%s)", c.Config.Name, c.ModulePath)
}
