package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"nullc/ast"
	"nullc/modimport"
)

// emptyLoader returns an empty, import-free module, enough to exercise the
// full Analyze/Build phase sequence without a real parser.
type emptyLoader struct{}

func (emptyLoader) Load(cfg *modimport.Config) (*ast.Module, error) {
	return &ast.Module{}, nil
}

func writeModuleDescriptor(t *testing.T, dir string) {
	t.Helper()
	content := "name = \"testmod\"\nnullc-version = \"0.1.0\"\n"
	if err := os.WriteFile(filepath.Join(dir, "nullc-mod.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write module descriptor: %s", err)
	}
}

func TestCompilerAnalyzeEmptyModule(t *testing.T) {
	dir := t.TempDir()
	writeModuleDescriptor(t, dir)

	c := NewCompiler(dir, emptyLoader{}, modimport.MemProvider{})
	if !c.Analyze() {
		t.Fatalf("expected analysis of an empty module to succeed")
	}
	if c.Config == nil || c.Config.Name != "testmod" {
		t.Fatalf("expected module config to be loaded, got %+v", c.Config)
	}
}

func TestCompilerBuildEmptyModule(t *testing.T) {
	dir := t.TempDir()
	writeModuleDescriptor(t, dir)

	c := NewCompiler(dir, emptyLoader{}, modimport.MemProvider{})
	irMod, ok := c.Build(true)
	if !ok {
		t.Fatalf("expected build of an empty module to succeed")
	}
	if irMod.TopLevel() == nil {
		t.Fatalf("expected a top-level function even for an empty module")
	}
}
