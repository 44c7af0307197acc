package modimport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nullc/common"
	"nullc/report"
	"nullc/util"
)

// Provider is the module-import provider contract of spec.md §6: given a
// module path (the dotted/slash form written after `import`), return either
// its decoded bytecode blob or report that it was not found. Analysis code
// never touches the filesystem directly; it always goes through a Provider,
// so a future in-memory or network-backed provider can stand in for tests
// without touching walk/scope at all.
type Provider interface {
	Load(modPath string) (*Bytecode, bool)
}

// FileProvider resolves a module path to a precompiled bytecode blob by
// searching cfg.SearchPaths in order, the same "first directory that has it
// wins" discipline the teacher's own source-file resolver uses.
type FileProvider struct {
	cfg *Config
}

// NewFileProvider builds a Provider backed by cfg's search paths.
func NewFileProvider(cfg *Config) *FileProvider {
	return &FileProvider{cfg: cfg}
}

// Load implements Provider. modPath is turned into a relative file path by
// replacing its `::`-style namespace separators with OS path separators and
// appending common.BytecodeFileExt.
func (p *FileProvider) Load(modPath string) (*Bytecode, bool) {
	rel := filepath.Join(strings.Split(modPath, "::")...) + common.BytecodeFileExt

	for _, dir := range p.searchDirs() {
		full := filepath.Join(dir, rel)
		f, err := os.Open(full)
		if err != nil {
			continue
		}

		bc, err := Decode(f)
		f.Close()
		if err != nil {
			report.ReportImportError(full, "malformed bytecode blob for module `%s`: %s", modPath, err.Error())
			return nil, false
		}
		return bc, true
	}

	return nil, false
}

// searchDirs resolves cfg.SearchPaths to absolute directories, the module's
// own root always searched first and duplicates (a search path that
// resolves to the root, or that's repeated in the descriptor) dropped so
// Load never opens the same directory's blob twice.
func (p *FileProvider) searchDirs() []string {
	abs := util.Map(p.cfg.SearchPaths, func(sp string) string {
		if filepath.IsAbs(sp) {
			return sp
		}
		return filepath.Join(p.cfg.AbsPath, sp)
	})

	dirs := []string{p.cfg.AbsPath}
	for _, d := range abs {
		if !util.Contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// MemProvider is an in-memory Provider, for tests and for modules resolved
// within the same build (no round trip through a bytecode blob needed).
type MemProvider map[string]*Bytecode

// Load implements Provider.
func (m MemProvider) Load(modPath string) (*Bytecode, bool) {
	bc, ok := m[modPath]
	return bc, ok
}

// ErrNotFound is the error value for "no such module", for callers that need
// to distinguish it from a lower-level I/O failure already reported through
// report.ReportImportError. Nothing in this package returns it itself.
var ErrNotFound = fmt.Errorf("module not found")
