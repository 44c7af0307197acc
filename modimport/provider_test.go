package modimport

import (
	"reflect"
	"testing"
)

func TestFileProviderSearchDirsDedupesAndResolves(t *testing.T) {
	cfg := &Config{
		AbsPath:     "/root",
		SearchPaths: []string{".", "vendor", "/abs/path", "vendor"},
	}
	p := NewFileProvider(cfg)

	got := p.searchDirs()
	want := []string{"/root", "/root/vendor", "/abs/path"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("searchDirs() = %v, want %v", got, want)
	}
}

func TestMemProviderLoad(t *testing.T) {
	bc := &Bytecode{}
	m := MemProvider{"lib/a": bc}

	if got, ok := m.Load("lib/a"); !ok || got != bc {
		t.Errorf("expected lib/a to resolve to the registered blob")
	}
	if _, ok := m.Load("lib/missing"); ok {
		t.Errorf("expected lib/missing to be absent")
	}
}
