package modimport

import "testing"

func TestGraphCheckCyclesNoCycle(t *testing.T) {
	g := NewGraph()
	g.AddImport("main", "lib/a")
	g.AddImport("lib/a", "lib/b")

	if err := g.CheckCycles(); err != nil {
		t.Fatalf("unexpected cycle: %s", err)
	}
}

func TestGraphCheckCyclesDetectsCycle(t *testing.T) {
	g := NewGraph()
	g.AddImport("main", "lib/a")
	g.AddImport("lib/a", "lib/b")
	g.AddImport("lib/b", "main")

	if err := g.CheckCycles(); err == nil {
		t.Fatalf("expected an import cycle to be detected")
	}
}

func TestGraphOrderRespectsDependencies(t *testing.T) {
	g := NewGraph()
	g.AddImport("main", "lib/a")
	g.AddImport("lib/a", "lib/b")

	order := g.Order()

	pos := make(map[string]int, len(order))
	for i, m := range order {
		pos[m] = i
	}

	if pos["lib/b"] > pos["lib/a"] {
		t.Errorf("lib/b (a dependency) should load before lib/a, got order %v", order)
	}
	if pos["lib/a"] > pos["main"] {
		t.Errorf("lib/a (a dependency) should load before main, got order %v", order)
	}
}
