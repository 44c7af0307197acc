package ir

import "strings"

// Module is the IR builder's output: a types vector, a vtables vector, a
// functions list whose last entry is the implicit top-level function, and a
// parallel globals list for module-level variables (spec.md §6 "To the code
// emitter / interpreter").
type Module struct {
	Name string

	Types     []Type
	VTables   []*VTable
	Globals   []*GlobalVar
	Functions []*Function
}

func NewModule(name string) *Module {
	return &Module{Name: name}
}

// TopLevel returns the implicit top-level function, the last entry of
// Functions, or nil if none has been added yet.
func (m *Module) TopLevel() *Function {
	if len(m.Functions) == 0 {
		return nil
	}
	return m.Functions[len(m.Functions)-1]
}

// AddType interns t into the module's type vector if it isn't already
// present by identity, and returns its index.
func (m *Module) AddType(t Type) int {
	for i, existing := range m.Types {
		if existing == t {
			return i
		}
	}
	m.Types = append(m.Types, t)
	return len(m.Types) - 1
}

func (m *Module) AddFunction(f *Function) { m.Functions = append(m.Functions, f) }

func (m *Module) AddGlobal(g *GlobalVar) { m.Globals = append(m.Globals, g) }

func (m *Module) VTableFor(funcType Type, methodName string) *VTable {
	for _, vt := range m.VTables {
		if vt.FuncType == funcType && vt.MethodName == methodName {
			return vt
		}
	}
	vt := NewVTable(funcType, methodName)
	m.VTables = append(m.VTables, vt)
	return vt
}

func (m *Module) Repr() string {
	sb := strings.Builder{}

	for _, g := range m.Globals {
		sb.WriteString(g.Repr())
		sb.WriteRune('\n')
	}
	for _, vt := range m.VTables {
		sb.WriteString(vt.Repr())
		sb.WriteRune('\n')
	}
	sb.WriteRune('\n')

	for _, f := range m.Functions {
		sb.WriteString(f.Repr())
		sb.WriteRune('\n')
	}

	return sb.String()
}
