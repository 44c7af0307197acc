package ir

import "strings"

// GlobalVar is a module-level variable: a static initialized variable, a
// static uninitialized one (Val == nil), or (in a future cross-module
// import) an external one.
type GlobalVar struct {
	Name string
	Typ  Type
	Val  Value
}

func (gv *GlobalVar) Repr() string {
	sb := strings.Builder{}
	sb.WriteString("var @")
	sb.WriteString(gv.Name)
	sb.WriteRune(' ')
	sb.WriteString(gv.Typ.Repr())
	if gv.Val != nil {
		sb.WriteString(" = ")
		sb.WriteString(gv.Val.Repr())
	}
	return sb.String()
}

// VTable is a class's dynamic-dispatch table for one method name: a global
// table of function ids indexed by class type id (spec.md §9 design note,
// generalizing the `$vtbl<typeHash><methodName>` naming convention into an
// explicit (FuncType, MethodName) → table mapping instead of embedding the
// key in a symbol name).
type VTable struct {
	FuncType   Type
	MethodName string
	Entries    map[uint32]*Function // class type id -> overriding implementation
}

func NewVTable(funcType Type, methodName string) *VTable {
	return &VTable{FuncType: funcType, MethodName: methodName, Entries: map[uint32]*Function{}}
}

// Update installs fn as the override for classTypeID.
func (vt *VTable) Update(classTypeID uint32, fn *Function) {
	vt.Entries[classTypeID] = fn
}

func (vt *VTable) Repr() string {
	sb := strings.Builder{}
	sb.WriteString("vtable ")
	sb.WriteString(vt.MethodName)
	sb.WriteString(" : ")
	sb.WriteString(vt.FuncType.Repr())
	return sb.String()
}
