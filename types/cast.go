package types

// CastKind is the closed set of concrete implicit-conversion kinds
// CreateCast chooses among (spec.md §4.4). The type universe only owns the
// enum and the structural predicates below; picking a kind for a given
// (source, target) pair is package walk's job, since several cases need
// overload-set lookups the type universe has no access to.
type CastKind int

const (
	CastNone CastKind = iota
	CastNumerical
	CastPtrToBool
	CastUnsizedToBool
	CastFunctionRefToBool
	CastNullToPtr
	CastNullToAutoPtr
	CastNullToUnsized
	CastNullToAutoArray
	CastNullToFunction
	CastArrayToUnsized
	CastArrayPtrToUnsizedPtr
	CastArrayPtrToUnsized
	CastReinterpret
	CastAnyToPtr
	CastPtrToAutoPtr
	CastAutoPtrToPtr
	CastUnsizedToAutoArray
	CastArrayToAutoArray
	CastFunctionRefMatch
)

var castKindNames = map[CastKind]string{
	CastNone:                 "none",
	CastNumerical:            "numerical",
	CastPtrToBool:            "ptr->bool",
	CastUnsizedToBool:        "unsized->bool",
	CastFunctionRefToBool:    "function ref->bool",
	CastNullToPtr:            "null->ptr",
	CastNullToAutoPtr:        "null->auto ref",
	CastNullToUnsized:        "null->unsized",
	CastNullToAutoArray:      "null->auto[]",
	CastNullToFunction:       "null->function",
	CastArrayToUnsized:       "array->unsized",
	CastArrayPtrToUnsizedPtr: "array ref->unsized ref",
	CastArrayPtrToUnsized:    "array ref->unsized",
	CastReinterpret:          "reinterpret",
	CastAnyToPtr:             "any->ptr",
	CastPtrToAutoPtr:         "ptr->auto ref",
	CastAutoPtrToPtr:         "auto ref->ptr",
	CastUnsizedToAutoArray:   "unsized->auto[]",
	CastArrayToAutoArray:     "array->auto[]",
	CastFunctionRefMatch:     "function ref match",
}

func (k CastKind) String() string {
	if s, ok := castKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsNullPtr reports whether t is the NullPtr marker type.
func IsNullPtr(t DataType) bool {
	p, ok := t.(*Primitive)
	return ok && p.kind == KindNullPtr
}

// IsRef reports whether t is a Ref(_), returning its element type.
func IsRef(t DataType) (*Ref, bool) {
	r, ok := t.(*Ref)
	return r, ok
}

// IsClassRef reports whether t is a Ref to a Class, returning the class.
func IsClassRef(t DataType) (*Class, bool) {
	r, ok := t.(*Ref)
	if !ok {
		return nil, false
	}
	c, ok := r.Elem.(*Class)
	return c, ok
}
