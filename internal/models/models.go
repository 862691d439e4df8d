package models

import "strconv"

// Kind is the type of a JSON value as reported by the parser.
type Kind int

const (
	KindNone Kind = iota
	KindInt
	KindLongLong
	KindFloat
	KindString
	KindBool
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNone:     "None",
	KindInt:      "Int",
	KindLongLong: "LongLong",
	KindFloat:    "Float",
	KindString:   "String",
	KindBool:     "Bool",
	KindArray:    "Array",
	KindObject:   "Object",
}

// String returns the name printed for the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// IsScalar reports whether values of this kind carry a payload and no children.
func (k Kind) IsScalar() bool {
	switch k {
	case KindInt, KindLongLong, KindFloat, KindString, KindBool:
		return true
	}
	return false
}

// Value is one node of a parsed JSON document.
// Object members carry their key as the tag; array elements have no tag.
// A nil *Value behaves like a value of kind KindNone.
type Value struct {
	kind     Kind
	tag      string
	hasTag   bool
	raw      string // number literal as written
	i        int64
	f        float64
	s        string
	b        bool
	children []*Value
}

// Kind returns the value's kind.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNone
	}
	return v.kind
}

// Tag returns the member key of the value, if any.
func (v *Value) Tag() (string, bool) {
	if v == nil {
		return "", false
	}
	return v.tag, v.hasTag
}

// TagIs reports whether the value has a tag equal to key.
func (v *Value) TagIs(key string) bool {
	tag, ok := v.Tag()
	return ok && tag == key
}

// Int returns the integer payload of a number value, or 0 for any other kind.
func (v *Value) Int() int64 {
	if v == nil {
		return 0
	}
	return v.i
}

// Float returns a number value as a float64, or 0 for any other kind.
func (v *Value) Float() float64 {
	if v == nil {
		return 0
	}
	return v.f
}

// Str returns the payload of a String value, or "" for any other kind.
func (v *Value) Str() string {
	if v == nil || v.kind != KindString {
		return ""
	}
	return v.s
}

// Bool returns the payload of a Bool value, or false for any other kind.
func (v *Value) Bool() bool {
	if v == nil {
		return false
	}
	return v.b
}

// Raw returns the literal text of a number value.
func (v *Value) Raw() string {
	if v == nil {
		return ""
	}
	return v.raw
}

// Children returns the elements of an Array or the members of an Object.
// The returned slice must not be modified.
func (v *Value) Children() []*Value {
	if v == nil {
		return nil
	}
	return v.children
}

// Members returns the members of an Object in source order.
func (v *Value) Members() []*Value {
	if v.Kind() != KindObject {
		return nil
	}
	return v.children
}

// Len returns the number of children.
func (v *Value) Len() int {
	return len(v.Children())
}

// Find returns the first member of an Object whose tag equals key.
// It returns nil when no member matches or v is not an Object.
func (v *Value) Find(key string) *Value {
	for _, member := range v.Members() {
		if member.TagIs(key) {
			return member
		}
	}
	return nil
}

// NewNull creates a value of kind KindNone.
func NewNull() *Value { return &Value{kind: KindNone} }

// NewInt creates an Int value.
func NewInt(i int64) *Value {
	return &Value{kind: KindInt, i: i, f: float64(i), raw: strconv.FormatInt(i, 10)}
}

// NewFloat creates a Float value.
func NewFloat(f float64) *Value {
	return &Value{kind: KindFloat, f: f, raw: strconv.FormatFloat(f, 'g', -1, 64)}
}

// NewNumber creates a number value that keeps raw as its literal text.
func NewNumber(kind Kind, raw string, i int64, f float64) *Value {
	return &Value{kind: kind, raw: raw, i: i, f: f}
}

// NewString creates a String value.
func NewString(s string) *Value { return &Value{kind: KindString, s: s} }

// NewBool creates a Bool value.
func NewBool(b bool) *Value { return &Value{kind: KindBool, b: b} }

// NewArray creates an Array holding elements in order. Element tags are cleared.
func NewArray(elements ...*Value) *Value {
	children := make([]*Value, 0, len(elements))
	for _, e := range elements {
		if e == nil {
			e = NewNull()
		}
		e.tag, e.hasTag = "", false
		children = append(children, e)
	}
	return &Value{kind: KindArray, children: children}
}

// NewObject creates an Object from members built with Member.
func NewObject(members ...*Value) *Value {
	children := make([]*Value, 0, len(members))
	for _, m := range members {
		if m != nil {
			children = append(children, m)
		}
	}
	return &Value{kind: KindObject, children: children}
}

// Member tags v with key so it can be placed in an Object.
func Member(key string, v *Value) *Value {
	if v == nil {
		v = NewNull()
	}
	v.tag, v.hasTag = key, true
	return v
}

// IntermediateRepresentation is the parser's view of a whole document.
type IntermediateRepresentation struct {
	Root        *Value
	RootIsArray bool // True if the root of the JSON is an array vs an object
}
