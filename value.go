package jsonvalue

import (
	"maps"
	"math"
	"slices"
	"strings"
	"unicode/utf8"
)

// Type identifies which kind of JSON value a Value holds.
type Type int

const (
	// Invalid marks text that could not be decoded. It is also the zero Type.
	Invalid Type = iota
	Null
	Boolean
	String
	Integer
	FloatingPoint
	Array
	Object
)

var typeNames = [...]string{
	Invalid:       "invalid",
	Null:          "null",
	Boolean:       "boolean",
	String:        "string",
	Integer:       "integer",
	FloatingPoint: "floating point",
	Array:         "array",
	Object:        "object",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// Value is a node in a JSON value tree. A Value exclusively owns its
// children; pointers returned by At and Get are borrowed views that stay
// attached to the tree, so mutating them updates the tree.
//
// The zero Value is Invalid. A Value is not safe for concurrent use when one
// of the goroutines mutates it or renders it with ToString.
type Value struct {
	typ Type

	b   bool
	s   string // String payload, or the source text of an Invalid value
	i   int32
	f   float64
	arr []*Value
	obj map[string]*Value

	err    *SyntaxError
	parent *Value
	cache  encodingCache
}

// NewNull returns a new null value.
func NewNull() *Value {
	return &Value{typ: Null}
}

// NewBool returns a new boolean value.
func NewBool(b bool) *Value {
	return &Value{typ: Boolean, b: b}
}

// NewString returns a new string value. Byte sequences that are not valid
// UTF-8 are replaced by U+FFFD.
func NewString(s string) *Value {
	return &Value{typ: String, s: validUTF8(s)}
}

// NewInt returns a new integer value.
func NewInt(i int32) *Value {
	return &Value{typ: Integer, i: i}
}

// NewFloat returns a new floating-point value.
func NewFloat(f float64) *Value {
	return &Value{typ: FloatingPoint, f: f}
}

// NewArray returns a new array holding copies of elems. Nil elements are
// skipped.
func NewArray(elems ...*Value) *Value {
	v := &Value{typ: Array, arr: make([]*Value, 0, len(elems))}
	for _, e := range elems {
		if e != nil {
			v.arr = append(v.arr, v.adopt(e.Copy()))
		}
	}
	return v
}

// NewObject returns a new, empty object.
func NewObject() *Value {
	return &Value{typ: Object, obj: make(map[string]*Value)}
}

func newInvalid(text string, err *SyntaxError) *Value {
	return &Value{typ: Invalid, s: text, err: err}
}

func validUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}

// Copy returns a deep copy of v. The copy is detached from any tree and
// starts with an empty encoding cache.
func (v *Value) Copy() *Value {
	if v == nil {
		return nil
	}
	c := &Value{typ: v.typ, b: v.b, s: v.s, i: v.i, f: v.f, err: v.err}
	switch v.typ {
	case Array:
		c.arr = make([]*Value, len(v.arr))
		for i, e := range v.arr {
			c.arr[i] = c.adopt(e.Copy())
		}
	case Object:
		c.obj = make(map[string]*Value, len(v.obj))
		for k, e := range v.obj {
			c.obj[k] = c.adopt(e.Copy())
		}
	}
	return c
}

// Type returns the kind of v. A nil Value is Invalid.
func (v *Value) Type() Type {
	if v == nil {
		return Invalid
	}
	return v.typ
}

// IsValid reports whether v holds a decoded JSON value.
func (v *Value) IsValid() bool {
	return v.Type() != Invalid
}

// Err returns the reason an Invalid value could not be decoded, or nil for
// any other value.
func (v *Value) Err() error {
	if v.IsValid() {
		return nil
	}
	if v == nil || v.err == nil {
		return &SyntaxError{Msg: "invalid value"}
	}
	return v.err
}

// Size returns the number of elements of an array or members of an object.
// It is 0 for every other kind.
func (v *Value) Size() int {
	switch v.Type() {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	}
	return 0
}

// Has reports whether v is an object with a member named key.
func (v *Value) Has(key string) bool {
	if v.Type() != Object {
		return false
	}
	_, ok := v.obj[key]
	return ok
}

// Keys returns the member names of an object in sorted order.
func (v *Value) Keys() []string {
	if v.Type() != Object {
		return nil
	}
	return slices.Sorted(maps.Keys(v.obj))
}

// At returns the array element at index i. The boolean is false when v is
// not an array or i is out of range.
func (v *Value) At(i int) (*Value, bool) {
	if v.Type() != Array || i < 0 || i >= len(v.arr) {
		return nil, false
	}
	return v.arr[i], true
}

// Get returns the object member named key. The boolean is false when v is
// not an object or has no such member.
func (v *Value) Get(key string) (*Value, bool) {
	if v.Type() != Object {
		return nil, false
	}
	e, ok := v.obj[key]
	return e, ok
}

// AsBool returns the payload of a boolean value, or false.
func (v *Value) AsBool() bool {
	if v.Type() != Boolean {
		return false
	}
	return v.b
}

// AsString returns the payload of a string value, or "".
func (v *Value) AsString() string {
	if v.Type() != String {
		return ""
	}
	return v.s
}

// AsInt returns the payload of an integer value. A floating-point value is
// truncated toward zero and clamped to the int32 range; NaN gives 0.
// Every other kind gives 0.
func (v *Value) AsInt() int32 {
	switch v.Type() {
	case Integer:
		return v.i
	case FloatingPoint:
		switch {
		case math.IsNaN(v.f):
			return 0
		case v.f >= math.MaxInt32:
			return math.MaxInt32
		case v.f <= math.MinInt32:
			return math.MinInt32
		}
		return int32(v.f)
	}
	return 0
}

// AsFloat returns the payload of a floating-point value, or an integer value
// widened to float64. Every other kind gives 0.
func (v *Value) AsFloat() float64 {
	switch v.Type() {
	case FloatingPoint:
		return v.f
	case Integer:
		return float64(v.i)
	}
	return 0
}

// Equal reports whether v and other hold the same JSON value. Arrays compare
// element by element in order, objects compare by key set and then member by
// member. Two Invalid values are equal when they retain the same source text.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case Invalid, String:
		return v.s == other.s
	case Null:
		return true
	case Boolean:
		return v.b == other.b
	case Integer:
		return v.i == other.i
	case FloatingPoint:
		return v.f == other.f
	case Array:
		return slices.EqualFunc(v.arr, other.arr, (*Value).Equal)
	case Object:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k := range v.obj {
			if _, ok := other.obj[k]; !ok {
				return false
			}
		}
		for k, e := range v.obj {
			if !e.Equal(other.obj[k]) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts v into plain Go values: nil, bool, string, int64,
// float64, []any and map[string]any. Invalid values give nil.
func (v *Value) Interface() any {
	switch v.Type() {
	case Boolean:
		return v.b
	case String:
		return v.s
	case Integer:
		return int64(v.i)
	case FloatingPoint:
		return v.f
	case Array:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.Interface()
		}
		return out
	}
	return nil
}

// firstInvalid returns the first Invalid value found in the subtree rooted
// at v, or nil.
func (v *Value) firstInvalid() *Value {
	switch v.Type() {
	case Invalid:
		return v
	case Array:
		for _, e := range v.arr {
			if bad := e.firstInvalid(); bad != nil {
				return bad
			}
		}
	case Object:
		for _, k := range v.Keys() {
			if bad := v.obj[k].firstInvalid(); bad != nil {
				return bad
			}
		}
	}
	return nil
}
