package jsonvalue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	require.Equal(t, "invalid", Invalid.String())
	require.Equal(t, "floating point", FloatingPoint.String())
	require.Equal(t, "object", Object.String())
	require.Equal(t, "unknown", Type(42).String())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		value    *Value
		expected Type
	}{
		{"null", NewNull(), Null},
		{"bool", NewBool(true), Boolean},
		{"string", NewString("x"), String},
		{"int", NewInt(3), Integer},
		{"float", NewFloat(1.5), FloatingPoint},
		{"array", NewArray(), Array},
		{"object", NewObject(), Object},
		{"zero value", &Value{}, Invalid},
		{"nil", nil, Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.value.Type())
			require.Equal(t, tt.expected != Invalid, tt.value.IsValid())
		})
	}
}

func TestNewStringReplacesInvalidUTF8(t *testing.T) {
	v := NewString("a\xffb")
	require.Equal(t, "a�b", v.AsString())
}

func TestNewArrayCopiesElements(t *testing.T) {
	elem := NewArray(NewInt(1))
	arr := NewArray(elem, nil, NewString("s"))
	require.Equal(t, 2, arr.Size())

	elem.Add(NewInt(2))
	first, ok := arr.At(0)
	require.True(t, ok)
	require.Equal(t, 1, first.Size())
}

func TestCoercions(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		require.True(t, NewBool(true).AsBool())
		require.False(t, NewInt(1).AsBool())
	})
	t.Run("string", func(t *testing.T) {
		require.Equal(t, "hi", NewString("hi").AsString())
		require.Equal(t, "", NewInt(1).AsString())
	})
	t.Run("int", func(t *testing.T) {
		require.Equal(t, int32(7), NewInt(7).AsInt())
		require.Equal(t, int32(2), NewFloat(2.9).AsInt())
		require.Equal(t, int32(-2), NewFloat(-2.9).AsInt())
		require.Equal(t, int32(math.MaxInt32), NewFloat(1e20).AsInt())
		require.Equal(t, int32(math.MinInt32), NewFloat(-1e20).AsInt())
		require.Equal(t, int32(0), NewFloat(math.NaN()).AsInt())
		require.Equal(t, int32(0), NewString("5").AsInt())
	})
	t.Run("float", func(t *testing.T) {
		require.Equal(t, 2.5, NewFloat(2.5).AsFloat())
		require.Equal(t, 26.0, NewInt(26).AsFloat())
		require.Equal(t, 0.0, NewNull().AsFloat())
	})
}

func TestQueries(t *testing.T) {
	obj := FromString(`{"value": 26, "": "Ammar", "list": [1, 2, 3]}`)
	require.Equal(t, Object, obj.Type())
	require.Equal(t, 3, obj.Size())
	require.True(t, obj.Has("value"))
	require.True(t, obj.Has(""))
	require.False(t, obj.Has("missing"))
	require.Equal(t, []string{"", "list", "value"}, obj.Keys())

	value, ok := obj.Get("value")
	require.True(t, ok)
	require.Equal(t, int32(26), value.AsInt())

	_, ok = obj.Get("missing")
	require.False(t, ok)

	list, _ := obj.Get("list")
	elem, ok := list.At(2)
	require.True(t, ok)
	require.Equal(t, int32(3), elem.AsInt())
	_, ok = list.At(3)
	require.False(t, ok)
	_, ok = list.At(-1)
	require.False(t, ok)

	// Lookups with the wrong kind report not found.
	_, ok = list.Get("x")
	require.False(t, ok)
	_, ok = obj.At(0)
	require.False(t, ok)
	require.Nil(t, list.Keys())
	require.Zero(t, NewString("abc").Size())
	require.False(t, list.Has("x"))
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  *Value
		equal bool
	}{
		{"null", NewNull(), NewNull(), true},
		{"kind mismatch", NewInt(1), NewFloat(1), false},
		{"bool", NewBool(true), NewBool(true), true},
		{"int differs", NewInt(1), NewInt(2), false},
		{"string", NewString("a"), NewString("a"), true},
		{"array order", FromString("[1,2]"), FromString("[2,1]"), false},
		{"array", FromString("[1,[2]]"), FromString("[1, [2]]"), true},
		{"array length", FromString("[1]"), FromString("[1,1]"), false},
		{"object order free", FromString(`{"a":1,"b":2}`), FromString(`{"b":2,"a":1}`), true},
		{"object keys differ", FromString(`{"a":1}`), FromString(`{"b":1}`), false},
		{"object values differ", FromString(`{"a":1}`), FromString(`{"a":2}`), false},
		{"invalid same text", FromString("nope"), FromString(" nope "), true},
		{"invalid other text", FromString("nope"), FromString("nah"), false},
		{"nil and value", nil, NewNull(), false},
		{"nil and nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.equal, tt.a.Equal(tt.b))
			require.Equal(t, tt.equal, tt.b.Equal(tt.a))
		})
	}
}

func TestCopyIsDeep(t *testing.T) {
	orig := FromString(`{"a":[1,{"b":true}]}`)
	c := orig.Copy()
	require.True(t, orig.Equal(c))

	a, _ := c.Get("a")
	a.Add(NewInt(3))
	require.False(t, orig.Equal(c))
	require.Equal(t, `{"a":[1,{"b":true}]}`, orig.String())
	require.Equal(t, `{"a":[1,{"b":true},3]}`, c.String())
}

func TestAddSelfAppendsSnapshot(t *testing.T) {
	arr := FromString("[26,50]")
	arr.Add(arr)
	require.Equal(t, "[26,50,[26,50]]", arr.String())

	// The appended element is not aliased to its source.
	arr.Add(NewInt(1))
	require.Equal(t, "[26,50,[26,50],1]", arr.String())
}

func TestInsertClampsIndex(t *testing.T) {
	arr := FromString("[1,2]")
	arr.Insert(NewInt(0), -5)
	arr.Insert(NewInt(9), 100)
	arr.Insert(NewInt(5), 2)
	require.Equal(t, "[0,1,5,2,9]", arr.String())
}

func TestRemoveAt(t *testing.T) {
	arr := FromString("[1,2,3]")
	arr.RemoveAt(1)
	require.Equal(t, "[1,3]", arr.String())
	arr.RemoveAt(5)
	arr.RemoveAt(-1)
	require.Equal(t, "[1,3]", arr.String())
}

func TestSetAndRemoveKey(t *testing.T) {
	obj := NewObject()
	obj.Set("b", NewInt(1))
	obj.Set("a", NewString("x"))
	obj.Set("b", NewBool(false))
	require.Equal(t, `{"a":"x","b":false}`, obj.String())

	obj.RemoveKey("a")
	obj.RemoveKey("missing")
	require.Equal(t, `{"b":false}`, obj.String())
}

func TestMutatorsIgnoreKindMismatch(t *testing.T) {
	s := NewString("s")
	s.Add(NewInt(1))
	s.Insert(NewInt(1), 0)
	s.RemoveAt(0)
	s.Set("k", NewInt(1))
	s.RemoveKey("k")
	require.Equal(t, `"s"`, s.String())

	arr := NewArray()
	arr.Add(nil)
	arr.Set("k", NewInt(1))
	require.Equal(t, "[]", arr.String())

	obj := NewObject()
	obj.Set("k", nil)
	obj.Add(NewInt(1))
	require.Equal(t, "{}", obj.String())
}

func TestMutatingBorrowedChildInvalidatesAncestors(t *testing.T) {
	root := FromString(`{"outer":{"inner":[1]}}`)
	require.Equal(t, `{"outer":{"inner":[1]}}`, root.String())
	require.True(t, root.cache.valid)

	outer, _ := root.Get("outer")
	inner, _ := outer.Get("inner")
	inner.Add(NewInt(2))

	require.False(t, root.cache.valid)
	require.False(t, outer.cache.valid)
	require.Equal(t, `{"outer":{"inner":[1,2]}}`, root.String())
}

func TestRemovedChildIsDetached(t *testing.T) {
	root := FromString(`[[1]]`)
	child, _ := root.At(0)
	root.RemoveAt(0)
	require.Equal(t, "[]", root.String())

	child.Add(NewInt(2))
	require.True(t, root.cache.valid)
	require.Equal(t, "[]", root.String())
}

func TestInterface(t *testing.T) {
	v := FromString(`{"a":[1,2.5,"s",true,null],"b":{}}`)
	require.Equal(t, map[string]any{
		"a": []any{int64(1), 2.5, "s", true, nil},
		"b": map[string]any{},
	}, v.Interface())
	require.Nil(t, FromString("bad").Interface())
}
