package jsonvalue

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/KimNorgaard/go-jsonvalue/internal/mapper"
)

var (
	valueType    = reflect.TypeFor[Value]()
	valuePtrType = reflect.TypeFor[*Value]()
)

// ValueOf builds a Value tree from a Go value.
//
// Strings, booleans, floats and integers map onto the matching scalar kinds;
// integers outside the int32 range are an error. Slices and arrays become
// arrays, maps with string keys and structs become objects. Struct fields
// honour `json:"name,omitempty"` tags and "-". Nil pointers, interfaces,
// slices and maps become null. Types implementing json.Marshaler or
// encoding.TextMarshaler are asked to encode themselves. A *Value is copied.
func ValueOf(x any) (*Value, error) {
	return valueOf(reflect.ValueOf(x))
}

func valueOf(v reflect.Value) (*Value, error) {
	if !v.IsValid() {
		return NewNull(), nil
	}
	switch v.Type() {
	case valuePtrType:
		if v.IsNil() {
			return NewNull(), nil
		}
		return v.Interface().(*Value).Copy(), nil
	case valueType:
		src := v.Interface().(Value)
		return src.Copy(), nil
	}
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return NewNull(), nil
	}

	// Check the value itself and a pointer to the value, to handle both
	// value and pointer receivers.
	if nv, ok, err := marshalCustom(v); ok {
		return nv, err
	}
	if v.Kind() != reflect.Pointer && v.CanInterface() {
		pv := reflect.New(v.Type())
		pv.Elem().Set(v)
		if nv, ok, err := marshalCustom(pv); ok {
			return nv, err
		}
	}

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return NewNull(), nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return NewString(v.String()), nil
	case reflect.Bool:
		return NewBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, fmt.Errorf("jsonvalue: cannot marshal %s %d (overflows 32-bit integer)", v.Type(), n)
		}
		return NewInt(int32(n)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := v.Uint()
		if n > math.MaxInt32 {
			return nil, fmt.Errorf("jsonvalue: cannot marshal %s %d (overflows 32-bit integer)", v.Type(), n)
		}
		return NewInt(int32(n)), nil
	case reflect.Float32, reflect.Float64:
		return NewFloat(v.Float()), nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return NewNull(), nil
		}
		arr := &Value{typ: Array, arr: make([]*Value, 0, v.Len())}
		for i := 0; i < v.Len(); i++ {
			elem, err := valueOf(v.Index(i))
			if err != nil {
				return nil, err
			}
			arr.arr = append(arr.arr, arr.adopt(elem))
		}
		return arr, nil
	case reflect.Map:
		if v.IsNil() {
			return NewNull(), nil
		}
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("jsonvalue: map key type must be a string, got %s", v.Type().Key())
		}
		obj := NewObject()
		iter := v.MapRange()
		for iter.Next() {
			member, err := valueOf(iter.Value())
			if err != nil {
				return nil, err
			}
			obj.obj[validUTF8(iter.Key().String())] = obj.adopt(member)
		}
		return obj, nil
	case reflect.Struct:
		obj := NewObject()
		for _, f := range mapper.Cached(v.Type()).List {
			fv, err := v.FieldByIndexErr(f.Index)
			if err != nil {
				// Promoted through a nil embedded pointer.
				continue
			}
			if f.OmitEmpty && isEmptyValue(fv) {
				continue
			}
			member, err := valueOf(fv)
			if err != nil {
				return nil, err
			}
			obj.obj[validUTF8(f.Name)] = obj.adopt(member)
		}
		return obj, nil
	}
	return nil, fmt.Errorf("jsonvalue: unsupported type for marshaling: %s", v.Type())
}

// marshalCustom encodes v through json.Marshaler or encoding.TextMarshaler.
// The boolean reports whether v implements either.
func marshalCustom(v reflect.Value) (*Value, bool, error) {
	if v.Type().NumMethod() == 0 || !v.CanInterface() {
		return nil, false, nil
	}
	switch m := v.Interface().(type) {
	case json.Marshaler:
		b, err := m.MarshalJSON()
		if err != nil {
			return nil, true, &MarshalerError{Type: v.Type(), Err: err}
		}
		nv := FromString(string(b))
		if !nv.IsValid() {
			return nil, true, &MarshalerError{Type: v.Type(), Err: nv.Err()}
		}
		return nv, true, nil
	case encoding.TextMarshaler:
		b, err := m.MarshalText()
		if err != nil {
			return nil, true, &MarshalerError{Type: v.Type(), Err: err}
		}
		return NewString(string(b)), true, nil
	}
	return nil, false, nil
}

// isEmptyValue reports whether the value v is empty.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
