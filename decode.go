package jsonvalue

import (
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/KimNorgaard/go-jsonvalue/internal/mapper"
)

// Decoder reads and decodes a JSON value from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// Functional options can be provided to configure the decoding process,
// such as setting a maximum nesting depth with the MaxDepth option or
// bounding the input with MaxInputSize.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// DecodeValue reads the whole input and parses it into a Value tree. Text
// that is not valid JSON is reported as a *SyntaxError.
//
// Note: This is a non-streaming implementation. It reads the entire
// reader into memory first before parsing.
func (d *Decoder) DecodeValue() (*Value, error) {
	if d.r == nil {
		return nil, fmt.Errorf("jsonvalue: Decode(nil reader)")
	}
	o, err := newOptions(d.opts)
	if err != nil {
		return nil, err
	}
	data, err := readBounded(d.r, o.maxInputSize)
	if err != nil {
		return nil, err
	}
	v := parse(string(data), o.maxDepth)
	if !v.IsValid() {
		return nil, v.Err()
	}
	return v, nil
}

// Decode reads the input and stores the decoded value in the value pointed
// to by out. See Value.Decode for the conversion rules.
func (d *Decoder) Decode(out any) error {
	v, err := d.DecodeValue()
	if err != nil {
		return err
	}
	return v.Decode(out)
}

func readBounded(r io.Reader, maxInputSize int) ([]byte, error) {
	lr := io.LimitReader(r, int64(maxInputSize)+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, fmt.Errorf("jsonvalue: reading input: %w", err)
	}
	if len(data) > maxInputSize {
		return nil, fmt.Errorf("jsonvalue: input exceeds maximum size %d bytes", maxInputSize)
	}
	return data, nil
}

// Decode stores the contents of v in the Go value pointed to by out.
//
// Strings, booleans and numbers go into the matching Go kinds; integers
// also fill float targets, floats never fill integer targets. Arrays fill
// slices and fixed-size arrays of the same length, objects fill maps with
// string keys and structs. Struct members are matched by json tag or field
// name, falling back to a case-insensitive match. Null sets pointers,
// interfaces, maps and slices to nil and leaves other targets untouched.
// Empty interfaces receive the values returned by Interface. Targets
// implementing json.Unmarshaler, or encoding.TextUnmarshaler for strings,
// decode themselves. *Value and Value targets receive a copy of v.
func (v *Value) Decode(out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("jsonvalue: Decode(non-pointer %T or nil)", out)
	}
	if bad := v.firstInvalid(); bad != nil {
		return bad.Err()
	}
	return mapValue(v, rv.Elem())
}

func mapValue(v *Value, rv reflect.Value) error {
	switch rv.Type() {
	case valuePtrType:
		rv.Set(reflect.ValueOf(v.Copy()))
		return nil
	case valueType:
		return rv.Addr().Interface().(*Value).assign(v.Copy())
	}

	if v.typ == Null {
		switch rv.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
			rv.Set(reflect.Zero(rv.Type()))
		}
		return nil
	}

	// Attempt to use a custom unmarshaler if available.
	handled, err := tryCustomUnmarshal(v, rv)
	if err != nil || handled {
		return err
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
		if handled, err := tryCustomUnmarshal(v, rv); err != nil || handled {
			return err
		}
	}

	if rv.Kind() == reflect.Interface {
		if rv.NumMethod() != 0 {
			return fmt.Errorf("jsonvalue: cannot unmarshal into non-empty interface %s", rv.Type())
		}
		rv.Set(reflect.ValueOf(v.Interface()))
		return nil
	}
	if !rv.CanSet() {
		return fmt.Errorf("jsonvalue: cannot set value of type %s", rv.Type())
	}

	switch v.typ {
	case String:
		return mapString(v, rv)
	case Boolean:
		return mapBool(v, rv)
	case Integer:
		return mapInt(v, rv)
	case FloatingPoint:
		return mapFloat(v, rv)
	case Array:
		switch rv.Kind() {
		case reflect.Slice:
			return mapSlice(v, rv)
		case reflect.Array:
			return mapArray(v, rv)
		}
		return fmt.Errorf("jsonvalue: cannot unmarshal array into Go value of type %s", rv.Type())
	case Object:
		switch rv.Kind() {
		case reflect.Struct:
			return mapStruct(v, rv)
		case reflect.Map:
			return mapMap(v, rv)
		}
		return fmt.Errorf("jsonvalue: cannot unmarshal object into Go value of type %s", rv.Type())
	}
	return fmt.Errorf("jsonvalue: cannot unmarshal %s value", v.typ)
}

// tryCustomUnmarshal attempts to use json.Unmarshaler or
// encoding.TextUnmarshaler on rv. It returns true if a custom unmarshaler
// was found and used, in which case the caller should not proceed with
// default unmarshaling.
func tryCustomUnmarshal(v *Value, rv reflect.Value) (bool, error) {
	if !rv.CanAddr() {
		return false, nil
	}
	pv := rv.Addr()
	if !pv.CanInterface() {
		return false, nil
	}

	switch u := pv.Interface().(type) {
	case json.Unmarshaler:
		if err := u.UnmarshalJSON([]byte(v.String())); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	case encoding.TextUnmarshaler:
		// TextUnmarshaler can only be used on string values.
		if v.typ != String {
			return false, nil
		}
		if err := u.UnmarshalText([]byte(v.s)); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}
	return false, nil
}

func mapString(v *Value, rv reflect.Value) error {
	if rv.Kind() != reflect.String {
		return fmt.Errorf("jsonvalue: cannot unmarshal string into Go value of type %s", rv.Type())
	}
	rv.SetString(v.s)
	return nil
}

func mapBool(v *Value, rv reflect.Value) error {
	if rv.Kind() != reflect.Bool {
		return fmt.Errorf("jsonvalue: cannot unmarshal boolean into Go value of type %s", rv.Type())
	}
	rv.SetBool(v.b)
	return nil
}

func mapInt(v *Value, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(int64(v.i)) {
			return fmt.Errorf("jsonvalue: integer value %d overflows Go value of type %s", v.i, rv.Type())
		}
		rv.SetInt(int64(v.i))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if v.i < 0 || rv.OverflowUint(uint64(v.i)) {
			return fmt.Errorf("jsonvalue: integer value %d overflows Go value of type %s", v.i, rv.Type())
		}
		rv.SetUint(uint64(v.i))
		return nil
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(float64(v.i))
		return nil
	}
	return fmt.Errorf("jsonvalue: cannot unmarshal integer into Go value of type %s", rv.Type())
}

func mapFloat(v *Value, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		if rv.OverflowFloat(v.f) {
			return fmt.Errorf("jsonvalue: float value %g overflows Go value of type %s", v.f, rv.Type())
		}
		rv.SetFloat(v.f)
		return nil
	}
	return fmt.Errorf("jsonvalue: cannot unmarshal float into Go value of type %s", rv.Type())
}

func mapSlice(v *Value, rv reflect.Value) error {
	newSlice := reflect.MakeSlice(rv.Type(), len(v.arr), len(v.arr))
	for i, elem := range v.arr {
		if err := mapValue(elem, newSlice.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(newSlice)
	return nil
}

func mapArray(v *Value, rv reflect.Value) error {
	if rv.Len() != len(v.arr) {
		return fmt.Errorf("jsonvalue: cannot unmarshal array of length %d into Go array of length %d", len(v.arr), rv.Len())
	}
	for i, elem := range v.arr {
		if err := mapValue(elem, rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func mapMap(v *Value, rv reflect.Value) error {
	mapType := rv.Type()
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("jsonvalue: cannot unmarshal object into map with non-string key type %s", mapType.Key())
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	} else {
		rv.Clear()
	}
	elemType := mapType.Elem()
	for _, k := range v.Keys() {
		newVal := reflect.New(elemType).Elem()
		if err := mapValue(v.obj[k], newVal); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(k).Convert(mapType.Key()), newVal)
	}
	return nil
}

func mapStruct(v *Value, rv reflect.Value) error {
	fields := mapper.Cached(rv.Type())
	for _, k := range v.Keys() {
		f, ok := fields.Lookup(k)
		if !ok {
			continue
		}
		fieldVal, ok := fieldByIndexAlloc(rv, f.Index)
		if ok && fieldVal.CanSet() {
			if err := mapValue(v.obj[k], fieldVal); err != nil {
				return err
			}
		}
	}
	return nil
}

// fieldByIndexAlloc walks index like reflect.Value.FieldByIndex, allocating
// nil embedded struct pointers on the way. It reports false when a nil
// pointer cannot be allocated.
func fieldByIndexAlloc(rv reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				if !rv.CanSet() {
					return reflect.Value{}, false
				}
				rv.Set(reflect.New(rv.Type().Elem()))
			}
			rv = rv.Elem()
		}
		rv = rv.Field(x)
	}
	return rv, true
}
