package jsonvalue

import "slices"

// Add appends a copy of e to the array v. Since the copy is taken first,
// v.Add(v) appends a snapshot of v. Add does nothing when v is not an array
// or e is nil.
func (v *Value) Add(e *Value) {
	if v.Type() != Array || e == nil {
		return
	}
	v.arr = append(v.arr, v.adopt(e.Copy()))
	v.invalidate()
}

// Insert places a copy of e at index in the array v, shifting later elements
// up. The index is clamped to [0, Size()].
func (v *Value) Insert(e *Value, index int) {
	if v.Type() != Array || e == nil {
		return
	}
	index = max(0, min(index, len(v.arr)))
	v.arr = slices.Insert(v.arr, index, v.adopt(e.Copy()))
	v.invalidate()
}

// RemoveAt deletes the array element at index. Out of range indices are
// ignored.
func (v *Value) RemoveAt(index int) {
	if v.Type() != Array || index < 0 || index >= len(v.arr) {
		return
	}
	v.arr[index].parent = nil
	v.arr = slices.Delete(v.arr, index, index+1)
	v.invalidate()
}

// Set stores a copy of e as the member key of the object v, replacing any
// previous member with that name.
func (v *Value) Set(key string, e *Value) {
	if v.Type() != Object || e == nil {
		return
	}
	key = validUTF8(key)
	if old, ok := v.obj[key]; ok {
		old.parent = nil
	}
	v.obj[key] = v.adopt(e.Copy())
	v.invalidate()
}

// RemoveKey deletes the member key of the object v, if present.
func (v *Value) RemoveKey(key string) {
	if v.Type() != Object {
		return
	}
	old, ok := v.obj[key]
	if !ok {
		return
	}
	old.parent = nil
	delete(v.obj, key)
	v.invalidate()
}

func (v *Value) adopt(child *Value) *Value {
	child.parent = v
	return child
}

// invalidate drops the cached rendering of v and of every ancestor. Every
// mutation goes through here.
func (v *Value) invalidate() {
	for p := v; p != nil; p = p.parent {
		p.cache = encodingCache{}
	}
}

// assign replaces the contents of v with src, keeping v's place in its tree.
// A value that failed to parse stays Invalid; only the zero Value may be
// filled in.
func (v *Value) assign(src *Value) error {
	if v.typ == Invalid && v.err != nil {
		return ErrInvalidTarget
	}
	parent := v.parent
	*v = Value{typ: src.typ, b: src.b, s: src.s, i: src.i, f: src.f, err: src.err}
	v.parent = parent
	switch src.typ {
	case Array:
		v.arr = src.arr
		for _, e := range v.arr {
			e.parent = v
		}
	case Object:
		v.obj = src.obj
		for _, e := range v.obj {
			e.parent = v
		}
	}
	v.invalidate()
	return nil
}
