// Package mapper describes how Go struct fields map onto JSON object members.
package mapper

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Field represents a cached struct field.
type Field struct {
	Name      string
	Index     []int
	Tagged    bool
	OmitEmpty bool
}

// Fields is the member layout of one struct type.
type Fields struct {
	// List holds the fields in declaration order, embedded fields inlined.
	List []Field

	byName map[string]int
	byFold map[string]int
}

// fieldCache caches the layout of every struct type seen so far.
var fieldCache sync.Map // map[reflect.Type]*Fields

// Cached parses the json struct tags of t, which must be a struct type, and
// caches the result. Unexported fields and fields tagged "-" are skipped.
// Fields of embedded structs and struct pointers are promoted unless a
// shallower field has the same name.
func Cached(t reflect.Type) *Fields {
	if f, ok := fieldCache.Load(t); ok {
		return f.(*Fields)
	}

	type entry struct {
		field Field
		depth int
	}
	byName := make(map[string]entry)

	var walk func(t reflect.Type, idx []int, depth int)
	walk = func(t reflect.Type, idx []int, depth int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			tag := sf.Tag.Get("json")
			if tag == "-" {
				continue
			}
			name, opts, _ := strings.Cut(tag, ",")
			index := append(slices.Clone(idx), i)

			if sf.Anonymous && name == "" {
				ft := sf.Type
				if ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct {
					walk(ft, index, depth+1)
					continue
				}
			}
			if !sf.IsExported() {
				continue
			}

			f := Field{Name: sf.Name, Index: index}
			if name != "" {
				f.Name = name
				f.Tagged = true
			}
			for opts != "" {
				var opt string
				opt, opts, _ = strings.Cut(opts, ",")
				if opt == "omitempty" {
					f.OmitEmpty = true
				}
			}

			if prev, ok := byName[f.Name]; ok && prev.depth <= depth {
				continue
			}
			byName[f.Name] = entry{field: f, depth: depth}
		}
	}
	walk(t, nil, 0)

	fs := &Fields{
		byName: make(map[string]int, len(byName)),
		byFold: make(map[string]int, len(byName)),
	}
	for _, e := range byName {
		fs.List = append(fs.List, e.field)
	}
	slices.SortFunc(fs.List, func(a, b Field) int {
		return slices.Compare(a.Index, b.Index)
	})
	for i, f := range fs.List {
		fs.byName[f.Name] = i
		lower := strings.ToLower(f.Name)
		if _, ok := fs.byFold[lower]; !ok {
			fs.byFold[lower] = i
		}
	}

	actual, _ := fieldCache.LoadOrStore(t, fs)
	return actual.(*Fields)
}

// Lookup finds the field for an object member name. It first attempts a
// case-sensitive match, then falls back to a case-insensitive one.
func (fs *Fields) Lookup(name string) (Field, bool) {
	if i, ok := fs.byName[name]; ok {
		return fs.List[i], true
	}
	if i, ok := fs.byFold[strings.ToLower(name)]; ok {
		return fs.List[i], true
	}
	return Field{}, false
}
