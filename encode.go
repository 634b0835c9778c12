package jsonvalue

import (
	"math"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-jsonvalue/internal/escape"
)

// EncodingOptions controls how ToString renders a Value.
type EncodingOptions struct {
	// EscapeNonASCII writes every codepoint above U+007F as a \u escape.
	EscapeNonASCII bool
	// PrettyPrint puts every array element and object member on its own
	// line, indented by SpacePerIndentation spaces per nesting level.
	PrettyPrint bool
	// SpacePerIndentation is the indentation width used by PrettyPrint.
	SpacePerIndentation int
	// DeleteCache discards every cached rendering in the tree before
	// encoding.
	DeleteCache bool
}

// DefaultEncodingOptions returns compact, unescaped encoding options with an
// indentation width of DefaultIndent.
func DefaultEncodingOptions() EncodingOptions {
	return EncodingOptions{SpacePerIndentation: DefaultIndent}
}

type cacheKey struct {
	escapeNonASCII bool
	pretty         bool
	indent         int
	depth          int
}

type encodingCache struct {
	valid bool
	key   cacheKey
	text  string
}

// ToString renders v as JSON text. Object members are written in sorted key
// order. An Invalid value renders as "(Invalid JSON: <text>)", which is not
// JSON.
//
// Renderings are cached per value and reused as long as neither the value
// nor any of its descendants has been mutated and the options match.
func (v *Value) ToString(opts EncodingOptions) string {
	if v == nil {
		return "null"
	}
	return v.encode(opts, 0)
}

// String renders v with DefaultEncodingOptions.
func (v *Value) String() string {
	return v.ToString(DefaultEncodingOptions())
}

func (v *Value) encode(opts EncodingOptions, depth int) string {
	if v.typ == Invalid {
		return "(Invalid JSON: " + v.s + ")"
	}
	key := v.cacheKey(opts, depth)
	if !opts.DeleteCache && v.cache.valid && v.cache.key == key {
		return v.cache.text
	}
	e := &encoder{opts: opts, depth: depth}
	e.writeValue(v)
	text := e.buf.String()
	v.cache = encodingCache{valid: true, key: key, text: text}
	return text
}

// cacheKey reduces opts to the parameters the rendering of v depends on.
func (v *Value) cacheKey(opts EncodingOptions, depth int) cacheKey {
	k := cacheKey{escapeNonASCII: opts.EscapeNonASCII}
	if opts.PrettyPrint && (v.typ == Array || v.typ == Object) {
		k.pretty = true
		k.indent = opts.SpacePerIndentation
		k.depth = depth
	}
	return k
}

type encoder struct {
	opts  EncodingOptions
	depth int
	buf   strings.Builder
}

func (e *encoder) write(s string) {
	e.buf.WriteString(s)
}

func (e *encoder) writeIndent(depth int) {
	if e.opts.SpacePerIndentation <= 0 {
		return
	}
	e.write(strings.Repeat(" ", depth*e.opts.SpacePerIndentation))
}

func (e *encoder) writeValue(v *Value) {
	switch v.typ {
	case Null:
		e.write("null")
	case Boolean:
		e.write(strconv.FormatBool(v.b))
	case String:
		e.writeString(v.s)
	case Integer:
		e.write(strconv.FormatInt(int64(v.i), 10))
	case FloatingPoint:
		e.write(formatFloat(v.f))
	case Array:
		e.writeArray(v)
	case Object:
		e.writeObject(v)
	}
}

func (e *encoder) writeString(s string) {
	e.buf.WriteByte('"')
	e.buf.Write(escape.Append(nil, s, e.opts.EscapeNonASCII))
	e.buf.WriteByte('"')
}

// formatFloat writes the shortest text that reads back as f. A ".0" is
// appended to integral values so they decode as floating point again.
// JSON has no spelling for NaN or the infinities; they are written as null.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// writeChild renders a child one level deeper, going through the child's
// own cache.
func (e *encoder) writeChild(child *Value) {
	e.write(child.encode(e.opts, e.depth+1))
}

func (e *encoder) writeArray(v *Value) {
	if len(v.arr) == 0 {
		e.write("[]")
		return
	}
	if e.opts.PrettyPrint {
		e.writePrettyArray(v)
		return
	}
	e.writeCompactArray(v)
}

func (e *encoder) writePrettyArray(v *Value) {
	e.write("[\n")
	for i, elem := range v.arr {
		e.writeIndent(e.depth + 1)
		e.writeChild(elem)
		if i < len(v.arr)-1 {
			e.write(",")
		}
		e.write("\n")
	}
	e.writeIndent(e.depth)
	e.write("]")
}

func (e *encoder) writeCompactArray(v *Value) {
	e.write("[")
	for i, elem := range v.arr {
		if i > 0 {
			e.write(",")
		}
		e.writeChild(elem)
	}
	e.write("]")
}

func (e *encoder) writeObject(v *Value) {
	if len(v.obj) == 0 {
		e.write("{}")
		return
	}
	if e.opts.PrettyPrint {
		e.writePrettyObject(v)
		return
	}
	e.writeCompactObject(v)
}

func (e *encoder) writePrettyObject(v *Value) {
	keys := v.Keys()
	e.write("{\n")
	for i, k := range keys {
		e.writeIndent(e.depth + 1)
		e.writeString(k)
		e.write(": ")
		e.writeChild(v.obj[k])
		if i < len(keys)-1 {
			e.write(",")
		}
		e.write("\n")
	}
	e.writeIndent(e.depth)
	e.write("}")
}

func (e *encoder) writeCompactObject(v *Value) {
	e.write("{")
	for i, k := range v.Keys() {
		if i > 0 {
			e.write(",")
		}
		e.writeString(k)
		e.write(":")
		e.writeChild(v.obj[k])
	}
	e.write("}")
}
