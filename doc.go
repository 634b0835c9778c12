/*
Package jsonvalue provides an in-memory JSON value model together with a
parser that turns text into a value tree and an encoder that turns a tree
back into text.

A Value is a tagged node: null, boolean, string, 32-bit integer,
floating-point number, array or object. Text that cannot be decoded does not
produce an error from FromString; it produces an Invalid value that retains
the offending text, and Value.Err explains what went wrong.

	v := jsonvalue.FromString(`{"name": "gopher", "tags": ["a", "b"]}`)
	if !v.IsValid() {
		// handle v.Err()
	}
	tags, _ := v.Get("tags")
	tags.Add(jsonvalue.NewString("c"))
	fmt.Println(v) // {"name":"gopher","tags":["a","b","c"]}

Numbers without a fraction or exponent decode as Integer and must fit in an
int32; everything else decodes as FloatingPoint, rounded to the nearest
double. Object members are kept in a map and always rendered in sorted key
order.

Trees can also be built directly with NewNull, NewBool, NewString, NewInt,
NewFloat, NewArray and NewObject.

# Encoding

ToString renders a tree either compactly or pretty printed, optionally
escaping every non-ASCII codepoint:

	out := v.ToString(jsonvalue.EncodingOptions{
		PrettyPrint:         true,
		SpacePerIndentation: 2,
	})

Every value caches its last rendering. Mutating a value, directly or through
a child pointer obtained from At or Get, drops the cache of that value and of
all its ancestors.

# Go values

For converting between trees and Go values, ValueOf and Value.Decode follow
the conventions of encoding/json, including `json:"name,omitempty"` struct
tags. Marshal, Unmarshal, Encoder and Decoder wrap them for byte slices and
streams, and *Value implements json.Marshaler and json.Unmarshaler.
*/
package jsonvalue
