package jsonvalue

import (
	"bytes"
	"fmt"
	"io"
)

// Marshal returns the JSON encoding of x. x may be a *Value or any Go value
// accepted by ValueOf. Options select pretty printing and escaping.
func Marshal(x any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.Encode(x); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses the JSON-encoded data and stores the result in the value
// pointed to by out.
func Unmarshal(data []byte, out any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	v := parse(string(data), o.maxDepth)
	if !v.IsValid() {
		return v.Err()
	}
	return v.Decode(out)
}

// Encoder writes JSON values to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the JSON encoding of x to the stream. Trees that contain an
// Invalid value are rejected with an *InvalidValueError.
func (e *Encoder) Encode(x any) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}
	v, ok := x.(*Value)
	if !ok || v == nil {
		if v, err = ValueOf(x); err != nil {
			return err
		}
	}
	if bad := v.firstInvalid(); bad != nil {
		return &InvalidValueError{Text: bad.s}
	}
	if _, err := io.WriteString(e.w, v.ToString(o.encoding)); err != nil {
		return fmt.Errorf("jsonvalue: writing output: %w", err)
	}
	return nil
}

// MarshalJSON implements json.Marshaler with the compact encoding.
func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	if bad := v.firstInvalid(); bad != nil {
		return nil, &InvalidValueError{Text: bad.s}
	}
	return []byte(v.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler. It replaces the contents of v
// with the parsed data. A v produced by a failed parse returns
// ErrInvalidTarget and is left untouched.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed := FromString(string(data))
	if !parsed.IsValid() {
		return parsed.Err()
	}
	return v.assign(parsed)
}
