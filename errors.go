package jsonvalue

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
)

// A SyntaxError describes why a piece of text could not be decoded. It is
// attached to every Invalid value produced by the parser.
type SyntaxError struct {
	// Msg describes the innermost failure.
	Msg string
	// Text is the trimmed text the failure was detected in.
	Text string
	// Err is the underlying lexer, escape or scanner error, if any.
	Err error
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString("jsonvalue: ")
	b.WriteString(e.Msg)
	if e.Text != "" {
		b.WriteString(" in ")
		b.WriteString(quoteSnippet(e.Text))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

const maxSnippet = 40

func quoteSnippet(s string) string {
	if r := []rune(s); len(r) > maxSnippet {
		s = string(r[:maxSnippet]) + "..."
	}
	return strconv.Quote(s)
}

// ErrInvalidTarget is returned when data is decoded into a value that failed
// to parse. Invalid values never change.
var ErrInvalidTarget = errors.New("jsonvalue: cannot decode into an invalid value")

// An InvalidValueError is returned when an Invalid value is asked to be
// encoded as JSON.
type InvalidValueError struct {
	Text string
}

func (e *InvalidValueError) Error() string {
	return "jsonvalue: cannot encode invalid value " + quoteSnippet(e.Text)
}

// A MarshalerError represents an error from calling a MarshalJSON method.
type MarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *MarshalerError) Error() string {
	return "jsonvalue: error calling MarshalJSON for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *MarshalerError) Unwrap() error { return e.Err }

// An UnmarshalerError represents an error from calling an UnmarshalJSON or
// UnmarshalText method.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return "jsonvalue: error calling unmarshaler for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }
