// Package escape converts between raw text and the escaped body of a JSON
// string literal.
package escape

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"
)

var (
	// ErrInvalidEscape is returned for a backslash followed by a codepoint
	// that does not start a known escape sequence.
	ErrInvalidEscape = errors.New("invalid escape sequence")
	// ErrInvalidHex is returned when a \u escape contains a non-hex digit.
	ErrInvalidHex = errors.New("invalid hex digit in unicode escape")
	// ErrSurrogate is returned for unpaired or misordered UTF-16 surrogates.
	ErrSurrogate = errors.New("invalid surrogate pair")
	// ErrTruncated is returned when the input ends inside an escape sequence.
	ErrTruncated = errors.New("truncated escape sequence")
	// ErrUnescapedQuote is returned for a bare quote inside the string body.
	ErrUnescapedQuote = errors.New("unescaped quote in string")
)

const hexDigits = "0123456789ABCDEF"

// Escape returns s in escaped form, ready to be wrapped in quotes.
// When nonASCII is set every codepoint above U+007F is written as a \u
// escape, using a surrogate pair above the Basic Multilingual Plane.
func Escape(s string, nonASCII bool) string {
	return string(Append(make([]byte, 0, len(s)+2), s, nonASCII))
}

// Append appends the escaped form of s to dst and returns the extended
// buffer.
func Append(dst []byte, s string, nonASCII bool) []byte {
	for _, r := range s {
		switch {
		case r == '"':
			dst = append(dst, '\\', '"')
		case r == '\\':
			dst = append(dst, '\\', '\\')
		case r == '\b':
			dst = append(dst, '\\', 'b')
		case r == '\f':
			dst = append(dst, '\\', 'f')
		case r == '\n':
			dst = append(dst, '\\', 'n')
		case r == '\r':
			dst = append(dst, '\\', 'r')
		case r == '\t':
			dst = append(dst, '\\', 't')
		case r < 0x20:
			dst = appendHex(dst, r)
		case r > 0x7F && nonASCII:
			if r > 0xFFFF {
				hi, lo := EncodeSurrogates(r)
				dst = appendHex(dst, hi)
				dst = appendHex(dst, lo)
			} else {
				dst = appendHex(dst, r)
			}
		default:
			dst = utf8.AppendRune(dst, r)
		}
	}
	return dst
}

func appendHex(dst []byte, r rune) []byte {
	return append(dst, '\\', 'u',
		hexDigits[(r>>12)&0xF],
		hexDigits[(r>>8)&0xF],
		hexDigits[(r>>4)&0xF],
		hexDigits[r&0xF])
}

// EncodeSurrogates splits a codepoint above U+FFFF into its UTF-16 high
// and low surrogates.
func EncodeSurrogates(r rune) (hi, lo rune) {
	return utf16.EncodeRune(r)
}

// DecodeSurrogates combines a high and a low surrogate into one codepoint.
// It returns U+FFFD when the pair is not valid.
func DecodeSurrogates(hi, lo rune) rune {
	return utf16.DecodeRune(hi, lo)
}

func isHighSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDBFF }
func isLowSurrogate(r rune) bool  { return r >= 0xDC00 && r <= 0xDFFF }

type state int

const (
	stateNormal state = iota
	stateEscape
	stateHex1
	stateHex2
	stateHex3
	stateHex4
)

var unescapes = map[rune]rune{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// Unescape decodes the body of a JSON string literal, without the enclosing
// quotes. A \u escape of a high surrogate must be immediately followed by a
// \u escape of a low surrogate; the pair becomes one codepoint.
//
// Raw control characters are copied through unchanged.
func Unescape(cps []rune) (string, error) {
	var (
		out     = make([]byte, 0, len(cps))
		st      = stateNormal
		hex     rune
		pending rune // high surrogate waiting for its low half
	)
	for _, r := range cps {
		switch st {
		case stateNormal:
			if pending != 0 && r != '\\' {
				return "", ErrSurrogate
			}
			switch r {
			case '\\':
				st = stateEscape
			case '"':
				return "", ErrUnescapedQuote
			default:
				out = utf8.AppendRune(out, r)
			}
		case stateEscape:
			if r == 'u' {
				hex = 0
				st = stateHex1
				continue
			}
			if pending != 0 {
				return "", ErrSurrogate
			}
			c, ok := unescapes[r]
			if !ok {
				return "", ErrInvalidEscape
			}
			out = utf8.AppendRune(out, c)
			st = stateNormal
		case stateHex1, stateHex2, stateHex3, stateHex4:
			d, ok := hexValue(r)
			if !ok {
				return "", ErrInvalidHex
			}
			hex = hex<<4 | d
			if st != stateHex4 {
				st++
				continue
			}
			st = stateNormal
			switch {
			case pending != 0:
				if !isLowSurrogate(hex) {
					return "", ErrSurrogate
				}
				out = utf8.AppendRune(out, DecodeSurrogates(pending, hex))
				pending = 0
			case isHighSurrogate(hex):
				pending = hex
			case isLowSurrogate(hex):
				return "", ErrSurrogate
			default:
				out = utf8.AppendRune(out, hex)
			}
		}
	}
	if st != stateNormal {
		return "", ErrTruncated
	}
	if pending != 0 {
		return "", ErrSurrogate
	}
	return string(out), nil
}

func hexValue(r rune) (rune, bool) {
	switch {
	case r >= '0' && r <= '9':
		return r - '0', true
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10, true
	case r >= 'A' && r <= 'F':
		return r - 'A' + 10, true
	}
	return 0, false
}
