// Package lexer recognises JSON number literals with two small finite-state
// machines, one for integers and one for floating-point numbers.
package lexer

import (
	"errors"
	"math"
	"strconv"
)

var (
	// ErrSyntax is returned when the text does not follow the number grammar.
	ErrSyntax = errors.New("invalid number syntax")
	// ErrLeadingZero is returned for a zero followed by more integral digits.
	ErrLeadingZero = errors.New("leading zero in number")
	// ErrRange is returned when the value cannot be represented.
	ErrRange = errors.New("number out of range")
)

type intState int

const (
	intStart intState = iota
	intFirstDigit
	intZero
	intDigits
)

type floatState int

const (
	floatStart floatState = iota
	floatIntFirst
	floatIntZero
	floatIntDigits
	floatFracFirst
	floatFracDigits
	floatExpSign
	floatExpFirst
	floatExpDigits
)

// ScanInt decodes cps as a 32-bit signed integer following the grammar
// ['-'] ('0' | [1-9][0-9]*). The whole input must be consumed.
//
// Digits are accumulated in the direction of the sign so that the most
// negative int32 is accepted.
func ScanInt(cps []rune) (int32, error) {
	var (
		acc      int32
		negative bool
		ok       bool
	)
	state := intStart
	for _, r := range cps {
		switch state {
		case intStart:
			if r == '-' {
				negative = true
				state = intFirstDigit
				continue
			}
			fallthrough
		case intFirstDigit:
			switch {
			case r == '0':
				state = intZero
			case r >= '1' && r <= '9':
				acc, _ = accumulate(0, r-'0', negative)
				state = intDigits
			default:
				return 0, ErrSyntax
			}
		case intZero:
			if isDigit(r) {
				return 0, ErrLeadingZero
			}
			return 0, ErrSyntax
		case intDigits:
			if !isDigit(r) {
				return 0, ErrSyntax
			}
			if acc, ok = accumulate(acc, r-'0', negative); !ok {
				return 0, ErrRange
			}
		}
	}
	if state != intZero && state != intDigits {
		return 0, ErrSyntax
	}
	return acc, nil
}

// accumulate appends one decimal digit to acc. The result is only valid when
// dividing it by ten gives acc back; int32 arithmetic wraps on overflow.
func accumulate(acc int32, digit rune, negative bool) (int32, bool) {
	var next int32
	if negative {
		next = acc*10 - int32(digit)
	} else {
		next = acc*10 + int32(digit)
	}
	return next, next/10 == acc
}

// ScanFloat decodes cps as a double following the grammar
// ['-'] ('0' | [1-9][0-9]*) ['.' [0-9]+] [('e'|'E') ['+'|'-'] [0-9]+].
// The whole input must be consumed and the result must be finite.
//
// The state machine only classifies the literal; the accepted text is
// converted by strconv.ParseFloat so the result is the nearest double.
func ScanFloat(cps []rune) (float64, error) {
	var exp uint32
	state := floatStart
	for _, r := range cps {
		switch state {
		case floatStart:
			if r == '-' {
				state = floatIntFirst
				continue
			}
			fallthrough
		case floatIntFirst:
			switch {
			case r == '0':
				state = floatIntZero
			case r >= '1' && r <= '9':
				state = floatIntDigits
			default:
				return 0, ErrSyntax
			}
		case floatIntZero, floatIntDigits:
			switch {
			case r == '.':
				state = floatFracFirst
			case r == 'e' || r == 'E':
				state = floatExpSign
			case isDigit(r) && state == floatIntZero:
				return 0, ErrLeadingZero
			case isDigit(r):
			default:
				return 0, ErrSyntax
			}
		case floatFracFirst, floatFracDigits:
			switch {
			case isDigit(r):
				state = floatFracDigits
			case (r == 'e' || r == 'E') && state == floatFracDigits:
				state = floatExpSign
			default:
				return 0, ErrSyntax
			}
		case floatExpSign:
			if r == '+' || r == '-' {
				state = floatExpFirst
				continue
			}
			fallthrough
		case floatExpFirst, floatExpDigits:
			if !isDigit(r) {
				return 0, ErrSyntax
			}
			next := exp*10 + uint32(r-'0')
			if next/10 != exp {
				return 0, ErrRange
			}
			exp = next
			state = floatExpDigits
		}
	}

	switch state {
	case floatIntZero, floatIntDigits, floatFracDigits, floatExpDigits:
	default:
		return 0, ErrSyntax
	}

	// Underflow rounds to a zero carrying the literal's sign.
	f, err := strconv.ParseFloat(string(cps), 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, ErrRange
	}
	return f, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
