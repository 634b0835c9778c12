// Package scanner splits the body of a JSON array or object into its
// top-level sibling segments without decoding them.
package scanner

import (
	"errors"

	"github.com/KimNorgaard/go-jsonvalue/internal/token"
)

// ErrUnbalanced is returned when the input ends while a string, array or
// object opened inside the segment is still open.
var ErrUnbalanced = errors.New("unbalanced delimiters")

// Segment is one sibling extracted from a container body.
type Segment struct {
	// Text holds the codepoints of the segment, excluding the delimiter.
	// It shares the backing array of the scanned input.
	Text []rune
	// Next is the offset just past the delimiter, or the input length when
	// the segment ran to the end of the input.
	Next int
	// Delimited reports whether the segment was terminated by the requested
	// delimiter rather than by the end of the input.
	Delimited bool
}

// Next scans cps from offset until it finds delim at nesting level zero or
// reaches the end of the input.
//
// A stack of expected closing codepoints tracks nesting. Inside a string
// literal all structural codepoints are ignored and a backslash escapes the
// codepoint that follows it, so an escaped quote never ends the string.
// A closing codepoint that does not match the top of the stack is treated as
// ordinary text; the segment's own decoder rejects it later.
func Next(cps []rune, offset int, delim rune) (Segment, error) {
	var (
		stack   []rune
		escaped bool
	)
	for i := offset; i < len(cps); i++ {
		r := cps[i]
		inString := len(stack) > 0 && stack[len(stack)-1] == token.Quote
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == token.Backslash:
				escaped = true
			case r == token.Quote:
				stack = stack[:len(stack)-1]
			}
			continue
		}
		switch {
		case len(stack) > 0 && r == stack[len(stack)-1]:
			stack = stack[:len(stack)-1]
		case r == token.Quote:
			stack = append(stack, token.Quote)
		case r == token.LBrack:
			stack = append(stack, token.RBrack)
		case r == token.LBrace:
			stack = append(stack, token.RBrace)
		case r == delim && len(stack) == 0:
			return Segment{Text: cps[offset:i], Next: i + 1, Delimited: true}, nil
		}
	}
	if len(stack) > 0 {
		return Segment{}, ErrUnbalanced
	}
	return Segment{Text: cps[offset:], Next: len(cps)}, nil
}
