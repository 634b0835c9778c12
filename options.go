package jsonvalue

import "fmt"

const (
	// DefaultMaxDepth is the nesting depth accepted by the parser unless
	// MaxDepth says otherwise.
	DefaultMaxDepth = 1000
	// DefaultMaxInputSize bounds how many bytes a Decoder reads.
	DefaultMaxInputSize = 64 * 1024 * 1024
	// DefaultIndent is the number of spaces per nesting level in pretty mode.
	DefaultIndent = 4
)

// Option configures parsing and encoding.
type Option func(*options) error

type options struct {
	maxDepth     int
	maxInputSize int
	encoding     EncodingOptions
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		maxDepth:     DefaultMaxDepth,
		maxInputSize: DefaultMaxInputSize,
		encoding:     EncodingOptions{SpacePerIndentation: DefaultIndent},
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// MaxDepth sets the maximum nesting depth of arrays and objects the parser
// accepts. Deeper input produces an Invalid value.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("jsonvalue: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// MaxInputSize sets the maximum number of bytes a Decoder reads from its
// source.
func MaxInputSize(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("jsonvalue: max input size must be a positive integer")
		}
		o.maxInputSize = n
		return nil
	}
}

// Indent enables pretty printing with n spaces per nesting level.
// Indent(0) selects the compact form.
func Indent(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("jsonvalue: indent must be a non-negative integer")
		}
		o.encoding.PrettyPrint = n > 0
		o.encoding.SpacePerIndentation = n
		return nil
	}
}

// EscapeNonASCII makes the encoder write every codepoint above U+007F as a
// \u escape sequence.
func EscapeNonASCII() Option {
	return func(o *options) error {
		o.encoding.EscapeNonASCII = true
		return nil
	}
}
