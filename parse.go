package jsonvalue

import (
	"strings"
	"unicode/utf8"

	"github.com/KimNorgaard/go-jsonvalue/internal/escape"
	"github.com/KimNorgaard/go-jsonvalue/internal/lexer"
	"github.com/KimNorgaard/go-jsonvalue/internal/scanner"
	"github.com/KimNorgaard/go-jsonvalue/internal/token"
)

// FromString parses text into a Value tree using the default options.
//
// FromString never fails. Text that is not valid JSON, including empty or
// whitespace-only text, yields an Invalid value that retains the trimmed
// input; its Err method explains the failure.
func FromString(text string) *Value {
	return parse(text, DefaultMaxDepth)
}

// Parse is like FromString but accepts options and reports failures as an
// error. When text is not valid JSON the Invalid value is returned together
// with its *SyntaxError.
func Parse(text string, opts ...Option) (*Value, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	v := parse(text, o.maxDepth)
	if !v.IsValid() {
		return v, v.err
	}
	return v, nil
}

func parse(text string, maxDepth int) *Value {
	if !utf8.ValidString(text) {
		trimmed := strings.Trim(text, " \t\r\n")
		return newInvalid(trimmed, &SyntaxError{Msg: "invalid UTF-8 in input"})
	}
	cps := token.Trim([]rune(text))
	p := &parser{maxDepth: maxDepth}
	v, err := p.parseValue(cps)
	if err != nil {
		return newInvalid(string(cps), err)
	}
	return v
}

type parser struct {
	maxDepth int
	depth    int
}

func (p *parser) pushDepth(cps []rune) *SyntaxError {
	p.depth++
	if p.depth > p.maxDepth {
		p.depth--
		return syntaxError("maximum nesting depth exceeded", cps, nil)
	}
	return nil
}

func (p *parser) popDepth() {
	p.depth--
}

func syntaxError(msg string, cps []rune, err error) *SyntaxError {
	return &SyntaxError{Msg: msg, Text: string(cps), Err: err}
}

// parseValue decodes one value. cps may carry surrounding whitespace.
func (p *parser) parseValue(cps []rune) (*Value, *SyntaxError) {
	cps = token.Trim(cps)
	switch token.Classify(cps) {
	case token.EMPTY:
		return nil, syntaxError("empty value", nil, nil)
	case token.OBJECT:
		return p.parseObject(cps)
	case token.ARRAY:
		return p.parseArray(cps)
	case token.STRING:
		s, err := escape.Unescape(cps[1 : len(cps)-1])
		if err != nil {
			return nil, syntaxError("invalid string literal", cps, err)
		}
		return &Value{typ: String, s: s}, nil
	case token.NULL:
		return NewNull(), nil
	case token.TRUE:
		return NewBool(true), nil
	case token.FALSE:
		return NewBool(false), nil
	case token.FLOAT:
		f, err := lexer.ScanFloat(cps)
		if err != nil {
			return nil, syntaxError("invalid number literal", cps, err)
		}
		return NewFloat(f), nil
	default:
		i, err := lexer.ScanInt(cps)
		if err != nil {
			return nil, syntaxError("invalid number literal", cps, err)
		}
		return NewInt(i), nil
	}
}

// parseArray decodes "[...]". Elements are split with the structural scanner
// and decoded recursively.
func (p *parser) parseArray(cps []rune) (*Value, *SyntaxError) {
	if err := p.pushDepth(cps); err != nil {
		return nil, err
	}
	defer p.popDepth()

	arr := NewArray()
	body := cps[1 : len(cps)-1]
	if len(token.Trim(body)) == 0 {
		return arr, nil
	}
	for offset := 0; ; {
		seg, err := scanner.Next(body, offset, token.Comma)
		if err != nil {
			return nil, syntaxError("malformed array", cps, err)
		}
		elem, serr := p.parseValue(seg.Text)
		if serr != nil {
			return nil, serr
		}
		arr.arr = append(arr.arr, arr.adopt(elem))
		if !seg.Delimited {
			return arr, nil
		}
		offset = seg.Next
	}
}

// parseObject decodes "{...}". Each member is a string key, a ':' and a
// value; a later member replaces an earlier one with the same key.
func (p *parser) parseObject(cps []rune) (*Value, *SyntaxError) {
	if err := p.pushDepth(cps); err != nil {
		return nil, err
	}
	defer p.popDepth()

	obj := NewObject()
	body := cps[1 : len(cps)-1]
	if len(token.Trim(body)) == 0 {
		return obj, nil
	}
	for offset := 0; ; {
		keySeg, err := scanner.Next(body, offset, token.Colon)
		if err != nil {
			return nil, syntaxError("malformed object", cps, err)
		}
		if !keySeg.Delimited {
			return nil, syntaxError("missing ':' after object key", token.Trim(keySeg.Text), nil)
		}
		key, serr := p.parseValue(keySeg.Text)
		if serr != nil {
			return nil, serr
		}
		if key.typ != String {
			return nil, syntaxError("object key must be a string", token.Trim(keySeg.Text), nil)
		}

		valSeg, err := scanner.Next(body, keySeg.Next, token.Comma)
		if err != nil {
			return nil, syntaxError("malformed object", cps, err)
		}
		val, serr := p.parseValue(valSeg.Text)
		if serr != nil {
			return nil, serr
		}
		obj.obj[key.s] = obj.adopt(val)
		if !valSeg.Delimited {
			return obj, nil
		}
		offset = valSeg.Next
	}
}
