package token

// Type is the kind of JSON literal a trimmed piece of text looks like.
type Type string

const (
	EMPTY Type = "EMPTY" // Nothing left after trimming

	// Literals
	INT    Type = "INT"    // 12345
	FLOAT  Type = "FLOAT"  // 123.45, 1e3
	STRING Type = "STRING" // "hello world"

	// Containers
	OBJECT Type = "OBJECT" // { ... }
	ARRAY  Type = "ARRAY"  // [ ... ]

	// Keywords
	TRUE  Type = "TRUE"
	FALSE Type = "FALSE"
	NULL  Type = "NULL"
)

// Structural codepoints.
const (
	Quote     = '"'
	Backslash = '\\'
	LBrace    = '{'
	RBrace    = '}'
	LBrack    = '['
	RBrack    = ']'
	Comma     = ','
	Colon     = ':'
)

var keywords = map[string]Type{
	"true":  TRUE,
	"false": FALSE,
	"null":  NULL,
}

// LookupKeyword checks the keywords table for a literal.
func LookupKeyword(lit string) (Type, bool) {
	tok, ok := keywords[lit]
	return tok, ok
}

// IsWhitespace reports whether r is one of the four JSON whitespace
// codepoints: space, tab, carriage return and line feed.
func IsWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// Trim returns cps without leading and trailing JSON whitespace. The result
// shares the backing array of cps.
func Trim(cps []rune) []rune {
	start, end := 0, len(cps)
	for start < end && IsWhitespace(cps[start]) {
		start++
	}
	for end > start && IsWhitespace(cps[end-1]) {
		end--
	}
	return cps[start:end]
}

// Classify decides how trimmed text must be decoded. Containers and strings
// are recognised by their first and last codepoints, keywords by exact match.
// Anything else is a number: a float when it carries a '.', 'e' or 'E',
// otherwise an integer. Classify does not validate the text.
func Classify(cps []rune) Type {
	n := len(cps)
	if n == 0 {
		return EMPTY
	}
	if n >= 2 {
		switch {
		case cps[0] == LBrace && cps[n-1] == RBrace:
			return OBJECT
		case cps[0] == LBrack && cps[n-1] == RBrack:
			return ARRAY
		case cps[0] == Quote && cps[n-1] == Quote:
			return STRING
		}
	}
	if tok, ok := LookupKeyword(string(cps)); ok {
		return tok
	}
	for _, r := range cps {
		if r == '.' || r == 'e' || r == 'E' {
			return FLOAT
		}
	}
	return INT
}
