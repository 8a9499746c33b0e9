package token

import "fmt"

type Token struct {
	Type   Type
	Text   string
	Source *Location
}

type Type uint

// Type constants used for the lexer/parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Atomic expressions
	SYMBOL
	INT
	FLOAT

	COMMENT

	// Delimiters.  The three bracket pairs are interchangeable as list
	// delimiters but each list must close with its opener's partner.
	PAREN_L
	PAREN_R
	BRACK_L
	BRACK_R
	BRACE_L
	BRACE_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		ERROR:   "error",
		EOF:     "EOF",
		SYMBOL:  "symbol",
		INT:     "int",
		FLOAT:   "float",
		COMMENT: ";",
		PAREN_L: "(",
		PAREN_R: ")",
		BRACK_L: "[",
		BRACK_R: "]",
		BRACE_L: "{",
		BRACE_R: "}",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Open returns true for the left delimiter types.
func (typ Type) Open() bool {
	switch typ {
	case PAREN_L, BRACK_L, BRACE_L:
		return true
	}
	return false
}

// Close returns true for the right delimiter types.
func (typ Type) Close() bool {
	switch typ {
	case PAREN_R, BRACK_R, BRACE_R:
		return true
	}
	return false
}

// Partner returns the delimiter type closing typ.  It panics if typ is not
// an open delimiter.
func (typ Type) Partner() Type {
	switch typ {
	case PAREN_L:
		return PAREN_R
	case BRACK_L:
		return BRACK_R
	case BRACE_L:
		return BRACE_R
	}
	panic(fmt.Sprintf("not an open delimiter: %v", typ))
}

type Location struct {
	File string
	Pos  int
	Line int // line number (starting at 1)
	Col  int // line column number (starting at 1)
}

func (loc *Location) String() string {
	if loc.Line == 0 {
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	}
	return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
}
