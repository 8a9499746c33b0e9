package lexer

import (
	"fmt"
	"io"
	"strconv"
	"unicode"

	"github.com/ramalho/lispy/parser/token"
)

// Lexer splits a source stream into tokens: the three bracket pairs,
// ;-comments, and bare words.  A word is any run of runes unbroken by
// whitespace, brackets or a comment; words are emitted as an INT token if
// the text is lexically an integer, a FLOAT token if it is lexically a
// floating point number, and a SYMBOL token otherwise.
type Lexer struct {
	scanner *token.Scanner
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{
		scanner: s,
	}
}

// NextToken scans and returns the next token.  At the end of the stream
// NextToken returns an EOF token; it never returns nil.
func (lex *Lexer) NextToken() *token.Token {
	if err := lex.skipWhitespace(); err != nil {
		return lex.emitEOF(err)
	}
	c, err := lex.scanner.ReadRune()
	if err != nil {
		return lex.emitEOF(err)
	}
	switch c {
	case '(':
		return lex.scanner.EmitToken(token.PAREN_L)
	case ')':
		return lex.scanner.EmitToken(token.PAREN_R)
	case '[':
		return lex.scanner.EmitToken(token.BRACK_L)
	case ']':
		return lex.scanner.EmitToken(token.BRACK_R)
	case '{':
		return lex.scanner.EmitToken(token.BRACE_L)
	case '}':
		return lex.scanner.EmitToken(token.BRACE_R)
	case ';':
		for {
			c, err := lex.scanner.Peek()
			if err != nil || c == '\n' {
				return lex.scanner.EmitToken(token.COMMENT)
			}
			if _, err := lex.scanner.ReadRune(); err != nil {
				return lex.scanner.EmitToken(token.COMMENT)
			}
		}
	default:
		return lex.readWord()
	}
}

func (lex *Lexer) readWord() *token.Token {
	for {
		c, err := lex.scanner.Peek()
		if err != nil || terminatesWord(c) {
			break
		}
		if _, err := lex.scanner.ReadRune(); err != nil {
			break
		}
	}
	text := lex.scanner.Text()
	if _, err := strconv.Atoi(text); err == nil {
		return lex.scanner.EmitToken(token.INT)
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return lex.scanner.EmitToken(token.FLOAT)
	}
	return lex.scanner.EmitToken(token.SYMBOL)
}

func terminatesWord(c rune) bool {
	switch c {
	case '(', ')', '[', ']', '{', '}', ';':
		return true
	}
	return unicode.IsSpace(c)
}

func (lex *Lexer) skipWhitespace() error {
	for {
		c, err := lex.scanner.Peek()
		if err != nil {
			return err
		}
		if !unicode.IsSpace(c) {
			return nil
		}
		if _, err := lex.scanner.ReadRune(); err != nil {
			return err
		}
		lex.scanner.Ignore()
	}
}

func (lex *Lexer) emitEOF(err error) *token.Token {
	if err == io.EOF {
		return lex.scanner.EmitToken(token.EOF)
	}
	tok := lex.scanner.EmitToken(token.ERROR)
	tok.Text = fmt.Sprintf("read error: %v", err)
	return tok
}
