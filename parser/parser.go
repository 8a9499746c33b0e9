/*
Package parser provides the lisp reader.

	expr   := <open> <expr>* <close> | <int> | <float> | <symbol>
	open   := '(' | '[' | '{'
	close  := ')' | ']' | '}'

The three bracket pairs delimit lists interchangeably but every list must
close with its opener's partner.  A bare word is read as an integer if it is
lexically an integer, as a float if it is lexically a float, and as a symbol
otherwise.  Comments run from ';' to the end of the line.
*/
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ramalho/lispy/lisp"
	"github.com/ramalho/lispy/parser/lexer"
	"github.com/ramalho/lispy/parser/token"
)

// Error is a syntax error detected while reading source text.
type Error struct {
	Loc     *token.Location
	Message string

	// Incomplete is true when the error was caused by source text ending in
	// the middle of an expression.  Interactive readers continue reading
	// input in that case instead of reporting the error.
	Incomplete bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Loc == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

// IsIncomplete returns true when err indicates source text that ended in the
// middle of an expression and could be completed by further input.
func IsIncomplete(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Incomplete
}

type reader struct {
}

// NewReader returns a lisp.Reader for programs in s-expression syntax.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	return New(token.NewScanner(name, r)).ParseProgram()
}

// ParseLVal parses all expressions contained in text.
func ParseLVal(text []byte) ([]*lisp.LVal, error) {
	return New(token.NewScanner("lisp", bytes.NewReader(text))).ParseProgram()
}

// ParseAtom parses a single atomic expression from text: an int, a float or
// a symbol.  It is used by collaborators that accept atom values outside a
// full program, like command line variable bindings.
func ParseAtom(text string) (*lisp.LVal, error) {
	vals, err := ParseLVal([]byte(text))
	if err != nil {
		return nil, err
	}
	if len(vals) != 1 {
		return nil, &Error{Message: fmt.Sprintf("not a single expression: %q", text)}
	}
	switch vals[0].Type {
	case lisp.LInt, lisp.LFloat, lisp.LSymbol:
		return vals[0], nil
	}
	return nil, &Error{Message: fmt.Sprintf("not an atom: %q", text)}
}

// Parser is a lisp parser.
type Parser struct {
	lex  *lexer.Lexer
	peek *token.Token
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	p := &Parser{
		lex: lexer.New(scanner),
	}
	p.next()
	return p
}

// ParseProgram parses expressions until the end of input.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for {
		p.skipComments()
		if p.peek.Type == token.EOF {
			return exprs, nil
		}
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
}

// ParseExpression parses a single expression.
func (p *Parser) ParseExpression() (*lisp.LVal, error) {
	p.skipComments()
	tok := p.peek
	switch {
	case tok.Type == token.INT:
		p.next()
		x, err := strconv.Atoi(tok.Text)
		if err != nil {
			return nil, p.errorf(tok, "integer literal overflows int: %v", tok.Text)
		}
		return lisp.Int(x), nil
	case tok.Type == token.FLOAT:
		p.next()
		x, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, p.errorf(tok, "invalid float literal: %v", tok.Text)
		}
		return lisp.Float(x), nil
	case tok.Type == token.SYMBOL:
		p.next()
		return lisp.Symbol(tok.Text), nil
	case tok.Type.Open():
		return p.parseList()
	case tok.Type.Close():
		return nil, p.errorf(tok, "unexpected %s", tok.Type)
	case tok.Type == token.EOF:
		return nil, p.unexpectedEOF(tok)
	default:
		return nil, p.errorf(tok, "scan failure: %s", tok.Text)
	}
}

func (p *Parser) parseList() (*lisp.LVal, error) {
	open := p.peek
	p.next()
	var cells []*lisp.LVal
	for {
		p.skipComments()
		tok := p.peek
		switch {
		case tok.Type == open.Type.Partner():
			p.next()
			return lisp.SExpr(cells...), nil
		case tok.Type.Close():
			return nil, p.errorf(tok, "unexpected %s inside list opened by %s at %s",
				tok.Type, open.Type, open.Source)
		case tok.Type == token.EOF:
			return nil, p.unexpectedEOF(tok)
		}
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		cells = append(cells, expr)
	}
}

func (p *Parser) skipComments() {
	for p.peek.Type == token.COMMENT {
		p.next()
	}
}

func (p *Parser) next() {
	p.peek = p.lex.NextToken()
}

func (p *Parser) errorf(tok *token.Token, format string, v ...interface{}) error {
	return &Error{
		Loc:     tok.Source,
		Message: fmt.Sprintf(format, v...),
	}
}

func (p *Parser) unexpectedEOF(tok *token.Token) error {
	return &Error{
		Loc:        tok.Source,
		Message:    "unexpected end of source",
		Incomplete: true,
	}
}
