package token

import (
	"bufio"
	"bytes"
	"io"
)

// Scanner facilitates construction of tokens from a byte stream (io.Reader).
// The scanner accumulates runes into the pending token text and tracks the
// source location where that text started.
type Scanner struct {
	file string
	br   *bufio.Reader

	text bytes.Buffer

	pos  int // byte offset of the next rune
	line int // line number of the next rune
	col  int // column number of the next rune

	startPos  int
	startLine int
	startCol  int
}

// NewScanner initializes and returns a new Scanner.
func NewScanner(file string, r io.Reader) *Scanner {
	return &Scanner{
		file:      file,
		br:        bufio.NewReader(r),
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
	}
}

// Peek returns the next rune without consuming it.
func (s *Scanner) Peek() (rune, error) {
	c, _, err := s.br.ReadRune()
	if err != nil {
		return 0, err
	}
	err = s.br.UnreadRune()
	return c, err
}

// ReadRune consumes the next rune, appending it to the pending token text.
func (s *Scanner) ReadRune() (rune, error) {
	c, n, err := s.br.ReadRune()
	if err != nil {
		return 0, err
	}
	s.text.WriteRune(c)
	s.pos += n
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c, nil
}

// EmitToken returns a token of the given type containing the text scanned
// since the last call to either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to discard all text scanned since the last call
// to either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.text.Reset()
	s.startPos = s.pos
	s.startLine = s.line
	s.startCol = s.col
}

// Text returns the text scanned since the last call to either EmitToken or
// Ignore.
func (s *Scanner) Text() string {
	return s.text.String()
}

// LocStart returns the location of the first byte of the pending token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Pos:  s.startPos,
		Line: s.startLine,
		Col:  s.startCol,
	}
}
