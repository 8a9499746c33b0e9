// Package lisptest provides utilities for testing the interpreter against
// lisp source text.
package lisptest

import (
	"bytes"
	"testing"

	"github.com/ramalho/lispy/lisp"
	"github.com/ramalho/lispy/parser"
)

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially in a shared environment.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result of evaluation ("" for no value)
	Output string // text written by display during evaluation
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// NewEnv returns an environment like the one interactive sessions use, with
// display output redirected to out.
func NewEnv(out *bytes.Buffer) *lisp.LEnv {
	env := lisp.NewEnv(lisp.StandardEnv())
	env.Reader = parser.NewReader()
	env.Stdout = out
	return env
}

// RunTestSuite runs each TestSequence in tests on isolated environments.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		var out bytes.Buffer
		env := NewEnv(&out)
		for j, expr := range test.TestSequence {
			out.Reset()
			vals, err := parser.ParseLVal([]byte(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(vals) == 0 {
				t.Errorf("test %d %q: expr %d: no expression parsed", i, test.Name, j)
				continue
			}
			var result string
			for _, v := range vals {
				result = env.Eval(v).String()
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)",
					i, test.Name, j, expr.Result, result)
			}
			if out.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)",
					i, test.Name, j, expr.Output, out.String())
			}
		}
	}
}
