package lisp

import (
	"io"
	"strings"
)

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read the contents of r and return the sequence of LVals that it
	// contains.
	Read(name string, r io.Reader) ([]*LVal, error)
}

// Load reads expressions from r using env.Reader and evaluates them in
// order.  Evaluation stops at the first error; otherwise the value of the
// last expression is returned, or the no-value sentinel when r is empty.
func (env *LEnv) Load(name string, r io.Reader) *LVal {
	reader := env.reader()
	if reader == nil {
		return ErrorConditionf(ConditionInvalidSyntax, "no reader configured")
	}
	exprs, err := reader.Read(name, r)
	if err != nil {
		return ErrorVal(err)
	}
	result := None()
	for _, expr := range exprs {
		result = env.Eval(expr)
		if result.Type == LError {
			return result
		}
	}
	return result
}

// LoadString evaluates the source code contained in the string source.
func (env *LEnv) LoadString(name string, source string) *LVal {
	return env.Load(name, strings.NewReader(source))
}
