package lisp

import (
	"errors"
	"fmt"
)

// Error condition names.  Conditions classify evaluation failures so that
// collaborators (the REPL, the batch runner, tests) can branch on the kind
// of failure without string matching.
const (
	// ConditionUnboundVariable signals a symbol lookup, or a set! target,
	// that is absent from every frame in the environment chain.
	ConditionUnboundVariable = "unbound-variable"

	// ConditionInvalidSyntax signals an expression whose shape matches none
	// of the recognized forms.
	ConditionInvalidSyntax = "invalid-syntax"

	// ConditionPrimitiveError signals a builtin that rejected its evaluated
	// arguments.
	ConditionPrimitiveError = "primitive-invocation-error"
)

// Error is the Go error underlying an LError value.  Condition identifies
// the failure class and Expr, when non-nil, is the expression being
// evaluated at the point of failure.
type Error struct {
	Condition string
	Expr      *LVal
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Condition, e.Message)
}

// Unwrap returns the native failure underlying e, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrorVal wraps err as an LError value.
func ErrorVal(err error) *LVal {
	return &LVal{
		Type: LError,
		Err:  err,
	}
}

// ErrorConditionf returns an LError value with the given condition and a
// formatted message.
func ErrorConditionf(condition string, format string, v ...interface{}) *LVal {
	return ErrorVal(&Error{
		Condition: condition,
		Message:   fmt.Sprintf(format, v...),
	})
}

// UnboundVariable returns an LError reporting that name is not bound in any
// frame of the environment chain.
func UnboundVariable(name string) *LVal {
	return ErrorVal(&Error{
		Condition: ConditionUnboundVariable,
		Message:   name,
	})
}

// InvalidSyntax returns an LError carrying the printed form of the
// malformed expression v.
func InvalidSyntax(v *LVal) *LVal {
	return ErrorVal(&Error{
		Condition: ConditionInvalidSyntax,
		Expr:      v,
		Message:   v.String(),
	})
}

// PrimitiveError returns an LError reporting that a callable rejected its
// evaluated arguments.  The error carries the printed source form of the
// whole call alongside the raw expression tree and the native failure.
func PrimitiveError(call *LVal, cause error) *LVal {
	return ErrorVal(&Error{
		Condition: ConditionPrimitiveError,
		Expr:      call,
		Message:   fmt.Sprintf("%s\nsource: %s", cause, call),
		Cause:     cause,
	})
}

// GoError returns the Go error held by v when v has type LError and nil
// otherwise.
func GoError(v *LVal) error {
	if v.Type != LError {
		return nil
	}
	if v.Err != nil {
		return v.Err
	}
	return errors.New("unspecified error")
}

// Condition returns the error condition name held by v when v is an LError
// produced by the evaluator, and "" otherwise.
func Condition(v *LVal) string {
	var lerr *Error
	if errors.As(GoError(v), &lerr) {
		return lerr.Condition
	}
	return ""
}
