package lisp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConditions(t *testing.T) {
	v := UnboundVariable("carrot")
	assert.Equal(t, LError, v.Type)
	assert.Equal(t, ConditionUnboundVariable, Condition(v))
	assert.Equal(t, "unbound-variable: carrot", GoError(v).Error())

	v = InvalidSyntax(SExpr(Symbol("lambda"), Int(1)))
	assert.Equal(t, ConditionInvalidSyntax, Condition(v))
	assert.Contains(t, GoError(v).Error(), "(lambda 1)")

	cause := fmt.Errorf("not a number: (a b)")
	call := SExpr(Symbol("+"), SExpr(Symbol("a"), Symbol("b")))
	v = PrimitiveError(call, cause)
	assert.Equal(t, ConditionPrimitiveError, Condition(v))
	assert.Contains(t, GoError(v).Error(), "not a number")
	assert.Contains(t, GoError(v).Error(), "source: (+ (a b))")
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	v := PrimitiveError(SExpr(Symbol("f")), cause)
	assert.True(t, errors.Is(GoError(v), cause))

	var lerr *Error
	assert.True(t, errors.As(GoError(v), &lerr))
	assert.NotNil(t, lerr.Expr)
}

func TestConditionNonError(t *testing.T) {
	assert.Equal(t, "", Condition(Int(1)))
	assert.Nil(t, GoError(Symbol("x")))
}
