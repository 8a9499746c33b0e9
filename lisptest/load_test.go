package lisptest

import (
	"bytes"
	"testing"

	"github.com/ramalho/lispy/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadString(t *testing.T) {
	var out bytes.Buffer
	env := NewEnv(&out)

	v := env.LoadString("test", `
		(define x 2)
		(display (* x 21))
		(* x 3)
	`)
	require.NoError(t, lisp.GoError(v))
	assert.Equal(t, "6", v.String())
	assert.Equal(t, "42\n", out.String())
}

func TestLoadStringEmpty(t *testing.T) {
	var out bytes.Buffer
	env := NewEnv(&out)

	v := env.LoadString("test", "; nothing to do\n")
	require.NoError(t, lisp.GoError(v))
	assert.True(t, v.IsNone())
}

func TestLoadStringError(t *testing.T) {
	var out bytes.Buffer
	env := NewEnv(&out)

	// evaluation stops at the first error but earlier effects remain
	v := env.LoadString("test", "(define x 1) (set! x oops) (define x 99)")
	require.Error(t, lisp.GoError(v))
	assert.Equal(t, lisp.ConditionUnboundVariable, lisp.Condition(v))
	assert.Equal(t, "1", env.Eval(lisp.Symbol("x")).String())

	v = env.LoadString("test", "(define y")
	require.Error(t, lisp.GoError(v))
}
