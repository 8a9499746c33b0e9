package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv() *LEnv {
	return NewEnv(StandardEnv())
}

func TestEvalLiteral(t *testing.T) {
	env := testEnv()

	v := env.Eval(Int(3))
	require.Equal(t, LInt, v.Type)
	assert.Equal(t, 3, v.Int)

	// a whole float stays floating point
	v = env.Eval(Float(3))
	require.Equal(t, LFloat, v.Type)
	assert.Equal(t, 3.0, v.Float)
}

func TestEvalSymbol(t *testing.T) {
	env := testEnv()
	env.Put(Symbol("x"), Int(7))
	assert.Equal(t, 7, env.Eval(Symbol("x")).Int)

	v := env.Eval(Symbol("missing"))
	require.Equal(t, LError, v.Type)
	assert.Equal(t, ConditionUnboundVariable, Condition(v))
}

func TestEvalQuote(t *testing.T) {
	env := testEnv()

	inner := SExpr(Symbol("+"), Int(1), SExpr(Symbol("*"), Int(2), Int(3)))
	v := env.Eval(SExpr(Symbol("quote"), inner))
	assert.True(t, v.Equal(inner), "quote must not evaluate its argument")

	v = env.Eval(SExpr(Symbol("quote")))
	assert.Equal(t, ConditionInvalidSyntax, Condition(v))
	v = env.Eval(SExpr(Symbol("quote"), Int(1), Int(2)))
	assert.Equal(t, ConditionInvalidSyntax, Condition(v))
}

func TestEvalIf(t *testing.T) {
	env := testEnv()

	// only the taken branch is evaluated
	v := env.Eval(SExpr(Symbol("if"), Bool(true),
		SExpr(Symbol("define"), Symbol("a"), Int(1)),
		SExpr(Symbol("define"), Symbol("b"), Int(2)),
	))
	require.NotEqual(t, LError, v.Type)
	assert.Equal(t, 1, env.Get(Symbol("a")).Int)
	assert.Equal(t, ConditionUnboundVariable, Condition(env.Get(Symbol("b"))))

	v = env.Eval(SExpr(Symbol("if"), Bool(false),
		SExpr(Symbol("define"), Symbol("c"), Int(1)),
		SExpr(Symbol("define"), Symbol("d"), Int(2)),
	))
	require.NotEqual(t, LError, v.Type)
	assert.Equal(t, ConditionUnboundVariable, Condition(env.Get(Symbol("c"))))
	assert.Equal(t, 2, env.Get(Symbol("d")).Int)

	// wrong arity is a syntax error, not an application
	v = env.Eval(SExpr(Symbol("if"), Bool(true), Int(1)))
	assert.Equal(t, ConditionInvalidSyntax, Condition(v))
}

func TestEvalDefineAndSet(t *testing.T) {
	env := testEnv()

	v := env.Eval(SExpr(Symbol("define"), Symbol("x"), Int(10)))
	require.True(t, v.IsNone(), "define produces no value")

	v = env.Eval(SExpr(Symbol("set!"), Symbol("x"),
		SExpr(Symbol("+"), Symbol("x"), Int(5))))
	require.True(t, v.IsNone(), "set! produces no value")
	assert.Equal(t, 15, env.Eval(Symbol("x")).Int)

	// set! of an undefined name fails without binding anything
	v = env.Eval(SExpr(Symbol("set!"), Symbol("nope"), Int(1)))
	assert.Equal(t, ConditionUnboundVariable, Condition(v))
	assert.Equal(t, LError, env.Get(Symbol("nope")).Type)
}

func TestEvalLambda(t *testing.T) {
	env := testEnv()

	fun := env.Eval(SExpr(Symbol("lambda"), SExpr(Symbol("x")), Symbol("x")))
	require.Equal(t, LFun, fun.Type)
	assert.Nil(t, fun.Builtin)

	// the closure shares the defining environment
	assert.Same(t, env, fun.Env)

	v := env.Eval(SExpr(Symbol("lambda"), SExpr(Symbol("x"))))
	assert.Equal(t, ConditionInvalidSyntax, Condition(v), "lambda requires a body")
	v = env.Eval(SExpr(Symbol("lambda"), Int(1), Int(2)))
	assert.Equal(t, ConditionInvalidSyntax, Condition(v))
}

func TestEvalApplication(t *testing.T) {
	env := testEnv()

	v := env.Eval(SExpr(
		SExpr(Symbol("lambda"), SExpr(Symbol("x"), Symbol("y")),
			SExpr(Symbol("+"), Symbol("x"), Symbol("y"))),
		Int(1), Int(2),
	))
	require.NotEqual(t, LError, v.Type, "eval error: %s", v)
	assert.Equal(t, 3, v.Int)
}

func TestEvalLenientArity(t *testing.T) {
	env := testEnv()
	identity := SExpr(Symbol("lambda"), SExpr(Symbol("x")), Symbol("x"))

	// extra arguments are dropped
	v := env.Eval(SExpr(identity, Int(1), Int(2), Int(3)))
	require.NotEqual(t, LError, v.Type)
	assert.Equal(t, 1, v.Int)

	// a missing argument surfaces only when the parameter is referenced
	first := SExpr(Symbol("lambda"), SExpr(Symbol("a"), Symbol("b")), Symbol("a"))
	v = env.Eval(SExpr(first, Int(7)))
	require.NotEqual(t, LError, v.Type)
	assert.Equal(t, 7, v.Int)

	second := SExpr(Symbol("lambda"), SExpr(Symbol("a"), Symbol("b")), Symbol("b"))
	v = env.Eval(SExpr(second, Int(7)))
	assert.Equal(t, ConditionUnboundVariable, Condition(v))
}

func TestEvalLocalDefine(t *testing.T) {
	env := testEnv()

	v := env.Eval(SExpr(Symbol("define"), SExpr(Symbol("f")),
		SExpr(Symbol("define"), Symbol("y"), Int(1)),
		Symbol("y"),
	))
	require.NotEqual(t, LError, v.Type)
	v = env.Eval(SExpr(Symbol("f")))
	require.NotEqual(t, LError, v.Type, "eval error: %s", v)
	assert.Equal(t, 1, v.Int)

	// the local define is confined to the call environment
	assert.Equal(t, ConditionUnboundVariable, Condition(env.Get(Symbol("y"))))
}

func TestEvalKeywordsReserved(t *testing.T) {
	env := testEnv()

	// binding a reserved word is allowed but cannot shadow the form
	v := env.Eval(SExpr(Symbol("define"), Symbol("if"), Int(3)))
	require.NotEqual(t, LError, v.Type)
	v = env.Eval(SExpr(Symbol("if"), Bool(false), Int(1), Int(2)))
	require.NotEqual(t, LError, v.Type)
	assert.Equal(t, 2, v.Int)
}

func TestEvalMalformed(t *testing.T) {
	env := testEnv()

	// an empty list cannot be applied
	v := env.Eval(Nil())
	assert.Equal(t, ConditionInvalidSyntax, Condition(v))

	// applying a non-function is an invocation failure
	v = env.Eval(SExpr(Int(1), Int(2)))
	assert.Equal(t, ConditionPrimitiveError, Condition(v))

	v = env.Eval(SExpr(Symbol("define"), Int(1), Int(2)))
	assert.Equal(t, ConditionInvalidSyntax, Condition(v))
}

func TestEvalBegin(t *testing.T) {
	env := testEnv()

	v := env.Eval(SExpr(Symbol("begin"),
		SExpr(Symbol("define"), Symbol("x"), Int(1)),
		SExpr(Symbol("set!"), Symbol("x"), Int(2)),
		Symbol("x"),
	))
	require.NotEqual(t, LError, v.Type)
	assert.Equal(t, 2, v.Int)

	v = env.Eval(SExpr(Symbol("begin")))
	assert.Equal(t, ConditionInvalidSyntax, Condition(v))
}

func TestEvalShortCircuit(t *testing.T) {
	env := testEnv()

	// or stops at the first truthy operand
	v := env.Eval(SExpr(Symbol("or"), Int(5),
		SExpr(Symbol("define"), Symbol("a"), Int(1))))
	require.Equal(t, 5, v.Int)
	assert.Equal(t, ConditionUnboundVariable, Condition(env.Get(Symbol("a"))))

	// and stops at the first falsy operand
	v = env.Eval(SExpr(Symbol("and"), Int(0),
		SExpr(Symbol("define"), Symbol("b"), Int(1))))
	require.Equal(t, 0, v.Int)
	assert.Equal(t, ConditionUnboundVariable, Condition(env.Get(Symbol("b"))))

	// empty forms produce the boolean identities
	assert.True(t, env.Eval(SExpr(Symbol("and"))).Bool)
	assert.False(t, env.Eval(SExpr(Symbol("or"))).Bool)
}

func TestEvalPrimitiveError(t *testing.T) {
	env := testEnv()

	v := env.Eval(SExpr(Symbol("car"), Int(1)))
	require.Equal(t, LError, v.Type)
	assert.Equal(t, ConditionPrimitiveError, Condition(v))
	// the error carries the printed source form of the call
	assert.Contains(t, GoError(v).Error(), "(car 1)")
}

func TestEvalErrorPropagation(t *testing.T) {
	env := testEnv()

	// an evaluation failure inside a closure applied by a higher-order
	// builtin keeps its own condition instead of becoming an invocation
	// failure of the builtin
	v := env.Eval(SExpr(Symbol("map"),
		SExpr(Symbol("lambda"), SExpr(Symbol("x")), Symbol("y")),
		SExpr(Symbol("list"), Int(1)),
	))
	require.Equal(t, LError, v.Type)
	assert.Equal(t, ConditionUnboundVariable, Condition(v))

	v = env.Eval(SExpr(Symbol("apply"),
		SExpr(Symbol("lambda"), SExpr(Symbol("x")), SExpr(Symbol("if"), Symbol("x"))),
		SExpr(Symbol("list"), Int(1)),
	))
	require.Equal(t, LError, v.Type)
	assert.Equal(t, ConditionInvalidSyntax, Condition(v))
}

func TestEvalClosureCapture(t *testing.T) {
	env := testEnv()

	// a closure returned from a call keeps the call environment alive
	counter := SExpr(Symbol("define"), SExpr(Symbol("make-counter")),
		SExpr(Symbol("define"), Symbol("n"), Int(0)),
		SExpr(Symbol("lambda"), SExpr(),
			SExpr(Symbol("set!"), Symbol("n"), SExpr(Symbol("+"), Symbol("n"), Int(1))),
			Symbol("n"),
		),
	)
	require.NotEqual(t, LError, env.Eval(counter).Type)
	require.NotEqual(t, LError, env.Eval(SExpr(Symbol("define"), Symbol("tick"),
		SExpr(Symbol("make-counter")))).Type)

	for i := 1; i <= 3; i++ {
		v := env.Eval(SExpr(Symbol("tick")))
		require.NotEqual(t, LError, v.Type, "eval error: %s", v)
		assert.Equal(t, i, v.Int)
	}

	// the counter state is invisible from the caller
	assert.Equal(t, ConditionUnboundVariable, Condition(env.Get(Symbol("n"))))
}
