package lisp

import "fmt"

// Reserved words recognized by the evaluator.  A list whose head is one of
// these is dispatched as a special form before any attempt to resolve the
// head as a callable, so reserved words can never be shadowed in operator
// position.
const (
	symQuote  = "quote"
	symIf     = "if"
	symDefine = "define"
	symLambda = "lambda"
	symSet    = "set!"
	symCond   = "cond"
	symOr     = "or"
	symAnd    = "and"
	symBegin  = "begin"
	symElse   = "else"
)

// Eval evaluates v in the scope of env and returns the resulting LVal.
//
// Eval is a loop over a mutable (expression, environment) pair.  Each pass
// either returns a final value or rewrites the pair and continues, so a
// procedure call in tail position never grows the Go stack.  Sub-expressions
// in non-tail position (operator, arguments, tests, all but the last body
// expression) are evaluated through ordinary recursive calls.
func (env *LEnv) Eval(v *LVal) *LVal {
	for {
		switch v.Type {
		case LInt, LFloat, LBool, LFun, LNone, LError:
			return v
		case LSymbol:
			return env.Get(v)
		case LSExpr:
		default:
			return InvalidSyntax(v)
		}

		cells := v.Cells
		if len(cells) == 0 {
			// an empty list cannot be applied
			return InvalidSyntax(v)
		}
		if head := cells[0]; head.Type == LSymbol {
			switch head.Str {
			case symQuote:
				if len(cells) != 2 {
					return InvalidSyntax(v)
				}
				return cells[1]
			case symIf:
				if len(cells) != 4 {
					return InvalidSyntax(v)
				}
				test := env.Eval(cells[1])
				if test.Type == LError {
					return test
				}
				if test.Truthy() {
					v = cells[2]
				} else {
					v = cells[3]
				}
				continue
			case symDefine:
				return env.evalDefine(v)
			case symSet:
				if len(cells) != 3 || cells[1].Type != LSymbol {
					return InvalidSyntax(v)
				}
				val := env.Eval(cells[2])
				if val.Type == LError {
					return val
				}
				return env.Update(cells[1], val)
			case symLambda:
				if len(cells) < 3 || cells[1].Type != LSExpr || !allSymbols(cells[1].Cells) {
					return InvalidSyntax(v)
				}
				return Lambda(cells[1].Cells, cells[2:], env)
			case symCond:
				tail, lerr := env.condClause(cells[1:])
				if lerr != nil {
					return lerr
				}
				if tail == nil {
					return None()
				}
				v = tail
				continue
			case symOr:
				return env.evalOr(cells[1:])
			case symAnd:
				return env.evalAnd(cells[1:])
			case symBegin:
				if len(cells) < 2 {
					return InvalidSyntax(v)
				}
				for _, exp := range cells[1 : len(cells)-1] {
					r := env.Eval(exp)
					if r.Type == LError {
						return r
					}
				}
				v = cells[len(cells)-1]
				continue
			}
		}

		f := env.Eval(cells[0])
		if f.Type == LError {
			return f
		}
		args := make([]*LVal, 0, len(cells)-1)
		for _, exp := range cells[1:] {
			r := env.Eval(exp)
			if r.Type == LError {
				return r
			}
			args = append(args, r)
		}
		if f.Type != LFun {
			return PrimitiveError(v, fmt.Errorf("first element of expression is not a function: %s", f))
		}
		if f.Builtin != nil {
			r := f.Builtin(env, args)
			if r.Type == LError {
				// An error that already carries a condition propagated out
				// of a nested evaluation and keeps its identity.  Only the
				// builtin's own rejections re-raise with the source form.
				if Condition(r) != "" {
					return r
				}
				return PrimitiveError(v, GoError(r))
			}
			return r
		}

		// Applying a closure rewrites the pair instead of recursing: the
		// current environment becomes a fresh call environment chained
		// under the closure's defining environment and the current
		// expression becomes the final body expression, after the leading
		// body expressions run for effect.
		env = applicationEnv(f, args)
		for _, exp := range f.Body[:len(f.Body)-1] {
			r := env.Eval(exp)
			if r.Type == LError {
				return r
			}
		}
		v = f.Body[len(f.Body)-1]
	}
}

// Apply invokes the function f with pre-evaluated arguments args.  Unlike
// a call reached through Eval the application is not in tail position, so a
// closure body occupies a Go stack frame here.
func (env *LEnv) Apply(f *LVal, args []*LVal) *LVal {
	if f.Type != LFun {
		return ErrorConditionf(ConditionPrimitiveError, "not a function: %s", f)
	}
	if f.Builtin != nil {
		return f.Builtin(env, args)
	}
	call := applicationEnv(f, args)
	return call.evalBody(f.Body)
}

// applicationEnv builds the call environment for applying closure f to
// args: one fresh frame binding parameters to arguments positionally,
// chained under the defining environment.  Binding is lenient about count
// mismatches, pairing only the overlapping prefix.
func applicationEnv(f *LVal, args []*LVal) *LEnv {
	names := make([]string, len(f.Formals))
	for i, sym := range f.Formals {
		names[i] = sym.Str
	}
	return f.Env.Extend(names, args)
}

func (env *LEnv) evalDefine(v *LVal) *LVal {
	cells := v.Cells
	switch {
	case len(cells) == 3 && cells[1].Type == LSymbol:
		// (define sym expr)
		val := env.Eval(cells[2])
		if val.Type == LError {
			return val
		}
		return env.Put(cells[1], val)
	case len(cells) >= 3 && cells[1].Type == LSExpr && len(cells[1].Cells) > 0:
		// (define (name param*) body+)
		header := cells[1].Cells
		if !allSymbols(header) {
			return InvalidSyntax(v)
		}
		return env.Put(header[0], Lambda(header[1:], cells[2:], env))
	default:
		return InvalidSyntax(v)
	}
}

func allSymbols(cells []*LVal) bool {
	for _, sym := range cells {
		if sym.Type != LSymbol {
			return false
		}
	}
	return true
}

// condClause selects the first matching cond clause.  A clause is an else
// marker followed by a body, or a test expression followed by a body.  The
// leading body expressions of the match run for effect and the final one is
// returned for the caller to evaluate in tail position.  A nil expression
// with a nil error means no clause matched.
func (env *LEnv) condClause(clauses []*LVal) (*LVal, *LVal) {
	for _, clause := range clauses {
		if clause.Type != LSExpr || len(clause.Cells) < 2 {
			return nil, InvalidSyntax(clause)
		}
		test := clause.Cells[0]
		if test.Type != LSymbol || test.Str != symElse {
			r := env.Eval(test)
			if r.Type == LError {
				return nil, r
			}
			if !r.Truthy() {
				continue
			}
		}
		body := clause.Cells[1:]
		for _, exp := range body[:len(body)-1] {
			r := env.Eval(exp)
			if r.Type == LError {
				return nil, r
			}
		}
		return body[len(body)-1], nil
	}
	return nil, nil
}

func (env *LEnv) evalBody(body []*LVal) *LVal {
	var result *LVal
	for _, exp := range body {
		result = env.Eval(exp)
		if result.Type == LError {
			return result
		}
	}
	return result
}

// evalOr evaluates operands left to right and returns the first truthy
// value without evaluating the rest.  If every operand is falsy the value
// of the last one is returned; with no operands the result is #f.
func (env *LEnv) evalOr(exprs []*LVal) *LVal {
	value := Bool(false)
	for _, exp := range exprs {
		value = env.Eval(exp)
		if value.Type == LError || value.Truthy() {
			return value
		}
	}
	return value
}

// evalAnd evaluates operands left to right and returns the first falsy
// value without evaluating the rest.  If every operand is truthy the value
// of the last one is returned; with no operands the result is #t.
func (env *LEnv) evalAnd(exprs []*LVal) *LVal {
	value := Bool(true)
	for _, exp := range exprs {
		value = env.Eval(exp)
		if value.Type == LError || !value.Truthy() {
			return value
		}
	}
	return value
}
