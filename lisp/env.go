package lisp

import (
	"fmt"
	"io"
	"os"
)

// LEnv is one frame in a chain of lexical environments, innermost first.
// Frames are shared by reference: a child environment, and any closure that
// captured a frame at its definition site, alias the same Scope map, so a
// mutation through one alias is visible through every other.
type LEnv struct {
	Scope  map[string]*LVal
	Parent *LEnv

	// Stdout receives output written by the display builtin.  When nil the
	// writer of the nearest enclosing frame that has one applies, and
	// os.Stdout when no frame does.  Reader, used by Load, resolves the
	// same way.
	Stdout io.Writer
	Reader Reader
}

// NewEnv initializes and returns a new LEnv with an empty innermost frame
// chained under parent.  A nil parent produces a root environment.
func NewEnv(parent *LEnv) *LEnv {
	return &LEnv{
		Scope:  make(map[string]*LVal),
		Parent: parent,
	}
}

func (env *LEnv) stdout() io.Writer {
	for scope := env; scope != nil; scope = scope.Parent {
		if scope.Stdout != nil {
			return scope.Stdout
		}
	}
	return os.Stdout
}

func (env *LEnv) reader() Reader {
	for scope := env; scope != nil; scope = scope.Parent {
		if scope.Reader != nil {
			return scope.Reader
		}
	}
	return nil
}

// Extend returns a new environment whose single new innermost frame holds
// the given bindings, chained under env.  No existing frame is copied or
// mutated.
func (env *LEnv) Extend(names []string, vals []*LVal) *LEnv {
	child := NewEnv(env)
	for i, name := range names {
		if i >= len(vals) {
			// Lenient application: a missing argument leaves the parameter
			// absent from the frame rather than failing here.  Referencing
			// it later surfaces an unbound-variable error.
			break
		}
		child.Scope[name] = vals[i]
	}
	return child
}

// Get returns the value bound to symbol k, searching frames innermost to
// outermost and returning the first match.  If no frame binds k the result
// is an unbound-variable error.
func (env *LEnv) Get(k *LVal) *LVal {
	if k.Type != LSymbol {
		return ErrorConditionf(ConditionInvalidSyntax, "cannot resolve non-symbol: %v", k)
	}
	for scope := env; scope != nil; scope = scope.Parent {
		if v, ok := scope.Scope[k.Str]; ok {
			return v
		}
	}
	return UnboundVariable(k.Str)
}

// Put binds symbol k to v in the innermost frame of env, shadowing without
// searching the chain.  Put never touches an outer frame.
func (env *LEnv) Put(k *LVal, v *LVal) *LVal {
	if k.Type != LSymbol {
		return ErrorConditionf(ConditionInvalidSyntax, "cannot bind non-symbol: %v", k)
	}
	if v == nil {
		panic("nil value")
	}
	env.Scope[k.Str] = v
	return None()
}

// Update overwrites the binding for symbol k in the first frame of the
// chain that already contains it, in place.  Unlike Put it never creates a
// binding: if no frame binds k the result is an unbound-variable error and
// the chain is unchanged.
func (env *LEnv) Update(k *LVal, v *LVal) *LVal {
	if k.Type != LSymbol {
		return ErrorConditionf(ConditionInvalidSyntax, "cannot bind non-symbol: %v", k)
	}
	for scope := env; scope != nil; scope = scope.Parent {
		if _, ok := scope.Scope[k.Str]; ok {
			scope.Scope[k.Str] = v
			return None()
		}
	}
	return UnboundVariable(k.Str)
}

// Root returns the outermost frame of the chain (the global scope).
func (env *LEnv) Root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// PutGlobal binds symbol k to v in the root frame.
func (env *LEnv) PutGlobal(k *LVal, v *LVal) *LVal {
	return env.Root().Put(k, v)
}

// AddBuiltins binds the given funs to their names in env.  When called with
// no arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		k := Symbol(f.Name())
		if _, ok := env.Scope[k.Str]; ok {
			panic(fmt.Sprintf("symbol already defined: %v", k))
		}
		env.Put(k, Fun(f.Name(), f.Eval))
	}
}
