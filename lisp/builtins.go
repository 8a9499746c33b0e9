package lisp

import (
	"fmt"
	"math"
)

// LBuiltinDef is a built-in function definition.
type LBuiltinDef interface {
	Name() string
	Eval(env *LEnv, args []*LVal) *LVal
}

type langBuiltin struct {
	name string
	fun  LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Eval(env *LEnv, args []*LVal) *LVal {
	return fun.fun(env, args)
}

var langBuiltins = []*langBuiltin{
	{"+", builtinAdd},
	{"-", builtinSub},
	{"*", builtinMul},
	{"/", builtinDiv},
	{"quotient", builtinQuotient},
	{"mod", builtinMod},
	{"=", builtinEqNum},
	{"<", builtinLT},
	{">", builtinGT},
	{"<=", builtinLEq},
	{">=", builtinGEq},
	{"abs", builtinAbs},
	{"max", builtinMax},
	{"min", builtinMin},
	{"round", builtinRound},
	{"car", builtinCAR},
	{"cdr", builtinCDR},
	{"cons", builtinCons},
	{"list", builtinList},
	{"append", builtinAppend},
	{"length", builtinLength},
	{"reverse", builtinReverse},
	{"apply", builtinApply},
	{"map", builtinMap},
	{"filter", builtinFilter},
	{"not", builtinNot},
	{"null?", builtinNullP},
	{"list?", builtinListP},
	{"number?", builtinNumberP},
	{"procedure?", builtinProcedureP},
	{"symbol?", builtinSymbolP},
	{"eq?", builtinEq},
	{"equal?", builtinEqual},
	{"display", builtinDisplay},
	{"sqrt", math1("sqrt", math.Sqrt)},
	{"sin", math1("sin", math.Sin)},
	{"cos", math1("cos", math.Cos)},
	{"tan", math1("tan", math.Tan)},
	{"exp", math1("exp", math.Exp)},
	{"log", math1("log", math.Log)},
	{"pow", builtinPow},
	{"floor", builtinFloor},
	{"ceiling", builtinCeiling},
}

// DefaultBuiltins returns the default set of LBuiltinDef added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	funs := make([]LBuiltinDef, len(langBuiltins))
	for i := range funs {
		funs[i] = langBuiltins[i]
	}
	return funs
}

// StandardEnv returns a root environment binding the standard primitives
// and constants.  Callers layer user frames over it with NewEnv.
func StandardEnv() *LEnv {
	env := NewEnv(nil)
	env.AddBuiltins()
	env.Put(Symbol("#t"), Bool(true))
	env.Put(Symbol("#f"), Bool(false))
	env.Put(Symbol("pi"), Float(math.Pi))
	env.Put(Symbol("e"), Float(math.E))
	return env
}

func berrf(bname string, format string, v ...interface{}) *LVal {
	return ErrorVal(fmt.Errorf("``%s'': %s", bname, fmt.Sprintf(format, v...)))
}

func numVal(v *LVal) (float64, bool) {
	switch v.Type {
	case LInt:
		return float64(v.Int), true
	case LFloat:
		return v.Float, true
	}
	return 0, false
}

func isInt(v *LVal) bool {
	return v.Type == LInt
}

func builtinAdd(env *LEnv, args []*LVal) *LVal {
	sum := 0
	fsum := 0.0
	isFloat := false
	for _, v := range args {
		switch v.Type {
		case LInt:
			sum += v.Int
			fsum += float64(v.Int)
		case LFloat:
			isFloat = true
			fsum += v.Float
		default:
			return berrf("+", "argument is not a number: %v", v)
		}
	}
	if isFloat {
		return Float(fsum)
	}
	return Int(sum)
}

func builtinSub(env *LEnv, args []*LVal) *LVal {
	if len(args) == 0 {
		return berrf("-", "one argument expected (got 0)")
	}
	if _, ok := numVal(args[0]); !ok {
		return berrf("-", "argument is not a number: %v", args[0])
	}
	if len(args) == 1 {
		if args[0].Type == LInt {
			return Int(-args[0].Int)
		}
		return Float(-args[0].Float)
	}
	for _, v := range args[1:] {
		if _, ok := numVal(v); !ok {
			return berrf("-", "argument is not a number: %v", v)
		}
	}
	rest := builtinAdd(env, args[1:])
	if args[0].Type == LInt && rest.Type == LInt {
		return Int(args[0].Int - rest.Int)
	}
	a, _ := numVal(args[0])
	b, _ := numVal(rest)
	return Float(a - b)
}

func builtinMul(env *LEnv, args []*LVal) *LVal {
	prod := 1
	fprod := 1.0
	isFloat := false
	for _, v := range args {
		switch v.Type {
		case LInt:
			prod *= v.Int
			fprod *= float64(v.Int)
		case LFloat:
			isFloat = true
			fprod *= v.Float
		default:
			return berrf("*", "argument is not a number: %v", v)
		}
	}
	if isFloat {
		return Float(fprod)
	}
	return Int(prod)
}

// builtinDiv implements true division: the result is always floating point,
// even for evenly dividing integers.  With a single argument it returns the
// reciprocal.
func builtinDiv(env *LEnv, args []*LVal) *LVal {
	if len(args) == 0 {
		return berrf("/", "one argument expected (got 0)")
	}
	first, ok := numVal(args[0])
	if !ok {
		return berrf("/", "argument is not a number: %v", args[0])
	}
	div := 1.0
	for _, v := range args[1:] {
		x, ok := numVal(v)
		if !ok {
			return berrf("/", "argument is not a number: %v", v)
		}
		div *= x
	}
	if len(args) == 1 {
		div, first = first, 1
	}
	if div == 0 {
		return berrf("/", "division by zero")
	}
	return Float(first / div)
}

func builtinQuotient(env *LEnv, args []*LVal) *LVal {
	if len(args) != 2 {
		return berrf("quotient", "two arguments expected (got %d)", len(args))
	}
	a, aok := numVal(args[0])
	b, bok := numVal(args[1])
	if !aok || !bok {
		return berrf("quotient", "argument is not a number")
	}
	if b == 0 {
		return berrf("quotient", "division by zero")
	}
	if isInt(args[0]) && isInt(args[1]) {
		return Int(floorDiv(args[0].Int, args[1].Int))
	}
	return Float(math.Floor(a / b))
}

func builtinMod(env *LEnv, args []*LVal) *LVal {
	if len(args) != 2 {
		return berrf("mod", "two arguments expected (got %d)", len(args))
	}
	if !isInt(args[0]) || !isInt(args[1]) {
		return berrf("mod", "argument is not an int")
	}
	if args[1].Int == 0 {
		return berrf("mod", "division by zero")
	}
	return Int(args[0].Int - floorDiv(args[0].Int, args[1].Int)*args[1].Int)
}

// floorDiv rounds toward negative infinity, unlike Go's native truncating
// division.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func builtinEqNum(env *LEnv, args []*LVal) *LVal {
	return chainCompare("=", args, func(a, b float64) bool { return a == b })
}

func builtinLT(env *LEnv, args []*LVal) *LVal {
	return chainCompare("<", args, func(a, b float64) bool { return a < b })
}

func builtinGT(env *LEnv, args []*LVal) *LVal {
	return chainCompare(">", args, func(a, b float64) bool { return a > b })
}

func builtinLEq(env *LEnv, args []*LVal) *LVal {
	return chainCompare("<=", args, func(a, b float64) bool { return a <= b })
}

func builtinGEq(env *LEnv, args []*LVal) *LVal {
	return chainCompare(">=", args, func(a, b float64) bool { return a >= b })
}

// chainCompare applies cmp across adjacent argument pairs, so expressions
// like (< 1 2 3) test monotonicity.
func chainCompare(bname string, args []*LVal, cmp func(a, b float64) bool) *LVal {
	if len(args) < 1 {
		return berrf(bname, "one argument expected (got 0)")
	}
	prev, ok := numVal(args[0])
	if !ok {
		return berrf(bname, "argument is not a number: %v", args[0])
	}
	for _, v := range args[1:] {
		x, ok := numVal(v)
		if !ok {
			return berrf(bname, "argument is not a number: %v", v)
		}
		if !cmp(prev, x) {
			return Bool(false)
		}
		prev = x
	}
	return Bool(true)
}

func builtinAbs(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return berrf("abs", "one argument expected (got %d)", len(args))
	}
	switch args[0].Type {
	case LInt:
		if args[0].Int < 0 {
			return Int(-args[0].Int)
		}
		return args[0]
	case LFloat:
		return Float(math.Abs(args[0].Float))
	}
	return berrf("abs", "argument is not a number: %v", args[0])
}

func builtinMax(env *LEnv, args []*LVal) *LVal {
	return extremum("max", args, func(a, b float64) bool { return a > b })
}

func builtinMin(env *LEnv, args []*LVal) *LVal {
	return extremum("min", args, func(a, b float64) bool { return a < b })
}

func extremum(bname string, args []*LVal, better func(a, b float64) bool) *LVal {
	if len(args) == 0 {
		return berrf(bname, "one argument expected (got 0)")
	}
	best := args[0]
	bestNum, ok := numVal(best)
	if !ok {
		return berrf(bname, "argument is not a number: %v", best)
	}
	for _, v := range args[1:] {
		x, ok := numVal(v)
		if !ok {
			return berrf(bname, "argument is not a number: %v", v)
		}
		if better(x, bestNum) {
			best, bestNum = v, x
		}
	}
	return best
}

func builtinRound(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return berrf("round", "one argument expected (got %d)", len(args))
	}
	switch args[0].Type {
	case LInt:
		return args[0]
	case LFloat:
		// ties round to even
		return Int(int(math.RoundToEven(args[0].Float)))
	}
	return berrf("round", "argument is not a number: %v", args[0])
}

func builtinCAR(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return berrf("car", "one argument expected (got %d)", len(args))
	}
	lis := args[0]
	if lis.Type != LSExpr {
		return berrf("car", "argument is not a list: %v", lis)
	}
	if len(lis.Cells) == 0 {
		return berrf("car", "list is empty")
	}
	return lis.Cells[0]
}

func builtinCDR(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return berrf("cdr", "one argument expected (got %d)", len(args))
	}
	lis := args[0]
	if lis.Type != LSExpr {
		return berrf("cdr", "argument is not a list: %v", lis)
	}
	if len(lis.Cells) == 0 {
		return berrf("cdr", "list is empty")
	}
	return SExpr(lis.Cells[1:]...)
}

func builtinCons(env *LEnv, args []*LVal) *LVal {
	if len(args) != 2 {
		return berrf("cons", "two arguments expected (got %d)", len(args))
	}
	if args[1].Type != LSExpr {
		return berrf("cons", "second argument is not a list: %v", args[1])
	}
	cells := make([]*LVal, 0, len(args[1].Cells)+1)
	cells = append(cells, args[0])
	cells = append(cells, args[1].Cells...)
	return SExpr(cells...)
}

func builtinList(env *LEnv, args []*LVal) *LVal {
	return SExpr(args...)
}

func builtinAppend(env *LEnv, args []*LVal) *LVal {
	var cells []*LVal
	for _, v := range args {
		if v.Type != LSExpr {
			return berrf("append", "argument is not a list: %v", v)
		}
		cells = append(cells, v.Cells...)
	}
	return SExpr(cells...)
}

func builtinLength(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return berrf("length", "one argument expected (got %d)", len(args))
	}
	if args[0].Type != LSExpr {
		return berrf("length", "argument is not a list: %v", args[0])
	}
	return Int(len(args[0].Cells))
}

func builtinReverse(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return berrf("reverse", "one argument expected (got %d)", len(args))
	}
	if args[0].Type != LSExpr {
		return berrf("reverse", "argument is not a list: %v", args[0])
	}
	cells := args[0].Cells
	rev := make([]*LVal, len(cells))
	for i := range cells {
		rev[len(cells)-1-i] = cells[i]
	}
	return SExpr(rev...)
}

func builtinApply(env *LEnv, args []*LVal) *LVal {
	if len(args) != 2 {
		return berrf("apply", "two arguments expected (got %d)", len(args))
	}
	if args[0].Type != LFun {
		return berrf("apply", "first argument is not a function: %v", args[0])
	}
	if args[1].Type != LSExpr {
		return berrf("apply", "second argument is not a list: %v", args[1])
	}
	return env.Apply(args[0], args[1].Cells)
}

func builtinMap(env *LEnv, args []*LVal) *LVal {
	if len(args) != 2 {
		return berrf("map", "two arguments expected (got %d)", len(args))
	}
	f, lis := args[0], args[1]
	if f.Type != LFun {
		return berrf("map", "first argument is not a function: %v", f)
	}
	if lis.Type != LSExpr {
		return berrf("map", "second argument is not a list: %v", lis)
	}
	cells := make([]*LVal, len(lis.Cells))
	for i, v := range lis.Cells {
		r := env.Apply(f, []*LVal{v})
		if r.Type == LError {
			return r
		}
		cells[i] = r
	}
	return SExpr(cells...)
}

func builtinFilter(env *LEnv, args []*LVal) *LVal {
	if len(args) != 2 {
		return berrf("filter", "two arguments expected (got %d)", len(args))
	}
	f, lis := args[0], args[1]
	if f.Type != LFun {
		return berrf("filter", "first argument is not a function: %v", f)
	}
	if lis.Type != LSExpr {
		return berrf("filter", "second argument is not a list: %v", lis)
	}
	var cells []*LVal
	for _, v := range lis.Cells {
		r := env.Apply(f, []*LVal{v})
		if r.Type == LError {
			return r
		}
		if r.Truthy() {
			cells = append(cells, v)
		}
	}
	return SExpr(cells...)
}

func builtinNot(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return berrf("not", "one argument expected (got %d)", len(args))
	}
	return Bool(!args[0].Truthy())
}

func builtinNullP(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return berrf("null?", "one argument expected (got %d)", len(args))
	}
	return Bool(args[0].IsNil())
}

func builtinListP(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return berrf("list?", "one argument expected (got %d)", len(args))
	}
	return Bool(args[0].Type == LSExpr)
}

func builtinNumberP(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return berrf("number?", "one argument expected (got %d)", len(args))
	}
	_, ok := numVal(args[0])
	return Bool(ok)
}

func builtinProcedureP(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return berrf("procedure?", "one argument expected (got %d)", len(args))
	}
	return Bool(args[0].Type == LFun)
}

func builtinSymbolP(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return berrf("symbol?", "one argument expected (got %d)", len(args))
	}
	return Bool(args[0].Type == LSymbol)
}

// builtinEq tests identity: atoms compare by value, lists and functions by
// reference.
func builtinEq(env *LEnv, args []*LVal) *LVal {
	if len(args) != 2 {
		return berrf("eq?", "two arguments expected (got %d)", len(args))
	}
	a, b := args[0], args[1]
	if a.Type != b.Type {
		return Bool(false)
	}
	switch a.Type {
	case LInt:
		return Bool(a.Int == b.Int)
	case LFloat:
		return Bool(a.Float == b.Float)
	case LSymbol:
		return Bool(a.Str == b.Str)
	case LBool:
		return Bool(a.Bool == b.Bool)
	default:
		return Bool(a == b)
	}
}

// builtinEqual tests structural equality.  Numbers of either kind compare
// numerically, so (equal? 1 1.0) is true.
func builtinEqual(env *LEnv, args []*LVal) *LVal {
	if len(args) != 2 {
		return berrf("equal?", "two arguments expected (got %d)", len(args))
	}
	a, aok := numVal(args[0])
	b, bok := numVal(args[1])
	if aok && bok {
		return Bool(a == b)
	}
	return Bool(args[0].Equal(args[1]))
}

// builtinDisplay prints the s-expression form of its argument followed by a
// newline and produces no value.
func builtinDisplay(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return berrf("display", "one argument expected (got %d)", len(args))
	}
	fmt.Fprintln(env.stdout(), args[0].String())
	return None()
}

func math1(bname string, fn func(float64) float64) LBuiltin {
	return func(env *LEnv, args []*LVal) *LVal {
		if len(args) != 1 {
			return berrf(bname, "one argument expected (got %d)", len(args))
		}
		x, ok := numVal(args[0])
		if !ok {
			return berrf(bname, "argument is not a number: %v", args[0])
		}
		return Float(fn(x))
	}
}

func builtinPow(env *LEnv, args []*LVal) *LVal {
	if len(args) != 2 {
		return berrf("pow", "two arguments expected (got %d)", len(args))
	}
	a, aok := numVal(args[0])
	b, bok := numVal(args[1])
	if !aok || !bok {
		return berrf("pow", "argument is not a number")
	}
	return Float(math.Pow(a, b))
}

func builtinFloor(env *LEnv, args []*LVal) *LVal {
	return mathInt1("floor", math.Floor)(env, args)
}

func builtinCeiling(env *LEnv, args []*LVal) *LVal {
	return mathInt1("ceiling", math.Ceil)(env, args)
}

func mathInt1(bname string, fn func(float64) float64) LBuiltin {
	return func(env *LEnv, args []*LVal) *LVal {
		if len(args) != 1 {
			return berrf(bname, "one argument expected (got %d)", len(args))
		}
		x, ok := numVal(args[0])
		if !ok {
			return berrf(bname, "argument is not a number: %v", args[0])
		}
		return Int(int(fn(x)))
	}
}
