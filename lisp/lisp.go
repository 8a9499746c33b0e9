package lisp

import (
	"bytes"
	"fmt"
	"strconv"
)

// LValType is the type of an LVal
type LValType uint

// Possible LValType values
const (
	LInvalid LValType = iota
	LInt
	LFloat
	LSymbol
	LBool
	LSExpr
	LFun
	LNone
	LError
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LInt:     "int",
	LFloat:   "float",
	LSymbol:  "symbol",
	LBool:    "bool",
	LSExpr:   "list",
	LFun:     "function",
	LNone:    "none",
	LError:   "error",
}

func (t LValType) String() string {
	if int(t) >= len(lvalTypeStrings) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LBuiltin is a Go function that implements a lisp primitive.  Builtins
// receive their arguments fully evaluated.
type LBuiltin func(env *LEnv, args []*LVal) *LVal

// LVal is a lisp value.  Lists serve both as code (an operator followed by
// operands) and as data produced by quote, so an expression tree read from
// source and a value returned from evaluation share this one representation.
type LVal struct {
	Type  LValType
	Int   int
	Float float64
	Str   string // symbol name
	Bool  bool
	Cells []*LVal
	Err   error

	// Fields used by function values.  Builtin is non-nil for primitives.
	// Closures carry their formals, body and the environment captured at
	// their definition site.  The captured environment is shared, never
	// copied, so mutations through one alias are seen through all.
	Builtin LBuiltin
	FID     string
	Formals []*LVal
	Body    []*LVal
	Env     *LEnv
}

// Int returns an LVal representing the integer x.
func Int(x int) *LVal {
	return &LVal{
		Type: LInt,
		Int:  x,
	}
}

// Float returns an LVal representing the floating point number x.
func Float(x float64) *LVal {
	return &LVal{
		Type:  LFloat,
		Float: x,
	}
}

// Symbol returns an LVal representing the symbol s.
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// Bool returns an LVal representing the boolean b.
func Bool(b bool) *LVal {
	return &LVal{
		Type: LBool,
		Bool: b,
	}
}

// SExpr returns an LVal representing the list with the given cells.
func SExpr(cells ...*LVal) *LVal {
	return &LVal{
		Type:  LSExpr,
		Cells: cells,
	}
}

// Nil returns an LVal representing the empty list.
func Nil() *LVal {
	return SExpr()
}

// None returns the no-value sentinel produced by definitions and other
// side-effecting forms.  It is distinct from every ordinary value, #f
// included, so callers can tell "nothing to print" from a real result.
func None() *LVal {
	return &LVal{
		Type: LNone,
	}
}

// Fun returns an LVal representing a builtin function.
func Fun(fid string, fn LBuiltin) *LVal {
	return &LVal{
		Type:    LFun,
		FID:     fid,
		Builtin: fn,
	}
}

// Lambda returns a closure with the given formals and body that captures
// env as its defining environment.
func Lambda(formals []*LVal, body []*LVal, env *LEnv) *LVal {
	return &LVal{
		Type:    LFun,
		Formals: formals,
		Body:    body,
		Env:     env,
	}
}

// IsNil returns true if v is the empty list.
func (v *LVal) IsNil() bool {
	return v.Type == LSExpr && len(v.Cells) == 0
}

// IsNone returns true if v is the no-value sentinel.
func (v *LVal) IsNone() bool {
	return v.Type == LNone
}

// Truthy reports whether v counts as true in a test position.  Exactly four
// values are falsy: the boolean false, integer zero, floating point zero and
// the empty list.  Everything else, non-empty lists and functions included,
// is truthy.
func (v *LVal) Truthy() bool {
	switch v.Type {
	case LBool:
		return v.Bool
	case LInt:
		return v.Int != 0
	case LFloat:
		return v.Float != 0
	case LSExpr:
		return len(v.Cells) != 0
	default:
		return true
	}
}

// Equal reports deep structural equality of v and u.  Numbers of different
// kinds never compare equal here; the ``='' builtin compares numerically.
func (v *LVal) Equal(u *LVal) bool {
	if v.Type != u.Type {
		return false
	}
	switch v.Type {
	case LInt:
		return v.Int == u.Int
	case LFloat:
		return v.Float == u.Float
	case LSymbol:
		return v.Str == u.Str
	case LBool:
		return v.Bool == u.Bool
	case LSExpr:
		if len(v.Cells) != len(u.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].Equal(u.Cells[i]) {
				return false
			}
		}
		return true
	case LNone:
		return true
	default:
		return v == u
	}
}

// String renders v in its printed s-expression form, the approximate inverse
// of reading.  Booleans print as #t and #f rather than reading back as
// boolean values, and floats always print distinguishably from ints.
func (v *LVal) String() string {
	switch v.Type {
	case LInt:
		return strconv.Itoa(v.Int)
	case LFloat:
		return formatFloat(v.Float)
	case LSymbol:
		return v.Str
	case LBool:
		if v.Bool {
			return "#t"
		}
		return "#f"
	case LSExpr:
		return exprString(v.Cells)
	case LFun:
		if v.Builtin != nil {
			return fmt.Sprintf("<builtin ``%s''>", v.FID)
		}
		return lambdaString(v)
	case LNone:
		return ""
	case LError:
		return v.Err.Error()
	default:
		return fmt.Sprintf("%#v", v)
	}
}

func formatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	// keep the printed form lexically a float so it reads back as one
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'n' || c == 'i' {
			return s
		}
	}
	return s + ".0"
}

func exprString(cells []*LVal) string {
	if len(cells) == 0 {
		return "()"
	}
	var buf bytes.Buffer
	buf.WriteString("(")
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(")")
	return buf.String()
}

func lambdaString(v *LVal) string {
	var buf bytes.Buffer
	buf.WriteString("(lambda ")
	buf.WriteString(exprString(v.Formals))
	for _, exp := range v.Body {
		buf.WriteString(" ")
		buf.WriteString(exp.String())
	}
	buf.WriteString(")")
	return buf.String()
}
