package lisptest

import (
	"testing"
)

func TestEval(t *testing.T) {
	tests := TestSuite{
		{"literals", TestSequence{
			{"3", "3", ""},
			{"-7", "-7", ""},
			{"1.5", "1.5", ""},
			// a whole float stays a float
			{"2.0", "2.0", ""},
			{"1e3", "1000.0", ""},
		}},
		{"quote", TestSequence{
			{"(quote a)", "a", ""},
			{"(quote (1 2 (3)))", "(1 2 (3))", ""},
			{"(quote ())", "()", ""},
		}},
		{"arithmetic", TestSequence{
			{"(+ 1 2)", "3", ""},
			{"(+ 1.5 2.5)", "4.0", ""},
			{"(* 2 (+ 3 4))", "14", ""},
			{"(- 10 4 1)", "5", ""},
			{"(/ 6 3)", "2.0", ""},
			{"(quotient 7 2)", "3", ""},
			{"(= 1 1.0)", "#t", ""},
			{"(< 1 2 3)", "#t", ""},
			{"(max 1 2.5 2)", "2.5", ""},
		}},
		{"define and set!", TestSequence{
			{"(define x 10)", "", ""},
			{"x", "10", ""},
			{"(set! x (+ x 5))", "", ""},
			{"x", "15", ""},
			{"(define x 1)", "", ""},
			{"x", "1", ""},
		}},
		{"if", TestSequence{
			{"(if #t 1 2)", "1", ""},
			{"(if #f 1 2)", "2", ""},
			{"(if 0 1 2)", "2", ""},
			{"(if (quote ()) 1 2)", "2", ""},
			{"(if (quote (a)) 1 2)", "1", ""},
		}},
		{"cond", TestSequence{
			{"(cond (#f 1) (#t 2) (else 3))", "2", ""},
			{"(cond (#f 1) (else 3))", "3", ""},
			// no matching clause and no else produces no value
			{"(cond (#f 1))", "", ""},
			{"(cond (else (define y 9) y))", "9", ""},
		}},
		{"and/or", TestSequence{
			{"(and 0 2)", "0", ""},
			{"(and 1 2)", "2", ""},
			{"(and)", "#t", ""},
			{"(or #f 0 5)", "5", ""},
			{"(or #f 0.0)", "0.0", ""},
			{"(or)", "#f", ""},
		}},
		{"begin", TestSequence{
			{"(begin (define x 1) (set! x 2) x)", "2", ""},
		}},
		{"lambda", TestSequence{
			{"((lambda (x) x) 1)", "1", ""},
			{"((lambda (x y) (+ x y)) 1 2)", "3", ""},
			{"((lambda () 42))", "42", ""},
			{"(define twice (lambda (x) (* 2 x)))", "", ""},
			{"(twice 21)", "42", ""},
		}},
		{"closures", TestSequence{
			{`(define (make-adder n) (lambda (x) (+ x n)))`, "", ""},
			{"(define add3 (make-adder 3))", "", ""},
			{"(add3 4)", "7", ""},
			{"(add3 0.5)", "3.5", ""},
		}},
		{"recursion", TestSequence{
			{`(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))`, "", ""},
			{"(fact 5)", "120", ""},
			{"(fact 10)", "3628800", ""},
		}},
		{"list builtins", TestSequence{
			{"(list 1 2 3)", "(1 2 3)", ""},
			{"(cons 0 (list 1 2))", "(0 1 2)", ""},
			{"(car (list 1 2 3))", "1", ""},
			{"(cdr (list 1 2 3))", "(2 3)", ""},
			{"(append (list 1) (list 2 3))", "(1 2 3)", ""},
			{"(map (lambda (x) (* x x)) (list 1 2 3))", "(1 4 9)", ""},
			{"(filter (lambda (x) (< 1 x)) (list 1 2 3))", "(2 3)", ""},
			{"(apply + (list 1 2 3))", "6", ""},
		}},
		{"display", TestSequence{
			{"(display 5)", "", "5\n"},
			{"(display (list 1 (quote a)))", "", "(1 a)\n"},
			{"(display #t)", "", "#t\n"},
			{"(begin (display 1) (display 2) 3)", "3", "1\n2\n"},
		}},
		{"errors", TestSequence{
			{"a", "unbound-variable: a", ""},
			{"(set! never-bound 1)", "unbound-variable: never-bound", ""},
			{"(if 1)", "invalid-syntax: (if 1)", ""},
			{"(map (lambda (x) y) (list 1))", "unbound-variable: y", ""},
			{"()", "invalid-syntax: ()", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestEvalBrackets(t *testing.T) {
	tests := TestSuite{
		{"bracket pairs are interchangeable", TestSequence{
			{"[+ 1 2]", "3", ""},
			{"{+ 1 2}", "3", ""},
			{"(+ {* 2 100} [* 1 10])", "210", ""},
			{"(define [f x] {* x x})", "", ""},
			{"(f 9)", "81", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestEvalScope(t *testing.T) {
	tests := TestSuite{
		{"define is local to the call", TestSequence{
			{"(define x 5)", "", ""},
			{"(define (f) (define x 99) x)", "", ""},
			{"(f)", "99", ""},
			{"x", "5", ""},
		}},
		{"set! mutates the enclosing binding", TestSequence{
			{"(define x 5)", "", ""},
			{"(define (bump) (set! x (+ x 1)))", "", ""},
			{"(bump)", "", ""},
			{"(bump)", "", ""},
			{"x", "7", ""},
		}},
	}
	RunTestSuite(t, tests)
}

// TestTailCall exercises tail call elimination: iteration counts far beyond
// any plausible Go stack depth must complete for self-recursive and
// mutually recursive tail calls.
func TestTailCall(t *testing.T) {
	tests := TestSuite{
		{"self recursion", TestSequence{
			{`(define (countdown n)
			    (if (= n 0) (quote done) (countdown (- n 1))))`, "", ""},
			{"(countdown 100000)", "done", ""},
		}},
		{"mutual recursion", TestSequence{
			{"(define (even? n) (if (= n 0) #t (odd? (- n 1))))", "", ""},
			{"(define (odd? n) (if (= n 0) #f (even? (- n 1))))", "", ""},
			{"(even? 100000)", "#t", ""},
			{"(odd? 100001)", "#t", ""},
		}},
		{"tail position in cond and begin", TestSequence{
			{`(define (spin n)
			    (cond ((= n 0) (quote ok))
			          (else (spin (- n 1)))))`, "", ""},
			{"(spin 100000)", "ok", ""},
		}},
	}
	RunTestSuite(t, tests)
}
