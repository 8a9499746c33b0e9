package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/ramalho/lispy/lisp"
	"github.com/ramalho/lispy/parser"
)

// QuitCommand exits the repl when entered alone on a line.
const QuitCommand = ".q"

const errorMark = "***"

// NewEnv returns an environment for interpreting user input: an empty frame
// layered over the standard global frame, with the s-expression reader
// attached.
func NewEnv() *lisp.LEnv {
	env := lisp.NewEnv(lisp.StandardEnv())
	env.Reader = parser.NewReader()
	return env
}

// RunRepl runs a read-eval-print loop until EOF or the quit command.
// Expressions may span lines; input continues under a blank prompt until
// the brackets balance.
func RunRepl(prompt string) {
	env := NewEnv()

	rl, err := readline.New(prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	errln("to exit type", QuitCommand)

	var buf []byte
	for {
		var line []byte
		line, err = rl.ReadSlice()
		if err != nil && err != readline.ErrInterrupt {
			break
		}
		if err == readline.ErrInterrupt {
			line = nil
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
			line = append(buf, line...)
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(line) == 0 {
			continue
		}
		if strings.TrimSpace(string(line)) == QuitCommand {
			err = io.EOF
			break
		}
		exprs, perr := parser.ParseLVal(line)
		if perr != nil {
			if parser.IsIncomplete(perr) {
				buf = line
				rl.SetPrompt(contPrompt)
				continue
			}
			errln(errorMark, perr)
			continue
		}
		for _, expr := range exprs {
			v := env.Eval(expr)
			if v.Type == lisp.LError {
				errln(errorMark, lisp.GoError(v))
				break
			}
			if !v.IsNone() {
				fmt.Println(v)
			}
		}
	}
	if err != io.EOF {
		errln(err)
		return
	}
	errln("done")
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}
