package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ramalho/lispy/lisp"
	"github.com/ramalho/lispy/parser"
	"github.com/ramalho/lispy/repl"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] source... [name=value ...]",
	Short: "Run lisp code",
	Long: `Run lisp code supplied via the command line or a file.  Trailing
name=value arguments pre-define global variables before any source runs;
values are parsed with the reader's atom rules.`,
	Run: func(cmd *cobra.Command, args []string) {
		sources, bindings := splitRunArgs(args)
		if len(sources) == 0 {
			fmt.Fprintln(os.Stderr, "no sources given")
			os.Exit(1)
		}

		env := repl.NewEnv()
		defineArgBindings(env, bindings)
		for _, src := range sources {
			v := runSource(env, src)
			if err := lisp.GoError(v); err != nil {
				reportRunError(err)
				os.Exit(1)
			}
			if runPrint && !v.IsNone() {
				fmt.Println(v)
			}
		}
	},
}

func runSource(env *lisp.LEnv, src string) *lisp.LVal {
	if runExpression {
		return env.LoadString("command-line", src)
	}
	f, err := os.Open(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()
	return env.Load(filepath.Base(src), f)
}

// splitRunArgs separates source arguments from name=value variable
// bindings.
func splitRunArgs(args []string) (sources []string, bindings []string) {
	for _, arg := range args {
		if strings.Contains(arg, "=") {
			bindings = append(bindings, arg)
			continue
		}
		sources = append(sources, arg)
	}
	return sources, bindings
}

// defineArgBindings defines a global variable for every well-formed
// name=value argument.  Malformed bindings and unparsable values are
// silently skipped.
func defineArgBindings(env *lisp.LEnv, bindings []string) {
	for _, arg := range bindings {
		parts := strings.Split(arg, "=")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		atom, err := parser.ParseAtom(parts[1])
		if err != nil {
			continue
		}
		env.PutGlobal(lisp.Symbol(parts[0]), atom)
	}
}

// reportRunError prints err, suggesting a name=value option when the
// failure was an unbound variable at the top level of a batch run.
func reportRunError(err error) {
	fmt.Fprintln(os.Stderr, err)
	var lerr *lisp.Error
	if errors.As(err, &lerr) && lerr.Condition == lisp.ConditionUnboundVariable {
		name := lerr.Message
		fmt.Fprintf(os.Stderr, "    You can define ``%s'' as an option:\n", name)
		fmt.Fprintf(os.Stderr, "    $ %s run FILE %s=<value>\n", rootCmd.Use, name)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
