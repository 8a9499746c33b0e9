package cmd

import (
	"fmt"
	"os"

	"github.com/ramalho/lispy/repl"
	"github.com/spf13/cobra"
)

var rootPrompt string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lispy",
	Short: "A tiny scheme interpreter",
	Long: `lispy is a tiny scheme interpreter.  Without arguments it starts an
interactive interpreter.  Use the run command to execute source files.`,
	Run: func(cmd *cobra.Command, args []string) {
		repl.RunRepl(rootPrompt)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootPrompt, "prompt", "> ",
		"Prompt written before reading interactive input")
}
