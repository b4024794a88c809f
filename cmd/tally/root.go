package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"tally/config"
	"tally/interp"
	"tally/repl"
)

var (
	verbose bool
	trace   bool
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "tally - a toy expression language",
	Long: `tally is a toy expression language: numbers, + - * /, grouping,
and "let" variable bindings, evaluated by a bytecode VM.

Without a subcommand it starts the interactive session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startRepl()
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return startRepl()
	},
}

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Evaluate a script file as one submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFile(args[0])
	},
}

var disasmCmd = &cobra.Command{
	Use:   "disasm <file>",
	Short: "Compile a script file and print its bytecode listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return disasmFile(args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "trace VM instructions")
	rootCmd.AddCommand(replCmd, runCmd, disasmCmd)
}

// setupLogging configures the commonlog backend from the flags.
func setupLogging() {
	verbosity := 0
	if verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)
}

func startRepl() error {
	setupLogging()

	cfg, err := config.FindAndLoad(".")
	if err != nil {
		return err
	}

	i := interp.New()
	i.SetTrace(trace || cfg.VM.Trace)

	return repl.New(i, cfg, os.Stdin, os.Stdout).Run()
}

func runFile(path string) error {
	setupLogging()

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	i := interp.New()
	i.SetTrace(trace)

	result, err := i.Evaluate(string(data))
	if err != nil {
		return err
	}
	if result.Retain {
		return fmt.Errorf("%s: unexpected end of input", path)
	}
	if result.Output != "" {
		fmt.Println(result.Output)
	}
	return nil
}

func disasmFile(path string) error {
	setupLogging()

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	chunk, err := interp.CompileOnly(string(data))
	if err != nil {
		return err
	}

	fmt.Print(chunk.DisassembleWithName(path))
	return nil
}
