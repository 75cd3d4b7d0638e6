package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "tokens", "tree", "eval":
		m, _ := parseMode(args[1])
		return stageCommand(m, args[2:])
	case "shell":
		return shellCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "lsp":
		return lspCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func stageCommand(m mode, args []string) error {
	fs, opts := newFlagSet(m.String())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("arith %s: expression required", m)
	}
	env, err := opts.setup(os.Stderr)
	if err != nil {
		return err
	}
	defer env.Close()

	input := strings.Join(fs.Args(), " ")
	output, err := runMode(env.engine, m, input)
	env.logResult(m, input, err)
	if err != nil {
		return err
	}
	if output != "" {
		fmt.Println(output)
	}
	return nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  tokens <expr>     print the tokens of an expression")
	fmt.Fprintln(os.Stderr, "  tree <expr>       print the syntax tree of an expression")
	fmt.Fprintln(os.Stderr, "  eval <expr>       print the value of an expression")
	fmt.Fprintln(os.Stderr, "  shell             line-oriented prompt reading stdin")
	fmt.Fprintln(os.Stderr, "  repl              full-screen interactive prompt")
	fmt.Fprintln(os.Stderr, "  fmt <path...>     rewrite .arith files in canonical form")
	fmt.Fprintln(os.Stderr, "  check <path>      report lines that fail to parse")
	fmt.Fprintln(os.Stderr, "  lsp               language server over stdio")
	fmt.Fprintln(os.Stderr, "Common flags:")
	fmt.Fprintln(os.Stderr, "  -max-depth int")
	fmt.Fprintln(os.Stderr, "    maximum parenthesis nesting (default 256)")
	fmt.Fprintln(os.Stderr, "  -log-level string")
	fmt.Fprintln(os.Stderr, "    stderr log level: debug, info, warn or error (default \"warn\")")
	fmt.Fprintln(os.Stderr, "  -log-file path")
	fmt.Fprintln(os.Stderr, "    also write debug-level JSON logs to path")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
