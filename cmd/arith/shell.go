package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	shellModePrompt = "Enter 1/2/3 (or 'exit' to quit): "
	shellExprPrompt = `Enter an expression (or "exit" to quit): `
	shellGoodbye    = "Bye."
	maxShellLine    = 1 << 20
)

func shellCommand(args []string) error {
	fs, opts := newFlagSet("shell")
	modeName := fs.String("mode", "", "stage to run: tokens, tree or eval (prompts when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var initial mode
	if *modeName != "" {
		m, ok := parseMode(*modeName)
		if !ok {
			return fmt.Errorf("arith shell: unknown mode %q", *modeName)
		}
		initial = m
	}
	env, err := opts.setup(os.Stderr)
	if err != nil {
		return err
	}
	defer env.Close()

	return runShell(os.Stdin, os.Stdout, env, initial)
}

// runShell prompts for a mode unless one is given, then handles one
// expression per line until exit or end of input. Failures are printed and
// never stop the loop.
func runShell(in io.Reader, out io.Writer, env *runEnv, m mode) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxShellLine)

	if m == 0 {
		selected, ok, err := promptMode(scanner, out)
		if err != nil || !ok {
			return err
		}
		m = selected
	}
	env.logger.Debug("shell started", "mode", m.String())

	for {
		fmt.Fprint(out, shellExprPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := scanner.Text()
		if isExitCommand(line) {
			fmt.Fprintln(out, shellGoodbye)
			return nil
		}

		output, err := runMode(env.engine, m, line)
		env.logResult(m, line, err)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if output != "" {
			fmt.Fprintln(out, output)
		}
	}
}

// promptMode returns ok=false when the user exits or input ends.
func promptMode(scanner *bufio.Scanner, out io.Writer) (mode, bool, error) {
	fmt.Fprintln(out, "Select a mode:")
	for i, m := range modes {
		fmt.Fprintf(out, "  %d - %s (%s)\n", i+1, m, m.description())
	}
	for {
		fmt.Fprint(out, shellModePrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return 0, false, scanner.Err()
		}
		choice := strings.TrimSpace(scanner.Text())
		if isExitCommand(choice) {
			fmt.Fprintln(out, shellGoodbye)
			return 0, false, nil
		}
		if m, ok := parseMode(choice); ok {
			return m, true, nil
		}
		fmt.Fprintln(out, "Unknown mode. Try again.")
	}
}
