package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

func checkCommand(args []string) error {
	fs, opts := newFlagSet("check")
	evaluate := fs.Bool("eval", false, "also evaluate each line and report runtime faults")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("arith check: path required")
	}

	path, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	input, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	env, err := opts.setup(os.Stderr)
	if err != nil {
		return err
	}
	defer env.Close()

	diags := sourceDiagnostics(env.engine, string(input), *evaluate)
	env.logger.Debug("checked file", "path", path, "issues", len(diags))
	if len(diags) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, d := range diags {
		fmt.Printf("%s:%d:%d: %s (%s)\n", path, d.Line, d.Column, d.Message, d.Kind)
	}

	return fmt.Errorf("check found %d issue(s)", len(diags))
}
