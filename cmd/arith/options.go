package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"

	"github.com/mgomes/arith/arith"
)

type options struct {
	maxDepth int
	logLevel string
	logFile  string
}

func newFlagSet(name string) (*flag.FlagSet, *options) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	opts := &options{}
	fs.IntVar(&opts.maxDepth, "max-depth", 0, "maximum parenthesis nesting")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "stderr log level")
	fs.StringVar(&opts.logFile, "log-file", "", "also write JSON logs to this file")
	return fs, opts
}

// runEnv bundles what every command needs after flag parsing.
type runEnv struct {
	engine  *arith.Engine
	logger  *slog.Logger
	closers []io.Closer
}

func (o *options) setup(stderr io.Writer) (*runEnv, error) {
	engine, err := arith.NewEngine(arith.Config{MaxDepth: o.maxDepth})
	if err != nil {
		return nil, err
	}
	logger, closer, err := newLogger(stderr, o.logLevel, o.logFile)
	if err != nil {
		return nil, err
	}
	env := &runEnv{engine: engine, logger: logger}
	if closer != nil {
		env.closers = append(env.closers, closer)
	}
	return env, nil
}

func (e *runEnv) Close() error {
	var first error
	for _, c := range e.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (e *runEnv) logResult(m mode, input string, err error) {
	if err != nil {
		e.logger.Info("expression failed",
			slog.String("mode", m.String()),
			slog.String("input", input),
			slog.String("kind", arith.Kind(err).String()),
			slog.String("error", arith.Message(err)),
		)
		return
	}
	e.logger.Debug("expression handled",
		slog.String("mode", m.String()),
		slog.String("input", input),
	)
}

// newLogger fans records out to a text handler on stderr and, when path is
// set, a debug-level JSON handler on that file.
func newLogger(stderr io.Writer, level, path string) (*slog.Logger, io.Closer, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q", level)
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl}),
	}

	var closer io.Closer
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		closer = f
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}
