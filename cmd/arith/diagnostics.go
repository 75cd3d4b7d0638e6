package main

import (
	"regexp"
	"strings"

	"github.com/mgomes/arith/arith"
)

// lineDiagnostic is a failure on one line of an expression file. Line and
// Column are one-based.
type lineDiagnostic struct {
	Line    int
	Column  int
	Kind    arith.ErrorKind
	Message string
}

// splitLines normalizes line endings and returns the lines of source.
func splitLines(source string) []string {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.Split(normalized, "\n")
}

// sourceDiagnostics treats every non-blank line as one expression. When
// evaluate is set, lines that parse are also evaluated so runtime faults
// such as division by zero are reported.
func sourceDiagnostics(engine *arith.Engine, source string, evaluate bool) []lineDiagnostic {
	var out []lineDiagnostic
	for i, line := range splitLines(source) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var err error
		if evaluate {
			_, err = engine.Evaluate(line)
		} else {
			_, err = engine.Parse(line)
		}
		if err == nil {
			continue
		}
		out = append(out, diagnosticAt(i+1, err))
	}
	return out
}

var linePositionPattern = regexp.MustCompile(` at [0-9]+:[0-9]+`)

// trimPosition drops the in-line " at L:C" from a message since callers
// report file positions themselves.
func trimPosition(msg string) string {
	if loc := linePositionPattern.FindStringIndex(msg); loc != nil {
		return msg[:loc[0]] + msg[loc[1]:]
	}
	return msg
}

// diagnosticAt builds the diagnostic for err on the given one-based line.
func diagnosticAt(line int, err error) lineDiagnostic {
	column := 1
	if pos, ok := arith.ErrorPos(err); ok && pos.Column > 0 {
		column = pos.Column
	}
	return lineDiagnostic{
		Line:    line,
		Column:  column,
		Kind:    arith.Kind(err),
		Message: trimPosition(arith.Message(err)),
	}
}
