package main

import (
	"fmt"
	"strings"

	"github.com/mgomes/arith/arith"
)

// mode selects which stage handles each input line.
type mode int

const (
	modeTokens mode = iota + 1
	modeTree
	modeEval
)

var modes = []mode{modeTokens, modeTree, modeEval}

func (m mode) String() string {
	switch m {
	case modeTokens:
		return "tokens"
	case modeTree:
		return "tree"
	case modeEval:
		return "eval"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func (m mode) description() string {
	switch m {
	case modeTokens:
		return "lexer: print each token"
	case modeTree:
		return "parser: print the syntax tree"
	case modeEval:
		return "interpreter: print the value"
	default:
		return ""
	}
}

func (m mode) next() mode {
	if m >= modeEval {
		return modeTokens
	}
	return m + 1
}

// parseMode accepts the menu number, the mode name, or the stage name.
func parseMode(s string) (mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "tokens", "lexer":
		return modeTokens, true
	case "2", "tree", "parser":
		return modeTree, true
	case "3", "eval", "interpreter":
		return modeEval, true
	}
	return 0, false
}

func runMode(engine *arith.Engine, m mode, input string) (string, error) {
	switch m {
	case modeTokens:
		tokens, err := engine.Tokenize(input)
		if err != nil {
			return "", err
		}
		lines := make([]string, len(tokens))
		for i, tok := range tokens {
			lines[i] = tok.String()
		}
		return strings.Join(lines, "\n"), nil
	case modeTree:
		node, err := engine.Parse(input)
		if err != nil {
			return "", err
		}
		return arith.Dump(node), nil
	case modeEval:
		value, err := engine.Evaluate(input)
		if err != nil {
			return "", err
		}
		return value.String(), nil
	default:
		return "", fmt.Errorf("unknown mode %s", m)
	}
}

func isExitCommand(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "exit")
}
