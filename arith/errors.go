package arith

import (
	"errors"
	"fmt"
	"strings"
)

// LexicalError reports a character that cannot begin any token.
type LexicalError struct {
	Pos  Position
	Char rune
	// InvalidEncoding is set when the bytes at Pos are not valid UTF-8. Char
	// is then utf8.RuneError.
	InvalidEncoding bool

	source string
}

func (e *LexicalError) Error() string {
	return withCodeFrame(e.Message(), e.source, e.Pos)
}

// Message is the error text without the source excerpt.
func (e *LexicalError) Message() string {
	if e.InvalidEncoding {
		return fmt.Sprintf("lexical error at %s: invalid UTF-8 encoding", e.Pos)
	}
	return fmt.Sprintf("lexical error at %s: unexpected character %q", e.Pos, e.Char)
}

// ParseError reports a token that does not fit the grammar at its position.
// It covers kind mismatches, premature end of input and trailing tokens.
type ParseError struct {
	Pos      Position
	Expected []TokenKind
	Got      TokenKind

	source string
}

func (e *ParseError) Error() string {
	return withCodeFrame(e.Message(), e.source, e.Pos)
}

// Message is the error text without the source excerpt.
func (e *ParseError) Message() string {
	labels := make([]string, len(e.Expected))
	for i, kind := range e.Expected {
		labels[i] = tokenLabel(kind)
	}
	expected := strings.Join(labels, " or ")
	if expected == "" {
		expected = tokenLabel(TokenEOF)
	}
	return fmt.Sprintf("parse error at %s: expected %s, got %s", e.Pos, expected, tokenLabel(e.Got))
}

// DivisionByZeroError reports a division whose right operand evaluated to
// zero. Pos is the position of the division operator.
type DivisionByZeroError struct {
	Pos Position

	source string
}

func (e *DivisionByZeroError) Error() string {
	return withCodeFrame(e.Message(), e.source, e.Pos)
}

// Message is the error text without the source excerpt.
func (e *DivisionByZeroError) Message() string {
	if e.Pos.Line == 0 {
		return "division by zero"
	}
	return fmt.Sprintf("division by zero at %s", e.Pos)
}

// DepthError reports input nested deeper than the configured limit.
type DepthError struct {
	Pos   Position
	Limit int

	source string
}

func (e *DepthError) Error() string {
	return withCodeFrame(e.Message(), e.source, e.Pos)
}

// Message is the error text without the source excerpt.
func (e *DepthError) Message() string {
	if e.Pos.Line == 0 {
		return fmt.Sprintf("nesting depth exceeded (limit %d)", e.Limit)
	}
	return fmt.Sprintf("nesting depth exceeded (limit %d) at %s", e.Limit, e.Pos)
}

// ContractError reports misuse of the AST API, such as a nil child or an
// unknown operator. Parsed trees never produce it.
type ContractError struct {
	Msg string
}

func (e *ContractError) Error() string {
	return "internal error: " + e.Msg
}

// ErrorKind classifies errors returned by this package.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindLexical
	KindParse
	KindDivisionByZero
	KindLimit
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindLexical:
		return "LexicalError"
	case KindParse:
		return "ParseError"
	case KindDivisionByZero:
		return "DivisionByZeroError"
	case KindLimit:
		return "DepthError"
	case KindInternal:
		return "ContractError"
	default:
		return "UnknownError"
	}
}

// Kind reports which of the package error types err wraps.
func Kind(err error) ErrorKind {
	var (
		lexErr   *LexicalError
		parseErr *ParseError
		divErr   *DivisionByZeroError
		depthErr *DepthError
		ctrErr   *ContractError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &lexErr):
		return KindLexical
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &divErr):
		return KindDivisionByZero
	case errors.As(err, &depthErr):
		return KindLimit
	case errors.As(err, &ctrErr):
		return KindInternal
	default:
		return KindUnknown
	}
}

// Message returns the error text without any source excerpt, for callers
// that render positions themselves.
func Message(err error) string {
	var (
		lexErr   *LexicalError
		parseErr *ParseError
		divErr   *DivisionByZeroError
		depthErr *DepthError
	)
	switch {
	case errors.As(err, &lexErr):
		return lexErr.Message()
	case errors.As(err, &parseErr):
		return parseErr.Message()
	case errors.As(err, &divErr):
		return divErr.Message()
	case errors.As(err, &depthErr):
		return depthErr.Message()
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}

// ErrorPos returns the source position attached to err, if any.
func ErrorPos(err error) (Position, bool) {
	var (
		lexErr   *LexicalError
		parseErr *ParseError
		divErr   *DivisionByZeroError
		depthErr *DepthError
	)
	switch {
	case errors.As(err, &lexErr):
		return lexErr.Pos, true
	case errors.As(err, &parseErr):
		return parseErr.Pos, true
	case errors.As(err, &divErr):
		return divErr.Pos, divErr.Pos.Line > 0
	case errors.As(err, &depthErr):
		return depthErr.Pos, depthErr.Pos.Line > 0
	default:
		return Position{}, false
	}
}
