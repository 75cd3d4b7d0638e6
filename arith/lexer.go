package arith

import (
	"math/big"
	"unicode"
	"unicode/utf8"
)

// Lexer splits source text into tokens on demand. A Lexer is single-owner:
// its cursor only moves forward and it must not be shared between goroutines.
type Lexer struct {
	input string

	pos   Position
	width int
	ch    rune
	atEOF bool

	err error
}

// NewLexer returns a Lexer positioned at the start of input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, pos: Position{Line: 1, Column: 1}}
	l.decode()
	return l
}

func (l *Lexer) decode() {
	if l.pos.Offset >= len(l.input) {
		l.ch = 0
		l.width = 0
		l.atEOF = true
		return
	}
	l.ch, l.width = utf8.DecodeRuneInString(l.input[l.pos.Offset:])
}

func (l *Lexer) readRune() {
	if l.atEOF {
		return
	}
	if l.ch == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	l.pos.Offset += l.width
	l.decode()
}

// NextToken returns the next token. Once the input is exhausted every call
// returns an EOF token. After a lexical error the same error is returned on
// every subsequent call.
func (l *Lexer) NextToken() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}

	l.skipWhitespace()

	tok := Token{Pos: l.pos}
	if l.atEOF {
		tok.Kind = TokenEOF
		return tok, nil
	}

	switch l.ch {
	case '+':
		tok.Kind = TokenPlus
	case '-':
		tok.Kind = TokenMinus
	case '*':
		tok.Kind = TokenStar
	case '/':
		tok.Kind = TokenSlash
	case '(':
		tok.Kind = TokenLParen
	case ')':
		tok.Kind = TokenRParen
	default:
		if isDigit(l.ch) {
			tok.Kind = TokenInteger
			tok.value = l.readInteger()
			return tok, nil
		}
		l.err = &LexicalError{
			Pos:             l.pos,
			Char:            l.ch,
			InvalidEncoding: l.ch == utf8.RuneError && l.width == 1,
			source:          l.input,
		}
		return Token{}, l.err
	}

	l.readRune()
	return tok, nil
}

func (l *Lexer) skipWhitespace() {
	for !l.atEOF && unicode.IsSpace(l.ch) {
		l.readRune()
	}
}

func (l *Lexer) readInteger() *big.Int {
	start := l.pos.Offset
	for !l.atEOF && isDigit(l.ch) {
		l.readRune()
	}
	value, _ := new(big.Int).SetString(l.input[start:l.pos.Offset], 10)
	return value
}

// Only ASCII digits form integers; other Unicode digits are rejected.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
