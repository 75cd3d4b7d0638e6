package arith

import (
	"fmt"
	"math/big"
)

// TokenKind identifies the lexical category of a token.
type TokenKind string

const (
	TokenEOF     TokenKind = "EOF"
	TokenInteger TokenKind = "INTEGER"

	TokenPlus   TokenKind = "PLUS"
	TokenMinus  TokenKind = "MINUS"
	TokenStar   TokenKind = "MUL"
	TokenSlash  TokenKind = "DIV"
	TokenLParen TokenKind = "LPAREN"
	TokenRParen TokenKind = "RPAREN"
)

func (k TokenKind) String() string { return string(k) }

// Token is a single lexical unit. Only INTEGER tokens carry a payload.
type Token struct {
	Kind TokenKind
	Pos  Position

	value *big.Int
}

// Position identifies a location in the source text. Offset is a zero-based
// byte index; Line and Column are one-based, columns counting runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Int returns a copy of the integer payload, or nil for non-INTEGER tokens.
func (t Token) Int() *big.Int {
	if t.value == nil {
		return nil
	}
	return new(big.Int).Set(t.value)
}

// Literal returns the source spelling of the token.
func (t Token) Literal() string {
	switch t.Kind {
	case TokenInteger:
		if t.value == nil {
			return "0"
		}
		return t.value.String()
	case TokenEOF:
		return ""
	default:
		return tokenSymbol(t.Kind)
	}
}

func (t Token) String() string {
	switch t.Kind {
	case TokenInteger:
		return fmt.Sprintf("Token(%s, %s)", t.Kind, t.Literal())
	case TokenEOF:
		return fmt.Sprintf("Token(%s, None)", t.Kind)
	default:
		return fmt.Sprintf("Token(%s, '%s')", t.Kind, t.Literal())
	}
}

func tokenSymbol(k TokenKind) string {
	switch k {
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	}
	return ""
}

func tokenLabel(k TokenKind) string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenInteger:
		return "integer"
	default:
		if sym := tokenSymbol(k); sym != "" {
			return fmt.Sprintf("%q", sym)
		}
		return string(k)
	}
}
