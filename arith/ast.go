package arith

import (
	"fmt"
	"math/big"
	"strings"
)

// Node is an expression tree node. The set of implementations is closed:
// only *Literal and *BinaryOp satisfy it.
type Node interface {
	Pos() Position
	node()
}

// Operator is a binary arithmetic operator.
type Operator uint8

const (
	OpAdd Operator = iota + 1
	OpSub
	OpMul
	OpDiv
)

// Valid reports whether op is one of the four supported operators.
func (op Operator) Valid() bool {
	return op >= OpAdd && op <= OpDiv
}

// Symbol returns the operator as it is written in source text.
func (op Operator) Symbol() string {
	return tokenSymbol(op.tokenKind())
}

func (op Operator) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Operator(%d)", uint8(op))
	}
	return op.tokenKind().String()
}

func (op Operator) tokenKind() TokenKind {
	switch op {
	case OpAdd:
		return TokenPlus
	case OpSub:
		return TokenMinus
	case OpMul:
		return TokenStar
	case OpDiv:
		return TokenSlash
	}
	return ""
}

func operatorFor(kind TokenKind) (Operator, bool) {
	switch kind {
	case TokenPlus:
		return OpAdd, true
	case TokenMinus:
		return OpSub, true
	case TokenStar:
		return OpMul, true
	case TokenSlash:
		return OpDiv, true
	}
	return 0, false
}

// Literal is an integer constant.
type Literal struct {
	value    *big.Int
	position Position
}

func (*Literal) node()           {}
func (n *Literal) Pos() Position { return n.position }

// Value returns a copy of the literal's integer.
func (n *Literal) Value() *big.Int {
	if n.value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(n.value)
}

// BinaryOp applies an operator to two subtrees.
type BinaryOp struct {
	left     Node
	op       Operator
	right    Node
	position Position
}

func (*BinaryOp) node()           {}
func (n *BinaryOp) Pos() Position { return n.position }
func (n *BinaryOp) Left() Node    { return n.left }
func (n *BinaryOp) Op() Operator  { return n.op }
func (n *BinaryOp) Right() Node   { return n.right }

// NewLiteral returns a literal holding a copy of value. Literals are
// non-negative, as in source text.
func NewLiteral(value *big.Int) (*Literal, error) {
	if value == nil {
		return nil, &ContractError{Msg: "literal value is nil"}
	}
	if value.Sign() < 0 {
		return nil, &ContractError{Msg: fmt.Sprintf("literal value %s is negative", value)}
	}
	return &Literal{value: new(big.Int).Set(value)}, nil
}

// NewIntLiteral returns a literal holding value.
func NewIntLiteral(value uint64) *Literal {
	return &Literal{value: new(big.Int).SetUint64(value)}
}

// NewBinaryOp builds an operator node. It fails when op is not a supported
// operator or either child is missing.
func NewBinaryOp(left Node, op Operator, right Node) (*BinaryOp, error) {
	if !op.Valid() {
		return nil, &ContractError{Msg: fmt.Sprintf("unsupported operator %s", op)}
	}
	if isNilNode(left) || isNilNode(right) {
		return nil, &ContractError{Msg: fmt.Sprintf("%s operand is nil", op)}
	}
	return &BinaryOp{left: left, op: op, right: right}, nil
}

func isNilNode(n Node) bool {
	switch n := n.(type) {
	case *Literal:
		return n == nil || n.value == nil
	case *BinaryOp:
		return n == nil
	default:
		return true
	}
}

// Format renders node as infix text with the fewest parentheses that keep
// its structure. Parsing the result yields a tree equal to node.
func Format(node Node) string {
	var b strings.Builder
	writeInfix(&b, node)
	return b.String()
}

func (op Operator) precedence() int {
	if op == OpMul || op == OpDiv {
		return 2
	}
	return 1
}

func writeInfix(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Literal:
		if n == nil || n.value == nil {
			b.WriteString("<nil>")
			return
		}
		b.WriteString(n.value.String())
	case *BinaryOp:
		if n == nil {
			b.WriteString("<nil>")
			return
		}
		prec := n.op.precedence()
		// Operators are left-associative, so a right operand at the same
		// level needs parentheses and a left one does not.
		writeOperand(b, n.left, func(p int) bool { return p < prec })
		b.WriteByte(' ')
		b.WriteString(n.op.Symbol())
		b.WriteByte(' ')
		writeOperand(b, n.right, func(p int) bool { return p <= prec })
	default:
		b.WriteString("<nil>")
	}
}

func writeOperand(b *strings.Builder, node Node, needParens func(int) bool) {
	if child, ok := node.(*BinaryOp); ok && child != nil && needParens(child.op.precedence()) {
		b.WriteByte('(')
		writeInfix(b, child)
		b.WriteByte(')')
		return
	}
	writeInfix(b, node)
}

// Dump renders node as an indented tree, one field per line.
func Dump(node Node) string {
	var b strings.Builder
	dumpNode(&b, node, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func dumpNode(b *strings.Builder, node Node, level int) {
	indent := strings.Repeat("  ", level)
	switch n := node.(type) {
	case *Literal:
		if n == nil || n.value == nil {
			fmt.Fprintf(b, "%sUnknown node type: %T\n", indent, node)
			return
		}
		fmt.Fprintf(b, "%sNum(%s)\n", indent, n.value)
	case *BinaryOp:
		if n == nil {
			fmt.Fprintf(b, "%sUnknown node type: %T\n", indent, node)
			return
		}
		fmt.Fprintf(b, "%sBinOp:\n", indent)
		fmt.Fprintf(b, "%s  left: \n", indent)
		dumpNode(b, n.left, level+2)
		fmt.Fprintf(b, "%s  op: %s\n", indent, n.op)
		fmt.Fprintf(b, "%s  right: \n", indent)
		dumpNode(b, n.right, level+2)
	default:
		fmt.Fprintf(b, "%sUnknown node type: %T\n", indent, node)
	}
}

// Equal reports whether a and b have the same structure and values.
// Positions are ignored.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		if !ok || x == nil || y == nil || x.value == nil || y.value == nil {
			return ok && x == y
		}
		return x.value.Cmp(y.value) == 0
	case *BinaryOp:
		y, ok := b.(*BinaryOp)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}
		return x.op == y.op && Equal(x.left, y.left) && Equal(x.right, y.right)
	default:
		return a == nil && b == nil
	}
}
