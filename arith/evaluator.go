package arith

import (
	"fmt"
	"math/big"
)

type evaluator struct {
	source string

	depth    int
	maxDepth int
}

func (ev *evaluator) evaluate(node Node) (*big.Rat, error) {
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.depth > ev.maxDepth {
		var pos Position
		if !isNilNode(node) {
			pos = node.Pos()
		}
		return nil, &DepthError{Pos: pos, Limit: ev.maxDepth, source: ev.source}
	}

	switch n := node.(type) {
	case *Literal:
		if n == nil || n.value == nil {
			return nil, &ContractError{Msg: "nil literal"}
		}
		return new(big.Rat).SetInt(n.value), nil
	case *BinaryOp:
		if n == nil {
			return nil, &ContractError{Msg: "nil operator node"}
		}
		return ev.evaluateBinary(n)
	default:
		return nil, &ContractError{Msg: fmt.Sprintf("unknown node type %T", node)}
	}
}

// evaluateBinary walks the left spine of n iteratively, so a flat chain such
// as 1 + 2 + 3 costs one level of depth however long it is. Only right
// operands, which hold parenthesized groups, recurse.
func (ev *evaluator) evaluateBinary(n *BinaryOp) (*big.Rat, error) {
	spine := []*BinaryOp{n}
	for {
		left, ok := spine[len(spine)-1].left.(*BinaryOp)
		if !ok || left == nil {
			break
		}
		spine = append(spine, left)
	}

	acc, err := ev.evaluate(spine[len(spine)-1].left)
	if err != nil {
		return nil, err
	}
	for i := len(spine) - 1; i >= 0; i-- {
		acc, err = ev.apply(spine[i], acc)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// apply evaluates the right operand of n and combines it with left, the
// already evaluated left operand.
func (ev *evaluator) apply(n *BinaryOp, left *big.Rat) (*big.Rat, error) {
	right, err := ev.evaluate(n.right)
	if err != nil {
		return nil, err
	}

	switch n.op {
	case OpAdd:
		return left.Add(left, right), nil
	case OpSub:
		return left.Sub(left, right), nil
	case OpMul:
		return left.Mul(left, right), nil
	case OpDiv:
		if right.Sign() == 0 {
			return nil, &DivisionByZeroError{Pos: n.position, source: ev.source}
		}
		return left.Quo(left, right), nil
	default:
		return nil, &ContractError{Msg: fmt.Sprintf("unsupported operator %s", n.op)}
	}
}
