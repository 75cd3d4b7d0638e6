package arith

import (
	"math"
	"math/big"
	"strconv"
)

// Number is the exact result of an evaluation. Sums, differences and
// products of integers stay integral; division yields a rational.
type Number struct {
	rat *big.Rat
}

// NewNumber returns a Number holding a copy of r.
func NewNumber(r *big.Rat) Number {
	if r == nil {
		return Number{}
	}
	return Number{rat: new(big.Rat).Set(r)}
}

// IntNumber returns a Number holding v.
func IntNumber(v int64) Number {
	return Number{rat: new(big.Rat).SetInt64(v)}
}

func (n Number) value() *big.Rat {
	if n.rat == nil {
		return new(big.Rat)
	}
	return n.rat
}

// IsInt reports whether the value has no fractional part.
func (n Number) IsInt() bool { return n.value().IsInt() }

// Rat returns a copy of the exact value.
func (n Number) Rat() *big.Rat { return new(big.Rat).Set(n.value()) }

// Int returns the value as an integer. ok is false when the value is not
// integral.
func (n Number) Int() (v *big.Int, ok bool) {
	r := n.value()
	if !r.IsInt() {
		return nil, false
	}
	return new(big.Int).Set(r.Num()), true
}

// Float64 returns the nearest float64 to the value.
func (n Number) Float64() float64 {
	f, _ := n.value().Float64()
	return f
}

// Cmp compares n and other like big.Rat.Cmp.
func (n Number) Cmp(other Number) int {
	return n.value().Cmp(other.value())
}

// String prints integral values exactly and other values as the shortest
// decimal that round-trips through float64. Quotients outside the float64
// range are printed in scientific notation at float64 precision.
func (n Number) String() string {
	r := n.value()
	if r.IsInt() {
		return r.Num().String()
	}
	f, _ := r.Float64()
	if math.IsInf(f, 0) || f == 0 {
		return new(big.Float).SetPrec(53).SetRat(r).Text('g', -1)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
