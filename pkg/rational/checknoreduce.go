//go:build ratdebug

package rational

import (
	"fmt"
	"math/big"
)

// CheckNoReduce independently recomputes the raw, unreduced numerator and
// denominator the named operation should have produced from a and b, and
// panics if result does not carry that exact pair. Because the expected
// pair is rebuilt here from the operands rather than reused from the
// caller's own locals, a future edit to Add/Sub/Mul/Div that divides out a
// common factor before returning — accidentally or by routing through
// big.Rat — diverges from this and trips the wire. Only linked in under
// `-tags ratdebug`; ordinary builds pay nothing for it.
func CheckNoReduce(op string, a, b, result Rational) {
	wantNum, wantDen := rawUnreduced(op, a, b)
	wantNum, wantDen = normalizeSignRaw(wantNum, wantDen)
	if result.Num.Cmp(wantNum) != 0 || result.Den.Cmp(wantDen) != 0 {
		panic(fmt.Sprintf(
			"rational: %s produced %s/%s, want unreduced %s/%s",
			op, result.Num, result.Den, wantNum, wantDen,
		))
	}
}

// rawUnreduced rebuilds the cross-multiplied numerator/denominator pair for
// op directly from a and b, with no shared state with the operation it is
// checking.
func rawUnreduced(op string, a, b Rational) (num, den *big.Int) {
	switch op {
	case "Add":
		num = new(big.Int).Add(new(big.Int).Mul(a.Num, b.Den), new(big.Int).Mul(b.Num, a.Den))
		den = new(big.Int).Mul(a.Den, b.Den)
	case "Sub":
		num = new(big.Int).Sub(new(big.Int).Mul(a.Num, b.Den), new(big.Int).Mul(b.Num, a.Den))
		den = new(big.Int).Mul(a.Den, b.Den)
	case "Mul":
		num = new(big.Int).Mul(a.Num, b.Num)
		den = new(big.Int).Mul(a.Den, b.Den)
	case "Div":
		num = new(big.Int).Mul(a.Num, b.Den)
		den = new(big.Int).Mul(a.Den, b.Num)
	default:
		panic("rational: CheckNoReduce called with unknown op " + op)
	}
	return num, den
}

func normalizeSignRaw(num, den *big.Int) (*big.Int, *big.Int) {
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	return num, den
}
