// Package rational implements a deliberately non-reducing rational number
// type over arbitrary-precision integers. A Rational stores exactly the
// numerator and denominator produced by whatever operation built it; no
// operation in this package ever takes a GCD. Two rationals that are equal
// as numbers but carry distinct (numerator, denominator) pairs — 2/4 and
// 1/2 — remain observably distinct.
//
// This is the opposite of math/big.Rat, which always keeps its value in
// lowest terms. Reach for big.Rat when that's what you want; reach for this
// package when the numerator/denominator "tension" produced by repeated
// cross-multiplication is itself the thing being studied.
package rational

import (
	"fmt"
	"math/big"
)

// Rational is a (numerator, denominator) pair. The denominator is always
// non-zero, and by convention positive — the sign of the value lives
// entirely in the numerator. Sign normalization (flipping both fields when
// an operation produces a negative denominator) is not reduction: it never
// divides by a common factor, so the law of no-canonicalization holds.
type Rational struct {
	Num *big.Int
	Den *big.Int
}

// Zero returns 0/1.
func Zero() Rational {
	return Rational{Num: big.NewInt(0), Den: big.NewInt(1)}
}

// New builds n/d from int64 components. Panics if d == 0: a zero
// denominator is a programming fault (spec-level "arithmetic violation"),
// never a modeled runtime condition.
func New(n, d int64) Rational {
	if d == 0 {
		panic("rational: zero denominator in New")
	}
	return normalizeSign(Rational{Num: big.NewInt(n), Den: big.NewInt(d)})
}

// FromBig builds n/d, copying n and d so the caller's pointers are never
// aliased into the result. Panics if d is zero.
func FromBig(n, d *big.Int) Rational {
	if d.Sign() == 0 {
		panic("rational: zero denominator in FromBig")
	}
	return normalizeSign(Rational{Num: new(big.Int).Set(n), Den: new(big.Int).Set(d)})
}

// FromInt builds n/1.
func FromInt(n *big.Int) Rational {
	return Rational{Num: new(big.Int).Set(n), Den: big.NewInt(1)}
}

func normalizeSign(r Rational) Rational {
	if r.Den.Sign() < 0 {
		r.Num.Neg(r.Num)
		r.Den.Neg(r.Den)
	}
	return r
}

// Copy returns a deep copy.
func (r Rational) Copy() Rational {
	return Rational{Num: new(big.Int).Set(r.Num), Den: new(big.Int).Set(r.Den)}
}

// String renders "num/den" in decimal.
func (r Rational) String() string {
	return fmt.Sprintf("%s/%s", r.Num.String(), r.Den.String())
}

// NumZero reports whether the numerator is zero. Spec-level "zero-test".
func (r Rational) NumZero() bool { return r.Num.Sign() == 0 }

// Sign reports -1, 0, or 1 based on the numerator, matching spec-level
// "sign test uses the numerator" (the denominator is always positive).
func (r Rational) Sign() int { return r.Num.Sign() }

// AbsNum returns |numerator| as a fresh big.Int.
func (r Rational) AbsNum() *big.Int {
	return new(big.Int).Abs(r.Num)
}

// Add computes a/b + c/d = (ad + bc)/(bd) with no reduction.
func Add(a, b Rational) Rational {
	n := new(big.Int).Add(new(big.Int).Mul(a.Num, b.Den), new(big.Int).Mul(b.Num, a.Den))
	d := new(big.Int).Mul(a.Den, b.Den)
	result := normalizeSign(Rational{Num: n, Den: d})
	CheckNoReduce("Add", a, b, result)
	return result
}

// Sub computes a/b - c/d = (ad - bc)/(bd). Subtraction operates on the
// numerator.
func Sub(a, b Rational) Rational {
	ad := new(big.Int).Mul(a.Num, b.Den)
	bc := new(big.Int).Mul(b.Num, a.Den)
	n := new(big.Int).Sub(ad, bc)
	d := new(big.Int).Mul(a.Den, b.Den)
	result := normalizeSign(Rational{Num: n, Den: d})
	CheckNoReduce("Sub", a, b, result)
	return result
}

// Delta is Sub renamed for call sites computing δ = current − previous.
func Delta(current, previous Rational) Rational { return Sub(current, previous) }

// Mul computes a/b * c/d = (ac)/(bd).
func Mul(a, b Rational) Rational {
	n := new(big.Int).Mul(a.Num, b.Num)
	d := new(big.Int).Mul(a.Den, b.Den)
	result := normalizeSign(Rational{Num: n, Den: d})
	CheckNoReduce("Mul", a, b, result)
	return result
}

// Div computes a/b / c/d = (ad)/(bc). ok is false, and the zero value is
// returned, when the divisor's numerator is zero — a modeled no-op, not a
// panic.
func Div(a, b Rational) (result Rational, ok bool) {
	if b.Num.Sign() == 0 {
		return Rational{}, false
	}
	n := new(big.Int).Mul(a.Num, b.Den)
	d := new(big.Int).Mul(a.Den, b.Num)
	result = normalizeSign(Rational{Num: n, Den: d})
	CheckNoReduce("Div", a, b, result)
	return result, true
}

// Negate returns -a, operating on the numerator only.
func Negate(a Rational) Rational {
	return Rational{Num: new(big.Int).Neg(a.Num), Den: new(big.Int).Set(a.Den)}
}

// Cmp compares two rationals by cross-multiplication (both denominators are
// always positive, so the comparison direction is preserved without ever
// forming a common-denominator reduction). Returns -1, 0, or 1.
func Cmp(a, b Rational) int {
	left := new(big.Int).Mul(a.Num, b.Den)
	right := new(big.Int).Mul(b.Num, a.Den)
	return left.Cmp(right)
}

// Equal reports whether two rationals are numerically equal (cross-
// multiplication equality), irrespective of their distinct representations.
func Equal(a, b Rational) bool { return Cmp(a, b) == 0 }

// SameRepr reports whether two rationals carry identical (numerator,
// denominator) pairs — the stronger notion callers need when asserting that
// distinct representations are preserved rather than merely numerically
// equal.
func SameRepr(a, b Rational) bool {
	return a.Num.Cmp(b.Num) == 0 && a.Den.Cmp(b.Den) == 0
}

// Floor returns ⌊a/b⌋ as an integer, using floored (not truncated) division:
// the unique q such that q*b <= a < (q+1)*b. b (the denominator) is always
// positive by invariant.
func (r Rational) Floor() *big.Int {
	q, rem := new(big.Int), new(big.Int)
	q.QuoRem(r.Num, r.Den, rem)
	if rem.Sign() < 0 {
		q.Sub(q, big.NewInt(1))
	}
	return q
}

// Ceil returns ⌈a/b⌉ as an integer.
func (r Rational) Ceil() *big.Int {
	q, rem := new(big.Int), new(big.Int)
	q.QuoRem(r.Num, r.Den, rem)
	if rem.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// Mod computes a − ⌊a/b⌋·b as a Rational. Fails (ok=false) under the same
// condition Div fails, since Mod is defined in terms of a/b.
func Mod(a, b Rational) (result Rational, ok bool) {
	q, divOK := Div(a, b)
	if !divOK {
		return Rational{}, false
	}
	floor := FromInt(q.Floor())
	return Sub(a, Mul(floor, b)), true
}
