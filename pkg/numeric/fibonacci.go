package numeric

import "math/big"

// IsFibonacci reports whether n (a non-negative integer) appears in the
// Fibonacci sequence, using the classical identity: n is Fibonacci iff
// 5n²+4 or 5n²−4 is a perfect square.
func IsFibonacci(n *big.Int) bool {
	if n.Sign() < 0 {
		return false
	}
	five := big.NewInt(5)
	four := big.NewInt(4)
	nSq := new(big.Int).Mul(n, n)
	nSq.Mul(nSq, five)

	plus := new(big.Int).Add(nSq, four)
	if isPerfectSquare(plus) {
		return true
	}
	minus := new(big.Int).Sub(nSq, four)
	return isPerfectSquare(minus)
}

// isPerfectSquare reports whether n is a non-negative perfect square.
func isPerfectSquare(n *big.Int) bool {
	if n.Sign() < 0 {
		return false
	}
	root := new(big.Int).Sqrt(n)
	check := new(big.Int).Mul(root, root)
	return check.Cmp(n) == 0
}

// fibonacciTicks is the fixed gate set of Fibonacci-numbered tick indices,
// extended up to the largest value that still fits comfortably in a tick
// counter.
var fibonacciTicks = map[int64]bool{
	5: true, 13: true, 89: true, 233: true, 1597: true, 4181: true,
	10946: true, 28657: true, 75025: true, 196418: true, 514229: true,
	1346269: true, 3524578: true, 9227465: true, 24157817: true,
	63245986: true, 165580141: true, 433494437: true, 1134903170: true,
}

// IsFibonacciTick reports whether tick is in the fixed gate set used to
// throttle ρ-driven ψ firings in RHO_ONLY and MSTEP_RHO modes.
func IsFibonacciTick(tick int64) bool {
	return fibonacciTicks[tick]
}
