// Package numeric implements the number-theoretic predicates the engine and
// pattern detector consult: primality, twin-prime, Fibonacci membership,
// and perfect powers. All operate on arbitrary-precision integers; none
// forms a float.
package numeric

import "math/big"

// millerRabinWitnesses is the minimum witness count required (at least 10
// witnesses). big.Int.ProbablyPrime(n) runs n Miller-Rabin rounds plus a
// Baillie-PSW check; n=10 satisfies the floor.
const millerRabinWitnesses = 10

// IsPrime reports whether |n| is prime using a probabilistic Miller-Rabin
// test. Returns false for |n| < 2 (-1, 0, 1); a negative n is prime here
// exactly when -n is.
func IsPrime(n *big.Int) bool {
	abs := new(big.Int).Abs(n)
	if abs.Cmp(big.NewInt(2)) < 0 {
		return false
	}
	return abs.ProbablyPrime(millerRabinWitnesses)
}

// IsTwinPrime reports whether the numerator and denominator of a rational
// are both prime and differ by exactly 2 in absolute value.
func IsTwinPrime(num, den *big.Int) bool {
	if !IsPrime(num) || !IsPrime(den) {
		return false
	}
	diff := new(big.Int).Sub(num, den)
	diff.Abs(diff)
	return diff.Cmp(big.NewInt(2)) == 0
}
