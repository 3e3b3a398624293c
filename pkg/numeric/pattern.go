package numeric

import "math/big"

// PatternOptions selects which optional pattern tests HasPatternComponent
// runs in addition to the always-on base primality test.
type PatternOptions struct {
	TwinPrime    bool
	Fibonacci    bool
	PerfectPower bool
}

// HasPatternComponent is the composite rational predicate: the numerator or
// denominator being prime always counts; the remaining tests are gated by
// PatternOptions and, where relevant, operate on absolute values.
func HasPatternComponent(num, den *big.Int, opts PatternOptions) bool {
	numPrime := IsPrime(num)
	denPrime := IsPrime(den)
	if numPrime || denPrime {
		return true
	}

	// Twin-prime requires both components prime, which the base rule above
	// already satisfies; this branch can never add a case the base rule
	// missed, but it's kept distinct since it mirrors the source's own
	// structure and future toggles may change the base rule independently.
	if opts.TwinPrime && numPrime && denPrime {
		diff := new(big.Int).Sub(num, den)
		diff.Abs(diff)
		if diff.Cmp(big.NewInt(2)) == 0 {
			return true
		}
	}

	if opts.Fibonacci {
		absNum := new(big.Int).Abs(num)
		absDen := new(big.Int).Abs(den)
		if IsFibonacci(absNum) || IsFibonacci(absDen) {
			return true
		}
	}

	if opts.PerfectPower {
		absNum := new(big.Int).Abs(num)
		absDen := new(big.Int).Abs(den)
		if IsPerfectPower(absNum) || IsPerfectPower(absDen) {
			return true
		}
	}

	return false
}
