package numeric

import (
	"math/big"
	"testing"
)

func TestIsPrime(t *testing.T) {
	cases := []struct {
		n    int64
		want bool
	}{
		{-5, true}, {0, false}, {1, false}, {2, true}, {3, true},
		{4, false}, {17, true}, {91, false}, {97, true},
	}
	for _, c := range cases {
		if got := IsPrime(big.NewInt(c.n)); got != c.want {
			t.Errorf("IsPrime(%d) = %v, want %v", c.n, got, c.want)
		}
	}
}

func TestIsTwinPrime(t *testing.T) {
	if !IsTwinPrime(big.NewInt(5), big.NewInt(3)) {
		t.Errorf("5 and 3 should be twin primes")
	}
	if IsTwinPrime(big.NewInt(7), big.NewInt(2)) {
		t.Errorf("7 and 2 differ by 5, not twin primes")
	}
	if IsTwinPrime(big.NewInt(9), big.NewInt(7)) {
		t.Errorf("9 is not prime, should not be twin prime")
	}
}

func TestIsFibonacci(t *testing.T) {
	fib := map[int64]bool{0: true, 1: true, 2: true, 3: true, 5: true, 8: true, 13: true, 21: true, 34: true}
	for n := int64(0); n <= 40; n++ {
		want := fib[n]
		if got := IsFibonacci(big.NewInt(n)); got != want {
			t.Errorf("IsFibonacci(%d) = %v, want %v", n, got, want)
		}
	}
	if IsFibonacci(big.NewInt(-3)) {
		t.Errorf("negative n should not be Fibonacci")
	}
}

func TestIsPerfectPower(t *testing.T) {
	cases := []struct {
		n    int64
		want bool
	}{
		{1, true}, {4, true}, {8, true}, {9, true}, {16, true},
		{2, false}, {3, false}, {10, false}, {64, true}, {27, true},
	}
	for _, c := range cases {
		if got := IsPerfectPower(big.NewInt(c.n)); got != c.want {
			t.Errorf("IsPerfectPower(%d) = %v, want %v", c.n, got, c.want)
		}
	}
}

func TestHasPatternComponentBasePrimality(t *testing.T) {
	// has_pattern_component(2/4) is true (2 is prime).
	if !HasPatternComponent(big.NewInt(2), big.NewInt(4), PatternOptions{}) {
		t.Errorf("2/4 should match on base primality")
	}
	// has_pattern_component(4/9) with only base primality is false.
	if HasPatternComponent(big.NewInt(4), big.NewInt(9), PatternOptions{}) {
		t.Errorf("4/9 should not match with base primality only")
	}
	// with perfect_power enabled, true (4 and 9 are perfect powers).
	if !HasPatternComponent(big.NewInt(4), big.NewInt(9), PatternOptions{PerfectPower: true}) {
		t.Errorf("4/9 should match with perfect_power enabled")
	}
}

func TestIsFibonacciTick(t *testing.T) {
	if IsFibonacciTick(7) {
		t.Errorf("7 should not be a gate tick")
	}
	if !IsFibonacciTick(13) {
		t.Errorf("13 should be a gate tick")
	}
}
