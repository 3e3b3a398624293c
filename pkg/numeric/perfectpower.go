package numeric

import "math/big"

// maxPerfectPowerExponent bounds the perfect-power search: a base raised to
// some k in [2, 64].
const maxPerfectPowerExponent = 64

// IsPerfectPower reports whether n > 0 equals some integer base raised to
// an integer power k in [2, 64]. For each candidate k it computes an
// integer k-th root and verifies root^k == n exactly.
func IsPerfectPower(n *big.Int) bool {
	if n.Sign() <= 0 {
		return false
	}
	if n.Cmp(big.NewInt(1)) == 0 {
		return true // 1 = 1^k for any k
	}
	for k := 2; k <= maxPerfectPowerExponent; k++ {
		root := integerNthRoot(n, k)
		if root == nil {
			continue
		}
		check := new(big.Int).Exp(root, big.NewInt(int64(k)), nil)
		if check.Cmp(n) == 0 {
			return true
		}
	}
	return false
}

// integerNthRoot returns floor(n^(1/k)) via binary search, or nil if k < 1.
// n must be positive.
func integerNthRoot(n *big.Int, k int) *big.Int {
	if k < 1 {
		return nil
	}
	if k == 1 {
		return new(big.Int).Set(n)
	}
	if k == 2 {
		return new(big.Int).Sqrt(n)
	}

	lo := big.NewInt(1)
	hi := new(big.Int).Set(n)
	kBig := big.NewInt(int64(k))
	one := big.NewInt(1)

	for lo.Cmp(hi) < 0 {
		mid := new(big.Int).Add(lo, hi)
		mid.Add(mid, one)
		mid.Div(mid, big.NewInt(2))

		p := new(big.Int).Exp(mid, kBig, nil)
		switch p.Cmp(n) {
		case 0:
			return mid
		case 1: // p > n
			hi.Sub(mid, one)
		default: // p < n
			lo.Set(mid)
		}
	}
	return lo
}
