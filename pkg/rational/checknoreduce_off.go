//go:build !ratdebug

package rational

// CheckNoReduce is a no-op outside the ratdebug build; see checknoreduce.go
// for the real assertion.
func CheckNoReduce(op string, a, b, result Rational) {}
