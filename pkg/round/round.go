// Package round implements the single rounding rule used for every reported
// number: half away from zero, applied to the shortest decimal form of the
// value.
package round

import "github.com/shopspring/decimal"

// Places rounds v to n decimal places, half away from zero. 2.345 becomes
// 2.35 and -2.345 becomes -2.35, even though neither is exact in binary.
func Places(v float64, n int32) float64 {
	return decimal.NewFromFloat(v).Round(n).InexactFloat64()
}

// Money rounds to cents
func Money(v float64) float64 {
	return Places(v, 2)
}

// Percent returns 100 * part / total rounded to 2 decimal places, 0 when
// total is 0
func Percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(total), 2).
		InexactFloat64()
}
