package contract

import (
	"math"

	"github.com/shopspring/decimal"
)

// mulFloor returns floor(amount * pct) and fails when the result leaves the int64 range.
func mulFloor(amount int64, pct decimal.Decimal) (int64, error) {
	v := decimal.NewFromInt(amount).Mul(pct).Floor()
	if v.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || v.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, newError(KindOverflow, "%s x %s does not fit an amount", decimal.NewFromInt(amount), pct)
	}
	return v.IntPart(), nil
}

// mulDivFloor returns floor(amount * part / total) with exact integer division.
func mulDivFloor(amount, part, total int64) int64 {
	if total <= 0 || amount <= 0 || part <= 0 {
		return 0
	}
	q, _ := decimal.NewFromInt(amount).Mul(decimal.NewFromInt(part)).QuoRem(decimal.NewFromInt(total), 0)
	return q.IntPart()
}

// deadline is now plus seconds, failing instead of wrapping around.
func deadline(now, seconds int64) (int64, error) {
	t, err := addAmount(now, seconds)
	if err != nil {
		return 0, newError(KindOverflow, "deadline %d + %ds out of range", now, seconds)
	}
	return t, nil
}

// addAmount adds two non-negative amounts and reports overflow.
func addAmount(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, newError(KindOverflow, "amount overflow")
	}
	return a + b, nil
}

// clampSub subtracts every deduction from base and stops at zero.
func clampSub(base int64, deductions ...int64) int64 {
	for _, d := range deductions {
		if d >= base {
			return 0
		}
		base -= d
	}
	return base
}

// outbids reports whether amount strictly exceeds highest * (1 + minimum).
func outbids(amount, highest int64, minimum decimal.Decimal) bool {
	if amount <= 0 {
		return false
	}
	need := decimal.NewFromInt(highest).Mul(decimal.NewFromInt(1).Add(minimum))
	return decimal.NewFromInt(amount).GreaterThan(need)
}

// voteThreshold is floor(totalSupply * pct) with a floor of one vote.
func voteThreshold(totalSupply uint64, pct decimal.Decimal) uint64 {
	v := decimal.NewFromUint64(totalSupply).Mul(pct).Floor()
	if !v.IsPositive() {
		return 1
	}
	if v.GreaterThan(decimal.NewFromUint64(math.MaxUint64)) {
		return math.MaxUint64
	}
	return v.BigInt().Uint64()
}

// validPercent accepts decimals in [0, 1].
func validPercent(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Cmp(decimal.NewFromInt(1)) <= 0
}
