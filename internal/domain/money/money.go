// Package money holds the canonical rounding rule for minor-unit arithmetic.
//
// Every percentage-based calculation in the simulation core funnels its
// fractional result through RoundMonetary before it becomes a money amount.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundMonetary rounds a fractional minor-unit amount half-to-even.
// NaN rounds to 0; values outside the int64 range, infinities included,
// saturate at the nearest bound.
func RoundMonetary(x float64) int64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= 0x1p63:
		return math.MaxInt64
	case x < -0x1p63:
		return math.MinInt64
	}
	return decimal.NewFromFloat(x).RoundBank(0).IntPart()
}

// Percent returns amount*rate rounded with RoundMonetary.
func Percent(amount int64, rate float64) int64 {
	return RoundMonetary(float64(amount) * rate)
}
