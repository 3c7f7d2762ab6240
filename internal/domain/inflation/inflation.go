// Package inflation compounds recurring costs by a per-difficulty annual rate.
package inflation

import (
	"math"

	"github.com/okian/finsim/internal/domain/money"
	"github.com/okian/finsim/internal/domain/types"
)

const monthsPerYear = 12

// Bill is a named recurring cost in minor units.
type Bill struct {
	Name   string
	Amount int64
}

// AnnualToMonthly converts an annual rate to a simple monthly rate.
func AnnualToMonthly(annualRate float64) float64 {
	return annualRate / monthsPerYear
}

// ApplyMonthly inflates baseCost by one month of annualRate.
func ApplyMonthly(baseCost int64, annualRate float64) int64 {
	return money.RoundMonetary(float64(baseCost) * (1 + AnnualToMonthly(annualRate)))
}

// ApplyCumulative compounds baseCost monthly for the given number of months.
// months <= 0 returns baseCost unchanged.
func ApplyCumulative(baseCost int64, annualRate float64, months int) int64 {
	if months <= 0 {
		return baseCost
	}
	return money.RoundMonetary(float64(baseCost) * CumulativeFactor(annualRate, months))
}

// CumulativeFactor is the unrounded multiplier after compounding for months.
// It is meant for display; money math goes through ApplyCumulative.
func CumulativeFactor(annualRate float64, months int) float64 {
	if months <= 0 {
		return 1
	}
	return math.Pow(1+AnnualToMonthly(annualRate), float64(months))
}

// InflateRecurringBills returns a new slice with each bill inflated by one
// month. Names and order are preserved; bills is not modified.
func InflateRecurringBills(bills []Bill, annualRate float64) []Bill {
	out := make([]Bill, len(bills))
	for i, b := range bills {
		out[i] = Bill{Name: b.Name, Amount: ApplyMonthly(b.Amount, annualRate)}
	}
	return out
}

// RateFor returns the default annual inflation rate for a difficulty.
func RateFor(d types.Difficulty) float64 {
	return DefaultTable().Rate(d)
}

// Table maps each difficulty to an annual inflation rate.
type Table struct {
	Easy   float64
	Normal float64
	Hard   float64
}

// DefaultTable returns the built-in rates: 1.5%, 3% and 5%.
func DefaultTable() Table {
	return Table{Easy: 0.015, Normal: 0.03, Hard: 0.05}
}

// Rate looks up d; unknown difficulties use the normal rate.
func (t Table) Rate(d types.Difficulty) float64 {
	switch d {
	case types.DifficultyEasy:
		return t.Easy
	case types.DifficultyHard:
		return t.Hard
	default:
		return t.Normal
	}
}
