// Package interest accrues monthly interest on savings and revolving debt.
package interest

import "github.com/okian/finsim/internal/domain/money"

const monthsPerYear = 12

// MonthlyRate converts an annual percentage rate to a simple monthly rate.
func MonthlyRate(apr float64) float64 {
	return apr / monthsPerYear
}

// MonthlyInterest is one month of interest on balance. The sign follows balance.
func MonthlyInterest(balance int64, apr float64) int64 {
	return money.RoundMonetary(float64(balance) * MonthlyRate(apr))
}

// Accrue returns balance after one month of interest.
func Accrue(balance int64, apr float64) int64 {
	return balance + MonthlyInterest(balance, apr)
}

// Compound accrues interest month by month, rounding each posting the way a
// ledger would. months <= 0 returns balance.
func Compound(balance int64, apr float64, months int) int64 {
	for i := 0; i < months; i++ {
		balance = Accrue(balance, apr)
	}
	return balance
}

// MinimumPayment is the larger of floor and rate*balance, never more than
// the balance itself. Non-positive balances owe nothing.
func MinimumPayment(balance int64, rate float64, floor int64) int64 {
	if balance <= 0 {
		return 0
	}
	p := money.Percent(balance, rate)
	if p < floor {
		p = floor
	}
	if p > balance {
		p = balance
	}
	return p
}
