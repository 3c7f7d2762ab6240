// Package insurance simulates the lifecycle of an insurance policy: monthly
// premiums, lapse after sustained non-payment, claim settlement and annual
// renewal pricing.
//
// A Policy is a value. Every operation returns an updated copy and never
// mutates its argument.
package insurance

import (
	"github.com/okian/finsim/internal/domain/money"
	"github.com/okian/finsim/internal/domain/types"
)

const (
	// LapseAfterUnpaidMonths is the number of consecutive missed premiums
	// that deactivates a policy.
	LapseAfterUnpaidMonths = 3
	// ClaimSurchargeRate is added to the renewal premium per covered claim.
	ClaimSurchargeRate = 0.10
	// ReinstatementFeeRate is charged on top of the overdue premiums.
	ReinstatementFeeRate = 0.10
)

// Policy is a snapshot of one insurance policy. Amounts are minor units.
type Policy struct {
	Type           types.InsuranceType `json:"type"`
	MonthlyPremium int64               `json:"monthly_premium"`
	Deductible     int64               `json:"deductible"`
	CoverageRate   float64             `json:"coverage_rate"` // share of the post-deductible cost paid by the insurer, 0..1
	IsActive       bool                `json:"is_active"`
	MonthsActive   int                 `json:"months_active"`
	MonthsUnpaid   int                 `json:"months_unpaid"`
	ClaimsThisYear int                 `json:"claims_this_year"`
	BasePremium    int64               `json:"base_premium"`
}

// NewPolicy returns an active policy with no history.
func NewPolicy(t types.InsuranceType, monthlyPremium, deductible int64, coverageRate float64) Policy {
	return Policy{
		Type:           t,
		MonthlyPremium: monthlyPremium,
		Deductible:     deductible,
		CoverageRate:   coverageRate,
		IsActive:       true,
		BasePremium:    monthlyPremium,
	}
}

// ProcessMonthlyPremium records one billing month. A paid month clears the
// arrears counter; the third consecutive unpaid month lapses the policy.
// Lapse is sticky: a later paid month does not reactivate the policy.
func ProcessMonthlyPremium(p Policy, paid bool) Policy {
	p.MonthsActive++
	if paid {
		p.MonthsUnpaid = 0
		return p
	}
	p.MonthsUnpaid++
	if p.MonthsUnpaid >= LapseAfterUnpaidMonths {
		p.IsActive = false
	}
	return p
}

// IsLapsed reports whether the policy is inactive.
func IsLapsed(p Policy) bool {
	return !p.IsActive
}

// RenewalPremium adds a flat 10% of the base premium per claim this year.
func RenewalPremium(p Policy) int64 {
	return money.RoundMonetary(float64(p.BasePremium) * (1 + ClaimSurchargeRate*float64(p.ClaimsThisYear)))
}

// Renew reprices the policy for a new year and clears the claim counter.
func Renew(p Policy) Policy {
	premium := RenewalPremium(p)
	p.MonthlyPremium = premium
	p.BasePremium = premium
	p.ClaimsThisYear = 0
	return p
}

// ReinstatementCost is the overdue premiums plus a 10% fee. Active policies
// cost nothing to reinstate.
func ReinstatementCost(p Policy) int64 {
	if p.IsActive {
		return 0
	}
	overdue := int64(p.MonthsUnpaid) * p.MonthlyPremium
	return overdue + money.Percent(overdue, ReinstatementFeeRate)
}

// Reinstate reactivates a lapsed policy once ReinstatementCost has been paid.
func Reinstate(p Policy) Policy {
	p.IsActive = true
	p.MonthsUnpaid = 0
	return p
}
