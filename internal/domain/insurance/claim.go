package insurance

import "github.com/okian/finsim/internal/domain/money"

// ClaimResult is the settlement of one claim against one policy snapshot.
type ClaimResult struct {
	Covered           bool  `json:"covered"`
	DeductiblePaid    int64 `json:"deductible_paid"`
	InsurancePaid     int64 `json:"insurance_paid"`
	PlayerPays        int64 `json:"player_pays"`
	PolicyStillActive bool  `json:"policy_still_active"`
}

// ProcessClaim settles totalCost against p. A lapsed policy covers nothing.
// For an active policy the player pays the deductible (capped at the cost)
// plus the uncovered share of the remainder, so that
// DeductiblePaid + InsurancePaid + (PlayerPays - DeductiblePaid) == totalCost.
func ProcessClaim(p Policy, totalCost int64) ClaimResult {
	if !p.IsActive {
		return ClaimResult{
			Covered:           false,
			PlayerPays:        totalCost,
			PolicyStillActive: false,
		}
	}

	deductiblePaid := min(p.Deductible, totalCost)
	afterDeductible := totalCost - deductiblePaid
	insurancePaid := money.RoundMonetary(float64(afterDeductible) * p.CoverageRate)

	return ClaimResult{
		Covered:           true,
		DeductiblePaid:    deductiblePaid,
		InsurancePaid:     insurancePaid,
		PlayerPays:        deductiblePaid + (afterDeductible - insurancePaid),
		PolicyStillActive: true,
	}
}

// FileClaim settles a claim and returns the policy with the claim counted
// against the next renewal. Claims on a lapsed policy are not counted.
func FileClaim(p Policy, totalCost int64) (ClaimResult, Policy) {
	res := ProcessClaim(p, totalCost)
	if res.Covered {
		p.ClaimsThisYear++
	}
	return res, p
}
