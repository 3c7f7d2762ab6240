package service

import (
	"github.com/okian/finsim/internal/domain/budget"
	"github.com/okian/finsim/internal/domain/insurance"
	"github.com/okian/finsim/internal/domain/types"
)

// Report is the outcome of projecting one scenario.
type Report struct {
	RunID             string           `json:"run_id"`
	Scenario          string           `json:"scenario"`
	Difficulty        types.Difficulty `json:"difficulty"`
	InflationRate     float64          `json:"inflation_rate"`
	InflationFactor   float64          `json:"inflation_factor"`
	Start             string           `json:"start"`
	End               string           `json:"end"`
	DaysSimulated     int              `json:"days_simulated"`
	Months            []MonthSnapshot  `json:"months"`
	Claims            []ClaimRecord    `json:"claims"`
	RejectedTransfers []TransferRecord `json:"rejected_transfers"`
	Flags             []string         `json:"flags"`
	Policies          []PolicySnapshot `json:"policies"`
	Checking          int64            `json:"checking"`
	Savings           int64            `json:"savings"`
	NetWorth          int64            `json:"net_worth"`
	TotalXP           int              `json:"total_xp"`
	TotalCoins        int              `json:"total_coins"`
}

// MonthSnapshot captures the books at one month end.
type MonthSnapshot struct {
	Month          string        `json:"month"`
	Income         int64         `json:"income"`
	BillsPaid      int64         `json:"bills_paid"`
	PremiumsPaid   int64         `json:"premiums_paid"`
	InterestEarned int64         `json:"interest_earned"`
	Saved          int64         `json:"saved"`
	BudgetScore    int           `json:"budget_score"`
	Reward         budget.Reward `json:"reward"`
	Follows503020  bool          `json:"follows_50_30_20"`
	Checking       int64         `json:"checking"`
	Savings        int64         `json:"savings"`
	NetWorth       int64         `json:"net_worth"`
}

// ClaimRecord is one filed claim and how it settled.
type ClaimRecord struct {
	Date   string                `json:"date"`
	Policy types.InsuranceType   `json:"policy"`
	Cost   int64                 `json:"cost"`
	Result insurance.ClaimResult `json:"result"`
}

// TransferRecord is a transfer the anti-cheat checks refused.
type TransferRecord struct {
	Date   string   `json:"date"`
	Amount int64    `json:"amount"`
	Flags  []string `json:"flags"`
}

// PolicySnapshot is the final state of a policy.
type PolicySnapshot struct {
	Type              types.InsuranceType `json:"type"`
	MonthlyPremium    int64               `json:"monthly_premium"`
	IsActive          bool                `json:"is_active"`
	MonthsActive      int                 `json:"months_active"`
	MonthsUnpaid      int                 `json:"months_unpaid"`
	ClaimsThisYear    int                 `json:"claims_this_year"`
	ReinstatementCost int64               `json:"reinstatement_cost"`
}

func snapshotPolicy(p insurance.Policy) PolicySnapshot {
	return PolicySnapshot{
		Type:              p.Type,
		MonthlyPremium:    p.MonthlyPremium,
		IsActive:          p.IsActive,
		MonthsActive:      p.MonthsActive,
		MonthsUnpaid:      p.MonthsUnpaid,
		ClaimsThisYear:    p.ClaimsThisYear,
		ReinstatementCost: insurance.ReinstatementCost(p),
	}
}
