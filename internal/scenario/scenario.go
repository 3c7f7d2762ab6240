// Package scenario describes a scripted player timeline for the projector.
package scenario

import (
	"fmt"

	"github.com/okian/finsim/internal/domain/calendar"
	"github.com/okian/finsim/internal/domain/types"
)

// Bill kinds for the 50/30/20 split.
const (
	KindNeed = "need"
	KindWant = "want"
)

// Scenario is a what-if timeline. Amounts are minor units; dates are
// YYYY-MM-DD and months YYYY-MM on the game calendar.
type Scenario struct {
	Name          string     `koanf:"name"`
	Start         string     `koanf:"start"`
	Days          int        `koanf:"days"`
	Difficulty    string     `koanf:"difficulty"`
	MonthlyIncome int64      `koanf:"monthly_income"`
	Bills         []Bill     `koanf:"bills"`
	Budget        []Line     `koanf:"budget"`
	Balances      Balances   `koanf:"balances"`
	SavingsAPY    float64    `koanf:"savings_apy"`
	Policies      []Policy   `koanf:"policies"`
	MissedPremium []string   `koanf:"missed_premiums"`
	Claims        []Claim    `koanf:"claims"`
	Transfers     []Transfer `koanf:"transfers"`
}

// Bill is a recurring monthly cost paid at month end.
type Bill struct {
	Name     string `koanf:"name"`
	Category string `koanf:"category"` // defaults to Name
	Kind     string `koanf:"kind"`     // need (default) or want
	Amount   int64  `koanf:"amount"`
}

// CategoryName is the budget category the bill is charged to.
func (b Bill) CategoryName() string {
	if b.Category != "" {
		return b.Category
	}
	return b.Name
}

// Line is one planned budget category.
type Line struct {
	Category string `koanf:"category"`
	Budgeted int64  `koanf:"budgeted"`
}

// Balances are the opening account balances.
type Balances struct {
	Checking int64 `koanf:"checking"`
	Savings  int64 `koanf:"savings"`
}

// Policy is an insurance policy held from the start date.
type Policy struct {
	Type           string  `koanf:"type"`
	MonthlyPremium int64   `koanf:"monthly_premium"`
	Deductible     int64   `koanf:"deductible"`
	CoverageRate   float64 `koanf:"coverage_rate"`
}

// Claim is a loss filed against the first policy of the given type.
type Claim struct {
	Date   string `koanf:"date"`
	Policy string `koanf:"policy"`
	Cost   int64  `koanf:"cost"`
}

// Transfer moves money from checking to savings on a date.
type Transfer struct {
	Date   string `koanf:"date"`
	Amount int64  `koanf:"amount"`
}

// StartDate returns the parsed start date. Call Validate first.
func (s Scenario) StartDate() calendar.GameDate {
	return calendar.Parse(s.Start)
}

// MissedMonths returns the set of months whose premium goes unpaid, keyed as
// zero-padded YYYY-MM so "2026-1" and "2026-01" name the same month.
// Entries that do not parse are skipped; Validate rejects them.
func (s Scenario) MissedMonths() map[string]bool {
	out := make(map[string]bool, len(s.MissedPremium))
	for _, m := range s.MissedPremium {
		d, err := calendar.ParseStrict(m + "-01")
		if err != nil {
			continue
		}
		out[MonthKey(d)] = true
	}
	return out
}

// MonthKey formats the month containing d as YYYY-MM.
func MonthKey(d calendar.GameDate) string {
	return calendar.Format(d)[:7]
}

// Level returns the scenario difficulty, or fallback when none is named.
func (s Scenario) Level(fallback types.Difficulty) types.Difficulty {
	if s.Difficulty == "" {
		return fallback
	}
	return types.ParseDifficulty(s.Difficulty)
}

// Validate checks that the timeline can be projected.
func (s Scenario) Validate() error {
	if _, err := calendar.ParseStrict(s.Start); err != nil {
		return fmt.Errorf("%w: start: %w", ErrInvalidScenario, err)
	}
	if s.Days <= 0 {
		return fmt.Errorf("%w: days must be positive, got %d", ErrInvalidScenario, s.Days)
	}
	if s.MonthlyIncome < 0 || s.SavingsAPY < 0 {
		return fmt.Errorf("%w: income and savings_apy must not be negative", ErrInvalidScenario)
	}
	for _, b := range s.Bills {
		if b.Amount < 0 {
			return fmt.Errorf("%w: bill %q has a negative amount", ErrInvalidScenario, b.Name)
		}
		if b.Kind != "" && b.Kind != KindNeed && b.Kind != KindWant {
			return fmt.Errorf("%w: bill %q kind must be %s or %s", ErrInvalidScenario, b.Name, KindNeed, KindWant)
		}
	}
	for _, l := range s.Budget {
		if l.Budgeted < 0 {
			return fmt.Errorf("%w: budget %q is negative", ErrInvalidScenario, l.Category)
		}
	}
	held := map[types.InsuranceType]bool{}
	for _, p := range s.Policies {
		if p.MonthlyPremium < 0 || p.Deductible < 0 {
			return fmt.Errorf("%w: policy %q has negative amounts", ErrInvalidScenario, p.Type)
		}
		if p.CoverageRate < 0 || p.CoverageRate > 1 {
			return fmt.Errorf("%w: policy %q coverage_rate must be within [0,1]", ErrInvalidScenario, p.Type)
		}
		held[types.ParseInsuranceType(p.Type)] = true
	}
	for _, m := range s.MissedPremium {
		if _, err := calendar.ParseStrict(m + "-01"); err != nil {
			return fmt.Errorf("%w: missed_premiums: %w", ErrInvalidScenario, err)
		}
	}
	for _, c := range s.Claims {
		if _, err := calendar.ParseStrict(c.Date); err != nil {
			return fmt.Errorf("%w: claim date: %w", ErrInvalidScenario, err)
		}
		if c.Cost < 0 {
			return fmt.Errorf("%w: claim on %s has a negative cost", ErrInvalidScenario, c.Date)
		}
		if !held[types.ParseInsuranceType(c.Policy)] {
			return fmt.Errorf("%w: claim on %s names policy %q which is not held", ErrInvalidScenario, c.Date, c.Policy)
		}
	}
	for _, t := range s.Transfers {
		if _, err := calendar.ParseStrict(t.Date); err != nil {
			return fmt.Errorf("%w: transfer date: %w", ErrInvalidScenario, err)
		}
	}
	return nil
}
