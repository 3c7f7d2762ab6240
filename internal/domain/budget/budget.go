// Package budget scores how closely a player's monthly spending follows
// their plan and maps that score onto rewards.
package budget

import "github.com/okian/finsim/internal/domain/money"

const (
	maxScore = 100

	onTargetRatio   = 0.8
	underSpendRatio = 0.5
	underSpendScore = 90
	farUnderScore   = 75

	// Each percentage point of overspend costs two score points.
	overspendPenalty = 200
)

// Category is one line of a monthly budget, amounts in minor units.
type Category struct {
	Name     string
	Budgeted int64
	Spent    int64
}

// CategoryScore grades one category from 0 to 100.
//
// Spending 80-100% of the budget is perfect. Leaving much of a budget unused
// is mildly penalized so that inflated budgets cannot game the score.
// Overspending loses two points per percent over; spending without any budget
// scores zero.
func CategoryScore(budgeted, spent int64) int {
	if budgeted <= 0 {
		if spent > 0 {
			return 0
		}
		return maxScore
	}

	ratio := float64(spent) / float64(budgeted)
	if ratio <= 1 {
		switch {
		case ratio >= onTargetRatio:
			return maxScore
		case ratio >= underSpendRatio:
			return underSpendScore
		default:
			return farUnderScore
		}
	}

	score := money.RoundMonetary(maxScore - (ratio-1)*overspendPenalty)
	if score < 0 {
		return 0
	}
	return int(score)
}

// Score is the budget-weighted average of the category scores.
//
// Categories with spending but no budget do not take part in the average;
// instead the whole score is scaled by totalBudget/(totalBudget+unbudgeted),
// so unplanned spending always drags the month down.
func Score(categories []Category) int {
	if len(categories) == 0 {
		return 0
	}

	var totalBudget, totalSpent, unbudgeted int64
	for _, c := range categories {
		totalSpent += c.Spent
		switch {
		case c.Budgeted > 0:
			totalBudget += c.Budgeted
		case c.Spent > 0:
			unbudgeted += c.Spent
		}
	}

	if totalBudget == 0 {
		if totalSpent > 0 {
			return 0
		}
		return maxScore
	}

	var weighted float64
	for _, c := range categories {
		if c.Budgeted <= 0 {
			continue
		}
		weight := float64(c.Budgeted) / float64(totalBudget)
		weighted += float64(CategoryScore(c.Budgeted, c.Spent)) * weight
	}

	if unbudgeted > 0 {
		weighted *= float64(totalBudget) / float64(totalBudget+unbudgeted)
	}
	return int(money.RoundMonetary(weighted))
}

// Follows503020Rule reports whether needs, wants and savings are each within
// five percentage points of 50%, 30% and 20% of income.
func Follows503020Rule(income, needs, wants, savings int64) bool {
	if income <= 0 {
		return false
	}
	within := func(part, targetPct int64) bool {
		diff := part*100 - targetPct*income
		if diff < 0 {
			diff = -diff
		}
		return diff <= 5*income
	}
	return within(needs, 50) && within(wants, 30) && within(savings, 20)
}
