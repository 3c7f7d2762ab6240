// Package types contains closed enumerations shared across the simulation core.
package types

import "strings"

// Difficulty selects the per-game rate tables.
type Difficulty string

// Supported difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps free text onto a Difficulty. Unknown input is normal.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyNormal
	}
}

// Valid reports whether d is one of the declared difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

// InsuranceType is the kind of coverage a policy provides.
type InsuranceType string

// Supported insurance types.
const (
	InsuranceHealth  InsuranceType = "health"
	InsuranceAuto    InsuranceType = "auto"
	InsuranceRenters InsuranceType = "renters"
	InsuranceHome    InsuranceType = "home"
	InsuranceLife    InsuranceType = "life"
)

// ParseInsuranceType maps free text onto an InsuranceType. Unknown input is health.
func ParseInsuranceType(s string) InsuranceType {
	switch t := InsuranceType(strings.ToLower(strings.TrimSpace(s))); t {
	case InsuranceHealth, InsuranceAuto, InsuranceRenters, InsuranceHome, InsuranceLife:
		return t
	default:
		return InsuranceHealth
	}
}

// FlagClass is the machine-checkable prefix of an anti-cheat flag.
type FlagClass string

// Anomaly classes emitted by the anti-cheat validators.
const (
	FlagImpossibleXP        FlagClass = "impossible_xp"
	FlagImpossibleCoins     FlagClass = "impossible_coins"
	FlagLevelSpeed          FlagClass = "level_speed"
	FlagNetWorthAnomaly     FlagClass = "net_worth_anomaly"
	FlagAbnormalCHIIncrease FlagClass = "abnormal_chi_increase"
	FlagRateLimit           FlagClass = "rate_limit"
	FlagBurstLimit          FlagClass = "burst_limit"
	FlagInvalidAmount       FlagClass = "invalid_amount"
	FlagMaxTransfer         FlagClass = "max_transfer"
	FlagInsufficientFunds   FlagClass = "insufficient_funds"
)

// Flag renders a flag string with the class prefix.
func (c FlagClass) Flag(detail string) string {
	return string(c) + ": " + detail
}
