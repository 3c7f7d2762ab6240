// Package anticheat bounds-checks player-reported progress.
//
// Validators never fail: they return a Result whose Flags describe every
// anomaly found, in detection order. Each flag starts with a stable class
// token and a colon (see types.FlagClass) so callers can branch on the class
// without parsing the message.
package anticheat

import (
	"fmt"
	"slices"
	"strings"

	"github.com/okian/finsim/internal/domain/types"
)

// Result is the outcome of one or more checks.
type Result struct {
	Valid bool
	Flags []string
}

func result(flags []string) Result {
	if flags == nil {
		flags = []string{}
	}
	return Result{Valid: len(flags) == 0, Flags: flags}
}

// ClassOf extracts the class token from a flag.
func ClassOf(flag string) (types.FlagClass, bool) {
	class, _, ok := strings.Cut(flag, ":")
	if !ok || class == "" {
		return "", false
	}
	return types.FlagClass(class), true
}

// Validator runs the checks against a fixed set of Limits. It holds no
// mutable state and is safe for concurrent use.
type Validator struct {
	limits Limits
}

// New creates a Validator with DefaultLimits adjusted by opts.
func New(opts ...Option) *Validator {
	l := DefaultLimits()
	for _, opt := range opts {
		opt(&l)
	}
	return &Validator{limits: l}
}

// Limits returns a copy of the validator's bounds.
func (v *Validator) Limits() Limits {
	l := v.limits
	l.LevelXP = slices.Clone(v.limits.LevelXP)
	return l
}

// DailyXP flags more XP than a perfect day can produce.
func (v *Validator) DailyXP(xp int) Result {
	if xp > v.limits.MaxDailyXP {
		return result([]string{types.FlagImpossibleXP.Flag(
			fmt.Sprintf("earned %d XP in one day, max is %d", xp, v.limits.MaxDailyXP))})
	}
	return result(nil)
}

// DailyCoins flags coin income above the daily cap. The cap depends on
// whether level-up and badge coins were left out of coins.
func (v *Validator) DailyCoins(coins int, excludeLevelUp bool) Result {
	limit := v.limits.CoinCapIncludingLevelUp
	if excludeLevelUp {
		limit = v.limits.CoinCapExcludingLevelUp
	}
	if coins > limit {
		return result([]string{types.FlagImpossibleCoins.Flag(
			fmt.Sprintf("earned %d coins in one day, max is %d", coins, limit))})
	}
	return result(nil)
}

// LevelSpeed flags completing level faster than the daily XP cap allows.
// Levels outside the XP table are not checked.
func (v *Validator) LevelSpeed(level, daysPlayed int) Result {
	if level < 1 || level > len(v.limits.LevelXP) || v.limits.MaxDailyXP <= 0 {
		return result(nil)
	}
	required := v.limits.LevelXP[level-1]
	minDays := (required + v.limits.MaxDailyXP - 1) / v.limits.MaxDailyXP
	if daysPlayed < minDays {
		return result([]string{types.FlagLevelSpeed.Flag(
			fmt.Sprintf("level %d reached in %d days, minimum is %d", level, daysPlayed, minDays))})
	}
	return result(nil)
}

// NetWorthChange flags a monthly relative increase above the growth limit.
// A non-positive previous net worth is never flagged.
func (v *Validator) NetWorthChange(prev, curr int64) Result {
	if prev <= 0 {
		return result(nil)
	}
	growth := float64(curr-prev) / float64(prev)
	if growth > v.limits.MaxNetWorthGrowth {
		return result([]string{types.FlagNetWorthAnomaly.Flag(
			fmt.Sprintf("net worth grew %.1f%% in one month (from %d to %d)", growth*100, prev, curr))})
	}
	return result(nil)
}

// CHIChange flags a credit-health index gain above the monthly limit.
func (v *Validator) CHIChange(prev, curr int) Result {
	if gain := curr - prev; gain > v.limits.MaxCHIIncrease {
		return result([]string{types.FlagAbnormalCHIIncrease.Flag(
			fmt.Sprintf("credit health rose %d points in one month, max is %d", gain, v.limits.MaxCHIIncrease))})
	}
	return result(nil)
}

// ActionRate flags the two most recent actions being closer together than
// the minimum gap, and more actions than allowed in the trailing window
// ending at now. Timestamps are epoch milliseconds in any order.
func (v *Validator) ActionRate(timestamps []int64, now int64) Result {
	var flags []string

	if len(timestamps) >= 2 {
		sorted := slices.Clone(timestamps)
		slices.Sort(sorted)
		gap := sorted[len(sorted)-1] - sorted[len(sorted)-2]
		if gap < v.limits.MinActionGapMS {
			flags = append(flags, types.FlagRateLimit.Flag(
				fmt.Sprintf("actions %dms apart, minimum is %dms", gap, v.limits.MinActionGapMS)))
		}
	}

	windowStart := now - v.limits.ActionWindowMS
	recent := 0
	for _, ts := range timestamps {
		if ts >= windowStart && ts <= now {
			recent++
		}
	}
	if recent > v.limits.MaxActionsPerWindow {
		flags = append(flags, types.FlagBurstLimit.Flag(
			fmt.Sprintf("%d actions in the last %dms, max is %d", recent, v.limits.ActionWindowMS, v.limits.MaxActionsPerWindow)))
	}

	return result(flags)
}

// TransferAmount checks a transfer against the validator's MaxTransfer.
func (v *Validator) TransferAmount(amount, fromBalance int64) Result {
	return TransferAmountWithMax(amount, fromBalance, v.limits.MaxTransfer)
}

// TransferAmountWithMax flags a non-positive amount, an amount above
// maxTransfer and an amount above fromBalance. The checks are independent
// and may all fire at once.
func TransferAmountWithMax(amount, fromBalance, maxTransfer int64) Result {
	var flags []string
	if amount <= 0 {
		flags = append(flags, types.FlagInvalidAmount.Flag(
			fmt.Sprintf("transfer amount %d must be positive", amount)))
	}
	if amount > maxTransfer {
		flags = append(flags, types.FlagMaxTransfer.Flag(
			fmt.Sprintf("transfer amount %d exceeds limit %d", amount, maxTransfer)))
	}
	if amount > fromBalance {
		flags = append(flags, types.FlagInsufficientFunds.Flag(
			fmt.Sprintf("transfer amount %d exceeds balance %d", amount, fromBalance)))
	}
	return result(flags)
}

// Combine concatenates the flags of results in order. The combined result is
// valid only when no flags were raised.
func Combine(results ...Result) Result {
	var flags []string
	for _, r := range results {
		flags = append(flags, r.Flags...)
	}
	return result(flags)
}
