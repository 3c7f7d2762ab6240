package anticheat

// Default limits. The XP cap is the theoretical best day: 25 XP per card,
// 4 cards, a 1.5x streak and the 1.3x hard-difficulty multiplier.
const (
	defaultMaxDailyXP              = 195
	defaultCoinCapExcludingLevelUp = 100
	defaultCoinCapIncludingLevelUp = 45
	defaultMaxNetWorthGrowth       = 0.50
	defaultMaxCHIIncrease          = 50
	defaultMinActionGapMS          = 10_000
	defaultMaxActionsPerWindow     = 50
	defaultActionWindowMS          = 3_600_000
	defaultMaxTransfer             = 10_000_000
)

// Limits are the bounds the validators enforce.
type Limits struct {
	MaxDailyXP              int
	CoinCapExcludingLevelUp int
	CoinCapIncludingLevelUp int
	// LevelXP[i] is the XP required to complete level i+1.
	LevelXP             []int
	MaxNetWorthGrowth   float64 // relative increase per simulated month
	MaxCHIIncrease      int
	MinActionGapMS      int64
	MaxActionsPerWindow int
	ActionWindowMS      int64
	MaxTransfer         int64
}

// DefaultLimits returns the production bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxDailyXP:              defaultMaxDailyXP,
		CoinCapExcludingLevelUp: defaultCoinCapExcludingLevelUp,
		CoinCapIncludingLevelUp: defaultCoinCapIncludingLevelUp,
		LevelXP:                 []int{500, 1500, 3000, 5000, 8000, 12000, 18000, 25000},
		MaxNetWorthGrowth:       defaultMaxNetWorthGrowth,
		MaxCHIIncrease:          defaultMaxCHIIncrease,
		MinActionGapMS:          defaultMinActionGapMS,
		MaxActionsPerWindow:     defaultMaxActionsPerWindow,
		ActionWindowMS:          defaultActionWindowMS,
		MaxTransfer:             defaultMaxTransfer,
	}
}

// Option applies a configuration option to a Validator.
type Option func(*Limits)

// WithMaxDailyXP sets the daily XP cap.
func WithMaxDailyXP(xp int) Option {
	return func(l *Limits) {
		if xp > 0 {
			l.MaxDailyXP = xp
		}
	}
}

// WithCoinCaps sets the daily coin caps with and without level-up coins excluded.
func WithCoinCaps(excludingLevelUp, includingLevelUp int) Option {
	return func(l *Limits) {
		if excludingLevelUp > 0 {
			l.CoinCapExcludingLevelUp = excludingLevelUp
		}
		if includingLevelUp > 0 {
			l.CoinCapIncludingLevelUp = includingLevelUp
		}
	}
}

// WithLevelXP replaces the per-level XP table.
func WithLevelXP(table []int) Option {
	return func(l *Limits) {
		if len(table) > 0 {
			l.LevelXP = append([]int(nil), table...)
		}
	}
}

// WithMaxNetWorthGrowth sets the largest allowed monthly relative increase.
func WithMaxNetWorthGrowth(rate float64) Option {
	return func(l *Limits) {
		if rate > 0 {
			l.MaxNetWorthGrowth = rate
		}
	}
}

// WithMaxCHIIncrease sets the largest allowed monthly credit-health gain.
func WithMaxCHIIncrease(points int) Option {
	return func(l *Limits) {
		if points > 0 {
			l.MaxCHIIncrease = points
		}
	}
}

// WithActionRate sets the minimum gap between actions and the burst window.
func WithActionRate(minGapMS int64, maxActions int, windowMS int64) Option {
	return func(l *Limits) {
		if minGapMS > 0 {
			l.MinActionGapMS = minGapMS
		}
		if maxActions > 0 {
			l.MaxActionsPerWindow = maxActions
		}
		if windowMS > 0 {
			l.ActionWindowMS = windowMS
		}
	}
}

// WithMaxTransfer sets the per-transfer ceiling in minor units.
func WithMaxTransfer(amount int64) Option {
	return func(l *Limits) {
		if amount > 0 {
			l.MaxTransfer = amount
		}
	}
}
