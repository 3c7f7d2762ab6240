package anticheat

var std = New()

// DailyXP checks xp against the default limits.
func DailyXP(xp int) Result { return std.DailyXP(xp) }

// DailyCoins checks coins against the default limits.
func DailyCoins(coins int, excludeLevelUp bool) Result { return std.DailyCoins(coins, excludeLevelUp) }

// LevelSpeed checks level progression against the default limits.
func LevelSpeed(level, daysPlayed int) Result { return std.LevelSpeed(level, daysPlayed) }

// NetWorthChange checks a monthly net-worth change against the default limits.
func NetWorthChange(prev, curr int64) Result { return std.NetWorthChange(prev, curr) }

// CHIChange checks a monthly credit-health change against the default limits.
func CHIChange(prev, curr int) Result { return std.CHIChange(prev, curr) }

// ActionRate checks action timing against the default limits.
func ActionRate(timestamps []int64, now int64) Result { return std.ActionRate(timestamps, now) }

// TransferAmount checks a transfer against the default 10,000,000 ceiling.
func TransferAmount(amount, fromBalance int64) Result { return std.TransferAmount(amount, fromBalance) }
