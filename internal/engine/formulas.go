package engine

import "math"

const (
	// StreakBonusRate is the per-day multiplier bonus: +10% per streak day.
	StreakBonusRate = 0.10

	// MaxMultiplier caps the streak bonus at 2x (reached at a 10-day streak).
	MaxMultiplier = 2.0

	// PenaltyRate is the XP reduction per penalty point: -5% per point.
	PenaltyRate = 0.05

	// MinPenaltyReduction is the floor of the penalty factor (10 points).
	MinPenaltyReduction = 0.5

	// MaxPenaltyPoints is the cap on accumulated penalty points.
	MaxPenaltyPoints = 10

	// StatXPPerLevel is the XP per stat level; stat levels cap at MaxStatLevel.
	StatXPPerLevel = 100
	MaxStatLevel   = 100

	// MaintainThresholdPct is the daily completion percentage at or above
	// which the day counts as maintained.
	MaintainThresholdPct = 80.0

	// RedeemStreakDays is the streak length from which penalty points can be
	// redeemed.
	RedeemStreakDays = 7
)

// Multiplier returns the streak XP multiplier: 1.0 at streak 0, +0.1 per day,
// saturating at 2.0 from streak 10 on. Monotonic non-decreasing.
func Multiplier(streak int) float64 {
	if streak < 0 {
		streak = 0
	}
	return math.Min(1.0+float64(streak)*StreakBonusRate, MaxMultiplier)
}

// PenaltyReduction returns the penalty XP factor: 1.0 at 0 points, -0.05 per
// point, clamped to 0.5 even if more than 10 points are passed.
func PenaltyReduction(penaltyPoints int) float64 {
	if penaltyPoints < 0 {
		penaltyPoints = 0
	}
	return math.Max(1.0-float64(penaltyPoints)*PenaltyRate, MinPenaltyReduction)
}

// EffectiveXP applies the streak multiplier and penalty reduction to a base
// reward. Rounding is to the nearest integer with halves away from zero
// (math.Round).
func EffectiveXP(baseXP, streak, penaltyPoints int) int {
	if baseXP < 0 {
		baseXP = 0
	}
	return int(math.Round(float64(baseXP) * Multiplier(streak) * PenaltyReduction(penaltyPoints)))
}

// StatLevelForXP maps stat XP to a level: one level per 100 XP starting at
// level 1, capped at 100.
func StatLevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	level := xp/StatXPPerLevel + 1
	if level > MaxStatLevel {
		return MaxStatLevel
	}
	return level
}

// PlayerLevelForXP maps total XP to the player level: floor(sqrt(xp/50)) + 1.
func PlayerLevelForXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return int(math.Floor(math.Sqrt(float64(totalXP)/50.0))) + 1
}

// CompletionPct returns completed/total as a percentage; 0 when total is 0.
func CompletionPct(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100.0
}

// DayMaintained reports whether a completion percentage keeps the streak.
func DayMaintained(pct float64) bool {
	return pct >= MaintainThresholdPct
}
