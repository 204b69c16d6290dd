package engine

import (
	"context"
	"database/sql"

	"levelup/internal/storage"
)

// AtRiskHour is the local hour from which an unmaintained day counts as
// at risk.
const AtRiskHour = 20

type StreakInfo struct {
	CurrentStreak    int
	LongestStreak    int
	Multiplier       float64
	PenaltyPoints    int
	PenaltyReduction float64
	StreakFreezes    int
	WeeklyHistory    []storage.HistoryEntry
	AtRisk           bool
	TodayCompleted   bool
}

// StreakInfo summarizes the caller's streak state plus the last seven days of
// history. Read-only.
func (s *Service) StreakInfo(ctx context.Context, userID string) (*StreakInfo, error) {
	p, err := s.getProfile(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := s.dayKey(now)
	weekAgo := s.dayKey(now.AddDate(0, 0, -7))
	history, err := s.history.ListRange(ctx, userID, weekAgo, today)
	if err != nil {
		return nil, err
	}

	todayCompleted := false
	for _, e := range history {
		if e.Date == today {
			todayCompleted = e.StreakMaintained
			break
		}
	}

	return &StreakInfo{
		CurrentStreak:    p.CurrentStreak,
		LongestStreak:    p.LongestStreak,
		Multiplier:       Multiplier(p.CurrentStreak),
		PenaltyPoints:    p.PenaltyPoints,
		PenaltyReduction: PenaltyReduction(p.PenaltyPoints),
		StreakFreezes:    p.StreakFreezes,
		WeeklyHistory:    history,
		AtRisk:           now.Hour() >= AtRiskHour && !todayCompleted,
		TodayCompleted:   todayCompleted,
	}, nil
}

type CheckinResult struct {
	Date           string // the evaluated day (yesterday)
	PenaltyApplied bool
	FreezeUsed     bool
	PenaltyPoints  int
	StreakLost     int
}

// EvaluateMissedDay checks yesterday's history and, if the day was recorded
// but not maintained, consumes a streak freeze or applies a penalty. The
// evaluation is idempotent per day: once a freeze or penalty is recorded for
// yesterday it becomes a no-op. Triggered by client activity, never a timer,
// so running late or skipping a day only defers a single penalty.
func (s *Service) EvaluateMissedDay(ctx context.Context, userID string) (*CheckinResult, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	yesterday := s.dayKey(s.now().AddDate(0, 0, -1))
	res := &CheckinResult{Date: yesterday}

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		profiles := s.profiles.WithTx(tx)

		entry, err := s.history.WithTx(tx).Get(ctx, userID, yesterday)
		if err != nil {
			return err
		}
		if entry == nil || entry.StreakMaintained {
			return nil
		}

		p, err := s.getProfile(ctx, profiles, userID)
		if err != nil {
			return err
		}
		res.PenaltyPoints = p.PenaltyPoints
		if p.LastPenaltyDate == yesterday {
			return nil
		}

		if p.StreakFreezes > 0 {
			p.StreakFreezes--
			// Mark the date so a re-run cannot burn a second freeze.
			p.LastPenaltyDate = yesterday
			res.FreezeUsed = true
			return profiles.Update(ctx, p)
		}

		res.StreakLost = p.CurrentStreak
		p.CurrentStreak = 0
		if p.PenaltyPoints < MaxPenaltyPoints {
			p.PenaltyPoints++
		}
		p.LastPenaltyDate = yesterday
		res.PenaltyApplied = true
		res.PenaltyPoints = p.PenaltyPoints
		return profiles.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

type RedeemResult struct {
	Redeemed      bool
	PenaltyPoints int
}

// RedeemPenalty removes one penalty point when the current streak is at least
// seven days. Explicitly invoked; each call redeems at most one point.
func (s *Service) RedeemPenalty(ctx context.Context, userID string) (*RedeemResult, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	var res *RedeemResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		profiles := s.profiles.WithTx(tx)
		p, err := s.getProfile(ctx, profiles, userID)
		if err != nil {
			return err
		}

		if p.CurrentStreak < RedeemStreakDays || p.PenaltyPoints <= 0 {
			res = &RedeemResult{Redeemed: false, PenaltyPoints: p.PenaltyPoints}
			return nil
		}

		p.PenaltyPoints--
		if err := profiles.Update(ctx, p); err != nil {
			return err
		}
		res = &RedeemResult{Redeemed: true, PenaltyPoints: p.PenaltyPoints}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GrantFreeze adds streak-freeze credits to the profile.
func (s *Service) GrantFreeze(ctx context.Context, userID string, n int) (*storage.Profile, error) {
	if n <= 0 {
		return s.Profile(ctx, userID)
	}
	p, err := s.getProfile(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	p.StreakFreezes += n
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
