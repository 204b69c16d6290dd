package engine

import (
	"context"
	"database/sql"
	"strings"

	"levelup/internal/storage"
)

type CompleteResult struct {
	QuestID           string
	Stat              Stat
	BaseXP            int
	EffectiveXP       int
	MultiplierApplied float64 // streak multiplier in effect
	PenaltyApplied    float64 // penalty reduction in effect
	AlreadyCompleted  bool

	StatLevelBefore   int
	StatLevelAfter    int
	PlayerLevelBefore int
	PlayerLevelAfter  int
	LevelUp           bool

	QuestsCompleted  int
	QuestsTotal      int
	CompletionPct    float64
	StreakMaintained bool
	StreakAdvanced   bool
	CurrentStreak    int
}

// CompleteQuest applies a quest completion: effective XP into the quest's
// stat and the player total, the completion mark, today's history upsert, and
// a streak advance the first time today crosses the maintenance threshold.
// All writes commit in one transaction. Completing an already-completed quest
// is a no-op that reports the prior completion without re-awarding XP.
func (s *Service) CompleteQuest(ctx context.Context, userID, questID, reflection string) (*CompleteResult, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	now := s.now()
	today := s.dayKey(now)

	var res *CompleteResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		quests := s.quests.WithTx(tx)
		profiles := s.profiles.WithTx(tx)
		stats := s.stats.WithTx(tx)
		history := s.history.WithTx(tx)

		q, err := quests.Get(ctx, questID)
		if err != nil {
			return err
		}
		if q == nil || q.UserID != userID {
			return NotFoundError{Kind: "quest", ID: questID}
		}

		stat, ok := ParseStat(q.Stat)
		if !ok {
			return NotFoundError{Kind: "stat", ID: q.Stat}
		}

		if q.Completed {
			res = &CompleteResult{
				QuestID:          q.ID,
				Stat:             stat,
				BaseXP:           q.XPReward,
				AlreadyCompleted: true,
			}
			return nil
		}

		p, err := s.getProfile(ctx, profiles, userID)
		if err != nil {
			return err
		}
		st, err := stats.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}

		// Streak and penalty are read before mutation: this completion does
		// not benefit from its own streak advance.
		streak := p.CurrentStreak
		penalty := p.PenaltyPoints
		eff := EffectiveXP(q.XPReward, streak, penalty)

		statBefore := StatLevelForXP(statXP(st, stat))
		addStatXP(st, stat, eff)
		statAfter := StatLevelForXP(statXP(st, stat))

		levelBefore := p.PlayerLevel
		p.TotalXP += eff
		p.PlayerLevel = PlayerLevelForXP(p.TotalXP)

		var refl *string
		if r := strings.TrimSpace(reflection); r != "" {
			refl = &r
		}
		if err := quests.MarkCompleted(ctx, q.ID, now, refl); err != nil {
			return err
		}

		// Fresh read of the whole day; never a cached count.
		todays, err := quests.ListForDay(ctx, userID, today)
		if err != nil {
			return err
		}
		completed := 0
		for _, dq := range todays {
			if dq.Completed {
				completed++
			}
		}
		pct := CompletionPct(completed, len(todays))
		maintained := DayMaintained(pct)

		if err := history.Upsert(ctx, storage.HistoryEntry{
			UserID:           userID,
			Date:             today,
			QuestsCompleted:  completed,
			QuestsTotal:      len(todays),
			CompletionPct:    pct,
			StreakMaintained: maintained,
			XPMultiplier:     Multiplier(streak),
			BonusXPEarned:    eff - q.XPReward,
		}); err != nil {
			return err
		}

		advanced := false
		if maintained && p.LastQuestDate != today {
			p.CurrentStreak++
			if p.CurrentStreak > p.LongestStreak {
				p.LongestStreak = p.CurrentStreak
			}
			p.LastQuestDate = today
			advanced = true
		}

		if err := stats.Update(ctx, st); err != nil {
			return err
		}
		if err := profiles.Update(ctx, p); err != nil {
			return err
		}

		res = &CompleteResult{
			QuestID:           q.ID,
			Stat:              stat,
			BaseXP:            q.XPReward,
			EffectiveXP:       eff,
			MultiplierApplied: Multiplier(streak),
			PenaltyApplied:    PenaltyReduction(penalty),
			StatLevelBefore:   statBefore,
			StatLevelAfter:    statAfter,
			PlayerLevelBefore: levelBefore,
			PlayerLevelAfter:  p.PlayerLevel,
			LevelUp:           p.PlayerLevel > levelBefore,
			QuestsCompleted:   completed,
			QuestsTotal:       len(todays),
			CompletionPct:     pct,
			StreakMaintained:  maintained,
			StreakAdvanced:    advanced,
			CurrentStreak:     p.CurrentStreak,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
