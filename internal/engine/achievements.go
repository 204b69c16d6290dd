package engine

import (
	"context"

	"levelup/internal/storage"
)

// Achievement is a derived badge; never stored, always recomputed.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker computes which badges a player has earned from profile,
// stats, and completed-quest count.
type AchievementChecker struct {
	profile        *storage.Profile
	stats          *storage.Stats
	questsComplete int
}

func NewAchievementChecker(profile *storage.Profile, stats *storage.Stats, questsComplete int) *AchievementChecker {
	return &AchievementChecker{
		profile:        profile,
		stats:          stats,
		questsComplete: questsComplete,
	}
}

func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		// Player level milestones
		c.levelAchievement("awakened", "Awakened", "Reach level 2", "🌱", 2),
		c.levelAchievement("hunter", "Hunter", "Reach level 5", "🗡️", 5),
		c.levelAchievement("elite", "Elite Hunter", "Reach level 10", "⭐", 10),
		c.levelAchievement("shadow", "Shadow Monarch", "Reach level 25", "👑", 25),

		// Streak milestones (longest ever, so a lapse doesn't revoke them)
		c.streakAchievement("spark", "Spark", "3-day streak", "🔥", 3),
		c.streakAchievement("blaze", "Blaze", "7-day streak", "🔥", 7),
		c.streakAchievement("inferno", "Inferno", "30-day streak", "🔥", 30),

		// Quest completion milestones
		c.questCountAchievement("first_clear", "First Clear", "Complete 1 quest", "✅", 1),
		c.questCountAchievement("regular", "Regular", "Complete 25 quests", "📋", 25),
		c.questCountAchievement("relentless", "Relentless", "Complete 100 quests", "🏆", 100),

		// Stat milestones
		c.statAchievement("iron_body", "Iron Body", "Strength level 10", "💪", StatStrength, 10),
		c.statAchievement("quicksilver", "Quicksilver", "Agility level 10", "🏃", StatAgility, 10),
		c.statAchievement("unbreakable", "Unbreakable", "Vitality level 10", "❤️", StatVitality, 10),
		c.statAchievement("scholar", "Scholar", "Intelligence level 10", "🧠", StatIntelligence, 10),
		c.statAchievement("monk", "Monk", "Discipline level 10", "🧘", StatDiscipline, 10),
		c.statAchievement("magnetic", "Magnetic", "Charisma level 10", "🗣️", StatCharisma, 10),
		c.statAchievement("tycoon", "Tycoon", "Wealth level 10", "💰", StatWealth, 10),

		// Recovery
		{
			ID: "clean_slate", Name: "Clean Slate", Description: "Hold a 7-day streak with zero penalty points", Icon: "✨",
			Earned: c.profile.CurrentStreak >= RedeemStreakDays && c.profile.PenaltyPoints == 0,
		},
	}
}

func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

func (c *AchievementChecker) levelAchievement(id, name, desc, icon string, level int) Achievement {
	earned := PlayerLevelForXP(c.profile.TotalXP) >= level
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) streakAchievement(id, name, desc, icon string, days int) Achievement {
	earned := c.profile.LongestStreak >= days
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) questCountAchievement(id, name, desc, icon string, count int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.questsComplete >= count}
}

func (c *AchievementChecker) statAchievement(id, name, desc, icon string, stat Stat, level int) Achievement {
	earned := StatLevelForXP(statXP(c.stats, stat)) >= level
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

// Achievements loads the inputs and computes the badge list for a user.
func (s *Service) Achievements(ctx context.Context, userID string) ([]Achievement, error) {
	p, err := s.getProfile(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	st, err := s.stats.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	n, err := s.quests.CountCompleted(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewAchievementChecker(p, st, n).GetAchievements(), nil
}
