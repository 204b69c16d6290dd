package storage

import "time"

// Profile is the per-user progression record. Levels are stored for display
// but always recomputed from XP by the engine before writes.
type Profile struct {
	UserID          string
	TotalXP         int
	PlayerLevel     int
	CurrentStreak   int
	LongestStreak   int
	PenaltyPoints   int
	StreakFreezes   int
	LastQuestDate   string // "YYYY-MM-DD", empty if never maintained
	LastPenaltyDate string // "YYYY-MM-DD", empty if never penalized
	CreatedAt       time.Time
}

// Stats holds per-category XP. Stat levels are derived, never stored.
type Stats struct {
	UserID         string
	StrengthXP     int
	AgilityXP      int
	VitalityXP     int
	IntelligenceXP int
	DisciplineXP   int
	CharismaXP     int
	WealthXP       int
}

type Template struct {
	ID          string
	Title       string
	Description string
	Stat        string
	XPReward    int
	Active      bool
}

type Quest struct {
	ID          string
	UserID      string
	TemplateID  string
	QuestDate   string // "YYYY-MM-DD"
	Title       string
	Description string
	Stat        string
	XPReward    int
	Mandatory   bool
	Completed   bool
	CompletedAt *time.Time
	Reflection  *string
	CreatedAt   time.Time
}

// HistoryEntry is the per-day streak record, keyed by (user_id, date).
type HistoryEntry struct {
	UserID           string
	Date             string // "YYYY-MM-DD"
	QuestsCompleted  int
	QuestsTotal      int
	CompletionPct    float64
	StreakMaintained bool
	XPMultiplier     float64
	BonusXPEarned    int
}

type APIToken struct {
	ID        string
	UserID    string
	TokenHash string
	CreatedAt time.Time
}
