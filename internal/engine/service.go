package engine

import (
	"context"
	"database/sql"
	"math/rand/v2"
	"time"

	"levelup/internal/storage"
)

// DayKeyFormat is the calendar-day key used for quests, history, and the
// streak state machine. Always the caller's local date.
const DayKeyFormat = "2006-01-02"

type Service struct {
	db        *sql.DB
	profiles  *storage.ProfileRepo
	stats     *storage.StatsRepo
	quests    *storage.QuestRepo
	templates *storage.TemplateRepo
	history   *storage.HistoryRepo

	// Injected for tests; default to wall clock and a seeded PRNG.
	now func() time.Time
	rng *rand.Rand
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:        db,
		profiles:  storage.NewProfileRepo(db),
		stats:     storage.NewStatsRepo(db),
		quests:    storage.NewQuestRepo(db),
		templates: storage.NewTemplateRepo(db),
		history:   storage.NewHistoryRepo(db),
		now:       time.Now,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (s *Service) ProfileRepo() *storage.ProfileRepo   { return s.profiles }
func (s *Service) StatsRepo() *storage.StatsRepo       { return s.stats }
func (s *Service) QuestRepo() *storage.QuestRepo       { return s.quests }
func (s *Service) TemplateRepo() *storage.TemplateRepo { return s.templates }
func (s *Service) HistoryRepo() *storage.HistoryRepo   { return s.history }

func (s *Service) dayKey(t time.Time) string {
	return t.Format(DayKeyFormat)
}

// getProfile loads (or creates) a profile and keeps the stored player level
// consistent with the level formula.
func (s *Service) getProfile(ctx context.Context, profiles *storage.ProfileRepo, userID string) (*storage.Profile, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	p, err := profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	computed := PlayerLevelForXP(p.TotalXP)
	if p.PlayerLevel != computed {
		p.PlayerLevel = computed
		if err := profiles.Update(ctx, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// StatXP returns the XP stored for one stat category.
func StatXP(st *storage.Stats, stat Stat) int {
	return statXP(st, stat)
}

func statXP(st *storage.Stats, stat Stat) int {
	switch stat {
	case StatStrength:
		return st.StrengthXP
	case StatAgility:
		return st.AgilityXP
	case StatVitality:
		return st.VitalityXP
	case StatIntelligence:
		return st.IntelligenceXP
	case StatDiscipline:
		return st.DisciplineXP
	case StatCharisma:
		return st.CharismaXP
	case StatWealth:
		return st.WealthXP
	default:
		return 0
	}
}

func addStatXP(st *storage.Stats, stat Stat, xp int) {
	switch stat {
	case StatStrength:
		st.StrengthXP += xp
	case StatAgility:
		st.AgilityXP += xp
	case StatVitality:
		st.VitalityXP += xp
	case StatIntelligence:
		st.IntelligenceXP += xp
	case StatDiscipline:
		st.DisciplineXP += xp
	case StatCharisma:
		st.CharismaXP += xp
	case StatWealth:
		st.WealthXP += xp
	}
}

// StatLevels returns the derived level for every category in canonical order.
func StatLevels(st *storage.Stats) map[Stat]int {
	out := make(map[Stat]int, len(StatOrder))
	for _, stat := range StatOrder {
		out[stat] = StatLevelForXP(statXP(st, stat))
	}
	return out
}

// Profile returns the caller's profile, creating it on first touch.
func (s *Service) Profile(ctx context.Context, userID string) (*storage.Profile, error) {
	return s.getProfile(ctx, s.profiles, userID)
}

// Stats returns the caller's per-category XP, creating the row on first touch.
func (s *Service) Stats(ctx context.Context, userID string) (*storage.Stats, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.stats.GetOrCreate(ctx, userID)
}

// TodayQuests lists the caller's quests for the current calendar day without
// generating any.
func (s *Service) TodayQuests(ctx context.Context, userID string) ([]storage.Quest, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.quests.ListForDay(ctx, userID, s.dayKey(s.now()))
}
