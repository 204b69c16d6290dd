package engine

import (
	"context"
	"database/sql"
	"math/rand/v2"
	"sort"

	"github.com/google/uuid"

	"levelup/internal/storage"
)

// MandatoryQuestCount is how many of the weakest stats receive a mandatory
// quest each day.
const MandatoryQuestCount = 4

type GenerateResult struct {
	Date      string
	Quests    []storage.Quest
	Generated bool // false when today's set already existed
}

// GenerateDailyQuests produces today's quest set for a user, or returns the
// existing set unchanged if one was already generated today. The selection
// targets the four lowest-level stats with one mandatory quest each, plus at
// most one bonus quest, never reusing a template within the day.
func (s *Service) GenerateDailyQuests(ctx context.Context, userID string) (*GenerateResult, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	today := s.dayKey(s.now())

	// Fast path: a set for today already exists.
	existing, err := s.quests.ListForDay(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &GenerateResult{Date: today, Quests: existing, Generated: false}, nil
	}

	if _, err := s.getProfile(ctx, s.profiles, userID); err != nil {
		return nil, err
	}
	st, err := s.stats.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := &GenerateResult{Date: today}
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		quests := s.quests.WithTx(tx)

		// Re-check inside the transaction: a concurrent generation may have
		// committed between the fast path and here. The unique index on
		// (user_id, quest_date, template_id) backstops this check.
		existing, err := quests.ListForDay(ctx, userID, today)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			res.Quests = existing
			return nil
		}

		templates, err := s.templates.WithTx(tx).ListActive(ctx)
		if err != nil {
			return err
		}
		if len(templates) == 0 {
			return ErrNoTemplates
		}

		picks := pickDailyQuests(st, templates, s.rng)
		rows := make([]storage.Quest, 0, len(picks))
		for _, p := range picks {
			rows = append(rows, storage.Quest{
				ID:          uuid.NewString(),
				UserID:      userID,
				TemplateID:  p.template.ID,
				QuestDate:   today,
				Title:       p.template.Title,
				Description: p.template.Description,
				Stat:        p.template.Stat,
				XPReward:    p.template.XPReward,
				Mandatory:   p.mandatory,
			})
		}
		if err := quests.Insert(ctx, rows); err != nil {
			return err
		}
		res.Quests = rows
		res.Generated = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

type questPick struct {
	template  storage.Template
	mandatory bool
}

// pickDailyQuests selects one mandatory template for each of the four
// lowest-level stats (skipping categories with no matching template) plus at
// most one bonus template from the remainder. Level ties keep the canonical
// stat order (stable sort).
func pickDailyQuests(st *storage.Stats, templates []storage.Template, rng *rand.Rand) []questPick {
	levels := make([]struct {
		stat  Stat
		level int
	}, 0, len(StatOrder))
	for _, stat := range StatOrder {
		levels = append(levels, struct {
			stat  Stat
			level int
		}{stat, StatLevelForXP(statXP(st, stat))})
	}
	sort.SliceStable(levels, func(i, j int) bool { return levels[i].level < levels[j].level })

	used := make(map[string]bool)
	var picks []questPick

	for i := 0; i < MandatoryQuestCount && i < len(levels); i++ {
		var pool []storage.Template
		for _, t := range templates {
			if t.Stat == string(levels[i].stat) && !used[t.ID] {
				pool = append(pool, t)
			}
		}
		if len(pool) == 0 {
			// Degraded but valid: fewer than four mandatory quests.
			continue
		}
		chosen := pool[rng.IntN(len(pool))]
		used[chosen.ID] = true
		picks = append(picks, questPick{template: chosen, mandatory: true})
	}

	var bonusPool []storage.Template
	for _, t := range templates {
		if !used[t.ID] {
			bonusPool = append(bonusPool, t)
		}
	}
	if len(bonusPool) > 0 {
		chosen := bonusPool[rng.IntN(len(bonusPool))]
		picks = append(picks, questPick{template: chosen, mandatory: false})
	}

	return picks
}
