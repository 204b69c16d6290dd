package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"levelup/internal/storage"
)

func TestGenerateDailyQuests(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc)
	setClock(svc, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	res, err := svc.GenerateDailyQuests(ctx, testUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !res.Generated {
		t.Fatalf("expected a fresh generation")
	}
	if res.Date != "2026-03-02" {
		t.Fatalf("date=%q, want 2026-03-02", res.Date)
	}
	if len(res.Quests) != MandatoryQuestCount+1 {
		t.Fatalf("got %d quests, want %d", len(res.Quests), MandatoryQuestCount+1)
	}

	mandatory := 0
	seen := map[string]bool{}
	for _, q := range res.Quests {
		if q.Mandatory {
			mandatory++
		}
		if seen[q.TemplateID] {
			t.Fatalf("template %s picked twice in one day", q.TemplateID)
		}
		seen[q.TemplateID] = true
	}
	if mandatory != MandatoryQuestCount {
		t.Fatalf("got %d mandatory quests, want %d", mandatory, MandatoryQuestCount)
	}
}

func TestGenerateDailyQuestsIdempotent(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc)
	setClock(svc, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := svc.GenerateDailyQuests(ctx, testUser)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	second, err := svc.GenerateDailyQuests(ctx, testUser)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if second.Generated {
		t.Fatalf("second call should return the existing set")
	}
	if len(first.Quests) != len(second.Quests) {
		t.Fatalf("set size changed: %d vs %d", len(first.Quests), len(second.Quests))
	}
	ids := map[string]bool{}
	for _, q := range first.Quests {
		ids[q.ID] = true
	}
	for _, q := range second.Quests {
		if !ids[q.ID] {
			t.Fatalf("quest %s not in the first set", q.ID)
		}
	}
}

func TestGenerateTargetsWeakestStats(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc)
	setClock(svc, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	// Strength, agility, and vitality are strong; the four weakest are
	// intelligence, discipline, charisma, wealth.
	setStats(t, svc, func(st *storage.Stats) {
		st.StrengthXP = 1000
		st.AgilityXP = 900
		st.VitalityXP = 800
	})

	res, err := svc.GenerateDailyQuests(ctx, testUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	weak := map[string]bool{
		"intelligence": true,
		"discipline":   true,
		"charisma":     true,
		"wealth":       true,
	}
	covered := map[string]bool{}
	for _, q := range res.Quests {
		if !q.Mandatory {
			continue
		}
		if !weak[q.Stat] {
			t.Fatalf("mandatory quest targets %s, want one of the weakest stats", q.Stat)
		}
		covered[q.Stat] = true
	}
	if len(covered) != MandatoryQuestCount {
		t.Fatalf("mandatory quests cover %d stats, want %d", len(covered), MandatoryQuestCount)
	}
}

func TestGenerateEmptyCatalog(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GenerateDailyQuests(ctx, testUser)
	if !errors.Is(err, ErrNoTemplates) {
		t.Fatalf("err=%v, want ErrNoTemplates", err)
	}
}

func TestGenerateDegradedCatalog(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Only two categories have templates: fewer than four mandatory quests
	// is valid, plus one bonus from the remainder.
	for _, tpl := range []storage.Template{
		{ID: "s1", Title: "S1", Stat: "strength", XPReward: 40, Active: true},
		{ID: "s2", Title: "S2", Stat: "strength", XPReward: 40, Active: true},
		{ID: "i1", Title: "I1", Stat: "intelligence", XPReward: 40, Active: true},
	} {
		if err := svc.TemplateRepo().Upsert(ctx, tpl); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	res, err := svc.GenerateDailyQuests(ctx, testUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	mandatory := 0
	for _, q := range res.Quests {
		if q.Mandatory {
			mandatory++
		}
	}
	if mandatory != 2 {
		t.Fatalf("got %d mandatory quests, want 2", mandatory)
	}
	if len(res.Quests) != 3 {
		t.Fatalf("got %d quests, want 3 (2 mandatory + 1 bonus)", len(res.Quests))
	}
}

func TestGenerateRequiresUser(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.GenerateDailyQuests(context.Background(), ""); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("err=%v, want ErrNotAuthenticated", err)
	}
}
