package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSeedTemplates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTemplateRepo(db)

	n, err := SeedTemplates(ctx, repo)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != len(DefaultTemplates()) {
		t.Fatalf("seeded %d, want %d", n, len(DefaultTemplates()))
	}

	active, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != n {
		t.Fatalf("active=%d, want %d", len(active), n)
	}

	// Re-seeding is an upsert, not a duplication.
	if _, err := SeedTemplates(ctx, repo); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	active, err = repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != n {
		t.Fatalf("active after re-seed=%d, want %d", len(active), n)
	}

	perStat := map[string]int{}
	for _, tpl := range active {
		perStat[tpl.Stat]++
	}
	for stat, count := range perStat {
		if count < 2 {
			t.Fatalf("stat %s has %d templates, selection needs variety", stat, count)
		}
	}
}

func TestTemplateSetActive(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTemplateRepo(db)

	if err := repo.Upsert(ctx, Template{ID: "x", Title: "X", Stat: "strength", XPReward: 10, Active: true}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.SetActive(ctx, "x", false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("deactivated template still listed")
	}
	if err := repo.SetActive(ctx, "missing", true); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err=%v, want sql.ErrNoRows for unknown id", err)
	}
}

func TestQuestRepoDayOrdering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewQuestRepo(db)

	quests := []Quest{
		{ID: "b1", UserID: "u", TemplateID: "t1", QuestDate: "2026-03-02", Title: "Bonus", Stat: "wealth", XPReward: 10, Mandatory: false},
		{ID: "m1", UserID: "u", TemplateID: "t2", QuestDate: "2026-03-02", Title: "Mandatory", Stat: "strength", XPReward: 20, Mandatory: true},
	}
	if err := repo.Insert(ctx, quests); err != nil {
		t.Fatalf("insert: %v", err)
	}

	day, err := repo.ListForDay(ctx, "u", "2026-03-02")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(day) != 2 {
		t.Fatalf("got %d quests, want 2", len(day))
	}
	if !day[0].Mandatory {
		t.Fatalf("mandatory quests should list first")
	}

	refl := "note"
	if err := repo.MarkCompleted(ctx, "m1", time.Now(), &refl); err != nil {
		t.Fatalf("mark: %v", err)
	}
	n, err := repo.CountCompleted(ctx, "u")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("completed=%d, want 1", n)
	}

	got, err := repo.Get(ctx, "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Completed || got.CompletedAt == nil || got.Reflection == nil || *got.Reflection != "note" {
		t.Fatalf("completion fields not persisted: %+v", got)
	}
}

func TestHistoryRepoRange(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewHistoryRepo(db)

	for _, e := range []HistoryEntry{
		{UserID: "u", Date: "2026-03-01", QuestsCompleted: 4, QuestsTotal: 5, CompletionPct: 80, StreakMaintained: true, XPMultiplier: 1.1},
		{UserID: "u", Date: "2026-03-02", QuestsCompleted: 2, QuestsTotal: 5, CompletionPct: 40, XPMultiplier: 1.2},
	} {
		if err := repo.Upsert(ctx, e); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	// Re-upserting the same day overwrites in place.
	if err := repo.Upsert(ctx, HistoryEntry{
		UserID: "u", Date: "2026-03-02", QuestsCompleted: 4, QuestsTotal: 5, CompletionPct: 80, StreakMaintained: true, XPMultiplier: 1.2,
	}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	list, err := repo.ListRange(ctx, "u", "2026-03-01", "2026-03-02")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d entries, want 2", len(list))
	}
	if list[0].Date != "2026-03-02" {
		t.Fatalf("newest entry should list first, got %s", list[0].Date)
	}
	if !list[0].StreakMaintained || list[0].QuestsCompleted != 4 {
		t.Fatalf("overwrite not applied: %+v", list[0])
	}

	entry, err := repo.Get(ctx, "u", "2026-03-01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry == nil || !entry.StreakMaintained {
		t.Fatalf("entry not found or wrong: %+v", entry)
	}

	missing, err := repo.Get(ctx, "u", "2026-02-01")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for a day with no record")
	}
}
