package engine

import (
	"context"
	"testing"
	"time"

	"levelup/internal/storage"
)

func missYesterday(t *testing.T, svc *Service, date string) {
	t.Helper()
	err := svc.HistoryRepo().Upsert(context.Background(), storage.HistoryEntry{
		UserID:           testUser,
		Date:             date,
		QuestsCompleted:  1,
		QuestsTotal:      5,
		CompletionPct:    20,
		StreakMaintained: false,
	})
	if err != nil {
		t.Fatalf("upsert history: %v", err)
	}
}

func TestEvaluateMissedDayNoHistory(t *testing.T) {
	svc := newTestService(t)
	setClock(svc, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	res, err := svc.EvaluateMissedDay(context.Background(), testUser)
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if res.PenaltyApplied || res.FreezeUsed {
		t.Fatalf("a day with no record should be a no-op: %+v", res)
	}
}

func TestEvaluateMissedDayConsumesFreeze(t *testing.T) {
	svc := newTestService(t)
	setClock(svc, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	setProfile(t, svc, func(p *storage.Profile) {
		p.CurrentStreak = 4
		p.StreakFreezes = 1
	})
	missYesterday(t, svc, "2026-03-01")

	res, err := svc.EvaluateMissedDay(ctx, testUser)
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if !res.FreezeUsed || res.PenaltyApplied {
		t.Fatalf("expected freeze, got %+v", res)
	}

	p, _ := svc.Profile(ctx, testUser)
	if p.CurrentStreak != 4 {
		t.Fatalf("streak=%d, want 4 (freeze preserves it)", p.CurrentStreak)
	}
	if p.StreakFreezes != 0 {
		t.Fatalf("freezes=%d, want 0", p.StreakFreezes)
	}
	if p.PenaltyPoints != 0 {
		t.Fatalf("penalty points=%d, want 0", p.PenaltyPoints)
	}

	// Re-running must not burn a second freeze or add a penalty.
	setProfile(t, svc, func(p *storage.Profile) { p.StreakFreezes = 3 })
	again, err := svc.EvaluateMissedDay(ctx, testUser)
	if err != nil {
		t.Fatalf("second checkin: %v", err)
	}
	if again.FreezeUsed || again.PenaltyApplied {
		t.Fatalf("re-run should be a no-op: %+v", again)
	}
	p, _ = svc.Profile(ctx, testUser)
	if p.StreakFreezes != 3 {
		t.Fatalf("freezes=%d, want 3", p.StreakFreezes)
	}
}

func TestEvaluateMissedDayAppliesPenalty(t *testing.T) {
	svc := newTestService(t)
	setClock(svc, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	setProfile(t, svc, func(p *storage.Profile) {
		p.CurrentStreak = 6
		p.LongestStreak = 6
		p.StreakFreezes = 0
	})
	missYesterday(t, svc, "2026-03-01")

	res, err := svc.EvaluateMissedDay(ctx, testUser)
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if !res.PenaltyApplied {
		t.Fatalf("expected a penalty, got %+v", res)
	}
	if res.StreakLost != 6 {
		t.Fatalf("streak lost=%d, want 6", res.StreakLost)
	}

	p, _ := svc.Profile(ctx, testUser)
	if p.CurrentStreak != 0 {
		t.Fatalf("streak=%d, want 0", p.CurrentStreak)
	}
	if p.LongestStreak != 6 {
		t.Fatalf("longest streak should survive a reset")
	}
	if p.PenaltyPoints != 1 {
		t.Fatalf("penalty points=%d, want 1", p.PenaltyPoints)
	}

	// Idempotent for the same day.
	again, err := svc.EvaluateMissedDay(ctx, testUser)
	if err != nil {
		t.Fatalf("second checkin: %v", err)
	}
	if again.PenaltyApplied {
		t.Fatalf("penalty applied twice for one day")
	}
	p, _ = svc.Profile(ctx, testUser)
	if p.PenaltyPoints != 1 {
		t.Fatalf("penalty points=%d after re-run, want 1", p.PenaltyPoints)
	}
}

func TestEvaluateMissedDayPenaltyCap(t *testing.T) {
	svc := newTestService(t)
	setClock(svc, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	setProfile(t, svc, func(p *storage.Profile) {
		p.PenaltyPoints = MaxPenaltyPoints
		p.StreakFreezes = 0
	})
	missYesterday(t, svc, "2026-03-01")

	res, err := svc.EvaluateMissedDay(ctx, testUser)
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if res.PenaltyPoints != MaxPenaltyPoints {
		t.Fatalf("penalty points=%d, want capped at %d", res.PenaltyPoints, MaxPenaltyPoints)
	}
}

func TestRedeemPenalty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	setProfile(t, svc, func(p *storage.Profile) {
		p.CurrentStreak = RedeemStreakDays
		p.PenaltyPoints = 3
	})

	res, err := svc.RedeemPenalty(ctx, testUser)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if !res.Redeemed || res.PenaltyPoints != 2 {
		t.Fatalf("got %+v, want one point redeemed", res)
	}

	// Below the streak bar: nothing happens.
	setProfile(t, svc, func(p *storage.Profile) { p.CurrentStreak = RedeemStreakDays - 1 })
	res, err = svc.RedeemPenalty(ctx, testUser)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if res.Redeemed {
		t.Fatalf("redeemed below the streak requirement")
	}

	// No points left: nothing happens.
	setProfile(t, svc, func(p *storage.Profile) {
		p.CurrentStreak = RedeemStreakDays
		p.PenaltyPoints = 0
	})
	res, err = svc.RedeemPenalty(ctx, testUser)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if res.Redeemed || res.PenaltyPoints != 0 {
		t.Fatalf("got %+v, want nothing redeemed", res)
	}
}

func TestGrantFreeze(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.GrantFreeze(ctx, testUser, 2)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if p.StreakFreezes != 3 { // profiles start with one freeze
		t.Fatalf("freezes=%d, want 3", p.StreakFreezes)
	}

	p, err = svc.GrantFreeze(ctx, testUser, 0)
	if err != nil {
		t.Fatalf("grant zero: %v", err)
	}
	if p.StreakFreezes != 3 {
		t.Fatalf("granting zero changed the count")
	}
}

func TestStreakInfo(t *testing.T) {
	svc := newTestService(t)
	setClock(svc, time.Date(2026, 3, 2, 21, 0, 0, 0, time.UTC))
	ctx := context.Background()

	setProfile(t, svc, func(p *storage.Profile) {
		p.CurrentStreak = 5
		p.LongestStreak = 9
		p.PenaltyPoints = 2
	})
	missYesterday(t, svc, "2026-03-01")

	info, err := svc.StreakInfo(ctx, testUser)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.CurrentStreak != 5 || info.LongestStreak != 9 {
		t.Fatalf("streaks=%d/%d, want 5/9", info.CurrentStreak, info.LongestStreak)
	}
	if info.Multiplier != 1.5 {
		t.Fatalf("multiplier=%v, want 1.5", info.Multiplier)
	}
	if info.PenaltyReduction != 0.9 {
		t.Fatalf("reduction=%v, want 0.9", info.PenaltyReduction)
	}
	if len(info.WeeklyHistory) != 1 {
		t.Fatalf("history entries=%d, want 1", len(info.WeeklyHistory))
	}
	// Past 20:00 with today unmaintained.
	if !info.AtRisk {
		t.Fatalf("expected at-risk in the evening with no completion today")
	}
	if info.TodayCompleted {
		t.Fatalf("today should not be completed")
	}
}
