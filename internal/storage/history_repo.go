package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type HistoryRepo struct {
	q DBTX
}

func NewHistoryRepo(db DBTX) *HistoryRepo {
	return &HistoryRepo{q: db}
}

func (r *HistoryRepo) WithTx(tx *sql.Tx) *HistoryRepo {
	return &HistoryRepo{q: tx}
}

// Upsert writes the full day record, last writer wins. Callers recompute
// every field from the day's quest set before writing.
func (r *HistoryRepo) Upsert(ctx context.Context, e HistoryEntry) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO streak_history (
			user_id, date, quests_completed, quests_total, completion_percentage,
			streak_maintained, xp_multiplier, bonus_xp_earned
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			quests_completed = excluded.quests_completed,
			quests_total = excluded.quests_total,
			completion_percentage = excluded.completion_percentage,
			streak_maintained = excluded.streak_maintained,
			xp_multiplier = excluded.xp_multiplier,
			bonus_xp_earned = excluded.bonus_xp_earned
	`, e.UserID, e.Date, e.QuestsCompleted, e.QuestsTotal, e.CompletionPct,
		boolToInt(e.StreakMaintained), e.XPMultiplier, e.BonusXPEarned)
	if err != nil {
		return fmt.Errorf("history upsert: %w", err)
	}
	return nil
}

func (r *HistoryRepo) Get(ctx context.Context, userID, date string) (*HistoryEntry, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT user_id, date, quests_completed, quests_total, completion_percentage,
			streak_maintained, xp_multiplier, bonus_xp_earned
		FROM streak_history
		WHERE user_id = ? AND date = ?
	`, userID, date)

	var e HistoryEntry
	var maintained int
	if err := row.Scan(
		&e.UserID, &e.Date, &e.QuestsCompleted, &e.QuestsTotal, &e.CompletionPct,
		&maintained, &e.XPMultiplier, &e.BonusXPEarned,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("history get: %w", err)
	}
	e.StreakMaintained = maintained != 0
	return &e, nil
}

// ListRange returns entries with from <= date <= to, newest first.
func (r *HistoryRepo) ListRange(ctx context.Context, userID, from, to string) ([]HistoryEntry, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT user_id, date, quests_completed, quests_total, completion_percentage,
			streak_maintained, xp_multiplier, bonus_xp_earned
		FROM streak_history
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date DESC
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("history list: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var maintained int
		if err := rows.Scan(
			&e.UserID, &e.Date, &e.QuestsCompleted, &e.QuestsTotal, &e.CompletionPct,
			&maintained, &e.XPMultiplier, &e.BonusXPEarned,
		); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		e.StreakMaintained = maintained != 0
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history rows: %w", err)
	}
	return out, nil
}
