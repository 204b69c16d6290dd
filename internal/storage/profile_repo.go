package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type ProfileRepo struct {
	q DBTX
}

func NewProfileRepo(db DBTX) *ProfileRepo {
	return &ProfileRepo{q: db}
}

// WithTx returns a copy of the repo bound to the given transaction.
func (r *ProfileRepo) WithTx(tx *sql.Tx) *ProfileRepo {
	return &ProfileRepo{q: tx}
}

const profileColumns = `user_id, total_xp, player_level, current_streak, longest_streak,
	penalty_points, streak_freeze_available, last_quest_date, last_penalty_date, created_at`

func (r *ProfileRepo) Get(ctx context.Context, userID string) (*Profile, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`, userID)

	var p Profile
	if err := row.Scan(
		&p.UserID, &p.TotalXP, &p.PlayerLevel, &p.CurrentStreak, &p.LongestStreak,
		&p.PenaltyPoints, &p.StreakFreezes, &p.LastQuestDate, &p.LastPenaltyDate, &p.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepo) GetOrCreate(ctx context.Context, userID string) (*Profile, error) {
	p, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.q.ExecContext(ctx,
		`INSERT INTO profiles (user_id) VALUES (?) ON CONFLICT(user_id) DO NOTHING`, userID); err != nil {
		return nil, fmt.Errorf("profile insert: %w", err)
	}
	return r.Get(ctx, userID)
}

func (r *ProfileRepo) Update(ctx context.Context, p *Profile) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE profiles
		SET total_xp = ?, player_level = ?, current_streak = ?, longest_streak = ?,
			penalty_points = ?, streak_freeze_available = ?, last_quest_date = ?, last_penalty_date = ?
		WHERE user_id = ?
	`, p.TotalXP, p.PlayerLevel, p.CurrentStreak, p.LongestStreak,
		p.PenaltyPoints, p.StreakFreezes, p.LastQuestDate, p.LastPenaltyDate, p.UserID)
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}
