package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type StatsRepo struct {
	q DBTX
}

func NewStatsRepo(db DBTX) *StatsRepo {
	return &StatsRepo{q: db}
}

func (r *StatsRepo) WithTx(tx *sql.Tx) *StatsRepo {
	return &StatsRepo{q: tx}
}

const statsColumns = `user_id, strength_xp, agility_xp, vitality_xp, intelligence_xp,
	discipline_xp, charisma_xp, wealth_xp`

func (r *StatsRepo) Get(ctx context.Context, userID string) (*Stats, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+statsColumns+` FROM player_stats WHERE user_id = ?`, userID)

	var s Stats
	if err := row.Scan(
		&s.UserID, &s.StrengthXP, &s.AgilityXP, &s.VitalityXP, &s.IntelligenceXP,
		&s.DisciplineXP, &s.CharismaXP, &s.WealthXP,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("stats get: %w", err)
	}
	return &s, nil
}

func (r *StatsRepo) GetOrCreate(ctx context.Context, userID string) (*Stats, error) {
	s, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}

	if _, err := r.q.ExecContext(ctx,
		`INSERT INTO player_stats (user_id) VALUES (?) ON CONFLICT(user_id) DO NOTHING`, userID); err != nil {
		return nil, fmt.Errorf("stats insert: %w", err)
	}
	return r.Get(ctx, userID)
}

func (r *StatsRepo) Update(ctx context.Context, s *Stats) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE player_stats
		SET strength_xp = ?, agility_xp = ?, vitality_xp = ?, intelligence_xp = ?,
			discipline_xp = ?, charisma_xp = ?, wealth_xp = ?
		WHERE user_id = ?
	`, s.StrengthXP, s.AgilityXP, s.VitalityXP, s.IntelligenceXP,
		s.DisciplineXP, s.CharismaXP, s.WealthXP, s.UserID)
	if err != nil {
		return fmt.Errorf("stats update: %w", err)
	}
	return nil
}
