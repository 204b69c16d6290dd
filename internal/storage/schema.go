package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY,
			total_xp INTEGER DEFAULT 0,
			player_level INTEGER DEFAULT 1,
			current_streak INTEGER DEFAULT 0,
			longest_streak INTEGER DEFAULT 0,
			penalty_points INTEGER DEFAULT 0,
			streak_freeze_available INTEGER DEFAULT 1,
			last_quest_date TEXT DEFAULT '',
			last_penalty_date TEXT DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS player_stats (
			user_id TEXT PRIMARY KEY,
			strength_xp INTEGER DEFAULT 0,
			agility_xp INTEGER DEFAULT 0,
			vitality_xp INTEGER DEFAULT 0,
			intelligence_xp INTEGER DEFAULT 0,
			discipline_xp INTEGER DEFAULT 0,
			charisma_xp INTEGER DEFAULT 0,
			wealth_xp INTEGER DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS quest_templates (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT DEFAULT '',
			stat TEXT NOT NULL,
			xp_reward INTEGER NOT NULL,
			active INTEGER DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS daily_quests (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			template_id TEXT NOT NULL,
			quest_date TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT DEFAULT '',
			stat TEXT NOT NULL,
			xp_reward INTEGER NOT NULL,
			is_mandatory INTEGER DEFAULT 0,
			is_completed INTEGER DEFAULT 0,
			completed_at DATETIME,
			reflection TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, quest_date, template_id)
		);`,
		// Upsert-keyed by (user_id, date); every write recomputes from the
		// full quest set for that day, so last-writer-wins is safe.
		`CREATE TABLE IF NOT EXISTS streak_history (
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			quests_completed INTEGER DEFAULT 0,
			quests_total INTEGER DEFAULT 0,
			completion_percentage REAL DEFAULT 0,
			streak_maintained INTEGER DEFAULT 0,
			xp_multiplier REAL DEFAULT 1.0,
			bonus_xp_earned INTEGER DEFAULT 0,
			PRIMARY KEY(user_id, date)
		);`,
		`CREATE TABLE IF NOT EXISTS api_tokens (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			token_hash TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_daily_quests_user_date ON daily_quests(user_id, quest_date);`,
		`CREATE INDEX IF NOT EXISTS idx_quest_templates_active ON quest_templates(active);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
