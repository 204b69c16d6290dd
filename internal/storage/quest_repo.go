package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type QuestRepo struct {
	q DBTX
}

func NewQuestRepo(db DBTX) *QuestRepo {
	return &QuestRepo{q: db}
}

func (r *QuestRepo) WithTx(tx *sql.Tx) *QuestRepo {
	return &QuestRepo{q: tx}
}

const questColumns = `id, user_id, template_id, quest_date, title, description, stat,
	xp_reward, is_mandatory, is_completed, completed_at, reflection, created_at`

func (r *QuestRepo) Insert(ctx context.Context, quests []Quest) error {
	for _, q := range quests {
		_, err := r.q.ExecContext(ctx, `
			INSERT INTO daily_quests (
				id, user_id, template_id, quest_date, title, description, stat,
				xp_reward, is_mandatory
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, q.ID, q.UserID, q.TemplateID, q.QuestDate, q.Title, q.Description, q.Stat,
			q.XPReward, boolToInt(q.Mandatory))
		if err != nil {
			return fmt.Errorf("quest insert: %w", err)
		}
	}
	return nil
}

func (r *QuestRepo) Get(ctx context.Context, id string) (*Quest, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+questColumns+` FROM daily_quests WHERE id = ?`, id)
	return scanQuestRow(row)
}

// ListForDay returns a user's quests for one calendar day, mandatory first.
func (r *QuestRepo) ListForDay(ctx context.Context, userID, date string) ([]Quest, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+questColumns+`
		FROM daily_quests
		WHERE user_id = ? AND quest_date = ?
		ORDER BY is_mandatory DESC, created_at ASC, id ASC
	`, userID, date)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	var out []Quest
	for rows.Next() {
		q, err := scanQuestRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest rows: %w", err)
	}
	return out, nil
}

func (r *QuestRepo) MarkCompleted(ctx context.Context, id string, completedAt time.Time, reflection *string) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE daily_quests
		SET is_completed = 1, completed_at = ?, reflection = ?
		WHERE id = ?
	`, completedAt, reflection, id)
	if err != nil {
		return fmt.Errorf("quest mark completed: %w", err)
	}
	return nil
}

func (r *QuestRepo) CountCompleted(ctx context.Context, userID string) (int, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM daily_quests WHERE user_id = ? AND is_completed = 1`, userID)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("quest count completed: %w", err)
	}
	return n, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestRow(row scanner) (*Quest, error) {
	var (
		q           Quest
		mandatory   int
		completed   int
		completedAt sql.NullTime
		reflection  sql.NullString
	)

	if err := row.Scan(
		&q.ID, &q.UserID, &q.TemplateID, &q.QuestDate, &q.Title, &q.Description, &q.Stat,
		&q.XPReward, &mandatory, &completed, &completedAt, &reflection, &q.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quest scan: %w", err)
	}

	q.Mandatory = mandatory != 0
	q.Completed = completed != 0
	if completedAt.Valid {
		v := completedAt.Time
		q.CompletedAt = &v
	}
	if reflection.Valid {
		v := reflection.String
		q.Reflection = &v
	}
	return &q, nil
}
