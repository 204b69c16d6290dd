package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type TemplateRepo struct {
	q DBTX
}

func NewTemplateRepo(db DBTX) *TemplateRepo {
	return &TemplateRepo{q: db}
}

func (r *TemplateRepo) WithTx(tx *sql.Tx) *TemplateRepo {
	return &TemplateRepo{q: tx}
}

func (r *TemplateRepo) ListActive(ctx context.Context) ([]Template, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, title, description, stat, xp_reward, active
		FROM quest_templates
		WHERE active = 1
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("template list: %w", err)
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		var t Template
		var active int
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Stat, &t.XPReward, &active); err != nil {
			return nil, fmt.Errorf("template scan: %w", err)
		}
		t.Active = active != 0
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("template rows: %w", err)
	}
	return out, nil
}

func (r *TemplateRepo) Upsert(ctx context.Context, t Template) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO quest_templates (id, title, description, stat, xp_reward, active)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			stat = excluded.stat,
			xp_reward = excluded.xp_reward,
			active = excluded.active
	`, t.ID, t.Title, t.Description, t.Stat, t.XPReward, boolToInt(t.Active))
	if err != nil {
		return fmt.Errorf("template upsert: %w", err)
	}
	return nil
}

func (r *TemplateRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.q.ExecContext(ctx, `UPDATE quest_templates SET active = ? WHERE id = ?`, boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("template set active: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("template set active rows: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
