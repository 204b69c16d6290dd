package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type TokenRepo struct {
	q DBTX
}

func NewTokenRepo(db DBTX) *TokenRepo {
	return &TokenRepo{q: db}
}

func (r *TokenRepo) Insert(ctx context.Context, t APIToken) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO api_tokens (id, user_id, token_hash) VALUES (?, ?, ?)`,
		t.ID, t.UserID, t.TokenHash)
	if err != nil {
		return fmt.Errorf("token insert: %w", err)
	}
	return nil
}

func (r *TokenRepo) GetByHash(ctx context.Context, tokenHash string) (*APIToken, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, created_at FROM api_tokens WHERE token_hash = ?`, tokenHash)

	var t APIToken
	if err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("token get: %w", err)
	}
	return &t, nil
}

func (r *TokenRepo) DeleteByHash(ctx context.Context, tokenHash string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM api_tokens WHERE token_hash = ?`, tokenHash); err != nil {
		return fmt.Errorf("token delete: %w", err)
	}
	return nil
}
