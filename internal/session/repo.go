package session

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepository persists sessions in Postgres.
type PGRepository struct {
	db *sql.DB
}

func NewPGRepository(db *sql.DB) *PGRepository {
	return &PGRepository{db: db}
}

func (r *PGRepository) Create(ctx context.Context, s Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			expires_at = EXCLUDED.expires_at
	`, s.Token, s.UserID, s.ExpiresAt, s.CreatedAt)
	return err
}

func (r *PGRepository) GetByToken(ctx context.Context, token string) (Session, error) {
	var s Session
	err := r.db.QueryRowContext(ctx, `
		SELECT token, user_id, expires_at, created_at
		FROM sessions WHERE token = $1
	`, token).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	return s, nil
}

func (r *PGRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}
