package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/olzhasbek/qazcargo/internal/model"
)

// SessionRepo persists opaque session tokens (single 'token_hash' column).
// Rows are deleted rather than flagged: a session is either live or gone.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// ReplaceForUser removes every session owned by the user and inserts a
// fresh one inside a single transaction. The delete must commit with the
// insert so two concurrent sign-ins cannot leave two live sessions.
func (r *SessionRepo) ReplaceForUser(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM sessions WHERE user_id=?", userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO sessions (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, expiresAt); err != nil {
		return err
	}
	return tx.Commit()
}

// GetByTokenHash returns the session matching the token hash, if any.
// Expiry is not checked here; the auth service owns that decision so it
// can delete the row lazily.
func (r *SessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (model.Session, bool, error) {
	var s model.Session
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,token_hash,expires_at,created_at FROM sessions WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&s.ID, &s.UserID, &s.TokenHash, &s.ExpiresAt, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Session{}, false, nil
	}
	if err != nil {
		return model.Session{}, false, err
	}
	return s, true, nil
}

// DeleteByTokenHash removes a single session. Deleting an absent row is
// not an error, which makes sign-out idempotent.
func (r *SessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM sessions WHERE token_hash=?", tokenHash)
	return err
}

// DeleteByUser removes all sessions for the given user (force logout).
func (r *SessionRepo) DeleteByUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM sessions WHERE user_id=?", userID)
	return err
}
