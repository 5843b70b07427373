package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/veeplay/veeplay-api/internal/repository/ports"
)

type UsedTokenRepository struct {
	db *sqlx.DB
}

func NewUsedTokenRepo(db *sqlx.DB) *UsedTokenRepository {
	return &UsedTokenRepository{db: db}
}

func (r *UsedTokenRepository) Exists(ctx context.Context, token string) (bool, error) {
	const query = `
        SELECT EXISTS (SELECT 1 FROM used_reset_token WHERE token = $1)
    `
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, token); err != nil {
		return false, err
	}
	return exists, nil
}

// ConsumeWithPasswordUpdate changes the password and records the token in a
// single transaction. The unique constraint on used_reset_token.token makes
// the second of two racing consumes fail here instead of both succeeding.
func (r *UsedTokenRepository) ConsumeWithPasswordUpdate(ctx context.Context, token string, userID uuid.UUID, passwordHash, passwordSalt []byte) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const updateQuery = `
        UPDATE user_account
        SET password_hash = $2,
            password_salt = $3,
            updated_at = NOW()
        WHERE id = $1
    `
	result, err := tx.ExecContext(ctx, updateQuery, userID, passwordHash, passwordSalt)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	const insertQuery = `
        INSERT INTO used_reset_token (token)
        VALUES ($1)
    `
	if _, err := tx.ExecContext(ctx, insertQuery, token); err != nil {
		return err
	}

	return tx.Commit()
}

var _ ports.UsedTokenRepository = (*UsedTokenRepository)(nil)
