package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/veeplay/veeplay-api/internal/domain"
	"github.com/veeplay/veeplay-api/internal/repository/ports"
)

type WatchHistoryRepository struct {
	db *sqlx.DB
}

func NewWatchHistoryRepo(db *sqlx.DB) *WatchHistoryRepository {
	return &WatchHistoryRepository{db: db}
}

func (r *WatchHistoryRepository) Upsert(ctx context.Context, userID, contentID uuid.UUID, progress int) (*domain.WatchHistory, error) {
	const query = `
        INSERT INTO watch_history (user_id, content_id, progress, last_watched)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (user_id, content_id) DO UPDATE
        SET progress = EXCLUDED.progress,
            last_watched = NOW()
        RETURNING id, user_id, content_id, progress, last_watched
    `
	row := r.db.QueryRowxContext(ctx, query, userID, contentID, progress)
	var history domain.WatchHistory
	if err := row.StructScan(&history); err != nil {
		return nil, err
	}
	return &history, nil
}

func (r *WatchHistoryRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.WatchHistoryItem, error) {
	const query = `
        SELECT
            w.content_id,
            c.name AS content_name,
            c.content_type,
            c.genre,
            c.poster_key,
            w.progress,
            w.last_watched
        FROM watch_history w
        JOIN content c ON c.id = w.content_id
        WHERE w.user_id = $1
        ORDER BY w.last_watched DESC, w.id DESC
        LIMIT $2
    `
	return r.queryItems(ctx, query, userID, limit)
}

func (r *WatchHistoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WatchHistoryItem, error) {
	const query = `
        SELECT
            w.content_id,
            c.name AS content_name,
            c.content_type,
            c.genre,
            c.poster_key,
            w.progress,
            w.last_watched
        FROM watch_history w
        JOIN content c ON c.id = w.content_id
        WHERE w.user_id = $1
        ORDER BY w.last_watched DESC, w.id DESC
    `
	return r.queryItems(ctx, query, userID)
}

func (r *WatchHistoryRepository) queryItems(ctx context.Context, query string, args ...any) ([]domain.WatchHistoryItem, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.WatchHistoryItem, 0)
	for rows.Next() {
		var item domain.WatchHistoryItem
		if err := rows.StructScan(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ ports.WatchHistoryRepository = (*WatchHistoryRepository)(nil)
