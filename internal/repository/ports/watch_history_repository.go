package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/veeplay/veeplay-api/internal/domain"
)

type WatchHistoryRepository interface {
	// Upsert inserts the (user, content) progress row or overwrites the
	// existing one, refreshing last_watched either way.
	Upsert(ctx context.Context, userID, contentID uuid.UUID, progress int) (*domain.WatchHistory, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.WatchHistoryItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WatchHistoryItem, error)
}
