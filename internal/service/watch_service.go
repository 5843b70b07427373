package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/veeplay/veeplay-api/internal/repository/ports"
)

const defaultContinueWatchingLimit = 10

// WatchService tracks per-user playback progress and builds the continue
// watching view.
type WatchService struct {
	history  ports.WatchHistoryRepository
	contents ports.ContentRepository
	storage  ports.ObjectStorage

	bucket string
	urlTTL time.Duration
}

func NewWatchService(history ports.WatchHistoryRepository, contents ports.ContentRepository, storage ports.ObjectStorage, bucket string, urlTTL time.Duration) *WatchService {
	return &WatchService{
		history:  history,
		contents: contents,
		storage:  storage,
		bucket:   bucket,
		urlTTL:   urlTTL,
	}
}

type ContinueWatchingItem struct {
	ContentID   uuid.UUID `json:"content_id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Genre       []string  `json:"genre"`
	PosterURL   string    `json:"thumbnail"`
	Progress    int       `json:"progress"`
	LastWatched string    `json:"last_watched"`
}

type HistoryItem struct {
	ContentID   uuid.UUID `json:"content_id"`
	ContentName string    `json:"content_name"`
	ContentType string    `json:"content_type"`
	PosterURL   string    `json:"poster"`
	Progress    int       `json:"progress"`
}

// Record upserts the progress row for (user, content). Negative progress is
// coerced to zero rather than rejected; the client-facing contract has always
// been permissive here.
func (s *WatchService) Record(ctx context.Context, userID, contentID uuid.UUID, progress int) error {
	if progress < 0 {
		progress = 0
	}

	if _, err := s.contents.FindByID(ctx, contentID); err != nil {
		if isNotFound(err) {
			return ErrContentNotFound
		}
		return err
	}

	_, err := s.history.Upsert(ctx, userID, contentID, progress)
	return err
}

// ContinueWatching returns at most limit rows, most recently watched first.
func (s *WatchService) ContinueWatching(ctx context.Context, userID uuid.UUID, limit int) ([]ContinueWatchingItem, error) {
	if limit <= 0 || limit > defaultContinueWatchingLimit {
		limit = defaultContinueWatchingLimit
	}

	rows, err := s.history.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]ContinueWatchingItem, 0, len(rows))
	for _, row := range rows {
		poster, err := s.sign(ctx, row.PosterKey)
		if err != nil {
			return nil, err
		}
		items = append(items, ContinueWatchingItem{
			ContentID:   row.ContentID,
			Title:       row.ContentName,
			Type:        string(row.ContentType),
			Genre:       []string(row.Genre),
			PosterURL:   poster,
			Progress:    row.Progress,
			LastWatched: row.LastWatched.UTC().Format(time.RFC3339),
		})
	}
	return items, nil
}

// History returns the user's full watch history for the account view.
func (s *WatchService) History(ctx context.Context, userID uuid.UUID) ([]HistoryItem, error) {
	rows, err := s.history.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]HistoryItem, 0, len(rows))
	for _, row := range rows {
		poster, err := s.sign(ctx, row.PosterKey)
		if err != nil {
			return nil, err
		}
		items = append(items, HistoryItem{
			ContentID:   row.ContentID,
			ContentName: row.ContentName,
			ContentType: string(row.ContentType),
			PosterURL:   poster,
			Progress:    row.Progress,
		})
	}
	return items, nil
}

func (s *WatchService) sign(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	return s.storage.PresignGet(ctx, s.bucket, key, s.urlTTL)
}
