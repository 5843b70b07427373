package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// WatchHistory records playback progress for one (user, content) pair.
// The pair is unique; repeated reports update the row in place and refresh
// last_watched.
type WatchHistory struct {
	ID          int64     `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	ContentID   uuid.UUID `db:"content_id" json:"content_id"`
	Progress    int       `db:"progress" json:"progress"`
	LastWatched time.Time `db:"last_watched" json:"last_watched"`
}

// WatchHistoryItem is a history row joined with its catalog entry.
type WatchHistoryItem struct {
	ContentID   uuid.UUID      `db:"content_id"`
	ContentName string         `db:"content_name"`
	ContentType ContentType    `db:"content_type"`
	Genre       pq.StringArray `db:"genre"`
	PosterKey   string         `db:"poster_key"`
	Progress    int            `db:"progress"`
	LastWatched time.Time      `db:"last_watched"`
}
