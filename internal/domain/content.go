package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ContentType string

const (
	ContentTypeMovie ContentType = "M"
	ContentTypeShow  ContentType = "S"
)

// Content is a catalog entry, either a movie or a show. Poster and trailer
// hold raw object keys; they are presigned before leaving the API.
type Content struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Description  string         `db:"description" json:"description"`
	Type         ContentType    `db:"content_type" json:"type"`
	PosterKey    string         `db:"poster_key" json:"-"`
	TrailerKey   string         `db:"trailer_key" json:"-"`
	Genre        pq.StringArray `db:"genre" json:"genre"`
	MovieVideoID *uuid.UUID     `db:"movie_video_id" json:"-"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

type Video struct {
	ID           uuid.UUID `db:"id" json:"id"`
	VideoKey     string    `db:"video_key" json:"-"`
	ThumbnailKey string    `db:"thumbnail_key" json:"-"`
	Duration     *int      `db:"duration" json:"duration,omitempty"`
}

type Season struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ContentID    uuid.UUID `db:"content_id" json:"content_id"`
	SeasonNumber int       `db:"season_number" json:"season_number"`
}

type Episode struct {
	ID           uuid.UUID `db:"id" json:"id"`
	SeasonID     uuid.UUID `db:"season_id" json:"season_id"`
	EpisodeNo    int       `db:"episode_no" json:"episode_no"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	VideoKey     string    `db:"video_key" json:"-"`
	ThumbnailKey string    `db:"thumbnail_key" json:"-"`
	Duration     int       `db:"duration" json:"duration"`
}

// SeasonWithEpisodes is a fully materialized season, returned by the content
// repository so callers never traverse relations lazily.
type SeasonWithEpisodes struct {
	Season
	Episodes []Episode
}
