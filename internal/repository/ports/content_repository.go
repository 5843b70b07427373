package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/veeplay/veeplay-api/internal/domain"
)

// ContentRepository is a read-only view of the catalog. All methods return
// fully materialized result sets.
type ContentRepository interface {
	ListAll(ctx context.Context) ([]domain.Content, error)
	ListByType(ctx context.Context, contentType domain.ContentType) ([]domain.Content, error)
	FindByNameAndType(ctx context.Context, name string, contentType domain.ContentType) (*domain.Content, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Content, error)
	ListSeasonsWithEpisodes(ctx context.Context, contentID uuid.UUID) ([]domain.SeasonWithEpisodes, error)
	FindEpisode(ctx context.Context, contentID uuid.UUID, seasonNumber, episodeNumber int) (*domain.Episode, error)
	FindMovieVideo(ctx context.Context, contentID uuid.UUID) (*domain.Video, error)
	Search(ctx context.Context, query string) ([]domain.Content, error)
	FilterByGenre(ctx context.Context, genre string) ([]domain.Content, error)
}
