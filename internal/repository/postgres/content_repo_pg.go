package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/veeplay/veeplay-api/internal/domain"
	"github.com/veeplay/veeplay-api/internal/repository/ports"
)

type ContentRepository struct {
	db *sqlx.DB
}

func NewContentRepo(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

const contentColumns = `
    id, name, description, content_type, poster_key, trailer_key, genre, movie_video_id, created_at
`

func (r *ContentRepository) ListAll(ctx context.Context) ([]domain.Content, error) {
	const query = `
        SELECT ` + contentColumns + `
        FROM content
        ORDER BY name ASC
    `
	return r.queryContents(ctx, query)
}

func (r *ContentRepository) ListByType(ctx context.Context, contentType domain.ContentType) ([]domain.Content, error) {
	const query = `
        SELECT ` + contentColumns + `
        FROM content
        WHERE content_type = $1
        ORDER BY name ASC
    `
	return r.queryContents(ctx, query, contentType)
}

func (r *ContentRepository) FindByNameAndType(ctx context.Context, name string, contentType domain.ContentType) (*domain.Content, error) {
	const query = `
        SELECT ` + contentColumns + `
        FROM content
        WHERE name = $1 AND content_type = $2
    `
	var content domain.Content
	if err := r.db.GetContext(ctx, &content, query, name, contentType); err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *ContentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Content, error) {
	const query = `
        SELECT ` + contentColumns + `
        FROM content
        WHERE id = $1
    `
	var content domain.Content
	if err := r.db.GetContext(ctx, &content, query, id); err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *ContentRepository) ListSeasonsWithEpisodes(ctx context.Context, contentID uuid.UUID) ([]domain.SeasonWithEpisodes, error) {
	const seasonQuery = `
        SELECT id, content_id, season_number
        FROM season
        WHERE content_id = $1
        ORDER BY season_number ASC
    `
	var seasons []domain.Season
	if err := r.db.SelectContext(ctx, &seasons, seasonQuery, contentID); err != nil {
		return nil, err
	}

	const episodeQuery = `
        SELECT e.id, e.season_id, e.episode_no, e.title, e.description, e.video_key, e.thumbnail_key, e.duration
        FROM episode e
        JOIN season s ON s.id = e.season_id
        WHERE s.content_id = $1
        ORDER BY e.episode_no ASC
    `
	var episodes []domain.Episode
	if err := r.db.SelectContext(ctx, &episodes, episodeQuery, contentID); err != nil {
		return nil, err
	}

	bySeason := make(map[uuid.UUID][]domain.Episode, len(seasons))
	for _, ep := range episodes {
		bySeason[ep.SeasonID] = append(bySeason[ep.SeasonID], ep)
	}

	out := make([]domain.SeasonWithEpisodes, 0, len(seasons))
	for _, season := range seasons {
		out = append(out, domain.SeasonWithEpisodes{
			Season:   season,
			Episodes: bySeason[season.ID],
		})
	}
	return out, nil
}

func (r *ContentRepository) FindEpisode(ctx context.Context, contentID uuid.UUID, seasonNumber, episodeNumber int) (*domain.Episode, error) {
	const query = `
        SELECT e.id, e.season_id, e.episode_no, e.title, e.description, e.video_key, e.thumbnail_key, e.duration
        FROM episode e
        JOIN season s ON s.id = e.season_id
        WHERE s.content_id = $1 AND s.season_number = $2 AND e.episode_no = $3
    `
	var episode domain.Episode
	if err := r.db.GetContext(ctx, &episode, query, contentID, seasonNumber, episodeNumber); err != nil {
		return nil, err
	}
	return &episode, nil
}

func (r *ContentRepository) FindMovieVideo(ctx context.Context, contentID uuid.UUID) (*domain.Video, error) {
	const query = `
        SELECT v.id, v.video_key, v.thumbnail_key, v.duration
        FROM video v
        JOIN content c ON c.movie_video_id = v.id
        WHERE c.id = $1
    `
	var video domain.Video
	if err := r.db.GetContext(ctx, &video, query, contentID); err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *ContentRepository) Search(ctx context.Context, query string) ([]domain.Content, error) {
	const sqlQuery = `
        SELECT ` + contentColumns + `
        FROM content
        WHERE name ILIKE '%' || $1 || '%'
        ORDER BY name ASC
    `
	return r.queryContents(ctx, sqlQuery, query)
}

func (r *ContentRepository) FilterByGenre(ctx context.Context, genre string) ([]domain.Content, error) {
	// Genre values are stored capitalized; clients send whatever casing they
	// like, so the match is case-insensitive.
	const query = `
        SELECT ` + contentColumns + `
        FROM content
        WHERE EXISTS (
            SELECT 1 FROM unnest(genre) AS g WHERE LOWER(g) = LOWER($1)
        )
        ORDER BY name ASC
    `
	return r.queryContents(ctx, query, genre)
}

func (r *ContentRepository) queryContents(ctx context.Context, query string, args ...any) ([]domain.Content, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Content, 0)
	for rows.Next() {
		var content domain.Content
		if err := rows.StructScan(&content); err != nil {
			return nil, err
		}
		items = append(items, content)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ ports.ContentRepository = (*ContentRepository)(nil)
