package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/veeplay/veeplay-api/internal/domain"
	"github.com/veeplay/veeplay-api/internal/repository/ports"
)

var ErrContentNotFound = errors.New("content not found")

// ContentService serves the catalog. Every media reference leaving it is a
// presigned URL; raw object keys stay internal.
type ContentService struct {
	contents ports.ContentRepository
	storage  ports.ObjectStorage

	bucket string
	urlTTL time.Duration
}

func NewContentService(contents ports.ContentRepository, storage ports.ObjectStorage, bucket string, urlTTL time.Duration) *ContentService {
	return &ContentService{
		contents: contents,
		storage:  storage,
		bucket:   bucket,
		urlTTL:   urlTTL,
	}
}

type ContentSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Genre       []string  `json:"genre"`
	PosterURL   string    `json:"poster"`
	TrailerURL  string    `json:"trailer"`
}

type EpisodeDetail struct {
	EpisodeNo    int    `json:"episode_no"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail"`
	VideoURL     string `json:"video_url,omitempty"`
	Duration     int    `json:"duration"`
}

type SeasonDetail struct {
	SeasonNumber int             `json:"season_number"`
	Episodes     []EpisodeDetail `json:"episodes"`
}

type ShowDetail struct {
	ContentSummary
	Seasons []SeasonDetail `json:"seasons"`
}

type VideoDetail struct {
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail"`
	Duration     *int   `json:"duration,omitempty"`
}

type MovieDetail struct {
	ContentSummary
	Video *VideoDetail `json:"video,omitempty"`
}

type SearchResult struct {
	Movies []ContentSummary `json:"movies"`
	Shows  []ContentSummary `json:"shows"`
}

func (s *ContentService) ListShows(ctx context.Context) ([]ContentSummary, error) {
	return s.listByType(ctx, domain.ContentTypeShow)
}

func (s *ContentService) ListMovies(ctx context.Context) ([]ContentSummary, error) {
	return s.listByType(ctx, domain.ContentTypeMovie)
}

func (s *ContentService) ListAll(ctx context.Context) ([]ContentSummary, error) {
	contents, err := s.contents.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, contents)
}

func (s *ContentService) listByType(ctx context.Context, contentType domain.ContentType) ([]ContentSummary, error) {
	contents, err := s.contents.ListByType(ctx, contentType)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, contents)
}

// ShowDetails returns a show with its seasons and episodes. Episode video
// URLs are not included here; they require an authenticated episode fetch.
func (s *ContentService) ShowDetails(ctx context.Context, name string) (*ShowDetail, error) {
	show, err := s.contents.FindByNameAndType(ctx, name, domain.ContentTypeShow)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}

	summary, err := s.toSummary(ctx, show)
	if err != nil {
		return nil, err
	}

	seasons, err := s.contents.ListSeasonsWithEpisodes(ctx, show.ID)
	if err != nil {
		return nil, err
	}

	detail := &ShowDetail{ContentSummary: *summary, Seasons: make([]SeasonDetail, 0, len(seasons))}
	for _, season := range seasons {
		sd := SeasonDetail{SeasonNumber: season.SeasonNumber, Episodes: make([]EpisodeDetail, 0, len(season.Episodes))}
		for _, ep := range season.Episodes {
			thumb, err := s.sign(ctx, ep.ThumbnailKey)
			if err != nil {
				return nil, err
			}
			sd.Episodes = append(sd.Episodes, EpisodeDetail{
				EpisodeNo:    ep.EpisodeNo,
				Title:        ep.Title,
				Description:  ep.Description,
				ThumbnailURL: thumb,
				Duration:     ep.Duration,
			})
		}
		detail.Seasons = append(detail.Seasons, sd)
	}
	return detail, nil
}

func (s *ContentService) MovieDetails(ctx context.Context, name string) (*MovieDetail, error) {
	movie, err := s.contents.FindByNameAndType(ctx, name, domain.ContentTypeMovie)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	summary, err := s.toSummary(ctx, movie)
	if err != nil {
		return nil, err
	}
	return &MovieDetail{ContentSummary: *summary}, nil
}

// MovieVideo returns the playable video for a movie. Callers must be
// authenticated; the handler enforces that.
func (s *ContentService) MovieVideo(ctx context.Context, name string) (*VideoDetail, error) {
	movie, err := s.contents.FindByNameAndType(ctx, name, domain.ContentTypeMovie)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}

	video, err := s.contents.FindMovieVideo(ctx, movie.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}

	videoURL, err := s.sign(ctx, video.VideoKey)
	if err != nil {
		return nil, err
	}
	thumbURL := ""
	if video.ThumbnailKey != "" {
		if thumbURL, err = s.sign(ctx, video.ThumbnailKey); err != nil {
			return nil, err
		}
	}
	return &VideoDetail{VideoURL: videoURL, ThumbnailURL: thumbURL, Duration: video.Duration}, nil
}

func (s *ContentService) Episode(ctx context.Context, showName string, seasonNumber, episodeNumber int) (*EpisodeDetail, error) {
	show, err := s.contents.FindByNameAndType(ctx, showName, domain.ContentTypeShow)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}

	episode, err := s.contents.FindEpisode(ctx, show.ID, seasonNumber, episodeNumber)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}

	videoURL, err := s.sign(ctx, episode.VideoKey)
	if err != nil {
		return nil, err
	}
	thumbURL, err := s.sign(ctx, episode.ThumbnailKey)
	if err != nil {
		return nil, err
	}
	return &EpisodeDetail{
		EpisodeNo:    episode.EpisodeNo,
		Title:        episode.Title,
		Description:  episode.Description,
		ThumbnailURL: thumbURL,
		VideoURL:     videoURL,
		Duration:     episode.Duration,
	}, nil
}

func (s *ContentService) Search(ctx context.Context, query string) (*SearchResult, error) {
	contents, err := s.contents.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{Movies: make([]ContentSummary, 0), Shows: make([]ContentSummary, 0)}
	for i := range contents {
		summary, err := s.toSummary(ctx, &contents[i])
		if err != nil {
			return nil, err
		}
		switch contents[i].Type {
		case domain.ContentTypeMovie:
			result.Movies = append(result.Movies, *summary)
		case domain.ContentTypeShow:
			result.Shows = append(result.Shows, *summary)
		}
	}
	return result, nil
}

// FilterByGenre returns lightweight name/genre listings, split by type.
func (s *ContentService) FilterByGenre(ctx context.Context, genre string) (map[string][]map[string]any, error) {
	contents, err := s.contents.FilterByGenre(ctx, genre)
	if err != nil {
		return nil, err
	}

	out := map[string][]map[string]any{
		"movies": make([]map[string]any, 0),
		"shows":  make([]map[string]any, 0),
	}
	for _, c := range contents {
		entry := map[string]any{"name": c.Name, "genre": []string(c.Genre)}
		switch c.Type {
		case domain.ContentTypeMovie:
			out["movies"] = append(out["movies"], entry)
		case domain.ContentTypeShow:
			out["shows"] = append(out["shows"], entry)
		}
	}
	return out, nil
}

func (s *ContentService) summarize(ctx context.Context, contents []domain.Content) ([]ContentSummary, error) {
	out := make([]ContentSummary, 0, len(contents))
	for i := range contents {
		summary, err := s.toSummary(ctx, &contents[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *summary)
	}
	return out, nil
}

func (s *ContentService) toSummary(ctx context.Context, content *domain.Content) (*ContentSummary, error) {
	poster, err := s.sign(ctx, content.PosterKey)
	if err != nil {
		return nil, err
	}
	trailer, err := s.sign(ctx, content.TrailerKey)
	if err != nil {
		return nil, err
	}
	return &ContentSummary{
		ID:          content.ID,
		Name:        content.Name,
		Description: content.Description,
		Genre:       []string(content.Genre),
		PosterURL:   poster,
		TrailerURL:  trailer,
	}, nil
}

func (s *ContentService) sign(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	return s.storage.PresignGet(ctx, s.bucket, key, s.urlTTL)
}
