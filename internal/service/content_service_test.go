package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/veeplay/veeplay-api/internal/domain"
)

func bytesReader(s string) io.Reader {
	return strings.NewReader(s)
}

// fakeStorage presigns into a recognizable URL shape so tests can assert on
// bucket, key and expiry without a real blob store.
type fakeStorage struct {
	mu         sync.Mutex
	presignErr error
	presigned  []struct {
		bucket string
		key    string
		expiry time.Duration
	}
	uploads []struct {
		bucket      string
		object      string
		contentType string
		size        int64
	}
}

func (f *fakeStorage) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presigned = append(f.presigned, struct {
		bucket string
		key    string
		expiry time.Duration
	}{bucket: bucket, key: key, expiry: expiry})
	return fmt.Sprintf("https://storage.test/%s/%s?expires=%d", bucket, key, int64(expiry.Seconds())), nil
}

func (f *fakeStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, struct {
		bucket      string
		object      string
		contentType string
		size        int64
	}{bucket: bucket, object: objectName, contentType: contentType, size: size})
	return objectName, nil
}

type fakeContentRepo struct {
	contents []domain.Content
	seasons  map[uuid.UUID][]domain.SeasonWithEpisodes
	episode  *domain.Episode
	video    *domain.Video

	findByIDErr error
	videoErr    error
	episodeErr  error
}

func (f *fakeContentRepo) ListAll(ctx context.Context) ([]domain.Content, error) {
	return f.contents, nil
}

func (f *fakeContentRepo) ListByType(ctx context.Context, contentType domain.ContentType) ([]domain.Content, error) {
	var out []domain.Content
	for _, c := range f.contents {
		if c.Type == contentType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContentRepo) FindByNameAndType(ctx context.Context, name string, contentType domain.ContentType) (*domain.Content, error) {
	for i := range f.contents {
		if f.contents[i].Name == name && f.contents[i].Type == contentType {
			return &f.contents[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeContentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Content, error) {
	if f.findByIDErr != nil {
		return nil, f.findByIDErr
	}
	for i := range f.contents {
		if f.contents[i].ID == id {
			return &f.contents[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeContentRepo) ListSeasonsWithEpisodes(ctx context.Context, contentID uuid.UUID) ([]domain.SeasonWithEpisodes, error) {
	return f.seasons[contentID], nil
}

func (f *fakeContentRepo) FindEpisode(ctx context.Context, contentID uuid.UUID, seasonNumber, episodeNumber int) (*domain.Episode, error) {
	if f.episodeErr != nil {
		return nil, f.episodeErr
	}
	if f.episode == nil {
		return nil, sql.ErrNoRows
	}
	return f.episode, nil
}

func (f *fakeContentRepo) FindMovieVideo(ctx context.Context, contentID uuid.UUID) (*domain.Video, error) {
	if f.videoErr != nil {
		return nil, f.videoErr
	}
	if f.video == nil {
		return nil, sql.ErrNoRows
	}
	return f.video, nil
}

func (f *fakeContentRepo) Search(ctx context.Context, query string) ([]domain.Content, error) {
	var out []domain.Content
	for _, c := range f.contents {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContentRepo) FilterByGenre(ctx context.Context, genre string) ([]domain.Content, error) {
	var out []domain.Content
	for _, c := range f.contents {
		for _, g := range c.Genre {
			if g == genre {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func movieContent(name string) domain.Content {
	return domain.Content{
		ID:          uuid.New(),
		Name:        name,
		Description: "a movie",
		Type:        domain.ContentTypeMovie,
		PosterKey:   "posters/" + name + ".jpg",
		TrailerKey:  "trailers/" + name + ".mp4",
		Genre:       []string{"Drama"},
	}
}

func showContent(name string) domain.Content {
	return domain.Content{
		ID:          uuid.New(),
		Name:        name,
		Description: "a show",
		Type:        domain.ContentTypeShow,
		PosterKey:   "posters/" + name + ".jpg",
		TrailerKey:  "trailers/" + name + ".mp4",
		Genre:       []string{"Comedy"},
	}
}

func TestListMoviesSignsPosterAndTrailer(t *testing.T) {
	repo := &fakeContentRepo{contents: []domain.Content{movieContent("inception"), showContent("severed")}}
	storage := &fakeStorage{}
	svc := NewContentService(repo, storage, "media-bucket", time.Hour)

	movies, err := svc.ListMovies(context.Background())
	if err != nil {
		t.Fatalf("ListMovies returned error: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("expected one movie, got %d", len(movies))
	}
	if !strings.Contains(movies[0].PosterURL, "posters/inception.jpg") {
		t.Fatalf("poster URL should reference the poster key, got %q", movies[0].PosterURL)
	}
	if !strings.Contains(movies[0].TrailerURL, "trailers/inception.mp4") {
		t.Fatalf("trailer URL should reference the trailer key, got %q", movies[0].TrailerURL)
	}
	for _, p := range storage.presigned {
		if p.bucket != "media-bucket" {
			t.Fatalf("expected presign against media bucket, got %q", p.bucket)
		}
		if p.expiry != time.Hour {
			t.Fatalf("expected one hour expiry, got %v", p.expiry)
		}
	}
}

func TestSummaryEmptyKeyYieldsEmptyURL(t *testing.T) {
	movie := movieContent("teaser-less")
	movie.TrailerKey = ""
	repo := &fakeContentRepo{contents: []domain.Content{movie}}
	storage := &fakeStorage{}
	svc := NewContentService(repo, storage, "media-bucket", time.Hour)

	movies, err := svc.ListMovies(context.Background())
	if err != nil {
		t.Fatalf("ListMovies returned error: %v", err)
	}
	if movies[0].TrailerURL != "" {
		t.Fatalf("empty key must not be presigned, got %q", movies[0].TrailerURL)
	}
	for _, p := range storage.presigned {
		if p.key == "" {
			t.Fatalf("presign must never be called with an empty key")
		}
	}
}

func TestShowDetailsOmitsEpisodeVideoURLs(t *testing.T) {
	show := showContent("severed")
	repo := &fakeContentRepo{
		contents: []domain.Content{show},
		seasons: map[uuid.UUID][]domain.SeasonWithEpisodes{
			show.ID: {
				{
					Season: domain.Season{ID: uuid.New(), ContentID: show.ID, SeasonNumber: 1},
					Episodes: []domain.Episode{
						{EpisodeNo: 1, Title: "Pilot", VideoKey: "videos/s1e1.mp4", ThumbnailKey: "thumbs/s1e1.jpg"},
					},
				},
			},
		},
	}
	svc := NewContentService(repo, &fakeStorage{}, "media-bucket", time.Hour)

	detail, err := svc.ShowDetails(context.Background(), "severed")
	if err != nil {
		t.Fatalf("ShowDetails returned error: %v", err)
	}
	if len(detail.Seasons) != 1 || len(detail.Seasons[0].Episodes) != 1 {
		t.Fatalf("unexpected season shape: %+v", detail.Seasons)
	}
	ep := detail.Seasons[0].Episodes[0]
	if ep.VideoURL != "" {
		t.Fatalf("public show details must not expose episode video URLs, got %q", ep.VideoURL)
	}
	if !strings.Contains(ep.ThumbnailURL, "thumbs/s1e1.jpg") {
		t.Fatalf("expected signed thumbnail, got %q", ep.ThumbnailURL)
	}
}

func TestShowDetailsNotFound(t *testing.T) {
	svc := NewContentService(&fakeContentRepo{}, &fakeStorage{}, "media-bucket", time.Hour)

	if _, err := svc.ShowDetails(context.Background(), "ghost"); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestMovieVideoSigned(t *testing.T) {
	movie := movieContent("inception")
	duration := 8880
	repo := &fakeContentRepo{
		contents: []domain.Content{movie},
		video:    &domain.Video{ID: uuid.New(), VideoKey: "videos/inception.mp4", ThumbnailKey: "thumbs/inception.jpg", Duration: &duration},
	}
	svc := NewContentService(repo, &fakeStorage{}, "media-bucket", time.Hour)

	video, err := svc.MovieVideo(context.Background(), "inception")
	if err != nil {
		t.Fatalf("MovieVideo returned error: %v", err)
	}
	if !strings.Contains(video.VideoURL, "videos/inception.mp4") {
		t.Fatalf("expected signed video URL, got %q", video.VideoURL)
	}
	if video.Duration == nil || *video.Duration != duration {
		t.Fatalf("expected duration %d, got %v", duration, video.Duration)
	}
}

func TestMovieVideoMissing(t *testing.T) {
	movie := movieContent("inception")
	repo := &fakeContentRepo{contents: []domain.Content{movie}}
	svc := NewContentService(repo, &fakeStorage{}, "media-bucket", time.Hour)

	if _, err := svc.MovieVideo(context.Background(), "inception"); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound for movie without video, got %v", err)
	}
	if _, err := svc.MovieVideo(context.Background(), "ghost"); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound for unknown movie, got %v", err)
	}
}

func TestEpisodeSigned(t *testing.T) {
	show := showContent("severed")
	repo := &fakeContentRepo{
		contents: []domain.Content{show},
		episode:  &domain.Episode{EpisodeNo: 2, Title: "Two", VideoKey: "videos/s1e2.mp4", ThumbnailKey: "thumbs/s1e2.jpg", Duration: 2400},
	}
	svc := NewContentService(repo, &fakeStorage{}, "media-bucket", time.Hour)

	ep, err := svc.Episode(context.Background(), "severed", 1, 2)
	if err != nil {
		t.Fatalf("Episode returned error: %v", err)
	}
	if !strings.Contains(ep.VideoURL, "videos/s1e2.mp4") {
		t.Fatalf("expected signed episode video, got %q", ep.VideoURL)
	}
	if !strings.Contains(ep.ThumbnailURL, "thumbs/s1e2.jpg") {
		t.Fatalf("expected signed episode thumbnail, got %q", ep.ThumbnailURL)
	}
}

func TestEpisodeNotFound(t *testing.T) {
	show := showContent("severed")
	repo := &fakeContentRepo{contents: []domain.Content{show}}
	svc := NewContentService(repo, &fakeStorage{}, "media-bucket", time.Hour)

	if _, err := svc.Episode(context.Background(), "severed", 9, 9); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestSearchSplitsByType(t *testing.T) {
	repo := &fakeContentRepo{contents: []domain.Content{
		movieContent("dark waters"),
		showContent("dark matter"),
		movieContent("sunshine"),
	}}
	svc := NewContentService(repo, &fakeStorage{}, "media-bucket", time.Hour)

	result, err := svc.Search(context.Background(), "dark")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(result.Movies) != 1 || result.Movies[0].Name != "dark waters" {
		t.Fatalf("unexpected movie results: %+v", result.Movies)
	}
	if len(result.Shows) != 1 || result.Shows[0].Name != "dark matter" {
		t.Fatalf("unexpected show results: %+v", result.Shows)
	}
}

func TestFilterByGenreGroups(t *testing.T) {
	movie := movieContent("inception")
	movie.Genre = []string{"Sci-Fi", "Drama"}
	show := showContent("severed")
	show.Genre = []string{"Sci-Fi"}
	other := movieContent("sunshine")
	other.Genre = []string{"Romance"}

	repo := &fakeContentRepo{contents: []domain.Content{movie, show, other}}
	svc := NewContentService(repo, &fakeStorage{}, "media-bucket", time.Hour)

	out, err := svc.FilterByGenre(context.Background(), "Sci-Fi")
	if err != nil {
		t.Fatalf("FilterByGenre returned error: %v", err)
	}
	if len(out["movies"]) != 1 || out["movies"][0]["name"] != "inception" {
		t.Fatalf("unexpected movies group: %+v", out["movies"])
	}
	if len(out["shows"]) != 1 || out["shows"][0]["name"] != "severed" {
		t.Fatalf("unexpected shows group: %+v", out["shows"])
	}
}
