package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/veeplay/veeplay-api/internal/domain"
	"github.com/veeplay/veeplay-api/internal/media"
	"github.com/veeplay/veeplay-api/internal/repository/ports"
	"github.com/veeplay/veeplay-api/internal/service"
	"github.com/veeplay/veeplay-api/internal/util"
)

type stubUserRepo struct {
	user *domain.User
}

func (s *stubUserRepo) Create(ctx context.Context, username, email string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	return nil, sql.ErrNoRows
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.user == nil {
		return nil, sql.ErrNoRows
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, username *string, email *string, imageKey *string) (*domain.User, error) {
	return s.user, nil
}

type stubUsedTokenRepo struct{}

func (s *stubUsedTokenRepo) Exists(ctx context.Context, token string) (bool, error) {
	return false, nil
}

func (s *stubUsedTokenRepo) ConsumeWithPasswordUpdate(ctx context.Context, token string, userID uuid.UUID, passwordHash, passwordSalt []byte) error {
	return nil
}

type stubStorage struct{}

func (s *stubStorage) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	return "https://storage.test/" + bucket + "/" + key, nil
}

func (s *stubStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	return objectName, nil
}

type stubProcessor struct{}

func (s *stubProcessor) Process(ctx context.Context, upload media.Upload, maxDimension int) (*media.Result, error) {
	return &media.Result{Bytes: []byte("img"), ContentType: "image/jpeg"}, nil
}

var (
	_ ports.UserRepository      = (*stubUserRepo)(nil)
	_ ports.UsedTokenRepository = (*stubUsedTokenRepo)(nil)
	_ ports.ObjectStorage       = (*stubStorage)(nil)
)

func newTestAuthService(user *domain.User) (*service.AuthService, *util.JWTManager) {
	sessions := util.NewJWTManager("handler-test-secret", time.Hour)
	resets := util.NewResetTokenManager("handler-test-secret", 15*time.Minute)
	auth := service.NewAuthService(
		&stubUserRepo{user: user}, &stubUsedTokenRepo{}, &stubStorage{}, nil,
		sessions, resets, &stubProcessor{}, "profile-bucket", time.Hour,
	)
	return auth, sessions
}

func TestRequireAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	auth, _ := newTestAuthService(nil)
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RequireAuth(auth))

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic abc123"},
		{name: "no token", header: "Bearer"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	auth, sessions := newTestAuthService(user)

	token, _, err := sessions.Generate(user.ID, user.Email, user.Username)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		current, ok := CurrentUser(c)
		if !ok || current == nil {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.String(http.StatusOK, current.ID.String())
	}, RequireAuth(auth))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != user.ID.String() {
		t.Fatalf("expected the authenticated user in context, got %q", rec.Body.String())
	}
}

func TestResetPasswordInvalidTokenMapsToNotFound(t *testing.T) {
	auth, _ := newTestAuthService(nil)
	e := echo.New()
	watch := service.NewWatchService(nil, nil, &stubStorage{}, "media-bucket", time.Hour)
	RegisterAuth(e, auth, watch, 0)

	body := strings.NewReader(`{"password":"newsecret456"}`)
	req := httptest.NewRequest(http.MethodPost, "/reset-password/garbage-token", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an invalid token, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON error body: %v", err)
	}
	if resp["message"] != "user not found" {
		t.Fatalf("invalid tokens must be indistinguishable from unknown users, got %q", resp["message"])
	}
}

func TestResetPasswordMissingPassword(t *testing.T) {
	auth, _ := newTestAuthService(nil)
	e := echo.New()
	watch := service.NewWatchService(nil, nil, &stubStorage{}, "media-bucket", time.Hour)
	RegisterAuth(e, auth, watch, 0)

	req := httptest.NewRequest(http.MethodPost, "/reset-password/some-token", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when no password is supplied, got %d", rec.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	auth, _ := newTestAuthService(nil)
	e := echo.New()
	watch := service.NewWatchService(nil, nil, &stubStorage{}, "media-bucket", time.Hour)
	RegisterAuth(e, auth, watch, 0)

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"","email":"","password":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty registration fields, got %d", rec.Code)
	}
}

func TestCoerceProgress(t *testing.T) {
	if got := coerceProgress(nil); got != 0 {
		t.Fatalf("nil progress should coerce to 0, got %d", got)
	}
	negative := -3.5
	if got := coerceProgress(&negative); got != 0 {
		t.Fatalf("negative progress should coerce to 0, got %d", got)
	}
	positive := 42.9
	if got := coerceProgress(&positive); got != 42 {
		t.Fatalf("fractional progress should truncate, got %d", got)
	}
	nan := math.NaN()
	if got := coerceProgress(&nan); got != 0 {
		t.Fatalf("NaN progress should coerce to 0, got %d", got)
	}
	negInf := math.Inf(-1)
	if got := coerceProgress(&negInf); got != 0 {
		t.Fatalf("negative infinity should coerce to 0, got %d", got)
	}
	posInf := math.Inf(1)
	if got := coerceProgress(&posInf); got != math.MaxInt32 {
		t.Fatalf("positive infinity should clamp to the column max, got %d", got)
	}
	huge := 1e18
	if got := coerceProgress(&huge); got != math.MaxInt32 {
		t.Fatalf("out-of-range progress should clamp to the column max, got %d", got)
	}
}
