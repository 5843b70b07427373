package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veeplay/veeplay-api/internal/domain"
	"github.com/veeplay/veeplay-api/internal/media"
	"github.com/veeplay/veeplay-api/internal/repository/ports"
	"github.com/veeplay/veeplay-api/internal/util"
)

var (
	ErrUserExists         = errors.New("email or username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("not allowed to manage this account")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
	ErrResetTokenUsed     = errors.New("reset token already used")
)

// PasswordResetSender is the outbound notification sink. Delivery failures
// are logged and never fail the surrounding request.
type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

type AuthService struct {
	users      ports.UserRepository
	usedTokens ports.UsedTokenRepository
	storage    ports.ObjectStorage
	mailer     PasswordResetSender
	sessions   *util.JWTManager
	resets     *util.ResetTokenManager
	processor  media.Processor

	profileBucket string
	mediaURLTTL   time.Duration
	imageMaxDim   int
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type ProfileUpdate struct {
	Username *string
	Email    *string
	Image    *media.Upload
}

func NewAuthService(
	users ports.UserRepository,
	usedTokens ports.UsedTokenRepository,
	storage ports.ObjectStorage,
	mailer PasswordResetSender,
	sessions *util.JWTManager,
	resets *util.ResetTokenManager,
	processor media.Processor,
	profileBucket string,
	mediaURLTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:         users,
		usedTokens:    usedTokens,
		storage:       storage,
		mailer:        mailer,
		sessions:      sessions,
		resets:        resets,
		processor:     processor,
		profileBucket: profileBucket,
		mediaURLTTL:   mediaURLTTL,
		imageMaxDim:   media.DefaultMaxDimension,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, username, email, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.sessions.Generate(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Authenticate resolves a bearer session token to its user. Malformed, badly
// signed and expired tokens all map to ErrInvalidToken.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.sessions.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile edits the account addressed by email. The acting user must be
// the account owner.
func (s *AuthService) UpdateProfile(ctx context.Context, actor *domain.User, targetEmail string, update ProfileUpdate) (*domain.User, error) {
	target, err := s.users.FindByEmail(ctx, normalizeEmail(targetEmail))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if actor == nil || actor.ID != target.ID {
		return nil, ErrForbidden
	}

	var username, email, imageKey *string
	if update.Username != nil {
		trimmed := strings.TrimSpace(*update.Username)
		if trimmed != "" {
			username = &trimmed
		}
	}
	if update.Email != nil {
		normalized := normalizeEmail(*update.Email)
		if normalized != "" && normalized != target.Email {
			email = &normalized
		}
	}
	if update.Image != nil {
		key, err := s.uploadProfileImage(ctx, target.ID, *update.Image)
		if err != nil {
			return nil, err
		}
		imageKey = &key
	}

	user, err := s.users.UpdateProfile(ctx, target.ID, username, email, imageKey)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) uploadProfileImage(ctx context.Context, userID uuid.UUID, upload media.Upload) (string, error) {
	processed, err := s.processor.Process(ctx, upload, s.imageMaxDim)
	if err != nil {
		return "", err
	}
	objectName := fmt.Sprintf("profiles/%s/%s.jpg", userID, uuid.NewString())
	reader := bytes.NewReader(processed.Bytes)
	return s.storage.Upload(ctx, s.profileBucket, objectName, processed.ContentType, reader, int64(len(processed.Bytes)))
}

// ProfileImageURL presigns the user's profile image key.
func (s *AuthService) ProfileImageURL(ctx context.Context, user *domain.User) (string, error) {
	key := user.ImageKey
	if key == "" {
		key = domain.DefaultImageKey
	}
	return s.storage.PresignGet(ctx, s.profileBucket, key, s.mediaURLTTL)
}

// ForgotPassword issues a fresh reset token and hands it to the notification
// sink. Send failures are logged only; the caller still gets a success.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	token, _, err := s.resets.Generate(user.ID)
	if err != nil {
		return err
	}

	if s.mailer == nil {
		return nil
	}
	if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		log.Printf("password reset mail to %s failed: %v", user.Email, err)
	}
	return nil
}

// ResetPassword validates the single-use token, then changes the password and
// consumes the token in one storage transaction. A second call with the same
// token returns ErrResetTokenUsed, even when the two calls race: the ledger's
// unique constraint rejects the duplicate insert inside the transaction.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return ErrResetTokenInvalid
	}

	claims, err := s.resets.Parse(token)
	if err != nil {
		return ErrResetTokenInvalid
	}

	used, err := s.usedTokens.Exists(ctx, token)
	if err != nil {
		return err
	}
	if used {
		return ErrResetTokenUsed
	}

	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.usedTokens.ConsumeWithPasswordUpdate(ctx, token, claims.UserID, hash, salt); err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrResetTokenUsed
		case isNotFound(err):
			return ErrUserNotFound
		default:
			return err
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
