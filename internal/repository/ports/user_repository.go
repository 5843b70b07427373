package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/veeplay/veeplay-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, username, email string, passwordHash, passwordSalt []byte) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, username *string, email *string, imageKey *string) (*domain.User, error)
}
