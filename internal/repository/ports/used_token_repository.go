package ports

import (
	"context"

	"github.com/google/uuid"
)

// UsedTokenRepository is the consumed reset token ledger. ConsumeWithPasswordUpdate
// applies the guarded password change and records the token in one transaction,
// so a crash can never leave the password changed but the token spendable again.
type UsedTokenRepository interface {
	Exists(ctx context.Context, token string) (bool, error)
	ConsumeWithPasswordUpdate(ctx context.Context, token string, userID uuid.UUID, passwordHash, passwordSalt []byte) error
}
