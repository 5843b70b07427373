package domain

import "time"

// UsedResetToken is a ledger entry for a password reset token that has been
// spent. The token column carries a unique constraint so a concurrent second
// consume fails at the storage layer rather than in application code.
type UsedResetToken struct {
	ID        int64     `db:"id" json:"id"`
	Token     string    `db:"token" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
