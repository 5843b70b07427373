package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultImageKey is the object key assigned to accounts that never uploaded
// a profile picture. The object is expected to exist in the profile bucket.
const DefaultImageKey = "default.jpg"

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	ImageKey     string    `db:"image_key" json:"-"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	PasswordSalt []byte    `db:"password_salt" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
