package domain

import "time"

// PasswordResetToken is the persisted single-use record backing a reset flow.
// Expiry lives inside the signed token itself; the row only exists so the
// token can be consumed exactly once (deleted after a successful reset).
type PasswordResetToken struct {
	ID        int64
	UserID    int64
	TokenHash string
	CreatedAt time.Time
}
