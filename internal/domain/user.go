package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash []byte     `db:"password_hash" json:"-"`
	PasswordSalt []byte     `db:"password_salt" json:"-"`
	Role         Role       `db:"role" json:"role"`
	IsVerified   bool       `db:"is_verified" json:"is_verified"`
	OTP          *string    `db:"otp" json:"-"`
	OTPExpiresAt *time.Time `db:"otp_expires_at" json:"-"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// HasPendingOTP reports whether an OTP challenge is outstanding. OTP and its
// expiry are always written and cleared together.
func (u *User) HasPendingOTP() bool {
	return u.OTP != nil && u.OTPExpiresAt != nil
}

// OTPValidAt reports whether the stored code matches and has not expired at
// the given instant. Expiry is a strict comparison: a code presented exactly
// at its deadline is already stale.
func (u *User) OTPValidAt(code string, now time.Time) bool {
	if !u.HasPendingOTP() {
		return false
	}
	if !now.Before(*u.OTPExpiresAt) {
		return false
	}
	return *u.OTP == code
}
