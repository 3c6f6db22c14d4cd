package entity

import "time"

type Account struct {
	ID            int64
	Phone         string
	Email         string
	Password      string // hashed
	PhoneVerified bool
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Challenge is a pending verification code for one channel of one account.
// Attempts starts at 1 when the challenge is created and grows on every
// resend and every failed verification.
type Challenge struct {
	Channel   Channel
	Address   string
	Code      string
	Attempts  int64
	CreatedAt time.Time
}

type NewAccount struct {
	ID    int64
	Phone string
}
