package domain

import "time"

// Invite is a single-use, time-limited credential granting one account and
// session creation. Only the SHA-256 fingerprint of the opaque token is
// stored; the plaintext is shown once at mint time.
type Invite struct {
	ID        string
	Email     string // optional binding, informational only
	TokenHash string
	IssuedBy  string // minting user id, empty for seeded invites
	ExpiresAt time.Time
	UsedAt    *time.Time
	UsedBy    string // empty until redeemed
	CreatedAt time.Time
}

// Redeemable reports whether the invite is still valid at the given time.
func (i Invite) Redeemable(now time.Time) bool {
	return i.UsedAt == nil && now.Before(i.ExpiresAt)
}
