package domain

import "time"

// Session binds a user to an ongoing chat transcript. Its id doubles as the
// opaque bearer token handed to the client; it carries no signature, so it is
// only as strong as the id's unguessability.
type Session struct {
	ID           string
	UserID       string
	StartedAt    time.Time
	LastActiveAt time.Time
	ClientInfo   string
}

// IdleSince returns the timestamp inactivity is measured from.
func (s Session) IdleSince() time.Time {
	if s.LastActiveAt.IsZero() {
		return s.StartedAt
	}
	return s.LastActiveAt
}

// Expired reports whether the session has been idle longer than window.
func (s Session) Expired(now time.Time, window time.Duration) bool {
	return s.IdleSince().Add(window).Before(now)
}
