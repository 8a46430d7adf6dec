package domain

import "time"

// Role values assignable to users. The first user ever created is promoted
// to admin so the system always has at least one.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	ID          string
	Email       string // unique, stored case-sensitively
	Role        string
	CreatedAt   time.Time
	LastLoginAt time.Time
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
