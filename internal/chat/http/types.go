package http

import "time"

// Request/response DTOs for the JSON API surface.

type RedeemInviteRequest struct {
	InviteToken string `json:"invite_token"`
	Email       string `json:"email"`
	ClientInfo  string `json:"client_info,omitempty"`
}

type RedeemInviteResponse struct {
	SessionToken string    `json:"session_token"`
	User         UserInfo  `json:"user"`
	StartedAt    time.Time `json:"started_at"`
}

type MintInviteRequest struct {
	Email    string `json:"email,omitempty"`
	TTLHours int    `json:"ttl_hours,omitempty"`
}

type MintInviteResponse struct {
	InviteID    string    `json:"invite_id"`
	InviteToken string    `json:"invite_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type InviteInfo struct {
	ID        string     `json:"id"`
	Email     string     `json:"email,omitempty"`
	IssuedBy  string     `json:"issued_by,omitempty"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	UsedBy    string     `json:"used_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type ListInvitesResponse struct {
	Invites []InviteInfo `json:"invites"`
}

type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SessionResponse struct {
	User      UserInfo      `json:"user"`
	StartedAt time.Time     `json:"started_at"`
	Messages  []MessageInfo `json:"messages"`
}

type MessageInfo struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply     string    `json:"reply"`
	MessageID string    `json:"message_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type TranscriptResponse struct {
	Messages []MessageInfo `json:"messages"`
}

type TranscribeResponse struct {
	Text string `json:"text"`
}

type HealthChecks struct {
	Database  string `json:"database"`
	Assistant string `json:"assistant"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
