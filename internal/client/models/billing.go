package models

import "time"

// Subscription states as reported by the server.
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
	SubscriptionPending   = "pending"
)

type Subscription struct {
	ID        int64      `json:"id"`
	Status    string     `json:"status"`
	Plan      *Plan      `json:"plan,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// UsageStats reports consumption against the current plan's limits.
type UsageStats struct {
	TranscriptionsUsed int     `json:"transcriptions_used"`
	PromptsUsed        int     `json:"prompts_used"`
	TotalFileSizeMB    float64 `json:"total_file_size_mb"`
}
