package models

import "time"

// AdminUser is the admin console's view of an account.
type AdminUser struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	Plan               *Plan     `json:"plan,omitempty"`
	TranscriptionCount int       `json:"transcription_count"`
	CreatedAt          time.Time `json:"created_at"`
}

type DashboardOverview struct {
	TotalUsers          int             `json:"total_users"`
	TotalTranscriptions int             `json:"total_transcriptions"`
	ActiveSubscriptions int             `json:"active_subscriptions"`
	RecentActivity      []ActivityEvent `json:"recent_activity"`
}

type DashboardStats struct {
	PeriodDays          int          `json:"period_days"`
	NewUsers            int          `json:"new_users"`
	TotalTranscriptions int          `json:"total_transcriptions"`
	CompletedToday      int          `json:"completed_today"`
	FailedToday         int          `json:"failed_today"`
	ProcessingCount     int          `json:"processing_count"`
	Series              []TrendPoint `json:"series,omitempty"`
}

type ActivityEvent struct {
	UserID     int64     `json:"user_id"`
	UserName   string    `json:"user_name"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ActivityAnalytics is the top-level payload of the activity view.
type ActivityAnalytics struct {
	Online        OnlineUsers `json:"online"`
	ActiveToday   int         `json:"active_today"`
	ActiveWeek    int         `json:"active_week"`
	AvgSessionMin float64     `json:"avg_session_min"`
}

type OnlineUsers struct {
	Count int          `json:"count"`
	Users []OnlineUser `json:"users"`
}

type OnlineUser struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Setting is a single mutable system configuration entry.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

// SystemInfo is the read-only runtime snapshot shown alongside settings.
type SystemInfo struct {
	AppVersion         string       `json:"app_version"`
	DatabaseConnection string       `json:"database_connection"`
	CacheDriver        string       `json:"cache_driver"`
	QueueDriver        string       `json:"queue_driver"`
	UploadLimits       UploadLimits `json:"upload_limits"`
	DiskUsage          DiskUsage    `json:"disk_usage"`
}

type UploadLimits struct {
	MaxFileSize      string `json:"max_file_size"`
	PostMaxSize      string `json:"post_max_size"`
	MaxExecutionTime int    `json:"max_execution_time"`
	MemoryLimit      string `json:"memory_limit"`
}

type DiskUsage struct {
	StorageSizeMB  float64 `json:"storage_size_mb"`
	PublicSizeMB   float64 `json:"public_size_mb"`
	TotalAppSizeMB float64 `json:"total_app_size_mb"`
	FreeSpaceGB    float64 `json:"free_space_gb"`
	TotalSpaceGB   float64 `json:"total_space_gb"`
	UsedPercentage float64 `json:"used_percentage"`
}

// MaintenanceResult reports the outcome of a cache or log clearing run.
type MaintenanceResult struct {
	Cleared    bool    `json:"cleared"`
	FreedMB    float64 `json:"freed_mb"`
	BackupPath string  `json:"backup_path,omitempty"`
}
