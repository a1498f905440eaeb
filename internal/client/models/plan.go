package models

type Plan struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price"`
	IsFree      bool       `json:"is_free"`
	Limits      PlanLimits `json:"limits"`
}

type PlanLimits struct {
	MonthlyTranscriptions int `json:"monthly_transcriptions"`
	TotalPrompts          int `json:"total_prompts"`
	MaxFileSizeMB         int `json:"max_file_size_mb"`
}
