package models

import "time"

// Transcription lifecycle states as reported by the server.
const (
	TranscriptionPending    = "pending"
	TranscriptionProcessing = "processing"
	TranscriptionCompleted  = "completed"
	TranscriptionFailed     = "failed"
)

type Transcription struct {
	ID                  int64     `json:"id"`
	OriginalFilename    string    `json:"original_filename"`
	TranscriptionResult string    `json:"transcription_result"`
	Status              string    `json:"status"`
	Prompt              string    `json:"prompt,omitempty"`
	FileSizeMB          float64   `json:"file_size_mb"`
	ProcessingTime      float64   `json:"processing_time"`
	CreatedAt           time.Time `json:"created_at"`
}
