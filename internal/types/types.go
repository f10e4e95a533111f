package types

import (
	"time"

	"github.com/codebuildervaibhav/dialogue-segmenter/internal/dialogue"
)

// Job status constants
const (
	StatusQueued     = "QUEUED"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// Source type constants
const (
	SourceUpload = "upload"
	SourcePaste  = "paste"
	SourceWeb    = "web"
	SourceStream = "stream"
)

// SegmentationResult represents the output of segmenting one transcript
type SegmentationResult struct {
	JobID       string
	Turns       []dialogue.Turn
	TurnCount   int
	WordCount   int
	ProcessedAt time.Time
	LocalPath   string
	GDriveURL   string
}
