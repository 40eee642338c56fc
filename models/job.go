package models

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusCancelled  JobStatus = "cancelled"
	StatusFailed     JobStatus = "failed"
)

// ProcessingJob tracks one video-to-text extraction run.
type ProcessingJob struct {
	ID          string
	InputPath   string
	OutputPath  string
	FileName    string
	Status      JobStatus
	Progress    float64 // 0-100
	Error       error
	CreatedAt   time.Time
	CompletedAt *time.Time
}

func NewProcessingJob(inputPath, outputPath string) *ProcessingJob {
	return &ProcessingJob{
		ID:         uuid.New().String(),
		InputPath:  inputPath,
		OutputPath: outputPath,
		FileName:   filepath.Base(inputPath),
		Status:     StatusPending,
		CreatedAt:  time.Now(),
	}
}

func (j *ProcessingJob) SetProgress(progress float64) {
	j.Progress = progress
}

func (j *ProcessingJob) Complete() {
	j.Status = StatusCompleted
	j.Progress = 100
	now := time.Now()
	j.CompletedAt = &now
}

func (j *ProcessingJob) Cancel() {
	j.Status = StatusCancelled
	now := time.Now()
	j.CompletedAt = &now
}

func (j *ProcessingJob) Fail(err error) {
	j.Status = StatusFailed
	j.Error = err
}

func (j *ProcessingJob) StatusText() string {
	switch j.Status {
	case StatusPending:
		return "Ready to process"
	case StatusProcessing:
		return "Extracting text..."
	case StatusCompleted:
		return "Completed!"
	case StatusCancelled:
		return "Cancelled"
	case StatusFailed:
		if j.Error != nil {
			return "Failed: " + j.Error.Error()
		}
		return "Failed"
	default:
		return string(j.Status)
	}
}
