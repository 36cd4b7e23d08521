package entity

import (
	"context"
	"time"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

type Status string

const (
	InProgressStatus Status = "IN_PROGRESS"
	CompletedStatus  Status = "COMPLETED"
	FailedStatus     Status = "FAILED"
)

type JobRecord struct {
	JobID     string            `dynamo:"job_id,hash"`
	Status    Status            `dynamo:"status"`
	Stems     map[string]string `dynamo:"stems,omitempty"`
	Details   string            `dynamo:"details,omitempty"`
	UpdatedAt time.Time         `dynamo:"updated_at"`
}

//counterfeiter:generate . StatusStore
type StatusStore interface {
	GetStatus(ctx context.Context, jobID string) (JobRecord, error)
	SetStatus(ctx context.Context, record JobRecord) error
}
