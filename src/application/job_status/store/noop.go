package store

import (
	"context"
	"stem-split-worker/src/application/job_status/entity"

	"github.com/apex/log"
)

var _ entity.StatusStore = NoopStatusStore{}

// NoopStatusStore stands in when no status table is configured.
type NoopStatusStore struct{}

func (NoopStatusStore) GetStatus(_ context.Context, jobID string) (entity.JobRecord, error) {
	return entity.JobRecord{}, JobNotFound
}

func (NoopStatusStore) SetStatus(_ context.Context, record entity.JobRecord) error {
	log.WithFields(log.Fields{
		"job_id": record.JobID,
		"status": record.Status,
	}).Debug("Status tracking disabled, dropping status")
	return nil
}
