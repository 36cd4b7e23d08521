package job_status

import (
	"context"
	"stem-split-worker/src/application/job_status/entity"
	"stem-split-worker/src/application/jobs/split/splitter"
	"stem-split-worker/src/lib/cerr"
)

// Tracker records job progress on a best effort basis, a status store outage
// is logged and never fails the job.
type Tracker struct {
	statusStore entity.StatusStore
}

func NewTracker(statusStore entity.StatusStore) Tracker {
	return Tracker{
		statusStore: statusStore,
	}
}

func (t Tracker) Started(ctx context.Context, jobID string) {
	t.set(ctx, entity.JobRecord{
		JobID:  jobID,
		Status: entity.InProgressStatus,
	})
}

func (t Tracker) Finished(ctx context.Context, jobID string, result splitter.Result) {
	if result.Succeeded() {
		t.set(ctx, entity.JobRecord{
			JobID:  jobID,
			Status: entity.CompletedStatus,
			Stems:  result.Stems,
		})
		return
	}

	t.set(ctx, entity.JobRecord{
		JobID:   jobID,
		Status:  entity.FailedStatus,
		Details: result.Details,
	})
}

func (t Tracker) Get(ctx context.Context, jobID string) (entity.JobRecord, error) {
	return t.statusStore.GetStatus(ctx, jobID)
}

func (t Tracker) set(ctx context.Context, record entity.JobRecord) {
	if err := t.statusStore.SetStatus(ctx, record); err != nil {
		err = cerr.Fields(cerr.F{
			"job_id": record.JobID,
			"status": record.Status,
		}).Wrap(err).Error("Failed to update job status")
		cerr.Log(err)
	}
}
