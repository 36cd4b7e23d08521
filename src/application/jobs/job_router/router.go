package job_router

import (
	"context"
	"stem-split-worker/src/application/job_status"
	"stem-split-worker/src/application/jobs/job_message"
	"stem-split-worker/src/application/jobs/split"
	"stem-split-worker/src/application/publish"
	"stem-split-worker/src/lib/cerr"

	"github.com/streadway/amqp"
)

func NewJobRouter(
	tracker job_status.Tracker,
	publisher publish.Publisher,
	splitHandler split.SplitJobHandler,
) JobRouter {
	return JobRouter{
		tracker:      tracker,
		publisher:    publisher,
		splitHandler: splitHandler,
	}
}

type JobRouter struct {
	publisher publish.Publisher
	tracker   job_status.Tracker

	splitHandler split.SplitJobHandler
}

// HandleMessage returns an error only when the message could not be turned
// into a published result. A failed split is still a handled message.
func (j JobRouter) HandleMessage(message amqp.Delivery) error {
	switch message.Type {
	case split.JobType:
		return j.handleSplitJob(message)

	default:
		return cerr.Field("job_type", message.Type).Error("Unrecognized amqp job type")
	}
}

func (j JobRouter) handleSplitJob(message amqp.Delivery) error {
	ctx := context.Background()

	j.tracker.Started(ctx, job_message.PeekJobID(message.Body, message.MessageId))

	jobID, result := j.splitHandler.HandleSplitJob(ctx, message.Body, message.MessageId)

	// the outcome is known even if nobody hears about it over the queue
	j.tracker.Finished(ctx, jobID, result)

	resultMsg, err := split.CreateResultMessage(jobID, result)
	if err != nil {
		return cerr.Field("job_id", jobID).Wrap(err).Error("Failed to create result message")
	}

	if err := j.publisher.Publish(resultMsg); err != nil {
		return cerr.Field("job_id", jobID).Wrap(err).Error("Failed to publish result message")
	}

	return nil
}
