package split

import (
	"context"
	"encoding/json"
	"stem-split-worker/src/application/jobs/job_message"
	"stem-split-worker/src/application/jobs/split/splitter"
	"stem-split-worker/src/lib/cerr"

	"github.com/apex/log"
	"github.com/streadway/amqp"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

const (
	JobType       string = "separate_stems"
	ResultJobType string = "separate_stems_result"
)

var _ SplitJobHandler = JobHandler{}

//counterfeiter:generate . SplitJobHandler
type SplitJobHandler interface {
	HandleSplitJob(ctx context.Context, message []byte, runtimeJobID string) (string, splitter.Result)
}

//counterfeiter:generate . TrackSplitter
type TrackSplitter interface {
	SplitTrack(ctx context.Context, job splitter.Job) splitter.Result
}

// JobDefaults fill in whatever the envelope leaves out.
type JobDefaults struct {
	Engine    splitter.Engine
	SplitType splitter.SplitType
	Format    splitter.OutputFormat
}

func NewJobHandler(trackSplitter TrackSplitter, defaults JobDefaults) JobHandler {
	return JobHandler{
		trackSplitter: trackSplitter,
		defaults:      defaults,
	}
}

type JobHandler struct {
	trackSplitter TrackSplitter
	defaults      JobDefaults
}

// HandleSplitJob always produces a result for the job id it settled on, a
// message that can't be parsed is a failed job rather than a dropped one.
func (h JobHandler) HandleSplitJob(ctx context.Context, message []byte, runtimeJobID string) (string, splitter.Result) {
	envelope := job_message.Envelope{}
	if err := json.Unmarshal(message, &envelope); err != nil {
		jobID := job_message.FirstNonEmpty(runtimeJobID)
		err = cerr.Field("job_id", jobID).
			Mark(splitter.DecodeError).
			Wrap(err).Error("Failed to unmarshal job envelope")
		cerr.Log(err)
		return jobID, splitter.FailureResult(err)
	}

	job, err := h.ToJob(envelope, runtimeJobID)
	if err != nil {
		err = cerr.Field("job_id", job.ID).Wrap(err).Error("Invalid job parameters")
		cerr.Log(err)
		return job.ID, splitter.FailureResult(err)
	}

	log.WithFields(log.Fields{
		"job_id":   job.ID,
		"filename": job.Filename,
	}).Info("Handling split job")

	return job.ID, h.trackSplitter.SplitTrack(ctx, job)
}

// ToJob resolves an envelope against the defaults. The returned job always
// carries its id, even alongside an error.
func (h JobHandler) ToJob(envelope job_message.Envelope, runtimeJobID string) (splitter.Job, error) {
	input := envelope.Input
	job := splitter.Job{
		ID:       envelope.JobID(runtimeJobID),
		Filename: input.Filename,
		AudioB64: input.AudioB64,
		AudioKey: input.AudioKey,
		Params: splitter.SplitParams{
			Engine:    h.defaults.Engine,
			SplitType: h.defaults.SplitType,
			Format:    h.defaults.Format,
		},
	}

	if job.Filename == "" {
		job.Filename = splitter.DefaultFilename
	}

	var err error
	if input.Engine != "" {
		if job.Params.Engine, err = splitter.ConvertToEngine(input.Engine); err != nil {
			return job, cerr.Mark(splitter.DecodeError).Wrap(err).Error("Unknown engine")
		}
	}

	if input.Variant != "" {
		if job.Params.SplitType, err = splitter.ConvertToSplitType(input.Variant); err != nil {
			return job, cerr.Mark(splitter.DecodeError).Wrap(err).Error("Unknown variant")
		}
	}

	if input.OutputFormat != "" {
		if job.Params.Format, err = splitter.ConvertToOutputFormat(input.OutputFormat); err != nil {
			return job, cerr.Mark(splitter.DecodeError).Wrap(err).Error("Unknown output format")
		}
	}

	return job, nil
}

func CreateJobMessage(envelope job_message.Envelope) (amqp.Publishing, error) {
	jsonBytes, err := json.Marshal(envelope)
	if err != nil {
		return amqp.Publishing{}, cerr.Wrap(err).Error("Failed to marshal split job envelope")
	}

	return amqp.Publishing{
		Type:      JobType,
		MessageId: envelope.JobID(""),
		Body:      jsonBytes,
	}, nil
}

type ResultStatus string

const (
	CompletedResultStatus ResultStatus = "COMPLETED"
	FailedResultStatus    ResultStatus = "FAILED"
)

func StatusOf(result splitter.Result) ResultStatus {
	if result.Succeeded() {
		return CompletedResultStatus
	}

	return FailedResultStatus
}

type ResultParams struct {
	ID     string          `json:"id"`
	Status ResultStatus    `json:"status"`
	Output splitter.Result `json:"output"`
}

func NewResultParams(jobID string, result splitter.Result) ResultParams {
	return ResultParams{
		ID:     jobID,
		Status: StatusOf(result),
		Output: result,
	}
}

func CreateResultMessage(jobID string, result splitter.Result) (amqp.Publishing, error) {
	jsonBytes, err := json.Marshal(NewResultParams(jobID, result))
	if err != nil {
		return amqp.Publishing{}, cerr.Field("job_id", jobID).
			Wrap(err).Error("Failed to marshal split result")
	}

	return amqp.Publishing{
		Type:      ResultJobType,
		MessageId: jobID,
		Body:      jsonBytes,
	}, nil
}
