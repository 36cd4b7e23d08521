package gateway

import (
	"context"
	"io"
	"net/http"
	"stem-split-worker/src/application/job_status"
	"stem-split-worker/src/application/job_status/store"
	"stem-split-worker/src/application/jobs/job_message"
	"stem-split-worker/src/application/jobs/split"
	"stem-split-worker/src/lib/cerr"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
)

type Gateway struct {
	splitHandler split.SplitJobHandler
	tracker      job_status.Tracker
}

func NewGateway(splitHandler split.SplitJobHandler, tracker job_status.Tracker) Gateway {
	return Gateway{
		splitHandler: splitHandler,
		tracker:      tracker,
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

// RunJob runs the job synchronously. Failed jobs are still a 200, the failure
// is in the body.
func (g Gateway) RunJob(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		cerr.Log(cerr.Wrap(err).Error("Failed to read request body"))
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "Could not read the request body"})
	}

	// the job outlives a client that hangs up
	ctx := context.Background()

	jobID := job_message.PeekJobID(body, "")
	g.tracker.Started(ctx, jobID)

	jobID, result := g.splitHandler.HandleSplitJob(ctx, body, "")
	g.tracker.Finished(ctx, jobID, result)

	return c.JSON(http.StatusOK, split.NewResultParams(jobID, result))
}

func (g Gateway) GetJobStatus(c echo.Context, jobID string) error {
	record, err := g.tracker.Get(c.Request().Context(), jobID)
	if err != nil {
		if errors.Is(err, store.JobNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Message: "No status recorded for this job"})
		}

		cerr.Log(cerr.Field("job_id", jobID).Wrap(err).Error("Failed to get job status"))
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Failed to get job status"})
	}

	return c.JSON(http.StatusOK, record)
}
