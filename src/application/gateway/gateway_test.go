package gateway_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"stem-split-worker/src/application/gateway"
	"stem-split-worker/src/application/integration_test/dummy"
	"stem-split-worker/src/application/job_status"
	"stem-split-worker/src/application/job_status/entity"
	"stem-split-worker/src/application/jobs/split/splitfakes"
	"stem-split-worker/src/application/jobs/split/splitter"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Gateway", func() {
	var (
		splitHandler *splitfakes.FakeSplitJobHandler
		statusStore  *dummy.StatusStore
		server       gateway.Server

		request  *http.Request
		response *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		splitHandler = &splitfakes.FakeSplitJobHandler{}
		statusStore = dummy.NewDummyStatusStore()
		server = gateway.NewServer(gateway.NewGateway(splitHandler, job_status.NewTracker(statusStore)), "0", false)
		response = httptest.NewRecorder()
	})

	JustBeforeEach(func() {
		server.Handler().ServeHTTP(response, request)
	})

	Describe("Health check", func() {
		BeforeEach(func() {
			request = httptest.NewRequest(http.MethodGet, "/health-check", nil)
		})

		It("returns 200", func() {
			Expect(response.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("Running a job", func() {
		var body []byte

		BeforeEach(func() {
			body = []byte(`{"input":{"id":"t1","filename":"song.wav","audio_b64":"UklGRg=="}}`)
			splitHandler.HandleSplitJobReturns("t1", splitter.SuccessResult(splitter.StemURLs{
				"vocals": "https://host/bucket/stems/song/vocals.wav",
			}))
		})

		BeforeEach(func() {
			request = httptest.NewRequest(http.MethodPost, "/run", bytes.NewReader(body))
			request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		})

		It("returns the result wrapped with the id and status", func() {
			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(response.Body.String()).To(MatchJSON(`{
				"id": "t1",
				"status": "COMPLETED",
				"output": {"stems": {"vocals": "https://host/bucket/stems/song/vocals.wav"}}
			}`))
		})

		It("hands the raw body to the handler", func() {
			_, handledBody, runtimeJobID := splitHandler.HandleSplitJobArgsForCall(0)
			Expect(handledBody).To(Equal(body))
			Expect(runtimeJobID).To(BeEmpty())
		})

		It("records the job status", func() {
			Expect(statusStore.StatusHistory("t1")).To(Equal([]entity.Status{
				entity.InProgressStatus,
				entity.CompletedStatus,
			}))
		})

		Describe("When the job fails", func() {
			BeforeEach(func() {
				splitHandler.HandleSplitJobReturns("t1", splitter.FailureResult(errors.New("exit status 1")))
			})

			It("returns the failure in the body", func() {
				Expect(response.Code).To(Equal(http.StatusOK))
				Expect(response.Body.String()).To(MatchJSON(`{
					"id": "t1",
					"status": "FAILED",
					"output": {"error": "Stem separation failed.", "details": "exit status 1"}
				}`))
			})
		})
	})

	Describe("Job status", func() {
		BeforeEach(func() {
			Expect(statusStore.SetStatus(context.Background(), entity.JobRecord{
				JobID:  "t1",
				Status: entity.FailedStatus,
			})).To(Succeed())
		})

		Describe("A known job", func() {
			BeforeEach(func() {
				request = httptest.NewRequest(http.MethodGet, "/status/t1", nil)
			})

			It("returns the record", func() {
				Expect(response.Code).To(Equal(http.StatusOK))
				Expect(response.Body.String()).To(ContainSubstring(`"FAILED"`))
			})
		})

		Describe("An unknown job", func() {
			BeforeEach(func() {
				request = httptest.NewRequest(http.MethodGet, "/status/nope", nil)
			})

			It("returns 404", func() {
				Expect(response.Code).To(Equal(http.StatusNotFound))
			})
		})
	})
})
