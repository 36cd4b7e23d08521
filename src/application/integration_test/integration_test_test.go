package integration_test_test

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"stem-split-worker/src/application/integration_test/dummy"
	"stem-split-worker/src/application/job_status"
	"stem-split-worker/src/application/job_status/entity"
	"stem-split-worker/src/application/jobs/job_message"
	"stem-split-worker/src/application/jobs/job_router"
	"stem-split-worker/src/application/jobs/split"
	"stem-split-worker/src/application/jobs/split/splitter"
	"stem-split-worker/src/application/jobs/split/splitter/file_splitter"
	"stem-split-worker/src/application/worker"
	"stem-split-worker/src/lib/storagepath"
	"stem-split-worker/src/lib/working_dir"
	"time"

	"github.com/streadway/amqp"

	. "github.com/onsi/gomega"

	. "github.com/onsi/ginkgo"
)

var _ = Describe("IntegrationTest", func() {
	var (
		jobID             string
		originalTrackData []byte
		envelope          job_message.Envelope

		jobQueue         *dummy.RabbitMQ
		resultQueue      *dummy.RabbitMQ
		fileStore        *dummy.FileStore
		statusStore      *dummy.StatusStore
		spleeterExecutor *dummy.SpleeterExecutor

		queueWorker worker.QueueWorker
		run         func()
		nextResult  func() split.ResultParams
	)

	BeforeEach(func() {
		By("Assigning data to variables", func() {
			jobID = "t1"
			originalTrackData = []byte("cool-jamz")
			envelope = job_message.Envelope{
				Input: job_message.Input{
					ID:       jobID,
					Filename: "song.wav",
					AudioB64: base64.StdEncoding.EncodeToString(originalTrackData),
				},
			}
		})

		By("Instantiating all dummies", func() {
			jobQueue = dummy.NewRabbitMQ()
			resultQueue = dummy.NewRabbitMQ()
			fileStore = dummy.NewDummyFileStore()
			statusStore = dummy.NewDummyStatusStore()
			spleeterExecutor = dummy.NewDummySpleeterExecutor()
		})

		var splitHandler split.JobHandler

		By("Creating the split job handler", func() {
			workingDir, err := working_dir.NewWorkingDir(workingDirPath)
			Expect(err).NotTo(HaveOccurred())

			spleeterSplitter, err := file_splitter.NewSpleeterFileSplitter(workingDirPath, "/whatever/spleeter", spleeterExecutor, time.Minute)
			Expect(err).NotTo(HaveOccurred())

			trackSplitter := splitter.NewTrackSplitter(
				workingDir,
				file_splitter.NewSelectFileSplitter(map[splitter.Engine]splitter.FileSplitter{
					splitter.SpleeterEngine: spleeterSplitter,
				}),
				fileStore,
				storagepath.Generator{Host: "acct.r2.cloudflarestorage.com", Bucket: "stems-bucket"},
			)

			splitHandler = split.NewJobHandler(trackSplitter, split.JobDefaults{
				Engine:    splitter.SpleeterEngine,
				SplitType: splitter.FourStemSplitType,
				Format:    splitter.WavOutputFormat,
			})
		})

		By("Instantiating the worker", func() {
			router := job_router.NewJobRouter(job_status.NewTracker(statusStore), resultQueue, splitHandler)
			queueWorker = worker.NewQueueWorker(jobQueue, "test-queue", router)
		})

		By("Setting up the run routine", func() {
			run = func() {
				go func() {
					defer GinkgoRecover()
					err := queueWorker.Start()
					Expect(err).NotTo(HaveOccurred())
				}()

				message, err := split.CreateJobMessage(envelope)
				Expect(err).NotTo(HaveOccurred())
				err = jobQueue.Publish(message)
				Expect(err).NotTo(HaveOccurred())
			}

			nextResult = func() split.ResultParams {
				var delivery amqp.Delivery
				Eventually(resultQueue.MessageChannel).Should(Receive(&delivery))
				Expect(delivery.Type).To(Equal(split.ResultJobType))
				Expect(delivery.MessageId).To(Equal(jobID))

				params := split.ResultParams{}
				Expect(json.Unmarshal(delivery.Body, &params)).To(Succeed())
				return params
			}
		})
	})

	AfterEach(func() {
		Expect(queueWorker.Stop()).To(Succeed())
	})

	It("gets 1 ack and no nacks", func() {
		run()

		Eventually(jobQueue.AckCount).Should(Equal(1))
		Consistently(jobQueue.NackCount).Should(Equal(0))
	})

	It("publishes the stem urls", func() {
		run()

		params := nextResult()
		Expect(params.ID).To(Equal(jobID))
		Expect(params.Status).To(Equal(split.CompletedResultStatus))
		Expect(params.Output.Stems).To(Equal(splitter.StemURLs{
			"vocals": "https://acct.r2.cloudflarestorage.com/stems-bucket/stems/song/vocals.wav",
			"drums":  "https://acct.r2.cloudflarestorage.com/stems-bucket/stems/song/drums.wav",
			"bass":   "https://acct.r2.cloudflarestorage.com/stems-bucket/stems/song/bass.wav",
			"other":  "https://acct.r2.cloudflarestorage.com/stems-bucket/stems/song/other.wav",
		}))
	})

	It("uploads the stems", func() {
		run()
		nextResult()

		for _, stemName := range []string{"vocals", "drums", "bass", "other"} {
			Expect(fileStore.State).To(HaveKeyWithValue(
				"stems/song/"+stemName+".wav",
				[]byte(string(originalTrackData)+"-"+stemName),
			))
		}
	})

	It("tracks the job to completion", func() {
		run()
		nextResult()

		Eventually(func() []entity.Status {
			return statusStore.StatusHistory(jobID)
		}).Should(Equal([]entity.Status{entity.InProgressStatus, entity.CompletedStatus}))
	})

	It("leaves no workspace behind", func() {
		run()
		nextResult()

		Eventually(func() ([]os.DirEntry, error) {
			return os.ReadDir(filepath.Join(workingDirPath, "tmp"))
		}).Should(BeEmpty())
	})

	Describe("When spleeter fails", func() {
		BeforeEach(func() {
			spleeterExecutor.Unavailable = true
		})

		It("publishes a failure and still acks the job", func() {
			run()

			params := nextResult()
			Expect(params.Status).To(Equal(split.FailedResultStatus))
			Expect(params.Output.Error).To(Equal(splitter.FailureMessage))
			Expect(params.Output.Details).To(ContainSubstring("spleeter: model could not be loaded"))

			Eventually(jobQueue.AckCount).Should(Equal(1))
			Expect(fileStore.Keys()).To(BeEmpty())
		})

		It("tracks the job as failed", func() {
			run()
			nextResult()

			Eventually(func() []entity.Status {
				return statusStore.StatusHistory(jobID)
			}).Should(Equal([]entity.Status{entity.InProgressStatus, entity.FailedStatus}))
		})
	})

	Describe("When the result can't be published", func() {
		BeforeEach(func() {
			resultQueue.Unavailable = true
		})

		It("nacks the job", func() {
			run()

			Eventually(jobQueue.NackCount).Should(Equal(1))
			Expect(jobQueue.AckCount()).To(Equal(0))
		})

		It("still tracks the job to completion", func() {
			run()

			Eventually(func() []entity.Status {
				return statusStore.StatusHistory(jobID)
			}).Should(Equal([]entity.Status{entity.InProgressStatus, entity.CompletedStatus}))
		})
	})
})
