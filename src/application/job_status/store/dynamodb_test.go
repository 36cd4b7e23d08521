package store_test

import (
	"context"
	"os"
	"stem-split-worker/src/application/job_status/entity"
	"stem-split-worker/src/application/job_status/store"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/cockroachdb/errors"
	"github.com/guregu/dynamo"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// needs a local dynamo, e.g. amazon/dynamodb-local on port 8000
const dynamoTestEndpointVar = "DYNAMODB_TEST_ENDPOINT"

var _ = Describe("DynamoDBStatusStore", func() {
	var (
		db          *dynamo.DB
		tableName   string
		statusStore store.DynamoDBStatusStore
	)

	BeforeEach(func() {
		endpoint := os.Getenv(dynamoTestEndpointVar)
		if endpoint == "" {
			Skip(dynamoTestEndpointVar + " is not set")
		}

		config := aws.NewConfig().
			WithCredentials(credentials.NewStaticCredentials("local", "local", "")).
			WithEndpoint(endpoint).
			WithRegion("us-east-2")

		db = dynamo.New(session.Must(session.NewSession()), config)
		tableName = "JobStatusTest"

		_ = db.Table(tableName).DeleteTable().Run()
		err := db.CreateTable(tableName, entity.JobRecord{}).Run()
		Expect(err).NotTo(HaveOccurred())

		statusStore = store.NewDynamoDBStatusStoreFromDB(db, tableName)
	})

	AfterEach(func() {
		if db != nil {
			_ = db.Table(tableName).DeleteTable().Run()
		}
	})

	It("reads back the latest status of a job", func() {
		err := statusStore.SetStatus(context.Background(), entity.JobRecord{
			JobID:  "t1",
			Status: entity.InProgressStatus,
		})
		Expect(err).NotTo(HaveOccurred())

		err = statusStore.SetStatus(context.Background(), entity.JobRecord{
			JobID:  "t1",
			Status: entity.CompletedStatus,
			Stems:  map[string]string{"vocals": "https://host/bucket/stems/song/vocals.wav"},
		})
		Expect(err).NotTo(HaveOccurred())

		record, err := statusStore.GetStatus(context.Background(), "t1")
		Expect(err).NotTo(HaveOccurred())
		Expect(record.Status).To(Equal(entity.CompletedStatus))
		Expect(record.Stems).To(HaveKeyWithValue("vocals", "https://host/bucket/stems/song/vocals.wav"))
		Expect(record.UpdatedAt.IsZero()).To(BeFalse())
	})

	It("reports an unknown job as not found", func() {
		_, err := statusStore.GetStatus(context.Background(), "nope")
		Expect(errors.Is(err, store.JobNotFound)).To(BeTrue())
	})
})
