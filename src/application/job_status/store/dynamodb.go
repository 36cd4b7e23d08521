package store

import (
	"context"
	"stem-split-worker/src/application/job_status/entity"
	"stem-split-worker/src/lib/cerr"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/cockroachdb/errors"
	"github.com/guregu/dynamo"
)

var _ entity.StatusStore = DynamoDBStatusStore{}

const jobIDKey = "job_id"

var JobNotFound = errors.New("job status is not found")

type DynamoConfig struct {
	TableName string
	Region    string
	// Endpoint is only set for a local dynamo
	Endpoint string
}

func NewDynamoDBStatusStore(config DynamoConfig) DynamoDBStatusStore {
	dbSession := session.Must(session.NewSession())

	dbConfig := aws.NewConfig().
		WithRegion(config.Region).
		WithCredentials(credentials.NewEnvCredentials())

	if config.Endpoint != "" {
		dbConfig = dbConfig.WithEndpoint(config.Endpoint)
	}

	return NewDynamoDBStatusStoreFromDB(dynamo.New(dbSession, dbConfig), config.TableName)
}

func NewDynamoDBStatusStoreFromDB(db *dynamo.DB, tableName string) DynamoDBStatusStore {
	return DynamoDBStatusStore{
		table: db.Table(tableName),
	}
}

type DynamoDBStatusStore struct {
	table dynamo.Table
}

func (d DynamoDBStatusStore) GetStatus(ctx context.Context, jobID string) (entity.JobRecord, error) {
	record := entity.JobRecord{}
	err := d.table.Get(jobIDKey, jobID).
		Consistent(true).
		OneWithContext(ctx, &record)

	if err != nil {
		errctx := cerr.Field("job_id", jobID).Wrap(err)
		if errors.Is(err, dynamo.ErrNotFound) {
			return entity.JobRecord{}, errctx.Mark(JobNotFound).Error("No status recorded for the job")
		}

		return entity.JobRecord{}, errctx.Error("Failed to get job status from DynamoDB")
	}

	return record, nil
}

func (d DynamoDBStatusStore) SetStatus(ctx context.Context, record entity.JobRecord) error {
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}

	err := d.table.Put(record).RunWithContext(ctx)
	if err != nil {
		return cerr.Fields(cerr.F{
			"job_id": record.JobID,
			"status": record.Status,
		}).Wrap(err).Error("Failed to put job status in DynamoDB")
	}

	return nil
}
