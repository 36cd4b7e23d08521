package application

import (
	"stem-split-worker/src/application/cloud_storage/entity"
	filestore "stem-split-worker/src/application/cloud_storage/store"
	"stem-split-worker/src/application/config"
	"stem-split-worker/src/application/executor"
	"stem-split-worker/src/application/gateway"
	"stem-split-worker/src/application/job_status"
	statusstore "stem-split-worker/src/application/job_status/store"
	"stem-split-worker/src/application/jobs/job_router"
	"stem-split-worker/src/application/jobs/split"
	"stem-split-worker/src/application/jobs/split/splitter"
	"stem-split-worker/src/application/jobs/split/splitter/file_splitter"
	"stem-split-worker/src/application/publish"
	"stem-split-worker/src/application/worker"
	"stem-split-worker/src/lib/cerr"
	"stem-split-worker/src/lib/env"
	"stem-split-worker/src/lib/storagepath"
	"stem-split-worker/src/lib/working_dir"

	"github.com/apex/log"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

func ensureOk(err error) {
	if err != nil {
		panic(err)
	}
}

type App struct {
	workers     []*worker.QueueWorker
	publishers  []publish.RabbitMQPublisher
	connections []*amqp.Connection
	server      *gateway.Server
}

// NewApp wires everything up front and panics on the first failure.
func NewApp(cfg config.Config) App {
	splitHandler := newSplitJobHandler(cfg)
	tracker := newTracker(cfg)

	app := App{}

	if cfg.RabbitMQ != nil {
		app.startQueueWorkers(*cfg.RabbitMQ, tracker, splitHandler)
	}

	if cfg.HTTPPort != "" {
		server := gateway.NewServer(
			gateway.NewGateway(splitHandler, tracker),
			cfg.HTTPPort,
			cfg.Environment == env.Development,
		)
		app.server = &server
	}

	return app
}

func (a *App) startQueueWorkers(rabbitMQ config.RabbitMQ, tracker job_status.Tracker, splitHandler split.SplitJobHandler) {
	consumerConn, err := amqp.Dial(rabbitMQ.URL)
	ensureOk(err)
	producerConn, err := amqp.Dial(rabbitMQ.URL)
	ensureOk(err)

	a.connections = append(a.connections, consumerConn, producerConn)

	for i := 0; i < rabbitMQ.NumWorkers; i++ {
		publisher, err := publish.NewRabbitMQPublisher(producerConn, rabbitMQ.ResultQueueName)
		ensureOk(err)

		router := job_router.NewJobRouter(tracker, publisher, splitHandler)
		queueWorker, err := worker.NewQueueWorkerFromConnection(consumerConn, rabbitMQ.QueueName, router)
		ensureOk(err)

		a.publishers = append(a.publishers, publisher)
		a.workers = append(a.workers, &queueWorker)
	}
}

// Start blocks until every worker and the gateway have stopped. The first one
// to fail is returned.
func (a *App) Start() error {
	group := errgroup.Group{}

	for _, queueWorker := range a.workers {
		queueWorker := queueWorker
		group.Go(queueWorker.Start)
	}

	if a.server != nil {
		group.Go(a.server.Start)
	}

	return group.Wait()
}

func (a *App) Stop() {
	for _, queueWorker := range a.workers {
		if err := queueWorker.Stop(); err != nil {
			log.WithError(err).Warn("Failed to stop worker")
		}
	}

	for _, publisher := range a.publishers {
		if err := publisher.Close(); err != nil {
			log.WithError(err).Warn("Failed to close publisher")
		}
	}

	for _, conn := range a.connections {
		if err := conn.Close(); err != nil {
			log.WithError(err).Warn("Failed to close rabbitmq connection")
		}
	}

	if a.server != nil {
		if err := a.server.Stop(); err != nil {
			cerr.Log(cerr.Wrap(err).Error("Failed to stop http gateway"))
		}
	}
}

func newFileStore(cloudStorage config.CloudStorage) entity.FileStore {
	switch storageConfig := cloudStorage.(type) {
	case config.S3CompatibleStorage:
		fileStore, err := filestore.NewS3FileStore(
			storageConfig.Endpoint,
			storageConfig.AccessKeyID,
			storageConfig.SecretAccessKey,
			storageConfig.Region,
			storageConfig.BucketName,
		)
		ensureOk(err)
		return fileStore

	case config.GoogleCloudStorage:
		fileStore, err := filestore.NewGoogleFileStore(
			storageConfig.BucketName,
			option.WithCredentialsJSON([]byte(storageConfig.SecretKey)),
		)
		ensureOk(err)
		return fileStore

	default:
		panic(cerr.Error("Unrecognized cloud storage config"))
	}
}

func newFileSplitter(separation config.Separation, workingDir working_dir.WorkingDir) splitter.FileSplitter {
	binaryExecutor := executor.BinaryFileExecutor{}

	spleeter, err := file_splitter.NewSpleeterFileSplitter(workingDir.Root(), separation.SpleeterBinPath, binaryExecutor, separation.Timeout)
	ensureOk(err)

	splitters := map[splitter.Engine]splitter.FileSplitter{
		splitter.SpleeterEngine: spleeter,
	}

	if separation.DemucsBinPath != "" {
		demucs, err := file_splitter.NewDemucsFileSplitter(workingDir.Root(), separation.DemucsBinPath, binaryExecutor, separation.Timeout)
		ensureOk(err)
		splitters[splitter.DemucsEngine] = demucs
	}

	return file_splitter.NewSelectFileSplitter(splitters)
}

func newSplitJobHandler(cfg config.Config) split.JobHandler {
	workingDir, err := working_dir.NewWorkingDir(cfg.Separation.WorkingDirPath)
	ensureOk(err)

	pathGenerator := storagepath.Generator{
		Host:   cfg.CloudStorage.GetStorageHost(),
		Bucket: cfg.CloudStorage.GetBucket(),
	}

	trackSplitter := splitter.NewTrackSplitter(
		workingDir,
		newFileSplitter(cfg.Separation, workingDir),
		newFileStore(cfg.CloudStorage),
		pathGenerator,
	)

	return split.NewJobHandler(trackSplitter, split.JobDefaults{
		Engine:    cfg.Separation.DefaultEngine,
		SplitType: cfg.Separation.DefaultSplitType,
		Format:    cfg.Separation.DefaultFormat,
	})
}

func newTracker(cfg config.Config) job_status.Tracker {
	if cfg.StatusTable == nil {
		return job_status.NewTracker(statusstore.NoopStatusStore{})
	}

	return job_status.NewTracker(statusstore.NewDynamoDBStatusStore(statusstore.DynamoConfig{
		TableName: cfg.StatusTable.TableName,
		Region:    cfg.StatusTable.Region,
		Endpoint:  cfg.StatusTable.Endpoint,
	}))
}
