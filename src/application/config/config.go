package config

import (
	"fmt"
	"stem-split-worker/src/application/cloud_storage/store"
	"stem-split-worker/src/application/jobs/split/splitter"
	"stem-split-worker/src/lib/env"
	"stem-split-worker/src/lib/envvar"
	"time"

	"github.com/apex/log"
	"github.com/joho/godotenv"
)

const (
	R2StorageProvider  = "r2"
	GCSStorageProvider = "gcs"

	defaultWorkingDirPath  = "./wd"
	defaultSpleeterBinPath = "spleeter"
	defaultDynamoRegion    = "us-east-2"
)

type RabbitMQ struct {
	URL             string
	QueueName       string
	ResultQueueName string
	NumWorkers      int
}

type StatusTable struct {
	TableName string
	Region    string
	Endpoint  string
}

type Separation struct {
	WorkingDirPath  string
	SpleeterBinPath string
	// empty when demucs is not installed
	DemucsBinPath string
	Timeout       time.Duration

	DefaultEngine    splitter.Engine
	DefaultSplitType splitter.SplitType
	DefaultFormat    splitter.OutputFormat
}

type Config struct {
	Environment env.Environment
	LogLevel    string

	CloudStorage CloudStorage
	Separation   Separation

	// nil disables the queue worker
	RabbitMQ *RabbitMQ
	// empty disables the HTTP gateway
	HTTPPort string
	// nil disables status tracking
	StatusTable *StatusTable
}

// LoadDotEnv reads ./.env in development, values already in the environment win.
func LoadDotEnv(environment env.Environment) {
	if environment != env.Development {
		return
	}

	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("No .env file loaded")
	}
}

// FromEnv reads the whole configuration and panics on anything missing or
// malformed, so a bad deploy fails before it takes a job.
func FromEnv(environment env.Environment) Config {
	config := Config{
		Environment:  environment,
		LogLevel:     envvar.GetOrDefault(envvar.LOG_LEVEL, "info"),
		CloudStorage: cloudStorageFromEnv(),
		Separation:   separationFromEnv(),
		HTTPPort:     envvar.GetOrDefault(envvar.HTTP_PORT, ""),
	}

	if envvar.IsSet(envvar.RABBITMQ_URL) {
		config.RabbitMQ = &RabbitMQ{
			URL:             envvar.MustGet(envvar.RABBITMQ_URL),
			QueueName:       envvar.MustGet(envvar.RABBITMQ_QUEUE_NAME),
			ResultQueueName: envvar.MustGet(envvar.RABBITMQ_RESULT_QUEUE_NAME),
			NumWorkers:      envvar.GetIntOrDefault(envvar.NUM_WORKERS, 1),
		}

		if config.RabbitMQ.NumWorkers < 1 {
			panic(fmt.Sprintf("%s must be at least 1", envvar.NUM_WORKERS))
		}
	}

	if config.RabbitMQ == nil && config.HTTPPort == "" {
		panic(fmt.Sprintf("Neither %s nor %s is set, nothing would accept jobs", envvar.RABBITMQ_URL, envvar.HTTP_PORT))
	}

	if envvar.IsSet(envvar.DYNAMODB_STATUS_TABLE) {
		config.StatusTable = &StatusTable{
			TableName: envvar.MustGet(envvar.DYNAMODB_STATUS_TABLE),
			Region:    envvar.GetOrDefault(envvar.DYNAMODB_REGION, defaultDynamoRegion),
			Endpoint:  envvar.GetOrDefault(envvar.DYNAMODB_ENDPOINT, ""),
		}
	}

	return config
}

func cloudStorageFromEnv() CloudStorage {
	switch provider := envvar.GetOrDefault(envvar.STORAGE_PROVIDER, R2StorageProvider); provider {
	case R2StorageProvider:
		return S3CompatibleStorage{
			Endpoint:        envvar.MustGet(envvar.STORAGE_ENDPOINT),
			AccessKeyID:     envvar.MustGet(envvar.STORAGE_ACCESS_KEY_ID),
			SecretAccessKey: envvar.MustGet(envvar.STORAGE_SECRET_ACCESS_KEY),
			Region:          envvar.GetOrDefault(envvar.STORAGE_REGION, ""),
			BucketName:      envvar.MustGet(envvar.STORAGE_BUCKET),
		}

	case GCSStorageProvider:
		return GoogleCloudStorage{
			StorageHost: store.GOOGLE_STORAGE_HOST,
			SecretKey:   envvar.MustGet(envvar.GOOGLE_CLOUD_KEY),
			BucketName:  envvar.MustGet(envvar.STORAGE_BUCKET),
		}

	default:
		panic(fmt.Sprintf("Unrecognized storage provider %s", provider))
	}
}

func separationFromEnv() Separation {
	engine, err := splitter.ConvertToEngine(envvar.GetOrDefault(envvar.SEPARATION_ENGINE, string(splitter.SpleeterEngine)))
	if err != nil {
		panic(err)
	}

	splitType, err := splitter.ConvertToSplitType(envvar.GetOrDefault(envvar.SEPARATION_VARIANT, string(splitter.FourStemSplitType)))
	if err != nil {
		panic(err)
	}

	format, err := splitter.ConvertToOutputFormat(envvar.GetOrDefault(envvar.SEPARATION_OUTPUT_FORMAT, string(splitter.WavOutputFormat)))
	if err != nil {
		panic(err)
	}

	separation := Separation{
		WorkingDirPath:   envvar.GetOrDefault(envvar.WORKING_DIR_PATH, defaultWorkingDirPath),
		SpleeterBinPath:  envvar.GetOrDefault(envvar.SPLEETER_BIN_PATH, defaultSpleeterBinPath),
		DemucsBinPath:    envvar.GetOrDefault(envvar.DEMUCS_BIN_PATH, ""),
		Timeout:          envvar.GetDurationOrDefault(envvar.SEPARATION_TIMEOUT, 30*time.Minute),
		DefaultEngine:    engine,
		DefaultSplitType: splitType,
		DefaultFormat:    format,
	}

	if separation.DefaultEngine == splitter.DemucsEngine && separation.DemucsBinPath == "" {
		panic(fmt.Sprintf("%s is demucs but %s is not set", envvar.SEPARATION_ENGINE, envvar.DEMUCS_BIN_PATH))
	}

	if _, err := splitter.StemNames(separation.DefaultEngine, separation.DefaultSplitType); err != nil {
		panic(err)
	}

	return separation
}
