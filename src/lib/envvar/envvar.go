package envvar

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	ENVIRONMENT = "ENVIRONMENT"
	LOG_LEVEL   = "LOG_LEVEL"

	STORAGE_PROVIDER          = "STORAGE_PROVIDER"
	STORAGE_ENDPOINT          = "STORAGE_ENDPOINT"
	STORAGE_ACCESS_KEY_ID     = "STORAGE_ACCESS_KEY_ID"
	STORAGE_SECRET_ACCESS_KEY = "STORAGE_SECRET_ACCESS_KEY"
	STORAGE_BUCKET            = "STORAGE_BUCKET"
	STORAGE_REGION            = "STORAGE_REGION"
	GOOGLE_CLOUD_KEY          = "GOOGLE_CLOUD_KEY"

	RABBITMQ_URL               = "RABBITMQ_URL"
	RABBITMQ_QUEUE_NAME        = "RABBITMQ_QUEUE_NAME"
	RABBITMQ_RESULT_QUEUE_NAME = "RABBITMQ_RESULT_QUEUE_NAME"
	NUM_WORKERS                = "NUM_WORKERS"
	HTTP_PORT                  = "HTTP_PORT"

	DYNAMODB_STATUS_TABLE = "DYNAMODB_STATUS_TABLE"
	DYNAMODB_REGION       = "DYNAMODB_REGION"
	DYNAMODB_ENDPOINT     = "DYNAMODB_ENDPOINT"

	WORKING_DIR_PATH         = "WORKING_DIR_PATH"
	SPLEETER_BIN_PATH        = "SPLEETER_BIN_PATH"
	DEMUCS_BIN_PATH          = "DEMUCS_BIN_PATH"
	SEPARATION_ENGINE        = "SEPARATION_ENGINE"
	SEPARATION_VARIANT       = "SEPARATION_VARIANT"
	SEPARATION_OUTPUT_FORMAT = "SEPARATION_OUTPUT_FORMAT"
	SEPARATION_TIMEOUT       = "SEPARATION_TIMEOUT"
)

func MustGet(key string) string {
	val, isSet := os.LookupEnv(key)
	if !isSet {
		panic(fmt.Sprintf("No env variable found for key %s", key))
	}

	if val == "" {
		panic(fmt.Sprintf("Env variable is empty for key %s", key))
	}

	return val
}

func GetOrDefault(key string, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	return val
}

func IsSet(key string) bool {
	return os.Getenv(key) != ""
}

func GetIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	intVal, err := strconv.Atoi(val)
	if err != nil {
		panic(fmt.Sprintf("Env variable %s is not an integer: %s", key, val))
	}

	return intVal
}

func GetDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	duration, err := time.ParseDuration(val)
	if err != nil {
		panic(fmt.Sprintf("Env variable %s is not a duration: %s", key, val))
	}

	return duration
}
