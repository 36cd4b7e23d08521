package logging

import (
	"os"
	"stem-split-worker/src/lib/env"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
)

func Setup(environment env.Environment, level string) {
	switch environment {
	case env.Production:
		log.SetHandler(json.New(os.Stderr))
	default:
		log.SetHandler(text.New(os.Stderr))
	}

	logLevel, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("Unrecognized log level, falling back to info")
		logLevel = log.InfoLevel
	}

	log.SetLevel(logLevel)
}
