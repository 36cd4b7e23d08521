package main

import (
	"os"
	"os/signal"
	"stem-split-worker/src/application"
	"stem-split-worker/src/application/config"
	"stem-split-worker/src/lib/cerr"
	"stem-split-worker/src/lib/env"
	"stem-split-worker/src/lib/logging"
	"syscall"

	"github.com/apex/log"
)

func main() {
	environment := env.Get()
	config.LoadDotEnv(environment)

	cfg := config.FromEnv(environment)
	logging.Setup(cfg.Environment, cfg.LogLevel)

	app := application.NewApp(cfg)

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		sig := <-signals

		log.WithField("signal", sig.String()).Info("Shutting down")
		app.Stop()
	}()

	if err := app.Start(); err != nil {
		cerr.Log(err)
		os.Exit(1)
	}
}
